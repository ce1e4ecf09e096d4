// Package messages is the player's inbox: notifications raised by the
// simulation, such as sustained guest complaints or broken rides.
package messages

import (
	"log/slog"

	"github.com/talgya/mini-park/internal/savegame"
)

// Kind identifies a message.
type Kind uint8

const (
	ComplainHungry Kind = iota
	ComplainThirsty
	ComplainToilet
	ComplainLitter
	ComplainVandalism
	RideBrokenDown
	RideRepaired

	kindCount
)

var kindText = [kindCount]string{
	ComplainHungry:    "Guests are hungry and cannot find anything to eat",
	ComplainThirsty:   "Guests are thirsty and cannot find anything to drink",
	ComplainToilet:    "Guests cannot find a toilet",
	ComplainLitter:    "Guests complain about the litter on the paths",
	ComplainVandalism: "Guests complain about vandalised path objects",
	RideBrokenDown:    "A ride has broken down",
	RideRepaired:      "A ride has been repaired",
}

// String returns the text shown to the player.
func (k Kind) String() string {
	if k < kindCount {
		return kindText[k]
	}
	return "Unknown message"
}

// Date is the simulated date a message was sent on.
type Date struct {
	Day   uint8  `json:"day"`
	Month uint8  `json:"month"`
	Year  uint16 `json:"year"`
}

// Message is one inbox entry.
type Message struct {
	Kind Kind `json:"kind"`
	Date Date `json:"date"`
}

// Inbox collects messages for the player.
type Inbox struct {
	messages []Message

	// Now returns the current simulated date; nil leaves dates zero.
	Now func() Date

	// OnMessage is called for every new message.
	OnMessage func(Message)
}

// NewInbox creates an empty inbox.
func NewInbox() *Inbox {
	return &Inbox{}
}

// SendMessage adds a message of the given kind.
func (ib *Inbox) SendMessage(kind Kind) {
	m := Message{Kind: kind}
	if ib.Now != nil {
		m.Date = ib.Now()
	}
	ib.messages = append(ib.messages, m)
	slog.Info("inbox message", "kind", kind.String(), "day", m.Date.Day, "month", m.Date.Month, "year", m.Date.Year)
	if ib.OnMessage != nil {
		ib.OnMessage(m)
	}
}

// Messages returns all messages, oldest first.
func (ib *Inbox) Messages() []Message {
	return ib.messages
}

// Count returns the number of messages of the given kind.
func (ib *Inbox) Count(kind Kind) int {
	n := 0
	for _, m := range ib.messages {
		if m.Kind == kind {
			n++
		}
	}
	return n
}

// Clear removes all messages.
func (ib *Inbox) Clear() {
	ib.messages = nil
}

const currentVersionINBX = 1

// Load reads the INBX pattern.
func (ib *Inbox) Load(ldr *savegame.Loader) {
	version := ldr.OpenPattern("INBX")
	switch version {
	case 0:
	case 1:
		for i := ldr.GetLong(); i > 0 && ldr.Err() == nil; i-- {
			var m Message
			m.Kind = Kind(ldr.GetByte())
			m.Date.Day = ldr.GetByte()
			m.Date.Month = ldr.GetByte()
			m.Date.Year = ldr.GetWord()
			ib.messages = append(ib.messages, m)
		}
	default:
		ldr.VersionMismatch(version, currentVersionINBX)
	}
	ldr.ClosePattern()
}

// Save writes the INBX pattern.
func (ib *Inbox) Save(svr *savegame.Saver) {
	svr.CheckNoOpenPattern()
	svr.StartPattern("INBX", currentVersionINBX)
	svr.PutLong(uint32(len(ib.messages)))
	for _, m := range ib.messages {
		svr.PutByte(uint8(m.Kind))
		svr.PutByte(m.Date.Day)
		svr.PutByte(m.Date.Month)
		svr.PutWord(m.Date.Year)
	}
	svr.EndPattern()
}

package people

import (
	"math"

	"github.com/talgya/mini-park/internal/messages"
)

// Complaint is a guest complaint channel.
type Complaint uint8

const (
	ComplaintHunger Complaint = iota
	ComplaintThirst
	ComplaintWaste
	ComplaintLitter
	ComplaintVandalism

	complaintCount
)

// ComplaintTimeout is the minimum time in milliseconds between two
// notifications of the same complaint.
const ComplaintTimeout = 8 * 60 * 1000

// ComplaintThreshold is the number of complaints that must pile up before
// the player is told.
var ComplaintThreshold = [complaintCount]uint16{
	ComplaintHunger:    80,
	ComplaintThirst:    80,
	ComplaintWaste:     30,
	ComplaintLitter:    25,
	ComplaintVandalism: 15,
}

var complaintMessage = [complaintCount]messages.Kind{
	ComplaintHunger:    messages.ComplainHungry,
	ComplaintThirst:    messages.ComplainThirsty,
	ComplaintWaste:     messages.ComplainToilet,
	ComplaintLitter:    messages.ComplainLitter,
	ComplaintVandalism: messages.ComplainVandalism,
}

func (c Complaint) String() string {
	switch c {
	case ComplaintHunger:
		return "hunger"
	case ComplaintThirst:
		return "thirst"
	case ComplaintWaste:
		return "waste"
	case ComplaintLitter:
		return "litter"
	case ComplaintVandalism:
		return "vandalism"
	}
	return "unknown"
}

// Complaints debounces guest complaints into inbox messages. A channel
// fires when its counter reached the threshold and at least
// ComplaintTimeout ms passed since it last fired; firing resets both.
type Complaints struct {
	counter   [complaintCount]uint16
	timeSince [complaintCount]uint32
	inbox     Inbox
}

// NewComplaints creates an aggregator whose channels can fire right away.
func NewComplaints(inbox Inbox) *Complaints {
	c := &Complaints{inbox: inbox}
	c.Reset()
	return c
}

// Reset zeroes the counters and sets the timers to the timeout.
func (c *Complaints) Reset() {
	for i := range c.counter {
		c.counter[i] = 0
		c.timeSince[i] = ComplaintTimeout
	}
}

// Complain registers one complaint and may notify the player.
func (c *Complaints) Complain(k Complaint) {
	if c.counter[k] < math.MaxUint16 {
		c.counter[k]++
	}
	if c.timeSince[k] >= ComplaintTimeout && c.counter[k] >= ComplaintThreshold[k] {
		c.counter[k] = 0
		c.timeSince[k] = 0
		if c.inbox != nil {
			c.inbox.SendMessage(complaintMessage[k])
		}
	}
}

// OnAnimate advances every channel timer by delay ms.
func (c *Complaints) OnAnimate(delay int) {
	if delay <= 0 {
		return
	}
	for i, t := range c.timeSince {
		if uint64(t)+uint64(delay) > math.MaxUint32 {
			c.timeSince[i] = math.MaxUint32
		} else {
			c.timeSince[i] = t + uint32(delay)
		}
	}
}

// Counter returns the pending complaint count of channel k.
func (c *Complaints) Counter(k Complaint) uint16 { return c.counter[k] }

// TimeSince returns the ms since channel k last fired.
func (c *Complaints) TimeSince(k Complaint) uint32 { return c.timeSince[k] }

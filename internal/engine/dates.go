package engine

import (
	"fmt"

	"github.com/talgya/mini-park/internal/messages"
	"github.com/talgya/mini-park/internal/people"
	"github.com/talgya/mini-park/internal/savegame"
)

var monthNames = [12]string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

var daysInMonth = [12]uint8{31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

// Date is a day in the park's calendar. Day and Month start at 1.
type Date struct {
	Day   uint8
	Month uint8
	Year  uint16
	Frac  uint16 // Ticks done in the day.
}

func (d Date) String() string {
	return fmt.Sprintf("%d %s, year %d", d.Day, monthNames[d.Month-1], d.Year)
}

// Dates is the simulation calendar. A day lasts people.TickCountPerDay ticks.
type Dates struct {
	date Date
}

// NewDates starts the calendar at 1 Jan, year 1.
func NewDates() *Dates {
	return &Dates{date: Date{Day: 1, Month: 1, Year: 1}}
}

// Today returns the current date.
func (d *Dates) Today() Date {
	return d.date
}

// Current returns the current date as stamped on messages.
func (d *Dates) Current() messages.Date {
	return messages.Date{Day: d.date.Day, Month: d.date.Month, Year: d.date.Year}
}

// OnTick advances the clock by one tick and reports which boundaries were
// crossed.
func (d *Dates) OnTick() (newDay, newMonth bool) {
	d.date.Frac++
	if d.date.Frac < people.TickCountPerDay {
		return false, false
	}
	d.date.Frac = 0
	d.date.Day++
	if d.date.Day <= daysInMonth[d.date.Month-1] {
		return true, false
	}
	d.date.Day = 1
	d.date.Month++
	if d.date.Month > 12 {
		d.date.Month = 1
		d.date.Year++
	}
	return true, true
}

const currentVersionDATE = 1

// Load reads the DATE pattern.
func (d *Dates) Load(ldr *savegame.Loader) {
	*d = *NewDates()
	version := ldr.OpenPattern("DATE")
	switch version {
	case 0:
	case 1:
		date := Date{
			Day:   ldr.GetByte(),
			Month: ldr.GetByte(),
			Year:  ldr.GetWord(),
			Frac:  ldr.GetWord(),
		}
		if date.Month < 1 || date.Month > 12 || date.Day < 1 || date.Day > daysInMonth[date.Month-1] || date.Frac >= people.TickCountPerDay {
			ldr.Fail(fmt.Errorf("%w: bad date %d/%d/%d+%d", savegame.ErrStructure, date.Day, date.Month, date.Year, date.Frac))
			break
		}
		d.date = date
	default:
		ldr.VersionMismatch(version, currentVersionDATE)
	}
	ldr.ClosePattern()
}

// Save writes the DATE pattern.
func (d *Dates) Save(svr *savegame.Saver) {
	svr.CheckNoOpenPattern()
	svr.StartPattern("DATE", currentVersionDATE)
	svr.PutByte(d.date.Day)
	svr.PutByte(d.date.Month)
	svr.PutWord(d.date.Year)
	svr.PutWord(d.date.Frac)
	svr.EndPattern()
}

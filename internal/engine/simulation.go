package engine

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/talgya/mini-park/internal/finances"
	"github.com/talgya/mini-park/internal/messages"
	"github.com/talgya/mini-park/internal/people"
	"github.com/talgya/mini-park/internal/rides"
	"github.com/talgya/mini-park/internal/savegame"
	"github.com/talgya/mini-park/internal/world"
)

// RepairCost is charged for every broken ride a mechanic repairs, in cents.
const RepairCost = 250_00

// Scenario is the rule set of a park.
type Scenario interface {
	people.Scenario
	Name() string
	StartCash() int64
}

// Simulation holds the complete park state and wires the systems together.
// All state is owned by the goroutine calling Step.
type Simulation struct {
	World    world.Query
	Scenario Scenario

	Dates    *Dates
	Inbox    *messages.Inbox
	Finances *finances.Manager
	Rides    *rides.Manager
	Guests   *people.Guests
	Staff    *people.Staff

	seed int64

	// Hooks that survive loading a game.
	OnMessage     func(messages.Message)
	OnTransaction func(finances.Transaction)
	OnDay         func(Stats)
}

// Stats is a summary of the park.
type Stats struct {
	Date         string `json:"date"`
	Guests       int    `json:"guests"`
	GuestsInPark int    `json:"guests_in_park"`
	Staff        int    `json:"staff"`
	Rides        int    `json:"rides"`
	BrokenRides  int    `json:"broken_rides"`
	Requests     int    `json:"mechanic_requests"`
	Cash         int64  `json:"cash"`
	Messages     int    `json:"messages"`
}

// parts is one set of the stateful systems of a game.
type parts struct {
	dates  *Dates
	inbox  *messages.Inbox
	fin    *finances.Manager
	rides  *rides.Manager
	guests *people.Guests
	staff  *people.Staff
}

// NewSimulation creates a new game on the given world.
func NewSimulation(w world.Query, sc Scenario, seed int64) *Simulation {
	s := &Simulation{World: w, Scenario: sc, seed: seed}
	s.install(s.build(sc.StartCash()))
	return s
}

func (s *Simulation) build(startCash int64) *parts {
	p := &parts{
		dates: NewDates(),
		inbox: messages.NewInbox(),
		fin:   finances.NewManager(startCash),
		rides: rides.NewManager(s.seed + 100),
	}
	env := people.Env{
		World:    s.World,
		Rides:    p.rides,
		Inbox:    p.inbox,
		Finances: p.fin,
		Scenario: s.Scenario,
	}
	p.guests = people.NewGuests(env, s.seed)
	p.staff = people.NewStaff(env, s.seed+200)

	p.rides.Mechanics = p.staff
	p.rides.Inbox = p.inbox
	p.rides.OnRepair = func(*rides.Instance) { p.fin.PayRepair(RepairCost) }
	p.inbox.Now = p.dates.Current
	p.inbox.OnMessage = func(m messages.Message) {
		if s.OnMessage != nil {
			s.OnMessage(m)
		}
	}
	p.fin.OnTransaction = func(t finances.Transaction) {
		if s.OnTransaction != nil {
			s.OnTransaction(t)
		}
	}
	return p
}

func (s *Simulation) install(p *parts) {
	s.Dates = p.dates
	s.Inbox = p.inbox
	s.Finances = p.fin
	s.Rides = p.rides
	s.Guests = p.guests
	s.Staff = p.staff
}

// Step runs one frame of delay ms. Guests go before staff, so complaints
// raised this frame are seen by the staff next frame.
func (s *Simulation) Step(delay int) {
	s.Guests.OnAnimate(delay)
	s.Staff.OnAnimate(delay)
	s.Guests.DoTick()
	s.Staff.DoTick()

	newDay, newMonth := s.Dates.OnTick()
	if newDay {
		s.Guests.OnNewDay()
		s.Staff.OnNewDay()
		s.Rides.OnNewDay()
	}
	if newMonth {
		s.Guests.OnNewMonth()
		s.Staff.OnNewMonth()
		s.Finances.OnNewMonth()
	}
	if newDay {
		s.reportDay()
	}
}

func (s *Simulation) reportDay() {
	st := s.Stats()
	slog.Info("daily report",
		"date", st.Date,
		"guests", st.Guests,
		"in_park", st.GuestsInPark,
		"staff", st.Staff,
		"rides", st.Rides,
		"broken", st.BrokenRides,
		"requests", st.Requests,
		"cash", st.Cash,
	)
	if s.OnDay != nil {
		s.OnDay(st)
	}
}

// Stats summarises the park.
func (s *Simulation) Stats() Stats {
	return Stats{
		Date:         s.Dates.Today().String(),
		Guests:       s.Guests.CountActiveGuests(),
		GuestsInPark: s.Guests.CountGuestsInPark(),
		Staff:        s.Staff.Count(people.KindAny),
		Rides:        len(s.Rides.Rides()),
		BrokenRides:  s.Rides.CountBroken(),
		Requests:     len(s.Staff.PendingRequests()),
		Cash:         s.Finances.Cash,
		Messages:     len(s.Inbox.Messages()),
	}
}

// DeleteRide removes a ride after telling the guests and staff about it.
func (s *Simulation) DeleteRide(idx uint16) error {
	r := s.Rides.RideInstance(idx)
	if r == nil {
		return fmt.Errorf("delete ride: no ride at index %d", idx)
	}
	s.Guests.NotifyRideDeletion(r)
	s.Staff.NotifyRideDeletion(r)
	return s.Rides.Delete(idx)
}

const currentVersionFCTS = 1

func (s *Simulation) save(svr *savegame.Saver) {
	svr.StartPattern("FCTS", currentVersionFCTS)
	svr.PutText(s.Scenario.Name())
	svr.EndPattern()

	s.Dates.Save(svr)
	s.Finances.Save(svr)
	s.Inbox.Save(svr)
	s.Rides.Save(svr)
	s.Guests.Save(svr)
	s.Staff.Save(svr)
}

// Save writes the game to w.
func (s *Simulation) Save(w io.Writer) error {
	svr := savegame.NewSaver(w)
	s.save(svr)
	if err := svr.Err(); err != nil {
		return fmt.Errorf("save game: %w", err)
	}
	return nil
}

// SaveFile writes the game to a compressed save file and returns its size.
func (s *Simulation) SaveFile(path string) (int64, error) {
	size, err := savegame.WriteFile(path, func(svr *savegame.Saver) error {
		s.save(svr)
		return svr.Err()
	})
	if err != nil {
		return 0, fmt.Errorf("save game: %w", err)
	}
	slog.Info("game saved", "path", path, "bytes", size)
	return size, nil
}

// Load replaces the game with the one in data. On error the running game
// is left untouched.
func (s *Simulation) Load(data []byte) error {
	return s.load(savegame.NewLoader(data))
}

// LoadFile loads a compressed save file.
func (s *Simulation) LoadFile(path string) error {
	ldr, err := savegame.ReadFile(path)
	if err != nil {
		return fmt.Errorf("load game: %w", err)
	}
	return s.load(ldr)
}

func (s *Simulation) load(ldr *savegame.Loader) error {
	p := s.build(s.Scenario.StartCash())

	name := ""
	version := ldr.OpenPattern("FCTS")
	switch version {
	case 0:
	case 1:
		name = ldr.GetText()
	default:
		ldr.VersionMismatch(version, currentVersionFCTS)
	}
	ldr.ClosePattern()

	p.dates.Load(ldr)
	p.fin.Load(ldr)
	p.inbox.Load(ldr)
	p.rides.Load(ldr)
	p.guests.Load(ldr)
	p.staff.Load(ldr)
	if err := ldr.Err(); err != nil {
		return fmt.Errorf("load game: %w", err)
	}

	if name != "" && name != s.Scenario.Name() {
		slog.Warn("save game belongs to another scenario", "save", name, "scenario", s.Scenario.Name())
	}
	s.install(p)
	slog.Info("game loaded", "date", s.Dates.Today().String(), "guests", s.Guests.CountActiveGuests(), "staff", s.Staff.Count(people.KindAny))
	return nil
}

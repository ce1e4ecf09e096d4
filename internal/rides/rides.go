// Package rides keeps the ride instances of the park. Ride operation itself
// is not simulated; rides only wear out, break down and wait for a mechanic.
package rides

import (
	"fmt"
	"log/slog"

	"github.com/talgya/mini-park/internal/entropy"
	"github.com/talgya/mini-park/internal/messages"
	"github.com/talgya/mini-park/internal/people"
	"github.com/talgya/mini-park/internal/savegame"
	"github.com/talgya/mini-park/internal/world"
)

// InspectionInterval is the number of days after which a working ride asks
// for a routine inspection.
const InspectionInterval = 7

// State is the operating state of a ride.
type State uint8

const (
	StateWorking State = iota
	StateBrokenDown
)

func (s State) String() string {
	if s == StateBrokenDown {
		return "broken down"
	}
	return "working"
}

// MechanicRequester queues rides for a mechanic.
type MechanicRequester interface {
	RequestMechanic(r people.Ride)
}

// Notifier receives player messages.
type Notifier interface {
	SendMessage(kind messages.Kind)
}

// Instance is a ride in the park.
type Instance struct {
	index    uint16
	Name     string
	entrance world.EdgeCoordinate

	state               State
	daysSinceInspection uint16
	reliability         uint16 // Chance out of 1024 to survive a day.
	mechanicRequested   bool

	manager *Manager
}

func (r *Instance) Index() uint16 { return r.index }

func (r *Instance) MechanicEntrance() world.EdgeCoordinate { return r.entrance }

func (r *Instance) State() State { return r.state }

func (r *Instance) DaysSinceInspection() uint16 { return r.daysSinceInspection }

func (r *Instance) MechanicRequested() bool { return r.mechanicRequested }

// Reliability is the chance out of 1024 that the ride runs a day without
// breaking down.
func (r *Instance) Reliability() uint16 { return r.reliability }

// MechanicArrived completes an inspection, repairing the ride if needed.
func (r *Instance) MechanicArrived() {
	r.daysSinceInspection = 0
	r.mechanicRequested = false
	if r.state != StateBrokenDown {
		slog.Debug("ride inspected", "ride", r.Name)
		return
	}
	r.state = StateWorking
	slog.Info("ride repaired", "ride", r.Name)
	m := r.manager
	if m.Inbox != nil {
		m.Inbox.SendMessage(messages.RideRepaired)
	}
	if m.OnRepair != nil {
		m.OnRepair(r)
	}
}

// Manager owns all ride instances. Deleted rides leave a hole, so indices
// of the other rides stay stable.
type Manager struct {
	rides []*Instance
	rng   *entropy.Random

	Mechanics MechanicRequester
	Inbox     Notifier

	// OnRepair is called after a broken ride was repaired.
	OnRepair func(r *Instance)
}

// NewManager creates a manager without rides.
func NewManager(seed int64) *Manager {
	return &Manager{rng: entropy.New(seed)}
}

// Create adds a ride in the first free slot and returns it.
func (m *Manager) Create(name string, entrance world.EdgeCoordinate, reliability uint16) *Instance {
	r := &Instance{
		Name:        name,
		entrance:    entrance,
		reliability: min(reliability, 1024),
		manager:     m,
	}
	for i, slot := range m.rides {
		if slot == nil {
			r.index = uint16(i)
			m.rides[i] = r
			return r
		}
	}
	r.index = uint16(len(m.rides))
	m.rides = append(m.rides, r)
	return r
}

// Delete removes the ride at idx. The people must have been told already.
func (m *Manager) Delete(idx uint16) error {
	if m.Get(idx) == nil {
		return fmt.Errorf("rides: no ride at index %d", idx)
	}
	slog.Info("ride deleted", "ride", m.rides[idx].Name, "index", idx)
	m.rides[idx] = nil
	return nil
}

// Get returns the ride at idx, nil when there is none.
func (m *Manager) Get(idx uint16) *Instance {
	if int(idx) >= len(m.rides) {
		return nil
	}
	return m.rides[idx]
}

// RideInstance implements people.RideLookup.
func (m *Manager) RideInstance(idx uint16) people.Ride {
	if r := m.Get(idx); r != nil {
		return r
	}
	return nil
}

// RideCount returns the number of ride slots, holes included.
func (m *Manager) RideCount() uint16 {
	return uint16(len(m.rides))
}

// Rides returns the existing rides in index order.
func (m *Manager) Rides() []*Instance {
	out := make([]*Instance, 0, len(m.rides))
	for _, r := range m.rides {
		if r != nil {
			out = append(out, r)
		}
	}
	return out
}

// CountBroken returns the number of broken down rides.
func (m *Manager) CountBroken() int {
	n := 0
	for _, r := range m.Rides() {
		if r.state == StateBrokenDown {
			n++
		}
	}
	return n
}

// OnNewDay wears the rides. A ride that breaks down, or that has not been
// inspected for InspectionInterval days, asks for a mechanic.
func (m *Manager) OnNewDay() {
	for _, r := range m.Rides() {
		if r.daysSinceInspection < 0xFFFF {
			r.daysSinceInspection++
		}
		if r.state == StateWorking && !m.rng.Success1024(int(r.reliability)) {
			r.state = StateBrokenDown
			slog.Info("ride broke down", "ride", r.Name)
			if m.Inbox != nil {
				m.Inbox.SendMessage(messages.RideBrokenDown)
			}
			m.requestMechanic(r)
			continue
		}
		if r.daysSinceInspection >= InspectionInterval {
			m.requestMechanic(r)
		}
	}
}

func (m *Manager) requestMechanic(r *Instance) {
	if r.mechanicRequested || m.Mechanics == nil {
		return
	}
	r.mechanicRequested = true
	m.Mechanics.RequestMechanic(r)
}

const currentVersionRIDS = 1

// Load reads the RIDS pattern, replacing all rides.
func (m *Manager) Load(ldr *savegame.Loader) {
	m.rides = nil
	version := ldr.OpenPattern("RIDS")
	switch version {
	case 0:
	case 1:
		count := ldr.GetWord()
		for i := uint16(0); i < count && ldr.Err() == nil; i++ {
			if ldr.GetByte() == 0 {
				m.rides = append(m.rides, nil)
				continue
			}
			r := &Instance{index: i, manager: m}
			r.Name = ldr.GetText()
			r.entrance.Coords.X = ldr.GetInt16()
			r.entrance.Coords.Y = ldr.GetInt16()
			r.entrance.Coords.Z = ldr.GetInt16()
			r.entrance.Edge = world.TileEdge(ldr.GetByte())
			r.state = State(ldr.GetByte())
			r.daysSinceInspection = ldr.GetWord()
			r.reliability = ldr.GetWord()
			r.mechanicRequested = ldr.GetByte() != 0
			if r.state > StateBrokenDown {
				ldr.Fail(fmt.Errorf("%w: ride %q has state %d", savegame.ErrStructure, r.Name, r.state))
			}
			m.rides = append(m.rides, r)
		}
	default:
		ldr.VersionMismatch(version, currentVersionRIDS)
	}
	ldr.ClosePattern()
}

// Save writes the RIDS pattern.
func (m *Manager) Save(svr *savegame.Saver) {
	svr.CheckNoOpenPattern()
	svr.StartPattern("RIDS", currentVersionRIDS)
	svr.PutWord(uint16(len(m.rides)))
	for _, r := range m.rides {
		if r == nil {
			svr.PutByte(0)
			continue
		}
		svr.PutByte(1)
		svr.PutText(r.Name)
		svr.PutInt16(r.entrance.Coords.X)
		svr.PutInt16(r.entrance.Coords.Y)
		svr.PutInt16(r.entrance.Coords.Z)
		svr.PutByte(uint8(r.entrance.Edge))
		svr.PutByte(uint8(r.state))
		svr.PutWord(r.daysSinceInspection)
		svr.PutWord(r.reliability)
		if r.mechanicRequested {
			svr.PutByte(1)
		} else {
			svr.PutByte(0)
		}
	}
	svr.EndPattern()
}

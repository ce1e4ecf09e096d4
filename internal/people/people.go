// Package people owns every autonomous person in the park: the fixed guest
// block with its free-slot cursor and sharded daily updates, the complaint
// aggregator, and the staff rosters with the mechanic dispatcher.
//
// Guest ids grow upward from 0 and staff ids grow downward from the top of
// the 16-bit id space, so the two never collide.
package people

import (
	"errors"
	"math"

	"github.com/talgya/mini-park/internal/messages"
	"github.com/talgya/mini-park/internal/world"
)

const (
	// GuestBlockSize is the number of guest slots in the park.
	GuestBlockSize = 4000

	// TickCountPerDay is the number of DoTick calls in a simulated day.
	TickCountPerDay = 1000

	// GuestBaseID is the id of the guest in slot 0.
	GuestBaseID = 0

	// StaffBaseID is the top of the staff id space. Ids are handed out
	// counting down from it.
	StaffBaseID = math.MaxUint16

	// NoRide marks an absent ride reference in save data.
	NoRide = 0xFFFF
)

// Kind is the type of a person.
type Kind uint8

const (
	KindGuest Kind = iota
	KindMechanic
	KindHandyman
	KindGuard
	KindEntertainer

	// KindAny matches every staff kind when counting.
	KindAny Kind = 0xFF
)

// StaffKinds lists the staff kinds in roster order.
var StaffKinds = [...]Kind{KindMechanic, KindHandyman, KindGuard, KindEntertainer}

// String returns the display name of the kind.
func (k Kind) String() string {
	switch k {
	case KindGuest:
		return "Guest"
	case KindMechanic:
		return "Mechanic"
	case KindHandyman:
		return "Handyman"
	case KindGuard:
		return "Guard"
	case KindEntertainer:
		return "Entertainer"
	case KindAny:
		return "Any"
	}
	return "Unknown"
}

// Salary is the monthly wage of each staff kind, in cents.
var Salary = map[Kind]int64{
	KindMechanic:    1800_00,
	KindHandyman:    1200_00,
	KindGuard:       1500_00,
	KindEntertainer: 1300_00,
}

// AnimateResult is the outcome of animating a person for a frame.
type AnimateResult uint8

const (
	AnimateOK         AnimateResult = iota // Keep going.
	AnimateRemove                          // Remove the person from the park.
	AnimateDeactivate                      // Person left the world by itself.
)

// Load errors for references in save data that do not resolve.
var (
	ErrBadSlot     = errors.New("people: bad guest slot")
	ErrUnknownRide = errors.New("people: unknown ride")
)

// Ride is a ride instance as seen by people.
type Ride interface {
	Index() uint16
	// MechanicEntrance is where a mechanic must stand to inspect or repair the ride.
	MechanicEntrance() world.EdgeCoordinate
	// MechanicArrived tells the ride its inspection or repair is done.
	MechanicArrived()
}

// RideLookup resolves ride indices.
type RideLookup interface {
	// RideInstance returns the ride at index, or nil when there is none.
	RideInstance(index uint16) Ride
	RideCount() uint16
}

// Inbox receives player messages.
type Inbox interface {
	SendMessage(kind messages.Kind)
}

// Finances accepts wage debits.
type Finances interface {
	PayStaffWages(amount int64)
}

// Scenario holds the park rules that govern guest arrival.
type Scenario interface {
	MaxGuests() int
	// SpawnProbability returns the daily arrival chance out of 1024, def
	// when the scenario does not set one.
	SpawnProbability(def int) int
}

// Env bundles the collaborators of the guest pool and the staff registry.
type Env struct {
	World    world.Query
	Rides    RideLookup
	Inbox    Inbox
	Finances Finances
	Scenario Scenario
}

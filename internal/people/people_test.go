package people

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/talgya/mini-park/internal/messages"
	"github.com/talgya/mini-park/internal/world"
)

type fakeRide struct {
	idx      uint16
	entrance world.XYZPoint16
	arrived  int
}

func (r *fakeRide) Index() uint16 { return r.idx }
func (r *fakeRide) MechanicEntrance() world.EdgeCoordinate {
	return world.EdgeCoordinate{Coords: r.entrance, Edge: world.EdgeNE}
}
func (r *fakeRide) MechanicArrived() { r.arrived++ }

type fakeRides []*fakeRide

func (f fakeRides) RideInstance(i uint16) Ride {
	if int(i) < len(f) && f[i] != nil {
		return f[i]
	}
	return nil
}

func (f fakeRides) RideCount() uint16 { return uint16(len(f)) }

type scenario struct {
	maxGuests int
	spawn     int // 0 keeps the default.
}

func (s scenario) MaxGuests() int { return s.maxGuests }

func (s scenario) SpawnProbability(def int) int {
	if s.spawn > 0 {
		return s.spawn
	}
	return def
}

type wageLog struct{ amounts []int64 }

func (w *wageLog) PayStaffWages(amount int64) { w.amounts = append(w.amounts, amount) }

// testEnv returns an environment over a flat 16x16 grid without paths.
func testEnv(t *testing.T) (Env, *world.Grid, *messages.Inbox) {
	t.Helper()
	g := world.NewGrid(16, 16, 0)
	inbox := messages.NewInbox()
	return Env{
		World:    g,
		Inbox:    inbox,
		Finances: &wageLog{},
		Scenario: scenario{maxGuests: 10, spawn: 1024},
	}, g, inbox
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "Mechanic", KindMechanic.String())
	assert.Equal(t, "Entertainer", KindEntertainer.String())
	assert.Equal(t, "Any", KindAny.String())
}

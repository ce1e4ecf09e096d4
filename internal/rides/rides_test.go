package rides

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/mini-park/internal/messages"
	"github.com/talgya/mini-park/internal/people"
	"github.com/talgya/mini-park/internal/savegame"
	"github.com/talgya/mini-park/internal/world"
)

type requestLog struct{ rides []uint16 }

func (l *requestLog) RequestMechanic(r people.Ride) { l.rides = append(l.rides, r.Index()) }

func entrance(x, y int16) world.EdgeCoordinate {
	return world.EdgeCoordinate{Coords: world.XYZPoint16{X: x, Y: y}, Edge: world.EdgeSE}
}

func TestCreateReusesHoles(t *testing.T) {
	m := NewManager(1)
	a := m.Create("Carousel", entrance(1, 1), 1024)
	b := m.Create("Coaster", entrance(2, 2), 1024)
	assert.Equal(t, uint16(0), a.Index())
	assert.Equal(t, uint16(1), b.Index())

	require.NoError(t, m.Delete(0))
	assert.Error(t, m.Delete(0))
	assert.Nil(t, m.RideInstance(0))
	assert.Nil(t, m.RideInstance(7))
	assert.Equal(t, uint16(2), m.RideCount())

	c := m.Create("Swings", entrance(3, 3), 1024)
	assert.Equal(t, uint16(0), c.Index())
	assert.Equal(t, people.Ride(c), m.RideInstance(0))
}

func TestBreakdownRequestsMechanicOnce(t *testing.T) {
	m := NewManager(1)
	reqs := &requestLog{}
	inbox := messages.NewInbox()
	m.Mechanics = reqs
	m.Inbox = inbox
	r := m.Create("Wild Mouse", entrance(4, 0), 0) // Breaks down on the first day.

	m.OnNewDay()
	m.OnNewDay()
	assert.Equal(t, StateBrokenDown, r.State())
	assert.Equal(t, []uint16{0}, reqs.rides)
	assert.Equal(t, 1, inbox.Count(messages.RideBrokenDown))
	assert.Equal(t, 1, m.CountBroken())

	var repaired []*Instance
	m.OnRepair = func(ri *Instance) { repaired = append(repaired, ri) }
	r.MechanicArrived()
	assert.Equal(t, StateWorking, r.State())
	assert.False(t, r.MechanicRequested())
	assert.Equal(t, uint16(0), r.DaysSinceInspection())
	assert.Equal(t, 1, inbox.Count(messages.RideRepaired))
	assert.Len(t, repaired, 1)
}

func TestRoutineInspection(t *testing.T) {
	m := NewManager(1)
	reqs := &requestLog{}
	m.Mechanics = reqs
	m.Create("Ferris Wheel", entrance(0, 4), 1024) // Never breaks down.

	for _i := 0; _i < InspectionInterval-1; _i++ {
		m.OnNewDay()
	}
	assert.Empty(t, reqs.rides)
	m.OnNewDay()
	assert.Equal(t, []uint16{0}, reqs.rides)
	m.OnNewDay()
	assert.Len(t, reqs.rides, 1)
}

func TestSaveLoad(t *testing.T) {
	m := NewManager(1)
	m.Create("Carousel", entrance(1, 2), 1000)
	m.Create("Coaster", entrance(5, 6), 0)
	m.Create("Swings", entrance(7, 8), 900)
	require.NoError(t, m.Delete(1))
	m.OnNewDay()

	var buf bytes.Buffer
	svr := savegame.NewSaver(&buf)
	m.Save(svr)
	require.NoError(t, svr.Err())

	got := NewManager(2)
	ldr := savegame.NewLoader(buf.Bytes())
	got.Load(ldr)
	require.NoError(t, ldr.Err())

	require.Equal(t, m.RideCount(), got.RideCount())
	assert.Nil(t, got.Get(1))
	for _, idx := range []uint16{0, 2} {
		want, have := m.Get(idx), got.Get(idx)
		require.NotNil(t, have)
		assert.Equal(t, want.Name, have.Name)
		assert.Equal(t, want.Index(), have.Index())
		assert.Equal(t, want.MechanicEntrance(), have.MechanicEntrance())
		assert.Equal(t, want.State(), have.State())
		assert.Equal(t, want.DaysSinceInspection(), have.DaysSinceInspection())
		assert.Equal(t, want.Reliability(), have.Reliability())
	}
}

package people

import (
	"bytes"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/mini-park/internal/savegame"
	"github.com/talgya/mini-park/internal/world"
)

func TestHire(t *testing.T) {
	env, _, _ := testEnv(t)
	s := NewStaff(env, 1)

	m := s.HireMechanic()
	h := s.HireHandyman()
	g := s.HireGuard()
	e := s.HireEntertainer()

	assert.Equal(t, uint16(math.MaxUint16-1), m.ID())
	assert.Equal(t, uint16(math.MaxUint16-4), e.ID())
	assert.Equal(t, "Mechanic #1", m.Name())
	assert.Equal(t, "Handyman #2", h.Name())
	assert.Equal(t, "Guard #3", g.Name())
	assert.Equal(t, "Entertainer #4", e.Name())
	assert.Equal(t, world.XYZPoint16{X: 9, Y: 2, Z: 0}, m.Pos())
	assert.Equal(t, KindHandyman, h.Kind())
	assert.True(t, g.IsActive())

	assert.Equal(t, 1, s.Count(KindMechanic))
	assert.Equal(t, 4, s.Count(KindAny))
	assert.Equal(t, Member(g), s.Get(KindGuard, 0))
	assert.Equal(t, Member(s.Hire(KindMechanic)), s.Get(KindMechanic, 1))
}

func TestIDsDisjoint(t *testing.T) {
	env, grid, _ := testEnv(t)
	grid.SetPath(5, 0)
	gs := NewGuests(env, 1)
	s := NewStaff(env, 1)

	seen := map[uint16]bool{}
	const hires = 40
	for i := 0; i < hires; i++ {
		gs.OnNewDay()
		m := s.Hire(StaffKinds[i%len(StaffKinds)])
		assert.GreaterOrEqual(t, int(m.ID()), math.MaxUint16-hires)
		assert.False(t, seen[m.ID()])
		seen[m.ID()] = true
	}
	for i := 0; i < GuestBlockSize; i++ {
		if g := gs.Guest(i); g.IsActive() {
			assert.False(t, seen[g.ID()])
			seen[g.ID()] = true
		}
	}
	assert.Len(t, seen, hires+gs.CountActiveGuests())
}

func TestStaffPanics(t *testing.T) {
	env, _, _ := testEnv(t)
	s := NewStaff(env, 1)
	s.HireGuard()
	other := NewStaff(env, 1).HireGuard()

	assert.Panics(t, func() { s.Count(KindGuest) })
	assert.Panics(t, func() { s.Get(KindGuard, 1) })
	assert.Panics(t, func() { s.Get(KindMechanic, 0) })
	assert.Panics(t, func() { s.Dismiss(other) })
	assert.Panics(t, func() { s.Hire(KindGuest) })
}

func TestDismiss(t *testing.T) {
	env, _, _ := testEnv(t)
	s := NewStaff(env, 1)
	a := s.HireEntertainer()
	b := s.HireEntertainer()
	c := s.HireEntertainer()

	s.Dismiss(b)
	require.Equal(t, 2, s.Count(KindEntertainer))
	assert.Equal(t, Member(a), s.Get(KindEntertainer, 0))
	assert.Equal(t, Member(c), s.Get(KindEntertainer, 1))

	// Ids are never reused.
	d := s.HireEntertainer()
	assert.Equal(t, uint16(math.MaxUint16-4), d.ID())
}

func TestDispatchNearest(t *testing.T) {
	env, _, _ := testEnv(t)
	s := NewStaff(env, 1)
	near := s.HireMechanic()
	far := s.HireMechanic()
	near.MoveTo(world.XYZPoint16{X: 10})
	far.MoveTo(world.XYZPoint16{X: 0})
	ride := &fakeRide{idx: 3, entrance: world.XYZPoint16{X: 8}}

	s.RequestMechanic(ride)
	s.DoTick()
	assert.Equal(t, Ride(ride), near.Ride())
	assert.Nil(t, far.Ride())
	assert.Empty(t, s.PendingRequests())
}

func TestDispatchTieBreak(t *testing.T) {
	env, _, _ := testEnv(t)
	s := NewStaff(env, 1)
	first := s.HireMechanic()
	second := s.HireMechanic()
	first.MoveTo(world.XYZPoint16{X: 6})
	second.MoveTo(world.XYZPoint16{X: 10})
	s.RequestMechanic(&fakeRide{idx: 0, entrance: world.XYZPoint16{X: 8}})

	s.DoTick()
	assert.NotNil(t, first.Ride())
	assert.Nil(t, second.Ride())
}

func TestDispatchOnePerTick(t *testing.T) {
	env, _, _ := testEnv(t)
	s := NewStaff(env, 1)
	busy := s.HireMechanic()
	r1 := &fakeRide{idx: 1, entrance: world.XYZPoint16{X: 1}}
	r2 := &fakeRide{idx: 2, entrance: world.XYZPoint16{X: 2}}
	s.RequestMechanic(r1)
	s.RequestMechanic(r2)

	s.DoTick()
	assert.Equal(t, Ride(r1), busy.Ride())
	require.Len(t, s.PendingRequests(), 1)

	// Nobody idle: the queue stays as it is.
	s.DoTick()
	assert.Equal(t, []Ride{r2}, s.PendingRequests())

	idle := s.HireMechanic()
	s.DoTick()
	assert.Equal(t, Ride(r2), idle.Ride())
	assert.Empty(t, s.PendingRequests())
}

func TestDispatchWithoutMechanics(t *testing.T) {
	env, _, _ := testEnv(t)
	s := NewStaff(env, 1)
	s.RequestMechanic(&fakeRide{})
	s.DoTick()
	assert.Len(t, s.PendingRequests(), 1)
}

func TestMechanicWalksAndServices(t *testing.T) {
	env, _, _ := testEnv(t)
	s := NewStaff(env, 1)
	m := s.HireMechanic()
	ride := &fakeRide{idx: 0, entrance: world.XYZPoint16{X: 9, Y: 4, Z: 1}}
	s.RequestMechanic(ride)
	s.DoTick()

	want := []world.XYZPoint16{
		{X: 9, Y: 3, Z: 0},
		{X: 9, Y: 4, Z: 0},
		{X: 9, Y: 4, Z: 1},
	}
	for _, p := range want {
		s.OnAnimate(mechanicStepMs)
		assert.Equal(t, p, m.Pos())
	}
	s.OnAnimate(inspectionMs - 1)
	assert.Zero(t, ride.arrived)
	s.OnAnimate(1)
	assert.Equal(t, 1, ride.arrived)
	assert.Nil(t, m.Ride())
}

func TestDismissAssignedMechanic(t *testing.T) {
	env, _, _ := testEnv(t)
	s := NewStaff(env, 1)
	m := s.HireMechanic()
	r1 := &fakeRide{idx: 1}
	r2 := &fakeRide{idx: 2}
	s.RequestMechanic(r1)
	s.RequestMechanic(r2)
	s.DoTick()
	require.Equal(t, Ride(r1), m.Ride())

	s.Dismiss(m)
	assert.Equal(t, []Ride{r1, r2}, s.PendingRequests())
	assert.Equal(t, 0, s.Count(KindMechanic))
}

func TestStaffNotifyRideDeletion(t *testing.T) {
	env, _, _ := testEnv(t)
	s := NewStaff(env, 1)
	m := s.HireMechanic()
	r1 := &fakeRide{idx: 1}
	r2 := &fakeRide{idx: 2}
	s.RequestMechanic(r1)
	s.RequestMechanic(r2)
	s.RequestMechanic(r1)
	s.DoTick()
	require.Equal(t, Ride(r1), m.Ride())

	s.NotifyRideDeletion(r1)
	assert.Nil(t, m.Ride())
	assert.Equal(t, []Ride{r2}, s.PendingRequests())
}

func TestHandymanSweeps(t *testing.T) {
	env, grid, _ := testEnv(t)
	grid.SetPath(9, 2)
	grid.SetPath(10, 2)
	grid.AddLitter(world.XYZPoint16{X: 9, Y: 2}, 5)
	s := NewStaff(env, 1)
	h := s.HireHandyman()

	s.OnAnimate(staffStepMs)
	assert.Equal(t, uint8(0), grid.Voxel(world.XYZPoint16{X: 9, Y: 2}).Litter)
	assert.Equal(t, uint32(1), h.Swept())
	assert.Equal(t, world.XYZPoint16{X: 10, Y: 2}, h.Pos())
}

func TestWages(t *testing.T) {
	env, _, _ := testEnv(t)
	wages := &wageLog{}
	env.Finances = wages
	s := NewStaff(env, 1)
	for _, k := range []Kind{KindMechanic, KindMechanic, KindHandyman, KindEntertainer, KindEntertainer, KindEntertainer} {
		s.Hire(k)
	}

	s.OnNewMonth()
	assert.Equal(t, []int64{2 * 1800_00, 1200_00, 0, 3 * 1300_00}, wages.amounts)

	var total int64
	for _, k := range StaffKinds {
		total += Salary[k] * int64(s.Count(k))
	}
	var paid int64
	for _, a := range wages.amounts {
		paid += a
	}
	assert.Equal(t, total, paid)
}

func TestStaffUninitialize(t *testing.T) {
	env, _, _ := testEnv(t)
	s := NewStaff(env, 1)
	s.HireGuard()
	s.RequestMechanic(&fakeRide{})
	s.Uninitialize()

	assert.Equal(t, 0, s.Count(KindAny))
	assert.Empty(t, s.PendingRequests())
	assert.Equal(t, uint16(StaffBaseID), s.LastPersonID())
	assert.Equal(t, uint16(StaffBaseID-1), s.HireGuard().ID())
}

func TestStaffSaveLoad(t *testing.T) {
	env, _, _ := testEnv(t)
	rides := fakeRides{
		{idx: 0, entrance: world.XYZPoint16{X: 2, Y: 2}},
		{idx: 1, entrance: world.XYZPoint16{X: 12, Y: 2}},
	}
	env.Rides = rides
	s := NewStaff(env, 1)
	m1 := s.HireMechanic()
	s.HireMechanic()
	s.HireHandyman()
	s.HireGuard()
	s.HireEntertainer()
	m1.MoveTo(world.XYZPoint16{X: 1, Y: 1})
	s.RequestMechanic(rides[0])
	s.RequestMechanic(rides[1])
	s.DoTick()
	s.OnAnimate(1200)

	var buf bytes.Buffer
	svr := savegame.NewSaver(&buf)
	s.Save(svr)
	require.NoError(t, svr.Err())

	got := NewStaff(env, 2)
	ldr := savegame.NewLoader(buf.Bytes())
	got.Load(ldr)
	require.NoError(t, ldr.Err())

	assert.Equal(t, s.LastPersonID(), got.LastPersonID())
	assert.Equal(t, []Ride{rides[1]}, got.PendingRequests())
	for _, k := range StaffKinds {
		require.Equal(t, s.Count(k), got.Count(k))
		for i := 0; i < s.Count(k); i++ {
			want, have := s.Get(k, i), got.Get(k, i)
			assert.Equal(t, want.ID(), have.ID())
			assert.Equal(t, want.Name(), have.Name())
			assert.Equal(t, want.Pos(), have.Pos())
		}
	}
	assert.Equal(t, Ride(rides[0]), got.Get(KindMechanic, 0).(*Mechanic).Ride())
	assert.Nil(t, got.Get(KindMechanic, 1).(*Mechanic).Ride())

	var again bytes.Buffer
	svr = savegame.NewSaver(&again)
	got.Save(svr)
	require.NoError(t, svr.Err())
	assert.Equal(t, buf.Bytes(), again.Bytes())
}

func TestStaffLoadVersion2(t *testing.T) {
	env, _, _ := testEnv(t)
	old := NewStaff(env, 1)
	old.HireGuard()
	old.HireGuard()
	m := old.HireMechanic()

	var buf bytes.Buffer
	svr := savegame.NewSaver(&buf)
	svr.StartPattern("STAF", 2)
	svr.PutLong(0)
	svr.PutLong(1)
	m.save(svr)
	svr.EndPattern()
	require.NoError(t, svr.Err())

	s := NewStaff(env, 1)
	ldr := savegame.NewLoader(buf.Bytes())
	s.Load(ldr)
	require.NoError(t, ldr.Err())
	assert.Equal(t, 1, s.Count(KindAny))
	assert.Equal(t, m.ID(), s.LastPersonID())
	assert.Equal(t, m.ID()-1, s.HireMechanic().ID())
}

func TestStaffLoadVersion1(t *testing.T) {
	env, _, _ := testEnv(t)
	rides := fakeRides{{idx: 0}}
	env.Rides = rides

	var buf bytes.Buffer
	svr := savegame.NewSaver(&buf)
	svr.StartPattern("STAF", 1)
	svr.PutLong(1)
	svr.PutWord(0)
	svr.EndPattern()

	s := NewStaff(env, 1)
	ldr := savegame.NewLoader(buf.Bytes())
	s.Load(ldr)
	require.NoError(t, ldr.Err())
	assert.Equal(t, []Ride{rides[0]}, s.PendingRequests())
	assert.Equal(t, uint16(StaffBaseID), s.LastPersonID())
}

func TestStaffLoadUnknownRide(t *testing.T) {
	env, _, _ := testEnv(t)
	env.Rides = fakeRides{}

	var buf bytes.Buffer
	svr := savegame.NewSaver(&buf)
	svr.StartPattern("STAF", 3)
	svr.PutWord(StaffBaseID)
	svr.PutLong(1)
	svr.PutWord(9)
	for _i := 0; _i < 4; _i++ {
		svr.PutLong(0)
	}
	svr.EndPattern()

	s := NewStaff(env, 1)
	ldr := savegame.NewLoader(buf.Bytes())
	s.Load(ldr)
	assert.ErrorIs(t, ldr.Err(), ErrUnknownRide)
}

package people

import (
	"log/slog"

	"github.com/talgya/mini-park/internal/savegame"
	"github.com/talgya/mini-park/internal/world"
)

const (
	mechanicStepMs = 500  // Mechanics hurry to their ride.
	inspectionMs   = 3000 // Time a mechanic spends at the ride.
	staffStepMs    = 700
)

// Member is a staff member. The set of members is closed: Mechanic,
// Handyman, Guard and Entertainer.
type Member interface {
	ID() uint16
	Kind() Kind
	Name() string
	Pos() world.XYZPoint16
	MoveTo(v world.XYZPoint16)
	OnAnimate(delay int) AnimateResult
	NotifyRideDeletion(r Ride)

	save(svr *savegame.Saver)
	load(ldr *savegame.Loader)
}

// staffMember is the part of a staff member shared by all kinds.
type staffMember struct {
	Person
	staff *Staff
}

func (m *staffMember) NotifyRideDeletion(Ride) {}

// roam wanders over the paths at staff walking speed.
func (m *staffMember) roam(delay int) {
	q := m.staff.env.World
	for n := m.walk(delay, staffStepMs); n > 0; n-- {
		if !m.wander(q, m.staff.rng) {
			return
		}
	}
}

// Mechanic inspects and repairs rides.
type Mechanic struct {
	staffMember
	ride        Ride   // Ride to service, nil when idle.
	inspectTime uint32 // Ms spent at the ride so far.
}

// Assign sends the mechanic to service r.
func (m *Mechanic) Assign(r Ride) {
	m.ride = r
	m.inspectTime = 0
	slog.Debug("mechanic assigned", "mechanic", m.name, "ride", r.Index())
}

// Ride returns the ride the mechanic services, nil when idle.
func (m *Mechanic) Ride() Ride { return m.ride }

// OnAnimate walks towards the assigned ride's mechanic entrance, x first,
// then y, then z, and services the ride on arrival.
func (m *Mechanic) OnAnimate(delay int) AnimateResult {
	if m.ride == nil {
		m.walkTime = 0
		return AnimateOK
	}
	dest := m.ride.MechanicEntrance().Coords
	if m.pos != dest {
		for n := m.walk(delay, mechanicStepMs); n > 0 && m.pos != dest; n-- {
			m.pos = world.StepToward(m.pos, dest)
		}
		return AnimateOK
	}

	m.inspectTime += uint32(delay)
	if m.inspectTime >= inspectionMs {
		r := m.ride
		m.ride = nil
		m.inspectTime = 0
		slog.Debug("mechanic serviced ride", "mechanic", m.name, "ride", r.Index())
		r.MechanicArrived()
	}
	return AnimateOK
}

// NotifyRideDeletion drops the assignment when its ride is removed.
func (m *Mechanic) NotifyRideDeletion(r Ride) {
	if m.ride != nil && m.ride.Index() == r.Index() {
		m.ride = nil
		m.inspectTime = 0
	}
}

func (m *Mechanic) save(svr *savegame.Saver) {
	m.Person.save(svr)
	saveRideIndex(svr, m.ride)
	svr.PutLong(m.inspectTime)
}

func (m *Mechanic) load(ldr *savegame.Loader) {
	m.Person.load(ldr, KindMechanic)
	m.ride = loadRide(ldr, m.staff.env.Rides)
	m.inspectTime = ldr.GetLong()
}

// Handyman sweeps the paths.
type Handyman struct {
	staffMember
	swept uint32 // Voxels cleaned since hiring.
}

// Swept returns the number of littered voxels the handyman cleaned.
func (h *Handyman) Swept() uint32 { return h.swept }

// OnAnimate wanders and sweeps the litter on every voxel walked over.
func (h *Handyman) OnAnimate(delay int) AnimateResult {
	sw, ok := h.staff.env.World.(world.Sweeper)
	q := h.staff.env.World
	for n := h.walk(delay, staffStepMs); n > 0; n-- {
		if ok && sw.SweepLitter(h.pos) {
			h.swept++
		}
		if !h.wander(q, h.staff.rng) {
			break
		}
	}
	return AnimateOK
}

func (h *Handyman) save(svr *savegame.Saver) { h.Person.save(svr) }

func (h *Handyman) load(ldr *savegame.Loader) { h.Person.load(ldr, KindHandyman) }

// Guard patrols the park.
type Guard struct {
	staffMember
}

func (g *Guard) OnAnimate(delay int) AnimateResult {
	g.roam(delay)
	return AnimateOK
}

func (g *Guard) save(svr *savegame.Saver) { g.Person.save(svr) }

func (g *Guard) load(ldr *savegame.Loader) { g.Person.load(ldr, KindGuard) }

// Entertainer walks around in costume.
type Entertainer struct {
	staffMember
}

func (e *Entertainer) OnAnimate(delay int) AnimateResult {
	e.roam(delay)
	return AnimateOK
}

func (e *Entertainer) save(svr *savegame.Saver) { e.Person.save(svr) }

func (e *Entertainer) load(ldr *savegame.Loader) { e.Person.load(ldr, KindEntertainer) }

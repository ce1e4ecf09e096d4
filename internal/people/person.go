package people

import (
	"fmt"

	"github.com/talgya/mini-park/internal/entropy"
	"github.com/talgya/mini-park/internal/savegame"
	"github.com/talgya/mini-park/internal/world"
)

// Person is the state shared by guests and staff.
type Person struct {
	id       uint16
	kind     Kind
	name     string
	pos      world.XYZPoint16
	active   bool
	walkTime uint32 // Milliseconds accumulated towards the next step.
}

func (p *Person) ID() uint16                { return p.id }
func (p *Person) Kind() Kind                { return p.kind }
func (p *Person) Name() string              { return p.name }
func (p *Person) Pos() world.XYZPoint16     { return p.pos }
func (p *Person) IsActive() bool            { return p.active }
func (p *Person) SetName(name string)       { p.name = name }
func (p *Person) MoveTo(v world.XYZPoint16) { p.pos = v }

// activate places the person on the ground voxel of start.
func (p *Person) activate(q world.Query, start world.Point16, kind Kind) {
	p.kind = kind
	p.active = true
	p.walkTime = 0
	p.pos = world.GroundVoxel(q, start.X, start.Y)
}

func (p *Person) deActivate() {
	p.active = false
	p.name = ""
	p.walkTime = 0
}

// walk accumulates delay and reports how many steps of stepMs are due.
func (p *Person) walk(delay int, stepMs uint32) int {
	p.walkTime += uint32(delay)
	steps := int(p.walkTime / stepMs)
	p.walkTime %= stepMs
	return steps
}

// wander moves to a random neighbouring path voxel. It reports false when
// there is nowhere to go.
func (p *Person) wander(q world.Query, rng *entropy.Random) bool {
	next := world.PathNeighbours(q, p.pos)
	if len(next) == 0 {
		return false
	}
	p.pos = next[rng.Uniform(len(next))]
	return true
}

func (p *Person) save(svr *savegame.Saver) {
	svr.PutWord(p.id)
	svr.PutByte(uint8(p.kind))
	svr.PutText(p.name)
	svr.PutInt16(p.pos.X)
	svr.PutInt16(p.pos.Y)
	svr.PutInt16(p.pos.Z)
	svr.PutLong(p.walkTime)
}

// load reads a person body and activates the person. The stored kind must
// be want.
func (p *Person) load(ldr *savegame.Loader, want Kind) {
	p.id = ldr.GetWord()
	kind := Kind(ldr.GetByte())
	p.name = ldr.GetText()
	p.pos.X = ldr.GetInt16()
	p.pos.Y = ldr.GetInt16()
	p.pos.Z = ldr.GetInt16()
	p.walkTime = ldr.GetLong()
	if ldr.Err() != nil {
		return
	}
	if kind != want {
		ldr.Fail(fmt.Errorf("%w: person %d is a %s, expected %s", savegame.ErrStructure, p.id, kind, want))
		return
	}
	p.kind = kind
	p.active = true
}

func saveRideIndex(svr *savegame.Saver, r Ride) {
	if r == nil {
		svr.PutWord(NoRide)
		return
	}
	svr.PutWord(r.Index())
}

// loadRide resolves a saved ride index, nil for NoRide.
func loadRide(ldr *savegame.Loader, rides RideLookup) Ride {
	idx := ldr.GetWord()
	if idx == NoRide || ldr.Err() != nil {
		return nil
	}
	var r Ride
	if rides != nil {
		r = rides.RideInstance(idx)
	}
	if r == nil {
		ldr.Fail(fmt.Errorf("%w: %d", ErrUnknownRide, idx))
	}
	return r
}

package people

import (
	"log/slog"

	"github.com/talgya/mini-park/internal/savegame"
	"github.com/talgya/mini-park/internal/world"
)

const (
	guestStepMs = 900 // Walking speed of guests.

	litterComplainLevel = 3  // Litter on a voxel that makes guests complain.
	litterChance        = 8  // Chance out of 1024 per step to drop litter.
	needComplainLevel   = 60 // Hunger or thirst at which guests complain.
	wasteComplainLevel  = 70
)

// Guest is a visitor of the park. Guests live in the slots of the guest
// block and are only activated and deactivated by the pool.
type Guest struct {
	Person
	pool *Guests

	inPark    bool
	happiness uint8 // 0 to 100.
	hunger    uint8 // 0 to 100, as are thirst and waste.
	thirst    uint8
	waste     uint8
	stayDays  uint16 // Days left before the guest goes home.
	ride      uint16 // Ride the guest heads for, NoRide if none.
}

// IsInPark reports whether the guest walked past the park entrance.
func (g *Guest) IsInPark() bool { return g.inPark }

// Happiness returns the happiness of the guest, 0 to 100.
func (g *Guest) Happiness() uint8 { return g.happiness }

// RideIndex returns the ride the guest heads for, NoRide if none.
func (g *Guest) RideIndex() uint16 { return g.ride }

// Activate brings the guest into the world at start.
func (g *Guest) Activate(start world.Point16, kind Kind) {
	rng := g.pool.rng
	g.activate(g.pool.env.World, start, kind)
	g.name = generateName(rng)
	g.inPark = false
	g.happiness = 60 + uint8(rng.Uniform(40))
	g.hunger = uint8(rng.Uniform(30))
	g.thirst = uint8(rng.Uniform(30))
	g.waste = 0
	g.stayDays = 1 + uint16(rng.Uniform(3))
	g.ride = NoRide
	slog.Debug("guest arrived", "id", g.id, "name", g.name, "pos", g.pos.String())
}

// DeActivate takes the guest out of the world.
func (g *Guest) DeActivate(ar AnimateResult) {
	slog.Debug("guest left", "id", g.id, "result", ar, "happiness", g.happiness)
	g.deActivate()
	g.inPark = false
	g.ride = NoRide
}

// OnAnimate walks the guest around the paths.
func (g *Guest) OnAnimate(delay int) AnimateResult {
	q := g.pool.env.World
	if !world.HasValidPath(q.Voxel(g.pos)) {
		return AnimateRemove // Path removed from under the guest.
	}
	for n := g.walk(delay, guestStepMs); n > 0; n-- {
		if !g.wander(q, g.pool.rng) {
			break
		}
		g.inPark = true
		g.lookAround(q)
	}
	return AnimateOK
}

func (g *Guest) lookAround(q world.Query) {
	v := q.Voxel(g.pos)
	if v == nil {
		return
	}
	if v.Litter >= litterComplainLevel {
		g.pool.ComplainLitter()
		g.unhappy(1)
	}
	if v.Vandalised {
		g.pool.ComplainVandalism()
		g.unhappy(1)
	}
	if l, ok := q.(world.Litterer); ok && g.pool.rng.Success1024(litterChance) {
		l.AddLitter(g.pos, 1)
	}
}

// DailyUpdate runs the once-a-day chores of the guest. It returns false
// when the guest wants to go home.
func (g *Guest) DailyUpdate() bool {
	rng := g.pool.rng
	g.hunger = addCapped(g.hunger, 10+rng.Uniform(10))
	g.thirst = addCapped(g.thirst, 10+rng.Uniform(10))
	g.waste = addCapped(g.waste, 5+rng.Uniform(10))

	// No shops or toilets in the park core, so needs are never met.
	if g.hunger >= needComplainLevel {
		g.pool.ComplainHunger()
		g.unhappy(5)
	}
	if g.thirst >= needComplainLevel {
		g.pool.ComplainThirst()
		g.unhappy(5)
	}
	if g.waste >= wasteComplainLevel {
		g.pool.ComplainWaste()
		g.unhappy(5)
	}

	if g.ride != NoRide {
		g.happiness = addCapped(g.happiness, 10)
		g.ride = NoRide
	}
	if rides := g.pool.env.Rides; rides != nil {
		if n := int(rides.RideCount()); n > 0 {
			idx := uint16(rng.Uniform(n))
			if rides.RideInstance(idx) != nil {
				g.ride = idx
			}
		}
	}

	if g.stayDays > 0 {
		g.stayDays--
	}
	return g.stayDays > 0 && g.happiness > 0
}

// NotifyRideDeletion drops a reference to a ride that is being removed.
func (g *Guest) NotifyRideDeletion(r Ride) {
	if g.ride == r.Index() {
		g.ride = NoRide
	}
}

func (g *Guest) unhappy(n uint8) {
	if g.happiness < n {
		g.happiness = 0
		return
	}
	g.happiness -= n
}

func addCapped(v uint8, n int) uint8 {
	if int(v)+n > 100 {
		return 100
	}
	return v + uint8(n)
}

func (g *Guest) save(svr *savegame.Saver) {
	g.Person.save(svr)
	svr.PutByte(boolByte(g.inPark))
	svr.PutByte(g.happiness)
	svr.PutByte(g.hunger)
	svr.PutByte(g.thirst)
	svr.PutByte(g.waste)
	svr.PutWord(g.stayDays)
	svr.PutWord(g.ride)
}

func (g *Guest) load(ldr *savegame.Loader) {
	g.Person.load(ldr, KindGuest)
	g.inPark = ldr.GetByte() != 0
	g.happiness = ldr.GetByte()
	g.hunger = ldr.GetByte()
	g.thirst = ldr.GetByte()
	g.waste = ldr.GetByte()
	g.stayDays = ldr.GetWord()
	g.ride = ldr.GetWord()
}

func boolByte(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}

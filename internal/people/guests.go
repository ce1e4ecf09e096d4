package people

import (
	"fmt"
	"log/slog"

	"github.com/talgya/mini-park/internal/entropy"
	"github.com/talgya/mini-park/internal/savegame"
	"github.com/talgya/mini-park/internal/world"
)

// defaultSpawnProbability is the daily arrival chance out of 1024 when the
// scenario does not set one.
const defaultSpawnProbability = 512

// Guests is the pool of all guests. Slot i always holds the guest with id
// GuestBaseID+i; the block is never resized.
type Guests struct {
	block [GuestBlockSize]Guest

	// Every slot below freeIdx is active, or the pool is full. It may lag
	// behind the first free slot after a guest is deactivated.
	freeIdx int

	startVoxel     world.Point16 // Entry point of new guests, NoPoint if unknown.
	dailyFrac      int           // Ticks done in the current day.
	nextDailyIndex int           // Next slot to get its daily update.

	complaints *Complaints
	rng        *entropy.Random
	env        Env
}

// NewGuests creates an empty pool. The seed drives guest arrival and
// behaviour.
func NewGuests(env Env, seed int64) *Guests {
	gs := &Guests{
		startVoxel: world.NoPoint,
		complaints: NewComplaints(env.Inbox),
		rng:        entropy.New(seed),
		env:        env,
	}
	for i := range gs.block {
		gs.block[i].id = uint16(GuestBaseID + i)
		gs.block[i].pool = gs
		gs.block[i].ride = NoRide
	}
	return gs
}

// Guest returns the guest in slot i.
func (gs *Guests) Guest(i int) *Guest {
	return &gs.block[i]
}

func (gs *Guests) index(g *Guest) int {
	return int(g.id) - GuestBaseID
}

// Complaints returns the complaint aggregator of the pool.
func (gs *Guests) Complaints() *Complaints {
	return gs.complaints
}

// StartVoxel returns the cached entry point of new guests.
func (gs *Guests) StartVoxel() world.Point16 {
	return gs.startVoxel
}

// FreeIndex returns the free slot hint.
func (gs *Guests) FreeIndex() int {
	return gs.freeIdx
}

// DailyCursor returns the ticks done in the current day and the next slot
// to get its daily update.
func (gs *Guests) DailyCursor() (dailyFrac, nextDailyIndex int) {
	return gs.dailyFrac, gs.nextDailyIndex
}

// Uninitialize deactivates all guests and resets the pool.
func (gs *Guests) Uninitialize() {
	for i := range gs.block {
		g := &gs.block[i]
		if g.IsActive() {
			g.DeActivate(AnimateRemove)
			gs.AddFree(g)
		}
	}
	gs.startVoxel = world.NoPoint
	gs.dailyFrac = 0
	gs.nextDailyIndex = 0
	gs.complaints.Reset()
}

// FindNextFreeGuest moves the free slot hint up to the first inactive
// slot and reports whether there is one.
func (gs *Guests) FindNextFreeGuest() bool {
	for gs.freeIdx < GuestBlockSize {
		if !gs.block[gs.freeIdx].IsActive() {
			return true
		}
		gs.freeIdx++
	}
	return false
}

// findNextFreeGuest is FindNextFreeGuest without moving the hint.
func (gs *Guests) findNextFreeGuest() bool {
	for idx := gs.freeIdx; idx < GuestBlockSize; idx++ {
		if !gs.block[idx].IsActive() {
			return true
		}
	}
	return false
}

// HasFreeGuests reports whether an inactive slot exists.
func (gs *Guests) HasFreeGuests() bool {
	return gs.findNextFreeGuest()
}

// GetFree returns an inactive guest. It panics when the pool is full;
// check HasFreeGuests first.
func (gs *Guests) GetFree() *Guest {
	if !gs.FindNextFreeGuest() {
		panic("people: GetFree on a full guest pool")
	}
	g := &gs.block[gs.freeIdx]
	gs.freeIdx++
	return g
}

// AddFree returns the slot of a deactivated guest to the free set.
func (gs *Guests) AddFree(g *Guest) {
	gs.freeIdx = min(gs.freeIdx, gs.index(g))
}

// CountActiveGuests returns the number of active guests.
func (gs *Guests) CountActiveGuests() int {
	count := gs.freeIdx
	for i := gs.freeIdx; i < GuestBlockSize; i++ {
		if gs.block[i].IsActive() {
			count++
		}
	}
	return count
}

// CountGuestsInPark returns the number of active guests inside the park.
func (gs *Guests) CountGuestsInPark() int {
	count := 0
	for i := range gs.block {
		if g := &gs.block[i]; g.IsActive() && g.IsInPark() {
			count++
		}
	}
	return count
}

// OnAnimate advances the complaint timers and animates every guest by
// delay ms.
func (gs *Guests) OnAnimate(delay int) {
	gs.complaints.OnAnimate(delay)

	for i := range gs.block {
		g := &gs.block[i]
		if !g.IsActive() {
			continue
		}
		if ar := g.OnAnimate(delay); ar != AnimateOK {
			g.DeActivate(ar)
			gs.AddFree(g)
		}
	}
}

// DoTick gives the next share of the guests their daily update, so that
// every guest gets one per TickCountPerDay ticks.
func (gs *Guests) DoTick() {
	gs.dailyFrac++
	end := min(gs.dailyFrac*GuestBlockSize/TickCountPerDay, GuestBlockSize)
	for ; gs.nextDailyIndex < end; gs.nextDailyIndex++ {
		g := &gs.block[gs.nextDailyIndex]
		if g.IsActive() && !g.DailyUpdate() {
			g.DeActivate(AnimateRemove)
			gs.AddFree(g)
		}
	}
	if gs.nextDailyIndex >= GuestBlockSize {
		gs.dailyFrac = 0
		gs.nextDailyIndex = 0
	}
}

// OnNewDay lets at most one new guest into the park.
func (gs *Guests) OnNewDay() {
	if gs.env.Scenario == nil {
		return
	}
	if gs.CountActiveGuests() >= gs.env.Scenario.MaxGuests() {
		return
	}
	if !gs.rng.Success1024(gs.env.Scenario.SpawnProbability(defaultSpawnProbability)) {
		return
	}

	q := gs.env.World
	if !world.IsGoodEdgeRoad(q, gs.startVoxel.X, gs.startVoxel.Y) {
		gs.startVoxel = world.FindEdgeRoad(q)
		if !world.IsGoodEdgeRoad(q, gs.startVoxel.X, gs.startVoxel.Y) {
			return
		}
	}

	if !gs.HasFreeGuests() {
		return
	}
	gs.GetFree().Activate(gs.startVoxel, KindGuest)
}

// OnNewMonth has no monthly guest work.
func (gs *Guests) OnNewMonth() {}

// NotifyRideDeletion tells every guest a ride is being removed.
func (gs *Guests) NotifyRideDeletion(r Ride) {
	for i := range gs.block {
		if g := &gs.block[i]; g.IsActive() {
			g.NotifyRideDeletion(r)
		}
	}
}

func (gs *Guests) ComplainHunger()    { gs.complaints.Complain(ComplaintHunger) }
func (gs *Guests) ComplainThirst()    { gs.complaints.Complain(ComplaintThirst) }
func (gs *Guests) ComplainWaste()     { gs.complaints.Complain(ComplaintWaste) }
func (gs *Guests) ComplainLitter()    { gs.complaints.Complain(ComplaintLitter) }
func (gs *Guests) ComplainVandalism() { gs.complaints.Complain(ComplaintVandalism) }

const currentVersionGSTS = 2

// Load reads the GSTS pattern into the pool, which is reset first.
func (gs *Guests) Load(ldr *savegame.Loader) {
	gs.Uninitialize()

	version := ldr.OpenPattern("GSTS")
	switch version {
	case 0:
	case 1, 2:
		gs.startVoxel.X = ldr.GetInt16()
		gs.startVoxel.Y = ldr.GetInt16()
		gs.dailyFrac = int(ldr.GetWord())
		gs.nextDailyIndex = int(ldr.GetWord())
		gs.freeIdx = int(ldr.GetLong())

		if version > 1 {
			for k := range gs.complaints.counter {
				gs.complaints.counter[k] = ldr.GetWord()
			}
			for k := range gs.complaints.timeSince {
				gs.complaints.timeSince[k] = ldr.GetLong()
			}
		}

		for i := ldr.GetLong(); i > 0 && ldr.Err() == nil; i-- {
			gs.loadGuest(ldr)
		}
		if ldr.Err() == nil {
			gs.repairCursors(ldr)
		}

	default:
		ldr.VersionMismatch(version, currentVersionGSTS)
	}
	ldr.ClosePattern()

	if ldr.Err() == nil {
		slog.Info("guests loaded", "version", version, "active", gs.CountActiveGuests())
	}
}

func (gs *Guests) loadGuest(ldr *savegame.Loader) {
	slot := int(ldr.GetWord())
	if ldr.Err() != nil {
		return
	}
	if slot >= GuestBlockSize {
		ldr.Fail(fmt.Errorf("%w: slot %d out of range", ErrBadSlot, slot))
		return
	}
	g := &gs.block[slot]
	if g.IsActive() {
		ldr.Fail(fmt.Errorf("%w: slot %d stored twice", ErrBadSlot, slot))
		return
	}
	g.load(ldr)
	if ldr.Err() == nil && gs.index(g) != slot {
		ldr.Fail(fmt.Errorf("%w: guest %d stored in slot %d", ErrBadSlot, g.id, slot))
	}
	g.id = uint16(GuestBaseID + slot)
}

// repairCursors keeps loaded cursors inside the block and the free slot
// hint at or below the first free slot.
func (gs *Guests) repairCursors(ldr *savegame.Loader) {
	if gs.nextDailyIndex > GuestBlockSize || gs.dailyFrac > TickCountPerDay {
		ldr.Fail(fmt.Errorf("%w: daily cursor %d/%d out of range", savegame.ErrStructure, gs.dailyFrac, gs.nextDailyIndex))
		return
	}
	first := 0
	for first < GuestBlockSize && gs.block[first].IsActive() {
		first++
	}
	gs.freeIdx = min(gs.freeIdx, first)
}

// Save writes the GSTS pattern.
func (gs *Guests) Save(svr *savegame.Saver) {
	svr.CheckNoOpenPattern()
	svr.StartPattern("GSTS", currentVersionGSTS)
	svr.PutInt16(gs.startVoxel.X)
	svr.PutInt16(gs.startVoxel.Y)
	svr.PutWord(uint16(gs.dailyFrac))
	svr.PutWord(uint16(gs.nextDailyIndex))
	svr.PutLong(uint32(gs.freeIdx))

	for _, c := range gs.complaints.counter {
		svr.PutWord(c)
	}
	for _, t := range gs.complaints.timeSince {
		svr.PutLong(t)
	}

	svr.PutLong(uint32(gs.CountActiveGuests()))
	for i := range gs.block {
		if g := &gs.block[i]; g.IsActive() {
			svr.PutWord(uint16(i))
			g.save(svr)
		}
	}
	svr.EndPattern()
}

package people

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/talgya/mini-park/internal/entropy"
	"github.com/talgya/mini-park/internal/savegame"
	"github.com/talgya/mini-park/internal/world"
)

// DefaultStaffVoxel is where newly hired staff start.
var DefaultStaffVoxel = world.Point16{X: 9, Y: 2}

// Staff holds the four staff rosters and the queue of rides waiting for a
// mechanic. Members are owned by their roster; pointers handed out stay
// valid until the member is dismissed or the registry is uninitialized.
type Staff struct {
	mechanics    []*Mechanic
	handymen     []*Handyman
	guards       []*Guard
	entertainers []*Entertainer

	lastPersonID uint16 // Last id handed out; ids count down.
	requests     []Ride // Rides waiting for a mechanic, oldest first.

	rng *entropy.Random
	env Env
}

// NewStaff creates an empty registry.
func NewStaff(env Env, seed int64) *Staff {
	return &Staff{
		lastPersonID: StaffBaseID,
		rng:          entropy.New(seed),
		env:          env,
	}
}

// Uninitialize dismisses everybody and forgets all mechanic requests.
// Pointers to former members must not be used afterwards.
func (s *Staff) Uninitialize() {
	s.mechanics = nil
	s.handymen = nil
	s.guards = nil
	s.entertainers = nil
	s.requests = nil
	s.lastPersonID = StaffBaseID
}

// GenerateID returns the id for a new staff member.
func (s *Staff) GenerateID() uint16 {
	s.lastPersonID--
	return s.lastPersonID
}

// LastPersonID returns the last id handed out.
func (s *Staff) LastPersonID() uint16 {
	return s.lastPersonID
}

func (s *Staff) newMember(kind Kind) staffMember {
	m := staffMember{staff: s}
	m.id = s.GenerateID()
	m.activate(s.env.World, DefaultStaffVoxel, kind)
	m.name = fmt.Sprintf("%s #%d", kind, StaffBaseID-int(m.id))
	slog.Info("staff hired", "kind", kind.String(), "id", m.id, "name", m.name)
	return m
}

// HireMechanic hires a new mechanic.
func (s *Staff) HireMechanic() *Mechanic {
	m := &Mechanic{staffMember: s.newMember(KindMechanic)}
	s.mechanics = append(s.mechanics, m)
	return m
}

// HireHandyman hires a new handyman.
func (s *Staff) HireHandyman() *Handyman {
	m := &Handyman{staffMember: s.newMember(KindHandyman)}
	s.handymen = append(s.handymen, m)
	return m
}

// HireGuard hires a new security guard.
func (s *Staff) HireGuard() *Guard {
	m := &Guard{staffMember: s.newMember(KindGuard)}
	s.guards = append(s.guards, m)
	return m
}

// HireEntertainer hires a new entertainer.
func (s *Staff) HireEntertainer() *Entertainer {
	m := &Entertainer{staffMember: s.newMember(KindEntertainer)}
	s.entertainers = append(s.entertainers, m)
	return m
}

// Hire hires a staff member of the given kind.
func (s *Staff) Hire(kind Kind) Member {
	switch kind {
	case KindMechanic:
		return s.HireMechanic()
	case KindHandyman:
		return s.HireHandyman()
	case KindGuard:
		return s.HireGuard()
	case KindEntertainer:
		return s.HireEntertainer()
	}
	panic(fmt.Sprintf("people: cannot hire a %s", kind))
}

// Count returns the number of staff of a kind, KindAny for all staff.
func (s *Staff) Count(kind Kind) int {
	switch kind {
	case KindMechanic:
		return len(s.mechanics)
	case KindHandyman:
		return len(s.handymen)
	case KindGuard:
		return len(s.guards)
	case KindEntertainer:
		return len(s.entertainers)
	case KindAny:
		return len(s.mechanics) + len(s.handymen) + len(s.guards) + len(s.entertainers)
	}
	panic(fmt.Sprintf("people: no staff of kind %s", kind))
}

// Get returns the staff member of a kind at a roster position.
func (s *Staff) Get(kind Kind, i int) Member {
	if i < 0 || i >= s.Count(kind) || kind == KindAny {
		panic(fmt.Sprintf("people: no %s at roster index %d", kind, i))
	}
	switch kind {
	case KindMechanic:
		return s.mechanics[i]
	case KindHandyman:
		return s.handymen[i]
	case KindGuard:
		return s.guards[i]
	default:
		return s.entertainers[i]
	}
}

// Dismiss fires a staff member. A mechanic's unfinished job goes back to
// the front of the request queue.
func (s *Staff) Dismiss(m Member) {
	var found bool
	switch m.Kind() {
	case KindMechanic:
		s.mechanics, found = remove(s.mechanics, m)
		if mech := m.(*Mechanic); found && mech.ride != nil {
			s.requests = append([]Ride{mech.ride}, s.requests...)
			mech.ride = nil
		}
	case KindHandyman:
		s.handymen, found = remove(s.handymen, m)
	case KindGuard:
		s.guards, found = remove(s.guards, m)
	case KindEntertainer:
		s.entertainers, found = remove(s.entertainers, m)
	}
	if !found {
		panic(fmt.Sprintf("people: dismissing unknown staff member %d", m.ID()))
	}
	slog.Info("staff dismissed", "kind", m.Kind().String(), "id", m.ID(), "name", m.Name())
}

func remove[T Member](roster []T, m Member) ([]T, bool) {
	for i, r := range roster {
		if Member(r) == m {
			return append(roster[:i:i], roster[i+1:]...), true
		}
	}
	return roster, false
}

// RequestMechanic queues a ride for inspection or repair.
func (s *Staff) RequestMechanic(r Ride) {
	s.requests = append(s.requests, r)
	slog.Debug("mechanic requested", "ride", r.Index(), "queued", len(s.requests))
}

// PendingRequests returns the rides waiting for a mechanic, oldest first.
func (s *Staff) PendingRequests() []Ride {
	return s.requests
}

// NotifyRideDeletion tells the mechanics a ride is being removed and drops
// its pending requests.
func (s *Staff) NotifyRideDeletion(r Ride) {
	for _, m := range s.mechanics {
		m.NotifyRideDeletion(r)
	}
	kept := s.requests[:0]
	for _, q := range s.requests {
		if q.Index() != r.Index() {
			kept = append(kept, q)
		}
	}
	clear(s.requests[len(kept):])
	s.requests = kept
}

// OnAnimate animates every staff member by delay ms.
func (s *Staff) OnAnimate(delay int) {
	for _, m := range s.mechanics {
		m.OnAnimate(delay)
	}
	for _, m := range s.handymen {
		m.OnAnimate(delay)
	}
	for _, m := range s.guards {
		m.OnAnimate(delay)
	}
	for _, m := range s.entertainers {
		m.OnAnimate(delay)
	}
}

// DoTick assigns the oldest request to the nearest idle mechanic, by
// Manhattan distance. Ties go to the mechanic hired first. Without an idle
// mechanic the queue is left alone.
func (s *Staff) DoTick() {
	if len(s.requests) == 0 || len(s.mechanics) == 0 {
		return
	}
	dest := s.requests[0].MechanicEntrance().Coords
	var best *Mechanic
	distance := math.MaxInt
	for _, m := range s.mechanics {
		if m.ride != nil {
			continue
		}
		// TODO: use walking time over the paths once mechanics follow them.
		if d := world.ManhattanDistance(dest, m.pos); d < distance {
			best, distance = m, d
		}
	}
	if best == nil {
		return
	}
	best.Assign(s.requests[0])
	s.requests[0] = nil
	s.requests = s.requests[1:]
}

// OnNewDay has no daily staff work.
func (s *Staff) OnNewDay() {}

// OnNewMonth pays the wages, one debit per staff kind.
func (s *Staff) OnNewMonth() {
	if s.env.Finances == nil {
		return
	}
	for _, k := range StaffKinds {
		s.env.Finances.PayStaffWages(Salary[k] * int64(s.Count(k)))
	}
}

const currentVersionSTAF = 3

// Load reads the STAF pattern into the registry, which is reset first.
func (s *Staff) Load(ldr *savegame.Loader) {
	s.Uninitialize()

	version := ldr.OpenPattern("STAF")
	switch version {
	case 0:
	case 1, 2, 3:
		if version >= 3 {
			s.lastPersonID = ldr.GetWord()
		}
		for i := ldr.GetLong(); i > 0 && ldr.Err() == nil; i-- {
			if r := loadRide(ldr, s.env.Rides); r != nil {
				s.requests = append(s.requests, r)
			} else if ldr.Err() == nil {
				ldr.Fail(fmt.Errorf("%w: empty mechanic request", ErrUnknownRide))
			}
		}
		if version >= 2 {
			s.mechanics = loadRoster(ldr, func() *Mechanic { return &Mechanic{staffMember: staffMember{staff: s}} })
		}
		if version >= 3 {
			s.handymen = loadRoster(ldr, func() *Handyman { return &Handyman{staffMember: staffMember{staff: s}} })
			s.guards = loadRoster(ldr, func() *Guard { return &Guard{staffMember: staffMember{staff: s}} })
			s.entertainers = loadRoster(ldr, func() *Entertainer { return &Entertainer{staffMember: staffMember{staff: s}} })
		} else {
			s.lastPersonID = s.lowestID()
		}
	default:
		ldr.VersionMismatch(version, currentVersionSTAF)
	}
	ldr.ClosePattern()

	if ldr.Err() == nil {
		slog.Info("staff loaded", "version", version, "staff", s.Count(KindAny), "requests", len(s.requests))
	}
}

func loadRoster[T Member](ldr *savegame.Loader, create func() T) []T {
	var roster []T
	for i := ldr.GetLong(); i > 0 && ldr.Err() == nil; i-- {
		m := create()
		m.load(ldr)
		roster = append(roster, m)
	}
	return roster
}

// lowestID returns the lowest staff id in use, StaffBaseID without staff.
func (s *Staff) lowestID() uint16 {
	low := uint16(StaffBaseID)
	s.forEach(func(m Member) {
		low = min(low, m.ID())
	})
	return low
}

func (s *Staff) forEach(fn func(Member)) {
	for _, m := range s.mechanics {
		fn(m)
	}
	for _, m := range s.handymen {
		fn(m)
	}
	for _, m := range s.guards {
		fn(m)
	}
	for _, m := range s.entertainers {
		fn(m)
	}
}

// Save writes the STAF pattern.
func (s *Staff) Save(svr *savegame.Saver) {
	svr.CheckNoOpenPattern()
	svr.StartPattern("STAF", currentVersionSTAF)
	svr.PutWord(s.lastPersonID)
	svr.PutLong(uint32(len(s.requests)))
	for _, r := range s.requests {
		svr.PutWord(r.Index())
	}
	saveRoster(svr, s.mechanics)
	saveRoster(svr, s.handymen)
	saveRoster(svr, s.guards)
	saveRoster(svr, s.entertainers)
	svr.EndPattern()
}

func saveRoster[T Member](svr *savegame.Saver, roster []T) {
	svr.PutLong(uint32(len(roster)))
	for _, m := range roster {
		m.save(svr)
	}
}

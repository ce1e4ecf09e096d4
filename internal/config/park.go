package config

import (
	"log/slog"
	"time"

	"github.com/talgya/mini-park/internal/engine"
	"github.com/talgya/mini-park/internal/people"
	"github.com/talgya/mini-park/internal/world"
)

// terrainSeedOffset keeps the terrain noise apart from the people seeds.
const terrainSeedOffset = 300

// BuildWorld lays out the park: terrain first, then paths, litter and
// vandalism on the ground voxels.
func (c *Config) BuildWorld() *world.Grid {
	p := c.Park
	g := world.NewGrid(p.Width, p.Length, p.GroundHeight)
	world.RollTerrain(g, c.Scenario.Seed+terrainSeedOffset, p.TerrainAmplitude)

	for _, s := range p.Paths {
		x0, x1 := min(s.From.X, s.To.X), max(s.From.X, s.To.X)
		y0, y1 := min(s.From.Y, s.To.Y), max(s.From.Y, s.To.Y)
		for y := y0; y <= y1; y++ {
			for x := x0; x <= x1; x++ {
				g.SetPath(x, y)
			}
		}
	}
	for _, l := range p.Litter {
		g.AddLitter(world.GroundVoxel(g, l.At.X, l.At.Y), l.Amount)
	}
	for _, v := range p.Vandalised {
		g.SetVandalised(world.GroundVoxel(g, v.X, v.Y), true)
	}
	return g
}

// NewSimulation builds the world and opens the park: rides are placed and
// the starting staff is hired.
func (c *Config) NewSimulation() *engine.Simulation {
	g := c.BuildWorld()
	sim := engine.NewSimulation(g, c.Scenario, c.Scenario.Seed)

	for _, r := range c.Park.Rides {
		entrance := world.EdgeCoordinate{
			Coords: world.GroundVoxel(g, r.Entrance.X, r.Entrance.Y),
			Edge:   edgeNames[r.Edge],
		}
		sim.Rides.Create(r.Name, entrance, r.Reliability)
	}

	hire := []struct {
		kind people.Kind
		n    int
	}{
		{people.KindMechanic, c.Staff.Mechanics},
		{people.KindHandyman, c.Staff.Handymen},
		{people.KindGuard, c.Staff.Guards},
		{people.KindEntertainer, c.Staff.Entertainers},
	}
	for _, h := range hire {
		for _i := 0; _i < h.n; _i++ {
			sim.Staff.Hire(h.kind)
		}
	}

	slog.Info("park opened", "scenario", c.Scenario.Title, "grid", g.String(), "rides", len(c.Park.Rides), "staff", sim.Staff.Count(people.KindAny))
	return sim
}

// NewEngine returns a frame loop paced by the engine settings.
func (c *Config) NewEngine() *engine.Engine {
	e := engine.NewEngine()
	e.Interval = time.Duration(c.Engine.FrameMs) * time.Millisecond
	e.Speed = c.Engine.Speed
	return e
}

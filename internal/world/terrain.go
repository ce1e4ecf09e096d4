package world

import (
	opensimplex "github.com/ojrac/opensimplex-go"
)

// RollTerrain raises the ground of every stack by up to amplitude voxels
// using layered simplex noise, so a park layout can sit on rolling hills.
// Paths laid afterwards follow the new ground. A zero amplitude keeps the
// grid flat.
func RollTerrain(g *Grid, seed int64, amplitude int16) {
	if amplitude <= 0 {
		return
	}
	noise := opensimplex.NewNormalized(seed)
	for y := int16(0); y < g.ysize; y++ {
		for x := int16(0); x < g.xsize; x++ {
			n := octaveNoise(noise, float64(x), float64(y), 3, 0.07, 0.5)
			g.SetGroundHeight(x, y, g.BaseGroundHeight(x, y)+int16(n*float64(amplitude)))
		}
	}
}

// octaveNoise generates fractal noise by layering multiple frequencies.
func octaveNoise(noise opensimplex.Noise, x, y float64, octaves int, frequency, persistence float64) float64 {
	total := 0.0
	amplitude := 1.0
	maxVal := 0.0

	for i := 0; i < octaves; i++ {
		total += noise.Eval2(x*frequency, y*frequency) * amplitude
		maxVal += amplitude
		amplitude *= persistence
		frequency *= 2
	}

	return total / maxVal
}

package argo

import (
	"math"
	"math/rand"
	"time"
)

const (
	syntheticProfiles = 50
	syntheticLevels   = 100
	maxPressure       = 2000.0 // dbar
	tempDecayScale    = 500.0  // e-folding pressure for the thermocline
	syntheticSeed     = 20230101
)

// Synthetic fabricates a believable North Atlantic float dataset: warm surface
// water decaying exponentially with depth, salinity increasing mildly, daily
// casts starting 2023-01-01. The generator is fully deterministic (seeded
// source, plain arithmetic) so the fallback path can never fail.
func Synthetic() *Dataset {
	rng := rand.New(rand.NewSource(syntheticSeed))

	levels := make([]float64, syntheticLevels)
	for j := range levels {
		levels[j] = maxPressure * float64(j) / float64(syntheticLevels-1)
	}

	start := time.Date(2023, time.January, 1, 0, 0, 0, 0, time.UTC)

	profiles := make([]Profile, 0, syntheticProfiles)
	for i := 0; i < syntheticProfiles; i++ {
		temp := make([]float64, syntheticLevels)
		surface := 20 + 5*rng.Float64() // 20-25°C at the surface
		for j, p := range levels {
			temp[j] = surface*math.Exp(-p/tempDecayScale) + 2*rng.Float64()
		}

		sal := make([]float64, syntheticLevels)
		base := 34.5 + 0.5*rng.Float64() // ~35 PSU
		for j, p := range levels {
			sal[j] = base + 0.5*(p/1000) + 0.2*rng.Float64()
		}

		pressure := make([]float64, syntheticLevels)
		copy(pressure, levels)

		profiles = append(profiles, Profile{
			ID:        i + 1,
			Latitude:  40 + 10*rng.Float64(),  // 40-50°N
			Longitude: -50 + 20*rng.Float64(), // 50-30°W
			Time:      start.AddDate(0, 0, i),
			Pressure:  pressure,
			Series: map[string][]float64{
				"TEMP": temp,
				"PSAL": sal,
			},
		})
	}

	// Series lengths match Pressure by construction.
	return &Dataset{profiles: profiles}
}

package haversine

import (
	"fmt"
	"math/rand/v2"
)

// Mode selects how GenerateCorpus scatters coordinate pairs.
type Mode int

const (
	// Uniform scatters both endpoints of every pair independently over
	// the whole sphere.
	Uniform Mode = iota
	// Clustered picks ClusterCount random centers up front and jitters
	// every pair's endpoints within JitterDegrees of one of them,
	// producing the bimodal distance distribution the original
	// course's cluster generator is built to stress (supplemented from
	// original_source, not present in the distilled spec).
	Clustered
)

// GenConfig controls GenerateCorpus.
type GenConfig struct {
	Count         int
	Seed          uint64
	Mode          Mode
	ClusterCount  int
	JitterDegrees float64
	RadiusKm      float64

	// OnProgress, if set, is called periodically with the number of
	// pairs generated so far and the total, so a caller can drive a
	// progress bar without GenerateCorpus depending on any UI package.
	OnProgress func(done, total int)
}

// Pair is one generated coordinate pair and its reference distance.
type Pair struct {
	X0, Y0, X1, Y1 float64
	Distance       float64
}

// Corpus is a full generated dataset: every pair plus their mean
// distance, matching the {"pairs":[...],"avg":...} shape of spec §6.
type Corpus struct {
	Pairs []Pair
	Avg   float64
}

type point struct{ x, y float64 }

// GenerateCorpus produces Count coordinate pairs using a PCG source
// seeded deterministically from cfg.Seed, so two runs with the same
// seed and config always produce byte-identical output.
func GenerateCorpus(cfg GenConfig) (Corpus, error) {
	if cfg.Count <= 0 {
		return Corpus{}, fmt.Errorf("haversine: count must be positive, got %d", cfg.Count)
	}
	radius := cfg.RadiusKm
	if radius == 0 {
		radius = EarthRadiusKm
	}

	rng := rand.New(rand.NewPCG(cfg.Seed, cfg.Seed^0x9e3779b97f4a7c15))

	var centers []point
	if cfg.Mode == Clustered {
		n := cfg.ClusterCount
		if n <= 0 {
			n = 1
		}
		centers = make([]point, n)
		for i := range centers {
			centers[i] = randomPoint(rng)
		}
	}

	pairs := make([]Pair, cfg.Count)
	var sum float64
	for i := range pairs {
		var p0, p1 point
		switch cfg.Mode {
		case Clustered:
			center := centers[rng.IntN(len(centers))]
			p0 = jitter(rng, center, cfg.JitterDegrees)
			p1 = jitter(rng, center, cfg.JitterDegrees)
		default:
			p0 = randomPoint(rng)
			p1 = randomPoint(rng)
		}

		d := Distance(p0.x, p0.y, p1.x, p1.y, radius)
		pairs[i] = Pair{X0: p0.x, Y0: p0.y, X1: p1.x, Y1: p1.y, Distance: d}
		sum += d

		if cfg.OnProgress != nil && (i%progressStride(cfg.Count) == 0 || i == cfg.Count-1) {
			cfg.OnProgress(i+1, cfg.Count)
		}
	}

	return Corpus{Pairs: pairs, Avg: sum / float64(cfg.Count)}, nil
}

// progressStride avoids calling OnProgress on every single pair for
// large corpora, which would dominate generation time with callback
// overhead.
func progressStride(total int) int {
	stride := total / 200
	if stride < 1 {
		stride = 1
	}
	return stride
}

func randomPoint(rng *rand.Rand) point {
	return point{
		x: rng.Float64()*360 - 180,
		y: rng.Float64()*180 - 90,
	}
}

func jitter(rng *rand.Rand, center point, degrees float64) point {
	if degrees <= 0 {
		return center
	}
	x := clamp(center.x+(rng.Float64()*2-1)*degrees, -180, 180)
	y := clamp(center.y+(rng.Float64()*2-1)*degrees, -90, 90)
	return point{x: x, y: y}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

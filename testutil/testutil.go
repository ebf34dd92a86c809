package testutil

import (
	"math"
	"math/rand/v2"
	"sync"

	"github.com/hupe1980/geoweights/geo"
)

// RNG wraps a seeded generator. It is safe for concurrent use.
type RNG struct {
	mu   sync.Mutex
	rand *rand.Rand
	seed uint64
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed uint64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewPCG(seed, seed+1)),
		seed: seed,
	}
}

// Seed returns the initial seed.
func (r *RNG) Seed() uint64 {
	return r.seed
}

// Rand returns a fresh generator with the RNG's seed, for APIs that take a
// *rand.Rand.
func (r *RNG) Rand() *rand.Rand {
	return rand.New(rand.NewPCG(r.seed, r.seed+1))
}

// Float64 returns a pseudo-random number in [0, 1).
func (r *RNG) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Float64()
}

// Points returns n points uniform in [0, scale)².
func (r *RNG) Points(n int, scale float64) (x, y []float64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	x = make([]float64, n)
	y = make([]float64, n)
	for i := range n {
		x[i] = r.rand.Float64() * scale
		y[i] = r.rand.Float64() * scale
	}
	return x, y
}

// LonLat returns n lon/lat points in degrees, latitudes within ±85.
func (r *RNG) LonLat(n int) (lon, lat []float64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	lon = make([]float64, n)
	lat = make([]float64, n)
	for i := range n {
		lon[i] = r.rand.Float64()*360 - 180
		lat[i] = r.rand.Float64()*170 - 85
	}
	return lon, lat
}

// DistFunc returns the distance between observations i and j.
type DistFunc func(i, j int) float64

// Planar measures Euclidean distance between x/y points.
func Planar(x, y []float64) DistFunc {
	return func(i, j int) float64 {
		return geo.Euclidean(x[i], y[i], x[j], y[j])
	}
}

// ArcKm measures great-circle kilometers between lon/lat points.
func ArcKm(lon, lat []float64) DistFunc {
	return func(i, j int) float64 {
		return geo.ArcDistKm(lon[i], lat[i], lon[j], lat[j])
	}
}

// Within returns, for every observation, the ascending ids of the other
// observations at distance at most th.
func Within(n int, dist DistFunc, th float64) [][]int {
	out := make([][]int, n)
	for i := range n {
		for j := range n {
			if i != j && dist(i, j) <= th {
				out[i] = append(out[i], j)
			}
		}
	}
	return out
}

// NearestDistance returns each observation's distance to its nearest other
// observation. A single observation gets +Inf.
func NearestDistance(n int, dist DistFunc) []float64 {
	out := make([]float64, n)
	for i := range n {
		out[i] = math.Inf(1)
		for j := range n {
			if i != j {
				out[i] = math.Min(out[i], dist(i, j))
			}
		}
	}
	return out
}

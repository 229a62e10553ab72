package testutil

import (
	"math"
	"math/rand"

	"github.com/paucablop/spectrago/dataset"
	"github.com/paucablop/spectrago/metadata"
)

// RNG is a seeded random source. Identical seeds yield identical datasets.
type RNG struct {
	rand *rand.Rand
	seed int64
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{rand: rand.New(rand.NewSource(seed)), seed: seed}
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 { return r.seed }

// Gauss returns a normally distributed value with the given mean and
// standard deviation.
func (r *RNG) Gauss(mean, stdDev float64) float64 {
	return mean + stdDev*r.rand.NormFloat64()
}

// peak is one Gaussian component: center, width, amplitude.
type peak struct {
	mu    float64
	sigma float64
	amp   float64
}

func gaussian(x, mu, sigma, amplitude float64) float64 {
	return amplitude * math.Exp(-(x-mu)*(x-mu)/(2*sigma*sigma))
}

var samplePeaks = map[string][]peak{
	"Sample_A": {{3400, 80, 0.8}, {2900, 40, 0.5}, {2350, 30, 0.3}},
	"Sample_B": {{3200, 60, 0.6}, {2800, 50, 0.7}, {2500, 35, 0.4}},
	"Sample_C": {{3600, 70, 0.9}, {3000, 45, 0.4}, {2200, 25, 0.5}},
}

var sampleOrder = []string{"Sample_A", "Sample_B", "Sample_C"}

// GenOptions controls dataset generation.
type GenOptions struct {
	Seed           int64
	Points         int
	Concentrations []float64
	Operators      []string
}

// DefaultGenOptions mirrors the project's sample data scripts: one spectrum
// per (sample, concentration, operator) combination.
func DefaultGenOptions() GenOptions {
	return GenOptions{
		Seed:           42,
		Points:         200,
		Concentrations: []float64{0.1, 0.5, 1.0, 2.0, 5.0},
		Operators:      []string{"Alice", "Bob"},
	}
}

// GenerateDataset builds a deterministic synthetic dataset with columns
// sample (string), concentration (float), operator (string) and
// measurement_id (int).
func GenerateDataset(opts GenOptions) *dataset.Dataset {
	if opts.Points <= 0 {
		opts.Points = DefaultGenOptions().Points
	}
	if len(opts.Concentrations) == 0 {
		opts.Concentrations = DefaultGenOptions().Concentrations
	}
	if len(opts.Operators) == 0 {
		opts.Operators = DefaultGenOptions().Operators
	}
	rng := NewRNG(opts.Seed)

	// Wavenumber axis: 4000 downward, step 2, like the sample data scripts.
	wavenumbers := make([]float64, opts.Points)
	for i := range wavenumbers {
		wavenumbers[i] = 4000.0 - float64(i)*2.0
	}

	var spectra []dataset.Spectrum
	id := int64(0)
	for _, sample := range sampleOrder {
		for _, conc := range opts.Concentrations {
			for _, operator := range opts.Operators {
				y := make([]float64, len(wavenumbers))
				for i, wn := range wavenumbers {
					signal := 0.0
					for _, p := range samplePeaks[sample] {
						signal += gaussian(wn, p.mu, p.sigma, p.amp*conc)
					}
					y[i] = signal + rng.Gauss(0, 0.005*conc)
				}

				x := make([]float64, len(wavenumbers))
				copy(x, wavenumbers)

				spectra = append(spectra, dataset.Spectrum{
					X: x,
					Y: y,
					Metadata: metadata.Document{
						"sample":         metadata.String(sample),
						"concentration":  metadata.Float(conc),
						"operator":       metadata.String(operator),
						"measurement_id": metadata.Int(id),
					},
				})
				id++
			}
		}
	}

	return dataset.New(spectra, []string{"sample", "concentration", "operator", "measurement_id"})
}

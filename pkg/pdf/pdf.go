// Package pdf provides the direction densities used for importance sampling:
// a cosine lobe around a normal, densities aimed at light-emitting objects
// and weighted mixtures of both.
package pdf

import (
	"errors"
	"fmt"
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
)

// ErrInvalidWeights is returned when mixture weights are negative, mismatched or do not sum to 1
var ErrInvalidWeights = errors.New("invalid mixture weights")

// PDF is a direction distribution that can both draw samples and report the density of a direction
type PDF interface {
	// Value returns the solid-angle density of direction
	Value(direction core.Vec3) float64
	// Generate draws a direction from the distribution
	Generate(sampler core.Sampler) core.Vec3
}

// Target is anything that can be importance sampled from a point, typically a light-emitting primitive
type Target interface {
	PDFValue(origin, direction core.Vec3) float64
	Random(origin core.Vec3, sampler core.Sampler) core.Vec3
}

// CosinePDF samples the hemisphere around a normal proportionally to cos(θ)
type CosinePDF struct {
	uvw core.ONB
}

// NewCosinePDF creates a cosine-weighted density around normal
func NewCosinePDF(normal core.Vec3) *CosinePDF {
	return &CosinePDF{uvw: core.NewONB(normal)}
}

// Value returns max(0, cos θ)/π
func (c *CosinePDF) Value(direction core.Vec3) float64 {
	cosine := direction.Normalize().Dot(c.uvw.W)
	if cosine <= 0 {
		return 0
	}
	return cosine / math.Pi
}

// Generate draws a cosine-weighted direction in the hemisphere around the normal
func (c *CosinePDF) Generate(sampler core.Sampler) core.Vec3 {
	return c.uvw.Local(core.RandomCosineDirection(sampler.Get2D()))
}

// HitPDF aims samples at a target object as seen from a fixed origin
type HitPDF struct {
	target Target
	origin core.Vec3
}

// NewHitPDF creates a density over directions from origin toward target
func NewHitPDF(target Target, origin core.Vec3) *HitPDF {
	return &HitPDF{target: target, origin: origin}
}

// Value delegates to the target's own density
func (h *HitPDF) Value(direction core.Vec3) float64 {
	return h.target.PDFValue(h.origin, direction)
}

// Generate delegates to the target's sampler
func (h *HitPDF) Generate(sampler core.Sampler) core.Vec3 {
	return h.target.Random(h.origin, sampler)
}

// MixPDF is a weighted combination of component densities.
// Value is the weighted sum of every component, Generate picks one component by weight.
type MixPDF struct {
	pdfs       []PDF
	weights    []float64
	cumulative []float64
}

// NewMixPDF creates a mixture with uniform weights 1/n
func NewMixPDF(pdfs ...PDF) *MixPDF {
	n := len(pdfs)
	weights := make([]float64, n)
	for i := range weights {
		weights[i] = 1.0 / float64(n)
	}
	return newMix(pdfs, weights)
}

// NewWeightedMixPDF creates a mixture with explicit weights.
// Weights must be non-negative and sum to 1.
func NewWeightedMixPDF(pdfs []PDF, weights []float64) (*MixPDF, error) {
	if len(pdfs) != len(weights) {
		return nil, fmt.Errorf("%w: %d densities but %d weights", ErrInvalidWeights, len(pdfs), len(weights))
	}

	sum := 0.0
	for i, w := range weights {
		if w < 0 || math.IsNaN(w) {
			return nil, fmt.Errorf("%w: weight %d is %g", ErrInvalidWeights, i, w)
		}
		sum += w
	}
	if len(weights) > 0 && math.Abs(sum-1) > 1e-6 {
		return nil, fmt.Errorf("%w: weights sum to %g", ErrInvalidWeights, sum)
	}

	return newMix(pdfs, append([]float64(nil), weights...)), nil
}

func newMix(pdfs []PDF, weights []float64) *MixPDF {
	cumulative := make([]float64, len(weights))
	acc := 0.0
	for i, w := range weights {
		acc += w
		cumulative[i] = acc
	}
	return &MixPDF{pdfs: pdfs, weights: weights, cumulative: cumulative}
}

// Len returns the number of components
func (m *MixPDF) Len() int {
	return len(m.pdfs)
}

// Value returns Σ wᵢ·pdfᵢ(direction); an empty mixture has density 0
func (m *MixPDF) Value(direction core.Vec3) float64 {
	sum := 0.0
	for i, p := range m.pdfs {
		if m.weights[i] == 0 {
			continue
		}
		sum += m.weights[i] * p.Value(direction)
	}
	return sum
}

// Generate selects the component whose cumulative weight range contains a uniform draw
func (m *MixPDF) Generate(sampler core.Sampler) core.Vec3 {
	if len(m.pdfs) == 0 {
		return core.Vec3{}
	}

	r := sampler.Get1D()
	for i, c := range m.cumulative {
		if r < c {
			return m.pdfs[i].Generate(sampler)
		}
	}

	// r landed past the last bound through rounding; use the last weighted component
	for i := len(m.pdfs) - 1; i >= 0; i-- {
		if m.weights[i] > 0 {
			return m.pdfs[i].Generate(sampler)
		}
	}
	return m.pdfs[len(m.pdfs)-1].Generate(sampler)
}

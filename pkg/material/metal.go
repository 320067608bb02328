package material

import (
	"github.com/df07/go-pathtracer/pkg/core"
)

// Metal represents a metallic material with specular reflection
type Metal struct {
	Albedo   core.Color // Metal color
	Fuzzness float64    // 0.0 = perfect mirror, 1.0 = very fuzzy
}

// NewMetal creates a new metal material
func NewMetal(albedo core.Color, fuzzness float64) *Metal {
	// Clamp fuzzness to valid range
	if fuzzness > 1.0 {
		fuzzness = 1.0
	}
	if fuzzness < 0.0 {
		fuzzness = 0.0
	}
	return &Metal{Albedo: albedo, Fuzzness: fuzzness}
}

// Scatter reflects the incoming ray about the normal, perturbed by fuzz.
// Reflections that end up at or below the surface are absorbed.
func (m *Metal) Scatter(rayIn core.Ray, hit *HitRecord, sampler core.Sampler) (ScatterRecord, bool) {
	reflected := reflect(rayIn.Direction.Normalize(), hit.Normal)
	if m.Fuzzness > 0 {
		reflected = reflected.Add(core.SamplePointInUnitSphere(sampler.Get3D()).Multiply(m.Fuzzness))
	}

	if reflected.Dot(hit.Normal) <= 0 {
		return ScatterRecord{}, false
	}

	return ScatterRecord{
		Attenuation: m.Albedo,
		SpecularRay: core.NewRayAtTime(hit.Point, reflected, rayIn.Time),
		IsSpecular:  true,
	}, true
}

// ScatteringPDF is zero: a delta lobe has no density to evaluate
func (m *Metal) ScatteringPDF(rayIn core.Ray, hit *HitRecord, scattered core.Ray) float64 {
	return 0
}

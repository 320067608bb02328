package material

import (
	"errors"
	"fmt"
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/pdf"
)

var (
	// ErrInvalidRoughness is returned when roughness lies outside [0,1]
	ErrInvalidRoughness = errors.New("roughness must lie in [0,1]")
	// ErrInvalidReflectance is returned when the Fresnel reflectance lies outside (0,1)
	ErrInvalidReflectance = errors.New("reflectance must lie in (0,1)")
)

// smoothRoughness is the roughness below which the surface is treated as a perfect mirror
const smoothRoughness = 1e-3

// DefaultReflectance is the normal-incidence reflectance of a dielectric with IOR 1.5
var DefaultReflectance = ReflectanceFromIOR(1.5)

// Microfacet is a Cook-Torrance surface: a GGX specular lobe over a diffuse base.
// A perfectly smooth surface picks mirror reflection with Fresnel probability instead.
type Microfacet struct {
	Albedo      Texture
	Roughness   float64 // Perceptual roughness, α = Roughness²
	Reflectance float64 // Fresnel reflectance at normal incidence (F0)
}

// NewMicrofacet creates a microfacet material, validating its parameters
func NewMicrofacet(albedo Texture, roughness, reflectance float64) (*Microfacet, error) {
	if math.IsNaN(roughness) || roughness < 0 || roughness > 1 {
		return nil, fmt.Errorf("%w: got %g", ErrInvalidRoughness, roughness)
	}
	if math.IsNaN(reflectance) || reflectance <= 0 || reflectance >= 1 {
		return nil, fmt.Errorf("%w: got %g", ErrInvalidReflectance, reflectance)
	}
	return &Microfacet{Albedo: albedo, Roughness: roughness, Reflectance: reflectance}, nil
}

// Scatter samples the cosine lobe for rough surfaces. Smooth surfaces reflect
// specularly with probability F and fall through to the diffuse lobe otherwise.
func (m *Microfacet) Scatter(rayIn core.Ray, hit *HitRecord, sampler core.Sampler) (ScatterRecord, bool) {
	albedo := m.Albedo.Evaluate(hit.UV, hit.Point)

	if m.Roughness < smoothRoughness {
		unitDirection := rayIn.Direction.Normalize()
		cosine := math.Max(0, -unitDirection.Dot(hit.Normal))
		if sampler.Get1D() < schlick(m.Reflectance, cosine) {
			reflected := reflect(unitDirection, hit.Normal)
			if reflected.Dot(hit.Normal) <= 0 {
				return ScatterRecord{}, false
			}
			return ScatterRecord{
				Attenuation: core.NewVec3(1, 1, 1),
				SpecularRay: core.NewRayAtTime(hit.Point, reflected, rayIn.Time),
				IsSpecular:  true,
			}, true
		}
	}

	return ScatterRecord{
		Attenuation: albedo,
		PDF:         pdf.NewCosinePDF(hit.Normal),
	}, true
}

// ScatteringPDF returns (1-F)·cosθ/π + F·G·D/(4·(v·n)) for rough surfaces.
// Smooth surfaces already chose the diffuse branch in Scatter, so only cosθ/π remains.
func (m *Microfacet) ScatteringPDF(rayIn core.Ray, hit *HitRecord, scattered core.Ray) float64 {
	n := hit.Normal
	l := scattered.Direction.Normalize()
	cosL := n.Dot(l)
	if cosL <= 0 {
		return 0
	}

	diffuse := cosL / math.Pi
	if m.Roughness < smoothRoughness {
		return diffuse
	}

	v := rayIn.Direction.Normalize().Negate()
	cosV := n.Dot(v)
	if cosV <= 0 {
		return 0
	}

	h := v.Add(l).Normalize()
	f := schlick(m.Reflectance, math.Max(0, v.Dot(h)))
	alpha := m.Roughness * m.Roughness
	g := smithG1(cosV, alpha) * smithG1(cosL, alpha)
	d := ggxD(n.Dot(h), alpha)

	return (1-f)*diffuse + f*g*d/(4*cosV)
}

// ggxD is the GGX normal distribution α²/(π((n·h)²(α²−1)+1)²)
func ggxD(cosH, alpha float64) float64 {
	if cosH <= 0 {
		return 0
	}
	a2 := alpha * alpha
	denom := cosH*cosH*(a2-1) + 1
	return a2 / (math.Pi * denom * denom)
}

// smithG1 is the separable Smith shadowing term 2/(1+√(1+α²tan²θ))
func smithG1(cosine, alpha float64) float64 {
	if cosine <= 0 {
		return 0
	}
	cos2 := cosine * cosine
	tan2 := (1 - cos2) / cos2
	return 2 / (1 + math.Sqrt(1+alpha*alpha*tan2))
}

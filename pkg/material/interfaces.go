package material

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/pdf"
)

// Material interface for objects that can scatter rays
type Material interface {
	// Scatter decides how rayIn leaves the surface. Returning false means the
	// ray was absorbed and the record carries no attenuation.
	Scatter(rayIn core.Ray, hit *HitRecord, sampler core.Sampler) (ScatterRecord, bool)

	// ScatteringPDF returns BRDF·cosθ for the scattered direction, used to weight
	// a sample drawn from any density against that density
	ScatteringPDF(rayIn core.Ray, hit *HitRecord, scattered core.Ray) float64
}

// Emitter interface for materials that emit light
type Emitter interface {
	Emitted(rayIn core.Ray, hit *HitRecord) core.Color
}

// ScatterRecord contains the result of material scattering.
// A specular record carries a concrete ray; a diffuse record carries a PDF to sample from.
type ScatterRecord struct {
	Attenuation core.Color // Color attenuation
	SpecularRay core.Ray   // Scattered ray, only meaningful when IsSpecular
	IsSpecular  bool
	PDF         pdf.PDF // Sampling density for non-specular scattering
}

// HitRecord contains information about a ray-object intersection
type HitRecord struct {
	Point     core.Point // Point of intersection
	Normal    core.Vec3  // Unit surface normal as oriented by the primitive
	T         float64    // Parameter t along the ray
	UV        core.Vec2  // Surface coordinates in [0,1]²
	FrontFace bool       // Whether the ray arrived against the normal
	Material  Material   // Material of the hit object
}

// SetFrontFace records which side of the surface the ray arrived from.
// The normal itself is left as the primitive defined it, so one-sided
// emission and flipped walls keep their orientation.
func (h *HitRecord) SetFrontFace(ray core.Ray) {
	h.FrontFace = ray.Direction.Dot(h.Normal) < 0
}

// EmittedBy returns the light a material emits at a hit, or black for non-emitters
func EmittedBy(mat Material, rayIn core.Ray, hit *HitRecord) core.Color {
	if emitter, ok := mat.(Emitter); ok {
		return emitter.Emitted(rayIn, hit)
	}
	return core.Color{}
}

// reflect calculates the reflection of a vector v off a surface with normal n
func reflect(v, n core.Vec3) core.Vec3 {
	// r = v - 2*dot(v,n)*n
	return v.Subtract(n.Multiply(2 * v.Dot(n)))
}

package material

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
)

// Dielectric represents a transparent material like glass that can both reflect and refract
type Dielectric struct {
	RefractiveIndex float64 // Index of refraction (e.g., 1.5 for glass)
}

// NewDielectric creates a new dielectric material
func NewDielectric(refractiveIndex float64) *Dielectric {
	return &Dielectric{RefractiveIndex: refractiveIndex}
}

// Scatter picks reflection or refraction by Schlick reflectance
func (d *Dielectric) Scatter(rayIn core.Ray, hit *HitRecord, sampler core.Sampler) (ScatterRecord, bool) {
	// Primitives keep their own normal orientation, so face it toward the ray here
	normal := hit.Normal
	refractionRatio := 1.0 / d.RefractiveIndex
	if !hit.FrontFace {
		normal = normal.Negate()
		refractionRatio = d.RefractiveIndex
	}

	unitDirection := rayIn.Direction.Normalize()
	cosTheta := math.Min(-unitDirection.Dot(normal), 1.0)
	sinTheta := math.Sqrt(math.Max(0, 1.0-cosTheta*cosTheta))

	var direction core.Vec3
	if refractionRatio*sinTheta > 1.0 || Reflectance(cosTheta, refractionRatio) > sampler.Get1D() {
		direction = reflect(unitDirection, normal)
	} else {
		direction = refract(unitDirection, normal, refractionRatio)
	}

	return ScatterRecord{
		Attenuation: core.NewVec3(1, 1, 1),
		SpecularRay: core.NewRayAtTime(hit.Point, direction, rayIn.Time),
		IsSpecular:  true,
	}, true
}

// ScatteringPDF is zero for the delta lobes of glass
func (d *Dielectric) ScatteringPDF(rayIn core.Ray, hit *HitRecord, scattered core.Ray) float64 {
	return 0
}

// refract bends a unit vector through a surface by Snell's law
func refract(uv, n core.Vec3, etaiOverEtat float64) core.Vec3 {
	cosTheta := math.Min(-uv.Dot(n), 1.0)
	rOutPerp := uv.Add(n.Multiply(cosTheta)).Multiply(etaiOverEtat)
	rOutParallel := n.Multiply(-math.Sqrt(math.Abs(1.0 - rOutPerp.LengthSquared())))
	return rOutPerp.Add(rOutParallel)
}

// Reflectance calculates the Fresnel reflectance using Schlick's approximation
func Reflectance(cosine, refractionRatio float64) float64 {
	return schlick(ReflectanceFromIOR(refractionRatio), cosine)
}

// ReflectanceFromIOR returns the normal-incidence reflectance ((n-1)/(n+1))²
func ReflectanceFromIOR(ior float64) float64 {
	r0 := (1 - ior) / (1 + ior)
	return r0 * r0
}

// schlick evaluates F0 + (1-F0)(1-cosθ)⁵
func schlick(f0, cosine float64) float64 {
	return f0 + (1-f0)*math.Pow(1-cosine, 5)
}

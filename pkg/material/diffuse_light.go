package material

import (
	"github.com/df07/go-pathtracer/pkg/core"
)

// DiffuseLight represents a one-sided light-emitting material
type DiffuseLight struct {
	Emit Texture // Emitted light color/intensity
}

// NewDiffuseLight creates a new emissive material with a solid emission color
func NewDiffuseLight(emission core.Color) *DiffuseLight {
	return &DiffuseLight{Emit: NewConstantTexture(emission)}
}

// NewTexturedDiffuseLight creates an emissive material from a texture
func NewTexturedDiffuseLight(emit Texture) *DiffuseLight {
	return &DiffuseLight{Emit: emit}
}

// Scatter always absorbs; lights only emit
func (d *DiffuseLight) Scatter(rayIn core.Ray, hit *HitRecord, sampler core.Sampler) (ScatterRecord, bool) {
	return ScatterRecord{}, false
}

// ScatteringPDF is zero since nothing scatters
func (d *DiffuseLight) ScatteringPDF(rayIn core.Ray, hit *HitRecord, scattered core.Ray) float64 {
	return 0
}

// Emitted returns the emission when the ray arrives against the normal, black otherwise
func (d *DiffuseLight) Emitted(rayIn core.Ray, hit *HitRecord) core.Color {
	if hit.Normal.Dot(rayIn.Direction) < 0 {
		return d.Emit.Evaluate(hit.UV, hit.Point)
	}
	return core.Color{}
}

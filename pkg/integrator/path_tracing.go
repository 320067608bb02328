package integrator

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/pdf"
	"github.com/df07/go-pathtracer/pkg/scene"
)

const (
	// shadowAcneEpsilon keeps secondary rays from re-hitting their own surface
	shadowAcneEpsilon = 0.001

	// minDensity is the smallest mixture density a sample may be divided by
	minDensity = 1e-12
)

// PathTracingIntegrator implements unidirectional path tracing with
// multiple importance sampling between the material and the scene's lights
type PathTracingIntegrator struct {
	config scene.SamplingConfig
}

// NewPathTracingIntegrator creates a new path tracing integrator
func NewPathTracingIntegrator(config scene.SamplingConfig) *PathTracingIntegrator {
	return &PathTracingIntegrator{
		config: config,
	}
}

// RayColor computes the color for a single ray using path tracing
func (pt *PathTracingIntegrator) RayColor(ray core.Ray, scene *scene.Scene, sampler core.Sampler) core.Color {
	return pt.rayColor(ray, scene, sampler, 0)
}

func (pt *PathTracingIntegrator) rayColor(ray core.Ray, scene *scene.Scene, sampler core.Sampler, depth int) core.Color {
	hit, isHit := scene.World.Hit(ray, shadowAcneEpsilon, math.Inf(1))
	if !isHit {
		return scene.BackgroundColor(ray)
	}
	if hit.Material == nil {
		return core.Color{}
	}

	emitted := material.EmittedBy(hit.Material, ray, hit)

	// Out of bounces: the path ends here without further indirect light
	if depth >= pt.config.MaxDepth {
		return emitted
	}

	scatter, didScatter := hit.Material.Scatter(ray, hit, sampler)
	if !didScatter {
		return emitted
	}

	if scatter.IsSpecular {
		return emitted.Add(pt.calculateSpecularColor(scatter, scene, sampler, depth))
	}
	return emitted.Add(pt.calculateDiffuseColor(ray, scatter, hit, scene, sampler, depth))
}

// calculateSpecularColor follows the concrete ray chosen by a specular material
func (pt *PathTracingIntegrator) calculateSpecularColor(scatter material.ScatterRecord, scene *scene.Scene, sampler core.Sampler, depth int) core.Color {
	incoming := pt.rayColor(scatter.SpecularRay, scene, sampler, depth+1)
	return scatter.Attenuation.MultiplyVec(incoming)
}

// calculateDiffuseColor samples a direction from the mixture of light and
// material densities and weights the incoming light by BRDF·cosθ over that density
func (pt *PathTracingIntegrator) calculateDiffuseColor(rayIn core.Ray, scatter material.ScatterRecord, hit *material.HitRecord, scene *scene.Scene, sampler core.Sampler, depth int) core.Color {
	if scatter.PDF == nil {
		return core.Color{}
	}

	mixture := samplingDensity(scene, hit.Point, scatter.PDF)
	direction := mixture.Generate(sampler)
	if direction.NearZero() {
		return core.Color{}
	}

	density := mixture.Value(direction)
	if !(density > minDensity) || math.IsInf(density, 0) {
		return core.Color{}
	}

	scattered := core.NewRayAtTime(hit.Point, direction, rayIn.Time)
	scatteringPDF := hit.Material.ScatteringPDF(rayIn, hit, scattered)
	if !(scatteringPDF > 0) {
		return core.Color{}
	}

	incoming := pt.rayColor(scattered, scene, sampler, depth+1)
	contribution := scatter.Attenuation.MultiplyVec(incoming).Multiply(scatteringPDF / density)
	if !contribution.IsFinite() {
		return core.Color{}
	}
	return contribution
}

// samplingDensity mixes one HitPDF per registered light with the material's own density.
// Every light contributes to the mixture's value even when another component generated the direction.
func samplingDensity(scene *scene.Scene, origin core.Point, materialPDF pdf.PDF) *pdf.MixPDF {
	if len(scene.Lights) == 0 {
		return pdf.NewMixPDF(materialPDF)
	}

	pdfs := make([]pdf.PDF, 0, len(scene.Lights)+1)
	for _, light := range scene.Lights {
		pdfs = append(pdfs, pdf.NewHitPDF(light, origin))
	}
	pdfs = append(pdfs, materialPDF)
	return pdf.NewMixPDF(pdfs...)
}

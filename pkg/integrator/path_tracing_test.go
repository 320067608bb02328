package integrator

import (
	"context"
	"math"
	"testing"

	"github.com/df07/go-pathtracer/pkg/camera"
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/pdf"
	"github.com/df07/go-pathtracer/pkg/scene"
)

// newTestScene preprocesses a scene around the given objects and lights
func newTestScene(t *testing.T, objects []geometry.Hittable, lights []geometry.Sampleable, background scene.Background) *scene.Scene {
	t.Helper()

	cam, err := camera.New(camera.DefaultConfig())
	if err != nil {
		t.Fatalf("camera.New() error = %v", err)
	}

	s := &scene.Scene{
		Camera:         cam,
		Objects:        objects,
		Lights:         lights,
		Background:     background,
		SamplingConfig: scene.DefaultSamplingConfig(),
		Width:          1,
		Height:         1,
	}
	if err := s.Preprocess(context.Background(), core.NewSeededSampler(1)); err != nil {
		t.Fatalf("Preprocess() error = %v", err)
	}
	return s
}

func averageColor(pt *PathTracingIntegrator, ray core.Ray, s *scene.Scene, seed int64, samples int) core.Color {
	sampler := core.NewSeededSampler(seed)
	sum := core.Color{}
	for i := 0; i < samples; i++ {
		sum = sum.Add(pt.RayColor(ray, s, sampler))
	}
	return sum.Multiply(1.0 / float64(samples))
}

func TestPathTracing_MissReturnsBackground(t *testing.T) {
	sphere := geometry.NewSphere(core.NewVec3(0, 0, -1), 0.5, material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5)))
	sky := scene.NewSkyBackground()
	s := newTestScene(t, []geometry.Hittable{sphere}, nil, sky)
	pt := NewPathTracingIntegrator(s.SamplingConfig)

	tests := []struct {
		name string
		dir  core.Vec3
		want core.Color
	}{
		{"straight up", core.NewVec3(0, 1, 0), core.NewVec3(0.5, 0.7, 1.0)},
		{"straight down", core.NewVec3(0, -1, 0), core.NewVec3(1, 1, 1)},
		{"horizon behind", core.NewVec3(0, 0, 1), core.NewVec3(0.75, 0.85, 1.0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := pt.RayColor(core.NewRay(core.NewVec3(0, 0, 0), tt.dir), s, core.NewSeededSampler(1))
			if got.Subtract(tt.want).Length() > 1e-9 {
				t.Errorf("RayColor() = %v, want %v", got, tt.want)
			}
		})
	}
}

// A grey diffuse sphere under the sky is lit but darker than the sky behind it
func TestPathTracing_DiffuseSphereUnderSky(t *testing.T) {
	sphere := geometry.NewSphere(core.NewVec3(0, 0, -1), 0.5, material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5)))
	sky := scene.NewSkyBackground()
	s := newTestScene(t, []geometry.Hittable{sphere}, nil, sky)
	pt := NewPathTracingIntegrator(s.SamplingConfig)

	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))
	skyColor := sky.Color(ray)

	first := averageColor(pt, ray, s, 1, 4000)
	second := averageColor(pt, ray, s, 2, 4000)

	for axis := 0; axis < 3; axis++ {
		if got := first.Axis(axis); got <= 0.1 || got >= skyColor.Axis(axis) {
			t.Errorf("channel %d = %v, want strictly between 0.1 and sky %v", axis, got, skyColor.Axis(axis))
		}
	}
	if diff := first.Subtract(second).Length(); diff > 0.05 {
		t.Errorf("means from different seeds differ by %v: %v vs %v", diff, first, second)
	}
}

// enclosure returns six inward-facing walls around the unit cube with a ceiling light
func enclosure() ([]geometry.Hittable, *geometry.FlipNormals) {
	white := material.NewLambertian(core.NewVec3(0.73, 0.73, 0.73))
	light := geometry.NewFlipNormals(geometry.NewXZRect(0.4, 0.6, 0.4, 0.6, 0.999, material.NewDiffuseLight(core.NewVec3(15, 15, 15))))

	walls := []geometry.Hittable{
		geometry.NewXZRect(0, 1, 0, 1, 0, white),
		geometry.NewFlipNormals(geometry.NewXZRect(0, 1, 0, 1, 1, white)),
		geometry.NewYZRect(0, 1, 0, 1, 0, white),
		geometry.NewFlipNormals(geometry.NewYZRect(0, 1, 0, 1, 1, white)),
		geometry.NewXYRect(0, 1, 0, 1, 0, white),
		geometry.NewFlipNormals(geometry.NewXYRect(0, 1, 0, 1, 1, white)),
		light,
	}
	return walls, light
}

func TestPathTracing_ClosedBoxDoesNotLeak(t *testing.T) {
	walls, light := enclosure()
	s := newTestScene(t, walls, []geometry.Sampleable{light}, scene.NewSolidBackground(core.Color{}))
	pt := NewPathTracingIntegrator(scene.SamplingConfig{SamplesPerPixel: 1, MaxDepth: 10})

	center := core.NewVec3(0.5, 0.5, 0.5)
	sampler := core.NewSeededSampler(3)

	t.Run("every interior ray hits a wall", func(t *testing.T) {
		for i := 0; i < 2000; i++ {
			dir := core.SampleOnUnitSphere(sampler.Get2D())
			if _, ok := s.World.Hit(core.NewRay(center, dir), 0.001, math.Inf(1)); !ok {
				t.Fatalf("ray in direction %v escaped the enclosure", dir)
			}
		}
	})

	t.Run("interior radiance is finite and lit", func(t *testing.T) {
		sum := core.Color{}
		for i := 0; i < 500; i++ {
			dir := core.SampleOnUnitSphere(sampler.Get2D())
			c := pt.RayColor(core.NewRay(center, dir), s, sampler)
			if !c.IsFinite() || c.X < 0 || c.Y < 0 || c.Z < 0 {
				t.Fatalf("RayColor() = %v, want finite non-negative", c)
			}
			sum = sum.Add(c)
		}
		if sum.Luminance() <= 0 {
			t.Error("enclosure interior is completely dark")
		}
	})

	t.Run("escaping primary ray is black", func(t *testing.T) {
		ray := core.NewRay(core.NewVec3(0.5, 0.5, -1), core.NewVec3(0, 0, -1))
		if got := pt.RayColor(ray, s, sampler); got != (core.Color{}) {
			t.Errorf("RayColor() = %v, want exact black", got)
		}
	})
}

// A fuzz-free mirror shows the light exactly where the law of reflection puts it
func TestPathTracing_MirrorHighlightFollowsReflection(t *testing.T) {
	mirror := geometry.NewXZRect(-10, 10, -10, 10, 0, material.NewMetal(core.NewVec3(0.9, 0.9, 0.9), 0))
	lightCenter := core.NewVec3(0, 2, -4)
	light := geometry.NewSphere(lightCenter, 0.2, material.NewDiffuseLight(core.NewVec3(4, 4, 4)))
	s := newTestScene(t, []geometry.Hittable{mirror, light}, []geometry.Sampleable{light}, scene.NewSolidBackground(core.Color{}))
	pt := NewPathTracingIntegrator(s.SamplingConfig)

	eye := core.NewVec3(0, 1, 0)
	// The reflection point is where the line to the light's mirror image crosses y = 0
	image := core.NewVec3(lightCenter.X, -lightCenter.Y, lightCenter.Z)
	toImage := image.Subtract(eye)
	reflectionPoint := eye.Add(toImage.Multiply(eye.Y / -toImage.Y))

	sampler := core.NewSeededSampler(5)
	want := core.NewVec3(3.6, 3.6, 3.6)
	if got := pt.RayColor(core.NewRay(eye, toImage), s, sampler); got.Subtract(want).Length() > 1e-9 {
		t.Fatalf("RayColor() toward predicted highlight = %v, want %v", got, want)
	}

	cam, err := camera.New(camera.Config{
		LookFrom:    eye,
		LookAt:      reflectionPoint,
		Up:          core.NewVec3(0, 1, 0),
		VFov:        30,
		AspectRatio: 1,
	})
	if err != nil {
		t.Fatalf("camera.New() error = %v", err)
	}

	const size = 21
	var sumX, sumY float64
	lit := 0
	for j := 0; j < size; j++ {
		for i := 0; i < size; i++ {
			ray := cam.GetRay((float64(i)+0.5)/size, (float64(j)+0.5)/size, sampler)
			if pt.RayColor(ray, s, sampler).Luminance() > 0 {
				sumX += float64(i)
				sumY += float64(j)
				lit++
			}
		}
	}

	if lit == 0 {
		t.Fatal("no highlight found")
	}
	center := float64(size-1) / 2
	if cx, cy := sumX/float64(lit), sumY/float64(lit); math.Abs(cx-center) > 0.5 || math.Abs(cy-center) > 0.5 {
		t.Errorf("highlight centroid = (%.2f, %.2f), want (%.1f, %.1f)", cx, cy, center, center)
	}
}

func TestPathTracing_DepthLimit(t *testing.T) {
	grey := geometry.NewSphere(core.NewVec3(0, 0, -1), 0.5, material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5)))
	lamp := geometry.NewSphere(core.NewVec3(0, 0, 1), 0.5, material.NewDiffuseLight(core.NewVec3(2, 3, 4)))
	s := newTestScene(t, []geometry.Hittable{grey, lamp}, nil, scene.NewSkyBackground())
	pt := NewPathTracingIntegrator(scene.SamplingConfig{SamplesPerPixel: 1, MaxDepth: 0})
	sampler := core.NewSeededSampler(1)

	if got := pt.RayColor(core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1)), s, sampler); got != (core.Color{}) {
		t.Errorf("diffuse hit at depth limit = %v, want black", got)
	}
	if got := pt.RayColor(core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, 1)), s, sampler); got != core.NewVec3(2, 3, 4) {
		t.Errorf("light hit at depth limit = %v, want emission only", got)
	}
}

type fixedPDF struct {
	value float64
}

var _ pdf.PDF = fixedPDF{}

func (f fixedPDF) Value(direction core.Vec3) float64       { return f.value }
func (f fixedPDF) Generate(sampler core.Sampler) core.Vec3 { return core.NewVec3(0, 0, 1) }

// degenerateMaterial scatters through a density that may be zero or not finite
type degenerateMaterial struct {
	density float64
}

func (d *degenerateMaterial) Scatter(rayIn core.Ray, hit *material.HitRecord, sampler core.Sampler) (material.ScatterRecord, bool) {
	return material.ScatterRecord{Attenuation: core.Splat(1), PDF: fixedPDF{value: d.density}}, true
}

func (d *degenerateMaterial) ScatteringPDF(rayIn core.Ray, hit *material.HitRecord, scattered core.Ray) float64 {
	return 1
}

func TestPathTracing_DegenerateDensityReturnsEmittedOnly(t *testing.T) {
	tests := []struct {
		name    string
		density float64
	}{
		{"zero", 0},
		{"tiny", 1e-300},
		{"NaN", math.NaN()},
		{"infinite", math.Inf(1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sphere := geometry.NewSphere(core.NewVec3(0, 0, -1), 0.5, &degenerateMaterial{density: tt.density})
			s := newTestScene(t, []geometry.Hittable{sphere}, nil, scene.NewSkyBackground())
			pt := NewPathTracingIntegrator(s.SamplingConfig)

			got := pt.RayColor(core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1)), s, core.NewSeededSampler(1))
			if got != (core.Color{}) {
				t.Errorf("RayColor() = %v, want black", got)
			}
		})
	}
}

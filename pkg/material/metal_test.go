package material

import (
	"math/rand"
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
)

func TestNewMetal_FuzznessClamp(t *testing.T) {
	tests := []struct {
		name             string
		inputFuzzness    float64
		expectedFuzzness float64
	}{
		{"Valid fuzzness 0.0", 0.0, 0.0},
		{"Valid fuzzness 0.5", 0.5, 0.5},
		{"Valid fuzzness 1.0", 1.0, 1.0},
		{"Clamp above 1.0", 1.5, 1.0},
		{"Clamp below 0.0", -0.5, 0.0},
	}

	albedo := core.NewVec3(0.8, 0.8, 0.8)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			metal := NewMetal(albedo, tt.inputFuzzness)
			if metal.Fuzzness != tt.expectedFuzzness {
				t.Errorf("Expected fuzzness %f, got %f", tt.expectedFuzzness, metal.Fuzzness)
			}
		})
	}
}

func TestMetal_PerfectReflection(t *testing.T) {
	albedo := core.NewVec3(0.9, 0.9, 0.9)
	metal := NewMetal(albedo, 0.0)
	sampler := core.NewRandomSampler(rand.New(rand.NewSource(42)))

	// Ray hitting surface at 45 degrees
	rayIn := core.NewRay(core.NewVec3(0, 1, 1), core.NewVec3(0, -1, -1).Normalize())
	hit := &HitRecord{
		Point:  core.NewVec3(0, 0, 0),
		Normal: core.NewVec3(0, 0, 1),
	}

	scatter, didScatter := metal.Scatter(rayIn, hit, sampler)
	if !didScatter {
		t.Fatal("Metal should scatter")
	}
	if !scatter.IsSpecular || scatter.PDF != nil {
		t.Errorf("expected specular record without PDF, got %+v", scatter)
	}

	expected := core.NewVec3(0, -1, 1).Normalize()
	actual := scatter.SpecularRay.Direction.Normalize()
	if actual.Subtract(expected).Length() > 1e-10 {
		t.Errorf("Perfect reflection failed: expected %v, got %v", expected, actual)
	}
	if scatter.Attenuation != albedo {
		t.Errorf("Attenuation should equal albedo: expected %v, got %v", albedo, scatter.Attenuation)
	}
	if scatter.SpecularRay.Origin != hit.Point {
		t.Errorf("scattered ray should start at hit point, got %v", scatter.SpecularRay.Origin)
	}
}

func TestMetal_GrazingReflectionIsAbsorbed(t *testing.T) {
	metal := NewMetal(core.NewVec3(1, 1, 1), 0.0)
	sampler := core.NewRandomSampler(rand.New(rand.NewSource(42)))
	hit := &HitRecord{Point: core.NewVec3(0, 0, 0), Normal: core.NewVec3(0, 1, 0)}

	tests := []struct {
		name string
		dir  core.Vec3
	}{
		// Reflection stays in the tangent plane: dot with normal is exactly 0
		{"tangent", core.NewVec3(1, 0, 0)},
		// Ray arriving from below the surface reflects downward
		{"from below", core.NewVec3(1, 1, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rayIn := core.NewRay(core.NewVec3(-1, 0, 0), tt.dir)
			scatter, didScatter := metal.Scatter(rayIn, hit, sampler)
			if didScatter {
				t.Errorf("expected absorption, got %+v", scatter)
			}
			if scatter.Attenuation != (core.Color{}) {
				t.Errorf("absorbed record should carry no attenuation, got %v", scatter.Attenuation)
			}
		})
	}
}

func TestMetal_FuzzyReflectionStaysAboveSurface(t *testing.T) {
	metal := NewMetal(core.NewVec3(1, 1, 1), 1.0)
	sampler := core.NewRandomSampler(rand.New(rand.NewSource(7)))
	hit := &HitRecord{Point: core.NewVec3(0, 0, 0), Normal: core.NewVec3(0, 1, 0)}
	rayIn := core.NewRay(core.NewVec3(-1, 1, 0), core.NewVec3(1, -1, 0))

	for i := 0; i < 1000; i++ {
		scatter, ok := metal.Scatter(rayIn, hit, sampler)
		if ok && scatter.SpecularRay.Direction.Dot(hit.Normal) <= 0 {
			t.Fatalf("scattered below surface: %v", scatter.SpecularRay.Direction)
		}
	}
}

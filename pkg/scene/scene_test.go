package scene

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/df07/go-pathtracer/pkg/camera"
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/google/go-cmp/cmp"
)

func TestBuiltInScenes_Preprocess(t *testing.T) {
	for _, info := range ListScenes() {
		t.Run(info.ID, func(t *testing.T) {
			s, err := New(info.ID)
			if err != nil {
				t.Fatalf("New(%q) error = %v", info.ID, err)
			}
			if err := s.Preprocess(context.Background(), core.NewSeededSampler(1)); err != nil {
				t.Fatalf("Preprocess() error = %v", err)
			}
			if s.World == nil {
				t.Fatal("Preprocess() left World nil")
			}
			if s.GetPrimitiveCount() < len(s.Objects) {
				t.Errorf("GetPrimitiveCount() = %d, want at least %d", s.GetPrimitiveCount(), len(s.Objects))
			}

			// The primary ray through the image center must land on something or the background
			ray := s.Camera.GetRay(0.5, 0.5, core.NewSeededSampler(1))
			if hit, ok := s.World.Hit(ray, 0.001, math.Inf(1)); ok && !hit.Normal.IsFinite() {
				t.Errorf("center ray hit with non-finite normal %v", hit.Normal)
			}
		})
	}
}

func TestCornellScenes_CameraLooksIntoBox(t *testing.T) {
	for _, info := range ListScenes() {
		if info.Group != groupCornell {
			continue
		}
		t.Run(info.ID, func(t *testing.T) {
			s, err := New(info.ID)
			if err != nil {
				t.Fatalf("New(%q) error = %v", info.ID, err)
			}
			if err := s.Preprocess(context.Background(), core.NewSeededSampler(1)); err != nil {
				t.Fatalf("Preprocess() error = %v", err)
			}

			if got := s.BackgroundColor(core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0))); got != (core.Color{}) {
				t.Errorf("background = %v, want black", got)
			}

			// The image corners see past the open front; the middle of the frame looks into the box
			sampler := core.NewSeededSampler(2)
			for i := 0; i < 200; i++ {
				ray := s.Camera.GetRay(0.3+0.4*sampler.Get1D(), 0.3+0.4*sampler.Get1D(), sampler)
				if _, ok := s.World.Hit(ray, 0.001, math.Inf(1)); !ok {
					t.Fatalf("camera ray %v escaped the box", ray)
				}
			}
		})
	}
}

func TestCornellMicrofacetScene_PolygonLightSurvivesEverySeed(t *testing.T) {
	// Straight up from below the hexagon: the light at y=554 sits just under the ceiling
	ray := core.NewRay(core.NewVec3(278, 500, 280), core.NewVec3(0, 1, 0))

	for seed := int64(1); seed <= 20; seed++ {
		s, err := NewCornellMicrofacetScene()
		if err != nil {
			t.Fatalf("NewCornellMicrofacetScene() error = %v", err)
		}
		if err := s.Preprocess(context.Background(), core.NewSeededSampler(seed)); err != nil {
			t.Fatalf("Preprocess() error = %v", err)
		}

		hit, ok := s.World.Hit(ray, 0.001, math.Inf(1))
		if !ok {
			t.Fatalf("seed %d: ray toward the light hit nothing", seed)
		}
		if math.Abs(hit.T-54) > 1e-9 {
			t.Errorf("seed %d: hit at t=%f, want the light at t=54", seed, hit.T)
		}
		if _, isLight := hit.Material.(*material.DiffuseLight); !isLight {
			t.Errorf("seed %d: hit %T, want *material.DiffuseLight", seed, hit.Material)
		}
	}
}

func TestNew_UnknownScene(t *testing.T) {
	if _, err := New("does-not-exist"); !errors.Is(err, ErrUnknownScene) {
		t.Errorf("New() error = %v, want ErrUnknownScene", err)
	}
}

// unbounded is a Hittable without a bounding box
type unbounded struct{}

func (unbounded) Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool) { return nil, false }
func (unbounded) BoundingBox() *core.AABB                                          { return nil }

func TestPreprocess_Validation(t *testing.T) {
	cam, err := camera.New(camera.DefaultConfig())
	if err != nil {
		t.Fatalf("camera.New() error = %v", err)
	}
	sphere := geometry.NewSphere(core.NewVec3(0, 0, -1), 0.5, material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5)))

	valid := func() *Scene {
		return &Scene{
			Camera:         cam,
			Objects:        []geometry.Hittable{sphere},
			SamplingConfig: DefaultSamplingConfig(),
			Width:          4,
			Height:         2,
		}
	}

	tests := []struct {
		name    string
		mutate  func(s *Scene)
		wantErr error
	}{
		{"valid", func(s *Scene) {}, nil},
		{"no camera", func(s *Scene) { s.Camera = nil }, ErrInvalidScene},
		{"zero width", func(s *Scene) { s.Width = 0 }, ErrInvalidScene},
		{"negative height", func(s *Scene) { s.Height = -1 }, ErrInvalidScene},
		{"no samples", func(s *Scene) { s.SamplingConfig.SamplesPerPixel = 0 }, ErrInvalidScene},
		{"no depth", func(s *Scene) { s.SamplingConfig.MaxDepth = 0 }, ErrInvalidScene},
		{"no objects", func(s *Scene) { s.Objects = nil }, ErrInvalidScene},
		{"nil light", func(s *Scene) { s.Lights = []geometry.Sampleable{nil} }, ErrInvalidScene},
		{"unbounded object", func(s *Scene) { s.Add(unbounded{}) }, geometry.ErrNoBoundingBox},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := valid()
			tt.mutate(s)

			err := s.Preprocess(context.Background(), core.NewSeededSampler(1))
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("Preprocess() error = %v", err)
				}
				if _, ok := s.Background.(*SolidBackground); !ok {
					t.Errorf("missing background defaulted to %T, want *SolidBackground", s.Background)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Preprocess() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestAddLight_RegistersVisibleObject(t *testing.T) {
	s := &Scene{}
	light := geometry.NewXZRect(0, 1, 0, 1, 2, material.NewDiffuseLight(core.NewVec3(4, 4, 4)))
	s.AddLight(light)

	if len(s.Objects) != 1 || s.Objects[0] != geometry.Hittable(light) {
		t.Errorf("Objects = %v, want the light", s.Objects)
	}
	if len(s.Lights) != 1 || s.Lights[0] != geometry.Sampleable(light) {
		t.Errorf("Lights = %v, want the light", s.Lights)
	}
}

func TestGradientBackground(t *testing.T) {
	sky := NewSkyBackground()
	tests := []struct {
		name string
		dir  core.Vec3
		want core.Color
	}{
		{"zenith", core.NewVec3(0, 5, 0), core.NewVec3(0.5, 0.7, 1.0)},
		{"nadir", core.NewVec3(0, -2, 0), core.NewVec3(1, 1, 1)},
		{"horizon", core.NewVec3(3, 0, 0), core.NewVec3(0.75, 0.85, 1.0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := sky.Color(core.NewRay(core.Vec3{}, tt.dir))
			if got.Subtract(tt.want).Length() > 1e-12 {
				t.Errorf("Color() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestListSceneGroups(t *testing.T) {
	groups := ListSceneGroups()

	var names []string
	total := 0
	for _, g := range groups {
		names = append(names, g.Name)
		total += len(g.Scenes)
	}

	if diff := cmp.Diff([]string{groupCornell, groupOpen}, names); diff != "" {
		t.Errorf("group names diff (-want +got):\n%s", diff)
	}
	if total != len(builtInScenes) {
		t.Errorf("grouped %d scenes, want %d", total, len(builtInScenes))
	}
}

func TestTitleCase(t *testing.T) {
	testCases := []struct {
		input    string
		expected string
	}{
		{"cornell-disk", "Cornell Disk"},
		{"dragon_gold", "Dragon Gold"},
		{"simple", "Simple"},
		{"UPPER-case", "Upper Case"},
		{"", ""},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			if result := titleCase(tc.input); result != tc.expected {
				t.Errorf("titleCase(%q) = %q, want %q", tc.input, result, tc.expected)
			}
		})
	}
}

package camera

import (
	"errors"
	"math"
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
)

func TestNew_Validation(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"zero fov", func(c *Config) { c.VFov = 0 }},
		{"fov 180", func(c *Config) { c.VFov = 180 }},
		{"zero aspect", func(c *Config) { c.AspectRatio = 0 }},
		{"negative aperture", func(c *Config) { c.Aperture = -1 }},
		{"negative focus", func(c *Config) { c.FocusDistance = -2 }},
		{"reversed shutter", func(c *Config) { c.Time0, c.Time1 = 1, 0 }},
		{"look at self", func(c *Config) { c.LookAt = c.LookFrom }},
		{"up along view", func(c *Config) { c.Up = core.NewVec3(0, 0, 1) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := DefaultConfig()
			tt.modify(&config)
			if _, err := New(config); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("error = %v, want ErrInvalidConfig", err)
			}
		})
	}

	if _, err := New(DefaultConfig()); err != nil {
		t.Errorf("default config rejected: %v", err)
	}
}

func TestCamera_GetRay(t *testing.T) {
	config := DefaultConfig()
	config.AspectRatio = 1
	cam, err := New(config)
	if err != nil {
		t.Fatal(err)
	}
	sampler := core.NewSeededSampler(1)

	tests := []struct {
		name    string
		s, t    float64
		wantDir core.Vec3
	}{
		// 90° fov and unit focus distance put the viewport edges at ±1
		{"center", 0.5, 0.5, core.NewVec3(0, 0, -1)},
		{"bottom left", 0, 0, core.NewVec3(-1, -1, -1)},
		{"top right", 1, 1, core.NewVec3(1, 1, -1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ray := cam.GetRay(tt.s, tt.t, sampler)
			if ray.Origin != config.LookFrom {
				t.Errorf("origin = %v, want %v", ray.Origin, config.LookFrom)
			}
			if ray.Direction.Subtract(tt.wantDir).Length() > 1e-9 {
				t.Errorf("direction = %v, want %v", ray.Direction, tt.wantDir)
			}
		})
	}

	if got := cam.Forward(); got.Subtract(core.NewVec3(0, 0, -1)).Length() > 1e-12 {
		t.Errorf("Forward() = %v", got)
	}
}

func TestCamera_DepthOfFieldKeepsFocusPlaneSharp(t *testing.T) {
	config := Config{
		LookFrom:      core.NewVec3(0, 0, 0),
		LookAt:        core.NewVec3(0, 0, -1),
		Up:            core.NewVec3(0, 1, 0),
		VFov:          40,
		AspectRatio:   1,
		Aperture:      0.5,
		FocusDistance: 4,
	}
	cam, err := New(config)
	if err != nil {
		t.Fatal(err)
	}

	sampler := core.NewSeededSampler(3)
	var first core.Point
	for i := 0; i < 100; i++ {
		ray := cam.GetRay(0.3, 0.6, sampler)
		if ray.Origin.Length() > 0.25+1e-9 {
			t.Fatalf("origin %v outside the lens", ray.Origin)
		}
		// Every lens sample passes through the same point on the focus plane
		focus := ray.At(1)
		if i == 0 {
			first = focus
			if math.Abs(focus.Z+4) > 1e-9 {
				t.Fatalf("focus point %v not on z = -4", focus)
			}
		} else if focus.Subtract(first).Length() > 1e-9 {
			t.Fatalf("focus point %v differs from %v", focus, first)
		}
	}
}

func TestCamera_ShutterTime(t *testing.T) {
	config := DefaultConfig()
	config.Time0, config.Time1 = 2, 3
	cam, err := New(config)
	if err != nil {
		t.Fatal(err)
	}

	sampler := core.NewSeededSampler(9)
	for i := 0; i < 100; i++ {
		if ray := cam.GetRay(0.5, 0.5, sampler); ray.Time < 2 || ray.Time >= 3 {
			t.Fatalf("ray time %f outside shutter [2, 3)", ray.Time)
		}
	}

	still, _ := New(DefaultConfig())
	if ray := still.GetRay(0.5, 0.5, sampler); ray.Time != 0 {
		t.Errorf("ray time = %f, want 0 without a shutter interval", ray.Time)
	}
}

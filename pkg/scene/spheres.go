package scene

import (
	"fmt"

	"github.com/df07/go-pathtracer/pkg/camera"
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
)

// newSkyScene creates an open scene under the sky gradient seen through a
// 90° camera at the origin looking down -z
func newSkyScene(width, height int) (*Scene, error) {
	cam, err := camera.New(camera.Config{
		LookFrom:    core.NewVec3(0, 0, 0),
		LookAt:      core.NewVec3(0, 0, -1),
		Up:          core.NewVec3(0, 1, 0),
		VFov:        90,
		AspectRatio: float64(width) / float64(height),
	})
	if err != nil {
		return nil, fmt.Errorf("while building sky camera: %w", err)
	}

	return &Scene{
		Camera:         cam,
		Background:     NewSkyBackground(),
		SamplingConfig: DefaultSamplingConfig(),
		Width:          width,
		Height:         height,
	}, nil
}

// NewSphereScene creates a single grey diffuse sphere lit only by the sky
func NewSphereScene() (*Scene, error) {
	s, err := newSkyScene(200, 100)
	if err != nil {
		return nil, err
	}

	s.Add(geometry.NewSphere(core.NewVec3(0, 0, -1), 0.5, material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5))))
	return s, nil
}

// NewSpheresScene creates three spheres resting on a huge brushed-metal sphere
func NewSpheresScene() (*Scene, error) {
	s, err := newSkyScene(200, 100)
	if err != nil {
		return nil, err
	}

	s.Add(
		geometry.NewSphere(core.NewVec3(0, 0, -1), 0.5, material.NewLambertian(core.NewVec3(0.1, 0.2, 0.5))),
		geometry.NewSphere(core.NewVec3(0, -100.5, -1), 100, material.NewMetal(core.NewVec3(0.8, 0.8, 0), 0.3)),
		geometry.NewSphere(core.NewVec3(-1, 0, -1), 0.5, material.NewDielectric(1.5)),
		geometry.NewSphere(core.NewVec3(1, 0, -1), 0.5, material.NewLambertian(core.NewVec3(1, 0, 0))),
	)
	return s, nil
}

// NewMotionScene creates a field of small bouncing spheres blurred over the shutter interval
func NewMotionScene() (*Scene, error) {
	const width, height = 300, 200
	cam, err := camera.New(camera.Config{
		LookFrom:      core.NewVec3(13, 2, 3),
		LookAt:        core.NewVec3(0, 0, 0),
		Up:            core.NewVec3(0, 1, 0),
		VFov:          20,
		AspectRatio:   float64(width) / float64(height),
		Aperture:      0.1,
		FocusDistance: 10,
		Time0:         0,
		Time1:         1,
	})
	if err != nil {
		return nil, fmt.Errorf("while building motion camera: %w", err)
	}

	s := &Scene{
		Camera:         cam,
		Background:     NewSkyBackground(),
		SamplingConfig: DefaultSamplingConfig(),
		Width:          width,
		Height:         height,
	}

	ground := material.NewTexturedLambertian(material.NewCheckerTexture(
		material.NewConstantTexture(core.NewVec3(0.2, 0.3, 0.1)),
		material.NewConstantTexture(core.NewVec3(0.9, 0.9, 0.9)),
	))
	s.Add(geometry.NewSphere(core.NewVec3(0, -1000, 0), 1000, ground))

	// Deterministic layout so every render of this scene is the same scene
	for a := -5; a < 5; a++ {
		for b := -5; b < 5; b++ {
			center := core.NewVec3(float64(a)+0.3*float64((b+7)%3), 0.2, float64(b)+0.3*float64((a+7)%3))
			if center.Subtract(core.NewVec3(4, 0.2, 0)).Length() <= 0.9 {
				continue
			}

			switch (a*7 + b*3 + 100) % 5 {
			case 0, 1, 2:
				albedo := core.NewVec3(0.2+0.15*float64((a+5)%5), 0.3+0.1*float64((b+5)%5), 0.4)
				bounce := center.Add(core.NewVec3(0, 0.1*float64((a+b+10)%5), 0))
				s.Add(geometry.NewMovingSphere(center, bounce, 0, 1, 0.2, material.NewLambertian(albedo)))
			case 3:
				s.Add(geometry.NewSphere(center, 0.2, material.NewMetal(core.NewVec3(0.7, 0.6, 0.5), 0.1*float64((a+5)%4))))
			default:
				s.Add(geometry.NewSphere(center, 0.2, material.NewDielectric(1.5)))
			}
		}
	}

	s.Add(
		geometry.NewSphere(core.NewVec3(0, 1, 0), 1.0, material.NewDielectric(1.5)),
		geometry.NewSphere(core.NewVec3(-4, 1, 0), 1.0, material.NewLambertian(core.NewVec3(0.4, 0.2, 0.1))),
		geometry.NewSphere(core.NewVec3(4, 1, 0), 1.0, material.NewMetal(core.NewVec3(0.7, 0.6, 0.5), 0.0)),
	)
	return s, nil
}

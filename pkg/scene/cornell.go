package scene

import (
	"fmt"

	"github.com/df07/go-pathtracer/pkg/camera"
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
)

// Cornell box dimensions (standard 555x555x555 units)
const boxSize = 555.0

var (
	cornellRed   = core.NewVec3(0.65, 0.05, 0.05)
	cornellWhite = core.NewVec3(0.73, 0.73, 0.73)
	cornellGreen = core.NewVec3(0.12, 0.45, 0.15)
	cornellBlue  = core.NewVec3(0.05, 0.05, 0.73)
	cornellLight = core.NewVec3(15, 15, 15)
)

// newCornellBox creates the camera and five inward-facing walls shared by every
// Cornell variant. The side facing the camera is left open.
func newCornellBox(backWall core.Color) (*Scene, error) {
	cam, err := camera.New(camera.Config{
		LookFrom:    core.NewVec3(278, 278, -800), // Position camera outside the box looking in
		LookAt:      core.NewVec3(278, 278, 0),
		Up:          core.NewVec3(0, 1, 0),
		VFov:        40.0,
		AspectRatio: 200.0 / 150.0,
	})
	if err != nil {
		return nil, fmt.Errorf("while building Cornell camera: %w", err)
	}

	s := &Scene{
		Camera:         cam,
		Background:     NewSolidBackground(core.Color{}), // Closed box: nothing comes from outside
		SamplingConfig: DefaultSamplingConfig(),
		Width:          200,
		Height:         150,
	}

	red := material.NewLambertian(cornellRed)
	white := material.NewLambertian(cornellWhite)
	green := material.NewLambertian(cornellGreen)

	leftWall := geometry.NewFlipNormals(geometry.NewYZRect(0, boxSize, 0, boxSize, boxSize, green))
	rightWall := geometry.NewYZRect(0, boxSize, 0, boxSize, 0, red)
	ceiling := geometry.NewFlipNormals(geometry.NewXZRect(0, boxSize, 0, boxSize, boxSize, white))
	floor := geometry.NewXZRect(0, boxSize, 0, boxSize, 0, white)
	back := geometry.NewFlipNormals(geometry.NewXYRect(0, boxSize, 0, boxSize, boxSize, material.NewLambertian(backWall)))

	s.Add(leftWall, rightWall, ceiling, floor, back)
	return s, nil
}

// NewCornellScene creates the classic Cornell box with a rectangular ceiling light and two boxes
func NewCornellScene() (*Scene, error) {
	s, err := newCornellBox(cornellWhite)
	if err != nil {
		return nil, err
	}

	// Light faces down into the box
	s.AddLight(geometry.NewFlipNormals(geometry.NewXZRect(213, 343, 227, 332, 554, material.NewDiffuseLight(cornellLight))))

	white := material.NewLambertian(cornellWhite)
	s.Add(
		geometry.NewBox(core.NewVec3(130, 0, 65), core.NewVec3(295, 165, 230), white),
		geometry.NewBox(core.NewVec3(265, 0, 295), core.NewVec3(430, 330, 460), white),
	)
	return s, nil
}

// NewCornellDiskScene lights the box with a disk and turns both boxes about y
func NewCornellDiskScene() (*Scene, error) {
	s, err := newCornellBox(cornellBlue)
	if err != nil {
		return nil, err
	}

	s.AddLight(geometry.NewFlipNormals(geometry.NewXZDisk(core.NewVec3(278, 554, 280), 80, material.NewDiffuseLight(cornellLight))))

	white := material.NewLambertian(cornellWhite)
	s.Add(
		geometry.NewTranslate(
			geometry.NewRotateY(geometry.NewBox(core.NewVec3(0, 0, 0), core.NewVec3(165, 165, 165), white), -18),
			core.NewVec3(130, 0, 65)),
		geometry.NewTranslate(
			geometry.NewRotateY(geometry.NewBox(core.NewVec3(0, 0, 0), core.NewVec3(165, 330, 165), white), 15),
			core.NewVec3(265, 0, 295)),
	)
	return s, nil
}

// NewCornellRotatedScene tumbles both boxes about two axes each
func NewCornellRotatedScene() (*Scene, error) {
	s, err := newCornellBox(cornellBlue)
	if err != nil {
		return nil, err
	}

	s.AddLight(geometry.NewFlipNormals(geometry.NewXZDisk(core.NewVec3(278, 554, 280), 80, material.NewDiffuseLight(cornellLight))))

	white := material.NewLambertian(cornellWhite)
	s.Add(tumbledBoxes(white, white)...)
	return s, nil
}

// tumbledBoxes returns the short and tall box turned about two axes and lifted off the floor
func tumbledBoxes(short, tall material.Material) []geometry.Hittable {
	return []geometry.Hittable{
		geometry.NewTranslate(
			geometry.NewRotateX(geometry.NewRotateY(geometry.NewBox(core.NewVec3(0, 0, 0), core.NewVec3(165, 165, 165), short), -45), -30),
			core.NewVec3(130, 200, 65)),
		geometry.NewTranslate(
			geometry.NewRotateZ(geometry.NewRotateY(geometry.NewBox(core.NewVec3(0, 0, 0), core.NewVec3(165, 330, 165), tall), 30), 20),
			core.NewVec3(265, 60, 295)),
	}
}

// NewCornellMicrofacetScene fills the box with glossy microfacet spheres and boxes
// under a hexagonal polygon light
func NewCornellMicrofacetScene() (*Scene, error) {
	s, err := newCornellBox(cornellBlue)
	if err != nil {
		return nil, err
	}

	hexagon := [][2]float64{{290, 431}, {165, 330}, {115, 212}, {306, 125}, {403, 220}, {381, 343}}
	light, err := geometry.NewXZPolygon(hexagon, 554, material.NewDiffuseLight(cornellLight))
	if err != nil {
		return nil, fmt.Errorf("while building polygon light: %w", err)
	}
	s.AddLight(geometry.NewFlipNormals(light))

	glossy := func(albedo core.Color, roughness float64) (*material.Microfacet, error) {
		return material.NewMicrofacet(material.NewConstantTexture(albedo), roughness, material.DefaultReflectance)
	}
	yellow, err := glossy(core.NewVec3(0.9, 0.9, 0.05), 0.3)
	if err != nil {
		return nil, err
	}
	red, err := glossy(cornellRed, 0.2)
	if err != nil {
		return nil, err
	}
	white, err := glossy(cornellWhite, 0.6)
	if err != nil {
		return nil, err
	}
	blue, err := glossy(cornellBlue, 0.15)
	if err != nil {
		return nil, err
	}

	s.Add(
		geometry.NewSphere(core.NewVec3(420, 350, 80), 50, red),
		geometry.NewSphere(core.NewVec3(300, 200, 40), 20, blue),
	)
	s.Add(tumbledBoxes(white, yellow)...)
	return s, nil
}

// NewPyramidScene adds a rotated pyramid hanging above the tumbled boxes
func NewPyramidScene() (*Scene, error) {
	s, err := newCornellBox(cornellBlue)
	if err != nil {
		return nil, err
	}

	s.AddLight(geometry.NewFlipNormals(geometry.NewXZRect(213, 343, 227, 332, 554, material.NewDiffuseLight(cornellLight))))

	white := material.NewLambertian(cornellWhite)
	blue := material.NewLambertian(cornellBlue)
	s.Add(tumbledBoxes(white, white)...)

	pyramid := geometry.NewPyramid(
		core.NewVec3(278, 0, 227), core.NewVec3(213, 0, 332), core.NewVec3(343, 0, 332), core.NewVec3(278, 150, 280),
		blue)
	s.Add(geometry.NewTranslate(geometry.NewRotateZ(geometry.NewRotateY(pyramid, 30), 20), core.NewVec3(0, 310, 0)))
	return s, nil
}

// NewShapesScene shows a metal pyramid, a cylinder and a checkered sphere under a cylindrical lamp
func NewShapesScene() (*Scene, error) {
	s, err := newCornellBox(cornellWhite)
	if err != nil {
		return nil, err
	}

	// The lamp pokes through the ceiling so only its lower cap shows
	s.Add(geometry.NewCylinder(core.NewVec3(278, 556, 280), 4, 80, material.NewDiffuseLight(cornellLight)))

	yellow := material.NewMetal(core.NewVec3(0.9, 0.9, 0.05), 0.3)
	blue := material.NewLambertian(core.NewVec3(0.12, 0.15, 0.85))
	checker := material.NewTexturedLambertian(material.NewCheckerTexture(
		material.NewConstantTexture(core.NewVec3(0.2, 0.3, 0.1)),
		material.NewConstantTexture(core.NewVec3(0.9, 0.9, 0.9)),
	))

	s.Add(
		geometry.NewPyramid(core.NewVec3(278, 0, 227), core.NewVec3(213, 0, 332), core.NewVec3(343, 0, 332), core.NewVec3(278, 150, 280), yellow),
		geometry.NewCylinder(core.NewVec3(100, 100, 100), 200, 50, blue),
		geometry.NewSphere(core.NewVec3(370, 370, 370), 70, checker),
	)
	return s, nil
}

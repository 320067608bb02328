package scene

import (
	"fmt"

	"github.com/df07/go-pathtracer/pkg/camera"
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
)

// NewMeshScene creates a scene showcasing triangle mesh geometry
func NewMeshScene() (*Scene, error) {
	const width, height = 400, 225
	cam, err := camera.New(camera.Config{
		LookFrom:    core.NewVec3(0, 2, 6), // Position camera to see the meshes
		LookAt:      core.NewVec3(0, 1, 0),
		Up:          core.NewVec3(0, 1, 0),
		VFov:        45.0,
		AspectRatio: float64(width) / float64(height),
		Aperture:    0.02, // Slight depth of field
	})
	if err != nil {
		return nil, fmt.Errorf("while building mesh camera: %w", err)
	}

	s := &Scene{
		Camera:         cam,
		Background:     NewSkyBackground(),
		SamplingConfig: DefaultSamplingConfig(),
		Width:          width,
		Height:         height,
	}

	// Overhead light
	s.AddLight(geometry.NewSphere(core.NewVec3(2, 6, 3), 1.5, material.NewDiffuseLight(core.NewVec3(12.0, 11.0, 10.0))))

	ground := material.NewTexturedLambertian(material.NewCheckerTexture(
		material.NewConstantTexture(core.NewVec3(0.2, 0.2, 0.2)),
		material.NewConstantTexture(core.NewVec3(0.8, 0.8, 0.8)),
	))
	s.Add(geometry.NewXZRect(-50, 50, -50, 50, 0, ground))

	// Mesh BVH axis choices come from a fixed seed so the scene is reproducible
	sampler := core.NewSeededSampler(1)

	octahedron, err := createOctahedronMesh(core.NewVec3(0, 0, 0), 1.0, material.NewLambertian(core.NewVec3(0.2, 0.3, 0.8)), sampler)
	if err != nil {
		return nil, err
	}
	s.Add(geometry.NewTranslate(geometry.NewRotateY(octahedron, 30), core.NewVec3(0, 1, 0)))

	s.Add(
		geometry.NewSphere(core.NewVec3(-2, 0.6, 0.5), 0.6, material.NewDielectric(1.5)),
		geometry.NewSphere(core.NewVec3(2, 0.6, 0.5), 0.6, material.NewMetal(core.NewVec3(0.8, 0.6, 0.2), 0.05)),
	)
	return s, nil
}

// createOctahedronMesh creates an octahedron whose faces wind counter-clockwise seen from outside
func createOctahedronMesh(center core.Point, radius float64, mat material.Material, sampler core.Sampler) (*geometry.TriangleMesh, error) {
	vertices := []core.Point{
		center.Add(core.NewVec3(radius, 0, 0)),  // 0: +x
		center.Add(core.NewVec3(-radius, 0, 0)), // 1: -x
		center.Add(core.NewVec3(0, radius, 0)),  // 2: +y
		center.Add(core.NewVec3(0, -radius, 0)), // 3: -y
		center.Add(core.NewVec3(0, 0, radius)),  // 4: +z
		center.Add(core.NewVec3(0, 0, -radius)), // 5: -z
	}

	// One face per octant; odd octants swap two corners to keep the winding outward
	var faces []int
	for _, sx := range []int{1, -1} {
		for _, sy := range []int{1, -1} {
			for _, sz := range []int{1, -1} {
				x, y, z := axisVertex(0, sx), axisVertex(2, sy), axisVertex(4, sz)
				if sx*sy*sz < 0 {
					y, z = z, y
				}
				faces = append(faces, x, y, z)
			}
		}
	}

	mesh, err := geometry.NewTriangleMesh(vertices, faces, mat, sampler)
	if err != nil {
		return nil, fmt.Errorf("while building octahedron: %w", err)
	}
	return mesh, nil
}

func axisVertex(positive, sign int) int {
	if sign > 0 {
		return positive
	}
	return positive + 1
}

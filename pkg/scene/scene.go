package scene

import (
	"context"
	"errors"
	"fmt"

	"github.com/df07/go-pathtracer/pkg/camera"
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// ErrInvalidScene is returned by Preprocess when a scene cannot be rendered
var ErrInvalidScene = errors.New("invalid scene")

// Scene contains all the elements needed for rendering
type Scene struct {
	Camera         *camera.Camera
	Objects        []geometry.Hittable   // Objects in the scene
	Lights         []geometry.Sampleable // Emitters sampled explicitly; they must also be in Objects to be visible
	Background     Background            // Radiance for rays that escape the scene
	SamplingConfig SamplingConfig
	Width          int // Image width in pixels
	Height         int // Image height in pixels

	// World is the acceleration structure built by Preprocess
	World geometry.Hittable
}

// SamplingConfig contains rendering configuration
type SamplingConfig struct {
	SamplesPerPixel int // Number of rays per pixel
	MaxDepth        int // Maximum ray bounce depth
}

// DefaultSamplingConfig returns the sampling used when a scene does not pick its own
func DefaultSamplingConfig() SamplingConfig {
	return SamplingConfig{
		SamplesPerPixel: 100,
		MaxDepth:        50,
	}
}

// Preprocess validates the scene and builds its BVH. It must complete before
// any rendering task reads the scene; afterwards the scene is read-only.
func (s *Scene) Preprocess(ctx context.Context, sampler core.Sampler) error {
	tracer := otel.Tracer("go-pathtracer/scene")
	var span trace.Span
	_, span = tracer.Start(ctx, "Scene.Preprocess")
	defer span.End()

	span.SetAttributes(
		attribute.Int("objects", len(s.Objects)),
		attribute.Int("lights", len(s.Lights)),
	)

	if err := s.validate(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	bvh, err := geometry.NewBVHNode(s.Objects, sampler)
	if err != nil {
		err = fmt.Errorf("while building BVH: %w", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	s.World = bvh

	if s.Background == nil {
		s.Background = NewSolidBackground(core.Color{})
	}

	return nil
}

func (s *Scene) validate() error {
	switch {
	case s.Camera == nil:
		return fmt.Errorf("%w: no camera", ErrInvalidScene)
	case s.Width <= 0 || s.Height <= 0:
		return fmt.Errorf("%w: image size %dx%d", ErrInvalidScene, s.Width, s.Height)
	case s.SamplingConfig.SamplesPerPixel <= 0:
		return fmt.Errorf("%w: samples per pixel %d", ErrInvalidScene, s.SamplingConfig.SamplesPerPixel)
	case s.SamplingConfig.MaxDepth <= 0:
		return fmt.Errorf("%w: max depth %d", ErrInvalidScene, s.SamplingConfig.MaxDepth)
	case len(s.Objects) == 0:
		return fmt.Errorf("%w: no objects", ErrInvalidScene)
	}

	for i, light := range s.Lights {
		if light == nil {
			return fmt.Errorf("%w: light %d is nil", ErrInvalidScene, i)
		}
	}
	return nil
}

// Add appends objects to the scene
func (s *Scene) Add(objects ...geometry.Hittable) {
	s.Objects = append(s.Objects, objects...)
}

// AddLight adds an emitter both as a visible object and as an importance-sampling target
func (s *Scene) AddLight(light geometry.Sampleable) {
	s.Objects = append(s.Objects, light)
	s.Lights = append(s.Lights, light)
}

// GetPrimitiveCount returns the total number of primitive objects in the scene
func (s *Scene) GetPrimitiveCount() int {
	count := 0
	for _, object := range s.Objects {
		switch obj := object.(type) {
		case *geometry.TriangleMesh:
			count += obj.TriangleCount()
		default:
			count++
		}
	}
	return count
}

// BackgroundColor returns the radiance carried by a ray that hits nothing
func (s *Scene) BackgroundColor(ray core.Ray) core.Color {
	if s.Background == nil {
		return core.Color{}
	}
	return s.Background.Color(ray)
}

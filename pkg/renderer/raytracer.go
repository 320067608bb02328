package renderer

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"time"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/integrator"
	"github.com/df07/go-pathtracer/pkg/scene"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

// ErrSceneNotPreprocessed is returned when rendering a scene whose BVH has not been built
var ErrSceneNotPreprocessed = errors.New("scene has not been preprocessed")

// Config contains rendering configuration. Zero sampling values fall back to the scene's own.
type Config struct {
	SamplesPerPixel int   // Number of rays per pixel
	MaxDepth        int   // Maximum ray bounce depth
	NumWorkers      int   // Rows rendered concurrently; 0 means one per CPU
	Seed            int64 // Base seed; row y draws from its own stream seeded Seed+y
}

// DefaultConfig returns the configuration used by the command line
func DefaultConfig() Config {
	return Config{
		NumWorkers: runtime.NumCPU(),
		Seed:       42,
	}
}

// Raytracer handles the rendering process
type Raytracer struct {
	scene      *scene.Scene
	integrator integrator.Integrator
	config     Config
	sampling   scene.SamplingConfig
	logger     core.Logger
}

// NewRaytracer creates a raytracer over a preprocessed scene
func NewRaytracer(s *scene.Scene, config Config, logger core.Logger) *Raytracer {
	sampling := s.SamplingConfig
	if config.SamplesPerPixel > 0 {
		sampling.SamplesPerPixel = config.SamplesPerPixel
	}
	if config.MaxDepth > 0 {
		sampling.MaxDepth = config.MaxDepth
	}
	if config.NumWorkers <= 0 {
		config.NumWorkers = runtime.NumCPU()
	}

	return &Raytracer{
		scene:      s,
		integrator: integrator.NewPathTracingIntegrator(sampling),
		config:     config,
		sampling:   sampling,
		logger:     logger,
	}
}

// Render traces every pixel of the scene and returns the linear frame.
// Rows are independent tasks, so the result does not depend on NumWorkers.
func (rt *Raytracer) Render(ctx context.Context) (*Frame, RenderStats, error) {
	tracer := otel.Tracer("go-pathtracer/renderer")
	var span trace.Span
	ctx, span = tracer.Start(ctx, "Raytracer.Render")
	defer span.End()

	width, height := rt.scene.Width, rt.scene.Height
	span.SetAttributes(
		attribute.Int("width", width),
		attribute.Int("height", height),
		attribute.Int("samples_per_pixel", rt.sampling.SamplesPerPixel),
		attribute.Int("max_depth", rt.sampling.MaxDepth),
		attribute.Int("workers", rt.config.NumWorkers),
	)

	if rt.scene.World == nil {
		span.RecordError(ErrSceneNotPreprocessed)
		span.SetStatus(codes.Error, ErrSceneNotPreprocessed.Error())
		return nil, RenderStats{}, ErrSceneNotPreprocessed
	}

	rt.logger.Printf("Rendering %dx%d at %d samples per pixel, max depth %d, %d workers",
		width, height, rt.sampling.SamplesPerPixel, rt.sampling.MaxDepth, rt.config.NumWorkers)

	start := time.Now()
	frame := NewFrame(width, height)
	rows := make([]rowStats, height)

	// Use errgroup and semaphore to limit concurrency.
	eg, ctx := errgroup.WithContext(ctx)
	sem := semaphore.NewWeighted(int64(rt.config.NumWorkers))

	var acquireErr error
	for y := 0; y < height; y++ {
		y := y

		if err := sem.Acquire(ctx, 1); err != nil {
			acquireErr = fmt.Errorf("while acquiring concurrency limiter semaphore: %w", err)
			break
		}

		eg.Go(func() error {
			defer sem.Release(1)
			if err := ctx.Err(); err != nil {
				return err
			}
			rows[y] = rt.renderRow(y, frame.Row(y))
			return nil
		})
	}

	waitErr := eg.Wait()
	stats := rt.collectStats(rows, time.Since(start))

	if err := firstError(acquireErr, waitErr); err != nil {
		err = fmt.Errorf("while rendering rows: %w", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, stats, err
	}

	span.SetAttributes(attribute.Int("total_samples", stats.TotalSamples))
	rt.logger.Printf("Rendered %d samples in %v (%.0f samples/s)",
		stats.TotalSamples, stats.Elapsed.Round(time.Millisecond), stats.SamplesPerSecond())
	if stats.NonFinite > 0 {
		rt.logger.Printf("Discarded %d non-finite samples", stats.NonFinite)
	}

	return frame, stats, nil
}

// renderRow fills one image row (0 = top) from its own random stream
func (rt *Raytracer) renderRow(y int, out []core.Color) rowStats {
	width, height := rt.scene.Width, rt.scene.Height
	camera := rt.scene.Camera
	sampler := core.NewSeededSampler(rt.config.Seed + int64(y))

	// The camera's t axis points up, frame rows point down
	j := height - 1 - y

	var stats rowStats
	for x := 0; x < width; x++ {
		var pixel PixelStats
		for sample := 0; sample < rt.sampling.SamplesPerPixel; sample++ {
			s := (float64(x) + sampler.Get1D()) / float64(width)
			t := (float64(j) + sampler.Get1D()) / float64(height)

			ray := camera.GetRay(s, t, sampler)
			pixel.AddSample(rt.integrator.RayColor(ray, rt.scene, sampler))
		}

		out[x] = pixel.GetColor()
		stats.samples += pixel.SampleCount
		stats.nonFinite += pixel.NonFinite
	}
	return stats
}

func (rt *Raytracer) collectStats(rows []rowStats, elapsed time.Duration) RenderStats {
	stats := RenderStats{Elapsed: elapsed}
	for _, row := range rows {
		if row.samples == 0 {
			continue
		}
		stats.RowsRendered++
		stats.TotalSamples += row.samples
		stats.NonFinite += row.nonFinite
	}

	stats.TotalPixels = stats.RowsRendered * rt.scene.Width
	if stats.TotalPixels > 0 {
		stats.AverageSamples = float64(stats.TotalSamples) / float64(stats.TotalPixels)
	}
	return stats
}

func firstError(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

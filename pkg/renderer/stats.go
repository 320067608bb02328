package renderer

import (
	"time"

	"github.com/df07/go-pathtracer/pkg/core"
)

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	TotalPixels    int           // Total number of pixels rendered
	TotalSamples   int           // Total number of samples taken
	AverageSamples float64       // Average samples per pixel
	RowsRendered   int           // Rows completed before the render returned
	NonFinite      int           // Samples discarded for NaN or infinite radiance
	Elapsed        time.Duration // Wall time of the render
}

// SamplesPerSecond returns the sampling throughput of the render
func (s RenderStats) SamplesPerSecond() float64 {
	if s.Elapsed <= 0 {
		return 0
	}
	return float64(s.TotalSamples) / s.Elapsed.Seconds()
}

// rowStats is what a single row task reports back
type rowStats struct {
	samples   int
	nonFinite int
}

// PixelStats tracks sampling statistics for a single pixel
type PixelStats struct {
	ColorAccum  core.Color // RGB accumulator for final result
	SampleCount int        // Number of samples taken
	NonFinite   int        // Samples replaced by black
}

// AddSample adds a new color sample to the pixel statistics.
// Samples that are not finite count as black; negative channels are clamped to zero.
func (ps *PixelStats) AddSample(color core.Color) {
	ps.SampleCount++
	if !color.IsFinite() {
		ps.NonFinite++
		return
	}
	ps.ColorAccum = ps.ColorAccum.Add(color.Max(core.Color{}))
}

// GetColor returns the current average color for this pixel
func (ps *PixelStats) GetColor() core.Color {
	if ps.SampleCount == 0 {
		return core.Color{}
	}
	return ps.ColorAccum.Multiply(1.0 / float64(ps.SampleCount))
}

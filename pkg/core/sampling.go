package core

import (
	"math"
	"math/rand"
)

// Sampler provides random sampling for rendering algorithms.
// Every operation that needs entropy takes a Sampler so a render task can own
// its own stream and tests can pin results with a fixed seed.
type Sampler interface {
	Get1D() float64
	Get2D() Vec2
	Get3D() Vec3
}

// RandomSampler wraps a standard Go random generator
type RandomSampler struct {
	random *rand.Rand
}

// NewRandomSampler creates a sampler from a Go random generator
func NewRandomSampler(random *rand.Rand) *RandomSampler {
	return &RandomSampler{random: random}
}

// NewSeededSampler creates a sampler with its own generator seeded by seed
func NewSeededSampler(seed int64) *RandomSampler {
	return NewRandomSampler(rand.New(rand.NewSource(seed)))
}

// Get1D returns a random float64 in [0, 1)
func (r *RandomSampler) Get1D() float64 {
	return r.random.Float64()
}

// Get2D returns two random float64 values in [0, 1)
func (r *RandomSampler) Get2D() Vec2 {
	return NewVec2(r.random.Float64(), r.random.Float64())
}

// Get3D returns three random float64 values in [0, 1)
func (r *RandomSampler) Get3D() Vec3 {
	return NewVec3(r.random.Float64(), r.random.Float64(), r.random.Float64())
}

// Intn returns a uniform integer in [0, n)
func (r *RandomSampler) Intn(n int) int {
	return r.random.Intn(n)
}

// SampleIndex picks a uniform index in [0, n) from a sampler
func SampleIndex(sampler Sampler, n int) int {
	i := int(sampler.Get1D() * float64(n))
	if i >= n {
		i = n - 1
	}
	return i
}

// RandomCosineDirection returns a cosine-weighted direction in the local
// frame whose +z axis is the surface normal
func RandomCosineDirection(sample Vec2) Vec3 {
	r1 := sample.X
	r2 := sample.Y
	phi := 2 * math.Pi * r1
	sqrtR2 := math.Sqrt(r2)

	x := math.Cos(phi) * sqrtR2
	y := math.Sin(phi) * sqrtR2
	z := math.Sqrt(math.Max(0, 1-r2))
	return NewVec3(x, y, z)
}

// SampleOnUnitSphere generates a uniform random direction on the unit sphere
func SampleOnUnitSphere(sample Vec2) Vec3 {
	z := 1.0 - 2.0*sample.X
	r := math.Sqrt(math.Max(0, 1.0-z*z))
	phi := 2.0 * math.Pi * sample.Y
	return NewVec3(r*math.Cos(phi), r*math.Sin(phi), z)
}

// SampleCone samples a direction uniformly within a cone of half-angle acos(cosThetaMax)
// around the z axis of the local frame
func SampleCone(cosThetaMax float64, sample Vec2) Vec3 {
	z := 1.0 + sample.X*(cosThetaMax-1.0)
	phi := 2.0 * math.Pi * sample.Y
	sinTheta := math.Sqrt(math.Max(0, 1.0-z*z))
	return NewVec3(math.Cos(phi)*sinTheta, math.Sin(phi)*sinTheta, z)
}

// SamplePointInUnitDisk generates a random point in a unit disk using concentric mapping
// This avoids rejection sampling by mapping a square uniformly to a disk
func SamplePointInUnitDisk(sample Vec2) Vec3 {
	offset := NewVec2(2*sample.X-1, 2*sample.Y-1)
	if offset.X == 0 && offset.Y == 0 {
		return NewVec3(0, 0, 0)
	}

	var theta, r float64
	if math.Abs(offset.X) > math.Abs(offset.Y) {
		r = offset.X
		theta = math.Pi / 4 * (offset.Y / offset.X)
	} else {
		r = offset.Y
		theta = math.Pi/2 - math.Pi/4*(offset.X/offset.Y)
	}

	return NewVec3(r*math.Cos(theta), r*math.Sin(theta), 0)
}

// SamplePointInUnitSphere generates a random point inside a unit sphere by inverse CDF:
// r = ∛u₁, φ = 2πu₂, cosθ = 2u₃ - 1
func SamplePointInUnitSphere(sample Vec3) Vec3 {
	r := math.Cbrt(sample.X)
	phi := 2 * math.Pi * sample.Y
	cosTheta := 2*sample.Z - 1
	sinTheta := math.Sqrt(math.Max(0, 1-cosTheta*cosTheta))

	return NewVec3(
		r*sinTheta*math.Cos(phi),
		r*sinTheta*math.Sin(phi),
		r*cosTheta,
	)
}

// SampleTriangle returns a uniformly distributed point on the triangle (p0, p1, p2)
func SampleTriangle(p0, p1, p2 Vec3, sample Vec2) Vec3 {
	s := math.Sqrt(sample.Y)
	a := s * (1 - sample.X)
	b := sample.X * s
	return p0.Multiply(a).Add(p1.Multiply(b)).Add(p2.Multiply(1 - s))
}

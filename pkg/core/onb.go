package core

import "math"

// ONB is an orthonormal basis used to map local sampling directions to world space
type ONB struct {
	U, V, W Vec3
}

// NewONB builds a basis whose W axis is the normalized w
func NewONB(w Vec3) ONB {
	unitW := w.Normalize()

	// Pick a helper axis that is not parallel to w
	var a Vec3
	if math.Abs(unitW.X) > 0.9 {
		a = NewVec3(0, 1, 0)
	} else {
		a = NewVec3(1, 0, 0)
	}

	v := unitW.Cross(a).Normalize()
	u := unitW.Cross(v)
	return ONB{U: u, V: v, W: unitW}
}

// Local maps local coordinates (x along U, y along V, z along W) to world space
func (b ONB) Local(a Vec3) Vec3 {
	return b.U.Multiply(a.X).Add(b.V.Multiply(a.Y)).Add(b.W.Multiply(a.Z))
}

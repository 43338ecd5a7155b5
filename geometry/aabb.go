package geometry

// AABB is an axis-aligned bounding box given by its min and max corners.
type AABB struct {
	Min, Max Vec3
}

// MaxMapBounds is the hard clamp every processed map's bounds must fit
// inside (spec §3).
var MaxMapBounds = AABB{
	Min: Vec3{X: -800, Y: -200, Z: -800},
	Max: Vec3{X: 800, Y: 200, Z: 800},
}

// ExtendBy pointwise-expands a to enclose other.
func (a *AABB) ExtendBy(other AABB) {
	if other.Min.X < a.Min.X {
		a.Min.X = other.Min.X
	}
	if other.Min.Y < a.Min.Y {
		a.Min.Y = other.Min.Y
	}
	if other.Min.Z < a.Min.Z {
		a.Min.Z = other.Min.Z
	}
	if other.Max.X > a.Max.X {
		a.Max.X = other.Max.X
	}
	if other.Max.Y > a.Max.Y {
		a.Max.Y = other.Max.Y
	}
	if other.Max.Z > a.Max.Z {
		a.Max.Z = other.Max.Z
	}
}

// LimitBy pointwise-clamps a to lie within other.
func (a *AABB) LimitBy(other AABB) {
	if a.Min.X < other.Min.X {
		a.Min.X = other.Min.X
	}
	if a.Min.Y < other.Min.Y {
		a.Min.Y = other.Min.Y
	}
	if a.Min.Z < other.Min.Z {
		a.Min.Z = other.Min.Z
	}
	if a.Max.X > other.Max.X {
		a.Max.X = other.Max.X
	}
	if a.Max.Y > other.Max.Y {
		a.Max.Y = other.Max.Y
	}
	if a.Max.Z > other.Max.Z {
		a.Max.Z = other.Max.Z
	}
}

// Intersects reports strict half-open overlap on all three axes.
func (a AABB) Intersects(other AABB) bool {
	return a.Min.X < other.Max.X && a.Max.X > other.Min.X &&
		a.Min.Y < other.Max.Y && a.Max.Y > other.Min.Y &&
		a.Min.Z < other.Max.Z && a.Max.Z > other.Min.Z
}

// Contains reports whether position lies within a, inclusive of the
// boundary.
func (a AABB) Contains(position Vec3) bool {
	return a.Min.X <= position.X && a.Max.X >= position.X &&
		a.Min.Y <= position.Y && a.Max.Y >= position.Y &&
		a.Min.Z <= position.Z && a.Max.Z >= position.Z
}

package box2d

// Polygon construction helpers. The collide functions only read the result.

// Compute the centroid of a convex vertex loop.
func B2ComputePolygonCentroid(vs []B2Vec2, count int) B2Vec2 {
	c := MakeB2Vec2(0, 0)
	area := 0.0

	// Get a reference point for forming triangles.
	// Use the first vertex to reduce round-off errors.
	s := vs[0]

	inv3 := 1.0 / 3.0

	for i := 1; i < count-1; i++ {
		// Triangle edges
		e1 := B2Vec2Sub(vs[i], s)
		e2 := B2Vec2Sub(vs[i+1], s)

		a := 0.5 * B2Vec2Cross(e1, e2)

		// Area weighted centroid
		c = B2Vec2MulAdd(c, a*inv3, B2Vec2Add(e1, e2))
		area += a
	}

	if area < B2_epsilon {
		// degenerate loop, fall back to the vertex average
		avg := MakeB2Vec2(0, 0)
		for i := 0; i < count; i++ {
			avg.OperatorPlusInplace(vs[i])
		}
		return B2Vec2MulScalar(1.0/float64(count), avg)
	}

	return B2Vec2Add(s, B2Vec2MulScalar(1.0/area, c))
}

// Make a convex polygon from a convex hull. This will assert if the hull is not valid.
// A radius greater than zero makes a rounded polygon.
// Returns the zero polygon when the hull is empty.
func B2MakePolygon(hull B2Hull, radius float64) B2Polygon {
	var shape B2Polygon
	if hull.Count < 3 {
		return shape
	}

	shape.Count = hull.Count
	shape.Radius = radius

	// Copy vertices
	for i := 0; i < hull.Count; i++ {
		shape.Vertices[i] = hull.Points[i]
	}

	// Compute normals. Hull edges have non-zero length.
	for i := 0; i < shape.Count; i++ {
		i1 := i
		i2 := 0
		if i+1 < shape.Count {
			i2 = i + 1
		}
		edge := B2Vec2Sub(shape.Vertices[i2], shape.Vertices[i1])
		shape.Normals[i] = B2NormalizeOr(B2Vec2CrossVectorScalar(edge, 1.0), MakeB2Vec2(1.0, 0.0))
	}

	shape.Centroid = B2ComputePolygonCentroid(shape.Vertices[:], shape.Count)

	return shape
}

// Make an offset convex polygon from a convex hull.
func B2MakeOffsetPolygon(hull B2Hull, radius float64, xf B2Transform) B2Polygon {
	for i := 0; i < hull.Count; i++ {
		hull.Points[i] = B2TransformVec2Mul(xf, hull.Points[i])
	}

	return B2MakePolygon(hull, radius)
}

// Make a square polygon, bypassing the need for a convex hull.
func B2MakeSquare(h float64) B2Polygon {
	return B2MakeBox(h, h)
}

// Make a box (rectangle) polygon, bypassing the need for a convex hull.
// hx and hy are the half-widths.
func B2MakeBox(hx float64, hy float64) B2Polygon {
	var shape B2Polygon
	shape.Count = 4
	shape.Vertices[0].Set(-hx, -hy)
	shape.Vertices[1].Set(hx, -hy)
	shape.Vertices[2].Set(hx, hy)
	shape.Vertices[3].Set(-hx, hy)
	shape.Normals[0].Set(0.0, -1.0)
	shape.Normals[1].Set(1.0, 0.0)
	shape.Normals[2].Set(0.0, 1.0)
	shape.Normals[3].Set(-1.0, 0.0)
	shape.Radius = 0.0
	shape.Centroid.SetZero()
	return shape
}

// Make a rounded box, bypassing the need for a convex hull.
func B2MakeRoundedBox(hx float64, hy float64, radius float64) B2Polygon {
	shape := B2MakeBox(hx, hy)
	shape.Radius = radius
	return shape
}

// Make a box polygon with the given center and angle.
func B2MakeOffsetBox(hx float64, hy float64, center B2Vec2, angle float64) B2Polygon {
	xf := MakeB2TransformByPositionAndAngle(center, angle)

	shape := B2MakeBox(hx, hy)
	shape.Centroid = center

	// Transform vertices and normals.
	for i := 0; i < shape.Count; i++ {
		shape.Vertices[i] = B2TransformVec2Mul(xf, shape.Vertices[i])
		shape.Normals[i] = B2RotVec2Mul(xf.Q, shape.Normals[i])
	}

	return shape
}

// Make a capsule as a rounded 2-gon. A segment is the same thing with a
// zero radius. The first normal points to the right of p1 -> p2.
// Coincident points get the +X axis so the normals stay unit length.
func B2MakeCapsule(p1 B2Vec2, p2 B2Vec2, radius float64) B2Polygon {
	var shape B2Polygon
	shape.Vertices[0] = p1
	shape.Vertices[1] = p2
	shape.Centroid = B2Vec2Lerp(p1, p2, 0.5)

	axis := B2NormalizeOr(B2Vec2Sub(p2, p1), MakeB2Vec2(1.0, 0.0))
	normal := B2Vec2RightPerp(axis)

	shape.Normals[0] = normal
	shape.Normals[1] = normal.OperatorNegate()
	shape.Count = 2
	shape.Radius = radius

	return shape
}

// Test if a point in local space is inside the polygon core (radius ignored).
func (poly B2Polygon) TestPoint(p B2Vec2) bool {
	for i := 0; i < poly.Count; i++ {
		dot := B2Vec2Dot(poly.Normals[i], B2Vec2Sub(p, poly.Vertices[i]))
		if dot > 0.0 {
			return false
		}
	}

	return true
}

func (poly B2Polygon) Validate() bool {
	if poly.Count < 3 || B2_maxPolygonVertices < poly.Count {
		return false
	}

	var hull B2Hull
	for i := 0; i < poly.Count; i++ {
		hull.Points[i] = poly.Vertices[i]
	}

	hull.Count = poly.Count

	return B2ValidateHull(&hull)
}

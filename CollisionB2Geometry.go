package box2d

// The primitives below are read-only descriptors supplied by the caller.
// Coordinates are in the shape's local frame; the collide functions map them
// into a common frame with the transforms passed alongside.

/// A solid circle
type B2Circle struct {
	Center B2Vec2
	Radius float64
}

/// A solid capsule can be viewed as two semicircles connected
/// by a rectangle.
type B2Capsule struct {
	Center1, Center2 B2Vec2
	Radius           float64
}

/// A solid convex polygon. It is assumed that the interior of the polygon is to
/// the left of each edge.
/// Polygons have a maximum number of vertices equal to B2_maxPolygonVertices.
/// In most cases you should not need many vertices for a convex polygon.
/// A non-zero radius rounds the corners and grows the polygon outwards.
type B2Polygon struct {
	Vertices [B2_maxPolygonVertices]B2Vec2
	Normals  [B2_maxPolygonVertices]B2Vec2
	Centroid B2Vec2
	Radius   float64
	Count    int
}

/// A line segment with two-sided collision.
type B2Segment struct {
	Point1, Point2 B2Vec2
}

/// A smooth line segment with one-sided collision. Only collides on the right side.
/// Several of these are generated for a chain shape.
/// ghost1 -> point1 -> point2 -> ghost2
type B2SmoothSegment struct {
	/// The tail ghost vertex
	Ghost1 B2Vec2

	/// The line segment
	Segment B2Segment

	/// The head ghost vertex
	Ghost2 B2Vec2

	/// The owning chain shape index (internal usage only)
	ChainId int
}

func MakeB2Circle(center B2Vec2, radius float64) B2Circle {
	return B2Circle{
		Center: center,
		Radius: radius,
	}
}

func MakeB2Capsule(center1, center2 B2Vec2, radius float64) B2Capsule {
	return B2Capsule{
		Center1: center1,
		Center2: center2,
		Radius:  radius,
	}
}

func MakeB2Segment(point1, point2 B2Vec2) B2Segment {
	return B2Segment{
		Point1: point1,
		Point2: point2,
	}
}

// Vertex accessor used by the distance proxies of segments.
func (segment B2Segment) vertices() [2]B2Vec2 {
	return [2]B2Vec2{segment.Point1, segment.Point2}
}

package box2d

/// A chain is a free form sequence of line segments.
/// The chain has one-sided collision, with the surface normal pointing to the right of the edge.
/// This provides a counter-clockwise winding like the polygon shape.
/// Connectivity information is used to create smooth collisions.
/// @warning the chain will not collide properly if there are self-intersections.
type B2ChainShape struct {
	/// The vertices. Owned by this struct.
	Vertices []B2Vec2

	/// Ghost vertices that connect the ends of an open chain.
	PrevVertex B2Vec2
	NextVertex B2Vec2

	/// Copied into every smooth segment of the chain.
	Id int
}

func MakeB2ChainShape(id int) B2ChainShape {
	return B2ChainShape{
		Id: id,
	}
}

func (chain *B2ChainShape) Clear() {
	chain.Vertices = nil
}

/// Create a loop. This automatically adjusts connectivity.
/// Returns false when there are fewer than 3 vertices or two consecutive
/// vertices are closer than the linear slop.
/// @param vertices an array of vertices, these are copied
func (chain *B2ChainShape) CreateLoop(vertices []B2Vec2) bool {
	count := len(vertices)
	if count < 3 {
		return false
	}

	for i := 1; i < count; i++ {
		if B2Vec2DistanceSquared(vertices[i-1], vertices[i]) <= B2_linearSlop*B2_linearSlop {
			return false
		}
	}

	chain.Vertices = make([]B2Vec2, count+1)
	copy(chain.Vertices, vertices)

	chain.Vertices[count] = chain.Vertices[0]
	chain.PrevVertex = chain.Vertices[count-1]
	chain.NextVertex = chain.Vertices[1]
	return true
}

/// Create a chain with ghost vertices to connect multiple chains together.
/// @param vertices an array of vertices, these are copied
/// @param prevVertex previous vertex from chain that connects to the start
/// @param nextVertex next vertex from chain that connects to the end
func (chain *B2ChainShape) CreateChain(vertices []B2Vec2, prevVertex B2Vec2, nextVertex B2Vec2) bool {
	count := len(vertices)
	if count < 2 {
		return false
	}

	for i := 1; i < count; i++ {
		if B2Vec2DistanceSquared(vertices[i-1], vertices[i]) <= B2_linearSlop*B2_linearSlop {
			return false
		}
	}

	chain.Vertices = make([]B2Vec2, count)
	copy(chain.Vertices, vertices)

	chain.PrevVertex = prevVertex
	chain.NextVertex = nextVertex
	return true
}

func (chain B2ChainShape) GetChildCount() int {
	// segment count = vertex count - 1
	if len(chain.Vertices) < 2 {
		return 0
	}
	return len(chain.Vertices) - 1
}

/// Get the smooth segment for child index with its ghost vertices.
func (chain B2ChainShape) GetChildSegment(index int) B2SmoothSegment {
	count := len(chain.Vertices)

	var segment B2SmoothSegment
	segment.ChainId = chain.Id
	segment.Segment.Point1 = chain.Vertices[index+0]
	segment.Segment.Point2 = chain.Vertices[index+1]

	if index > 0 {
		segment.Ghost1 = chain.Vertices[index-1]
	} else {
		segment.Ghost1 = chain.PrevVertex
	}

	if index < count-2 {
		segment.Ghost2 = chain.Vertices[index+2]
	} else {
		segment.Ghost2 = chain.NextVertex
	}

	return segment
}

/// All smooth segments of the chain in order.
func (chain B2ChainShape) Segments() []B2SmoothSegment {
	n := chain.GetChildCount()
	segments := make([]B2SmoothSegment, n)
	for i := 0; i < n; i++ {
		segments[i] = chain.GetChildSegment(i)
	}
	return segments
}

package box2d

var B2Shape_Type = struct {
	E_circle        uint8
	E_capsule       uint8
	E_segment       uint8
	E_polygon       uint8
	E_smoothSegment uint8
	E_typeCount     uint8
}{
	E_circle:        0,
	E_capsule:       1,
	E_segment:       2,
	E_polygon:       3,
	E_smoothSegment: 4,
	E_typeCount:     b2_shapeTypeCount,
}

/// A shape is one of the collision primitives, tagged by Type. Only the
/// field matching Type is read.
type B2Shape struct {
	Type uint8

	Circle        B2Circle
	Capsule       B2Capsule
	Segment       B2Segment
	Polygon       B2Polygon
	SmoothSegment B2SmoothSegment
}

func MakeB2CircleShape(circle B2Circle) B2Shape {
	return B2Shape{Type: B2Shape_Type.E_circle, Circle: circle}
}

func MakeB2CapsuleShape(capsule B2Capsule) B2Shape {
	return B2Shape{Type: B2Shape_Type.E_capsule, Capsule: capsule}
}

func MakeB2SegmentShape(segment B2Segment) B2Shape {
	return B2Shape{Type: B2Shape_Type.E_segment, Segment: segment}
}

func MakeB2PolygonShape(polygon B2Polygon) B2Shape {
	return B2Shape{Type: B2Shape_Type.E_polygon, Polygon: polygon}
}

func MakeB2SmoothSegmentShape(segment B2SmoothSegment) B2Shape {
	return B2Shape{Type: B2Shape_Type.E_smoothSegment, SmoothSegment: segment}
}

func (shape B2Shape) GetType() uint8 {
	return shape.Type
}

type B2ManifoldFcn func(shapeA *B2Shape, xfA B2Transform, shapeB *B2Shape, xfB B2Transform, cache *B2DistanceCache) B2Manifold

type B2CollideRegister struct {
	Fcn     B2ManifoldFcn
	Primary bool
}

const b2_shapeTypeCount = 5

// Filled once by init and read only afterwards.
var s_registers [b2_shapeTypeCount][b2_shapeTypeCount]B2CollideRegister

func init() {
	B2CollideInitializeRegisters()
}

func B2CollideInitializeRegisters() {
	s_registers = [b2_shapeTypeCount][b2_shapeTypeCount]B2CollideRegister{}

	addType(func(shapeA *B2Shape, xfA B2Transform, shapeB *B2Shape, xfB B2Transform, cache *B2DistanceCache) B2Manifold {
		return B2CollideCircles(&shapeA.Circle, xfA, &shapeB.Circle, xfB)
	}, B2Shape_Type.E_circle, B2Shape_Type.E_circle)

	addType(func(shapeA *B2Shape, xfA B2Transform, shapeB *B2Shape, xfB B2Transform, cache *B2DistanceCache) B2Manifold {
		return B2CollideCapsuleAndCircle(&shapeA.Capsule, xfA, &shapeB.Circle, xfB)
	}, B2Shape_Type.E_capsule, B2Shape_Type.E_circle)

	addType(func(shapeA *B2Shape, xfA B2Transform, shapeB *B2Shape, xfB B2Transform, cache *B2DistanceCache) B2Manifold {
		return B2CollideCapsules(&shapeA.Capsule, xfA, &shapeB.Capsule, xfB, cache)
	}, B2Shape_Type.E_capsule, B2Shape_Type.E_capsule)

	addType(func(shapeA *B2Shape, xfA B2Transform, shapeB *B2Shape, xfB B2Transform, cache *B2DistanceCache) B2Manifold {
		return B2CollideSegmentAndCircle(&shapeA.Segment, xfA, &shapeB.Circle, xfB)
	}, B2Shape_Type.E_segment, B2Shape_Type.E_circle)

	addType(func(shapeA *B2Shape, xfA B2Transform, shapeB *B2Shape, xfB B2Transform, cache *B2DistanceCache) B2Manifold {
		return B2CollideSegmentAndCapsule(&shapeA.Segment, xfA, &shapeB.Capsule, xfB, cache)
	}, B2Shape_Type.E_segment, B2Shape_Type.E_capsule)

	addType(func(shapeA *B2Shape, xfA B2Transform, shapeB *B2Shape, xfB B2Transform, cache *B2DistanceCache) B2Manifold {
		return B2CollideSegmentAndPolygon(&shapeA.Segment, xfA, &shapeB.Polygon, xfB, cache)
	}, B2Shape_Type.E_segment, B2Shape_Type.E_polygon)

	addType(func(shapeA *B2Shape, xfA B2Transform, shapeB *B2Shape, xfB B2Transform, cache *B2DistanceCache) B2Manifold {
		return B2CollidePolygonAndCircle(&shapeA.Polygon, xfA, &shapeB.Circle, xfB)
	}, B2Shape_Type.E_polygon, B2Shape_Type.E_circle)

	addType(func(shapeA *B2Shape, xfA B2Transform, shapeB *B2Shape, xfB B2Transform, cache *B2DistanceCache) B2Manifold {
		return B2CollidePolygonAndCapsule(&shapeA.Polygon, xfA, &shapeB.Capsule, xfB, cache)
	}, B2Shape_Type.E_polygon, B2Shape_Type.E_capsule)

	addType(func(shapeA *B2Shape, xfA B2Transform, shapeB *B2Shape, xfB B2Transform, cache *B2DistanceCache) B2Manifold {
		return B2CollidePolygons(&shapeA.Polygon, xfA, &shapeB.Polygon, xfB, cache)
	}, B2Shape_Type.E_polygon, B2Shape_Type.E_polygon)

	addType(func(shapeA *B2Shape, xfA B2Transform, shapeB *B2Shape, xfB B2Transform, cache *B2DistanceCache) B2Manifold {
		return B2CollideSmoothSegmentAndCircle(&shapeA.SmoothSegment, xfA, &shapeB.Circle, xfB)
	}, B2Shape_Type.E_smoothSegment, B2Shape_Type.E_circle)

	addType(func(shapeA *B2Shape, xfA B2Transform, shapeB *B2Shape, xfB B2Transform, cache *B2DistanceCache) B2Manifold {
		return B2CollideSmoothSegmentAndCapsule(&shapeA.SmoothSegment, xfA, &shapeB.Capsule, xfB, cache)
	}, B2Shape_Type.E_smoothSegment, B2Shape_Type.E_capsule)

	addType(func(shapeA *B2Shape, xfA B2Transform, shapeB *B2Shape, xfB B2Transform, cache *B2DistanceCache) B2Manifold {
		return B2CollideSmoothSegmentAndPolygon(&shapeA.SmoothSegment, xfA, &shapeB.Polygon, xfB, cache)
	}, B2Shape_Type.E_smoothSegment, B2Shape_Type.E_polygon)
}

func addType(fcn B2ManifoldFcn, type1 uint8, type2 uint8) {
	s_registers[type1][type2].Fcn = fcn
	s_registers[type1][type2].Primary = true

	if type1 != type2 {
		s_registers[type2][type1].Fcn = fcn
		s_registers[type2][type1].Primary = false
	}
}

/// Does any collide function handle this pair of shape types?
func B2ShouldCollide(type1 uint8, type2 uint8) bool {
	if type1 >= B2Shape_Type.E_typeCount || type2 >= B2Shape_Type.E_typeCount {
		return false
	}

	return s_registers[type1][type2].Fcn != nil
}

/// Swap the roles of A and B in a manifold: the normal is negated, anchors
/// are exchanged and id features are swapped. The world point is shared.
func B2FlipManifold(manifold B2Manifold) B2Manifold {
	manifold.Normal = manifold.Normal.OperatorNegate()
	for i := 0; i < manifold.PointCount; i++ {
		mp := &manifold.Points[i]
		mp.AnchorA, mp.AnchorB = mp.AnchorB, mp.AnchorA
		mp.Id = B2FlipId(mp.Id)
	}

	return manifold
}

/// Compute the contact manifold for any pair of shapes. Pairs registered in
/// the other order are evaluated swapped and flipped back so the normal
/// always points from shapeA to shapeB. Pairs without a collide function
/// (segments against segments) give the empty manifold.
func B2Collide(shapeA *B2Shape, xfA B2Transform, shapeB *B2Shape, xfB B2Transform, cache *B2DistanceCache) B2Manifold {
	type1 := shapeA.Type
	type2 := shapeB.Type

	if B2ShouldCollide(type1, type2) == false {
		return B2_emptyManifold
	}

	register := s_registers[type1][type2]
	if register.Primary {
		return register.Fcn(shapeA, xfA, shapeB, xfB, cache)
	}

	return B2FlipManifold(register.Fcn(shapeB, xfB, shapeA, xfA, cache))
}

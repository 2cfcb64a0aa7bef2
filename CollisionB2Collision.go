package box2d

///////////////////////////////////////////////////////////////////////////////
// Contact manifolds
///////////////////////////////////////////////////////////////////////////////

// A manifold point is a contact point belonging to a contact
// manifold. It holds details related to the geometry and dynamics
// of the contact points.
// Box2D uses speculative collision so some contact points may be separated.
// You may use the maxNormalImpulse to determine if there was an interaction during
// the time step.
// Note: the impulses are used for internal caching and may not
// provide reliable contact forces, especially for high speed collisions.
type B2ManifoldPoint struct {
	/// Location of the contact point in world space. Subject to precision loss at large coordinates.
	/// @note Should only be used for debugging.
	Point B2Vec2

	/// Location of the contact point relative to bodyA's origin in world space
	/// @note When used internally to the Box2D solver, these are relative to the center of mass.
	AnchorA B2Vec2

	/// Location of the contact point relative to bodyB's origin in world space
	AnchorB B2Vec2

	/// The separation of the contact point, negative if penetrating
	Separation float64

	/// The impulse along the manifold normal vector.
	NormalImpulse float64

	/// The friction impulse
	TangentImpulse float64

	/// The maximum normal impulse applied during sub-stepping
	MaxNormalImpulse float64

	/// Relative normal velocity pre-solve. Used for hit events. If the normal impulse is
	/// zero then there was no hit. Negative means shapes are approaching.
	NormalVelocity float64

	/// Uniquely identifies a contact point between two shapes
	Id uint16

	/// Did this contact point exist the previous step?
	Persisted bool
}

// A contact manifold describes the contact points between colliding shapes
type B2Manifold struct {
	/// The manifold points, up to two are possible in 2D
	Points [B2_maxManifoldPoints]B2ManifoldPoint

	/// The unit normal vector in world space, points from shape A to bodyB
	Normal B2Vec2

	/// The number of contacts points, will be 0, 1, or 2
	PointCount int
}

/// The zero manifold means no contact.
var B2_emptyManifold = B2Manifold{}

/// Make a contact id from the feature index on shape A and on shape B.
func B2MakeId(a, b int) uint16 {
	return uint16(uint8(a))<<8 | uint16(uint8(b))
}

/// The feature index on shape A.
func B2IdIndexA(id uint16) uint8 {
	return uint8(id >> 8)
}

/// The feature index on shape B.
func B2IdIndexB(id uint16) uint8 {
	return uint8(id & 0xFF)
}

/// Swap the features of an id. Used when a pair is evaluated in reverse order.
func B2FlipId(id uint16) uint16 {
	return id<<8 | id>>8
}

/// Find a point by id. Returns -1 if no point carries the id.
func (manifold B2Manifold) FindPoint(id uint16) int {
	for i := 0; i < manifold.PointCount; i++ {
		if manifold.Points[i].Id == id {
			return i
		}
	}
	return -1
}

var B2PointState = struct {
	B2_nullState    uint8 // point does not exist
	B2_addState     uint8 // point was added in the update
	B2_persistState uint8 // point persisted across the update
	B2_removeState  uint8 // point was removed in the update
}{
	B2_nullState:    0,
	B2_addState:     1,
	B2_persistState: 2,
	B2_removeState:  3,
}

/// Compute the point states given two manifolds. The states pertain to the transition from manifold1
/// to manifold2. So state1 is either persist or remove while state2 is either add or persist.
func B2GetPointStates(state1 *[B2_maxManifoldPoints]uint8, state2 *[B2_maxManifoldPoints]uint8, manifold1 B2Manifold, manifold2 B2Manifold) {
	for i := 0; i < B2_maxManifoldPoints; i++ {
		state1[i] = B2PointState.B2_nullState
		state2[i] = B2PointState.B2_nullState
	}

	// Detect persists and removes.
	for i := 0; i < manifold1.PointCount; i++ {
		state1[i] = B2PointState.B2_removeState
		if manifold2.FindPoint(manifold1.Points[i].Id) >= 0 {
			state1[i] = B2PointState.B2_persistState
		}
	}

	// Detect persists and adds.
	for i := 0; i < manifold2.PointCount; i++ {
		state2[i] = B2PointState.B2_addState
		if manifold1.FindPoint(manifold2.Points[i].Id) >= 0 {
			state2[i] = B2PointState.B2_persistState
		}
	}
}

/// Match the points of a freshly built manifold against the previous manifold
/// of the same pair. Matching points get the old impulses and are flagged as
/// persisted; new points start cold. Returns the number of matched points.
func B2UpdateManifold(manifold *B2Manifold, oldManifold B2Manifold) int {
	matched := 0
	for i := 0; i < manifold.PointCount; i++ {
		mp2 := &manifold.Points[i]

		mp2.NormalImpulse = 0.0
		mp2.TangentImpulse = 0.0
		mp2.Persisted = false

		j := oldManifold.FindPoint(mp2.Id)
		if j < 0 {
			continue
		}

		mp1 := oldManifold.Points[j]
		mp2.NormalImpulse = mp1.NormalImpulse
		mp2.TangentImpulse = mp1.TangentImpulse
		mp2.Persisted = true
		matched++
	}

	return matched
}

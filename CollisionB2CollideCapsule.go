package box2d

// Capsules and segments go through the polygon collider as 2-gons. A
// segment is a capsule with no radius. Vertex 0 of the 2-gon is Center1 and
// the first normal points to the right of Center1 -> Center2, so contact ids
// name the capsule end points by index.

func b2CapsulePolygon(capsule *B2Capsule) B2Polygon {
	return B2MakeCapsule(capsule.Center1, capsule.Center2, capsule.Radius)
}

/// Compute the contact manifold between two capsules.
func B2CollideCapsules(capsuleA *B2Capsule, xfA B2Transform, capsuleB *B2Capsule, xfB B2Transform, cache *B2DistanceCache) B2Manifold {
	polyA := b2CapsulePolygon(capsuleA)
	polyB := b2CapsulePolygon(capsuleB)
	return B2CollidePolygons(&polyA, xfA, &polyB, xfB, cache)
}

/// Compute the contact manifold between a segment and a capsule.
func B2CollideSegmentAndCapsule(segmentA *B2Segment, xfA B2Transform, capsuleB *B2Capsule, xfB B2Transform, cache *B2DistanceCache) B2Manifold {
	polyA := B2MakeCapsule(segmentA.Point1, segmentA.Point2, 0.0)
	polyB := b2CapsulePolygon(capsuleB)
	return B2CollidePolygons(&polyA, xfA, &polyB, xfB, cache)
}

/// Compute the contact manifold between a polygon and capsule.
func B2CollidePolygonAndCapsule(polygonA *B2Polygon, xfA B2Transform, capsuleB *B2Capsule, xfB B2Transform, cache *B2DistanceCache) B2Manifold {
	polyB := b2CapsulePolygon(capsuleB)
	return B2CollidePolygons(polygonA, xfA, &polyB, xfB, cache)
}

package box2d

// Circle contacts have a single rounded feature on at least one side so
// they produce at most one point and always use id 0.

// Build a one point manifold from the surface points cA and cB, given in
// A's local frame. The contact sits half way between the two surfaces.
func b2MakeRoundManifold(xfA B2Transform, xfB B2Transform, normal B2Vec2, cA B2Vec2, cB B2Vec2) B2Manifold {
	var manifold B2Manifold

	contact := B2Vec2Lerp(cA, cB, 0.5)
	manifold.Normal = B2RotVec2Mul(xfA.Q, normal)

	mp := &manifold.Points[0]
	mp.AnchorA = B2RotVec2Mul(xfA.Q, contact)
	mp.AnchorB = B2Vec2Add(mp.AnchorA, B2Vec2Sub(xfA.P, xfB.P))
	mp.Point = B2Vec2Add(xfA.P, mp.AnchorA)
	mp.Separation = B2Vec2Dot(B2Vec2Sub(cB, cA), normal)
	mp.Id = 0
	manifold.PointCount = 1

	return manifold
}

/// Compute the contact manifold between two circles.
func B2CollideCircles(circleA *B2Circle, xfA B2Transform, circleB *B2Circle, xfB B2Transform) B2Manifold {
	xf := B2TransformMulT(xfA, xfB)

	pointA := circleA.Center
	pointB := B2TransformVec2Mul(xf, circleB.Center)

	normal, distance := B2GetLengthAndNormalize(B2Vec2Sub(pointB, pointA))
	if distance == 0.0 {
		// concentric
		normal = MakeB2Vec2(1.0, 0.0)
	}

	radiusA := circleA.Radius
	radiusB := circleB.Radius

	separation := distance - radiusA - radiusB
	if separation > B2_speculativeDistance {
		return B2_emptyManifold
	}

	cA := B2Vec2MulAdd(pointA, radiusA, normal)
	cB := B2Vec2MulAdd(pointB, -radiusB, normal)
	return b2MakeRoundManifold(xfA, xfB, normal, cA, cB)
}

/// Compute the contact manifold between a capsule and circle.
func B2CollideCapsuleAndCircle(capsuleA *B2Capsule, xfA B2Transform, circleB *B2Circle, xfB B2Transform) B2Manifold {
	xf := B2TransformMulT(xfA, xfB)

	// Compute circle position in the frame of the capsule.
	pB := B2TransformVec2Mul(xf, circleB.Center)

	// Compute closest point
	p1 := capsuleA.Center1
	p2 := capsuleA.Center2

	e := B2Vec2Sub(p2, p1)

	// dot(p - pA, e) = 0
	// pA = p1 + s1 * e
	// s1 = dot(p - p1, e)
	var pA B2Vec2
	s1 := B2Vec2Dot(B2Vec2Sub(pB, p1), e)
	s2 := B2Vec2Dot(B2Vec2Sub(p2, pB), e)
	ee := B2Vec2Dot(e, e)
	if s1 < 0.0 || ee < B2_epsilon*B2_epsilon {
		// p1 region
		pA = p1
	} else if s2 < 0.0 {
		// p2 region
		pA = p2
	} else {
		// circle between p1 and p2
		s := s1 / ee
		pA = B2Vec2MulAdd(p1, s, e)
	}

	normal, distance := B2GetLengthAndNormalize(B2Vec2Sub(pB, pA))
	if distance == 0.0 {
		// center on the core segment, push out along the segment normal
		normal = B2NormalizeOr(B2Vec2RightPerp(e), MakeB2Vec2(1.0, 0.0))
	}

	radiusA := capsuleA.Radius
	radiusB := circleB.Radius
	separation := distance - radiusA - radiusB
	if separation > B2_speculativeDistance {
		return B2_emptyManifold
	}

	cA := B2Vec2MulAdd(pA, radiusA, normal)
	cB := B2Vec2MulAdd(pB, -radiusB, normal)
	return b2MakeRoundManifold(xfA, xfB, normal, cA, cB)
}

/// Compute the contact manifold between a segment and a circle.
func B2CollideSegmentAndCircle(segmentA *B2Segment, xfA B2Transform, circleB *B2Circle, xfB B2Transform) B2Manifold {
	capsuleA := MakeB2Capsule(segmentA.Point1, segmentA.Point2, 0.0)
	return B2CollideCapsuleAndCircle(&capsuleA, xfA, circleB, xfB)
}

// Find the polygon edge that supports the circle center. Edges whose
// separation is within B2_featureTolerance of the best are ties, and the tie
// goes to the normal that best faces the circle as seen from the centroid.
func b2FindCircleReferenceEdge(polygon *B2Polygon, c B2Vec2) (int, float64) {
	normals := &polygon.Normals
	vertices := &polygon.Vertices

	separation := -B2_maxFloat
	for i := 0; i < polygon.Count; i++ {
		s := B2Vec2Dot(normals[i], B2Vec2Sub(c, vertices[i]))
		if s > separation {
			separation = s
		}
	}

	dir := B2NormalizeOr(B2Vec2Sub(c, polygon.Centroid), MakeB2Vec2(1.0, 0.0))

	normalIndex := -1
	bestDot := -B2_maxFloat
	bestSeparation := separation
	for i := 0; i < polygon.Count; i++ {
		s := B2Vec2Dot(normals[i], B2Vec2Sub(c, vertices[i]))
		if s < separation-B2_featureTolerance {
			continue
		}

		d := B2Vec2Dot(normals[i], dir)
		if normalIndex < 0 || d > bestDot {
			normalIndex = i
			bestDot = d
			bestSeparation = s
		}
	}

	return normalIndex, bestSeparation
}

/// Compute the contact manifold between a polygon and a circle.
func B2CollidePolygonAndCircle(polygonA *B2Polygon, xfA B2Transform, circleB *B2Circle, xfB B2Transform) B2Manifold {
	if polygonA.Count == 0 {
		return B2_emptyManifold
	}

	xf := B2TransformMulT(xfA, xfB)

	// Compute circle position in the frame of the polygon.
	c := B2TransformVec2Mul(xf, circleB.Center)
	radiusA := polygonA.Radius
	radiusB := circleB.Radius
	radius := radiusA + radiusB

	// Find the min separating edge.
	normalIndex, separation := b2FindCircleReferenceEdge(polygonA, c)

	if separation-radius > B2_speculativeDistance {
		return B2_emptyManifold
	}

	// Vertices of the reference edge.
	vertIndex1 := normalIndex
	vertIndex2 := 0
	if vertIndex1+1 < polygonA.Count {
		vertIndex2 = vertIndex1 + 1
	}

	v1 := polygonA.Vertices[vertIndex1]
	v2 := polygonA.Vertices[vertIndex2]

	// Compute barycentric coordinates
	u1 := B2Vec2Dot(B2Vec2Sub(c, v1), B2Vec2Sub(v2, v1))
	u2 := B2Vec2Dot(B2Vec2Sub(c, v2), B2Vec2Sub(v1, v2))

	if u1 < 0.0 && separation > B2_featureTolerance {
		// Circle center is closest to v1 and safely outside the polygon
		normal := B2NormalizeOr(B2Vec2Sub(c, v1), polygonA.Normals[normalIndex])
		separation = B2Vec2Dot(B2Vec2Sub(c, v1), normal)
		if separation-radius > B2_speculativeDistance {
			return B2_emptyManifold
		}

		cA := B2Vec2MulAdd(v1, radiusA, normal)
		cB := B2Vec2MulSub(c, radiusB, normal)
		return b2MakeRoundManifold(xfA, xfB, normal, cA, cB)
	}

	if u2 < 0.0 && separation > B2_featureTolerance {
		// Circle center is closest to v2 and safely outside the polygon
		normal := B2NormalizeOr(B2Vec2Sub(c, v2), polygonA.Normals[normalIndex])
		separation = B2Vec2Dot(B2Vec2Sub(c, v2), normal)
		if separation-radius > B2_speculativeDistance {
			return B2_emptyManifold
		}

		cA := B2Vec2MulAdd(v2, radiusA, normal)
		cB := B2Vec2MulSub(c, radiusB, normal)
		return b2MakeRoundManifold(xfA, xfB, normal, cA, cB)
	}

	// Circle center is between v1 and v2. Center may be inside polygon
	normal := polygonA.Normals[normalIndex]

	// cA is the projection of the circle center onto to the reference edge
	cA := B2Vec2MulAdd(c, radiusA-B2Vec2Dot(B2Vec2Sub(c, v1), normal), normal)

	// cB is the deepest point on the circle with respect to the reference edge
	cB := B2Vec2MulSub(c, radiusB, normal)

	return b2MakeRoundManifold(xfA, xfB, normal, cA, cB)
}

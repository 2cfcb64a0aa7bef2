package box2d

// Smooth segments collide on their right side only. The ghost vertices give
// the normals of the neighbouring segments so contacts that belong to a
// neighbour can be skipped or snapped to this segment's normal.
// See https://box2d.org/posts/2020/06/ghost-collisions/

// This is called when the normal is known. The normal points from a to b in a's local frame.
// Returns no points when the projections of the two segments do not overlap.
func b2ClipSegments(a1 B2Vec2, a2 B2Vec2, b1 B2Vec2, b2 B2Vec2, normal B2Vec2, ra float64, rb float64, id1 uint16, id2 uint16) B2Manifold {
	var manifold B2Manifold

	tangent := B2Vec2LeftPerp(normal)

	// Barycentric coordinates of each point relative to a1 along tangent
	lower1 := 0.0
	upper1 := B2Vec2Dot(B2Vec2Sub(a2, a1), tangent)

	// Incident edge points opposite of tangent due to CCW winding
	upper2 := B2Vec2Dot(B2Vec2Sub(b1, a1), tangent)
	lower2 := B2Vec2Dot(B2Vec2Sub(b2, a1), tangent)

	// Do segments overlap?
	if upper2 < lower1 || upper1 < lower2 {
		return manifold
	}

	var vLower B2Vec2
	if lower2 < lower1 && upper2-lower2 > B2_epsilon {
		vLower = B2Vec2Lerp(b2, b1, (lower1-lower2)/(upper2-lower2))
	} else {
		vLower = b2
	}

	var vUpper B2Vec2
	if upper2 > upper1 && upper2-lower2 > B2_epsilon {
		vUpper = B2Vec2Lerp(b2, b1, (upper1-lower2)/(upper2-lower2))
	} else {
		vUpper = b1
	}

	separationLower := B2Vec2Dot(B2Vec2Sub(vLower, a1), normal)
	separationUpper := B2Vec2Dot(B2Vec2Sub(vUpper, a1), normal)

	// put contact points at midpoint, accounting for capsule radius
	vLower = B2Vec2MulAdd(vLower, 0.5*(ra-rb-separationLower), normal)
	vUpper = B2Vec2MulAdd(vUpper, 0.5*(ra-rb-separationUpper), normal)

	radius := ra + rb

	manifold.Normal = normal

	if separationLower-radius <= B2_speculativeDistance {
		cp := &manifold.Points[manifold.PointCount]
		cp.AnchorA = vLower
		cp.Separation = separationLower - radius
		cp.Id = id1
		manifold.PointCount++
	}

	if separationUpper-radius <= B2_speculativeDistance {
		cp := &manifold.Points[manifold.PointCount]
		cp.AnchorA = vUpper
		cp.Separation = separationUpper - radius
		cp.Id = id2
		manifold.PointCount++
	}

	return manifold
}

var b2NormalType = struct {
	// This normal points into a neighbour's region.
	E_skip uint8

	// This normal is ok to use.
	E_admit uint8

	// This normal is in a concave region and must be replaced by the segment normal.
	E_snap uint8
}{
	E_skip:  0,
	E_admit: 1,
	E_snap:  2,
}

type b2SmoothSegmentParams struct {
	edge1   B2Vec2
	normal0 B2Vec2
	normal2 B2Vec2
	convex1 bool
	convex2 bool
}

func b2MakeSmoothSegmentParams(segment *B2SmoothSegment) b2SmoothSegmentParams {
	var params b2SmoothSegmentParams

	p1 := segment.Segment.Point1
	p2 := segment.Segment.Point2

	edge1 := B2NormalizeOr(B2Vec2Sub(p2, p1), MakeB2Vec2(1.0, 0.0))
	params.edge1 = edge1

	const convexTol = 0.01

	edge0 := B2NormalizeOr(B2Vec2Sub(p1, segment.Ghost1), edge1)
	params.normal0 = B2Vec2RightPerp(edge0)
	params.convex1 = B2Vec2Cross(edge0, edge1) >= convexTol

	edge2 := B2NormalizeOr(B2Vec2Sub(segment.Ghost2, p2), edge1)
	params.normal2 = B2Vec2RightPerp(edge2)
	params.convex2 = B2Vec2Cross(edge1, edge2) >= convexTol

	return params
}

// Evaluate Gauss map
func b2ClassifyNormal(params b2SmoothSegmentParams, normal B2Vec2) uint8 {
	const sinTol = 0.01

	if B2Vec2Dot(normal, params.edge1) <= 0.0 {
		// Normal points towards the segment tail
		if params.convex1 {
			if B2Vec2Cross(normal, params.normal0) > sinTol {
				return b2NormalType.E_skip
			}

			return b2NormalType.E_admit
		}

		return b2NormalType.E_snap
	}

	// Normal points towards segment head
	if params.convex2 {
		if B2Vec2Cross(params.normal2, normal) > sinTol {
			return b2NormalType.E_skip
		}

		return b2NormalType.E_admit
	}

	return b2NormalType.E_snap
}

/// Compute the contact manifold between a smooth segment and a circle.
func B2CollideSmoothSegmentAndCircle(segmentA *B2SmoothSegment, xfA B2Transform, circleB *B2Circle, xfB B2Transform) B2Manifold {
	xf := B2TransformMulT(xfA, xfB)

	// Compute circle in frame of segment
	pB := B2TransformVec2Mul(xf, circleB.Center)

	p1 := segmentA.Segment.Point1
	p2 := segmentA.Segment.Point2
	e := B2Vec2Sub(p2, p1)

	// Normal points to the right
	offset := B2Vec2Cross(B2Vec2Sub(pB, p1), e)
	if offset < 0.0 {
		// one-sided
		return B2_emptyManifold
	}

	// Barycentric coordinates
	u := B2Vec2Dot(e, B2Vec2Sub(p2, pB))
	v := B2Vec2Dot(e, B2Vec2Sub(pB, p1))

	var pA B2Vec2
	if v <= 0.0 {
		// Behind point1?
		// Is pB in the Voronoi region of the previous edge?
		prevEdge := B2Vec2Sub(p1, segmentA.Ghost1)
		uPrev := B2Vec2Dot(prevEdge, B2Vec2Sub(pB, p1))
		if uPrev <= 0.0 {
			return B2_emptyManifold
		}

		pA = p1
	} else if u <= 0.0 {
		// Ahead of point2?
		nextEdge := B2Vec2Sub(segmentA.Ghost2, p2)
		vNext := B2Vec2Dot(nextEdge, B2Vec2Sub(pB, p2))

		// Is pB in the Voronoi region of the next edge?
		if vNext > 0.0 {
			return B2_emptyManifold
		}

		pA = p2
	} else {
		ee := B2Vec2Dot(e, e)
		pA = MakeB2Vec2(p1.X+(v/ee)*e.X, p1.Y+(v/ee)*e.Y)
	}

	normal, distance := B2GetLengthAndNormalize(B2Vec2Sub(pB, pA))
	if distance == 0.0 {
		normal = B2NormalizeOr(B2Vec2RightPerp(e), MakeB2Vec2(1.0, 0.0))
	}

	radius := circleB.Radius
	separation := distance - radius
	if separation > B2_speculativeDistance {
		return B2_emptyManifold
	}

	cA := pA
	cB := B2Vec2MulAdd(pB, -radius, normal)
	return b2MakeRoundManifold(xfA, xfB, normal, cA, cB)
}

/// Compute the contact manifold between a smooth segment and a rounded polygon.
func B2CollideSmoothSegmentAndCapsule(segmentA *B2SmoothSegment, xfA B2Transform, capsuleB *B2Capsule, xfB B2Transform, cache *B2DistanceCache) B2Manifold {
	polyB := b2CapsulePolygon(capsuleB)
	return B2CollideSmoothSegmentAndPolygon(segmentA, xfA, &polyB, xfB, cache)
}

/// Compute the contact manifold between a smooth segment and a rounded polygon.
func B2CollideSmoothSegmentAndPolygon(segmentA *B2SmoothSegment, xfA B2Transform, polygonB *B2Polygon, xfB B2Transform, cache *B2DistanceCache) B2Manifold {
	count := polygonB.Count
	if count == 0 {
		return B2_emptyManifold
	}

	if cache == nil {
		cache = &B2DistanceCache{}
	}

	xf := B2TransformMulT(xfA, xfB)

	centroidB := B2TransformVec2Mul(xf, polygonB.Centroid)
	radiusB := polygonB.Radius

	p1 := segmentA.Segment.Point1
	p2 := segmentA.Segment.Point2

	params := b2MakeSmoothSegmentParams(segmentA)

	// Normal points to the right
	normal1 := B2Vec2RightPerp(params.edge1)
	behind1 := B2Vec2Dot(normal1, B2Vec2Sub(centroidB, p1)) < 0.0
	behind0 := true
	behind2 := true
	if params.convex1 {
		behind0 = B2Vec2Dot(params.normal0, B2Vec2Sub(centroidB, p1)) < 0.0
	}

	if params.convex2 {
		behind2 = B2Vec2Dot(params.normal2, B2Vec2Sub(centroidB, p2)) < 0.0
	}

	if behind1 && behind0 && behind2 {
		// one-sided collision
		return B2_emptyManifold
	}

	// Get polygonB in frameA
	var vertices [B2_maxPolygonVertices]B2Vec2
	var normals [B2_maxPolygonVertices]B2Vec2
	for i := 0; i < count; i++ {
		vertices[i] = B2TransformVec2Mul(xf, polygonB.Vertices[i])
		normals[i] = B2RotVec2Mul(xf.Q, polygonB.Normals[i])
	}

	// Distance doesn't work correctly with partial polygons
	segmentVertices := segmentA.Segment.vertices()

	var input B2DistanceInput
	input.ProxyA = B2MakeProxy(segmentVertices[:], 0.0)
	input.ProxyB = B2MakeProxy(vertices[:count], 0.0)
	input.TransformA = MakeB2Transform()
	input.TransformB = MakeB2Transform()
	input.UseRadii = false

	output := B2ShapeDistance(cache, input)

	if output.Distance > radiusB+B2_speculativeDistance {
		return B2_emptyManifold
	}

	// Snap concave normals for partial polygon
	n0 := normal1
	if params.convex1 {
		n0 = params.normal0
	}

	n2 := normal1
	if params.convex2 {
		n2 = params.normal2
	}

	// Move a manifold built in the segment frame to world space.
	finish := func(manifold B2Manifold) B2Manifold {
		b2LocalManifoldToWorld(&manifold, xfA, xfB, B2Vec2_zero)
		return manifold
	}

	// Clip the segment against polygon edge ia1 -> ia2 whose normal is the reference.
	clipToPolygonEdge := func(ia1 int) B2Manifold {
		ia2 := b2NextIndex(ia1, count)
		a1 := vertices[ia1]
		a2 := vertices[ia2]
		n := normals[ia1]

		// Find incident segment vertex
		dot1 := B2Vec2Dot(n, B2Vec2Sub(p1, a1))
		dot2 := B2Vec2Dot(n, B2Vec2Sub(p2, a1))

		if dot1 < dot2 {
			if B2Vec2Dot(n0, n) < B2Vec2Dot(normal1, n) {
				// Neighbor is incident
				return B2_emptyManifold
			}
		} else {
			if B2Vec2Dot(n2, n) < B2Vec2Dot(normal1, n) {
				// Neighbor is incident
				return B2_emptyManifold
			}
		}

		manifold := b2ClipSegments(a1, a2, p1, p2, n, radiusB, 0.0, B2MakeId(1, ia1), B2MakeId(0, ia2))
		manifold.Normal = n.OperatorNegate()
		return finish(manifold)
	}

	// Index of incident vertex on polygon
	incidentIndex := -1
	incidentNormal := -1

	useSAT := true
	if behind1 == false && output.Distance > 0.1*B2_linearSlop && (cache.Count == 1 || cache.Count == 2) {
		// The closest features may be two vertices or an edge and a vertex even when there should
		// be two contact points
		useSAT = false

		if cache.Count == 1 {
			// vertex-vertex collision
			pA := output.PointA
			pB := output.PointB

			normal := B2NormalizeOr(B2Vec2Sub(pB, pA), normal1)

			switch b2ClassifyNormal(params, normal) {
			case b2NormalType.E_skip:
				return B2_emptyManifold

			case b2NormalType.E_admit:
				manifold := b2MakeRoundManifold(xfA, xfB, normal, pA, B2Vec2MulAdd(pB, -radiusB, normal))
				manifold.Points[0].Id = B2MakeId(int(cache.IndexA[0]), int(cache.IndexB[0]))
				return manifold
			}

			// fall through snap
			incidentIndex = int(cache.IndexB[0])
		} else {
			// vertex-edge collision
			ia1 := int(cache.IndexA[0])
			ia2 := int(cache.IndexA[1])
			ib1 := int(cache.IndexB[0])
			ib2 := int(cache.IndexB[1])

			if ia1 == ia2 {
				// 1 point on A, expect 2 points on B

				// Find polygon normal most aligned with vector between closest points.
				// This effectively sorts ib1 and ib2
				normalB := B2Vec2Sub(output.PointA, output.PointB)
				dot1 := B2Vec2Dot(normalB, normals[ib1])
				dot2 := B2Vec2Dot(normalB, normals[ib2])
				ib := ib2
				if dot1 > dot2 {
					ib = ib1
				}

				// Use accurate normal
				normalB = normals[ib]

				switch b2ClassifyNormal(params, normalB.OperatorNegate()) {
				case b2NormalType.E_skip:
					return B2_emptyManifold

				case b2NormalType.E_admit:
					return clipToPolygonEdge(ib)
				}

				// fall through snap
				incidentNormal = ib
			} else {
				// Get index of incident polygonB vertex
				dot1 := B2Vec2Dot(normal1, B2Vec2Sub(vertices[ib1], p1))
				dot2 := B2Vec2Dot(normal1, B2Vec2Sub(vertices[ib2], p2))
				if dot1 < dot2 {
					incidentIndex = ib1
				} else {
					incidentIndex = ib2
				}
			}
		}
	}

	if useSAT {
		// SAT edge normal
		edgeSeparation := B2_maxFloat

		for i := 0; i < count; i++ {
			s := B2Vec2Dot(normal1, B2Vec2Sub(vertices[i], p1))
			if s < edgeSeparation {
				edgeSeparation = s
				incidentIndex = i
			}
		}

		// Check convex neighbor for edge separation
		if params.convex1 {
			s0 := B2_maxFloat

			for i := 0; i < count; i++ {
				s := B2Vec2Dot(params.normal0, B2Vec2Sub(vertices[i], p1))
				if s < s0 {
					s0 = s
				}
			}

			if s0 > edgeSeparation {
				edgeSeparation = s0

				// Indicate neighbor owns edge separation
				incidentIndex = -1
			}
		}

		// Check convex neighbor for edge separation
		if params.convex2 {
			s2 := B2_maxFloat

			for i := 0; i < count; i++ {
				s := B2Vec2Dot(params.normal2, B2Vec2Sub(vertices[i], p2))
				if s < s2 {
					s2 = s
				}
			}

			if s2 > edgeSeparation {
				edgeSeparation = s2

				// Indicate neighbor owns edge separation
				incidentIndex = -1
			}
		}

		// SAT polygon normals
		polygonSeparation := -B2_maxFloat
		referenceIndex := -1

		for i := 0; i < count; i++ {
			n := normals[i]

			if b2ClassifyNormal(params, n.OperatorNegate()) != b2NormalType.E_admit {
				continue
			}

			p := vertices[i]
			s1 := B2Vec2Dot(n, B2Vec2Sub(p2, p))
			s2 := B2Vec2Dot(n, B2Vec2Sub(p1, p))
			s := s1
			if s2 < s {
				s = s2
			}

			if s > polygonSeparation {
				polygonSeparation = s
				referenceIndex = i
			}
		}

		if polygonSeparation > edgeSeparation {
			return clipToPolygonEdge(referenceIndex)
		}

		if incidentIndex == -1 {
			// neighboring segment is the separating axis
			return B2_emptyManifold
		}

		// fall through segment normal axis
	}

	// Segment normal

	// Find incident polygon normal: normal adjacent to deepest vertex that is most anti-parallel to segment normal
	var ib1, ib2 int

	if incidentNormal != -1 {
		ib1 = incidentNormal
		ib2 = b2NextIndex(ib1, count)
	} else {
		i2 := incidentIndex
		i1 := count - 1
		if i2 > 0 {
			i1 = i2 - 1
		}

		d1 := B2Vec2Dot(normal1, normals[i1])
		d2 := B2Vec2Dot(normal1, normals[i2])
		if d1 < d2 {
			ib1 = i1
			ib2 = i2
		} else {
			ib1 = i2
			ib2 = b2NextIndex(i2, count)
		}
	}

	b1 := vertices[ib1]
	b2 := vertices[ib2]

	manifold := b2ClipSegments(p1, p2, b1, b2, normal1, 0.0, radiusB, B2MakeId(0, ib2), B2MakeId(1, ib1))
	return finish(manifold)
}

package box2d

// Polygon manifolds are built in a local frame: the origin sits on the first
// vertex of polygon A and the axes are A's. AnchorA and Normal hold local
// values until b2LocalManifoldToWorld moves them out.

// Move a manifold built in A's shifted local frame into world space.
func b2LocalManifoldToWorld(manifold *B2Manifold, xfA B2Transform, xfB B2Transform, origin B2Vec2) {
	manifold.Normal = B2RotVec2Mul(xfA.Q, manifold.Normal)
	for i := 0; i < manifold.PointCount; i++ {
		mp := &manifold.Points[i]

		// anchor points relative to shape origin in world space
		mp.AnchorA = B2RotVec2Mul(xfA.Q, B2Vec2Add(mp.AnchorA, origin))
		mp.AnchorB = B2Vec2Add(mp.AnchorA, B2Vec2Sub(xfA.P, xfB.P))
		mp.Point = B2Vec2Add(xfA.P, mp.AnchorA)
	}
}

// One point manifold between the vertex vA on A and the vertex vB on B, in
// the local frame. Coincident vertices use the fallback normal.
func b2VertexVertexManifold(vA B2Vec2, radiusA float64, vB B2Vec2, radiusB float64, id uint16, fallback B2Vec2) B2Manifold {
	normal, distance := B2GetLengthAndNormalize(B2Vec2Sub(vB, vA))
	if distance == 0.0 {
		normal = fallback
	}

	separation := distance - radiusA - radiusB
	if separation > B2_speculativeDistance {
		return B2_emptyManifold
	}

	c1 := B2Vec2MulAdd(vA, radiusA, normal)
	c2 := B2Vec2MulAdd(vB, -radiusB, normal)

	var manifold B2Manifold
	manifold.Normal = normal
	mp := &manifold.Points[0]
	mp.AnchorA = B2Vec2Lerp(c1, c2, 0.5)
	mp.Separation = separation
	mp.Id = id
	manifold.PointCount = 1
	return manifold
}

func b2NextIndex(i int, count int) int {
	if i+1 < count {
		return i + 1
	}
	return 0
}

// Find the max separation between poly1 and poly2 using edge normals from poly1.
func b2FindMaxSeparation(poly1 *B2Polygon, poly2 *B2Polygon) (int, float64) {
	count1 := poly1.Count
	count2 := poly2.Count
	n1s := &poly1.Normals
	v1s := &poly1.Vertices
	v2s := &poly2.Vertices

	bestIndex := 0
	maxSeparation := -B2_maxFloat
	for i := 0; i < count1; i++ {
		// Get poly1 normal in frame2.
		n := n1s[i]
		v1 := v1s[i]

		// Find the deepest point for normal i.
		si := B2_maxFloat
		for j := 0; j < count2; j++ {
			sij := B2Vec2Dot(n, B2Vec2Sub(v2s[j], v1))
			if sij < si {
				si = sij
			}
		}

		if si > maxSeparation {
			maxSeparation = si
			bestIndex = i
		}
	}

	return bestIndex, maxSeparation
}

// Find the edge of poly whose normal is most anti-parallel to the search direction.
func b2FindIncidentEdge(poly *B2Polygon, searchDirection B2Vec2) int {
	edge := 0
	minDot := B2_maxFloat
	for i := 0; i < poly.Count; i++ {
		dot := B2Vec2Dot(searchDirection, poly.Normals[i])
		if dot < minDot {
			minDot = dot
			edge = i
		}
	}
	return edge
}

// Polygon clipper used to compute contact points when there are potentially two contact points.
// The reference edge is on polyB when flip is set. Points further apart than
// the speculative distance are dropped.
func b2ClipPolygons(polyA *B2Polygon, polyB *B2Polygon, edgeA int, edgeB int, flip bool) B2Manifold {
	var manifold B2Manifold

	// reference polygon
	var poly1 *B2Polygon
	var i11, i12 int

	// incident polygon
	var poly2 *B2Polygon
	var i21, i22 int

	if flip {
		poly1 = polyB
		poly2 = polyA
		i11 = edgeB
		i12 = b2NextIndex(edgeB, polyB.Count)
		i21 = edgeA
		i22 = b2NextIndex(edgeA, polyA.Count)
	} else {
		poly1 = polyA
		poly2 = polyB
		i11 = edgeA
		i12 = b2NextIndex(edgeA, polyA.Count)
		i21 = edgeB
		i22 = b2NextIndex(edgeB, polyB.Count)
	}

	normal := poly1.Normals[i11]

	// Reference edge vertices
	v11 := poly1.Vertices[i11]
	v12 := poly1.Vertices[i12]

	// Incident edge vertices
	v21 := poly2.Vertices[i21]
	v22 := poly2.Vertices[i22]

	r1 := poly1.Radius
	r2 := poly2.Radius

	tangent := B2Vec2CrossScalarVector(1.0, normal)

	lower1 := 0.0
	upper1 := B2Vec2Dot(B2Vec2Sub(v12, v11), tangent)

	// Incident edge points opposite of tangent due to CCW winding
	upper2 := B2Vec2Dot(B2Vec2Sub(v21, v11), tangent)
	lower2 := B2Vec2Dot(B2Vec2Sub(v22, v11), tangent)

	if upper2 < lower1 || upper1 < lower2 {
		// SAT and GJK disagree slightly and the edges do not overlap along the
		// tangent. Use the closest vertices instead.
		result := B2SegmentDistance(v11, v12, v21, v22)
		ref := i11
		if result.Fraction1 > 0.5 {
			ref = i12
		}
		inc := i21
		if result.Fraction2 > 0.5 {
			inc = i22
		}

		if flip {
			manifold = b2VertexVertexManifold(result.Closest2, r2, result.Closest1, r1, B2MakeId(inc, ref), normal.OperatorNegate())
		} else {
			manifold = b2VertexVertexManifold(result.Closest1, r1, result.Closest2, r2, B2MakeId(ref, inc), normal)
		}
		return manifold
	}

	var vLower B2Vec2
	if lower2 < lower1 && upper2-lower2 > B2_epsilon {
		vLower = B2Vec2Lerp(v22, v21, (lower1-lower2)/(upper2-lower2))
	} else {
		vLower = v22
	}

	var vUpper B2Vec2
	if upper2 > upper1 && upper2-lower2 > B2_epsilon {
		vUpper = B2Vec2Lerp(v22, v21, (upper1-lower2)/(upper2-lower2))
	} else {
		vUpper = v21
	}

	separationLower := B2Vec2Dot(B2Vec2Sub(vLower, v11), normal)
	separationUpper := B2Vec2Dot(B2Vec2Sub(vUpper, v11), normal)

	// put contact points at midpoint, accounting for polygon radius
	vLower = B2Vec2MulAdd(vLower, 0.5*(r1-r2-separationLower), normal)
	vUpper = B2Vec2MulAdd(vUpper, 0.5*(r1-r2-separationUpper), normal)

	radius := r1 + r2

	type clipPoint struct {
		anchor     B2Vec2
		separation float64
		id         uint16
	}

	var points [2]clipPoint
	if flip == false {
		manifold.Normal = normal
		points[0] = clipPoint{vLower, separationLower - radius, B2MakeId(i11, i22)}
		points[1] = clipPoint{vUpper, separationUpper - radius, B2MakeId(i12, i21)}
	} else {
		manifold.Normal = normal.OperatorNegate()
		points[0] = clipPoint{vUpper, separationUpper - radius, B2MakeId(i21, i12)}
		points[1] = clipPoint{vLower, separationLower - radius, B2MakeId(i22, i11)}
	}

	for _, p := range points {
		if p.separation > B2_speculativeDistance {
			continue
		}

		mp := &manifold.Points[manifold.PointCount]
		mp.AnchorA = p.anchor
		mp.Separation = p.separation
		mp.Id = p.id
		manifold.PointCount++
	}

	return manifold
}

/// Compute the contact manifold between two polygons.
/// The cache holds the closest features found by the previous call for this pair.
func B2CollidePolygons(polygonA *B2Polygon, xfA B2Transform, polygonB *B2Polygon, xfB B2Transform, cache *B2DistanceCache) B2Manifold {
	if polygonA.Count == 0 || polygonB.Count == 0 {
		return B2_emptyManifold
	}

	if cache == nil {
		cache = &B2DistanceCache{}
	}

	origin := polygonA.Vertices[0]

	// Shift polyA to origin
	// pw = q * pb + p
	// pw = q * (pbs + origin) + p
	// pw = q * pbs + (p + q * origin)
	sfA := MakeB2TransformByPositionAndRotation(B2Vec2Add(xfA.P, B2RotVec2Mul(xfA.Q, origin)), xfA.Q)
	xf := B2TransformMulT(sfA, xfB)

	localPolyA := *polygonA
	for i := 0; i < localPolyA.Count; i++ {
		localPolyA.Vertices[i] = B2Vec2Sub(polygonA.Vertices[i], origin)
	}
	localPolyA.Centroid = B2Vec2Sub(polygonA.Centroid, origin)

	// Put polyB in polyA's frame to reduce round-off error
	var localPolyB B2Polygon
	localPolyB.Count = polygonB.Count
	localPolyB.Radius = polygonB.Radius
	localPolyB.Centroid = B2TransformVec2Mul(xf, polygonB.Centroid)
	for i := 0; i < localPolyB.Count; i++ {
		localPolyB.Vertices[i] = B2TransformVec2Mul(xf, polygonB.Vertices[i])
		localPolyB.Normals[i] = B2RotVec2Mul(xf.Q, polygonB.Normals[i])
	}

	radius := localPolyA.Radius + localPolyB.Radius

	manifold := b2CollideLocalPolygons(&localPolyA, &localPolyB, radius, cache)
	b2LocalManifoldToWorld(&manifold, xfA, xfB, origin)
	return manifold
}

func b2CollideLocalPolygons(localPolyA *B2Polygon, localPolyB *B2Polygon, radius float64, cache *B2DistanceCache) B2Manifold {
	// Closest features of the cores. This also refreshes the cache for the next step.
	var input B2DistanceInput
	input.ProxyA = B2MakeProxy(localPolyA.Vertices[:localPolyA.Count], 0.0)
	input.ProxyB = B2MakeProxy(localPolyB.Vertices[:localPolyB.Count], 0.0)
	input.TransformA = MakeB2Transform()
	input.TransformB = MakeB2Transform()
	input.UseRadii = false

	output := B2ShapeDistance(cache, input)

	if output.Distance > radius+B2_speculativeDistance {
		return B2_emptyManifold
	}

	// Using slop here to ensure vertex-vertex normal vectors can be safely normalized.
	if output.Distance >= 0.1*B2_linearSlop && cache.Count == 1 {
		// vertex-vertex collision
		ia := int(cache.IndexA[0])
		ib := int(cache.IndexB[0])
		return b2VertexVertexManifold(
			output.PointA, localPolyA.Radius,
			output.PointB, localPolyB.Radius,
			B2MakeId(ia, ib), localPolyA.Normals[ia],
		)
	}

	edgeA, separationA := b2FindMaxSeparation(localPolyA, localPolyB)
	edgeB, separationB := b2FindMaxSeparation(localPolyB, localPolyA)

	if separationA > B2_speculativeDistance+radius || separationB > B2_speculativeDistance+radius {
		return B2_emptyManifold
	}

	// Find incident edge
	flip := false
	if separationB > separationA+0.1*B2_linearSlop {
		flip = true

		// Find the incident edge on polyA
		edgeA = b2FindIncidentEdge(localPolyA, localPolyB.Normals[edgeB])
	} else {
		// Find the incident edge on polyB
		edgeB = b2FindIncidentEdge(localPolyB, localPolyA.Normals[edgeA])
	}

	separation := separationA
	if separationB > separation {
		separation = separationB
	}

	// Using slop here to ensure vertex-vertex normal vectors can be safely normalized.
	if separation > 0.1*B2_linearSlop {
		i11 := edgeA
		i12 := b2NextIndex(edgeA, localPolyA.Count)
		i21 := edgeB
		i22 := b2NextIndex(edgeB, localPolyB.Count)

		v11 := localPolyA.Vertices[i11]
		v12 := localPolyA.Vertices[i12]
		v21 := localPolyB.Vertices[i21]
		v22 := localPolyB.Vertices[i22]

		result := B2SegmentDistance(v11, v12, v21, v22)

		fallback := localPolyA.Normals[edgeA]
		if flip {
			fallback = localPolyB.Normals[edgeB].OperatorNegate()
		}

		rA := localPolyA.Radius
		rB := localPolyB.Radius

		if result.Fraction1 == 0.0 && result.Fraction2 == 0.0 {
			// polygons are separated, vertex-vertex v11 and v21
			return b2VertexVertexManifold(v11, rA, v21, rB, B2MakeId(i11, i21), fallback)
		} else if result.Fraction1 == 0.0 && result.Fraction2 == 1.0 {
			return b2VertexVertexManifold(v11, rA, v22, rB, B2MakeId(i11, i22), fallback)
		} else if result.Fraction1 == 1.0 && result.Fraction2 == 0.0 {
			return b2VertexVertexManifold(v12, rA, v21, rB, B2MakeId(i12, i21), fallback)
		} else if result.Fraction1 == 1.0 && result.Fraction2 == 1.0 {
			return b2VertexVertexManifold(v12, rA, v22, rB, B2MakeId(i12, i22), fallback)
		}
	}

	// Edge region
	return b2ClipPolygons(localPolyA, localPolyB, edgeA, edgeB, flip)
}

/// Compute the contact manifold between an segment and a polygon.
func B2CollideSegmentAndPolygon(segmentA *B2Segment, xfA B2Transform, polygonB *B2Polygon, xfB B2Transform, cache *B2DistanceCache) B2Manifold {
	polygonA := B2MakeCapsule(segmentA.Point1, segmentA.Point2, 0.0)
	return B2CollidePolygons(&polygonA, xfA, polygonB, xfB, cache)
}

package box2d

/// A distance proxy is used by the GJK algorithm.
/// It encapsulates any shape. The vertices are stored inline so building a
/// proxy never allocates.
type B2DistanceProxy struct {
	Vertices [B2_maxPolygonVertices]B2Vec2
	Count    int
	Radius   float64
}

/// Make a proxy from a vertex list. At most B2_maxPolygonVertices are used.
func B2MakeProxy(vertices []B2Vec2, radius float64) B2DistanceProxy {
	count := len(vertices)
	if count > B2_maxPolygonVertices {
		count = B2_maxPolygonVertices
	}

	var proxy B2DistanceProxy
	for i := 0; i < count; i++ {
		proxy.Vertices[i] = vertices[i]
	}
	proxy.Count = count
	proxy.Radius = radius
	return proxy
}

/// Used to warm start B2ShapeDistance.
/// The zero value is an empty cache. One cache belongs to one shape pair and
/// must be reset when either shape of the pair is replaced.
type B2DistanceCache struct {
	Metric float64 ///< length or area
	Count  int
	IndexA [3]uint8 ///< vertices on shape A
	IndexB [3]uint8 ///< vertices on shape B
}

func (cache *B2DistanceCache) Reset() {
	*cache = B2DistanceCache{}
}

/// Input for B2ShapeDistance.
/// You have to option to use the shape radii
/// in the computation.
type B2DistanceInput struct {
	ProxyA     B2DistanceProxy
	ProxyB     B2DistanceProxy
	TransformA B2Transform
	TransformB B2Transform
	UseRadii   bool
}

/// Output for B2ShapeDistance.
type B2DistanceOutput struct {
	PointA       B2Vec2 ///< closest point on shapeA
	PointB       B2Vec2 ///< closest point on shapeB
	Distance     float64
	Iterations   int ///< number of GJK iterations used
	SimplexCount int ///< number of simplex vertices when the search stopped
}

func (p B2DistanceProxy) GetVertexCount() int {
	return p.Count
}

func (p B2DistanceProxy) GetVertex(index int) B2Vec2 {
	return p.Vertices[index]
}

func (p B2DistanceProxy) GetSupport(d B2Vec2) int {
	bestIndex := 0
	bestValue := B2Vec2Dot(p.Vertices[0], d)
	for i := 1; i < p.Count; i++ {
		value := B2Vec2Dot(p.Vertices[i], d)
		if value > bestValue {
			bestIndex = i
			bestValue = value
		}
	}

	return bestIndex
}

// GJK using Voronoi regions (Christer Ericson) and Barycentric coordinates.

type B2SimplexVertex struct {
	WA     B2Vec2  // support point in proxyA
	WB     B2Vec2  // support point in proxyB
	W      B2Vec2  // wB - wA
	A      float64 // barycentric coordinate for closest point
	IndexA int     // wA index
	IndexB int     // wB index
}

type B2Simplex struct {
	Vs    [3]B2SimplexVertex
	Count int
}

func (simplex *B2Simplex) ReadCache(cache *B2DistanceCache, proxyA *B2DistanceProxy, transformA B2Transform, proxyB *B2DistanceProxy, transformB B2Transform) {
	count := cache.Count
	if count < 0 || count > 3 {
		count = 0
	}

	// Copy data from cache. Indices that no longer fit the proxies flush the cache.
	simplex.Count = 0
	for i := 0; i < count; i++ {
		indexA := int(cache.IndexA[i])
		indexB := int(cache.IndexB[i])
		if indexA >= proxyA.Count || indexB >= proxyB.Count {
			simplex.Count = 0
			break
		}

		v := &simplex.Vs[i]
		v.IndexA = indexA
		v.IndexB = indexB
		v.WA = B2TransformVec2Mul(transformA, proxyA.GetVertex(indexA))
		v.WB = B2TransformVec2Mul(transformB, proxyB.GetVertex(indexB))
		v.W = B2Vec2Sub(v.WB, v.WA)
		v.A = 0.0
		simplex.Count++
	}

	// Compute the new simplex metric, if it is substantially different than
	// old metric then flush the simplex.
	if simplex.Count > 1 {
		metric1 := cache.Metric
		metric2 := simplex.GetMetric()
		if metric2 < 0.5*metric1 || 2.0*metric1 < metric2 || metric2 < B2_epsilon {
			// Reset the simplex.
			simplex.Count = 0
		}
	}

	// If the cache is empty or invalid ...
	if simplex.Count == 0 {
		v := &simplex.Vs[0]
		v.IndexA = 0
		v.IndexB = 0
		v.WA = B2TransformVec2Mul(transformA, proxyA.GetVertex(0))
		v.WB = B2TransformVec2Mul(transformB, proxyB.GetVertex(0))
		v.W = B2Vec2Sub(v.WB, v.WA)
		v.A = 1.0
		simplex.Count = 1
	}
}

func (simplex B2Simplex) WriteCache(cache *B2DistanceCache) {
	cache.Metric = simplex.GetMetric()
	cache.Count = simplex.Count
	for i := 0; i < simplex.Count; i++ {
		cache.IndexA[i] = uint8(simplex.Vs[i].IndexA)
		cache.IndexB[i] = uint8(simplex.Vs[i].IndexB)
	}
}

func (simplex B2Simplex) GetSearchDirection() B2Vec2 {
	switch simplex.Count {
	case 1:
		return simplex.Vs[0].W.OperatorNegate()

	case 2:
		e12 := B2Vec2Sub(simplex.Vs[1].W, simplex.Vs[0].W)
		sgn := B2Vec2Cross(e12, simplex.Vs[0].W.OperatorNegate())
		if sgn > 0.0 {
			// Origin is left of e12.
			return B2Vec2CrossScalarVector(1.0, e12)
		}

		// Origin is right of e12.
		return B2Vec2CrossVectorScalar(e12, 1.0)

	default:
		return B2Vec2_zero
	}
}

func (simplex B2Simplex) GetWitnessPoints() (B2Vec2, B2Vec2) {
	vs := &simplex.Vs
	switch simplex.Count {
	case 1:
		return vs[0].WA, vs[0].WB

	case 2:
		pA := B2Vec2Add(B2Vec2MulScalar(vs[0].A, vs[0].WA), B2Vec2MulScalar(vs[1].A, vs[1].WA))
		pB := B2Vec2Add(B2Vec2MulScalar(vs[0].A, vs[0].WB), B2Vec2MulScalar(vs[1].A, vs[1].WB))
		return pA, pB

	case 3:
		pA := B2Vec2Add(
			B2Vec2Add(
				B2Vec2MulScalar(vs[0].A, vs[0].WA),
				B2Vec2MulScalar(vs[1].A, vs[1].WA),
			),
			B2Vec2MulScalar(vs[2].A, vs[2].WA),
		)
		return pA, pA

	default:
		return B2Vec2_zero, B2Vec2_zero
	}
}

func (simplex B2Simplex) GetMetric() float64 {
	switch simplex.Count {
	case 2:
		return B2Vec2Distance(simplex.Vs[0].W, simplex.Vs[1].W)

	case 3:
		return B2Vec2Cross(
			B2Vec2Sub(simplex.Vs[1].W, simplex.Vs[0].W),
			B2Vec2Sub(simplex.Vs[2].W, simplex.Vs[0].W),
		)

	default:
		return 0.0
	}
}

// Solve a line segment using barycentric coordinates.
func (simplex *B2Simplex) Solve2() {
	w1 := simplex.Vs[0].W
	w2 := simplex.Vs[1].W
	e12 := B2Vec2Sub(w2, w1)

	// w1 region
	d12_2 := -B2Vec2Dot(w1, e12)
	if d12_2 <= 0.0 {
		// a2 <= 0, so we clamp it to 0
		simplex.Vs[0].A = 1.0
		simplex.Count = 1
		return
	}

	// w2 region
	d12_1 := B2Vec2Dot(w2, e12)
	if d12_1 <= 0.0 {
		// a1 <= 0, so we clamp it to 0
		simplex.Vs[1].A = 1.0
		simplex.Count = 1
		simplex.Vs[0] = simplex.Vs[1]
		return
	}

	// Must be in e12 region.
	inv_d12 := 1.0 / (d12_1 + d12_2)
	simplex.Vs[0].A = d12_1 * inv_d12
	simplex.Vs[1].A = d12_2 * inv_d12
	simplex.Count = 2
}

// Possible regions:
// - points[2]
// - edge points[0]-points[2]
// - edge points[1]-points[2]
// - inside the triangle
func (simplex *B2Simplex) Solve3() {
	w1 := simplex.Vs[0].W
	w2 := simplex.Vs[1].W
	w3 := simplex.Vs[2].W

	// Edge12
	e12 := B2Vec2Sub(w2, w1)
	w1e12 := B2Vec2Dot(w1, e12)
	w2e12 := B2Vec2Dot(w2, e12)
	d12_1 := w2e12
	d12_2 := -w1e12

	// Edge13
	e13 := B2Vec2Sub(w3, w1)
	w1e13 := B2Vec2Dot(w1, e13)
	w3e13 := B2Vec2Dot(w3, e13)
	d13_1 := w3e13
	d13_2 := -w1e13

	// Edge23
	e23 := B2Vec2Sub(w3, w2)
	w2e23 := B2Vec2Dot(w2, e23)
	w3e23 := B2Vec2Dot(w3, e23)
	d23_1 := w3e23
	d23_2 := -w2e23

	// Triangle123
	n123 := B2Vec2Cross(e12, e13)

	d123_1 := n123 * B2Vec2Cross(w2, w3)
	d123_2 := n123 * B2Vec2Cross(w3, w1)
	d123_3 := n123 * B2Vec2Cross(w1, w2)

	// w1 region
	if d12_2 <= 0.0 && d13_2 <= 0.0 {
		simplex.Vs[0].A = 1.0
		simplex.Count = 1
		return
	}

	// e12
	if d12_1 > 0.0 && d12_2 > 0.0 && d123_3 <= 0.0 {
		inv_d12 := 1.0 / (d12_1 + d12_2)
		simplex.Vs[0].A = d12_1 * inv_d12
		simplex.Vs[1].A = d12_2 * inv_d12
		simplex.Count = 2
		return
	}

	// e13
	if d13_1 > 0.0 && d13_2 > 0.0 && d123_2 <= 0.0 {
		inv_d13 := 1.0 / (d13_1 + d13_2)
		simplex.Vs[0].A = d13_1 * inv_d13
		simplex.Vs[2].A = d13_2 * inv_d13
		simplex.Count = 2
		simplex.Vs[1] = simplex.Vs[2]
		return
	}

	// w2 region
	if d12_1 <= 0.0 && d23_2 <= 0.0 {
		simplex.Vs[1].A = 1.0
		simplex.Count = 1
		simplex.Vs[0] = simplex.Vs[1]
		return
	}

	// w3 region
	if d13_1 <= 0.0 && d23_1 <= 0.0 {
		simplex.Vs[2].A = 1.0
		simplex.Count = 1
		simplex.Vs[0] = simplex.Vs[2]
		return
	}

	// e23
	if d23_1 > 0.0 && d23_2 > 0.0 && d123_1 <= 0.0 {
		inv_d23 := 1.0 / (d23_1 + d23_2)
		simplex.Vs[1].A = d23_1 * inv_d23
		simplex.Vs[2].A = d23_2 * inv_d23
		simplex.Count = 2
		simplex.Vs[0] = simplex.Vs[2]
		return
	}

	// Must be in triangle123
	inv_d123 := 1.0 / (d123_1 + d123_2 + d123_3)
	simplex.Vs[0].A = d123_1 * inv_d123
	simplex.Vs[1].A = d123_2 * inv_d123
	simplex.Vs[2].A = d123_3 * inv_d123
	simplex.Count = 3
}

const b2_gjkMaxIters = 20

/// Compute the closest points between two shapes represented as point clouds.
/// The cache is read to seed the simplex and rewritten with the final
/// simplex. A nil cache starts from scratch. Empty proxies give a zero output.
func B2ShapeDistance(cache *B2DistanceCache, input B2DistanceInput) B2DistanceOutput {
	var output B2DistanceOutput

	proxyA := &input.ProxyA
	proxyB := &input.ProxyB
	if proxyA.Count == 0 || proxyB.Count == 0 {
		return output
	}

	if cache == nil {
		cache = &B2DistanceCache{}
	}

	transformA := input.TransformA
	transformB := input.TransformB

	// Initialize the simplex.
	var simplex B2Simplex
	simplex.ReadCache(cache, proxyA, transformA, proxyB, transformB)

	vertices := &simplex.Vs

	// These store the vertices of the last simplex so that we
	// can check for duplicates and prevent cycling.
	var saveA, saveB [3]int
	saveCount := 0

	// Main iteration loop.
	iter := 0
	for iter < b2_gjkMaxIters {
		// Copy simplex so we can identify duplicates.
		saveCount = simplex.Count
		for i := 0; i < saveCount; i++ {
			saveA[i] = vertices[i].IndexA
			saveB[i] = vertices[i].IndexB
		}

		switch simplex.Count {
		case 2:
			simplex.Solve2()

		case 3:
			simplex.Solve3()
		}

		// If we have 3 points, then the origin is in the corresponding triangle.
		if simplex.Count == 3 {
			break
		}

		// Get search direction.
		d := simplex.GetSearchDirection()

		// Ensure the search direction is numerically fit.
		if d.LengthSquared() < B2_epsilon*B2_epsilon {
			// The origin is probably contained by a line segment
			// or triangle. Thus the shapes are overlapped.

			// We can't return zero here even though there may be overlap.
			// In case the simplex is a point, segment, or triangle it is difficult
			// to determine if the origin is contained in the CSO or very close to it.
			break
		}

		// Compute a tentative new simplex vertex using support points.
		vertex := &vertices[simplex.Count]
		vertex.IndexA = proxyA.GetSupport(B2RotVec2MulT(transformA.Q, d.OperatorNegate()))
		vertex.WA = B2TransformVec2Mul(transformA, proxyA.GetVertex(vertex.IndexA))
		vertex.IndexB = proxyB.GetSupport(B2RotVec2MulT(transformB.Q, d))
		vertex.WB = B2TransformVec2Mul(transformB, proxyB.GetVertex(vertex.IndexB))
		vertex.W = B2Vec2Sub(vertex.WB, vertex.WA)

		// Iteration count is equated to the number of support point calls.
		iter++

		// Check for duplicate support points. This is the main termination criteria.
		duplicate := false
		for i := 0; i < saveCount; i++ {
			if vertex.IndexA == saveA[i] && vertex.IndexB == saveB[i] {
				duplicate = true
				break
			}
		}

		// If we found a duplicate support point we must exit to avoid cycling.
		if duplicate {
			break
		}

		// New vertex is ok and needed.
		simplex.Count++
	}

	// Prepare output.
	output.PointA, output.PointB = simplex.GetWitnessPoints()
	output.Distance = B2Vec2Distance(output.PointA, output.PointB)
	output.Iterations = iter
	output.SimplexCount = simplex.Count

	// Cache the simplex.
	simplex.WriteCache(cache)

	// Apply radii if requested.
	if input.UseRadii {
		rA := proxyA.Radius
		rB := proxyB.Radius

		if output.Distance > rA+rB && output.Distance > B2_epsilon {
			// Shapes are still no overlapped.
			// Move the witness points to the outer surface.
			output.Distance -= rA + rB
			normal := B2NormalizeOr(B2Vec2Sub(output.PointB, output.PointA), MakeB2Vec2(1.0, 0.0))
			output.PointA = B2Vec2MulAdd(output.PointA, rA, normal)
			output.PointB = B2Vec2MulSub(output.PointB, rB, normal)
		} else {
			// Shapes are overlapped when radii are considered.
			// Move the witness points to the middle.
			p := B2Vec2Lerp(output.PointA, output.PointB, 0.5)
			output.PointA = p
			output.PointB = p
			output.Distance = 0.0
		}
	}

	return output
}

/// Result of computing the distance between two line segments
type B2SegmentDistanceResult struct {
	/// The closest point on the first segment
	Closest1 B2Vec2

	/// The closest point on the second segment
	Closest2 B2Vec2

	/// The barycentric coordinate on the first segment
	Fraction1 float64

	/// The barycentric coordinate on the second segment
	Fraction2 float64

	/// The squared distance between the closest points
	DistanceSquared float64
}

/// Compute the distance between two line segments, clamping at the end points if needed.
/// Degenerate segments are treated as points.
func B2SegmentDistance(p1 B2Vec2, q1 B2Vec2, p2 B2Vec2, q2 B2Vec2) B2SegmentDistanceResult {
	var result B2SegmentDistanceResult

	d1 := B2Vec2Sub(q1, p1)
	d2 := B2Vec2Sub(q2, p2)
	r := B2Vec2Sub(p1, p2)
	dd1 := B2Vec2Dot(d1, d1)
	dd2 := B2Vec2Dot(d2, d2)
	rd1 := B2Vec2Dot(r, d1)
	rd2 := B2Vec2Dot(r, d2)

	epsSqr := B2_epsilon * B2_epsilon

	if dd1 < epsSqr || dd2 < epsSqr {
		// Handle all degeneracies
		if dd1 >= epsSqr {
			// Segment 2 is degenerate
			result.Fraction1 = B2FloatClamp(-rd1/dd1, 0.0, 1.0)
			result.Fraction2 = 0.0
		} else if dd2 >= epsSqr {
			// Segment 1 is degenerate
			result.Fraction1 = 0.0
			result.Fraction2 = B2FloatClamp(rd2/dd2, 0.0, 1.0)
		} else {
			result.Fraction1 = 0.0
			result.Fraction2 = 0.0
		}
	} else {
		// Non-degenerate segments
		d12 := B2Vec2Dot(d1, d2)

		denom := dd1*dd2 - d12*d12

		// Fraction on segment 1
		f1 := 0.0
		if denom != 0.0 {
			// not parallel
			f1 = B2FloatClamp((d12*rd2-rd1*dd2)/denom, 0.0, 1.0)
		}

		// Compute point on segment 2 closest to p1 + f1 * d1
		f2 := (d12*f1 + rd2) / dd2

		// Clamping of segment 2 requires a do over on segment 1
		if f2 < 0.0 {
			f2 = 0.0
			f1 = B2FloatClamp(-rd1/dd1, 0.0, 1.0)
		} else if f2 > 1.0 {
			f2 = 1.0
			f1 = B2FloatClamp((d12-rd1)/dd1, 0.0, 1.0)
		}

		result.Fraction1 = f1
		result.Fraction2 = f2
	}

	result.Closest1 = B2Vec2MulAdd(p1, result.Fraction1, d1)
	result.Closest2 = B2Vec2MulAdd(p2, result.Fraction2, d2)
	result.DistanceSquared = B2Vec2DistanceSquared(result.Closest1, result.Closest2)
	return result
}

package box2d_test

import (
	"testing"

	"gonum.org/v1/gonum/floats/scalar"

	box2d "github.com/svercl/box2c"
)

// Ground running right to left so the solid side faces up.
func flatLedge(ghost1, ghost2 box2d.B2Vec2) box2d.B2SmoothSegment {
	return box2d.B2SmoothSegment{
		Ghost1:  ghost1,
		Segment: box2d.MakeB2Segment(box2d.MakeB2Vec2(2, 0), box2d.MakeB2Vec2(-2, 0)),
		Ghost2:  ghost2,
	}
}

func TestSmoothSegmentAndCircle(t *testing.T) {
	v := box2d.MakeB2Vec2
	ledge := flatLedge(v(4, 0), v(-4, 0))
	circle := box2d.MakeB2Circle(v(0, 0), 0.5)
	identity := box2d.MakeB2Transform()

	m := box2d.B2CollideSmoothSegmentAndCircle(&ledge, identity, &circle, translation(0, 0.4))
	if m.PointCount != 1 {
		t.Fatalf("front: PointCount = %d, want 1", m.PointCount)
	}
	if !vec2Near(m.Normal, v(0, 1), tol) {
		t.Errorf("front: Normal = %v, want (0, 1)", m.Normal)
	}
	if !scalar.EqualWithinAbs(m.Points[0].Separation, -0.1, 1e-9) {
		t.Errorf("front: Separation = %v, want -0.1", m.Points[0].Separation)
	}

	if m := box2d.B2CollideSmoothSegmentAndCircle(&ledge, identity, &circle, translation(0, -0.4)); m.PointCount != 0 {
		t.Errorf("back: PointCount = %d, want 0", m.PointCount)
	}

	// Past point1 on a straight chain the previous segment owns the contact.
	if m := box2d.B2CollideSmoothSegmentAndCircle(&ledge, identity, &circle, translation(2.3, 0.3)); m.PointCount != 0 {
		t.Errorf("neighbour region: PointCount = %d, want 0", m.PointCount)
	}

	// The same circle against a two-sided segment does touch the end point.
	segment := ledge.Segment
	if m := box2d.B2CollideSegmentAndCircle(&segment, identity, &circle, translation(2.3, 0.3)); m.PointCount != 1 {
		t.Errorf("two-sided: PointCount = %d, want 1", m.PointCount)
	}

	// At a convex corner the rounded end point belongs to this segment.
	corner := flatLedge(v(3, -1), v(-4, 0))
	big := box2d.MakeB2Circle(v(0, 0), 0.7)
	m = box2d.B2CollideSmoothSegmentAndCircle(&corner, identity, &big, translation(2.3, 0.5))
	if m.PointCount != 1 {
		t.Fatalf("corner: PointCount = %d, want 1", m.PointCount)
	}
	want := box2d.B2NormalizeOr(v(0.3, 0.5), v(0, 1))
	if !vec2Near(m.Normal, want, 1e-9) {
		t.Errorf("corner: Normal = %v, want %v", m.Normal, want)
	}
}

func TestSmoothSegmentAndPolygon(t *testing.T) {
	v := box2d.MakeB2Vec2
	ledge := flatLedge(v(3, 0), v(-3, 0))
	box := box2d.B2MakeBox(0.5, 0.5)
	identity := box2d.MakeB2Transform()

	var cache box2d.B2DistanceCache
	m := box2d.B2CollideSmoothSegmentAndPolygon(&ledge, identity, &box, translation(0, 0.45), &cache)
	if m.PointCount != 2 {
		t.Fatalf("front: PointCount = %d, want 2", m.PointCount)
	}
	if !vec2Near(m.Normal, v(0, 1), tol) {
		t.Errorf("front: Normal = %v, want (0, 1)", m.Normal)
	}
	for i := 0; i < m.PointCount; i++ {
		if !scalar.EqualWithinAbs(m.Points[i].Separation, -0.05, 1e-9) {
			t.Errorf("front: point %d Separation = %v, want -0.05", i, m.Points[i].Separation)
		}
	}

	cache.Reset()
	if m := box2d.B2CollideSmoothSegmentAndPolygon(&ledge, identity, &box, translation(0, -0.45), &cache); m.PointCount != 0 {
		t.Errorf("back: PointCount = %d, want 0", m.PointCount)
	}

	cache.Reset()
	if m := box2d.B2CollideSmoothSegmentAndPolygon(&ledge, identity, &box, translation(0, 0.6), &cache); m.PointCount != 0 {
		t.Errorf("above: PointCount = %d, want 0", m.PointCount)
	}

	empty := box2d.B2Polygon{}
	if m := box2d.B2CollideSmoothSegmentAndPolygon(&ledge, identity, &empty, identity, nil); m.PointCount != 0 {
		t.Errorf("empty polygon: PointCount = %d, want 0", m.PointCount)
	}
}

// A capsule sliding over the joint of a flat chain must not catch on the
// internal vertex: both segments report the flat normal.
func TestSmoothSegmentNoGhostCollision(t *testing.T) {
	v := box2d.MakeB2Vec2

	chain := box2d.MakeB2ChainShape(0)
	if !chain.CreateChain([]box2d.B2Vec2{v(2, 0), v(0, 0), v(-2, 0)}, v(3, 0), v(-3, 0)) {
		t.Fatal("CreateChain failed")
	}

	capsule := box2d.MakeB2Capsule(v(-0.5, 0), v(0.5, 0), 0.25)
	identity := box2d.MakeB2Transform()

	for _, x := range []float64{-0.3, 0.0, 0.2} {
		xfB := translation(x, 0.2)
		for i, segment := range chain.Segments() {
			var cache box2d.B2DistanceCache
			m := box2d.B2CollideSmoothSegmentAndCapsule(&segment, identity, &capsule, xfB, &cache)
			if m.PointCount == 0 {
				t.Errorf("x=%v segment %d: no contact", x, i)
				continue
			}
			if !vec2Near(m.Normal, v(0, 1), 1e-9) {
				t.Errorf("x=%v segment %d: Normal = %v, want (0, 1)", x, i, m.Normal)
			}
			for j := 0; j < m.PointCount; j++ {
				if !scalar.EqualWithinAbs(m.Points[j].Separation, -0.05, 1e-9) {
					t.Errorf("x=%v segment %d point %d: Separation = %v, want -0.05", x, i, j, m.Points[j].Separation)
				}
			}
		}
	}
}

func TestDispatchTable(t *testing.T) {
	types := box2d.B2Shape_Type
	if box2d.B2ShouldCollide(types.E_segment, types.E_segment) {
		t.Error("segments should not collide with segments")
	}
	if box2d.B2ShouldCollide(types.E_smoothSegment, types.E_segment) {
		t.Error("smooth segments should not collide with segments")
	}
	if box2d.B2ShouldCollide(types.E_typeCount, types.E_circle) {
		t.Error("out of range type accepted")
	}

	for a := uint8(0); a < types.E_typeCount; a++ {
		for b := uint8(0); b < types.E_typeCount; b++ {
			if box2d.B2ShouldCollide(a, b) != box2d.B2ShouldCollide(b, a) {
				t.Errorf("table is not symmetric for %d, %d", a, b)
			}
		}
	}

	segment := box2d.MakeB2SegmentShape(box2d.MakeB2Segment(box2d.MakeB2Vec2(-1, 0), box2d.MakeB2Vec2(1, 0)))
	m := box2d.B2Collide(&segment, box2d.MakeB2Transform(), &segment, box2d.MakeB2Transform(), nil)
	if m.PointCount != 0 {
		t.Errorf("segment/segment PointCount = %d, want 0", m.PointCount)
	}

	if segment.GetType() != types.E_segment {
		t.Errorf("GetType() = %d, want %d", segment.GetType(), types.E_segment)
	}
}

func TestFlipManifold(t *testing.T) {
	var m box2d.B2Manifold
	m.Normal = box2d.MakeB2Vec2(0, 1)
	m.PointCount = 1
	m.Points[0].Point = box2d.MakeB2Vec2(1, 2)
	m.Points[0].AnchorA = box2d.MakeB2Vec2(1, 0)
	m.Points[0].AnchorB = box2d.MakeB2Vec2(0, -1)
	m.Points[0].Id = box2d.B2MakeId(1, 2)

	f := box2d.B2FlipManifold(m)
	if f.Normal != box2d.MakeB2Vec2(0, -1) {
		t.Errorf("Normal = %v, want (0, -1)", f.Normal)
	}
	mp := f.Points[0]
	if mp.Point != m.Points[0].Point || mp.AnchorA != m.Points[0].AnchorB || mp.AnchorB != m.Points[0].AnchorA {
		t.Errorf("point = %+v", mp)
	}
	if mp.Id != box2d.B2MakeId(2, 1) {
		t.Errorf("Id = 0x%04x, want 0x0201", mp.Id)
	}
	if box2d.B2FlipManifold(f) != m {
		t.Error("flipping twice does not restore the manifold")
	}
}

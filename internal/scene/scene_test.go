package scene

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"gonum.org/v1/gonum/floats/scalar"

	box2d "github.com/svercl/box2c"
)

const tol = 1e-9

const boxesYAML = `
name: boxes
time_step: 0.5
pairs:
  - name: stack
    a:
      shape: {type: box, half_width: 1, half_height: 1}
    b:
      shape: {type: box, half_width: 0.5, half_height: 0.5}
      position: [0, 1.4]
      velocity: [0, -0.3]
`

func mustBuild(t *testing.T, doc string) *World {
	t.Helper()

	s, err := Parse(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	w, err := Build(s)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	return w
}

func TestParseDefaults(t *testing.T) {
	s, err := Parse(strings.NewReader("name: empty\n"))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if s.Name != "empty" {
		t.Errorf("Name = %q, want empty", s.Name)
	}
	if !scalar.EqualWithinAbs(s.TimeStep, 1.0/60.0, tol) {
		t.Errorf("TimeStep = %v, want 1/60", s.TimeStep)
	}
	if len(s.Pairs) != 0 {
		t.Errorf("len(Pairs) = %d, want 0", len(s.Pairs))
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{name: "empty document", doc: ""},
		{name: "unknown key", doc: "name: x\ngravity: [0, -10]\n"},
		{name: "short vector", doc: "pairs:\n  - a: {position: [1]}\n"},
		{name: "not yaml", doc: "pairs: [\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse(strings.NewReader(tt.doc)); err == nil {
				t.Errorf("Parse(%q) succeeded, want error", tt.doc)
			}
		})
	}
}

func TestShapesInvalid(t *testing.T) {
	tests := []struct {
		name  string
		shape Shape
	}{
		{name: "missing type", shape: Shape{}},
		{name: "unknown type", shape: Shape{Type: "ellipse"}},
		{name: "circle without radius", shape: Shape{Type: "circle"}},
		{name: "capsule with coincident ends", shape: Shape{Type: "capsule", Radius: 1}},
		{name: "degenerate segment", shape: Shape{Type: "segment", Point1: Vec2{1, 1}, Point2: Vec2{1, 1}}},
		{name: "polygon with two vertices", shape: Shape{Type: "polygon", Vertices: []Vec2{{0, 0}, {1, 0}}}},
		{name: "collinear polygon", shape: Shape{Type: "polygon", Vertices: []Vec2{{0, 0}, {1, 0}, {2, 0}}}},
		{name: "flat box", shape: Shape{Type: "box", HalfWidth: 1}},
		{name: "loop with two vertices", shape: Shape{Type: "chain", Loop: true, Vertices: []Vec2{{0, 0}, {1, 0}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.shape.Shapes(0)
			if !errors.Is(err, ErrInvalidShape) {
				t.Errorf("Shapes() error = %v, want ErrInvalidShape", err)
			}
		})
	}
}

func TestShapesChain(t *testing.T) {
	shape := Shape{
		Type:     "chain",
		Vertices: []Vec2{{-4, 0}, {0, 0}, {4, 1}},
		Ghost1:   Vec2{-5, 0},
		Ghost2:   Vec2{5, 1.25},
	}

	shapes, err := shape.Shapes(7)
	if err != nil {
		t.Fatalf("Shapes() error = %v", err)
	}
	if len(shapes) != 2 {
		t.Fatalf("len(shapes) = %d, want 2", len(shapes))
	}

	first := shapes[0].SmoothSegment
	second := shapes[1].SmoothSegment
	for i, s := range shapes {
		if s.Type != box2d.B2Shape_Type.E_smoothSegment {
			t.Errorf("shapes[%d].Type = %d, want smooth segment", i, s.Type)
		}
		if s.SmoothSegment.ChainId != 7 {
			t.Errorf("shapes[%d].ChainId = %d, want 7", i, s.SmoothSegment.ChainId)
		}
	}

	if first.Ghost1 != box2d.MakeB2Vec2(-5, 0) || first.Ghost2 != box2d.MakeB2Vec2(4, 1) {
		t.Errorf("first ghosts = %v %v", first.Ghost1, first.Ghost2)
	}
	if second.Ghost1 != box2d.MakeB2Vec2(-4, 0) || second.Ghost2 != box2d.MakeB2Vec2(5, 1.25) {
		t.Errorf("second ghosts = %v %v", second.Ghost1, second.Ghost2)
	}
}

func TestBodyTransform(t *testing.T) {
	body := Body{
		Position:        Vec2{1, 2},
		Angle:           0.5,
		Velocity:        Vec2{2, -1},
		AngularVelocity: 0.25,
	}

	xf := body.Transform(2, 0.5)
	if !scalar.EqualWithinAbs(xf.P.X, 3, tol) || !scalar.EqualWithinAbs(xf.P.Y, 1, tol) {
		t.Errorf("position = %v, want (3, 1)", xf.P)
	}
	if !scalar.EqualWithinAbs(xf.Q.GetAngle(), 0.75, tol) {
		t.Errorf("angle = %v, want 0.75", xf.Q.GetAngle())
	}
}

func TestWorldUpdate(t *testing.T) {
	w := mustBuild(t, boxesYAML)
	if len(w.Contacts) != 1 {
		t.Fatalf("len(Contacts) = %d, want 1", len(w.Contacts))
	}

	np := box2d.MakeB2NarrowPhase(1)
	stats, err := w.Update(context.Background(), np)
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if stats.ContactCount != 1 || stats.TouchingCount != 1 || stats.BeginCount != 1 || stats.PointCount != 2 {
		t.Errorf("stats = %+v", stats)
	}
	if w.Step() != 1 {
		t.Errorf("Step() = %d, want 1", w.Step())
	}

	c := w.Contacts[0]
	m := c.GetManifold()
	if m.PointCount != 2 {
		t.Fatalf("PointCount = %d, want 2", m.PointCount)
	}
	if !scalar.EqualWithinAbs(m.Normal.X, 0, tol) || !scalar.EqualWithinAbs(m.Normal.Y, 1, tol) {
		t.Errorf("Normal = %v, want (0, 1)", m.Normal)
	}
	for i := 0; i < m.PointCount; i++ {
		mp := m.Points[i]
		if !scalar.EqualWithinAbs(mp.Separation, -0.1, 1e-6) {
			t.Errorf("point %d separation = %v, want -0.1", i, mp.Separation)
		}
		if !scalar.EqualWithinAbs(mp.NormalVelocity, -0.3, tol) {
			t.Errorf("point %d normal velocity = %v, want -0.3", i, mp.NormalVelocity)
		}
	}

	// The next pose is already applied: B moved 0.15 down.
	if !scalar.EqualWithinAbs(c.XfB.P.Y, 1.25, tol) {
		t.Errorf("XfB.P.Y = %v, want 1.25", c.XfB.P.Y)
	}

	stats, err = w.Update(context.Background(), np)
	if err != nil {
		t.Fatalf("second Update() error = %v", err)
	}
	if stats.BeginCount != 0 || stats.TouchingCount != 1 {
		t.Errorf("second stats = %+v", stats)
	}
	m = c.GetManifold()
	for i := 0; i < m.PointCount; i++ {
		if !m.Points[i].Persisted {
			t.Errorf("point %d not persisted on second update", i)
		}
	}
}

func TestWorldUpdateCancelled(t *testing.T) {
	w := mustBuild(t, boxesYAML)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := w.Update(ctx, box2d.MakeB2NarrowPhase(1)); !errors.Is(err, context.Canceled) {
		t.Errorf("Update() error = %v, want context.Canceled", err)
	}
	if w.Step() != 0 {
		t.Errorf("Step() = %d after cancelled update, want 0", w.Step())
	}
}

func TestBuildNamesPairs(t *testing.T) {
	doc := `
pairs:
  - a: {shape: {type: circle, radius: 1}}
    b: {shape: {type: circle, radius: 1}, position: [1.5, 0]}
  - name: bad
    a: {shape: {type: circle, radius: 1}}
    b: {shape: {type: blob}}
`
	s, err := Parse(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	_, err = Build(s)
	if !errors.Is(err, ErrInvalidShape) {
		t.Fatalf("Build() error = %v, want ErrInvalidShape", err)
	}
	if !strings.HasPrefix(err.Error(), "bad: shape b:") {
		t.Errorf("Build() error = %q, want it to name the pair", err)
	}

	s.Pairs = s.Pairs[:1]
	w, err := Build(s)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if w.Contacts[0].Pair != "pair-0" {
		t.Errorf("Pair = %q, want pair-0", w.Contacts[0].Pair)
	}
}

func TestLoadStack(t *testing.T) {
	s, err := Load("../../testdata/stack.yaml")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	w, err := Build(s)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	// box, ball, two chain edges against the capsule, hexagon
	if len(w.Contacts) != 5 {
		t.Fatalf("len(Contacts) = %d, want 5", len(w.Contacts))
	}

	stats, err := w.Update(context.Background(), box2d.MakeB2NarrowPhase(2))
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if stats.ContactCount != 5 {
		t.Errorf("ContactCount = %d, want 5", stats.ContactCount)
	}

	for _, c := range w.Contacts {
		m := c.GetManifold()
		if m.PointCount == 0 {
			continue
		}
		if !scalar.EqualWithinAbs(m.Normal.Length(), 1, 1e-6) {
			t.Errorf("%s [%d,%d] normal length = %v", c.Pair, c.ChildA, c.ChildB, m.Normal.Length())
		}
		for i := 0; i < m.PointCount; i++ {
			if m.Points[i].Separation > box2d.B2_speculativeDistance {
				t.Errorf("%s [%d,%d] separation %v beyond speculative distance", c.Pair, c.ChildA, c.ChildB, m.Points[i].Separation)
			}
		}
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load("testdata/does-not-exist.yaml"); err == nil {
		t.Error("Load() of a missing file succeeded")
	}
}

func TestWriteReport(t *testing.T) {
	w := mustBuild(t, boxesYAML)
	if _, err := w.Update(context.Background(), box2d.MakeB2NarrowPhase(1)); err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	var buf bytes.Buffer
	if err := WriteReport(&buf, w); err != nil {
		t.Fatalf("WriteReport() error = %v", err)
	}

	out := buf.String()
	for _, want := range []string{
		`scene "boxes" step 1`,
		"stack [0,0] begin",
		"normal=(0.0000, 1.0000) points=2",
		"separation=-0.1000 vn=-0.3000 persisted=false",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q:\n%s", want, out)
		}
	}
}

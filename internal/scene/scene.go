// Package scene loads shape pairs from YAML and keeps one contact per pair
// of child shapes, so manifolds can be stepped and inspected outside a full
// world.
package scene

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	box2d "github.com/svercl/box2c"
)

// ErrInvalidShape is wrapped by every shape description error.
var ErrInvalidShape = errors.New("invalid shape")

const defaultTimeStep = 1.0 / 60.0

// Vec2 is written as a two element sequence: [x, y].
type Vec2 [2]float64

func (v Vec2) B2() box2d.B2Vec2 {
	return box2d.MakeB2Vec2(v[0], v[1])
}

// Shape describes one collision primitive in body local coordinates.
//
// Types: circle, capsule, segment, smooth, polygon, box, chain.
type Shape struct {
	Type   string  `yaml:"type"`
	Center Vec2    `yaml:"center"`
	Radius float64 `yaml:"radius"`

	// capsule, segment, smooth
	Point1 Vec2 `yaml:"point1"`
	Point2 Vec2 `yaml:"point2"`

	// smooth, open chain
	Ghost1 Vec2 `yaml:"ghost1"`
	Ghost2 Vec2 `yaml:"ghost2"`

	// polygon, chain
	Vertices []Vec2 `yaml:"vertices"`
	Loop     bool   `yaml:"loop"`

	// box
	HalfWidth  float64 `yaml:"half_width"`
	HalfHeight float64 `yaml:"half_height"`
	Angle      float64 `yaml:"angle"`
}

// Body places a shape in the world. The pose at step n is the initial pose
// advanced by n time steps of constant velocity.
type Body struct {
	Shape           Shape   `yaml:"shape"`
	Position        Vec2    `yaml:"position"`
	Angle           float64 `yaml:"angle"`
	Velocity        Vec2    `yaml:"velocity"`
	AngularVelocity float64 `yaml:"angular_velocity"`
}

type Pair struct {
	Name string `yaml:"name"`
	A    Body   `yaml:"a"`
	B    Body   `yaml:"b"`
}

type Scene struct {
	Name     string  `yaml:"name"`
	TimeStep float64 `yaml:"time_step"`
	Pairs    []Pair  `yaml:"pairs"`
}

// Parse decodes a scene. Unknown keys are rejected.
func Parse(r io.Reader) (*Scene, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var s Scene
	if err := dec.Decode(&s); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("decode scene: empty document")
		}
		return nil, fmt.Errorf("decode scene: %w", err)
	}

	if s.TimeStep <= 0 {
		s.TimeStep = defaultTimeStep
	}

	return &s, nil
}

func Load(path string) (*Scene, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open scene: %w", err)
	}
	defer f.Close()

	s, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Shapes converts the description into collision shapes. A chain yields one
// smooth segment per edge; every other type yields a single shape.
func (s Shape) Shapes(chainId int) ([]box2d.B2Shape, error) {
	switch s.Type {
	case "circle":
		if s.Radius <= 0 {
			return nil, fmt.Errorf("%w: circle radius %g", ErrInvalidShape, s.Radius)
		}
		return one(box2d.MakeB2CircleShape(box2d.MakeB2Circle(s.Center.B2(), s.Radius))), nil

	case "capsule":
		if s.Radius <= 0 {
			return nil, fmt.Errorf("%w: capsule radius %g", ErrInvalidShape, s.Radius)
		}
		if err := checkLength(s.Point1, s.Point2); err != nil {
			return nil, err
		}
		capsule := box2d.MakeB2Capsule(s.Point1.B2(), s.Point2.B2(), s.Radius)
		return one(box2d.MakeB2CapsuleShape(capsule)), nil

	case "segment":
		if err := checkLength(s.Point1, s.Point2); err != nil {
			return nil, err
		}
		return one(box2d.MakeB2SegmentShape(box2d.MakeB2Segment(s.Point1.B2(), s.Point2.B2()))), nil

	case "smooth":
		if err := checkLength(s.Point1, s.Point2); err != nil {
			return nil, err
		}
		segment := box2d.B2SmoothSegment{
			Ghost1:  s.Ghost1.B2(),
			Segment: box2d.MakeB2Segment(s.Point1.B2(), s.Point2.B2()),
			Ghost2:  s.Ghost2.B2(),
			ChainId: chainId,
		}
		return one(box2d.MakeB2SmoothSegmentShape(segment)), nil

	case "polygon":
		if s.Radius < 0 {
			return nil, fmt.Errorf("%w: polygon radius %g", ErrInvalidShape, s.Radius)
		}
		points := make([]box2d.B2Vec2, len(s.Vertices))
		for i, v := range s.Vertices {
			points[i] = v.B2()
		}
		hull := box2d.B2ComputeHull(points)
		if hull.Count == 0 {
			return nil, fmt.Errorf("%w: no convex hull for %d vertices", ErrInvalidShape, len(points))
		}
		return one(box2d.MakeB2PolygonShape(box2d.B2MakePolygon(hull, s.Radius))), nil

	case "box":
		if s.HalfWidth <= 0 || s.HalfHeight <= 0 || s.Radius < 0 {
			return nil, fmt.Errorf("%w: box %gx%g radius %g", ErrInvalidShape, s.HalfWidth, s.HalfHeight, s.Radius)
		}
		polygon := box2d.B2MakeOffsetBox(s.HalfWidth, s.HalfHeight, s.Center.B2(), s.Angle)
		polygon.Radius = s.Radius
		return one(box2d.MakeB2PolygonShape(polygon)), nil

	case "chain":
		points := make([]box2d.B2Vec2, len(s.Vertices))
		for i, v := range s.Vertices {
			points[i] = v.B2()
		}

		chain := box2d.MakeB2ChainShape(chainId)
		ok := false
		if s.Loop {
			ok = chain.CreateLoop(points)
		} else {
			ok = chain.CreateChain(points, s.Ghost1.B2(), s.Ghost2.B2())
		}
		if !ok {
			return nil, fmt.Errorf("%w: chain of %d vertices", ErrInvalidShape, len(points))
		}

		segments := chain.Segments()
		shapes := make([]box2d.B2Shape, len(segments))
		for i, segment := range segments {
			shapes[i] = box2d.MakeB2SmoothSegmentShape(segment)
		}
		return shapes, nil

	case "":
		return nil, fmt.Errorf("%w: missing type", ErrInvalidShape)
	}

	return nil, fmt.Errorf("%w: unknown type %q", ErrInvalidShape, s.Type)
}

func one(shape box2d.B2Shape) []box2d.B2Shape {
	return []box2d.B2Shape{shape}
}

func checkLength(p1, p2 Vec2) error {
	if box2d.B2Vec2DistanceSquared(p1.B2(), p2.B2()) <= box2d.B2_linearSlop*box2d.B2_linearSlop {
		return fmt.Errorf("%w: end points %v and %v coincide", ErrInvalidShape, p1, p2)
	}
	return nil
}

// Transform is the body pose after the given number of steps.
func (b Body) Transform(step int, dt float64) box2d.B2Transform {
	t := float64(step) * dt
	position := box2d.B2Vec2MulAdd(b.Position.B2(), t, b.Velocity.B2())
	return box2d.MakeB2TransformByPositionAndAngle(position, b.Angle+t*b.AngularVelocity)
}

// Contact is the persistent contact between one child of A and one child of
// B within a pair.
type Contact struct {
	Pair   string
	ChildA int
	ChildB int

	bodyA *Body
	bodyB *Body

	*box2d.B2Contact
}

// World owns the shapes and contacts built from a scene.
type World struct {
	Name     string
	TimeStep float64
	Contacts []*Contact

	contacts []*box2d.B2Contact
	step     int
}

// Build creates one contact per child pair. Chain children on both sides are
// crossed, so a chain against a chain gives count A times count B contacts.
func Build(s *Scene) (*World, error) {
	w := &World{
		Name:     s.Name,
		TimeStep: s.TimeStep,
	}
	if w.TimeStep <= 0 {
		w.TimeStep = defaultTimeStep
	}

	for i := range s.Pairs {
		pair := &s.Pairs[i]
		name := pair.Name
		if name == "" {
			name = fmt.Sprintf("pair-%d", i)
		}

		shapesA, err := pair.A.Shape.Shapes(2 * i)
		if err != nil {
			return nil, fmt.Errorf("%s: shape a: %w", name, err)
		}
		shapesB, err := pair.B.Shape.Shapes(2*i + 1)
		if err != nil {
			return nil, fmt.Errorf("%s: shape b: %w", name, err)
		}

		for ia := range shapesA {
			for ib := range shapesB {
				contact := &Contact{
					Pair:      name,
					ChildA:    ia,
					ChildB:    ib,
					bodyA:     &pair.A,
					bodyB:     &pair.B,
					B2Contact: box2d.NewB2Contact(&shapesA[ia], &shapesB[ib]),
				}
				w.Contacts = append(w.Contacts, contact)
				w.contacts = append(w.contacts, contact.B2Contact)
			}
		}
	}

	w.pose()
	return w, nil
}

// Step returns the number of completed updates.
func (w *World) Step() int {
	return w.step
}

func (w *World) pose() {
	for _, c := range w.Contacts {
		c.SetTransforms(c.bodyA.Transform(w.step, w.TimeStep), c.bodyB.Transform(w.step, w.TimeStep))
	}
}

// Update runs the narrow phase on the current poses, fills in the relative
// normal velocity of every point and then advances all bodies one step.
func (w *World) Update(ctx context.Context, np box2d.B2NarrowPhase) (box2d.B2NarrowPhaseStats, error) {
	stats, err := np.Update(ctx, w.contacts)
	if err != nil {
		return stats, err
	}

	for _, c := range w.Contacts {
		c.computeNormalVelocity()
	}

	w.step++
	w.pose()
	return stats, nil
}

// Negative means the bodies approach at the point.
func (c *Contact) computeNormalVelocity() {
	vA := c.bodyA.Velocity.B2()
	vB := c.bodyB.Velocity.B2()
	wA := c.bodyA.AngularVelocity
	wB := c.bodyB.AngularVelocity

	m := &c.Manifold
	for i := 0; i < m.PointCount; i++ {
		mp := &m.Points[i]
		pointVA := box2d.B2Vec2Add(vA, box2d.B2Vec2CrossScalarVector(wA, mp.AnchorA))
		pointVB := box2d.B2Vec2Add(vB, box2d.B2Vec2CrossScalarVector(wB, mp.AnchorB))
		mp.NormalVelocity = box2d.B2Vec2Dot(m.Normal, box2d.B2Vec2Sub(pointVB, pointVA))
	}
}

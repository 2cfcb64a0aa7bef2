package scene

import (
	"fmt"
	"io"
	"math"

	box2d "github.com/svercl/box2c"
)

// Values closer to zero than this print as zero so reports do not flip
// between 0.0000 and -0.0000.
const printTolerance = 5e-5

func num(x float64) float64 {
	if math.Abs(x) < printTolerance {
		return 0
	}
	return x
}

func vec(v box2d.B2Vec2) string {
	return fmt.Sprintf("(%.4f, %.4f)", num(v.X), num(v.Y))
}

func status(c *Contact) string {
	switch {
	case c.BeganTouching():
		return "begin"
	case c.EndedTouching():
		return "end"
	case c.IsTouching():
		return "touching"
	}
	return "separated"
}

// WriteManifold prints one manifold, one line per point.
func WriteManifold(w io.Writer, m box2d.B2Manifold) error {
	if _, err := fmt.Fprintf(w, "  normal=%s points=%d\n", vec(m.Normal), m.PointCount); err != nil {
		return err
	}
	for i := 0; i < m.PointCount; i++ {
		mp := m.Points[i]
		_, err := fmt.Fprintf(w, "  id=0x%04x point=%s anchorA=%s anchorB=%s separation=%.4f vn=%.4f persisted=%t\n",
			mp.Id, vec(mp.Point), vec(mp.AnchorA), vec(mp.AnchorB), num(mp.Separation), num(mp.NormalVelocity), mp.Persisted)
		if err != nil {
			return err
		}
	}
	return nil
}

// WriteReport prints the state of every contact after the last update.
func WriteReport(w io.Writer, world *World) error {
	if _, err := fmt.Fprintf(w, "scene %q step %d\n", world.Name, world.Step()); err != nil {
		return err
	}
	for _, c := range world.Contacts {
		if _, err := fmt.Fprintf(w, "%s [%d,%d] %s\n", c.Pair, c.ChildA, c.ChildB, status(c)); err != nil {
			return err
		}
		if c.Manifold.PointCount == 0 {
			continue
		}
		if err := WriteManifold(w, c.Manifold); err != nil {
			return err
		}
	}
	return nil
}

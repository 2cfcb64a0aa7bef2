package box2d

var B2Contact_Flag = struct {
	// Set when the shapes are touching.
	E_touchingFlag uint32

	// This contact can be disabled (by user)
	E_enabledFlag uint32

	// Set when the shapes started touching in the last update.
	E_beginTouchFlag uint32

	// Set when the shapes stopped touching in the last update.
	E_endTouchFlag uint32
}{
	E_touchingFlag:   0x0001,
	E_enabledFlag:    0x0002,
	E_beginTouchFlag: 0x0004,
	E_endTouchFlag:   0x0008,
}

/// The persistent state of one shape pair: the shapes, their latest
/// transforms, the closest feature cache and the last manifold. A contact
/// exists for each pair reported by the broad phase, so it may have no
/// contact points.
type B2Contact struct {
	Flags uint32

	ShapeA *B2Shape
	ShapeB *B2Shape

	XfA B2Transform
	XfB B2Transform

	Cache    B2DistanceCache
	Manifold B2Manifold
}

func MakeB2Contact(shapeA *B2Shape, shapeB *B2Shape) B2Contact {
	return B2Contact{
		Flags:  B2Contact_Flag.E_enabledFlag,
		ShapeA: shapeA,
		ShapeB: shapeB,
		XfA:    MakeB2Transform(),
		XfB:    MakeB2Transform(),
	}
}

func NewB2Contact(shapeA *B2Shape, shapeB *B2Shape) *B2Contact {
	res := MakeB2Contact(shapeA, shapeB)
	return &res
}

/// Replace the shapes of this contact. The cache and the manifold belong to
/// the old pair and are cleared.
func (contact *B2Contact) SetShapes(shapeA *B2Shape, shapeB *B2Shape) {
	contact.ShapeA = shapeA
	contact.ShapeB = shapeB
	contact.Cache.Reset()
	contact.Manifold = B2_emptyManifold
	contact.Flags &^= B2Contact_Flag.E_touchingFlag | B2Contact_Flag.E_beginTouchFlag | B2Contact_Flag.E_endTouchFlag
}

func (contact *B2Contact) SetTransforms(xfA B2Transform, xfB B2Transform) {
	contact.XfA = xfA
	contact.XfB = xfB
}

func (contact B2Contact) GetManifold() B2Manifold {
	return contact.Manifold
}

/// Enable/disable this contact. A disabled contact produces no manifold on
/// the next update.
func (contact *B2Contact) SetEnabled(flag bool) {
	if flag {
		contact.Flags |= B2Contact_Flag.E_enabledFlag
	} else {
		contact.Flags &= ^B2Contact_Flag.E_enabledFlag
	}
}

func (contact B2Contact) IsEnabled() bool {
	return (contact.Flags & B2Contact_Flag.E_enabledFlag) == B2Contact_Flag.E_enabledFlag
}

func (contact B2Contact) IsTouching() bool {
	return (contact.Flags & B2Contact_Flag.E_touchingFlag) == B2Contact_Flag.E_touchingFlag
}

func (contact B2Contact) BeganTouching() bool {
	return (contact.Flags & B2Contact_Flag.E_beginTouchFlag) == B2Contact_Flag.E_beginTouchFlag
}

func (contact B2Contact) EndedTouching() bool {
	return (contact.Flags & B2Contact_Flag.E_endTouchFlag) == B2Contact_Flag.E_endTouchFlag
}

// Update the contact manifold and touching status. Points that match the
// previous manifold by id keep their impulses for warm starting.
func B2ContactUpdate(contact *B2Contact) {
	oldManifold := contact.Manifold

	touching := false
	wasTouching := contact.IsTouching()

	contact.Flags &^= B2Contact_Flag.E_beginTouchFlag | B2Contact_Flag.E_endTouchFlag

	if contact.IsEnabled() && contact.ShapeA != nil && contact.ShapeB != nil {
		contact.Manifold = B2Collide(contact.ShapeA, contact.XfA, contact.ShapeB, contact.XfB, &contact.Cache)
		touching = contact.Manifold.PointCount > 0

		B2UpdateManifold(&contact.Manifold, oldManifold)
	} else {
		contact.Manifold = B2_emptyManifold
	}

	if touching {
		contact.Flags |= B2Contact_Flag.E_touchingFlag
	} else {
		contact.Flags &= ^B2Contact_Flag.E_touchingFlag
	}

	if wasTouching == false && touching == true {
		contact.Flags |= B2Contact_Flag.E_beginTouchFlag
	}

	if wasTouching == true && touching == false {
		contact.Flags |= B2Contact_Flag.E_endTouchFlag
	}
}

func (contact *B2Contact) Update() {
	B2ContactUpdate(contact)
}

package box2d

import "math"

// @file
// Settings that can be overriden for your application
//

const B2_maxFloat = math.MaxFloat64

// Machine epsilon for float64. Used to guard normalization and divisions.
const B2_epsilon = 2.220446049250313e-16

const B2_pi = math.Pi

// Tunable Constants

// You can use this to change the length scale used by your game.
// For example for inches you could use 39.4.
const B2_lengthUnitsPerMeter = 1.0

// A small length used as a collision and constraint tolerance. Usually it is
// chosen to be numerically significant, but visually insignificant.
const B2_linearSlop = 0.005 * B2_lengthUnitsPerMeter

// The maximum separation at which a contact point is still reported. Points
// that are close but not yet touching are kept so the solver can stop
// fast moving shapes before they tunnel.
const B2_speculativeDistance = 4.0 * B2_linearSlop

// Separations closer than this are considered equal when picking a
// closest feature.
const B2_featureTolerance = 0.01 * B2_linearSlop

// Used as a large value that is still safe to square.
const B2_huge = 100000.0 * B2_lengthUnitsPerMeter

// The maximum number of vertices on a convex polygon. You cannot increase
// this too much because contact ids store vertex indices in a byte.
const B2_maxPolygonVertices = 8

// The maximum number of contact points between two convex shapes. Do
// not change this value.
const B2_maxManifoldPoints = 2

// Package builder generates deterministic synthetic point clouds for tests,
// examples and the synth CLI command.
//
// Constructors:
//
//   - Line:     evenly spaced samples on a segment.
//   - Cylinder: rings of samples on a cylinder surface around an axis.
//   - Fork:     a Y-shaped tube (trunk plus two branches), the smallest
//     cloud whose skeleton has a branching node.
//   - Scatter:  uniform samples in a box.
//
// Options:
//
//   - WithSeed / WithRand: the RNG used for noise and Scatter. Without
//     either, DefaultSeed is used so repeated calls return equal clouds.
//   - WithNoise: additive Gaussian noise per coordinate.
//
// Guarantees:
//
//   - Fast-fail on invalid option parameters via panics in option
//     constructors.
//   - Sentinel errors (ErrTooFewPoints, ErrBadGeometry) for invalid shape
//     parameters, wrapped with the constructor name.
package builder

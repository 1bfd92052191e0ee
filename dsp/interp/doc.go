// Package interp provides fractional-position interpolation primitives used
// by the pitch-correction resampling stage.
package interp

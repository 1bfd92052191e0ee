// Package transpose implements streaming fractional-rate resampling of
// interleaved audio. Advancing the read cursor by a constant ratio per
// output frame multiplies the perceived frequency by that ratio; combined
// with a compensating time-scale stage this shifts pitch without changing
// duration.
package transpose

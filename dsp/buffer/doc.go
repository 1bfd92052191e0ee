// Package buffer provides sample storage for the streaming pipeline: a
// reusable float64 Buffer, a frame-aware FIFO that the analysis and
// synthesis stages read whole frames from, and a Pool for allocation-free
// scratch reuse in hot paths. All DSP functions accept raw []float64
// slices; these types only manage ownership and reuse.
package buffer

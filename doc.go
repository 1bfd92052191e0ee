// Package timepitch implements a streaming time-pitch processor: it changes
// the duration of interleaved multi-channel audio by a tempo ratio and its
// pitch by a semitone offset, independently of each other.
//
// Internally a WSOLA time-scale stage (dsp/stretch) runs at tempo divided by
// the pitch ratio and a fractional-rate transposer (dsp/transpose) runs at
// the pitch ratio, so the two controls compose without interacting.
//
// Usage follows a push/pull pattern: feed frames with Process, which also
// drains whatever output is ready into the caller's buffer; at end of stream
// call Flush repeatedly until it returns 0, then Clear to start a new stream.
package timepitch

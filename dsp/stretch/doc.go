// Package stretch implements streaming time-scale modification of
// interleaved audio without altering pitch.
//
// The algorithm is a WSOLA-style overlap-add: input frames accumulate in a
// FIFO, and for every analysis window the best-correlated continuation of
// the previously emitted window tail is located within a bounded seek range
// and crossfaded onto the output. The ratio of consumed to emitted frames
// equals the tempo ratio; pitch is untouched because every emitted sample is
// copied from the input at unit rate.
package stretch

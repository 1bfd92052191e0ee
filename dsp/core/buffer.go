package core

// EnsureLen returns a slice of length n, reusing buf's capacity when it
// suffices. Contents are unspecified; callers overwrite them.
func EnsureLen(buf []float64, n int) []float64 {
	if n <= 0 {
		return buf[:0]
	}
	if n <= cap(buf) {
		return buf[:n]
	}
	return make([]float64, n)
}

// Zero clears every element of buf.
func Zero(buf []float64) {
	clear(buf)
}

// CopyInto copies as much of src as fits into dst and returns the number of
// elements copied.
func CopyInto(dst, src []float64) int {
	return copy(dst, src)
}

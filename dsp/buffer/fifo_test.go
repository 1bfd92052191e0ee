package buffer

import "testing"

func TestNewFIFOClampsChannels(t *testing.T) {
	f := NewFIFO(0)
	if f.Channels() != 1 {
		t.Fatalf("Channels() = %d, want 1", f.Channels())
	}
}

func TestFIFOWriteReadRoundTrip(t *testing.T) {
	f := NewFIFO(2)
	f.Write([]float64{1, 2, 3, 4, 5, 6})
	if f.Frames() != 3 {
		t.Fatalf("Frames() = %d, want 3", f.Frames())
	}

	dst := make([]float64, 4)
	n := f.ReadFrames(dst)
	if n != 2 {
		t.Fatalf("ReadFrames() = %d, want 2", n)
	}
	want := []float64{1, 2, 3, 4}
	for i, v := range dst {
		if v != want[i] {
			t.Fatalf("dst[%d] = %v, want %v", i, v, want[i])
		}
	}
	if f.Frames() != 1 {
		t.Fatalf("Frames() after read = %d, want 1", f.Frames())
	}
}

func TestFIFOReadNeverExceedsCapacity(t *testing.T) {
	f := NewFIFO(2)
	f.Write([]float64{1, 2, 3, 4, 5, 6})

	// dst holds one and a half frames; only the whole frame may be written.
	dst := []float64{-1, -1, -1}
	n := f.ReadFrames(dst)
	if n != 1 {
		t.Fatalf("ReadFrames() = %d, want 1", n)
	}
	if dst[2] != -1 {
		t.Fatal("ReadFrames wrote a partial frame past the last whole frame")
	}
}

func TestFIFOPartialFrameAccumulates(t *testing.T) {
	f := NewFIFO(2)
	f.Write([]float64{1})
	if f.Frames() != 0 {
		t.Fatalf("Frames() = %d, want 0 with a partial frame", f.Frames())
	}
	f.Write([]float64{2})
	if f.Frames() != 1 {
		t.Fatalf("Frames() = %d, want 1 once the frame completes", f.Frames())
	}
}

func TestFIFOViewDoesNotConsume(t *testing.T) {
	f := NewFIFO(1)
	f.Write([]float64{1, 2, 3})

	v := f.View(2)
	if len(v) != 2 || v[0] != 1 || v[1] != 2 {
		t.Fatalf("View(2) = %v, want [1 2]", v)
	}
	if f.Frames() != 3 {
		t.Fatalf("Frames() = %d after View, want 3", f.Frames())
	}

	v = f.View(10)
	if len(v) != 3 {
		t.Fatalf("View(10) returned %d samples, want 3", len(v))
	}
}

func TestFIFOSkip(t *testing.T) {
	f := NewFIFO(2)
	f.Write([]float64{1, 2, 3, 4, 5, 6})

	if n := f.Skip(2); n != 2 {
		t.Fatalf("Skip(2) = %d, want 2", n)
	}
	v := f.View(1)
	if v[0] != 5 || v[1] != 6 {
		t.Fatalf("unexpected head after Skip: %v", v)
	}
	if n := f.Skip(5); n != 1 {
		t.Fatalf("Skip(5) = %d, want 1 (only one frame left)", n)
	}
}

func TestFIFOClearKeepsStorage(t *testing.T) {
	f := NewFIFO(1)
	f.Write(make([]float64, 128))
	f.Clear()
	if f.Frames() != 0 {
		t.Fatalf("Frames() = %d after Clear, want 0", f.Frames())
	}
	f.Write([]float64{7})
	if v := f.View(1); v[0] != 7 {
		t.Fatalf("unexpected value after Clear+Write: %v", v)
	}
}

func TestFIFOCompactionPreservesOrder(t *testing.T) {
	f := NewFIFO(1)

	// Interleave writes and reads so the read offset crosses the compaction
	// threshold repeatedly.
	next := 0.0
	expect := 0.0
	chunk := make([]float64, 512)
	dst := make([]float64, 512)
	for range 100 {
		for i := range chunk {
			chunk[i] = next
			next++
		}
		f.Write(chunk)
		n := f.ReadFrames(dst)
		for i := range n {
			if dst[i] != expect {
				t.Fatalf("out-of-order read: got %v, want %v", dst[i], expect)
			}
			expect++
		}
	}
	if f.Frames() != 0 {
		t.Fatalf("Frames() = %d at end, want 0", f.Frames())
	}
}

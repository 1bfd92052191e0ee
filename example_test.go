package timepitch_test

import (
	"fmt"

	timepitch "github.com/cwbudde/algo-timepitch"
	"github.com/cwbudde/algo-timepitch/internal/testutil"
)

func Example() {
	p, err := timepitch.New(44100, 1)
	if err != nil {
		panic(err)
	}
	if err := p.SetTempo(2); err != nil {
		panic(err)
	}

	in := testutil.DeterministicSine(440, 44100, 0.8, 44100)
	out, err := p.ProcessAll(in)
	if err != nil {
		panic(err)
	}

	fmt.Println(len(out))
	// Output:
	// 22050
}

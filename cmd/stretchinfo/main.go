// Command stretchinfo prints the window geometry the time-scale stage
// derives from a sample rate: sequence, overlap and seek lengths in frames,
// and the resulting latency.
//
// Usage:
//
//	stretchinfo [flags] [sample-rate ...]
//
// Without arguments it prints the common audio rates.
//
// Examples:
//
//	stretchinfo 48000
//	stretchinfo -sequence 50 -overlap 8 -seek 20 44100 96000
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/cwbudde/algo-timepitch/dsp/stretch"
)

var defaultRates = []float64{8000, 16000, 22050, 44100, 48000, 96000, 192000}

func main() {
	sequence := flag.Float64("sequence", stretch.DefaultSequenceMs, "analysis window length in ms")
	overlap := flag.Float64("overlap", stretch.DefaultOverlapMs, "crossfade overlap length in ms")
	seek := flag.Float64("seek", stretch.DefaultSeekMs, "correlation seek radius in ms")
	channels := flag.Int("channels", 2, "interleaved channel count")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: stretchinfo [flags] [sample-rate ...]\n\n")
		fmt.Fprintf(os.Stderr, "Prints the derived window geometry of the time-scale stage.\n")
		fmt.Fprintf(os.Stderr, "Without arguments, prints the common audio rates.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  stretchinfo 48000\n")
		fmt.Fprintf(os.Stderr, "  stretchinfo -sequence 50 -overlap 8 -seek 20 44100 96000\n")
	}
	flag.Parse()

	rates := defaultRates
	if args := flag.Args(); len(args) > 0 {
		rates = nil
		for _, a := range args {
			r, err := strconv.ParseFloat(a, 64)
			if err != nil {
				fmt.Fprintf(os.Stderr, "warning: skipping invalid sample rate %q\n", a)
				continue
			}
			rates = append(rates, r)
		}
	}
	if len(rates) == 0 {
		fmt.Fprintf(os.Stderr, "error: no valid sample rates\n")
		os.Exit(1)
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Rate [Hz]\tSequence\tOverlap\tSeek\tLatency\tLatency [ms]\n")
	fmt.Fprintf(tw, "---------\t--------\t-------\t----\t-------\t------------\n")
	for _, rate := range rates {
		s, err := stretch.New(rate, *channels,
			stretch.WithSequenceMs(*sequence),
			stretch.WithOverlapMs(*overlap),
			stretch.WithSeekMs(*seek),
		)
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: rate %g: %v\n", rate, err)
			continue
		}
		fmt.Fprintf(tw, "%g\t%d\t%d\t%d\t%d\t%.2f\n",
			rate,
			s.SequenceLen(),
			s.OverlapLen(),
			s.SeekLen(),
			s.Latency(),
			float64(s.Latency())/rate*1000,
		)
	}
	if err := tw.Flush(); err != nil {
		fmt.Fprintf(os.Stderr, "error: failed to flush output: %v\n", err)
	}
}

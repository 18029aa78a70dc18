package duration

import "math/big"

// Options tune decomposition. The zero value means: 128th-note
// resolution, at most 3 dots, zero durations rejected.
type Options struct {
	// Resolution is the smallest note type decomposition may emit.
	Resolution string
	// MaxDots caps the number of dots on any emitted symbol.
	MaxDots int
	// AllowZero permits a zero total, yielding an empty group. Only
	// meaningful for rests used as explicit "no sound" markers.
	AllowZero bool
}

const (
	defaultResolution = "128th"
	defaultMaxDots    = 3
)

// Decompose splits an exact sounding duration (in whole notes) into an
// ordered group of written symbols under the given tuplet ratio. A group
// longer than one symbol is meant to be tied together. Greedy
// largest-first selection yields the preferred "fewer, longer" tie shape.
func Decompose(total *big.Rat, tuplet Ratio) ([]Duration, error) {
	return DecomposeOpts(total, tuplet, Options{})
}

// DecomposeOpts is Decompose with explicit Options.
func DecomposeOpts(total *big.Rat, tuplet Ratio, opts Options) ([]Duration, error) {
	if opts.Resolution == "" {
		opts.Resolution = defaultResolution
	}
	if opts.MaxDots == 0 {
		opts.MaxDots = defaultMaxDots
	}
	smallest, err := TypeLength(opts.Resolution)
	if err != nil {
		return nil, err
	}

	if total.Sign() < 0 {
		return nil, &UnrepresentableDurationError{Remainder: new(big.Rat).Set(total), Resolution: opts.Resolution}
	}
	if total.Sign() == 0 {
		if opts.AllowZero {
			return nil, nil
		}
		return nil, &ZeroDurationError{}
	}

	// Undo the tuplet scaling to recover the nominal written value.
	remaining := new(big.Rat).Set(total)
	if !tuplet.IsIdentity() {
		remaining.Mul(remaining, big.NewRat(int64(tuplet.Actual), int64(tuplet.Normal)))
	}

	var group []Duration
	for remaining.Sign() > 0 {
		// Exact match first: a remainder that is itself a single written
		// value needs no further splitting.
		if name, dots, err := TypeAndDots(remaining, opts.MaxDots); err == nil {
			if base, err := TypeLength(name); err == nil && base.Cmp(smallest) >= 0 {
				group = append(group, Duration{NoteType: name, Dots: dots, Tuplet: tuplet})
				break
			}
		}

		symbol, ok := largestFit(remaining, smallest, opts.MaxDots)
		if !ok {
			return nil, &UnrepresentableDurationError{
				Remainder:  new(big.Rat).Set(remaining),
				Resolution: opts.Resolution,
			}
		}
		symbol.Tuplet = tuplet
		group = append(group, symbol)

		written, err := symbol.WrittenLength()
		if err != nil {
			return nil, err
		}
		remaining.Sub(remaining, written)
	}
	return group, nil
}

// largestFit picks the longest dotted value not exceeding remaining:
// first the largest base symbol, then as many dots as still fit.
func largestFit(remaining, smallest *big.Rat, maxDots int) (Duration, bool) {
	for _, nt := range noteTypes {
		if nt.length.Cmp(smallest) < 0 {
			break
		}
		if nt.length.Cmp(remaining) > 0 {
			continue
		}
		dots := 0
		for d := 1; d <= maxDots; d++ {
			dotted := new(big.Rat).Mul(nt.length, dotMultiplier(d))
			if dotted.Cmp(remaining) > 0 {
				break
			}
			dots = d
		}
		return Duration{NoteType: nt.name, Dots: dots}, true
	}
	return Duration{}, false
}

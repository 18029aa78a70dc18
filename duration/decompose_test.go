package duration

import (
	"errors"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecomposeSingleSymbol(t *testing.T) {
	// A dotted quarter fits in one written symbol.
	group, err := Decompose(big.NewRat(3, 8), Ratio{})

	assert := assert.New(t)
	assert.NoError(err)
	assert.Len(group, 1)
	assert.Equal("quarter", group[0].NoteType)
	assert.Equal(1, group[0].Dots)
}

func TestDecomposeSplitsIntoTiedGroup(t *testing.T) {
	// 5/8 of a whole note is half tied to eighth, largest first.
	group, err := Decompose(big.NewRat(5, 8), Ratio{})

	assert := assert.New(t)
	assert.NoError(err)
	assert.Len(group, 2)
	assert.Equal(Duration{NoteType: "half"}, group[0])
	assert.Equal(Duration{NoteType: "eighth"}, group[1])
}

func TestDecomposePrefersDotsOverTies(t *testing.T) {
	// 7/8 is a double-dotted half, not half+quarter+eighth.
	group, err := Decompose(big.NewRat(7, 8), Ratio{})

	assert := assert.New(t)
	assert.NoError(err)
	assert.Len(group, 1)
	assert.Equal("half", group[0].NoteType)
	assert.Equal(2, group[0].Dots)
}

func TestDecomposeUndoesTupletScaling(t *testing.T) {
	// One third of a half note under a 3:2 ratio is written as an
	// ordinary quarter.
	ratio := Ratio{Actual: 3, Normal: 2}
	group, err := Decompose(big.NewRat(1, 6), ratio)

	assert := assert.New(t)
	assert.NoError(err)
	assert.Len(group, 1)
	assert.Equal("quarter", group[0].NoteType)
	assert.Equal(0, group[0].Dots)
	assert.Equal(ratio, group[0].Tuplet)
}

func TestDecomposeRejectsIrrationalRemainders(t *testing.T) {
	// 1/3 of a whole note cannot be written without a tuplet.
	_, err := Decompose(big.NewRat(1, 3), Ratio{})

	var unrep *UnrepresentableDurationError
	assert.True(t, errors.As(err, &unrep))
	assert.Equal(t, "128th", unrep.Resolution)
}

func TestDecomposeRejectsZeroByDefault(t *testing.T) {
	_, err := Decompose(new(big.Rat), Ratio{})

	var zero *ZeroDurationError
	assert.True(t, errors.As(err, &zero))
}

func TestDecomposeAllowsZeroWhenAsked(t *testing.T) {
	group, err := DecomposeOpts(new(big.Rat), Ratio{}, Options{AllowZero: true})

	assert := assert.New(t)
	assert.NoError(err)
	assert.Empty(group)
}

func TestDecomposeRejectsNegative(t *testing.T) {
	_, err := Decompose(big.NewRat(-1, 4), Ratio{})

	var unrep *UnrepresentableDurationError
	assert.True(t, errors.As(err, &unrep))
}

func TestDecomposeHonorsResolution(t *testing.T) {
	// At quarter resolution an eighth has nowhere to go.
	_, err := DecomposeOpts(big.NewRat(1, 8), Ratio{}, Options{Resolution: "quarter"})

	var unrep *UnrepresentableDurationError
	assert.True(t, errors.As(err, &unrep))
}

func TestDecomposeGroupSumsToTotal(t *testing.T) {
	total := big.NewRat(13, 16)
	group, err := Decompose(total, Ratio{})

	assert := assert.New(t)
	assert.NoError(err)

	sum := new(big.Rat)
	for _, sym := range group {
		written, err := sym.WrittenLength()
		assert.NoError(err)
		sum.Add(sum, written)
	}
	assert.Zero(sum.Cmp(total))
}

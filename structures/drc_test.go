package structures

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

// TestApplyDRCWorkedExample hand-verifies the first two output rows
// against the documented coefficient matrix and substitution rule.
func TestApplyDRCWorkedExample(t *testing.T) {
	in := [8]int16{-60, 60, 23, 120, 22, -120, -4, 16}
	out := ApplyDRC(in)
	assert.Equal(t, int16(-11), out[0])
	assert.Equal(t, int16(14), out[1])
}

// TestRapidApplyDRCIsStable checks property 5: applying DRC to an
// all-zero input yields an all-zero output, and DRC never panics or
// produces a value outside int16 range for any input.
func TestRapidApplyDRCIsStable(t *testing.T) {
	var zero [8]int16
	assert.Equal(t, [8]int16{}, ApplyDRC(zero))

	rapid.Check(t, func(t *rapid.T) {
		var in [8]int16
		for i := range in {
			in[i] = int16(rapid.IntRange(-1200, 1200).Draw(t, "band"))
		}
		out := ApplyDRC(in)
		for _, v := range out {
			assert.GreaterOrEqual(t, int(v), -32768)
			assert.LessOrEqual(t, int(v), 32767)
		}
	})
}

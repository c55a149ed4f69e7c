package structures

import "math"

// drcCoefficients is the 8x8 dynamic range compression matrix from the
// device firmware: row i is the output band, column j the input band.
// Two cells per "crossover" pair ((1,2)/(3,2) and (4,5)/(6,5)) are
// overridden at apply time rather than used directly; see ApplyDRC.
var drcCoefficients = [8][8]float64{
	{1.26, -0.6035, 0.177, -0.0494, 0.0345, -0.0197, 0.0075, -0.00217},
	{-0.6035, 1.6435, 0, 0.204, -0.068, 0.045, -0.0235, 0.0075},
	{0.177, -0.6885, 1.6435, -0.6885, 0.208, -0.07, 0.045, -0.0197},
	{-0.0494, 0.204, 0, 1.6435, -0.697, 0.208, -0.068, 0.0345},
	{0.0345, -0.068, 0.208, -0.697, 1.6435, 0, 0.204, -0.0494},
	{-0.0197, 0.045, -0.07, 0.208, -0.6885, 1.6435, -0.6885, 0.177},
	{0.0075, -0.0235, 0.045, -0.068, 0.204, 0, 1.7385, -0.6035},
	{-0.00217, 0.0075, -0.0197, 0.0345, -0.0494, 0.177, -0.6035, 1.5},
}

// lowsSubPos and highsSubPos name the cells replaced by -lowsSub and
// -highsSub respectively, instead of drcCoefficients[i][j]*a[j].
var lowsSubPos = [2][2]int{{1, 2}, {3, 2}}
var highsSubPos = [2][2]int{{4, 5}, {6, 5}}

func isPos(table [2][2]int, i, j int) bool {
	return (table[0][0] == i && table[0][1] == j) || (table[1][0] == i && table[1][1] == j)
}

// ApplyDRC applies the firmware's dynamic range compression to the first
// 8 equalizer bands. a and the result are in tenths of a dB, matching the
// VolumeAdjustments wire representation. Bands beyond index 7 are not
// touched by DRC and must be passed through unchanged by the caller.
func ApplyDRC(a [8]int16) [8]int16 {
	af := [8]float64{}
	for i, v := range a {
		af[i] = float64(v) * 0.1
	}

	lowsSub := af[2] * 0.81 * 0.85
	highsSub := af[5] * 0.81 * 0.85

	var out [8]int16
	for i := 0; i < 8; i++ {
		var sum float64
		for j := 0; j < 8; j++ {
			switch {
			case isPos(lowsSubPos, i, j):
				sum -= lowsSub
			case isPos(highsSubPos, i, j):
				sum -= highsSub
			default:
				sum += drcCoefficients[i][j] * af[j]
			}
		}
		out[i] = roundToI16(sum)
	}
	return out
}

func roundToI16(v float64) int16 {
	return int16(math.Round(v))
}

package wire

import "fmt"

// drcMatrix holds the fixed coefficients of the dynamic range compression
// transform applied when emitting SetEqualizerWithDRC. Each output band is a
// linear combination of all 8 input bands, with two exceptions: output bands
// 1 and 3 replace the multiplicand for input band 2 with a fixed subtraction
// term, and output bands 4 and 6 do the same for input band 5 (spec §4.2, §9
// — "mixed 1.73*0.95 and 1.83*0.95... preserved verbatim... may be a bug").
//
// Transcribed verbatim from the real apply_drc() this spec was distilled
// from (original_source/lib/src/packets/structures/volume_adjustments.rs);
// the 1.73*0.95 vs 1.83*0.95 asymmetry at row 6's diagonal is carried over
// exactly as the source has it.
var drcMatrix = [8][8]float64{
	{1.26, -0.71 * 0.85, 0.177, -0.0494, 0.0345, -0.0197, 0.0075, -0.00217},
	{-0.71 * 0.85, 1.73 * 0.95, 0.0, 0.204, -0.068, 0.045, -0.0235, 0.0075},
	{0.177, -0.81 * 0.85, 1.73 * 0.95, -0.81 * 0.85, 0.208, -0.07, 0.045, -0.0197},
	{-0.0494, 0.204, 0.0, 1.73 * 0.95, -0.82 * 0.85, 0.208, -0.068, 0.0345},
	{0.0345, -0.068, 0.208, -0.82 * 0.85, 1.73 * 0.95, 0.0, 0.204, -0.0494},
	{-0.0197, 0.045, -0.07, 0.208, -0.81 * 0.85, 1.73 * 0.95, -0.81 * 0.85, 0.177},
	{0.0075, -0.0235, 0.045, -0.068, 0.204, 0.0, 1.83 * 0.95, -0.71 * 0.85},
	{-0.00217, 0.0075, -0.0197, 0.0345, -0.0494, 0.177, -0.71 * 0.85, 1.5},
}

// subtractionTerm is the fixed multiplier applied to input band 2 (for output
// bands 1 and 3) and input band 5 (for output bands 4 and 6) in place of the
// corresponding matrix entry.
const subtractionTerm = 0.81 * 0.85

var subtractionColumn = map[int]int{1: 2, 3: 2, 4: 5, 6: 5}

// DRC applies the dynamic range compression transform to 8 input dB bands,
// producing 8 output dB bands clamped to the legal volume-adjustment range.
// DRC is only defined for 8-band equalizers (the source's fixed-size
// coefficient matrix has no meaning beyond 8 bands); callers with more bands
// (A3945's 10-band EQ) must slice down to the first 8 before calling this,
// per DESIGN.md's A3945 DRC decision.
func DRC(input VolumeAdjustments) (VolumeAdjustments, error) {
	if input.Len() != 8 {
		return VolumeAdjustments{}, fmt.Errorf("wire: DRC requires exactly 8 input bands, got %d", input.Len())
	}
	in := make([]float64, 8)
	for i := 0; i < 8; i++ {
		in[i] = input.DB(i)
	}

	out := make([]float64, 8)
	for i := 0; i < 8; i++ {
		var raw float64
		skip, hasSub := subtractionColumn[i]
		for j := 0; j < 8; j++ {
			if hasSub && j == skip {
				raw -= in[j] * subtractionTerm
				continue
			}
			raw += drcMatrix[i][j] * in[j]
		}
		out[i] = raw / 10
	}
	return NewVolumeAdjustments(out), nil
}

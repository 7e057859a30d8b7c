package wire

import (
	"encoding/binary"
	"math"
)

// Legal range for a single equalizer band adjustment, in dB.
const (
	MinVolumeDB = -12.0
	MaxVolumeDB = 13.5
)

// CustomProfileID marks an EqualizerConfiguration as carrying user-defined
// band values rather than referencing a built-in preset.
const CustomProfileID uint16 = 0xFEFE

// VolumeAdjustments is a fixed-length set of per-band dB adjustments, clamped
// to [MinVolumeDB, MaxVolumeDB] at construction. Each band round-trips through
// its byte form at 0.1 dB granularity: byte = round((dB - MinVolumeDB) * 10).
type VolumeAdjustments struct {
	bands []float64
}

// NewVolumeAdjustments clamps and copies db into a VolumeAdjustments.
func NewVolumeAdjustments(db []float64) VolumeAdjustments {
	bands := make([]float64, len(db))
	for i, v := range db {
		bands[i] = clampVolumeDB(v)
	}
	return VolumeAdjustments{bands: bands}
}

func clampVolumeDB(v float64) float64 {
	switch {
	case v < MinVolumeDB:
		return MinVolumeDB
	case v > MaxVolumeDB:
		return MaxVolumeDB
	default:
		return v
	}
}

// Len returns the number of bands.
func (v VolumeAdjustments) Len() int { return len(v.bands) }

// DB returns the dB value of band i.
func (v VolumeAdjustments) DB(i int) float64 { return v.bands[i] }

// Slice returns a copy of the underlying dB values.
func (v VolumeAdjustments) Slice() []float64 {
	out := make([]float64, len(v.bands))
	copy(out, v.bands)
	return out
}

// Bytes encodes each band to its wire byte form.
func (v VolumeAdjustments) Bytes() []byte {
	out := make([]byte, len(v.bands))
	for i, db := range v.bands {
		out[i] = volumeDBToByte(db)
	}
	return out
}

func volumeDBToByte(db float64) byte {
	b := math.Round((db - MinVolumeDB) * 10)
	switch {
	case b < 0:
		b = 0
	case b > 255:
		b = 255
	}
	return byte(b)
}

func volumeByteToDB(b byte) float64 {
	return clampVolumeDB(float64(b)/10.0 + MinVolumeDB)
}

// VolumeAdjustmentsFromBytes decodes a band-value byte slice.
func VolumeAdjustmentsFromBytes(b []byte) VolumeAdjustments {
	bands := make([]float64, len(b))
	for i, byt := range b {
		bands[i] = volumeByteToDB(byt)
	}
	return VolumeAdjustments{bands: bands}
}

// EqualizerPreset is a named, canonical set of band values shipped by the
// device firmware. Only presets the spec's test vectors pin down exactly are
// registered; any other profile ID decodes as an unrecognized (but still
// valid) preset reference, per spec §4.2's "may be ignored on parse".
type EqualizerPreset struct {
	ID    uint16
	Name  string
	Bands []float64
}

// Presets is the compile-time table of known equalizer presets.
var Presets = []EqualizerPreset{
	{ID: 0x0000, Name: "SoundcoreSignature", Bands: []float64{0, 0, 0, 0, 0, 0, 0, 0}},
	{ID: 0x0015, Name: "TrebleReducer", Bands: []float64{0, 0, 0, -2, -3, -4, -4, -6}},
}

// LookupPreset returns the preset registered for id, if any.
func LookupPreset(id uint16) (EqualizerPreset, bool) {
	for _, p := range Presets {
		if p.ID == id {
			return p, true
		}
	}
	return EqualizerPreset{}, false
}

// EqualizerConfiguration is either a reference to a firmware preset or a
// custom set of band values, optionally with an independent right channel.
type EqualizerConfiguration struct {
	ProfileID  uint16
	Bands      VolumeAdjustments
	RightBands *VolumeAdjustments // nil for mono / single-channel devices
}

// IsCustom reports whether this configuration carries user-defined bands.
func (e EqualizerConfiguration) IsCustom() bool { return e.ProfileID == CustomProfileID }

// NewCustomEqualizer builds a custom (non-preset) configuration from band dB values.
func NewCustomEqualizer(bands []float64) EqualizerConfiguration {
	return EqualizerConfiguration{ProfileID: CustomProfileID, Bands: NewVolumeAdjustments(bands)}
}

// NewPresetEqualizer builds a configuration referencing a known preset by ID,
// emitting that preset's canonical bands.
func NewPresetEqualizer(id uint16) EqualizerConfiguration {
	preset, ok := LookupPreset(id)
	var bands []float64
	if ok {
		bands = preset.Bands
	}
	return EqualizerConfiguration{ProfileID: id, Bands: NewVolumeAdjustments(bands)}
}

// WithRightChannel returns a copy of e carrying an independent right-channel
// band set (for two-channel EQ profiles).
func (e EqualizerConfiguration) WithRightChannel(bands []float64) EqualizerConfiguration {
	right := NewVolumeAdjustments(bands)
	e.RightBands = &right
	return e
}

// EncodeEqualizerBody encodes the body used by both SetEqualizer and
// SetEqualizerWithDRC: 2-byte LE profile ID, left bands, optional right bands.
// leftBands lets callers substitute DRC-transformed bands for SetEqualizerWithDRC
// while keeping ProfileID/RightBands semantics identical.
func EncodeEqualizerBody(profileID uint16, leftBands []byte, rightBands []byte) []byte {
	body := make([]byte, 0, 2+len(leftBands)+len(rightBands))
	var idBuf [2]byte
	binary.LittleEndian.PutUint16(idBuf[:], profileID)
	body = append(body, idBuf[:]...)
	body = append(body, leftBands...)
	body = append(body, rightBands...)
	return body
}

// DecodeEqualizerConfiguration decodes a profile ID plus bandCount band bytes
// (and, if stereo, another bandCount right-channel bytes) from cur.
func DecodeEqualizerConfiguration(cur *Cursor, bandCount int, stereo bool) EqualizerConfiguration {
	id := cur.U16()
	left := cur.Take(bandCount)
	cfg := EqualizerConfiguration{ProfileID: id, Bands: VolumeAdjustmentsFromBytes(left)}
	if stereo {
		right := cur.Take(bandCount)
		r := VolumeAdjustmentsFromBytes(right)
		cfg.RightBands = &r
	}
	return cfg
}

// DecodeStereoEqualizerWithExtraBands decodes the equalizer layout the real
// A3933/A3939 firmware uses (original_source/lib/src/devices/a3933/packets/
// inbound/state_update_packet.rs): a profile ID, then the left channel's
// first 8 bands, then bands 9 and 10 for the left channel, then the right
// channel's first 8 raw bands (no separate profile ID of its own), then
// bands 9 and 10 for the right channel — 22 bytes total. Unlike
// DecodeEqualizerConfiguration's flat layout, the 9th/10th bands are not
// contiguous with the first 8 on either channel.
func DecodeStereoEqualizerWithExtraBands(cur *Cursor) EqualizerConfiguration {
	id := cur.U16()
	leftHead := cur.Take(8)
	leftTail := cur.Take(2)
	rightHead := cur.Take(8)
	rightTail := cur.Take(2)

	left := VolumeAdjustmentsFromBytes(append(append([]byte{}, leftHead...), leftTail...))
	right := VolumeAdjustmentsFromBytes(append(append([]byte{}, rightHead...), rightTail...))
	return EqualizerConfiguration{ProfileID: id, Bands: left, RightBands: &right}
}

// DecodeMirroredEqualizerWithExtraBands decodes the A3945-only quirk layout
// (original_source/lib/src/devices/a3945/packets/state_update_packet.rs's
// take_stereo_equalizer_configuration_with_two_extra_bands(8)): a profile ID,
// the first 8 bands, and bands 9 and 10 — 12 bytes total, with NO
// independent right-channel bytes on the wire at all. The real source sets
// right_equalizer_configuration to an exact clone of the left one
// (`left_equalizer_configuration.to_owned()`), so the returned
// EqualizerConfiguration's RightBands points at the same values as Bands.
func DecodeMirroredEqualizerWithExtraBands(cur *Cursor) EqualizerConfiguration {
	id := cur.U16()
	head := cur.Take(8)
	tail := cur.Take(2)
	bands := VolumeAdjustmentsFromBytes(append(append([]byte{}, head...), tail...))
	return EqualizerConfiguration{ProfileID: id, Bands: bands, RightBands: &bands}
}

package wire

// HearIDKind distinguishes the two hear-ID variants spec §3 describes: Basic
// carries only the measured stereo adjustments, Custom additionally carries a
// saved preset index a host app assigned.
type HearIDKind uint8

const (
	HearIDBasic HearIDKind = iota
	HearIDCustom
)

// hearIDRegionLength is the fixed size of the hear-ID block embedded in
// model state-update bodies (spec §4.3, §8: "48-byte hear-ID region").
const hearIDRegionLength = 48

// HearID is a user's per-ear hearing profile: independent stereo volume
// adjustments, the timestamp the profile was measured/saved, and — for the
// Custom variant — the index of the on-device preset slot it was saved to.
//
// DecodeHearID and Bytes use the layout below, which fills the 48-byte region
// exactly when Left and Right carry 8 bands each: 1 byte kind + 8 left + 8
// right band bytes + 4-byte little-endian unix timestamp + 1 byte "has preset
// index" + 1 byte preset index + 25 reserved bytes. The A3933 state-update
// parser (profile/a3933.go) decodes its own 10-band-per-channel layout of the
// region instead of calling DecodeHearID.
type HearID struct {
	Kind          HearIDKind
	Left          VolumeAdjustments
	Right         VolumeAdjustments
	TimestampUnix uint32
	PresetIndex   *uint8
}

// DecodeHearID consumes the fixed 48-byte hear-ID region from cur.
func DecodeHearID(cur *Cursor) HearID {
	kind := HearIDKind(cur.U8())
	left := cur.Take(8)
	right := cur.Take(8)
	ts := cur.U32LE()
	hasPreset := cur.Bool()
	presetByte := cur.U8()
	cur.Skip(25)

	h := HearID{
		Kind:          kind,
		Left:          VolumeAdjustmentsFromBytes(left),
		Right:         VolumeAdjustmentsFromBytes(right),
		TimestampUnix: ts,
	}
	if hasPreset {
		p := presetByte
		h.PresetIndex = &p
	}
	return h
}

// Bytes encodes the hear-ID region back to its fixed 48-byte wire form.
func (h HearID) Bytes() []byte {
	out := make([]byte, 0, hearIDRegionLength)
	out = append(out, byte(h.Kind))
	out = append(out, h.Left.Bytes()...)
	out = append(out, h.Right.Bytes()...)
	var tsBuf [4]byte
	putU32LE(tsBuf[:], h.TimestampUnix)
	out = append(out, tsBuf[:]...)
	if h.PresetIndex != nil {
		out = append(out, 1, *h.PresetIndex)
	} else {
		out = append(out, 0, 0)
	}
	out = append(out, make([]byte, 25)...)
	return out
}

package wire

// AgeRangeUnset is the sentinel value meaning "no hear-ID profile exists for
// this device" (spec §4.3, §8: "age_range == 255 ... hear_id == None").
const AgeRangeUnset uint8 = 255

// Gender is the self-reported gender used to pick a hear-ID curve.
type Gender uint8

const (
	GenderMale Gender = iota
	GenderFemale
	GenderOther
)

// HostDevice tags which physical earbud (or the headset as a whole) is acting
// as the BLE GATT host for a TWS pair.
type HostDevice uint8

// AmbientSoundModeCycle controls which ambient-sound-mode entries participate
// when the device's physical button cycles through modes, packed one bit per
// mode (bit0=Normal, bit1=Transparency, bit2=NoiseCanceling).
type AmbientSoundModeCycle struct {
	Normal         bool
	Transparency   bool
	NoiseCanceling bool
}

// DecodeAmbientSoundModeCycle unpacks a single cycle-mask byte.
func DecodeAmbientSoundModeCycle(b byte) AmbientSoundModeCycle {
	return AmbientSoundModeCycle{
		Normal:         b&0x01 != 0,
		Transparency:   b&0x02 != 0,
		NoiseCanceling: b&0x04 != 0,
	}
}

// Byte packs the cycle mask into its single-byte wire form.
func (c AmbientSoundModeCycle) Byte() byte {
	var b byte
	if c.Normal {
		b |= 0x01
	}
	if c.Transparency {
		b |= 0x02
	}
	if c.NoiseCanceling {
		b |= 0x04
	}
	return b
}

// ButtonAction is an action a physical button press can trigger.
type ButtonAction uint8

const (
	ButtonActionNone ButtonAction = iota
	ButtonActionVolumeUp
	ButtonActionVolumeDown
	ButtonActionNextTrack
	ButtonActionPreviousTrack
	ButtonActionPlayPause
	ButtonActionVoiceAssistant
	ButtonActionAmbientCycle
)

// ButtonGesture is a single tap pattern a button recognizes.
type ButtonGesture uint8

const (
	GestureSingleTap ButtonGesture = iota
	GestureDoubleTap
	GestureTripleTap
	GestureLongPress
)

// CustomButtonModel maps each (side, gesture) pair to an action. Encoded as
// one byte per gesture per side, left then right, in GestureSingleTap..
// GestureLongPress order — 4 gestures x 2 sides = 8 bytes total.
type CustomButtonModel struct {
	Left  [4]ButtonAction
	Right [4]ButtonAction
}

// DecodeCustomButtonModel consumes the 8-byte button-mapping block.
func DecodeCustomButtonModel(cur *Cursor) CustomButtonModel {
	var m CustomButtonModel
	for i := range m.Left {
		m.Left[i] = ButtonAction(cur.U8())
	}
	for i := range m.Right {
		m.Right[i] = ButtonAction(cur.U8())
	}
	return m
}

// Bytes encodes the button mapping back to its 8-byte wire form.
func (m CustomButtonModel) Bytes() []byte {
	out := make([]byte, 0, 8)
	for _, a := range m.Left {
		out = append(out, byte(a))
	}
	for _, a := range m.Right {
		out = append(out, byte(a))
	}
	return out
}

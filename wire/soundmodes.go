package wire

// AmbientSoundMode selects the headline sound mode.
type AmbientSoundMode uint8

const (
	AmbientNormal AmbientSoundMode = iota
	AmbientTransparency
	AmbientNoiseCanceling
)

// NoiseCancelingMode selects the ANC profile used while AmbientNoiseCanceling is active.
type NoiseCancelingMode uint8

const (
	NoiseCancelingTransport NoiseCancelingMode = iota
	NoiseCancelingOutdoor
	NoiseCancelingIndoor
	NoiseCancelingCustom
)

// TransparencyMode selects the transparency profile used while AmbientTransparency is active.
type TransparencyMode uint8

const (
	TransparencyFullyTransparent TransparencyMode = iota
	TransparencyVocalMode
)

// SoundModes is the single-byte bit-packed mode selector (spec §4.2):
// ambient in bits 0-1, noise-canceling in bits 2-3, transparency in bit 4,
// custom ANC intensity in bits 5-7.
//
// The 3-bit custom-ANC field can only represent 0-7, while spec §3 documents
// the logical range as 0..=10; that mismatch is carried verbatim from the
// spec rather than silently "fixed". Values
// above 7 are masked down to their low 3 bits on encode.
type SoundModes struct {
	Ambient             AmbientSoundMode
	NoiseCanceling      NoiseCancelingMode
	Transparency        TransparencyMode
	CustomNoiseCanceling uint8
}

const (
	ambientMask        = 0x03
	noiseCancelingMask = 0x03
	noiseCancelingShift = 2
	transparencyShift  = 4
	customANCMask      = 0x07
	customANCShift     = 5
)

// DecodeSoundModes unpacks a single SoundModes byte.
func DecodeSoundModes(b byte) SoundModes {
	return SoundModes{
		Ambient:              AmbientSoundMode(b & ambientMask),
		NoiseCanceling:       NoiseCancelingMode((b >> noiseCancelingShift) & noiseCancelingMask),
		Transparency:         TransparencyMode((b >> transparencyShift) & 0x01),
		CustomNoiseCanceling: (b >> customANCShift) & customANCMask,
	}
}

// Byte packs SoundModes into its single-byte wire form.
func (m SoundModes) Byte() byte {
	var b byte
	b |= byte(m.Ambient) & ambientMask
	b |= (byte(m.NoiseCanceling) & noiseCancelingMask) << noiseCancelingShift
	b |= (byte(m.Transparency) & 0x01) << transparencyShift
	b |= (m.CustomNoiseCanceling & customANCMask) << customANCShift
	return b
}

// SoundModesTypeTwo is a second, firmware-revision-specific packed mode
// layout used by newer models (spec §3 "sound_modes_type_two"). It shares the
// same field set and bit layout as SoundModes but is kept as a distinct type
// so profiles can select one or the other via FeatureFlags without the two
// being interchangeable by accident.
type SoundModesTypeTwo SoundModes

// DecodeSoundModesTypeTwo unpacks a SoundModesTypeTwo byte.
func DecodeSoundModesTypeTwo(b byte) SoundModesTypeTwo {
	return SoundModesTypeTwo(DecodeSoundModes(b))
}

// Byte packs SoundModesTypeTwo into its single-byte wire form.
func (m SoundModesTypeTwo) Byte() byte {
	return SoundModes(m).Byte()
}

package wire

import "encoding/binary"

// CommandHeader is the 7-byte command header prefixing every packet: a 2-byte
// vendor/direction tag, 3 reserved bytes, and a 2-byte category+opcode pair
// (spec §6). It is compared by value, not parsed field-by-field — models
// dispatch on the header as an opaque key.
type CommandHeader [7]byte

// String renders the header as space-separated hex, matching the form it
// appears in throughout the spec and in test fixtures.
func (h CommandHeader) String() string {
	const hextab = "0123456789ABCDEF"
	out := make([]byte, 0, 7*3-1)
	for i, b := range h {
		if i > 0 {
			out = append(out, ' ')
		}
		out = append(out, hextab[b>>4], hextab[b&0x0F])
	}
	return string(out)
}

// Headers given bit-exactly by the representative-commands table (spec §6).
var (
	HeaderRequestState                  = CommandHeader{0x08, 0xEE, 0x00, 0x00, 0x00, 0x01, 0x01}
	HeaderRequestFirmwareVersion        = CommandHeader{0x08, 0xEE, 0x00, 0x00, 0x00, 0x01, 0x05}
	HeaderSetEqualizer                  = CommandHeader{0x08, 0xEE, 0x00, 0x00, 0x00, 0x02, 0x81}
	HeaderSetEqualizerDRC               = CommandHeader{0x08, 0xEE, 0x00, 0x00, 0x00, 0x02, 0x83}
	HeaderSetSoundModes                 = CommandHeader{0x08, 0xEE, 0x00, 0x00, 0x00, 0x02, 0x82}
	HeaderInboundStateUpdate            = CommandHeader{0x09, 0xFF, 0x00, 0x00, 0x01, 0x01, 0x01}
	HeaderInboundSoundModesUpdate       = CommandHeader{0x09, 0xFF, 0x00, 0x00, 0x01, 0x06, 0x01}
	HeaderInboundChineseVoicePromptState = CommandHeader{0x09, 0xFF, 0x00, 0x00, 0x01, 0x01, 0x0F}
	HeaderInboundLDACState              = CommandHeader{0x09, 0xFF, 0x00, 0x00, 0x01, 0x01, 0x7F}
)

// Headers for the remaining four outbound commands (request-serial-number,
// set-custom-button-model, set-hear-id, set-ambient-sound-mode-cycle) are not
// pinned by any test vector in spec §8. These follow the observed opcode
// numbering — request-serial-number takes the next opcode after
// request-firmware-version, and the three setters take the next free opcodes
// after the two equalizer variants and set-sound-modes — but are
// extrapolations, not confirmed wire
// values; a real device profile should override them if it knows better.
var (
	HeaderRequestSerialNumber      = CommandHeader{0x08, 0xEE, 0x00, 0x00, 0x00, 0x01, 0x06}
	HeaderSetCustomButtonModel     = CommandHeader{0x08, 0xEE, 0x00, 0x00, 0x00, 0x02, 0x84}
	HeaderSetHearID                = CommandHeader{0x08, 0xEE, 0x00, 0x00, 0x00, 0x02, 0x85}
	HeaderSetAmbientSoundModeCycle = CommandHeader{0x08, 0xEE, 0x00, 0x00, 0x00, 0x02, 0x86}
)

// envelopeOverhead is the fixed envelope cost outside the body: 7-byte
// header + 2-byte length + 1-byte checksum (spec §4.3, §6).
const envelopeOverhead = 10

// EncodePacket assembles a full outbound frame: header, little-endian total
// length, body, and trailing checksum.
func EncodePacket(header CommandHeader, body []byte) []byte {
	length := envelopeOverhead + len(body)
	buf := make([]byte, 0, length)
	buf = append(buf, header[:]...)
	var lenBuf [2]byte
	binary.LittleEndian.PutUint16(lenBuf[:], uint16(length))
	buf = append(buf, lenBuf[:]...)
	buf = append(buf, body...)
	buf = append(buf, Checksum(buf))
	return buf
}

// DecodePacket validates a complete inbound frame's envelope length and
// checksum and splits it into its header and body. frame must be exactly one
// already-reassembled wire frame (spec §4.7: "one notification = one wire
// frame").
func DecodePacket(frame []byte) (header CommandHeader, body []byte, err error) {
	if len(frame) < envelopeOverhead {
		return header, nil, newParseError(0, "frame too short: need at least %d bytes, have %d", envelopeOverhead, len(frame))
	}
	copy(header[:], frame[:7])
	length := int(binary.LittleEndian.Uint16(frame[7:9]))
	if length != len(frame) {
		return header, nil, newParseError(7, "envelope declares length %d, frame is %d bytes", length, len(frame))
	}
	want := Checksum(frame[:length-1])
	got := frame[length-1]
	if want != got {
		return header, nil, newParseError(length-1, "checksum mismatch: computed %#02x, frame has %#02x", want, got)
	}
	return header, frame[9 : length-1], nil
}

// EncodeRequestState builds the outbound request-state command.
func EncodeRequestState() []byte { return EncodePacket(HeaderRequestState, nil) }

// EncodeRequestFirmwareVersion builds the outbound request-firmware-version command.
func EncodeRequestFirmwareVersion() []byte { return EncodePacket(HeaderRequestFirmwareVersion, nil) }

// EncodeRequestSerialNumber builds the outbound request-serial-number command.
func EncodeRequestSerialNumber() []byte { return EncodePacket(HeaderRequestSerialNumber, nil) }

// EncodeSetSoundModes builds the outbound set-sound-modes command: a single
// packed mode byte.
func EncodeSetSoundModes(m SoundModes) []byte {
	return EncodePacket(HeaderSetSoundModes, []byte{m.Byte()})
}

// EncodeSetSoundModesTypeTwo builds the outbound command for the type-two
// packed mode layout, sharing set-sound-modes' header: the two layouts are
// distinguished by DeviceProfile feature flags, not by header (spec §3
// "sound_modes_type_two").
func EncodeSetSoundModesTypeTwo(m SoundModesTypeTwo) []byte {
	return EncodePacket(HeaderSetSoundModes, []byte{m.Byte()})
}

// setEqualizerLengthLiteral is the length field the real firmware protocol
// hardcodes into every set-equalizer command (original_source/lib/src/
// packets/outbound/set_equalizer.rs builds its byte vector starting from the
// literal `0x14, 0x00` and just appends whatever band bytes follow, rather
// than recomputing the field from the final length). For a mono command this
// happens to equal the true frame length; for the two-channel form (test
// vector 4) it does not, and the real wire format carries that mismatch
// rather than correcting it.
const setEqualizerLengthLiteral = 0x0014

// EncodeSetEqualizer builds the outbound set-equalizer command: 2-byte LE
// profile ID, left bands, and optionally right bands (spec §6, test vectors
// 1-4). The length field is the literal setEqualizerLengthLiteral, not a
// recomputed byte count — see its doc comment.
func EncodeSetEqualizer(cfg EqualizerConfiguration) []byte {
	var right []byte
	if cfg.RightBands != nil {
		right = cfg.RightBands.Bytes()
	}
	body := EncodeEqualizerBody(cfg.ProfileID, cfg.Bands.Bytes(), right)

	buf := make([]byte, 0, 7+2+len(body)+1)
	buf = append(buf, HeaderSetEqualizer[:]...)
	var lenBuf [2]byte
	binary.LittleEndian.PutUint16(lenBuf[:], setEqualizerLengthLiteral)
	buf = append(buf, lenBuf[:]...)
	buf = append(buf, body...)
	buf = append(buf, Checksum(buf))
	return buf
}

// EncodeSetEqualizerWithDRC builds the outbound set-equalizer-with-DRC
// command: profile ID, raw left bands, DRC-transformed left bands, and —
// when present — raw and DRC-transformed right bands (spec §6: "profile-id +
// left bands + DRC-transformed bands + optionally right channel").
func EncodeSetEqualizerWithDRC(cfg EqualizerConfiguration) []byte {
	var idBuf [2]byte
	binary.LittleEndian.PutUint16(idBuf[:], cfg.ProfileID)

	body := make([]byte, 0, 2+2*cfg.Bands.Len()*2)
	body = append(body, idBuf[:]...)
	body = append(body, cfg.Bands.Bytes()...)
	body = append(body, drcBytesForBands(cfg.Bands)...)
	if cfg.RightBands != nil {
		body = append(body, cfg.RightBands.Bytes()...)
		body = append(body, drcBytesForBands(*cfg.RightBands)...)
	}
	return EncodePacket(HeaderSetEqualizerDRC, body)
}

// drcBytesForBands applies the DRC transform to the first 8 bands of adj and
// carries any remaining bands through unchanged. The source's apply_drc() is
// only defined over 8 bands ("despite EQ being 10 bands, only the first 8
// seem to be used?" — original_source/lib/src/devices/a3945/packets/
// state_update_packet.rs); a profile with fewer than 8 bands, which DRC
// cannot transform, falls back to the raw bytes rather than
// emitting a malformed command.
func drcBytesForBands(adj VolumeAdjustments) []byte {
	vals := adj.Slice()
	head := adj
	var tail []float64
	if len(vals) > 8 {
		head = NewVolumeAdjustments(vals[:8])
		tail = vals[8:]
	}
	drced, err := DRC(head)
	if err != nil {
		return adj.Bytes()
	}
	out := drced.Bytes()
	if tail != nil {
		out = append(out, NewVolumeAdjustments(tail).Bytes()...)
	}
	return out
}

// EncodeSetCustomButtonModel builds the outbound set-custom-button-model command.
func EncodeSetCustomButtonModel(m CustomButtonModel) []byte {
	return EncodePacket(HeaderSetCustomButtonModel, m.Bytes())
}

// EncodeSetHearID builds the outbound set-hear-id command: the fixed 48-byte
// hear-id region.
func EncodeSetHearID(h HearID) []byte {
	return EncodePacket(HeaderSetHearID, h.Bytes())
}

// EncodeSetAmbientSoundModeCycle builds the outbound
// set-ambient-sound-mode-cycle command: a single packed cycle-mask byte.
func EncodeSetAmbientSoundModeCycle(c AmbientSoundModeCycle) []byte {
	return EncodePacket(HeaderSetAmbientSoundModeCycle, []byte{c.Byte()})
}

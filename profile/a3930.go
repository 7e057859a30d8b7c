package profile

import (
	"github.com/soundcore-oss/soundcore-go/state"
	"github.com/soundcore-oss/soundcore-go/transport"
	"github.com/soundcore-oss/soundcore-go/wire"
)

var a3930ServiceUUID = transport.MustParseUUID("0000a930-0000-1000-8000-00805f9b34fb")

const a3930EqualizerBands = 8

// parseA3930StateUpdate decodes the A3930's state-update body. A3930 is a
// single-unit (non-TWS) over-ear headphone: one battery cell, one firmware
// version, no hear-id, 8-band mono equalizer, and a packed sound-modes byte.
func parseA3930StateUpdate(body []byte) (StateUpdatePacket, error) {
	cur := wire.NewCursor(body)

	var pkt StateUpdatePacket
	battery := wire.DecodeSingleBattery(cur)
	pkt.SingleBattery = &battery
	pkt.FirmwareVersion = wire.DecodeFirmwareVersion(cur)
	pkt.SerialNumber = wire.DecodeSerialNumber(cur)
	pkt.EqualizerConfiguration = wire.DecodeEqualizerConfiguration(cur, a3930EqualizerBands, false)
	modes := wire.DecodeSoundModes(cur.U8())
	pkt.SoundModes = &modes

	if cur.Err() != nil {
		return pkt, cur.Err()
	}
	return pkt, nil
}

func dispatchA3930SoundModesUpdate(payload []byte, current state.DeviceState) (state.DeviceState, error) {
	cur := wire.NewCursor(payload)
	b := cur.U8()
	if cur.Err() != nil {
		return current, cur.Err()
	}
	return current.WithSoundModes(wire.DecodeSoundModes(b)), nil
}

var a3930Profile = DeviceProfile{
	Model:                  "A3930",
	ServiceUUID:            a3930ServiceUUID,
	FeatureFlags:           FeatureSoundModes | FeatureANC | FeatureTransparency | FeatureEqualizer | FeatureSingleBattery,
	NumberOfEqualizerBands: a3930EqualizerBands,
	StateUpdateParser:      parseA3930StateUpdate,
	CommandEncoders: CommandEncoders{
		RequestState:           wire.EncodeRequestState,
		RequestFirmwareVersion: wire.EncodeRequestFirmwareVersion,
		RequestSerialNumber:    wire.EncodeRequestSerialNumber,
		SetSoundModes:          wire.EncodeSetSoundModes,
		SetEqualizer:           wire.EncodeSetEqualizer,
	},
	InboundDispatch: map[wire.CommandHeader]DispatchFunc{
		wire.HeaderInboundSoundModesUpdate: dispatchA3930SoundModesUpdate,
	},
}

package profile

import (
	"github.com/soundcore-oss/soundcore-go/state"
	"github.com/soundcore-oss/soundcore-go/transport"
	"github.com/soundcore-oss/soundcore-go/wire"
)

var a3951ServiceUUID = transport.MustParseUUID("0000a951-0000-1000-8000-00805f9b34fb")

const a3951EqualizerBands = 8

// parseA3951StateUpdate decodes the A3951's state-update body. A3951 is a
// newer-generation TWS earbud using the type-two packed sound-modes layout
// (spec §3 "sound_modes_type_two") and a custom button model, but no hear-id
// or DRC support.
func parseA3951StateUpdate(body []byte) (StateUpdatePacket, error) {
	cur := wire.NewCursor(body)

	var pkt StateUpdatePacket
	pkt.HostDevice = wire.HostDevice(cur.U8())
	pkt.TWSStatus = cur.Bool()
	pkt.Battery = wire.DecodeDualBattery(cur)
	pkt.FirmwareVersion = wire.DecodeFirmwareVersion(cur)
	fwRight := wire.DecodeFirmwareVersion(cur)
	pkt.FirmwareVersionRight = &fwRight
	pkt.SerialNumber = wire.DecodeSerialNumber(cur)
	pkt.EqualizerConfiguration = wire.DecodeEqualizerConfiguration(cur, a3951EqualizerBands, false)
	modes := wire.DecodeSoundModesTypeTwo(cur.U8())
	pkt.SoundModesTypeTwo = &modes
	buttons := wire.DecodeCustomButtonModel(cur)
	pkt.CustomButtonModel = &buttons
	cycle := wire.DecodeAmbientSoundModeCycle(cur.U8())
	pkt.AmbientSoundModeCycle = &cycle

	if cur.Err() != nil {
		return pkt, cur.Err()
	}
	return pkt, nil
}

func dispatchA3951SoundModesUpdate(payload []byte, current state.DeviceState) (state.DeviceState, error) {
	cur := wire.NewCursor(payload)
	b := cur.U8()
	if cur.Err() != nil {
		return current, cur.Err()
	}
	return current.WithSoundModesTypeTwo(wire.DecodeSoundModesTypeTwo(b)), nil
}

var a3951Profile = DeviceProfile{
	Model:       "A3951",
	ServiceUUID: a3951ServiceUUID,
	FeatureFlags: FeatureSoundModesTypeTwo | FeatureANC | FeatureTransparency | FeatureCustomANC |
		FeatureNoiseCancelingMode | FeatureEqualizer | FeatureCustomButtonModel | FeatureAmbientSoundModeCycle,
	NumberOfEqualizerBands: a3951EqualizerBands,
	StateUpdateParser:      parseA3951StateUpdate,
	CommandEncoders: CommandEncoders{
		RequestState:             wire.EncodeRequestState,
		RequestFirmwareVersion:   wire.EncodeRequestFirmwareVersion,
		RequestSerialNumber:      wire.EncodeRequestSerialNumber,
		SetSoundModesTypeTwo:     wire.EncodeSetSoundModesTypeTwo,
		SetEqualizer:             wire.EncodeSetEqualizer,
		SetCustomButtonModel:     wire.EncodeSetCustomButtonModel,
		SetAmbientSoundModeCycle: wire.EncodeSetAmbientSoundModeCycle,
	},
	InboundDispatch: map[wire.CommandHeader]DispatchFunc{
		wire.HeaderInboundSoundModesUpdate: dispatchA3951SoundModesUpdate,
	},
}

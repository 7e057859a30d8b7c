package profile

import (
	"github.com/soundcore-oss/soundcore-go/state"
	"github.com/soundcore-oss/soundcore-go/transport"
	"github.com/soundcore-oss/soundcore-go/wire"
)

var a3945ServiceUUID = transport.MustParseUUID("0000a945-0000-1000-8000-00805f9b34fb")

const a3945EqualizerBands = 10 // 8 base bands + two extra bands; only the left channel is ever on the wire

// parseA3945StateUpdate decodes the A3945's state-update body, grounded on
// original_source/lib/src/devices/a3945/packets/state_update_packet.rs.
// Layout, in order: host_device(1), tws_status(1), dual-battery(4), left
// firmware(5), right firmware(5), serial(16), the mirrored equalizer-with-
// extra-bands quirk (profile-id(2) + 8 bands + 2 extra bands = 12 bytes; the
// right channel is synthesized as an exact clone rather than read from the
// wire — `right_equalizer_configuration: left_equalizer_configuration.to_owned()`
// in the real source), custom_button_model(8), touch_tone_switch(1),
// wear_detection_switch(1), game_mode_switch(1), charging_case_battery_level(1),
// bass_up_switch(1), device_color(1).
//
// Unlike A3933, the real A3945 packet carries no sound_modes byte anywhere in
// its body — its From impl sets sound_modes: None unconditionally. Sound
// modes reach this profile only through the separate sound-modes-update
// dispatch header, exactly as A3933 already handles them.
func parseA3945StateUpdate(body []byte) (StateUpdatePacket, error) {
	cur := wire.NewCursor(body)

	var pkt StateUpdatePacket
	pkt.HostDevice = wire.HostDevice(cur.U8())
	pkt.TWSStatus = cur.Bool()
	pkt.Battery = wire.DecodeDualBattery(cur)
	pkt.FirmwareVersion = wire.DecodeFirmwareVersion(cur)
	fwRight := wire.DecodeFirmwareVersion(cur)
	pkt.FirmwareVersionRight = &fwRight
	pkt.SerialNumber = wire.DecodeSerialNumber(cur)
	pkt.EqualizerConfiguration = wire.DecodeMirroredEqualizerWithExtraBands(cur)

	cbm := wire.DecodeCustomButtonModel(cur)
	pkt.CustomButtonModel = &cbm
	pkt.TouchTone = cur.Bool()
	pkt.WearDetection = cur.Bool()
	pkt.GameMode = cur.Bool()
	ccLevel := cur.U8()
	pkt.ChargingCaseBattery = &wire.Battery{Level: ccLevel}
	pkt.BassUp = cur.Bool()
	pkt.DeviceColor = cur.U8()

	if cur.Err() != nil {
		return pkt, cur.Err()
	}
	return pkt, nil
}

func dispatchA3945SoundModesUpdate(payload []byte, current state.DeviceState) (state.DeviceState, error) {
	cur := wire.NewCursor(payload)
	b := cur.U8()
	if cur.Err() != nil {
		return current, cur.Err()
	}
	return current.WithSoundModes(wire.DecodeSoundModes(b)), nil
}

var a3945Profile = DeviceProfile{
	Model:       "A3945",
	ServiceUUID: a3945ServiceUUID,
	FeatureFlags: FeatureSoundModes | FeatureANC | FeatureTransparency | FeatureCustomANC |
		FeatureNoiseCancelingMode | FeatureEqualizer | FeatureTwoChannelEQ | FeatureDRCEQ |
		FeatureDynamicRangeCompression | FeatureCustomButtonModel | FeatureChargingCaseBattery |
		FeatureBassUp | FeatureTouchTone | FeatureWearDetection | FeatureGameMode | FeatureDeviceColor,
	NumberOfEqualizerBands: a3945EqualizerBands,
	StateUpdateParser:      parseA3945StateUpdate,
	CommandEncoders: CommandEncoders{
		RequestState:           wire.EncodeRequestState,
		RequestFirmwareVersion: wire.EncodeRequestFirmwareVersion,
		RequestSerialNumber:    wire.EncodeRequestSerialNumber,
		SetSoundModes:          wire.EncodeSetSoundModes,
		SetEqualizer:           wire.EncodeSetEqualizer,
		SetEqualizerWithDRC:    wire.EncodeSetEqualizerWithDRC,
		SetCustomButtonModel:   wire.EncodeSetCustomButtonModel,
	},
	InboundDispatch: map[wire.CommandHeader]DispatchFunc{
		wire.HeaderInboundSoundModesUpdate: dispatchA3945SoundModesUpdate,
	},
}

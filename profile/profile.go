// Package profile holds the compile-time device-profile registry: one
// DeviceProfile per supported model, selected by BLE service UUID, binding
// that model's state-update parser, command encoders, and inbound dispatch
// table (spec §4.4). This is the system's polymorphism spine — there is no
// per-model type hierarchy, only data.
package profile

import (
	"fmt"

	"github.com/soundcore-oss/soundcore-go/internal/logx"
	"github.com/soundcore-oss/soundcore-go/state"
	"github.com/soundcore-oss/soundcore-go/transport"
	"github.com/soundcore-oss/soundcore-go/wire"
)

var log = logx.Named("profile")

// FeatureFlag is a bit in a DeviceProfile's feature bitset (spec §3).
type FeatureFlag uint32

const (
	FeatureSoundModes FeatureFlag = 1 << iota
	FeatureANC
	FeatureTransparency
	FeatureCustomANC
	FeatureNoiseCancelingMode
	FeatureHearID
	FeatureEqualizer
	FeatureTwoChannelEQ
	FeatureDRCEQ
	FeatureCustomButtonModel
	FeatureAmbientSoundModeCycle
	FeatureWindNoiseDetection
	FeatureChargingCaseBattery
	FeatureDynamicRangeCompression
	FeatureSingleBattery
	FeatureTwoExtraEQBands
	FeatureSoundModesTypeTwo
	FeatureBassUp
	FeatureTouchTone
	FeatureWearDetection
	FeatureGameMode
	FeatureDeviceColor
)

// Has reports whether flag is set.
func (f FeatureFlag) Has(flag FeatureFlag) bool { return f&flag != 0 }

// StateUpdatePacket is the universal decoded form every per-model
// state-update parser produces (spec §3, §9: "one universal StateUpdatePacket
// form"). Fields a given model's profile does not support are left nil/zero;
// DeviceProfile.InitialState only copies fields their feature flags claim.
type StateUpdatePacket struct {
	HostDevice wire.HostDevice
	TWSStatus  bool

	Battery       wire.DualBattery
	SingleBattery *wire.Battery

	EqualizerConfiguration wire.EqualizerConfiguration

	SoundModes        *wire.SoundModes
	SoundModesTypeTwo *wire.SoundModesTypeTwo

	AgeRange *uint8
	Gender   *wire.Gender
	HearID   *wire.HearID

	CustomButtonModel     *wire.CustomButtonModel
	AmbientSoundModeCycle *wire.AmbientSoundModeCycle

	FirmwareVersion      wire.FirmwareVersion
	FirmwareVersionRight *wire.FirmwareVersion
	SerialNumber         wire.SerialNumber

	TouchTone           bool
	WearDetection       bool
	GameMode            bool
	BassUp              bool
	ChargingCaseBattery *wire.Battery
	UnknownTrailerByte  byte
	DeviceColor         byte
	WindNoiseDetection  bool
}

// FeatureDeviceColor, FeatureTouchTone, FeatureWearDetection, FeatureGameMode,
// and FeatureBassUp gate InitialState's folding of the corresponding
// StateUpdatePacket fields into state.DeviceState (spec §3's per-model
// optional-field proliferation, supplemented with the real fields
// original_source/ carries that spec.md's distillation generalized away).

// CommandEncoders collects the outbound byte-producing functions a profile
// supplies; every field must be non-nil for any feature the profile's
// FeatureFlags advertise as supported (spec §4.4).
type CommandEncoders struct {
	RequestState             func() []byte
	RequestFirmwareVersion   func() []byte
	RequestSerialNumber      func() []byte
	SetSoundModes            func(wire.SoundModes) []byte
	SetSoundModesTypeTwo     func(wire.SoundModesTypeTwo) []byte
	SetEqualizer             func(wire.EqualizerConfiguration) []byte
	SetEqualizerWithDRC      func(wire.EqualizerConfiguration) []byte
	SetCustomButtonModel     func(wire.CustomButtonModel) []byte
	SetHearID                func(wire.HearID) []byte
	SetAmbientSoundModeCycle func(wire.AmbientSoundModeCycle) []byte
}

// DispatchFunc folds one inbound packet's payload into the current state,
// returning the new state (spec §3 "inbound_dispatch: map from 7-byte
// command header → function (payload, current_state) → new_state").
type DispatchFunc func(payload []byte, current state.DeviceState) (state.DeviceState, error)

// DeviceProfile is an immutable, process-lifetime record describing one
// device model's wire dialect (spec §3, §4.4).
type DeviceProfile struct {
	Model                  string
	ServiceUUID            transport.UUID
	FeatureFlags           FeatureFlag
	NumberOfEqualizerBands int
	StateUpdateParser      func(body []byte) (StateUpdatePacket, error)
	CommandEncoders        CommandEncoders
	InboundDispatch        map[wire.CommandHeader]DispatchFunc
}

// InitialState builds the DeviceState a session starts with from the first
// successfully parsed state-update packet (spec §3 "A DeviceState is only
// constructed from a successful state-update parse plus its owning
// profile").
func (p DeviceProfile) InitialState(pkt StateUpdatePacket) state.DeviceState {
	s := state.DeviceState{
		ProfileName:            p.Model,
		EqualizerConfiguration: pkt.EqualizerConfiguration,
	}

	if p.FeatureFlags.Has(FeatureSingleBattery) {
		s.SingleBattery = pkt.SingleBattery
	} else {
		s.Battery = pkt.Battery
	}
	if p.FeatureFlags.Has(FeatureSoundModes) {
		s.SoundModes = pkt.SoundModes
	}
	if p.FeatureFlags.Has(FeatureSoundModesTypeTwo) {
		s.SoundModesTypeTwo = pkt.SoundModesTypeTwo
	}
	if p.FeatureFlags.Has(FeatureHearID) {
		s.AgeRange = pkt.AgeRange
		s.Gender = pkt.Gender
		s.HearID = pkt.HearID
	}
	if p.FeatureFlags.Has(FeatureCustomButtonModel) {
		s.CustomButtonModel = pkt.CustomButtonModel
	}
	if p.FeatureFlags.Has(FeatureAmbientSoundModeCycle) {
		s.AmbientSoundModeCycle = pkt.AmbientSoundModeCycle
	}
	if p.FeatureFlags.Has(FeatureChargingCaseBattery) {
		s.ChargingCaseBattery = pkt.ChargingCaseBattery
	}
	if p.FeatureFlags.Has(FeatureWindNoiseDetection) {
		wnd := pkt.WindNoiseDetection
		s.WindNoiseDetection = &wnd
	}
	if p.FeatureFlags.Has(FeatureTouchTone) {
		tt := pkt.TouchTone
		s.TouchTone = &tt
	}
	if p.FeatureFlags.Has(FeatureWearDetection) {
		wd := pkt.WearDetection
		s.WearDetection = &wd
	}
	if p.FeatureFlags.Has(FeatureGameMode) {
		gm := pkt.GameMode
		s.GameMode = &gm
	}
	if p.FeatureFlags.Has(FeatureBassUp) {
		bu := pkt.BassUp
		s.BassUp = &bu
	}
	if p.FeatureFlags.Has(FeatureDeviceColor) {
		dc := pkt.DeviceColor
		s.DeviceColor = &dc
	}

	fw := pkt.FirmwareVersion
	s.FirmwareVersion = &fw
	sn := pkt.SerialNumber
	s.SerialNumber = &sn
	hd := pkt.HostDevice
	s.HostDevice = &hd
	tws := pkt.TWSStatus
	s.TWSStatus = &tws

	return s
}

// Dispatch looks up header in p's inbound dispatch table and applies it.
// Unknown headers are logged and ignored, never mutating state or panicking
// (spec §4.3 "Unknown headers are logged and ignored"; §8 "Unknown inbound
// headers never panic and never mutate state").
func (p DeviceProfile) Dispatch(header wire.CommandHeader, payload []byte, current state.DeviceState) state.DeviceState {
	fn, ok := p.InboundDispatch[header]
	if !ok {
		log.WithField("header", header.String()).WithField("model", p.Model).Debug("unknown inbound header, ignoring")
		return current
	}
	next, err := fn(payload, current)
	if err != nil {
		log.WithError(err).WithField("header", header.String()).WithField("model", p.Model).Warn("dropping malformed inbound packet")
		return current
	}
	return next
}

// UnsupportedFeatureError reports that a profile does not advertise a
// feature. session's command methods report that case as a *StateError with
// code StateErrorUnsupportedFeature instead of this type.
type UnsupportedFeatureError struct {
	Model   string
	Feature string
}

func (e *UnsupportedFeatureError) Error() string {
	return fmt.Sprintf("profile: %s does not support %s", e.Model, e.Feature)
}

// Package state defines DeviceState, the single authoritative snapshot of a
// connected device's settings that a session folds inbound packets into
// (spec §3).
package state

import "github.com/soundcore-oss/soundcore-go/wire"

// DeviceState is the mutable, session-owned aggregate of everything known
// about a connected device. It is never mutated in place once published: the
// session builds a new value and replaces its snapshot cell wholesale (spec
// §3 "Snapshots are immutable; the session publishes by replacing its owned
// latest-value cell").
type DeviceState struct {
	// ProfileName names the owning DeviceProfile (by Model) rather than
	// embedding a reference, so this package has no dependency on profile.
	ProfileName string

	Battery                wire.DualBattery
	SingleBattery          *wire.Battery // set instead of Battery when the profile is single-battery
	EqualizerConfiguration wire.EqualizerConfiguration

	SoundModes         *wire.SoundModes
	SoundModesTypeTwo  *wire.SoundModesTypeTwo
	AgeRange           *uint8
	Gender             *wire.Gender
	HearID             *wire.HearID
	CustomButtonModel  *wire.CustomButtonModel
	FirmwareVersion    *wire.FirmwareVersion
	SerialNumber       *wire.SerialNumber
	AmbientSoundModeCycle *wire.AmbientSoundModeCycle

	HostDevice *wire.HostDevice
	TWSStatus  *bool

	TouchTone           *bool
	WearDetection       *bool
	GameMode            *bool
	BassUp              *bool
	ChargingCaseBattery *wire.Battery
	DeviceColor         *byte
	WindNoiseDetection  *bool
}

// IsSingleBattery reports whether this state was populated by a
// single-battery profile rather than a dual-battery one.
func (s DeviceState) IsSingleBattery() bool { return s.SingleBattery != nil }

// WithEqualizerConfiguration returns a copy of s with its equalizer replaced,
// used by the inbound pump to fold an equalizer-update packet without
// mutating the published snapshot in place.
func (s DeviceState) WithEqualizerConfiguration(cfg wire.EqualizerConfiguration) DeviceState {
	s.EqualizerConfiguration = cfg
	return s
}

// WithSoundModes returns a copy of s with sound_modes replaced.
func (s DeviceState) WithSoundModes(m wire.SoundModes) DeviceState {
	s.SoundModes = &m
	return s
}

// WithSoundModesTypeTwo returns a copy of s with sound_modes_type_two replaced.
func (s DeviceState) WithSoundModesTypeTwo(m wire.SoundModesTypeTwo) DeviceState {
	s.SoundModesTypeTwo = &m
	return s
}

// WithBattery returns a copy of s with its dual-battery reading replaced.
func (s DeviceState) WithBattery(b wire.DualBattery) DeviceState {
	s.Battery = b
	s.SingleBattery = nil
	return s
}

// WithSingleBattery returns a copy of s with its single-battery reading replaced.
func (s DeviceState) WithSingleBattery(b wire.Battery) DeviceState {
	s.SingleBattery = &b
	return s
}

// WithFirmwareVersion returns a copy of s with firmware_version replaced.
func (s DeviceState) WithFirmwareVersion(v wire.FirmwareVersion) DeviceState {
	s.FirmwareVersion = &v
	return s
}

// WithCustomButtonModel returns a copy of s with custom_button_model replaced.
func (s DeviceState) WithCustomButtonModel(m wire.CustomButtonModel) DeviceState {
	s.CustomButtonModel = &m
	return s
}

// WithAmbientSoundModeCycle returns a copy of s with ambient_sound_mode_cycle replaced.
func (s DeviceState) WithAmbientSoundModeCycle(c wire.AmbientSoundModeCycle) DeviceState {
	s.AmbientSoundModeCycle = &c
	return s
}

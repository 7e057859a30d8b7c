package session

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/soundcore-oss/soundcore-go/metrics"
	"github.com/soundcore-oss/soundcore-go/profile"
	"github.com/soundcore-oss/soundcore-go/state"
	"github.com/soundcore-oss/soundcore-go/wire"
)

var validate = validator.New()

// SetSoundModesInput carries a set-sound-modes request's range-checked
// fields (spec §4.2: custom-ANC intensity is documented as 0..=10 even
// though the wire field can only hold 3 bits; wire.SoundModes masks larger
// values to their low 3 bits on encode).
type SetSoundModesInput struct {
	Ambient              wire.AmbientSoundMode    `validate:"gte=0,lte=2"`
	NoiseCanceling       wire.NoiseCancelingMode  `validate:"gte=0,lte=3"`
	Transparency         wire.TransparencyMode    `validate:"gte=0,lte=1"`
	CustomNoiseCanceling uint8                    `validate:"gte=0,lte=10"`
}

func (in SetSoundModesInput) toWire() wire.SoundModes {
	return wire.SoundModes{
		Ambient:              in.Ambient,
		NoiseCanceling:       in.NoiseCanceling,
		Transparency:         in.Transparency,
		CustomNoiseCanceling: in.CustomNoiseCanceling,
	}
}

func validateInput(in any) error {
	if err := validate.Struct(in); err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok && len(verrs) > 0 {
			fe := verrs[0]
			return &ValidationError{Parameter: fe.Field(), Value: fe.Value(), Reason: fe.Tag()}
		}
		return &ValidationError{Parameter: "input", Value: in, Reason: err.Error()}
	}
	return nil
}

// SetSoundModes issues the set-sound-modes command and waits for the device
// to echo the change back through a state update (spec §4.5 step 2).
func (s *DeviceSession) SetSoundModes(ctx context.Context, in SetSoundModesInput) error {
	if !s.profile.FeatureFlags.Has(profile.FeatureSoundModes) {
		return newUnsupportedError(s.profile.Model, "set_sound_modes")
	}
	if err := validateInput(in); err != nil {
		return err
	}
	m := in.toWire()
	return s.runCommand(ctx, "set_sound_modes", func() []byte {
		return s.profile.CommandEncoders.SetSoundModes(m)
	}, true, func(st state.DeviceState) bool {
		return st.SoundModes != nil && *st.SoundModes == m
	})
}

// SetSoundModesTypeTwo issues the set-sound-modes command using the
// type-two packed layout (spec §3 "sound_modes_type_two").
func (s *DeviceSession) SetSoundModesTypeTwo(ctx context.Context, in SetSoundModesInput) error {
	if !s.profile.FeatureFlags.Has(profile.FeatureSoundModesTypeTwo) {
		return newUnsupportedError(s.profile.Model, "set_sound_modes_type_two")
	}
	if err := validateInput(in); err != nil {
		return err
	}
	m := wire.SoundModesTypeTwo(in.toWire())
	return s.runCommand(ctx, "set_sound_modes_type_two", func() []byte {
		return s.profile.CommandEncoders.SetSoundModesTypeTwo(m)
	}, true, func(st state.DeviceState) bool {
		return st.SoundModesTypeTwo != nil && *st.SoundModesTypeTwo == m
	})
}

// SetEqualizer issues the set-equalizer (or, when useDRC is set and the
// profile supports DRC, set-equalizer-with-DRC) command.
func (s *DeviceSession) SetEqualizer(ctx context.Context, cfg wire.EqualizerConfiguration, useDRC bool) error {
	if !s.profile.FeatureFlags.Has(profile.FeatureEqualizer) {
		return newUnsupportedError(s.profile.Model, "set_equalizer")
	}
	if cfg.Bands.Len() != s.profile.NumberOfEqualizerBands {
		return &ValidationError{
			Parameter: "bands",
			Value:     cfg.Bands.Len(),
			Reason:    "band count does not match device profile",
		}
	}
	if cfg.RightBands != nil && !s.profile.FeatureFlags.Has(profile.FeatureTwoChannelEQ) {
		return newUnsupportedError(s.profile.Model, "set_equalizer_right_channel")
	}

	encode := s.profile.CommandEncoders.SetEqualizer
	name := "set_equalizer"
	if useDRC {
		if !s.profile.FeatureFlags.Has(profile.FeatureDRCEQ) {
			return newUnsupportedError(s.profile.Model, "set_equalizer_drc")
		}
		encode = s.profile.CommandEncoders.SetEqualizerWithDRC
		name = "set_equalizer_drc"
	}

	return s.runCommand(ctx, name, func() []byte {
		return encode(cfg)
	}, true, func(st state.DeviceState) bool {
		return equalizerMatches(st.EqualizerConfiguration, cfg)
	})
}

func equalizerMatches(got, want wire.EqualizerConfiguration) bool {
	if got.ProfileID != want.ProfileID || got.Bands.Len() != want.Bands.Len() {
		return false
	}
	for i := 0; i < got.Bands.Len(); i++ {
		if got.Bands.DB(i) != want.Bands.DB(i) {
			return false
		}
	}
	if (got.RightBands == nil) != (want.RightBands == nil) {
		return false
	}
	if got.RightBands == nil {
		return true
	}
	for i := 0; i < got.RightBands.Len(); i++ {
		if got.RightBands.DB(i) != want.RightBands.DB(i) {
			return false
		}
	}
	return true
}

// SetHearIDInput carries a set-hear-id request.
type SetHearIDInput struct {
	Kind          wire.HearIDKind `validate:"gte=0,lte=1"`
	Left          wire.VolumeAdjustments
	Right         wire.VolumeAdjustments
	TimestampUnix uint32
	PresetIndex   *uint8
}

// SetHearID issues the set-hear-id command.
func (s *DeviceSession) SetHearID(ctx context.Context, in SetHearIDInput) error {
	if !s.profile.FeatureFlags.Has(profile.FeatureHearID) {
		return newUnsupportedError(s.profile.Model, "set_hear_id")
	}
	if err := validateInput(in); err != nil {
		return err
	}
	h := wire.HearID{
		Kind:          in.Kind,
		Left:          in.Left,
		Right:         in.Right,
		TimestampUnix: in.TimestampUnix,
		PresetIndex:   in.PresetIndex,
	}
	return s.runCommand(ctx, "set_hear_id", func() []byte {
		return s.profile.CommandEncoders.SetHearID(h)
	}, true, func(st state.DeviceState) bool {
		return st.HearID != nil && st.HearID.Kind == h.Kind && st.HearID.TimestampUnix == h.TimestampUnix
	})
}

// SetCustomButtonModel issues the set-custom-button-model command.
func (s *DeviceSession) SetCustomButtonModel(ctx context.Context, m wire.CustomButtonModel) error {
	if !s.profile.FeatureFlags.Has(profile.FeatureCustomButtonModel) {
		return newUnsupportedError(s.profile.Model, "set_custom_button_model")
	}
	return s.runCommand(ctx, "set_custom_button_model", func() []byte {
		return s.profile.CommandEncoders.SetCustomButtonModel(m)
	}, true, func(st state.DeviceState) bool {
		return st.CustomButtonModel != nil && *st.CustomButtonModel == m
	})
}

// SetAmbientSoundModeCycle issues the set-ambient-sound-mode-cycle command.
func (s *DeviceSession) SetAmbientSoundModeCycle(ctx context.Context, c wire.AmbientSoundModeCycle) error {
	if !s.profile.FeatureFlags.Has(profile.FeatureAmbientSoundModeCycle) {
		return newUnsupportedError(s.profile.Model, "set_ambient_sound_mode_cycle")
	}
	return s.runCommand(ctx, "set_ambient_sound_mode_cycle", func() []byte {
		return s.profile.CommandEncoders.SetAmbientSoundModeCycle(c)
	}, true, func(st state.DeviceState) bool {
		return st.AmbientSoundModeCycle != nil && *st.AmbientSoundModeCycle == c
	})
}

// runCommand serializes one command through the session's single command
// slot: write, then wait for either a matching snapshot or commandTimeout,
// retrying the write up to opts.retries times (spec §4.5 step 2, §5 "the
// session holds a single command slot").
func (s *DeviceSession) runCommand(ctx context.Context, name string, encode func() []byte, withResponse bool, matches func(state.DeviceState) bool) error {
	started := time.Now()
	outcome := metrics.OutcomeError
	defer func() {
		metrics.ObserveCommand(s.profile.Model, name, outcome, time.Since(started).Seconds())
	}()

	s.cmdMu.Lock()
	defer s.cmdMu.Unlock()

	select {
	case <-s.ctx.Done():
		return ErrDisconnected
	default:
	}

	sub := s.stateFeed.Subscribe()
	defer s.stateFeed.Unsubscribe(sub)

	attempts := s.opts.retries + 1
attemptLoop:
	for attempt := 0; attempt < attempts; attempt++ {
		data := encode()
		var err error
		if withResponse {
			err = s.conn.WriteWithResponse(ctx, data)
		} else {
			err = s.conn.WriteWithoutResponse(ctx, data)
		}
		if err != nil {
			return &StateError{Code: StateErrorDisconnected, Model: s.profile.Model, Command: name, Cause: err}
		}

		if matches(s.snapshot.Load()) {
			outcome = metrics.OutcomeSuccess
			return nil
		}

		timer := time.NewTimer(s.opts.commandTimeout)
		for {
			select {
			case <-s.ctx.Done():
				timer.Stop()
				return ErrDisconnected
			case <-ctx.Done():
				timer.Stop()
				return ctx.Err()
			case <-timer.C:
				continue attemptLoop
			case next, ok := <-sub:
				if !ok {
					timer.Stop()
					return ErrDisconnected
				}
				if matches(next) {
					timer.Stop()
					outcome = metrics.OutcomeSuccess
					return nil
				}
			}
		}
	}
	outcome = metrics.OutcomeTimeout
	return newTimeoutError(s.profile.Model, name)
}

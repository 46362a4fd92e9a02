package pipeline

import (
	"io"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"

	"github.com/matzehuels/dungeonforge/pkg/errors"
	"github.com/matzehuels/dungeonforge/pkg/pacing"
)

// =============================================================================
// Default Values - Single Source of Truth for the CLI and library callers
// =============================================================================

const (
	// DefaultWidth is the default dungeon width in cells.
	DefaultWidth = 80

	// DefaultHeight is the default dungeon height in cells.
	DefaultHeight = 60

	// DefaultMinRoomWidth is the default minimum room width in cells.
	DefaultMinRoomWidth = 10

	// DefaultMinRoomHeight is the default minimum room height in cells.
	DefaultMinRoomHeight = 10

	// DefaultSeed is the default random seed for reproducibility.
	DefaultSeed = int64(42)

	// DefaultPacing is the default pacing mode.
	DefaultPacing = pacing.ModeInstant

	// DefaultInterval is the default pause between checkpoints in timed mode.
	DefaultInterval = 250 * time.Millisecond
)

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for a pipeline run.
// This struct supports TOML decoding for config files.
type Options struct {
	Width         int      `toml:"width"`
	Height        int      `toml:"height"`
	MinRoomWidth  int      `toml:"min_room_width"`
	MinRoomHeight int      `toml:"min_room_height"`
	Seed          int64    `toml:"seed"`
	Pacing        string   `toml:"pacing"`
	Interval      Interval `toml:"interval"`

	// Runtime options (not serialized)
	Logger *log.Logger `toml:"-"`

	// keys whose zero value was set on purpose
	keep map[string]bool
}

// KeepZero marks option keys (TOML names) as explicitly set, so
// SetDefaults leaves a zero value in place instead of replacing it.
// A kept zero seed is used as is; kept zero sizes degrade to a single room.
func (o *Options) KeepZero(keys ...string) {
	if o.keep == nil {
		o.keep = make(map[string]bool, len(keys))
	}
	for _, k := range keys {
		o.keep[k] = true
	}
}

// unset reports whether key holds a zero value that was not kept.
func (o *Options) unset(key string, zero bool) bool {
	return zero && !o.keep[key]
}

// Interval is a duration that decodes from strings such as "250ms".
type Interval time.Duration

// UnmarshalText implements encoding.TextUnmarshaler.
func (i *Interval) UnmarshalText(text []byte) error {
	d, err := time.ParseDuration(string(text))
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "invalid interval %q", text)
	}
	*i = Interval(d)
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (i Interval) MarshalText() ([]byte, error) {
	return []byte(i.String()), nil
}

func (i Interval) Duration() time.Duration { return time.Duration(i) }
func (i Interval) String() string          { return time.Duration(i).String() }

// SetDefaults fills every zero field with its default, except for keys
// marked with KeepZero.
func (o *Options) SetDefaults() {
	if o.unset("width", o.Width == 0) {
		o.Width = DefaultWidth
	}
	if o.unset("height", o.Height == 0) {
		o.Height = DefaultHeight
	}
	if o.unset("min_room_width", o.MinRoomWidth == 0) {
		o.MinRoomWidth = DefaultMinRoomWidth
	}
	if o.unset("min_room_height", o.MinRoomHeight == 0) {
		o.MinRoomHeight = DefaultMinRoomHeight
	}
	if o.unset("seed", o.Seed == 0) {
		o.Seed = DefaultSeed
	}
	if o.Pacing == "" {
		o.Pacing = string(DefaultPacing)
	}
	if o.unset("interval", o.Interval == 0) {
		o.Interval = Interval(DefaultInterval)
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateAndSetDefaults applies defaults and checks the pacing settings.
// Non-positive sizes are accepted; generation degrades them to a single
// room.
func (o *Options) ValidateAndSetDefaults() error {
	o.SetDefaults()
	if _, err := pacing.ParseMode(o.Pacing); err != nil {
		return err
	}
	if o.Interval < 0 {
		return errors.New(errors.ErrCodeInvalidPacing, "interval must not be negative (got %s)", o.Interval)
	}
	return nil
}

// PacingMode returns the parsed pacing mode, or instant when it is invalid.
func (o *Options) PacingMode() pacing.Mode {
	m, err := pacing.ParseMode(o.Pacing)
	if err != nil {
		return pacing.ModeInstant
	}
	return m
}

// LoadOptions decodes a TOML config file. Keys the file sets are kept even
// when zero; callers apply defaults afterwards.
func LoadOptions(path string) (Options, error) {
	var opts Options
	if err := errors.ValidatePath(path); err != nil {
		return opts, err
	}
	md, err := toml.DecodeFile(path, &opts)
	if err != nil {
		return opts, errors.Wrap(errors.ErrCodeInvalidConfig, err, "decode %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return opts, errors.New(errors.ErrCodeInvalidConfig, "%s: unknown key %q", path, undecoded[0].String())
	}
	for _, key := range md.Keys() {
		opts.KeepZero(key.String())
	}
	return opts, nil
}

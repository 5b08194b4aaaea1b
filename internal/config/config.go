// Package config persists overrides for the reconciliation engine's
// tunable constants to a YAML file managed by the "gtconform config"
// subcommand. The engine package never reads this store directly; a
// resolved window.Options is built once, at startup, and passed down
// explicitly.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/biostrand/gtconform/internal/window"
)

// FileName is the config file's base name, resolved under the user's home
// directory.
const FileName = ".gtconform.yaml"

// Keys are the config file's top-level settings, one per window.Options
// field plus the advisory sample-count floor inherited from the teacher
// algorithm's MIN_NSAMPLES constant.
const (
	KeyWindowOverlap         = "windowOverlap"
	KeyFreqZDelta            = "freqZDelta"
	KeyCorrCoeffHighFreq     = "corrCoeffHighFreq"
	KeyCorrCoeffLowFreq      = "corrCoeffLowFreq"
	KeyFreqBandLow           = "freqBandLow"
	KeyFreqBandHigh          = "freqBandHigh"
	KeyMaxInconsistentStrand = "maxInconsistentStrand"
	KeyMinStrandDiff         = "minStrandDiff"
	KeyMinNSamples           = "minNSamples"
)

// MinNSamplesDefault is the Beagle-derived advisory floor below which the
// frequency and correlation evidence sources are considered unreliable.
// The engine does not refuse to run below this count; it is logged as a
// warning only.
const MinNSamplesDefault = 20

// Path returns the config file's resolved path under the user's home
// directory.
func Path() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, FileName), nil
}

// Init loads the config file (if it exists) into viper's global store and
// registers the built-in defaults so every key resolves even when the
// file is absent or partial.
func Init() error {
	defaults := window.DefaultOptions()
	viper.SetDefault(KeyWindowOverlap, defaults.WindowOverlap)
	viper.SetDefault(KeyFreqZDelta, defaults.FreqZDelta)
	viper.SetDefault(KeyCorrCoeffHighFreq, defaults.CorrCoeffHighFreq)
	viper.SetDefault(KeyCorrCoeffLowFreq, defaults.CorrCoeffLowFreq)
	viper.SetDefault(KeyFreqBandLow, defaults.FreqBandLow)
	viper.SetDefault(KeyFreqBandHigh, defaults.FreqBandHigh)
	viper.SetDefault(KeyMaxInconsistentStrand, defaults.MaxInconsistentStrand)
	viper.SetDefault(KeyMinStrandDiff, defaults.MinStrandDiff)
	viper.SetDefault(KeyMinNSamples, MinNSamplesDefault)

	path, err := Path()
	if err != nil {
		return err
	}
	viper.SetConfigFile(path)
	viper.SetConfigType("yaml")
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return nil
		}
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading config file %s: %w", path, err)
	}
	return nil
}

// Options builds a window.Options and the advisory sample-count floor from
// viper's currently loaded settings (defaults merged with any config file
// override). Call Init first.
func Options() (window.Options, int) {
	return window.Options{
		WindowOverlap:         viper.GetInt(KeyWindowOverlap),
		FreqZDelta:            viper.GetFloat64(KeyFreqZDelta),
		CorrCoeffHighFreq:     viper.GetFloat64(KeyCorrCoeffHighFreq),
		CorrCoeffLowFreq:      viper.GetFloat64(KeyCorrCoeffLowFreq),
		FreqBandLow:           viper.GetFloat64(KeyFreqBandLow),
		FreqBandHigh:          viper.GetFloat64(KeyFreqBandHigh),
		MaxInconsistentStrand: viper.GetInt(KeyMaxInconsistentStrand),
		MinStrandDiff:         viper.GetInt(KeyMinStrandDiff),
	}, viper.GetInt(KeyMinNSamples)
}

// Keys lists every recognized config key, for validating "config set"/"get"
// arguments.
func Keys() []string {
	return []string{
		KeyWindowOverlap,
		KeyFreqZDelta,
		KeyCorrCoeffHighFreq,
		KeyCorrCoeffLowFreq,
		KeyFreqBandLow,
		KeyFreqBandHigh,
		KeyMaxInconsistentStrand,
		KeyMinStrandDiff,
		KeyMinNSamples,
	}
}

// IsKnownKey reports whether key is one of Keys().
func IsKnownKey(key string) bool {
	for _, k := range Keys() {
		if k == key {
			return true
		}
	}
	return false
}

// Write persists viper's current settings (defaults plus any prior file
// contents plus whatever Set calls a caller made) to the config file,
// creating it if necessary.
func Write() error {
	path, err := Path()
	if err != nil {
		return err
	}
	if err := viper.WriteConfigAs(path); err != nil {
		return fmt.Errorf("writing config file %s: %w", path, err)
	}
	return nil
}

package config

import (
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitWithoutFileYieldsBuiltinDefaults(t *testing.T) {
	viper.Reset()
	t.Setenv("HOME", t.TempDir())

	require.NoError(t, Init())
	opts, minSamples := Options()
	assert.Equal(t, 100, opts.WindowOverlap)
	assert.Equal(t, 4.0, opts.FreqZDelta)
	assert.Equal(t, MinNSamplesDefault, minSamples)
}

func TestWriteThenInitRoundTripsOverride(t *testing.T) {
	viper.Reset()
	home := t.TempDir()
	t.Setenv("HOME", home)

	require.NoError(t, Init())
	viper.Set(KeyWindowOverlap, 250)
	require.NoError(t, Write())

	wantPath := filepath.Join(home, FileName)
	got, err := Path()
	require.NoError(t, err)
	assert.Equal(t, wantPath, got)

	viper.Reset()
	require.NoError(t, Init())
	opts, _ := Options()
	assert.Equal(t, 250, opts.WindowOverlap)
}

func TestIsKnownKey(t *testing.T) {
	assert.True(t, IsKnownKey(KeyFreqZDelta))
	assert.False(t, IsKnownKey("notAKey"))
}

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prismengine/geomod/pkg/level"
)

func TestProcess(t *testing.T) {
	// Default config
	config, err := Process([]string{})
	require.NoError(t, err)
	assert.Equal(t, level.DefaultBoxSettings, config.BoxSettings())
	assert.Empty(t, config.EncodeOptions().Header)

	dir := t.TempDir()

	// yaml config
	{
		yaml := filepath.Join(dir, "config.yaml")
		err = os.WriteFile(yaml, []byte(`
box:
  epsilon: 0.05
`), 0644)
		require.NoError(t, err)
		config, err := Process([]string{yaml})
		require.NoError(t, err)
		assert.Equal(t, float32(0.05), config.Box.Epsilon)
		assert.Equal(t, float32(0.8), config.Box.Friction)
	}

	// json config
	{
		json := filepath.Join(dir, "config.json")
		err = os.WriteFile(json, []byte(`{
  "box": {
    "friction": 0.3
  }
}`), 0644)
		require.NoError(t, err)
		config, err := Process([]string{json})
		require.NoError(t, err)
		assert.Equal(t, float32(0.01), config.Box.Epsilon)
		assert.Equal(t, float32(0.3), config.Box.Friction)
	}

	// multiple yaml
	{
		yaml1 := filepath.Join(dir, "config1.yaml")
		err = os.WriteFile(yaml1, []byte(`
box:
  friction: 0.5
`), 0644)
		require.NoError(t, err)

		yaml2 := filepath.Join(dir, "config2.yaml")
		err = os.WriteFile(yaml2, []byte(`
output:
  header: ["generated by geomod"]
`), 0644)
		require.NoError(t, err)
		config, err := Process([]string{yaml1, yaml2})
		require.NoError(t, err)
		assert.Equal(t, float32(0.5), config.Box.Friction)
		assert.Equal(t, []string{"generated by geomod"}, config.EncodeOptions().Header)
	}
}

func TestProcessInvalid(t *testing.T) {
	dir := t.TempDir()

	negative := filepath.Join(dir, "negative.yaml")
	require.NoError(t, os.WriteFile(negative, []byte(`
box:
  epsilon: -1
`), 0644))
	_, err := Process([]string{negative})
	assert.Error(t, err)

	unknown := filepath.Join(dir, "unknown.yaml")
	require.NoError(t, os.WriteFile(unknown, []byte(`
box:
  depth: 3
`), 0644))
	_, err = Process([]string{unknown})
	assert.Error(t, err)

	text := filepath.Join(dir, "config.txt")
	require.NoError(t, os.WriteFile(text, []byte("box"), 0644))
	_, err = Process([]string{text})
	assert.Error(t, err)

	_, err = Process([]string{filepath.Join(dir, "missing.yaml")})
	assert.Error(t, err)
}

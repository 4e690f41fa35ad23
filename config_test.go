package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_normalizeDir(t *testing.T) {
	tests := []struct {
		name string
		path string
		want string
	}{
		{name: "empty", path: "", want: "."},
		{name: "current", path: ".", want: "."},
		{name: "trailing separator", path: "videos/", want: "videos"},
		{name: "many trailing separators", path: "/media/card///", want: "/media/card"},
		{name: "root", path: "/", want: "/"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, normalizeDir(tt.path))
		})
	}
}

func Test_compileGlobalMatcher(t *testing.T) {
	r, err := compileGlobalMatcher(`\.mp4$`)
	require.NoError(t, err)
	assert.True(t, r.MatchString("CLIP.MP4"))

	r, err = compileGlobalMatcher(defaultGlobalMatcher)
	require.NoError(t, err)
	assert.Equal(t, defaultGlobalMatcher, r.String())
	assert.True(t, r.MatchString("DJI_0001_001.Mov"))
	assert.False(t, r.MatchString("notes.txt"))

	_, err = compileGlobalMatcher(`(`)
	assert.ErrorContains(t, err, "invalid global matcher")
}

func Test_compileGroupingMatcher(t *testing.T) {
	r, err := compileGroupingMatcher(defaultGroupingMatcher)
	require.NoError(t, err)
	assert.False(t, r.MatchString("dji1234.mp4"))

	_, err = compileGroupingMatcher(`[`)
	assert.ErrorContains(t, err, "invalid grouping matcher")
}

func Test_loadFileConfig(t *testing.T) {
	t.Run("values", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.toml")
		err := os.WriteFile(path, []byte(`
global_matcher = '\.mp4$'
dir = "/media/card"
force_overwrite = true
`), 0644)
		require.NoError(t, err)

		got, err := loadFileConfig(path, true)
		require.NoError(t, err)

		assert.Equal(t, fileConfig{GlobalMatcher: `\.mp4$`, Dir: "/media/card", ForceOverwrite: true}, got)
	})

	t.Run("unknown key", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.toml")
		require.NoError(t, os.WriteFile(path, []byte("output_directory = \"x\"\n"), 0644))

		_, err := loadFileConfig(path, true)

		assert.ErrorContains(t, err, "parse config")
	})

	t.Run("missing optional", func(t *testing.T) {
		got, err := loadFileConfig(filepath.Join(t.TempDir(), "config.toml"), false)
		require.NoError(t, err)

		assert.Equal(t, fileConfig{}, got)
	})

	t.Run("missing required", func(t *testing.T) {
		_, err := loadFileConfig(filepath.Join(t.TempDir(), "config.toml"), true)

		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("no path", func(t *testing.T) {
		got, err := loadFileConfig("", true)
		require.NoError(t, err)

		assert.Equal(t, fileConfig{}, got)
	})
}

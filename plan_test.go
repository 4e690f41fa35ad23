package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_presentPlan(t *testing.T) {
	groups := []group{
		{key: "DJI_1234_", files: []string{"DJI_1234_001.mp4", "DJI_1234_002.mp4"}, size: 4_000_000_000},
		{key: "DJI_5678_", files: []string{"DJI_5678_001.mp4", "DJI_5678_002.mp4", "DJI_5678_003.mp4"}, size: 1_500_000},
	}
	outputPath := func(key string) string {
		return filepath.Join("/out", key+".mp4")
	}

	var buf bytes.Buffer
	presentPlan(&buf, groups, outputPath, false)
	got := buf.String()

	for _, want := range []string{
		"DJI_1234_001.mp4", "DJI_1234_002.mp4", "DJI_1234_.mp4",
		"DJI_5678_001.mp4", "DJI_5678_003.mp4", "DJI_5678_.mp4",
		"4.0 GB", "1.5 MB", "4.0 GB",
	} {
		assert.Contains(t, got, want)
	}
	assert.NotContains(t, got, "\x1b[", "no colors when not asked for")
	assert.Less(t, strings.Index(got, "DJI_1234_001.mp4"), strings.Index(got, "DJI_1234_002.mp4"))
	assert.Less(t, strings.Index(got, "DJI_1234_002.mp4"), strings.Index(got, "DJI_5678_001.mp4"))
}

func Test_shouldColorize(t *testing.T) {
	assert.False(t, shouldColorize(&bytes.Buffer{}))
}

func Test_confirm(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{name: "y", input: "y\n", want: true},
		{name: "y with spaces", input: "  y  \n", want: true},
		{name: "y without newline", input: "y", want: true},
		{name: "windows line ending", input: "y\r\n", want: true},
		{name: "upper case", input: "Y\n", want: false},
		{name: "yes", input: "yes\n", want: false},
		{name: "empty line", input: "\n", want: false},
		{name: "eof", input: "", want: false},
		{name: "only first line counts", input: "n\ny\n", want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer

			got := confirm(strings.NewReader(tt.input), &out)

			assert.Equal(t, tt.want, got)
			assert.Contains(t, out.String(), "[y/N]")
		})
	}
}

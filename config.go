package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/pelletier/go-toml/v2"
	cli "github.com/urfave/cli/v2"
)

const (
	defaultGlobalMatcher   = `(?i)^.+\.(mp4|mov|mkv|avi|m4v|mts|m2ts|ts|lrv|insv|360)$`
	defaultGroupingMatcher = `^(?P<key>[^_]+_[^_]+_)`
	defaultExtension       = "mp4"
	defaultFFmpeg          = "ffmpeg"
)

// config is built once per run and never modified afterwards.
type config struct {
	globalMatcher   *regexp.Regexp
	groupingMatcher *regexp.Regexp
	sourceDir       string
	outputDir       string
	extension       string
	ffmpeg          string
	yes             bool
	dryRun          bool
	forceOverwrite  bool
}

func (c config) outputPath(key string) string {
	return filepath.Join(c.outputDir, key+"."+c.extension)
}

// fileConfig is the layout of the optional TOML config file. Empty values
// leave the flag defaults in place.
type fileConfig struct {
	GlobalMatcher   string `toml:"global_matcher"`
	GroupingMatcher string `toml:"grouping_matcher"`
	Dir             string `toml:"dir"`
	OutputDir       string `toml:"output_dir"`
	Extension       string `toml:"extension"`
	FFmpeg          string `toml:"ffmpeg"`
	ForceOverwrite  bool   `toml:"force_overwrite"`
}

func defaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}

	return filepath.Join(dir, "ffmerge", "config.toml")
}

// loadFileConfig reads path. A missing file is only an error when required is set.
func loadFileConfig(path string, required bool) (fileConfig, error) {
	var fc fileConfig

	if path == "" {
		return fc, nil
	}

	file, err := os.Open(path)
	if err != nil {
		if !required && errors.Is(err, fs.ErrNotExist) {
			return fc, nil
		}

		return fc, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	err = toml.NewDecoder(file).DisallowUnknownFields().Decode(&fc)
	if err != nil {
		return fc, fmt.Errorf("parse config '%s': %w", path, err)
	}

	return fc, nil
}

// pick returns the flag value unless the flag was left alone and the config file has something to say.
func pick(c *cli.Context, flagName, fromFile string) string {
	if c.IsSet(flagName) || fromFile == "" {
		return c.String(flagName)
	}

	return fromFile
}

func normalizeDir(path string) string {
	if path == "" {
		return "."
	}

	trimmed := strings.TrimRight(path, "/"+string(filepath.Separator))
	if trimmed == "" {
		return string(filepath.Separator)
	}

	return trimmed
}

func compileGlobalMatcher(pattern string) (*regexp.Regexp, error) {
	if !strings.HasPrefix(pattern, "(?i)") {
		pattern = "(?i)" + pattern
	}

	r, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid global matcher: %w", err)
	}

	return r, nil
}

func compileGroupingMatcher(pattern string) (*regexp.Regexp, error) {
	r, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid grouping matcher: %w", err)
	}

	return r, nil
}

func newConfig(c *cli.Context) (config, error) {
	configPath := c.String(configFlag)
	required := c.IsSet(configFlag)
	if !required {
		configPath = defaultConfigPath()
	}

	fc, err := loadFileConfig(configPath, required)
	if err != nil {
		return config{}, err
	}

	globalMatcher, err := compileGlobalMatcher(pick(c, globalMatcherFlag, fc.GlobalMatcher))
	if err != nil {
		return config{}, err
	}

	groupingMatcher, err := compileGroupingMatcher(pick(c, groupingMatcherFlag, fc.GroupingMatcher))
	if err != nil {
		return config{}, err
	}

	sourceDir := normalizeDir(pick(c, dirFlag, fc.Dir))

	outputDir := sourceDir
	if o := pick(c, outputDirFlag, fc.OutputDir); o != "" {
		outputDir = normalizeDir(o)
	}

	extension := strings.TrimPrefix(pick(c, extensionFlag, fc.Extension), ".")
	if extension == "" {
		return config{}, errors.New("output extension must not be empty")
	}

	forceOverwrite := c.Bool(forceFlag)
	if !c.IsSet(forceFlag) && fc.ForceOverwrite {
		forceOverwrite = true
	}

	return config{
		globalMatcher:   globalMatcher,
		groupingMatcher: groupingMatcher,
		sourceDir:       sourceDir,
		outputDir:       outputDir,
		extension:       extension,
		ffmpeg:          pick(c, ffmpegFlag, fc.FFmpeg),
		yes:             c.Bool(yesFlag),
		dryRun:          c.Bool(dryRunFlag),
		forceOverwrite:  forceOverwrite,
	}, nil
}

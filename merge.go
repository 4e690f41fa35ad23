package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/bitfield/script"
	"github.com/gofrs/flock"
)

const lockFileName = ".ffmerge.lock"

var (
	errLocked       = errors.New("another merge is already writing to the output directory")
	errOutputExists = errors.New("output file already exists")
	errOutputIsPart = errors.New("output file is one of the parts")
	errToolFailed   = errors.New("concatenation failed")
	errGroupsFailed = errors.New("some groups failed to merge")
)

// exec runs command and returns its combined stdout and stderr together with the exit status.
var exec = func(command string) (string, int, error) {
	p := script.Exec(command)
	output, err := p.String()

	return output, p.ExitStatus(), err
}

type groupResult struct {
	key        string
	output     string
	toolOutput string
	exitStatus int
	err        error
}

func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

// manifestLine formats a single record of the ffmpeg concat demuxer.
func manifestLine(path string) string {
	return "file " + shellQuote(path)
}

// writeManifest creates a temporary concat list of files in dir.
// Paths are absolute, the list itself lives in the system temp directory.
func writeManifest(dir string, files []string) (string, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolve '%s': %w", dir, err)
	}

	f, err := os.CreateTemp("", "ffmerge-*.txt")
	if err != nil {
		return "", fmt.Errorf("create manifest: %w", err)
	}
	name := f.Name()
	_ = f.Close()

	lines := make([]string, 0, len(files))
	for _, file := range files {
		lines = append(lines, manifestLine(filepath.Join(absDir, file)))
	}

	_, err = script.Slice(lines).WriteFile(name)
	if err != nil {
		_ = os.Remove(name)
		return "", fmt.Errorf("write manifest '%s': %w", name, err)
	}

	return name, nil
}

func concatCommand(cfg config, manifest, output string) string {
	overwrite := "-n"
	if cfg.forceOverwrite {
		overwrite = "-y"
	}

	return fmt.Sprintf(
		"%s -hide_banner -nostdin -f concat -safe 0 -i %s -c copy %s %s",
		shellQuote(cfg.ffmpeg), shellQuote(manifest), overwrite, shellQuote(output),
	)
}

// outputAmongParts reports the member of g that is the output file itself,
// typically the result of an earlier run into the source directory.
func outputAmongParts(cfg config, g group, output string) (string, bool) {
	absOutput, err := filepath.Abs(output)
	if err != nil {
		absOutput = filepath.Clean(output)
	}

	for _, file := range g.files {
		path := filepath.Join(cfg.sourceDir, file)
		if abs, err := filepath.Abs(path); err == nil {
			path = abs
		}

		if path == absOutput {
			return file, true
		}
	}

	return "", false
}

// executeGroup merges the files of g into a single output file. The manifest
// is removed before returning, whatever happened to ffmpeg.
func executeGroup(cfg config, g group, w io.Writer) groupResult {
	res := groupResult{key: g.key, output: cfg.outputPath(g.key)}

	if member, ok := outputAmongParts(cfg, g, res.output); ok {
		res.err = fmt.Errorf("%w: '%s'", errOutputIsPart, member)
		return res
	}

	if !cfg.forceOverwrite {
		if _, err := os.Stat(res.output); err == nil {
			res.err = fmt.Errorf("%w: '%s'", errOutputExists, res.output)
			return res
		}
	}

	manifest, err := writeManifest(cfg.sourceDir, g.files)
	if err != nil {
		res.err = err
		return res
	}
	defer func() {
		if err := os.Remove(manifest); err != nil {
			l.Printf("failed to remove manifest '%s', err: %s", manifest, err)
		}
	}()

	command := concatCommand(cfg, manifest, res.output)
	l.Debugf("executing: %s", command)

	res.toolOutput, res.exitStatus, err = exec(command)
	fmt.Fprint(w, res.toolOutput)

	if err != nil || res.exitStatus != 0 {
		res.err = fmt.Errorf("%w: '%s', exit status: %d, err: %v", errToolFailed, res.output, res.exitStatus, err)
	}

	return res
}

// lockOutput creates dir if needed and takes an exclusive lock on it for the
// duration of the merge. The returned func releases it.
func lockOutput(dir string) (func(), error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, &fsError{op: "create directory", path: dir, err: err}
	}

	path := filepath.Join(dir, lockFileName)
	fl := flock.New(path)

	ok, err := fl.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: '%s'", errLocked, dir)
	}

	return func() {
		if err := fl.Unlock(); err != nil {
			l.Printf("failed to release lock '%s', err: %s", path, err)
			return
		}
		_ = os.Remove(path)
	}, nil
}

func run(cfg config, r io.Reader, w io.Writer) error {
	candidates, err := discoverCandidates(cfg.sourceDir, cfg.globalMatcher)
	if err != nil {
		return err
	}
	l.Debugf("found %d candidate files in '%s'", len(candidates), cfg.sourceDir)

	groups := buildGroups(candidates, cfg.groupingMatcher)
	if len(groups) == 0 {
		fmt.Fprintln(w, "no groups found")
		return nil
	}

	presentPlan(w, groups, cfg.outputPath, shouldColorize(w))

	if cfg.dryRun {
		for _, g := range groups {
			fmt.Fprintln(w, concatCommand(cfg, "<manifest>", cfg.outputPath(g.key)))
		}

		return nil
	}

	if !cfg.yes && !confirm(r, w) {
		l.Printf("aborted, nothing was merged")
		return nil
	}

	unlock, err := lockOutput(cfg.outputDir)
	if err != nil {
		return err
	}
	defer unlock()

	var failed int
	for i, g := range groups {
		l.Printf("merging group %d/%d: '%s'", i+1, len(groups), g.key)

		res := executeGroup(cfg, g, w)
		if res.err != nil {
			failed++
			l.Printf("group '%s' failed, err: %s", res.key, res.err)

			continue
		}

		l.Printf("merged %d files into '%s'", len(g.files), res.output)
	}

	if failed > 0 {
		return fmt.Errorf("%w: %d of %d", errGroupsFailed, failed, len(groups))
	}

	return nil
}

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"unicode/utf8"
)

const keyGroupName = "key"

type candidate struct {
	name string
	size int64
}

type group struct {
	key   string
	files []string
	size  int64
}

// fsError is returned when the source directory cannot be listed.
type fsError struct {
	op   string
	path string
	err  error
}

func (e *fsError) Error() string {
	return fmt.Sprintf("%s '%s': %s", e.op, e.path, e.err)
}

func (e *fsError) Unwrap() error {
	return e.err
}

// discoverCandidates lists the regular files directly inside dir whose name matches r.
// Symlinks are followed, dangling ones are skipped. The result is sorted by name.
func discoverCandidates(dir string, r *regexp.Regexp) ([]candidate, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, &fsError{op: "read directory", path: dir, err: err}
	}

	var candidates []candidate
	for _, entry := range entries {
		name := entry.Name()
		if !r.MatchString(name) {
			continue
		}

		fi, err := os.Stat(filepath.Join(dir, name))
		if err != nil {
			l.Debugf("skipping '%s', err: %s", name, err)
			continue
		}

		if !fi.Mode().IsRegular() {
			continue
		}

		candidates = append(candidates, candidate{name: name, size: fi.Size()})
	}

	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].name < candidates[j].name
	})

	return candidates, nil
}

// groupKey derives the key of a file name. The last character of the whole
// match is dropped, unless r names a "key" group, which is then used as is.
// Empty keys count as no match.
func groupKey(r *regexp.Regexp, name string) (string, bool) {
	matches := r.FindStringSubmatch(name)
	if matches == nil {
		return "", false
	}

	var key string
	if i := r.SubexpIndex(keyGroupName); i >= 0 {
		key = matches[i]
	} else {
		_, size := utf8.DecodeLastRuneInString(matches[0])
		key = matches[0][:len(matches[0])-size]
	}

	return key, key != ""
}

// buildGroups collects the candidates by key, sorts the members of every group
// and drops groups with a single member. Groups come back in first-seen order.
//
// Members are sorted as strings, so part numbers only come out in the right
// order when they have the same width: _9 sorts after _10.
func buildGroups(candidates []candidate, r *regexp.Regexp) []group {
	index := map[string]int{}
	var groups []group

	for _, c := range candidates {
		key, ok := groupKey(r, c.name)
		if !ok {
			continue
		}

		i, found := index[key]
		if !found {
			i = len(groups)
			index[key] = i
			groups = append(groups, group{key: key})
		}

		groups[i].files = append(groups[i].files, c.name)
		groups[i].size += c.size
	}

	result := groups[:0]
	for _, g := range groups {
		if len(g.files) < 2 {
			l.Debugf("dropping '%s', only one file: '%s'", g.key, g.files[0])
			continue
		}

		sort.Strings(g.files)
		result = append(result, g)
	}

	return result
}

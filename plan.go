package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-isatty"
)

func shouldColorize(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}

	fd := file.Fd()

	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// presentPlan prints one row per group: its number, the files to merge in
// merge order and the file they will be merged into.
func presentPlan(w io.Writer, groups []group, outputPath func(string) string, colorize bool) {
	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.SetStyle(table.StyleRounded)
	if colorize {
		tw.Style().Color.Header = text.Colors{text.Bold, text.FgHiBlue}
		tw.Style().Color.Footer = text.Colors{text.Bold}
	}

	tw.AppendHeader(table.Row{"#", "Files", "Count", "Size", "Output"})

	var total int64
	for i, g := range groups {
		total += g.size
		tw.AppendRow(table.Row{
			strconv.Itoa(i + 1),
			strings.Join(g.files, "\n"),
			strconv.Itoa(len(g.files)),
			humanize.Bytes(uint64(g.size)),
			filepath.Base(outputPath(g.key)),
		})
		tw.AppendSeparator()
	}

	tw.AppendFooter(table.Row{"", "", strconv.Itoa(len(groups)), humanize.Bytes(uint64(total)), ""})
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight},
		{Number: 3, Align: text.AlignRight},
		{Number: 4, Align: text.AlignRight},
	})

	tw.Render()
}

// confirm reads a single line and only accepts an exact "y".
func confirm(r io.Reader, w io.Writer) bool {
	fmt.Fprint(w, "Merge the groups above? [y/N] ")

	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && line == "" {
		fmt.Fprintln(w)
		return false
	}

	return strings.TrimSpace(line) == "y"
}

package main

import (
	"log"
	"os"

	cli "github.com/urfave/cli/v2"
)

const (
	globalMatcherFlag  = "global-matcher"
	globalMatcherAlias = "m"

	groupingMatcherFlag  = "grouping-matcher"
	groupingMatcherAlias = "g"

	dirFlag  = "dir"
	dirAlias = "d"

	outputDirFlag  = "output-dir"
	outputDirAlias = "o"

	extensionFlag  = "extension"
	extensionAlias = "e"

	configFlag  = "config"
	configAlias = "c"

	ffmpegFlag = "ffmpeg"

	yesFlag  = "yes"
	yesAlias = "y"

	dryRunFlag = "dry-run"

	forceFlag  = "force-overwrite"
	forceAlias = "f"

	verboseFlag  = "verbose"
	verboseAlias = "v"

	quietFlag  = "quiet"
	quietAlias = "q"
)

func newApp() *cli.App {
	return &cli.App{
		Name:      "ffmerge",
		Usage:     "merge split video recordings (GoPro, DJI, ...) into one file per recording",
		UsageText: "ffmerge [options]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    globalMatcherFlag,
				Aliases: []string{globalMatcherAlias},
				Value:   defaultGlobalMatcher,
				Usage:   "regular expression selecting the files to look at, case-insensitive",
			},
			&cli.StringFlag{
				Name:    groupingMatcherFlag,
				Aliases: []string{groupingMatcherAlias},
				Value:   defaultGroupingMatcher,
				Usage:   "regular expression deriving the group key, the (?P<key>...) group or the whole match minus its last character",
			},
			&cli.StringFlag{
				Name:    dirFlag,
				Aliases: []string{dirAlias},
				Value:   ".",
				Usage:   "directory containing the video parts",
			},
			&cli.StringFlag{
				Name:    outputDirFlag,
				Aliases: []string{outputDirAlias},
				Usage:   "directory to write the merged files to [default: same as --dir]",
			},
			&cli.StringFlag{
				Name:    extensionFlag,
				Aliases: []string{extensionAlias},
				Value:   defaultExtension,
				Usage:   "extension of the merged files",
			},
			&cli.StringFlag{
				Name:    configFlag,
				Aliases: []string{configAlias},
				Usage:   "TOML file with defaults for the options above",
			},
			&cli.StringFlag{
				Name:  ffmpegFlag,
				Value: defaultFFmpeg,
				Usage: "ffmpeg binary to use",
			},
			&cli.BoolFlag{
				Name:    yesFlag,
				Aliases: []string{yesAlias},
				Usage:   "do not ask for confirmation",
			},
			&cli.BoolFlag{
				Name:  dryRunFlag,
				Usage: "only print the plan and the commands, do not execute anything",
			},
			&cli.BoolFlag{
				Name:    forceFlag,
				Aliases: []string{forceAlias},
				Usage:   "force overwriting existing files",
			},
			&cli.BoolFlag{
				Name:    verboseFlag,
				Aliases: []string{verboseAlias},
				Usage:   "print commands before executing them",
			},
			&cli.BoolFlag{
				Name:    quietFlag,
				Aliases: []string{quietAlias},
				Usage:   "do not log progress",
			},
		},
		Action: func(c *cli.Context) error {
			l.verbose = c.Bool(verboseFlag)
			l.silent = c.Bool(quietFlag)

			cfg, err := newConfig(c)
			if err != nil {
				return err
			}

			return run(cfg, c.App.Reader, c.App.Writer)
		},
	}
}

func main() {
	err := newApp().Run(os.Args)
	if err != nil {
		log.Fatal(err)
	}
}

package main

import (
	"fmt"
	"os"
	"time"

	"github.com/prismengine/geomod/pkg/config"
	"github.com/prismengine/geomod/pkg/version"

	"github.com/alecthomas/kong"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var CLI struct {
	Version kong.VersionFlag `help:"Print version information and exit." short:"v"`
	Debug   bool             `help:"Whether to enable debug logging."`

	Build struct {
		Scene   string   `arg:"" name:"scene" help:"Scene description to build." type:"existingfile"`
		Out     string   `help:"Level file to write. Defaults to standard output." short:"o" type:"path"`
		Configs []string `help:"Configuration files, merged in order." name:"config" short:"c" type:"path"`
	} `cmd:"" help:"Build a level collision file from a scene description."`

	Config struct {
	} `cmd:"" help:"Write geomod's default configuration to standard output."`
}

func writeError(err error) {
	fmt.Fprintf(os.Stderr, "%s\n", err)
	os.Exit(1)
}

func main() {
	// Level files may be written to stdout, keep logs out of it.
	consoleWriter := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	log.Logger = log.Output(consoleWriter)

	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	ctx := kong.Parse(&CLI,
		kong.Name("geomod"),
		kong.Description("build collision geometry files for prism levels"),
		kong.UsageOnError(),
		kong.Vars{
			"version": fmt.Sprintf(
				"geomod %s (commit %s, built %s)",
				version.Version,
				version.GitCommit,
				version.BuildTime,
			),
		},
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
			Summary: true,
		}))

	if CLI.Debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
		log.Warn().Msg("debug logging enabled")
	}

	switch ctx.Command() {
	case "build <scene>":
		err := buildCommand(CLI.Build.Scene, CLI.Build.Out, CLI.Build.Configs)
		if err != nil {
			writeError(err)
		}
	case "config":
		os.Stdout.Write(config.DEFAULT)
	}
}

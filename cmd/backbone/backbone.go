package main

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/btn0s/prototype-playground/internal/config"
	"github.com/btn0s/prototype-playground/internal/configpaths"
	"github.com/btn0s/prototype-playground/internal/log"

	"github.com/alecthomas/kong"
	kongtoml "github.com/alecthomas/kong-toml"
	kongyaml "github.com/alecthomas/kong-yaml"
)

func main() {

	userCfg := findUserConfig(os.Args[1:])
	jsonPaths, yamlPaths, tomlPaths := configpaths.ConfigCandidatePaths(userCfg)

	var cli config.CLI
	ctx := kong.Parse(&cli,
		kong.Name("backbone"),
		kong.Description("Gamepad input normalizer"),
		kong.UsageOnError(),
		// Load configuration from JSON/YAML/TOML in priority order; flags/env override config values.
		kong.Configuration(kong.JSON, jsonPaths...),
		kong.Configuration(kongyaml.Loader, yamlPaths...),
		kong.Configuration(kongtoml.Loader, tomlPaths...),
	)

	// A full screen menu owns the terminal, so logs only go to --log.file.
	fullScreen := strings.HasPrefix(ctx.Command(), "menu") && cli.Menu.FullScreen()

	var (
		logger     *slog.Logger
		closeFiles []io.Closer
		err        error
	)
	if fullScreen {
		logger, closeFiles, err = log.SetupLoggerTo(log.Console{}, cli.Log.Level, cli.Log.File)
	} else {
		logger, closeFiles, err = log.SetupLogger(cli.Log.Level, cli.Log.File)
	}
	if err != nil {
		_, _ = os.Stderr.WriteString("failed to setup logger: " + err.Error() + "\n")
		os.Exit(2)
	}
	defer func() {
		for _, c := range closeFiles {
			_ = c.Close()
		}
	}()
	slog.SetDefault(logger)

	var trace log.SnapshotLogger
	if cli.Log.RawFile != "" {
		f, err := os.OpenFile(cli.Log.RawFile, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
		if err != nil {
			logger.Error("failed to open raw log file", "file", cli.Log.RawFile, "error", err)
			trace = log.NewSnapshotLogger(nil)
		} else {
			trace = log.NewSnapshotLogger(f)
			closeFiles = append(closeFiles, f)
		}
	} else if cli.Log.Level == "trace" && !fullScreen {
		trace = log.NewSnapshotLogger(os.Stdout)
	} else {
		trace = log.NewSnapshotLogger(nil)
	}

	ctx.Bind(logger)
	ctx.BindTo(trace, (*log.SnapshotLogger)(nil))

	err = ctx.Run()
	ctx.FatalIfErrorf(err)
}

func findUserConfig(args []string) string {
	for i := 0; i < len(args); i++ {
		a := args[i]
		if strings.HasPrefix(a, "--config=") {
			return a[len("--config="):]
		}
		if a == "--config" && i+1 < len(args) {
			return args[i+1]
		}
	}
	if v := os.Getenv("BACKBONE_CONFIG"); v != "" {
		return v
	}
	return ""
}

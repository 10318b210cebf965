// Package main runs one LearnOpenGL demo selected by its chapter id.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/learnopengl/internal/config"
	"github.com/Faultbox/learnopengl/internal/demos"
	"github.com/Faultbox/learnopengl/internal/harness"
	"github.com/Faultbox/learnopengl/internal/logger"
)

var (
	flagList       = flag.Bool("list", false, "List the available demos and exit")
	flagSaveConfig = flag.Bool("save-config", false, "Write the effective config to the user config directory and exit")
)

func main() {
	flag.Usage = func() { usage(flag.CommandLine.Output()) }
	config.ParseFlags()

	if *flagList {
		list(os.Stdout)
		return
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if *flagSaveConfig {
		if err := cfg.Save(); err != nil {
			fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
			os.Exit(1)
		}
		fmt.Fprintf(os.Stdout, "Config written to %s\n", config.ConfigDir())
		return
	}

	demo, code, ok := selectDemo(config.Args(), os.Stdout, os.Stderr)
	if !ok {
		os.Exit(code)
	}

	err = logger.Init(logger.Options{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		File:   cfg.Logging.LogFile,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("starting demo", zap.String("id", demo.ID), zap.String("title", demo.Title))

	if err := harness.Run(cfg, demo.Options()); err != nil {
		logger.Error("demo failed", zap.String("id", demo.ID), zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}

	logger.Info("demo closed normally")
}

// selectDemo resolves the single positional id. When ok is false the caller
// exits with code: 1 for a usage error, 0 for an unknown id.
func selectDemo(args []string, stdout, stderr io.Writer) (demo demos.Demo, code int, ok bool) {
	if len(args) != 1 {
		usage(stderr)
		return demos.Demo{}, 1, false
	}
	demo, ok = demos.Lookup(args[0])
	if !ok {
		fmt.Fprintln(stdout, "Unknown tutorial id")
		return demos.Demo{}, 0, false
	}
	return demo, 0, true
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "Usage: learnopengl [flags] <id>")
	fmt.Fprintln(w, "Run one demo, e.g. learnopengl 2_2_2. Use -list to see all ids.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	flag.CommandLine.SetOutput(w)
	flag.PrintDefaults()
}

func list(w io.Writer) {
	for _, d := range demos.All() {
		fmt.Fprintf(w, "%-8s %s\n", d.ID, d.Title)
	}
}

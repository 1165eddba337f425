package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/cmpilato/gen-countdown-frames/internal/config"
	"github.com/cmpilato/gen-countdown-frames/internal/engine"
	"github.com/cmpilato/gen-countdown-frames/internal/fonts"
	"github.com/cmpilato/gen-countdown-frames/internal/sequence"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, argv []string, stdout, stderr io.Writer) int {
	prog := filepath.Base(argv[0])
	fail := func(msg string) int {
		fmt.Fprintf(stderr, "ERROR: %s\n\n%s", msg, usage(prog))
		return 1
	}

	inv, err := parseArgs(argv[1:])
	if errors.Is(err, flag.ErrHelp) {
		fmt.Fprint(stdout, usage(prog))
		return 0
	}
	if err != nil {
		return fail(err.Error())
	}

	opts := inv.Options
	if inv.ConfigFile != "" {
		preset, err := config.ReadOptionsFile(inv.ConfigFile)
		if err != nil {
			return fail(fmt.Sprintf("Unable to read config file '%s': %v", inv.ConfigFile, err))
		}
		opts = preset.Merge(opts)
	}

	cfg, err := config.Resolve(opts)
	if err != nil {
		return fail(describe(err))
	}

	var f *fonts.Font
	if !cfg.Render.DisableText {
		if f, err = fonts.Load(cfg.FontFile, cfg.FontSize); err != nil {
			return fail(fmt.Sprintf("Unable to load font file '%s' and size %d", cfg.FontFile, cfg.FontSize))
		}
	}

	frames, err := sequence.New(inv.Minutes, cfg.LeadingZeroes)
	if err != nil {
		return fail("Invalid value for number of minutes")
	}

	logger := log.New(stdout, "", 0)
	project := engine.NewCountdownProject(cfg, f, frames)
	project.Log = logger

	if cfg.Verbose {
		logger.Printf("[*] Host: %s", project.Host)
		if f != nil {
			logger.Printf("[*] Font: %s (%s) @ %dpx", f.Name(), f.Path, f.Size)
		}
		logger.Printf("[*] Frames: %d | %dx%d | Workers: %d | Output: %s",
			frames.Total(), cfg.Render.Width, cfg.Render.Height, project.Workers(), cfg.OutputDir)
	}

	stats, err := project.Run(ctx)
	if err != nil {
		fmt.Fprintf(stderr, "[-] Rendering failed: %v\n", err)
		return 1
	}

	if cfg.Verbose {
		fmt.Fprint(stdout, stats.Report())
		logger.Printf("[+++] Done: %d frames in %s", stats.Frames, cfg.OutputDir)
	}
	return 0
}

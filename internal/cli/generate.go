package cli

import (
	"context"
	"fmt"

	"github.com/napsta32/libhook/internal/config"
	"github.com/napsta32/libhook/internal/cparse"
	errs "github.com/napsta32/libhook/internal/errors"
	"github.com/napsta32/libhook/internal/hookgen"
	"github.com/napsta32/libhook/internal/logging"
	"github.com/napsta32/libhook/internal/match"
	"github.com/napsta32/libhook/internal/safe"
	"github.com/napsta32/libhook/internal/toolchain"
)

// runGenerate is the whole pipeline: headers -> preprocess -> parse -> match
// -> generate -> write (-> build). It is single-pass and runs to completion
// or fails fast; any returned error terminates the process non-zero.
func runGenerate(ctx context.Context, opts *config.Options, configPath string) error {
	var (
		fc  *config.FileConfig
		err error
	)
	if configPath != "" {
		fc, err = config.LoadPath(configPath)
	} else {
		fc, err = config.NewLoader().Load()
	}
	if err != nil {
		return err
	}
	opts.ApplyDefaults(fc)

	// Usage errors: reported before any generation is attempted.
	if err := opts.Validate(); err != nil {
		return err
	}
	filter, err := match.New(opts.Patterns)
	if err != nil {
		return err
	}
	selectors, err := hookgen.ParseSelectors(opts.Measure)
	if err != nil {
		return err
	}

	logCfg := logging.DefaultConfig()
	logCfg.Level = fc.LogLevel
	if opts.Debug {
		logCfg.Level = "debug"
	}
	logger := logging.NewWithComponent(logCfg, "libhook")

	// An unwritable destination is a usage error too, so the staging file is
	// opened up front. The destination itself is only replaced on success.
	stream, toStream := config.Stream(opts.Output)
	var outFile *safe.AtomicFile
	if !toStream {
		outFile, err = safe.CreateAtomic(opts.Output)
		if err != nil {
			return err
		}
		defer errs.DeferClose(logger, outFile, "failed to discard staged output")
	}

	runner := toolchain.New(opts.CC, opts.IncludeDirs, logger)
	pre, err := runner.Preprocess(ctx, opts.Headers)
	if err != nil {
		return err
	}

	toks := cparse.Scan(pre)
	decls := cparse.ParseFunctions(toks)
	matched := filter.Apply(decls)
	logger.Info().
		Int("declarations", len(decls)).
		Int("matched", len(matched)).
		Msg("parsed preprocessed headers")
	if len(matched) == 0 {
		logger.Warn().Msg("no declarations matched; emitting preamble and includes only")
	}
	for _, d := range matched {
		logger.Debug().
			Str("function", d.Name).
			Str("file", d.File).
			Int("line", d.Line).
			Msg("hooking declaration")
	}

	gen := hookgen.Generator{Headers: opts.Headers, Selectors: selectors}
	unit := gen.Generate(matched)

	if toStream {
		if _, err := stream.WriteString(unit); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	} else {
		if _, err := outFile.WriteString(unit); err != nil {
			return fmt.Errorf("failed to write output %q: %w", opts.Output, err)
		}
		if err := outFile.Commit(); err != nil {
			return err
		}
		logger.Info().Str("output", opts.Output).Msg("wrote generated source")
	}

	if opts.Build {
		if err := runner.Build(ctx, unit, opts.LibPath); err != nil {
			return err
		}
		logger.Info().Str("lib", opts.LibPath).Msg("built shared object")
	}
	return nil
}

package main

import (
	"context"
	"os"

	"github.com/alecthomas/kong"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/mfroeh/tokre/tagged"
)

var cli struct {
	Pattern  string   `arg:"" name:"pattern" help:"Token pattern to search for, or its name in --patterns" type:"string"`
	Paths    []string `arg:"" optional:"" name:"path" help:"Paths to search" type:"path"`
	Patterns string   `short:"p" help:"YAML file with named patterns" type:"existingfile"`
	Words    bool     `short:"w" help:"Read lines as plain words instead of word/tag/chunk tokens"`
	Count    bool     `short:"c" help:"Only print the number of matching lines per file"`
	Whole    bool     `short:"x" help:"Only select lines that the pattern matches as a whole"`
	Jobs     int      `short:"j" default:"4" help:"Number of files searched at once"`
	Verbose  bool     `short:"v" help:"Log debug output"`
}

func main() {
	kong.Parse(&cli,
		kong.Name("tokgrep"),
		kong.Description("Recursively searches the current directory for lines of tagged tokens matching a token pattern."),
		kong.UsageOnError(),
	)

	logger := newLogger(cli.Verbose)
	defer func() { _ = logger.Sync() }()

	pattern := cli.Pattern
	if cli.Patterns != "" {
		patterns, err := loadPatterns(cli.Patterns)
		if err != nil {
			logger.Fatal("failed to load patterns", zap.String("file", cli.Patterns), zap.Error(err))
		}
		pattern, err = patterns.lookup(cli.Pattern)
		if err != nil {
			logger.Fatal("unknown pattern", zap.Error(err))
		}
	}

	re, err := tagged.Compile(pattern)
	if err != nil {
		logger.Fatal("failed to build pattern", zap.String("pattern", pattern), zap.Error(err))
	}
	logger.Debug("compiled pattern", zap.Stringer("pattern", re), zap.Int("states", re.Automaton().States()))

	if len(cli.Paths) == 0 {
		cli.Paths = []string{"."}
	}

	s := &searcher{
		re:     re,
		words:  cli.Words,
		count:  cli.Count,
		whole:  cli.Whole,
		jobs:   cli.Jobs,
		logger: logger,
	}
	if err := s.run(context.Background(), cli.Paths, os.Stdout); err != nil {
		logger.Fatal("search failed", zap.Error(err))
	}
}

func newLogger(verbose bool) *zap.Logger {
	level := zapcore.WarnLevel
	if verbose {
		level = zapcore.DebugLevel
	}

	cfg := zap.Config{
		Level:            zap.NewAtomicLevelAt(level),
		Encoding:         "console",
		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
		EncoderConfig: zapcore.EncoderConfig{
			MessageKey:     "msg",
			LevelKey:       "level",
			TimeKey:        "ts",
			EncodeLevel:    zapcore.CapitalColorLevelEncoder,
			EncodeTime:     zapcore.ISO8601TimeEncoder,
			EncodeDuration: zapcore.StringDurationEncoder,
		},
	}
	return zap.Must(cfg.Build())
}

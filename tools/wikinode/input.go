package main

import (
	"compress/bzip2"
	"context"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/dustin/go-wikinode"
	"github.com/dustin/go-wikinode/internal/config"
	"github.com/dustin/go-wikinode/internal/progress"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// openDump gets a parser for cfg.Input: stdin for "-", decompressed
// for .bz2 files, and multistream when an index is configured.
func openDump(cfg config.Config, stdin io.Reader) (wikinode.Parser, io.Closer, error) {
	if cfg.Index != "" {
		p, err := wikinode.NewIndexedParser(cfg.Index, cfg.Input, cfg.Workers)
		if err != nil {
			return nil, nil, err
		}
		return p, p, nil
	}

	if cfg.Input == "-" {
		return wikinode.NewParser(stdin), nopCloser{}, nil
	}

	f, err := os.Open(cfg.Input)
	if err != nil {
		return nil, nil, err
	}
	var r io.Reader = f
	if strings.HasSuffix(cfg.Input, ".bz2") {
		r = bzip2.NewReader(f)
	}
	return wikinode.NewParser(r), f, nil
}

// process runs the dump in cfg into sink, logging progress.
func process(ctx context.Context, cfg config.Config, stdin io.Reader, sink wikinode.Sink) (wikinode.Stats, error) {
	p, closer, err := openDump(cfg, stdin)
	if err != nil {
		return wikinode.Stats{}, err
	}
	defer closer.Close()

	log.Info().Str("dump", cfg.Input).Str("index", cfg.Index).
		Int("workers", cfg.Workers).Msg("Reading dump")

	rep := progress.New(log.Logger)
	opts := cfg.Options()
	opts.Progress = rep.Report
	st, err := wikinode.Run(ctx, p, sink, opts)
	if si := p.SiteInfo(); si.SiteName != "" {
		log.Debug().Str("site", si.SiteName).Str("generator", si.Generator).Msg("Site info")
	}
	rep.Done(st, err)
	return st, err
}

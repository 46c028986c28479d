package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/dustin/go-wikinode"
	"github.com/dustin/go-wikinode/internal/config"
)

func newConvertCmd(s *settings) *cobra.Command {
	return &cobra.Command{
		Use:   "convert <dump> [out.jsonl]",
		Short: "Write dictionary entries as JSON lines",
		Long: `Write one {"title", "content"} JSON object per line for every article
in the dump that has a usable lead.  The output goes to stdout when it's
omitted or "-"; the dump is read from stdin when it's "-".`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := s.load(cmd)
			if err != nil {
				return err
			}
			cfg.Input = args[0]
			if len(args) > 1 {
				cfg.Output = args[1]
			}

			var out io.WriteCloser = nopWriteCloser{cmd.OutOrStdout()}
			if cfg.Output != "" && cfg.Output != "-" {
				if out, err = os.Create(cfg.Output); err != nil {
					return err
				}
			}

			err = writeNodes(cmd.Context(), cfg, cmd.InOrStdin(), out)
			if err != nil {
				return fmt.Errorf("converting %s: %w", cfg.Input, err)
			}
			return nil
		},
	}
}

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }

// writeNodes converts the dump in cfg to JSON lines on out and closes
// it.  Lines written before a failure are flushed either way.
func writeNodes(ctx context.Context, cfg config.Config, stdin io.Reader, out io.WriteCloser) error {
	w := wikinode.NewWriter(out)
	_, err := process(ctx, cfg, stdin, w)
	if ferr := w.Flush(); ferr != nil && err == nil {
		err = ferr
	}
	if cerr := out.Close(); cerr != nil && err == nil {
		err = cerr
	}
	return err
}

package main

import (
	"compress/bzip2"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dustin/go-wikinode"
)

func newIndexCmd() *cobra.Command {
	var chunks bool
	cmd := &cobra.Command{
		Use:   "index <index>",
		Short: "Print a multistream index with its offsets unwrapped",
		Long: `Print every entry of a multistream index as offset:id:title, with 32 bit
offsets from older dumps widened to their real values.  With --chunks,
print one offset:count line per bzip2 stream instead.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			var r io.Reader = f
			if strings.HasSuffix(args[0], ".bz2") {
				r = bzip2.NewReader(f)
			}
			out := cmd.OutOrStdout()

			if chunks {
				cr := wikinode.NewChunkReader(r)
				for {
					c, err := cr.Next()
					if err == io.EOF {
						return nil
					}
					if err != nil {
						return err
					}
					fmt.Fprintf(out, "%d:%d\n", c.Offset, c.Count)
				}
			}

			ir := wikinode.NewIndexReader(r)
			for {
				e, err := ir.Next()
				if err == io.EOF {
					return nil
				}
				if err != nil {
					return err
				}
				fmt.Fprintln(out, e.String())
			}
		},
	}
	cmd.Flags().BoolVar(&chunks, "chunks", false, "Summarize by bzip2 stream")
	return cmd
}

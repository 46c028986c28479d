package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/dustin/go-wikinode"
)

type discard struct{}

func (discard) Emit(wikinode.Node) error { return nil }

func newStatsCmd(s *settings) *cobra.Command {
	return &cobra.Command{
		Use:   "stats <dump>",
		Short: "Count what would be extracted, without writing anything",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := s.load(cmd)
			if err != nil {
				return err
			}
			cfg.Input = args[0]

			st, err := process(cmd.Context(), cfg, cmd.InOrStdin(), discard{})
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', tabwriter.AlignRight)
			fmt.Fprintf(tw, "pages\t%s\t\n", humanize.Comma(st.Pages))
			fmt.Fprintf(tw, "%v\t%s\t\n", wikinode.Accepted, humanize.Comma(st.Accepted))
			for r := wikinode.WrongNamespace; r <= wikinode.TooShort; r++ {
				fmt.Fprintf(tw, "%v\t%s\t\n", r, humanize.Comma(st.Rejected[r]))
			}
			return tw.Flush()
		},
	}
}

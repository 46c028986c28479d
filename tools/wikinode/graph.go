package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/dustin/go-wikinode/internal/store"
)

func newGraphCmd() *cobra.Command {
	var top int
	cmd := &cobra.Command{
		Use:   "graph <nodes.db>",
		Short: "Summarize the link graph in a SQLite index",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := openIndex(args[0])
			if err != nil {
				return err
			}
			defer db.Close()

			gs, err := db.Graph(cmd.Context(), top)
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintf(tw, "nodes\t%s\n", humanize.Comma(gs.Nodes))
			fmt.Fprintf(tw, "links\t%s\n", humanize.Comma(gs.Edges))
			section := func(name string, rs []store.Ranked) {
				fmt.Fprintf(tw, "\n%s\t\n", name)
				for _, r := range rs {
					fmt.Fprintf(tw, "  %s\t%s\n", r.Title, humanize.Comma(r.Links))
				}
			}
			section("most linked", gs.MostLinked)
			section("most linking", gs.MostLinking)
			return tw.Flush()
		},
	}
	cmd.Flags().IntVar(&top, "top", 10, "Titles to rank")
	return cmd
}

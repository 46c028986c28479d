package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dustin/go-wikinode/internal/store"
)

// openIndex opens an existing SQLite index; it won't create one.
func openIndex(path string) (*store.SQLite, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, err
	}
	return store.OpenSQLite(path, 1)
}

func newLookupCmd() *cobra.Command {
	var prefix, search bool
	var limit int
	cmd := &cobra.Command{
		Use:   "lookup <nodes.db> <title>",
		Short: "Look a title up in a SQLite index",
		Long: `Print the node stored under a title, with the titles it links to.
With --prefix, list the titles with a word starting with the argument.
With --search, run it as a full text query over titles and content.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if prefix && search {
				return errors.New("--prefix and --search don't mix")
			}
			db, err := openIndex(args[0])
			if err != nil {
				return err
			}
			defer db.Close()

			ctx, out := cmd.Context(), cmd.OutOrStdout()
			enc := json.NewEncoder(out)
			enc.SetEscapeHTML(false)

			switch {
			case prefix:
				titles, err := db.Prefix(ctx, args[1], limit)
				if err != nil {
					return err
				}
				for _, t := range titles {
					fmt.Fprintln(out, t)
				}
				return nil
			case search:
				hits, err := db.Search(ctx, args[1], limit)
				if err != nil {
					return err
				}
				for _, h := range hits {
					if err := enc.Encode(h); err != nil {
						return err
					}
				}
				return nil
			}

			n, err := db.Lookup(ctx, args[1])
			if errors.Is(err, store.ErrNotFound) {
				return fmt.Errorf("%q: %w", args[1], err)
			}
			if err != nil {
				return err
			}
			links, err := db.Links(ctx, n.Title)
			if err != nil {
				return err
			}
			enc.SetIndent("", "  ")
			return enc.Encode(struct {
				Title   string   `json:"title"`
				Content string   `json:"content"`
				Links   []string `json:"links"`
			}{n.Title, n.Content, links})
		},
	}
	cmd.Flags().BoolVar(&prefix, "prefix", false, "List titles by prefix")
	cmd.Flags().BoolVar(&search, "search", false, "Full text search")
	cmd.Flags().IntVar(&limit, "limit", 10, "Most results to list")
	return cmd
}

func newBacklinksCmd() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "backlinks <nodes.db> <title>",
		Short: "List the nodes that link to a title",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := openIndex(args[0])
			if err != nil {
				return err
			}
			defer db.Close()

			titles, err := db.Backlinks(cmd.Context(), args[1], limit)
			if err != nil {
				return err
			}
			for _, t := range titles {
				fmt.Fprintln(cmd.OutOrStdout(), t)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 50, "Most titles to list")
	return cmd
}

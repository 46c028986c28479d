package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dustin/go-wikinode/internal/config"
	"github.com/dustin/go-wikinode/internal/store"
)

var backends = []string{"sqlite", "couchbase", "couchdb", "elasticsearch", "mongo"}

// openStore opens the named backend.  target, when set, replaces the
// configured path or url.
func openStore(cfg config.Config, backend, target string) (store.Store, error) {
	pick := func(configured string) string {
		if target != "" {
			return target
		}
		return configured
	}

	switch backend {
	case "sqlite":
		path := pick(cfg.SQLite.Path)
		if path == "" {
			return nil, fmt.Errorf("sqlite needs a database path (--target or sqlite.path)")
		}
		return store.OpenSQLite(path, cfg.SQLite.Batch)
	case "couchbase":
		return store.OpenCouchbase(pick(cfg.Couchbase.URL), cfg.Couchbase.Pool, cfg.Couchbase.Bucket)
	case "couchdb":
		return store.OpenCouchDB(pick(cfg.CouchDB.URL))
	case "elasticsearch":
		es := cfg.Elasticsearch
		return store.OpenElasticsearch(pick(es.URL), es.Index, es.Type, es.Batch), nil
	case "mongo":
		return store.OpenMongo(pick(cfg.Mongo.URL), cfg.Mongo.Database, cfg.Mongo.Collection)
	}
	return nil, fmt.Errorf("unknown backend %q (want one of %v)", backend, backends)
}

func newLoadCmd(s *settings) *cobra.Command {
	var target string
	cmd := &cobra.Command{
		Use:       "load <backend> <dump>",
		Short:     "Load dictionary entries into an index store",
		Long:      fmt.Sprintf("Run the dump through the extractor and store each entry in one of %v.", backends),
		Args:      cobra.ExactArgs(2),
		ValidArgs: backends,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := s.load(cmd)
			if err != nil {
				return err
			}
			cfg.Input = args[1]

			st, err := openStore(cfg, args[0], target)
			if err != nil {
				return fmt.Errorf("opening %s: %w", args[0], err)
			}
			_, err = process(cmd.Context(), cfg, cmd.InOrStdin(), st)
			if cerr := st.Close(); cerr != nil && err == nil {
				err = cerr
			}
			if err != nil {
				return fmt.Errorf("loading %s into %s: %w", cfg.Input, args[0], err)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&target, "target", "", "Database path or server URL, overriding the config")
	return cmd
}

// Package config holds the settings for a wikinode run, read from a
// YAML or JSON file and then overridden from the command line.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"

	"github.com/dustin/go-wikinode"
)

// Config is the file schema.  Zero values are filled from Default.
type Config struct {
	Input  string `yaml:"input" json:"input"`
	Output string `yaml:"output" json:"output"`
	// Index is the multistream index; when set Input must be the
	// matching multistream dump.
	Index string `yaml:"index" json:"index"`

	Workers     int   `yaml:"workers" json:"workers"`
	ReportEvery int64 `yaml:"reportEvery" json:"reportEvery"`

	Lead struct {
		MinChars   int   `yaml:"minChars" json:"minChars"`
		MaxChars   int   `yaml:"maxChars" json:"maxChars"`
		MinContent int   `yaml:"minContent" json:"minContent"`
		NFC        *bool `yaml:"nfc" json:"nfc"`
	} `yaml:"lead" json:"lead"`

	SQLite struct {
		Path  string `yaml:"path" json:"path"`
		Batch int    `yaml:"batch" json:"batch"`
	} `yaml:"sqlite" json:"sqlite"`

	Couchbase struct {
		URL    string `yaml:"url" json:"url"`
		Pool   string `yaml:"pool" json:"pool"`
		Bucket string `yaml:"bucket" json:"bucket"`
	} `yaml:"couchbase" json:"couchbase"`

	CouchDB struct {
		URL string `yaml:"url" json:"url"`
	} `yaml:"couchdb" json:"couchdb"`

	Elasticsearch struct {
		URL   string `yaml:"url" json:"url"`
		Index string `yaml:"index" json:"index"`
		Type  string `yaml:"type" json:"type"`
		Batch int    `yaml:"batch" json:"batch"`
	} `yaml:"elasticsearch" json:"elasticsearch"`

	Mongo struct {
		URL        string `yaml:"url" json:"url"`
		Database   string `yaml:"database" json:"database"`
		Collection string `yaml:"collection" json:"collection"`
	} `yaml:"mongo" json:"mongo"`
}

// Default gets the configuration used when nothing is set.
func Default() Config {
	var c Config
	c.applyDefaults()
	return c
}

func (c *Config) applyDefaults() {
	opts := wikinode.DefaultOptions()
	if c.Workers <= 0 {
		c.Workers = runtime.GOMAXPROCS(0)
	}
	if c.ReportEvery <= 0 {
		c.ReportEvery = 10000
	}
	if c.Lead.MinChars == 0 {
		c.Lead.MinChars = opts.MinChars
	}
	if c.Lead.MaxChars == 0 {
		c.Lead.MaxChars = opts.MaxChars
	}
	if c.Lead.MinContent == 0 {
		c.Lead.MinContent = opts.MinContent
	}
	if c.Lead.NFC == nil {
		nfc := opts.NFC
		c.Lead.NFC = &nfc
	}
	if c.SQLite.Batch <= 0 {
		c.SQLite.Batch = 1000
	}
	if c.Couchbase.URL == "" {
		c.Couchbase.URL = "http://localhost:8091/"
	}
	if c.Couchbase.Pool == "" {
		c.Couchbase.Pool = "default"
	}
	if c.Couchbase.Bucket == "" {
		c.Couchbase.Bucket = "default"
	}
	if c.CouchDB.URL == "" {
		c.CouchDB.URL = "http://localhost:5984/wikinode"
	}
	if c.Elasticsearch.URL == "" {
		c.Elasticsearch.URL = "http://localhost:9200"
	}
	if c.Elasticsearch.Index == "" {
		c.Elasticsearch.Index = "wikinode"
	}
	if c.Elasticsearch.Type == "" {
		c.Elasticsearch.Type = "node"
	}
	if c.Elasticsearch.Batch <= 0 {
		c.Elasticsearch.Batch = 1000
	}
	if c.Mongo.URL == "" {
		c.Mongo.URL = "localhost"
	}
	if c.Mongo.Database == "" {
		c.Mongo.Database = "wp"
	}
	if c.Mongo.Collection == "" {
		c.Mongo.Collection = "nodes"
	}
}

// Load reads YAML or JSON, picked by file extension, and fills in
// defaults for anything left out.
func Load(path string) (Config, error) {
	var c Config
	b, err := os.ReadFile(path)
	if err != nil {
		return c, err
	}
	switch filepath.Ext(path) {
	case ".json":
		if err := json.Unmarshal(b, &c); err != nil {
			return c, fmt.Errorf("parse json: %w", err)
		}
	default:
		if err := yaml.Unmarshal(b, &c); err != nil {
			return c, fmt.Errorf("parse yaml: %w", err)
		}
	}
	c.applyDefaults()
	return c, nil
}

// Validate checks the lead window and worker count make sense.
func (c Config) Validate() error {
	var errs []error
	if c.Lead.MinContent <= 0 {
		errs = append(errs, fmt.Errorf("lead.minContent must be positive, got %d", c.Lead.MinContent))
	}
	if c.Lead.MinChars < 0 || c.Lead.MinChars >= c.Lead.MaxChars {
		errs = append(errs, fmt.Errorf("lead.minChars (%d) must be in [0, lead.maxChars (%d))",
			c.Lead.MinChars, c.Lead.MaxChars))
	}
	if c.Workers < 1 {
		errs = append(errs, fmt.Errorf("workers must be at least 1, got %d", c.Workers))
	}
	return errors.Join(errs...)
}

// Options gets the pipeline options this configuration describes.
func (c Config) Options() wikinode.Options {
	opts := wikinode.DefaultOptions()
	opts.MinChars = c.Lead.MinChars
	opts.MaxChars = c.Lead.MaxChars
	opts.MinContent = c.Lead.MinContent
	if c.Lead.NFC != nil {
		opts.NFC = *c.Lead.NFC
	}
	opts.Workers = c.Workers
	opts.ProgressEvery = c.ReportEvery
	return opts
}

package main

import (
	"github.com/spf13/cobra"

	"github.com/dustin/go-wikinode/internal/config"
	"github.com/dustin/go-wikinode/internal/logging"
)

// settings are the flags shared by every command.
type settings struct {
	configPath string
	verbose    bool

	index      string
	workers    int
	minChars   int
	maxChars   int
	minContent int
	noNFC      bool
}

// NewRootCmd creates the wikinode command tree.
func NewRootCmd() *cobra.Command {
	s := &settings{}
	cmd := &cobra.Command{
		Use:   "wikinode",
		Short: "Extract dictionary entries from wikipedia dumps",
		Long: `wikinode reads a wikipedia xml dump (plain, .bz2, or multistream with
its index) and keeps, for every article, its title and a cleaned lead
paragraph of bounded length.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			logging.Setup(cmd.ErrOrStderr(), s.verbose)
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVarP(&s.configPath, "config", "c", "", "YAML or JSON config file")
	pf.BoolVarP(&s.verbose, "verbose", "v", false, "Enable verbose logging")
	pf.StringVar(&s.index, "index", "", "Multistream index (.bz2); the dump must be the matching multistream file")
	pf.IntVar(&s.workers, "workers", 0, "Number of page workers (default GOMAXPROCS)")
	pf.IntVar(&s.minChars, "min-chars", 0, "Shortest cut when truncating at a sentence end (default 500)")
	pf.IntVar(&s.maxChars, "max-chars", 0, "Longest lead kept, in characters (default 1500)")
	pf.IntVar(&s.minContent, "min-content", 0, "Leads shorter than this are dropped (default 100)")
	pf.BoolVar(&s.noNFC, "no-nfc", false, "Don't normalize text to Unicode NFC")

	cmd.AddCommand(newConvertCmd(s))
	cmd.AddCommand(newLoadCmd(s))
	cmd.AddCommand(newStatsCmd(s))
	cmd.AddCommand(newLookupCmd())
	cmd.AddCommand(newBacklinksCmd())
	cmd.AddCommand(newGraphCmd())
	cmd.AddCommand(newIndexCmd())
	cmd.AddCommand(newVersionCmd())

	return cmd
}

// load reads the config file, if any, and lays the flags given on
// the command line over it.
func (s *settings) load(cmd *cobra.Command) (config.Config, error) {
	cfg := config.Default()
	if s.configPath != "" {
		var err error
		if cfg, err = config.Load(s.configPath); err != nil {
			return cfg, err
		}
	}

	f := cmd.Flags()
	if f.Changed("index") {
		cfg.Index = s.index
	}
	if f.Changed("workers") {
		cfg.Workers = s.workers
	}
	if f.Changed("min-chars") {
		cfg.Lead.MinChars = s.minChars
	}
	if f.Changed("max-chars") {
		cfg.Lead.MaxChars = s.maxChars
	}
	if f.Changed("min-content") {
		cfg.Lead.MinContent = s.minContent
	}
	if f.Changed("no-nfc") {
		nfc := !s.noNFC
		cfg.Lead.NFC = &nfc
	}

	return cfg, cfg.Validate()
}

// Package cli implements the rankctl command line.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/okian/rankview/pkg/logger"
)

// viewFlags are shared by query and remote.
type viewFlags struct {
	search   string
	sort     string
	dir      string
	page     int
	pageSize int
	output   string
}

func (f *viewFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVar(&f.search, "search", "", "search term; \"ann smith\" also matches \"Smith, Ann\"")
	fs.StringVar(&f.sort, "sort", "value", "sort column: name, value (alias salary) or rank")
	fs.StringVar(&f.dir, "dir", "", "sort direction: asc or desc (default depends on column)")
	fs.IntVar(&f.page, "page", 1, "1-based page number")
	fs.IntVar(&f.pageSize, "page-size", 25, "rows per page")
	fs.StringVarP(&f.output, "output", "o", "table", "output format: table, json or yaml")
}

// NewRootCommand builds the rankctl command tree.
func NewRootCommand() *cobra.Command {
	var logLevel string

	root := &cobra.Command{
		Use:           "rankctl",
		Short:         "Rank, search and page through a name/value dataset",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := logger.InitWithOptions(logger.WithWriter(cmd.ErrOrStderr())); err != nil {
				return err
			}
			return logger.SetLevelString(logLevel)
		},
	}
	root.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level: debug, info, warn or error")

	root.AddCommand(newQueryCommand(), newRemoteCommand())
	return root
}

// Execute is the entry point called by main.main().
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

func newRemoteCommand() *cobra.Command {
	var (
		flags   viewFlags
		baseURL string
		reload  bool
		timeout time.Duration
	)

	cmd := &cobra.Command{
		Use:     "remote",
		Short:   "Query a running rankview server",
		Example: `  rankctl remote --url http://localhost:9080 --search smith --sort rank --dir asc`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			view, err := flags.view()
			if err != nil {
				return err
			}
			format, err := parseFormat(flags.output)
			if err != nil {
				return err
			}

			c := NewClient(baseURL, timeout)
			if reload {
				report, err := c.Reload(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "reloaded %s: %d records, %d skipped\n",
					report.Source, report.Records, report.Skipped)
			}

			size := 0
			if cmd.Flags().Changed("page-size") {
				size = flags.pageSize
			}
			res, err := c.Query(cmd.Context(), view, size)
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), format, res)
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVar(&baseURL, "url", "http://localhost:9080", "server base URL")
	cmd.Flags().BoolVar(&reload, "reload", false, "reload the server's dataset before querying")
	cmd.Flags().DurationVar(&timeout, "timeout", 10*time.Second, "request timeout")
	return cmd
}

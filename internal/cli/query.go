package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/okian/rankview/internal/adapters/source"
	service "github.com/okian/rankview/internal/app"
	"github.com/okian/rankview/internal/domain/query"
	"github.com/okian/rankview/pkg/logger"
)

func newQueryCommand() *cobra.Command {
	var (
		flags   viewFlags
		src     string
		timeout time.Duration
	)

	cmd := &cobra.Command{
		Use:   "query",
		Short: "Load a dataset locally and print one page of the ranked view",
		Example: `  rankctl query --source salaries.csv --search "ann smith"
  curl -s https://example.com/salaries.csv | rankctl query --source - --sort name -o json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			view, err := flags.view()
			if err != nil {
				return err
			}
			format, err := parseFormat(flags.output)
			if err != nil {
				return err
			}
			feed, err := openSource(cmd.InOrStdin(), src, timeout)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			svc := service.New(
				service.WithLogger(logger.Named("rankctl")),
				service.WithSource(feed),
				service.WithPageSize(flags.pageSize),
			)
			if _, err := svc.Load(ctx); err != nil {
				return err
			}
			res, err := svc.Query(ctx, view)
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), format, res)
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVar(&src, "source", "", "dataset file, http(s) URL, or - for stdin")
	cmd.Flags().DurationVar(&timeout, "timeout", 10*time.Second, "fetch timeout")
	_ = cmd.MarkFlagRequired("source")
	return cmd
}

// openSource resolves the --source flag. "-" reads stdin once.
func openSource(stdin io.Reader, location string, timeout time.Duration) (source.Source, error) {
	if location != "-" {
		return source.New(location, timeout), nil
	}
	b, err := io.ReadAll(stdin)
	if err != nil {
		return nil, fmt.Errorf("%w: stdin: %w", source.ErrUnavailable, err)
	}
	return source.Static{Name: "stdin", Text: string(b)}, nil
}

// view validates the flags into a view state.
func (f *viewFlags) view() (query.ViewState, error) {
	col, err := query.ParseColumn(f.sort)
	if err != nil {
		return query.ViewState{}, err
	}
	dir, err := query.ParseDirection(f.dir, col)
	if err != nil {
		return query.ViewState{}, err
	}
	if f.page < 1 {
		return query.ViewState{}, fmt.Errorf("--page must be at least 1, got %d", f.page)
	}
	if f.pageSize < 1 {
		return query.ViewState{}, fmt.Errorf("--page-size must be at least 1, got %d", f.pageSize)
	}
	return query.ViewState{Search: f.search, Column: col, Direction: dir, Page: f.page}, nil
}

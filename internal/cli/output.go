package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"gopkg.in/yaml.v3"

	"github.com/okian/rankview/internal/domain/types"
)

// Output formats.
const (
	formatTable = "table"
	formatJSON  = "json"
	formatYAML  = "yaml"
)

func parseFormat(s string) (string, error) {
	switch f := strings.ToLower(strings.TrimSpace(s)); f {
	case formatTable, formatJSON, formatYAML:
		return f, nil
	case "yml":
		return formatYAML, nil
	default:
		return "", fmt.Errorf("unknown output format %q (want table, json or yaml)", s)
	}
}

func render(w io.Writer, format string, res types.Result) error {
	switch format {
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(res); err != nil {
			return err
		}
		return enc.Close()
	default:
		return renderTable(w, res)
	}
}

func renderTable(w io.Writer, res types.Result) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "RANK\tNAME\tVALUE\t")
	for _, r := range res.Rows {
		fmt.Fprintf(tw, "%d\t%s\t%s\t\n", r.Rank, r.Name, r.FormattedValue)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if res.TotalPages == 0 {
		fmt.Fprintf(w, "\nno matching records (%d total)\n", res.TotalOverall)
		return nil
	}
	fmt.Fprintf(w, "\npage %d of %d, matched %d of %d\n", res.Page, res.TotalPages, res.TotalMatched, res.TotalOverall)
	f := res.Statistics.Formatted
	fmt.Fprintf(w, "min %s  max %s  mean %s  median %s\n", f.Min, f.Max, f.Mean, f.Median)
	return nil
}

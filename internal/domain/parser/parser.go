// Package parser turns delimited "name,value" text into records.
//
// The first line is always treated as a header. Every other non-blank line
// is parsed on its own; a malformed line is dropped and reported in
// Result.Skipped but never stops the parse.
package parser

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/text/unicode/norm"

	"github.com/okian/rankview/internal/domain/model"
)

// quotedLine matches `"<name>","<value>"`. Quotes inside the name must be
// doubled; a lone quote before the closing one fails the match.
var quotedLine = regexp.MustCompile(`^"((?:[^"]|"")+)"\s*,\s*"([^"]*)"$`)

// numericText validates a cleaned value before strconv sees it, which keeps
// NaN, Inf and hex floats out of the dataset.
var numericText = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?$`)

// currencySymbols are stripped from the front of a value.
var currencySymbols = []string{"$", "€", "£"}

// recordNamespace seeds the name-based UUIDs handed to records.
var recordNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("rankview/record"))

// Skipped describes a line that was dropped.
type Skipped struct {
	Line int    // 1-based line number in the input
	Text string // trimmed line content
	Err  error  // ErrMissingField or ErrInvalidValue, possibly wrapped
}

// Result is the outcome of a parse.
type Result struct {
	Records []model.Record // unranked, in input order
	Skipped []Skipped
}

// Parse converts text into records. Ranks are left at zero.
func Parse(text string) Result {
	lines := strings.Split(text, "\n")
	res := Result{Records: make([]model.Record, 0, len(lines))}

	for i := 1; i < len(lines); i++ {
		line := strings.TrimSpace(lines[i])
		if line == "" {
			continue
		}
		lineNo := i + 1

		name, raw, err := splitLine(line)
		if err != nil {
			res.Skipped = append(res.Skipped, Skipped{Line: lineNo, Text: line, Err: err})
			continue
		}
		value, err := ParseValue(raw)
		if err != nil {
			res.Skipped = append(res.Skipped, Skipped{Line: lineNo, Text: line, Err: err})
			continue
		}

		name = norm.NFC.String(name)
		res.Records = append(res.Records, model.Record{
			ID:    RecordID(lineNo, name),
			Line:  lineNo,
			Name:  name,
			Value: value,
		})
	}
	return res
}

// splitLine extracts the raw name and value fields from a trimmed line.
func splitLine(line string) (string, string, error) {
	if m := quotedLine.FindStringSubmatch(line); m != nil {
		return strings.ReplaceAll(m[1], `""`, `"`), m[2], nil
	}

	idx := strings.IndexByte(line, ',')
	if idx < 0 {
		return "", "", ErrMissingField
	}
	name := stripQuotes(strings.TrimSpace(line[:idx]))
	raw := stripQuotes(strings.TrimSpace(line[idx+1:]))
	if name == "" || raw == "" {
		return "", "", ErrMissingField
	}
	return name, raw, nil
}

// stripQuotes removes at most one double quote from each end.
func stripQuotes(s string) string {
	s = strings.TrimPrefix(s, `"`)
	return strings.TrimSuffix(s, `"`)
}

// ParseValue parses a numeric field such as "$100,000.00" or "75000".
// Thousands separators and a leading currency symbol are ignored.
func ParseValue(s string) (float64, error) {
	s = strings.TrimSpace(s)
	for _, sym := range currencySymbols {
		if strings.HasPrefix(s, sym) {
			s = strings.TrimSpace(s[len(sym):])
			break
		}
	}
	s = strings.ReplaceAll(s, ",", "")
	if !numericText.MatchString(s) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidValue, s)
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidValue, s)
	}
	return v, nil
}

// RecordID derives the stable identifier of the record found on line lineNo.
// The same input always yields the same ids.
func RecordID(lineNo int, name string) uuid.UUID {
	return uuid.NewSHA1(recordNamespace, []byte(strconv.Itoa(lineNo)+"\x00"+name))
}

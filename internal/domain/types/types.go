// Package types contains the shapes returned to rendering layers.
package types

import (
	"encoding/json"
	"fmt"

	"github.com/okian/rankview/internal/domain/format"
	"github.com/okian/rankview/internal/domain/model"
	"github.com/okian/rankview/internal/domain/stats"
)

// emptyStatistics is the wire form of statistics over no records.
const emptyStatistics = "empty"

// Row is one displayed record.
type Row struct {
	Name           string  `json:"name" yaml:"name"`
	Value          float64 `json:"value" yaml:"value"`
	FormattedValue string  `json:"formatted_value" yaml:"formatted_value"`
	Rank           int     `json:"rank" yaml:"rank"`
}

// NewRow converts a record for display.
func NewRow(r model.Record) Row {
	return Row{
		Name:           r.Name,
		Value:          r.Value,
		FormattedValue: format.Currency(r.Value),
		Rank:           r.Rank,
	}
}

// FormattedStatistics carries display strings for the numeric statistics.
type FormattedStatistics struct {
	Min    string `json:"min" yaml:"min"`
	Max    string `json:"max" yaml:"max"`
	Mean   string `json:"mean" yaml:"mean"`
	Median string `json:"median" yaml:"median"`
}

// Statistics summarizes the matched records. It encodes as the string
// "empty" when no records matched.
type Statistics struct {
	Count     int                 `json:"count" yaml:"count"`
	Min       float64             `json:"min" yaml:"min"`
	Max       float64             `json:"max" yaml:"max"`
	Mean      float64             `json:"mean" yaml:"mean"`
	Median    float64             `json:"median" yaml:"median"`
	Formatted FormattedStatistics `json:"formatted" yaml:"formatted"`
}

// NewStatistics converts a summary for display.
func NewStatistics(s stats.Summary) Statistics {
	if s.Empty() {
		return Statistics{}
	}
	return Statistics{
		Count:  s.Count,
		Min:    s.Min,
		Max:    s.Max,
		Mean:   s.Mean,
		Median: s.Median,
		Formatted: FormattedStatistics{
			Min:    format.Currency(s.Min),
			Max:    format.Currency(s.Max),
			Mean:   format.Currency(s.Mean),
			Median: format.Currency(s.Median),
		},
	}
}

// Empty reports whether the statistics cover no records.
func (s Statistics) Empty() bool {
	return s.Count == 0
}

// statisticsFields avoids MarshalJSON recursion.
type statisticsFields Statistics

// MarshalJSON implements json.Marshaler.
func (s Statistics) MarshalJSON() ([]byte, error) {
	if s.Empty() {
		return json.Marshal(emptyStatistics)
	}
	return json.Marshal(statisticsFields(s))
}

// UnmarshalJSON implements json.Unmarshaler.
func (s *Statistics) UnmarshalJSON(data []byte) error {
	var tag string
	if err := json.Unmarshal(data, &tag); err == nil {
		if tag != emptyStatistics {
			return fmt.Errorf("statistics: unexpected string %q", tag)
		}
		*s = Statistics{}
		return nil
	}
	var f statisticsFields
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	*s = Statistics(f)
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (s Statistics) MarshalYAML() (any, error) {
	if s.Empty() {
		return emptyStatistics, nil
	}
	return statisticsFields(s), nil
}

// Result is everything a rendering layer needs for one view.
type Result struct {
	Rows         []Row      `json:"rows" yaml:"rows"`
	TotalMatched int        `json:"total_matched" yaml:"total_matched"`
	TotalOverall int        `json:"total_overall" yaml:"total_overall"`
	Page         int        `json:"page" yaml:"page"`
	TotalPages   int        `json:"total_pages" yaml:"total_pages"`
	Statistics   Statistics `json:"statistics" yaml:"statistics"`
}

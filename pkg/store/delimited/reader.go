// Package delimited reads the regions, businesses and assumptions datasets
// from delimiter-separated text with a header row. Rows that cannot be
// parsed are dropped and only logged at debug level.
package delimited

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/de-tools/region-atlas/pkg/models/store"
	"github.com/rs/zerolog"
)

const DefaultDelimiter = ';'

// Column aliases; the first header present wins.
var (
	regionColumn           = []string{"region"}
	targetPopulationColumn = []string{"target_population", "children_5_7"}
	avgRentColumn          = []string{"avg_rent_per_sqm", "avg_rent"}
	competitorCountColumn  = []string{"competitor_count", "ip_count"}
	paramColumn            = []string{"param"}
	valueColumn            = []string{"value"}
)

type Options struct {
	Delimiter rune
}

type row struct {
	line   int
	fields []string
}

type table struct {
	dataset string
	columns []int
	rows    []row
}

// value returns the field of column c, or false when the row is too short.
func (r row) value(columns []int, c int) (string, bool) {
	idx := columns[c]
	if idx < 0 || idx >= len(r.fields) {
		return "", false
	}
	return strings.TrimSpace(r.fields[idx]), true
}

func readTable(ctx context.Context, dataset string, r io.Reader, opts Options, columns ...[]string) (*table, error) {
	logger := zerolog.Ctx(ctx)

	reader := csv.NewReader(r)
	reader.Comma = opts.Delimiter
	if reader.Comma == 0 {
		reader.Comma = DefaultDelimiter
	}
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	t := &table{dataset: dataset, columns: make([]int, len(columns))}

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return t, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s header: %w", dataset, err)
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
		if _, seen := index[name]; !seen {
			index[name] = i
		}
	}

	for c, aliases := range columns {
		t.columns[c] = -1
		for _, alias := range aliases {
			if i, ok := index[alias]; ok {
				t.columns[c] = i
				break
			}
		}
		if t.columns[c] < 0 {
			logger.Warn().
				Str("dataset", dataset).
				Strs("column", aliases).
				Msg("column not found, every row will be skipped")
		}
	}

	for {
		fields, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		var parseErr *csv.ParseError
		if errors.As(err, &parseErr) {
			logger.Debug().Err(err).Str("dataset", dataset).Int("line", parseErr.Line).Msg("skipping unreadable row")
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", dataset, err)
		}
		line, _ := reader.FieldPos(0)
		t.rows = append(t.rows, row{line: line, fields: fields})
	}

	return t, nil
}

func (t *table) skip(ctx context.Context, r row, reason string) {
	zerolog.Ctx(ctx).Debug().
		Str("dataset", t.dataset).
		Int("line", r.line).
		Str("reason", reason).
		Msg("skipping malformed row")
}

// ReadRegions parses region;target_population;avg_rent_per_sqm rows.
func ReadRegions(ctx context.Context, r io.Reader, opts Options) ([]store.RegionRecord, error) {
	t, err := readTable(ctx, "regions", r, opts, regionColumn, targetPopulationColumn, avgRentColumn)
	if err != nil {
		return nil, err
	}

	records := make([]store.RegionRecord, 0, len(t.rows))
	for _, rw := range t.rows {
		region, ok := t.region(ctx, rw)
		if !ok {
			continue
		}
		population, err := t.count(rw, 1)
		if err != nil {
			t.skip(ctx, rw, err.Error())
			continue
		}
		rent, err := t.amount(rw, 2)
		if err != nil {
			t.skip(ctx, rw, err.Error())
			continue
		}
		records = append(records, store.RegionRecord{
			Region:           region,
			TargetPopulation: population,
			AvgRentPerSqm:    rent,
		})
	}
	return records, nil
}

// ReadBusinesses parses region;competitor_count rows.
func ReadBusinesses(ctx context.Context, r io.Reader, opts Options) ([]store.BusinessRecord, error) {
	t, err := readTable(ctx, "businesses", r, opts, regionColumn, competitorCountColumn)
	if err != nil {
		return nil, err
	}

	records := make([]store.BusinessRecord, 0, len(t.rows))
	for _, rw := range t.rows {
		region, ok := t.region(ctx, rw)
		if !ok {
			continue
		}
		count, err := t.count(rw, 1)
		if err != nil {
			t.skip(ctx, rw, err.Error())
			continue
		}
		records = append(records, store.BusinessRecord{Region: region, CompetitorCount: count})
	}
	return records, nil
}

// ReadAssumptions parses long-format region;param;value rows.
func ReadAssumptions(ctx context.Context, r io.Reader, opts Options) ([]store.AssumptionRecord, error) {
	t, err := readTable(ctx, "assumptions", r, opts, regionColumn, paramColumn, valueColumn)
	if err != nil {
		return nil, err
	}

	records := make([]store.AssumptionRecord, 0, len(t.rows))
	for _, rw := range t.rows {
		region, ok := t.region(ctx, rw)
		if !ok {
			continue
		}
		param, ok := rw.value(t.columns, 1)
		if !ok || param == "" {
			t.skip(ctx, rw, "missing param")
			continue
		}
		value, err := t.amount(rw, 2)
		if err != nil {
			t.skip(ctx, rw, err.Error())
			continue
		}
		records = append(records, store.AssumptionRecord{Region: region, Param: param, Value: value})
	}
	return records, nil
}

func (t *table) region(ctx context.Context, r row) (string, bool) {
	region, ok := r.value(t.columns, 0)
	if !ok || region == "" {
		t.skip(ctx, r, "missing region")
		return "", false
	}
	return region, true
}

func (t *table) count(r row, c int) (int, error) {
	raw, ok := r.value(t.columns, c)
	if !ok {
		return 0, errors.New("missing field")
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("not an integer: %q", raw)
	}
	if n < 0 {
		return 0, fmt.Errorf("negative value: %d", n)
	}
	return n, nil
}

func (t *table) amount(r row, c int) (float64, error) {
	raw, ok := r.value(t.columns, c)
	if !ok {
		return 0, errors.New("missing field")
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("not a number: %q", raw)
	}
	if v < 0 {
		return 0, fmt.Errorf("negative value: %v", v)
	}
	return v, nil
}

package builtin

import (
	"log"
	"sort"

	"athletes/internal/bio"
	"athletes/internal/records"
)

// Impute fills nulls in numeric columns with the most frequent non-null value
// of that column, ties going to the value seen first in row order. When
// Columns is empty every column whose non-null values are all numeric is
// imputed. A column with no values stays null.
type Impute struct {
	Columns []string
}

func (m Impute) Apply(in []records.Record) ([]records.Record, error) {
	cols := m.Columns
	if len(cols) == 0 {
		cols = numericColumns(in)
	}
	for _, col := range cols {
		var (
			values []float64
			nulls  int
		)
		for _, r := range in {
			if v, ok := toFloat(r[col]); ok {
				values = append(values, v)
			} else if r[col] == nil {
				nulls++
			}
		}
		if nulls == 0 {
			continue
		}
		mode, ok := bio.Mode(values)
		if !ok {
			log.Printf("impute: column=%s has no values; %d nulls left", col, nulls)
			continue
		}
		for _, r := range in {
			if r[col] == nil {
				r[col] = mode
			}
		}
		log.Printf("impute: column=%s mode=%g filled=%d", col, mode, nulls)
	}
	return in, nil
}

// numericColumns returns, sorted, the columns that hold at least one numeric
// value and nothing but numbers or nulls.
func numericColumns(in []records.Record) []string {
	numeric := map[string]bool{}
	for _, r := range in {
		for k, v := range r {
			if v == nil {
				continue
			}
			_, isNum := toFloat(v)
			if prev, seen := numeric[k]; seen {
				numeric[k] = prev && isNum
			} else {
				numeric[k] = isNum
			}
		}
	}
	var cols []string
	for k, ok := range numeric {
		if ok {
			cols = append(cols, k)
		}
	}
	sort.Strings(cols)
	return cols
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}

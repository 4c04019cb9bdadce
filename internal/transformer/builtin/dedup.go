// Package builtin contains the reusable table transformers the normalization
// chain is assembled from.
//
// DeDup collapses duplicate records. With no Keys it removes rows that are
// identical across every field, keeping the first occurrence and preserving
// the order of survivors. With Keys it collapses records sharing a business
// key and chooses a winner according to Policy:
//
//   - "keep-first"   : keep the earliest occurrence in the batch
//   - "keep-last"    : keep the latest occurrence in the batch (default)
//   - "most-complete": keep the record that has the most non-empty fields;
//     ties break by "keep-last"
//
// Keys: a record's key is constructed from the concatenation of configured
// fields as strings (nil -> "\x00").
package builtin

import (
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/zeebo/xxh3"

	"athletes/internal/records"
)

// DeDup implements exact-row and keyed de-duplication.
type DeDup struct {
	// Keys are the field names that form the business key. Empty means the
	// whole row is the key.
	Keys []string

	// Policy selects the winner among keyed duplicates: "keep-first",
	// "keep-last", or "most-complete" (default is "keep-last").
	Policy string

	// PreferFields add weight in "most-complete" selection.
	PreferFields []string
}

// Apply returns a new slice with duplicates removed. The input slice is not
// modified.
func (d DeDup) Apply(in []records.Record) ([]records.Record, error) {
	if len(in) == 0 {
		return in, nil
	}
	if len(d.Keys) == 0 {
		return dedupRows(in), nil
	}
	return d.keyed(in), nil
}

// dedupRows keeps the first of every group of rows equal across all fields.
// Rows are bucketed by an xxh3 hash of their canonical encoding and compared
// in full inside a bucket, so a hash collision never merges distinct rows.
func dedupRows(in []records.Record) []records.Record {
	out := make([]records.Record, 0, len(in))
	buckets := make(map[xxh3.Uint128][]int, len(in))
	var buf []byte

	for _, r := range in {
		buf = canonical(buf[:0], r)
		h := xxh3.Hash128(buf)

		dup := false
		for _, j := range buckets[h] {
			if rowsEqual(out[j], r) {
				dup = true
				break
			}
		}
		if dup {
			continue
		}
		buckets[h] = append(buckets[h], len(out))
		out = append(out, r)
	}
	return out
}

// canonical appends a deterministic encoding of r to buf: keys sorted, each
// key/value pair separated by \x1f, nil encoded apart from "".
func canonical(buf []byte, r records.Record) []byte {
	keys := make([]string, 0, len(r))
	for k := range r {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for i, k := range keys {
		if i > 0 {
			buf = append(buf, '\x1f')
		}
		buf = append(buf, k...)
		buf = append(buf, '\x1e')
		switch v := r[k].(type) {
		case nil:
			buf = append(buf, '\x00')
		case string:
			buf = append(buf, '\x01')
			buf = append(buf, v...)
		default:
			buf = append(buf, '\x02')
			buf = append(buf, fmt.Sprint(v)...)
		}
	}
	return buf
}

func rowsEqual(a, b records.Record) bool {
	if len(a) != len(b) {
		return false
	}
	for k, av := range a {
		bv, ok := b[k]
		if !ok || !reflect.DeepEqual(av, bv) {
			return false
		}
	}
	return true
}

func (d DeDup) keyed(in []records.Record) []records.Record {
	policy := strings.ToLower(strings.TrimSpace(d.Policy))
	if policy == "" {
		policy = "keep-last"
	}

	type slot struct {
		rec   records.Record
		index int
		score int
	}

	winners := make(map[string]slot, len(in))

	prefer := make(map[string]struct{}, len(d.PreferFields))
	for _, f := range d.PreferFields {
		prefer[f] = struct{}{}
	}

	keyOf := func(r records.Record) (string, bool) {
		var b strings.Builder
		for _, k := range d.Keys {
			v, ok := r[k]
			if !ok {
				// Missing key field: the record passes through untouched.
				return "", false
			}
			if b.Len() > 0 {
				b.WriteByte('\x1f')
			}
			switch t := v.(type) {
			case nil:
				b.WriteByte('\x00')
			case string:
				b.WriteString(t)
			default:
				b.WriteString(fmt.Sprint(t))
			}
		}
		return b.String(), true
	}

	scoreOf := func(r records.Record) int {
		score, bonus := 0, 0
		for k := range r {
			if r.IsNull(k) {
				continue
			}
			score++
			if _, ok := prefer[k]; ok {
				bonus++
			}
		}
		return score*10 + bonus
	}

	var passthrough []int
	for i, r := range in {
		key, ok := keyOf(r)
		if !ok {
			passthrough = append(passthrough, i)
			continue
		}
		switch policy {
		case "keep-first":
			if _, exists := winners[key]; !exists {
				winners[key] = slot{rec: r, index: i}
			}
		case "most-complete":
			s := slot{rec: r, index: i, score: scoreOf(r)}
			if prev, exists := winners[key]; !exists {
				winners[key] = s
			} else if s.score > prev.score || (s.score == prev.score && s.index > prev.index) {
				winners[key] = s
			}
		default: // "keep-last"
			winners[key] = slot{rec: r, index: i}
		}
	}

	// Winners in input order, then records without a key.
	indexes := make([]int, 0, len(winners))
	byIndex := make(map[int]records.Record, len(winners))
	for _, s := range winners {
		indexes = append(indexes, s.index)
		byIndex[s.index] = s.rec
	}
	sort.Ints(indexes)

	out := make([]records.Record, 0, len(winners)+len(passthrough))
	for _, idx := range indexes {
		out = append(out, byIndex[idx])
	}
	for _, idx := range passthrough {
		out = append(out, in[idx])
	}
	return out
}

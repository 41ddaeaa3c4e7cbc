package format

import (
	"sort"
	"strconv"
)

// Normalize canonicalizes raw rows: the identity is reduced to its leading
// digit run (color-variant and mold suffixes dropped), rows without a leading
// digit run are discarded, quantities are summed per DesignID, and the result
// is sorted ascending by DesignID.
func Normalize(rows []RawRow) []Record {
	totals := make(map[int64]int64, len(rows))
	for _, row := range rows {
		id, ok := canonicalID(row.Identity)
		if !ok {
			continue
		}
		totals[id] += row.Quantity
	}

	records := make([]Record, 0, len(totals))
	for id, quantity := range totals {
		records = append(records, Record{DesignID: id, Quantity: quantity})
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].DesignID < records[j].DesignID
	})
	return records
}

// canonicalID extracts the leading digit run of an identity string.
func canonicalID(identity string) (int64, bool) {
	end := 0
	for end < len(identity) && identity[end] >= '0' && identity[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0, false
	}
	id, err := strconv.ParseInt(identity[:end], 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

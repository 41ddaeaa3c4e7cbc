package hierarchy

// MaxDepth caps how deep taxonomy paths are traversed when building columns.
// Pathological inputs with deeper paths have the excess levels ignored so the
// column count cannot grow without bound.
const MaxDepth = 16

// Record is one enriched inventory entry to encode.
type Record struct {
	DesignID int64
	Quantity int64
	Labels   []string
}

// Matrix is the encoded working set: one row per record, one binary column
// per distinct taxonomy term. Column order is fixed for the lifetime of a
// clustering run.
type Matrix struct {
	IDs        []int64
	Quantities []int64
	Columns    []string
	Rows       [][]float64
}

// Encode builds the one-hot feature matrix for the given records.
func Encode(records []Record) *Matrix {
	maxDepth := 0
	for _, record := range records {
		if len(record.Labels) > maxDepth {
			maxDepth = len(record.Labels)
		}
	}
	if maxDepth > MaxDepth {
		maxDepth = MaxDepth
	}

	var columns []string
	index := make(map[string]int)
	for depth := 0; depth < maxDepth; depth++ {
		for _, record := range records {
			if depth >= len(record.Labels) {
				continue
			}
			term := record.Labels[depth]
			if term == "" {
				continue
			}
			if _, seen := index[term]; seen {
				continue
			}
			index[term] = len(columns)
			columns = append(columns, term)
		}
	}

	matrix := &Matrix{
		IDs:        make([]int64, len(records)),
		Quantities: make([]int64, len(records)),
		Columns:    columns,
		Rows:       make([][]float64, len(records)),
	}
	for i, record := range records {
		matrix.IDs[i] = record.DesignID
		matrix.Quantities[i] = record.Quantity
		row := make([]float64, len(columns))
		limit := len(record.Labels)
		if limit > maxDepth {
			limit = maxDepth
		}
		for _, term := range record.Labels[:limit] {
			if col, ok := index[term]; ok {
				row[col] = 1
			}
		}
		matrix.Rows[i] = row
	}
	return matrix
}

// Terms reports which column terms are set for row i, reproducing the
// record's label set (order follows column order).
func (m *Matrix) Terms(i int) []string {
	var terms []string
	for col, name := range m.Columns {
		if m.Rows[i][col] == 1 {
			terms = append(terms, name)
		}
	}
	return terms
}

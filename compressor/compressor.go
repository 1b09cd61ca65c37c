package compressor

import (
	"fmt"
	"sort"
)

// OriginalTable is a dense row-major table.
type OriginalTable struct {
	entries  []int
	rowCount int
	colCount int
}

func NewOriginalTable(entries []int, colCount int) (*OriginalTable, error) {
	if len(entries) == 0 {
		return nil, fmt.Errorf("entries is empty")
	}
	if colCount <= 0 {
		return nil, fmt.Errorf("colCount must be >=1")
	}
	if len(entries)%colCount != 0 {
		return nil, fmt.Errorf("entries length or column count are incorrect; entries length: %v, column count: %v", len(entries), colCount)
	}

	return &OriginalTable{
		entries:  entries,
		rowCount: len(entries) / colCount,
		colCount: colCount,
	}, nil
}

const ForbiddenValue = -1

// RowDisplacementTable overlays the rows of a sparse table on one array. Each
// row is shifted by RowDisplacement[row] so that its non-empty cells fall on
// slots no other row uses; Bounds records which row owns a slot.
type RowDisplacementTable struct {
	OriginalRowCount int   `json:"original_row_count"`
	OriginalColCount int   `json:"original_col_count"`
	EmptyValue       int   `json:"empty_value"`
	Entries          []int `json:"entries"`
	Bounds           []int `json:"bounds"`
	RowDisplacement  []int `json:"row_displacement"`
}

func NewRowDisplacementTable(emptyValue int) *RowDisplacementTable {
	return &RowDisplacementTable{
		EmptyValue: emptyValue,
	}
}

func (tab *RowDisplacementTable) Lookup(row int, col int) (int, error) {
	if row < 0 || row >= tab.OriginalRowCount || col < 0 || col >= tab.OriginalColCount {
		return tab.EmptyValue, fmt.Errorf("indexes are out of range: [%v, %v]", row, col)
	}
	i := tab.RowDisplacement[row] + col
	if i >= len(tab.Bounds) || tab.Bounds[i] != row {
		return tab.EmptyValue, nil
	}
	return tab.Entries[i], nil
}

func (tab *RowDisplacementTable) OriginalTableSize() (int, int) {
	return tab.OriginalRowCount, tab.OriginalColCount
}

// Compress fills the table from orig. Denser rows are placed first because
// they are the hardest to fit.
func (tab *RowDisplacementTable) Compress(orig *OriginalTable) error {
	type sparseRow struct {
		row  int
		cols []int
	}

	rows := make([]sparseRow, 0, orig.rowCount)
	for row := 0; row < orig.rowCount; row++ {
		r := sparseRow{row: row}
		for col := 0; col < orig.colCount; col++ {
			if orig.entries[row*orig.colCount+col] != tab.EmptyValue {
				r.cols = append(r.cols, col)
			}
		}
		rows = append(rows, r)
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return len(rows[i].cols) > len(rows[j].cols)
	})

	size := len(orig.entries) + orig.colCount
	entries := make([]int, size)
	bounds := make([]int, size)
	for i := range entries {
		entries[i] = tab.EmptyValue
		bounds[i] = ForbiddenValue
	}
	disp := make([]int, orig.rowCount)
	used := 0
	next := 0
	for _, r := range rows {
		if len(r.cols) == 0 {
			continue
		}

		d := next
		for !fits(bounds, d, r.cols) {
			d++
		}
		disp[r.row] = d
		for _, col := range r.cols {
			entries[d+col] = orig.entries[r.row*orig.colCount+col]
			bounds[d+col] = r.row
		}
		if d+orig.colCount > used {
			used = d + orig.colCount
		}
		next = d + 1
	}

	tab.OriginalRowCount = orig.rowCount
	tab.OriginalColCount = orig.colCount
	tab.Entries = entries[:used]
	tab.Bounds = bounds[:used]
	tab.RowDisplacement = disp

	return nil
}

func fits(bounds []int, d int, cols []int) bool {
	for _, col := range cols {
		if bounds[d+col] != ForbiddenValue {
			return false
		}
	}
	return true
}

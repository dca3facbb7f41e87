package table

import (
	"encoding/binary"
	"fmt"
	"sort"
)

// DenseMatrix is a row-major dense integer matrix, the uncompressed shape
// that a ParseState's per-state action/goto rows would take if laid out as
// one big array-of-arrays rather than sparse sorted pairs. cmd/glrshow
// builds one from a loaded Tables to report how much a row-displacement
// encoding would save, so the compression technique can be exercised on a
// real table without needing the (out-of-scope) generator to emit the
// compressed form itself.
type DenseMatrix struct {
	entries  []int
	rowCount int
	colCount int
}

// NewDenseMatrix builds a DenseMatrix from row-major entries.
func NewDenseMatrix(entries []int, colCount int) (*DenseMatrix, error) {
	if len(entries) == 0 {
		return nil, fmt.Errorf("table: dense matrix: entries is empty")
	}
	if colCount <= 0 {
		return nil, fmt.Errorf("table: dense matrix: colCount must be >= 1")
	}
	if len(entries)%colCount != 0 {
		return nil, fmt.Errorf("table: dense matrix: entries length %v is not a multiple of colCount %v", len(entries), colCount)
	}
	return &DenseMatrix{
		entries:  entries,
		rowCount: len(entries) / colCount,
		colCount: colCount,
	}, nil
}

// CompressedMatrix is a lookup structure built from a DenseMatrix.
type CompressedMatrix interface {
	Lookup(row, col int) (int, error)
	OriginalSize() (rows, cols int)
}

var (
	_ CompressedMatrix = &DenseMatrix{}
	_ CompressedMatrix = &UniqueRowMatrix{}
	_ CompressedMatrix = &RowDisplacementMatrix{}
)

// Lookup returns the entry at (row, col), so callers (cmd/glrshow's
// compression report) can verify a compacted matrix against the original
// without reaching into DenseMatrix's unexported fields.
func (m *DenseMatrix) Lookup(row, col int) (int, error) {
	if row < 0 || row >= m.rowCount || col < 0 || col >= m.colCount {
		return 0, fmt.Errorf("table: dense matrix: index out of range [%v,%v]", row, col)
	}
	return m.entries[row*m.colCount+col], nil
}

func (m *DenseMatrix) OriginalSize() (int, int) {
	return m.rowCount, m.colCount
}

// UniqueRowMatrix deduplicates identical rows, keeping one copy of each
// distinct row and a per-original-row index into it.
type UniqueRowMatrix struct {
	UniqueEntries []int
	RowNums       []int
	Rows, Cols    int
}

// CompressUniqueRows builds a UniqueRowMatrix from m.
func CompressUniqueRows(m *DenseMatrix) *UniqueRowMatrix {
	tab := &UniqueRowMatrix{Rows: m.rowCount, Cols: m.colCount}

	var unique []int
	rowNums := make([]int, m.rowCount)
	hash2RowNum := map[string]int{}
	nextRowNum := 0
	for row := 0; row < m.rowCount; row++ {
		buf := make([]byte, 0, m.colCount*8)
		for col := 0; col < m.colCount; col++ {
			b := make([]byte, 8)
			binary.PutUvarint(b, uint64(m.entries[row*m.colCount+col]))
			buf = append(buf, b...)
		}
		rowHash := string(buf)

		rowNum, ok := hash2RowNum[rowHash]
		if !ok {
			rowNum = nextRowNum
			nextRowNum++
			hash2RowNum[rowHash] = rowNum
			start := row * m.colCount
			unique = append(unique, append([]int{}, m.entries[start:start+m.colCount]...)...)
		}
		rowNums[row] = rowNum
	}

	tab.UniqueEntries = unique
	tab.RowNums = rowNums
	return tab
}

func (tab *UniqueRowMatrix) Lookup(row, col int) (int, error) {
	if row < 0 || row >= tab.Rows || col < 0 || col >= tab.Cols {
		return 0, fmt.Errorf("table: unique-row matrix: index out of range [%v,%v]", row, col)
	}
	return tab.UniqueEntries[tab.RowNums[row]*tab.Cols+col], nil
}

func (tab *UniqueRowMatrix) OriginalSize() (int, int) {
	return tab.Rows, tab.Cols
}

// ForbiddenValue marks a RowDisplacementMatrix bound slot that no row owns.
const ForbiddenValue = -1

// RowDisplacementMatrix packs a sparse dense matrix by overlapping each
// row's non-empty columns into a single shared array, offset per row
// (classic row-displacement/double-displacement compaction for sparse
// parser tables).
type RowDisplacementMatrix struct {
	EmptyValue      int
	Rows, Cols      int
	Entries         []int
	Bounds          []int
	RowDisplacement []int
}

func (tab *RowDisplacementMatrix) Lookup(row, col int) (int, error) {
	if row < 0 || row >= tab.Rows || col < 0 || col >= tab.Cols {
		return tab.EmptyValue, fmt.Errorf("table: row-displacement matrix: index out of range [%v,%v]", row, col)
	}
	d := tab.RowDisplacement[row]
	if tab.Bounds[d+col] != row {
		return tab.EmptyValue, nil
	}
	return tab.Entries[d+col], nil
}

func (tab *RowDisplacementMatrix) OriginalSize() (int, int) {
	return tab.Rows, tab.Cols
}

type displacementRowInfo struct {
	rowNum        int
	nonEmptyCount int
	nonEmptyCol   []int
}

// CompressRowDisplacement builds a RowDisplacementMatrix from m, treating
// emptyValue as "absent" for compaction purposes.
func CompressRowDisplacement(m *DenseMatrix, emptyValue int) *RowDisplacementMatrix {
	infos := make([]displacementRowInfo, m.rowCount)
	row, col := 0, 0
	infos[0].rowNum = 0
	for _, v := range m.entries {
		if col == m.colCount {
			row++
			col = 0
			infos[row].rowNum = row
		}
		if v != emptyValue {
			infos[row].nonEmptyCount++
			infos[row].nonEmptyCol = append(infos[row].nonEmptyCol, col)
		}
		col++
	}
	sort.SliceStable(infos, func(i, j int) bool {
		return infos[i].nonEmptyCount > infos[j].nonEmptyCount
	})

	n := len(m.entries)
	entries := make([]int, n)
	bounds := make([]int, n)
	resultBottom := m.colCount
	rowDisplacement := make([]int, m.rowCount)
	for i := 0; i < n; i++ {
		entries[i] = emptyValue
		bounds[i] = ForbiddenValue
	}

	next := 0
	for _, info := range infos {
		if info.nonEmptyCount <= 0 {
			continue
		}
		for {
			overlapped := false
			for _, c := range info.nonEmptyCol {
				if entries[next+c] == emptyValue {
					continue
				}
				next++
				overlapped = true
				break
			}
			if overlapped {
				continue
			}

			rowDisplacement[info.rowNum] = next
			for _, c := range info.nonEmptyCol {
				entries[next+c] = m.entries[info.rowNum*m.colCount+c]
				bounds[next+c] = info.rowNum
			}
			resultBottom = next + m.colCount
			next++
			break
		}
	}

	return &RowDisplacementMatrix{
		EmptyValue:      emptyValue,
		Rows:            m.rowCount,
		Cols:            m.colCount,
		Entries:         entries[:resultBottom],
		Bounds:          bounds[:resultBottom],
		RowDisplacement: rowDisplacement,
	}
}

package parser

// Fixed layout of the sensor logger export. Column 0 carries a row label.
const (
	TimeColumn            = 1
	PressureColumnBase    = 1 // pressure channel n lives in column n+1
	TemperatureColumnBase = 3 // temperature channel n lives in column n+3

	// UnitsRow is the first row of the data region; it holds units, not
	// samples.
	UnitsRow = 0
)

// RawTable is one CSV file as read from disk. Header is the column header
// line; Rows is the data region, including the units row at index 0.
type RawTable struct {
	Source string
	Header []string
	Rows   [][]string
	Lines  []int // 1-based source line for every entry of Rows
}

// ColumnCount is the width of the header line.
func (t *RawTable) ColumnCount() int {
	if t == nil {
		return 0
	}
	return len(t.Header)
}

// RowCount is the number of data rows, units row included.
func (t *RawTable) RowCount() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

// Line returns the source line of data row i, or 0 when unknown.
func (t *RawTable) Line(i int) int {
	if t == nil || i < 0 || i >= len(t.Lines) {
		return 0
	}
	return t.Lines[i]
}

// Options controls how a file is decoded before it is split into cells.
type Options struct {
	// Encoding names the file's character set. Empty means UTF-8.
	Encoding string
	// PreambleLines is the number of lines dropped before the header line.
	PreambleLines int
	// Comma is the field separator; zero means ','.
	Comma rune
}

// DefaultOptions matches the logger export: CP949 text, no preamble.
func DefaultOptions() Options {
	return Options{Encoding: "cp949"}
}

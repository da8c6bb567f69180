// Package table reads comma-separated decision tables and writes ranked ones.
package table

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/MikeSquared-Agency/Topsis/internal/topsis"
)

const (
	ScoreColumn = "Topsis Score"
	RankColumn  = "Rank"
)

// ErrEmpty is returned when the input has no header row.
var ErrEmpty = errors.New("table: input is empty")

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Table is a header row followed by data records, all kept as raw strings so
// the output can reproduce the input cells verbatim.
type Table struct {
	Header  []string
	Records [][]string
}

// Read parses CSV input whose first row is the header. A leading UTF-8 BOM is
// dropped; every cell is kept exactly as written, surrounding spaces
// included. Rows of differing width are kept; the engine reports them.
func Read(r io.Reader) (*Table, error) {
	br := bufio.NewReader(r)
	if head, err := br.Peek(len(utf8BOM)); err == nil && bytes.Equal(head, utf8BOM) {
		_, _ = br.Discard(len(utf8BOM))
	}

	cr := csv.NewReader(br)
	cr.FieldsPerRecord = -1

	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}
	if len(rows) == 0 {
		return nil, ErrEmpty
	}
	return &Table{Header: rows[0], Records: rows[1:]}, nil
}

// ReadFile reads a CSV table from disk.
func ReadFile(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open table: %w", err)
	}
	defer f.Close()
	return Read(f)
}

// WriteRanked writes the input table with the score and rank columns appended.
// precision is the number of decimals for scores; -1 writes the shortest
// representation that round-trips.
func WriteRanked(w io.Writer, t *Table, res *topsis.RankedResult, precision int) error {
	if len(t.Records) != len(res.Rows) {
		return fmt.Errorf("table has %d records but result has %d rows", len(t.Records), len(res.Rows))
	}

	cw := csv.NewWriter(w)
	header := append(append([]string(nil), t.Header...), ScoreColumn, RankColumn)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i, rec := range t.Records {
		row := res.Rows[i]
		out := append(append([]string(nil), rec...), FormatScore(row.Score, precision), strconv.Itoa(row.Rank))
		if err := cw.Write(out); err != nil {
			return fmt.Errorf("write row %d: %w", i+1, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// Encode renders the ranked table into memory.
func Encode(t *Table, res *topsis.RankedResult, precision int) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteRanked(&buf, t, res, precision); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// FormatScore renders a score with a fixed number of decimals.
func FormatScore(v float64, precision int) string {
	if precision < 0 {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	return strconv.FormatFloat(v, 'f', precision, 64)
}

// Rank runs the engine over the table.
func (t *Table) Rank(e *topsis.Engine, weights, impacts string) (*topsis.RankedResult, error) {
	return e.Run(t.Header, t.Records, weights, impacts)
}

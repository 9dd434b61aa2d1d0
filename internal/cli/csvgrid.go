package cli

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// readGrid parses comma-separated float rows. Blank lines and lines starting
// with '#' are skipped. Shape and value checks are left to the grid package.
func readGrid(r io.Reader) ([][]float64, error) {
	cr := csv.NewReader(r)
	cr.Comment = '#'
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	out := make([][]float64, len(records))
	for i, rec := range records {
		out[i] = make([]float64, len(rec))
		for j, field := range rec {
			v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
			if err != nil {
				return nil, fmt.Errorf("read csv: line %d, field %d: %w", i+1, j+1, err)
			}
			out[i][j] = v
		}
	}

	return out, nil
}

// writeGrid writes rows in shortest round-trip float notation.
func writeGrid(w io.Writer, rows [][]float64) error {
	cw := csv.NewWriter(w)
	for _, row := range rows {
		rec := make([]string, len(row))
		for j, v := range row {
			rec[j] = strconv.FormatFloat(v, 'g', -1, 64)
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()

	return cw.Error()
}

// readGridFile reads path, or stdin for "" and "-".
func readGridFile(path string, stdin io.Reader) ([][]float64, error) {
	if path == "" || path == "-" {
		return readGrid(stdin)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return readGrid(f)
}

// writeGridFile writes path, or stdout for "" and "-".
func writeGridFile(path string, stdout io.Writer, rows [][]float64) error {
	if path == "" || path == "-" {
		return writeGrid(stdout, rows)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := writeGrid(f, rows); err != nil {
		f.Close()
		return err
	}

	return f.Close()
}

// Package csvfile reads labelled datasets from CSV files.
//
// A dataset file must carry a header row naming a "text" and a "label"
// column (any order, extra columns ignored). Rows are returned
// unvalidated; validation and label normalisation happen in the
// dataset ingestor.
package csvfile

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/verilabs/veritext/internal/core/domain"
)

// Read parses dataset rows from r.
func Read(r io.Reader) ([]domain.DatasetRow, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // tolerate ragged rows, they fail validation later

	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("%w: empty file", domain.ErrInvalidInput)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: reading header: %v", domain.ErrInvalidInput, err)
	}

	textCol, labelCol := -1, -1
	for i, name := range header {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "text":
			textCol = i
		case "label":
			labelCol = i
		}
	}
	if textCol < 0 || labelCol < 0 {
		return nil, fmt.Errorf("%w: file must contain 'text' and 'label' columns", domain.ErrInvalidInput)
	}

	var rows []domain.DatasetRow
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: reading row %d: %v", domain.ErrInvalidInput, len(rows)+1, err)
		}

		row := domain.DatasetRow{}
		if textCol < len(record) {
			row.Text = record[textCol]
		}
		if labelCol < len(record) {
			row.Label = record[labelCol]
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// ReadFile parses dataset rows from a CSV file on disk.
func ReadFile(path string) ([]domain.DatasetRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening dataset: %w", err)
	}
	defer f.Close()
	return Read(f)
}

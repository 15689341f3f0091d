package csvfile

import (
	"bytes"
	"encoding/csv"
	"strings"

	"github.com/nrandle/image-downloader/internal/entity"
)

// Parse reads a whole CSV and splits it into headers and data rows.
// The first row is the header row; ragged rows are tolerated.
func Parse(filename string, data []byte) (*entity.CSVPreparation, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, entity.ErrMalformedCSV
	}
	if len(records) == 0 || len(records[0]) == 0 {
		return nil, entity.ErrMalformedCSV
	}

	columns := records[0]
	// Strip a UTF-8 BOM that spreadsheet exports often prepend
	columns[0] = strings.TrimPrefix(columns[0], "\ufeff")

	if len(columns) == 1 && strings.TrimSpace(columns[0]) == "" {
		return nil, entity.ErrMalformedCSV
	}

	return &entity.CSVPreparation{
		Filename: filename,
		Columns:  columns,
		Records:  records[1:],
	}, nil
}

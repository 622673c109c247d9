package ingest

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/rowanfields/pricelens/internal/common"
)

// ReadCSV loads a CSV file and returns its header row and data records.
// Ragged rows are tolerated; short records read as blank cells downstream.
func ReadCSV(path string) (header []string, records [][]string, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	all, err := reader.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	if len(all) == 0 {
		return nil, nil, fmt.Errorf("%w: %s", common.ErrEmptyDataset, path)
	}

	return all[0], all[1:], nil
}

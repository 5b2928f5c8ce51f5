package format

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/schichtkit/planq/internal/query"
)

var _ Formatter = (*CSV)(nil)

type CSV struct{}

func NewCSV() *CSV {
	return &CSV{}
}

func (cf *CSV) Format(header query.Header, rows []query.Row, _ *Options) ([]byte, error) {
	data := make([][]string, 0, len(rows)+1)
	data = append(data, header)

	for _, row := range rows {
		csvRow := make([]string, len(row))
		for i, val := range row {
			csvRow[i] = val.String()
		}
		data = append(data, csvRow)
	}

	b := new(bytes.Buffer)
	w := csv.NewWriter(b)

	err := w.WriteAll(data)
	if err != nil {
		return nil, fmt.Errorf("w.WriteAll: %w", err)
	}

	return b.Bytes(), nil
}

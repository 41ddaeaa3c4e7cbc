package format

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
)

const rebrickableCSVSignature = "Part,Color,Quantity"

// RebrickableCSV parses the part list CSV export from Rebrickable.
type RebrickableCSV struct{}

func (a *RebrickableCSV) Name() string { return "rebrickable-csv" }

func (a *RebrickableCSV) Extension() string { return ".csv" }

func (a *RebrickableCSV) MatchSignature(prefix []byte) bool {
	return bytes.HasPrefix(prefix, []byte(rebrickableCSVSignature))
}

func (a *RebrickableCSV) Parse(path string) ([]RawRow, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}

	partCol, quantityCol := -1, -1
	for i, name := range header {
		switch name {
		case "Part":
			partCol = i
		case "Quantity":
			quantityCol = i
		}
	}
	if partCol < 0 || quantityCol < 0 {
		return nil, fmt.Errorf("csv header missing Part or Quantity column")
	}

	var rows []RawRow
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv row: %w", err)
		}
		if partCol >= len(record) || quantityCol >= len(record) {
			continue
		}
		quantity, err := strconv.ParseInt(record[quantityCol], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("parse quantity %q: %w", record[quantityCol], err)
		}
		rows = append(rows, RawRow{Identity: record[partCol], Quantity: quantity})
	}
	return rows, nil
}

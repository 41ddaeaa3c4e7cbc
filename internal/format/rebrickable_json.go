package format

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
)

const rebrickableJSONSignature = `{"count":`

// RebrickableJSON parses the part list JSON served by the Rebrickable API
// (and materialized by the set resolver).
type RebrickableJSON struct{}

type rebrickablePartList struct {
	Count   int `json:"count"`
	Results []struct {
		Quantity int64 `json:"quantity"`
		Part     struct {
			PartNum string `json:"part_num"`
		} `json:"part"`
	} `json:"results"`
}

func (a *RebrickableJSON) Name() string { return "rebrickable-json" }

func (a *RebrickableJSON) Extension() string { return ".json" }

func (a *RebrickableJSON) MatchSignature(prefix []byte) bool {
	return bytes.HasPrefix(prefix, []byte(rebrickableJSONSignature))
}

func (a *RebrickableJSON) Parse(path string) ([]RawRow, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read json: %w", err)
	}

	var list rebrickablePartList
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("decode json: %w", err)
	}

	rows := make([]RawRow, 0, len(list.Results))
	for _, result := range list.Results {
		rows = append(rows, RawRow{Identity: result.Part.PartNum, Quantity: result.Quantity})
	}
	return rows, nil
}

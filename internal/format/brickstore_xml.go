package format

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"os"
)

const brickStoreXMLSignature = "<BrickStoreXML>"

// BrickStoreXML parses BrickStore .bsx inventory files.
type BrickStoreXML struct{}

type brickStoreDocument struct {
	XMLName xml.Name `xml:"BrickStoreXML"`
	Items   []struct {
		ItemID string `xml:"ItemID"`
		Qty    int64  `xml:"Qty"`
	} `xml:"Inventory>Item"`
}

func (a *BrickStoreXML) Name() string { return "brickstore-xml" }

func (a *BrickStoreXML) Extension() string { return ".bsx" }

func (a *BrickStoreXML) MatchSignature(prefix []byte) bool {
	return bytes.HasPrefix(prefix, []byte(brickStoreXMLSignature))
}

func (a *BrickStoreXML) Parse(path string) ([]RawRow, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read bsx: %w", err)
	}

	var doc brickStoreDocument
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode bsx: %w", err)
	}

	rows := make([]RawRow, 0, len(doc.Items))
	for _, item := range doc.Items {
		rows = append(rows, RawRow{Identity: item.ItemID, Quantity: item.Qty})
	}
	return rows, nil
}

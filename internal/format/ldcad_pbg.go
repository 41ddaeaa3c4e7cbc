package format

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
)

const (
	ldcadPBGSignature = "[options]"
	ldcadItemsMarker  = "<items>"
)

// ldcadItemRE matches one part group entry: "3001.dat ... [color=4] [count=2]".
var ldcadItemRE = regexp.MustCompile(`^([^.]*)\.dat.*\[color=(\d+)\] \[count=(\d+)\]$`)

// LDCadPBG parses LDCad part bin group files. The inventory follows a
// "<items>" marker line; anything before it is editor options.
type LDCadPBG struct{}

func (a *LDCadPBG) Name() string { return "ldcad-pbg" }

func (a *LDCadPBG) Extension() string { return ".pbg" }

func (a *LDCadPBG) MatchSignature(prefix []byte) bool {
	return bytes.HasPrefix(prefix, []byte(ldcadPBGSignature))
}

func (a *LDCadPBG) Parse(path string) ([]RawRow, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open pbg: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	inItems := false
	var rows []RawRow
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if !inItems {
			if strings.HasPrefix(line, ldcadItemsMarker) {
				inItems = true
			}
			continue
		}
		match := ldcadItemRE.FindStringSubmatch(line)
		if match == nil {
			continue
		}
		quantity, err := strconv.ParseInt(match[3], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("parse count %q: %w", match[3], err)
		}
		rows = append(rows, RawRow{Identity: match[1], Quantity: quantity})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan pbg: %w", err)
	}
	return rows, nil
}

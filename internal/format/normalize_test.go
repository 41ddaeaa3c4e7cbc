package format_test

import (
	"reflect"
	"testing"

	"bricksort/internal/format"
)

func TestNormalizeSumsAndSorts(t *testing.T) {
	rows := []format.RawRow{
		{Identity: "3001", Quantity: 5},
		{Identity: "3002", Quantity: 2},
		{Identity: "3001", Quantity: 3},
	}

	got := format.Normalize(rows)
	want := []format.Record{
		{DesignID: 3001, Quantity: 8},
		{DesignID: 3002, Quantity: 2},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected records: %#v", got)
	}
}

func TestNormalizeCanonicalizesVariants(t *testing.T) {
	rows := []format.RawRow{
		{Identity: "3001pr0001", Quantity: 1},
		{Identity: "3001a", Quantity: 2},
		{Identity: "3001", Quantity: 4},
	}

	got := format.Normalize(rows)
	want := []format.Record{{DesignID: 3001, Quantity: 7}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected variants merged under 3001, got %#v", got)
	}
}

func TestNormalizeDropsNonNumericIdentities(t *testing.T) {
	rows := []format.RawRow{
		{Identity: "sticker-sheet", Quantity: 1},
		{Identity: "", Quantity: 3},
		{Identity: "3622", Quantity: 2},
	}

	got := format.Normalize(rows)
	want := []format.Record{{DesignID: 3622, Quantity: 2}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected non-numeric identities dropped, got %#v", got)
	}
}

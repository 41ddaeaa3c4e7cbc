package format_test

import (
	"context"
	"errors"
	"os"
	"reflect"
	"testing"

	"bricksort/internal/format"
	"bricksort/internal/logging"
	"bricksort/internal/services"
	"bricksort/internal/testsupport"
)

const rebrickableJSONSample = `{"count": 2, "results": [
  {"quantity": 4, "part": {"part_num": "3001"}},
  {"quantity": 2, "part": {"part_num": "3002b"}}
]}`

const rebrickableCSVSample = "Part,Color,Quantity\n3001,4,4\n3002b,1,2\n"

const brickStoreXMLSample = `<BrickStoreXML>
 <Inventory>
  <Item>
   <ItemID>3001</ItemID>
   <ItemTypeID>P</ItemTypeID>
   <Qty>4</Qty>
  </Item>
  <Item>
   <ItemID>3002b</ItemID>
   <ItemTypeID>P</ItemTypeID>
   <Qty>2</Qty>
  </Item>
 </Inventory>
</BrickStoreXML>`

const ldcadPBGSample = `[options]
caption=Sample bin
<items>
3001.dat [color=4] [count=4]
3002b.dat [color=1] [count=2]
`

func wantRecords() []format.Record {
	return []format.Record{
		{DesignID: 3001, Quantity: 4},
		{DesignID: 3002, Quantity: 2},
	}
}

func TestLoadDispatchesBySignature(t *testing.T) {
	cases := []struct {
		name        string
		file        string
		contents    string
		wantAdapter string
	}{
		{"rebrickable json", "inventory.json", rebrickableJSONSample, "rebrickable-json"},
		{"rebrickable csv", "inventory.csv", rebrickableCSVSample, "rebrickable-csv"},
		{"brickstore xml", "inventory.bsx", brickStoreXMLSample, "brickstore-xml"},
		{"ldcad pbg", "inventory.pbg", ldcadPBGSample, "ldcad-pbg"},
	}

	registry := format.NewRegistry(nil, logging.NewNop())
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := testsupport.WriteInventory(t, t.TempDir(), tc.file, tc.contents)
			records, adapter, err := registry.Load(context.Background(), "", path)
			if err != nil {
				t.Fatalf("Load failed: %v", err)
			}
			if adapter != tc.wantAdapter {
				t.Fatalf("expected adapter %s, got %s", tc.wantAdapter, adapter)
			}
			if !reflect.DeepEqual(records, wantRecords()) {
				t.Fatalf("unexpected records: %#v", records)
			}
		})
	}
}

func TestLoadUnrecognizedFormat(t *testing.T) {
	registry := format.NewRegistry(nil, logging.NewNop())
	path := testsupport.WriteInventory(t, t.TempDir(), "notes.txt", "not an inventory\n")

	_, _, err := registry.Load(context.Background(), "", path)
	if !errors.Is(err, services.ErrFormatUnrecognized) {
		t.Fatalf("expected ErrFormatUnrecognized, got %v", err)
	}
}

func TestLoadEmptyFile(t *testing.T) {
	registry := format.NewRegistry(nil, logging.NewNop())
	path := testsupport.WriteInventory(t, t.TempDir(), "empty.csv", "")

	_, _, err := registry.Load(context.Background(), "", path)
	if !errors.Is(err, services.ErrFormatUnrecognized) {
		t.Fatalf("expected ErrFormatUnrecognized for empty file, got %v", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	registry := format.NewRegistry(nil, logging.NewNop())

	_, _, err := registry.Load(context.Background(), "", "/nonexistent/inventory.csv")
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoadSignatureMatchWithBrokenBodyFallsThrough(t *testing.T) {
	registry := format.NewRegistry(nil, logging.NewNop())
	path := testsupport.WriteInventory(t, t.TempDir(), "broken.json", `{"count": truncated`)

	_, _, err := registry.Load(context.Background(), "", path)
	if !errors.Is(err, services.ErrFormatUnrecognized) {
		t.Fatalf("expected ErrFormatUnrecognized after parse failure, got %v", err)
	}
}

type stubResolver struct {
	contents string
	err      error
	calls    int
}

func (r *stubResolver) ResolveSet(ctx context.Context, setNumber, destPath string) (bool, error) {
	r.calls++
	if r.err != nil {
		return false, r.err
	}
	if err := os.WriteFile(destPath, []byte(r.contents), 0o644); err != nil {
		return false, err
	}
	return true, nil
}

func TestLoadResolvesSetNumber(t *testing.T) {
	resolver := &stubResolver{contents: rebrickableJSONSample}
	registry := format.NewRegistry(resolver, logging.NewNop())
	path := t.TempDir() + "/set-42.json"

	records, adapter, err := registry.Load(context.Background(), "8062-1", path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if resolver.calls != 1 {
		t.Fatalf("expected exactly one resolver call, got %d", resolver.calls)
	}
	if adapter != "rebrickable-json" {
		t.Fatalf("expected rebrickable-json adapter, got %s", adapter)
	}
	if !reflect.DeepEqual(records, wantRecords()) {
		t.Fatalf("unexpected records: %#v", records)
	}
}

func TestLoadSetWithoutResolver(t *testing.T) {
	registry := format.NewRegistry(nil, logging.NewNop())

	_, _, err := registry.Load(context.Background(), "8062-1", t.TempDir()+"/set.json")
	if !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("expected ErrConfiguration, got %v", err)
	}
}

func TestLoadPropagatesResolverError(t *testing.T) {
	marker := services.Wrap(services.ErrRemoteLookup, "rebrickable", "set-parts", "status 404", nil)
	registry := format.NewRegistry(&stubResolver{err: marker}, logging.NewNop())

	_, _, err := registry.Load(context.Background(), "9999-1", t.TempDir()+"/set.json")
	if !errors.Is(err, services.ErrRemoteLookup) {
		t.Fatalf("expected ErrRemoteLookup, got %v", err)
	}
}

func TestExtensions(t *testing.T) {
	registry := format.NewRegistry(nil, logging.NewNop())
	if got := registry.Extensions(); got != ".json,.csv,.bsx,.pbg" {
		t.Fatalf("unexpected extensions: %s", got)
	}
}

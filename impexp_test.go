package supplycurve

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func assertBlocks(t *testing.T, got []BlockSupply, want ...BlockSupply) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %d blocks %v, want %d", len(got), got, len(want))
	}
	for i := range want {
		if got[i].Block != want[i].Block || !got[i].Total.Equal(want[i].Total) {
			t.Errorf("block %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestDecodeBlockSupplyCSV(t *testing.T) {
	in := "block,total_supply\n0,50\n210000, 10500000.5\n"
	got, err := DecodeBlockSupplyCSV(strings.NewReader(in))
	if err != nil {
		t.Fatalf("DecodeBlockSupplyCSV() unexpected error: %v", err)
	}
	assertBlocks(t, got, BlockSupply{0, Q(50)}, BlockSupply{210000, Q(10500000.5)})

	// without block column, blocks are numbered
	got, err = DecodeBlockSupplyCSV(strings.NewReader("total_supply\n1\n2\n"))
	if err != nil {
		t.Fatalf("DecodeBlockSupplyCSV() unexpected error: %v", err)
	}
	assertBlocks(t, got, BlockSupply{0, Q(1)}, BlockSupply{1, Q(2)})

	for _, bad := range []string{"block\n1\n", "block,total_supply\nx,1\n", "total_supply\nabc\n"} {
		if _, err := DecodeBlockSupplyCSV(strings.NewReader(bad)); err == nil {
			t.Errorf("DecodeBlockSupplyCSV(%q) should fail", bad)
		}
	}
}

func TestDecodeBlockSupplyJSONL(t *testing.T) {
	in := `{"block": 0, "total_supply": 50}

{"block": 1, "total_supply": "100.25"}
{"total_supply": 150}
`
	got, err := DecodeBlockSupplyJSONL(strings.NewReader(in))
	if err != nil {
		t.Fatalf("DecodeBlockSupplyJSONL() unexpected error: %v", err)
	}
	assertBlocks(t, got, BlockSupply{0, Q(50)}, BlockSupply{1, Q(100.25)}, BlockSupply{2, Q(150)})
}

func TestDecodeBlockSupplyJSON(t *testing.T) {
	tests := []struct {
		name string
		json string
		path string
	}{
		{"pairs", `{"data": {"blocks": [[0, 50], [1, 100]]}}`, "$.data.blocks[*]"},
		{"objects", `{"blocks": [{"block": 0, "total_supply": 50}, {"block": 1, "total_supply": "100"}]}`, "$.blocks[*]"},
		{"supply alias", `[{"block": 0, "supply": 50}, {"block": 1, "supply": 100}]`, "$[*]"},
		{"bare values", `{"supply": [50, 100]}`, "$.supply[*]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeBlockSupplyJSON(strings.NewReader(tt.json), tt.path)
			if err != nil {
				t.Fatalf("DecodeBlockSupplyJSON() unexpected error: %v", err)
			}
			assertBlocks(t, got, BlockSupply{0, Q(50)}, BlockSupply{1, Q(100)})
		})
	}

	if _, err := DecodeBlockSupplyJSON(strings.NewReader(`{"supply": 3}`), "$.supply"); err == nil {
		t.Errorf("DecodeBlockSupplyJSON() on a scalar should fail")
	}
}

func TestReadBlockSupply(t *testing.T) {
	dir := t.TempDir()
	name := filepath.Join(dir, "btc.csv")
	if err := os.WriteFile(name, []byte("block,total_supply\n0,50\n"), 0644); err != nil {
		t.Fatal(err)
	}
	got, err := ReadBlockSupply(name, "")
	if err != nil {
		t.Fatalf("ReadBlockSupply() unexpected error: %v", err)
	}
	assertBlocks(t, got, BlockSupply{0, Q(50)})

	if _, err := ReadBlockSupply(filepath.Join(dir, "btc.xls"), ""); err == nil {
		t.Errorf("ReadBlockSupply() on a missing file should fail")
	}
}

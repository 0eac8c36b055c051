package supplycurve

import (
	"bufio"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/PaesslerAG/jsonpath"
)

// this file contains functions to read block issuance schedules, as published
// by explorers or computed in spreadsheets.

// DecodeBlockSupplyCSV reads a block issuance schedule from a CSV document.
//
// The first line is a header, it must contain a 'total_supply' column and may
// contain a 'block' column. Without 'block' column, blocks are numbered from 0.
func DecodeBlockSupplyCSV(r io.Reader) ([]BlockSupply, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	header, err := cr.Read()
	if err == io.EOF {
		return nil, ErrEmptySeries
	}
	if err != nil {
		return nil, fmt.Errorf("cannot read header: %w", err)
	}
	blockCol, totalCol := -1, -1
	for i, name := range header {
		switch strings.TrimSpace(name) {
		case "block":
			blockCol = i
		case "total_supply":
			totalCol = i
		}
	}
	if totalCol < 0 {
		return nil, fmt.Errorf("missing 'total_supply' column in header %q", header)
	}

	var res []BlockSupply
	for line := 2; ; line++ {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		b := BlockSupply{Block: int64(len(res))}
		if blockCol >= 0 {
			b.Block, err = strconv.ParseInt(record[blockCol], 10, 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: invalid block %q: %w", line, record[blockCol], err)
			}
		}
		if b.Total, err = ParseQuantity(record[totalCol]); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		res = append(res, b)
	}
	return res, nil
}

// DecodeBlockSupplyJSONL reads a block issuance schedule, one json object per line:
//
//	{"block": 210000, "total_supply": 1050000000}
func DecodeBlockSupplyJSONL(r io.Reader) ([]BlockSupply, error) {
	type jblock struct {
		Block *int64   `json:"block"`
		Total Quantity `json:"total_supply"`
	}

	var res []BlockSupply
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(strings.TrimSpace(string(line))) == 0 {
			continue
		}
		var jb jblock
		if err := json.Unmarshal(line, &jb); err != nil {
			return nil, fmt.Errorf("cannot parse line %q: %w", string(line), err)
		}
		b := BlockSupply{Block: int64(len(res)), Total: jb.Total}
		if jb.Block != nil {
			b.Block = *jb.Block
		}
		res = append(res, b)
	}
	return res, scanner.Err()
}

// DecodeBlockSupplyJSON reads a block issuance schedule from any json document.
//
// path is a JSONPath expression (e.g. "$.data.blocks[*]") selecting a list
// whose items are either [block, supply] pairs or objects with 'block' and
// 'total_supply' properties. Supplies can be numbers or decimal strings.
func DecodeBlockSupplyJSON(r io.Reader, path string) ([]BlockSupply, error) {
	var jobj any
	if err := json.NewDecoder(r).Decode(&jobj); err != nil {
		return nil, fmt.Errorf("cannot parse json: %w", err)
	}
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return nil, fmt.Errorf("error evaluating %q: %w", path, err)
	}
	jlist, ok := jval.([]any)
	if !ok {
		return nil, fmt.Errorf("%q does not select a list, got %T", path, jval)
	}

	res := make([]BlockSupply, 0, len(jlist))
	for i, item := range jlist {
		b := BlockSupply{Block: int64(i)}
		var block, total any
		switch v := item.(type) {
		case []any:
			if len(v) != 2 {
				return nil, fmt.Errorf("item %d: want a [block, supply] pair, got %v", i, v)
			}
			block, total = v[0], v[1]
		case map[string]any:
			block = v["block"]
			total = v["total_supply"]
			if total == nil {
				total = v["supply"]
			}
		default:
			total = v
		}
		if block != nil {
			n, ok := block.(float64)
			if !ok {
				return nil, fmt.Errorf("item %d: block %v is not a number", i, block)
			}
			b.Block = int64(n)
		}
		if b.Total, err = jsonQuantity(total); err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
		res = append(res, b)
	}
	return res, nil
}

func jsonQuantity(v any) (Quantity, error) {
	switch v := v.(type) {
	case float64:
		return Q(v), nil
	case string:
		return ParseQuantity(v)
	case nil:
		return Quantity{}, errors.New("missing supply")
	default:
		return Quantity{}, fmt.Errorf("supply %v is not a number", v)
	}
}

// ReadBlockSupply reads a block issuance schedule from a file, the format
// depends on its extension: .csv, .jsonl or .json. path is only used for json
// files, see [DecodeBlockSupplyJSON].
func ReadBlockSupply(name, path string) ([]BlockSupply, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var res []BlockSupply
	switch ext := strings.ToLower(filepath.Ext(name)); ext {
	case ".csv":
		res, err = DecodeBlockSupplyCSV(f)
	case ".jsonl":
		res, err = DecodeBlockSupplyJSONL(f)
	case ".json":
		if path == "" {
			path = "$[*]"
		}
		res, err = DecodeBlockSupplyJSON(f, path)
	default:
		return nil, fmt.Errorf("unsupported supply file format %q", ext)
	}
	if err != nil {
		return nil, fmt.Errorf("reading %q: %w", name, err)
	}
	return res, nil
}

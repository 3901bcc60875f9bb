package loader

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Record documents hold tables as arrays of objects:
//
//   - a top-level array of objects is one unnamed sheet
//   - a top-level object gives one named sheet per member whose value is an
//     array of objects, in document order (TOML: sorted by key)
//   - a top-level object without such members is one key/value sheet
//
// Headers are the union of object keys in first-seen order. Nested values
// are rendered as compact JSON.

// object is a mapping that remembers key order.
type object struct {
	keys   []string
	values map[string]any
}

func newObject() *object { return &object{values: map[string]any{}} }

func (o *object) set(k string, v any) {
	if _, ok := o.values[k]; !ok {
		o.keys = append(o.keys, k)
	}
	o.values[k] = v
}

func loadYAMLRecords(path string) ([]Sheet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return parseYAMLRecords(data)
}

func parseYAMLRecords(data []byte) ([]Sheet, error) {
	var doc yaml.Node
	if err := yaml.NewDecoder(bytes.NewReader(data)).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errNoSheets
		}
		return nil, fmt.Errorf("parse document: %w", err)
	}
	return sheetsFromValue(fromNode(&doc)), nil
}

// fromNode converts a YAML node tree into *object, []any and string scalars.
func fromNode(n *yaml.Node) any {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) > 0 {
			return fromNode(n.Content[0])
		}
		return nil
	case yaml.AliasNode:
		return fromNode(n.Alias)
	case yaml.MappingNode:
		obj := newObject()
		for i := 0; i+1 < len(n.Content); i += 2 {
			obj.set(n.Content[i].Value, fromNode(n.Content[i+1]))
		}
		return obj
	case yaml.SequenceNode:
		items := make([]any, 0, len(n.Content))
		for _, c := range n.Content {
			items = append(items, fromNode(c))
		}
		return items
	default:
		if n.Tag == "!!null" {
			return nil
		}
		return n.Value
	}
}

func loadTOMLRecords(path string) ([]Sheet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return parseTOMLRecords(data)
}

func parseTOMLRecords(data []byte) ([]Sheet, error) {
	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}
	return sheetsFromValue(fromPlain(raw)), nil
}

// fromPlain converts decoded maps into *object with sorted keys.
func fromPlain(v any) any {
	switch t := v.(type) {
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		obj := newObject()
		for _, k := range keys {
			obj.set(k, fromPlain(t[k]))
		}
		return obj
	case []any:
		items := make([]any, len(t))
		for i, item := range t {
			items[i] = fromPlain(item)
		}
		return items
	case []map[string]any:
		items := make([]any, len(t))
		for i, item := range t {
			items[i] = fromPlain(item)
		}
		return items
	default:
		return v
	}
}

func sheetsFromValue(root any) []Sheet {
	switch t := root.(type) {
	case []any:
		if sheet, ok := recordSheet("", t); ok {
			return []Sheet{sheet}
		}
	case *object:
		var sheets []Sheet
		for _, k := range t.keys {
			items, ok := t.values[k].([]any)
			if !ok {
				continue
			}
			if sheet, ok := recordSheet(k, items); ok {
				sheets = append(sheets, sheet)
			}
		}
		if len(sheets) > 0 {
			return sheets
		}
		kv := Sheet{Headers: []string{"key", "value"}}
		for _, k := range t.keys {
			kv.Rows = append(kv.Rows, []string{k, formatCell(t.values[k])})
		}
		if len(kv.Rows) > 0 {
			return []Sheet{kv}
		}
	}
	return nil
}

// recordSheet builds a sheet from an array whose elements are all objects.
func recordSheet(name string, items []any) (Sheet, bool) {
	if len(items) == 0 {
		return Sheet{}, false
	}
	var headers []string
	seen := map[string]bool{}
	objs := make([]*object, 0, len(items))
	for _, item := range items {
		obj, ok := item.(*object)
		if !ok {
			return Sheet{}, false
		}
		for _, k := range obj.keys {
			if !seen[k] {
				seen[k] = true
				headers = append(headers, k)
			}
		}
		objs = append(objs, obj)
	}
	if len(headers) == 0 {
		return Sheet{}, false
	}
	sheet := Sheet{Name: name, Headers: headers, Rows: make([][]string, 0, len(objs))}
	for _, obj := range objs {
		row := make([]string, len(headers))
		for i, h := range headers {
			if v, ok := obj.values[h]; ok {
				row[i] = formatCell(v)
			}
		}
		sheet.Rows = append(sheet.Rows, row)
	}
	return sheet, true
}

func formatCell(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case *object, []any:
		b, err := json.Marshal(toPlain(t))
		if err != nil {
			return fmt.Sprint(t)
		}
		return string(b)
	default:
		return fmt.Sprint(t)
	}
}

func toPlain(v any) any {
	switch t := v.(type) {
	case *object:
		m := make(map[string]any, len(t.keys))
		for _, k := range t.keys {
			m[k] = toPlain(t.values[k])
		}
		return m
	case []any:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = toPlain(item)
		}
		return out
	default:
		return v
	}
}

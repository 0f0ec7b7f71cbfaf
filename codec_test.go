package marquee

import (
	"errors"
	"strings"
	"testing"
)

type codecTestItem struct {
	Name  string `json:"name" yaml:"name"`
	Value int    `json:"value" yaml:"value"`
}

func TestJSONCodec_Unmarshal(t *testing.T) {
	var item codecTestItem
	if err := (JSONCodec{}).Unmarshal([]byte(`{"name": "test", "value": 42}`), &item); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if item.Name != "test" || item.Value != 42 {
		t.Errorf("unexpected result: %+v", item)
	}
}

func TestJSONCodec_UnmarshalInvalid(t *testing.T) {
	var item codecTestItem
	if err := (JSONCodec{}).Unmarshal([]byte(`{not valid json}`), &item); err == nil {
		t.Error("expected error for invalid JSON")
	}
}

func TestYAMLCodec_UnmarshalJSON(t *testing.T) {
	// YAML codec should also accept JSON (YAML is a superset of JSON)
	var item codecTestItem
	if err := (YAMLCodec{}).Unmarshal([]byte(`{"name": "json-compat", "value": 99}`), &item); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if item.Name != "json-compat" || item.Value != 99 {
		t.Errorf("unexpected result: %+v", item)
	}
}

func TestCodec_ContentType(t *testing.T) {
	if ct := (JSONCodec{}).ContentType(); ct != "application/json" {
		t.Errorf("expected 'application/json', got %q", ct)
	}
	if ct := (YAMLCodec{}).ContentType(); ct != "application/x-yaml" {
		t.Errorf("expected 'application/x-yaml', got %q", ct)
	}
}

func TestDecodeCollection(t *testing.T) {
	tests := []struct {
		name  string
		codec Codec
		raw   string
		want  int
	}{
		{"json list", JSONCodec{}, `[{"name": "a"}, {"name": "b"}]`, 2},
		{"json envelope", JSONCodec{}, `{"results": [{"name": "a"}]}`, 1},
		{"json empty list", JSONCodec{}, `[]`, 0},
		{"yaml list", YAMLCodec{}, "- name: a\n- name: b\n- name: c\n", 3},
		{"yaml envelope", YAMLCodec{}, "results:\n  - name: a\n", 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items, err := decodeCollection[codecTestItem](tt.codec, []byte(tt.raw))
			if err != nil {
				t.Fatalf("decodeCollection() error = %v", err)
			}
			if items == nil {
				t.Fatal("expected non-nil items")
			}
			if len(items) != tt.want {
				t.Errorf("expected %d items, got %d", tt.want, len(items))
			}
		})
	}
}

func TestDecodeCollection_Errors(t *testing.T) {
	if _, err := decodeCollection[codecTestItem](JSONCodec{}, []byte("  \n")); !errors.Is(err, errEmptyPayload) {
		t.Errorf("expected errEmptyPayload, got %v", err)
	}
	if _, err := decodeCollection[codecTestItem](JSONCodec{}, []byte(`{"page": 2}`)); !errors.Is(err, errMissingResults) {
		t.Errorf("expected errMissingResults, got %v", err)
	}
	if _, err := decodeCollection[codecTestItem](JSONCodec{}, []byte(`[{"name": 1}]`)); err == nil {
		t.Error("expected error for mistyped field")
	}
}

func TestDecodeCollection_EnvelopeError(t *testing.T) {
	_, err := decodeCollection[codecTestItem](JSONCodec{}, []byte(`{"results": [{"name": "a", "value": "x"}]}`))
	if err == nil {
		t.Fatal("expected error for mistyped field in envelope")
	}
	if strings.Contains(err.Error(), "[]marquee.codecTestItem") {
		t.Errorf("expected the envelope error, got the bare list error: %v", err)
	}
	if !strings.Contains(err.Error(), "value") {
		t.Errorf("expected error to name the offending field, got %v", err)
	}
}

func TestDecodeCollection_NumericIDs(t *testing.T) {
	raw := `{"page": 1, "results": [
		{"id": 693134, "title": "Dune: Part Two", "backdrop_path": "/xOMo8BRK7PfcJv9JCnx7s5hj0PX.jpg", "vote_average": 8.2},
		{"id": "tt0816692", "title": "Interstellar"}
	]}`

	items, err := decodeCollection[Item](JSONCodec{}, []byte(raw))
	if err != nil {
		t.Fatalf("decodeCollection() error = %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	if items[0].ID != "693134" || items[1].ID != "tt0816692" {
		t.Errorf("unexpected ids: %q, %q", items[0].ID, items[1].ID)
	}
	if items[0].Rating == nil || *items[0].Rating != 8.2 {
		t.Errorf("unexpected rating: %v", items[0].Rating)
	}
}

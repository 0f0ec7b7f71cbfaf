package marquee

import (
	"context"
	"encoding/json"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestID_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want ID
	}{
		{"string", `"tt0816692"`, "tt0816692"},
		{"integer", `693134`, "693134"},
		{"large integer", `9007199254740993`, "9007199254740993"},
		{"null", `null`, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var id ID
			if err := json.Unmarshal([]byte(tt.raw), &id); err != nil {
				t.Fatalf("Unmarshal() error = %v", err)
			}
			if id != tt.want {
				t.Errorf("expected %q, got %q", tt.want, id)
			}
		})
	}
}

func TestID_UnmarshalJSON_Invalid(t *testing.T) {
	var id ID
	if err := json.Unmarshal([]byte(`{"value": 1}`), &id); err == nil {
		t.Error("expected error for object id")
	}
}

func TestID_UnmarshalYAML(t *testing.T) {
	var item Item
	if err := yaml.Unmarshal([]byte("id: 693134\ntitle: Dune\n"), &item); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if item.ID != "693134" {
		t.Errorf("expected id 693134, got %q", item.ID)
	}

	if err := yaml.Unmarshal([]byte("id: [1, 2]\ntitle: Dune\n"), &item); err == nil {
		t.Error("expected error for sequence id")
	}
}

func TestLoader_NumericIDEnvelope(t *testing.T) {
	payload := `{"page": 1, "results": [
		{"id": 693134, "title": "Dune: Part Two", "backdrop_path": "/a.jpg", "vote_average": 8.2},
		{"id": 1011985, "title": "Kung Fu Panda 4", "backdrop_path": "/b.jpg", "vote_average": 7.1}
	], "total_pages": 1}`

	l := NewLoader[Item](StaticFetcher(payload), nil).SyncMode()
	l.Activate(context.Background())

	state := l.State()
	if state.Status != StatusSuccess {
		t.Fatalf("expected success, got %v (%v)", state.Status, state.Err)
	}
	if len(state.Items) != 2 || state.Items[0].Identity() != "693134" {
		t.Errorf("unexpected items: %+v", state.Items)
	}
}

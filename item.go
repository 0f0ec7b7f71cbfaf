package marquee

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Identifiable is implemented by payload types that expose a stable
// identifier. Showcase passes it to the Navigator on selection.
type Identifiable interface {
	Identity() string
}

// Item is a featured entry in a rotating collection. Fields beyond ID are
// passed through to the rendering layer untouched.
type Item struct {
	ID            ID       `json:"id" yaml:"id" validate:"required"`
	Title         string   `json:"title" yaml:"title" validate:"required"`
	BackdropImage string   `json:"backdrop_path" yaml:"backdrop_path"`
	PosterImage   string   `json:"poster_path,omitempty" yaml:"poster_path,omitempty"`
	ReleaseDate   string   `json:"release_date,omitempty" yaml:"release_date,omitempty"`
	Rating        *float64 `json:"vote_average,omitempty" yaml:"vote_average,omitempty" validate:"omitempty,min=0,max=10"`
	Overview      string   `json:"overview,omitempty" yaml:"overview,omitempty"`
}

// Identity implements Identifiable.
func (i Item) Identity() string {
	return string(i.ID)
}

// ID identifies an Item. Sources send it either as a string or as a
// number; both decode to the same textual form.
type ID string

// UnmarshalJSON accepts a JSON string or number.
func (id *ID) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("id must be a string or a number: %s", data)
	}
	*id = ID(n.String())
	return nil
}

// UnmarshalYAML accepts any scalar.
func (id *ID) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("id must be a scalar at line %d", node.Line)
	}
	if node.ShortTag() == "!!null" {
		*id = ""
		return nil
	}
	*id = ID(node.Value)
	return nil
}

// Collection is the envelope many remote sources wrap their items in.
// Codecs accept either a bare array or this envelope.
type Collection[T any] struct {
	Results []T `json:"results" yaml:"results"`
}

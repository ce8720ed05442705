package dataset

import (
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	apperrors "github.com/matzehuels/stackbar/pkg/errors"
)

// Key selects the category field and the stacked metric fields of a Record.
type Key struct {
	Dimension string  `json:"dimension" yaml:"dimension" toml:"dimension"`
	Metrics   Metrics `json:"metric" yaml:"metric" toml:"metric"`
}

// ParseKey builds a Key from a dimension and a comma-separated metric list.
func ParseKey(dimension, metrics string) (Key, error) {
	var ms Metrics
	for _, m := range strings.Split(metrics, ",") {
		if m = strings.TrimSpace(m); m != "" {
			ms = append(ms, m)
		}
	}
	k := Key{Dimension: strings.TrimSpace(dimension), Metrics: ms}
	return k, k.Validate()
}

// Validate checks the dimension and metric field names.
func (k Key) Validate() error {
	return apperrors.ValidateKey(k.Dimension, k.Metrics)
}

// Stacked reports whether the key stacks more than one metric.
func (k Key) Stacked() bool {
	return len(k.Metrics) > 1
}

func (k Key) String() string {
	return fmt.Sprintf("%s: %s", k.Dimension, strings.Join(k.Metrics, ","))
}

// Metrics is the ordered list of stacked metric fields.
// It decodes from either a single string or a list of strings.
type Metrics []string

// UnmarshalJSON accepts "a" as well as ["a", "b"].
func (m *Metrics) UnmarshalJSON(data []byte) error {
	var one string
	if err := json.Unmarshal(data, &one); err == nil {
		*m = Metrics{one}
		return nil
	}
	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return fmt.Errorf("metric must be a string or a list of strings: %w", err)
	}
	*m = many
	return nil
}

// UnmarshalYAML accepts a scalar as well as a sequence.
func (m *Metrics) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		*m = Metrics{node.Value}
		return nil
	case yaml.SequenceNode:
		var many []string
		if err := node.Decode(&many); err != nil {
			return err
		}
		*m = many
		return nil
	default:
		return fmt.Errorf("line %d: metric must be a string or a list of strings", node.Line)
	}
}

// UnmarshalTOML implements toml.Unmarshaler.
func (m *Metrics) UnmarshalTOML(v any) error {
	switch x := v.(type) {
	case string:
		*m = Metrics{x}
	case []any:
		out := make(Metrics, 0, len(x))
		for _, e := range x {
			s, ok := e.(string)
			if !ok {
				return fmt.Errorf("metric list entries must be strings, got %T", e)
			}
			out = append(out, s)
		}
		*m = out
	default:
		return fmt.Errorf("metric must be a string or a list of strings, got %T", v)
	}
	return nil
}

package dataset

import (
	"encoding/json"
	"reflect"
	"testing"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

func TestKeyDecodeJSON(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Metrics
	}{
		{"single metric", `{"dimension":"month","metric":"a"}`, Metrics{"a"}},
		{"metric list", `{"dimension":"month","metric":["a","b"]}`, Metrics{"a", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var k Key
			if err := json.Unmarshal([]byte(tt.input), &k); err != nil {
				t.Fatalf("Unmarshal: %v", err)
			}
			if k.Dimension != "month" || !reflect.DeepEqual(k.Metrics, tt.want) {
				t.Errorf("got %+v, want month/%v", k, tt.want)
			}
		})
	}

	var k Key
	if err := json.Unmarshal([]byte(`{"dimension":"month","metric":3}`), &k); err == nil {
		t.Error("numeric metric should fail")
	}
}

func TestKeyDecodeYAML(t *testing.T) {
	var single, list Key
	if err := yaml.Unmarshal([]byte("dimension: month\nmetric: a\n"), &single); err != nil {
		t.Fatalf("Unmarshal single: %v", err)
	}
	if err := yaml.Unmarshal([]byte("dimension: month\nmetric: [a, b]\n"), &list); err != nil {
		t.Fatalf("Unmarshal list: %v", err)
	}
	if !reflect.DeepEqual(single.Metrics, Metrics{"a"}) {
		t.Errorf("single = %v", single.Metrics)
	}
	if !reflect.DeepEqual(list.Metrics, Metrics{"a", "b"}) {
		t.Errorf("list = %v", list.Metrics)
	}

	var bad Key
	if err := yaml.Unmarshal([]byte("dimension: month\nmetric: {x: 1}\n"), &bad); err == nil {
		t.Error("mapping metric should fail")
	}
}

func TestKeyDecodeTOML(t *testing.T) {
	var single, list Key
	if _, err := toml.Decode("dimension = \"month\"\nmetric = \"a\"\n", &single); err != nil {
		t.Fatalf("Decode single: %v", err)
	}
	if _, err := toml.Decode("dimension = \"month\"\nmetric = [\"a\", \"b\"]\n", &list); err != nil {
		t.Fatalf("Decode list: %v", err)
	}
	if !reflect.DeepEqual(single.Metrics, Metrics{"a"}) {
		t.Errorf("single = %v", single.Metrics)
	}
	if !reflect.DeepEqual(list.Metrics, Metrics{"a", "b"}) {
		t.Errorf("list = %v", list.Metrics)
	}
}

func TestParseKey(t *testing.T) {
	k, err := ParseKey("month", "a, b,,c")
	if err != nil {
		t.Fatalf("ParseKey: %v", err)
	}
	if !reflect.DeepEqual(k.Metrics, Metrics{"a", "b", "c"}) {
		t.Errorf("Metrics = %v", k.Metrics)
	}
	if !k.Stacked() {
		t.Error("three metrics should be stacked")
	}

	if _, err := ParseKey("month", ""); err == nil {
		t.Error("empty metric list should fail")
	}
	if _, err := ParseKey("", "a"); err == nil {
		t.Error("empty dimension should fail")
	}
}

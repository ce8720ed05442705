package sink

import (
	"encoding/json"
	"errors"
	"reflect"
	"testing"

	"github.com/matzehuels/stackbar/pkg/dataset"
	"github.com/matzehuels/stackbar/pkg/render/bar"
)

func TestRenderJSONRoundTrip(t *testing.T) {
	l := monthLayout()
	data, err := RenderJSON(l)
	if err != nil {
		t.Fatalf("RenderJSON: %v", err)
	}

	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatal(err)
	}
	if raw["state"] != "READY" {
		t.Errorf("state = %v, want READY", raw["state"])
	}
	key := raw["key"].(map[string]any)
	if key["dimension"] != "month" {
		t.Errorf("key = %v", key)
	}

	back, err := ParseJSON(data)
	if err != nil {
		t.Fatalf("ParseJSON: %v", err)
	}
	if !reflect.DeepEqual(back, l) {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", back, l)
	}
	if string(RenderSVG(back)) != string(RenderSVG(l)) {
		t.Error("re-rendered SVG differs from the original")
	}
}

func TestRenderJSONNonFinite(t *testing.T) {
	records := []dataset.Record{{"month": "Jan", "a": "oops", "b": 1}}
	l := bar.New(nil, records, monthKey).Layout()
	if _, err := RenderJSON(l); !errors.Is(err, ErrNonFinite) {
		t.Errorf("err = %v, want ErrNonFinite", err)
	}
}

func TestParseJSONInvalid(t *testing.T) {
	if _, err := ParseJSON([]byte("{")); err == nil {
		t.Error("expected error")
	}
}

package sink

import (
	"encoding/json"
	"reflect"
	"testing"

	"github.com/matzehuels/treeviz/pkg/render"
)

func TestRenderJSON(t *testing.T) {
	s := abcScene()
	data, err := RenderJSON(s)
	if err != nil {
		t.Fatalf("RenderJSON: %v", err)
	}

	var got render.Scene
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !reflect.DeepEqual(got, s) {
		t.Error("scene changed across JSON encoding")
	}
}

func TestRenderJSONEmpty(t *testing.T) {
	data, err := RenderJSON(render.EmptyScene())
	if err != nil {
		t.Fatal(err)
	}
	var got render.Scene
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatal(err)
	}
	if !got.Empty || got.Message != render.EmptyMessage {
		t.Errorf("got %+v", got)
	}
}

package sink

import (
	"encoding/json"

	"github.com/matzehuels/treeviz/pkg/render"
)

// RenderJSON encodes the scene as indented JSON. The command list uses the
// tagged format of [render.MarshalCommands], so the output can be decoded
// back into a [render.Scene].
func RenderJSON(s render.Scene) ([]byte, error) {
	return json.MarshalIndent(s, "", "  ")
}

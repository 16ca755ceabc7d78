package render

import (
	"encoding/json"
	"fmt"

	"github.com/matzehuels/treeviz/pkg/tree/layout"
)

// MarshalJSON encodes the box with its "type" tag.
func (b Box) MarshalJSON() ([]byte, error) {
	type alias Box
	return json.Marshal(struct {
		Type Kind `json:"type"`
		alias
	}{KindBox, alias(b)})
}

// MarshalJSON encodes the text line with its "type" tag.
func (t TextLine) MarshalJSON() ([]byte, error) {
	type alias TextLine
	return json.Marshal(struct {
		Type Kind `json:"type"`
		alias
	}{KindText, alias(t)})
}

// MarshalJSON encodes the curve with its "type" tag.
func (c Curve) MarshalJSON() ([]byte, error) {
	type alias Curve
	return json.Marshal(struct {
		Type Kind `json:"type"`
		alias
	}{KindCurve, alias(c)})
}

// MarshalJSON encodes the edge label with its "type" tag.
func (l EdgeLabel) MarshalJSON() ([]byte, error) {
	type alias EdgeLabel
	return json.Marshal(struct {
		Type Kind `json:"type"`
		alias
	}{KindEdgeLabel, alias(l)})
}

// MarshalCommands encodes cmds as a JSON array of tagged objects.
func MarshalCommands(cmds []Command) ([]byte, error) {
	if cmds == nil {
		cmds = []Command{}
	}
	return json.Marshal(cmds)
}

// UnmarshalCommands decodes a JSON array produced by [MarshalCommands].
func UnmarshalCommands(data []byte) ([]Command, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	return decodeCommands(raw)
}

func decodeCommands(raw []json.RawMessage) ([]Command, error) {
	cmds := make([]Command, 0, len(raw))
	for i, r := range raw {
		c, err := decodeCommand(r)
		if err != nil {
			return nil, fmt.Errorf("command %d: %w", i, err)
		}
		cmds = append(cmds, c)
	}
	return cmds, nil
}

func decodeCommand(data json.RawMessage) (Command, error) {
	var tag struct {
		Type Kind `json:"type"`
	}
	if err := json.Unmarshal(data, &tag); err != nil {
		return nil, err
	}

	switch tag.Type {
	case KindBox:
		var c Box
		err := json.Unmarshal(data, &c)
		return c, err
	case KindText:
		var c TextLine
		err := json.Unmarshal(data, &c)
		return c, err
	case KindCurve:
		var c Curve
		err := json.Unmarshal(data, &c)
		return c, err
	case KindEdgeLabel:
		var c EdgeLabel
		err := json.Unmarshal(data, &c)
		return c, err
	case "":
		return nil, fmt.Errorf("missing command type")
	default:
		return nil, fmt.Errorf("unknown command type %q", tag.Type)
	}
}

type sceneJSON struct {
	Empty    bool            `json:"empty"`
	Message  string          `json:"message,omitempty"`
	Canvas   layout.Canvas   `json:"canvas"`
	Commands json.RawMessage `json:"commands"`
}

// MarshalJSON encodes the scene; Commands is always an array.
func (s Scene) MarshalJSON() ([]byte, error) {
	cmds, err := MarshalCommands(s.Commands)
	if err != nil {
		return nil, err
	}
	return json.Marshal(sceneJSON{
		Empty:    s.Empty,
		Message:  s.Message,
		Canvas:   s.Canvas,
		Commands: cmds,
	})
}

// UnmarshalJSON decodes a scene written by MarshalJSON.
func (s *Scene) UnmarshalJSON(data []byte) error {
	var w struct {
		Empty    bool              `json:"empty"`
		Message  string            `json:"message"`
		Canvas   layout.Canvas     `json:"canvas"`
		Commands []json.RawMessage `json:"commands"`
	}
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	cmds, err := decodeCommands(w.Commands)
	if err != nil {
		return err
	}
	if len(cmds) == 0 {
		cmds = nil
	}
	*s = Scene{Canvas: w.Canvas, Commands: cmds, Empty: w.Empty, Message: w.Message}
	return nil
}

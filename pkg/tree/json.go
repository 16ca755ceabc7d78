package tree

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	apperr "github.com/matzehuels/treeviz/pkg/errors"
)

// MarshalJSON encodes the branch as "true" or "false".
func (b Branch) MarshalJSON() ([]byte, error) {
	return json.Marshal(b.String())
}

// UnmarshalJSON accepts a JSON boolean or a string understood by ParseBranch.
func (b *Branch) UnmarshalJSON(data []byte) error {
	var flag bool
	if err := json.Unmarshal(data, &flag); err == nil {
		*b = Branch(flag)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("branch must be a boolean or string: %s", data)
	}
	*b = ParseBranch(s)
	return nil
}

// UnmarshalJSON decodes an edge, reading the branch from "branch" or, when
// absent, from the producer's "label" key.
func (e *Edge) UnmarshalJSON(data []byte) error {
	var raw struct {
		From   string  `json:"from"`
		To     string  `json:"to"`
		Branch *Branch `json:"branch"`
		Label  *Branch `json:"label"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	e.From, e.To = raw.From, raw.To
	switch {
	case raw.Branch != nil:
		e.Branch = *raw.Branch
	case raw.Label != nil:
		e.Branch = *raw.Label
	default:
		e.Branch = False
	}
	return nil
}

// Marshal encodes t as indented JSON.
func Marshal(t *Tree) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(&buf, t); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Unmarshal decodes a tree from JSON bytes.
func Unmarshal(data []byte) (*Tree, error) {
	return Read(bytes.NewReader(data))
}

// Write encodes t as indented JSON to w.
// A nil tree is written as an empty tree.
func Write(w io.Writer, t *Tree) error {
	if t == nil {
		t = &Tree{}
	}
	out := *t
	if out.Nodes == nil {
		out.Nodes = []Node{}
	}
	if out.Edges == nil {
		out.Edges = []Edge{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// Read decodes a tree from r.
// A JSON null decodes to a nil tree, which callers treat as absent.
func Read(r io.Reader) (*Tree, error) {
	var t *Tree
	if err := json.NewDecoder(r).Decode(&t); err != nil {
		return nil, apperr.Wrap(apperr.ErrCodeInvalidInput, err, "decode tree")
	}
	return t, nil
}

// ReadFile reads and decodes a tree from the file at path.
func ReadFile(path string) (*Tree, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, apperr.Wrap(apperr.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return Read(f)
}

// WriteFile writes t as JSON to path, creating or truncating the file.
func WriteFile(path string, t *Tree) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return Write(f, t)
}

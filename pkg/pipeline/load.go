package pipeline

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/treeviz/pkg/tree"
)

// Load reads a tree document from r and logs any structural issues as
// warnings. Issues do not fail the load.
func Load(r io.Reader, logger *log.Logger) (*tree.Tree, []tree.Issue, error) {
	t, err := tree.Read(r)
	if err != nil {
		return nil, nil, err
	}
	return t, Inspect(t, logger), nil
}

// LoadFile is Load for a file path.
func LoadFile(path string, logger *log.Logger) (*tree.Tree, []tree.Issue, error) {
	t, err := tree.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}
	return t, Inspect(t, logger), nil
}

// Inspect runs [tree.Diagnose] and logs each issue at warn level.
func Inspect(t *tree.Tree, logger *log.Logger) []tree.Issue {
	issues := tree.Diagnose(t)
	if logger == nil {
		return issues
	}
	for _, is := range issues {
		args := []any{"kind", is.Kind}
		if is.NodeID != "" {
			args = append(args, "node", is.NodeID)
		}
		if is.Edge >= 0 {
			args = append(args, "edge", is.Edge)
		}
		logger.Warn(is.Message, args...)
	}
	return issues
}

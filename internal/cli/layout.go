package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/treeviz/pkg/tree"
	"github.com/matzehuels/treeviz/pkg/tree/layout"
)

// layoutCommand creates the layout command, which prints node positions.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output string
		width  float64
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "layout [tree.json]",
		Short: "Compute node positions without rendering",
		Long: `Compute node positions and the canvas size for a decision tree.

Prints a table of node centres. With -o the positions are also written as
JSON ({"positions": {...}, "canvas": {...}}); --json prints that document
to standard output instead of the table.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("width") {
				width = c.Config.Render.Width
			}
			return c.runLayout(cmd, args[0], width, output, asJSON)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "write positions JSON to this file")
	cmd.Flags().Float64Var(&width, "width", layout.DefaultMinWidth, "available width in pixels")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print positions JSON instead of a table")

	return cmd
}

// runLayout loads the tree, computes positions and prints or writes them.
func (c *CLI) runLayout(cmd *cobra.Command, input string, width float64, output string, asJSON bool) error {
	t, _, err := c.loadTree(cmd, input)
	if err != nil {
		return fmt.Errorf("load tree %s: %w", input, err)
	}

	res := layout.Compute(t, width)
	loggerFromContext(cmd.Context()).Debug("computed layout",
		"nodes", len(res.Positions),
		"canvas_width", res.Canvas.Width,
		"canvas_height", res.Canvas.Height)

	if asJSON {
		return writeLayoutJSON(cmd.OutOrStdout(), res)
	}

	fmt.Fprintln(cmd.OutOrStdout(), layoutTable(t, res))
	p := newPrinter(cmd)
	p.keyValue("Canvas", fmt.Sprintf("%s × %s", formatCoord(res.Canvas.Width), formatCoord(res.Canvas.Height)))

	if output != "" {
		out, err := openOutput(output)
		if err != nil {
			return err
		}
		defer out.Close()
		if err := writeLayoutJSON(out, res); err != nil {
			return fmt.Errorf("write output %s: %w", output, err)
		}
		p.success("Layout written")
		p.file(output)
		p.newline()
		p.nextStep("Render", appName+" render "+input)
	}
	return nil
}

func writeLayoutJSON(w io.Writer, res layout.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(res)
}

// layoutTable renders one row per node in declaration order.
func layoutTable(t *tree.Tree, res layout.Result) string {
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	leafStyle := lipgloss.NewStyle().Foreground(colorGreen)
	decisionStyle := lipgloss.NewStyle().Foreground(colorBlue)

	var rows [][]string
	var kinds []bool
	if t != nil {
		for _, n := range t.Nodes {
			p, ok := res.Positions[n.ID]
			if !ok {
				continue
			}
			kind := "decision"
			if n.IsLeaf {
				kind = "leaf"
			}
			rows = append(rows, []string{
				n.ID,
				strconv.Itoa(n.Depth),
				formatCoord(p.X),
				formatCoord(p.Y),
				kind,
				n.Lines()[0],
			})
			kinds = append(kinds, n.IsLeaf)
		}
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("ID", "Depth", "X", "Y", "Kind", "Label").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if col != 4 || row < 0 || row >= len(kinds) {
				return lipgloss.NewStyle()
			}
			if kinds[row] {
				return leafStyle
			}
			return decisionStyle
		}).
		Render()
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

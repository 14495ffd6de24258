package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/rshade/greenprocure/internal/config"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
)

// view is one titled table of human output.
type view struct {
	title   string
	headers []string
	rows    [][]string
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// outputFormat returns the configured format, defaulting to table on a
// terminal and JSON otherwise.
func (a *app) outputFormat(cmd *cobra.Command) string {
	if a.cfg.Output.Format != "" {
		return a.cfg.Output.Format
	}
	if isTerminal(cmd.OutOrStdout()) {
		return config.OutputTable
	}
	return config.OutputJSON
}

// render writes v as JSON or views as tables, depending on the output format.
func (a *app) render(cmd *cobra.Command, v any, views ...view) error {
	w := cmd.OutOrStdout()
	if a.outputFormat(cmd) == config.OutputJSON {
		return writeJSON(w, v)
	}
	for i, vw := range views {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		if err := writeTable(w, vw); err != nil {
			return err
		}
	}
	return nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encoding output: %w", err)
	}
	return nil
}

func writeTable(w io.Writer, vw view) error {
	if vw.title != "" {
		if _, err := fmt.Fprintln(w, titleStyle.Render(vw.title)); err != nil {
			return err
		}
	}
	if len(vw.rows) == 0 {
		_, err := fmt.Fprintln(w, "(none)")
		return err
	}
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Headers(vw.headers...).
		Rows(vw.rows...)
	_, err := fmt.Fprintln(w, t.Render())
	return err
}

// keyValues renders label/value pairs as a two-column view.
func keyValues(title string, pairs ...string) view {
	vw := view{title: title, headers: []string{"Field", "Value"}}
	for i := 0; i+1 < len(pairs); i += 2 {
		vw.rows = append(vw.rows, []string{pairs[i], pairs[i+1]})
	}
	return vw
}

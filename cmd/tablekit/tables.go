package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/kbukum/tablekit/demo"
	"github.com/kbukum/tablekit/errors"
	"github.com/kbukum/tablekit/table"
)

var tablesFlags struct {
	format string
}

// step is a fixed pipeline control.
type step int

func (s step) Index() int { return int(s) }

func (s step) RenderHTML() (string, error) {
	return `<p class="tk-step">step ` + strconv.Itoa(int(s)) + `</p>`, nil
}

func newTablesCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:       "tables timemachine",
		Short:     "Print every snapshot of the time machine pipeline",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"timemachine"},
		RunE: func(cmd *cobra.Command, args []string) error {
			if args[0] != "timemachine" {
				return errors.InvalidInput("pipeline", args[0]+" is not a known pipeline")
			}
			p, err := demo.TimeMachinePipeline(step(0))
			if err != nil {
				return err
			}
			return printTables(cmd.OutOrStdout(), p.Tables(), tablesFlags.format)
		},
	}
	cmd.Flags().StringVar(&tablesFlags.format, "format", "text", "output format: text, markdown or html")
	return cmd
}

func printTables(w io.Writer, tables []*table.Table, format string) error {
	var render func(*table.Table) (string, error)
	switch format {
	case "text":
		render = (*table.Table).AsText
	case "markdown":
		render = (*table.Table).AsMarkdown
	case "html":
		render = (*table.Table).RenderHTML
	default:
		return errors.InvalidInput("format", "must be one of text, markdown, html")
	}
	for i, t := range tables {
		s, err := render(t)
		if err != nil {
			return fmt.Errorf("step %d: %w", i, err)
		}
		heading := fmt.Sprintf("step %d of %d", i, len(tables)-1)
		switch format {
		case "markdown":
			heading = "## " + heading
		case "html":
			heading = "<h2>" + heading + "</h2>"
		}
		if _, err := fmt.Fprintf(w, "%s\n\n%s\n\n", heading, s); err != nil {
			return err
		}
	}
	return nil
}

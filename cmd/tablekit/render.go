package main

import (
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kbukum/tablekit/demo"
	"github.com/kbukum/tablekit/errors"
)

var renderFlags struct {
	output   string
	step     int
	style    int
	color    string
	striping bool
	done     string
}

func newRenderCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:       "render <demo>",
		Short:     "Write a demo notebook as an HTML page",
		Long:      "Write a demo notebook as an HTML page. Demos: " + strings.Join(demo.Names(), ", ") + ".",
		Args:      cobra.ExactArgs(1),
		ValidArgs: demo.Names(),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runRender(cmd, args[0])
		},
	}
	f := cmd.Flags()
	f.StringVarP(&renderFlags.output, "output", "o", "", "output file (default: stdout)")
	f.IntVar(&renderFlags.step, "step", 0, "time machine step")
	f.IntVar(&renderFlags.style, "style", 0, "stylize style 1-6 (default: config or random)")
	f.StringVar(&renderFlags.color, "color", "", "stylize colour (default: config or random)")
	f.BoolVar(&renderFlags.striping, "striping", false, "row striping in the stylize demo")
	f.StringVar(&renderFlags.done, "done", "", "checklist tasks already done, e.g. 1,2,5")
	return cmd
}

func (a *app) runRender(cmd *cobra.Command, name string) error {
	done, err := parseDone(renderFlags.done)
	if err != nil {
		return err
	}
	o := demo.Options{
		Step:     renderFlags.step,
		Style:    renderFlags.style,
		Color:    renderFlags.color,
		Striping: renderFlags.striping,
		Done:     done,
	}
	if o.Style == 0 {
		o.Style = a.cfg.Render.DefaultStyle
	}
	if o.Color == "" {
		o.Color = a.cfg.Render.DefaultColor
	}
	if name == "mail" {
		if o.Mail, err = a.mailClient(); err != nil {
			return err
		}
	}

	nb, err := demo.Build(cmd.Context(), name, o)
	if err != nil {
		return err
	}
	if err := nb.Err(); err != nil {
		return err
	}
	page, err := nb.Page()
	if err != nil {
		return err
	}
	return a.write(cmd, renderFlags.output, page)
}

// parseDone turns "1,3" into a done list with tasks 1 and 3 set.
func parseDone(s string) ([]bool, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	var done []bool
	for _, part := range strings.Split(s, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || n < 1 {
			return nil, errors.InvalidInput("done", "task numbers start at 1")
		}
		for len(done) < n {
			done = append(done, false)
		}
		done[n-1] = true
	}
	return done, nil
}

package main

import (
	"html/template"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kbukum/tablekit/lazytable"
	"github.com/kbukum/tablekit/logger"
	"github.com/kbukum/tablekit/table"
	"github.com/kbukum/tablekit/table/data"
	"github.com/kbukum/tablekit/widget"
)

var recipeFlags struct {
	output string
	step   int
	rows   int
}

func newRecipeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "recipe <file.yml>",
		Short: "Replay a YAML recipe over the airquality sample",
		Long: "Replay a YAML recipe over the airquality sample and write the page\n" +
			"for one step. A recipe is a list of {op, args} steps, for example:\n\n" +
			"  - op: tab_header\n    args: {title: Air quality}\n  - op: cols_hide\n    args: [Month, Day]",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runRecipe(cmd, args[0])
		},
	}
	f := cmd.Flags()
	f.StringVarP(&recipeFlags.output, "output", "o", "", "output file (default: stdout)")
	f.IntVar(&recipeFlags.step, "step", -1, "step to show (default: last)")
	f.IntVar(&recipeFlags.rows, "rows", 10, "airquality rows to use")
	return cmd
}

func (a *app) runRecipe(cmd *cobra.Command, path string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer func() { _ = file.Close() }()
	steps, err := lazytable.LoadRecipe(file)
	if err != nil {
		return err
	}

	n := recipeFlags.step
	if n < 0 || n > len(steps) {
		n = len(steps)
	}
	slider, err := widget.NewSlider(widget.SliderConfig{Stop: max(len(steps), 1), Value: n, Label: "Step", ShowValue: true})
	if err != nil {
		return err
	}
	p := lazytable.New(slider, data.AirQuality().Head(recipeFlags.rows), table.ID("recipe")).Apply(steps)
	if err := p.CollectContext(cmd.Context()); err != nil {
		return err
	}
	a.log.Debug("recipe collected", logger.Fields("recipe", path, "steps", len(steps), "shown", n))

	body, err := p.Render()
	if err != nil {
		return err
	}
	title := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	page, err := table.Document(title, table.DefaultLocale, template.HTML(body))
	if err != nil {
		return err
	}
	return a.write(cmd, recipeFlags.output, page)
}

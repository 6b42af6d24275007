// Package demo builds the example notebooks shipped with tablekit: a
// table time machine, a deployment checklist, a widget reference, a
// stylize playground and a mail form.
package demo

import (
	"context"
	"slices"
	"strings"

	"github.com/kbukum/tablekit/errors"
	"github.com/kbukum/tablekit/mail"
	"github.com/kbukum/tablekit/notebook"
)

// Options parameterise Build. Zero values select each demo's defaults.
type Options struct {
	Step     int
	Style    int
	Color    string
	Striping bool
	Done     []bool
	Mail     *mail.Client
}

// Builder builds a demo notebook.
type Builder func(ctx context.Context, o Options) (*notebook.Notebook, error)

var builders = map[string]Builder{
	"timemachine": func(ctx context.Context, o Options) (*notebook.Notebook, error) {
		d, err := TimeMachine(ctx, o.Step)
		if err != nil {
			return nil, err
		}
		return d.Notebook, nil
	},
	"checklist": func(ctx context.Context, o Options) (*notebook.Notebook, error) {
		d, err := Checklist(ctx, o.Done)
		if err != nil {
			return nil, err
		}
		return d.Notebook, nil
	},
	"reference": func(ctx context.Context, o Options) (*notebook.Notebook, error) {
		d, err := WidgetReference(ctx, o.Style, o.Color)
		if err != nil {
			return nil, err
		}
		return d.Notebook, nil
	},
	"stylize": func(ctx context.Context, o Options) (*notebook.Notebook, error) {
		d, err := Stylize(ctx, o.Style, o.Color, o.Striping)
		if err != nil {
			return nil, err
		}
		return d.Notebook, nil
	},
	"mail": func(ctx context.Context, o Options) (*notebook.Notebook, error) {
		d, err := MailForm(ctx, o.Mail)
		if err != nil {
			return nil, err
		}
		return d.Notebook, nil
	},
}

// Names lists the demos Build knows.
func Names() []string {
	names := make([]string, 0, len(builders))
	for name := range builders {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Build builds the named demo.
func Build(ctx context.Context, name string, o Options) (*notebook.Notebook, error) {
	b, ok := builders[name]
	if !ok {
		return nil, errors.InvalidInput("demo", name+" is not one of "+strings.Join(Names(), ", "))
	}
	return b(ctx, o)
}

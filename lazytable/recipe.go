package lazytable

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/kbukum/tablekit/errors"
	"github.com/kbukum/tablekit/table"
)

// RecipeStep is one builder call read from a recipe. Args is a mapping of
// named arguments, a list of positional arguments, a single scalar, or
// absent. A mapping passed positionally, such as the cases of cols_label,
// goes inside a list.
type RecipeStep struct {
	Op   string `yaml:"op"`
	Args any    `yaml:"args,omitempty"`
}

// arguments spreads Args into the form Register takes.
func (s RecipeStep) arguments() []any {
	switch a := s.Args.(type) {
	case nil:
		return nil
	case []any:
		return a
	case map[string]any:
		return []any{table.Named(a)}
	}
	return []any{s.Args}
}

const recipeFormat = "YAML list of {op, args} steps"

type recipe struct {
	Name  string       `yaml:"name"`
	Steps []RecipeStep `yaml:"steps"`
}

// LoadRecipe reads a YAML recipe: either a list of steps or a mapping with
// a steps list. Every step is checked against the allow-list and its
// arguments bound, so a bad recipe fails before anything is recorded.
//
//	steps:
//	  - op: opt_stylize
//	    args: {style: 2, color: pink}
//	  - op: cols_move_to_start
//	    args: [Year, Month, Day]
//	  - op: cols_label
//	    args: [{Year: Yr}]
func LoadRecipe(r io.Reader) ([]RecipeStep, error) {
	var doc yaml.Node
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if err == io.EOF {
			return nil, errors.InvalidInput("recipe", "recipe is empty")
		}
		return nil, errors.InvalidFormat("recipe", recipeFormat).WithCause(err)
	}
	root := &doc
	if root.Kind == yaml.DocumentNode && len(root.Content) == 1 {
		root = root.Content[0]
	}

	var steps []RecipeStep
	switch root.Kind {
	case yaml.SequenceNode:
		if err := root.Decode(&steps); err != nil {
			return nil, errors.InvalidFormat("recipe", recipeFormat).WithCause(err)
		}
	case yaml.MappingNode:
		var rec recipe
		if err := root.Decode(&rec); err != nil {
			return nil, errors.InvalidFormat("recipe", recipeFormat).WithCause(err)
		}
		steps = rec.Steps
	default:
		return nil, errors.InvalidFormat("recipe", recipeFormat)
	}

	for i, s := range steps {
		if s.Op == "" {
			return nil, errors.MissingField(fmt.Sprintf("steps[%d].op", i))
		}
		if _, _, err := table.Prepare(s.Op, s.arguments()...); err != nil {
			if ae, ok := errors.AsAppError(err); ok {
				return nil, ae.WithDetail("step", i+1)
			}
			return nil, err
		}
	}
	return steps, nil
}

// Apply registers every step in order and stops at the first error.
func (p *Pipeline) Apply(steps []RecipeStep) *Pipeline {
	for _, s := range steps {
		if p.Register(s.Op, s.arguments()...).Err() != nil {
			break
		}
	}
	return p
}

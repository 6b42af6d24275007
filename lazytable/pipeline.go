package lazytable

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/kbukum/tablekit/errors"
	"github.com/kbukum/tablekit/logger"
	"github.com/kbukum/tablekit/observability"
	"github.com/kbukum/tablekit/pipeline"
	"github.com/kbukum/tablekit/render"
	"github.com/kbukum/tablekit/table"
)

// Control selects the snapshot to render. It is rendered below every
// snapshot so it can be operated next to the table it drives.
type Control interface {
	Index() int
	RenderHTML() (string, error)
}

// Phase is the lifecycle state of a Pipeline.
type Phase int

const (
	// Building accepts new calls. Only the base snapshot exists.
	Building Phase = iota
	// Collected holds one snapshot per call plus the base.
	Collected
)

func (p Phase) String() string {
	switch p {
	case Building:
		return "building"
	case Collected:
		return "collected"
	}
	return fmt.Sprintf("Phase(%d)", int(p))
}

// Call is one recorded builder call.
type Call struct {
	Op   table.Operation
	Args []any
	step table.Step
}

// Pipeline records builder calls against a base table and replays them
// into snapshots.
type Pipeline struct {
	mu sync.RWMutex

	ctrl  Control
	frame *table.Frame
	opts  []table.Option

	calls      []Call
	tables     []*table.Table
	widgetized []*table.Table
	phase      Phase
	err        error
	log        *logger.Logger
}

// New builds the base table from frame and opts and pairs it with ctrl.
// Construction problems are reported by Err.
func New(ctrl Control, frame *table.Frame, opts ...table.Option) *Pipeline {
	p := &Pipeline{
		ctrl:  ctrl,
		frame: frame,
		opts:  slices.Clone(opts),
		log:   logger.Get("lazytable"),
	}
	p.init()
	return p
}

// init resets the pipeline to its construction state. Callers hold mu.
func (p *Pipeline) init() {
	base := table.New(p.frame, p.opts...)
	p.calls = nil
	p.tables = []*table.Table{base}
	p.widgetized = []*table.Table{p.widgetize(base)}
	p.phase = Building
	p.err = base.Err()
	if p.ctrl == nil {
		p.err = errors.InvalidInput("control", "control widget is required")
	}
}

func (p *Pipeline) widgetize(t *table.Table) *table.Table {
	if p.ctrl == nil {
		return t
	}
	return t.TabSourceNote(table.Widget(p.ctrl))
}

// record appends a call unless the pipeline already failed or was
// collected.
func (p *Pipeline) record(op table.Operation, args []any, step table.Step) *Pipeline {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p
	}
	if p.phase == Collected {
		p.err = errors.PipelineCollected(string(op))
		p.log.Warn("call rejected after collect", logger.Fields("operation", op))
		return p
	}
	p.calls = append(p.calls, Call{Op: op, Args: args, step: step})
	return p
}

// Register records the allow-listed operation name with args. Arguments
// follow table.Prepare: positional, or a single table.Named value. A plain
// map is positional, so Register("cols_label", map[string]any{"cases": "X"})
// relabels a column called cases.
// Unknown names and malformed arguments become the pipeline error.
func (p *Pipeline) Register(name string, args ...any) *Pipeline {
	op, step, err := table.Prepare(name, args...)
	if err != nil {
		p.mu.Lock()
		if p.err == nil {
			p.err = err
		}
		p.mu.Unlock()
		return p
	}
	return p.record(op, args, step)
}

// Collect replays the recorded calls. It does nothing once collected.
func (p *Pipeline) Collect() (*Pipeline, error) {
	return p, p.CollectContext(context.Background())
}

// CollectContext is Collect with cancellation between steps. A step that
// leaves its table in error aborts the replay; the pipeline then stays in
// the Building phase with only the base snapshot.
func (p *Pipeline) CollectContext(ctx context.Context) (err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	if p.phase == Collected {
		return nil
	}

	op := observability.Start(ctx, "lazytable", "collect")
	defer func() { op.End(err) }()

	base := p.tables[0]
	steps := pipeline.FromSlice(slices.Clone(p.calls))
	snapshots := pipeline.Scan(steps, base, func(_ context.Context, prev *table.Table, c Call) (*table.Table, error) {
		next := c.step(prev.Clone())
		if next == nil {
			return nil, errors.Internal(fmt.Errorf("%s returned no table", c.Op))
		}
		if err := next.Err(); err != nil {
			return nil, err
		}
		return next, nil
	})
	n := 0
	snapshots = pipeline.Tap(snapshots, func(_ context.Context, _ *table.Table) error {
		n++
		p.log.Debug("step applied", logger.Fields("step", n, "operation", p.calls[n-1].Op))
		return nil
	})

	tables, err := pipeline.Collect(op.Context(), snapshots)
	if err != nil {
		if cerr := ctx.Err(); cerr != nil {
			return cerr
		}
		failed := p.calls[len(tables)]
		p.log.Warn("collect aborted", logger.Fields("step", len(tables)+1, "operation", failed.Op, "error", err.Error()))
		return fmt.Errorf("step %d (%s): %w", len(tables)+1, failed.Op, err)
	}

	p.tables = append([]*table.Table{base}, tables...)
	p.widgetized = make([]*table.Table, len(p.tables))
	for i, t := range p.tables {
		p.widgetized[i] = p.widgetize(t)
	}
	p.phase = Collected
	op.Metrics.RecordSnapshots(op.Context(), len(p.tables))
	p.log.Debug("pipeline collected", logger.Fields("calls", len(p.calls), "snapshots", len(p.tables)))
	return nil
}

// Index returns the snapshot index Render shows for the control's value.
func (p *Pipeline) Index() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.index()
}

func (p *Pipeline) index() int {
	last := len(p.widgetized) - 1
	if p.ctrl == nil {
		return last
	}
	i := p.ctrl.Index()
	if i < 0 || i > last {
		return last
	}
	return i
}

// Render renders the widgetized snapshot selected by the control.
func (p *Pipeline) Render() (s string, err error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.err != nil {
		return "", p.err
	}
	op := observability.Start(context.Background(), "lazytable", "render")
	defer func() { op.End(err) }()

	out, err := render.Render(p.widgetized[p.index()])
	if err != nil {
		return "", err
	}
	return out.HTML()
}

// RenderHTML makes the pipeline itself renderable.
func (p *Pipeline) RenderHTML() (string, error) { return p.Render() }

// Tables returns the snapshots. The slice is a copy.
func (p *Pipeline) Tables() []*table.Table {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return slices.Clone(p.tables)
}

// Table returns the snapshot Render shows, without the control note.
func (p *Pipeline) Table() *table.Table {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.tables[p.index()]
}

// Reset drops every call and snapshot and rebuilds the base table.
func (p *Pipeline) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.init()
	p.log.Debug("pipeline reset")
}

// Calls returns the recorded calls in order.
func (p *Pipeline) Calls() []Call {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return slices.Clone(p.calls)
}

// Phase returns the lifecycle phase.
func (p *Pipeline) Phase() Phase {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.phase
}

// Len returns the number of snapshots.
func (p *Pipeline) Len() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.tables)
}

// Err returns the first registration or construction error.
func (p *Pipeline) Err() error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.err
}

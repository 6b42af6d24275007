// Package pipeline provides small, lazy, pull-based pipelines.
//
// No work happens until values are pulled via Collect or ForEach. Each stage
// pulls from the previous one on demand, so a failing stage stops everything
// upstream of it and nothing after the failure is computed.
//
// tablekit replays recorded table calls with it: the calls are the source,
// Scan folds them over the identity table and yields every intermediate
// table, and Tap observes each step.
//
//	calls := pipeline.FromSlice(recorded)
//	steps := pipeline.Scan(calls, identity, func(ctx context.Context, acc Table, c Call) (Table, error) {
//	    return c.Apply(acc)
//	})
//	snapshots, err := pipeline.Collect(ctx, pipeline.Tap(steps, logStep))
package pipeline

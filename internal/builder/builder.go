package builder

import (
	"context"
	"fmt"

	"github.com/sourcegraph/conc/pool"
	"github.com/specialistvlad/dasmanifest/internal/ctxlog"
	"github.com/specialistvlad/dasmanifest/internal/dataset"
	"github.com/specialistvlad/dasmanifest/internal/manifest"
	"github.com/specialistvlad/dasmanifest/internal/resolver"
)

// Options configures a Builder.
type Options struct {
	Resolver   resolver.Resolver
	Policy     dataset.Policy
	Redirector string
	Process    string
	// Workers bounds the number of queries in flight. Values below 1 mean 1.
	Workers int
}

// Builder assembles manifests. It is safe to read Progress while Build runs.
type Builder struct {
	opts     Options
	progress *Progress
}

// New creates a builder. Resolver and Policy are required.
func New(opts Options) (*Builder, error) {
	if opts.Resolver == nil {
		return nil, fmt.Errorf("builder: a resolver is required")
	}
	if opts.Policy == nil {
		return nil, fmt.Errorf("builder: a naming policy is required")
	}
	if opts.Workers < 1 {
		opts.Workers = 1
	}
	return &Builder{opts: opts, progress: &Progress{}}, nil
}

// Progress returns the live counters of the current or last Build.
func (b *Builder) Progress() *Progress {
	return b.progress
}

// outcome is the per-position result of processing one input line.
type outcome struct {
	id        dataset.Identifier
	result    resolver.Result
	malformed error
}

// Build queries every dataset and returns the manifest of those that
// resolved. Per-dataset failures are recorded in the Report and never fail
// the build; only context cancellation does.
func (b *Builder) Build(ctx context.Context, datasets []string) (*manifest.Manifest, *Report, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Manifest build started.", "datasets", len(datasets), "workers", b.opts.Workers, "policy", b.opts.Policy.Name())

	b.progress.reset(len(datasets))
	outcomes := make([]outcome, len(datasets))

	p := pool.New().WithMaxGoroutines(b.opts.Workers)
	for i, raw := range datasets {
		p.Go(func() {
			outcomes[i] = b.process(ctx, raw)
		})
	}
	p.Wait()

	if err := ctx.Err(); err != nil {
		return nil, nil, fmt.Errorf("manifest build cancelled: %w", err)
	}

	m := manifest.New()
	report := &Report{Total: len(datasets)}
	for i, raw := range datasets {
		o := outcomes[i]
		switch {
		case o.malformed != nil:
			report.Malformed = append(report.Malformed, raw)
		case !o.result.OK():
			report.Queried++
			report.Failed = append(report.Failed, raw)
		default:
			report.Queried++
			m.Set(raw, b.entry(o.id, o.result.Paths))
		}
	}
	report.Written = m.Len()

	logger.Debug("Manifest build finished.", "written", report.Written, "failed", len(report.Failed), "malformed", len(report.Malformed))
	return m, report, nil
}

func (b *Builder) process(ctx context.Context, raw string) outcome {
	logger := ctxlog.FromContext(ctx).With("dataset", raw)
	defer b.progress.done.Add(1)

	id, err := dataset.Parse(raw)
	if err != nil {
		logger.Warn("Skipping malformed dataset identifier.", "error", err)
		b.progress.malformed.Add(1)
		return outcome{malformed: err}
	}

	if ctx.Err() != nil {
		return outcome{id: id, result: resolver.Failure(raw, ctx.Err())}
	}

	logger.Info("[DAS] Querying files.")
	res := b.opts.Resolver.Resolve(ctx, raw)
	if !res.OK() {
		logger.Warn("DAS query failed, skipping dataset.", "error", res.Err)
		b.progress.failed.Add(1)
		return outcome{id: id, result: res}
	}

	logger.Debug("DAS query succeeded.", "files", len(res.Paths))
	b.progress.succeeded.Add(1)
	return outcome{id: id, result: res}
}

func (b *Builder) entry(id dataset.Identifier, paths []string) manifest.Entry {
	files := make([]string, len(paths))
	for i, p := range paths {
		files[i] = b.opts.Redirector + p
	}
	return manifest.Entry{
		ShortName: b.opts.Policy.ShortName(id),
		Year:      b.opts.Policy.Year(id),
		Process:   b.opts.Process,
		Files:     files,
	}
}

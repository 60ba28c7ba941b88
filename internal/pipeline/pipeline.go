package pipeline

import (
	"context"
	"log/slog"
)

// Step defines the interface that all pipeline steps implement.
// Steps are executed in sequence, with each step receiving the
// accumulated extraction state from previous steps.
//
// An interface rather than function types, because steps carry
// configuration state and a Name() for logging.
type Step interface {
	// Do executes the pipeline step. It receives the context for
	// cancellation and the extraction state to modify. Returning an
	// error stops the pipeline.
	Do(ctx context.Context, ext *Extraction) error

	// Name returns the step's name for logging purposes.
	Name() string
}

// Pipeline orchestrates the execution of multiple steps.
// It maintains a list of steps and executes them in order.
type Pipeline struct {
	// steps contains the ordered list of steps to execute.
	steps []Step

	// logger is used for structured logging during execution.
	logger *slog.Logger
}

// Option is a function that configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets a custom logger for the pipeline.
// If not set, slog.Default() is used.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) {
		p.logger = logger
	}
}

// New creates a new Pipeline with the given options.
// Steps should be added using AddSteps after creation.
func New(opts ...Option) *Pipeline {
	p := &Pipeline{
		steps: make([]Step, 0),
	}

	for _, opt := range opts {
		opt(p)
	}

	if p.logger == nil {
		p.logger = slog.Default()
	}

	return p
}

// AddSteps appends steps to the pipeline.
// Steps are executed in the order they are added.
func (p *Pipeline) AddSteps(steps ...Step) {
	p.steps = append(p.steps, steps...)
}

// Execute runs all pipeline steps in sequence.
// It respects context cancellation and logs each step's execution.
//
// Cancellation is checked before each step rather than during, because
// steps handle their own timeouts. This allows graceful cleanup between
// steps while still respecting cancellation.
//
// The first error stops the pipeline and is returned; the extraction's
// Status and Reason record how it ended either way.
func (p *Pipeline) Execute(ctx context.Context, ext *Extraction) error {
	for _, step := range p.steps {
		select {
		case <-ctx.Done():
			p.logger.Warn("pipeline cancelled",
				"step", step.Name(),
				"url", ext.RawURL,
				"reason", ctx.Err(),
			)
			ext.Fail(ctx.Err().Error())
			return ctx.Err()
		default:
		}

		p.logger.Debug("executing step",
			"step", step.Name(),
			"url", ext.RawURL,
		)

		ext.PerformedSteps = append(ext.PerformedSteps, step.Name())

		if err := step.Do(ctx, ext); err != nil {
			p.logger.Debug("step stopped the pipeline",
				"step", step.Name(),
				"url", ext.RawURL,
				"error", err,
			)
			ext.Fail(err.Error())
			return err
		}
	}

	if ext.Status == StatusPending {
		ext.Status = StatusSucceeded
	}
	return nil
}

// StepCount returns the number of steps in the pipeline.
func (p *Pipeline) StepCount() int {
	return len(p.steps)
}

// StepNames returns the names of all steps in execution order.
func (p *Pipeline) StepNames() []string {
	names := make([]string, len(p.steps))
	for i, step := range p.steps {
		names[i] = step.Name()
	}
	return names
}

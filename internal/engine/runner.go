// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/pdiddy/easy-converter/internal/container"
	"github.com/pdiddy/easy-converter/internal/proc"
	"github.com/pdiddy/easy-converter/pkg/types"
)

// Runner executes a job over the backends Plan selects, stopping at the
// first one that succeeds.
type Runner struct {
	exec   proc.Executor
	logger *slog.Logger

	// overrides replaces the backend built for a kind; used by tests.
	overrides map[Kind]Backend
}

// NewRunner creates a Runner that starts external programs through exec.
func NewRunner(exec proc.Executor, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Runner{exec: exec, logger: logger}
}

// WithBackend returns a copy of r that uses b for its kind.
func (r *Runner) WithBackend(b Backend) *Runner {
	cp := *r
	cp.overrides = make(map[Kind]Backend, len(r.overrides)+1)
	for k, v := range r.overrides {
		cp.overrides[k] = v
	}
	cp.overrides[b.Kind()] = b
	return &cp
}

// Run converts job with the first working backend and returns its kind.
// With no usable backend it fails with types.ErrEngineMissing; when every
// backend fails it returns types.ErrEngineFailed joined with each failure.
func (r *Runner) Run(ctx context.Context, caps Capabilities, job Job) (Kind, error) {
	kinds := Plan(caps, job)
	if len(kinds) == 0 {
		return "", fmt.Errorf("%w for %s: %s", types.ErrEngineMissing, job.Input, installHint(job))
	}

	var failures []error
	for _, k := range kinds {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		b, err := r.backend(caps, k)
		if err != nil {
			failures = append(failures, fmt.Errorf("%s: %w", k, err))
			continue
		}

		r.logger.Debug("trying conversion backend", "backend", k, "input", job.Input, "output", job.Output)
		if err := b.Convert(ctx, job); err != nil {
			// Input errors are the document's fault; another engine will not help.
			if errors.Is(err, types.ErrNotFound) {
				return k, err
			}
			r.logger.Warn("conversion backend failed", "backend", k, "input", job.Input, "error", err)
			failures = append(failures, fmt.Errorf("%s: %w", k, err))
			continue
		}
		r.logger.Debug("conversion backend succeeded", "backend", k, "output", job.Output)
		return k, nil
	}

	return "", fmt.Errorf("%w: %w", types.ErrEngineFailed, errors.Join(failures...))
}

func (r *Runner) backend(caps Capabilities, k Kind) (Backend, error) {
	if b, ok := r.overrides[k]; ok {
		return b, nil
	}
	switch k {
	case KindOffice:
		return &officeBackend{bin: caps.OfficePath, exec: r.exec}, nil
	case KindContainer:
		rt, err := container.ByName(caps.ContainerRuntime, r.exec)
		if err != nil {
			return nil, err
		}
		return &containerBackend{runtime: rt, image: caps.ContainerImage, user: hostUser(caps.GOOS)}, nil
	case KindText:
		return textBackend{}, nil
	}
	return nil, fmt.Errorf("unknown backend %q", k)
}

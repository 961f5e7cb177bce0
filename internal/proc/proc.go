// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package proc abstracts running external programs so engines can be tested
// without the programs installed.
package proc

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os/exec"
	"strings"
)

// Executor runs external commands.
type Executor interface {
	// LookPath resolves file against PATH, like exec.LookPath.
	LookPath(file string) (string, error)

	// RunSilent runs a command, discarding its output.
	RunSilent(ctx context.Context, name string, args ...string) error

	// Run runs a command with the given output streams. A nil stream
	// discards that output.
	Run(ctx context.Context, name string, args []string, stdout, stderr io.Writer) error
}

// OSExecutor is the production Executor backed by os/exec.
type OSExecutor struct{}

func (OSExecutor) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

func (OSExecutor) RunSilent(ctx context.Context, name string, args ...string) error {
	return exec.CommandContext(ctx, name, args...).Run()
}

// Run includes the tail of stderr in the returned error so callers can
// report why the program failed.
func (OSExecutor) Run(ctx context.Context, name string, args []string, stdout, stderr io.Writer) error {
	var captured bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = stdout
	if stderr != nil {
		cmd.Stderr = io.MultiWriter(stderr, &captured)
	} else {
		cmd.Stderr = &captured
	}

	if err := cmd.Run(); err != nil {
		if msg := lastLine(captured.String()); msg != "" {
			return fmt.Errorf("%w: %s", err, msg)
		}
		return err
	}
	return nil
}

func lastLine(s string) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	return strings.TrimSpace(lines[len(lines)-1])
}

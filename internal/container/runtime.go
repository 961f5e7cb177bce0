// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package container implements container runtime detection and execution,
// used to run an office suite image when none is installed on the host.
package container

import (
	"context"
	"fmt"
	"io"

	"github.com/pdiddy/easy-converter/internal/proc"
)

const (
	binDocker = "docker"
	binPodman = "podman"
)

// Mount binds a host directory into the container.
type Mount struct {
	Host      string
	Container string
	ReadOnly  bool
}

func (m Mount) flag() string {
	v := m.Host + ":" + m.Container
	if m.ReadOnly {
		v += ":ro"
	}
	return v
}

// RunSpec describes one container invocation.
type RunSpec struct {
	Image  string
	Mounts []Mount

	// Command overrides the image entrypoint arguments.
	Command []string

	// User is passed as --user ("uid:gid") when set, so files written to
	// mounts belong to the calling user.
	User string

	Stdout io.Writer
	Stderr io.Writer
}

// Runtime provides container operations: checking availability, verifying
// images, and running containers.
type Runtime interface {
	// Name returns the runtime name ("docker" or "podman").
	Name() string

	// Available reports whether the runtime binary exists on PATH and
	// responds to an info command.
	Available(ctx context.Context) bool

	// ImageExists checks whether the named image exists locally.
	// Returns nil when the image is found, or an error describing the failure.
	ImageExists(ctx context.Context, image string) error

	// Run executes a container and waits for it to exit.
	Run(ctx context.Context, spec RunSpec) error
}

// runtime implements Runtime for a specific container binary. Both Docker
// and Podman share the same logic; they differ only in binary name and the
// subcommand used to check image existence.
type runtime struct {
	bin           string
	imageCheckCmd []string // e.g. ["image", "inspect"] for docker
	exec          proc.Executor
}

func (r *runtime) Name() string { return r.bin }

func (r *runtime) Available(ctx context.Context) bool {
	if _, err := r.exec.LookPath(r.bin); err != nil {
		return false
	}
	return r.exec.RunSilent(ctx, r.bin, "info") == nil
}

func (r *runtime) ImageExists(ctx context.Context, image string) error {
	args := make([]string, 0, len(r.imageCheckCmd)+1)
	args = append(args, r.imageCheckCmd...)
	args = append(args, image)

	if err := r.exec.RunSilent(ctx, r.bin, args...); err != nil {
		return fmt.Errorf("image %s not found in %s: %w", image, r.bin, err)
	}
	return nil
}

func (r *runtime) Run(ctx context.Context, spec RunSpec) error {
	args := []string{"run", "--rm", "--network", "none"}
	if spec.User != "" {
		args = append(args, "--user", spec.User)
	}
	for _, m := range spec.Mounts {
		args = append(args, "-v", m.flag())
	}
	args = append(args, spec.Image)
	args = append(args, spec.Command...)

	if err := r.exec.Run(ctx, r.bin, args, spec.Stdout, spec.Stderr); err != nil {
		return fmt.Errorf("running %s container %s: %w", r.bin, spec.Image, err)
	}
	return nil
}

func newDockerRuntime(exec proc.Executor) *runtime {
	return &runtime{
		bin:           binDocker,
		imageCheckCmd: []string{"image", "inspect"},
		exec:          exec,
	}
}

func newPodmanRuntime(exec proc.Executor) *runtime {
	return &runtime{
		bin:           binPodman,
		imageCheckCmd: []string{"image", "exists"},
		exec:          exec,
	}
}

// ByName returns the runtime for bin ("docker" or "podman") without probing it.
func ByName(bin string, exec proc.Executor) (Runtime, error) {
	switch bin {
	case binDocker:
		return newDockerRuntime(exec), nil
	case binPodman:
		return newPodmanRuntime(exec), nil
	}
	return nil, fmt.Errorf("unknown container runtime %q", bin)
}

// DetectRuntime tries docker first, falls back to podman. Returns an error
// if neither runtime is available.
func DetectRuntime(ctx context.Context, exec proc.Executor) (Runtime, error) {
	docker := newDockerRuntime(exec)
	if docker.Available(ctx) {
		return docker, nil
	}

	podman := newPodmanRuntime(exec)
	if podman.Available(ctx) {
		return podman, nil
	}

	return nil, fmt.Errorf(
		"no container runtime available: neither %s nor %s found or operational",
		binDocker, binPodman,
	)
}

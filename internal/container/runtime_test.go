// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package container

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
)

// mockExecutor records calls and returns configured responses.
type mockExecutor struct {
	availableBins map[string]bool // binary -> whether LookPath succeeds
	runnableCmds  map[string]bool // "bin arg1 arg2" -> whether RunSilent succeeds
	runFunc       func(name string, args []string, stdout, stderr io.Writer) error
}

func (m *mockExecutor) LookPath(file string) (string, error) {
	if m.availableBins[file] {
		return "/usr/bin/" + file, nil
	}
	return "", errors.New("not found: " + file)
}

func (m *mockExecutor) RunSilent(_ context.Context, name string, args ...string) error {
	key := name + " " + strings.Join(args, " ")
	if m.runnableCmds[key] {
		return nil
	}
	return errors.New("command failed: " + key)
}

func (m *mockExecutor) Run(_ context.Context, name string, args []string, stdout, stderr io.Writer) error {
	if m.runFunc != nil {
		return m.runFunc(name, args, stdout, stderr)
	}
	return nil
}

func TestDetectRuntime(t *testing.T) {
	tests := []struct {
		name     string
		exec     *mockExecutor
		wantName string
		wantErr  bool
	}{
		{
			name: "docker available",
			exec: &mockExecutor{
				availableBins: map[string]bool{"docker": true},
				runnableCmds:  map[string]bool{"docker info": true},
			},
			wantName: "docker",
		},
		{
			name: "podman fallback when docker missing",
			exec: &mockExecutor{
				availableBins: map[string]bool{"podman": true},
				runnableCmds:  map[string]bool{"podman info": true},
			},
			wantName: "podman",
		},
		{
			name: "neither available",
			exec: &mockExecutor{
				availableBins: map[string]bool{},
				runnableCmds:  map[string]bool{},
			},
			wantErr: true,
		},
		{
			name: "docker on PATH but info fails, podman works",
			exec: &mockExecutor{
				availableBins: map[string]bool{"docker": true, "podman": true},
				runnableCmds:  map[string]bool{"podman info": true},
			},
			wantName: "podman",
		},
		{
			name: "both available, docker preferred",
			exec: &mockExecutor{
				availableBins: map[string]bool{"docker": true, "podman": true},
				runnableCmds:  map[string]bool{"docker info": true, "podman info": true},
			},
			wantName: "docker",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rt, err := DetectRuntime(context.Background(), tt.exec)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if !strings.Contains(err.Error(), "no container runtime available") {
					t.Errorf("error should mention no runtime available, got: %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if rt.Name() != tt.wantName {
				t.Errorf("got runtime %q, want %q", rt.Name(), tt.wantName)
			}
		})
	}
}

func TestImageExists(t *testing.T) {
	tests := []struct {
		name    string
		mkRT    func(*mockExecutor) Runtime
		image   string
		cmds    map[string]bool
		wantErr bool
	}{
		{
			name:  "docker image exists",
			mkRT:  func(e *mockExecutor) Runtime { return newDockerRuntime(e) },
			image: "libreoffice:latest",
			cmds:  map[string]bool{"docker image inspect libreoffice:latest": true},
		},
		{
			name:    "docker image not found",
			mkRT:    func(e *mockExecutor) Runtime { return newDockerRuntime(e) },
			image:   "libreoffice:latest",
			cmds:    map[string]bool{},
			wantErr: true,
		},
		{
			name:  "podman image exists",
			mkRT:  func(e *mockExecutor) Runtime { return newPodmanRuntime(e) },
			image: "libreoffice:latest",
			cmds:  map[string]bool{"podman image exists libreoffice:latest": true},
		},
		{
			name:    "podman image not found",
			mkRT:    func(e *mockExecutor) Runtime { return newPodmanRuntime(e) },
			image:   "libreoffice:latest",
			cmds:    map[string]bool{},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exec := &mockExecutor{runnableCmds: tt.cmds}
			rt := tt.mkRT(exec)
			err := rt.ImageExists(context.Background(), tt.image)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if !strings.Contains(err.Error(), tt.image) {
					t.Errorf("error should mention image name, got: %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestRun(t *testing.T) {
	spec := RunSpec{
		Image: "libreoffice:latest",
		Mounts: []Mount{
			{Host: "/tmp/in", Container: "/in", ReadOnly: true},
			{Host: "/tmp/out", Container: "/out"},
		},
		Command: []string{"soffice", "--headless", "--convert-to", "pdf", "--outdir", "/out", "/in/report.docx"},
	}

	tests := []struct {
		name     string
		mkRT     func(*mockExecutor) Runtime
		runFunc  func(string, []string, io.Writer, io.Writer) error
		wantBin  string
		wantArgs string
		wantErr  bool
	}{
		{
			name:     "docker run with mounts and command",
			mkRT:     func(e *mockExecutor) Runtime { return newDockerRuntime(e) },
			wantBin:  "docker",
			wantArgs: "run --rm --network none -v /tmp/in:/in:ro -v /tmp/out:/out libreoffice:latest soffice --headless --convert-to pdf --outdir /out /in/report.docx",
		},
		{
			name:     "podman run uses the same arguments",
			mkRT:     func(e *mockExecutor) Runtime { return newPodmanRuntime(e) },
			wantBin:  "podman",
			wantArgs: "run --rm --network none -v /tmp/in:/in:ro -v /tmp/out:/out libreoffice:latest soffice --headless --convert-to pdf --outdir /out /in/report.docx",
		},
		{
			name: "run failure returns wrapped error",
			mkRT: func(e *mockExecutor) Runtime { return newDockerRuntime(e) },
			runFunc: func(string, []string, io.Writer, io.Writer) error {
				return errors.New("container exited with code 1")
			},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotBin, gotArgs string
			exec := &mockExecutor{runFunc: func(name string, args []string, stdout, stderr io.Writer) error {
				gotBin, gotArgs = name, strings.Join(args, " ")
				if tt.runFunc != nil {
					return tt.runFunc(name, args, stdout, stderr)
				}
				return nil
			}}
			err := tt.mkRT(exec).Run(context.Background(), spec)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if !strings.Contains(err.Error(), "libreoffice:latest") {
					t.Errorf("error should mention image, got: %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if gotBin != tt.wantBin {
				t.Errorf("binary = %q, want %q", gotBin, tt.wantBin)
			}
			if gotArgs != tt.wantArgs {
				t.Errorf("args = %q\nwant   %q", gotArgs, tt.wantArgs)
			}
		})
	}
}

func TestRun_User(t *testing.T) {
	var gotArgs string
	exec := &mockExecutor{runFunc: func(_ string, args []string, _, _ io.Writer) error {
		gotArgs = strings.Join(args, " ")
		return nil
	}}
	spec := RunSpec{
		Image:   "libreoffice:latest",
		Mounts:  []Mount{{Host: "/tmp/work", Container: "/work"}},
		Command: []string{"soffice", "--version"},
		User:    "1000:1000",
	}

	if err := newDockerRuntime(exec).Run(context.Background(), spec); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "run --rm --network none --user 1000:1000 -v /tmp/work:/work libreoffice:latest soffice --version"
	if gotArgs != want {
		t.Errorf("args = %q\nwant   %q", gotArgs, want)
	}
}

func TestByName(t *testing.T) {
	exec := &mockExecutor{}
	for _, bin := range []string{"docker", "podman"} {
		rt, err := ByName(bin, exec)
		if err != nil {
			t.Fatalf("ByName(%q): %v", bin, err)
		}
		if rt.Name() != bin {
			t.Errorf("runtime name = %q, want %q", rt.Name(), bin)
		}
	}
	if _, err := ByName("lxc", exec); err == nil {
		t.Error("expected error for unknown runtime")
	}
}

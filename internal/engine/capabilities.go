// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package engine decides which conversion engines handle a document and runs
// them in fallback order: a local headless office suite, the same suite in a
// container, then a text-only reconstruction in pure Go.
//
// What is installed is described by an explicit Capabilities value. Detect
// is the only function that inspects the host; Plan and Runner work purely
// from the Capabilities they are given.
package engine

import (
	"context"
	"fmt"
	"os"
	goruntime "runtime"
	"strings"

	"github.com/pdiddy/easy-converter/internal/container"
	"github.com/pdiddy/easy-converter/internal/proc"
	"github.com/pdiddy/easy-converter/pkg/types"
)

// Capabilities lists the conversion engines available on a host.
type Capabilities struct {
	// GOOS is the target platform, e.g. "linux", "darwin", "windows".
	GOOS string `json:"goos" yaml:"goos"`

	// OfficePath is the resolved soffice binary, empty when none is installed.
	OfficePath string `json:"office_path,omitempty" yaml:"office_path,omitempty"`

	// ContainerRuntime is "docker" or "podman", empty when neither works.
	ContainerRuntime string `json:"container_runtime,omitempty" yaml:"container_runtime,omitempty"`

	// ContainerImage is the office image present in ContainerRuntime, empty
	// when the image is missing.
	ContainerImage string `json:"container_image,omitempty" yaml:"container_image,omitempty"`

	// TextFallback enables the pure Go text-only backend.
	TextFallback bool `json:"text_fallback" yaml:"text_fallback"`
}

// officeCandidates lists where soffice is usually installed, per platform,
// after the PATH lookup fails.
var officeCandidates = map[string][]string{
	"darwin": {
		"/Applications/LibreOffice.app/Contents/MacOS/soffice",
	},
	"windows": {
		`C:\Program Files\LibreOffice\program\soffice.exe`,
		`C:\Program Files (x86)\LibreOffice\program\soffice.exe`,
	},
	"linux": {
		"/usr/lib/libreoffice/program/soffice",
		"/opt/libreoffice/program/soffice",
		"/snap/bin/libreoffice",
	},
}

// officeBinaries are the PATH names tried first.
var officeBinaries = []string{"soffice", "libreoffice"}

// detector probes one host. Tests replace exec and exists.
type detector struct {
	goos   string
	exec   proc.Executor
	exists func(path string) bool
}

// Detect probes the current host for conversion engines.
func Detect(ctx context.Context, cfg types.EngineConfig) Capabilities {
	d := detector{
		goos: goruntime.GOOS,
		exec: proc.OSExecutor{},
		exists: func(path string) bool {
			info, err := os.Stat(path)
			return err == nil && !info.IsDir()
		},
	}
	return d.detect(ctx, cfg)
}

func (d detector) detect(ctx context.Context, cfg types.EngineConfig) Capabilities {
	caps := Capabilities{
		GOOS:         d.goos,
		OfficePath:   d.findOffice(cfg.OfficePath),
		TextFallback: !cfg.DisableTextFallback,
	}

	if cfg.DisableContainer || d.goos == "windows" {
		return caps
	}
	rt, err := container.DetectRuntime(ctx, d.exec)
	if err != nil {
		return caps
	}
	caps.ContainerRuntime = rt.Name()

	image := cfg.ContainerImage
	if image == "" {
		image = types.DefaultConfig().Engine.ContainerImage
	}
	if rt.ImageExists(ctx, image) == nil {
		caps.ContainerImage = image
	}
	return caps
}

func (d detector) findOffice(override string) string {
	if override != "" {
		if d.exists(override) {
			return override
		}
		if p, err := d.exec.LookPath(override); err == nil {
			return p
		}
		return ""
	}

	for _, bin := range officeBinaries {
		name := bin
		if d.goos == "windows" {
			name += ".exe"
		}
		if p, err := d.exec.LookPath(name); err == nil {
			return p
		}
	}
	for _, p := range officeCandidates[d.goos] {
		if d.exists(p) {
			return p
		}
	}
	return ""
}

// String renders the capabilities as one line per engine.
func (c Capabilities) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "platform:  %s\n", c.GOOS)
	fmt.Fprintf(&b, "office:    %s\n", orMissing(c.OfficePath))
	switch {
	case c.ContainerRuntime == "":
		fmt.Fprintf(&b, "container: %s\n", orMissing(""))
	case c.ContainerImage == "":
		fmt.Fprintf(&b, "container: %s (office image missing)\n", c.ContainerRuntime)
	default:
		fmt.Fprintf(&b, "container: %s %s\n", c.ContainerRuntime, c.ContainerImage)
	}
	if c.TextFallback {
		b.WriteString("text:      built in\n")
	} else {
		b.WriteString("text:      disabled\n")
	}
	return b.String()
}

func orMissing(s string) string {
	if s == "" {
		return "not found"
	}
	return s
}

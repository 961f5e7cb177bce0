// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package engine

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/easy-converter/internal/container"
	"github.com/pdiddy/easy-converter/internal/proc"
)

// Backend performs a conversion with one engine.
type Backend interface {
	Kind() Kind
	Convert(ctx context.Context, job Job) error
}

// officeArgs builds the soffice command line converting input into outDir.
// profileDir isolates the user profile so a running desktop instance does
// not swallow the request.
func officeArgs(job Job, input, outDir, profileDir string) []string {
	profile := filepath.ToSlash(profileDir)
	if !strings.HasPrefix(profile, "/") {
		profile = "/" + profile
	}
	args := []string{
		"-env:UserInstallation=file://" + profile,
		"--headless", "--norestore", "--nologo",
	}
	switch job.Direction {
	case ToWord:
		args = append(args, "--infilter=writer_pdf_import", "--convert-to", "docx:MS Word 2007 XML")
	default:
		args = append(args, "--convert-to", "pdf")
	}
	return append(args, "--outdir", outDir, input)
}

// producedName is the file soffice writes into its --outdir.
func producedName(job Job) string {
	base := strings.TrimSuffix(filepath.Base(job.Input), filepath.Ext(job.Input))
	return base + "." + string(job.Direction)
}

// officeBackend runs a locally installed soffice.
type officeBackend struct {
	bin  string
	exec proc.Executor
}

func (b *officeBackend) Kind() Kind { return KindOffice }

func (b *officeBackend) Convert(ctx context.Context, job Job) error {
	tmp, err := os.MkdirTemp("", "easy-converter-office-*")
	if err != nil {
		return fmt.Errorf("creating work directory: %w", err)
	}
	defer os.RemoveAll(tmp)

	outDir := filepath.Join(tmp, "out")
	args := officeArgs(job, job.Input, outDir, filepath.Join(tmp, "profile"))
	if err := b.exec.Run(ctx, b.bin, args, nil, nil); err != nil {
		return fmt.Errorf("running %s: %w", filepath.Base(b.bin), err)
	}
	return collect(filepath.Join(outDir, producedName(job)), job.Output)
}

// containerBackend runs soffice inside a docker or podman image. The input
// directory is mounted read-only at /in and the work directory at /work.
type containerBackend struct {
	runtime container.Runtime
	image   string

	// user is the "uid:gid" the container runs as; empty keeps the image default.
	user string
}

// hostUser returns the calling user as "uid:gid" for container --user, or ""
// on windows where the ids do not exist.
func hostUser(goos string) string {
	if goos == "windows" {
		return ""
	}
	return fmt.Sprintf("%d:%d", os.Getuid(), os.Getgid())
}

func (b *containerBackend) Kind() Kind { return KindContainer }

func (b *containerBackend) Convert(ctx context.Context, job Job) error {
	tmp, err := os.MkdirTemp("", "easy-converter-container-*")
	if err != nil {
		return fmt.Errorf("creating work directory: %w", err)
	}
	defer os.RemoveAll(tmp)

	inDir, err := filepath.Abs(filepath.Dir(job.Input))
	if err != nil {
		return fmt.Errorf("resolving %s: %w", job.Input, err)
	}

	// Created on the host so they are owned by the caller even when the
	// runtime ignores --user, and RemoveAll can clean them up.
	for _, sub := range []string{"out", "profile"} {
		if err := os.MkdirAll(filepath.Join(tmp, sub), 0o755); err != nil {
			return fmt.Errorf("creating work directory: %w", err)
		}
	}

	input := "/in/" + filepath.Base(job.Input)
	cmd := append([]string{"soffice"}, officeArgs(job, input, "/work/out", "/work/profile")...)
	spec := container.RunSpec{
		Image: b.image,
		Mounts: []container.Mount{
			{Host: inDir, Container: "/in", ReadOnly: true},
			{Host: tmp, Container: "/work"},
		},
		Command: cmd,
		User:    b.user,
	}
	if err := b.runtime.Run(ctx, spec); err != nil {
		return err
	}
	return collect(filepath.Join(tmp, "out", producedName(job)), job.Output)
}

// collect moves an engine's output file to its final destination.
func collect(produced, dest string) error {
	if _, err := os.Stat(produced); err != nil {
		return fmt.Errorf("engine produced no output file %s", filepath.Base(produced))
	}
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	if err := os.Rename(produced, dest); err == nil {
		return nil
	}
	return copyFile(produced, dest)
}

// copyFile is the cross-device fallback for collect.
func copyFile(src, dst string) (err error) {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, out.Close())
	}()

	if _, err := io.Copy(out, in); err != nil {
		return fmt.Errorf("copying to %s: %w", dst, err)
	}
	return nil
}

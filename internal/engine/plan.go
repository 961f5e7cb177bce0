// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package engine

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pdiddy/easy-converter/pkg/types"
)

// Direction is the target format of a document conversion.
type Direction string

const (
	ToPDF  Direction = "pdf"
	ToWord Direction = "docx"
)

// Kind identifies one backend in the fallback chain.
type Kind string

const (
	KindOffice    Kind = "office"
	KindContainer Kind = "container"
	KindText      Kind = "text"
)

// PageRange selects source pages for PDF to Word conversion. Start is
// 0-based and End is exclusive; End 0 means through the last page.
type PageRange struct {
	Start int
	End   int
}

// Full reports whether the range covers the whole document.
func (r PageRange) Full() bool { return r.Start == 0 && r.End == 0 }

func (r PageRange) String() string {
	if r.End == 0 {
		return fmt.Sprintf("%d:", r.Start)
	}
	return fmt.Sprintf("%d:%d", r.Start, r.End)
}

// ParsePageRange parses "start:end", "start:", ":end", or a single page
// index "n" (meaning n:n+1). The empty string is the full range.
func ParsePageRange(s string) (PageRange, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return PageRange{}, nil
	}

	startStr, endStr, hasColon := strings.Cut(s, ":")
	var r PageRange
	var err error
	if startStr != "" {
		if r.Start, err = strconv.Atoi(startStr); err != nil {
			return PageRange{}, fmt.Errorf("page range %q: bad start: %w", s, types.ErrInvalidInput)
		}
	}
	switch {
	case !hasColon:
		r.End = r.Start + 1
	case endStr != "":
		if r.End, err = strconv.Atoi(endStr); err != nil {
			return PageRange{}, fmt.Errorf("page range %q: bad end: %w", s, types.ErrInvalidInput)
		}
	}

	if r.Start < 0 || r.End < 0 || (r.End != 0 && r.End <= r.Start) {
		return PageRange{}, fmt.Errorf("page range %q is empty or negative: %w", s, types.ErrInvalidInput)
	}
	return r, nil
}

// Job is one document conversion.
type Job struct {
	Input     string
	Output    string
	Direction Direction

	// Pages applies to ToWord only.
	Pages PageRange
}

// Plan returns the backends able to run job given caps, in the order they
// should be tried. It only looks at its arguments.
//
// Office backends cannot select pages, so a partial page range leaves only
// the text backend. The text backend reads .docx but not legacy .doc files.
func Plan(caps Capabilities, job Job) []Kind {
	partial := job.Direction == ToWord && !job.Pages.Full()

	var kinds []Kind
	if !partial {
		if caps.OfficePath != "" {
			kinds = append(kinds, KindOffice)
		}
		if caps.ContainerRuntime != "" && caps.ContainerImage != "" && caps.GOOS != "windows" {
			kinds = append(kinds, KindContainer)
		}
	}
	if caps.TextFallback && textSupports(job) {
		kinds = append(kinds, KindText)
	}
	return kinds
}

func textSupports(job Job) bool {
	ext := strings.ToLower(filepath.Ext(job.Input))
	switch job.Direction {
	case ToPDF:
		return ext == ".docx"
	case ToWord:
		return ext == ".pdf"
	}
	return false
}

// installHint is shown when no backend can run a job.
func installHint(job Job) string {
	if job.Direction == ToPDF && strings.EqualFold(filepath.Ext(job.Input), ".doc") {
		return "legacy .doc files need LibreOffice: install it from https://www.libreoffice.org/download/ " +
			"or build a libreoffice:latest container image"
	}
	return "install LibreOffice from https://www.libreoffice.org/download/, build a libreoffice:latest " +
		"container image, or enable the text fallback (engine.disable_text_fallback: false)"
}

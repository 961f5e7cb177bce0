// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the easy-converter tools:
// conversion results and statuses, the error taxonomy, and configuration.
package types

import "time"

// ConversionStatus indicates the outcome of a single conversion.
type ConversionStatus string

const (
	ConversionDone    ConversionStatus = "converted"
	ConversionSkipped ConversionStatus = "skipped"
	ConversionFailed  ConversionStatus = "failed"
)

// Mode identifies which converter produced a result.
type Mode string

const (
	ModeImageToPDF Mode = "img2pdf"
	ModeWordToPDF  Mode = "word2pdf"
	ModePDFToWord  Mode = "pdf2word"
)

// Result is what every public conversion operation returns. Failures are
// carried in Kind and Message; no error crosses the operation boundary.
type Result struct {
	Mode Mode `json:"mode" yaml:"mode"`

	// Inputs lists the source files in the order they were consumed.
	Inputs []string `json:"inputs" yaml:"inputs"`

	// Output is the destination path, set even when the conversion failed.
	Output string `json:"output" yaml:"output"`

	// Backend names the engine that produced the output (e.g. "office", "text").
	Backend string `json:"backend,omitempty" yaml:"backend,omitempty"`

	Status ConversionStatus `json:"status" yaml:"status"`

	// Kind classifies a failure. Empty on success.
	Kind ErrorKind `json:"kind,omitempty" yaml:"kind,omitempty"`

	// Message is the human-readable reason for a failure.
	Message string `json:"message,omitempty" yaml:"message,omitempty"`

	// Pages is the number of pages written, when known.
	Pages int `json:"pages,omitempty" yaml:"pages,omitempty"`

	FinishedAt time.Time `json:"finished_at" yaml:"finished_at"`
}

// OK reports whether the conversion succeeded.
func (r Result) OK() bool {
	return r.Status == ConversionDone
}

// Succeeded builds a successful Result.
func Succeeded(mode Mode, inputs []string, output, backend string) Result {
	return Result{
		Mode:       mode,
		Inputs:     inputs,
		Output:     output,
		Backend:    backend,
		Status:     ConversionDone,
		FinishedAt: time.Now().UTC(),
	}
}

// Failed builds a failed Result from err, classifying it with KindOf.
func Failed(mode Mode, inputs []string, output string, err error) Result {
	return Result{
		Mode:       mode,
		Inputs:     inputs,
		Output:     output,
		Status:     ConversionFailed,
		Kind:       KindOf(err),
		Message:    err.Error(),
		FinishedAt: time.Now().UTC(),
	}
}

// Err reconstructs an error from a failed Result. Its text is Message and it
// matches the sentinel for Kind with errors.Is. It returns nil for
// successful results.
func (r Result) Err() error {
	if r.OK() {
		return nil
	}
	return &resultError{msg: r.Message, sentinel: r.Kind.sentinel()}
}

// resultError carries a recorded message and the sentinel it was built from.
type resultError struct {
	msg      string
	sentinel error
}

func (e *resultError) Error() string { return e.msg }

func (e *resultError) Unwrap() error { return e.sentinel }

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResultErr(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		sentinel error
	}{
		{"not found", fmt.Errorf("a.docx: %w", ErrNotFound), ErrNotFound},
		{"invalid input", fmt.Errorf("a.txt is not a PDF file: %w", ErrInvalidInput), ErrInvalidInput},
		{"engine missing", fmt.Errorf("%w for a.doc", ErrEngineMissing), ErrEngineMissing},
		{"engine failed", fmt.Errorf("%w: office: exit 1", ErrEngineFailed), ErrEngineFailed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Failed(ModeWordToPDF, []string{"in"}, "out", tt.err)
			err := r.Err()
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.sentinel)
			// The message is reported once, on one line.
			assert.Equal(t, tt.err.Error(), err.Error())
			assert.False(t, strings.Contains(err.Error(), "\n"))
		})
	}
}

func TestResultErr_Other(t *testing.T) {
	err := Failed(ModePDFToWord, nil, "", errors.New("disk full")).Err()
	require.Error(t, err)
	assert.Equal(t, "disk full", err.Error())
	assert.Equal(t, KindOther, KindOf(err))
}

func TestResultErr_Success(t *testing.T) {
	assert.NoError(t, Succeeded(ModeImageToPDF, []string{"a.png"}, "a.pdf", "gofpdf").Err())
}

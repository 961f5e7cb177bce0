// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package docx

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

const (
	contentTypesXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>
<Default Extension="xml" ContentType="application/xml"/>
<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>
</Types>`

	packageRelsXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>
</Relationships>`

	documentHeader = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>`

	documentFooter = `<w:sectPr><w:pgSz w:w="11906" w:h="16838"/></w:sectPr></w:body></w:document>`
)

// Builder accumulates paragraphs for a new word document.
type Builder struct {
	body    bytes.Buffer
	pending bool
}

// NewBuilder returns an empty document builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// Paragraph appends one paragraph per line of text. Empty text appends an
// empty paragraph.
func (b *Builder) Paragraph(text string) {
	for _, line := range strings.Split(text, "\n") {
		b.body.WriteString("<w:p>")
		if b.pending {
			b.body.WriteString(`<w:r><w:br w:type="page"/></w:r>`)
			b.pending = false
		}
		if line != "" {
			b.body.WriteString(`<w:r><w:t xml:space="preserve">`)
			xml.EscapeText(&b.body, []byte(line))
			b.body.WriteString("</w:t></w:r>")
		}
		b.body.WriteString("</w:p>")
	}
}

// PageBreak makes the next paragraph start on a new page.
func (b *Builder) PageBreak() {
	b.pending = true
}

// WriteTo writes the .docx package to w.
func (b *Builder) WriteTo(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	parts := []struct {
		name string
		body string
	}{
		{"[Content_Types].xml", contentTypesXML},
		{"_rels/.rels", packageRelsXML},
		{documentPart, documentHeader + b.body.String() + documentFooter},
	}
	for _, p := range parts {
		fw, err := zw.Create(p.name)
		if err != nil {
			return 0, fmt.Errorf("creating %s: %w", p.name, err)
		}
		if _, err := io.WriteString(fw, p.body); err != nil {
			return 0, fmt.Errorf("writing %s: %w", p.name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return 0, fmt.Errorf("finishing docx package: %w", err)
	}
	return buf.WriteTo(w)
}

// Save writes the document to path, creating parent directories.
func (b *Builder) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if _, err := b.WriteTo(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

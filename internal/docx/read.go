// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package docx reads the text content of Office Open XML word documents and
// writes minimal ones. Only paragraphs, runs (bold, italic, size), tables,
// and page breaks are understood; everything else is ignored.
package docx

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pdiddy/easy-converter/pkg/types"
)

const documentPart = "word/document.xml"

// Document is the block-level content of a word document in reading order.
type Document struct {
	Blocks []Block
}

// Block holds exactly one of Paragraph or Table.
type Block struct {
	Paragraph *Paragraph
	Table     *Table
}

// Paragraph is a run sequence with paragraph-level properties.
type Paragraph struct {
	// Style is the paragraph style id, e.g. "Heading1".
	Style string

	// Align is "left", "center", "right", or "both" (justified).
	Align string

	Runs []Run

	// PageBreakBefore is set when the paragraph starts with a hard page break.
	PageBreakBefore bool
}

// Text concatenates the text of every run.
func (p Paragraph) Text() string {
	var b strings.Builder
	for _, r := range p.Runs {
		b.WriteString(r.Text)
	}
	return b.String()
}

// Run is a span of text sharing character formatting.
type Run struct {
	Text   string
	Bold   bool
	Italic bool

	// Size is the font size in points; 0 means inherited.
	Size float64
}

// Table is a grid of cell texts, row by row.
type Table struct {
	Rows [][]string
}

// ReadFile parses the document at path.
func ReadFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", path, types.ErrNotFound)
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	doc, err := Parse(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return doc, nil
}

// Parse reads a .docx package from r.
func Parse(r io.ReaderAt, size int64) (*Document, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("not a docx package: %v: %w", err, types.ErrInvalidInput)
	}

	for _, f := range zr.File {
		if f.Name != documentPart {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("opening %s: %w", documentPart, err)
		}
		defer rc.Close()
		return decodeBody(rc)
	}
	return nil, fmt.Errorf("package has no %s: %w", documentPart, types.ErrInvalidInput)
}

// --- XML shapes ---

type valAttr struct {
	Val string `xml:"val,attr"`
}

// on interprets an OOXML toggle property such as <w:b/> or <w:b w:val="0"/>.
func (v *valAttr) on() bool {
	if v == nil {
		return false
	}
	switch strings.ToLower(v.Val) {
	case "0", "false", "off", "none":
		return false
	}
	return true
}

type xmlRunProps struct {
	Bold   *valAttr `xml:"b"`
	Italic *valAttr `xml:"i"`
	Size   *valAttr `xml:"sz"`
}

type xmlRunChild struct {
	XMLName xml.Name
	Type    string `xml:"type,attr"`
	Text    string `xml:",chardata"`
}

type xmlRun struct {
	Props   *xmlRunProps  `xml:"rPr"`
	Content []xmlRunChild `xml:",any"`
}

type xmlParagraph struct {
	Props *struct {
		Style *valAttr `xml:"pStyle"`
		Align *valAttr `xml:"jc"`
	} `xml:"pPr"`
	Runs     []xmlRun `xml:"r"`
	LinkRuns []xmlRun `xml:"hyperlink>r"`
}

type xmlCell struct {
	Paragraphs []xmlParagraph `xml:"p"`
}

type xmlRow struct {
	Cells []xmlCell `xml:"tc"`
}

type xmlTable struct {
	Rows []xmlRow `xml:"tr"`
}

// decodeBody streams the document part and keeps paragraphs and tables that
// are direct children of <w:body> in their original order.
func decodeBody(r io.Reader) (*Document, error) {
	dec := xml.NewDecoder(r)
	doc := &Document{}
	depth := 0
	inBody := false

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("decoding %s: %v: %w", documentPart, err, types.ErrInvalidInput)
		}

		switch el := tok.(type) {
		case xml.StartElement:
			depth++
			if el.Name.Local == "body" && depth == 2 {
				inBody = true
				continue
			}
			if !inBody || depth != 3 {
				continue
			}
			switch el.Name.Local {
			case "p":
				var p xmlParagraph
				if err := dec.DecodeElement(&p, &el); err != nil {
					return nil, fmt.Errorf("decoding paragraph: %v: %w", err, types.ErrInvalidInput)
				}
				para := p.convert()
				doc.Blocks = append(doc.Blocks, Block{Paragraph: &para})
				depth--
			case "tbl":
				var t xmlTable
				if err := dec.DecodeElement(&t, &el); err != nil {
					return nil, fmt.Errorf("decoding table: %v: %w", err, types.ErrInvalidInput)
				}
				table := t.convert()
				doc.Blocks = append(doc.Blocks, Block{Table: &table})
				depth--
			}
		case xml.EndElement:
			if el.Name.Local == "body" && depth == 2 {
				inBody = false
			}
			depth--
		}
	}
	return doc, nil
}

func (p xmlParagraph) convert() Paragraph {
	var para Paragraph
	if p.Props != nil {
		if p.Props.Style != nil {
			para.Style = p.Props.Style.Val
		}
		if p.Props.Align != nil {
			para.Align = p.Props.Align.Val
		}
	}

	runs := append(append([]xmlRun{}, p.Runs...), p.LinkRuns...)
	for i, xr := range runs {
		run, pageBreak := xr.convert()
		if pageBreak && i == 0 && run.Text == "" {
			para.PageBreakBefore = true
			continue
		}
		if run.Text != "" {
			para.Runs = append(para.Runs, run)
		}
	}
	return para
}

func (xr xmlRun) convert() (Run, bool) {
	var run Run
	if xr.Props != nil {
		run.Bold = xr.Props.Bold.on()
		run.Italic = xr.Props.Italic.on()
		if xr.Props.Size != nil {
			if halfPoints, err := strconv.ParseFloat(xr.Props.Size.Val, 64); err == nil {
				run.Size = halfPoints / 2
			}
		}
	}

	var b strings.Builder
	pageBreak := false
	for _, c := range xr.Content {
		switch c.XMLName.Local {
		case "t":
			b.WriteString(c.Text)
		case "tab":
			b.WriteByte('\t')
		case "br", "cr":
			if c.Type == "page" {
				pageBreak = true
				continue
			}
			b.WriteByte('\n')
		}
	}
	run.Text = b.String()
	return run, pageBreak
}

func (t xmlTable) convert() Table {
	var table Table
	for _, row := range t.Rows {
		cells := make([]string, len(row.Cells))
		for i, c := range row.Cells {
			texts := make([]string, 0, len(c.Paragraphs))
			for _, p := range c.Paragraphs {
				texts = append(texts, p.convert().Text())
			}
			cells[i] = strings.Join(texts, "\n")
		}
		table.Rows = append(table.Rows, cells)
	}
	return table
}

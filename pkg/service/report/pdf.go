package report

import (
	"bytes"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/bcplanner/pkg/domain/model"
)

const (
	fontFamily = "Helvetica"
	lineHeight = 6.0
	margin     = 20.0
)

// Render builds the document for a bundle and renders it as PDF
func Render(b *model.Bundle) ([]byte, error) {
	data, _, err := render(Build(b))
	return data, err
}

// RenderDocument renders an already built document as PDF
func RenderDocument(doc *Document) ([]byte, error) {
	data, _, err := render(doc)
	return data, err
}

// render writes the title page with the table of contents, then every
// section on its own page. It returns the PDF bytes and the page count.
func render(doc *Document) ([]byte, int, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetTitle(doc.Title, true)
	pdf.SetCreator("bcplanner", true)
	if !doc.GeneratedAt.IsZero() {
		pdf.SetCreationDate(doc.GeneratedAt)
	} else {
		pdf.SetCreationDate(time.Unix(0, 0).UTC())
	}
	pdf.SetMargins(margin, margin, margin)
	pdf.SetAutoPageBreak(true, margin)
	pdf.AliasNbPages("")

	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont(fontFamily, "I", 8)
		pdf.SetTextColor(128, 128, 128)
		pdf.CellFormat(0, 10, tr(fmt.Sprintf("%s - Page %d of {nb}", doc.Title, pdf.PageNo())), "", 0, "C", false, 0, "")
		pdf.SetTextColor(0, 0, 0)
	})

	links := make([]int, len(doc.Sections))
	for i := range links {
		links[i] = pdf.AddLink()
	}

	// title page
	pdf.AddPage()
	pdf.SetFont(fontFamily, "B", 24)
	pdf.Ln(30)
	pdf.CellFormat(0, 12, tr(doc.Title), "", 1, "C", false, 0, "")
	pdf.SetFont(fontFamily, "", 12)
	pdf.CellFormat(0, 8, tr("Version "+doc.Version), "", 1, "C", false, 0, "")
	if !doc.GeneratedAt.IsZero() {
		pdf.CellFormat(0, 8, tr("Generated "+doc.GeneratedAt.UTC().Format("2006-01-02")), "", 1, "C", false, 0, "")
	}
	pdf.Ln(15)

	pdf.SetFont(fontFamily, "B", 16)
	pdf.CellFormat(0, 10, "Table of Contents", "", 1, "L", false, 0, "")
	pdf.SetFont(fontFamily, "", 12)
	for i, s := range doc.Sections {
		pdf.CellFormat(0, 8, tr(fmt.Sprintf("%d. %s", s.Number, s.Title)), "", 1, "L", false, links[i], "")
	}

	for i, s := range doc.Sections {
		pdf.AddPage()
		pdf.SetLink(links[i], 0, -1)
		writeSection(pdf, tr, s)
	}

	if err := pdf.Error(); err != nil {
		return nil, 0, goerr.Wrap(err, "failed to lay out report")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, 0, goerr.Wrap(err, "failed to write report PDF")
	}
	return buf.Bytes(), pdf.PageCount(), nil
}

func writeSection(pdf *fpdf.Fpdf, tr func(string) string, s Section) {
	pdf.SetFont(fontFamily, "B", 18)
	pdf.CellFormat(0, 12, tr(fmt.Sprintf("%d. %s", s.Number, s.Title)), "B", 1, "L", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont(fontFamily, "", 11)
	for _, p := range s.Paragraphs {
		pdf.MultiCell(0, lineHeight, tr(p), "", "L", false)
		pdf.Ln(2)
	}

	for _, b := range s.Blocks {
		pdf.Ln(2)
		if b.Heading != "" {
			pdf.SetFont(fontFamily, "B", 13)
			pdf.MultiCell(0, 8, tr(b.Heading), "", "L", false)
		}
		pdf.SetFont(fontFamily, "", 11)
		for _, line := range b.Lines {
			pdf.SetX(margin + 4)
			pdf.MultiCell(0, lineHeight, tr("- "+line), "", "L", false)
		}
	}
}

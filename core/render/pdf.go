package render

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/jung-kurt/gofpdf"
	"golang.org/x/net/html"

	"github.com/gaurav-prasanna/mdsafe/core"
)

// PDFRenderer lays the sanitized fragment out as an A4 PDF.
// Block elements map to styled paragraphs. Inline markup is flattened to text.
type PDFRenderer struct {
	compress bool
}

// NewPDFRenderer creates a PDFRenderer.
func NewPDFRenderer() *PDFRenderer {
	return &PDFRenderer{compress: true}
}

// Render converts fragment into PDF bytes.
func (r *PDFRenderer) Render(fragment string, meta core.DocumentMeta) ([]byte, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetCompression(r.compress)
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	w := &pdfWriter{pdf: pdf, tr: pdf.UnicodeTranslatorFromDescriptor("")}

	if meta.Title != "" {
		pdf.SetTitle(meta.Title, true)
		pdf.SetFont("Helvetica", "B", 18)
		pdf.MultiCell(0, 8, w.tr(meta.Title), "", "L", false)
		pdf.Ln(4)
	}

	if meta.Source != "" {
		pdf.SetFont("Helvetica", "I", 9)
		pdf.SetTextColor(100, 100, 100)
		pdf.MultiCell(0, 5, w.tr("Source: "+meta.Source), "", "L", false)
		pdf.SetTextColor(0, 0, 0)
		pdf.Ln(6)
	}

	w.blocks(doc.Find("body").Contents())

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("writing PDF: %w", err)
	}
	return buf.Bytes(), nil
}

// Extension returns the file extension for PDF output.
func (r *PDFRenderer) Extension() string {
	return ".pdf"
}

type pdfWriter struct {
	pdf *gofpdf.Fpdf
	tr  func(string) string
}

func (w *pdfWriter) blocks(sel *goquery.Selection) {
	sel.Each(func(_ int, s *goquery.Selection) {
		w.block(s)
	})
}

func (w *pdfWriter) block(s *goquery.Selection) {
	n := s.Get(0)
	if n.Type == html.TextNode {
		if text := collapse(n.Data); text != "" {
			w.paragraph(text)
		}
		return
	}
	if n.Type != html.ElementNode {
		return
	}

	switch tag := goquery.NodeName(s); tag {
	case "h1", "h2", "h3", "h4", "h5", "h6":
		level, _ := strconv.Atoi(tag[1:])
		w.heading(collapse(s.Text()), level)
	case "ul", "nl":
		s.ChildrenFiltered("li").Each(func(_ int, li *goquery.Selection) {
			w.listItem("• ", li)
		})
	case "ol":
		s.ChildrenFiltered("li").Each(func(i int, li *goquery.Selection) {
			w.listItem(strconv.Itoa(i+1)+". ", li)
		})
	case "pre":
		w.code(s.Text())
	case "blockquote":
		left, top, right, _ := w.pdf.GetMargins()
		w.pdf.SetLeftMargin(left + 8)
		w.pdf.SetX(left + 8)
		w.blocks(s.Contents())
		w.pdf.SetMargins(left, top, right)
		w.pdf.SetX(left)
	case "div":
		w.blocks(s.Contents())
	case "table":
		w.table(s)
	case "hr":
		y := w.pdf.GetY() + 2
		left, _, right, _ := w.pdf.GetMargins()
		pageW, _ := w.pdf.GetPageSize()
		w.pdf.Line(left, y, pageW-right, y)
		w.pdf.Ln(5)
	case "br":
		w.pdf.Ln(5)
	default:
		if text := collapse(s.Text()); text != "" {
			w.paragraph(text)
		}
	}
}

// heading sets the font size based on heading level and writes text.
func (w *pdfWriter) heading(text string, level int) {
	sizes := map[int]float64{1: 18, 2: 15, 3: 13, 4: 12, 5: 11, 6: 10}
	size, ok := sizes[level]
	if !ok {
		size = 10
	}
	w.pdf.Ln(4)
	w.pdf.SetFont("Helvetica", "B", size)
	w.pdf.MultiCell(0, size*0.6, w.tr(text), "", "L", false)
	w.pdf.Ln(2)
}

func (w *pdfWriter) paragraph(text string) {
	w.pdf.SetFont("Helvetica", "", 10)
	w.pdf.MultiCell(0, 5, w.tr(text), "", "L", false)
	w.pdf.Ln(3)
}

func (w *pdfWriter) listItem(marker string, li *goquery.Selection) {
	w.pdf.SetFont("Helvetica", "", 10)
	w.pdf.MultiCell(0, 5, w.tr(marker+collapse(li.Text())), "", "L", false)
}

func (w *pdfWriter) code(text string) {
	w.pdf.Ln(2)
	w.pdf.SetFont("Courier", "", 9)
	w.pdf.SetFillColor(245, 245, 245)
	for _, line := range strings.Split(strings.TrimRight(text, "\n"), "\n") {
		w.pdf.MultiCell(0, 4.5, w.tr(line), "", "L", true)
	}
	w.pdf.Ln(2)
}

func (w *pdfWriter) table(s *goquery.Selection) {
	w.pdf.Ln(2)
	s.Find("tr").Each(func(_ int, tr *goquery.Selection) {
		var cells []string
		bold := tr.ChildrenFiltered("th").Length() > 0
		tr.ChildrenFiltered("th, td").Each(func(_ int, cell *goquery.Selection) {
			cells = append(cells, collapse(cell.Text()))
		})
		style := ""
		if bold {
			style = "B"
		}
		w.pdf.SetFont("Helvetica", style, 10)
		w.pdf.MultiCell(0, 5, w.tr(strings.Join(cells, " | ")), "", "L", false)
	})
	w.pdf.Ln(3)
}

// collapse joins runs of whitespace into single spaces.
func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

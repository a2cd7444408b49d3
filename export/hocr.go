package export

import (
	"fmt"
	"io"
	"math"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/tsawler/textlines/layout"
	"github.com/tsawler/textlines/model"
	"github.com/tsawler/textlines/pages"
	"github.com/tsawler/textlines/text"
)

// HOCROptions configures the hOCR writer
type HOCROptions struct {
	// Title is the document title
	Title string

	// Words adds an ocrx_word element per word
	Words bool
}

// DefaultHOCROptions returns options that write words
func DefaultHOCROptions() HOCROptions {
	return HOCROptions{Words: true}
}

const capabilities = "ocr_page ocr_carea ocr_line ocrx_word"

// WriteHOCR writes the pages as an hOCR document. Pages become ocr_page
// elements, columns ocr_carea, lines ocr_line and words ocrx_word, in
// reading order. Boxes are in points from the top left corner of the crop
// box.
func WriteHOCR(w io.Writer, doc []*pages.TextPage, opts HOCROptions) error {
	root := &html.Node{Type: html.DocumentNode}
	root.AppendChild(&html.Node{Type: html.DoctypeNode, Data: "html"})

	htmlEl := element(atom.Html)
	root.AppendChild(htmlEl)

	head := element(atom.Head)
	htmlEl.AppendChild(head)
	title := element(atom.Title)
	title.AppendChild(textNode(opts.Title))
	head.AppendChild(title)
	head.AppendChild(element(atom.Meta, attr("charset", "utf-8")))
	head.AppendChild(element(atom.Meta, attr("name", "ocr-system"), attr("content", "textlines")))
	head.AppendChild(element(atom.Meta, attr("name", "ocr-capabilities"), attr("content", capabilities)))

	body := element(atom.Body)
	htmlEl.AppendChild(body)
	for _, p := range doc {
		body.AppendChild(pageNode(p, opts))
	}

	if err := html.Render(w, root); err != nil {
		return fmt.Errorf("writing hocr: %w", err)
	}
	return nil
}

func pageNode(p *pages.TextPage, opts HOCROptions) *html.Node {
	crop := p.CropBox
	page := element(atom.Div,
		attr("class", "ocr_page"),
		attr("id", fmt.Sprintf("page_%d", p.Index+1)),
		attr("title", fmt.Sprintf("bbox 0 0 %d %d; ppageno %d", round(crop.Width), round(crop.Height), p.Index)),
	)

	for ci, c := range p.Columns() {
		area := element(atom.Div,
			attr("class", "ocr_carea"),
			attr("id", fmt.Sprintf("block_%d_%d", p.Index+1, ci+1)),
			attr("title", "bbox "+hocrBox(c.BBox, crop)),
		)
		for li, l := range c.Lines {
			if line := lineNode(l, crop, fmt.Sprintf("%d_%d_%d", p.Index+1, ci+1, li+1), opts); line != nil {
				area.AppendChild(line)
			}
		}
		page.AppendChild(area)
	}
	return page
}

func lineNode(l *layout.Line, crop model.BBox, id string, opts HOCROptions) *html.Node {
	words := l.Words()
	if len(words) == 0 {
		return nil
	}

	line := element(atom.Span,
		attr("class", "ocr_line"),
		attr("id", "line_"+id),
		attr("title", fmt.Sprintf("bbox %s; x_size %.2f", hocrBox(l.BBox(false), crop), l.FontSize())),
	)
	if l.Direction() == text.RTL {
		line.Attr = append(line.Attr, attr("dir", "rtl"))
	}

	if !opts.Words {
		line.AppendChild(textNode(l.Text()))
		return line
	}
	for i, w := range words {
		if i > 0 {
			line.AppendChild(textNode(" "))
		}
		word := element(atom.Span,
			attr("class", "ocrx_word"),
			attr("id", fmt.Sprintf("word_%s_%d", id, i+1)),
			attr("title", "bbox "+hocrBox(w.BBox, crop)),
		)
		word.AppendChild(textNode(w.Text))
		line.AppendChild(word)
	}
	return line
}

// hocrBox formats b as "x0 y0 x1 y1" with y growing downwards from the top
// of crop
func hocrBox(b, crop model.BBox) string {
	return fmt.Sprintf("%d %d %d %d",
		round(b.Left()-crop.Left()), round(crop.Top()-b.Top()),
		round(b.Right()-crop.Left()), round(crop.Top()-b.Bottom()))
}

func round(v float64) int { return int(math.Round(v)) }

func element(a atom.Atom, attrs ...html.Attribute) *html.Node {
	return &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String(), Attr: attrs}
}

func attr(key, val string) html.Attribute {
	return html.Attribute{Key: key, Val: val}
}

func textNode(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}

package export

import (
	"bufio"
	"fmt"
	"io"

	"github.com/tsawler/textlines/pages"
)

// WriteText writes the text of the pages in reading order, one line per
// row and a form feed between pages
func WriteText(w io.Writer, doc []*pages.TextPage) error {
	bw := bufio.NewWriter(w)
	for i, p := range doc {
		if i > 0 {
			bw.WriteString("\f")
		}
		if s := p.Text(); s != "" {
			bw.WriteString(s)
			bw.WriteByte('\n')
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("writing text: %w", err)
	}
	return nil
}

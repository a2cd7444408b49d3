package textlines

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tsawler/textlines/analyzer"
	"github.com/tsawler/textlines/pages"
)

// Warning is a non-fatal problem met during extraction
type Warning struct {
	// Page is the 1-based page the problem was met on
	Page int

	// Operator is the content stream operator involved, if any
	Operator string

	Message string
	Err     error
}

func (w Warning) String() string {
	if w.Operator != "" {
		return fmt.Sprintf("page %d: %s: %s", w.Page, w.Operator, w.Message)
	}
	return fmt.Sprintf("page %d: %s", w.Page, w.Message)
}

func pageWarning(page int, aw analyzer.Warning) Warning {
	w := Warning{Page: page + 1, Operator: aw.Operator, Err: aw}
	if aw.Err != nil {
		w.Message = aw.Err.Error()
	}
	return w
}

// skippedWarning reports a page dropped under ContinueOnError
func skippedWarning(err error) Warning {
	w := Warning{Message: err.Error(), Err: err}
	var pe *pages.PageError
	if errors.As(err, &pe) {
		w.Page = pe.Page + 1
	}
	var se *analyzer.StructuralError
	if errors.As(err, &se) {
		w.Operator = se.Operator
	}
	return w
}

// FormatWarnings returns the warnings one per line
func FormatWarnings(warnings []Warning) string {
	lines := make([]string, len(warnings))
	for i, w := range warnings {
		lines[i] = w.String()
	}
	return strings.Join(lines, "\n")
}

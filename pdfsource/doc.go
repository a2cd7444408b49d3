// Package pdfsource reads PDF documents with pdfcpu and exposes their pages
// as analyzer canvases.
//
// A [Document] is a pages.Source: each page provides its decoded content,
// its crop box and its resources. Resource lookups build font metrics from
// font dictionaries (simple fonts, the standard 14, Type0 fonts with an
// embedded TrueType program), form XObjects and graphics state parameter
// dictionaries. Fonts and forms are cached per object, so a font shared by
// many pages is built once.
//
//	doc, err := pdfsource.Open("report.pdf")
//	if err != nil {
//	    return err
//	}
//	result, err := pages.AnalyzeDocument(ctx, doc, pages.DefaultOptions())
//
// Only TrueType programs (FontFile2) are read; Type 1 and CFF programs
// fall back to the Widths array and the descriptor. Predefined CJK CMaps
// other than Identity-H are read as Identity-H.
package pdfsource

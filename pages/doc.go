// Package pages runs the content stream analysis and line reconstruction
// of whole pages and documents.
//
// A [PageAnalyzer] interprets one page with a text-showing hook that turns
// every text operator into a word group. Groups without glyphs are
// dropped; the others are numbered in stream order and handed to
// [layout.Run]. The painted rules and rectangles and glyph size samples
// are collected on the way.
//
//	pa := pages.NewPageAnalyzer(pages.DefaultOptions())
//	page, err := pa.Analyze(ctx, 0, canvas)
//	if err != nil {
//	    return err
//	}
//	fmt.Println(page.Text())
//
// [AnalyzeDocument] analyzes the pages of a [Source] in parallel, one page
// per worker, and merges the statistics into [DocumentStats] afterwards.
//
// # Memory
//
// [TextPage.Evict] drops the words of every group. Accessing them later
// interprets the page content again.
package pages

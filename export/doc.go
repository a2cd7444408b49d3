// Package export writes analyzed pages.
//
// [WriteHOCR] produces an hOCR document, the HTML microformat used by OCR
// tools, so that reconstructed lines and words can be consumed by the same
// downstream tooling:
//
//	<div class="ocr_page" title="bbox 0 0 612 792; ppageno 0">
//	  <div class="ocr_carea" ...>
//	    <span class="ocr_line" title="bbox 72 84 204 94; x_size 12.00">
//	      <span class="ocrx_word" title="bbox 72 84 108 94">Hello</span> ...
//
// Lines of right-to-left text carry dir="rtl".
//
// [WriteText] writes plain text in reading order.
package export

package textlines_test

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/tsawler/textlines"
	"github.com/tsawler/textlines/export"
	"github.com/tsawler/textlines/logger"
	"github.com/tsawler/textlines/pages"
	"github.com/tsawler/textlines/pdfsource"
)

// These examples keep the README samples compiling. They have no output
// section because they need a PDF file.

func Example_extractText() {
	text, warnings, err := textlines.Open("document.pdf").Text()
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(text)

	for _, w := range warnings {
		fmt.Println("Warning:", w)
	}
}

func Example_extractLines() {
	cfg := textlines.NewDefaultConfig()
	cfg.Workers = 4
	cfg.MergeSmall = true

	lines, _, err := textlines.Open("document.pdf").
		Pages(1, 2, 3).
		WithConfig(cfg).
		Lines()
	if err != nil {
		log.Fatal(err)
	}
	for _, l := range lines {
		fmt.Println(l)
	}
}

func Example_hocr() {
	f, err := os.Create("document.hocr")
	if err != nil {
		log.Fatal(err)
	}
	defer f.Close()

	if _, err := textlines.Open("document.pdf").HOCR(f); err != nil {
		log.Fatal(err)
	}
}

func Example_lowLevel() {
	logger.SetLogger(logger.NewLogrus(logrus.New()))

	doc, err := pdfsource.Open("document.pdf")
	if err != nil {
		log.Fatal(err)
	}
	result, err := pages.AnalyzeDocument(context.Background(), doc, pages.DefaultOptions())
	if err != nil {
		log.Fatal(err)
	}
	for _, p := range result.Pages {
		for _, l := range p.OrderedLines() {
			fmt.Printf("%v %q\n", l.BBox(false), l.Text())
		}
	}
	if err := export.WriteText(os.Stdout, result.Pages); err != nil {
		log.Fatal(err)
	}
}

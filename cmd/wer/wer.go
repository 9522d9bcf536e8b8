package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/ughe/asreval/corpus"
	"github.com/ughe/asreval/report"
)

var (
	instances  bool
	ids        bool
	confusions bool
	lengths    bool
	minCount   int
)

func init() {
	flag.BoolVar(&instances, "i", false, "Print the individual sentences and their errors")
	flag.BoolVar(&instances, "print-instances", false, "Same as -i")
	flag.BoolVar(&ids, "id", false, "Hypothesis and reference files have ids in the last token")
	flag.BoolVar(&ids, "has-ids", false, "Same as -id")
	flag.BoolVar(&confusions, "c", false, "Print tables of which words were confused")
	flag.BoolVar(&confusions, "confusions", false, "Same as -c")
	flag.BoolVar(&lengths, "p", false, "Print table of average WER grouped by reference sentence length")
	flag.BoolVar(&lengths, "print-wer-vs-length", false, "Same as -p")
	flag.IntVar(&minCount, "m", 10, "Minimum word count to show a word in confusions")
	flag.IntVar(&minCount, "min-word-count", 10, "Same as -m")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s [-i] [-id] [-c] [-p] [-m count] ref.txt hyp.txt\n\n", os.Args[0])
		flag.PrintDefaults()
	}
}

func wer(refFilename, hypFilename string) error {
	ref, err := os.Open(refFilename)
	if err != nil {
		return err
	}
	defer ref.Close()
	hyp, err := os.Open(hypFilename)
	if err != nil {
		return err
	}
	defer hyp.Close()

	s := corpus.NewSession(corpus.Options{HasIDs: ids, Confusions: confusions, Diff: instances})
	err = s.Run(context.Background(), ref, hyp, func(r *corpus.Result) error {
		if instances {
			return report.WriteInstance(os.Stdout, r)
		}
		return nil
	})
	if err != nil {
		return err
	}
	return report.WriteSummary(os.Stdout, s.Summary(), report.Options{
		Confusions: confusions,
		Lengths:    lengths,
		MinCount:   minCount,
	})
}

func main() {
	flag.Parse()
	if flag.NArg() != 2 {
		flag.Usage()
		os.Exit(1)
	}
	if err := wer(flag.Arg(0), flag.Arg(1)); err != nil {
		log.Fatal(err)
	}
}

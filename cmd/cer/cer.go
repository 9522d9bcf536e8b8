package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/ughe/asreval/corpus"
	"github.com/ughe/asreval/editdist"
	"github.com/ughe/asreval/transcript"
)

// cer pairs the lines of test and truth and returns the corpus character
// error rate. Whitespace is not scored.
func cer(testFilename, truthFilename string) (float64, error) {
	test, err := os.Open(testFilename)
	if err != nil {
		return 0, err
	}
	defer test.Close()
	truth, err := os.Open(truthFilename)
	if err != nil {
		return 0, err
	}
	defer truth.Close()

	s := corpus.NewSession(corpus.Options{Tokenize: transcript.Chars})
	if err := s.Run(context.Background(), truth, test, nil); err != nil {
		return 0, err
	}
	t := s.Totals()
	return editdist.CER(t.Errors, t.RefTokens), nil
}

func main() {
	if len(os.Args) != 3 {
		log.Fatal("usage: cer test.txt truth.txt")
	}
	e, err := cer(os.Args[1], os.Args[2])
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("%v\n", e)
}

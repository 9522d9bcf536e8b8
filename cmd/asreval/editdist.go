package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/ughe/asreval/editdist"
	"github.com/ughe/asreval/util"
)

func editdistCommand(srcFilename, dstFilename string, cer, words bool, stdout io.Writer) error {
	bufa, err := util.Read(srcFilename)
	if err != nil {
		return err
	}
	bufb, err := util.Read(dstFilename)
	if err != nil {
		return err
	}
	var dist, blen int
	if words {
		a, b := strings.Fields(string(bufa)), strings.Fields(string(bufb))
		dist, blen = editdist.Distance(a, b), len(b)
	} else {
		dist, blen = editdist.Levenshtein(bufa, bufb), len(bufb)
	}
	if cer {
		fmt.Fprintf(stdout, "%.5f\n", editdist.CER(dist, blen))
	} else {
		fmt.Fprintf(stdout, "%d\n", dist)
	}
	return nil
}

package main

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/ughe/asreval/corpus"
	"github.com/ughe/asreval/report"
	"github.com/ughe/asreval/transcript"
	"github.com/ughe/asreval/util"
)

type evalConfig struct {
	ref, hyp   string
	instances  bool
	ids        bool
	confusions bool
	lengths    bool
	minCount   int
	chars      bool
	group      bool
	workers    int
	strict     bool
	jsonOut    string
	pdfOut     string
	keys       string
}

// Scores hyp against ref line by line and prints the report to stdout
func evalCommand(ctx context.Context, c evalConfig, stdin io.Reader, stdout, stderr io.Writer) error {
	opener := transcript.Opener{CredentialsPath: c.keys, Stdin: stdin}
	ref, err := opener.Open(ctx, c.ref)
	if err != nil {
		return err
	}
	defer ref.Close()
	hyp, err := opener.Open(ctx, c.hyp)
	if err != nil {
		return err
	}
	defer hyp.Close()

	tokenize := transcript.Words
	if c.chars {
		tokenize = transcript.Chars
	}
	s := corpus.NewSession(corpus.Options{
		HasIDs:     c.ids,
		Confusions: c.confusions,
		Diff:       c.instances || c.pdfOut != "",
		MergeGaps:  c.group,
		Strict:     c.strict,
		Workers:    c.workers,
		Tokenize:   tokenize,
	})

	keep := c.jsonOut != "" || c.pdfOut != ""
	var instances []*corpus.Result
	err = s.Run(ctx, ref, hyp, func(r *corpus.Result) error {
		if keep {
			instances = append(instances, r)
		}
		if c.instances {
			return report.WriteInstance(stdout, r)
		}
		return nil
	})
	if err != nil {
		return err
	}

	summary := s.Summary()
	opts := report.Options{Confusions: c.confusions, Lengths: c.lengths, MinCount: c.minCount}
	if err := report.WriteSummary(stdout, summary, opts); err != nil {
		return err
	}
	if c.jsonOut != "" {
		var buf bytes.Buffer
		if err := report.WriteJSON(&buf, report.NewJSON(summary, c.minCount, instances)); err != nil {
			return err
		}
		if err := util.Write(buf.Bytes(), c.jsonOut); err != nil {
			return err
		}
		fmt.Fprintf(stderr, "[INFO] JSON report: %v\n", c.jsonOut)
	}
	if c.pdfOut != "" {
		var buf bytes.Buffer
		if err := report.WritePDF(&buf, instances, summary, opts); err != nil {
			return err
		}
		if err := util.Write(buf.Bytes(), c.pdfOut); err != nil {
			return err
		}
		fmt.Fprintf(stderr, "[INFO] PDF report: %v\n", c.pdfOut)
	}
	return nil
}

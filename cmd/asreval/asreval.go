package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
)

func main() {
	// eval command
	evalSet := flag.NewFlagSet("eval", flag.ExitOnError)
	insto := evalSet.Bool("i", false, "Print every aligned sentence with its running totals")
	ido := evalSet.Bool("id", false, "Lines end with an utterance id in parentheses, e.g. (spk1-001)")
	co := evalSet.Bool("c", false, "Print insertion, deletion and substitution confusions")
	po := evalSet.Bool("p", false, "Print mean sentence WER for each reference length")
	mo := evalSet.Int("m", 10, "Only print confusions seen more than this many times")
	charso := evalSet.Bool("chars", false, "Score characters instead of words (CER)")
	groupo := evalSet.Bool("group", false, "Coalesce adjacent error runs into one replacement")
	jo := evalSet.Int("j", envInt(workersEnv, 1), "Number of alignment workers")
	stricto := evalSet.Bool("strict", false, "Fail when the transcripts have different line counts")
	jsono := evalSet.String("json", "", "Write a JSON report to this file")
	pdfo := evalSet.String("pdf", "", "Write a PDF report to this file")
	keys := evalSet.String("keys", defaultKeys(), "Path to credentials directory for s3:// and gs:// transcripts")
	evalSet.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s %s [-i] [-id] [-c] [-p] [-m count] [-chars] [-group] [-j n] [-strict] [-json out.json] [-pdf out.pdf] ref.txt hyp.txt\n\n", os.Args[0], os.Args[1])
		fmt.Fprintf(os.Stderr, "Transcripts may be local paths, - for stdin, s3://bucket/key or gs://bucket/key\n\n")
		evalSet.PrintDefaults()
	}

	// diff command
	diffSet := flag.NewFlagSet("diff", flag.ExitOnError)
	dgroupo := diffSet.Bool("group", false, "Coalesce adjacent error runs into one replacement")
	opso := diffSet.Bool("ops", false, "Print the opcodes under the diff")
	diffSet.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s %s [-group] [-ops] \"ref text\" \"hyp text\"\n\n", os.Args[0], os.Args[1])
		diffSet.PrintDefaults()
	}

	// editdist command
	editdistSet := flag.NewFlagSet("editdist", flag.ExitOnError)
	cero := editdistSet.Bool("c", false, "Output character error rate instead of levenshtein dist")
	wordso := editdistSet.Bool("w", false, "Compare whitespace separated words instead of bytes")
	editdistSet.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s %s [-c] [-w] test.txt truth.txt\n\n", os.Args[0], os.Args[1])
		editdistSet.PrintDefaults()
	}

	// serve command
	serveSet := flag.NewFlagSet("serve", flag.ExitOnError)
	addr := serveSet.String("addr", envStr(addrEnv, ":8080"), "Listen address")
	serveSet.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s %s [-addr :8080]\n\n", os.Args[0], os.Args[1])
		serveSet.PrintDefaults()
	}

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s <command> [arguments]\n\nThe commands are:\n\n"+
			strings.Repeat("\t%v\n", 4)+"\n", os.Args[0],
			"eval    \t score a hypothesis transcript against a reference",
			"diff    \t align two sentences and print the marked up diff",
			"editdist\t calculate levenshtein distance of two text files",
			"serve   \t run the scoring HTTP service",
		)
		flag.PrintDefaults()
	}

	if len(os.Args) < 2 {
		flag.Usage()
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var err error
	switch os.Args[1] {
	case "eval":
		evalSet.Parse(os.Args[2:])
		if evalSet.NArg() != 2 {
			evalSet.Usage()
			os.Exit(1)
		}
		if *mo < 0 {
			fmt.Fprintf(os.Stderr, "Error: -m must not be negative.\n\n")
			evalSet.Usage()
			os.Exit(1)
		}
		err = evalCommand(ctx, evalConfig{
			ref:        evalSet.Arg(0),
			hyp:        evalSet.Arg(1),
			instances:  *insto,
			ids:        *ido,
			confusions: *co,
			lengths:    *po,
			minCount:   *mo,
			chars:      *charso,
			group:      *groupo,
			workers:    *jo,
			strict:     *stricto,
			jsonOut:    *jsono,
			pdfOut:     *pdfo,
			keys:       *keys,
		}, os.Stdin, os.Stdout, os.Stderr)
	case "diff":
		diffSet.Parse(os.Args[2:])
		if diffSet.NArg() != 2 {
			diffSet.Usage()
			os.Exit(1)
		}
		err = diffCommand(diffSet.Arg(0), diffSet.Arg(1), *dgroupo, *opso, os.Stdout)
	case "editdist":
		editdistSet.Parse(os.Args[2:])
		if editdistSet.NArg() != 2 {
			editdistSet.Usage()
			os.Exit(1)
		}
		srcFilename := editdistSet.Arg(0)
		dstFilename := editdistSet.Arg(1)
		err = editdistCommand(srcFilename, dstFilename, *cero, *wordso, os.Stdout)
	case "serve":
		serveSet.Parse(os.Args[2:])
		if serveSet.NArg() != 0 {
			serveSet.Usage()
			os.Exit(1)
		}
		err = serve(ctx, *addr)
	default:
		flag.Usage()
		os.Exit(1)
	}
	if err != nil {
		log.Fatal(err)
	}
}

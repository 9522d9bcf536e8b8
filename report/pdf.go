package report

import (
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/jung-kurt/gofpdf"
	"github.com/ughe/asreval/corpus"
)

const (
	fontSize   = 9.0
	lineHeight = 11.0
	margin     = 36.0
)

// WritePDF renders the diff of every instance followed by the summary, in
// Courier so the reference and hypothesis rows stay column aligned.
func WritePDF(w io.Writer, instances []*corpus.Result, s corpus.Summary, opts Options) error {
	pdf := gofpdf.New("P", "pt", "Letter", "")
	pdf.SetMargins(margin, margin, margin)
	pdf.SetAutoPageBreak(true, margin)
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFont("Courier", "B", fontSize+3)
	pdf.CellFormat(0, lineHeight*2, tr("ASR evaluation "+s.ID), "", 1, "L", false, 0, "")

	pageW, _ := pdf.GetPageSize()
	pdf.SetFont("Courier", "", fontSize)
	cols := int((pageW - 2*margin) / pdf.GetStringWidth("M"))
	cols -= len("REF: ")

	for _, r := range instances {
		pdf.SetTextColor(0, 0, 0)
		title := fmt.Sprintf("SENTENCE %d", r.Index)
		if r.ID != "" {
			title += "  " + r.ID
		}
		pdf.SetFont("Courier", "B", fontSize)
		pdf.CellFormat(0, lineHeight, tr(title), "T", 1, "L", false, 0, "")
		pdf.SetFont("Courier", "", fontSize)
		if r.Diff != nil {
			refs, hyps := wrap(r.Diff.Ref, cols), wrap(r.Diff.Hyp, cols)
			for i := range refs {
				pdf.CellFormat(0, lineHeight, tr("REF: "+refs[i]), "", 1, "L", false, 0, "")
				pdf.CellFormat(0, lineHeight, tr("HYP: "+hyps[i]), "", 1, "L", false, 0, "")
			}
		}
		if r.Counts.Errors > 0 {
			pdf.SetTextColor(200, 0, 0)
		}
		counts := fmt.Sprintf("Correct %s %3d   Errors %s %3d",
			percent(r.Counts.Matches, len(r.Ref)), r.Counts.Matches,
			percent(r.Counts.Errors, len(r.Ref)), r.Counts.Errors)
		pdf.CellFormat(0, lineHeight, counts, "", 1, "L", false, 0, "")
		pdf.Ln(lineHeight / 2)
	}

	pdf.SetTextColor(0, 0, 0)
	pdf.SetFont("Courier", "B", fontSize)
	pdf.CellFormat(0, lineHeight, "SUMMARY", "T", 1, "L", false, 0, "")
	pdf.SetFont("Courier", "", fontSize)
	lines := make([]string, 0)
	if s.Defined {
		lines = append(lines,
			fmt.Sprintf("WRR: %f %% (%d / %d)", s.WRR, s.Matches, s.RefTokens),
			fmt.Sprintf("WER: %f %% (%d / %d)", s.WER, s.Errors, s.RefTokens))
	} else {
		lines = append(lines, fmt.Sprintf("WRR/WER: n/a (%d reference tokens)", s.RefTokens))
	}
	lines = append(lines, fmt.Sprintf("Sentences: %d  Empty references: %d  Dropped lines: %d",
		s.Sentences, s.EmptyReferences, s.Dropped))
	if opts.Lengths {
		for _, l := range s.Lengths {
			lines = append(lines, fmt.Sprintf("%5d %f  (%d sentences)", l.Length, l.Mean, l.Sentences))
		}
	}
	if opts.Confusions && s.Confusions != nil {
		for _, wc := range s.Confusions.TopInsertions(opts.MinCount) {
			lines = append(lines, fmt.Sprintf("INS %20s %10d", wc.Word, wc.Count))
		}
		for _, wc := range s.Confusions.TopDeletions(opts.MinCount) {
			lines = append(lines, fmt.Sprintf("DEL %20s %10d", wc.Word, wc.Count))
		}
		for _, sc := range s.Confusions.TopSubstitutions(opts.MinCount) {
			lines = append(lines, fmt.Sprintf("SUB %20s -> %-20s %6d", sc.Ref, sc.Hyp, sc.Count))
		}
	}
	for _, l := range lines {
		pdf.CellFormat(0, lineHeight, tr(l), "", 1, "L", false, 0, "")
	}
	return pdf.Output(w)
}

// wrap cuts row into pieces of at most n runes. Rendered rows are column
// aligned, so cutting both rows at the same offsets keeps them aligned.
func wrap(row string, n int) []string {
	if n < 1 {
		n = 1
	}
	pieces := make([]string, 0, utf8.RuneCountInString(row)/n+1)
	runes := []rune(row)
	for len(runes) > n {
		pieces = append(pieces, string(runes[:n]))
		runes = runes[n:]
	}
	return append(pieces, string(runes))
}

package report

import (
	"encoding/json"
	"io"
	"time"

	"github.com/ughe/asreval/corpus"
	"github.com/ughe/asreval/score"
)

// JSON is the machine readable report of a run.
type JSON struct {
	corpus.Summary
	Date          string                    `json:"date"`
	Insertions    []score.WordCount         `json:"insertions,omitempty"`
	Deletions     []score.WordCount         `json:"deletions,omitempty"`
	Substitutions []score.SubstitutionCount `json:"substitutions,omitempty"`
	Instances     []*corpus.Result          `json:"instances,omitempty"`
}

func fmtTime(t time.Time) string {
	return t.Format("2006-01-02 15:04:05 MST")
}

// NewJSON builds the report of s. Confusions are filtered like the text
// report; instances may be nil.
func NewJSON(s corpus.Summary, minCount int, instances []*corpus.Result) JSON {
	j := JSON{
		Summary:   s,
		Date:      fmtTime(time.Now().UTC()),
		Instances: instances,
	}
	if s.Confusions != nil {
		j.Insertions = s.Confusions.TopInsertions(minCount)
		j.Deletions = s.Confusions.TopDeletions(minCount)
		j.Substitutions = s.Confusions.TopSubstitutions(minCount)
	}
	return j
}

func WriteJSON(w io.Writer, j JSON) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(j)
}

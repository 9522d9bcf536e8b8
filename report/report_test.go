package report

import (
	"bytes"
	"encoding/json"
	"log"
	"reflect"
	"strings"
	"testing"

	"github.com/ughe/asreval/corpus"
)

func session(t *testing.T, opts corpus.Options, pairs ...[2]string) (*corpus.Session, []*corpus.Result) {
	t.Helper()
	opts.Logger = log.New(&bytes.Buffer{}, "", 0)
	s := corpus.NewSession(opts)
	var results []*corpus.Result
	for i, p := range pairs {
		r, err := s.Score(i+1, p[0], p[1])
		if err != nil {
			t.Fatal(err)
		}
		results = append(results, r)
	}
	return s, results
}

func TestWriteInstance(t *testing.T) {
	_, results := session(t, corpus.Options{Diff: true, HasIDs: true},
		[2]string{"the cat sat utt1", "the cat sit utt1"})
	var b bytes.Buffer
	if err := WriteInstance(&b, results[0]); err != nil {
		t.Fatal(err)
	}
	want := strings.Repeat("=", 60) + "\n" +
		"REF: the cat SAT\n" +
		"HYP: the cat SIT\n" +
		"SENTENCE 1  utt1\n" +
		"Correct          =  66.7%    2   (     2)\n" +
		"Errors           =  33.3%    1   (     1)\n"
	if b.String() != want {
		t.Fatalf("Received:\n%s\nExpected:\n%s", b.String(), want)
	}
}

func TestWriteInstanceEmptyReference(t *testing.T) {
	_, results := session(t, corpus.Options{}, [2]string{"", "uh"})
	var b bytes.Buffer
	if err := WriteInstance(&b, results[0]); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(b.String(), "Errors           =   n/a     1") {
		t.Fatalf("Received:\n%s", b.String())
	}
}

func TestWriteSummary(t *testing.T) {
	s, _ := session(t, corpus.Options{Confusions: true},
		[2]string{"a b c", "a x c"},
		[2]string{"a b c", "a x c d"},
		[2]string{"b", "b"},
	)
	var b bytes.Buffer
	err := WriteSummary(&b, s.Summary(), Options{Confusions: true, Lengths: true, MinCount: 0})
	if err != nil {
		t.Fatal(err)
	}
	want := "INSERTIONS:\n" +
		"                   d          1\n" +
		"SUBSTITUTIONS:\n" +
		"                   b ->                    x            2\n" +
		"    0 nan\n" +
		"    1 0.000000\n" +
		"    2 nan\n" +
		"    3 0.500000\n" +
		"\n" +
		"WRR: 71.428571 % (         5 /          7)\n" +
		"WER: 42.857143 % (         3 /          7)\n"
	if b.String() != want {
		t.Fatalf("Received:\n%s\nExpected:\n%s", b.String(), want)
	}

	b.Reset()
	if err := WriteSummary(&b, s.Summary(), Options{Confusions: true, MinCount: 1}); err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(b.String(), "INSERTIONS:\nSUBSTITUTIONS:\n      ") {
		t.Fatalf("Expected filtered confusion tables. Received:\n%s", b.String())
	}
}

func TestWriteSummaryUndefined(t *testing.T) {
	s, _ := session(t, corpus.Options{}, [2]string{"", "x"})
	var b bytes.Buffer
	if err := WriteSummary(&b, s.Summary(), Options{}); err != nil {
		t.Fatal(err)
	}
	if b.String() != "WRR: n/a (         0 /          0)\nWER: n/a (         1 /          0)\n" {
		t.Fatalf("Received:\n%s", b.String())
	}
}

func TestWriteJSON(t *testing.T) {
	s, results := session(t, corpus.Options{Confusions: true, Diff: true},
		[2]string{"a b", "a c"},
	)
	var b bytes.Buffer
	if err := WriteJSON(&b, NewJSON(s.Summary(), 0, results)); err != nil {
		t.Fatal(err)
	}
	var got struct {
		RunID         string  `json:"run_id"`
		RefTokens     int     `json:"ref_tokens"`
		Errors        int     `json:"errors"`
		WER           float64 `json:"wer"`
		Substitutions []struct {
			Ref   string `json:"ref"`
			Hyp   string `json:"hyp"`
			Count int    `json:"count"`
		} `json:"substitutions"`
		Instances []struct {
			Opcodes []struct {
				Kind string `json:"kind"`
			} `json:"opcodes"`
			Diff struct {
				Ref string `json:"ref"`
			} `json:"diff"`
		} `json:"instances"`
	}
	if err := json.Unmarshal(b.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	if got.RunID != s.ID || got.RefTokens != 2 || got.Errors != 1 || got.WER != 50 {
		t.Fatalf("Decoded %+v", got)
	}
	if len(got.Substitutions) != 1 || got.Substitutions[0].Ref != "b" || got.Substitutions[0].Count != 1 {
		t.Fatalf("Substitutions = %+v", got.Substitutions)
	}
	kinds := []string{}
	for _, op := range got.Instances[0].Opcodes {
		kinds = append(kinds, op.Kind)
	}
	if !reflect.DeepEqual(kinds, []string{"equal", "replace"}) || got.Instances[0].Diff.Ref != "a B" {
		t.Fatalf("Instances = %+v", got.Instances)
	}
}

func TestWritePDF(t *testing.T) {
	long := strings.Repeat("word ", 60)
	s, results := session(t, corpus.Options{Confusions: true, Diff: true, HasIDs: true},
		[2]string{"the cat sat u1", "the cat sit u1"},
		[2]string{long + "u2", long + "extra u2"},
		[2]string{"straße u3", "strasse u3"},
	)
	var b bytes.Buffer
	if err := WritePDF(&b, results, s.Summary(), Options{Confusions: true, Lengths: true}); err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(b.Bytes(), []byte("%PDF-")) {
		t.Fatalf("Expected a PDF. Received %q", b.Bytes()[:min(16, b.Len())])
	}
}

func TestWrap(t *testing.T) {
	got := wrap("abcdefg", 3)
	if !reflect.DeepEqual(got, []string{"abc", "def", "g"}) {
		t.Fatalf("wrap = %q", got)
	}
	if got := wrap("", 3); !reflect.DeepEqual(got, []string{""}) {
		t.Fatalf("wrap = %q", got)
	}
	if got := wrap("日本語", 2); !reflect.DeepEqual(got, []string{"日本", "語"}) {
		t.Fatalf("wrap = %q", got)
	}
}

package main

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/ughe/asreval/metrics"
	"github.com/ughe/asreval/report"
)

func post(t *testing.T, url, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(url+"/api/score", "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	return resp
}

func decode(t *testing.T, resp *http.Response) report.JSON {
	t.Helper()
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		buf, _ := io.ReadAll(resp.Body)
		t.Fatalf("Status %v: %s", resp.StatusCode, buf)
	}
	var j report.JSON
	if err := json.NewDecoder(resp.Body).Decode(&j); err != nil {
		t.Fatal(err)
	}
	return j
}

func TestServeScore(t *testing.T) {
	srv := httptest.NewServer(newScorer().routes())
	defer srv.Close()

	j := decode(t, post(t, srv.URL, `{"reference": "a b c", "hypothesis": "a x c"}`))
	if j.Sentences != 1 || j.Errors != 1 || j.RefTokens != 3 || !j.Defined {
		t.Fatalf("Unexpected summary: %+v", j.Summary)
	}
	if len(j.Substitutions) != 1 || j.Substitutions[0].Ref != "b" || j.Substitutions[0].Hyp != "x" {
		t.Fatalf("Unexpected substitutions: %+v", j.Substitutions)
	}
	if len(j.Instances) != 1 || j.Instances[0].Diff == nil || j.Instances[0].Diff.Ref != "a B c" {
		t.Fatalf("Unexpected instances: %+v", j.Instances)
	}

	body := `{"reference": "one (u1)\ntwo (u2)\n", "hypothesis": "one (u1)\n(u2)\n", "lines": true, "ids": true}`
	j = decode(t, post(t, srv.URL, body))
	if j.Sentences != 2 || j.Errors != 1 || len(j.Deletions) != 1 || j.Deletions[0].Word != "two" {
		t.Fatalf("Unexpected line scoring: %+v %+v", j.Summary, j.Deletions)
	}

	resp, err := http.Get(srv.URL + "/api/summary")
	if err != nil {
		t.Fatal(err)
	}
	j = decode(t, resp)
	if j.Sentences != 3 || j.RefTokens != 5 || j.Errors != 2 {
		t.Fatalf("Unexpected cumulative summary: %+v", j.Summary)
	}
	if len(j.Instances) != 0 {
		t.Fatalf("Summary should not carry instances")
	}
}

func TestServeRejects(t *testing.T) {
	srv := httptest.NewServer(newScorer().routes())
	defer srv.Close()

	tests := []struct {
		body string
		code int
	}{
		{`{"reference": `, http.StatusBadRequest},
		{`{"reference": "a (u1)", "hypothesis": "a (u2)", "ids": true}`, http.StatusBadRequest},
		{`{"reference": "a (u1)", "hypothesis": "", "ids": true}`, http.StatusBadRequest},
	}
	for _, tt := range tests {
		resp := post(t, srv.URL, tt.body)
		resp.Body.Close()
		if resp.StatusCode != tt.code {
			t.Errorf("%s: received %v, expected %v", tt.body, resp.StatusCode, tt.code)
		}
	}

	resp, err := http.Get(srv.URL + "/api/score")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Errorf("GET /api/score: received %v", resp.StatusCode)
	}
}

func TestServeHealthAndMetrics(t *testing.T) {
	srv := httptest.NewServer(newScorer().routes())
	defer srv.Close()

	decode(t, post(t, srv.URL, `{"reference": "a b", "hypothesis": "a"}`))

	for path, want := range map[string]string{
		"/health":  "ok",
		"/metrics": "asreval_pairs_total",
	} {
		resp, err := http.Get(srv.URL + path)
		if err != nil {
			t.Fatal(err)
		}
		buf, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		if resp.StatusCode != http.StatusOK || !bytes.Contains(buf, []byte(want)) {
			t.Errorf("GET %v: status %v, body missing %q", path, resp.StatusCode, want)
		}
	}
}

func TestServeTooLarge(t *testing.T) {
	srv := httptest.NewServer(newScorer().routes())
	defer srv.Close()

	rejected := testutil.ToFloat64(metrics.RequestErrors.WithLabelValues("too_large"))
	ref, hyp := strings.Repeat("a ", 3000), strings.Repeat("b ", 3000)
	resp := post(t, srv.URL, `{"reference": "`+ref+`", "hypothesis": "`+hyp+`"}`)
	resp.Body.Close()
	if resp.StatusCode != http.StatusRequestEntityTooLarge {
		t.Fatalf("Received %v, expected %v", resp.StatusCode, http.StatusRequestEntityTooLarge)
	}
	if got := testutil.ToFloat64(metrics.RequestErrors.WithLabelValues("too_large")) - rejected; got != 1 {
		t.Fatalf("Expected 1 too_large rejection. Received: %v", got)
	}

	resp, err := http.Get(srv.URL + "/api/summary")
	if err != nil {
		t.Fatal(err)
	}
	if j := decode(t, resp); j.Sentences != 0 {
		t.Fatalf("Rejected request reached the summary: %+v", j.Summary)
	}
}

func TestServeRejectedRequestNotObserved(t *testing.T) {
	srv := httptest.NewServer(newScorer().routes())
	defer srv.Close()

	pairs := testutil.ToFloat64(metrics.PairsTotal)
	tokens := testutil.ToFloat64(metrics.RefTokensTotal)
	body := `{"reference": "one (u1)\ntwo (u2)\n", "hypothesis": "one (u1)\ntwo (u3)\n", "lines": true, "ids": true}`
	resp := post(t, srv.URL, body)
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("Received %v, expected %v", resp.StatusCode, http.StatusBadRequest)
	}
	if got := testutil.ToFloat64(metrics.PairsTotal) - pairs; got != 0 {
		t.Fatalf("Rejected request counted %v pairs", got)
	}
	if got := testutil.ToFloat64(metrics.RefTokensTotal) - tokens; got != 0 {
		t.Fatalf("Rejected request counted %v reference tokens", got)
	}

	decode(t, post(t, srv.URL, `{"reference": "one two", "hypothesis": "one"}`))
	if got := testutil.ToFloat64(metrics.PairsTotal) - pairs; got != 1 {
		t.Fatalf("Expected 1 pair. Received: %v", got)
	}
}

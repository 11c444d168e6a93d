package executor

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"codewithme_backend/internal/config"
)

type recordedRequest struct {
	mu   sync.Mutex
	body executeRequest
}

func newPiston(t *testing.T, status int, reply string) (*httptest.Server, *recordedRequest) {
	t.Helper()
	rec := &recordedRequest{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("content-type = %q", ct)
		}
		rec.mu.Lock()
		_ = json.NewDecoder(r.Body).Decode(&rec.body)
		rec.mu.Unlock()
		w.WriteHeader(status)
		_, _ = w.Write([]byte(reply))
	}))
	t.Cleanup(srv.Close)
	return srv, rec
}

func clientFor(url string) *Client {
	return NewClient(config.ExecutorConfig{
		URL:            url,
		TimeoutSeconds: 2,
		Languages:      []string{"python", "Go"},
	})
}

func TestExecuteSuccess(t *testing.T) {
	srv, rec := newPiston(t, http.StatusOK, `{"language":"python","version":"3.10.0","run":{"stdout":"5\n","stderr":"","code":0}}`)
	c := clientFor(srv.URL)

	res, err := c.Execute(context.Background(), "python", "print(5)", "2,3")
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if res.Stdout != "5\n" || res.ErrorOutput() != "" {
		t.Fatalf("result = %+v", res)
	}

	rec.mu.Lock()
	defer rec.mu.Unlock()
	if rec.body.Language != "python" || rec.body.Version != "*" || rec.body.Stdin != "2,3" {
		t.Fatalf("request = %+v", rec.body)
	}
	if len(rec.body.Files) != 1 || rec.body.Files[0].Content != "print(5)" {
		t.Fatalf("files = %+v", rec.body.Files)
	}
}

func TestExecuteCompileError(t *testing.T) {
	srv, _ := newPiston(t, http.StatusOK, `{"compile":{"stdout":"","stderr":"main.go:1: syntax error"},"run":{"stdout":"","stderr":""}}`)
	res, err := clientFor(srv.URL).Execute(context.Background(), "go", "package main", "")
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if res.CompileError == "" || res.ErrorOutput() != "main.go:1: syntax error" {
		t.Fatalf("result = %+v", res)
	}
}

func TestExecuteRuntimeError(t *testing.T) {
	srv, _ := newPiston(t, http.StatusOK, `{"run":{"stdout":"partial","stderr":"Traceback: ZeroDivisionError"}}`)
	res, err := clientFor(srv.URL).Execute(context.Background(), "python", "1/0", "")
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !strings.Contains(res.ErrorOutput(), "ZeroDivisionError") {
		t.Fatalf("result = %+v", res)
	}
}

func TestExecuteServiceError(t *testing.T) {
	srv, _ := newPiston(t, http.StatusBadRequest, `{"message":"runtime is unknown"}`)
	_, err := clientFor(srv.URL).Execute(context.Background(), "python", "x", "")
	if err == nil || !strings.Contains(err.Error(), "runtime is unknown") {
		t.Fatalf("err = %v", err)
	}
}

func TestExecuteNonJSONError(t *testing.T) {
	srv, _ := newPiston(t, http.StatusBadGateway, `<html>bad gateway</html>`)
	_, err := clientFor(srv.URL).Execute(context.Background(), "python", "x", "")
	if err == nil || !strings.Contains(err.Error(), "502") {
		t.Fatalf("err = %v", err)
	}
}

func TestExecuteTransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := clientFor(url).Execute(context.Background(), "python", "x", "")
	if err == nil {
		t.Fatalf("expected transport error")
	}
}

func TestExecuteTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(3 * time.Second):
		}
	}))
	defer srv.Close()

	c := NewClient(config.ExecutorConfig{URL: srv.URL, TimeoutSeconds: 1, Languages: []string{"python"}})
	start := time.Now()
	if _, err := c.Execute(context.Background(), "python", "x", ""); err == nil {
		t.Fatalf("expected timeout error")
	}
	if time.Since(start) > 2500*time.Millisecond {
		t.Fatalf("timeout not applied")
	}
}

func TestSanitizeCode(t *testing.T) {
	srv, rec := newPiston(t, http.StatusOK, `{"run":{"stdout":"ok"}}`)
	if _, err := clientFor(srv.URL).Execute(context.Background(), "python", "print(\u00a01)", ""); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	rec.mu.Lock()
	defer rec.mu.Unlock()
	if rec.body.Files[0].Content != "print( 1)" {
		t.Fatalf("content = %q", rec.body.Files[0].Content)
	}
}

func TestSupportsAndApply(t *testing.T) {
	c := clientFor("http://unused")
	if !c.Supports("python") || !c.Supports("go") || !c.Supports("GO") {
		t.Fatalf("expected python and go to be supported")
	}
	if c.Supports("cobol") {
		t.Fatalf("cobol should not be supported")
	}

	c.Apply(config.ExecutorConfig{URL: "http://other", Languages: []string{"cobol"}})
	if !c.Supports("cobol") || c.Supports("python") {
		t.Fatalf("Apply did not replace languages")
	}
	url, version, _ := c.snapshot()
	if url != "http://other" || version != "*" {
		t.Fatalf("snapshot = %s %s", url, version)
	}
}

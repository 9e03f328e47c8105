package output

import (
	"bytes"
	"encoding/json"
	"os"
	"testing"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/mj1618/desktop-rpa/internal/model"
)

func captureStdout(t *testing.T, fn func() error) string {
	t.Helper()
	old := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	err := fn()
	w.Close()
	os.Stdout = old

	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	buf.ReadFrom(r)
	return buf.String()
}

func sampleResult() SessionsResult {
	return SessionsResult{
		Count: 1,
		Sessions: []model.Session{
			{ID: "abc-123", CreatedAt: time.Unix(1707500000, 0).UTC(), Name: "fill form"},
		},
	}
}

func TestPrintYAML(t *testing.T) {
	out := captureStdout(t, func() error { return PrintYAML(sampleResult()) })

	var decoded SessionsResult
	if err := yaml.Unmarshal([]byte(out), &decoded); err != nil {
		t.Fatalf("output is not valid YAML: %v", err)
	}
	if decoded.Count != 1 || len(decoded.Sessions) != 1 || decoded.Sessions[0].ID != "abc-123" {
		t.Errorf("decoded = %+v", decoded)
	}
}

func TestPrintJSON_SingleLine(t *testing.T) {
	out := captureStdout(t, func() error { return PrintJSON(sampleResult()) })

	if bytes.Count([]byte(out), []byte("\n")) != 1 {
		t.Errorf("compact JSON should be a single line, got:\n%s", out)
	}
	var decoded SessionsResult
	if err := json.Unmarshal([]byte(out), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if decoded.Sessions[0].Name != "fill form" {
		t.Errorf("decoded = %+v", decoded)
	}
}

func TestPrint_FormatSwitch(t *testing.T) {
	defer func() {
		OutputFormat = FormatYAML
		PrettyOutput = false
	}()

	OutputFormat = FormatJSON
	PrettyOutput = true
	out := captureStdout(t, func() error { return Print(sampleResult()) })
	if bytes.Count([]byte(out), []byte("\n")) <= 1 {
		t.Errorf("pretty JSON should be multi-line, got:\n%s", out)
	}

	OutputFormat = Format("xml")
	if err := Print(sampleResult()); err == nil {
		t.Error("unknown format should fail")
	}
}

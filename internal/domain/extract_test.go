package domain

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestExtractTextPlain(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		want    string
	}{
		{"txt read-through", "notes.txt", "  hello world  \n", "hello world"},
		{"csv treated as text", "data.csv", "a,b,c\n1,2,3", "a,b,c\n1,2,3"},
		{"log treated as text", "app.log", "line one\nline two\n", "line one\nline two"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			path := writeTemp(t, tc.file, tc.content)
			got, err := ExtractText(path, tc.file)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Errorf("got %q, want %q", got, tc.want)
			}
		})
	}
}

func TestExtractTextJSON(t *testing.T) {
	path := writeTemp(t, "payload.json", `{"b":2,"a":1}`)

	got, err := ExtractText(path, "payload.json")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(got, "\n") || !strings.Contains(got, "\"a\": 1") {
		t.Errorf("json not re-serialized indented: %q", got)
	}
}

func TestExtractTextBrokenJSON(t *testing.T) {
	path := writeTemp(t, "broken.json", `{"a":`)

	if _, err := ExtractText(path, "broken.json"); err == nil {
		t.Error("expected error for malformed json")
	}
}

func TestExtractTextMissingFile(t *testing.T) {
	if _, err := ExtractText(filepath.Join(t.TempDir(), "gone.txt"), "gone.txt"); err == nil {
		t.Error("expected error for missing file")
	}
}

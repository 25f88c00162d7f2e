package delivery

import (
	"strings"
	"testing"
)

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"report.pdf", "report.pdf"},
		{"my notes (final).txt", "my_notes__final_.txt"},
		{"../../etc/passwd", "passwd"},
		{"звонок.mp3", "______.mp3"},
		{"", "upload"},
		{"..", "upload"},
	}

	for _, tc := range tests {
		if got := sanitizeFilename(tc.in); got != tc.want {
			t.Errorf("sanitizeFilename(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestSaveUploadNameIsTimestampQualified(t *testing.T) {
	dir := t.TempDir()

	p1, err := saveUpload(dir, strings.NewReader("a"), "call.wav")
	if err != nil {
		t.Fatal(err)
	}
	p2, err := saveUpload(dir, strings.NewReader("b"), "call.wav")
	if err != nil {
		t.Fatal(err)
	}

	if p1 == p2 {
		t.Error("two uploads of the same name collided")
	}
	if !strings.HasSuffix(p1, "_call.wav") {
		t.Errorf("path = %q, want sanitized original name suffix", p1)
	}
}

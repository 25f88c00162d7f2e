package delivery

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// timestampLayout is the UTC-suffixed wire format for response timestamps.
const timestampLayout = "2006-01-02T15:04:05Z"

// saveUpload writes a working copy of the uploaded file under dir with a
// timestamp-qualified, collision-free name. The caller removes it.
func saveUpload(dir string, src io.Reader, originalName string) (string, error) {
	name := time.Now().Format("20060102_150405") +
		"_" + uuid.NewString()[:8] +
		"_" + sanitizeFilename(originalName)
	path := filepath.Join(dir, name)

	dst, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		_ = os.Remove(path)
		return "", err
	}
	return path, nil
}

// sanitizeFilename strips path components and anything outside a safe
// character set.
func sanitizeFilename(name string) string {
	name = filepath.Base(name)

	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.' || r == '-' || r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	out := b.String()
	if out == "" || out == "." || out == ".." {
		return "upload"
	}
	return out
}

// Package media handles image ingestion: a local file is read fully into
// memory and encoded as a data URI stored directly on the record. No upload,
// no size limit; oversized inputs are the caller's concern.
package media

import (
	"encoding/base64"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// EncodeFile reads an image file and returns it as a data URI string.
func EncodeFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read image: %w", err)
	}
	return Encode(data, filepath.Ext(path)), nil
}

// Encode wraps raw bytes in a data URI. The MIME type comes from the file
// extension when recognized, otherwise from content sniffing.
func Encode(data []byte, ext string) string {
	mime := mimeForExt(strings.ToLower(ext))
	if mime == "" {
		mime = http.DetectContentType(data)
	}
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data)
}

func mimeForExt(ext string) string {
	switch ext {
	case ".png":
		return "image/png"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".gif":
		return "image/gif"
	case ".webp":
		return "image/webp"
	case ".svg":
		return "image/svg+xml"
	}
	return ""
}

// IsDataURI reports whether a stored image reference is an inline data URI
// rather than an external URL.
func IsDataURI(s string) bool {
	return strings.HasPrefix(s, "data:")
}

package mimetypes

import (
	"mime"

	"github.com/gabriel-vasile/mimetype"
)

type MIME string

const (
	Unknown         MIME = "unknown"
	TextPlain       MIME = "text/plain"
	ApplicationJSON MIME = "application/json"
)

func Matches(detected string, expected MIME) (MIME, bool) {
	mt, _, err := mime.ParseMediaType(detected)
	if err != nil {
		return Unknown, false
	}
	return expected, mt == string(expected)
}

// IsText sniffs body and holds for text/plain and every type derived from it (JSON, HTML...).
// An empty body is text.
func IsText(body []byte) bool {
	if len(body) == 0 {
		return true
	}
	for m := mimetype.Detect(body); m != nil; m = m.Parent() {
		if _, ok := Matches(m.String(), TextPlain); ok {
			return true
		}
	}
	return false
}

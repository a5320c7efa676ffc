package domain

import (
	"encoding/base64"
	"errors"
	"io"
	"net/url"
	"strings"
)

var ErrInvalidContent = errors.New("invalid data uri content")

// Content is a decoded view over a data URI payload.
type Content struct {
	MimeType string
	// Size is the exact decoded length.
	Size   int64
	Reader io.Reader
}

// OpenDataURI parses "data:[<mime>][;base64],<body>" and returns a streaming
// decoder over the body. Base64 bodies are decoded lazily.
func OpenDataURI(uri string) (*Content, error) {
	rest, ok := strings.CutPrefix(uri, "data:")
	if !ok {
		return nil, ErrInvalidContent
	}
	header, body, ok := strings.Cut(rest, ",")
	if !ok {
		return nil, ErrInvalidContent
	}

	params := strings.Split(header, ";")
	mimeType := params[0]
	isBase64 := false
	for _, p := range params[1:] {
		if p == "base64" {
			isBase64 = true
		}
	}
	if mimeType == "" {
		mimeType = "text/plain"
	}

	if !isBase64 {
		decoded, err := url.PathUnescape(body)
		if err != nil {
			return nil, ErrInvalidContent
		}
		return &Content{
			MimeType: mimeType,
			Size:     int64(len(decoded)),
			Reader:   strings.NewReader(decoded),
		}, nil
	}

	size, ok := base64DecodedSize(body)
	if !ok {
		return nil, ErrInvalidContent
	}
	return &Content{
		MimeType: mimeType,
		Size:     size,
		Reader:   base64.NewDecoder(base64.StdEncoding, strings.NewReader(body)),
	}, nil
}

// EncodeDataURI renders payload as a base64 data URI.
func EncodeDataURI(mimeType string, payload []byte) string {
	var b strings.Builder
	b.Grow(len("data:;base64,") + len(mimeType) + base64.StdEncoding.EncodedLen(len(payload)))
	b.WriteString("data:")
	b.WriteString(mimeType)
	b.WriteString(";base64,")
	b.WriteString(base64.StdEncoding.EncodeToString(payload))
	return b.String()
}

// base64DecodedSize validates a padded standard base64 body and returns its
// decoded length. Line breaks are skipped, as the decoder does.
func base64DecodedSize(body string) (int64, bool) {
	body = strings.TrimRight(body, "\r\n")
	data := strings.TrimRight(body, "=")
	pad := len(body) - len(data)
	if pad > 2 {
		return 0, false
	}

	var chars int64
	for i := 0; i < len(data); i++ {
		switch c := data[i]; {
		case c == '\r' || c == '\n':
		case c >= 'A' && c <= 'Z', c >= 'a' && c <= 'z', c >= '0' && c <= '9', c == '+', c == '/':
			chars++
		default:
			return 0, false
		}
	}
	if (chars+int64(pad))%4 != 0 {
		return 0, false
	}
	return (chars+int64(pad))/4*3 - int64(pad), true
}

package request

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"
)

// BodySource produces fresh request body readers so every call gets an
// independent stream.
type BodySource interface {
	NewReader() (io.ReadCloser, error)
	ContentLength() (int64, bool)
}

// NewBodySource builds a BodySource from the descriptor's inline body or body file.
func NewBodySource(d Descriptor) (BodySource, error) {
	if d.Body != "" && strings.TrimSpace(d.BodyFile) != "" {
		return nil, fmt.Errorf("body and body file cannot both be provided")
	}

	if d.Body != "" {
		return &inlineBodySource{data: []byte(d.Body)}, nil
	}

	bodyFile := strings.TrimSpace(d.BodyFile)
	if bodyFile != "" {
		info, err := os.Stat(bodyFile)
		if err != nil {
			return nil, fmt.Errorf("body file: %w", err)
		}
		if info.IsDir() {
			return nil, fmt.Errorf("body file %q is a directory", bodyFile)
		}
		return &fileBodySource{path: bodyFile, size: info.Size()}, nil
	}

	return emptyBodySource{}, nil
}

type inlineBodySource struct {
	data []byte
}

func (s *inlineBodySource) NewReader() (io.ReadCloser, error) {
	return io.NopCloser(bytes.NewReader(s.data)), nil
}

func (s *inlineBodySource) ContentLength() (int64, bool) {
	return int64(len(s.data)), true
}

type fileBodySource struct {
	path string
	size int64
}

func (s *fileBodySource) NewReader() (io.ReadCloser, error) {
	return os.Open(s.path)
}

func (s *fileBodySource) ContentLength() (int64, bool) {
	return s.size, true
}

type emptyBodySource struct{}

func (emptyBodySource) NewReader() (io.ReadCloser, error) {
	return io.NopCloser(bytes.NewReader(nil)), nil
}

func (emptyBodySource) ContentLength() (int64, bool) {
	return 0, true
}

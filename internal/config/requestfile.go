package config

import (
	"bytes"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/zhangpjbo/HttpPal-sub003/internal/request"
)

// requestFile is the on-disk shape of a resolved request descriptor as handed
// over by an upstream resolver. YAML is the canonical format; JSON parses as a
// YAML subset.
type requestFile struct {
	Method          string            `yaml:"method"`
	URL             string            `yaml:"url"`
	Headers         map[string]string `yaml:"headers"`
	Body            string            `yaml:"body"`
	BodyFile        string            `yaml:"body_file"`
	QueryParams     map[string]string `yaml:"query_params"`
	PathParams      map[string]string `yaml:"path_params"`
	Timeout         string            `yaml:"timeout"`
	FollowRedirects bool              `yaml:"follow_redirects"`
}

// LoadRequestFile reads a resolved request descriptor from a YAML/JSON file.
func LoadRequestFile(path string) (request.Descriptor, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return request.Descriptor{}, fmt.Errorf("request file: %w", err)
	}

	var rf requestFile
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&rf); err != nil {
		return request.Descriptor{}, fmt.Errorf("request file %s: %w", path, err)
	}

	d := request.Descriptor{
		Method:          rf.Method,
		URL:             rf.URL,
		Headers:         rf.Headers,
		Body:            rf.Body,
		BodyFile:        rf.BodyFile,
		QueryParams:     rf.QueryParams,
		PathParams:      rf.PathParams,
		FollowRedirects: rf.FollowRedirects,
	}
	if rf.Timeout != "" {
		timeout, err := time.ParseDuration(rf.Timeout)
		if err != nil {
			return request.Descriptor{}, fmt.Errorf("request file %s: invalid timeout %q: %w", path, rf.Timeout, err)
		}
		d.Timeout = timeout
	}
	return d, nil
}

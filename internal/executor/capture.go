package executor

import (
	"github.com/tidwall/gjson"
)

// CaptureSpec names a JSON path to pull out of success response bodies for
// diagnostic display. Paths accept gjson syntax with an optional $. prefix.
type CaptureSpec struct {
	Name string
	Path string
}

// ExtractCaptures applies the specs to a response body. Missing paths and
// non-JSON bodies yield empty strings rather than errors; captures are
// diagnostics, never outcome-affecting.
func ExtractCaptures(body []byte, specs []CaptureSpec) map[string]string {
	if len(specs) == 0 {
		return nil
	}
	values := make(map[string]string, len(specs))
	for _, spec := range specs {
		values[spec.Name] = gjson.GetBytes(body, normalizePath(spec.Path)).String()
	}
	return values
}

func normalizePath(path string) string {
	if len(path) > 0 && path[0] == '$' {
		if len(path) > 1 && path[1] == '.' {
			return path[2:]
		}
		if len(path) == 1 {
			return "@this"
		}
	}
	return path
}

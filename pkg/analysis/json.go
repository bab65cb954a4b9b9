package analysis

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/tidwall/gjson"
)

// ErrMalformed marks model output that cannot be used as the expected document.
var ErrMalformed = errors.New("malformed model output")

// CleanJSON strips markdown code fences that models like to wrap JSON in.
func CleanJSON(input string) string {
	clean := strings.ReplaceAll(input, "```json", "")
	clean = strings.ReplaceAll(clean, "```JSON", "")
	clean = strings.ReplaceAll(clean, "```", "")
	return strings.TrimSpace(clean)
}

func decodeObject(text string) (gjson.Result, string, error) {
	clean := CleanJSON(text)
	if clean == "" {
		return gjson.Result{}, "", fmt.Errorf("%w: empty response", ErrMalformed)
	}
	if !gjson.Valid(clean) {
		return gjson.Result{}, "", fmt.Errorf("%w: response is not valid JSON", ErrMalformed)
	}

	doc := gjson.Parse(clean)
	if !doc.IsObject() {
		return gjson.Result{}, "", fmt.Errorf("%w: top-level value is not an object", ErrMalformed)
	}
	return doc, clean, nil
}

func str(r gjson.Result) string {
	if r.Type == gjson.Null {
		return ""
	}
	return strings.TrimSpace(r.String())
}

func stringList(r gjson.Result) []string {
	out := make([]string, 0)
	if !r.IsArray() {
		if s := str(r); s != "" && r.Type == gjson.String {
			out = append(out, s)
		}
		return out
	}
	for _, item := range r.Array() {
		if item.IsObject() || item.IsArray() {
			continue
		}
		if s := str(item); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func percent(r gjson.Result) float64 {
	v := r.Float()
	if math.IsNaN(v) {
		return 0
	}
	return math.Max(0, math.Min(100, v))
}

package extraction

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/spigell/ats-scorer/internal/types"
)

// ParseError reports a model reply that could not be read as the expected
// structure. Raw holds the reply as received.
type ParseError struct {
	Operation string
	Raw       string
	Err       error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s response: %v", e.Operation, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

var errNotObject = errors.New("response is not a JSON object")

// extractJSON strips markdown fences and any chatter around the outermost
// JSON object.
func extractJSON(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = strings.TrimPrefix(raw, "```json")
		raw = strings.TrimPrefix(raw, "```")
		raw = strings.TrimSpace(raw)
		if idx := strings.LastIndex(raw, "```"); idx != -1 {
			raw = raw[:idx]
		}
	}
	raw = strings.Trim(raw, "`")

	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start >= 0 && end > start {
		raw = raw[start : end+1]
	}
	return strings.TrimSpace(raw)
}

// parseObject reads a reply into a generic JSON object.
func parseObject(operation, raw string) (map[string]any, error) {
	var obj map[string]any
	if err := json.Unmarshal([]byte(extractJSON(raw)), &obj); err != nil {
		return nil, &ParseError{Operation: operation, Raw: raw, Err: err}
	}
	if obj == nil {
		return nil, &ParseError{Operation: operation, Raw: raw, Err: errNotObject}
	}
	return obj, nil
}

// decodeReply parses raw and decodes it onto out.
func decodeReply(operation, raw string, out any) (map[string]any, error) {
	obj, err := parseObject(operation, raw)
	if err != nil {
		return nil, err
	}
	if err := types.Decode(obj, out); err != nil {
		return nil, &ParseError{Operation: operation, Raw: raw, Err: err}
	}
	return obj, nil
}

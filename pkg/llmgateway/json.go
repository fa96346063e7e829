package llmgateway

import "encoding/json"

// ExtractJSON locates the first balanced {...} or [...] substring in text
// and parses it, returning (value, true) on success or (nil, false) if no
// balanced JSON value could be found or parsed. It never panics or
// returns an error: a false return is a parse miss, not a fault. Agents
// treat a false return as a parse miss and apply their own local fallback.
func ExtractJSON(text string) (any, bool) {
	raw, ok := extractBalanced(text)
	if !ok {
		return nil, false
	}
	var v any
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		return nil, false
	}
	return v, true
}

// ExtractJSONInto is like ExtractJSON but unmarshals directly into dst
// (a pointer), which is the common case for agents that know the expected
// shape of the model's structured output.
func ExtractJSONInto(text string, dst any) bool {
	raw, ok := extractBalanced(text)
	if !ok {
		return false
	}
	return json.Unmarshal([]byte(raw), dst) == nil
}

// extractBalanced scans text for the first '{' or '[' and returns the
// substring up to its matching close bracket, tracking string/escape state
// so braces inside quoted JSON strings don't confuse the balance count.
func extractBalanced(text string) (string, bool) {
	start := -1
	var open, close byte
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '{':
			start, open, close = i, '{', '}'
		case '[':
			start, open, close = i, '[', ']'
		}
		if start != -1 {
			break
		}
	}
	if start == -1 {
		return "", false
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(text); i++ {
		c := text[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case open:
			depth++
		case close:
			depth--
			if depth == 0 {
				return text[start : i+1], true
			}
		}
	}
	return "", false
}

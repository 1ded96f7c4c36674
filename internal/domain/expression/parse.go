package expression

import (
	"encoding/json"
	"fmt"
	"strings"
	"unicode"
)

// Parse evaluates a stored domain text without executing anything.
// It accepts JSON arrays and the tuple/single-quote literal form, e.g.
// [('move_type', '=', 'in_invoice')].
func Parse(text string) (Domain, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Domain{}, nil
	}
	normalized, err := toJSON(text)
	if err != nil {
		return nil, err
	}
	var d Domain
	if err := json.Unmarshal([]byte(normalized), &d); err != nil {
		return nil, fmt.Errorf("invalid domain %q: %w", text, err)
	}
	if err := Validate(d); err != nil {
		return nil, err
	}
	if d == nil {
		d = Domain{}
	}
	return d, nil
}

// Validate checks that every operator has enough operands
func Validate(d Domain) error {
	expected := 1
	for _, term := range d {
		if expected == 0 {
			expected = 1
		}
		if term.IsOperator() {
			expected += arity[term.Operator] - 1
		} else {
			expected--
		}
	}
	if len(d) > 0 && expected != 0 {
		return fmt.Errorf("domain operators are missing %d operand(s)", expected)
	}
	return nil
}

// toJSON rewrites literal syntax into JSON: tuples become arrays, single-quoted
// strings become double-quoted, True/False/None become true/false/null and
// trailing commas are dropped.
func toJSON(src string) (string, error) {
	var out strings.Builder
	runes := []rune(src)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		switch {
		case r == '\'' || r == '"':
			end, s, err := readString(runes, i)
			if err != nil {
				return "", err
			}
			b, _ := json.Marshal(s)
			out.Write(b)
			i = end
		case r == '(' || r == '[':
			out.WriteRune('[')
		case r == ')' || r == ']':
			trimTrailingComma(&out)
			out.WriteRune(']')
		case unicode.IsLetter(r) || r == '_':
			j := i
			for j < len(runes) && (unicode.IsLetter(runes[j]) || unicode.IsDigit(runes[j]) || runes[j] == '_') {
				j++
			}
			word := string(runes[i:j])
			switch word {
			case "True", "true":
				out.WriteString("true")
			case "False", "false":
				out.WriteString("false")
			case "None", "null":
				out.WriteString("null")
			default:
				return "", fmt.Errorf("unsupported identifier %q in domain", word)
			}
			i = j - 1
		default:
			out.WriteRune(r)
		}
	}
	return out.String(), nil
}

func readString(runes []rune, start int) (int, string, error) {
	quote := runes[start]
	var sb strings.Builder
	for i := start + 1; i < len(runes); i++ {
		r := runes[i]
		if r == '\\' && i+1 < len(runes) {
			i++
			switch runes[i] {
			case 'n':
				sb.WriteRune('\n')
			case 't':
				sb.WriteRune('\t')
			default:
				sb.WriteRune(runes[i])
			}
			continue
		}
		if r == quote {
			return i, sb.String(), nil
		}
		sb.WriteRune(r)
	}
	return 0, "", fmt.Errorf("unterminated string in domain")
}

func trimTrailingComma(out *strings.Builder) {
	s := strings.TrimRightFunc(out.String(), unicode.IsSpace)
	if strings.HasSuffix(s, ",") {
		s = strings.TrimSuffix(s, ",")
		out.Reset()
		out.WriteString(s)
	}
}

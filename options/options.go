// Package options implements a flat option-vector codec: flags and
// key/value pairs are consumed from a string slice, and any token
// left unconsumed is treated as a configuration error.
package options

import (
	"errors"
	"fmt"
	"strings"
)

var (
	missingArgErr    = errors.New("option flag expects an argument")
	unbalancedQuotes = errors.New("unbalanced quotes in option string")
)

// GetOption consumes the value of "-<flag> <value>" from opts and blanks
// both tokens; returns an empty string when the flag is not present
func GetOption(flag string, opts []string) (string, error) {
	needle := "-" + flag
	for i := 0; i < len(opts); i++ {
		if opts[i] != needle {
			continue
		}
		if i+1 >= len(opts) || strings.HasPrefix(opts[i+1], "-") && !isNumeric(opts[i+1]) {
			return "", fmt.Errorf("%w: %s", missingArgErr, needle)
		}
		val := opts[i+1]
		opts[i] = ""
		opts[i+1] = ""
		return val, nil
	}
	return "", nil
}

// GetFlag consumes the bare flag "-<flag>" from opts and reports its presence
func GetFlag(flag string, opts []string) bool {
	needle := "-" + flag
	for i := 0; i < len(opts); i++ {
		if opts[i] == needle {
			opts[i] = ""
			return true
		}
	}
	return false
}

// CheckRemaining returns an error listing the options left unconsumed
func CheckRemaining(opts []string) error {
	var leftover []string
	for _, opt := range opts {
		if opt != "" {
			leftover = append(leftover, opt)
		}
	}
	if leftover != nil {
		return fmt.Errorf("unrecognized options: %s", strings.Join(leftover, " "))
	}
	return nil
}

// SplitOptions splits an option string into tokens, honoring double quotes
func SplitOptions(s string) ([]string, error) {
	var tokens []string
	var cur strings.Builder
	inQuotes := false
	for _, r := range s {
		switch {
		case r == '"':
			inQuotes = !inQuotes
		case r == ' ' && !inQuotes:
			if cur.Len() > 0 {
				tokens = append(tokens, cur.String())
				cur.Reset()
			}
		default:
			cur.WriteRune(r)
		}
	}
	if inQuotes {
		return nil, unbalancedQuotes
	}
	if cur.Len() > 0 {
		tokens = append(tokens, cur.String())
	}
	return tokens, nil
}

// JoinOptions joins tokens back into a single option string,
// quoting tokens that contain spaces
func JoinOptions(opts []string) string {
	quoted := make([]string, 0, len(opts))
	for _, opt := range opts {
		if opt == "" {
			continue
		}
		if strings.Contains(opt, " ") {
			opt = `"` + opt + `"`
		}
		quoted = append(quoted, opt)
	}
	return strings.Join(quoted, " ")
}

func isNumeric(s string) bool {
	if len(s) < 2 {
		return false
	}
	c := s[1]
	return c >= '0' && c <= '9' || c == '.'
}

package shell

import (
	"strings"
	"unicode"
)

// Tokenize splits a command line into arguments. Double quotes group words, and a
// doubled quote inside a quoted run stands for one literal quote. An unterminated
// quote simply ends with the input.
func Tokenize(line string) []string {
	var (
		tokens   []string
		current  strings.Builder
		inQuotes bool
	)
	runes := []rune(line)

	for i := 0; i < len(runes); i++ {
		r := runes[i]
		switch {
		case r == '"':
			if inQuotes && i+1 < len(runes) && runes[i+1] == '"' {
				current.WriteRune('"')
				i++
				continue
			}
			inQuotes = !inQuotes
		case !inQuotes && unicode.IsSpace(r):
			if current.Len() > 0 {
				tokens = append(tokens, current.String())
				current.Reset()
			}
		default:
			current.WriteRune(r)
		}
	}
	if current.Len() > 0 {
		tokens = append(tokens, current.String())
	}
	return tokens
}

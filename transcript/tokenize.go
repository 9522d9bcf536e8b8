package transcript

import (
	"strings"
	"unicode"
)

// Tokenizer splits one transcript line into tokens.
type Tokenizer func(line string) []string

// Words splits on runs of whitespace.
func Words(line string) []string {
	return strings.Fields(line)
}

// Chars returns each non-space rune of line as a token, for character
// error rates.
func Chars(line string) []string {
	toks := make([]string, 0, len(line))
	for _, r := range line {
		if unicode.IsSpace(r) {
			continue
		}
		toks = append(toks, string(r))
	}
	return toks
}

// SplitLineID strips the trailing utterance identifier from a raw line.
// The identifier is the last whitespace separated field whatever tokenizer
// is used for the text. ok is false when the line is blank.
func SplitLineID(line string) (text string, id string, ok bool) {
	line = strings.TrimRightFunc(line, unicode.IsSpace)
	if line == "" {
		return "", "", false
	}
	i := strings.LastIndexFunc(line, unicode.IsSpace)
	return line[:i+1], line[i+1:], true
}

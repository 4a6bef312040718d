package cli

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"taskman/internal/commands"
)

// SplitCommand splits one input line into comma-separated tokens.
// Unquoted input splits exactly on commas; a double-quoted token may hold
// commas and loses its surrounding quotes. A token that opens a quote and
// never closes it is rejected.
func SplitCommand(line string) ([]string, error) {
	line = strings.TrimRight(line, "\r\n")
	if line == "" {
		return []string{""}, nil
	}
	if unterminatedQuote(line) {
		return nil, fmt.Errorf("%w: unterminated quote", commands.ErrInvalidCommand)
	}

	r := csv.NewReader(strings.NewReader(line))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	tokens, err := r.Read()
	if errors.Is(err, io.EOF) {
		return []string{""}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", commands.ErrInvalidCommand, err)
	}
	return tokens, nil
}

// unterminatedQuote reports whether a token starting with '"' runs to the
// end of line without its closing quote. A doubled quote inside a quoted
// token is an escaped quote.
func unterminatedQuote(line string) bool {
	quoted := false
	tokenStart := true
	for i := 0; i < len(line); i++ {
		c := line[i]
		switch {
		case quoted && c == '"':
			if i+1 < len(line) && line[i+1] == '"' {
				i++
				continue
			}
			quoted = false
		case !quoted && tokenStart && c == '"':
			quoted = true
		case !quoted && c == ',':
			tokenStart = true
			continue
		}
		tokenStart = false
	}
	return quoted
}

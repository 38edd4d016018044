package accesslog

import (
	"strings"

	"github.com/Egor213/LogKeeper/internal/domain"
)

// FieldCount is the number of whitespace-separated tokens in an access-log
// line: host identity user [date method path protocol status size.
const FieldCount = 9

// Tokenize splits a raw line at runs of whitespace.
func Tokenize(line string) []string {
	return strings.Fields(line)
}

// ParseLine builds a record from the tokens of one raw line. Bracket and
// quote markers are kept as they are; Format strips them.
func ParseLine(tokens []string) (domain.LogRecord, error) {
	if len(tokens) != FieldCount {
		return domain.LogRecord{}, &InvalidRecordError{
			Tokens: tokens,
			Count:  len(tokens),
		}
	}

	return domain.LogRecord{
		Host:        tokens[0],
		Identity:    tokens[1],
		User:        tokens[2],
		Timestamp:   tokens[3],
		RequestLine: tokens[4] + " " + tokens[5] + " " + tokens[6],
		Status:      tokens[7],
		Size:        tokens[8],
	}, nil
}

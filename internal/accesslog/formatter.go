package accesslog

import (
	"strings"
	"unicode/utf8"

	"github.com/Egor213/LogKeeper/internal/domain"
)

const (
	TokenHost        = "%h"
	TokenIdentity    = "%l"
	TokenUser        = "%u"
	TokenTime        = "%t"
	TokenRequestLine = "%r"
	TokenStatus      = "%>s"
	TokenSize        = "%b"
)

// DefaultTemplate renders records in Common Log Format.
const DefaultTemplate = `%h %l %u %t "%r" %>s %b`

// Format renders rec through template. strings.Replacer scans the template
// once, so a field value that happens to contain a token is never expanded.
func Format(rec domain.LogRecord, template string) string {
	r := strings.NewReplacer(
		TokenHost, rec.Host,
		TokenIdentity, rec.Identity,
		TokenUser, rec.User,
		TokenTime, "["+dropFirst(rec.Timestamp),
		TokenRequestLine, dropEdges(rec.RequestLine),
		TokenStatus, rec.Status,
		TokenSize, rec.Size,
	)
	return r.Replace(template)
}

func dropFirst(s string) string {
	_, size := utf8.DecodeRuneInString(s)
	return s[size:]
}

// dropEdges removes the first and last characters; fewer than two leave "".
func dropEdges(s string) string {
	if utf8.RuneCountInString(s) < 2 {
		return ""
	}
	_, head := utf8.DecodeRuneInString(s)
	_, tail := utf8.DecodeLastRuneInString(s)
	return s[head : len(s)-tail]
}

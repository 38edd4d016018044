package accesslog_test

import (
	"testing"
	"unicode/utf8"

	"github.com/Egor213/LogKeeper/internal/accesslog"
	"github.com/Egor213/LogKeeper/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormat(t *testing.T) {
	rec := domain.LogRecord{
		Host:        "10.0.0.1",
		Identity:    "-",
		User:        "bob",
		Timestamp:   "[10/Oct/2023:13:55:36",
		RequestLine: `"GET /index.html HTTP/1.1"`,
		Status:      "200",
		Size:        "1024",
	}

	testCases := []struct {
		name     string
		template string
		want     string
	}{
		{
			name:     "every token once",
			template: "%h %l %u %t %r %>s %b",
			want:     "10.0.0.1 - bob [10/Oct/2023:13:55:36 GET /index.html HTTP/1.1 200 1024",
		},
		{
			name:     "token order follows template",
			template: "%b|%>s|%r|%t|%u|%l|%h",
			want:     "1024|200|GET /index.html HTTP/1.1|[10/Oct/2023:13:55:36|bob|-|10.0.0.1",
		},
		{
			name:     "default template",
			template: accesslog.DefaultTemplate,
			want:     `10.0.0.1 - bob [10/Oct/2023:13:55:36 "GET /index.html HTTP/1.1" 200 1024`,
		},
		{
			name:     "repeated tokens",
			template: "%h %h",
			want:     "10.0.0.1 10.0.0.1",
		},
		{
			name:     "unknown tokens kept",
			template: "%h %x %s %> %%",
			want:     "10.0.0.1 %x %s %> %%",
		},
		{
			name:     "no tokens",
			template: "plain text",
			want:     "plain text",
		},
		{
			name:     "empty template",
			template: "",
			want:     "",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, accesslog.Format(rec, tc.template))
		})
	}
}

func TestFormat_ValuesAreNotRescanned(t *testing.T) {
	rec := domain.LogRecord{
		Host:        "%u",
		Identity:    "%b",
		User:        "%h",
		Timestamp:   "[%r",
		RequestLine: `"%>s %t %l"`,
		Status:      "%h",
		Size:        "%u",
	}

	got := accesslog.Format(rec, "%h %l %u %t %r %>s %b")

	assert.Equal(t, "%u %b %h [%r %>s %t %l %h %u", got)
}

func TestFormat_ParsedLine(t *testing.T) {
	rec, err := accesslog.ParseLine(accesslog.Tokenize(sampleLine))
	require.NoError(t, err)

	assert.Equal(t, "10.0.0.1 200 1024", accesslog.Format(rec, "%h %>s %b"))
}

func TestFormat_ShortFields(t *testing.T) {
	rec := domain.LogRecord{Timestamp: "", RequestLine: `"`}

	assert.Equal(t, "[ ", accesslog.Format(rec, "%t %r"))
}

func TestFormat_MultiByteEdges(t *testing.T) {
	rec := domain.LogRecord{
		Timestamp:   "«10/Oct/2023:13:55:36",
		RequestLine: "“GET /ü HTTP/1.1”",
	}

	got := accesslog.Format(rec, "%t %r")

	assert.Equal(t, "[10/Oct/2023:13:55:36 GET /ü HTTP/1.1", got)
	assert.True(t, utf8.ValidString(got))
	assert.Equal(t, "[ ", accesslog.Format(domain.LogRecord{RequestLine: "“"}, "%t %r"))
}

package domain

import "time"

// LogRecord is one decoded access-log line. Timestamp keeps the raw date
// token (with its leading bracket) and RequestLine keeps the quotes around
// the method/path/protocol triple; both are stripped only when rendering.
type LogRecord struct {
	Host        string `db:"host"`
	Identity    string `db:"identity"`
	User        string `db:"remote_user"`
	Timestamp   string `db:"time"`
	RequestLine string `db:"request_line"`
	Status      string `db:"status"`
	Size        string `db:"size"`
}

// DateRange bounds are inclusive and compared at day granularity.
type DateRange struct {
	Start time.Time
	End   time.Time
}

type IngestResult struct {
	BatchID  string
	Accepted int
	Rejected int
}

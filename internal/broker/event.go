package broker

import (
	"time"

	"github.com/Egor213/LogKeeper/internal/domain"
	"github.com/valyala/fastjson"
)

const EventIngested = "ingested"

// IngestEvent announces a finished ingest batch.
type IngestEvent struct {
	User   string
	Result domain.IngestResult
	At     time.Time
}

func (e IngestEvent) Marshal() []byte {
	var a fastjson.Arena
	o := a.NewObject()
	o.Set("type", a.NewString(EventIngested))
	o.Set("batch_id", a.NewString(e.Result.BatchID))
	o.Set("user", a.NewString(e.User))
	o.Set("accepted", a.NewNumberInt(e.Result.Accepted))
	o.Set("rejected", a.NewNumberInt(e.Result.Rejected))
	o.Set("at", a.NewString(e.At.UTC().Format(time.RFC3339)))
	return o.MarshalTo(nil)
}

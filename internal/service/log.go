package service

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"time"

	"github.com/Egor213/LogKeeper/internal/accesslog"
	"github.com/Egor213/LogKeeper/internal/broker"
	"github.com/Egor213/LogKeeper/internal/domain"
	"github.com/Egor213/LogKeeper/internal/metrics"
	"github.com/Egor213/LogKeeper/internal/repo"
	"github.com/Egor213/LogKeeper/internal/repo/repoerrs"
	"github.com/Egor213/LogKeeper/internal/source"
	errorsUtils "github.com/Egor213/LogKeeper/pkg/errors"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

type LogServiceDeps struct {
	Records  repo.Record
	Tx       repo.TxManager
	Counters *metrics.Counters
	Producer broker.Producer
	Source   source.Provider
	Template string
}

type LogService struct {
	recordRepo     repo.Record
	txManager      repo.TxManager
	counters       *metrics.Counters
	brokerProducer broker.Producer
	source         source.Provider
	template       string
	now            func() time.Time
}

// NewLogService requires Records. A nil Tx saves without a transaction, nil
// Counters count on a private registry and a nil Producer publishes nothing.
func NewLogService(deps LogServiceDeps) *LogService {
	tmpl := deps.Template
	if tmpl == "" {
		tmpl = accesslog.DefaultTemplate
	}
	producer := deps.Producer
	if producer == nil {
		producer = broker.NopProducer{}
	}
	counters := deps.Counters
	if counters == nil {
		counters = metrics.NewDetached()
	}
	return &LogService{
		recordRepo:     deps.Records,
		txManager:      deps.Tx,
		counters:       counters,
		brokerProducer: producer,
		source:         deps.Source,
		template:       tmpl,
		now:            time.Now,
	}
}

// Ingest parses lines and stores the well-formed ones for userName.
// Malformed lines are logged and counted, never stored. Storage failures
// wrap ErrStorage (or ErrUnknownUser) together with the cause.
func (s *LogService) Ingest(ctx context.Context, userName string, lines [][]string) (domain.IngestResult, error) {
	result := domain.IngestResult{BatchID: uuid.NewString()}

	records := make([]domain.LogRecord, 0, len(lines))
	for i, tokens := range lines {
		rec, err := accesslog.ParseLine(tokens)
		if err != nil {
			result.Rejected++
			log.WithFields(log.Fields{
				"user":     userName,
				"batch_id": result.BatchID,
				"line":     i + 1,
				"tokens":   len(tokens),
			}).Warn(err.Error())
			continue
		}
		records = append(records, rec)
	}

	if len(records) > 0 {
		err := s.inTx(ctx, func(ctx context.Context) error {
			_, err := s.recordRepo.SaveRecords(ctx, userName, records)
			return err
		})
		if err != nil {
			s.counters.Requests.Inc("Ingest", "failed")
			return result, storageErr(err)
		}
	}
	result.Accepted = len(records)

	s.counters.RecordsIngested.Add(float64(result.Accepted), "accepted")
	s.counters.RecordsIngested.Add(float64(result.Rejected), "rejected")
	s.counters.Requests.Inc("Ingest", "ok")

	s.publish(ctx, userName, result)

	log.WithFields(log.Fields{
		"user":     userName,
		"batch_id": result.BatchID,
		"accepted": result.Accepted,
		"rejected": result.Rejected,
	}).Info("Ingest finished")

	return result, nil
}

// IngestFiles reads paths (or the configured location when none are given)
// through the source provider and ingests their lines.
func (s *LogService) IngestFiles(ctx context.Context, userName string, paths ...string) (domain.IngestResult, error) {
	lines, err := s.source.Lines(ctx, paths...)
	if err != nil {
		s.counters.Requests.Inc("IngestFiles", "failed")
		return domain.IngestResult{}, errorsUtils.WrapPathErr(err)
	}
	return s.Ingest(ctx, userName, lines)
}

// Report loads the records of userName, keeps those within rng (all of them
// when rng is nil) and returns them rendered through template, in stored
// order. The sequence formats lazily and can be ranged over repeatedly.
func (s *LogService) Report(ctx context.Context, userName string, rng *domain.DateRange, template string) (iter.Seq[string], error) {
	records, err := s.recordRepo.LoadRecords(ctx, userName)
	if err != nil {
		s.counters.Requests.Inc("Report", "failed")
		return nil, storageErr(err)
	}

	records, err = accesslog.Filter(records, rng)
	if err != nil {
		s.counters.Requests.Inc("Report", "failed")
		return nil, errorsUtils.WrapPathErr(err)
	}

	if template == "" {
		template = s.template
	}
	s.counters.Requests.Inc("Report", "ok")

	return func(yield func(string) bool) {
		for _, rec := range records {
			if !yield(accesslog.Format(rec, template)) {
				return
			}
		}
	}, nil
}

func (s *LogService) Forget(ctx context.Context, userName string) (int, error) {
	n, err := s.recordRepo.DeleteRecords(ctx, userName)
	if err != nil {
		s.counters.Requests.Inc("Forget", "failed")
		return 0, storageErr(err)
	}
	s.counters.Requests.Inc("Forget", "ok")
	return n, nil
}

func (s *LogService) inTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if s.txManager == nil {
		return fn(ctx)
	}
	return s.txManager.Do(ctx, fn)
}

func (s *LogService) publish(ctx context.Context, userName string, result domain.IngestResult) {
	ev := broker.IngestEvent{User: userName, Result: result, At: s.now()}
	if err := s.brokerProducer.SendMessage(ctx, []byte(userName), ev.Marshal()); err != nil {
		log.WithField("batch_id", result.BatchID).Warnf("Ingest event not published: %v", err)
	}
}

func storageErr(err error) error {
	if errors.Is(err, repoerrs.ErrNotFound) {
		return errorsUtils.WrapPathErr(fmt.Errorf("%w: %w", ErrUnknownUser, err))
	}
	return errorsUtils.WrapPathErr(fmt.Errorf("%w: %w", ErrStorage, err))
}

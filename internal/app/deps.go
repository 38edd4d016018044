package app

import (
	"context"
	"time"

	"github.com/Egor213/LogKeeper/internal/broker"
	kafkabroker "github.com/Egor213/LogKeeper/internal/broker/kafka"
	"github.com/Egor213/LogKeeper/internal/config"
	"github.com/Egor213/LogKeeper/internal/domain"
	"github.com/Egor213/LogKeeper/internal/metrics"
	"github.com/Egor213/LogKeeper/internal/repo"
	"github.com/Egor213/LogKeeper/internal/repo/sqlitedb"
	"github.com/Egor213/LogKeeper/internal/service"
	"github.com/Egor213/LogKeeper/internal/source"
	errorsUtils "github.com/Egor213/LogKeeper/pkg/errors"
	"github.com/Egor213/LogKeeper/pkg/postgres"
	"github.com/Egor213/LogKeeper/pkg/sqlite"

	"github.com/dgraph-io/ristretto/v2"
	log "github.com/sirupsen/logrus"
)

// OpenStorage connects the configured storage driver, brings its schema up
// to date and returns the repositories with a function releasing them.
func OpenStorage(ctx context.Context, cfg *config.Config) (*repo.Repositories, func(), error) {
	switch cfg.Storage.Driver {
	case config.DriverPostgres:
		if err := Migrate(cfg.PG.URL, cfg.PG.MigrationsPath); err != nil {
			return nil, nil, err
		}

		log.Info("Connecting to DB")
		pg, err := postgres.New(cfg.PG.URL, postgres.MaxPoolSize(cfg.PG.MaxPoolSize))
		if err != nil {
			return nil, nil, errorsUtils.WrapPathErr(err)
		}
		log.Info("Connected to DB")
		return repo.NewPostgresRepositories(pg), pg.Close, nil

	case config.DriverSQLite:
		log.WithField("path", cfg.SQLite.Path).Debug("Opening SQLite database")
		db, err := sqlite.New(cfg.SQLite.Path)
		if err != nil {
			return nil, nil, errorsUtils.WrapPathErr(err)
		}
		if err := sqlitedb.Migrate(ctx, db); err != nil {
			db.Close()
			return nil, nil, errorsUtils.WrapPathErr(err)
		}
		return repo.NewSQLiteRepositories(db), db.Close, nil
	}

	return nil, nil, errorsUtils.WrapPathErr(config.ErrUnknownDriver)
}

// NewProducer returns a Kafka producer when brokers are configured and a
// no-op one otherwise.
func NewProducer(cfg *config.Config) (broker.Producer, func()) {
	if len(cfg.Kafka.Brokers) == 0 {
		return broker.NopProducer{}, func() {}
	}

	p := kafkabroker.NewProducer(kafkabroker.ProducerConfig{
		Brokers: cfg.Kafka.Brokers,
		Topic:   cfg.Kafka.Topic,
	})
	return p, func() {
		if err := p.Close(); err != nil {
			log.Error(errorsUtils.WrapPathErr(err))
		}
	}
}

func newUserCache() (*ristretto.Cache[string, domain.User], error) {
	return ristretto.NewCache(&ristretto.Config[string, domain.User]{
		NumCounters: 10_000,
		MaxCost:     1_000,
		BufferItems: 64,
	})
}

// NewServices builds the services over repos. counters may be shared between
// calls; the user cache lives as long as the returned services.
func NewServices(cfg *config.Config, repos *repo.Repositories, counters *metrics.Counters, producer broker.Producer) (*service.Services, error) {
	cache, err := newUserCache()
	if err != nil {
		return nil, errorsUtils.WrapPathErr(err)
	}

	return service.NewServices(service.ServicesDependencies{
		Repos:          repos,
		Counters:       counters,
		BrokerProducer: producer,
		Source:         source.NewFileProvider(cfg.Source.Dir, cfg.Source.Ext),
		Template:       cfg.Report.Format,
		UserCache:      cache,
		UserCacheTTL:   cacheTTL(cfg.Cache.UserTTL),
	}), nil
}

func cacheTTL(ttl time.Duration) time.Duration {
	if ttl <= 0 {
		return time.Minute
	}
	return ttl
}

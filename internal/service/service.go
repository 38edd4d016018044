package service

import (
	"context"
	"iter"
	"time"

	"github.com/Egor213/LogKeeper/internal/broker"
	"github.com/Egor213/LogKeeper/internal/domain"
	"github.com/Egor213/LogKeeper/internal/metrics"
	"github.com/Egor213/LogKeeper/internal/repo"
	"github.com/Egor213/LogKeeper/internal/source"
	"github.com/dgraph-io/ristretto/v2"
)

type Log interface {
	Ingest(ctx context.Context, userName string, lines [][]string) (domain.IngestResult, error)
	IngestFiles(ctx context.Context, userName string, paths ...string) (domain.IngestResult, error)
	Report(ctx context.Context, userName string, rng *domain.DateRange, template string) (iter.Seq[string], error)
	Forget(ctx context.Context, userName string) (int, error)
}

type Auth interface {
	Register(ctx context.Context, name, password string) error
	Authenticate(ctx context.Context, name, password string) (domain.User, error)
}

type Services struct {
	Log
	Auth
}

type ServicesDependencies struct {
	Repos          *repo.Repositories
	Counters       *metrics.Counters
	BrokerProducer broker.Producer
	Source         source.Provider
	Template       string
	UserCache      *ristretto.Cache[string, domain.User]
	UserCacheTTL   time.Duration
}

func NewServices(deps ServicesDependencies) *Services {
	return &Services{
		Log: NewLogService(LogServiceDeps{
			Records:  deps.Repos.Record,
			Tx:       deps.Repos.TxManager,
			Counters: deps.Counters,
			Producer: deps.BrokerProducer,
			Source:   deps.Source,
			Template: deps.Template,
		}),
		Auth: NewAuthService(deps.Repos.User, deps.UserCache, deps.UserCacheTTL),
	}
}

package service_test

import (
	"context"
	"errors"
	"slices"
	"testing"

	"github.com/Egor213/LogKeeper/internal/accesslog"
	"github.com/Egor213/LogKeeper/internal/domain"
	"github.com/Egor213/LogKeeper/internal/metrics"
	brokermocks "github.com/Egor213/LogKeeper/internal/mocks/broker"
	repomocks "github.com/Egor213/LogKeeper/internal/mocks/repository"
	sourcemocks "github.com/Egor213/LogKeeper/internal/mocks/source"
	"github.com/Egor213/LogKeeper/internal/repo/repoerrs"
	"github.com/Egor213/LogKeeper/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const validLine = `10.0.0.1 - - [10/Oct/2023:13:55:36 "GET /index.html HTTP/1.1" 200 1024`

type logMocks struct {
	records  *repomocks.MockRecord
	tx       *repomocks.MockTxManager
	producer *brokermocks.MockProducer
	source   *sourcemocks.MockProvider
}

func newLogService(t *testing.T) (*service.LogService, logMocks) {
	ctrl := gomock.NewController(t)
	m := logMocks{
		records:  repomocks.NewMockRecord(ctrl),
		tx:       repomocks.NewMockTxManager(ctrl),
		producer: brokermocks.NewMockProducer(ctrl),
		source:   sourcemocks.NewMockProvider(ctrl),
	}
	svc := service.NewLogService(service.LogServiceDeps{
		Records:  m.records,
		Tx:       m.tx,
		Counters: metrics.NewDetached(),
		Producer: m.producer,
		Source:   m.source,
		Template: "%h %>s %b",
	})
	return svc, m
}

func passThroughTx(tx *repomocks.MockTxManager) {
	tx.EXPECT().
		Do(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, fn func(context.Context) error) error {
			return fn(ctx)
		})
}

func tokenized(lines ...string) [][]string {
	out := make([][]string, len(lines))
	for i, l := range lines {
		out[i] = accesslog.Tokenize(l)
	}
	return out
}

func TestLogService_Ingest(t *testing.T) {
	type args struct {
		user  string
		lines [][]string
	}

	type mockBehavior func(m logMocks, args args)

	parsed, err := accesslog.ParseLine(accesslog.Tokenize(validLine))
	require.NoError(t, err)

	testCases := []struct {
		name         string
		args         args
		mockBehavior mockBehavior
		wantAccepted int
		wantRejected int
		wantErr      error
	}{
		{
			name: "valid and invalid lines",
			args: args{
				user:  "alice",
				lines: tokenized(validLine, "short line", validLine, validLine+" extra"),
			},
			mockBehavior: func(m logMocks, args args) {
				passThroughTx(m.tx)
				m.records.EXPECT().
					SaveRecords(gomock.Any(), args.user, []domain.LogRecord{parsed, parsed}).
					Return(2, nil)
				m.producer.EXPECT().
					SendMessage(gomock.Any(), []byte(args.user), gomock.Any()).
					Return(nil)
			},
			wantAccepted: 2,
			wantRejected: 2,
		},
		{
			name: "nothing valid skips storage",
			args: args{
				user:  "alice",
				lines: tokenized("a b c", ""),
			},
			mockBehavior: func(m logMocks, args args) {
				m.producer.EXPECT().SendMessage(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
			},
			wantRejected: 2,
		},
		{
			name: "broker failure does not fail ingest",
			args: args{
				user:  "alice",
				lines: tokenized(validLine),
			},
			mockBehavior: func(m logMocks, args args) {
				passThroughTx(m.tx)
				m.records.EXPECT().SaveRecords(gomock.Any(), args.user, gomock.Len(1)).Return(1, nil)
				m.producer.EXPECT().
					SendMessage(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("kafka down"))
			},
			wantAccepted: 1,
		},
		{
			name: "storage error",
			args: args{
				user:  "alice",
				lines: tokenized(validLine, "bad"),
			},
			mockBehavior: func(m logMocks, args args) {
				passThroughTx(m.tx)
				m.records.EXPECT().
					SaveRecords(gomock.Any(), args.user, gomock.Any()).
					Return(0, errors.New("db error"))
			},
			wantRejected: 1,
			wantErr:      service.ErrStorage,
		},
		{
			name: "unknown user",
			args: args{
				user:  "ghost",
				lines: tokenized(validLine),
			},
			mockBehavior: func(m logMocks, args args) {
				m.tx.EXPECT().Do(gomock.Any(), gomock.Any()).Return(repoerrs.ErrNotFound)
			},
			wantErr: service.ErrUnknownUser,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			svc, m := newLogService(t)
			tc.mockBehavior(m, tc.args)

			got, err := svc.Ingest(context.Background(), tc.args.user, tc.args.lines)

			assert.Equal(t, tc.wantRejected, got.Rejected)
			assert.NotEmpty(t, got.BatchID)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.wantAccepted, got.Accepted)
		})
	}
}

func TestLogService_Ingest_StorageCauseIsKept(t *testing.T) {
	svc, m := newLogService(t)
	cause := errors.New("disk full")
	passThroughTx(m.tx)
	m.records.EXPECT().SaveRecords(gomock.Any(), "alice", gomock.Any()).Return(0, cause)

	_, err := svc.Ingest(context.Background(), "alice", tokenized(validLine))

	assert.ErrorIs(t, err, service.ErrStorage)
	assert.ErrorIs(t, err, cause)
}

func TestLogService_IngestFiles(t *testing.T) {
	svc, m := newLogService(t)
	m.source.EXPECT().Lines(gomock.Any(), "a.log", "b.log").Return(tokenized(validLine, "x"), nil)
	passThroughTx(m.tx)
	m.records.EXPECT().SaveRecords(gomock.Any(), "alice", gomock.Len(1)).Return(1, nil)
	m.producer.EXPECT().SendMessage(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

	got, err := svc.IngestFiles(context.Background(), "alice", "a.log", "b.log")

	require.NoError(t, err)
	assert.Equal(t, 1, got.Accepted)
	assert.Equal(t, 1, got.Rejected)
}

func TestLogService_IngestFiles_SourceError(t *testing.T) {
	svc, m := newLogService(t)
	missing := errors.New("no such file")
	m.source.EXPECT().Lines(gomock.Any()).Return(nil, missing)

	_, err := svc.IngestFiles(context.Background(), "alice")

	assert.ErrorIs(t, err, missing)
}

func rec(host, ts string) domain.LogRecord {
	return domain.LogRecord{
		Host:        host,
		Identity:    "-",
		User:        "-",
		Timestamp:   "[" + ts,
		RequestLine: `"GET / HTTP/1.1"`,
		Status:      "200",
		Size:        "10",
	}
}

func TestLogService_Report(t *testing.T) {
	stored := []domain.LogRecord{
		rec("h1", "09/Oct/2023:12:00:00"),
		rec("h2", "10/Oct/2023:00:00:00"),
		rec("h3", "10/Oct/2023:23:59:59"),
		rec("h4", "11/Oct/2023:00:00:00"),
	}
	oneDay, err := accesslog.NewDateRange("10/Oct/2023:00:00:00", "")
	require.NoError(t, err)
	reversed, err := accesslog.NewDateRange("11/Oct/2023", "09/Oct/2023")
	require.NoError(t, err)

	testCases := []struct {
		name     string
		rng      *domain.DateRange
		template string
		want     []string
	}{
		{
			name: "all records with configured template",
			want: []string{"h1 200 10", "h2 200 10", "h3 200 10", "h4 200 10"},
		},
		{
			name:     "single day",
			rng:      oneDay,
			template: "%h %t",
			want:     []string{"h2 [10/Oct/2023:00:00:00", "h3 [10/Oct/2023:23:59:59"},
		},
		{
			name: "start after end",
			rng:  reversed,
			want: nil,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			svc, m := newLogService(t)
			m.records.EXPECT().LoadRecords(gomock.Any(), "alice").Return(stored, nil)

			seq, err := svc.Report(context.Background(), "alice", tc.rng, tc.template)
			require.NoError(t, err)

			assert.Equal(t, tc.want, slices.Collect(seq))
			assert.Equal(t, tc.want, slices.Collect(seq), "sequence must be restartable")
		})
	}
}

func TestLogService_Report_StopsEarly(t *testing.T) {
	svc, m := newLogService(t)
	m.records.EXPECT().LoadRecords(gomock.Any(), "alice").Return([]domain.LogRecord{
		rec("h1", "10/Oct/2023:00:00:00"),
		rec("h2", "10/Oct/2023:00:00:00"),
	}, nil)

	seq, err := svc.Report(context.Background(), "alice", nil, "%h")
	require.NoError(t, err)

	var got []string
	for line := range seq {
		got = append(got, line)
		break
	}
	assert.Equal(t, []string{"h1"}, got)
}

func TestLogService_Report_Errors(t *testing.T) {
	rng, err := accesslog.NewDateRange("10/Oct/2023", "")
	require.NoError(t, err)

	testCases := []struct {
		name         string
		mockBehavior func(m logMocks)
		wantErr      error
	}{
		{
			name: "load failure",
			mockBehavior: func(m logMocks) {
				m.records.EXPECT().LoadRecords(gomock.Any(), "alice").Return(nil, errors.New("db error"))
			},
			wantErr: service.ErrStorage,
		},
		{
			name: "bad stored timestamp",
			mockBehavior: func(m logMocks) {
				m.records.EXPECT().LoadRecords(gomock.Any(), "alice").Return([]domain.LogRecord{
					rec("h1", "10/Oct/2023:00:00:00"),
					rec("h2", "yesterday"),
				}, nil)
			},
			wantErr: accesslog.ErrDateParse,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			svc, m := newLogService(t)
			tc.mockBehavior(m)

			seq, err := svc.Report(context.Background(), "alice", rng, "")

			assert.ErrorIs(t, err, tc.wantErr)
			assert.Nil(t, seq)
		})
	}
}

func TestLogService_Forget(t *testing.T) {
	svc, m := newLogService(t)
	m.records.EXPECT().DeleteRecords(gomock.Any(), "alice").Return(7, nil)
	m.records.EXPECT().DeleteRecords(gomock.Any(), "bob").Return(0, errors.New("db error"))

	n, err := svc.Forget(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, 7, n)

	_, err = svc.Forget(context.Background(), "bob")
	assert.ErrorIs(t, err, service.ErrStorage)
}

func TestNewLogService_Defaults(t *testing.T) {
	ctrl := gomock.NewController(t)
	records := repomocks.NewMockRecord(ctrl)
	records.EXPECT().LoadRecords(gomock.Any(), "alice").Return([]domain.LogRecord{rec("h1", "10/Oct/2023:13:55:36")}, nil)

	svc := service.NewLogService(service.LogServiceDeps{
		Records: records,
	})

	seq, err := svc.Report(context.Background(), "alice", nil, "")
	require.NoError(t, err)
	assert.Equal(t, []string{`h1 - - [10/Oct/2023:13:55:36 "GET / HTTP/1.1" 200 10`}, slices.Collect(seq))
}

func TestNewLogService_IngestWithoutTxOrCounters(t *testing.T) {
	ctrl := gomock.NewController(t)
	records := repomocks.NewMockRecord(ctrl)
	records.EXPECT().SaveRecords(gomock.Any(), "alice", gomock.Len(1)).Return(1, nil)

	svc := service.NewLogService(service.LogServiceDeps{Records: records})

	res, err := svc.Ingest(context.Background(), "alice", tokenized(validLine, "bad"))
	require.NoError(t, err)
	assert.Equal(t, 1, res.Accepted)
	assert.Equal(t, 1, res.Rejected)
}

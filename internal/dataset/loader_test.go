package dataset

import (
	"context"
	"sync"
	"testing"

	"liftdash/domain/survey"
	"liftdash/internal"
	"liftdash/internal/errors"
	"liftdash/internal/testkit"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type MockResponseSource struct {
	mock.Mock
}

func (m *MockResponseSource) ReadRaw(ctx context.Context) (*survey.RawTable, error) {
	args := m.Called(ctx)
	table, _ := args.Get(0).(*survey.RawTable)
	return table, args.Error(1)
}

func (m *MockResponseSource) Describe() string {
	return "mock"
}

func TestLoader_LoadsOnce(t *testing.T) {
	source := testkit.NewStaticSource(testkit.Raw(testkit.EngineeringTable()))
	loader := NewLoader(source, nil)

	first, err := loader.Load(context.Background())
	require.NoError(t, err)
	second, err := loader.Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 10, first.Len())
	assert.Same(t, first, second)
	assert.Equal(t, 1, source.Reads())
	assert.False(t, loader.LoadedAt().IsZero())
}

func TestLoader_ConcurrentCallersShareOneRead(t *testing.T) {
	source := testkit.NewStaticSource(testkit.Raw(testkit.EngineeringTable()))
	loader := NewLoader(source, nil)

	var wg sync.WaitGroup
	tables := make([]*survey.Table, 16)
	for i := range tables {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			table, err := loader.Load(context.Background())
			assert.NoError(t, err)
			tables[i] = table
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 1, source.Reads())
	for _, table := range tables {
		assert.Same(t, tables[0], table)
	}
}

func TestLoader_MissingSourceIsNotFound(t *testing.T) {
	source := testkit.NewMissingSource("data_final_bersih.csv")
	loader := NewLoader(source, nil)

	table, err := loader.Load(context.Background())
	assert.Nil(t, table)
	require.Error(t, err)
	assert.Equal(t, errors.CodeNotFound, errors.GetCode(err))
	assert.Contains(t, err.Error(), "data_final_bersih.csv not found")

	_, again := loader.Load(context.Background())
	assert.Equal(t, err, again)
	assert.Equal(t, 1, source.Reads())
}

func TestLoader_ForeignErrorBecomesUnreadable(t *testing.T) {
	source := new(MockResponseSource)
	source.On("ReadRaw", mock.Anything).Return(nil, assert.AnError).Once()

	_, err := NewLoader(source, nil).Load(context.Background())
	require.Error(t, err)
	assert.Equal(t, errors.CodeSourceUnreadable, errors.GetCode(err))
	assert.ErrorIs(t, err, assert.AnError)
	assert.Equal(t, "failed to load survey data from mock: "+assert.AnError.Error(), err.Error())
	source.AssertExpectations(t)
}

func TestLoader_InvalidTableIsUnreadable(t *testing.T) {
	source := new(MockResponseSource)
	source.On("ReadRaw", mock.Anything).Return(&survey.RawTable{Headers: []string{"Fakultas"}}, nil).Once()

	_, err := NewLoader(source, nil).Load(context.Background())
	require.Error(t, err)
	assert.Equal(t, errors.CodeSourceUnreadable, errors.GetCode(err))
	assert.Contains(t, err.Error(), "missing required columns")
}

func TestLoader_CancelledCallerDoesNotPoisonResult(t *testing.T) {
	source := new(MockResponseSource)
	source.On("ReadRaw", mock.MatchedBy(func(ctx context.Context) bool { return ctx.Err() == nil })).
		Return(testkit.Raw(testkit.EngineeringTable()), nil).Once()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	table, err := NewLoader(source, nil).Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, 10, table.Len())
	source.AssertExpectations(t)
}

func TestLoader_LogsCarrySource(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	logger := internal.NewLoggerWithZap(internal.LogLevelDebug, zap.New(core))

	_, err := NewLoader(testkit.NewStaticSource(testkit.Raw(testkit.EngineeringTable())), logger).Load(context.Background())
	require.NoError(t, err)

	entries := logs.All()
	require.NotEmpty(t, entries)
	for _, e := range entries {
		assert.Equal(t, "static", e.ContextMap()["source"], e.Message)
	}
}

package scheduler

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/ice-routes/internal/config"
	"github.com/BruksfildServices01/ice-routes/internal/domain/rollover"
)

type fakeRunner struct {
	calls atomic.Int32
	err   error
}

func (f *fakeRunner) Execute(ctx context.Context, force bool) (*rollover.Report, error) {
	f.calls.Add(1)
	if f.err != nil {
		return nil, f.err
	}
	return &rollover.Report{Date: "2026-10-16", Ran: !force}, nil
}

func TestRunCatchesUpOnStartAndStopsWithContext(t *testing.T) {
	runner := &fakeRunner{}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := Run(ctx, config.RolloverConfig{Cron: "5 0 * * *"}, runner)

	require.NoError(t, err)
	assert.Equal(t, int32(1), runner.calls.Load())
}

func TestRunRejectsInvalidCron(t *testing.T) {
	runner := &fakeRunner{}

	err := Run(context.Background(), config.RolloverConfig{Cron: "todo dia"}, runner)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid rollover cron")
	assert.Zero(t, runner.calls.Load())
}

func TestRunOnceSwallowsErrors(t *testing.T) {
	runner := &fakeRunner{err: errors.New("db down")}

	assert.NotPanics(t, func() {
		runOnce(context.Background(), runner)
	})
	assert.Equal(t, int32(1), runner.calls.Load())
}

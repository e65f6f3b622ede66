package rollover

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/ice-routes/internal/cache"
	"github.com/BruksfildServices01/ice-routes/internal/config"
	"github.com/BruksfildServices01/ice-routes/internal/domain"
	rollover "github.com/BruksfildServices01/ice-routes/internal/domain/rollover"
	"github.com/BruksfildServices01/ice-routes/internal/models"
	"github.com/BruksfildServices01/ice-routes/internal/timezone"
)

type fakeRolloverRepo struct {
	job   *models.DailyJob
	calls map[string]int
	gets  int
}

var _ rollover.Repository = (*fakeRolloverRepo)(nil)

func newFakeRolloverRepo() *fakeRolloverRepo {
	return &fakeRolloverRepo{calls: map[string]int{}}
}

func (f *fakeRolloverRepo) Transaction(ctx context.Context, fn func(tx rollover.Repository) error) error {
	return fn(f)
}

func (f *fakeRolloverRepo) LockJob(ctx context.Context, name string) (*models.DailyJob, error) {
	if f.job == nil {
		f.job = &models.DailyJob{Name: name}
	}
	cp := *f.job
	return &cp, nil
}

func (f *fakeRolloverRepo) SaveJob(ctx context.Context, job *models.DailyJob) error {
	cp := *job
	f.job = &cp
	return nil
}

func (f *fakeRolloverRepo) GetJob(ctx context.Context, name string) (*models.DailyJob, error) {
	f.gets++
	if f.job == nil {
		return nil, domain.ErrNotFound
	}
	cp := *f.job
	return &cp, nil
}

func (f *fakeRolloverRepo) PurgeExtemporaneousBefore(ctx context.Context, day time.Time) (int64, error) {
	f.calls["purge"]++
	return 2, nil
}

func (f *fakeRolloverRepo) ResetTrackingBefore(ctx context.Context, day time.Time) (int64, error) {
	f.calls["reset_past"]++
	return 5, nil
}

func (f *fakeRolloverRepo) ResetActiveOn(ctx context.Context, day time.Time) (int64, error) {
	f.calls["reset_active"]++
	return 0, nil
}

func (f *fakeRolloverRepo) ClearExtemporaneousOrdersBefore(ctx context.Context, day time.Time) (int64, error) {
	f.calls["clear_orders"]++
	return 1, nil
}

func newUseCase(t *testing.T, repo rollover.Repository, now time.Time) *RunDaily {
	t.Helper()
	c, err := cache.NewRedisCache(configDisabled())
	require.NoError(t, err)

	uc := NewRunDaily(repo, c, nil, cache.RolloverKey(rollover.JobName))
	uc.now = func() time.Time { return now }
	return uc
}

var monday = time.Date(2026, 10, 12, 0, 10, 0, 0, time.UTC)

func TestRunDailyRunsOncePerDay(t *testing.T) {
	repo := newFakeRolloverRepo()
	uc := newUseCase(t, repo, monday)

	report, err := uc.Execute(context.Background(), false)
	require.NoError(t, err)
	assert.True(t, report.Ran)
	assert.EqualValues(t, 2, report.PurgedExtemporaneous)
	assert.EqualValues(t, 5, report.ResetPastTracking)
	assert.EqualValues(t, 1, report.ClearedOrderFlags)
	assert.Equal(t, timezone.DateOf(monday), repo.job.LastRunDate)

	report, err = uc.Execute(context.Background(), false)
	require.NoError(t, err)
	assert.False(t, report.Ran)
	assert.Equal(t, 1, repo.calls["purge"])

	report, err = uc.Execute(context.Background(), true)
	require.NoError(t, err)
	assert.True(t, report.Ran)
	assert.Equal(t, 2, repo.calls["purge"])
}

func TestEnsureTodayRunsWhenWatermarkIsOld(t *testing.T) {
	repo := newFakeRolloverRepo()
	repo.job = &models.DailyJob{Name: rollover.JobName, LastRunDate: timezone.DateOf(monday).AddDate(0, 0, -1)}

	uc := newUseCase(t, repo, monday)

	require.NoError(t, uc.EnsureToday(context.Background()))
	assert.Equal(t, 1, repo.calls["purge"])
	assert.Equal(t, 1, repo.calls["reset_active"])

	// memória do processo evita nova consulta
	gets := repo.gets
	require.NoError(t, uc.EnsureToday(context.Background()))
	assert.Equal(t, gets, repo.gets)
	assert.Equal(t, 1, repo.calls["purge"])
}

func TestEnsureTodaySkipsWhenAlreadyRun(t *testing.T) {
	repo := newFakeRolloverRepo()
	repo.job = &models.DailyJob{Name: rollover.JobName, LastRunDate: timezone.DateOf(monday)}

	uc := newUseCase(t, repo, monday)

	require.NoError(t, uc.EnsureToday(context.Background()))
	assert.Zero(t, repo.calls["purge"])
}

func configDisabled() config.RedisConfig {
	return config.RedisConfig{Enabled: false}
}

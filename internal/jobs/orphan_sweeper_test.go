package jobs

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forgo/circle/api/internal/service"
)

type mockSweeper struct {
	calls  atomic.Int32
	report service.SweepReport
	err    error
}

func (m *mockSweeper) SweepOrphans(ctx context.Context) (service.SweepReport, error) {
	m.calls.Add(1)
	return m.report, m.err
}

func TestOrphanSweeper_RunOnce(t *testing.T) {
	t.Parallel()

	m := &mockSweeper{report: service.SweepReport{PostsDeleted: 3}}
	job := NewOrphanSweeper(m, time.Hour, nil)

	report, err := job.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, report.PostsDeleted)
	assert.Equal(t, int32(1), m.calls.Load())
}

func TestOrphanSweeper_RunOnce_PropagatesError(t *testing.T) {
	t.Parallel()

	failure := errors.New("store unavailable")
	job := NewOrphanSweeper(&mockSweeper{err: failure}, time.Hour, nil)

	_, err := job.RunOnce(context.Background())
	assert.ErrorIs(t, err, failure)
}

func TestOrphanSweeper_SweepsOnInterval(t *testing.T) {
	t.Parallel()

	m := &mockSweeper{err: errors.New("failures do not stop the loop")}
	job := NewOrphanSweeper(m, 10*time.Millisecond, nil)

	job.Start()
	assert.Eventually(t, func() bool { return m.calls.Load() >= 3 }, 2*time.Second, 5*time.Millisecond)
	job.Stop()

	stopped := m.calls.Load()
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, stopped, m.calls.Load())
}

func TestOrphanSweeper_StartStopAreIdempotent(t *testing.T) {
	t.Parallel()

	job := NewOrphanSweeper(&mockSweeper{}, time.Hour, nil)
	assert.False(t, job.IsRunning())

	job.Start()
	job.Start()
	assert.True(t, job.IsRunning())

	job.Stop()
	job.Stop()
	assert.False(t, job.IsRunning())
}

func TestNewOrphanSweeper_DefaultInterval(t *testing.T) {
	t.Parallel()

	job := NewOrphanSweeper(&mockSweeper{}, 0, nil)
	assert.Equal(t, 10*time.Minute, job.interval)
}

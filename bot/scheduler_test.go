package bot

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeReconciler struct {
	mu    sync.Mutex
	calls int
	err   error
}

func (f *fakeReconciler) Reconcile(ctx context.Context) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return 1, f.err
}

func (f *fakeReconciler) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type fakePruner struct {
	cutoffs []time.Time
}

func (f *fakePruner) PruneClosedTickets(ctx context.Context, before time.Time) (int64, error) {
	f.cutoffs = append(f.cutoffs, before)
	return 2, nil
}

func TestPruneRetention(t *testing.T) {
	now := time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)
	p := &fakePruner{}

	m := &maintenance{reconciler: &fakeReconciler{}, pruner: p, now: func() time.Time { return now }}
	m.prune(context.Background())
	assert.Empty(t, p.cutoffs, "zero retention keeps closed tickets")

	m.retentionDays = 30
	m.prune(context.Background())
	require.Len(t, p.cutoffs, 1)
	assert.Equal(t, now.AddDate(0, 0, -30), p.cutoffs[0])
}

func TestReconcileErrorIsLogged(t *testing.T) {
	r := &fakeReconciler{err: errors.New("boom")}
	m := &maintenance{reconciler: r, pruner: &fakePruner{}, now: time.Now}
	m.reconcile(context.Background())
	assert.Equal(t, 1, r.count())
}

func TestStartScheduler(t *testing.T) {
	r := &fakeReconciler{}
	m := &maintenance{reconciler: r, pruner: &fakePruner{}, now: time.Now}

	_, err := startScheduler("not a schedule", m)
	require.Error(t, err)

	c, err := startScheduler("@hourly", m)
	require.NoError(t, err)
	require.Len(t, c.Entries(), 1)
	assert.Eventually(t, func() bool { return r.count() == 1 }, time.Second, 10*time.Millisecond)
	stopScheduler(c)
}

type fakeLimiters struct{ calls int }

func (f *fakeLimiters) Prune() int {
	f.calls++
	return 3
}

func TestRunPrunesLimiters(t *testing.T) {
	limiters := &fakeLimiters{}
	m := &maintenance{reconciler: &fakeReconciler{}, pruner: &fakePruner{}, limiters: limiters, now: time.Now}
	m.run()
	assert.Equal(t, 1, limiters.calls)

	m.limiters = nil
	assert.NotPanics(t, m.run)
}

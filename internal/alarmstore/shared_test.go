package alarmstore

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/riseup/internal/alarm"
	"github.com/abhisek/riseup/internal/bridge"
	"github.com/abhisek/riseup/internal/facility"
	"github.com/abhisek/riseup/internal/rng"
	"github.com/abhisek/riseup/internal/scheduler"
	"github.com/abhisek/riseup/internal/store"
)

// stack is what one riseup process builds over the database file.
type stack struct {
	svc   *Service
	local *facility.Local
	store *store.Store
}

func openStack(t *testing.T, path string, seed uint64) *stack {
	t.Helper()
	st, err := store.Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	quiet := slog.New(slog.NewTextHandler(io.Discard, nil))
	clock := func() time.Time { return now }
	local := facility.NewLocal(st.ScheduleRepo(), quiet)
	sched := scheduler.New(local, bridge.New(st.RetriggerRepo()),
		scheduler.WithClock(clock), scheduler.WithLogger(quiet))
	svc := New(st.AlarmRepo(), sched,
		WithClock(clock), WithSource(rng.New(seed)), WithLogger(quiet))
	return &stack{svc: svc, local: local, store: st}
}

func (s *stack) liveFor(t *testing.T, alarmID string) []store.ScheduleRecord {
	t.Helper()
	all, err := s.local.Pending(context.Background())
	require.NoError(t, err)
	var out []store.ScheduleRecord
	for _, rec := range all {
		if rec.AlarmID == alarmID {
			out = append(out, rec)
		}
	}
	return out
}

func TestSharedDatabase_DisarmAfterAnotherProcessRehydrated(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "riseup.db")

	tui := openStack(t, path, 1)
	a, res, err := tui.svc.Add(ctx, weekdays7am(true))
	require.NoError(t, err)
	require.True(t, res.Live())

	// A second process starts, rehydrates under fresh UUIDs and adds its own alarm.
	cli := openStack(t, path, 2)
	b, _, err := cli.svc.Add(ctx, weekdays7am(true))
	require.NoError(t, err)
	require.Len(t, cli.liveFor(t, a.ID), 1+scheduler.RetriggerCount)

	_, res, err = tui.svc.SetArmed(ctx, a.ID, false)
	require.NoError(t, err)
	assert.Equal(t, scheduler.Cancelled, res.Status)

	assert.Empty(t, tui.liveFor(t, a.ID), "disarmed alarm must have no live schedules")
	assert.Len(t, tui.liveFor(t, b.ID), 1+scheduler.RetriggerCount, "other alarms untouched")

	persisted, err := tui.store.RetriggerRepo().LoadRetriggers(ctx)
	require.NoError(t, err)
	assert.NotContains(t, persisted, a.ID)
	assert.Contains(t, persisted, b.ID)
}

func TestSharedDatabase_CompleteLeavesOnePrimary(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "riseup.db")

	watcher := openStack(t, path, 1)
	a, _, err := watcher.svc.Add(ctx, weekdays7am(true))
	require.NoError(t, err)

	other := openStack(t, path, 2)
	require.NoError(t, other.svc.Rehydrate(ctx))

	res, err := watcher.svc.Complete(ctx, a.ID)
	require.NoError(t, err)
	require.True(t, res.Live())

	live := watcher.liveFor(t, a.ID)
	assert.Len(t, live, 1+scheduler.RetriggerCount)
	recurring := 0
	for _, rec := range live {
		if rec.Kind == store.ScheduleRecurring {
			recurring++
			assert.Equal(t, res.UUID, rec.UUID)
		}
	}
	assert.Equal(t, 1, recurring, "exactly one live primary")
}

func TestSharedDatabase_DeleteRemovesForeignSchedules(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "riseup.db")

	first := openStack(t, path, 1)
	a, _, err := first.svc.Add(ctx, alarm.Alarm{
		Time:  alarm.Clock{Hour: 6, Minute: 45},
		Days:  alarm.Days{5: true, 6: true},
		Armed: true,
	})
	require.NoError(t, err)

	second := openStack(t, path, 2)
	require.NoError(t, second.svc.Rehydrate(ctx))

	_, err = first.svc.Delete(ctx, a.ID)
	require.NoError(t, err)
	assert.Empty(t, second.liveFor(t, a.ID))
}

package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/riseup/internal/alarm"
	"github.com/abhisek/riseup/internal/challenge"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	s, err := Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name))
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleAlarm(id string) alarm.Alarm {
	now := time.Date(2026, 10, 20, 6, 0, 0, 0, time.UTC)
	return alarm.Alarm{
		ID:         id,
		Time:       alarm.Clock{Hour: 7, Minute: 15},
		Days:       alarm.Days{true, false, true},
		Sound:      alarm.SoundRadar,
		Armed:      true,
		Challenge:  challenge.KindRhythm,
		Difficulty: 4,
		Label:      "gym",
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

func TestOpenClose(t *testing.T) {
	s := openTestStore(t)
	if s.DB() == nil {
		t.Fatal("expected non-nil db")
	}
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		// WAL mode falls back to "memory" for in-memory databases,
		// so we skip journal_mode here. It is tested with file-based DBs.
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
		{"busy_timeout", "5000"},
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestFileDBUsesWAL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "riseup.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer s.Close()

	var mode string
	if err := s.DB().QueryRow("PRAGMA journal_mode").Scan(&mode); err != nil {
		t.Fatalf("journal_mode: %v", err)
	}
	if mode != "wal" {
		t.Errorf("journal_mode = %q, want wal", mode)
	}
}

func TestReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "riseup.db")
	ctx := context.Background()

	s, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := s.AlarmRepo().Create(ctx, sampleAlarm("a1")); err != nil {
		t.Fatalf("create: %v", err)
	}
	s.Close()

	s, err = Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s.Close()
	if _, err := s.AlarmRepo().Get(ctx, "a1"); err != nil {
		t.Errorf("get after reopen: %v", err)
	}
}

func TestAlarmRepo_CreateGet(t *testing.T) {
	s := openTestStore(t)
	repo := s.AlarmRepo()
	ctx := context.Background()

	want := sampleAlarm("a1")
	if err := repo.Create(ctx, want); err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := repo.Get(ctx, "a1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Time != want.Time || got.Days != want.Days || got.Sound != want.Sound {
		t.Errorf("got %+v, want %+v", got, want)
	}
	if !got.Armed || got.Challenge != challenge.KindRhythm || got.Difficulty != 4 || got.Label != "gym" {
		t.Errorf("got %+v", got)
	}
	if !got.CreatedAt.Equal(want.CreatedAt) {
		t.Errorf("created_at = %v, want %v", got.CreatedAt, want.CreatedAt)
	}
}

func TestAlarmRepo_GetMissing(t *testing.T) {
	s := openTestStore(t)
	_, err := s.AlarmRepo().Get(context.Background(), "nope")
	if !errors.Is(err, alarm.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestAlarmRepo_Save(t *testing.T) {
	s := openTestStore(t)
	repo := s.AlarmRepo()
	ctx := context.Background()

	a := sampleAlarm("a1")
	if err := repo.Create(ctx, a); err != nil {
		t.Fatalf("create: %v", err)
	}

	a.Time = alarm.Clock{Hour: 6, Minute: 45}
	a.Armed = false
	a.Days = alarm.Days{6: true}
	if err := repo.Save(ctx, a); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := repo.Get(ctx, "a1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Time != a.Time || got.Armed || got.Days != a.Days {
		t.Errorf("got %+v", got)
	}

	if err := repo.Save(ctx, sampleAlarm("ghost")); !errors.Is(err, alarm.ErrNotFound) {
		t.Errorf("save missing: err = %v, want ErrNotFound", err)
	}
}

func TestAlarmRepo_ListOrdersByTime(t *testing.T) {
	s := openTestStore(t)
	repo := s.AlarmRepo()
	ctx := context.Background()

	late := sampleAlarm("late")
	late.Time = alarm.Clock{Hour: 9}
	early := sampleAlarm("early")
	early.Time = alarm.Clock{Hour: 5, Minute: 30}

	for _, a := range []alarm.Alarm{late, early} {
		if err := repo.Create(ctx, a); err != nil {
			t.Fatalf("create %s: %v", a.ID, err)
		}
	}

	list, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 2 || list[0].ID != "early" || list[1].ID != "late" {
		t.Errorf("list order = %v", list)
	}
}

func TestAlarmRepo_DeleteReservesID(t *testing.T) {
	s := openTestStore(t)
	repo := s.AlarmRepo()
	ctx := context.Background()

	if err := repo.Create(ctx, sampleAlarm("a1")); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := repo.Delete(ctx, "a1"); err != nil {
		t.Fatalf("delete: %v", err)
	}

	if _, err := repo.Get(ctx, "a1"); !errors.Is(err, alarm.ErrNotFound) {
		t.Errorf("get deleted: err = %v", err)
	}
	list, _ := repo.List(ctx)
	if len(list) != 0 {
		t.Errorf("list after delete = %v", list)
	}
	if err := repo.Create(ctx, sampleAlarm("a1")); !errors.Is(err, ErrDuplicateID) {
		t.Errorf("recreate: err = %v, want ErrDuplicateID", err)
	}
	if err := repo.Delete(ctx, "a1"); !errors.Is(err, alarm.ErrNotFound) {
		t.Errorf("double delete: err = %v, want ErrNotFound", err)
	}
}

func TestRetriggerRepo_RoundTrip(t *testing.T) {
	s := openTestStore(t)
	repo := s.RetriggerRepo()
	ctx := context.Background()

	ids := []uuid.UUID{uuid.New(), uuid.New()}
	if err := repo.SaveRetriggers(ctx, "a1", ids); err != nil {
		t.Fatalf("save: %v", err)
	}
	// Upsert replaces the list.
	replaced := []uuid.UUID{uuid.New()}
	if err := repo.SaveRetriggers(ctx, "a1", replaced); err != nil {
		t.Fatalf("save again: %v", err)
	}
	if err := repo.SaveRetriggers(ctx, "a2", ids); err != nil {
		t.Fatalf("save a2: %v", err)
	}

	got, err := repo.LoadRetriggers(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got) != 2 || len(got["a1"]) != 1 || got["a1"][0] != replaced[0] || len(got["a2"]) != 2 {
		t.Errorf("loaded %v", got)
	}

	if err := repo.DeleteRetriggers(ctx, "a1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	got, _ = repo.LoadRetriggers(ctx)
	if _, ok := got["a1"]; ok {
		t.Error("a1 should be gone")
	}
}

func TestScheduleRepo_PutListDelete(t *testing.T) {
	s := openTestStore(t)
	repo := s.ScheduleRepo()
	ctx := context.Background()

	fireAt := time.Date(2026, 10, 21, 7, 0, 0, 0, time.UTC)
	fixed := ScheduleRecord{
		UUID: uuid.New(), AlarmID: "a1", Kind: ScheduleFixed,
		FireAt: fireAt, Sound: "radar", Title: "Wake up",
		CreatedAt: fireAt.Add(-time.Hour),
	}
	recurring := ScheduleRecord{
		UUID: uuid.New(), AlarmID: "a2", Kind: ScheduleRecurring,
		Hour: 6, Minute: 30, Weekdays: []int{2, 4}, Sound: "classic", Title: "Wake up",
		CreatedAt: fireAt,
	}
	for _, rec := range []ScheduleRecord{fixed, recurring} {
		if err := repo.Put(ctx, rec); err != nil {
			t.Fatalf("put: %v", err)
		}
	}

	list, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("len = %d, want 2", len(list))
	}
	if list[0].UUID != fixed.UUID || !list[0].FireAt.Equal(fireAt) || !list[0].LastFiredAt.IsZero() {
		t.Errorf("fixed = %+v", list[0])
	}
	if list[1].Kind != ScheduleRecurring || len(list[1].Weekdays) != 2 || list[1].Weekdays[1] != 4 {
		t.Errorf("recurring = %+v", list[1])
	}

	firedAt := fireAt.Add(24 * time.Hour)
	if err := repo.MarkFired(ctx, recurring.UUID, firedAt); err != nil {
		t.Fatalf("mark fired: %v", err)
	}
	if err := repo.Delete(ctx, fixed.UUID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	list, _ = repo.List(ctx)
	if len(list) != 1 || !list[0].LastFiredAt.Equal(firedAt) {
		t.Errorf("after delete = %+v", list)
	}

	if err := repo.DeleteAll(ctx); err != nil {
		t.Fatalf("delete all: %v", err)
	}
	list, _ = repo.List(ctx)
	if len(list) != 0 {
		t.Errorf("after delete all = %+v", list)
	}
}

func TestScheduleRepo_DeleteByAlarm(t *testing.T) {
	s := openTestStore(t)
	repo := s.ScheduleRepo()
	ctx := context.Background()

	fireAt := time.Date(2026, 10, 21, 7, 0, 0, 0, time.UTC)
	for _, alarmID := range []string{"a1", "a1", "a1", "a2"} {
		rec := ScheduleRecord{UUID: uuid.New(), AlarmID: alarmID, Kind: ScheduleFixed, FireAt: fireAt}
		if err := repo.Put(ctx, rec); err != nil {
			t.Fatalf("put: %v", err)
		}
	}

	n, err := repo.DeleteByAlarm(ctx, "a1")
	if err != nil {
		t.Fatalf("delete by alarm: %v", err)
	}
	if n != 3 {
		t.Errorf("deleted %d, want 3", n)
	}
	if n, _ := repo.DeleteByAlarm(ctx, "a1"); n != 0 {
		t.Errorf("second delete removed %d, want 0", n)
	}

	list, _ := repo.List(ctx)
	if len(list) != 1 || list[0].AlarmID != "a2" {
		t.Errorf("remaining = %+v", list)
	}
}

func TestScheduleRepo_LaunchAlarmReadOnce(t *testing.T) {
	s := openTestStore(t)
	repo := s.ScheduleRepo()
	ctx := context.Background()

	if _, ok, err := repo.TakeLaunchAlarm(ctx); err != nil || ok {
		t.Fatalf("empty take = %v, %v", ok, err)
	}

	if err := repo.SetLaunchAlarm(ctx, "a1"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := repo.SetLaunchAlarm(ctx, "a2"); err != nil {
		t.Fatalf("set again: %v", err)
	}

	id, ok, err := repo.TakeLaunchAlarm(ctx)
	if err != nil || !ok || id != "a2" {
		t.Errorf("take = %q, %v, %v", id, ok, err)
	}
	if _, ok, _ := repo.TakeLaunchAlarm(ctx); ok {
		t.Error("launch alarm should be read once")
	}
}

func TestEventRepo_SequenceAndQuery(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		err := repo.AppendChallengeEvent(ctx, ChallengeEventData{
			SessionID: "s1", AlarmID: "a1", Kind: "math", Difficulty: 2,
			Action: ActionAnswer, Prompt: "2 + 2 = ?", Response: "4", Correct: i%2 == 0,
			ElapsedMs: int64(1000 * i),
		})
		if err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
	}

	all, err := repo.QueryChallengeEvents(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(all) != 5 {
		t.Fatalf("len = %d, want 5", len(all))
	}
	for i := 1; i < len(all); i++ {
		if all[i].Sequence <= all[i-1].Sequence {
			t.Errorf("sequence not increasing: %d then %d", all[i-1].Sequence, all[i].Sequence)
		}
	}
	if !all[0].Correct || all[1].Correct || all[4].ElapsedMs != 4000 {
		t.Errorf("unexpected payloads: %+v", all)
	}

	after, _ := repo.QueryChallengeEvents(ctx, QueryOpts{After: all[2].Sequence})
	if len(after) != 2 {
		t.Errorf("after filter len = %d, want 2", len(after))
	}
	limited, _ := repo.QueryChallengeEvents(ctx, QueryOpts{Limit: 3})
	if len(limited) != 3 {
		t.Errorf("limit len = %d, want 3", len(limited))
	}
	future, _ := repo.QueryChallengeEvents(ctx, QueryOpts{From: time.Now().Add(time.Hour)})
	if len(future) != 0 {
		t.Errorf("from filter len = %d, want 0", len(future))
	}
}

func TestWipe(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if err := s.AlarmRepo().Create(ctx, sampleAlarm("a1")); err != nil {
		t.Fatal(err)
	}
	if err := s.RetriggerRepo().SaveRetriggers(ctx, "a1", []uuid.UUID{uuid.New()}); err != nil {
		t.Fatal(err)
	}
	if err := s.EventRepo().AppendChallengeEvent(ctx, ChallengeEventData{SessionID: "s", Action: ActionStart}); err != nil {
		t.Fatal(err)
	}

	if err := s.Wipe(ctx); err != nil {
		t.Fatalf("wipe: %v", err)
	}

	list, _ := s.AlarmRepo().List(ctx)
	rt, _ := s.RetriggerRepo().LoadRetriggers(ctx)
	ev, _ := s.EventRepo().QueryChallengeEvents(ctx, QueryOpts{})
	if len(list) != 0 || len(rt) != 0 || len(ev) != 0 {
		t.Errorf("wipe left data: %d alarms, %d retriggers, %d events", len(list), len(rt), len(ev))
	}
	if err := s.AlarmRepo().Create(ctx, sampleAlarm("a1")); !errors.Is(err, ErrDuplicateID) {
		t.Errorf("wiped id reused: err = %v", err)
	}
}

func TestDefaultDBPath_Env(t *testing.T) {
	dir := t.TempDir()
	want := filepath.Join(dir, "sub", "x.db")
	t.Setenv("RISEUP_DB", want)

	got, err := DefaultDBPath()
	if err != nil {
		t.Fatalf("DefaultDBPath: %v", err)
	}
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
	if _, err := os.Stat(filepath.Dir(want)); err != nil {
		t.Errorf("parent dir not created: %v", err)
	}
}

func TestDefaultDBPath_XDG(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("RISEUP_DB", "")
	t.Setenv("XDG_DATA_HOME", dir)

	got, err := DefaultDBPath()
	if err != nil {
		t.Fatalf("DefaultDBPath: %v", err)
	}
	if want := filepath.Join(dir, "riseup", "riseup.db"); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

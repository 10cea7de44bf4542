package eventlog

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alexanderramin/worktimer/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testDay = time.Date(2026, 10, 18, 8, 0, 0, 0, time.UTC)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(filepath.Join(t.TempDir(), ".work_timer"))
	require.NoError(t, err)
	return store
}

func TestStore_OpenCreatesEmptyLog(t *testing.T) {
	store := newTestStore(t)

	log, err := store.Open(testDay)
	require.NoError(t, err)
	assert.True(t, log.Created())
	assert.Equal(t, filepath.Join(store.Dir(), "2026-10-18.txt"), log.Path())

	entries, err := log.ReadAll()
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestStore_OpenIsIdempotent(t *testing.T) {
	store := newTestStore(t)

	first, err := store.Open(testDay)
	require.NoError(t, err)
	require.NoError(t, first.Append(domain.MustTimeOfDay("09:00:00")))
	require.NoError(t, first.Append(domain.MustTimeOfDay("12:30:00")))

	before, err := os.ReadFile(first.Path())
	require.NoError(t, err)

	second, err := store.Open(testDay)
	require.NoError(t, err)
	assert.False(t, second.Created())

	after, err := os.ReadFile(second.Path())
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestDayLog_AppendWritesOneLinePerEntry(t *testing.T) {
	store := newTestStore(t)
	log, err := store.Open(testDay)
	require.NoError(t, err)

	require.NoError(t, log.Append(domain.MustTimeOfDay("09:00:00")))
	require.NoError(t, log.Append(domain.MustTimeOfDay("12:30:00")))

	raw, err := os.ReadFile(log.Path())
	require.NoError(t, err)
	assert.Equal(t, "09:00:00\n12:30:00\n", string(raw))

	entries, err := log.ReadAll()
	require.NoError(t, err)
	assert.Equal(t, []domain.TimeOfDay{
		domain.MustTimeOfDay("09:00:00"),
		domain.MustTimeOfDay("12:30:00"),
	}, entries)
}

func TestDayLog_ReadAllRejectsMalformedLine(t *testing.T) {
	store := newTestStore(t)
	log, err := store.Open(testDay)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(log.Path(), []byte("09:00:00\n12:3\n"), 0o644))

	_, err = log.ReadAll()
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrMalformedEntry)
	assert.Contains(t, err.Error(), "line 2")
}

func TestDayLog_ReadAllRejectsBlankLine(t *testing.T) {
	store := newTestStore(t)
	log, err := store.Open(testDay)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(log.Path(), []byte("09:00:00\n\n10:00:00\n"), 0o644))

	_, err = log.ReadAll()
	assert.ErrorIs(t, err, domain.ErrMalformedEntry)
}

func TestDayLog_ReadAllRejectsUnterminatedFinalLine(t *testing.T) {
	store := newTestStore(t)
	log, err := store.Open(testDay)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(log.Path(), []byte("08:00:00\n09:00:00"), 0o644))

	entries, err := log.ReadAll()
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrMalformedEntry)
	assert.Contains(t, err.Error(), "line 2")
	assert.Nil(t, entries)
}

func TestDayLog_ReadAllRejectsTornSingleEntry(t *testing.T) {
	store := newTestStore(t)
	log, err := store.Open(testDay)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(log.Path(), []byte("09:00:00"), 0o644))

	_, err = log.ReadAll()
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrMalformedEntry)
	assert.Contains(t, err.Error(), "line 1")
}

func TestDayLog_AppendFailsWhenFileIsGone(t *testing.T) {
	store := newTestStore(t)
	log, err := store.Open(testDay)
	require.NoError(t, err)
	require.NoError(t, os.Remove(log.Path()))

	err = log.Append(domain.MustTimeOfDay("09:00:00"))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrIO)
}

func TestStore_Lookup(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Lookup(testDay)
	assert.ErrorIs(t, err, ErrDayNotFound)
	_, statErr := os.Stat(store.Path(testDay))
	assert.True(t, os.IsNotExist(statErr), "lookup must not create the log")

	_, err = store.Open(testDay)
	require.NoError(t, err)

	log, err := store.Lookup(testDay)
	require.NoError(t, err)
	assert.False(t, log.Created())
}

func TestStore_Days(t *testing.T) {
	store := newTestStore(t)

	for _, d := range []time.Time{testDay, testDay.AddDate(0, 0, -3), testDay.AddDate(0, 0, -1)} {
		_, err := store.Open(d)
		require.NoError(t, err)
	}
	require.NoError(t, os.WriteFile(filepath.Join(store.Dir(), "config.yaml"), nil, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(store.Dir(), "notes.txt"), nil, 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(store.Dir(), "2026-01-01.txt"), 0o755))

	days, err := store.Days()
	require.NoError(t, err)
	require.Len(t, days, 3)
	assert.Equal(t, "2026-10-15", days[0].Format(DayLayout))
	assert.Equal(t, "2026-10-17", days[1].Format(DayLayout))
	assert.Equal(t, "2026-10-18", days[2].Format(DayLayout))
}

func TestDayLog_Stat(t *testing.T) {
	store := newTestStore(t)
	log, err := store.Open(testDay)
	require.NoError(t, err)
	require.NoError(t, log.Append(domain.MustTimeOfDay("09:00:00")))

	size, mtime, err := log.Stat()
	require.NoError(t, err)
	assert.Equal(t, int64(9), size)
	assert.False(t, mtime.IsZero())
}

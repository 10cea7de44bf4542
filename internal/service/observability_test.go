package service

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/alexanderramin/worktimer/internal/domain"
	"github.com/alexanderramin/worktimer/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogUseCaseObserver_WritesToggleEvents(t *testing.T) {
	var buf bytes.Buffer
	tracker := NewTracker(&fakeLog{},
		WithClock(func() time.Time { return testutil.At("09:00:00") }),
		WithObserver(NewLogUseCaseObserver(&buf)),
	)

	require.NoError(t, tracker.Rehydrate(context.Background()))
	_, err := tracker.Toggle(context.Background())
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "use_case=rehydrate")
	assert.Contains(t, out, "use_case=toggle")
	assert.Contains(t, out, "at=09:00:00")
	assert.Contains(t, out, "state=working")
	assert.Contains(t, out, "run_id=")
}

func TestLogUseCaseObserver_LogsReplayedEventsAtDebug(t *testing.T) {
	var buf bytes.Buffer
	log := &fakeLog{entries: []domain.TimeOfDay{
		domain.MustTimeOfDay("09:00:00"),
		domain.MustTimeOfDay("12:30:00"),
		domain.MustTimeOfDay("13:00:00"),
	}}
	sink := &recordingSink{}
	tracker := NewTracker(log,
		WithSink(sink),
		WithObserver(NewLogUseCaseObserver(&buf)),
	)

	require.NoError(t, tracker.Rehydrate(context.Background()))

	var replayed []string
	for _, line := range strings.Split(buf.String(), "\n") {
		if strings.Contains(line, "msg=replayed_event") {
			replayed = append(replayed, line)
		}
	}
	require.Len(t, replayed, 3)
	for _, line := range replayed {
		assert.Contains(t, line, "level=DEBUG")
	}
	assert.Contains(t, replayed[0], "kind=started at=09:00:00")
	assert.Contains(t, replayed[1], "kind=stopped at=12:30:00 elapsed_sec=12600 total_sec=12600")
	assert.Empty(t, sink.observed)
}

func TestLogUseCaseObserver_LogsReplayUpToFailure(t *testing.T) {
	var buf bytes.Buffer
	log := &fakeLog{entries: []domain.TimeOfDay{
		domain.MustTimeOfDay("10:00:00"),
		domain.MustTimeOfDay("09:00:00"),
	}}
	tracker := NewTracker(log, WithObserver(NewLogUseCaseObserver(&buf)))

	err := tracker.Rehydrate(context.Background())
	require.ErrorIs(t, err, domain.ErrInvalidState)
	assert.Equal(t, 1, strings.Count(buf.String(), "msg=replayed_event"))
}

func TestNewLogUseCaseObserver_NilWriter(t *testing.T) {
	assert.IsType(t, NoopUseCaseObserver{}, NewLogUseCaseObserver(nil))
}

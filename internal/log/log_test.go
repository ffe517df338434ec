package log

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/azario0/prototypes-txt-reader/internal/pubsub"
)

func installBuffer(t *testing.T, size int) (*bytes.Buffer, *Logger) {
	t.Helper()
	var buf bytes.Buffer
	l := New(&buf, size)
	SetDefault(l)
	t.Cleanup(func() { SetDefault(nil) })
	return &buf, l
}

func TestFormat(t *testing.T) {
	ts := time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)

	got := Format(ts, LevelWarn, CatSearch, "pattern rejected", "term", "a(", "offset")

	require.Equal(t, "2026-03-01T09:30:00 [WARN] [search] pattern rejected term=a( offset=<missing>", got)
}

func TestLog_WritesAndBuffers(t *testing.T) {
	buf, _ := installBuffer(t, 10)

	Info(CatDoc, "loaded", "lines", 3)
	ErrorErr(CatDoc, "load failed", errors.New("boom"))

	require.Contains(t, buf.String(), "[INFO] [doc] loaded lines=3")
	require.Contains(t, buf.String(), "[ERROR] [doc] load failed error=boom")

	recent := Recent(10)
	require.Len(t, recent, 2)
	require.Equal(t, LevelError, EntryLevel(recent[1]))
}

func TestLog_MinLevelAndDisable(t *testing.T) {
	buf, _ := installBuffer(t, 10)

	SetMinLevel(LevelWarn)
	Debug(CatUI, "hidden")
	Warn(CatUI, "shown")
	SetEnabled(false)
	Error(CatUI, "muted")

	require.NotContains(t, buf.String(), "hidden")
	require.Contains(t, buf.String(), "shown")
	require.NotContains(t, buf.String(), "muted")
}

func TestRecent_RingWrapsOldestFirst(t *testing.T) {
	installBuffer(t, 3)

	for _, m := range []string{"a", "b", "c", "d", "e"} {
		Debug(CatCache, m)
	}

	recent := Recent(-1)
	require.Len(t, recent, 3)
	require.Contains(t, recent[0], " c")
	require.Contains(t, recent[2], " e")

	require.Len(t, Recent(1), 1)

	ClearBuffer()
	require.Empty(t, Recent(-1))
}

func TestNilLoggerIsSilent(t *testing.T) {
	SetDefault(nil)
	require.NotPanics(t, func() {
		Debug(CatDoc, "nobody listening")
		ClearBuffer()
	})
	require.Nil(t, Recent(5))
	require.Nil(t, NewListener(context.Background()))
}

func TestNewListener_ReceivesEntries(t *testing.T) {
	installBuffer(t, 10)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	listener := NewListener(ctx)
	require.NotNil(t, listener)

	Info(CatWatcher, "file changed")

	ev, ok := listener.Listen()().(pubsub.Event[string])
	require.True(t, ok)
	require.Equal(t, pubsub.AppendedEvent, ev.Type)
	require.Contains(t, ev.Payload, "file changed")
}

package main

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wolfman30/saathi/internal/crisislog"
)

func TestPrintEventsWritesNewestAsJSONLines(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	store := crisislog.NewStore(client, 10)
	ctx := context.Background()
	base := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	for i, sid := range []string{"s1", "s2", "s3"} {
		require.NoError(t, store.Record(ctx, crisislog.Event{SessionID: sid, Phrase: "suicide", Timestamp: base.Add(time.Duration(i) * time.Minute)}))
	}

	var out bytes.Buffer
	require.NoError(t, printEvents(ctx, store, 2, &out))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], `"session_id":"s2"`)
	assert.Contains(t, lines[1], `"session_id":"s3"`)
	assert.NotContains(t, out.String(), "message")
}

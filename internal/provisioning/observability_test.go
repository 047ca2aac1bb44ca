package provisioning

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imamik/valheimctl/internal/logging"
	"github.com/imamik/valheimctl/internal/platform/cloudformation"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var out []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var entry map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &entry))
		out = append(out, entry)
	}
	return out
}

func TestLogObserver_Fields(t *testing.T) {
	var buf bytes.Buffer
	base := NewLogObserver(logging.New(logging.Options{Output: &buf, JSON: true}))
	observer := base.WithFields(map[string]string{"stack": "valheim"}).WithFields(map[string]string{"region": "eu-central-1"})

	observer.Event(Event{Type: EventPhaseStarted, Phase: "apply", Message: "starting", Fields: map[string]string{"stack": "override"}})
	base.Event(Event{Type: EventPhaseStarted, Message: "base"})

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 2)
	assert.Equal(t, "starting", lines[0]["msg"])
	assert.Equal(t, "phase.started", lines[0]["event"])
	assert.Equal(t, "apply", lines[0]["phase"])
	assert.Equal(t, "override", lines[0]["stack"])
	assert.Equal(t, "eu-central-1", lines[0]["region"])
	assert.NotContains(t, lines[1], "stack", "WithFields does not leak into the parent")
}

func TestLogObserver_Levels(t *testing.T) {
	var buf bytes.Buffer
	observer := NewLogObserver(logging.New(logging.Options{Output: &buf, JSON: true}))

	observer.Event(Event{Type: EventResourceProgress, Message: "hidden"})
	observer.Event(Event{Type: EventPhaseFailed, Message: "failed: boom"})

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 1)
	assert.Equal(t, "error", lines[0]["level"])
}

func TestLogStackEvent(t *testing.T) {
	tests := []struct {
		status string
		want   EventType
	}{
		{"CREATE_IN_PROGRESS", EventResourceCreating},
		{"CREATE_COMPLETE", EventResourceCreated},
		{"UPDATE_IN_PROGRESS", EventResourceUpdating},
		{"UPDATE_COMPLETE", EventResourceUpdated},
		{"DELETE_IN_PROGRESS", EventResourceDeleting},
		{"DELETE_COMPLETE", EventResourceDeleted},
		{"UPDATE_FAILED", EventResourceFailed},
		{"DELETE_SKIPPED", EventResourceProgress},
	}
	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			rec := &recordingObserver{}
			ts := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
			LogStackEvent(rec, "apply", cloudformation.Event{
				LogicalID:    "ValheimCluster",
				ResourceType: "AWS::ECS::Cluster",
				Status:       tt.status,
				Reason:       "why",
				Timestamp:    ts,
			})

			require.Len(t, rec.events, 1)
			e := rec.events[0]
			assert.Equal(t, tt.want, e.Type)
			assert.Equal(t, "ValheimCluster", e.Resource)
			assert.Equal(t, tt.status+": why", e.Message)
			assert.Equal(t, ts, e.Timestamp)
			assert.Equal(t, "AWS::ECS::Cluster", e.Fields["type"])
		})
	}
}

type recordingObserver struct {
	events []Event
}

func (r *recordingObserver) Event(e Event) { r.events = append(r.events, e) }

func (r *recordingObserver) WithFields(map[string]string) Observer { return r }

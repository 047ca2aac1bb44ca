package provisioning

import (
	"fmt"
	"maps"
	"sort"
	"time"

	"github.com/go-logr/logr"

	"github.com/imamik/valheimctl/internal/platform/cloudformation"
)

// Observer receives structured provisioning events.
type Observer interface {
	// Event emits a structured event.
	Event(event Event)

	// WithFields returns a new Observer with additional context fields.
	WithFields(fields map[string]string) Observer
}

// Event represents a structured provisioning event.
type Event struct {
	Type      EventType
	Phase     string
	Message   string
	Resource  string // logical ID if applicable
	Timestamp time.Time
	Fields    map[string]string
}

// EventType represents the type of provisioning event.
type EventType string

const (
	// EventPhaseStarted indicates a provisioning phase has started.
	EventPhaseStarted EventType = "phase.started"
	// EventPhaseCompleted indicates a provisioning phase completed successfully.
	EventPhaseCompleted EventType = "phase.completed"
	// EventPhaseFailed indicates a provisioning phase failed.
	EventPhaseFailed EventType = "phase.failed"
	// EventPhaseSkipped indicates a phase had nothing to do.
	EventPhaseSkipped EventType = "phase.skipped"

	// EventResourceCreating indicates a resource is being created.
	EventResourceCreating EventType = "resource.creating"
	// EventResourceCreated indicates a resource was created successfully.
	EventResourceCreated EventType = "resource.created"
	// EventResourceUpdating indicates a resource is being updated.
	EventResourceUpdating EventType = "resource.updating"
	// EventResourceUpdated indicates a resource was updated successfully.
	EventResourceUpdated EventType = "resource.updated"
	// EventResourceFailed indicates a resource operation failed.
	EventResourceFailed EventType = "resource.failed"
	// EventResourceDeleting indicates a resource is being deleted.
	EventResourceDeleting EventType = "resource.deleting"
	// EventResourceDeleted indicates a resource was deleted successfully.
	EventResourceDeleted EventType = "resource.deleted"
	// EventResourceProgress is any other resource status change.
	EventResourceProgress EventType = "resource.progress"

	// EventValidationWarning indicates a validation warning.
	EventValidationWarning EventType = "validation.warning"
)

// LogObserver implements Observer on a logr.Logger.
type LogObserver struct {
	log    logr.Logger
	fields map[string]string
}

// NewLogObserver creates an observer that logs through log.
func NewLogObserver(log logr.Logger) *LogObserver {
	return &LogObserver{log: log, fields: map[string]string{}}
}

// Event implements Observer. Failures log as errors; resource progress
// logs at V(1).
func (o *LogObserver) Event(event Event) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	fields := maps.Clone(o.fields)
	maps.Copy(fields, event.Fields)

	kv := []any{"event", string(event.Type)}
	if event.Phase != "" {
		kv = append(kv, "phase", event.Phase)
	}
	if event.Resource != "" {
		kv = append(kv, "resource", event.Resource)
	}
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		kv = append(kv, k, fields[k])
	}

	switch event.Type {
	case EventPhaseFailed, EventResourceFailed:
		o.log.Error(nil, event.Message, kv...)
	case EventResourceProgress:
		o.log.V(1).Info(event.Message, kv...)
	default:
		o.log.Info(event.Message, kv...)
	}
}

// WithFields implements Observer.
func (o *LogObserver) WithFields(fields map[string]string) Observer {
	merged := maps.Clone(o.fields)
	maps.Copy(merged, fields)
	return &LogObserver{log: o.log, fields: merged}
}

// LogPhaseStart logs a phase start event.
func LogPhaseStart(observer Observer, phase string) {
	observer.Event(Event{Type: EventPhaseStarted, Phase: phase, Message: "starting"})
}

// LogPhaseComplete logs a phase completion event.
func LogPhaseComplete(observer Observer, phase string, duration time.Duration) {
	observer.Event(Event{
		Type:    EventPhaseCompleted,
		Phase:   phase,
		Message: fmt.Sprintf("completed in %v", duration.Round(time.Millisecond)),
	})
}

// LogPhaseFailed logs a phase failure event.
func LogPhaseFailed(observer Observer, phase string, err error) {
	observer.Event(Event{Type: EventPhaseFailed, Phase: phase, Message: fmt.Sprintf("failed: %v", err)})
}

// LogPhaseSkipped logs that a phase had nothing to do.
func LogPhaseSkipped(observer Observer, phase, reason string) {
	observer.Event(Event{Type: EventPhaseSkipped, Phase: phase, Message: reason})
}

// LogValidationWarning logs a non-fatal finding.
func LogValidationWarning(observer Observer, phase, message string) {
	observer.Event(Event{Type: EventValidationWarning, Phase: phase, Message: message})
}

// LogStackEvent translates a CloudFormation stack event.
func LogStackEvent(observer Observer, phase string, e cloudformation.Event) {
	fields := map[string]string{"status": e.Status}
	if e.ResourceType != "" {
		fields["type"] = e.ResourceType
	}
	msg := e.Status
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	observer.Event(Event{
		Type:      stackEventType(e.Status),
		Phase:     phase,
		Resource:  e.LogicalID,
		Message:   msg,
		Timestamp: e.Timestamp,
		Fields:    fields,
	})
}

func stackEventType(status string) EventType {
	switch status {
	case "CREATE_IN_PROGRESS":
		return EventResourceCreating
	case "CREATE_COMPLETE":
		return EventResourceCreated
	case "UPDATE_IN_PROGRESS":
		return EventResourceUpdating
	case "UPDATE_COMPLETE":
		return EventResourceUpdated
	case "DELETE_IN_PROGRESS":
		return EventResourceDeleting
	case "DELETE_COMPLETE":
		return EventResourceDeleted
	case "CREATE_FAILED", "UPDATE_FAILED", "DELETE_FAILED", "IMPORT_FAILED":
		return EventResourceFailed
	}
	return EventResourceProgress
}

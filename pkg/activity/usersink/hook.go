// Package usersink bridges composer activity events into a go-users
// activity sink.
package usersink

import (
	"context"

	"github.com/goliatone/go-composer/pkg/activity"
	"github.com/goliatone/go-users/pkg/types"
	"github.com/google/uuid"
)

// Sink is the minimal go-users surface this hook needs.
type Sink interface {
	Log(ctx context.Context, record types.ActivityRecord) error
}

// Hook maps activity events onto go-users ActivityRecords.
type Hook struct {
	Sink Sink
}

// Notify converts and forwards the event. Events without a verb are
// silently skipped; id fields that are not UUIDs map to the zero id.
func (h Hook) Notify(ctx context.Context, evt Event) error {
	if h.Sink == nil || !evt.Valid() {
		return nil
	}
	data := map[string]any{}
	for k, v := range evt.Metadata {
		data[k] = v
	}
	if evt.DefinitionCode != "" {
		data["definition_code"] = evt.DefinitionCode
	}
	if len(evt.Recipients) > 0 {
		data["recipients"] = append([]string(nil), evt.Recipients...)
	}
	record := types.ActivityRecord{
		ActorID:    parseID(evt.ActorID),
		UserID:     parseID(evt.UserID),
		TenantID:   parseID(evt.TenantID),
		Verb:       evt.Verb,
		ObjectType: evt.ObjectType,
		ObjectID:   evt.ObjectID,
		Channel:    evt.Channel,
		OccurredAt: evt.OccurredAt,
		Data:       data,
	}
	return h.Sink.Log(ctx, record)
}

// Event aliases the activity event type for callers of this package.
type Event = activity.Event

func parseID(s string) uuid.UUID {
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.UUID{}
	}
	return id
}

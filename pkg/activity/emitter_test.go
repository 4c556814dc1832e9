package activity

import (
	"context"
	"testing"
)

type recordingHook struct {
	events []Event
}

func (h *recordingHook) Notify(_ context.Context, evt Event) error {
	h.events = append(h.events, evt)
	return nil
}

func TestEmitterDefaultsChannelAndEmits(t *testing.T) {
	hook := &recordingHook{}
	em := NewEmitter(Hooks{hook}, Config{Enabled: true})
	if !em.Enabled() {
		t.Fatalf("expected emitter enabled")
	}
	err := em.Emit(context.Background(), Event{
		Verb:       "verb",
		ObjectType: "object",
		ObjectID:   "id",
	})
	if err != nil {
		t.Fatalf("emit returned error: %v", err)
	}
	if len(hook.events) != 1 {
		t.Fatalf("expected event emitted, got %d", len(hook.events))
	}
	if hook.events[0].Channel != DefaultChannel {
		t.Fatalf("expected default channel %q, got %q", DefaultChannel, hook.events[0].Channel)
	}
}

func TestEmitterCustomChannel(t *testing.T) {
	hook := &recordingHook{}
	em := NewEmitter(Hooks{hook}, Config{Enabled: true, Channel: "acme"})
	err := em.Emit(context.Background(), Event{
		Verb:       "save",
		ObjectType: "layout",
		ObjectID:   "l1",
	})
	if err != nil {
		t.Fatalf("emit returned error: %v", err)
	}
	if hook.events[0].Channel != "acme" {
		t.Fatalf("expected configured channel, got %q", hook.events[0].Channel)
	}
}

func TestEmitterDisabledWithoutHooks(t *testing.T) {
	em := NewEmitter(nil, Config{Enabled: true})
	if em.Enabled() {
		t.Fatalf("expected emitter disabled without hooks")
	}
}

func TestEmitterDisabledByConfig(t *testing.T) {
	hook := &recordingHook{}
	em := NewEmitter(Hooks{hook}, Config{})
	if em.Enabled() {
		t.Fatalf("expected emitter disabled by config")
	}
	if err := em.Emit(context.Background(), Event{Verb: "v", ObjectType: "o", ObjectID: "1"}); err != nil {
		t.Fatalf("emit returned error: %v", err)
	}
	if len(hook.events) != 0 {
		t.Fatalf("expected no delivery while disabled, got %d", len(hook.events))
	}
}

func TestNilEmitterIsInert(t *testing.T) {
	var em *Emitter
	if em.Enabled() {
		t.Fatalf("expected nil emitter disabled")
	}
}

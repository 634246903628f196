package widget

import (
	"fmt"
	"log/slog"

	"github.com/reprise-ui/reprise/internal/identity"
)

// RegisterOption configures optional registration parameters.
type RegisterOption func(*registerConfig)

type registerConfig struct {
	userKey     string
	displayName string
	callback    *CallbackBundle
}

// WithKey sets the user-supplied key. The key feeds the derived identity
// and is claimed against the run's key set.
func WithKey(key string) RegisterOption {
	return func(c *registerConfig) { c.userKey = key }
}

// WithDisplayName sets the widget's declaring function name for error
// messages, when it differs from the element type. Custom components are
// the usual case: they all share one element type but are declared through
// dynamically named functions.
func WithDisplayName(name string) RegisterOption {
	return func(c *registerConfig) { c.displayName = name }
}

// WithCallback binds a change callback with positional and keyword
// arguments to invoke when the widget's value changes.
func WithCallback(fn Callback, args []any, kwargs map[string]any) RegisterOption {
	return func(c *registerConfig) {
		c.callback = &CallbackBundle{Fn: fn, Args: args, Kwargs: kwargs}
	}
}

// Register derives the widget's identity, claims it for the current run,
// and commits the widget to the session store, returning the value the
// declaring script observes this run.
//
// Unhappy path: rctx is nil (the script is executing bare, outside the
// driving engine). Register returns a fallback result carrying the
// deserializer's default value. No error, no mutation.
//
// Failure path: the user key or the derived identity was already claimed
// this run. Register returns *DuplicateWidgetError without mutating the
// claim sets. Duplicate detection is fatal to the run, never retried.
//
// Happy path: both claim sets are extended exactly once, metadata is built
// from the static element table, and the session store's result is
// returned unchanged (including any downstream storage error).
func Register(desc *Descriptor, deserialize Deserializer, serialize Serializer, rctx *RunContext, opts ...RegisterOption) (RegisterResult, error) {
	var cfg registerConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	encoded, err := desc.EncodedConfig()
	if err != nil {
		return RegisterResult{}, err
	}

	widgetID := identity.Derive(string(desc.Type), encoded, cfg.userKey)
	desc.ID = widgetID

	if rctx == nil {
		// Bare execution: no engine is driving this script.
		return FallbackResult(deserialize, widgetID), nil
	}

	slot, ok := ValueSlotFor(desc.Type)
	if !ok {
		return RegisterResult{}, fmt.Errorf("unknown element type %q", desc.Type)
	}

	displayName := cfg.displayName
	if displayName == "" {
		displayName = string(desc.Type)
	}

	if cfg.userKey != "" {
		if _, claimed := rctx.WidgetUserKeysThisRun[cfg.userKey]; claimed {
			return RegisterResult{}, &DuplicateWidgetError{
				DisplayName: displayName,
				UserKey:     cfg.userKey,
			}
		}
	}
	if _, claimed := rctx.WidgetIDsThisRun[widgetID]; claimed {
		return RegisterResult{}, &DuplicateWidgetError{
			DisplayName: displayName,
			UserKey:     cfg.userKey,
		}
	}

	// Both checks passed: claim exactly once.
	if cfg.userKey != "" {
		rctx.WidgetUserKeysThisRun[cfg.userKey] = struct{}{}
	}
	rctx.WidgetIDsThisRun[widgetID] = struct{}{}

	slog.Debug("widget registered",
		"id", widgetID,
		"type", desc.Type,
		"slot", slot,
		"keyed", cfg.userKey != "",
	)

	meta := Metadata{
		ID:          widgetID,
		Type:        desc.Type,
		Slot:        slot,
		Deserialize: deserialize,
		Serialize:   serialize,
		Callback:    cfg.callback,
	}
	return rctx.Store.RegisterWidget(meta, cfg.userKey)
}

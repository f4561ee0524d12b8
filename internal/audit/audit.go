// Copyright (c) 2026 Kurpejovica Enciklopedija. All rights reserved.
// Author: huzeir2k@gmail.com

/*
Package audit implements the best-effort change log.

Every mutating operation emits an audit entry after its primary write has
succeeded. Delivery is fire-and-forget: entries are written on a detached
context by a background goroutine, failures are logged and swallowed, and no
audit problem ever surfaces in the caller's error path.
*/
package audit

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/huzeir2k/kurpejovica-enciklopedija-sub000/internal/platform/constants"
	"github.com/huzeir2k/kurpejovica-enciklopedija-sub000/pkg/uuid"
)

// # Actions

const (
	ActionCreate = "create"
	ActionUpdate = "update"
	ActionDelete = "delete"
)

// # Entities

// Record is a single append-only audit log row.
type Record struct {
	ID         string    `json:"id"`
	ActorID    string    `json:"actor_id"`
	Action     string    `json:"action"`
	EntityType string    `json:"entity_type"`
	EntityID   string    `json:"entity_id"`
	Before     []byte    `json:"before,omitempty"`
	After      []byte    `json:"after,omitempty"`
	IPAddress  string    `json:"ip_address,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// Entry is the caller-facing shape of an audit event. Before and After hold
// arbitrary snapshots that are serialised to JSON on write.
type Entry struct {
	ActorID    string
	Action     string
	EntityType string
	EntityID   string
	Before     any
	After      any
	IPAddress  string
}

// Store defines the persistence contract for audit records.
type Store interface {
	Insert(context context.Context, record *Record) error
}

// # Recorder

// Recorder converts audit entries into records and writes them without ever
// failing the caller.
type Recorder struct {
	store  Store
	logger *slog.Logger
}

// NewRecorder constructs a best-effort audit recorder.
func NewRecorder(store Store, logger *slog.Logger) *Recorder {
	return &Recorder{store: store, logger: logger}
}

// Record asynchronously persists an audit entry.
//
// The write runs on a context detached from the request (the primary mutation
// has already committed; request cancellation must not lose the trail) with
// its own short deadline. Serialisation and storage errors are logged and
// swallowed.
func (recorder *Recorder) Record(ctx context.Context, entry Entry) {
	record := &Record{
		ID:         uuid.New(),
		ActorID:    entry.ActorID,
		Action:     entry.Action,
		EntityType: entry.EntityType,
		EntityID:   entry.EntityID,
		IPAddress:  entry.IPAddress,
	}

	if entry.Before != nil {
		record.Before = marshalSnapshot(recorder.logger, entry.Before)
	}
	if entry.After != nil {
		record.After = marshalSnapshot(recorder.logger, entry.After)
	}

	detached := context.WithoutCancel(ctx)

	go func() {
		writeCtx, cancel := context.WithTimeout(detached, constants.AuditWriteTimeout)
		defer cancel()

		if err := recorder.store.Insert(writeCtx, record); err != nil {
			recorder.logger.Error("audit_write_failed",
				slog.String("entity_type", record.EntityType),
				slog.String("entity_id", record.EntityID),
				slog.String("action", record.Action),
				slog.Any("error", err),
			)
		}
	}()
}

// marshalSnapshot serialises a before/after snapshot, logging (not failing)
// on marshal errors.
func marshalSnapshot(logger *slog.Logger, snapshot any) []byte {
	data, err := json.Marshal(snapshot)
	if err != nil {
		logger.Error("audit_snapshot_marshal_failed", slog.Any("error", err))
		return nil
	}
	return data
}

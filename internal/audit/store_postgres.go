// Copyright (c) 2026 Kurpejovica Enciklopedija. All rights reserved.
// Author: huzeir2k@gmail.com

package audit

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/huzeir2k/kurpejovica-enciklopedija-sub000/internal/platform/database/schema"
)

// PostgresStore implements [Store] against the system.auditlog table.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore constructs a PostgreSQL backed audit store.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

/*
Insert appends one audit record.

The table is append-only; there are no update or delete paths.
*/
func (store *PostgresStore) Insert(context context.Context, record *Record) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`,
		schema.SystemAuditLog.Table,
		schema.SystemAuditLog.ID, schema.SystemAuditLog.ActorID, schema.SystemAuditLog.Action,
		schema.SystemAuditLog.EntityType, schema.SystemAuditLog.EntityID,
		schema.SystemAuditLog.Before, schema.SystemAuditLog.After, schema.SystemAuditLog.IPAddress,
	)

	_, err := store.pool.Exec(context, query,
		record.ID, record.ActorID, record.Action,
		record.EntityType, record.EntityID,
		record.Before, record.After, nullableText(record.IPAddress),
	)
	if err != nil {
		return fmt.Errorf("postgres: insert audit record failed: %w", err)
	}
	return nil
}

// nullableText maps an empty string to SQL NULL.
func nullableText(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}

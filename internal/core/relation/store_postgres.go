// Copyright (c) 2026 Kurpejovica Enciklopedija. All rights reserved.
// Author: huzeir2k@gmail.com

/*
Package relation provides the PostgreSQL implementation for the relationship
graph's data access.

Edges and their counterpart projections are fetched in a single joined query:
a CASE expression picks the endpoint other than the queried member, so the
classifier never needs a second round trip per edge.
*/
package relation

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/huzeir2k/kurpejovica-enciklopedija-sub000/internal/platform/database/schema"
	"github.com/huzeir2k/kurpejovica-enciklopedija-sub000/internal/platform/dberr"
)

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed edge store.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

/*
CreateEdge persists a new asserted edge row.

No uniqueness constraint exists on (persona, personb, relationtype); duplicate
assertions are stored as independent rows.
*/
func (repository *PostgresRepository) CreateEdge(context context.Context, edge *Edge) error {

	// Row insertion
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING %s
	`,
		schema.CoreMemberRelation.Table,
		schema.CoreMemberRelation.ID, schema.CoreMemberRelation.PersonA, schema.CoreMemberRelation.PersonB,
		schema.CoreMemberRelation.RelationType, schema.CoreMemberRelation.CreatedBy,
		schema.CoreMemberRelation.CreatedAt,
	)

	err := repository.pool.QueryRow(context, query,
		edge.ID, edge.PersonA, edge.PersonB, edge.Type, edge.CreatedBy,
	).Scan(&edge.CreatedAt)
	if err != nil {
		return dberr.Wrap(err, "create_edge")
	}
	return nil
}

/*
GetEdge loads a single edge by id.
*/
func (repository *PostgresRepository) GetEdge(context context.Context, id string) (*Edge, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1
	`,
		schema.CoreMemberRelation.ID, schema.CoreMemberRelation.PersonA, schema.CoreMemberRelation.PersonB,
		schema.CoreMemberRelation.RelationType, schema.CoreMemberRelation.CreatedBy, schema.CoreMemberRelation.CreatedAt,
		schema.CoreMemberRelation.Table,
		schema.CoreMemberRelation.ID,
	)

	edge := &Edge{}
	err := repository.pool.QueryRow(context, query, id).Scan(
		&edge.ID, &edge.PersonA, &edge.PersonB, &edge.Type, &edge.CreatedBy, &edge.CreatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "get_edge")
	}
	return edge, nil
}

/*
EdgesTouching returns every edge where the member is either endpoint, joined
with the counterpart member's display projection.
*/
func (repository *PostgresRepository) EdgesTouching(context context.Context, memberID string) ([]*TouchingEdge, error) {

	// The CASE expression resolves the "other" endpoint in SQL so a single
	// round trip serves the whole classification pass.
	query := fmt.Sprintf(`
		SELECT r.%s, r.%s, r.%s, r.%s, r.%s, r.%s,
		       m.%s, m.%s, m.%s, m.%s
		FROM %s r
		JOIN %s m ON m.%s = CASE WHEN r.%s = $1 THEN r.%s ELSE r.%s END
		WHERE r.%s = $1 OR r.%s = $1
		ORDER BY r.%s ASC
	`,
		schema.CoreMemberRelation.ID, schema.CoreMemberRelation.PersonA, schema.CoreMemberRelation.PersonB,
		schema.CoreMemberRelation.RelationType, schema.CoreMemberRelation.CreatedBy, schema.CoreMemberRelation.CreatedAt,
		schema.CoreMember.ID, schema.CoreMember.Name, schema.CoreMember.BirthYear, schema.CoreMember.DeathYear,
		schema.CoreMemberRelation.Table,
		schema.CoreMember.Table, schema.CoreMember.ID,
		schema.CoreMemberRelation.PersonA, schema.CoreMemberRelation.PersonB, schema.CoreMemberRelation.PersonA,
		schema.CoreMemberRelation.PersonA, schema.CoreMemberRelation.PersonB,
		schema.CoreMemberRelation.ID,
	)

	rows, err := repository.pool.Query(context, query, memberID)
	if err != nil {
		return nil, dberr.Wrap(err, "edges_touching")
	}
	defer rows.Close()

	// Hydrate edge slice
	var edges []*TouchingEdge
	for rows.Next() {
		edge := &TouchingEdge{}
		if err := rows.Scan(
			&edge.ID, &edge.PersonA, &edge.PersonB, &edge.Type, &edge.CreatedBy, &edge.CreatedAt,
			&edge.Other.ID, &edge.Other.Name, &edge.Other.BirthYear, &edge.Other.DeathYear,
		); err != nil {
			return nil, dberr.Wrap(err, "scan_edge")
		}
		edges = append(edges, edge)
	}

	return edges, rows.Err()
}

/*
DeleteEdge removes one edge row by id.
*/
func (repository *PostgresRepository) DeleteEdge(context context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`,
		schema.CoreMemberRelation.Table, schema.CoreMemberRelation.ID)

	tag, err := repository.pool.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_edge")
	}
	if tag.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

/*
MemberExists reports whether a member row exists.
*/
func (repository *PostgresRepository) MemberExists(context context.Context, memberID string) (bool, error) {
	query := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE %s = $1)`,
		schema.CoreMember.Table, schema.CoreMember.ID)

	var exists bool
	if err := repository.pool.QueryRow(context, query, memberID).Scan(&exists); err != nil {
		return false, dberr.Wrap(err, "member_exists")
	}
	return exists, nil
}

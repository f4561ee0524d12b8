// Copyright (c) 2026 Kurpejovica Enciklopedija. All rights reserved.
// Author: huzeir2k@gmail.com

/*
Package member provides the PostgreSQL implementation for the catalogue's data access.

The repository follows an "Aggregate" pattern: portrait rows are managed
through the main repository instance, and destructive operations that span
tables (cascade delete, primary-portrait promotion) execute inside explicit
ACID transactions so a mid-sequence failure leaves no partial state behind.
*/
package member

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/huzeir2k/kurpejovica-enciklopedija-sub000/internal/platform/apperr"
	"github.com/huzeir2k/kurpejovica-enciklopedija-sub000/internal/platform/database/schema"
	"github.com/huzeir2k/kurpejovica-enciklopedija-sub000/internal/platform/dberr"
)

// # PostgreSQL Repository

// querier is the subset of [pgxpool.Pool] the repository depends on.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
}

// PostgresRepository implements the [Repository] interface using pgx.
type PostgresRepository struct {
	db querier
}

// NewPostgresRepository constructs a PostgreSQL backed member store.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// memberColumns is the SELECT list shared by every member lookup.
func memberColumns(alias string) string {
	cols := []string{
		schema.CoreMember.ID,
		schema.CoreMember.Name,
		schema.CoreMember.Slug,
		schema.CoreMember.BirthYear,
		schema.CoreMember.DeathYear,
		schema.CoreMember.BirthPlace,
		schema.CoreMember.Occupation,
		schema.CoreMember.Bio,
		schema.CoreMember.CreatedBy,
		schema.CoreMember.CreatedAt,
		schema.CoreMember.UpdatedAt,
	}
	for i, c := range cols {
		cols[i] = alias + "." + c
	}
	return strings.Join(cols, ", ")
}

// scanMember maps a member row into the domain entity.
func scanMember(row interface{ Scan(...any) error }) (*Member, error) {
	m := &Member{}
	err := row.Scan(
		&m.ID,
		&m.Name,
		&m.Slug,
		&m.BirthYear,
		&m.DeathYear,
		&m.BirthPlace,
		&m.Occupation,
		&m.Bio,
		&m.CreatedBy,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	return m, err
}

/*
List returns a filtered, paginated slice of members and the total count.

Description: Uses a window function (COUNT(*) OVER()) to retrieve the total
record count without a second round-trip. Name search is a case-insensitive
substring match; sorting defaults to alphabetical.

Parameters:
  - context: context.Context
  - filter: Filter (Name search, life-year, sort key)
  - limit: int
  - offset: int

Returns:
  - []*Member: Slice of hydrated person records
  - int: Total count matching filters
  - error: Database execution errors
*/
func (repository *PostgresRepository) List(context context.Context, filter Filter, limit, offset int) ([]*Member, int, error) {

	var queryBuilder strings.Builder
	var args []any
	argID := 1

	queryBuilder.WriteString(fmt.Sprintf(`
		SELECT %s, COUNT(*) OVER() AS total_count
		FROM %s m
		WHERE TRUE
	`,
		memberColumns("m"),
		schema.CoreMember.Table,
	))

	// Name substring search
	if filter.Query != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND m.%s ILIKE $%d", schema.CoreMember.Name, argID))
		args = append(args, "%"+filter.Query+"%")
		argID++
	}

	// Life-year filtering
	if filter.BirthYear != nil {
		queryBuilder.WriteString(fmt.Sprintf(" AND m.%s = $%d", schema.CoreMember.BirthYear, argID))
		args = append(args, *filter.BirthYear)
		argID++
	}

	// Apply Sorting Logic
	orderBy := fmt.Sprintf("m.%s ASC", schema.CoreMember.Name)
	switch filter.Sort {
	case "za":
		orderBy = fmt.Sprintf("m.%s DESC", schema.CoreMember.Name)
	case "oldest":
		orderBy = fmt.Sprintf("m.%s ASC NULLS LAST", schema.CoreMember.BirthYear)
	case "latest":
		orderBy = fmt.Sprintf("m.%s DESC", schema.CoreMember.CreatedAt)
	}
	queryBuilder.WriteString(fmt.Sprintf(" ORDER BY %s, m.%s ASC", orderBy, schema.CoreMember.ID))

	// Pagination injection
	queryBuilder.WriteString(fmt.Sprintf(" LIMIT $%d OFFSET $%d", argID, argID+1))
	args = append(args, limit, offset)

	rows, err := repository.db.Query(context, queryBuilder.String(), args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_members")
	}
	defer rows.Close()

	var members []*Member
	var totalCount int

	for rows.Next() {
		m := &Member{}
		err := rows.Scan(
			&m.ID,
			&m.Name,
			&m.Slug,
			&m.BirthYear,
			&m.DeathYear,
			&m.BirthPlace,
			&m.Occupation,
			&m.Bio,
			&m.CreatedBy,
			&m.CreatedAt,
			&m.UpdatedAt,
			&totalCount,
		)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_member")
		}
		members = append(members, m)
	}

	return members, totalCount, nil
}

func (repository *PostgresRepository) FindByID(context context.Context, id string) (*Member, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s m
		WHERE m.%s = $1
	`,
		memberColumns("m"),
		schema.CoreMember.Table,
		schema.CoreMember.ID,
	)

	m, err := scanMember(repository.db.QueryRow(context, query, id))
	return m, dberr.Wrap(err, "get_member")
}

func (repository *PostgresRepository) FindBySlug(context context.Context, slug string) (*Member, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s m
		WHERE m.%s = $1
	`,
		memberColumns("m"),
		schema.CoreMember.Table,
		schema.CoreMember.Slug,
	)

	m, err := scanMember(repository.db.QueryRow(context, query, slug))
	return m, dberr.Wrap(err, "get_member_slug")
}

func (repository *PostgresRepository) Create(context context.Context, member *Member) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW())
		RETURNING %s, %s
	`,
		schema.CoreMember.Table,
		schema.CoreMember.ID,
		schema.CoreMember.Name,
		schema.CoreMember.Slug,
		schema.CoreMember.BirthYear,
		schema.CoreMember.DeathYear,
		schema.CoreMember.BirthPlace,
		schema.CoreMember.Occupation,
		schema.CoreMember.Bio,
		schema.CoreMember.CreatedBy,
		schema.CoreMember.CreatedAt,
		schema.CoreMember.UpdatedAt,
		schema.CoreMember.CreatedAt,
		schema.CoreMember.UpdatedAt,
	)

	err := repository.db.QueryRow(context, query,
		member.ID,
		member.Name,
		member.Slug,
		member.BirthYear,
		member.DeathYear,
		member.BirthPlace,
		member.Occupation,
		member.Bio,
		member.CreatedBy,
	).Scan(&member.CreatedAt, &member.UpdatedAt)

	if dberr.IsUniqueViolation(err, "member_slug_key") {
		return apperr.Conflict("A member with this name already exists")
	}
	return dberr.Wrap(err, "create_member")
}

/*
Update persists metadata modifications to an existing member record.

Description: Constructs a PATCH-style partial update with a dynamic SET
block. Only populated fields overwrite existing columns; year pointers are
applied whenever non-nil, so a client can clear a death year by sending 0
through the service layer's normalization.

Parameters:
  - context: context.Context
  - member: *Member (Target ID and updated fields)

Returns:
  - error: ErrNotFound if the target record does not exist
*/
func (repository *PostgresRepository) Update(context context.Context, member *Member) error {

	var queryBuilder strings.Builder
	queryBuilder.WriteString(fmt.Sprintf("UPDATE %s SET %s = NOW()", schema.CoreMember.Table, schema.CoreMember.UpdatedAt))

	var args []any
	argID := 1

	if member.Name != "" {
		queryBuilder.WriteString(fmt.Sprintf(", %s = $%d", schema.CoreMember.Name, argID))
		args = append(args, member.Name)
		argID++
	}

	if member.Slug != "" {
		queryBuilder.WriteString(fmt.Sprintf(", %s = $%d", schema.CoreMember.Slug, argID))
		args = append(args, member.Slug)
		argID++
	}

	if member.BirthYear != nil {
		queryBuilder.WriteString(fmt.Sprintf(", %s = $%d", schema.CoreMember.BirthYear, argID))
		args = append(args, *member.BirthYear)
		argID++
	}

	if member.DeathYear != nil {
		queryBuilder.WriteString(fmt.Sprintf(", %s = $%d", schema.CoreMember.DeathYear, argID))
		args = append(args, *member.DeathYear)
		argID++
	}

	if member.BirthPlace != "" {
		queryBuilder.WriteString(fmt.Sprintf(", %s = $%d", schema.CoreMember.BirthPlace, argID))
		args = append(args, member.BirthPlace)
		argID++
	}

	if member.Occupation != "" {
		queryBuilder.WriteString(fmt.Sprintf(", %s = $%d", schema.CoreMember.Occupation, argID))
		args = append(args, member.Occupation)
		argID++
	}

	if member.Bio != "" {
		queryBuilder.WriteString(fmt.Sprintf(", %s = $%d", schema.CoreMember.Bio, argID))
		args = append(args, member.Bio)
		argID++
	}

	queryBuilder.WriteString(fmt.Sprintf(" WHERE %s = $%d RETURNING %s", schema.CoreMember.ID, argID, schema.CoreMember.UpdatedAt))
	args = append(args, member.ID)

	err := repository.db.QueryRow(context, queryBuilder.String(), args...).Scan(&member.UpdatedAt)
	return dberr.Wrap(err, "update_member")
}

/*
Delete removes a member together with every dependent row.

Description: Executes the full cascade inside a single transaction:
article translations, articles, portrait rows, relationship edges touching
the member in either position, and finally the member itself. A failure at
any step rolls back the entire sequence. The object keys of the removed
portraits are collected first and returned so the caller can clean up the
bucket after the commit.

Parameters:
  - context: context.Context
  - id: string (UUID)

Returns:
  - []string: Object keys of the removed portraits
  - error: ErrNotFound if missing, or execution failures
*/
func (repository *PostgresRepository) Delete(context context.Context, id string) ([]string, error) {

	transaction, err := repository.db.Begin(context)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to begin delete transaction: %w", err)
	}
	defer transaction.Rollback(context)

	// Collect portrait keys for post-commit bucket cleanup
	keysQuery := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		schema.CoreMemberImage.ObjectKey, schema.CoreMemberImage.Table, schema.CoreMemberImage.MemberID,
	)
	rows, err := transaction.Query(context, keysQuery, id)
	if err != nil {
		return nil, dberr.Wrap(err, "collect_portrait_keys")
	}

	var objectKeys []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			rows.Close()
			return nil, dberr.Wrap(err, "scan_portrait_key")
		}
		objectKeys = append(objectKeys, key)
	}
	rows.Close()

	// Dependent rows go first: translations hang off articles
	cascade := []string{
		fmt.Sprintf(`DELETE FROM %s WHERE %s IN (SELECT %s FROM %s WHERE %s = $1)`,
			schema.CoreArticleTranslation.Table, schema.CoreArticleTranslation.ArticleID,
			schema.CoreArticle.ID, schema.CoreArticle.Table, schema.CoreArticle.MemberID,
		),
		fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`,
			schema.CoreArticle.Table, schema.CoreArticle.MemberID,
		),
		fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`,
			schema.CoreMemberImage.Table, schema.CoreMemberImage.MemberID,
		),
		fmt.Sprintf(`DELETE FROM %s WHERE %s = $1 OR %s = $1`,
			schema.CoreMemberRelation.Table, schema.CoreMemberRelation.PersonA, schema.CoreMemberRelation.PersonB,
		),
	}

	for _, query := range cascade {
		if _, err := transaction.Exec(context, query, id); err != nil {
			return nil, dberr.Wrap(err, "cascade_delete_member")
		}
	}

	memberQuery := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`,
		schema.CoreMember.Table, schema.CoreMember.ID,
	)
	cmd, err := transaction.Exec(context, memberQuery, id)
	if err != nil {
		return nil, dberr.Wrap(err, "delete_member")
	}
	if cmd.RowsAffected() == 0 {
		return nil, dberr.ErrNotFound
	}

	if err := transaction.Commit(context); err != nil {
		return nil, fmt.Errorf("postgres: failed to commit delete transaction: %w", err)
	}

	return objectKeys, nil
}

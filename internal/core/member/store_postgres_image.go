// Copyright (c) 2026 Kurpejovica Enciklopedija. All rights reserved.
// Author: huzeir2k@gmail.com

package member

import (
	"context"
	"fmt"

	"github.com/huzeir2k/kurpejovica-enciklopedija-sub000/internal/platform/database/schema"
	"github.com/huzeir2k/kurpejovica-enciklopedija-sub000/internal/platform/dberr"
)

// # Portrait Repository Implementation

func (repository *PostgresRepository) ListImages(context context.Context, memberID string) ([]*Image, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1
		ORDER BY %s DESC, %s ASC
	`,
		schema.CoreMemberImage.ID,
		schema.CoreMemberImage.MemberID,
		schema.CoreMemberImage.ObjectKey,
		schema.CoreMemberImage.Caption,
		schema.CoreMemberImage.IsPrimary,
		schema.CoreMemberImage.UploadedBy,
		schema.CoreMemberImage.CreatedAt,
		schema.CoreMemberImage.Table,
		schema.CoreMemberImage.MemberID,
		schema.CoreMemberImage.IsPrimary,
		schema.CoreMemberImage.CreatedAt,
	)

	rows, err := repository.db.Query(context, query, memberID)
	if err != nil {
		return nil, dberr.Wrap(err, "list_portraits")
	}
	defer rows.Close()

	var images []*Image
	for rows.Next() {
		img := &Image{}
		err := rows.Scan(
			&img.ID,
			&img.MemberID,
			&img.ObjectKey,
			&img.Caption,
			&img.IsPrimary,
			&img.UploadedBy,
			&img.CreatedAt,
		)
		if err != nil {
			return nil, dberr.Wrap(err, "scan_portrait")
		}
		images = append(images, img)
	}

	return images, nil
}

func (repository *PostgresRepository) GetImage(context context.Context, id string) (*Image, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1
	`,
		schema.CoreMemberImage.ID,
		schema.CoreMemberImage.MemberID,
		schema.CoreMemberImage.ObjectKey,
		schema.CoreMemberImage.Caption,
		schema.CoreMemberImage.IsPrimary,
		schema.CoreMemberImage.UploadedBy,
		schema.CoreMemberImage.CreatedAt,
		schema.CoreMemberImage.Table,
		schema.CoreMemberImage.ID,
	)

	img := &Image{}
	err := repository.db.QueryRow(context, query, id).Scan(
		&img.ID,
		&img.MemberID,
		&img.ObjectKey,
		&img.Caption,
		&img.IsPrimary,
		&img.UploadedBy,
		&img.CreatedAt,
	)

	return img, dberr.Wrap(err, "get_portrait")
}

func (repository *PostgresRepository) AddImage(context context.Context, image *Image) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		RETURNING %s
	`,
		schema.CoreMemberImage.Table,
		schema.CoreMemberImage.ID,
		schema.CoreMemberImage.MemberID,
		schema.CoreMemberImage.ObjectKey,
		schema.CoreMemberImage.Caption,
		schema.CoreMemberImage.IsPrimary,
		schema.CoreMemberImage.UploadedBy,
		schema.CoreMemberImage.CreatedAt,
		schema.CoreMemberImage.CreatedAt,
	)

	err := repository.db.QueryRow(context, query,
		image.ID,
		image.MemberID,
		image.ObjectKey,
		image.Caption,
		image.IsPrimary,
		image.UploadedBy,
	).Scan(&image.CreatedAt)

	return dberr.Wrap(err, "add_portrait")
}

/*
SetPrimaryImage promotes one portrait to primary.

Description: Runs demote-then-promote inside a single transaction. The
promote statement is scoped to both the image ID and the member ID, so a
mismatched pair affects zero rows, rolls back, and surfaces as NotFound —
the demote never leaks.

Parameters:
  - context: context.Context
  - memberID: string (UUID)
  - imageID: string (UUID)

Returns:
  - error: ErrNotFound if the image does not exist under the member
*/
func (repository *PostgresRepository) SetPrimaryImage(context context.Context, memberID, imageID string) error {

	transaction, err := repository.db.Begin(context)
	if err != nil {
		return fmt.Errorf("postgres: failed to begin primary-portrait transaction: %w", err)
	}
	defer transaction.Rollback(context)

	demote := fmt.Sprintf(`UPDATE %s SET %s = FALSE WHERE %s = $1 AND %s = TRUE`,
		schema.CoreMemberImage.Table,
		schema.CoreMemberImage.IsPrimary,
		schema.CoreMemberImage.MemberID,
		schema.CoreMemberImage.IsPrimary,
	)
	if _, err := transaction.Exec(context, demote, memberID); err != nil {
		return dberr.Wrap(err, "demote_primary_portrait")
	}

	promote := fmt.Sprintf(`UPDATE %s SET %s = TRUE WHERE %s = $1 AND %s = $2`,
		schema.CoreMemberImage.Table,
		schema.CoreMemberImage.IsPrimary,
		schema.CoreMemberImage.ID,
		schema.CoreMemberImage.MemberID,
	)
	cmd, err := transaction.Exec(context, promote, imageID, memberID)
	if err != nil {
		return dberr.Wrap(err, "promote_primary_portrait")
	}
	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}

	if err := transaction.Commit(context); err != nil {
		return fmt.Errorf("postgres: failed to commit primary-portrait transaction: %w", err)
	}

	return nil
}

func (repository *PostgresRepository) DeleteImage(context context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`,
		schema.CoreMemberImage.Table, schema.CoreMemberImage.ID,
	)

	cmd, err := repository.db.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_portrait")
	}
	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}

	return nil
}

func (repository *PostgresRepository) CountImages(context context.Context, memberID string) (int, error) {
	query := fmt.Sprintf(`SELECT count(*) FROM %s WHERE %s = $1`,
		schema.CoreMemberImage.Table, schema.CoreMemberImage.MemberID,
	)

	var total int
	err := repository.db.QueryRow(context, query, memberID).Scan(&total)
	return total, dberr.Wrap(err, "count_portraits")
}

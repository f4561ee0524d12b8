// Copyright (c) 2026 Kurpejovica Enciklopedija. All rights reserved.
// Author: huzeir2k@gmail.com

package member

import (
	"context"
	"errors"
	"testing"

	"github.com/pashagolub/pgxmock/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/huzeir2k/kurpejovica-enciklopedija-sub000/internal/platform/dberr"
)

const deletedMemberID = "aaaaaaaa-aaaa-aaaa-aaaa-aaaaaaaaaaaa"

/*
TestPostgresRepository_Delete tests the cascade delete at the SQL level.

Description: A removed member must take its article translations, articles,
portrait rows, and relationship edges with it inside one transaction, and
the portrait object keys must come back for bucket cleanup. The mock pool
is ordered, so these cases also pin the statement sequence: dependents
before the member row, translations before the articles they hang off.
*/
func TestPostgresRepository_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("removes every dependent row in one transaction", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repository := &PostgresRepository{db: mock}

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT objectkey FROM core\.memberimage WHERE memberid = \$1`).
			WithArgs(deletedMemberID).
			WillReturnRows(pgxmock.NewRows([]string{"objectkey"}).
				AddRow("members/" + deletedMemberID + "/portrait-1.jpg").
				AddRow("members/" + deletedMemberID + "/portrait-2.webp"))
		mock.ExpectExec(`DELETE FROM core\.articletranslation WHERE articleid IN \(SELECT id FROM core\.article WHERE memberid = \$1\)`).
			WithArgs(deletedMemberID).
			WillReturnResult(pgxmock.NewResult("DELETE", 3))
		mock.ExpectExec(`DELETE FROM core\.article WHERE memberid = \$1`).
			WithArgs(deletedMemberID).
			WillReturnResult(pgxmock.NewResult("DELETE", 2))
		mock.ExpectExec(`DELETE FROM core\.memberimage WHERE memberid = \$1`).
			WithArgs(deletedMemberID).
			WillReturnResult(pgxmock.NewResult("DELETE", 2))
		mock.ExpectExec(`DELETE FROM core\.memberrelation WHERE persona = \$1 OR personb = \$1`).
			WithArgs(deletedMemberID).
			WillReturnResult(pgxmock.NewResult("DELETE", 4))
		mock.ExpectExec(`DELETE FROM core\.member WHERE id = \$1`).
			WithArgs(deletedMemberID).
			WillReturnResult(pgxmock.NewResult("DELETE", 1))
		mock.ExpectCommit()

		objectKeys, err := repository.Delete(ctx, deletedMemberID)
		require.NoError(t, err)
		assert.Equal(t, []string{
			"members/" + deletedMemberID + "/portrait-1.jpg",
			"members/" + deletedMemberID + "/portrait-2.webp",
		}, objectKeys)

		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing member rolls back and reports not found", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repository := &PostgresRepository{db: mock}

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT objectkey FROM core\.memberimage WHERE memberid = \$1`).
			WithArgs(deletedMemberID).
			WillReturnRows(pgxmock.NewRows([]string{"objectkey"}))
		mock.ExpectExec(`DELETE FROM core\.articletranslation`).
			WithArgs(deletedMemberID).
			WillReturnResult(pgxmock.NewResult("DELETE", 0))
		mock.ExpectExec(`DELETE FROM core\.article WHERE memberid`).
			WithArgs(deletedMemberID).
			WillReturnResult(pgxmock.NewResult("DELETE", 0))
		mock.ExpectExec(`DELETE FROM core\.memberimage WHERE memberid`).
			WithArgs(deletedMemberID).
			WillReturnResult(pgxmock.NewResult("DELETE", 0))
		mock.ExpectExec(`DELETE FROM core\.memberrelation`).
			WithArgs(deletedMemberID).
			WillReturnResult(pgxmock.NewResult("DELETE", 0))
		mock.ExpectExec(`DELETE FROM core\.member WHERE id`).
			WithArgs(deletedMemberID).
			WillReturnResult(pgxmock.NewResult("DELETE", 0))
		mock.ExpectRollback()

		objectKeys, err := repository.Delete(ctx, deletedMemberID)
		require.ErrorIs(t, err, dberr.ErrNotFound)
		assert.Nil(t, objectKeys)

		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("mid-cascade failure rolls back without committing", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repository := &PostgresRepository{db: mock}

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT objectkey FROM core\.memberimage WHERE memberid = \$1`).
			WithArgs(deletedMemberID).
			WillReturnRows(pgxmock.NewRows([]string{"objectkey"}).
				AddRow("members/" + deletedMemberID + "/portrait-1.jpg"))
		mock.ExpectExec(`DELETE FROM core\.articletranslation`).
			WithArgs(deletedMemberID).
			WillReturnError(errors.New("connection reset"))
		mock.ExpectRollback()

		objectKeys, err := repository.Delete(ctx, deletedMemberID)
		require.Error(t, err)
		assert.Nil(t, objectKeys)

		require.NoError(t, mock.ExpectationsWereMet())
	})
}

// Copyright (c) 2026 Kurpejovica Enciklopedija. All rights reserved.
// Author: huzeir2k@gmail.com

package article

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/huzeir2k/kurpejovica-enciklopedija-sub000/internal/core/language"
	"github.com/huzeir2k/kurpejovica-enciklopedija-sub000/internal/platform/database/schema"
	"github.com/huzeir2k/kurpejovica-enciklopedija-sub000/internal/platform/dberr"
)

// # PostgreSQL Repository

// PostgresRepository implements the [Repository] interface using pgx.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed article store.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// articleColumns is the SELECT list shared by every article lookup.
func articleColumns(alias string) string {
	cols := []string{
		schema.CoreArticle.ID,
		schema.CoreArticle.MemberID,
		schema.CoreArticle.LanguageCode,
		schema.CoreArticle.Content,
		schema.CoreArticle.CreatedBy,
		schema.CoreArticle.UpdatedBy,
		schema.CoreArticle.CreatedAt,
		schema.CoreArticle.UpdatedAt,
	}
	for i, c := range cols {
		cols[i] = alias + "." + c
	}
	return strings.Join(cols, ", ")
}

// scanArticle maps an article row into the domain entity.
func scanArticle(row interface{ Scan(...any) error }) (*Article, error) {
	a := &Article{}
	err := row.Scan(
		&a.ID,
		&a.MemberID,
		&a.Language,
		&a.Content,
		&a.CreatedBy,
		&a.UpdatedBy,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	return a, err
}

func (repository *PostgresRepository) CreateArticle(context context.Context, article *Article) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $5, NOW(), NOW())
		RETURNING %s, %s
	`,
		schema.CoreArticle.Table,
		schema.CoreArticle.ID,
		schema.CoreArticle.MemberID,
		schema.CoreArticle.LanguageCode,
		schema.CoreArticle.Content,
		schema.CoreArticle.CreatedBy,
		schema.CoreArticle.UpdatedBy,
		schema.CoreArticle.CreatedAt,
		schema.CoreArticle.UpdatedAt,
		schema.CoreArticle.CreatedAt,
		schema.CoreArticle.UpdatedAt,
	)

	err := repository.db.QueryRow(context, query,
		article.ID,
		article.MemberID,
		article.Language,
		article.Content,
		article.CreatedBy,
	).Scan(&article.CreatedAt, &article.UpdatedAt)

	// A duplicate (member, language) pair trips the unique index and
	// surfaces as Conflict via the wrap.
	return dberr.Wrap(err, "create_article")
}

func (repository *PostgresRepository) GetArticle(context context.Context, id string) (*Article, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s a
		WHERE a.%s = $1
	`,
		articleColumns("a"),
		schema.CoreArticle.Table,
		schema.CoreArticle.ID,
	)

	a, err := scanArticle(repository.db.QueryRow(context, query, id))
	return a, dberr.Wrap(err, "get_article")
}

func (repository *PostgresRepository) GetByMemberAndLanguage(context context.Context, memberID string, lang language.Code) (*Article, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s a
		WHERE a.%s = $1 AND a.%s = $2
	`,
		articleColumns("a"),
		schema.CoreArticle.Table,
		schema.CoreArticle.MemberID,
		schema.CoreArticle.LanguageCode,
	)

	a, err := scanArticle(repository.db.QueryRow(context, query, memberID, lang))
	return a, dberr.Wrap(err, "get_article_by_language")
}

// GetAnyByMember picks the fallback row by ascending language code so the
// same member always falls back to the same article.
func (repository *PostgresRepository) GetAnyByMember(context context.Context, memberID string) (*Article, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s a
		WHERE a.%s = $1
		ORDER BY a.%s ASC
		LIMIT 1
	`,
		articleColumns("a"),
		schema.CoreArticle.Table,
		schema.CoreArticle.MemberID,
		schema.CoreArticle.LanguageCode,
	)

	a, err := scanArticle(repository.db.QueryRow(context, query, memberID))
	return a, dberr.Wrap(err, "get_any_article")
}

func (repository *PostgresRepository) ListArticles(context context.Context, memberID string) ([]*Article, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s a
		WHERE a.%s = $1
		ORDER BY a.%s ASC
	`,
		articleColumns("a"),
		schema.CoreArticle.Table,
		schema.CoreArticle.MemberID,
		schema.CoreArticle.LanguageCode,
	)

	rows, err := repository.db.Query(context, query, memberID)
	if err != nil {
		return nil, dberr.Wrap(err, "list_articles")
	}
	defer rows.Close()

	var articles []*Article
	for rows.Next() {
		a := &Article{}
		err := rows.Scan(
			&a.ID,
			&a.MemberID,
			&a.Language,
			&a.Content,
			&a.CreatedBy,
			&a.UpdatedBy,
			&a.CreatedAt,
			&a.UpdatedAt,
		)
		if err != nil {
			return nil, dberr.Wrap(err, "scan_article")
		}
		articles = append(articles, a)
	}

	return articles, nil
}

func (repository *PostgresRepository) UpdateArticle(context context.Context, article *Article) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = NOW()
		WHERE %s = $1
		RETURNING %s, %s, %s, %s
	`,
		schema.CoreArticle.Table,
		schema.CoreArticle.Content,
		schema.CoreArticle.UpdatedBy,
		schema.CoreArticle.UpdatedAt,
		schema.CoreArticle.ID,
		schema.CoreArticle.MemberID,
		schema.CoreArticle.LanguageCode,
		schema.CoreArticle.CreatedBy,
		schema.CoreArticle.UpdatedAt,
	)

	err := repository.db.QueryRow(context, query,
		article.ID,
		article.Content,
		article.UpdatedBy,
	).Scan(&article.MemberID, &article.Language, &article.CreatedBy, &article.UpdatedAt)

	return dberr.Wrap(err, "update_article")
}

func (repository *PostgresRepository) UpsertTranslation(context context.Context, translation *Translation) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		ON CONFLICT (%s, %s) DO UPDATE
		SET %s = EXCLUDED.%s, %s = EXCLUDED.%s, %s = EXCLUDED.%s, %s = NOW()
		RETURNING %s, %s, %s
	`,
		schema.CoreArticleTranslation.Table,
		schema.CoreArticleTranslation.ID,
		schema.CoreArticleTranslation.ArticleID,
		schema.CoreArticleTranslation.LanguageCode,
		schema.CoreArticleTranslation.Content,
		schema.CoreArticleTranslation.IsAuto,
		schema.CoreArticleTranslation.CreatedBy,
		schema.CoreArticleTranslation.CreatedAt,
		schema.CoreArticleTranslation.UpdatedAt,
		schema.CoreArticleTranslation.ArticleID,
		schema.CoreArticleTranslation.LanguageCode,
		schema.CoreArticleTranslation.Content,
		schema.CoreArticleTranslation.Content,
		schema.CoreArticleTranslation.IsAuto,
		schema.CoreArticleTranslation.IsAuto,
		schema.CoreArticleTranslation.CreatedBy,
		schema.CoreArticleTranslation.CreatedBy,
		schema.CoreArticleTranslation.UpdatedAt,
		schema.CoreArticleTranslation.ID,
		schema.CoreArticleTranslation.CreatedAt,
		schema.CoreArticleTranslation.UpdatedAt,
	)

	err := repository.db.QueryRow(context, query,
		translation.ID,
		translation.ArticleID,
		translation.Language,
		translation.Content,
		translation.IsAuto,
		translation.CreatedBy,
	).Scan(&translation.ID, &translation.CreatedAt, &translation.UpdatedAt)

	return dberr.Wrap(err, "upsert_translation")
}

func (repository *PostgresRepository) ListTranslations(context context.Context, articleID string) ([]*Translation, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1
		ORDER BY %s ASC
	`,
		schema.CoreArticleTranslation.ID,
		schema.CoreArticleTranslation.ArticleID,
		schema.CoreArticleTranslation.LanguageCode,
		schema.CoreArticleTranslation.Content,
		schema.CoreArticleTranslation.IsAuto,
		schema.CoreArticleTranslation.CreatedBy,
		schema.CoreArticleTranslation.CreatedAt,
		schema.CoreArticleTranslation.UpdatedAt,
		schema.CoreArticleTranslation.Table,
		schema.CoreArticleTranslation.ArticleID,
		schema.CoreArticleTranslation.LanguageCode,
	)

	rows, err := repository.db.Query(context, query, articleID)
	if err != nil {
		return nil, dberr.Wrap(err, "list_translations")
	}
	defer rows.Close()

	var translations []*Translation
	for rows.Next() {
		t := &Translation{}
		err := rows.Scan(
			&t.ID,
			&t.ArticleID,
			&t.Language,
			&t.Content,
			&t.IsAuto,
			&t.CreatedBy,
			&t.CreatedAt,
			&t.UpdatedAt,
		)
		if err != nil {
			return nil, dberr.Wrap(err, "scan_translation")
		}
		translations = append(translations, t)
	}

	return translations, nil
}

func (repository *PostgresRepository) MemberExists(context context.Context, memberID string) (bool, error) {
	query := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE %s = $1)`,
		schema.CoreMember.Table, schema.CoreMember.ID,
	)

	var exists bool
	err := repository.db.QueryRow(context, query, memberID).Scan(&exists)
	return exists, dberr.Wrap(err, "member_exists")
}

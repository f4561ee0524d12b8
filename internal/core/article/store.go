// Copyright (c) 2026 Kurpejovica Enciklopedija. All rights reserved.
// Author: huzeir2k@gmail.com

package article

import (
	"context"

	"github.com/huzeir2k/kurpejovica-enciklopedija-sub000/internal/core/language"
)

// # Article Data Access

// Repository defines the data access contract for articles and translations.
type Repository interface {
	/*
		CreateArticle persists a new canonical article.

		Parameters:
		  - context: context.Context
		  - article: *Article (Member, language, content)

		Returns:
		  - error: Conflict when a canonical row already exists for the
		    (member, language) pair, ErrNotFound on unknown member, or
		    storage failures
	*/
	CreateArticle(context context.Context, article *Article) error

	/*
		GetArticle returns a canonical article by ID.

		Parameters:
		  - context: context.Context
		  - id: string (UUID)

		Returns:
		  - *Article: The canonical row
		  - error: ErrNotFound if missing
	*/
	GetArticle(context context.Context, id string) (*Article, error)

	/*
		GetByMemberAndLanguage returns the canonical article for an exact
		(member, language) pair.

		Parameters:
		  - context: context.Context
		  - memberID: string (UUID)
		  - lang: language.Code

		Returns:
		  - *Article: The canonical row
		  - error: ErrNotFound if no row exists for the pair
	*/
	GetByMemberAndLanguage(context context.Context, memberID string, lang language.Code) (*Article, error)

	/*
		GetAnyByMember returns one canonical article of a member,
		deterministically: the row with the lowest language code.

		Parameters:
		  - context: context.Context
		  - memberID: string (UUID)

		Returns:
		  - *Article: The fallback row
		  - error: ErrNotFound if the member has no articles at all
	*/
	GetAnyByMember(context context.Context, memberID string) (*Article, error)

	/*
		ListArticles returns every canonical article of a member, ordered
		by language code.

		Parameters:
		  - context: context.Context
		  - memberID: string (UUID)

		Returns:
		  - []*Article: Canonical rows, possibly empty
		  - error: Database retrieval failures
	*/
	ListArticles(context context.Context, memberID string) ([]*Article, error)

	/*
		UpdateArticle overwrites the content of a canonical article.

		Parameters:
		  - context: context.Context
		  - article: *Article (Target ID, new content, editor)

		Returns:
		  - error: ErrNotFound if missing
	*/
	UpdateArticle(context context.Context, article *Article) error

	/*
		UpsertTranslation writes a translation row, overwriting any
		existing row for the same (article, language) pair.

		Parameters:
		  - context: context.Context
		  - translation: *Translation

		Returns:
		  - error: ErrNotFound on unknown article, or storage failures
	*/
	UpsertTranslation(context context.Context, translation *Translation) error

	/*
		ListTranslations returns every translation of an article, ordered
		by language code. Never consulted by the resolver.

		Parameters:
		  - context: context.Context
		  - articleID: string (UUID)

		Returns:
		  - []*Translation: Translation rows, possibly empty
		  - error: Database retrieval failures
	*/
	ListTranslations(context context.Context, articleID string) ([]*Translation, error)

	/*
		MemberExists reports whether a member row exists.

		Parameters:
		  - context: context.Context
		  - memberID: string (UUID)

		Returns:
		  - bool: Existence flag
		  - error: Database retrieval failures
	*/
	MemberExists(context context.Context, memberID string) (bool, error)
}

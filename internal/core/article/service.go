// Copyright (c) 2026 Kurpejovica Enciklopedija. All rights reserved.
// Author: huzeir2k@gmail.com

package article

import (
	"context"
	"log/slog"

	"github.com/huzeir2k/kurpejovica-enciklopedija-sub000/internal/audit"
	"github.com/huzeir2k/kurpejovica-enciklopedija-sub000/internal/core/language"
	"github.com/huzeir2k/kurpejovica-enciklopedija-sub000/internal/platform/apperr"
	"github.com/huzeir2k/kurpejovica-enciklopedija-sub000/internal/platform/constants"
	"github.com/huzeir2k/kurpejovica-enciklopedija-sub000/internal/platform/validate"
	"github.com/huzeir2k/kurpejovica-enciklopedija-sub000/pkg/uuid"
)

const entityType = "article"

// # Collaborators

// Translator is the machine-translation provider contract.
// The production implementation lives in internal/platform/translator.
type Translator interface {
	/*
		Translate renders text from one language into another.

		Parameters:
		  - context: context.Context
		  - text: string (Source prose)
		  - sourceLang: string (ISO-639-1 code of the input)
		  - targetLang: string (ISO-639-1 code of the output)

		Returns:
		  - string: The translated prose
		  - error: Upstream failures
	*/
	Translate(context context.Context, text, sourceLang, targetLang string) (string, error)
}

// # Service Layer

// Service orchestrates the multilingual content use cases: authoring
// canonical articles, resolving the best article for a reader, and
// requesting machine translations.
type Service struct {
	repo       Repository
	translator Translator
	recorder   *audit.Recorder
	logger     *slog.Logger
}

// NewService constructs a content [Service] with its dependencies.
func NewService(repo Repository, translator Translator, recorder *audit.Recorder, logger *slog.Logger) *Service {
	return &Service{
		repo:       repo,
		translator: translator,
		recorder:   recorder,
		logger:     logger,
	}
}

// # Content Resolution

/*
Resolve picks the article to show a reader of a member's page.

Description: Resolution is deterministic and serves canonical rows only:

 1. The exact (member, language) canonical row, returned verbatim.
 2. Otherwise any canonical row of the member — the store picks the lowest
    language code — returned with its own language tag so the client can
    label the fallback.
 3. Otherwise nil: the member simply has no biography yet.

Resolve never reads the translation table and never calls the provider;
serving a page must not depend on an upstream service.

Parameters:
  - context: context.Context
  - memberID: string (UUID)
  - lang: language.Code (Reader's requested language)

Returns:
  - *Article: The resolved article, or nil when the member has none
  - error: apperr.UnsupportedLanguage on a code outside the closed set,
    apperr.NotFound on an unknown member, or storage errors
*/
func (service *Service) Resolve(context context.Context, memberID string, lang language.Code) (*Article, error) {

	if !lang.IsSupported() {
		return nil, apperr.UnsupportedLanguage(string(lang))
	}

	exists, err := service.repo.MemberExists(context, memberID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperr.NotFound("Member")
	}

	// 1. Exact language match.
	exact, err := service.repo.GetByMemberAndLanguage(context, memberID, lang)
	if err == nil {
		return exact, nil
	}
	if !isNotFound(err) {
		return nil, err
	}

	// 2. Deterministic cross-language fallback.
	fallback, err := service.repo.GetAnyByMember(context, memberID)
	if err == nil {
		return fallback, nil
	}
	if !isNotFound(err) {
		return nil, err
	}

	// 3. No biography. A value, not an error.
	return nil, nil
}

// # Authoring

/*
CreateArticle writes a new canonical article for a member.

Parameters:
  - context: context.Context
  - article: *Article (Member, language, content)
  - actorID: string (Authenticated editor)

Returns:
  - error: apperr.UnsupportedLanguage, apperr.NotFound (member),
    apperr.Conflict (language already covered), or validation errors
*/
func (service *Service) CreateArticle(context context.Context, article *Article, actorID string) error {

	validator := &validate.Validator{}
	validator.Required(FieldMemberID, article.MemberID).UUID(FieldMemberID, article.MemberID)
	validator.Required(FieldContent, article.Content)
	if err := validator.Err(); err != nil {
		return err
	}

	if !article.Language.IsSupported() {
		return apperr.UnsupportedLanguage(string(article.Language))
	}

	exists, err := service.repo.MemberExists(context, article.MemberID)
	if err != nil {
		return err
	}
	if !exists {
		return apperr.NotFound("Member")
	}

	if article.ID == "" {
		article.ID = uuid.New()
	}
	article.CreatedBy = actorID
	article.UpdatedBy = actorID

	if err := service.repo.CreateArticle(context, article); err != nil {
		return err
	}

	service.logger.Info("article_created",
		slog.String("article_id", article.ID),
		slog.String("member_id", article.MemberID),
		slog.String("language", string(article.Language)),
	)

	service.recorder.Record(context, audit.Entry{
		ActorID:    actorID,
		Action:     audit.ActionCreate,
		EntityType: entityType,
		EntityID:   article.ID,
		After:      article,
	})

	return nil
}

/*
UpdateArticle overwrites the content of a canonical article.

Parameters:
  - context: context.Context
  - articleID: string (UUID)
  - content: string (Replacement prose)
  - actorID: string (Authenticated editor)

Returns:
  - *Article: The updated row
  - error: apperr.NotFound, validation, or storage errors
*/
func (service *Service) UpdateArticle(context context.Context, articleID, content, actorID string) (*Article, error) {

	validator := &validate.Validator{}
	validator.Required(FieldContent, content)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	before, err := service.repo.GetArticle(context, articleID)
	if err != nil {
		return nil, err
	}

	updated := &Article{
		ID:        articleID,
		Content:   content,
		UpdatedBy: actorID,
	}
	if err := service.repo.UpdateArticle(context, updated); err != nil {
		return nil, err
	}
	updated.CreatedAt = before.CreatedAt

	service.logger.Info("article_updated", slog.String("article_id", articleID))

	service.recorder.Record(context, audit.Entry{
		ActorID:    actorID,
		Action:     audit.ActionUpdate,
		EntityType: entityType,
		EntityID:   articleID,
		Before:     before,
		After:      updated,
	})

	return updated, nil
}

/*
ListArticles returns every canonical article of a member.

Parameters:
  - context: context.Context
  - memberID: string (UUID)

Returns:
  - []*Article: Canonical rows ordered by language code
  - error: apperr.NotFound on unknown member, or storage errors
*/
func (service *Service) ListArticles(context context.Context, memberID string) ([]*Article, error) {
	exists, err := service.repo.MemberExists(context, memberID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperr.NotFound("Member")
	}

	return service.repo.ListArticles(context, memberID)
}

// # Translations

/*
RequestTranslation produces and stores a machine translation of an article.

Description: The provider call is synchronous under its own timeout. On
provider failure nothing is written and the caller receives
TranslationUnavailable; a repeated request for the same (article, language)
pair overwrites the previous row.

Parameters:
  - context: context.Context
  - articleID: string (UUID of the canonical source)
  - targetLang: language.Code
  - actorID: string (Authenticated editor)

Returns:
  - *Translation: The stored row, flagged is_auto
  - error: apperr.NotFound (article), apperr.UnsupportedLanguage,
    apperr.TranslationUnavailable on provider failure, or storage errors
*/
func (service *Service) RequestTranslation(context context.Context, articleID string, targetLang language.Code, actorID string) (*Translation, error) {

	if !targetLang.IsSupported() {
		return nil, apperr.UnsupportedLanguage(string(targetLang))
	}

	source, err := service.repo.GetArticle(context, articleID)
	if err != nil {
		return nil, err
	}

	if source.Language == targetLang {
		return nil, apperr.ValidationError("Article is already written in " + string(targetLang))
	}

	translateCtx, cancel := contextWithTimeout(context)
	defer cancel()

	translated, err := service.translator.Translate(translateCtx, source.Content, string(source.Language), string(targetLang))
	if err != nil {
		service.logger.Error("translation_provider_failed",
			slog.String("article_id", articleID),
			slog.String("target_language", string(targetLang)),
			slog.Any("error", err),
		)
		return nil, apperr.TranslationUnavailable(err)
	}

	translation := &Translation{
		ID:        uuid.New(),
		ArticleID: articleID,
		Language:  targetLang,
		Content:   translated,
		IsAuto:    true,
		CreatedBy: actorID,
	}
	if err := service.repo.UpsertTranslation(context, translation); err != nil {
		return nil, err
	}

	service.logger.Info("translation_stored",
		slog.String("article_id", articleID),
		slog.String("language", string(targetLang)),
	)

	service.recorder.Record(context, audit.Entry{
		ActorID:    actorID,
		Action:     audit.ActionCreate,
		EntityType: "articletranslation",
		EntityID:   translation.ID,
		After:      translation,
	})

	return translation, nil
}

/*
ListTranslations returns every stored translation of an article.

Parameters:
  - context: context.Context
  - articleID: string (UUID)

Returns:
  - []*Translation: Rows ordered by language code
  - error: apperr.NotFound on unknown article, or storage errors
*/
func (service *Service) ListTranslations(context context.Context, articleID string) ([]*Translation, error) {
	if _, err := service.repo.GetArticle(context, articleID); err != nil {
		return nil, err
	}

	return service.repo.ListTranslations(context, articleID)
}

// # Internal Helpers

// isNotFound reports whether err carries the NOT_FOUND code.
func isNotFound(err error) bool {
	ae := apperr.As(err)
	return ae != nil && ae.Code == "NOT_FOUND"
}

// contextWithTimeout bounds the synchronous provider call.
func contextWithTimeout(parent context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(parent, constants.TranslateTimeout)
}

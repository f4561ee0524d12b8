// Copyright (c) 2026 Kurpejovica Enciklopedija. All rights reserved.
// Author: huzeir2k@gmail.com

package article_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/huzeir2k/kurpejovica-enciklopedija-sub000/internal/audit"
	"github.com/huzeir2k/kurpejovica-enciklopedija-sub000/internal/core/article"
	"github.com/huzeir2k/kurpejovica-enciklopedija-sub000/internal/core/language"
	"github.com/huzeir2k/kurpejovica-enciklopedija-sub000/internal/platform/apperr"
)

const (
	memberAmina = "11111111-1111-1111-1111-111111111111"
	memberEmir  = "22222222-2222-2222-2222-222222222222"
	actorID     = "99999999-9999-9999-9999-999999999999"
)

// fakeRepository is an in-memory Repository for service tests.
type fakeRepository struct {
	mu           sync.Mutex
	members      map[string]bool
	articles     map[string]*article.Article
	translations map[string]*article.Translation // keyed articleID+"/"+lang
}

func newFakeRepository(memberIDs ...string) *fakeRepository {
	members := make(map[string]bool, len(memberIDs))
	for _, id := range memberIDs {
		members[id] = true
	}
	return &fakeRepository{
		members:      members,
		articles:     make(map[string]*article.Article),
		translations: make(map[string]*article.Translation),
	}
}

func (repo *fakeRepository) CreateArticle(_ context.Context, a *article.Article) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	for _, existing := range repo.articles {
		if existing.MemberID == a.MemberID && existing.Language == a.Language {
			return apperr.Conflict("Article already exists for this language")
		}
	}
	stored := *a
	repo.articles[a.ID] = &stored
	return nil
}

func (repo *fakeRepository) GetArticle(_ context.Context, id string) (*article.Article, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	a, ok := repo.articles[id]
	if !ok {
		return nil, apperr.NotFound("Article")
	}
	result := *a
	return &result, nil
}

func (repo *fakeRepository) GetByMemberAndLanguage(_ context.Context, memberID string, lang language.Code) (*article.Article, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	for _, a := range repo.articles {
		if a.MemberID == memberID && a.Language == lang {
			result := *a
			return &result, nil
		}
	}
	return nil, apperr.NotFound("Article")
}

func (repo *fakeRepository) GetAnyByMember(_ context.Context, memberID string) (*article.Article, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	var candidates []*article.Article
	for _, a := range repo.articles {
		if a.MemberID == memberID {
			candidates = append(candidates, a)
		}
	}
	if len(candidates) == 0 {
		return nil, apperr.NotFound("Article")
	}
	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].Language < candidates[j].Language
	})
	result := *candidates[0]
	return &result, nil
}

func (repo *fakeRepository) ListArticles(_ context.Context, memberID string) ([]*article.Article, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	var result []*article.Article
	for _, a := range repo.articles {
		if a.MemberID == memberID {
			copied := *a
			result = append(result, &copied)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Language < result[j].Language })
	return result, nil
}

func (repo *fakeRepository) UpdateArticle(_ context.Context, a *article.Article) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	existing, ok := repo.articles[a.ID]
	if !ok {
		return apperr.NotFound("Article")
	}
	existing.Content = a.Content
	existing.UpdatedBy = a.UpdatedBy
	a.MemberID = existing.MemberID
	a.Language = existing.Language
	a.CreatedBy = existing.CreatedBy
	return nil
}

func (repo *fakeRepository) UpsertTranslation(_ context.Context, t *article.Translation) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	key := t.ArticleID + "/" + string(t.Language)
	if existing, ok := repo.translations[key]; ok {
		t.ID = existing.ID
	}
	stored := *t
	repo.translations[key] = &stored
	return nil
}

func (repo *fakeRepository) ListTranslations(_ context.Context, articleID string) ([]*article.Translation, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	var result []*article.Translation
	for _, t := range repo.translations {
		if t.ArticleID == articleID {
			copied := *t
			result = append(result, &copied)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Language < result[j].Language })
	return result, nil
}

func (repo *fakeRepository) MemberExists(_ context.Context, memberID string) (bool, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	return repo.members[memberID], nil
}

// fakeTranslator echoes the input tagged with the target language, or fails.
type fakeTranslator struct {
	err   error
	calls int
}

func (ft *fakeTranslator) Translate(_ context.Context, text, _, targetLang string) (string, error) {
	ft.calls++
	if ft.err != nil {
		return "", ft.err
	}
	return fmt.Sprintf("[%s] %s", targetLang, text), nil
}

// noopAuditStore discards audit records.
type noopAuditStore struct{}

func (noopAuditStore) Insert(context.Context, *audit.Record) error { return nil }

func newTestService(repo article.Repository, translator article.Translator) *article.Service {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	recorder := audit.NewRecorder(noopAuditStore{}, logger)
	return article.NewService(repo, translator, recorder, logger)
}

func mustCreate(t *testing.T, service *article.Service, memberID string, lang language.Code, content string) *article.Article {
	t.Helper()
	a := &article.Article{MemberID: memberID, Language: lang, Content: content}
	require.NoError(t, service.CreateArticle(context.Background(), a, actorID))
	return a
}

/*
TestService_Resolve tests the three-step deterministic resolution order.
*/
func TestService_Resolve(t *testing.T) {
	ctx := context.Background()

	t.Run("exact_match", func(t *testing.T) {
		service := newTestService(newFakeRepository(memberAmina), &fakeTranslator{})
		mustCreate(t, service, memberAmina, language.English, "english text")
		mustCreate(t, service, memberAmina, language.Serbian, "srpski tekst")

		resolved, err := service.Resolve(ctx, memberAmina, language.Serbian)

		require.NoError(t, err)
		require.NotNil(t, resolved)
		assert.Equal(t, language.Serbian, resolved.Language)
		assert.Equal(t, "srpski tekst", resolved.Content)
	})

	t.Run("cross_language_fallback", func(t *testing.T) {
		service := newTestService(newFakeRepository(memberAmina), &fakeTranslator{})
		mustCreate(t, service, memberAmina, language.Serbian, "srpski tekst")

		// French was never written; the reader gets the Serbian article
		// tagged with its own language so the client can label it.
		resolved, err := service.Resolve(ctx, memberAmina, language.French)

		require.NoError(t, err)
		require.NotNil(t, resolved)
		assert.Equal(t, language.Serbian, resolved.Language)
	})

	t.Run("fallback_is_lowest_language_code", func(t *testing.T) {
		service := newTestService(newFakeRepository(memberAmina), &fakeTranslator{})
		mustCreate(t, service, memberAmina, language.Serbian, "srpski tekst")
		mustCreate(t, service, memberAmina, language.English, "english text")

		// "en" sorts before "sr"; the fallback must be deterministic.
		resolved, err := service.Resolve(ctx, memberAmina, language.Turkish)

		require.NoError(t, err)
		require.NotNil(t, resolved)
		assert.Equal(t, language.English, resolved.Language)
	})

	t.Run("precedence_flips_when_exact_appears", func(t *testing.T) {
		service := newTestService(newFakeRepository(memberAmina), &fakeTranslator{})
		mustCreate(t, service, memberAmina, language.Serbian, "srpski tekst")

		resolved, err := service.Resolve(ctx, memberAmina, language.English)
		require.NoError(t, err)
		assert.Equal(t, language.Serbian, resolved.Language)

		// Publishing an English canonical article wins over the fallback.
		mustCreate(t, service, memberAmina, language.English, "english text")

		resolved, err = service.Resolve(ctx, memberAmina, language.English)
		require.NoError(t, err)
		assert.Equal(t, language.English, resolved.Language)
		assert.Equal(t, "english text", resolved.Content)
	})

	t.Run("no_articles_is_nil_not_error", func(t *testing.T) {
		service := newTestService(newFakeRepository(memberAmina), &fakeTranslator{})

		resolved, err := service.Resolve(ctx, memberAmina, language.English)

		require.NoError(t, err)
		assert.Nil(t, resolved)
	})

	t.Run("unsupported_language", func(t *testing.T) {
		service := newTestService(newFakeRepository(memberAmina), &fakeTranslator{})

		_, err := service.Resolve(ctx, memberAmina, language.Code("pt"))

		require.Error(t, err)
		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, "UNSUPPORTED_LANGUAGE", ae.Code)
	})

	t.Run("unknown_member", func(t *testing.T) {
		service := newTestService(newFakeRepository(), &fakeTranslator{})

		_, err := service.Resolve(ctx, memberAmina, language.English)

		require.Error(t, err)
		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, "NOT_FOUND", ae.Code)
	})
}

/*
TestService_CreateArticle tests canonical authoring rules.
*/
func TestService_CreateArticle(t *testing.T) {
	ctx := context.Background()

	t.Run("duplicate_language_conflicts", func(t *testing.T) {
		service := newTestService(newFakeRepository(memberAmina), &fakeTranslator{})
		mustCreate(t, service, memberAmina, language.English, "first")

		err := service.CreateArticle(ctx, &article.Article{
			MemberID: memberAmina,
			Language: language.English,
			Content:  "second",
		}, actorID)

		require.Error(t, err)
		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, "CONFLICT", ae.Code)
	})

	t.Run("unsupported_language", func(t *testing.T) {
		service := newTestService(newFakeRepository(memberAmina), &fakeTranslator{})

		err := service.CreateArticle(ctx, &article.Article{
			MemberID: memberAmina,
			Language: language.Code("zz"),
			Content:  "text",
		}, actorID)

		require.Error(t, err)
		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, "UNSUPPORTED_LANGUAGE", ae.Code)
	})

	t.Run("empty_content_rejected", func(t *testing.T) {
		service := newTestService(newFakeRepository(memberAmina), &fakeTranslator{})

		err := service.CreateArticle(ctx, &article.Article{
			MemberID: memberAmina,
			Language: language.English,
			Content:  "",
		}, actorID)

		require.Error(t, err)
		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, "VALIDATION_ERROR", ae.Code)
	})

	t.Run("unknown_member", func(t *testing.T) {
		service := newTestService(newFakeRepository(memberAmina), &fakeTranslator{})

		err := service.CreateArticle(ctx, &article.Article{
			MemberID: memberEmir,
			Language: language.English,
			Content:  "text",
		}, actorID)

		require.Error(t, err)
		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, "NOT_FOUND", ae.Code)
	})
}

/*
TestService_RequestTranslation tests the synchronous provider flow.
*/
func TestService_RequestTranslation(t *testing.T) {
	ctx := context.Background()

	t.Run("stores_auto_flagged_translation", func(t *testing.T) {
		repo := newFakeRepository(memberAmina)
		translator := &fakeTranslator{}
		service := newTestService(repo, translator)
		source := mustCreate(t, service, memberAmina, language.Serbian, "srpski tekst")

		translation, err := service.RequestTranslation(ctx, source.ID, language.German, actorID)

		require.NoError(t, err)
		require.NotNil(t, translation)
		assert.True(t, translation.IsAuto)
		assert.Equal(t, language.German, translation.Language)
		assert.Equal(t, "[de] srpski tekst", translation.Content)
		assert.Equal(t, 1, translator.calls)
	})

	t.Run("repeat_request_overwrites", func(t *testing.T) {
		repo := newFakeRepository(memberAmina)
		service := newTestService(repo, &fakeTranslator{})
		source := mustCreate(t, service, memberAmina, language.Serbian, "prvi tekst")

		first, err := service.RequestTranslation(ctx, source.ID, language.German, actorID)
		require.NoError(t, err)

		_, err = service.UpdateArticle(ctx, source.ID, "drugi tekst", actorID)
		require.NoError(t, err)

		second, err := service.RequestTranslation(ctx, source.ID, language.German, actorID)
		require.NoError(t, err)
		assert.Equal(t, "[de] drugi tekst", second.Content)

		stored, err := service.ListTranslations(ctx, source.ID)
		require.NoError(t, err)
		require.Len(t, stored, 1)
		assert.Equal(t, first.ID, stored[0].ID)
	})

	t.Run("provider_failure_writes_nothing", func(t *testing.T) {
		repo := newFakeRepository(memberAmina)
		translator := &fakeTranslator{err: errors.New("upstream 503")}
		service := newTestService(repo, translator)
		source := mustCreate(t, service, memberAmina, language.Serbian, "tekst")

		_, err := service.RequestTranslation(ctx, source.ID, language.English, actorID)

		require.Error(t, err)
		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, "TRANSLATION_UNAVAILABLE", ae.Code)

		stored, listErr := service.ListTranslations(ctx, source.ID)
		require.NoError(t, listErr)
		assert.Empty(t, stored)
	})

	t.Run("same_language_rejected", func(t *testing.T) {
		repo := newFakeRepository(memberAmina)
		translator := &fakeTranslator{}
		service := newTestService(repo, translator)
		source := mustCreate(t, service, memberAmina, language.Serbian, "tekst")

		_, err := service.RequestTranslation(ctx, source.ID, language.Serbian, actorID)

		require.Error(t, err)
		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, "VALIDATION_ERROR", ae.Code)
		assert.Zero(t, translator.calls)
	})

	t.Run("unknown_article", func(t *testing.T) {
		service := newTestService(newFakeRepository(memberAmina), &fakeTranslator{})

		_, err := service.RequestTranslation(ctx, "00000000-0000-0000-0000-000000000000", language.English, actorID)

		require.Error(t, err)
		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, "NOT_FOUND", ae.Code)
	})
}

// Copyright (c) 2026 Kurpejovica Enciklopedija. All rights reserved.
// Author: huzeir2k@gmail.com

/*
Package article provides the HTTP interface for multilingual biography content.

# Routing Strategy

  - Public (v1): Resolution and listing endpoints accessible to all visitors.
  - Editor (v1): Authoring and translation-request endpoints.

Member-scoped routes hang under /members/{id}; article-scoped routes hang
under /articles/{id}. Both sets are served by the same handler.
*/
package article

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/huzeir2k/kurpejovica-enciklopedija-sub000/internal/core/language"
	"github.com/huzeir2k/kurpejovica-enciklopedija-sub000/internal/platform/middleware"
	requestutil "github.com/huzeir2k/kurpejovica-enciklopedija-sub000/internal/platform/request"
	"github.com/huzeir2k/kurpejovica-enciklopedija-sub000/internal/platform/respond"
	"github.com/huzeir2k/kurpejovica-enciklopedija-sub000/internal/platform/sec"
	"github.com/huzeir2k/kurpejovica-enciklopedija-sub000/internal/platform/validate"
)

// # Handler Implementation

// Handler implements the HTTP layer for articles and translations.
type Handler struct {
	service *Service
}

// NewHandler constructs a new article [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterMemberRoutes mounts the member-scoped content routes onto the
// /members subtree.
func (handler *Handler) RegisterMemberRoutes(router chi.Router) {

	// ## Public Resolution
	router.Get("/{id}/article", handler.resolveArticle)
	router.Get("/{id}/articles", handler.listArticles)

	// ## Authoring (Editor Protected)
	router.Group(func(editor chi.Router) {
		editor.Use(middleware.RequireRole(sec.RoleEditor))

		editor.Post("/{id}/articles", handler.createArticle)
	})
}

// RegisterArticleRoutes mounts the article-scoped routes onto the
// /articles subtree.
func (handler *Handler) RegisterArticleRoutes(router chi.Router) {

	// ## Public Translation Listing
	router.Get("/{id}/translations", handler.listTranslations)

	// ## Authoring (Editor Protected)
	router.Group(func(editor chi.Router) {
		editor.Use(middleware.RequireRole(sec.RoleEditor))

		editor.Patch("/{id}", handler.updateArticle)
		editor.Post("/{id}/translations", handler.requestTranslation)
	})
}

// # Resolution Endpoints

/*
GET /api/v1/members/{id}/article?lang=xx.

Description: Resolves the article to show for a member in the requested
language. Falls back to another canonical article (tagged with its own
language) when the requested one does not exist; responds 200 with a null
body when the member has no biography at all.

Request:
  - id: string (UUID)
  - lang: string (Required, one of the nine supported codes)

Response:
  - 200: Article or null: Resolved content
  - 404: 404: ErrNotFound: Member not found
  - 422: 422: UNSUPPORTED_LANGUAGE: Code outside the supported set
*/
func (handler *Handler) resolveArticle(writer http.ResponseWriter, request *http.Request) {
	memberID := requestutil.ID(request, "id")
	lang := language.Code(request.URL.Query().Get("lang"))

	if lang == "" {
		respond.Error(writer, request, validate.RequiredError(FieldLanguage, "The lang query parameter is required"))
		return
	}

	article, err := handler.service.Resolve(request.Context(), memberID, lang)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, article)
}

/*
GET /api/v1/members/{id}/articles.

Description: Lists every canonical article of a member, ordered by
language code.

Request:
  - id: string (UUID)

Response:
  - 200: []Article: Canonical rows
  - 404: 404: ErrNotFound: Member not found
*/
func (handler *Handler) listArticles(writer http.ResponseWriter, request *http.Request) {
	memberID := requestutil.ID(request, "id")

	articles, err := handler.service.ListArticles(request.Context(), memberID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, articles)
}

// # Request Payloads

// createArticleRequest defines the inbound JSON schema for authoring.
type createArticleRequest struct {
	Language language.Code `json:"language"`
	Content  string        `json:"content"`
}

// updateArticleRequest defines the inbound JSON schema for content updates.
type updateArticleRequest struct {
	Content string `json:"content"`
}

// translationRequest defines the inbound JSON schema for translation requests.
type translationRequest struct {
	Language language.Code `json:"language"`
}

// # Authoring Endpoints

/*
POST /api/v1/members/{id}/articles.

Description: Writes a new canonical article for a member. Each member
carries at most one canonical article per language.

Request:
  - id: string (UUID)
  - body: createArticleRequest (JSON)

Response:
  - 201: Article: Created canonical row
  - 400: 400: ErrInvalidJSON/Validation: Invalid input data
  - 401: 401: ErrUnauthorized: Missing or invalid token
  - 403: 403: ErrForbidden: Insufficient permissions
  - 404: 404: ErrNotFound: Member not found
  - 409: 409: ErrConflict: Language already covered for this member
  - 422: 422: UNSUPPORTED_LANGUAGE: Code outside the supported set
*/
func (handler *Handler) createArticle(writer http.ResponseWriter, request *http.Request) {
	actorID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	memberID := requestutil.ID(request, "id")

	var input createArticleRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	articleDto := &Article{
		MemberID: memberID,
		Language: input.Language,
		Content:  input.Content,
	}

	if err := handler.service.CreateArticle(request.Context(), articleDto, actorID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, articleDto)
}

/*
PATCH /api/v1/articles/{id}.

Description: Overwrites the prose of a canonical article. Language and
member binding are immutable; translate or create instead.

Request:
  - id: string (UUID)
  - body: updateArticleRequest (JSON)

Response:
  - 200: Article: Updated canonical row
  - 400: 400: ErrInvalidJSON/Validation: Invalid input data
  - 401: 401: ErrUnauthorized: Missing or invalid token
  - 403: 403: ErrForbidden: Insufficient permissions
  - 404: 404: ErrNotFound: Article not found
*/
func (handler *Handler) updateArticle(writer http.ResponseWriter, request *http.Request) {
	actorID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	articleID := requestutil.ID(request, "id")

	var input updateArticleRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	article, err := handler.service.UpdateArticle(request.Context(), articleID, input.Content, actorID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, article)
}

// # Translation Endpoints

/*
GET /api/v1/articles/{id}/translations.

Description: Lists every stored translation of an article. This surface is
independent of resolution; translations never appear on the member page.

Request:
  - id: string (UUID)

Response:
  - 200: []Translation: Stored translations
  - 404: 404: ErrNotFound: Article not found
*/
func (handler *Handler) listTranslations(writer http.ResponseWriter, request *http.Request) {
	articleID := requestutil.ID(request, "id")

	translations, err := handler.service.ListTranslations(request.Context(), articleID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, translations)
}

/*
POST /api/v1/articles/{id}/translations.

Description: Requests a machine translation of an article into a target
language. The provider call is synchronous; on provider failure nothing is
stored. Re-requesting overwrites the previous row.

Request:
  - id: string (UUID)
  - body: translationRequest (JSON)

Response:
  - 201: Translation: Stored machine translation
  - 400: 400: ErrInvalidJSON/Validation: Invalid input data
  - 401: 401: ErrUnauthorized: Missing or invalid token
  - 403: 403: ErrForbidden: Insufficient permissions
  - 404: 404: ErrNotFound: Article not found
  - 422: 422: UNSUPPORTED_LANGUAGE: Code outside the supported set
  - 502: 502: TRANSLATION_UNAVAILABLE: Provider failure
*/
func (handler *Handler) requestTranslation(writer http.ResponseWriter, request *http.Request) {
	actorID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	articleID := requestutil.ID(request, "id")

	var input translationRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	translation, err := handler.service.RequestTranslation(request.Context(), articleID, input.Language, actorID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, translation)
}

// Copyright (c) 2026 Kurpejovica Enciklopedija. All rights reserved.
// Author: huzeir2k@gmail.com

/*
Package member provides the HTTP interface for the person catalogue.

# Routing Strategy

  - Public (v1): Browsing and gallery endpoints accessible to all visitors.
  - Editor (v1): Record creation and updates, portrait management.
  - Admin (v1): Destructive cascade deletion.

The handler translates between the web/JSON layer and the internal domain [Service].
*/
package member

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/huzeir2k/kurpejovica-enciklopedija-sub000/internal/platform/middleware"
	requestutil "github.com/huzeir2k/kurpejovica-enciklopedija-sub000/internal/platform/request"
	"github.com/huzeir2k/kurpejovica-enciklopedija-sub000/internal/platform/respond"
	"github.com/huzeir2k/kurpejovica-enciklopedija-sub000/internal/platform/sec"
	"github.com/huzeir2k/kurpejovica-enciklopedija-sub000/internal/platform/validate"
	"github.com/huzeir2k/kurpejovica-enciklopedija-sub000/pkg/convert"
	"github.com/huzeir2k/kurpejovica-enciklopedija-sub000/pkg/pagination"
	"github.com/huzeir2k/kurpejovica-enciklopedija-sub000/pkg/pointer"
)

// maxPortraitUpload caps multipart portrait uploads at 10 MiB.
const maxPortraitUpload = 10 << 20

// # Handler Implementation

// Handler implements the HTTP layer for catalogue browsing and management.
type Handler struct {
	service *Service
}

// NewHandler constructs a new member [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the member routes onto the /members subtree.
func (handler *Handler) RegisterRoutes(router chi.Router) {

	// ## Public Browsing Endpoints
	router.Get("/", handler.listMembers)
	router.Get("/{identifier}", handler.getMember)
	router.Get("/{id}/images", handler.listPortraits)

	// ## Catalogue Management (Editor Protected)
	router.Group(func(editor chi.Router) {
		editor.Use(middleware.RequireRole(sec.RoleEditor))

		editor.Post("/", handler.createMember)
		editor.Patch("/{id}", handler.updateMember)

		// Portrait gallery
		editor.Post("/{id}/images", handler.addPortrait)
		editor.Put("/{id}/images/{imageID}/primary", handler.setPrimaryPortrait)
		editor.Delete("/{id}/images/{imageID}", handler.deletePortrait)
	})

	// ## Destructive Operations (Admin Protected)
	router.Group(func(admin chi.Router) {
		admin.Use(middleware.RequireRole(sec.RoleAdmin))

		admin.Delete("/{id}", handler.deleteMember)
	})
}

// # Member Endpoints

/*
GET /api/v1/members.

Description: Retrieves a paginated list of members from the catalogue.

Request:
  - q: string (Name substring search)
  - birthyear: int
  - sort: string (az, za, oldest, latest)
  - limit: int
  - page: int

Response:
  - 200: []Member: Paginated list of members
*/
func (handler *Handler) listMembers(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)
	queryParams := request.URL.Query()

	filter := Filter{
		Query: queryParams.Get("q"),
		Sort:  queryParams.Get("sort"),
	}

	if year := convert.ToInt(queryParams.Get("birthyear")); year != 0 {
		filter.BirthYear = pointer.To(year)
	}

	members, total, err := handler.service.ListMembers(request.Context(), filter, paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, members, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

/*
GET /api/v1/members/{identifier}.

Description: Retrieves a single member by UUID or unique name slug.
UUID lookups take precedence.

Request:
  - identifier: string (UUID or Slug)

Response:
  - 200: Member: Success
  - 404: 404: ErrNotFound: Member not found
*/
func (handler *Handler) getMember(writer http.ResponseWriter, request *http.Request) {
	identifier := requestutil.ID(request, "identifier")

	member, err := handler.service.GetMember(request.Context(), identifier)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, member)
}

// # Request Payloads

// memberRequest defines the inbound JSON schema for member creation and updates.
type memberRequest struct {
	Name       string `json:"name"`
	BirthYear  *int   `json:"birth_year"`
	DeathYear  *int   `json:"death_year"`
	BirthPlace string `json:"birth_place"`
	Occupation string `json:"occupation"`
	Bio        string `json:"bio"`
}

// # Mutation Endpoints

/*
POST /api/v1/members.

Description: Creates a new person record. The URL slug is auto-generated
from the name.

Request (Body):
  - memberRequest: JSON object

Response:
  - 201: Member: Created person record
  - 400: 400: ErrInvalidJSON/Validation: Invalid input data
  - 401: 401: ErrUnauthorized: Missing or invalid token
  - 403: 403: ErrForbidden: Insufficient permissions
  - 409: 409: ErrConflict: Duplicate slug
*/
func (handler *Handler) createMember(writer http.ResponseWriter, request *http.Request) {
	actorID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input memberRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	memberDto := &Member{
		Name:       input.Name,
		BirthYear:  input.BirthYear,
		DeathYear:  input.DeathYear,
		BirthPlace: input.BirthPlace,
		Occupation: input.Occupation,
		Bio:        input.Bio,
	}

	if err := handler.service.CreateMember(request.Context(), memberDto, actorID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, memberDto)
}

/*
PATCH /api/v1/members/{id}.

Description: Applies partial updates to an existing person record.
Clients should only provide the fields that need to be changed.

Request:
  - id: string (UUID)
  - body: memberRequest (Partial JSON)

Response:
  - 200: Member: Updated person record
  - 400: 400: ErrInvalidJSON/Validation: Invalid input data
  - 401: 401: ErrUnauthorized: Missing or invalid token
  - 403: 403: ErrForbidden: Insufficient permissions
  - 404: 404: ErrNotFound: Member not found
*/
func (handler *Handler) updateMember(writer http.ResponseWriter, request *http.Request) {
	actorID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	memberID := requestutil.ID(request, "id")

	var input memberRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	memberDto := &Member{
		ID:         memberID,
		Name:       input.Name,
		BirthYear:  input.BirthYear,
		DeathYear:  input.DeathYear,
		BirthPlace: input.BirthPlace,
		Occupation: input.Occupation,
		Bio:        input.Bio,
	}

	if err := handler.service.UpdateMember(request.Context(), memberDto, actorID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, memberDto)
}

/*
DELETE /api/v1/members/{id}.

Description: Permanently removes a member together with their articles,
translations, portraits, and relationship edges.

Request:
  - id: string (UUID)

Response:
  - 204: No Content: Success
  - 401: 401: ErrUnauthorized: Missing or invalid token
  - 403: 403: ErrForbidden: Insufficient permissions
  - 404: 404: ErrNotFound: Member not found
*/
func (handler *Handler) deleteMember(writer http.ResponseWriter, request *http.Request) {
	actorID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	memberID := requestutil.ID(request, "id")

	if err := handler.service.DeleteMember(request.Context(), memberID, actorID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

// # Portrait Endpoints

/*
GET /api/v1/members/{id}/images.

Description: Retrieves the portrait gallery for a member, primary first.
Each entry carries a time-limited download URL.

Request:
  - id: string (UUID)

Response:
  - 200: []Image: Gallery entries
  - 404: 404: ErrNotFound: Member not found
*/
func (handler *Handler) listPortraits(writer http.ResponseWriter, request *http.Request) {
	memberID := requestutil.ID(request, "id")

	images, err := handler.service.ListPortraits(request.Context(), memberID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, images)
}

/*
POST /api/v1/members/{id}/images.

Description: Uploads a new portrait via multipart form. The first portrait
of a member becomes the primary image automatically.

Request (multipart/form-data):
  - file: binary (JPEG, PNG, or WebP; max 10 MiB)
  - caption: string (Optional)

Response:
  - 201: Image: Stored gallery entry
  - 400: 400: Validation: Missing file or unsupported type
  - 401: 401: ErrUnauthorized: Missing or invalid token
  - 403: 403: ErrForbidden: Insufficient permissions
  - 404: 404: ErrNotFound: Member not found
*/
func (handler *Handler) addPortrait(writer http.ResponseWriter, request *http.Request) {
	actorID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	memberID := requestutil.ID(request, "id")

	if err := request.ParseMultipartForm(maxPortraitUpload); err != nil {
		respond.Error(writer, request, validate.RequiredError(FieldFile, "Invalid or oversized multipart payload"))
		return
	}

	file, header, err := request.FormFile(FieldFile)
	if err != nil {
		respond.Error(writer, request, validate.RequiredError(FieldFile, "A portrait file is required"))
		return
	}
	defer file.Close()

	image, err := handler.service.AddPortrait(
		request.Context(),
		memberID,
		header.Filename,
		header.Header.Get("Content-Type"),
		file,
		request.FormValue(FieldCaption),
		actorID,
	)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, image)
}

/*
PUT /api/v1/members/{id}/images/{imageID}/primary.

Description: Promotes one portrait to primary; the previous primary is
demoted in the same transaction.

Request:
  - id: string (UUID)
  - imageID: string (UUID)

Response:
  - 204: No Content: Success
  - 401: 401: ErrUnauthorized: Missing or invalid token
  - 403: 403: ErrForbidden: Insufficient permissions
  - 404: 404: ErrNotFound: Image not found under the member
*/
func (handler *Handler) setPrimaryPortrait(writer http.ResponseWriter, request *http.Request) {
	actorID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	memberID := requestutil.ID(request, "id")
	imageID := requestutil.ID(request, "imageID")

	if err := handler.service.SetPrimaryPortrait(request.Context(), memberID, imageID, actorID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

/*
DELETE /api/v1/members/{id}/images/{imageID}.

Description: Removes a portrait row and its stored object.

Request:
  - id: string (UUID)
  - imageID: string (UUID)

Response:
  - 204: No Content: Success
  - 401: 401: ErrUnauthorized: Missing or invalid token
  - 403: 403: ErrForbidden: Insufficient permissions
  - 404: 404: ErrNotFound: Image not found under the member
*/
func (handler *Handler) deletePortrait(writer http.ResponseWriter, request *http.Request) {
	actorID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	memberID := requestutil.ID(request, "id")
	imageID := requestutil.ID(request, "imageID")

	if err := handler.service.DeletePortrait(request.Context(), memberID, imageID, actorID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

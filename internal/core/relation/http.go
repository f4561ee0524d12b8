// Copyright (c) 2026 Kurpejovica Enciklopedija. All rights reserved.
// Author: huzeir2k@gmail.com

package relation

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/huzeir2k/kurpejovica-enciklopedija-sub000/internal/platform/middleware"
	requestutil "github.com/huzeir2k/kurpejovica-enciklopedija-sub000/internal/platform/request"
	"github.com/huzeir2k/kurpejovica-enciklopedija-sub000/internal/platform/respond"
	"github.com/huzeir2k/kurpejovica-enciklopedija-sub000/internal/platform/sec"
	"github.com/huzeir2k/kurpejovica-enciklopedija-sub000/internal/platform/validate"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the relationship routes onto the /members subtree.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	// Public
	router.Get("/{id}/tree", handler.getFamilyTree)

	// Editors
	router.Group(func(editorRoute chi.Router) {
		editorRoute.Use(middleware.RequireRole(sec.RoleEditor))

		editorRoute.Post("/{id}/relationships", handler.createRelationship)
		editorRoute.Delete("/{id}/relationships/{edgeID}", handler.deleteRelationship)
	})
}

func (handler *Handler) getFamilyTree(writer http.ResponseWriter, request *http.Request) {
	memberID := requestutil.ID(request, "id")

	tree, err := handler.service.FamilyTree(request.Context(), memberID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, tree)
}

func (handler *Handler) createRelationship(writer http.ResponseWriter, request *http.Request) {
	actorID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input struct {
		PersonB string `json:"person_b"`
		Type    Type   `json:"type"`
	}
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	personA := requestutil.ID(request, "id")

	validator := &validate.Validator{}
	validator.UUID(FieldPersonA, personA)
	validator.Required(FieldPersonB, input.PersonB).UUID(FieldPersonB, input.PersonB)
	validator.Required(FieldType, string(input.Type))
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	edge, err := handler.service.CreateEdge(request.Context(), personA, input.PersonB, input.Type, actorID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, edge)
}

func (handler *Handler) deleteRelationship(writer http.ResponseWriter, request *http.Request) {
	actorID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	memberID := requestutil.ID(request, "id")
	edgeID := requestutil.ID(request, "edgeID")
	if err := handler.service.DeleteEdge(request.Context(), memberID, edgeID, actorID); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

// Copyright (c) 2026 Kurpejovica Enciklopedija. All rights reserved.
// Author: huzeir2k@gmail.com

package relation

import (
	"context"
	"log/slog"

	"github.com/huzeir2k/kurpejovica-enciklopedija-sub000/internal/audit"
	"github.com/huzeir2k/kurpejovica-enciklopedija-sub000/internal/platform/apperr"
	"github.com/huzeir2k/kurpejovica-enciklopedija-sub000/pkg/uuid"
)

const entityType = "memberrelation"

// Service implements the relationship graph use cases: asserting edges,
// removing them, and building classified family trees.
type Service struct {
	repo     Repository
	recorder *audit.Recorder
	logger   *slog.Logger
}

// NewService constructs a relationship [Service] with its dependencies.
func NewService(repo Repository, recorder *audit.Recorder, logger *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		recorder: recorder,
		logger:   logger,
	}
}

/*
CreateEdge asserts a new relationship edge between two members.

Description: The edge is stored exactly as asserted ("personA is <type> of
personB"); no inverse row is generated. Duplicate assertions are allowed.

Parameters:
  - context: context.Context
  - personA: string (asserting endpoint UUID)
  - personB: string (other endpoint UUID)
  - relType: Type (relationship descriptor)
  - actorID: string (authenticated editor)

Returns:
  - *Edge: The stored edge
  - error: apperr.InvalidRelationship (self-edge or unknown type),
    apperr.NotFound (either member missing), or storage errors
*/
func (service *Service) CreateEdge(context context.Context, personA, personB string, relType Type, actorID string) (*Edge, error) {

	// Graph invariants before any round trip.
	if personA == personB {
		return nil, apperr.InvalidRelationship("A member cannot be related to themselves")
	}
	if !relType.IsValid() {
		return nil, apperr.InvalidRelationship("Unknown relationship type")
	}

	// Both endpoints must exist; name the missing one for the client.
	for _, memberID := range []string{personA, personB} {
		exists, err := service.repo.MemberExists(context, memberID)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, apperr.NotFound("Member")
		}
	}

	edge := &Edge{
		ID:        uuid.New(),
		PersonA:   personA,
		PersonB:   personB,
		Type:      relType,
		CreatedBy: actorID,
	}

	if err := service.repo.CreateEdge(context, edge); err != nil {
		return nil, err
	}

	service.logger.Info("relationship_created",
		slog.String("edge_id", edge.ID),
		slog.String("type", string(edge.Type)),
	)

	service.recorder.Record(context, audit.Entry{
		ActorID:    actorID,
		Action:     audit.ActionCreate,
		EntityType: entityType,
		EntityID:   edge.ID,
		After:      edge,
	})

	return edge, nil
}

/*
FamilyTree loads and classifies every edge touching a member.

Description: Verifies the member exists (the classifier itself does not), then
fetches all touching edges in one joined query and buckets them per the
asserted-direction policy documented on [Classify].

Returns:
  - *FamilyTree: Classified buckets; all-empty for a member with no edges
  - error: apperr.NotFound if the member does not exist
*/
func (service *Service) FamilyTree(context context.Context, memberID string) (*FamilyTree, error) {
	exists, err := service.repo.MemberExists(context, memberID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperr.NotFound("Member")
	}

	edges, err := service.repo.EdgesTouching(context, memberID)
	if err != nil {
		return nil, err
	}

	return Classify(memberID, edges), nil
}

/*
DeleteEdge removes a single asserted edge.

Description: The edge must touch the member named in the request path;
an edge id paired with an unrelated member resolves to NotFound rather
than deleting another member's edge.

Returns:
  - error: apperr.NotFound if the edge does not exist or does not touch
    memberID
*/
func (service *Service) DeleteEdge(context context.Context, memberID, edgeID, actorID string) error {
	edge, err := service.repo.GetEdge(context, edgeID)
	if err != nil {
		return err
	}

	if edge.PersonA != memberID && edge.PersonB != memberID {
		return apperr.NotFound("Relationship")
	}

	if err := service.repo.DeleteEdge(context, edgeID); err != nil {
		return err
	}

	service.logger.Warn("relationship_deleted", slog.String("edge_id", edgeID))

	service.recorder.Record(context, audit.Entry{
		ActorID:    actorID,
		Action:     audit.ActionDelete,
		EntityType: entityType,
		EntityID:   edgeID,
		Before:     edge,
	})

	return nil
}

// Copyright (c) 2026 Kurpejovica Enciklopedija. All rights reserved.
// Author: huzeir2k@gmail.com

package relation_test

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/huzeir2k/kurpejovica-enciklopedija-sub000/internal/audit"
	"github.com/huzeir2k/kurpejovica-enciklopedija-sub000/internal/core/relation"
	"github.com/huzeir2k/kurpejovica-enciklopedija-sub000/internal/platform/apperr"
)

// fakeRepository is an in-memory Repository for service tests.
type fakeRepository struct {
	mu      sync.Mutex
	members map[string]bool
	edges   map[string]*relation.Edge
}

func newFakeRepository(memberIDs ...string) *fakeRepository {
	members := make(map[string]bool, len(memberIDs))
	for _, id := range memberIDs {
		members[id] = true
	}
	return &fakeRepository{
		members: members,
		edges:   make(map[string]*relation.Edge),
	}
}

func (repo *fakeRepository) CreateEdge(_ context.Context, edge *relation.Edge) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	repo.edges[edge.ID] = edge
	return nil
}

func (repo *fakeRepository) GetEdge(_ context.Context, id string) (*relation.Edge, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	edge, ok := repo.edges[id]
	if !ok {
		return nil, apperr.NotFound("Relationship")
	}
	return edge, nil
}

func (repo *fakeRepository) EdgesTouching(_ context.Context, memberID string) ([]*relation.TouchingEdge, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	var result []*relation.TouchingEdge
	for _, edge := range repo.edges {
		if edge.PersonA != memberID && edge.PersonB != memberID {
			continue
		}
		otherID := edge.PersonB
		if edge.PersonB == memberID {
			otherID = edge.PersonA
		}
		result = append(result, &relation.TouchingEdge{
			Edge:  *edge,
			Other: relation.Relative{ID: otherID},
		})
	}
	return result, nil
}

func (repo *fakeRepository) DeleteEdge(_ context.Context, id string) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	if _, ok := repo.edges[id]; !ok {
		return apperr.NotFound("Relationship")
	}
	delete(repo.edges, id)
	return nil
}

func (repo *fakeRepository) MemberExists(_ context.Context, memberID string) (bool, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	return repo.members[memberID], nil
}

// noopAuditStore discards audit records.
type noopAuditStore struct{}

func (noopAuditStore) Insert(context.Context, *audit.Record) error { return nil }

func newTestService(repo relation.Repository) *relation.Service {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	recorder := audit.NewRecorder(noopAuditStore{}, logger)
	return relation.NewService(repo, recorder, logger)
}

const actorID = "99999999-9999-9999-9999-999999999999"

/*
TestService_CreateEdge tests edge assertion including graph invariants.
*/
func TestService_CreateEdge(t *testing.T) {
	ctx := context.Background()

	t.Run("valid_edge", func(t *testing.T) {
		service := newTestService(newFakeRepository(memberVuk, memberMilica))

		edge, err := service.CreateEdge(ctx, memberVuk, memberMilica, relation.TypeParent, actorID)

		require.NoError(t, err)
		require.NotNil(t, edge)
		assert.NotEmpty(t, edge.ID)
		assert.Equal(t, memberVuk, edge.PersonA)
		assert.Equal(t, memberMilica, edge.PersonB)
		assert.Equal(t, relation.TypeParent, edge.Type)
		assert.Equal(t, actorID, edge.CreatedBy)
	})

	t.Run("self_edge_rejected", func(t *testing.T) {
		service := newTestService(newFakeRepository(memberVuk))

		_, err := service.CreateEdge(ctx, memberVuk, memberVuk, relation.TypeSibling, actorID)

		require.Error(t, err)
		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, "INVALID_RELATIONSHIP", ae.Code)
	})

	t.Run("unknown_type_rejected", func(t *testing.T) {
		service := newTestService(newFakeRepository(memberVuk, memberMilica))

		_, err := service.CreateEdge(ctx, memberVuk, memberMilica, relation.Type("twin"), actorID)

		require.Error(t, err)
		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, "INVALID_RELATIONSHIP", ae.Code)
	})

	t.Run("unknown_member_rejected", func(t *testing.T) {
		service := newTestService(newFakeRepository(memberVuk))

		_, err := service.CreateEdge(ctx, memberVuk, memberMilica, relation.TypeSpouse, actorID)

		require.Error(t, err)
		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, "NOT_FOUND", ae.Code)
	})

	t.Run("duplicate_assertion_allowed", func(t *testing.T) {
		service := newTestService(newFakeRepository(memberVuk, memberMilica))

		_, err := service.CreateEdge(ctx, memberVuk, memberMilica, relation.TypeCousin, actorID)
		require.NoError(t, err)

		_, err = service.CreateEdge(ctx, memberVuk, memberMilica, relation.TypeCousin, actorID)
		require.NoError(t, err)
	})
}

/*
TestService_FamilyTree tests member resolution and classified output.
*/
func TestService_FamilyTree(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown_member", func(t *testing.T) {
		service := newTestService(newFakeRepository())

		_, err := service.FamilyTree(ctx, memberVuk)

		require.Error(t, err)
		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, "NOT_FOUND", ae.Code)
	})

	t.Run("classified_tree", func(t *testing.T) {
		repo := newFakeRepository(memberVuk, memberMilica)
		service := newTestService(repo)

		_, err := service.CreateEdge(ctx, memberVuk, memberMilica, relation.TypeChild, actorID)
		require.NoError(t, err)

		tree, err := service.FamilyTree(ctx, memberVuk)
		require.NoError(t, err)
		require.Len(t, tree.Children, 1)
		assert.Equal(t, memberMilica, tree.Children[0].ID)

		// The counterpart sees the same row in relatives only.
		otherTree, err := service.FamilyTree(ctx, memberMilica)
		require.NoError(t, err)
		assert.Empty(t, otherTree.Parents)
		require.Len(t, otherTree.Relatives, 1)
	})
}

/*
TestService_DeleteEdge tests edge removal.
*/
func TestService_DeleteEdge(t *testing.T) {
	ctx := context.Background()

	t.Run("removes an edge through either endpoint", func(t *testing.T) {
		repo := newFakeRepository(memberVuk, memberMilica)
		service := newTestService(repo)

		edge, err := service.CreateEdge(ctx, memberVuk, memberMilica, relation.TypeSpouse, actorID)
		require.NoError(t, err)

		require.NoError(t, service.DeleteEdge(ctx, memberMilica, edge.ID, actorID))

		err = service.DeleteEdge(ctx, memberVuk, edge.ID, actorID)
		require.Error(t, err)
		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, "NOT_FOUND", ae.Code)
	})

	t.Run("edge of an unrelated member resolves to not found", func(t *testing.T) {
		repo := newFakeRepository(memberVuk, memberMilica, memberStefan)
		service := newTestService(repo)

		edge, err := service.CreateEdge(ctx, memberVuk, memberMilica, relation.TypeSibling, actorID)
		require.NoError(t, err)

		err = service.DeleteEdge(ctx, memberStefan, edge.ID, actorID)
		require.Error(t, err)
		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, "NOT_FOUND", ae.Code)

		// The edge is untouched and still deletable through its own member.
		require.NoError(t, service.DeleteEdge(ctx, memberVuk, edge.ID, actorID))
	})
}

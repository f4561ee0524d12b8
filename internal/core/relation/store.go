// Copyright (c) 2026 Kurpejovica Enciklopedija. All rights reserved.
// Author: huzeir2k@gmail.com

package relation

import "context"

// Repository defines the data access contract for relationship edges.
type Repository interface {
	/*
		CreateEdge persists a new asserted edge row.

		Parameters:
		  - context: context.Context
		  - edge: *Edge (ID, PersonA, PersonB, Type, CreatedBy populated)

		Returns:
		  - error: Persistence failure
	*/
	CreateEdge(context context.Context, edge *Edge) error

	/*
		GetEdge loads a single edge by id.

		Returns:
		  - *Edge: The stored edge
		  - error: apperr.NotFound if absent
	*/
	GetEdge(context context.Context, id string) (*Edge, error)

	/*
		EdgesTouching returns every edge where the member is either endpoint,
		each joined with the minimal projection of the other endpoint.

		Ordering follows insertion order (ascending time-sortable id) so the
		spouse slot's last-write-wins rule is deterministic.

		Returns:
		  - []*TouchingEdge: Edges with counterpart projections
		  - error: Retrieval failure
	*/
	EdgesTouching(context context.Context, memberID string) ([]*TouchingEdge, error)

	/*
		DeleteEdge removes one edge row by id.

		Returns:
		  - error: apperr.NotFound if no row was deleted
	*/
	DeleteEdge(context context.Context, id string) error

	/*
		MemberExists reports whether a member row exists.

		Used to reject edges pointing at unknown members without loading the
		full entity.
	*/
	MemberExists(context context.Context, memberID string) (bool, error)
}

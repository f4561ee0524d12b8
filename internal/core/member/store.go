// Copyright (c) 2026 Kurpejovica Enciklopedija. All rights reserved.
// Author: huzeir2k@gmail.com

package member

import "context"

// # Member Data Access

// Repository defines the data access contract for the member catalogue.
type Repository interface {
	ImageRepository

	/*
		List returns a filtered, paginated slice of members and the total count.

		Parameters:
		  - context: context.Context
		  - filter: Filter (Name search, life-year, sorting)
		  - limit: int
		  - offset: int

		Returns:
		  - []*Member: Slice of matching person records
		  - int: Total count of records matching the filter
		  - error: Database retrieval failures
	*/
	List(context context.Context, filter Filter, limit, offset int) ([]*Member, int, error)

	/*
		FindByID returns the member with the given ID.

		Parameters:
		  - context: context.Context
		  - id: string (UUID)

		Returns:
		  - *Member: The hydrated domain entity
		  - error: ErrNotFound if missing
	*/
	FindByID(context context.Context, id string) (*Member, error)

	/*
		FindBySlug returns the member matching the unique URL identifier.

		Parameters:
		  - context: context.Context
		  - slug: string

		Returns:
		  - *Member: The hydrated domain entity
		  - error: ErrNotFound if missing
	*/
	FindBySlug(context context.Context, slug string) (*Member, error)

	/*
		Create persists a new member to the store.

		Parameters:
		  - context: context.Context
		  - member: *Member (Identity and biographical state)

		Returns:
		  - error: Conflict on duplicate slug, or storage failures
	*/
	Create(context context.Context, member *Member) error

	/*
		Update persists changes to an existing member's mutable fields.

		Parameters:
		  - context: context.Context
		  - member: *Member (Target ID and modified attributes)

		Returns:
		  - error: ErrNotFound if missing, or storage failures
	*/
	Update(context context.Context, member *Member) error

	/*
		Delete removes a member together with every dependent row.

		Articles, their translations, portrait images, and relationship
		edges touching the member are all removed in one transaction, so a
		failure partway leaves the catalogue untouched.

		Parameters:
		  - context: context.Context
		  - id: string (UUID)

		Returns:
		  - []string: Object keys of the removed portrait images, for
		    post-commit bucket cleanup
		  - error: ErrNotFound if missing, or storage failures
	*/
	Delete(context context.Context, id string) ([]string, error)
}

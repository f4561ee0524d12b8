// Copyright (c) 2026 Kurpejovica Enciklopedija. All rights reserved.
// Author: huzeir2k@gmail.com

package member

import "context"

// # Portrait Data Access

// ImageRepository defines the data access contract for the portrait gallery.
type ImageRepository interface {
	/*
		ListImages returns all portraits of a member, primary first.

		Parameters:
		  - context: context.Context
		  - memberID: string (UUID)

		Returns:
		  - []*Image: Gallery rows, possibly empty
		  - error: Database retrieval failures
	*/
	ListImages(context context.Context, memberID string) ([]*Image, error)

	/*
		GetImage returns a single portrait row by ID.

		Parameters:
		  - context: context.Context
		  - id: string (UUID)

		Returns:
		  - *Image: The portrait row
		  - error: ErrNotFound if missing
	*/
	GetImage(context context.Context, id string) (*Image, error)

	/*
		AddImage persists a new portrait row.

		Parameters:
		  - context: context.Context
		  - image: *Image (Member ID, object key, caption, primary flag)

		Returns:
		  - error: ErrNotFound on unknown member, or storage failures
	*/
	AddImage(context context.Context, image *Image) error

	/*
		SetPrimaryImage promotes one portrait to primary.

		The previous primary is demoted and the target promoted inside a
		single transaction, so the gallery never carries two primaries.

		Parameters:
		  - context: context.Context
		  - memberID: string (UUID)
		  - imageID: string (UUID, must belong to memberID)

		Returns:
		  - error: ErrNotFound if the image does not exist under the member
	*/
	SetPrimaryImage(context context.Context, memberID, imageID string) error

	/*
		DeleteImage removes a portrait row.

		Parameters:
		  - context: context.Context
		  - id: string (UUID)

		Returns:
		  - error: ErrNotFound if missing
	*/
	DeleteImage(context context.Context, id string) error

	/*
		CountImages returns the number of portraits a member has.

		Parameters:
		  - context: context.Context
		  - memberID: string (UUID)

		Returns:
		  - int: Gallery size
		  - error: Database retrieval failures
	*/
	CountImages(context context.Context, memberID string) (int, error)
}

// Copyright (c) 2026 Kurpejovica Enciklopedija. All rights reserved.
// Author: huzeir2k@gmail.com

package member

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path"
	"strings"
	"time"

	"github.com/huzeir2k/kurpejovica-enciklopedija-sub000/internal/audit"
	"github.com/huzeir2k/kurpejovica-enciklopedija-sub000/internal/platform/apperr"
	"github.com/huzeir2k/kurpejovica-enciklopedija-sub000/internal/platform/validate"
	"github.com/huzeir2k/kurpejovica-enciklopedija-sub000/pkg/uuid"
)

// portraitURLTTL bounds how long a presigned gallery link stays valid.
const portraitURLTTL = 15 * time.Minute

// allowedImageTypes is the closed set of accepted portrait MIME types.
var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
}

// # Portrait Gallery

/*
ListPortraits returns a member's gallery with presigned download URLs.

Parameters:
  - context: context.Context
  - memberID: string (UUID)

Returns:
  - []*Image: Gallery rows, primary first, each with a time-limited URL
  - error: ErrNotFound on unknown member, or storage failures
*/
func (service *Service) ListPortraits(context context.Context, memberID string) ([]*Image, error) {

	// Distinguish "no portraits" from "no member".
	if _, err := service.repo.FindByID(context, memberID); err != nil {
		return nil, err
	}

	images, err := service.repo.ListImages(context, memberID)
	if err != nil {
		return nil, err
	}

	for _, img := range images {
		url, err := service.objects.PresignGet(context, img.ObjectKey, portraitURLTTL)
		if err != nil {
			service.logger.Warn("portrait_presign_failed",
				slog.String("image_id", img.ID),
				slog.Any("error", err),
			)
			continue
		}
		img.URL = url
	}

	return images, nil
}

/*
AddPortrait uploads a portrait and attaches it to a member.

Description: The image bytes go to the bucket first; the database row is
written only after the upload has succeeded, so a stored row always points
at an existing object. The first portrait of a member is automatically
marked primary. If the row insert fails the freshly uploaded object is
removed best-effort.

Parameters:
  - context: context.Context
  - memberID: string (UUID)
  - filename: string (Client-supplied name, used for the object key suffix)
  - contentType: string (Must be image/jpeg, image/png, or image/webp)
  - content: io.Reader (Raw image bytes)
  - caption: string (Optional)
  - actorID: string (Authenticated editor)

Returns:
  - *Image: The stored gallery row
  - error: Validation, not-found, upload, or persistence errors
*/
func (service *Service) AddPortrait(context context.Context, memberID, filename, contentType string, content io.Reader, caption, actorID string) (*Image, error) {

	validator := &validate.Validator{}
	validator.Required(FieldID, memberID).UUID(FieldID, memberID)
	validator.MaxLen(FieldCaption, caption, 500)
	validator.Custom(FieldFile, !allowedImageTypes[contentType],
		fmt.Sprintf("Unsupported image type %q", contentType))
	if err := validator.Err(); err != nil {
		return nil, err
	}

	if _, err := service.repo.FindByID(context, memberID); err != nil {
		return nil, err
	}

	imageID := uuid.New()
	objectKey := portraitKey(memberID, imageID, filename)

	if err := service.objects.Upload(context, objectKey, content, contentType); err != nil {
		return nil, apperr.Internal(err)
	}

	existing, err := service.repo.CountImages(context, memberID)
	if err != nil {
		return nil, err
	}

	image := &Image{
		ID:         imageID,
		MemberID:   memberID,
		ObjectKey:  objectKey,
		Caption:    caption,
		IsPrimary:  existing == 0,
		UploadedBy: actorID,
	}

	if err := service.repo.AddImage(context, image); err != nil {
		// The object is orphaned otherwise.
		if cleanupErr := service.objects.Delete(context, objectKey); cleanupErr != nil {
			service.logger.Warn("portrait_upload_rollback_failed",
				slog.String("object_key", objectKey),
				slog.Any("error", cleanupErr),
			)
		}
		return nil, err
	}

	service.logger.Info("portrait_added",
		slog.String("member_id", memberID),
		slog.String("image_id", image.ID),
	)

	service.recorder.Record(context, audit.Entry{
		ActorID:    actorID,
		Action:     audit.ActionCreate,
		EntityType: "memberimage",
		EntityID:   image.ID,
		After:      image,
	})

	return image, nil
}

/*
SetPrimaryPortrait promotes one portrait to be the member's primary image.

Parameters:
  - context: context.Context
  - memberID: string (UUID)
  - imageID: string (UUID, must belong to memberID)
  - actorID: string (Authenticated editor)

Returns:
  - error: ErrNotFound if the image does not exist under the member
*/
func (service *Service) SetPrimaryPortrait(context context.Context, memberID, imageID, actorID string) error {

	if err := service.repo.SetPrimaryImage(context, memberID, imageID); err != nil {
		return err
	}

	service.logger.Info("portrait_primary_changed",
		slog.String("member_id", memberID),
		slog.String("image_id", imageID),
	)

	service.recorder.Record(context, audit.Entry{
		ActorID:    actorID,
		Action:     audit.ActionUpdate,
		EntityType: "memberimage",
		EntityID:   imageID,
	})

	return nil
}

/*
DeletePortrait removes a portrait row and its bucket object.

Description: The row is removed first; the object deletion that follows is
best-effort, since a dangling object is harmless while a dangling row is
not.

Parameters:
  - context: context.Context
  - memberID: string (UUID, must own the image)
  - imageID: string (UUID)
  - actorID: string (Authenticated editor)

Returns:
  - error: ErrNotFound if the image does not exist under the member
*/
func (service *Service) DeletePortrait(context context.Context, memberID, imageID, actorID string) error {

	image, err := service.repo.GetImage(context, imageID)
	if err != nil {
		return err
	}
	if image.MemberID != memberID {
		return apperr.NotFound("Image")
	}

	if err := service.repo.DeleteImage(context, imageID); err != nil {
		return err
	}

	if err := service.objects.Delete(context, image.ObjectKey); err != nil {
		service.logger.Warn("portrait_object_cleanup_failed",
			slog.String("image_id", imageID),
			slog.String("object_key", image.ObjectKey),
			slog.Any("error", err),
		)
	}

	service.recorder.Record(context, audit.Entry{
		ActorID:    actorID,
		Action:     audit.ActionDelete,
		EntityType: "memberimage",
		EntityID:   imageID,
		Before:     image,
	})

	return nil
}

// portraitKey builds the bucket key for a portrait upload.
// Layout: members/{memberID}/{imageID}{ext}.
func portraitKey(memberID, imageID, filename string) string {
	ext := strings.ToLower(path.Ext(filename))
	return fmt.Sprintf("members/%s/%s%s", memberID, imageID, ext)
}

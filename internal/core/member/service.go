// Copyright (c) 2026 Kurpejovica Enciklopedija. All rights reserved.
// Author: huzeir2k@gmail.com

package member

import (
	"context"
	"log/slog"

	"github.com/huzeir2k/kurpejovica-enciklopedija-sub000/internal/audit"
	"github.com/huzeir2k/kurpejovica-enciklopedija-sub000/internal/platform/storage"
	"github.com/huzeir2k/kurpejovica-enciklopedija-sub000/internal/platform/validate"
	"github.com/huzeir2k/kurpejovica-enciklopedija-sub000/pkg/slug"
	"github.com/huzeir2k/kurpejovica-enciklopedija-sub000/pkg/uuid"
)

const entityType = "member"

// Years documented in the encyclopedia fall inside this window.
const (
	minLifeYear = 1400
	maxLifeYear = 2100
)

// # Service Layer

// Service orchestrates the business logic for the member catalogue.
// It acts as the primary entry point for managing person records.
type Service struct {
	repo     Repository
	objects  storage.ObjectStore
	recorder *audit.Recorder
	logger   *slog.Logger
}

// NewService constructs a new member [Service] with its dependencies.
func NewService(repo Repository, objects storage.ObjectStore, recorder *audit.Recorder, logger *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		objects:  objects,
		recorder: recorder,
		logger:   logger,
	}
}

// # Member Lookups

/*
ListMembers retrieves a paginated and filtered collection of members.

Parameters:
  - context: context.Context
  - filter: Filter (Name search, life-year, sort key)
  - limit: int (Max records to return)
  - offset: int (Pagination cursor)

Returns:
  - []*Member: Slice of matching person records
  - int: Total count of records matching the filter
  - error: System or repository level errors
*/
func (service *Service) ListMembers(context context.Context, filter Filter, limit, offset int) ([]*Member, int, error) {
	return service.repo.List(context, filter, limit, offset)
}

/*
GetMember fetches a single person record by UUID or URL slug.

Description: The service determines the lookup strategy from the identifier
format. A UUID-shaped identifier resolves via primary key; anything else
resolves via the unique slug.

Parameters:
  - context: context.Context
  - identifier: string (UUID or Slug)

Returns:
  - *Member: The hydrated domain entity
  - error: ErrNotFound if no match is found
*/
func (service *Service) GetMember(context context.Context, identifier string) (*Member, error) {
	if isUUID(identifier) {
		return service.repo.FindByID(context, identifier)
	}
	return service.repo.FindBySlug(context, identifier)
}

// # Member Management

/*
CreateMember initialises a new person record in the catalogue.

Description: Validates biographical attributes, generates a stable UUID v7
identity and a URL slug from the name, persists the record, and emits an
audit entry after the write has succeeded.

Parameters:
  - context: context.Context
  - member: *Member (The entity to be persisted)
  - actorID: string (Authenticated editor)

Returns:
  - error: Validation, conflict, or persistence errors
*/
func (service *Service) CreateMember(context context.Context, member *Member, actorID string) error {

	validator := &validate.Validator{}
	validator.Required(FieldName, member.Name).MaxLen(FieldName, member.Name, 300)
	validator.MaxLen(FieldBirthPlace, member.BirthPlace, 300)
	validator.MaxLen(FieldOccupation, member.Occupation, 300)

	service.validateLifeYears(validator, member.BirthYear, member.DeathYear)

	if err := validator.Err(); err != nil {
		return err
	}

	if member.ID == "" {
		member.ID = uuid.New()
	}
	if member.Slug == "" {
		member.Slug = slug.From(member.Name)
	}
	member.CreatedBy = actorID

	if err := service.repo.Create(context, member); err != nil {
		return err
	}

	service.logger.Info("member_created",
		slog.String("member_id", member.ID),
		slog.String("name", member.Name),
	)

	service.recorder.Record(context, audit.Entry{
		ActorID:    actorID,
		Action:     audit.ActionCreate,
		EntityType: entityType,
		EntityID:   member.ID,
		After:      member,
	})

	return nil
}

/*
UpdateMember applies modifications to an existing person record.

Description: Supports partial updates; non-empty fields overwrite existing
values. The pre-update snapshot is loaded first so the audit trail carries
both sides of the change.

Parameters:
  - context: context.Context
  - member: *Member (Target ID and updated attributes)
  - actorID: string (Authenticated editor)

Returns:
  - error: Validation, not-found, or persistence errors
*/
func (service *Service) UpdateMember(context context.Context, member *Member, actorID string) error {

	validator := &validate.Validator{}
	if member.Name != "" {
		validator.MaxLen(FieldName, member.Name, 300)
	}
	if member.Slug != "" {
		validator.Slug(FieldSlug, member.Slug)
	}
	validator.MaxLen(FieldBirthPlace, member.BirthPlace, 300)
	validator.MaxLen(FieldOccupation, member.Occupation, 300)

	before, err := service.repo.FindByID(context, member.ID)
	if err != nil {
		return err
	}

	// Year bounds are checked against the merged record so a new death year
	// is validated against the existing birth year and vice versa.
	birthYear := before.BirthYear
	if member.BirthYear != nil {
		birthYear = member.BirthYear
	}
	deathYear := before.DeathYear
	if member.DeathYear != nil {
		deathYear = member.DeathYear
	}
	service.validateLifeYears(validator, birthYear, deathYear)

	if err := validator.Err(); err != nil {
		return err
	}

	if err := service.repo.Update(context, member); err != nil {
		return err
	}

	service.logger.Info("member_updated", slog.String("member_id", member.ID))

	service.recorder.Record(context, audit.Entry{
		ActorID:    actorID,
		Action:     audit.ActionUpdate,
		EntityType: entityType,
		EntityID:   member.ID,
		Before:     before,
		After:      member,
	})

	return nil
}

/*
DeleteMember removes a person record and everything attached to it.

Description: The repository cascade removes articles, translations,
portrait rows, and relationship edges in one transaction. After the commit
the portrait objects are deleted from the bucket best-effort; a stale
object never blocks the catalogue operation.

Parameters:
  - context: context.Context
  - id: string (UUID)
  - actorID: string (Authenticated admin)

Returns:
  - error: ErrNotFound if missing, or persistence errors
*/
func (service *Service) DeleteMember(context context.Context, id string, actorID string) error {

	before, err := service.repo.FindByID(context, id)
	if err != nil {
		return err
	}

	objectKeys, err := service.repo.Delete(context, id)
	if err != nil {
		return err
	}

	// Bucket cleanup after the commit. Failures are logged, not surfaced.
	for _, key := range objectKeys {
		if err := service.objects.Delete(context, key); err != nil {
			service.logger.Warn("portrait_object_cleanup_failed",
				slog.String("member_id", id),
				slog.String("object_key", key),
				slog.Any("error", err),
			)
		}
	}

	service.logger.Warn("member_deleted",
		slog.String("member_id", id),
		slog.String("name", before.Name),
	)

	service.recorder.Record(context, audit.Entry{
		ActorID:    actorID,
		Action:     audit.ActionDelete,
		EntityType: entityType,
		EntityID:   id,
		Before:     before,
	})

	return nil
}

// # Internal Helpers

// validateLifeYears enforces the documented year window and birth/death ordering.
func (service *Service) validateLifeYears(validator *validate.Validator, birthYear, deathYear *int) {
	if birthYear != nil {
		validator.Range(FieldBirthYear, *birthYear, minLifeYear, maxLifeYear)
	}
	if deathYear != nil {
		validator.Range(FieldDeathYear, *deathYear, minLifeYear, maxLifeYear)
	}
	if birthYear != nil && deathYear != nil {
		validator.Custom(FieldDeathYear, *deathYear < *birthYear, "Death year cannot precede birth year")
	}
}

// isUUID returns true if the string matches the standard UUID length.
func isUUID(s string) bool {
	return len(s) == 36
}

// Copyright (c) 2026 Kurpejovica Enciklopedija. All rights reserved.
// Author: huzeir2k@gmail.com

/*
Package member defines the core catalogue of family members.

It manages the lifecycle of biographical records: identity, life dates,
origin, and the portrait gallery attached to each person.

Core Responsibility:

  - Catalogue: One row per documented person, addressable by UUID or slug.
  - Biography: Life-year bounds, birthplace, occupation, and a short bio.
  - Gallery: Portrait images stored in object storage, one marked primary.

This package acts as the source of truth for person records; relationship
edges and articles reference members by ID and are removed with them.
*/
package member

import "time"

// # Core Entities

// Member is the central aggregate of the encyclopedia domain.
// It represents a single documented person in the family catalogue.
type Member struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Slug       string `json:"slug"` // URL-safe identifier
	BirthYear  *int   `json:"birth_year,omitempty"`
	DeathYear  *int   `json:"death_year,omitempty"` // nil = living or unknown
	BirthPlace string `json:"birth_place,omitempty"`
	Occupation string `json:"occupation,omitempty"`
	Bio        string `json:"bio,omitempty"`

	CreatedBy string    `json:"created_by,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Image is a portrait attached to a [Member].
// The binary lives in object storage; ObjectKey locates it in the bucket.
type Image struct {
	ID         string    `json:"id"`
	MemberID   string    `json:"member_id"`
	ObjectKey  string    `json:"object_key"`
	URL        string    `json:"url,omitempty"` // Presigned, filled at read time
	Caption    string    `json:"caption,omitempty"`
	IsPrimary  bool      `json:"is_primary"`
	UploadedBy string    `json:"uploaded_by,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// # Search & Filtering

// Filter holds the parameters for a filtered member list query.
type Filter struct {
	Query     string `json:"q,omitempty"`          // Name substring search
	BirthYear *int   `json:"birth_year,omitempty"` // Exact life-year match
	Sort      string `json:"sort,omitempty"`       // az, za, oldest, latest
}

// # Field Identifiers

// Global field names for validation and dynamic query mapping.
const (
	FieldID         = "id"
	FieldName       = "name"
	FieldSlug       = "slug"
	FieldBirthYear  = "birth_year"
	FieldDeathYear  = "death_year"
	FieldBirthPlace = "birth_place"
	FieldOccupation = "occupation"
	FieldBio        = "bio"
	FieldCaption    = "caption"
	FieldFile       = "file"
)

// Copyright (c) 2026 Kurpejovica Enciklopedija. All rights reserved.
// Author: huzeir2k@gmail.com

/*
Package article defines the multilingual biography content of the encyclopedia.

It manages two kinds of prose rows and the resolver that serves them:

  - Canonical articles: at most one per (member, language), written by editors.
  - Translations: derived rows hanging off an article, one per target
    language, upserted and flagged as machine- or human-produced.

The resolver serves read traffic from canonical articles only. A reader
asking for a language with no canonical row gets another canonical article
verbatim, tagged with its own language; translations are a separate,
explicitly requested surface and never leak into resolution.
*/
package article

import (
	"time"

	"github.com/huzeir2k/kurpejovica-enciklopedija-sub000/internal/core/language"
)

// # Core Entities

// Article is a canonical biography in one language.
// The (MemberID, Language) pair is unique across the catalogue.
type Article struct {
	ID       string        `json:"id"`
	MemberID string        `json:"member_id"`
	Language language.Code `json:"language"`
	Content  string        `json:"content"`

	CreatedBy string    `json:"created_by,omitempty"`
	UpdatedBy string    `json:"updated_by,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Translation is a derived rendition of an [Article] in another language.
// One row per (ArticleID, Language); repeated writes overwrite in place.
type Translation struct {
	ID        string        `json:"id"`
	ArticleID string        `json:"article_id"`
	Language  language.Code `json:"language"`
	Content   string        `json:"content"`
	IsAuto    bool          `json:"is_auto"` // true = machine-produced

	CreatedBy string    `json:"created_by,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// # Field Identifiers

// Global field names for validation and dynamic query mapping.
const (
	FieldID       = "id"
	FieldMemberID = "member_id"
	FieldLanguage = "language"
	FieldContent  = "content"
)

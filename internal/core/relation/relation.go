// Copyright (c) 2026 Kurpejovica Enciklopedija. All rights reserved.
// Author: huzeir2k@gmail.com

/*
Package relation implements the family relationship graph.

It stores typed, directionally asserted edges between two members and turns a
member's flat edge list into the classified buckets a profile page renders
(parents, spouse, children, siblings, other relatives).

Storage model:

  - One row per asserted edge: "person A is <type> of person B".
  - Symmetric types (spouse, sibling) and directional inverses (parent/child,
    grandparent/grandchild, ...) are NOT expanded into a second row.
  - Duplicate (A, B, type) rows are permitted.

The classifier consumes edges as stored; see [Classify] for the exact
bucketing rules.
*/
package relation

import "time"

// # Relationship Types

// Type is the closed enumeration of relationship edge types.
type Type string

const (
	TypeParent       Type = "parent"
	TypeChild        Type = "child"
	TypeSpouse       Type = "spouse"
	TypeSibling      Type = "sibling"
	TypeGrandparent  Type = "grandparent"
	TypeGrandchild   Type = "grandchild"
	TypeUncle        Type = "uncle"
	TypeAunt         Type = "aunt"
	TypeCousin       Type = "cousin"
	TypeNephew       Type = "nephew"
	TypeNiece        Type = "niece"
	TypeBrotherInLaw Type = "brother_in_law"
	TypeSisterInLaw  Type = "sister_in_law"
	TypeFatherInLaw  Type = "father_in_law"
	TypeMotherInLaw  Type = "mother_in_law"

	// TypeOther is the open bucket for relationships outside the fixed set.
	TypeOther Type = "other"
)

// Types lists every recognised relationship type, in declaration order.
var Types = []Type{
	TypeParent, TypeChild, TypeSpouse, TypeSibling,
	TypeGrandparent, TypeGrandchild, TypeUncle, TypeAunt,
	TypeCousin, TypeNephew, TypeNiece,
	TypeBrotherInLaw, TypeSisterInLaw, TypeFatherInLaw, TypeMotherInLaw,
	TypeOther,
}

// IsValid reports whether t is a recognised [Type] value.
func (t Type) IsValid() bool {
	switch t {
	case
		TypeParent, TypeChild, TypeSpouse, TypeSibling,
		TypeGrandparent, TypeGrandchild, TypeUncle, TypeAunt,
		TypeCousin, TypeNephew, TypeNiece,
		TypeBrotherInLaw, TypeSisterInLaw, TypeFatherInLaw, TypeMotherInLaw,
		TypeOther:
		return true
	}
	return false
}

// # Core Entities

// Edge is a single stored relationship row, asserted from the creator's
// perspective: PersonA is [Type] of PersonB.
//
// PersonA and PersonB are member UUIDs and must differ; this invariant is
// enforced at creation time, never assumed to hold retroactively.
type Edge struct {
	ID        string    `json:"id"`
	PersonA   string    `json:"person_a"`
	PersonB   string    `json:"person_b"`
	Type      Type      `json:"type"`
	CreatedBy string    `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
}

// Relative is the minimal projection of the member on the other end of an
// edge, as needed by the family tree view.
type Relative struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	BirthYear *int   `json:"birth_year,omitempty"`
	DeathYear *int   `json:"death_year,omitempty"`

	// Type is the asserted edge type, preserved even when the entry lands in
	// the generic relatives bucket.
	Type   Type   `json:"type"`
	EdgeID string `json:"edge_id"`
}

// TouchingEdge pairs a stored edge with the projection of the endpoint other
// than the queried member. It is the unit the classifier consumes.
type TouchingEdge struct {
	Edge
	Other Relative
}

// FamilyTree groups a member's classified relatives into display buckets.
//
// All slices are non-nil so an empty tree serialises as empty arrays rather
// than nulls. Spouse is a single slot; when multiple spouse edges exist the
// last stored one wins.
type FamilyTree struct {
	Parents   []Relative `json:"parents"`
	Spouse    *Relative  `json:"spouse"`
	Children  []Relative `json:"children"`
	Siblings  []Relative `json:"siblings"`
	Relatives []Relative `json:"relatives"`
}

// # Field Identifiers

// Global field names for validation in the relationship domain.
const (
	FieldPersonA = "person_a"
	FieldPersonB = "person_b"
	FieldType    = "type"
)

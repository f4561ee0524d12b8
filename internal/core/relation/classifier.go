// Copyright (c) 2026 Kurpejovica Enciklopedija. All rights reserved.
// Author: huzeir2k@gmail.com

package relation

// Classify turns a member's flat edge list into family tree buckets.
//
// # Bucketing Rules
//
// Edges are stored once, asserted from the creator's perspective, and the
// classifier deliberately does NOT synthesise inverse relations:
//
//   - memberID == PersonA: the stored type is used verbatim as the bucket
//     key. parent goes to Parents, spouse fills the single Spouse slot
//     (last write wins, no conflict error), child goes to Children, sibling
//     goes to Siblings, and every remaining type lands in Relatives with its
//     detailed type preserved on the entry.
//   - memberID == PersonB: the other endpoint always lands in Relatives,
//     regardless of type. "B is the child of A" is not derived from a stored
//     "A is the parent of B" row.
//
// This asserted-direction-only policy is a documented compatibility
// limitation, not an oversight; changing it to symmetric classification is a
// product decision (see DESIGN.md).
//
// # Edge Cases
//
// An empty edge list yields all-empty buckets, never an error. Classify does
// not check that memberID exists; callers resolve the member first.
func Classify(memberID string, edges []*TouchingEdge) *FamilyTree {
	tree := &FamilyTree{
		Parents:   []Relative{},
		Children:  []Relative{},
		Siblings:  []Relative{},
		Relatives: []Relative{},
	}

	for _, edge := range edges {
		entry := edge.Other
		entry.Type = edge.Type
		entry.EdgeID = edge.ID

		// Asserted direction only: the detailed bucketing applies exclusively
		// when the queried member is the asserting endpoint.
		if edge.PersonA != memberID {
			tree.Relatives = append(tree.Relatives, entry)
			continue
		}

		switch edge.Type {
		case TypeParent:
			tree.Parents = append(tree.Parents, entry)
		case TypeSpouse:
			spouse := entry
			tree.Spouse = &spouse
		case TypeChild:
			tree.Children = append(tree.Children, entry)
		case TypeSibling:
			tree.Siblings = append(tree.Siblings, entry)
		default:
			tree.Relatives = append(tree.Relatives, entry)
		}
	}

	return tree
}

// Copyright (c) 2026 Kurpejovica Enciklopedija. All rights reserved.
// Author: huzeir2k@gmail.com

package relation_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/huzeir2k/kurpejovica-enciklopedija-sub000/internal/core/relation"
)

const (
	memberVuk    = "11111111-1111-1111-1111-111111111111"
	memberMilica = "22222222-2222-2222-2222-222222222222"
	memberStefan = "33333333-3333-3333-3333-333333333333"
)

func touching(edgeID, personA, personB string, relType relation.Type, otherID, otherName string) *relation.TouchingEdge {
	return &relation.TouchingEdge{
		Edge: relation.Edge{
			ID:      edgeID,
			PersonA: personA,
			PersonB: personB,
			Type:    relType,
		},
		Other: relation.Relative{ID: otherID, Name: otherName},
	}
}

/*
TestClassify_Empty tests that a member with no edges yields all-empty buckets.
*/
func TestClassify_Empty(t *testing.T) {
	tree := relation.Classify(memberVuk, nil)

	require.NotNil(t, tree)
	assert.Empty(t, tree.Parents)
	assert.Nil(t, tree.Spouse)
	assert.Empty(t, tree.Children)
	assert.Empty(t, tree.Siblings)
	assert.Empty(t, tree.Relatives)

	// Slices must be non-nil so JSON renders [] rather than null.
	assert.NotNil(t, tree.Parents)
	assert.NotNil(t, tree.Children)
	assert.NotNil(t, tree.Siblings)
	assert.NotNil(t, tree.Relatives)
}

/*
TestClassify_AssertedDirection tests that detailed buckets apply only when the
queried member is the asserting endpoint (PersonA).
*/
func TestClassify_AssertedDirection(t *testing.T) {
	edges := []*relation.TouchingEdge{
		// Vuk asserts: Vuk is spouse of Milica.
		touching("e1", memberVuk, memberMilica, relation.TypeSpouse, memberMilica, "Milica"),
	}

	// From Vuk's side the edge fills the spouse slot.
	vukTree := relation.Classify(memberVuk, edges)
	require.NotNil(t, vukTree.Spouse)
	assert.Equal(t, memberMilica, vukTree.Spouse.ID)
	assert.Empty(t, vukTree.Relatives)

	// From Milica's side the same row lands in relatives; no inverse is
	// synthesised.
	milicaEdges := []*relation.TouchingEdge{
		touching("e1", memberVuk, memberMilica, relation.TypeSpouse, memberVuk, "Vuk"),
	}
	milicaTree := relation.Classify(memberMilica, milicaEdges)
	assert.Nil(t, milicaTree.Spouse)
	require.Len(t, milicaTree.Relatives, 1)
	assert.Equal(t, memberVuk, milicaTree.Relatives[0].ID)
	assert.Equal(t, relation.TypeSpouse, milicaTree.Relatives[0].Type)
}

/*
TestClassify_SpouseLastWriteWins tests that multiple spouse edges collapse to
the last stored one without error.
*/
func TestClassify_SpouseLastWriteWins(t *testing.T) {
	edges := []*relation.TouchingEdge{
		touching("e1", memberVuk, memberMilica, relation.TypeSpouse, memberMilica, "Milica"),
		touching("e2", memberVuk, memberStefan, relation.TypeSpouse, memberStefan, "Stefan"),
	}

	tree := relation.Classify(memberVuk, edges)

	require.NotNil(t, tree.Spouse)
	assert.Equal(t, memberStefan, tree.Spouse.ID)
	assert.Equal(t, "e2", tree.Spouse.EdgeID)
	assert.Empty(t, tree.Relatives)
}

/*
TestClassify_Buckets tests the verbatim type-to-bucket mapping for the
asserting endpoint.
*/
func TestClassify_Buckets(t *testing.T) {
	edges := []*relation.TouchingEdge{
		touching("e1", memberVuk, memberMilica, relation.TypeParent, memberMilica, "Milica"),
		touching("e2", memberVuk, memberStefan, relation.TypeChild, memberStefan, "Stefan"),
		touching("e3", memberVuk, memberMilica, relation.TypeSibling, memberMilica, "Milica"),
		touching("e4", memberVuk, memberStefan, relation.TypeCousin, memberStefan, "Stefan"),
		touching("e5", memberVuk, memberMilica, relation.TypeGrandparent, memberMilica, "Milica"),
	}

	tree := relation.Classify(memberVuk, edges)

	require.Len(t, tree.Parents, 1)
	assert.Equal(t, "e1", tree.Parents[0].EdgeID)

	require.Len(t, tree.Children, 1)
	assert.Equal(t, "e2", tree.Children[0].EdgeID)

	require.Len(t, tree.Siblings, 1)
	assert.Equal(t, "e3", tree.Siblings[0].EdgeID)

	// Types outside the four display buckets keep their detail in relatives.
	require.Len(t, tree.Relatives, 2)
	assert.Equal(t, relation.TypeCousin, tree.Relatives[0].Type)
	assert.Equal(t, relation.TypeGrandparent, tree.Relatives[1].Type)
}

/*
TestType_IsValid tests membership in the closed relationship type set.
*/
func TestType_IsValid(t *testing.T) {
	for _, relType := range relation.Types {
		assert.True(t, relType.IsValid(), string(relType))
	}

	assert.False(t, relation.Type("stepmother").IsValid())
	assert.False(t, relation.Type("").IsValid())
	assert.False(t, relation.Type("Parent").IsValid())
}

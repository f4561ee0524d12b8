package schema

// CoreMemberRelationTable represents the 'core.memberrelation' table
type CoreMemberRelationTable struct {
	Table        string
	ID           string
	PersonA      string
	PersonB      string
	RelationType string
	CreatedBy    string
	CreatedAt    string
}

// CoreMemberRelation is the schema definition for core.memberrelation
var CoreMemberRelation = CoreMemberRelationTable{
	Table:        "core.memberrelation",
	ID:           "id",
	PersonA:      "persona",
	PersonB:      "personb",
	RelationType: "relationtype",
	CreatedBy:    "createdby",
	CreatedAt:    "createdat",
}

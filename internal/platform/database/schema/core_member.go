package schema

// CoreMemberTable represents the 'core.member' table
type CoreMemberTable struct {
	Table      string
	ID         string
	Name       string
	Slug       string
	BirthYear  string
	DeathYear  string
	BirthPlace string
	Occupation string
	Bio        string
	CreatedBy  string
	CreatedAt  string
	UpdatedAt  string
}

// CoreMember is the schema definition for core.member
var CoreMember = CoreMemberTable{
	Table:      "core.member",
	ID:         "id",
	Name:       "name",
	Slug:       "slug",
	BirthYear:  "birthyear",
	DeathYear:  "deathyear",
	BirthPlace: "birthplace",
	Occupation: "occupation",
	Bio:        "bio",
	CreatedBy:  "createdby",
	CreatedAt:  "createdat",
	UpdatedAt:  "updatedat",
}

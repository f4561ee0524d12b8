package schema

// CoreMemberImageTable represents the 'core.memberimage' table
type CoreMemberImageTable struct {
	Table      string
	ID         string
	MemberID   string
	ObjectKey  string
	Caption    string
	IsPrimary  string
	UploadedBy string
	CreatedAt  string
}

// CoreMemberImage is the schema definition for core.memberimage
var CoreMemberImage = CoreMemberImageTable{
	Table:      "core.memberimage",
	ID:         "id",
	MemberID:   "memberid",
	ObjectKey:  "objectkey",
	Caption:    "caption",
	IsPrimary:  "isprimary",
	UploadedBy: "uploadedby",
	CreatedAt:  "createdat",
}

package schema

// CoreArticleTable represents the 'core.article' table
type CoreArticleTable struct {
	Table        string
	ID           string
	MemberID     string
	LanguageCode string
	Content      string
	CreatedBy    string
	UpdatedBy    string
	CreatedAt    string
	UpdatedAt    string
}

// CoreArticle is the schema definition for core.article
var CoreArticle = CoreArticleTable{
	Table:        "core.article",
	ID:           "id",
	MemberID:     "memberid",
	LanguageCode: "languagecode",
	Content:      "content",
	CreatedBy:    "createdby",
	UpdatedBy:    "updatedby",
	CreatedAt:    "createdat",
	UpdatedAt:    "updatedat",
}

package schema

// CoreArticleTranslationTable represents the 'core.articletranslation' table
type CoreArticleTranslationTable struct {
	Table        string
	ID           string
	ArticleID    string
	LanguageCode string
	Content      string
	IsAuto       string
	CreatedBy    string
	CreatedAt    string
	UpdatedAt    string
}

// CoreArticleTranslation is the schema definition for core.articletranslation
var CoreArticleTranslation = CoreArticleTranslationTable{
	Table:        "core.articletranslation",
	ID:           "id",
	ArticleID:    "articleid",
	LanguageCode: "languagecode",
	Content:      "content",
	IsAuto:       "isauto",
	CreatedBy:    "createdby",
	CreatedAt:    "createdat",
	UpdatedAt:    "updatedat",
}

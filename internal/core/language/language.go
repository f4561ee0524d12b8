// Copyright (c) 2026 Kurpejovica Enciklopedija. All rights reserved.
// Author: huzeir2k@gmail.com

/*
Package language defines the closed set of content languages.

Article and translation rows are tagged with one of exactly nine codes; any
other code is rejected with UNSUPPORTED_LANGUAGE before it ever reaches the
content store or resolver. The database additionally carries a seeded
reference table (code, English name, native name) for the UI listing endpoint.
*/
package language

// # Supported Codes

// Code is an ISO-639-1 content language code from the closed supported set.
type Code string

const (
	Serbian  Code = "sr"
	English  Code = "en"
	French   Code = "fr"
	German   Code = "de"
	Swedish  Code = "sv"
	Italian  Code = "it"
	Spanish  Code = "es"
	Albanian Code = "sq"
	Turkish  Code = "tr"
)

// Supported lists every accepted content language, in seed order.
var Supported = []Code{
	Serbian, English, French, German, Swedish, Italian, Spanish, Albanian, Turkish,
}

// IsSupported reports whether c belongs to the closed supported set.
func (c Code) IsSupported() bool {
	switch c {
	case Serbian, English, French, German, Swedish, Italian, Spanish, Albanian, Turkish:
		return true
	}
	return false
}

// # Entities

// Language is the seeded reference row behind a supported [Code].
type Language struct {
	ID         int    `json:"id"`
	Code       Code   `json:"code"`
	Name       string `json:"name"`
	NativeName string `json:"native_name"`
}

// Copyright (c) 2026 Kurpejovica Enciklopedija. All rights reserved.
// Author: huzeir2k@gmail.com

package language_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/huzeir2k/kurpejovica-enciklopedija-sub000/internal/core/language"
)

/*
TestCode_IsSupported checks membership in the closed language set.
*/
func TestCode_IsSupported(t *testing.T) {
	tests := []struct {
		name      string
		code      language.Code
		supported bool
	}{
		{"serbian", language.Serbian, true},
		{"english", language.English, true},
		{"turkish", language.Turkish, true},
		{"montenegrin_not_seeded", "me", false},
		{"empty", "", false},
		{"uppercase_variant", "EN", false},
		{"three_letter", "eng", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.supported, tt.code.IsSupported())
		})
	}
}

/*
TestSupported_Complete ensures the seed list and the membership check agree.
*/
func TestSupported_Complete(t *testing.T) {
	assert.Len(t, language.Supported, 9)
	for _, code := range language.Supported {
		assert.True(t, code.IsSupported(), "code %q must be supported", code)
	}
}

// Copyright (c) 2026 Kurpejovica Enciklopedija. All rights reserved.
// Author: huzeir2k@gmail.com

package language

import (
	"context"
	"log/slog"

	"github.com/huzeir2k/kurpejovica-enciklopedija-sub000/internal/platform/apperr"
)

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

func (service *Service) ListLanguages(context context.Context) ([]*Language, error) {
	return service.repo.ListLanguages(context)
}

/*
GetLanguage returns the reference row for a supported language code.

Parameters:
  - code: an ISO-639-1 code; must belong to the closed supported set.

Returns:
  - an UNSUPPORTED_LANGUAGE [apperr.AppError] when the code is outside the
    supported set, before any database access.
*/
func (service *Service) GetLanguage(context context.Context, code Code) (*Language, error) {
	if !code.IsSupported() {
		return nil, apperr.UnsupportedLanguage(string(code))
	}
	return service.repo.GetLanguageByCode(context, code)
}

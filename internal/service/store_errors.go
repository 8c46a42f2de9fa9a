package service

import (
	"database/sql"
	"errors"
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/noah-isme/agentes-admin/internal/repository"
	"github.com/noah-isme/agentes-admin/pkg/database"
	appErrors "github.com/noah-isme/agentes-admin/pkg/errors"
)

// storeError translates a repository failure into a typed error. notFound is
// used for sql.ErrNoRows; message describes anything else.
func storeError(err error, notFound, message string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, sql.ErrNoRows) && notFound != "":
		return appErrors.Clone(appErrors.ErrNotFound, notFound)
	case errors.Is(err, repository.ErrDuplicate):
		return appErrors.CloneWrap(appErrors.ErrConflict, err, "")
	case errors.Is(err, repository.ErrReference):
		return appErrors.CloneWrap(appErrors.ErrValidation, err, "referenced record does not exist")
	case database.IsUnavailable(err):
		return appErrors.CloneWrap(appErrors.ErrUnavailable, err, "")
	default:
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, message)
	}
}

func validationError(err error, message string) error {
	return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, message)
}

// cleanText strips markup from free text. Entities are decoded again because
// templates escape on output.
func cleanText(policy *bluemonday.Policy, raw string) string {
	return strings.TrimSpace(html.UnescapeString(policy.Sanitize(raw)))
}

// Package crud serves list/create/update/delete routes for any model
// described by a Resource.
package crud

import (
	"context"
	"errors"
	"sort"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"fire_tracker/internal/search"
)

// Resource describes one managed entity.
type Resource[T any] struct {
	Slug        string // route name prefix: "<slug>-list", "<slug>-add", ...
	Path        string // collection path, e.g. "/locations"
	Table       string
	VerboseName string
	ContextName string // key the list is also exposed under, e.g. "locations"

	Search  search.Spec
	Preload []string
	Order   string

	// Label is the identifying field used in notifications.
	Label func(*T) string

	// Validate runs after binding; non-empty FieldErrors abort the write.
	Validate func(ctx context.Context, db *gorm.DB, rec *T) (FieldErrors, error)

	// BeforeDelete runs inside the delete transaction. Returning a
	// ConflictError rejects the delete with 409.
	BeforeDelete func(tx *gorm.DB, rec *T) error

	// Unique maps each uniquely indexed input to the message reported when
	// the database rejects a duplicate that got past Validate.
	Unique map[string]string

	// FormOptions supplies choices and related records for add/edit forms.
	FormOptions func(ctx context.Context, db *gorm.DB) (gin.H, error)
}

func (r *Resource[T]) order() string {
	if r.Order != "" {
		return r.Order
	}
	return r.Table + ".id"
}

func (r *Resource[T]) label(rec *T) string {
	if r.Label == nil {
		return r.VerboseName
	}
	return r.Label(rec)
}

// duplicateErrors attributes a unique violation to the input it names.
// With a single unique input the driver message is not needed.
func (r *Resource[T]) duplicateErrors(err error) FieldErrors {
	if len(r.Unique) == 1 {
		for field, msg := range r.Unique {
			return FieldErrors{field: msg}
		}
	}
	detail := err.Error()
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		detail = pgErr.ConstraintName + " " + pgErr.Detail
	}
	fields := make([]string, 0, len(r.Unique))
	for field := range r.Unique {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	for _, field := range fields {
		if strings.Contains(detail, field) {
			return FieldErrors{field: r.Unique[field]}
		}
	}
	return FieldErrors{NonFieldErrors: r.VerboseName + " with these values already exists."}
}

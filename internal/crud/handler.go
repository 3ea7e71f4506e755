package crud

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"fire_tracker/internal/flash"
	"fire_tracker/internal/models"
	"fire_tracker/internal/observability"
	"fire_tracker/internal/search"
	"fire_tracker/internal/urls"
)

// Deps are shared by every Handler.
type Deps struct {
	DB       *gorm.DB
	Flash    *flash.Store
	Metrics  *observability.Metrics
	URLs     *urls.Registry
	PageSize int
}

type Handler[T any, PT models.Pointer[T]] struct {
	res  Resource[T]
	deps Deps
}

func New[T any, PT models.Pointer[T]](res Resource[T], deps Deps) *Handler[T, PT] {
	if deps.PageSize <= 0 {
		deps.PageSize = 10
	}
	return &Handler[T, PT]{res: res, deps: deps}
}

func (h *Handler[T, PT]) Resource() Resource[T] { return h.res }

// Register mounts the entity routes on r and records their names. write
// guards every route that changes data.
func (h *Handler[T, PT]) Register(r gin.IRouter, write ...gin.HandlerFunc) {
	p := h.res.Path
	name := func(suffix string) string { return h.res.Slug + "-" + suffix }
	guarded := func(hf gin.HandlerFunc) []gin.HandlerFunc {
		return append(append([]gin.HandlerFunc{}, write...), hf)
	}

	r.GET(p, h.List)
	r.GET(p+"/add", h.NewForm)
	r.POST(p+"/add", guarded(h.Create)...)
	r.POST(p, guarded(h.Create)...)
	r.GET(p+"/:id", h.Detail)
	r.GET(p+"/:id/edit", h.EditForm)
	r.POST(p+"/:id/edit", guarded(h.Update)...)
	r.PUT(p+"/:id", guarded(h.Update)...)
	r.GET(p+"/:id/delete", h.ConfirmDelete)
	r.POST(p+"/:id/delete", guarded(h.Delete)...)
	r.DELETE(p+"/:id", guarded(h.Delete)...)

	if h.deps.URLs != nil {
		h.deps.URLs.Add(name("list"), p)
		h.deps.URLs.Add(name("add"), p+"/add")
		h.deps.URLs.Add(name("detail"), p+"/:id")
		h.deps.URLs.Add(name("update"), p+"/:id/edit")
		h.deps.URLs.Add(name("delete"), p+"/:id/delete")
	}
}

func (h *Handler[T, PT]) log(c *gin.Context) *logrus.Entry {
	return logrus.WithFields(logrus.Fields{
		"entity":     h.res.Slug,
		"request_id": c.GetString("request_id"),
	})
}

func (h *Handler[T, PT]) successURL() string {
	return h.res.Path
}

// List serves one page of records, optionally narrowed by ?q=.
func (h *Handler[T, PT]) List(c *gin.Context) {
	ctx := c.Request.Context()
	q := c.Query("q")

	base := func() *gorm.DB {
		return search.Apply(h.deps.DB.WithContext(ctx).Model(new(T)), h.res.Search, q)
	}

	var total int64
	if err := base().Count(&total).Error; err != nil {
		h.log(c).WithError(err).Error("List: count failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not list " + h.res.ContextName})
		return
	}

	page, err := Paginate(c.Query("page"), total, h.deps.PageSize)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Invalid page."})
		return
	}

	items := make([]T, 0, page.PerPage)
	query := base().Select(h.res.Table + ".*")
	for _, p := range h.res.Preload {
		query = query.Preload(p)
	}
	if err := query.Order(h.res.order()).Limit(page.PerPage).Offset(page.Offset()).Find(&items).Error; err != nil {
		h.log(c).WithError(err).Error("List: query failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not list " + h.res.ContextName})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"object_list":     items,
		h.res.ContextName: items,
		"page_obj":        page,
		"is_paginated":    page.NumPages > 1,
		"q":               q,
		"messages":        h.popMessages(c),
	})
}

func (h *Handler[T, PT]) Detail(c *gin.Context) {
	rec, ok := h.load(c, true)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"object": rec})
}

func (h *Handler[T, PT]) NewForm(c *gin.Context) {
	opts, ok := h.formOptions(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"title":       "Add " + h.res.VerboseName,
		"form":        opts,
		"success_url": h.successURL(),
	})
}

func (h *Handler[T, PT]) EditForm(c *gin.Context) {
	rec, ok := h.load(c, true)
	if !ok {
		return
	}
	opts, ok := h.formOptions(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"title":       fmt.Sprintf("Edit %s #%d", h.res.VerboseName, PT(rec).GetID()),
		"object":      rec,
		"form":        opts,
		"success_url": h.successURL(),
	})
}

// Create binds a JSON or form body, validates it and inserts the record.
func (h *Handler[T, PT]) Create(c *gin.Context) {
	var rec T
	if err := c.ShouldBind(&rec); err != nil {
		h.invalid(c, bindErrors(err))
		return
	}
	PT(&rec).SetID(0)

	if !h.validate(c, &rec) {
		return
	}

	if err := h.deps.DB.WithContext(c.Request.Context()).Omit(clause.Associations).Create(&rec).Error; err != nil {
		h.writeFailed(c, "Create", err)
		return
	}

	h.recordWrite("create")
	msg := createdMessage(h.res.VerboseName, h.res.label(&rec))
	h.notify(c, msg)

	c.JSON(http.StatusCreated, gin.H{
		"object":      h.reload(c, &rec),
		"message":     msg,
		"success_url": h.successURL(),
	})
}

// Update replaces every editable field of an existing record with the body.
// Fields left out of the body are reset to their zero value.
func (h *Handler[T, PT]) Update(c *gin.Context) {
	current, ok := h.load(c, false)
	if !ok {
		return
	}
	id := PT(current).GetID()

	rec := new(T)
	if err := c.ShouldBind(rec); err != nil {
		h.invalid(c, bindErrors(err))
		return
	}
	PT(rec).SetID(id)

	if !h.validate(c, rec) {
		return
	}

	res := h.deps.DB.WithContext(c.Request.Context()).
		Model(rec).
		Select("*").
		Omit(clause.Associations, "id", "created_at").
		Updates(rec)
	if res.Error != nil {
		h.writeFailed(c, "Update", res.Error)
		return
	}
	// deleted since load
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": h.res.VerboseName + " not found"})
		return
	}

	h.recordWrite("update")
	msg := updatedMessage(h.res.VerboseName, h.res.label(rec))
	h.notify(c, msg)

	c.JSON(http.StatusOK, gin.H{
		"object":      h.reload(c, rec),
		"message":     msg,
		"success_url": h.successURL(),
	})
}

func (h *Handler[T, PT]) ConfirmDelete(c *gin.Context) {
	rec, ok := h.load(c, true)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"title":       fmt.Sprintf("Delete %s #%d", h.res.VerboseName, PT(rec).GetID()),
		"object":      rec,
		"success_url": h.successURL(),
	})
}

// Delete removes the record after the resource's delete policy allows it.
func (h *Handler[T, PT]) Delete(c *gin.Context) {
	rec, ok := h.load(c, false)
	if !ok {
		return
	}

	err := h.deps.DB.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		if h.res.BeforeDelete != nil {
			if err := h.res.BeforeDelete(tx, rec); err != nil {
				return err
			}
		}
		return tx.Delete(rec).Error
	})

	var conflict *ConflictError
	switch {
	case errors.As(err, &conflict):
		c.JSON(http.StatusConflict, gin.H{"error": conflict.Message})
		return
	case err != nil && IsForeignKeyViolation(err):
		c.JSON(http.StatusConflict, gin.H{"error": h.res.VerboseName + " is still referenced by other records."})
		return
	case err != nil:
		h.log(c).WithError(err).Error("Delete: failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not delete " + h.res.VerboseName})
		return
	}

	h.recordWrite("delete")
	msg := deletedMessage(h.res.label(rec))
	h.notify(c, msg)

	c.JSON(http.StatusOK, gin.H{
		"message":     msg,
		"success_url": h.successURL(),
	})
}

// load fetches the record named by :id, answering 404 or 500 itself.
func (h *Handler[T, PT]) load(c *gin.Context, preload bool) (*T, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": h.res.VerboseName + " not found"})
		return nil, false
	}

	query := h.deps.DB.WithContext(c.Request.Context())
	if preload {
		for _, p := range h.res.Preload {
			query = query.Preload(p)
		}
	}

	rec := new(T)
	if err := query.First(rec, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": h.res.VerboseName + " not found"})
		} else {
			h.log(c).WithError(err).Error("load: database error")
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return nil, false
	}
	return rec, true
}

// reload returns the stored rec with its associations for the response
// body; rec itself is returned if that fails since the write already
// succeeded.
func (h *Handler[T, PT]) reload(c *gin.Context, rec *T) *T {
	query := h.deps.DB.WithContext(c.Request.Context())
	for _, p := range h.res.Preload {
		query = query.Preload(p)
	}
	out := new(T)
	if err := query.First(out, PT(rec).GetID()).Error; err != nil {
		h.log(c).WithError(err).Warn("reload after write failed")
		return rec
	}
	return out
}

func (h *Handler[T, PT]) validate(c *gin.Context, rec *T) bool {
	if h.res.Validate == nil {
		return true
	}
	errs, err := h.res.Validate(c.Request.Context(), h.deps.DB, rec)
	if err != nil {
		h.log(c).WithError(err).Error("validate: database error")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not validate " + h.res.VerboseName})
		return false
	}
	if len(errs) > 0 {
		h.invalid(c, errs)
		return false
	}
	return true
}

func (h *Handler[T, PT]) invalid(c *gin.Context, errs FieldErrors) {
	h.log(c).WithField("errors", errs).Debug("form rejected")
	c.JSON(http.StatusBadRequest, gin.H{"errors": errs})
}

func (h *Handler[T, PT]) writeFailed(c *gin.Context, op string, err error) {
	switch {
	case IsDuplicate(err):
		h.invalid(c, h.res.duplicateErrors(err))
	case IsForeignKeyViolation(err):
		h.invalid(c, FieldErrors{NonFieldErrors: "Select a valid choice for the related record."})
	default:
		h.log(c).WithError(err).Errorf("%s: database write failed", op)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not save " + h.res.VerboseName})
	}
}

func (h *Handler[T, PT]) formOptions(c *gin.Context) (gin.H, bool) {
	if h.res.FormOptions == nil {
		return gin.H{}, true
	}
	opts, err := h.res.FormOptions(c.Request.Context(), h.deps.DB)
	if err != nil {
		h.log(c).WithError(err).Error("form options failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not load form"})
		return nil, false
	}
	return opts, true
}

func (h *Handler[T, PT]) recordWrite(op string) {
	if h.deps.Metrics != nil {
		h.deps.Metrics.RecordWrites.WithLabelValues(h.res.Slug, op).Inc()
	}
}

func (h *Handler[T, PT]) notify(c *gin.Context, msg string) {
	if h.deps.Flash != nil {
		h.deps.Flash.Add(c, flash.LevelSuccess, msg)
	}
}

func (h *Handler[T, PT]) popMessages(c *gin.Context) []flash.Message {
	if h.deps.Flash == nil {
		return nil
	}
	msgs := h.deps.Flash.Pop(c)
	if msgs == nil {
		msgs = []flash.Message{}
	}
	return msgs
}

package handler

import (
	"errors"
	"net/http"
	"strconv"

	"catalog-service/internal/forms"
	"catalog-service/internal/model"
	"catalog-service/internal/render"
	"catalog-service/internal/repository"
	"catalog-service/pkg/logger"
	"catalog-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// BlogStore is the entity-store surface the blog workflows consume
type BlogStore interface {
	ListPublished() ([]model.Blog, error)
	GetBlog(id uint) (*model.Blog, error)
	GetAndCountView(id uint) (*model.Blog, error)
	CreateBlog(entry *model.Blog) error
	UpdateBlog(entry *model.Blog) error
	DeleteBlog(id uint) error
	TogglePublished(id uint) error
}

type BlogHandler struct {
	store    BlogStore
	mediaDir string
}

func NewBlogHandler(store BlogStore, mediaDir string) *BlogHandler {
	return &BlogHandler{store: store, mediaDir: mediaDir}
}

// List renders published entries only, ordered by title
func (h *BlogHandler) List(c echo.Context) error {
	log := logger.FromContext(c)

	entries, err := h.store.ListPublished()
	if err != nil {
		log.Error("Failed to list blog entries", zap.Error(err))
		return c.Render(http.StatusInternalServerError, "error.html", echo.Map{
			"Message": "Failed to retrieve blog entries",
		})
	}

	prometheus.RecordBlogOperation("list")
	return c.Render(http.StatusOK, "blog_list.html", echo.Map{
		"Entries": entries,
	})
}

// Detail renders a single entry. Every read counts a view; the increment
// happens atomically in the store before the row is fetched.
func (h *BlogHandler) Detail(c echo.Context) error {
	log := logger.FromContext(c)

	id, err := idParam(c)
	if err != nil {
		return notFound(c, "Blog entry not found")
	}

	entry, err := h.store.GetAndCountView(id)
	if err != nil {
		if errors.Is(err, repository.ErrBlogNotFound) {
			log.Warn("Blog entry not found", zap.Uint("blog_id", id))
			return notFound(c, "Blog entry not found")
		}
		log.Error("Failed to get blog entry", zap.Uint("blog_id", id), zap.Error(err))
		return c.Render(http.StatusInternalServerError, "error.html", echo.Map{
			"Message": "Failed to retrieve blog entry",
		})
	}

	prometheus.RecordBlogOperation("detail")
	prometheus.BlogViewsCounter.WithLabelValues(strconv.FormatUint(uint64(id), 10)).Inc()
	return c.Render(http.StatusOK, "blog_detail.html", echo.Map{
		"Entry": entry,
	})
}

// CreateForm renders an empty blog form
func (h *BlogHandler) CreateForm(c echo.Context) error {
	return c.Render(http.StatusOK, "blog_form.html", echo.Map{
		"Errors": forms.Errors{},
	})
}

// Create persists a new entry. The slug is derived from the title before
// the write, so the stored entry never lacks one.
func (h *BlogHandler) Create(c echo.Context) error {
	log := logger.FromContext(c)

	values, err := c.FormParams()
	if err != nil {
		log.Error("Invalid form data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid form data"})
	}

	form := forms.BindBlogForm(values)
	errs := forms.Errors{}
	form.Validate(errs)

	photo, err := render.SavePhoto(c, "photo", h.mediaDir)
	if err != nil {
		log.Error("Failed to store uploaded photo", zap.Error(err))
		errs.Add("photo", "could not store the uploaded image")
	}
	if photo != nil {
		form.Photo = photo
	}

	if errs.Any() {
		return c.Render(http.StatusOK, "blog_form.html", echo.Map{
			"Form":   form,
			"Errors": errs,
		})
	}

	entry := &model.Blog{IsPublished: true}
	form.Apply(entry)

	if err := h.store.CreateBlog(entry); err != nil {
		log.Error("Failed to create blog entry", zap.Error(err))
		return c.Render(http.StatusInternalServerError, "error.html", echo.Map{
			"Message": "Failed to create blog entry",
		})
	}

	prometheus.RecordBlogOperation("create")
	log.Info("Blog entry created",
		zap.Uint("blog_id", entry.ID),
		zap.String("title", entry.Title),
		zap.Stringp("slug", entry.Slug))
	return c.Redirect(http.StatusSeeOther, "/blog/")
}

// UpdateForm renders the edit form for an entry
func (h *BlogHandler) UpdateForm(c echo.Context) error {
	log := logger.FromContext(c)

	id, err := idParam(c)
	if err != nil {
		return notFound(c, "Blog entry not found")
	}

	entry, err := h.store.GetBlog(id)
	if err != nil {
		if errors.Is(err, repository.ErrBlogNotFound) {
			return notFound(c, "Blog entry not found")
		}
		log.Error("Failed to get blog entry", zap.Uint("blog_id", id), zap.Error(err))
		return c.Render(http.StatusInternalServerError, "error.html", echo.Map{
			"Message": "Failed to retrieve blog entry",
		})
	}

	return c.Render(http.StatusOK, "blog_form.html", echo.Map{
		"Entry":  entry,
		"Errors": forms.Errors{},
	})
}

// Update persists changes to an entry; the slug is recomputed from the
// submitted title and written together with the other fields in one write.
func (h *BlogHandler) Update(c echo.Context) error {
	log := logger.FromContext(c)

	id, err := idParam(c)
	if err != nil {
		return notFound(c, "Blog entry not found")
	}

	entry, err := h.store.GetBlog(id)
	if err != nil {
		if errors.Is(err, repository.ErrBlogNotFound) {
			log.Warn("Blog entry not found for update", zap.Uint("blog_id", id))
			return notFound(c, "Blog entry not found")
		}
		log.Error("Failed to get blog entry", zap.Uint("blog_id", id), zap.Error(err))
		return c.Render(http.StatusInternalServerError, "error.html", echo.Map{
			"Message": "Failed to retrieve blog entry",
		})
	}

	values, err := c.FormParams()
	if err != nil {
		log.Error("Invalid form data", zap.Uint("blog_id", id), zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid form data"})
	}

	form := forms.BindBlogForm(values)
	errs := forms.Errors{}
	form.Validate(errs)

	photo, err := render.SavePhoto(c, "photo", h.mediaDir)
	if err != nil {
		log.Error("Failed to store uploaded photo", zap.Error(err))
		errs.Add("photo", "could not store the uploaded image")
	}
	if photo != nil {
		form.Photo = photo
	}

	if errs.Any() {
		return c.Render(http.StatusOK, "blog_form.html", echo.Map{
			"Entry":  entry,
			"Form":   form,
			"Errors": errs,
		})
	}

	form.Apply(entry)

	if err := h.store.UpdateBlog(entry); err != nil {
		log.Error("Failed to update blog entry", zap.Uint("blog_id", id), zap.Error(err))
		return c.Render(http.StatusInternalServerError, "error.html", echo.Map{
			"Message": "Failed to update blog entry",
		})
	}

	prometheus.RecordBlogOperation("update")
	log.Info("Blog entry updated",
		zap.Uint("blog_id", entry.ID),
		zap.String("title", entry.Title),
		zap.Stringp("slug", entry.Slug))
	return c.Redirect(http.StatusSeeOther, "/detail_blog/"+strconv.FormatUint(uint64(entry.ID), 10))
}

// Delete removes an entry and redirects to the list
func (h *BlogHandler) Delete(c echo.Context) error {
	log := logger.FromContext(c)

	id, err := idParam(c)
	if err != nil {
		return notFound(c, "Blog entry not found")
	}

	if err := h.store.DeleteBlog(id); err != nil {
		if errors.Is(err, repository.ErrBlogNotFound) {
			return notFound(c, "Blog entry not found")
		}
		log.Error("Failed to delete blog entry", zap.Uint("blog_id", id), zap.Error(err))
		return c.Render(http.StatusInternalServerError, "error.html", echo.Map{
			"Message": "Failed to delete blog entry",
		})
	}

	prometheus.RecordBlogOperation("delete")
	log.Info("Blog entry deleted", zap.Uint("blog_id", id))
	return c.Redirect(http.StatusSeeOther, "/blog/")
}

// TogglePublish flips the entry's published flag and redirects to the
// list. Toggling twice restores the original value.
func (h *BlogHandler) TogglePublish(c echo.Context) error {
	log := logger.FromContext(c)

	id, err := idParam(c)
	if err != nil {
		return notFound(c, "Blog entry not found")
	}

	if err := h.store.TogglePublished(id); err != nil {
		if errors.Is(err, repository.ErrBlogNotFound) {
			log.Warn("Blog entry not found for toggle", zap.Uint("blog_id", id))
			return notFound(c, "Blog entry not found")
		}
		log.Error("Failed to toggle blog entry", zap.Uint("blog_id", id), zap.Error(err))
		return c.Render(http.StatusInternalServerError, "error.html", echo.Map{
			"Message": "Failed to toggle publication",
		})
	}

	prometheus.RecordBlogOperation("toggle")
	log.Info("Blog publication toggled", zap.Uint("blog_id", id))
	return c.Redirect(http.StatusSeeOther, "/blog/")
}

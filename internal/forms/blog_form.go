package forms

import (
	"net/url"
	"strings"

	"catalog-service/internal/model"

	"github.com/gosimple/slug"
)

// BlogForm holds a blog create/update submission
type BlogForm struct {
	Title       string
	Description *string
	Photo       *string
}

// BindBlogForm reads blog fields from submitted values
func BindBlogForm(values url.Values) *BlogForm {
	return &BlogForm{
		Title:       strings.TrimSpace(values.Get("title")),
		Description: optionalString(values.Get("description")),
		Photo:       optionalString(values.Get("photo")),
	}
}

// Validate checks entity constraints
func (f *BlogForm) Validate(errs Errors) {
	if f.Title == "" {
		errs.Add("title", "title is required")
	} else if len(f.Title) > 150 {
		errs.Add("title", "title must be at most 150 characters")
	}
}

// Apply copies the submitted fields onto the entry and recomputes the slug
// from the title. The slug is set before the entry is written, so storage
// never holds an entry whose slug lags its title.
func (f *BlogForm) Apply(entry *model.Blog) {
	entry.Title = f.Title
	entry.Description = f.Description
	if f.Photo != nil {
		entry.Photo = f.Photo
	}
	s := Slugify(f.Title)
	entry.Slug = &s
}

// Slugify derives the URL-safe slug for a title: transliterated, lowercase,
// hyphenated ASCII. The same title always yields the same slug.
func Slugify(title string) string {
	return slug.Make(title)
}

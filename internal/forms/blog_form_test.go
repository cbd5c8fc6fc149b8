package forms

import (
	"net/url"
	"testing"

	"catalog-service/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlugify(t *testing.T) {
	testCases := []struct {
		title string
		slug  string
	}{
		{"Hello World", "hello-world"},
		{"Привет Мир", "privet-mir"},
		{"  Spaced   Out  ", "spaced-out"},
		{"Already-Slugged", "already-slugged"},
	}

	for _, tc := range testCases {
		t.Run(tc.title, func(t *testing.T) {
			assert.Equal(t, tc.slug, Slugify(tc.title))
			// deterministic: same title, same slug
			assert.Equal(t, Slugify(tc.title), Slugify(tc.title))
		})
	}
}

func TestBlogFormApplySetsSlugBeforeWrite(t *testing.T) {
	form := BindBlogForm(url.Values{
		"title":       {"Привет Мир"},
		"description": {"первая запись"},
	})
	errs := Errors{}
	form.Validate(errs)
	require.False(t, errs.Any())

	entry := &model.Blog{IsPublished: true}
	form.Apply(entry)

	assert.Equal(t, "Привет Мир", entry.Title)
	require.NotNil(t, entry.Slug)
	assert.Equal(t, "privet-mir", *entry.Slug)
	require.NotNil(t, entry.Description)
}

func TestBlogFormApplyRecomputesSlugOnUpdate(t *testing.T) {
	oldSlug := "old-title"
	entry := &model.Blog{Title: "Old Title", Slug: &oldSlug}

	form := BindBlogForm(url.Values{"title": {"New Title"}})
	errs := Errors{}
	form.Validate(errs)
	require.False(t, errs.Any())

	form.Apply(entry)
	require.NotNil(t, entry.Slug)
	assert.Equal(t, "new-title", *entry.Slug)
}

func TestBlogFormValidation(t *testing.T) {
	long := make([]byte, 151)
	for i := range long {
		long[i] = 'a'
	}

	testCases := []struct {
		name   string
		title  string
		field  string
		hasErr bool
	}{
		{"Missing title", "", "title", true},
		{"Title too long", string(long), "title", true},
		{"Valid title", "ok", "title", false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			form := BindBlogForm(url.Values{"title": {tc.title}})
			errs := Errors{}
			form.Validate(errs)
			assert.Equal(t, tc.hasErr, errs.Has(tc.field))
		})
	}
}

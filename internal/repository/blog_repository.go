package repository

import (
	"errors"
	"time"

	"catalog-service/internal/model"
	"catalog-service/prometheus"

	"gorm.io/gorm"
)

type BlogRepository struct {
	db *gorm.DB
}

func NewBlogRepository(db *gorm.DB) *BlogRepository {
	return &BlogRepository{db: db}
}

// ListPublished returns published entries ordered by title
func (r *BlogRepository) ListPublished() ([]model.Blog, error) {
	defer prometheus.TrackDBOperation("blog_list")(time.Now())

	var entries []model.Blog
	err := r.db.
		Where("is_published = ?", true).
		Order("title").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// GetBlog returns a single entry without touching the view counter
func (r *BlogRepository) GetBlog(id uint) (*model.Blog, error) {
	defer prometheus.TrackDBOperation("blog_get")(time.Now())

	var entry model.Blog
	if err := r.db.First(&entry, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBlogNotFound
		}
		return nil, err
	}
	return &entry, nil
}

// GetAndCountView increments the entry's view counter atomically in the
// store, then returns the fresh row. Concurrent readers never lose
// increments: the counter is bumped with a single relative UPDATE rather
// than read-modify-write.
func (r *BlogRepository) GetAndCountView(id uint) (*model.Blog, error) {
	defer prometheus.TrackDBOperation("blog_view")(time.Now())

	result := r.db.Model(&model.Blog{}).
		Where("id = ?", id).
		UpdateColumn("views_count", gorm.Expr("views_count + ?", 1))
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrBlogNotFound
	}

	var entry model.Blog
	if err := r.db.First(&entry, id).Error; err != nil {
		// the entry can disappear between the two statements
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBlogNotFound
		}
		return nil, err
	}
	return &entry, nil
}

// CreateBlog persists a new entry. The slug must already be set by the
// caller so the entry never exists without one.
func (r *BlogRepository) CreateBlog(entry *model.Blog) error {
	defer prometheus.TrackDBOperation("blog_create")(time.Now())

	return r.db.Create(entry).Error
}

// UpdateBlog persists changes to an existing entry in a single write
func (r *BlogRepository) UpdateBlog(entry *model.Blog) error {
	defer prometheus.TrackDBOperation("blog_update")(time.Now())

	return r.db.Save(entry).Error
}

// DeleteBlog removes an entry
func (r *BlogRepository) DeleteBlog(id uint) error {
	defer prometheus.TrackDBOperation("blog_delete")(time.Now())

	result := r.db.Delete(&model.Blog{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrBlogNotFound
	}
	return nil
}

// TogglePublished flips the published flag with a single relative UPDATE,
// so two racing toggles apply both flips instead of one overwriting the
// other. Each call is still a state transition, not a set-to-value.
func (r *BlogRepository) TogglePublished(id uint) error {
	defer prometheus.TrackDBOperation("blog_toggle")(time.Now())

	result := r.db.Model(&model.Blog{}).
		Where("id = ?", id).
		UpdateColumn("is_published", gorm.Expr("NOT is_published"))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrBlogNotFound
	}
	return nil
}

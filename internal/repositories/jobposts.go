package repositories

import (
	"context"
	"github.com/afrainity/cv-portal/internal/entities"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"time"
)

type JobPosts struct {
	db *gorm.DB
}

func NewJobPostsRepository(db *gorm.DB) *JobPosts {
	return &JobPosts{db: db}
}

// GetActive returns the posts eligible for public listing and application.
func (repo *JobPosts) GetActive(ctx context.Context) ([]entities.JobPost, error) {

	var posts []entities.JobPost
	if err := repo.db.WithContext(ctx).
		Find(&posts, "status = ?", entities.StatusActive).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

func (repo *JobPosts) GetAll(ctx context.Context) ([]entities.JobPost, error) {

	var posts []entities.JobPost
	if err := repo.db.WithContext(ctx).
		Order("created_at desc").
		Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

func (repo *JobPosts) GetByID(ctx context.Context, id string) (*entities.JobPost, error) {

	var post entities.JobPost
	err := repo.db.WithContext(ctx).First(&post, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &post, nil
}

func (repo *JobPosts) Create(ctx context.Context, post entities.JobPost) (string, error) {

	post.ID = uuid.NewString()
	if post.Status == "" {
		post.Status = entities.StatusDraft
	}
	now := time.Now().UTC()
	post.CreatedAt = now
	post.UpdatedAt = now

	if err := repo.db.WithContext(ctx).Create(&post).Error; err != nil {
		return "", err
	}
	return post.ID, nil
}

// Update replaces all editable fields and refreshes the update timestamp.
func (repo *JobPosts) Update(ctx context.Context, post entities.JobPost) error {

	res := repo.db.WithContext(ctx).Model(&entities.JobPost{}).Where("id = ?", post.ID).
		Updates(map[string]any{
			"title":        post.Title,
			"location":     post.Location,
			"department":   post.Department,
			"type":         post.Type,
			"status":       post.Status,
			"description":  post.Description,
			"requirements": post.Requirements,
			"benefits":     post.Benefits,
			"updated_at":   time.Now().UTC(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Remove permanently deletes a post. Removing an id that no longer exists is
// treated as success.
func (repo *JobPosts) Remove(ctx context.Context, id string) error {
	return repo.db.WithContext(ctx).Delete(&entities.JobPost{}, "id = ?", id).Error
}

// Titles returns the id-to-title lookup used to resolve job references on CV
// records.
func (repo *JobPosts) Titles(ctx context.Context) (map[string]string, error) {

	var posts []entities.JobPost
	if err := repo.db.WithContext(ctx).
		Select("id", "title").
		Find(&posts).Error; err != nil {
		return nil, err
	}

	titles := make(map[string]string, len(posts))
	for _, post := range posts {
		titles[post.ID] = post.Title
	}
	return titles, nil
}

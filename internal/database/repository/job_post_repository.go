package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/EgehanKilicarslan/jobmarket/backend-go/internal/database/models"
	"github.com/EgehanKilicarslan/jobmarket/backend-go/internal/validation"
)

// ErrEmptyJobPostFilter is returned when GetJobPost gets neither id nor client id
var ErrEmptyJobPostFilter = errors.New("job post filter needs an id or a client id")

// JobPostContent is the client-supplied part of a job post
type JobPostContent struct {
	Title       string   `json:"title" validate:"required,max=255"`
	Description string   `json:"description" validate:"required,max=5000"`
	Budget      int64    `json:"budget" validate:"min=0"`
	Skills      []string `json:"skills" validate:"unique,dive,min=1,max=30"`
}

// JobPostStamp identifies a stored job post
type JobPostStamp struct {
	ID        uint      `json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// JobPostFilter selects job posts; set fields are combined with AND
type JobPostFilter struct {
	ID       *uint
	ClientID *uint
}

// JobPostRepository defines the interface for job post data operations
type JobPostRepository interface {
	InsertJobPost(ctx context.Context, clientID uint, content JobPostContent) (*JobPostStamp, error)
	GetJobPost(ctx context.Context, filter JobPostFilter) (*models.JobPost, error)
}

type jobPostRepository struct {
	conn      Conn
	validator *validation.Validator
}

// NewJobPostRepository creates a new job post repository instance
func NewJobPostRepository(conn Conn, v *validation.Validator) JobPostRepository {
	return &jobPostRepository{conn: conn, validator: v}
}

func (r *jobPostRepository) InsertJobPost(ctx context.Context, clientID uint, content JobPostContent) (*JobPostStamp, error) {
	if err := r.validator.Struct(content); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidJobPost, err)
	}

	db, release, err := r.conn.Acquire()
	if err != nil {
		return nil, err
	}
	defer release()

	skills := pq.StringArray(content.Skills)
	if skills == nil {
		skills = pq.StringArray{}
	}

	post := &models.JobPost{
		ClientID:    clientID,
		Title:       content.Title,
		Description: content.Description,
		Budget:      content.Budget,
		Skills:      skills,
	}
	if err := db.WithContext(ctx).Create(post).Error; err != nil {
		return nil, fmt.Errorf("insert job post: %w", err)
	}

	return &JobPostStamp{ID: post.ID, CreatedAt: post.CreatedAt, UpdatedAt: post.UpdatedAt}, nil
}

func (r *jobPostRepository) GetJobPost(ctx context.Context, filter JobPostFilter) (*models.JobPost, error) {
	if filter.ID == nil && filter.ClientID == nil {
		return nil, ErrEmptyJobPostFilter
	}

	db, release, err := r.conn.Acquire()
	if err != nil {
		return nil, err
	}
	defer release()

	query := db.WithContext(ctx).Model(&models.JobPost{})
	if filter.ID != nil {
		query = query.Where("id = ?", *filter.ID)
	}
	if filter.ClientID != nil {
		query = query.Where("client_id = ?", *filter.ClientID)
	}

	var post models.JobPost
	if err := query.Order("id").First(&post).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get job post: %w", err)
	}
	return &post, nil
}

package repositories

import (
	"context"
	"github.com/afrainity/cv-portal/internal/entities"
	"github.com/samber/lo"
	"gorm.io/gorm"
	"strconv"
	"strings"
	"time"
)

// cvRecordRow mirrors the schema the workflow-automation service writes: flat
// upper-case columns with the vote stored as free text. Normalization to
// entities.CVAnalysis happens here, once, instead of at every screen.
type cvRecordRow struct {
	ID            string    `gorm:"primaryKey;column:id"`
	Name          string    `gorm:"column:NAME"`
	Email         string    `gorm:"column:EMAIL"`
	Phone         string    `gorm:"column:PHONE"`
	City          string    `gorm:"column:CITY"`
	DateOfBirth   string    `gorm:"column:DATE_OF_BIRTH"`
	Skills        string    `gorm:"column:SKILLS"`
	Educational   string    `gorm:"column:EDUCATIONAL"`
	JobHistory    string    `gorm:"column:JOB_HISTORY"`
	Consideration string    `gorm:"column:CONSIDERATION"`
	Summarize     string    `gorm:"column:SUMMARIZE"`
	Vote          string    `gorm:"column:VOTE"`
	JobApplied    string    `gorm:"column:JOB_APPLIED"`
	Date          time.Time `gorm:"column:DATE"`
}

func (cvRecordRow) TableName() string {
	return "cv_analyses"
}

type CVRecords struct {
	db *gorm.DB
}

func NewCVRecordsRepository(db *gorm.DB) *CVRecords {
	return &CVRecords{db: db}
}

// GetAll returns every analysis record ordered newest first.
func (repo *CVRecords) GetAll(ctx context.Context) ([]entities.CVAnalysis, error) {

	var rows []cvRecordRow
	if err := repo.db.WithContext(ctx).
		Order(`"DATE" desc`).
		Find(&rows).Error; err != nil {
		return nil, err
	}

	return lo.Map(rows, func(row cvRecordRow, _ int) entities.CVAnalysis {
		return row.toEntity()
	}), nil
}

func (row cvRecordRow) toEntity() entities.CVAnalysis {
	return entities.CVAnalysis{
		ID:            row.ID,
		Name:          row.Name,
		Email:         row.Email,
		Phone:         row.Phone,
		City:          row.City,
		DateOfBirth:   row.DateOfBirth,
		Skills:        row.Skills,
		Education:     row.Educational,
		JobHistory:    row.JobHistory,
		Consideration: row.Consideration,
		Summary:       row.Summarize,
		Rating:        parseVote(row.Vote),
		JobApplied:    row.JobApplied,
		RecordedAt:    row.Date,
	}
}

// parseVote tolerates the loose values the analysis service emits ("8",
// " 8 ", ""). Anything unparseable counts as an unrated record.
func parseVote(vote string) int {
	rating, err := strconv.Atoi(strings.TrimSpace(vote))
	if err != nil {
		return 0
	}
	return rating
}

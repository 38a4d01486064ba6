package persistence

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/minn-platform/backend/internal/application/adapter"
	"github.com/minn-platform/backend/internal/domain/entity"
	domainerror "github.com/minn-platform/backend/internal/domain/error"
	"github.com/minn-platform/backend/internal/integration/persistence/model"
)

// emailQueueRepository implements adapter.EmailQueueRepository on the
// email_queue table.
type emailQueueRepository struct {
	db *gorm.DB
}

// NewEmailQueueRepository creates the email queue repository.
func NewEmailQueueRepository(db *gorm.DB) adapter.EmailQueueRepository {
	return &emailQueueRepository{db: db}
}

// Enqueue adds a job to the queue.
func (r *emailQueueRepository) Enqueue(ctx context.Context, job *entity.EmailJob) error {
	row := model.EmailQueueModelFromEntity(job)
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return domainerror.NewEmailError(
			domainerror.ErrCodeEmailQueueFailed,
			"inserting email job",
			err,
		)
	}
	return nil
}

// DuePending retrieves pending jobs whose scheduled time has passed.
func (r *emailQueueRepository) DuePending(ctx context.Context, limit int) ([]*entity.EmailJob, error) {
	var rows []model.EmailQueueModel
	err := r.db.WithContext(ctx).
		Where("status = ? AND scheduled_at <= ?", entity.EmailStatusPending, time.Now().UTC()).
		Order("scheduled_at ASC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return toJobs(rows), nil
}

// Update writes the whole row so cleared fields persist too.
func (r *emailQueueRepository) Update(ctx context.Context, job *entity.EmailJob) error {
	return r.db.WithContext(ctx).Save(model.EmailQueueModelFromEntity(job)).Error
}

// PurgeSentBefore removes sent jobs processed before the cutoff.
func (r *emailQueueRepository) PurgeSentBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("status = ? AND processed_at < ?", entity.EmailStatusSent, cutoff).
		Delete(&model.EmailQueueModel{})
	return res.RowsAffected, res.Error
}

func toJobs(rows []model.EmailQueueModel) []*entity.EmailJob {
	jobs := make([]*entity.EmailJob, len(rows))
	for i := range rows {
		jobs[i] = rows[i].ToEntity()
	}
	return jobs
}

package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Nikk8744/F-T-T-sub000/constants"
	apperrors "github.com/Nikk8744/F-T-T-sub000/errors"
	"github.com/Nikk8744/F-T-T-sub000/models"

	"gorm.io/gorm"
)

// DeadlineStore is the read-only query surface the scanner needs
type DeadlineStore interface {
	ApproachingTasks(ctx context.Context, today, edge time.Time) ([]models.Task, error)
	MissedTasks(ctx context.Context, today time.Time) ([]models.Task, error)
	ApproachingProjects(ctx context.Context, today, edge time.Time) ([]models.Project, error)
	MissedProjects(ctx context.Context, today time.Time) ([]models.Project, error)
}

// RecipientStore is the read-only query surface the resolver needs
type RecipientStore interface {
	TaskAssigneeIDs(ctx context.Context, taskID uint) ([]uint, error)
	ProjectMemberIDs(ctx context.Context, projectID uint) ([]uint, error)
	TaskOwnerID(ctx context.Context, taskID uint) (uint, error)
	ProjectOwnerID(ctx context.Context, projectID uint) (uint, error)
}

// GormDeadlineStore implements DeadlineStore and RecipientStore over gorm.
// Dates are stored and compared in UTC; sqlite compares them as text.
type GormDeadlineStore struct {
	db *gorm.DB
}

func NewGormDeadlineStore(db *gorm.DB) *GormDeadlineStore {
	return &GormDeadlineStore{db: db}
}

func (s *GormDeadlineStore) ApproachingTasks(ctx context.Context, today, edge time.Time) ([]models.Task, error) {
	var tasks []models.Task
	err := s.db.WithContext(ctx).
		Where("status IN ? AND due_date > ? AND due_date <= ?", constants.OpenTaskStatuses, today.UTC(), edge.UTC()).
		Find(&tasks).Error
	if err != nil {
		return nil, fmt.Errorf("query approaching tasks: %w", err)
	}
	return tasks, nil
}

func (s *GormDeadlineStore) MissedTasks(ctx context.Context, today time.Time) ([]models.Task, error) {
	var tasks []models.Task
	err := s.db.WithContext(ctx).
		Where("status IN ? AND due_date < ?", constants.OpenTaskStatuses, today.UTC()).
		Find(&tasks).Error
	if err != nil {
		return nil, fmt.Errorf("query missed tasks: %w", err)
	}
	return tasks, nil
}

func (s *GormDeadlineStore) ApproachingProjects(ctx context.Context, today, edge time.Time) ([]models.Project, error) {
	var projects []models.Project
	err := s.db.WithContext(ctx).
		Where("status IN ? AND end_date > ? AND end_date <= ?", constants.OpenProjectStatuses, today.UTC(), edge.UTC()).
		Find(&projects).Error
	if err != nil {
		return nil, fmt.Errorf("query approaching projects: %w", err)
	}
	return projects, nil
}

func (s *GormDeadlineStore) MissedProjects(ctx context.Context, today time.Time) ([]models.Project, error) {
	var projects []models.Project
	err := s.db.WithContext(ctx).
		Where("status IN ? AND end_date < ?", constants.OpenProjectStatuses, today.UTC()).
		Find(&projects).Error
	if err != nil {
		return nil, fmt.Errorf("query missed projects: %w", err)
	}
	return projects, nil
}

func (s *GormDeadlineStore) TaskAssigneeIDs(ctx context.Context, taskID uint) ([]uint, error) {
	var ids []uint
	err := s.db.WithContext(ctx).Table("task_assignments").
		Where("task_id = ?", taskID).
		Pluck("user_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("query assignees of task %d: %w", taskID, err)
	}
	return ids, nil
}

func (s *GormDeadlineStore) ProjectMemberIDs(ctx context.Context, projectID uint) ([]uint, error) {
	var ids []uint
	err := s.db.WithContext(ctx).Table("projectmembers").
		Where("project_id = ?", projectID).
		Pluck("user_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("query members of project %d: %w", projectID, err)
	}
	return ids, nil
}

func (s *GormDeadlineStore) TaskOwnerID(ctx context.Context, taskID uint) (uint, error) {
	return s.ownerID(ctx, &models.Task{}, taskID)
}

func (s *GormDeadlineStore) ProjectOwnerID(ctx context.Context, projectID uint) (uint, error) {
	return s.ownerID(ctx, &models.Project{}, projectID)
}

func (s *GormDeadlineStore) ownerID(ctx context.Context, model interface{}, id uint) (uint, error) {
	var owner struct{ OwnerID uint }
	err := s.db.WithContext(ctx).Model(model).Select("owner_id").Where("id = ?", id).Take(&owner).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return 0, apperrors.ErrOwnerNotFound
	case err != nil:
		return 0, err
	case owner.OwnerID == 0:
		return 0, apperrors.ErrOwnerNotFound
	}
	return owner.OwnerID, nil
}

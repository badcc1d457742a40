package service

import (
	"context"
	"errors"
	"log"

	"github.com/google/uuid"
	errorvalues "github.com/limbo/exectrack/internal/error_values"
	"github.com/limbo/exectrack/internal/repository"
	"github.com/limbo/exectrack/pkg/entity"
)

type SectionsService struct {
	repo      repository.SectionsRepositoryI
	tasksRepo repository.TasksRepositoryI
}

func NewSectionsService(sectionsRepo repository.SectionsRepositoryI, tasksRepo repository.TasksRepositoryI) *SectionsService {
	if sectionsRepo == nil || tasksRepo == nil {
		log.Fatal("provided nil repos to sections service")
	}
	return &SectionsService{
		repo:      sectionsRepo,
		tasksRepo: tasksRepo,
	}
}

func (ss *SectionsService) CreateSection(ctx context.Context, uid uuid.UUID, title string) (*entity.Section, error) {
	if title == "" {
		return nil, errors.New("title is required")
	}
	section, err := ss.repo.Create(ctx, uid, title)
	if err != nil {
		return nil, errors.New("sections repository error: " + err.Error())
	}
	return section, nil
}

func (ss *SectionsService) GetSections(ctx context.Context, uid uuid.UUID) ([]*entity.Section, error) {
	sections, err := ss.repo.List(ctx, uid)
	if err != nil {
		return nil, errors.New("sections repository error: " + err.Error())
	}
	return sections, nil
}

// DeleteSection refuses while incomplete tasks still reference the
// section; completed history rows keep their reference, the FK nulls it
// on delete.
func (ss *SectionsService) DeleteSection(ctx context.Context, uid uuid.UUID, id int64) error {
	count, err := ss.tasksRepo.CountActiveBySection(ctx, uid, id)
	if err != nil {
		return errors.New("tasks repository error: " + err.Error())
	}
	if count > 0 {
		return errorvalues.ErrSectionInUse
	}
	err = ss.repo.Delete(ctx, uid, id)
	if err != nil {
		if errors.Is(err, errorvalues.ErrSectionNotFound) {
			return err
		}
		return errors.New("sections repository error: " + err.Error())
	}
	return nil
}

package service

import (
	"context"
	"errors"
	"log"

	"github.com/google/uuid"
	errorvalues "github.com/limbo/exectrack/internal/error_values"
	"github.com/limbo/exectrack/internal/repository"
	"github.com/limbo/exectrack/pkg/entity"
	"github.com/limbo/exectrack/pkg/metrics"
)

type TasksService struct {
	repo       repository.TasksRepositoryI
	habitsRepo repository.HabitsRepositoryI
}

func NewTasksService(tasksRepo repository.TasksRepositoryI, habitsRepo repository.HabitsRepositoryI) *TasksService {
	if tasksRepo == nil || habitsRepo == nil {
		log.Fatal("provided nil repos to tasks service")
	}
	return &TasksService{
		repo:       tasksRepo,
		habitsRepo: habitsRepo,
	}
}

func (ts *TasksService) CreateTask(ctx context.Context, uid uuid.UUID, req *CreateTaskRequest) (*entity.Task, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	t := entity.Task{
		UserID:        uid,
		Date:          req.Date,
		Title:         req.Title,
		Priority:      req.Priority,
		HabitID:       req.HabitID,
		SectionID:     req.SectionID,
		Note:          req.Note,
		EstimatedTime: req.EstimatedTime,
	}
	if t.Priority == 0 {
		t.Priority = 1
	}
	id, err := ts.repo.Create(ctx, &t)
	if err != nil {
		switch {
		case errors.Is(err, errorvalues.ErrTaskExists):
			return nil, err
		case errors.Is(err, errorvalues.ErrOwnerNotFound):
			return nil, errorvalues.ErrUserNotFound
		}
		return nil, errors.New("tasks repository error: " + err.Error())
	}
	t.ID = id
	return &t, nil
}

func (ts *TasksService) UpdateTask(ctx context.Context, uid uuid.UUID, req *UpdateTaskRequest) error {
	if err := validateRequest(req); err != nil {
		return err
	}
	err := ts.repo.Update(ctx, uid, &repository.TaskUpdate{
		ID:            req.ID,
		Title:         req.Title,
		Completed:     req.Completed,
		Priority:      req.Priority,
		Note:          req.Note,
		SectionID:     req.SectionID,
		EstimatedTime: req.EstimatedTime,
	})
	if err != nil {
		if errors.Is(err, errorvalues.ErrTaskNotFound) {
			return err
		}
		return errors.New("tasks repository error: " + err.Error())
	}
	return nil
}

// DeleteTask removes one row, or archives the habit template behind it
// when the client flags a template deletion. Archiving keeps every
// historical task row valid.
func (ts *TasksService) DeleteTask(ctx context.Context, uid uuid.UUID, req *DeleteTaskRequest) error {
	if req.IsHabitTemplate {
		if req.HabitID == nil {
			return errors.New("habit_id is required for template deletion")
		}
		err := ts.habitsRepo.Archive(ctx, uid, *req.HabitID)
		if err != nil {
			if errors.Is(err, errorvalues.ErrHabitNotFound) {
				return err
			}
			return errors.New("habits repository error: " + err.Error())
		}
		return nil
	}
	if req.ID == nil {
		return errors.New("id is required for task deletion")
	}
	err := ts.repo.Delete(ctx, uid, *req.ID)
	if err != nil {
		if errors.Is(err, errorvalues.ErrTaskNotFound) {
			return err
		}
		return errors.New("tasks repository error: " + err.Error())
	}
	return nil
}

// MaterializeDay guarantees one task row per active habit template for the
// date. Safe to call on every read: existing rows are skipped, and the
// unique index absorbs concurrent materialization of the same day.
func (ts *TasksService) MaterializeDay(ctx context.Context, uid uuid.UUID, date string) (int, error) {
	habits, err := ts.habitsRepo.GetActive(ctx, uid)
	if err != nil {
		return 0, errors.New("habits repository error: " + err.Error())
	}
	if len(habits) == 0 {
		return 0, nil
	}
	refs, err := ts.repo.HabitRefsForDate(ctx, uid, date)
	if err != nil {
		return 0, errors.New("tasks repository error: " + err.Error())
	}
	existing := make(map[uuid.UUID]struct{}, len(refs))
	for _, id := range refs {
		existing[id] = struct{}{}
	}
	missing := make([]*entity.Habit, 0, len(habits))
	for _, h := range habits {
		if _, ok := existing[h.ID]; !ok {
			missing = append(missing, h)
		}
	}
	if len(missing) == 0 {
		return 0, nil
	}
	inserted, err := ts.repo.InsertHabitTasks(ctx, uid, date, missing)
	if err != nil {
		return 0, errors.New("tasks repository error: " + err.Error())
	}
	metrics.MaterializedTasks.Add(float64(inserted))
	return inserted, nil
}

// DayTasks is the carry-over aggregation for one date. Read-only; carried
// rows keep their original date field.
func (ts *TasksService) DayTasks(ctx context.Context, uid uuid.UUID, date string) ([]*entity.Task, error) {
	tasks, err := ts.repo.ListForDay(ctx, uid, date)
	if err != nil {
		return nil, errors.New("tasks repository error: " + err.Error())
	}
	return tasks, nil
}

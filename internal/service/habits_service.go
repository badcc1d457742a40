package service

import (
	"context"
	"errors"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	errorvalues "github.com/limbo/exectrack/internal/error_values"
	"github.com/limbo/exectrack/internal/repository"
	"github.com/limbo/exectrack/pkg/entity"
)

type HabitsService struct {
	repo     repository.HabitsRepositoryI
	logsRepo repository.HabitLogsRepositoryI
}

func NewHabitsService(habitsRepo repository.HabitsRepositoryI, logsRepo repository.HabitLogsRepositoryI) *HabitsService {
	if habitsRepo == nil || logsRepo == nil {
		log.Fatal("provided nil repos to habits service")
	}
	return &HabitsService{
		repo:     habitsRepo,
		logsRepo: logsRepo,
	}
}

func (hs *HabitsService) CreateHabit(ctx context.Context, uid uuid.UUID, req *CreateHabitRequest) (*entity.Habit, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	h := entity.Habit{
		UserID:      uid,
		Title:       req.Title,
		Subtitle:    req.Subtitle,
		Icon:        req.Icon,
		Color:       req.Color,
		Priority:    req.Priority,
		TrackStreak: req.TrackStreak,
	}
	if h.Icon == "" {
		h.Icon = "📝"
	}
	if h.Color == "" {
		h.Color = "purple"
	}
	if h.Priority == 0 {
		h.Priority = 1
	}
	id, err := hs.repo.Create(ctx, &h)
	if err != nil {
		if errors.Is(err, errorvalues.ErrOwnerNotFound) {
			return nil, errorvalues.ErrUserNotFound
		}
		return nil, errors.New("habits repository error: " + err.Error())
	}
	habit, err := hs.repo.GetByID(ctx, uid, id)
	if err != nil {
		if errors.Is(err, errorvalues.ErrHabitNotFound) {
			return nil, err
		}
		return nil, errors.New("habits repository error: " + err.Error())
	}
	return habit, nil
}

func (hs *HabitsService) GetHabitsWithLogs(ctx context.Context, uid uuid.UUID, date string) ([]*entity.HabitWithLog, error) {
	habits, err := hs.repo.GetByUserID(ctx, uid)
	if err != nil {
		return nil, errors.New("habits repository error: " + err.Error())
	}
	logs, err := hs.logsRepo.GetForDate(ctx, uid, date)
	if err != nil {
		return nil, errors.New("habit logs repository error: " + err.Error())
	}
	return JoinHabitsWithLogs(habits, logs), nil
}

// JoinHabitsWithLogs pairs each template with its log for one date; habits
// without a log get the zero completion state.
func JoinHabitsWithLogs(habits []*entity.Habit, logs []*entity.HabitLog) []*entity.HabitWithLog {
	logsByHabit := make(map[uuid.UUID]*entity.HabitLog, len(logs))
	for _, l := range logs {
		logsByHabit[l.HabitID] = l
	}
	joined := make([]*entity.HabitWithLog, 0, len(habits))
	for _, h := range habits {
		hw := entity.HabitWithLog{Habit: *h}
		if l, ok := logsByHabit[h.ID]; ok {
			hw.LogID = &l.ID
			hw.Completed = l.Completed
			hw.TimeSpent = l.TimeSpent
			hw.LogNote = l.Note
		}
		joined = append(joined, &hw)
	}
	return joined
}

func (hs *HabitsService) UpdateHabit(ctx context.Context, uid uuid.UUID, req *UpdateHabitRequest) error {
	if err := validateRequest(req); err != nil {
		return err
	}
	err := hs.repo.Update(ctx, uid, &repository.HabitUpdate{
		ID:          req.ID,
		Title:       req.Title,
		Subtitle:    req.Subtitle,
		Icon:        req.Icon,
		Color:       req.Color,
		Priority:    req.Priority,
		TrackStreak: req.TrackStreak,
	})
	if err != nil {
		if errors.Is(err, errorvalues.ErrHabitNotFound) {
			return err
		}
		return errors.New("habits repository error: " + err.Error())
	}
	return nil
}

func (hs *HabitsService) ArchiveHabit(ctx context.Context, uid, id uuid.UUID) error {
	err := hs.repo.Archive(ctx, uid, id)
	if err != nil {
		if errors.Is(err, errorvalues.ErrHabitNotFound) {
			return err
		}
		return errors.New("habits repository error: " + err.Error())
	}
	return nil
}

func (hs *HabitsService) DeleteHabit(ctx context.Context, uid, id uuid.UUID) error {
	// Logs go first so the template row never dangles references
	if err := hs.logsRepo.DeleteByHabit(ctx, uid, id); err != nil {
		return errors.New("habit logs repository error: " + err.Error())
	}
	err := hs.repo.Delete(ctx, uid, id)
	if err != nil {
		if errors.Is(err, errorvalues.ErrHabitNotFound) {
			return err
		}
		return errors.New("habits repository error: " + err.Error())
	}
	return nil
}

func (hs *HabitsService) LogHabit(ctx context.Context, uid uuid.UUID, req *LogHabitRequest) error {
	if err := validateRequest(req); err != nil {
		return err
	}
	// Ownership check before the write path touches the log table
	if _, err := hs.repo.GetByID(ctx, uid, req.HabitID); err != nil {
		if errors.Is(err, errorvalues.ErrHabitNotFound) {
			return err
		}
		return errors.New("habits repository error: " + err.Error())
	}
	err := hs.logsRepo.Upsert(ctx, uid, &repository.HabitLogUpsert{
		HabitID:   req.HabitID,
		Date:      req.Date,
		Completed: req.Completed,
		TimeSpent: req.TimeSpent,
		Note:      req.Note,
	})
	if err != nil {
		if errors.Is(err, errorvalues.ErrHabitNotFound) {
			return err
		}
		return errors.New("habit logs repository error: " + err.Error())
	}
	return nil
}

func validateRequest(req any) error {
	err := validate.Struct(req)
	if err != nil {
		if validationError, ok := err.(validator.ValidationErrors); ok {
			joined := errors.New("validation error: ")
			for _, fieldErr := range validationError {
				joined = errors.Join(joined, fieldErr)
			}
			return joined
		}
		return errors.New("validation unexpected error: " + err.Error())
	}
	return nil
}

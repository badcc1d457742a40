package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	errorvalues "github.com/limbo/exectrack/internal/error_values"
	"github.com/limbo/exectrack/internal/service"
	"github.com/limbo/exectrack/pkg/httputil"
)

type CreateHabitDTO struct {
	Title       string `json:"title"`
	Subtitle    string `json:"subtitle"`
	Icon        string `json:"icon"`
	Color       string `json:"color"`
	Priority    int    `json:"priority"`
	TrackStreak bool   `json:"track_streak"`
}

type UpdateHabitDTO struct {
	ID          uuid.UUID `json:"id"`
	Title       *string   `json:"title"`
	Subtitle    *string   `json:"subtitle"`
	Icon        *string   `json:"icon"`
	Color       *string   `json:"color"`
	Priority    *int      `json:"priority"`
	TrackStreak *bool     `json:"track_streak"`
}

type DeleteHabitDTO struct {
	ID uuid.UUID `json:"id"`
}

type LogHabitDTO struct {
	HabitID   uuid.UUID `json:"habit_id"`
	Date      string    `json:"date"`
	Completed *bool     `json:"completed"`
	TimeSpent *int      `json:"time_spent"`
	Note      *string   `json:"note"`
}

func (s *Server) GetHabits(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("get habits error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	date, err := dateParam(r)
	if err != nil {
		logger.Error("get habits error: bad date param")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "date query parameter is required (YYYY-MM-DD)", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	habits, err := s.habitsService.GetHabitsWithLogs(ctx, uid, date)
	if err != nil {
		logger.Error("get habits error: service error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "error while fetching habits", nil)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, habits)
}

func (s *Server) CreateHabit(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("create habit error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	var dto CreateHabitDTO
	defer r.Body.Close()
	if err := sonic.ConfigDefault.NewDecoder(r.Body).Decode(&dto); err != nil {
		logger.Error("create habit error: invalid body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	habit, err := s.habitsService.CreateHabit(ctx, uid, &service.CreateHabitRequest{
		Title:       dto.Title,
		Subtitle:    dto.Subtitle,
		Icon:        dto.Icon,
		Color:       dto.Color,
		Priority:    dto.Priority,
		TrackStreak: dto.TrackStreak,
	})
	if err != nil {
		if errors.Is(err, errorvalues.ErrOwnerNotFound) {
			logger.Error("create habit error: owner doesn't exist")
			httputil.WriteErrorResponse(w, http.StatusUnauthorized, "user not found", nil)
			return
		}
		logger.Error("create habit error: service error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "error while creating habit", err)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusCreated, habit)
	logger.Info("habit created", slog.String("habit_id", habit.ID.String()))
}

func (s *Server) UpdateHabit(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("update habit error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	var dto UpdateHabitDTO
	defer r.Body.Close()
	if err := sonic.ConfigDefault.NewDecoder(r.Body).Decode(&dto); err != nil {
		logger.Error("update habit error: invalid body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	err = s.habitsService.UpdateHabit(ctx, uid, &service.UpdateHabitRequest{
		ID:          dto.ID,
		Title:       dto.Title,
		Subtitle:    dto.Subtitle,
		Icon:        dto.Icon,
		Color:       dto.Color,
		Priority:    dto.Priority,
		TrackStreak: dto.TrackStreak,
	})
	if err != nil {
		if errors.Is(err, errorvalues.ErrHabitNotFound) {
			logger.Error("update habit error: not found")
			httputil.WriteErrorResponse(w, http.StatusNotFound, "habit not found", nil)
			return
		}
		logger.Error("update habit error: service error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "error while updating habit", err)
		return
	}
	httputil.WriteSuccess(w)
	logger.Info("habit updated", slog.String("habit_id", dto.ID.String()))
}

func (s *Server) DeleteHabit(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("delete habit error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	var dto DeleteHabitDTO
	defer r.Body.Close()
	if err := sonic.ConfigDefault.NewDecoder(r.Body).Decode(&dto); err != nil {
		logger.Error("delete habit error: invalid body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	if err := s.habitsService.DeleteHabit(ctx, uid, dto.ID); err != nil {
		if errors.Is(err, errorvalues.ErrHabitNotFound) {
			logger.Error("delete habit error: not found")
			httputil.WriteErrorResponse(w, http.StatusNotFound, "habit not found", nil)
			return
		}
		logger.Error("delete habit error: service error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "error while deleting habit", err)
		return
	}
	httputil.WriteSuccess(w)
	logger.Info("habit deleted", slog.String("habit_id", dto.ID.String()))
}

func (s *Server) LogHabit(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("log habit error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	var dto LogHabitDTO
	defer r.Body.Close()
	if err := sonic.ConfigDefault.NewDecoder(r.Body).Decode(&dto); err != nil {
		logger.Error("log habit error: invalid body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	err = s.habitsService.LogHabit(ctx, uid, &service.LogHabitRequest{
		HabitID:   dto.HabitID,
		Date:      dto.Date,
		Completed: dto.Completed,
		TimeSpent: dto.TimeSpent,
		Note:      dto.Note,
	})
	if err != nil {
		if errors.Is(err, errorvalues.ErrHabitNotFound) {
			logger.Error("log habit error: habit not found")
			httputil.WriteErrorResponse(w, http.StatusNotFound, "habit not found", nil)
			return
		}
		logger.Error("log habit error: service error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "error while logging habit", err)
		return
	}
	httputil.WriteSuccess(w)
	logger.Info("habit logged", slog.String("habit_id", dto.HabitID.String()), slog.String("date", dto.Date))
}

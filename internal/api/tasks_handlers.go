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

type CreateTaskDTO struct {
	Date          string     `json:"date"`
	Title         string     `json:"title"`
	Priority      int        `json:"priority"`
	HabitID       *uuid.UUID `json:"habit_id"`
	SectionID     *int64     `json:"section_id"`
	Note          *string    `json:"note"`
	EstimatedTime *int       `json:"estimated_time"`
}

type UpdateTaskDTO struct {
	ID            int64   `json:"id"`
	Title         *string `json:"title"`
	Completed     *bool   `json:"completed"`
	Priority      *int    `json:"priority"`
	Note          *string `json:"note"`
	SectionID     *int64  `json:"section_id"`
	EstimatedTime *int    `json:"estimated_time"`
}

type DeleteTaskDTO struct {
	ID              *int64     `json:"id"`
	HabitID         *uuid.UUID `json:"habit_id"`
	IsHabitTemplate bool       `json:"is_habit_template"`
}

func (s *Server) CreateTask(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("create task error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	var dto CreateTaskDTO
	defer r.Body.Close()
	if err := sonic.ConfigDefault.NewDecoder(r.Body).Decode(&dto); err != nil {
		logger.Error("create task error: invalid body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	task, err := s.tasksService.CreateTask(ctx, uid, &service.CreateTaskRequest{
		Date:          dto.Date,
		Title:         dto.Title,
		Priority:      dto.Priority,
		HabitID:       dto.HabitID,
		SectionID:     dto.SectionID,
		Note:          dto.Note,
		EstimatedTime: dto.EstimatedTime,
	})
	if err != nil {
		switch {
		case errors.Is(err, errorvalues.ErrTaskExists):
			logger.Error("create task error: duplicate habit occurrence")
			httputil.WriteErrorResponse(w, http.StatusConflict, "task for this habit and date already exists", nil)
		case errors.Is(err, errorvalues.ErrSectionNotFound):
			logger.Error("create task error: unknown section")
			httputil.WriteErrorResponse(w, http.StatusNotFound, "section not found", nil)
		default:
			logger.Error("create task error: service error", slog.String("error", err.Error()))
			httputil.WriteErrorResponse(w, http.StatusBadRequest, "error while creating task", err)
		}
		return
	}
	httputil.WriteJSONResponse(w, http.StatusCreated, task)
	logger.Info("task created", slog.Int64("task_id", task.ID))
}

func (s *Server) PatchTask(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("patch task error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	var dto UpdateTaskDTO
	defer r.Body.Close()
	if err := sonic.ConfigDefault.NewDecoder(r.Body).Decode(&dto); err != nil {
		logger.Error("patch task error: invalid body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	err = s.tasksService.UpdateTask(ctx, uid, &service.UpdateTaskRequest{
		ID:            dto.ID,
		Title:         dto.Title,
		Completed:     dto.Completed,
		Priority:      dto.Priority,
		Note:          dto.Note,
		SectionID:     dto.SectionID,
		EstimatedTime: dto.EstimatedTime,
	})
	if err != nil {
		if errors.Is(err, errorvalues.ErrTaskNotFound) {
			logger.Error("patch task error: not found")
			httputil.WriteErrorResponse(w, http.StatusNotFound, "task not found", nil)
			return
		}
		logger.Error("patch task error: service error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "error while updating task", err)
		return
	}
	httputil.WriteSuccess(w)
	logger.Info("task updated", slog.Int64("task_id", dto.ID))
}

func (s *Server) DeleteTask(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("delete task error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	var dto DeleteTaskDTO
	defer r.Body.Close()
	if err := sonic.ConfigDefault.NewDecoder(r.Body).Decode(&dto); err != nil {
		logger.Error("delete task error: invalid body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	err = s.tasksService.DeleteTask(ctx, uid, &service.DeleteTaskRequest{
		ID:              dto.ID,
		HabitID:         dto.HabitID,
		IsHabitTemplate: dto.IsHabitTemplate,
	})
	if err != nil {
		switch {
		case errors.Is(err, errorvalues.ErrTaskNotFound):
			logger.Error("delete task error: not found")
			httputil.WriteErrorResponse(w, http.StatusNotFound, "task not found", nil)
		case errors.Is(err, errorvalues.ErrHabitNotFound):
			logger.Error("delete task error: habit not found")
			httputil.WriteErrorResponse(w, http.StatusNotFound, "habit not found", nil)
		default:
			logger.Error("delete task error: service error", slog.String("error", err.Error()))
			httputil.WriteErrorResponse(w, http.StatusBadRequest, "error while deleting task", err)
		}
		return
	}
	httputil.WriteSuccess(w)
	logger.Info("task deleted")
}

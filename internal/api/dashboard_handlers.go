package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/bytedance/sonic"
	"github.com/limbo/exectrack/pkg/entity"
	"github.com/limbo/exectrack/pkg/httputil"
)

type WorkoutDayDTO struct {
	DayIndex int    `json:"day_index"`
	Title    string `json:"title"`
	Details  string `json:"details"`
}

func (s *Server) GetDashboard(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("dashboard error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	date, err := dateParam(r)
	if err != nil {
		logger.Error("dashboard error: bad date param")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "date query parameter is required (YYYY-MM-DD)", nil)
		return
	}
	// The dashboard fans out to almost every table, so it gets a wider
	// deadline than the single-resource handlers.
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*15)
	defer cancel()
	view, err := s.dashboardService.Compose(ctx, uid, date)
	if err != nil {
		logger.Error("dashboard error: compose failed", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "error while composing dashboard", nil)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, view)
}

func (s *Server) GetWorkout(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("get workout error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	schedule, err := s.dailyService.WorkoutSchedule(ctx, uid)
	if err != nil {
		logger.Error("get workout error: service error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "error while fetching workout schedule", nil)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, schedule)
}

func (s *Server) PutWorkout(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("put workout error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	var dto WorkoutDayDTO
	defer r.Body.Close()
	if err := sonic.ConfigDefault.NewDecoder(r.Body).Decode(&dto); err != nil {
		logger.Error("put workout error: invalid body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	err = s.dailyService.UpsertWorkoutDay(ctx, uid, &entity.WorkoutDay{
		DayIndex: dto.DayIndex,
		Title:    dto.Title,
		Details:  dto.Details,
	})
	if err != nil {
		logger.Error("put workout error: service error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "error while saving workout day", err)
		return
	}
	httputil.WriteSuccess(w)
	logger.Info("workout day saved", slog.Int("day_index", dto.DayIndex))
}

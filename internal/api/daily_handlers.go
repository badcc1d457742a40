package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/bytedance/sonic"
	errorvalues "github.com/limbo/exectrack/internal/error_values"
	"github.com/limbo/exectrack/internal/service"
	"github.com/limbo/exectrack/pkg/httputil"
)

// dateParam extracts the mandatory ?date=YYYY-MM-DD query parameter.
func dateParam(r *http.Request) (string, error) {
	date := r.URL.Query().Get("date")
	if date == "" {
		return "", errorvalues.ErrDateRequired
	}
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return "", errorvalues.ErrDateRequired
	}
	return date, nil
}

type UpsertDailyDTO struct {
	Date           string  `json:"date"`
	TLEMinutes     *int    `json:"tle_minutes"`
	Note           *string `json:"note"`
	TomorrowIntent *string `json:"tomorrow_intent"`
	DsaDone        *bool   `json:"dsa_done"`
	DevDone        *bool   `json:"dev_done"`
	GymDone        *bool   `json:"gym_done"`
	DsaMinutes     *int    `json:"dsa_minutes"`
	DevMinutes     *int    `json:"dev_minutes"`
	GymMinutes     *int    `json:"gym_minutes"`
	DsaNote        *string `json:"dsa_note"`
	DevNote        *string `json:"dev_note"`
	GymNote        *string `json:"gym_note"`
}

func (s *Server) GetDaily(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("get daily error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	date, err := dateParam(r)
	if err != nil {
		logger.Error("get daily error: bad date param")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "date query parameter is required (YYYY-MM-DD)", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	view, err := s.dailyService.GetDay(ctx, uid, date)
	if err != nil {
		logger.Error("get daily error: service error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "error while fetching day", nil)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, view)
}

func (s *Server) PostDaily(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("post daily error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	var dto UpsertDailyDTO
	defer r.Body.Close()
	if err := sonic.ConfigDefault.NewDecoder(r.Body).Decode(&dto); err != nil {
		logger.Error("post daily error: invalid body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	err = s.dailyService.UpsertDaily(ctx, uid, &service.UpsertDailyRequest{
		Date:           dto.Date,
		TLEMinutes:     dto.TLEMinutes,
		Note:           dto.Note,
		TomorrowIntent: dto.TomorrowIntent,
		DsaDone:        dto.DsaDone,
		DevDone:        dto.DevDone,
		GymDone:        dto.GymDone,
		DsaMinutes:     dto.DsaMinutes,
		DevMinutes:     dto.DevMinutes,
		GymMinutes:     dto.GymMinutes,
		DsaNote:        dto.DsaNote,
		DevNote:        dto.DevNote,
		GymNote:        dto.GymNote,
	})
	if err != nil {
		if errors.Is(err, errorvalues.ErrDateRequired) {
			logger.Error("post daily error: bad date")
			httputil.WriteErrorResponse(w, http.StatusBadRequest, "date is required (YYYY-MM-DD)", nil)
			return
		}
		logger.Error("post daily error: service error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "error while saving day", err)
		return
	}
	httputil.WriteSuccess(w)
	logger.Info("daily log upserted", slog.String("date", dto.Date))
}

func (s *Server) GetHistory(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("get history error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	history, err := s.dailyService.History(ctx, uid)
	if err != nil {
		logger.Error("get history error: service error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "error while fetching history", nil)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, history)
}

func (s *Server) GetStats(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("get stats error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	stats, err := s.dailyService.WeeklyStats(ctx, uid, time.Now())
	if err != nil {
		logger.Error("get stats error: service error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "error while computing stats", nil)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, stats)
}

type CreateRuleDTO struct {
	Content string `json:"content"`
}

type DeleteRuleDTO struct {
	ID int64 `json:"id"`
}

func (s *Server) CreateRule(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("create rule error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	var dto CreateRuleDTO
	defer r.Body.Close()
	if err := sonic.ConfigDefault.NewDecoder(r.Body).Decode(&dto); err != nil {
		logger.Error("create rule error: invalid body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	if dto.Content == "" {
		logger.Error("create rule error: empty content")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "content is required", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	rule, err := s.dailyService.CreateRule(ctx, uid, dto.Content)
	if err != nil {
		logger.Error("create rule error: service error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "error while creating rule", nil)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusCreated, rule)
	logger.Info("memory rule created", slog.Int64("rule_id", rule.ID))
}

func (s *Server) DeleteRule(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("delete rule error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	var dto DeleteRuleDTO
	defer r.Body.Close()
	if err := sonic.ConfigDefault.NewDecoder(r.Body).Decode(&dto); err != nil {
		logger.Error("delete rule error: invalid body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	if err := s.dailyService.DeleteRule(ctx, uid, dto.ID); err != nil {
		if errors.Is(err, errorvalues.ErrRuleNotFound) {
			logger.Error("delete rule error: not found")
			httputil.WriteErrorResponse(w, http.StatusNotFound, "rule not found", nil)
			return
		}
		logger.Error("delete rule error: service error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "error while deleting rule", nil)
		return
	}
	httputil.WriteSuccess(w)
	logger.Info("memory rule deleted", slog.Int64("rule_id", dto.ID))
}

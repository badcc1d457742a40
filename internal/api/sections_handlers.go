package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/bytedance/sonic"
	errorvalues "github.com/limbo/exectrack/internal/error_values"
	"github.com/limbo/exectrack/pkg/httputil"
)

type CreateSectionDTO struct {
	Title string `json:"title"`
}

type DeleteSectionDTO struct {
	ID int64 `json:"id"`
}

func (s *Server) GetSections(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("get sections error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	sections, err := s.sectionsService.GetSections(ctx, uid)
	if err != nil {
		logger.Error("get sections error: service error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "error while fetching sections", nil)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, sections)
}

func (s *Server) CreateSection(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("create section error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	var dto CreateSectionDTO
	defer r.Body.Close()
	if err := sonic.ConfigDefault.NewDecoder(r.Body).Decode(&dto); err != nil {
		logger.Error("create section error: invalid body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	section, err := s.sectionsService.CreateSection(ctx, uid, dto.Title)
	if err != nil {
		logger.Error("create section error: service error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "error while creating section", err)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusCreated, section)
	logger.Info("section created", slog.Int64("section_id", section.ID))
}

func (s *Server) DeleteSection(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("delete section error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	var dto DeleteSectionDTO
	defer r.Body.Close()
	if err := sonic.ConfigDefault.NewDecoder(r.Body).Decode(&dto); err != nil {
		logger.Error("delete section error: invalid body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	if err := s.sectionsService.DeleteSection(ctx, uid, dto.ID); err != nil {
		switch {
		case errors.Is(err, errorvalues.ErrSectionNotFound):
			logger.Error("delete section error: not found")
			httputil.WriteErrorResponse(w, http.StatusNotFound, "section not found", nil)
		case errors.Is(err, errorvalues.ErrSectionInUse):
			logger.Error("delete section error: section still referenced")
			httputil.WriteErrorResponse(w, http.StatusConflict, "section still has incomplete tasks", nil)
		default:
			logger.Error("delete section error: service error", slog.String("error", err.Error()))
			httputil.WriteErrorResponse(w, http.StatusBadRequest, "error while deleting section", err)
		}
		return
	}
	httputil.WriteSuccess(w)
	logger.Info("section deleted", slog.Int64("section_id", dto.ID))
}

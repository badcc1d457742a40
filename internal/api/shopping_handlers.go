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

type CreateItemDTO struct {
	Item     string `json:"item"`
	Category string `json:"category"`
	Note     string `json:"note"`
}

type PatchItemDTO struct {
	ID        int64 `json:"id"`
	Completed bool  `json:"completed"`
}

type DeleteItemDTO struct {
	ID int64 `json:"id"`
}

type CreateCategoryDTO struct {
	Name string `json:"name"`
}

type DeleteCategoryDTO struct {
	ID int64 `json:"id"`
}

func (s *Server) GetBuyingList(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("get buying list error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	items, err := s.shoppingService.GetItems(ctx, uid)
	if err != nil {
		logger.Error("get buying list error: service error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "error while fetching buying list", nil)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, items)
}

func (s *Server) CreateBuyingItem(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("create buying item error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	var dto CreateItemDTO
	defer r.Body.Close()
	if err := sonic.ConfigDefault.NewDecoder(r.Body).Decode(&dto); err != nil {
		logger.Error("create buying item error: invalid body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	id, err := s.shoppingService.CreateItem(ctx, uid, &service.CreateItemRequest{
		Item:     dto.Item,
		Category: dto.Category,
		Note:     dto.Note,
	})
	if err != nil {
		logger.Error("create buying item error: service error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "error while creating item", err)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusCreated, map[string]any{"id": id})
	logger.Info("buying item created", slog.Int64("item_id", id))
}

func (s *Server) PatchBuyingItem(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("patch buying item error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	var dto PatchItemDTO
	defer r.Body.Close()
	if err := sonic.ConfigDefault.NewDecoder(r.Body).Decode(&dto); err != nil {
		logger.Error("patch buying item error: invalid body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	if err := s.shoppingService.SetItemCompleted(ctx, uid, dto.ID, dto.Completed); err != nil {
		if errors.Is(err, errorvalues.ErrItemNotFound) {
			logger.Error("patch buying item error: not found")
			httputil.WriteErrorResponse(w, http.StatusNotFound, "item not found", nil)
			return
		}
		logger.Error("patch buying item error: service error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "error while updating item", err)
		return
	}
	httputil.WriteSuccess(w)
}

func (s *Server) DeleteBuyingItem(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("delete buying item error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	var dto DeleteItemDTO
	defer r.Body.Close()
	if err := sonic.ConfigDefault.NewDecoder(r.Body).Decode(&dto); err != nil {
		logger.Error("delete buying item error: invalid body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	if err := s.shoppingService.DeleteItem(ctx, uid, dto.ID); err != nil {
		if errors.Is(err, errorvalues.ErrItemNotFound) {
			logger.Error("delete buying item error: not found")
			httputil.WriteErrorResponse(w, http.StatusNotFound, "item not found", nil)
			return
		}
		logger.Error("delete buying item error: service error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "error while deleting item", err)
		return
	}
	httputil.WriteSuccess(w)
	logger.Info("buying item deleted", slog.Int64("item_id", dto.ID))
}

func (s *Server) GetBuyingCategories(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("get categories error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	categories, err := s.shoppingService.GetCategories(ctx, uid)
	if err != nil {
		logger.Error("get categories error: service error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "error while fetching categories", nil)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, categories)
}

func (s *Server) CreateBuyingCategory(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("create category error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	var dto CreateCategoryDTO
	defer r.Body.Close()
	if err := sonic.ConfigDefault.NewDecoder(r.Body).Decode(&dto); err != nil {
		logger.Error("create category error: invalid body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	id, err := s.shoppingService.CreateCategory(ctx, uid, dto.Name)
	if err != nil {
		if errors.Is(err, errorvalues.ErrCategoryExists) {
			logger.Error("create category error: duplicate name")
			httputil.WriteErrorResponse(w, http.StatusConflict, "category with such name already exists", nil)
			return
		}
		logger.Error("create category error: service error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "error while creating category", err)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusCreated, map[string]any{"id": id})
	logger.Info("buying category created", slog.Int64("category_id", id))
}

func (s *Server) DeleteBuyingCategory(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("delete category error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	var dto DeleteCategoryDTO
	defer r.Body.Close()
	if err := sonic.ConfigDefault.NewDecoder(r.Body).Decode(&dto); err != nil {
		logger.Error("delete category error: invalid body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	if err := s.shoppingService.DeleteCategory(ctx, uid, dto.ID); err != nil {
		if errors.Is(err, errorvalues.ErrCategoryNotFound) {
			logger.Error("delete category error: not found")
			httputil.WriteErrorResponse(w, http.StatusNotFound, "category not found", nil)
			return
		}
		if errors.Is(err, errorvalues.ErrCategoryInUse) {
			logger.Error("delete category error: still referenced by items")
			httputil.WriteErrorResponse(w, http.StatusConflict, "category still has uncompleted items", nil)
			return
		}
		logger.Error("delete category error: service error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "error while deleting category", err)
		return
	}
	httputil.WriteSuccess(w)
	logger.Info("buying category deleted", slog.Int64("category_id", dto.ID))
}

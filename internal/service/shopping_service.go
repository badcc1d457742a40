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

type ShoppingService struct {
	repo repository.ShoppingRepositoryI
}

func NewShoppingService(shoppingRepo repository.ShoppingRepositoryI) *ShoppingService {
	if shoppingRepo == nil {
		log.Fatal("provided nil repo to shopping service")
	}
	return &ShoppingService{
		repo: shoppingRepo,
	}
}

func (ss *ShoppingService) CreateItem(ctx context.Context, uid uuid.UUID, req *CreateItemRequest) (int64, error) {
	if err := validateRequest(req); err != nil {
		return 0, err
	}
	item := entity.ShoppingItem{
		UserID:   uid,
		Item:     req.Item,
		Category: req.Category,
		Note:     req.Note,
	}
	if item.Category == "" {
		item.Category = "General"
	}
	id, err := ss.repo.CreateItem(ctx, &item)
	if err != nil {
		return 0, errors.New("shopping repository error: " + err.Error())
	}
	return id, nil
}

func (ss *ShoppingService) GetItems(ctx context.Context, uid uuid.UUID) ([]*entity.ShoppingItem, error) {
	items, err := ss.repo.ListItems(ctx, uid)
	if err != nil {
		return nil, errors.New("shopping repository error: " + err.Error())
	}
	return items, nil
}

func (ss *ShoppingService) SetItemCompleted(ctx context.Context, uid uuid.UUID, id int64, completed bool) error {
	err := ss.repo.UpdateItem(ctx, uid, id, completed)
	if err != nil {
		if errors.Is(err, errorvalues.ErrItemNotFound) {
			return err
		}
		return errors.New("shopping repository error: " + err.Error())
	}
	return nil
}

func (ss *ShoppingService) DeleteItem(ctx context.Context, uid uuid.UUID, id int64) error {
	err := ss.repo.DeleteItem(ctx, uid, id)
	if err != nil {
		if errors.Is(err, errorvalues.ErrItemNotFound) {
			return err
		}
		return errors.New("shopping repository error: " + err.Error())
	}
	return nil
}

func (ss *ShoppingService) CreateCategory(ctx context.Context, uid uuid.UUID, name string) (int64, error) {
	if name == "" {
		return 0, errors.New("name is required")
	}
	id, err := ss.repo.CreateCategory(ctx, uid, name)
	if err != nil {
		if errors.Is(err, errorvalues.ErrCategoryExists) {
			return 0, err
		}
		return 0, errors.New("shopping repository error: " + err.Error())
	}
	return id, nil
}

func (ss *ShoppingService) GetCategories(ctx context.Context, uid uuid.UUID) ([]*entity.ShoppingCategory, error) {
	cats, err := ss.repo.ListCategories(ctx, uid)
	if err != nil {
		return nil, errors.New("shopping repository error: " + err.Error())
	}
	return cats, nil
}

// DeleteCategory refuses while uncompleted items are still grouped under
// the category; bought history keeps its label either way, items store
// the name, not a FK.
func (ss *ShoppingService) DeleteCategory(ctx context.Context, uid uuid.UUID, id int64) error {
	cat, err := ss.repo.FindCategory(ctx, uid, id)
	if err != nil {
		if errors.Is(err, errorvalues.ErrCategoryNotFound) {
			return err
		}
		return errors.New("shopping repository error: " + err.Error())
	}
	count, err := ss.repo.CountItemsByCategory(ctx, uid, cat.Name)
	if err != nil {
		return errors.New("shopping repository error: " + err.Error())
	}
	if count > 0 {
		return errorvalues.ErrCategoryInUse
	}
	err = ss.repo.DeleteCategory(ctx, uid, id)
	if err != nil {
		if errors.Is(err, errorvalues.ErrCategoryNotFound) {
			return err
		}
		return errors.New("shopping repository error: " + err.Error())
	}
	return nil
}

package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	errorvalues "github.com/limbo/exectrack/internal/error_values"
	"github.com/limbo/exectrack/internal/service"
	"github.com/limbo/exectrack/pkg/entity"
	"github.com/stretchr/testify/assert"
)

type shoppingRepoMock struct {
	state mockState
	items []*entity.ShoppingItem
	cats  []*entity.ShoppingCategory
}

func (m *shoppingRepoMock) CreateItem(ctx context.Context, item *entity.ShoppingItem) (int64, error) {
	if m.state == stateDBError {
		return 0, errors.New("db error")
	}
	return int64(len(m.items) + 1), nil
}

func (m *shoppingRepoMock) ListItems(ctx context.Context, uid uuid.UUID) ([]*entity.ShoppingItem, error) {
	if m.state == stateDBError {
		return nil, errors.New("db error")
	}
	return m.items, nil
}

func (m *shoppingRepoMock) UpdateItem(ctx context.Context, uid uuid.UUID, id int64, completed bool) error {
	switch m.state {
	case stateDBError:
		return errors.New("db error")
	case stateNotFoundError:
		return errorvalues.ErrItemNotFound
	}
	return nil
}

func (m *shoppingRepoMock) DeleteItem(ctx context.Context, uid uuid.UUID, id int64) error {
	switch m.state {
	case stateDBError:
		return errors.New("db error")
	case stateNotFoundError:
		return errorvalues.ErrItemNotFound
	}
	return nil
}

func (m *shoppingRepoMock) CountItemsByCategory(ctx context.Context, uid uuid.UUID, name string) (int, error) {
	if m.state == stateDBError {
		return 0, errors.New("db error")
	}
	count := 0
	for _, item := range m.items {
		if item.Category == name && !item.Completed {
			count++
		}
	}
	return count, nil
}

func (m *shoppingRepoMock) FindCategory(ctx context.Context, uid uuid.UUID, id int64) (*entity.ShoppingCategory, error) {
	if m.state == stateDBError {
		return nil, errors.New("db error")
	}
	for _, cat := range m.cats {
		if cat.ID == id {
			return cat, nil
		}
	}
	return nil, errorvalues.ErrCategoryNotFound
}

func (m *shoppingRepoMock) CreateCategory(ctx context.Context, uid uuid.UUID, name string) (int64, error) {
	switch m.state {
	case stateDBError:
		return 0, errors.New("db error")
	case stateDuplicateError:
		return 0, errorvalues.ErrCategoryExists
	}
	return int64(len(m.cats) + 1), nil
}

func (m *shoppingRepoMock) ListCategories(ctx context.Context, uid uuid.UUID) ([]*entity.ShoppingCategory, error) {
	if m.state == stateDBError {
		return nil, errors.New("db error")
	}
	return m.cats, nil
}

func (m *shoppingRepoMock) DeleteCategory(ctx context.Context, uid uuid.UUID, id int64) error {
	switch m.state {
	case stateDBError:
		return errors.New("db error")
	case stateNotFoundError:
		return errorvalues.ErrCategoryNotFound
	}
	return nil
}

func TestDashboardCompose(t *testing.T) {
	service.InitValidator()
	ctx := context.Background()
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	today := now.Format("2006-01-02")
	yesterday := now.AddDate(0, 0, -1).Format("2006-01-02")

	templates := testTemplates()
	templates[0].TrackStreak = true
	tracked := templates[0]

	usersRepo := &usersRepoMock{user: &entity.User{ID: testUID, Email: "lim@example.com", Name: "lim"}}
	daily := &dailyLogsRepoMock{logs: []*entity.DailyLog{
		{Date: today, Note: "today", DsaDone: true},
		{Date: yesterday, DsaDone: true, GymDone: true},
	}}
	logsRepo := &habitLogsRepoMock{logs: []*entity.HabitLog{
		{ID: 1, HabitID: tracked.ID, Date: today, Completed: true, CreatedAt: now.Add(-2 * time.Hour)},
		{ID: 2, HabitID: tracked.ID, Date: yesterday, Completed: true, CreatedAt: now.Add(-26 * time.Hour)},
	}}
	tasksRepo := newTasksRepoFake()
	habitsRepo := &habitsRepoMock{habits: templates}
	habitsServ := service.NewHabitsService(habitsRepo, logsRepo)
	tasksServ := service.NewTasksService(tasksRepo, habitsRepo)
	shoppingRepo := &shoppingRepoMock{
		items: []*entity.ShoppingItem{{ID: 1, Item: "protein"}},
		cats:  []*entity.ShoppingCategory{{ID: 1, Name: "General"}},
	}
	serv := service.NewDashboardService(
		usersRepo, daily, &workoutRepoMock{}, &sectionsRepoMock{}, shoppingRepo, logsRepo,
		habitsServ, tasksServ,
	).WithClock(func() time.Time { return now })

	view, err := serv.Compose(ctx, testUID, today)
	assert.NoError(t, err)

	t.Run("summary and user", func(t *testing.T) {
		assert.Equal(t, "today", view.DailyParams.Note)
		assert.Equal(t, testUID, view.User.ID)
	})
	t.Run("habit tasks materialized", func(t *testing.T) {
		// two active templates, both materialized into the task list
		assert.Equal(t, 2, len(view.DailyParams.Tasks))
	})
	t.Run("performance streaks", func(t *testing.T) {
		assert.Equal(t, 2, view.DailyParams.Streaks.Dsa)
		assert.Equal(t, 0, view.DailyParams.Streaks.Dev)
		// gym hit yesterday only, still anchored
		assert.Equal(t, 1, view.DailyParams.Streaks.Gym)
	})
	t.Run("habit streaks only on tracked templates", func(t *testing.T) {
		byID := make(map[uuid.UUID]*entity.HabitWithLog, len(view.Habits))
		for _, h := range view.Habits {
			byID[h.Habit.ID] = h
		}
		assert.Equal(t, 2, byID[tracked.ID].Streak)
		assert.NotNil(t, byID[tracked.ID].ExpiresAt)
		assert.Equal(t, 0, byID[templates[1].ID].Streak)
		assert.Nil(t, byID[templates[1].ID].ExpiresAt)
	})
	t.Run("shopping payload", func(t *testing.T) {
		assert.Equal(t, 1, len(view.BuyingList))
		assert.Equal(t, 1, len(view.BuyCategories))
	})
	t.Run("second compose stays idempotent", func(t *testing.T) {
		again, err := serv.Compose(ctx, testUID, today)
		assert.NoError(t, err)
		assert.Equal(t, len(view.DailyParams.Tasks), len(again.DailyParams.Tasks))
	})
}

func TestDashboardComposeMissingSummary(t *testing.T) {
	service.InitValidator()
	ctx := context.Background()
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	today := now.Format("2006-01-02")
	tasksRepo := newTasksRepoFake()
	habitsRepo := &habitsRepoMock{}
	serv := service.NewDashboardService(
		&usersRepoMock{user: &entity.User{ID: testUID}},
		&dailyLogsRepoMock{},
		&workoutRepoMock{},
		&sectionsRepoMock{},
		&shoppingRepoMock{},
		&habitLogsRepoMock{},
		service.NewHabitsService(habitsRepo, &habitLogsRepoMock{}),
		service.NewTasksService(tasksRepo, habitsRepo),
	).WithClock(func() time.Time { return now })
	view, err := serv.Compose(ctx, testUID, today)
	assert.NoError(t, err)
	assert.Equal(t, today, view.DailyParams.Date)
	assert.Equal(t, 0, view.DailyParams.TLEMinutes)
}

func TestDashboardComposeFetchError(t *testing.T) {
	service.InitValidator()
	ctx := context.Background()
	tasksRepo := newTasksRepoFake()
	habitsRepo := &habitsRepoMock{}
	serv := service.NewDashboardService(
		&usersRepoMock{state: stateDBError},
		&dailyLogsRepoMock{},
		&workoutRepoMock{},
		&sectionsRepoMock{},
		&shoppingRepoMock{},
		&habitLogsRepoMock{},
		service.NewHabitsService(habitsRepo, &habitLogsRepoMock{}),
		service.NewTasksService(tasksRepo, habitsRepo),
	)
	_, err := serv.Compose(ctx, testUID, "2025-06-15")
	assert.Error(t, err)
}

package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	errorvalues "github.com/limbo/exectrack/internal/error_values"
	"github.com/limbo/exectrack/internal/repository"
	"github.com/limbo/exectrack/internal/service"
	"github.com/limbo/exectrack/pkg/entity"
	"github.com/stretchr/testify/assert"
)

type mockState int

const (
	stateSuccess mockState = iota
	stateDBError
	stateNotFoundError
	stateOwnerNotFoundError
	stateDuplicateError
)

// tasksRepoFake keeps materialized rows in memory so idempotency can be
// observed across calls.
type tasksRepoFake struct {
	state         mockState
	nextID        int64
	rows          []*entity.Task
	completedRows []*entity.Task
	habitSet      map[string]map[uuid.UUID]struct{}
}

func newTasksRepoFake() *tasksRepoFake {
	return &tasksRepoFake{
		nextID:   1,
		habitSet: make(map[string]map[uuid.UUID]struct{}),
	}
}

func (f *tasksRepoFake) Create(ctx context.Context, task *entity.Task) (int64, error) {
	switch f.state {
	case stateDBError:
		return 0, errors.New("db error")
	case stateDuplicateError:
		return 0, errorvalues.ErrTaskExists
	case stateOwnerNotFoundError:
		return 0, errorvalues.ErrOwnerNotFound
	}
	id := f.nextID
	f.nextID++
	t := *task
	t.ID = id
	f.rows = append(f.rows, &t)
	return id, nil
}

func (f *tasksRepoFake) InsertHabitTasks(ctx context.Context, uid uuid.UUID, date string, habits []*entity.Habit) (int, error) {
	if f.state == stateDBError {
		return 0, errors.New("db error")
	}
	set, ok := f.habitSet[date]
	if !ok {
		set = make(map[uuid.UUID]struct{})
		f.habitSet[date] = set
	}
	inserted := 0
	for _, h := range habits {
		if _, exists := set[h.ID]; exists {
			continue
		}
		set[h.ID] = struct{}{}
		hid := h.ID
		id := f.nextID
		f.nextID++
		f.rows = append(f.rows, &entity.Task{
			ID:       id,
			UserID:   uid,
			Date:     date,
			Title:    h.Title,
			Priority: h.Priority,
			HabitID:  &hid,
		})
		inserted++
	}
	return inserted, nil
}

func (f *tasksRepoFake) HabitRefsForDate(ctx context.Context, uid uuid.UUID, date string) ([]uuid.UUID, error) {
	if f.state == stateDBError {
		return nil, errors.New("db error")
	}
	refs := make([]uuid.UUID, 0)
	for id := range f.habitSet[date] {
		refs = append(refs, id)
	}
	return refs, nil
}

func (f *tasksRepoFake) ListForDay(ctx context.Context, uid uuid.UUID, date string) ([]*entity.Task, error) {
	if f.state == stateDBError {
		return nil, errors.New("db error")
	}
	out := make([]*entity.Task, 0)
	for _, t := range f.rows {
		if t.Date == date || (t.Date < date && !t.Completed) {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *tasksRepoFake) ListAll(ctx context.Context, uid uuid.UUID) ([]*entity.Task, error) {
	return f.rows, nil
}

func (f *tasksRepoFake) ListCompletedInRange(ctx context.Context, uid uuid.UUID, from, to string) ([]*entity.Task, error) {
	if f.state == stateDBError {
		return nil, errors.New("db error")
	}
	out := make([]*entity.Task, 0)
	for _, t := range f.completedRows {
		if t.Completed && t.Date >= from && t.Date <= to {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *tasksRepoFake) Update(ctx context.Context, uid uuid.UUID, upd *repository.TaskUpdate) error {
	switch f.state {
	case stateDBError:
		return errors.New("db error")
	case stateNotFoundError:
		return errorvalues.ErrTaskNotFound
	}
	return nil
}

func (f *tasksRepoFake) Delete(ctx context.Context, uid uuid.UUID, id int64) error {
	switch f.state {
	case stateDBError:
		return errors.New("db error")
	case stateNotFoundError:
		return errorvalues.ErrTaskNotFound
	}
	return nil
}

func (f *tasksRepoFake) CountActiveBySection(ctx context.Context, uid uuid.UUID, sectionID int64) (int, error) {
	return 0, nil
}

type habitsRepoMock struct {
	state    mockState
	habits   []*entity.Habit
	archived []uuid.UUID
}

func (m *habitsRepoMock) Create(ctx context.Context, habit *entity.Habit) (uuid.UUID, error) {
	switch m.state {
	case stateDBError:
		return uuid.UUID{}, errors.New("db error")
	case stateOwnerNotFoundError:
		return uuid.UUID{}, errorvalues.ErrOwnerNotFound
	}
	return uuid.New(), nil
}

func (m *habitsRepoMock) GetByID(ctx context.Context, uid, id uuid.UUID) (*entity.Habit, error) {
	switch m.state {
	case stateDBError:
		return nil, errors.New("db error")
	case stateNotFoundError:
		return nil, errorvalues.ErrHabitNotFound
	}
	for _, h := range m.habits {
		if h.ID == id {
			return h, nil
		}
	}
	return nil, errorvalues.ErrHabitNotFound
}

func (m *habitsRepoMock) GetByUserID(ctx context.Context, uid uuid.UUID) ([]*entity.Habit, error) {
	if m.state == stateDBError {
		return nil, errors.New("db error")
	}
	return m.habits, nil
}

func (m *habitsRepoMock) GetActive(ctx context.Context, uid uuid.UUID) ([]*entity.Habit, error) {
	if m.state == stateDBError {
		return nil, errors.New("db error")
	}
	active := make([]*entity.Habit, 0)
	for _, h := range m.habits {
		if !h.Archived {
			active = append(active, h)
		}
	}
	return active, nil
}

func (m *habitsRepoMock) Update(ctx context.Context, uid uuid.UUID, upd *repository.HabitUpdate) error {
	switch m.state {
	case stateDBError:
		return errors.New("db error")
	case stateNotFoundError:
		return errorvalues.ErrHabitNotFound
	}
	return nil
}

func (m *habitsRepoMock) Archive(ctx context.Context, uid, id uuid.UUID) error {
	switch m.state {
	case stateDBError:
		return errors.New("db error")
	case stateNotFoundError:
		return errorvalues.ErrHabitNotFound
	}
	m.archived = append(m.archived, id)
	return nil
}

func (m *habitsRepoMock) Delete(ctx context.Context, uid, id uuid.UUID) error {
	switch m.state {
	case stateDBError:
		return errors.New("db error")
	case stateNotFoundError:
		return errorvalues.ErrHabitNotFound
	}
	return nil
}

var testUID = uuid.New()

func testTemplates() []*entity.Habit {
	return []*entity.Habit{
		{ID: uuid.New(), UserID: testUID, Title: "morning run", Priority: 2},
		{ID: uuid.New(), UserID: testUID, Title: "read", Priority: 1},
		{ID: uuid.New(), UserID: testUID, Title: "old one", Priority: 1, Archived: true},
	}
}

func TestMaterializeDay(t *testing.T) {
	service.InitValidator()
	ctx := context.Background()
	date := "2025-06-15"
	t.Run("creates one row per active template", func(t *testing.T) {
		tasksRepo := newTasksRepoFake()
		habitsRepo := &habitsRepoMock{habits: testTemplates()}
		serv := service.NewTasksService(tasksRepo, habitsRepo)
		inserted, err := serv.MaterializeDay(ctx, testUID, date)
		assert.NoError(t, err)
		assert.Equal(t, 2, inserted)
		tasks, _ := tasksRepo.ListForDay(ctx, testUID, date)
		assert.Equal(t, 2, len(tasks))
	})
	t.Run("second call inserts nothing", func(t *testing.T) {
		tasksRepo := newTasksRepoFake()
		habitsRepo := &habitsRepoMock{habits: testTemplates()}
		serv := service.NewTasksService(tasksRepo, habitsRepo)
		_, err := serv.MaterializeDay(ctx, testUID, date)
		assert.NoError(t, err)
		inserted, err := serv.MaterializeDay(ctx, testUID, date)
		assert.NoError(t, err)
		assert.Equal(t, 0, inserted)
		tasks, _ := tasksRepo.ListForDay(ctx, testUID, date)
		assert.Equal(t, 2, len(tasks))
	})
	t.Run("no templates is a no-op", func(t *testing.T) {
		tasksRepo := newTasksRepoFake()
		serv := service.NewTasksService(tasksRepo, &habitsRepoMock{})
		inserted, err := serv.MaterializeDay(ctx, testUID, date)
		assert.NoError(t, err)
		assert.Equal(t, 0, inserted)
	})
	t.Run("habits repo error", func(t *testing.T) {
		tasksRepo := newTasksRepoFake()
		serv := service.NewTasksService(tasksRepo, &habitsRepoMock{state: stateDBError})
		_, err := serv.MaterializeDay(ctx, testUID, date)
		assert.Error(t, err)
	})
}

func TestDayTasksCarryOver(t *testing.T) {
	service.InitValidator()
	ctx := context.Background()
	tasksRepo := newTasksRepoFake()
	serv := service.NewTasksService(tasksRepo, &habitsRepoMock{})
	tasksRepo.rows = []*entity.Task{
		{ID: 1, Date: "2025-06-15", Title: "today's", Completed: false},
		{ID: 2, Date: "2025-06-13", Title: "stale open", Completed: false},
		{ID: 3, Date: "2025-06-13", Title: "stale done", Completed: true},
		{ID: 4, Date: "2025-06-16", Title: "tomorrow's", Completed: false},
	}
	tasks, err := serv.DayTasks(ctx, testUID, "2025-06-15")
	assert.NoError(t, err)
	titles := make([]string, 0, len(tasks))
	for _, task := range tasks {
		titles = append(titles, task.Title)
	}
	assert.ElementsMatch(t, []string{"today's", "stale open"}, titles)
}

func TestCreateTask(t *testing.T) {
	service.InitValidator()
	ctx := context.Background()
	t.Run("success with defaults", func(t *testing.T) {
		serv := service.NewTasksService(newTasksRepoFake(), &habitsRepoMock{})
		task, err := serv.CreateTask(ctx, testUID, &service.CreateTaskRequest{
			Date:  "2025-06-15",
			Title: "write report",
		})
		assert.NoError(t, err)
		assert.Equal(t, 1, task.Priority)
		assert.NotZero(t, task.ID)
	})
	t.Run("missing date", func(t *testing.T) {
		serv := service.NewTasksService(newTasksRepoFake(), &habitsRepoMock{})
		_, err := serv.CreateTask(ctx, testUID, &service.CreateTaskRequest{Title: "no date"})
		assert.Error(t, err)
	})
	t.Run("malformed date", func(t *testing.T) {
		serv := service.NewTasksService(newTasksRepoFake(), &habitsRepoMock{})
		_, err := serv.CreateTask(ctx, testUID, &service.CreateTaskRequest{Date: "15-06-2025", Title: "bad date"})
		assert.Error(t, err)
	})
	t.Run("duplicate habit occurrence", func(t *testing.T) {
		repo := newTasksRepoFake()
		repo.state = stateDuplicateError
		serv := service.NewTasksService(repo, &habitsRepoMock{})
		_, err := serv.CreateTask(ctx, testUID, &service.CreateTaskRequest{Date: "2025-06-15", Title: "dup"})
		assert.ErrorIs(t, err, errorvalues.ErrTaskExists)
	})
}

func TestDeleteTask(t *testing.T) {
	service.InitValidator()
	ctx := context.Background()
	t.Run("row deletion", func(t *testing.T) {
		serv := service.NewTasksService(newTasksRepoFake(), &habitsRepoMock{})
		id := int64(7)
		err := serv.DeleteTask(ctx, testUID, &service.DeleteTaskRequest{ID: &id})
		assert.NoError(t, err)
	})
	t.Run("template deletion archives the habit", func(t *testing.T) {
		habitsRepo := &habitsRepoMock{}
		serv := service.NewTasksService(newTasksRepoFake(), habitsRepo)
		hid := uuid.New()
		err := serv.DeleteTask(ctx, testUID, &service.DeleteTaskRequest{HabitID: &hid, IsHabitTemplate: true})
		assert.NoError(t, err)
		assert.Contains(t, habitsRepo.archived, hid)
	})
	t.Run("template deletion without habit id", func(t *testing.T) {
		serv := service.NewTasksService(newTasksRepoFake(), &habitsRepoMock{})
		err := serv.DeleteTask(ctx, testUID, &service.DeleteTaskRequest{IsHabitTemplate: true})
		assert.Error(t, err)
	})
	t.Run("row not found", func(t *testing.T) {
		repo := newTasksRepoFake()
		repo.state = stateNotFoundError
		serv := service.NewTasksService(repo, &habitsRepoMock{})
		id := int64(404)
		err := serv.DeleteTask(ctx, testUID, &service.DeleteTaskRequest{ID: &id})
		assert.ErrorIs(t, err, errorvalues.ErrTaskNotFound)
	})
}

package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/limbo/exectrack/pkg/entity"
)

type RegisterRequest struct {
	Name     string `validate:"required,min=1,max=100"`
	Email    string `validate:"required,email,max=255"`
	Password string `validate:"required,min=8,max=72"`
}

type UserServiceI interface {
	// Validates credentials, creates new row in database. Returns user's data with ID
	Register(ctx context.Context, req *RegisterRequest) (*entity.User, error)
	// Compares given credentials. If ok, gives back user's data with ID
	Login(ctx context.Context, email, password string) (*entity.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
}

type CreateHabitRequest struct {
	Title       string `validate:"required,max=200"`
	Subtitle    string `validate:"max=200"`
	Icon        string
	Color       string
	Priority    int `validate:"omitempty,min=1,max=3"`
	TrackStreak bool
}

type UpdateHabitRequest struct {
	ID          uuid.UUID `validate:"required"`
	Title       *string
	Subtitle    *string
	Icon        *string
	Color       *string
	Priority    *int
	TrackStreak *bool
}

type LogHabitRequest struct {
	HabitID   uuid.UUID `validate:"required"`
	Date      string    `validate:"required,calendar_date"`
	Completed *bool
	TimeSpent *int
	Note      *string
}

type HabitsServiceI interface {
	CreateHabit(ctx context.Context, uid uuid.UUID, req *CreateHabitRequest) (*entity.Habit, error)
	// Templates joined with their log for the date; streak fields are
	// left zero, the dashboard composer fills them
	GetHabitsWithLogs(ctx context.Context, uid uuid.UUID, date string) ([]*entity.HabitWithLog, error)
	UpdateHabit(ctx context.Context, uid uuid.UUID, req *UpdateHabitRequest) error
	// Soft delete: past task rows keep pointing at the template
	ArchiveHabit(ctx context.Context, uid, id uuid.UUID) error
	// Hard delete together with the habit's logs
	DeleteHabit(ctx context.Context, uid, id uuid.UUID) error
	// Coalescing upsert of the (habit, date) log
	LogHabit(ctx context.Context, uid uuid.UUID, req *LogHabitRequest) error
}

type CreateTaskRequest struct {
	Date          string `validate:"required,calendar_date"`
	Title         string `validate:"required,max=300"`
	Priority      int    `validate:"omitempty,min=1,max=3"`
	HabitID       *uuid.UUID
	SectionID     *int64
	Note          *string
	EstimatedTime *int
}

type UpdateTaskRequest struct {
	ID            int64 `validate:"required"`
	Title         *string
	Completed     *bool
	Priority      *int
	Note          *string
	SectionID     *int64
	EstimatedTime *int
}

// DeleteTaskRequest deletes one task row, or archives the habit template
// behind it when IsHabitTemplate is set.
type DeleteTaskRequest struct {
	ID              *int64
	HabitID         *uuid.UUID
	IsHabitTemplate bool
}

type TasksServiceI interface {
	CreateTask(ctx context.Context, uid uuid.UUID, req *CreateTaskRequest) (*entity.Task, error)
	UpdateTask(ctx context.Context, uid uuid.UUID, req *UpdateTaskRequest) error
	DeleteTask(ctx context.Context, uid uuid.UUID, req *DeleteTaskRequest) error
	// The daily materializer: one task per active template for the date,
	// idempotent and race-safe. Returns the number of rows inserted
	MaterializeDay(ctx context.Context, uid uuid.UUID, date string) (int, error)
	// The task aggregator: the date's rows plus older incomplete ones
	DayTasks(ctx context.Context, uid uuid.UUID, date string) ([]*entity.Task, error)
}

type UpsertDailyRequest struct {
	Date           string `validate:"required,calendar_date"`
	TLEMinutes     *int
	Note           *string
	TomorrowIntent *string
	DsaDone        *bool
	DevDone        *bool
	GymDone        *bool
	DsaMinutes     *int
	DevMinutes     *int
	GymMinutes     *int
	DsaNote        *string
	DevNote        *string
	GymNote        *string
}

// DayView is the GET /daily payload: summary (or defaults), the carry-over
// task list after materialization, the user's sections and memory rules.
type DayView struct {
	entity.DailyLog
	Tasks    []*entity.Task       `json:"tasks"`
	Sections []*entity.Section    `json:"sections"`
	Rules    []*entity.MemoryRule `json:"rules"`
}

type DayHistory struct {
	Date       string         `json:"date"`
	Note       string         `json:"note"`
	TLEMinutes int            `json:"tle_minutes"`
	Tasks      []*entity.Task `json:"tasks"`
}

type WeeklyStats struct {
	DsaProblems int `json:"dsa_problems"`
	GymDays     int `json:"gym_days"`
	DevDays     int `json:"dev_days"`
	TotalTLE    int `json:"total_tle"`
}

type DailyServiceI interface {
	GetDay(ctx context.Context, uid uuid.UUID, date string) (*DayView, error)
	UpsertDaily(ctx context.Context, uid uuid.UUID, req *UpsertDailyRequest) error
	History(ctx context.Context, uid uuid.UUID) ([]*DayHistory, error)
	// Rolling 7-day window ending now
	WeeklyStats(ctx context.Context, uid uuid.UUID, now time.Time) (*WeeklyStats, error)
	WorkoutSchedule(ctx context.Context, uid uuid.UUID) ([]*entity.WorkoutDay, error)
	UpsertWorkoutDay(ctx context.Context, uid uuid.UUID, day *entity.WorkoutDay) error
	CreateRule(ctx context.Context, uid uuid.UUID, content string) (*entity.MemoryRule, error)
	DeleteRule(ctx context.Context, uid uuid.UUID, id int64) error
}

type SectionsServiceI interface {
	CreateSection(ctx context.Context, uid uuid.UUID, title string) (*entity.Section, error)
	GetSections(ctx context.Context, uid uuid.UUID) ([]*entity.Section, error)
	// Refused while incomplete tasks still reference the section
	DeleteSection(ctx context.Context, uid uuid.UUID, id int64) error
}

type CreateItemRequest struct {
	Item     string `validate:"required,max=300"`
	Category string
	Note     string
}

type ShoppingServiceI interface {
	CreateItem(ctx context.Context, uid uuid.UUID, req *CreateItemRequest) (int64, error)
	GetItems(ctx context.Context, uid uuid.UUID) ([]*entity.ShoppingItem, error)
	SetItemCompleted(ctx context.Context, uid uuid.UUID, id int64, completed bool) error
	DeleteItem(ctx context.Context, uid uuid.UUID, id int64) error
	CreateCategory(ctx context.Context, uid uuid.UUID, name string) (int64, error)
	GetCategories(ctx context.Context, uid uuid.UUID) ([]*entity.ShoppingCategory, error)
	DeleteCategory(ctx context.Context, uid uuid.UUID, id int64) error
}

// DailyParams is the dashboard slice the "today" panel renders from.
type DailyParams struct {
	entity.DailyLog
	Tasks           []*entity.Task            `json:"tasks"`
	Sections        []*entity.Section         `json:"sections"`
	Streaks         entity.PerformanceStreaks `json:"streaks"`
	WorkoutSchedule []*entity.WorkoutDay      `json:"workout_schedule"`
}

type DashboardView struct {
	DailyParams   DailyParams                `json:"dailyParams"`
	Habits        []*entity.HabitWithLog     `json:"habits"`
	Sections      []*entity.Section          `json:"sections"`
	User          *entity.User               `json:"user"`
	BuyingList    []*entity.ShoppingItem     `json:"buyingList"`
	BuyCategories []*entity.ShoppingCategory `json:"buyCategories"`
}

type DashboardServiceI interface {
	// One consistent payload per request: independent fetches run
	// concurrently, then materialize, then tasks, then both streak flavors
	Compose(ctx context.Context, uid uuid.UUID, date string) (*DashboardView, error)
}

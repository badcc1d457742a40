package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/limbo/exectrack/pkg/entity"
)

type UsersRepositoryI interface {
	// Creates new user in database
	Create(ctx context.Context, user *entity.User) (uuid.UUID, error)
	// Looks up user by email. Can be used for login
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	// Looks up user by uid. Can be used for authorization middleware
	FindByID(ctx context.Context, uid uuid.UUID) (*entity.User, error)
}

type HabitsRepositoryI interface {
	// Creates new habit template. Title, UserID are necessary
	Create(ctx context.Context, habit *entity.Habit) (uuid.UUID, error)
	// Searches habit with given id scoped to its owner
	GetByID(ctx context.Context, uid, id uuid.UUID) (*entity.Habit, error)
	// Lists all templates owned by uid, archived included
	GetByUserID(ctx context.Context, uid uuid.UUID) ([]*entity.Habit, error)
	// Lists non-archived templates, the materializer's input
	GetActive(ctx context.Context, uid uuid.UUID) ([]*entity.Habit, error)
	// Partial update of template fields, nil means keep stored value
	Update(ctx context.Context, uid uuid.UUID, upd *HabitUpdate) error
	// Soft-deletes the template so past task rows stay valid
	Archive(ctx context.Context, uid, id uuid.UUID) error
	// Hard-deletes the template together with its logs
	Delete(ctx context.Context, uid, id uuid.UUID) error
}

// HabitUpdate carries optional template fields for partial updates.
type HabitUpdate struct {
	ID          uuid.UUID
	Title       *string
	Subtitle    *string
	Icon        *string
	Color       *string
	Priority    *int
	TrackStreak *bool
}

type TasksRepositoryI interface {
	// Creates an ad-hoc or habit-derived task row
	Create(ctx context.Context, task *entity.Task) (int64, error)
	// Inserts missing habit tasks for a date inside one transaction,
	// ignoring rows already materialized. Returns inserted count
	InsertHabitTasks(ctx context.Context, uid uuid.UUID, date string, habits []*entity.Habit) (int, error)
	// Habit ids already holding a task row on date
	HabitRefsForDate(ctx context.Context, uid uuid.UUID, date string) ([]uuid.UUID, error)
	// The carry-over view: rows on date plus older incomplete rows,
	// section titles joined, priority desc then id asc
	ListForDay(ctx context.Context, uid uuid.UUID, date string) ([]*entity.Task, error)
	// All rows of uid ordered by priority desc (history view)
	ListAll(ctx context.Context, uid uuid.UUID) ([]*entity.Task, error)
	// Completed rows inside a date range (stats view)
	ListCompletedInRange(ctx context.Context, uid uuid.UUID, from, to string) ([]*entity.Task, error)
	// Partial update, nil fields keep stored values
	Update(ctx context.Context, uid uuid.UUID, upd *TaskUpdate) error
	Delete(ctx context.Context, uid uuid.UUID, id int64) error
	// Count of not-completed rows referencing a section
	CountActiveBySection(ctx context.Context, uid uuid.UUID, sectionID int64) (int, error)
}

// TaskUpdate carries optional task fields for partial updates.
type TaskUpdate struct {
	ID            int64
	Title         *string
	Completed     *bool
	Priority      *int
	Note          *string
	SectionID     *int64
	EstimatedTime *int
}

type HabitLogsRepositoryI interface {
	// Upserts the (uid, habit, date) log with coalesce semantics; a
	// false->true completed transition re-stamps created_at
	Upsert(ctx context.Context, uid uuid.UUID, upd *HabitLogUpsert) error
	// Logs for one date, the dashboard habit-card join
	GetForDate(ctx context.Context, uid uuid.UUID, date string) ([]*entity.HabitLog, error)
	// All completed logs of uid, newest created_at first, streak input
	ListCompleted(ctx context.Context, uid uuid.UUID) ([]*entity.HabitLog, error)
	// Removes logs of one habit (used by hard habit deletion)
	DeleteByHabit(ctx context.Context, uid, habitID uuid.UUID) error
}

// HabitLogUpsert carries optional log fields; nil keeps stored values.
type HabitLogUpsert struct {
	HabitID   uuid.UUID
	Date      string
	Completed *bool
	TimeSpent *int
	Note      *string
}

type DailyLogsRepositoryI interface {
	// Row for a date or ErrNoRows mapped to nil
	Get(ctx context.Context, uid uuid.UUID, date string) (*entity.DailyLog, error)
	// Coalescing upsert: omitted fields never overwrite stored values
	Upsert(ctx context.Context, uid uuid.UUID, upd *DailyLogUpsert) error
	// Last `limit` rows ordered by date desc, streak engine input
	History(ctx context.Context, uid uuid.UUID, limit int) ([]*entity.DailyLog, error)
	// Rows inside a date range (stats view)
	Range(ctx context.Context, uid uuid.UUID, from, to string) ([]*entity.DailyLog, error)
}

// DailyLogUpsert carries optional daily summary fields; nil keeps stored
// values on conflict.
type DailyLogUpsert struct {
	Date           string
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

type SectionsRepositoryI interface {
	Create(ctx context.Context, uid uuid.UUID, title string) (*entity.Section, error)
	List(ctx context.Context, uid uuid.UUID) ([]*entity.Section, error)
	Delete(ctx context.Context, uid uuid.UUID, id int64) error
}

type ShoppingRepositoryI interface {
	CreateItem(ctx context.Context, item *entity.ShoppingItem) (int64, error)
	ListItems(ctx context.Context, uid uuid.UUID) ([]*entity.ShoppingItem, error)
	UpdateItem(ctx context.Context, uid uuid.UUID, id int64, completed bool) error
	DeleteItem(ctx context.Context, uid uuid.UUID, id int64) error
	// Uncompleted items still grouped under the category name
	CountItemsByCategory(ctx context.Context, uid uuid.UUID, name string) (int, error)
	CreateCategory(ctx context.Context, uid uuid.UUID, name string) (int64, error)
	FindCategory(ctx context.Context, uid uuid.UUID, id int64) (*entity.ShoppingCategory, error)
	ListCategories(ctx context.Context, uid uuid.UUID) ([]*entity.ShoppingCategory, error)
	DeleteCategory(ctx context.Context, uid uuid.UUID, id int64) error
}

type RulesRepositoryI interface {
	Create(ctx context.Context, uid uuid.UUID, content string) (*entity.MemoryRule, error)
	List(ctx context.Context, uid uuid.UUID) ([]*entity.MemoryRule, error)
	Delete(ctx context.Context, uid uuid.UUID, id int64) error
}

type WorkoutRepositoryI interface {
	// Schedule rows ordered by day_index
	List(ctx context.Context, uid uuid.UUID) ([]*entity.WorkoutDay, error)
	// Upsert on (uid, day_index)
	Upsert(ctx context.Context, uid uuid.UUID, day *entity.WorkoutDay) error
}

type DBConfig interface {
	ConnString() string
}

type PgConnection interface {
	Ping(ctx context.Context) error
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Begin(ctx context.Context) (pgx.Tx, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type PGCfg struct {
	Address  string
	Username string
	Password string
	DB       string
}

func (pgcfg *PGCfg) ConnString() string {
	return fmt.Sprintf("postgresql://%s:%s@%s/%s", pgcfg.Username, pgcfg.Password, pgcfg.Address, pgcfg.DB)
}

package entity

import (
	"time"

	"github.com/google/uuid"
)

// Dates are carried as YYYY-MM-DD strings end to end; the streak engine
// parses them only where calendar arithmetic is needed.

type User struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
}

// Habit is a recurring habit template. Daily task rows are materialized
// from non-archived templates; archiving keeps historical task rows intact.
type Habit struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"uid"`
	Title       string    `json:"title"`
	Subtitle    string    `json:"subtitle"`
	Icon        string    `json:"icon"`
	Color       string    `json:"color"`
	Priority    int       `json:"priority"`
	TrackStreak bool      `json:"track_streak"`
	Archived    bool      `json:"is_archived"`
	CreatedAt   time.Time `json:"created_at"`
}

// Task is a dated occurrence: either ad-hoc (HabitID nil) or materialized
// from a habit template (HabitID set, at most one per user/date/habit).
type Task struct {
	ID            int64      `json:"id"`
	UserID        uuid.UUID  `json:"-"`
	Date          string     `json:"date"`
	Title         string     `json:"title"`
	Completed     bool       `json:"completed"`
	Priority      int        `json:"priority"`
	Note          *string    `json:"note"`
	HabitID       *uuid.UUID `json:"habit_id"`
	SectionID     *int64     `json:"section_id"`
	EstimatedTime *int       `json:"estimated_time"`
	SectionTitle  *string    `json:"section_title"`
	CreatedAt     time.Time  `json:"created_at"`
}

// HabitLog is the per-day completion record a habit streak is derived from.
// CreatedAt is re-stamped on a not-completed -> completed transition and
// anchors the 24h expiry countdown.
type HabitLog struct {
	ID        int64     `json:"log_id"`
	UserID    uuid.UUID `json:"-"`
	HabitID   uuid.UUID `json:"habit_id"`
	Date      string    `json:"date"`
	Completed bool      `json:"completed"`
	TimeSpent int       `json:"time_spent"`
	Note      string    `json:"note"`
	CreatedAt time.Time `json:"created_at"`
}

// DailyLog is the one-per-day reflection row. Upserted with coalesce
// semantics, never deleted.
type DailyLog struct {
	UserID         uuid.UUID `json:"-"`
	Date           string    `json:"date"`
	TLEMinutes     int       `json:"tle_minutes"`
	Note           string    `json:"note"`
	TomorrowIntent string    `json:"tomorrow_intent"`
	DsaDone        bool      `json:"dsa_done"`
	DevDone        bool      `json:"dev_done"`
	GymDone        bool      `json:"gym_done"`
	DsaMinutes     int       `json:"dsa_minutes"`
	DevMinutes     int       `json:"dev_minutes"`
	GymMinutes     int       `json:"gym_minutes"`
	DsaNote        string    `json:"dsa_note"`
	DevNote        string    `json:"dev_note"`
	GymNote        string    `json:"gym_note"`
}

type Section struct {
	ID        int64     `json:"id"`
	UserID    uuid.UUID `json:"-"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
}

// MemoryRule is a standing principle pinned to the daily view.
type MemoryRule struct {
	ID        int64     `json:"id"`
	UserID    uuid.UUID `json:"-"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

type ShoppingItem struct {
	ID        int64     `json:"id"`
	UserID    uuid.UUID `json:"-"`
	Item      string    `json:"item"`
	Category  string    `json:"category"`
	Completed bool      `json:"completed"`
	Note      string    `json:"note"`
	CreatedAt time.Time `json:"created_at"`
}

type ShoppingCategory struct {
	ID        int64     `json:"id"`
	UserID    uuid.UUID `json:"-"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// WorkoutDay is one row of the weekly reference schedule, unique per
// (user, day index).
type WorkoutDay struct {
	ID       int64     `json:"id"`
	UserID   uuid.UUID `json:"-"`
	DayIndex int       `json:"day_index"`
	Title    string    `json:"title"`
	Details  string    `json:"details"`
}

// HabitStreakInfo is the recomputed live streak state for one habit.
type HabitStreakInfo struct {
	Streak    int        `json:"streak"`
	AtRisk    bool       `json:"streak_at_risk"`
	ExpiresAt *time.Time `json:"streak_expires_at"`
}

// HabitWithLog is a template joined with its log for one date plus the
// recomputed streak, as rendered on the dashboard habit cards.
type HabitWithLog struct {
	Habit
	LogID     *int64 `json:"log_id"`
	Completed bool   `json:"completed"`
	TimeSpent int    `json:"time_spent"`
	LogNote   string `json:"log_note"`
	HabitStreakInfo
}

// PerformanceStreaks are the consecutive-day counts for the fixed pillar
// fields tracked on daily logs.
type PerformanceStreaks struct {
	Dsa int `json:"dsa"`
	Dev int `json:"dev"`
	Gym int `json:"gym"`
}

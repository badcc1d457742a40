package service

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/limbo/exectrack/pkg/entity"
	"github.com/limbo/exectrack/pkg/metrics"
)

const dayFormat = "2006-01-02"

// The streak engine is a pure function of historical rows and the clock.
// Both flavors are recomputed on every read; no stored counter is trusted.

const (
	// Hours without a new completion before a habit streak dies.
	habitStreakExpiryHours = 48
	// Hours after which the streak is flagged as at risk.
	habitStreakRiskHours = 20
	// The countdown shown to the user: last completion + 24h.
	habitStreakWindow = 24 * time.Hour
)

// PerformanceStreak counts consecutive days for one daily-log pillar.
// history must be ordered by date descending. The streak anchors on today
// or yesterday; an older most-recent hit means the streak is already
// broken. The walk tolerates 0.9-1.1 day gaps to absorb date-diff noise.
func PerformanceStreak(history []*entity.DailyLog, done func(*entity.DailyLog) bool, now time.Time) int {
	metrics.StreakComputations.WithLabelValues("performance").Inc()
	today := now.Format(dayFormat)
	yesterday := now.AddDate(0, 0, -1).Format(dayFormat)

	start := -1
	for i, h := range history {
		if done(h) {
			if h.Date == today || h.Date == yesterday {
				start = i
				break
			}
			return 0
		}
	}
	if start == -1 {
		return 0
	}

	streak := 1
	last, ok := parseDay(history[start].Date)
	if !ok {
		return streak
	}
	for i := start + 1; i < len(history); i++ {
		if !done(history[i]) {
			break
		}
		curr, ok := parseDay(history[i].Date)
		if !ok {
			break
		}
		diff := last.Sub(curr).Hours() / 24
		if diff >= 0.9 && diff <= 1.1 {
			streak++
			last = curr
		} else {
			break
		}
	}
	return streak
}

// HabitStreak derives the live streak of one habit from the user's
// completed logs (ordered by created_at descending). Two liveness checks
// run independently: the 48h window on the last completion instant and the
// one-day gap on calendar dates. They can disagree near midnight; both are
// kept deliberately.
func HabitStreak(completedLogs []*entity.HabitLog, habitID uuid.UUID, now time.Time) entity.HabitStreakInfo {
	metrics.StreakComputations.WithLabelValues("habit").Inc()
	hLogs := make([]*entity.HabitLog, 0, len(completedLogs))
	for _, l := range completedLogs {
		if l.HabitID == habitID && l.Completed {
			hLogs = append(hLogs, l)
		}
	}
	if len(hLogs) == 0 {
		return entity.HabitStreakInfo{}
	}

	lastInstant := hLogs[0].CreatedAt
	hoursSince := now.Sub(lastInstant).Hours()
	if hoursSince > habitStreakExpiryHours {
		return entity.HabitStreakInfo{}
	}

	days := distinctDaysDesc(hLogs)
	if len(days) == 0 {
		return entity.HabitStreakInfo{}
	}
	lastDay, ok := parseDay(days[0])
	if !ok {
		return entity.HabitStreakInfo{}
	}
	if dayDiff(now, lastDay) > 1 {
		return entity.HabitStreakInfo{}
	}

	count := 1
	for i := 1; i < len(days); i++ {
		curr, ok := parseDay(days[i])
		if !ok {
			break
		}
		if dayDiff(lastDay, curr) == 1 {
			count++
			lastDay = curr
		} else {
			break
		}
	}

	expiresAt := lastInstant.Add(habitStreakWindow)
	return entity.HabitStreakInfo{
		Streak:    count,
		AtRisk:    hoursSince > habitStreakRiskHours,
		ExpiresAt: &expiresAt,
	}
}

func distinctDaysDesc(logs []*entity.HabitLog) []string {
	seen := make(map[string]struct{}, len(logs))
	days := make([]string, 0, len(logs))
	for _, l := range logs {
		if l.Date == "" {
			continue
		}
		if _, ok := seen[l.Date]; ok {
			continue
		}
		seen[l.Date] = struct{}{}
		days = append(days, l.Date)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(days)))
	return days
}

func parseDay(s string) (time.Time, bool) {
	t, err := time.Parse(dayFormat, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// dayDiff compares calendar days, ignoring the time-of-day component.
func dayDiff(a, b time.Time) int {
	ad := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	bd := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int(ad.Sub(bd).Hours() / 24)
}

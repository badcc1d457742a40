package service_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/limbo/exectrack/internal/service"
	"github.com/limbo/exectrack/pkg/entity"
	"github.com/stretchr/testify/assert"
)

var streakNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func day(offset int) string {
	return streakNow.AddDate(0, 0, offset).Format("2006-01-02")
}

func dsaDone(l *entity.DailyLog) bool {
	return l.DsaDone
}

func dsaHistory(dates ...string) []*entity.DailyLog {
	logs := make([]*entity.DailyLog, 0, len(dates))
	for _, d := range dates {
		logs = append(logs, &entity.DailyLog{Date: d, DsaDone: true})
	}
	return logs
}

func TestPerformanceStreak(t *testing.T) {
	t.Run("empty history", func(t *testing.T) {
		assert.Equal(t, 0, service.PerformanceStreak(nil, dsaDone, streakNow))
	})
	t.Run("single hit today", func(t *testing.T) {
		assert.Equal(t, 1, service.PerformanceStreak(dsaHistory(day(0)), dsaDone, streakNow))
	})
	t.Run("anchors on yesterday", func(t *testing.T) {
		assert.Equal(t, 2, service.PerformanceStreak(dsaHistory(day(-1), day(-2)), dsaDone, streakNow))
	})
	t.Run("last hit two days ago is broken", func(t *testing.T) {
		assert.Equal(t, 0, service.PerformanceStreak(dsaHistory(day(-2), day(-3)), dsaDone, streakNow))
	})
	t.Run("counts consecutive days", func(t *testing.T) {
		assert.Equal(t, 4, service.PerformanceStreak(dsaHistory(day(0), day(-1), day(-2), day(-3)), dsaDone, streakNow))
	})
	t.Run("stops at calendar gap", func(t *testing.T) {
		// day(-2) is missing; the walk must not bridge the hole
		assert.Equal(t, 2, service.PerformanceStreak(dsaHistory(day(0), day(-1), day(-3), day(-4)), dsaDone, streakNow))
	})
	t.Run("stops at first not-done row", func(t *testing.T) {
		history := []*entity.DailyLog{
			{Date: day(0), DsaDone: true},
			{Date: day(-1), DsaDone: false},
			{Date: day(-2), DsaDone: true},
		}
		assert.Equal(t, 1, service.PerformanceStreak(history, dsaDone, streakNow))
	})
	t.Run("skips not-done rows before the anchor", func(t *testing.T) {
		history := []*entity.DailyLog{
			{Date: day(0), DsaDone: false},
			{Date: day(-1), DsaDone: true},
			{Date: day(-2), DsaDone: true},
		}
		assert.Equal(t, 2, service.PerformanceStreak(history, dsaDone, streakNow))
	})
}

func habitLog(habitID uuid.UUID, date string, createdAt time.Time) *entity.HabitLog {
	return &entity.HabitLog{
		HabitID:   habitID,
		Date:      date,
		Completed: true,
		CreatedAt: createdAt,
	}
}

func TestHabitStreak(t *testing.T) {
	hid := uuid.New()
	t.Run("no logs", func(t *testing.T) {
		info := service.HabitStreak(nil, hid, streakNow)
		assert.Equal(t, 0, info.Streak)
		assert.Nil(t, info.ExpiresAt)
	})
	t.Run("other habits are ignored", func(t *testing.T) {
		logs := []*entity.HabitLog{habitLog(uuid.New(), day(0), streakNow.Add(-time.Hour))}
		info := service.HabitStreak(logs, hid, streakNow)
		assert.Equal(t, 0, info.Streak)
	})
	t.Run("alive within 48h", func(t *testing.T) {
		last := streakNow.Add(-47 * time.Hour)
		logs := []*entity.HabitLog{habitLog(hid, day(-1), last)}
		info := service.HabitStreak(logs, hid, streakNow)
		assert.Equal(t, 1, info.Streak)
		assert.True(t, info.AtRisk)
		if assert.NotNil(t, info.ExpiresAt) {
			assert.Equal(t, last.Add(24*time.Hour), *info.ExpiresAt)
		}
	})
	t.Run("dead past 48h", func(t *testing.T) {
		logs := []*entity.HabitLog{habitLog(hid, day(-2), streakNow.Add(-49*time.Hour))}
		info := service.HabitStreak(logs, hid, streakNow)
		assert.Equal(t, 0, info.Streak)
		assert.False(t, info.AtRisk)
		assert.Nil(t, info.ExpiresAt)
	})
	t.Run("dead past one-day calendar gap", func(t *testing.T) {
		// created_at is fresh but the last logged date is two days back
		logs := []*entity.HabitLog{habitLog(hid, day(-2), streakNow.Add(-time.Hour))}
		info := service.HabitStreak(logs, hid, streakNow)
		assert.Equal(t, 0, info.Streak)
		assert.Nil(t, info.ExpiresAt)
	})
	t.Run("not at risk when fresh", func(t *testing.T) {
		logs := []*entity.HabitLog{habitLog(hid, day(0), streakNow.Add(-2*time.Hour))}
		info := service.HabitStreak(logs, hid, streakNow)
		assert.Equal(t, 1, info.Streak)
		assert.False(t, info.AtRisk)
	})
	t.Run("at risk past 20h", func(t *testing.T) {
		logs := []*entity.HabitLog{habitLog(hid, day(0), streakNow.Add(-21*time.Hour))}
		info := service.HabitStreak(logs, hid, streakNow)
		assert.Equal(t, 1, info.Streak)
		assert.True(t, info.AtRisk)
	})
	t.Run("adjacency walk stops at gap", func(t *testing.T) {
		last := streakNow.Add(-time.Hour)
		logs := []*entity.HabitLog{
			habitLog(hid, day(0), last),
			habitLog(hid, day(-1), streakNow.Add(-25*time.Hour)),
			habitLog(hid, day(-2), streakNow.Add(-49*time.Hour)),
			// day(-3) missing
			habitLog(hid, day(-4), streakNow.Add(-97*time.Hour)),
		}
		info := service.HabitStreak(logs, hid, streakNow)
		assert.Equal(t, 3, info.Streak)
	})
	t.Run("duplicate dates counted once", func(t *testing.T) {
		logs := []*entity.HabitLog{
			habitLog(hid, day(0), streakNow.Add(-time.Hour)),
			habitLog(hid, day(0), streakNow.Add(-2*time.Hour)),
			habitLog(hid, day(-1), streakNow.Add(-26*time.Hour)),
		}
		info := service.HabitStreak(logs, hid, streakNow)
		assert.Equal(t, 2, info.Streak)
	})
}

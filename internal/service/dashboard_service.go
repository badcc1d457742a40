package service

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/limbo/exectrack/internal/repository"
	"github.com/limbo/exectrack/pkg/entity"
)

// Rows of daily-log history fed to the performance streak walk.
const streakHistoryLimit = 100

type DashboardService struct {
	usersRepo    repository.UsersRepositoryI
	dailyRepo    repository.DailyLogsRepositoryI
	workoutRepo  repository.WorkoutRepositoryI
	sectionsRepo repository.SectionsRepositoryI
	shoppingRepo repository.ShoppingRepositoryI
	logsRepo     repository.HabitLogsRepositoryI
	habitsServ   HabitsServiceI
	tasksServ    TasksServiceI

	now func() time.Time
}

func NewDashboardService(
	usersRepo repository.UsersRepositoryI,
	dailyRepo repository.DailyLogsRepositoryI,
	workoutRepo repository.WorkoutRepositoryI,
	sectionsRepo repository.SectionsRepositoryI,
	shoppingRepo repository.ShoppingRepositoryI,
	logsRepo repository.HabitLogsRepositoryI,
	habitsServ HabitsServiceI,
	tasksServ TasksServiceI,
) *DashboardService {
	if usersRepo == nil || dailyRepo == nil || workoutRepo == nil || sectionsRepo == nil ||
		shoppingRepo == nil || logsRepo == nil || habitsServ == nil || tasksServ == nil {
		log.Fatal("provided nil deps to dashboard service")
	}
	return &DashboardService{
		usersRepo:    usersRepo,
		dailyRepo:    dailyRepo,
		workoutRepo:  workoutRepo,
		sectionsRepo: sectionsRepo,
		shoppingRepo: shoppingRepo,
		logsRepo:     logsRepo,
		habitsServ:   habitsServ,
		tasksServ:    tasksServ,
		now:          time.Now,
	}
}

// WithClock pins the composer's clock, used by tests.
func (dsh *DashboardService) WithClock(now func() time.Time) *DashboardService {
	dsh.now = now
	return dsh
}

// Compose builds the full main-view payload for one date. Independent
// fetches run concurrently; the task read is sequenced after the
// materializer commit; both streak flavors are recomputed from history on
// every call.
func (dsh *DashboardService) Compose(ctx context.Context, uid uuid.UUID, date string) (*DashboardView, error) {
	var (
		user          *entity.User
		summary       *entity.DailyLog
		schedule      []*entity.WorkoutDay
		habits        []*entity.HabitWithLog
		sections      []*entity.Section
		buyingList    []*entity.ShoppingItem
		buyCategories []*entity.ShoppingCategory
		history       []*entity.DailyLog
		completedLogs []*entity.HabitLog
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		user, err = dsh.usersRepo.FindByID(gctx, uid)
		return err
	})
	g.Go(func() (err error) {
		summary, err = dsh.dailyRepo.Get(gctx, uid, date)
		return err
	})
	g.Go(func() (err error) {
		schedule, err = dsh.workoutRepo.List(gctx, uid)
		return err
	})
	g.Go(func() (err error) {
		habits, err = dsh.habitsServ.GetHabitsWithLogs(gctx, uid, date)
		return err
	})
	g.Go(func() (err error) {
		sections, err = dsh.sectionsRepo.List(gctx, uid)
		return err
	})
	g.Go(func() (err error) {
		buyingList, err = dsh.shoppingRepo.ListItems(gctx, uid)
		return err
	})
	g.Go(func() (err error) {
		buyCategories, err = dsh.shoppingRepo.ListCategories(gctx, uid)
		return err
	})
	g.Go(func() (err error) {
		history, err = dsh.dailyRepo.History(gctx, uid, streakHistoryLimit)
		return err
	})
	g.Go(func() (err error) {
		completedLogs, err = dsh.logsRepo.ListCompleted(gctx, uid)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, errors.New("dashboard fetch error: " + err.Error())
	}

	if summary == nil {
		summary = &entity.DailyLog{UserID: uid, Date: date}
	}

	// Read-after-write: the task list must see this request's inserts
	if _, err := dsh.tasksServ.MaterializeDay(ctx, uid, date); err != nil {
		return nil, err
	}
	tasks, err := dsh.tasksServ.DayTasks(ctx, uid, date)
	if err != nil {
		return nil, err
	}

	now := dsh.now()
	for _, h := range habits {
		if !h.TrackStreak {
			continue
		}
		h.HabitStreakInfo = HabitStreak(completedLogs, h.Habit.ID, now)
	}

	return &DashboardView{
		DailyParams: DailyParams{
			DailyLog: *summary,
			Tasks:    tasks,
			Sections: sections,
			Streaks: entity.PerformanceStreaks{
				Dsa: PerformanceStreak(history, func(l *entity.DailyLog) bool { return l.DsaDone }, now),
				Dev: PerformanceStreak(history, func(l *entity.DailyLog) bool { return l.DevDone }, now),
				Gym: PerformanceStreak(history, func(l *entity.DailyLog) bool { return l.GymDone }, now),
			},
			WorkoutSchedule: schedule,
		},
		Habits:        habits,
		Sections:      sections,
		User:          user,
		BuyingList:    buyingList,
		BuyCategories: buyCategories,
	}, nil
}

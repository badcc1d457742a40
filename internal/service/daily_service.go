package service

import (
	"context"
	"errors"
	"log"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	errorvalues "github.com/limbo/exectrack/internal/error_values"
	"github.com/limbo/exectrack/internal/repository"
	"github.com/limbo/exectrack/pkg/entity"
)

// History reads stay bounded; a year of rows is more than the client pages.
const historyLimit = 366

type DailyService struct {
	repo         repository.DailyLogsRepositoryI
	sectionsRepo repository.SectionsRepositoryI
	workoutRepo  repository.WorkoutRepositoryI
	tasksRepo    repository.TasksRepositoryI
	rulesRepo    repository.RulesRepositoryI
	tasksService TasksServiceI
}

func NewDailyService(
	dailyRepo repository.DailyLogsRepositoryI,
	sectionsRepo repository.SectionsRepositoryI,
	workoutRepo repository.WorkoutRepositoryI,
	tasksRepo repository.TasksRepositoryI,
	rulesRepo repository.RulesRepositoryI,
	tasksService TasksServiceI,
) *DailyService {
	if dailyRepo == nil || sectionsRepo == nil || workoutRepo == nil || tasksRepo == nil || rulesRepo == nil || tasksService == nil {
		log.Fatal("provided nil deps to daily service")
	}
	return &DailyService{
		repo:         dailyRepo,
		sectionsRepo: sectionsRepo,
		workoutRepo:  workoutRepo,
		tasksRepo:    tasksRepo,
		rulesRepo:    rulesRepo,
		tasksService: tasksService,
	}
}

// GetDay materializes habit tasks for the date, then reads the summary,
// the aggregated task list, the sections and the memory rules. The
// materialize commit happens before the task read so just-inserted rows
// are visible.
func (ds *DailyService) GetDay(ctx context.Context, uid uuid.UUID, date string) (*DayView, error) {
	if _, err := ds.tasksService.MaterializeDay(ctx, uid, date); err != nil {
		return nil, err
	}
	summary, err := ds.repo.Get(ctx, uid, date)
	if err != nil {
		return nil, errors.New("daily logs repository error: " + err.Error())
	}
	if summary == nil {
		summary = &entity.DailyLog{UserID: uid, Date: date}
	}
	tasks, err := ds.tasksService.DayTasks(ctx, uid, date)
	if err != nil {
		return nil, err
	}
	sections, err := ds.sectionsRepo.List(ctx, uid)
	if err != nil {
		return nil, errors.New("sections repository error: " + err.Error())
	}
	rules, err := ds.rulesRepo.List(ctx, uid)
	if err != nil {
		return nil, errors.New("rules repository error: " + err.Error())
	}
	return &DayView{
		DailyLog: *summary,
		Tasks:    tasks,
		Sections: sections,
		Rules:    rules,
	}, nil
}

func (ds *DailyService) UpsertDaily(ctx context.Context, uid uuid.UUID, req *UpsertDailyRequest) error {
	if err := validateRequest(req); err != nil {
		return err
	}
	err := ds.repo.Upsert(ctx, uid, &repository.DailyLogUpsert{
		Date:           req.Date,
		TLEMinutes:     req.TLEMinutes,
		Note:           req.Note,
		TomorrowIntent: req.TomorrowIntent,
		DsaDone:        req.DsaDone,
		DevDone:        req.DevDone,
		GymDone:        req.GymDone,
		DsaMinutes:     req.DsaMinutes,
		DevMinutes:     req.DevMinutes,
		GymMinutes:     req.GymMinutes,
		DsaNote:        req.DsaNote,
		DevNote:        req.DevNote,
		GymNote:        req.GymNote,
	})
	if err != nil {
		return errors.New("daily logs repository error: " + err.Error())
	}
	return nil
}

// History reconstructs per-day entries from daily logs and task rows,
// newest date first. Dates appearing only on tasks still get an entry.
func (ds *DailyService) History(ctx context.Context, uid uuid.UUID) ([]*DayHistory, error) {
	logs, err := ds.repo.History(ctx, uid, historyLimit)
	if err != nil {
		return nil, errors.New("daily logs repository error: " + err.Error())
	}
	tasks, err := ds.tasksRepo.ListAll(ctx, uid)
	if err != nil {
		return nil, errors.New("tasks repository error: " + err.Error())
	}

	logsByDate := make(map[string]*entity.DailyLog, len(logs))
	dates := make([]string, 0, len(logs))
	for _, l := range logs {
		logsByDate[l.Date] = l
		dates = append(dates, l.Date)
	}
	tasksByDate := make(map[string][]*entity.Task)
	for _, t := range tasks {
		if _, seen := tasksByDate[t.Date]; !seen {
			if _, hasLog := logsByDate[t.Date]; !hasLog {
				dates = append(dates, t.Date)
			}
		}
		tasksByDate[t.Date] = append(tasksByDate[t.Date], t)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(dates)))

	history := make([]*DayHistory, 0, len(dates))
	for _, d := range dates {
		entry := DayHistory{Date: d, Tasks: tasksByDate[d]}
		if entry.Tasks == nil {
			entry.Tasks = []*entity.Task{}
		}
		if l, ok := logsByDate[d]; ok {
			entry.Note = l.Note
			entry.TLEMinutes = l.TLEMinutes
		}
		history = append(history, &entry)
	}
	return history, nil
}

// WeeklyStats buckets the last 7 days of completed tasks by title keywords
// and totals distraction minutes.
func (ds *DailyService) WeeklyStats(ctx context.Context, uid uuid.UUID, now time.Time) (*WeeklyStats, error) {
	to := now.Format(dayFormat)
	from := now.AddDate(0, 0, -6).Format(dayFormat)

	tasks, err := ds.tasksRepo.ListCompletedInRange(ctx, uid, from, to)
	if err != nil {
		return nil, errors.New("tasks repository error: " + err.Error())
	}
	logs, err := ds.repo.Range(ctx, uid, from, to)
	if err != nil {
		return nil, errors.New("daily logs repository error: " + err.Error())
	}

	dsaDays := make(map[string]struct{})
	gymDays := make(map[string]struct{})
	devDays := make(map[string]struct{})
	for _, t := range tasks {
		title := strings.ToLower(t.Title)
		if containsAny(title, "dsa", "leetcode", "problem") {
			dsaDays[t.Date] = struct{}{}
		}
		if containsAny(title, "gym", "workout") {
			gymDays[t.Date] = struct{}{}
		}
		if containsAny(title, "dev", "playwright", "code", "backend") {
			devDays[t.Date] = struct{}{}
		}
	}

	stats := WeeklyStats{
		DsaProblems: len(dsaDays),
		GymDays:     len(gymDays),
		DevDays:     len(devDays),
	}
	for _, l := range logs {
		stats.TotalTLE += l.TLEMinutes
	}
	return &stats, nil
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func (ds *DailyService) WorkoutSchedule(ctx context.Context, uid uuid.UUID) ([]*entity.WorkoutDay, error) {
	days, err := ds.workoutRepo.List(ctx, uid)
	if err != nil {
		return nil, errors.New("workout repository error: " + err.Error())
	}
	return days, nil
}

func (ds *DailyService) UpsertWorkoutDay(ctx context.Context, uid uuid.UUID, day *entity.WorkoutDay) error {
	if day.DayIndex < 0 || day.DayIndex > 6 {
		return errors.New("day_index must be between 0 and 6")
	}
	if err := ds.workoutRepo.Upsert(ctx, uid, day); err != nil {
		return errors.New("workout repository error: " + err.Error())
	}
	return nil
}

func (ds *DailyService) CreateRule(ctx context.Context, uid uuid.UUID, content string) (*entity.MemoryRule, error) {
	if content == "" {
		return nil, errors.New("content is required")
	}
	rule, err := ds.rulesRepo.Create(ctx, uid, content)
	if err != nil {
		return nil, errors.New("rules repository error: " + err.Error())
	}
	return rule, nil
}

func (ds *DailyService) DeleteRule(ctx context.Context, uid uuid.UUID, id int64) error {
	err := ds.rulesRepo.Delete(ctx, uid, id)
	if err != nil {
		if errors.Is(err, errorvalues.ErrRuleNotFound) {
			return err
		}
		return errors.New("rules repository error: " + err.Error())
	}
	return nil
}

// @title Execution-tracker API
// @description API for the daily execution tracker
// @BasePath /api/v1
// @schemes http
package main

import (
	"log"

	"github.com/limbo/exectrack/internal/api"
	"github.com/limbo/exectrack/internal/repository"
	"github.com/limbo/exectrack/internal/service"
	"github.com/limbo/exectrack/pkg/cleanup"
	"github.com/limbo/exectrack/pkg/config"
	jwtservice "github.com/limbo/exectrack/pkg/jwt_service"
)

func init() {
	service.InitValidator()
}

func main() {
	cfg := config.New()
	dbCfg := repository.PGCfg{
		Address:  cfg.GetString("POSTGRES_DB_ADDRESS"),
		Username: cfg.GetString("POSTGRES_USER"),
		Password: cfg.GetString("POSTGRES_PASSWORD"),
		DB:       cfg.GetString("POSTGRES_DB"),
	}
	conn := repository.NewLazyPool(&dbCfg, cfg.GetStringOr("MIGRATIONS_DIR", "./migrations"))
	defer cleanup.CleanUp()

	usersRepo := repository.NewUsersRepo(conn)
	habitsRepo := repository.NewHabitsRepo(conn)
	habitLogsRepo := repository.NewHabitLogsRepo(conn)
	tasksRepo := repository.NewTasksRepo(conn)
	dailyRepo := repository.NewDailyLogsRepo(conn)
	sectionsRepo := repository.NewSectionsRepo(conn)
	shoppingRepo := repository.NewShoppingRepo(conn)
	workoutRepo := repository.NewWorkoutRepo(conn)
	rulesRepo := repository.NewRulesRepo(conn)

	userService := service.NewUserService(usersRepo)
	habitsService := service.NewHabitsService(habitsRepo, habitLogsRepo)
	tasksService := service.NewTasksService(tasksRepo, habitsRepo)
	dailyService := service.NewDailyService(dailyRepo, sectionsRepo, workoutRepo, tasksRepo, rulesRepo, tasksService)
	sectionsService := service.NewSectionsService(sectionsRepo, tasksRepo)
	shoppingService := service.NewShoppingService(shoppingRepo)
	dashboardService := service.NewDashboardService(
		usersRepo, dailyRepo, workoutRepo, sectionsRepo, shoppingRepo, habitLogsRepo,
		habitsService, tasksService,
	)

	serv := api.New(&api.ServicesList{
		UserService:      userService,
		HabitsService:    habitsService,
		TasksService:     tasksService,
		DailyService:     dailyService,
		SectionsService:  sectionsService,
		ShoppingService:  shoppingService,
		DashboardService: dashboardService,
		JwtService:       jwtservice.New(cfg.GetString("JWT_SECRET")),
	})
	err := serv.Run(cfg.GetString("API_ADDRESS"))
	if err != nil {
		log.Println("Server error: " + err.Error())
	}
}

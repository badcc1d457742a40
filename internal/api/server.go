package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/limbo/exectrack/internal/service"
)

type Server struct {
	mx               *chi.Mux
	userService      service.UserServiceI
	habitsService    service.HabitsServiceI
	tasksService     service.TasksServiceI
	dailyService     service.DailyServiceI
	sectionsService  service.SectionsServiceI
	shoppingService  service.ShoppingServiceI
	dashboardService service.DashboardServiceI
	jwtService       JWTServiceI
}

type ServicesList struct {
	UserService      service.UserServiceI
	HabitsService    service.HabitsServiceI
	TasksService     service.TasksServiceI
	DailyService     service.DailyServiceI
	SectionsService  service.SectionsServiceI
	ShoppingService  service.ShoppingServiceI
	DashboardService service.DashboardServiceI
	JwtService       JWTServiceI
}

func New(servicesOptions *ServicesList) *Server {
	return &Server{
		mx:               chi.NewMux(),
		userService:      servicesOptions.UserService,
		habitsService:    servicesOptions.HabitsService,
		tasksService:     servicesOptions.TasksService,
		dailyService:     servicesOptions.DailyService,
		sectionsService:  servicesOptions.SectionsService,
		shoppingService:  servicesOptions.ShoppingService,
		dashboardService: servicesOptions.DashboardService,
		jwtService:       servicesOptions.JwtService,
	}
}

func (s *Server) routes() {
	s.mx.Use(s.RequestIDMiddleware)
	s.mx.Use(s.SettingUpLoggerMiddleware)
	s.mx.Use(s.MetricsMiddleware)

	s.mx.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	s.mx.Handle("/metrics", promhttp.Handler())

	s.mx.Route("/api/v1", func(r chi.Router) {
		r.Post("/auth/signup", s.SignUp)
		r.Post("/auth/login", s.Login)

		r.Group(func(r chi.Router) {
			r.Use(s.AuthMiddleware)
			r.Use(s.LoggerExtensionMiddleware)

			r.Get("/auth/me", s.Me)

			r.Get("/dashboard", s.GetDashboard)

			r.Get("/daily", s.GetDaily)
			r.Post("/daily", s.PostDaily)

			r.Post("/rules", s.CreateRule)
			r.Delete("/rules", s.DeleteRule)

			r.Post("/tasks", s.CreateTask)
			r.Patch("/tasks", s.PatchTask)
			r.Delete("/tasks", s.DeleteTask)

			r.Get("/habits", s.GetHabits)
			r.Post("/habits", s.CreateHabit)
			r.Put("/habits", s.UpdateHabit)
			r.Delete("/habits", s.DeleteHabit)
			r.Post("/habits/log", s.LogHabit)

			r.Get("/sections", s.GetSections)
			r.Post("/sections", s.CreateSection)
			r.Delete("/sections", s.DeleteSection)

			r.Get("/buying", s.GetBuyingList)
			r.Post("/buying", s.CreateBuyingItem)
			r.Patch("/buying", s.PatchBuyingItem)
			r.Delete("/buying", s.DeleteBuyingItem)
			r.Get("/buying/categories", s.GetBuyingCategories)
			r.Post("/buying/categories", s.CreateBuyingCategory)
			r.Delete("/buying/categories", s.DeleteBuyingCategory)

			r.Get("/stats", s.GetStats)
			r.Get("/history", s.GetHistory)

			r.Get("/workout", s.GetWorkout)
			r.Put("/workout", s.PutWorkout)
		})
	})
}

func (s *Server) Run(address string) error {
	s.routes()
	return http.ListenAndServe(address, s.mx)
}

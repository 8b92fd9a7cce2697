package routes

import (
	websocket "github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/karan-monga/repsandrulers/internal/config"
	"github.com/karan-monga/repsandrulers/internal/handlers"
	"github.com/karan-monga/repsandrulers/internal/middleware"
	"github.com/karan-monga/repsandrulers/internal/repository"
	"github.com/karan-monga/repsandrulers/internal/services"
	progressws "github.com/karan-monga/repsandrulers/internal/websocket"
)

func RegisterRoutes(app *fiber.App, cfg *config.Config, db *pgxpool.Pool) {
	userRepo := repository.NewUserRepository(db)
	profileRepo := repository.NewProfileRepository(db)
	measurementRepo := repository.NewMeasurementRepository(db)
	goalRepo := repository.NewGoalRepository(db)
	exerciseRepo := repository.NewExerciseRepository(db)
	routineRepo := repository.NewRoutineRepository(db)
	renphoRepo := repository.NewRenphoRepository(db)

	var completionClient services.CompletionClient
	if cfg.OpenAIAPIKey != "" {
		completionClient = services.NewOpenAIClient(cfg.OpenAIBaseURL, cfg.OpenAIAPIKey, cfg.OpenAIModel)
	}

	goalService := services.NewGoalService(goalRepo, measurementRepo)
	importService := services.NewImportService(measurementRepo)
	exportService := services.NewExportService(measurementRepo)
	renphoService := services.NewRenphoService(renphoRepo)
	insightService := services.NewInsightService(renphoService, completionClient)
	workoutService := services.NewWorkoutService(exerciseRepo, completionClient)

	progressHub := progressws.NewHub()
	go progressHub.Run()

	authHandler := handlers.NewAuthHandler(db, userRepo, profileRepo, cfg.JWTSecret)
	profileHandler := handlers.NewProfileHandler(profileRepo)
	measurementHandler := handlers.NewMeasurementHandler(measurementRepo, goalService)
	importHandler := handlers.NewImportHandler(importService, goalService, progressHub, cfg.JWTSecret)
	exportHandler := handlers.NewExportHandler(exportService)
	goalHandler := handlers.NewGoalHandler(goalService)
	exerciseHandler := handlers.NewExerciseHandler(exerciseRepo)
	routineHandler := handlers.NewRoutineHandler(routineRepo, exerciseRepo)
	renphoHandler := handlers.NewRenphoHandler(renphoService, insightService)
	workoutHandler := handlers.NewWorkoutHandler(workoutService)

	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Get("/me", middleware.AuthRequired(cfg.JWTSecret), authHandler.Me)

	// Browser WebSocket clients cannot set an Authorization header, so the
	// upgrade authenticates via query token. Registered ahead of the bearer
	// group so AuthRequired never sees the request.
	api.Use("/v1/ws/import", importHandler.WebSocketAuth)
	api.Get("/v1/ws/import", websocket.New(importHandler.HandleWebSocket))

	authProtected := api.Group("/v1", middleware.AuthRequired(cfg.JWTSecret))

	profile := authProtected.Group("/profile")
	profile.Get("", profileHandler.GetProfile)
	profile.Put("", profileHandler.UpdateProfile)

	measurements := authProtected.Group("/measurements")
	measurements.Post("", measurementHandler.Create)
	measurements.Get("", measurementHandler.List)
	measurements.Get("/export", exportHandler.Export)
	measurements.Get("/:id", measurementHandler.Get)
	measurements.Put("/:id", measurementHandler.Update)
	measurements.Delete("/:id", measurementHandler.Delete)

	imports := authProtected.Group("/import")
	imports.Post("/inspect", importHandler.Inspect)
	imports.Post("", importHandler.Import)

	goals := authProtected.Group("/goals")
	goals.Post("", goalHandler.SetGoal)
	goals.Get("", goalHandler.GetGoal)
	goals.Put("", goalHandler.UpdateGoal)
	goals.Delete("", goalHandler.DeleteGoal)
	goals.Post("/milestones", goalHandler.AddMilestone)
	goals.Delete("/milestones/:milestoneId", goalHandler.DeleteMilestone)

	exercises := authProtected.Group("/exercises")
	exercises.Get("", exerciseHandler.List)
	exercises.Get("/muscle-groups", exerciseHandler.MuscleGroups)
	exercises.Get("/:id", exerciseHandler.Get)

	routines := authProtected.Group("/routines")
	routines.Post("", routineHandler.Create)
	routines.Get("", routineHandler.List)
	routines.Get("/:id", routineHandler.Get)
	routines.Put("/:id", routineHandler.Rename)
	routines.Delete("/:id", routineHandler.Delete)
	routines.Post("/:id/days", routineHandler.AddDay)
	routines.Delete("/days/:dayId", routineHandler.DeleteDay)
	routines.Post("/days/:dayId/exercises", routineHandler.AddExercise)
	routines.Put("/days/:dayId/exercises/reorder", routineHandler.ReorderExercises)
	routines.Put("/exercises/:exerciseId", routineHandler.UpdateExercise)
	routines.Delete("/exercises/:exerciseId", routineHandler.RemoveExercise)

	renpho := authProtected.Group("/renpho")
	renpho.Post("/import", renphoHandler.Import)
	renpho.Get("/measurements", renphoHandler.List)
	renpho.Get("/measurements/latest", renphoHandler.Latest)
	renpho.Get("/stats", renphoHandler.Stats)
	renpho.Get("/insights", renphoHandler.Insights)
	renpho.Delete("/measurements/:id", renphoHandler.Delete)
	renpho.Delete("/measurements", renphoHandler.Clear)

	workouts := authProtected.Group("/workouts")
	workouts.Post("/generate", workoutHandler.Generate)
}

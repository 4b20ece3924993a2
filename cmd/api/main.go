package main

import (
	"context"
	"net/http"
	"os"

	appconfig "spryte/internal/config"
	"spryte/internal/domain/sqlite"
	"spryte/internal/domain/sqlite/repository"
	"spryte/internal/http/handler"
	authmw "spryte/internal/http/middleware"
	"spryte/internal/infrastructure/ai"
	"spryte/internal/service"
	"spryte/internal/utils"
	"spryte/internal/utils/uid"
	"spryte/internal/utils/validators"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
)

const envVarsPrefix = "/spryte/prod/"

func main() {
	validate := validator.New()
	registerValidators(validate)

	// Loads env vars depending on environment
	if os.Getenv("GO_ENV") == "production" {
		loadProdEnv() // AWS SSM Parameter Store
	} else {
		// Loads from .env; a missing file is fine in dev
		_ = godotenv.Load()
	}

	cfg := appconfig.Load()
	uid.Init(1)
	utils.InitJWT(cfg.JWTSecret)

	db, err := sqlite.Init(cfg.DBPath)
	if err != nil {
		panic(err)
	}

	// Gettings repos
	bookRepo := repository.NewBookRepository(db)
	noteRepo := repository.NewNoteRepository(db)
	userRepo := repository.NewUserRepository(db)
	reminderRepo := repository.NewReminderRepository(db)

	providers := func(name string) (ai.Provider, error) {
		return ai.New(name, cfg)
	}

	// Getting services
	bookService := service.NewBookService(bookRepo, noteRepo, validate)
	noteService := service.NewNoteService(noteRepo, bookRepo, validate)
	userService := service.NewUserService(userRepo, validate, cfg.AccessTTL)
	reminderService := service.NewReminderService(reminderRepo, providers, validate)
	aiService := service.NewAIService(providers, validate)
	addonService := service.NewAddonService(userRepo)

	// Gettings handlers
	bookRoutes := handler.NewBookDefault(bookService)
	noteRoutes := handler.NewNoteDefault(noteService)
	userRoutes := handler.NewUserDefault(userService)
	reminderRoutes := handler.NewReminderDefault(reminderService)
	aiRoutes := handler.NewAIDefault(aiService)
	addonRoutes := handler.NewAddonDefault(addonService)

	auth := authmw.NewAuthMiddleware(&authmw.AuthMiddlewareConfig{UserRepo: userRepo})

	e := echo.New()
	e.Use(middleware.CORS())
	e.Use(middleware.BodyLimit("30M"))

	// Auth
	e.POST("/api/auth/register", userRoutes.Register)
	e.POST("/api/auth/login", userRoutes.Login)
	e.GET("/api/auth/me", userRoutes.GetMe, auth)
	e.PUT("/api/auth/profile", userRoutes.UpdateProfile, auth)
	e.PUT("/api/auth/password", userRoutes.ChangePassword, auth)
	e.PUT("/api/auth/settings", userRoutes.UpdateSettings, auth)

	// Books
	books := e.Group("/api/books", auth)
	books.GET("", bookRoutes.GetBooks)
	books.GET("/tree", bookRoutes.GetTree)
	books.POST("", bookRoutes.CreateBook)
	books.GET("/:id", bookRoutes.GetBook)
	books.PUT("/:id", bookRoutes.UpdateBook)
	books.DELETE("/:id", bookRoutes.DeleteBook)
	books.GET("/:id/children", bookRoutes.GetChildren)

	// Notes
	notes := e.Group("/api/notes", auth)
	notes.GET("", noteRoutes.GetNotes)
	notes.GET("/tree/:book_id", noteRoutes.GetTree)
	notes.GET("/search", noteRoutes.Search)
	notes.POST("", noteRoutes.CreateNote)
	notes.GET("/:id", noteRoutes.GetNote)
	notes.PUT("/:id", noteRoutes.UpdateNote)
	notes.PUT("/:id/canvas", noteRoutes.UpdateCanvas)
	notes.DELETE("/:id", noteRoutes.DeleteNote)
	notes.POST("/:id/link", noteRoutes.AddLink)
	notes.DELETE("/:id/link/:linked_note_id", noteRoutes.RemoveLink)
	notes.POST("/:id/annotations", noteRoutes.AddAnnotation)
	notes.DELETE("/:id/annotations/:annotation_id", noteRoutes.DeleteAnnotation)

	// Reminders
	reminders := e.Group("/api/reminders", auth)
	reminders.GET("", reminderRoutes.GetReminders)
	reminders.POST("", reminderRoutes.CreateReminder)
	reminders.POST("/parse", reminderRoutes.ParseReminder)
	reminders.GET("/due", reminderRoutes.GetDue)
	reminders.GET("/:id", reminderRoutes.GetReminder)
	reminders.POST("/:id/complete", reminderRoutes.CompleteReminder)
	reminders.POST("/:id/notified", reminderRoutes.MarkNotified)
	reminders.DELETE("/:id", reminderRoutes.DeleteReminder)

	// AI
	e.POST("/api/ai/transform", aiRoutes.Transform, auth)
	e.GET("/api/ai/actions", aiRoutes.GetActions, auth)

	// Addons
	addons := e.Group("/api/addons", auth)
	addons.GET("", addonRoutes.GetAddons)
	addons.POST("/:id/enable", addonRoutes.EnableAddon)
	addons.POST("/:id/disable", addonRoutes.DisableAddon)
	addons.GET("/commands", addonRoutes.GetCommands)

	// Docker Compose healthcheck
	e.GET("/api/health", healthCheckRoute)

	if err := e.Start(cfg.Addr); err != nil {
		panic(err)
	}
}

func registerValidators(validate *validator.Validate) {
	_ = validate.RegisterValidation("notblank", validators.NotBlank)
	_ = validate.RegisterValidation("nodupes", validators.NoDupes)
}

func loadProdEnv() {
	ctx := context.Background()
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion("us-east-2"))
	if err != nil {
		log.Fatalf("unable to load SDK config, %v", err)
	}

	client := ssm.NewFromConfig(cfg)
	out, err := client.GetParametersByPath(ctx, &ssm.GetParametersByPathInput{
		Path:           aws.String(envVarsPrefix),
		WithDecryption: aws.Bool(true),
		Recursive:      aws.Bool(true),
	})
	if err != nil {
		log.Fatalf("unable to load prod environment, %v", err)
	}

	prefixLength := len(envVarsPrefix)
	// Export vars
	for _, param := range out.Parameters {
		key := (*param.Name)[prefixLength:]
		value := *param.Value
		enverr := os.Setenv(key, value)
		if enverr != nil {
			log.Fatalf("unable to set environment variable, %v", enverr)
		}
	}
	log.Debugf("loaded %d prod environment variables", len(out.Parameters))
}

func healthCheckRoute(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"status":  "healthy",
		"service": "spryte-api",
	})
}

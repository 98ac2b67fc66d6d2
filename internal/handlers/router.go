package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/fitlife-app/membership-service/internal/auth"
	"github.com/fitlife-app/membership-service/internal/models"
	"github.com/fitlife-app/membership-service/internal/repositories"
	"github.com/fitlife-app/membership-service/internal/services"
	"github.com/fitlife-app/membership-service/internal/utils"
	"github.com/fitlife-app/membership-service/internal/validator"
)

type HandlerManager struct {
	tokenHandler   *TokenHandler
	userHandler    *UserHandler
	trainerHandler *TrainerHandler
	reportHandler  *ReportHandler
	authMiddleware *JWTAuthMiddleware
}

func NewHandlerManager(
	serviceManager services.ServiceManager,
	tokens *auth.TokenService,
	validator *validator.Validator,
	logger utils.Logger,
	userRepo repositories.UserRepository,
) *HandlerManager {
	authMiddleware := NewJWTAuthMiddleware(tokens, userRepo)

	return &HandlerManager{
		tokenHandler:   NewTokenHandler(tokens, validator, logger),
		userHandler:    NewUserHandler(serviceManager.User(), logger),
		trainerHandler: NewTrainerHandler(serviceManager.Trainer(), serviceManager.User(), logger),
		reportHandler:  NewReportHandler(serviceManager.User(), serviceManager.Trainer(), logger),
		authMiddleware: authMiddleware,
	}
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	// Public routes: token issuance and first-sign-in registration
	router.POST("/jwt", hm.tokenHandler.IssueToken)
	router.POST("/users", hm.userHandler.RegisterUser)

	// User routes
	users := router.Group("/users")
	users.Use(hm.authMiddleware.Authenticate())
	{
		users.GET("", hm.authMiddleware.RequireRole(models.RoleAdmin), hm.userHandler.ListUsers)
		users.GET("/export", hm.authMiddleware.RequireRole(models.RoleAdmin), hm.reportHandler.ExportRoster)
		users.DELETE("/:id", hm.authMiddleware.RequireRole(models.RoleAdmin), hm.userHandler.DeleteUser)

		// Self-only role probe: path email must match the token identity
		users.GET("/admin/:email", hm.authMiddleware.RequireSelf("email"), hm.userHandler.CheckAdmin)
		users.PATCH("/admin/:id", hm.authMiddleware.RequireRole(models.RoleAdmin), hm.userHandler.PromoteToAdmin)
	}

	// Trainer application routes
	betrainer := router.Group("/betrainer")
	betrainer.Use(hm.authMiddleware.Authenticate())
	{
		betrainer.POST("", hm.trainerHandler.Apply)
		betrainer.GET("", hm.authMiddleware.RequireRole(models.RoleAdmin), hm.trainerHandler.ListApplications)
		betrainer.GET("/:id", hm.authMiddleware.RequireRole(models.RoleAdmin), hm.trainerHandler.GetApplication)
		betrainer.PATCH("/:id", hm.authMiddleware.RequireRole(models.RoleAdmin), hm.trainerHandler.Approve)
		betrainer.DELETE("/:id", hm.authMiddleware.RequireRole(models.RoleAdmin), hm.trainerHandler.PurgeApplication)

		betrainer.GET("/trainer/:email", hm.authMiddleware.RequireSelf("email"), hm.trainerHandler.CheckTrainer)
		betrainer.PATCH("/trainer/:id", hm.authMiddleware.RequireRole(models.RoleAdmin), hm.trainerHandler.SetTrainerRole)
		betrainer.PATCH("/role/:id", hm.authMiddleware.RequireRole(models.RoleAdmin), hm.trainerHandler.DemoteRole)
	}

	// Rejection carries reviewer feedback in the body
	router.PATCH("/reject/:id",
		hm.authMiddleware.Authenticate(),
		hm.authMiddleware.RequireRole(models.RoleAdmin),
		hm.trainerHandler.Reject,
	)

	// Applicants read their own application by email
	router.GET("/trainer/:email",
		hm.authMiddleware.Authenticate(),
		hm.authMiddleware.RequireSelf("email"),
		hm.trainerHandler.GetApplicationByEmail,
	)

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"service": "membership-service",
		})
	})
}

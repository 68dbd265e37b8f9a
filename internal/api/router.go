package api

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/azizbekh/staffdesk/internal/api/handlers"
	"github.com/azizbekh/staffdesk/internal/api/middleware"
	"github.com/azizbekh/staffdesk/internal/model"
	"github.com/azizbekh/staffdesk/internal/repository"
)

// NewRouter assembles the stub backend: open auth routes, then the data
// routes behind the JWT middleware, matching the contract the dashboard
// client was written against.
func NewRouter(store repository.Store, jwtSecret string) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	authHandler := handlers.NewAuthHandler(store, jwtSecret)
	managers := handlers.NewPeopleHandler(store, model.TypeManager)
	employees := handlers.NewPeopleHandler(store, model.TypeEmployee)
	tasks := handlers.NewTaskHandler(store)
	settings := handlers.NewSettingsHandler(store)

	// AUTH ROUTES
	r.POST("/login", authHandler.Login)
	r.POST("/user/sign-up", authHandler.SignUp)
	r.POST("/user/sign-in/google", authHandler.GoogleSignIn)

	// DATA ROUTES
	authed := r.Group("", middleware.Auth(jwtSecret))

	mg := authed.Group("/managers")
	{
		mg.GET("", managers.List)
		mg.POST("", managers.Create)
		mg.GET("/:id", managers.Get)
		mg.PATCH("/:id", managers.Patch)
		mg.DELETE("/:id", managers.Delete)
	}

	emp := authed.Group("/employees")
	{
		emp.GET("", employees.List)
		emp.POST("", employees.Create)
		emp.GET("/:id", employees.Get)
		emp.PATCH("/:id", employees.Patch)
		emp.DELETE("/:id", employees.Delete)
	}

	tk := authed.Group("/tasks")
	{
		tk.GET("", tasks.List)
		tk.POST("", tasks.Create)
		tk.GET("/:id", tasks.Get)
		tk.PATCH("/:id", tasks.Patch)
		tk.DELETE("/:id", tasks.Delete)
	}

	st := authed.Group("/settings")
	{
		st.GET("", settings.Get)
		st.PUT("", settings.Put)
	}

	return r
}

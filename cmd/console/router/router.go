package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"locker-console/cmd/console/handlers"
	"locker-console/cmd/console/middleware"
	"locker-console/cmd/console/mutation"
	"locker-console/cmd/console/services"
	"locker-console/cmd/console/trace"
	_ "locker-console/docs"
)

// Deps 는 라우터가 노출하는 서비스들이다.
type Deps struct {
	Sessions   middleware.SessionChecker
	Auth       *services.AuthService
	Pages      *services.PageRegistry
	Dispatcher *mutation.Dispatcher
	Statistics *services.StatisticsService
}

func New(d Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestTrace(), middleware.RequestLogging())

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "logged_in": d.Sessions.Present()})
	})

	// Swagger
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	console := r.Group("/console")
	{
		console.POST("/session", handlers.LoginHandler(d.Auth))
		console.GET("/session", handlers.GetSessionHandler(d.Auth))
		console.DELETE("/session", handlers.LogoutHandler(d.Auth))

		guarded := console.Group("", middleware.RequireSession(d.Sessions))
		guarded.GET("/pages", handlers.ListPagesHandler(d.Pages))
		guarded.GET("/pages/:page", handlers.GetPageHandler(d.Pages))
		guarded.POST("/pages/:page/reload", handlers.ReloadPageHandler(d.Pages))
		guarded.PUT("/pages/:page/filters", handlers.SetFiltersHandler(d.Pages))
		guarded.PUT("/pages/:page/pagination", handlers.SetPaginationHandler(d.Pages))
		guarded.PUT("/pages/:page/sort", handlers.SetSortHandler(d.Pages))
		guarded.POST("/pages/:page/mutations", handlers.MutatePageHandler(d.Pages, d.Dispatcher))
		guarded.GET("/statistics", handlers.GetStatisticsHandler(d.Statistics))
	}

	return r
}

// Handler 는 브라우저 UI 용 CORS 를 씌운다. origins 가 비어 있으면 CORS 헤더를 내지 않는다.
func Handler(engine http.Handler, origins []string) http.Handler {
	if len(origins) == 0 {
		return engine
	}
	return cors.New(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type", trace.HeaderRequestID},
		ExposedHeaders:   []string{trace.HeaderRequestID, trace.HeaderSpanID},
		AllowCredentials: true,
	}).Handler(engine)
}

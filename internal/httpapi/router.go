package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/dozr/sleeptrack/internal/analytics"
	"github.com/dozr/sleeptrack/internal/auth"
	"github.com/dozr/sleeptrack/internal/config"
	"github.com/dozr/sleeptrack/internal/httpapi/handlers"
	"github.com/dozr/sleeptrack/internal/httpapi/middleware"
)

func NewRouter(db *gorm.DB, cfg config.Config, sessions auth.SessionStore, llm analytics.Completer) *gin.Engine {
	r := gin.New()
	r.HandleMethodNotAllowed = true
	r.Use(gin.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "errors": []string{"route not found"}})
	})
	r.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, gin.H{"success": false, "errors": []string{"method not allowed"}})
	})

	h := handlers.NewHandler(db, cfg, sessions, llm)
	sessionAuth := middleware.SessionAuth(cfg.SessionSecret, sessions)

	authGroup := r.Group("/auth")
	authGroup.POST("/signup", h.Signup)
	authGroup.POST("/signin", h.Signin)
	authGroup.POST("/signout", sessionAuth, h.Signout)
	authGroup.GET("/status", h.Status)
	authGroup.GET("/invalid-session", h.InvalidSession)

	entryGroup := r.Group("/entry")
	entryGroup.Use(sessionAuth)
	entryGroup.GET("/entries", h.GetEntries)
	entryGroup.POST("/add", h.AddEntry)
	entryGroup.POST("/delete", h.DeleteEntry)

	analyticsGroup := r.Group("/analytics")
	analyticsGroup.Use(sessionAuth)
	analyticsGroup.POST("/notes", h.AnalyticsNotes)
	analyticsGroup.GET("/forall", h.AnalyticsForAll)

	return r
}

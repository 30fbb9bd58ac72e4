package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/zaqqye/evaluasi_backend/internal/auth"
	"github.com/zaqqye/evaluasi_backend/internal/config"
	"github.com/zaqqye/evaluasi_backend/internal/controllers"
	"github.com/zaqqye/evaluasi_backend/internal/metrics"
	"github.com/zaqqye/evaluasi_backend/internal/middleware"
	"github.com/zaqqye/evaluasi_backend/internal/models"
	"github.com/zaqqye/evaluasi_backend/internal/roster"
	"github.com/zaqqye/evaluasi_backend/internal/version"
	"github.com/zaqqye/evaluasi_backend/internal/ws"
)

// Deps are the long-lived services the HTTP layer is wired to.
type Deps struct {
	Config   *config.Config
	Store    *roster.Store
	Sessions *auth.Sessions
	Hub      *ws.Hub
}

func Register(r *gin.Engine, d Deps) {
	// Controllers
	editorCtrl := &controllers.EditorController{
		Store:     d.Store,
		Notifier:  d.Hub,
		NoticeTTL: d.Config.NoticeTTL(),
	}
	authCtrl := &controllers.AuthController{Sessions: d.Sessions, Editor: editorCtrl, Hub: d.Hub}
	dashCtrl := &controllers.DashboardController{Store: d.Store}
	healthCtrl := &controllers.HealthController{Store: d.Store, Driver: d.Config.StoreDriver, Version: version.Version}

	// Public
	r.GET("/health", healthCtrl.Health)
	r.GET("/metrics", gin.WrapH(metrics.Handler()))
	r.POST("/api/v1/auth/login", authCtrl.Login)

	// Protected
	api := r.Group("/api/v1", middleware.AuthMiddleware(d.Sessions))
	{
		api.GET("/auth/me", authCtrl.Me)
		api.POST("/auth/logout", authCtrl.Logout)

		api.GET("/subjects", dashCtrl.Subjects)
		api.GET("/dashboard", dashCtrl.View)
		api.GET("/dashboard/ranking", dashCtrl.Ranking)
		api.GET("/dashboard/ranking/export", dashCtrl.ExportRanking)

		api.GET("/ws", ws.Handler(d.Hub))

		// Subject admins only
		ed := api.Group("/editor", middleware.RequireRoles(models.RoleAdmin))
		{
			ed.POST("/open", editorCtrl.Open)
			ed.GET("/draft", editorCtrl.Draft)
			ed.PUT("/tab", editorCtrl.SelectTab)
			ed.PUT("/scores", editorCtrl.EditScore)
			ed.POST("/students", editorCtrl.AddStudent)
			ed.DELETE("/students/:id", editorCtrl.DeleteStudent)
			ed.POST("/submit", editorCtrl.Submit)
			ed.POST("/revise", editorCtrl.Revise)
		}
	}
}

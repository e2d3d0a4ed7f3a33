package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"bookswap/internal/handler/api"
	"bookswap/internal/handler/middleware"
	"bookswap/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

func NewRouter(
	engine *gin.Engine,
	cfg config.Config,
	bookHandler *api.BookHandler,
	exchangeHandler *api.ExchangeHandler,
	rewardsHandler *api.RewardsHandler,
	leaderboardHandler *api.LeaderboardHandler,
	identity *middleware.IdentityMiddleware,
) {
	setupMiddleware(engine, cfg)
	setupRoutes(engine, bookHandler, exchangeHandler, rewardsHandler, leaderboardHandler, identity)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.LoggingMiddleware(nil, cfg.Log))
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(
	engine *gin.Engine,
	bookHandler *api.BookHandler,
	exchangeHandler *api.ExchangeHandler,
	rewardsHandler *api.RewardsHandler,
	leaderboardHandler *api.LeaderboardHandler,
	identity *middleware.IdentityMiddleware,
) {
	engine.GET("/health", healthCheck)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	apiGroup := engine.Group("/api")
	{
		books := apiGroup.Group("/books")
		{
			addRoutes(books, []route{
				{Method: http.MethodGet, Path: "", Handler: bookHandler.ListAvailable},
				{Method: http.MethodGet, Path: "/:id", Handler: bookHandler.Get},
			})

			booksAuthed := books.Group("")
			booksAuthed.Use(identity.RequireUser())
			addRoutes(booksAuthed, []route{
				{Method: http.MethodPost, Path: "", Handler: bookHandler.Create},
			})
		}

		exchanges := apiGroup.Group("/exchanges")
		exchanges.Use(identity.RequireUser())
		{
			addRoutes(exchanges, []route{
				{Method: http.MethodPost, Path: "", Handler: exchangeHandler.Request},
				{Method: http.MethodGet, Path: "", Handler: exchangeHandler.ListMine},
				{Method: http.MethodGet, Path: "/:id", Handler: exchangeHandler.Get},
				{Method: http.MethodPost, Path: "/:id/accept", Handler: exchangeHandler.Accept},
				{Method: http.MethodPost, Path: "/:id/meetup", Handler: exchangeHandler.ScheduleMeetup},
				{Method: http.MethodPost, Path: "/:id/payments", Handler: exchangeHandler.SubmitPayment},
				{Method: http.MethodGet, Path: "/:id/confirmation-token", Handler: exchangeHandler.ConfirmationToken},
				{Method: http.MethodPost, Path: "/:id/confirm", Handler: exchangeHandler.Confirm},
				{Method: http.MethodPost, Path: "/:id/cancel", Handler: exchangeHandler.Cancel},
			})
		}

		rewards := apiGroup.Group("/rewards")
		{
			addRoutes(rewards, []route{
				{Method: http.MethodGet, Path: "/catalog", Handler: rewardsHandler.Catalog},
			})

			rewardsAuthed := rewards.Group("")
			rewardsAuthed.Use(identity.RequireUser())
			addRoutes(rewardsAuthed, []route{
				{Method: http.MethodGet, Path: "/balance", Handler: rewardsHandler.Balance},
				{Method: http.MethodGet, Path: "/history", Handler: rewardsHandler.History},
				{Method: http.MethodGet, Path: "/badges", Handler: rewardsHandler.Badges},
				{Method: http.MethodPost, Path: "/badges/evaluate", Handler: rewardsHandler.EvaluateBadges},
				{Method: http.MethodGet, Path: "/level", Handler: rewardsHandler.Level},
				{Method: http.MethodPost, Path: "/redemptions", Handler: rewardsHandler.Redeem},
			})
		}

		addRoutes(apiGroup, []route{
			{Method: http.MethodGet, Path: "/leaderboard", Handler: leaderboardHandler.Rank},
		})
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}

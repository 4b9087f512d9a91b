package server

import (
	"github.com/gin-gonic/gin"

	"github.com/example/wordquiz/internal/logger"
)

type RouterConfig struct {
	Log            *logger.Logger
	AllowedOrigins string

	HealthHandler  *HealthHandler
	WordHandler    *WordHandler
	MistakeHandler *MistakeHandler
	QuizHandler    *QuizHandler
	ResultHandler  *ResultHandler
	ReadingHandler *ReadingHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestID())
	router.Use(RequestLogger(cfg.Log))
	router.Use(CORS(cfg.AllowedOrigins))

	router.GET("/healthcheck", cfg.HealthHandler.HealthCheck)

	// Words
	words := router.Group("/words")
	{
		words.GET("", cfg.WordHandler.List)
		words.POST("", cfg.WordHandler.Create)
		words.DELETE("", cfg.WordHandler.Clear)
		words.GET("/count", cfg.WordHandler.Count)
		words.GET("/stats", cfg.WordHandler.Stats)
		words.GET("/search/:q", cfg.WordHandler.Search)
		words.POST("/batch", cfg.WordHandler.Batch)
		words.POST("/import", cfg.WordHandler.Import)
		words.GET("/:id", cfg.WordHandler.Get)
		words.PUT("/:id", cfg.WordHandler.Update)
		words.DELETE("/:id", cfg.WordHandler.Delete)
		words.POST("/:id/update-stats", cfg.WordHandler.UpdateStats)
	}

	// Mistakes
	mistakes := router.Group("/mistakes")
	{
		mistakes.GET("", cfg.MistakeHandler.List)
		mistakes.POST("", cfg.MistakeHandler.RecordWrong)
		mistakes.DELETE("", cfg.MistakeHandler.Clear)
		mistakes.POST("/correct/:wordId", cfg.MistakeHandler.RecordCorrect)
		mistakes.DELETE("/:id", cfg.MistakeHandler.Delete)
	}

	// Quiz
	test := router.Group("/test")
	{
		test.GET("/random/:count", cfg.QuizHandler.RandomWords)
		test.GET("/distractors/:wordId/:count", cfg.QuizHandler.Distractors)
		test.GET("/session/:count", cfg.QuizHandler.Session)
		test.POST("/answer", cfg.QuizHandler.Answer)
		test.GET("/reading/random", cfg.QuizHandler.RandomPassage)
	}

	// Results
	router.GET("/test-results", cfg.ResultHandler.List)
	router.POST("/test-results", cfg.ResultHandler.Create)
	router.DELETE("/test-results", cfg.ResultHandler.Clear)
	router.DELETE("/test-results/:id", cfg.ResultHandler.Delete)
	router.GET("/test-activity", cfg.ResultHandler.Activity)

	// Reading
	router.GET("/reading-passages", cfg.ReadingHandler.List)
	router.GET("/reading/passage/:id", cfg.ReadingHandler.Get)
	router.DELETE("/reading/passage/:id", cfg.ReadingHandler.Delete)
	router.POST("/reading/import", cfg.ReadingHandler.Import)
	router.POST("/reading/submit-answers", cfg.ReadingHandler.Submit)

	return router
}

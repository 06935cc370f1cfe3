package routes

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/jorget15/UnityAid/bus"
	"github.com/jorget15/UnityAid/classify"
	"github.com/jorget15/UnityAid/handlers"
	"github.com/jorget15/UnityAid/location"
	"github.com/jorget15/UnityAid/store"
)

func SetupRouter(st *store.Store, stream, a2a *bus.Bus,
	classifier classify.PriorityClassifier, extractor *location.Extractor) *gin.Engine {

	r := gin.Default()
	r.Use(cors.Default())

	r.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "Hello, welcome to UnityAid!",
		})
	})

	register := func(g gin.IRoutes) {
		g.POST("/report", func(c *gin.Context) { handlers.PostReport(c, st, stream, a2a) })
		g.GET("/reports", func(c *gin.Context) { handlers.ListReports(c, st) })
		g.GET("/resources", func(c *gin.Context) { handlers.ListResources(c, st) })
		g.GET("/map.geojson", func(c *gin.Context) { handlers.MapGeoJSON(c, st) })
		g.GET("/health", func(c *gin.Context) { handlers.Health(c, st) })
		g.GET("/stream", func(c *gin.Context) { handlers.StreamEvents(c, stream) })
		g.POST("/classify", func(c *gin.Context) { handlers.ClassifyPriority(c, classifier) })
		g.POST("/classify/answers", handlers.ClassifyWithAnswers)
		g.POST("/locate", func(c *gin.Context) { handlers.Locate(c, extractor) })
	}

	// Same surface with and without the /api prefix, like the original UI
	// expects.
	register(r)
	register(r.Group("/api"))

	// Agent-to-agent bus endpoints.
	r.POST("/a2a/send", func(c *gin.Context) { handlers.A2ASend(c, a2a) })
	r.GET("/a2a/subscribe", func(c *gin.Context) { handlers.StreamEvents(c, a2a) })

	return r
}

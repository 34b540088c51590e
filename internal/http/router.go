package httpx

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/you/wifiattend/internal/http/handlers"
)

const requestIDHeader = "X-Request-ID"

func BuildRouter(rh *handlers.RecordHandlers) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestLog())

	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })

	r.GET("/:collection", rh.List)
	r.POST("/:collection", rh.Create)
	r.GET("/:collection/:id", rh.Get)
	r.DELETE("/:collection/:id", rh.Delete)

	return r
}

// requestLog echoes the caller's request id, or a fresh one, and logs the request
func requestLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Header(requestIDHeader, id)

		start := time.Now()
		c.Next()
		if gin.Mode() != gin.TestMode {
			log.Printf("%s %s request_id=%s status=%d took=%s",
				c.Request.Method, c.Request.URL.RequestURI(), id, c.Writer.Status(), time.Since(start).Round(time.Millisecond))
		}
	}
}

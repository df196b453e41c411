// Package health serves the liveness endpoint and prometheus metrics. The
// listener is fully independent of call handling; a wedged call never takes
// the health check down.
package health

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
)

func NewRouter(log *logrus.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery(), RequestLogger(log))

	ok := func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	}
	r.GET("/", ok)
	r.GET("/health", ok)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	r.NoRoute(func(c *gin.Context) {
		c.String(http.StatusNotFound, "Not Found")
	})
	return r
}

// Serve blocks on the listener; callers run it on its own goroutine.
func Serve(r *gin.Engine, port string, log *logrus.Logger) {
	log.WithField("port", port).Info("health server started")
	if err := r.Run(":" + port); err != nil {
		log.WithError(err).Error("health server stopped")
	}
}

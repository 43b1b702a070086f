package system

import (
	"context"
	"log/slog"
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const readyTimeout = 2 * time.Second

// Pinger — зависимость, которую проверяет readiness (хранилище истории, Redis).
type Pinger interface {
	Ping(ctx context.Context) error
}

// Controller — системные маршруты: liveness, readiness, метрики, корень API.
type Controller struct {
	deps    map[string]Pinger
	version string
	log     *slog.Logger
}

// New создаёт системный контроллер. deps — имя зависимости → проверка для /readyness.
func New(deps map[string]Pinger, version string, log *slog.Logger) *Controller {
	return &Controller{deps: deps, version: version, log: log}
}

// RegisterRoutes реализует http.Controller: регистрирует маршруты на роутере.
func (c *Controller) RegisterRoutes(r *gin.Engine) {
	r.GET("/", c.root)
	r.GET("/liveness", c.live)
	r.GET("/readyness", c.ready)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

func (c *Controller) root(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{
		"name":    "exprCalc",
		"version": c.version,
		"api":     "/api/v1",
	})
}

func (c *Controller) live(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{"status": "alive"})
}

// ready пингует все зависимости; одна недоступная — 503.
func (c *Controller) ready(ctx *gin.Context) {
	pingCtx, cancel := context.WithTimeout(ctx.Request.Context(), readyTimeout)
	defer cancel()

	names := make([]string, 0, len(c.deps))
	for name := range c.deps {
		names = append(names, name)
	}
	sort.Strings(names)

	checks := make(gin.H, len(names))
	ready := true
	for _, name := range names {
		if err := c.deps[name].Ping(pingCtx); err != nil {
			c.log.Warn("ready check failed", "dependency", name, "error", err)
			checks[name] = err.Error()
			ready = false
			continue
		}
		checks[name] = "ok"
	}

	if !ready {
		ctx.JSON(http.StatusServiceUnavailable, gin.H{"status": "not ready", "checks": checks})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"status": "ready", "checks": checks})
}

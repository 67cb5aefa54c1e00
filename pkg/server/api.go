package server

import (
	"fmt"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"github.com/govmind/decisions-api/pkg/config"
	handlers "github.com/govmind/decisions-api/pkg/handlers/http"
	prom "github.com/govmind/decisions-api/pkg/infra/prometheus"
)

type (
	ApiServerDI struct {
		HandlerTransport handlers.HandlerTransport
		Config           *config.Config
		Logger           *logrus.Logger
	}
	ApiServer struct {
		*BaseServer
		handlerTransport handlers.HandlerTransport
	}
)

func NewApiServer(di ApiServerDI) *ApiServer {
	return &ApiServer{
		BaseServer:       NewBaseServer(di.Config, di.Logger),
		handlerTransport: di.HandlerTransport,
	}
}

func (s *ApiServer) Run() error {
	s.setupRoutes()
	s.setupHealthCheck()
	s.setupMetricsEndpoint()

	addr := fmt.Sprintf("%s:%d", s.config.Server.Host, s.config.Server.Port)
	s.logger.WithField("addr", addr).Info("starting api server")
	return s.router.Listen(addr)
}

func (s *ApiServer) Shutdown() error {
	return s.router.ShutdownWithTimeout(10 * time.Second)
}

func (s *ApiServer) setupRoutes() {
	if s.config.Metrics.Enabled {
		s.router.Use(requestMetrics)
	}

	s.router.Get("/healthz", s.handlerTransport.HealthHandler.Handle)

	v1 := s.router.Group("/api/v1")
	{
		v1.Post("/ask", s.handlerTransport.AskHandler.Handle)
		v1.Post("/search", s.handlerTransport.SearchHandler.Handle)
		v1.Get("/stats", s.handlerTransport.StatsHandler.Handle)
		v1.Post("/reload", s.handlerTransport.ReloadHandler.Handle)
		v1.Get("/count", s.handlerTransport.CountHandler.Handle)
	}
}

func requestMetrics(c *fiber.Ctx) error {
	started := time.Now()
	err := c.Next()

	route := c.Route().Path
	prom.RequestTotal.WithLabelValues(route, c.Method(), strconv.Itoa(c.Response().StatusCode())).Inc()
	prom.RequestLatency.WithLabelValues(route).Observe(float64(time.Since(started).Milliseconds()))
	return err
}

package http

import "github.com/gofiber/fiber/v2"

type Handler interface {
	Handle(ctx *fiber.Ctx) error
}

type HandlerTransport struct {
	AskHandler    Handler
	SearchHandler Handler
	StatsHandler  Handler
	ReloadHandler Handler
	CountHandler  Handler
	HealthHandler Handler
}

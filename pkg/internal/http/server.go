package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	jsoniter "github.com/json-iterator/go"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
	"github.com/treehollow/socialite/pkg/internal/fanout"
	"github.com/treehollow/socialite/pkg/internal/http/api"
	"github.com/treehollow/socialite/pkg/internal/http/ws"
	"github.com/treehollow/socialite/pkg/internal/services"
)

type App struct {
	app *fiber.App
	srv *services.Interactor
}

func NewServer(srv *services.Interactor, bus *fanout.Bus) *App {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		EnableIPValidation:    true,
		ServerHeader:          "Socialite",
		AppName:               "Socialite",
		ProxyHeader:           fiber.HeaderXForwardedFor,
		JSONEncoder:           jsoniter.ConfigCompatibleWithStandardLibrary.Marshal,
		JSONDecoder:           jsoniter.ConfigCompatibleWithStandardLibrary.Unmarshal,
		BodyLimit:             50 * 1024 * 1024,
	})

	app.Use(cors.New(cors.Config{
		AllowCredentials: true,
		AllowMethods: strings.Join([]string{
			fiber.MethodGet,
			fiber.MethodPost,
			fiber.MethodHead,
			fiber.MethodOptions,
			fiber.MethodPut,
			fiber.MethodDelete,
			fiber.MethodPatch,
		}, ","),
		AllowOriginsFunc: func(origin string) bool {
			return true
		},
	}))

	server := &App{app: app, srv: srv}
	app.Use(server.authenticate)

	api.MapAPIs(app, srv)
	ws.MapStreaming(app, bus)

	return server
}

func (v *App) Listen() {
	if err := v.app.Listen(viper.GetString("bind")); err != nil {
		log.Fatal().Err(err).Msg("An error occurred when starting http server.")
	}
}

package configuration

import (
	"net/http"

	"github.com/labstack/echo/v4"
	log "github.com/sirupsen/logrus"
	"github.com/xinggunghuang/engine-tester/internal/app/enginetester"
)

// ServeAPI starts the engine tester HTTP API on the configured address and
// returns the server so the caller can close it on shutdown.
func ServeAPI(config *enginetester.Config) *echo.Echo {
	server := newServer(config)

	go func() {
		if err := server.Start(config.ServerAddress); err != nil && err != http.ErrServerClosed {
			log.Fatal(err)
		}
	}()

	return server
}

func newServer(config *enginetester.Config) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	e.GET("/healthz", healthzHandler)
	e.POST("/api/enginepost", processDirectoryHandler(config))

	return e
}

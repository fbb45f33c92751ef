package configuration

import (
	"net/http"
	"net/url"
	"path/filepath"

	"github.com/labstack/echo/v4"
	log "github.com/sirupsen/logrus"
	"github.com/xinggunghuang/engine-tester/internal/app/enginetester"
	"github.com/xinggunghuang/engine-tester/internal/app/httpresponse"
)

// ProcessResponse is the body returned by the enginepost endpoint.
type ProcessResponse struct {
	Status    string   `json:"status"`
	Processed int      `json:"processed"`
	Responses []string `json:"responses"`
}

func healthzHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func processDirectoryHandler(config *enginetester.Config) echo.HandlerFunc {
	return func(c echo.Context) error {
		inputFolder := c.QueryParam("inputfolder")
		engineURL := c.QueryParam("engineurl")
		if inputFolder == "" || engineURL == "" {
			return c.JSON(
				http.StatusBadRequest,
				httpresponse.Error("inputfolder and engineurl query parameters are required"),
			)
		}
		if u, err := url.Parse(engineURL); err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
			return c.JSON(
				http.StatusBadRequest,
				httpresponse.Errorf("engineurl is not a valid HTTP URL: %s", engineURL),
			)
		}

		directory, err := enginetester.ResolveDirectory(inputFolder)
		if err != nil {
			return c.JSON(http.StatusBadRequest, httpresponse.Error(err.Error()))
		}

		log.Infof("relaying request files from %s to %s", directory, engineURL)

		summary, err := enginetester.Relay(engineURL, directory, config.RelayTimeout, nil)
		if err != nil {
			return c.JSON(http.StatusBadGateway, httpresponse.Error(err.Error()))
		}

		responses := make([]string, 0, summary.ProcessedCount())
		for _, processed := range summary.ProcessedFiles {
			responses = append(responses, filepath.ToSlash(processed.ResponsePath))
		}

		log.Infof("relayed %d request files to %s", summary.ProcessedCount(), engineURL)

		return c.JSON(http.StatusOK, ProcessResponse{
			Status:    "ok",
			Processed: summary.ProcessedCount(),
			Responses: responses,
		})
	}
}

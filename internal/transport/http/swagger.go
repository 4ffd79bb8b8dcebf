package http

import (
	"net/http"
	"os"
	"path/filepath"

	"github.com/ghodss/yaml"
	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/davenri/RoamIO_APP_BackEnd/internal/util"
)

const swaggerSpecFile = "swagger.yaml"

// RegisterSwagger mounts the Swagger UI under /swagger. The API description
// is a hand-maintained YAML file converted to JSON per request, so doc edits
// show up without a rebuild.
func RegisterSwagger(e *echo.Echo) {
	e.GET("/swagger/doc.json", serveOpenAPISpec)
	e.GET("/swagger/*", echoSwagger.WrapHandler)
}

func serveOpenAPISpec(c echo.Context) error {
	raw, err := os.ReadFile(filepath.Join("docs", swaggerSpecFile))
	if err != nil {
		c.Logger().Errorf("read api description: %v", err)
		return c.JSON(http.StatusInternalServerError, util.Error("api description unavailable"))
	}
	spec, err := yaml.YAMLToJSON(raw)
	if err != nil {
		c.Logger().Errorf("convert api description: %v", err)
		return c.JSON(http.StatusInternalServerError, util.Error("api description unavailable"))
	}
	return c.Blob(http.StatusOK, echo.MIMEApplicationJSONCharsetUTF8, spec)
}

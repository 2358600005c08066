package api

import (
	"net/http"

	json "github.com/goccy/go-json"
	"github.com/labstack/echo/v4"
)

// JSONSerializer is an echo.JSONSerializer backed by goccy/go-json.
type JSONSerializer struct{}

// Serialize encodes i into the response.
func (JSONSerializer) Serialize(c echo.Context, i interface{}, indent string) error {
	enc := json.NewEncoder(c.Response())
	if indent != "" {
		enc.SetIndent("", indent)
	}
	return enc.Encode(i)
}

// Deserialize decodes the request body into i.
func (JSONSerializer) Deserialize(c echo.Context, i interface{}) error {
	err := json.NewDecoder(c.Request().Body).Decode(i)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error()).SetInternal(err)
	}
	return nil
}

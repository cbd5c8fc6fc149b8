package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
)

func idParam(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}

func notFound(c echo.Context, message string) error {
	return c.Render(http.StatusNotFound, "error.html", echo.Map{
		"Message": message,
	})
}

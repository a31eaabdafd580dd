package v2controllers

import (
	"strconv"

	"github.com/getAlby/royaltyhub.go/lib/responses"
	"github.com/labstack/echo/v4"
)

// respondWithError answers known royalty errors with their response, anything else goes to the HTTP error handler.
func respondWithError(c echo.Context, err error) error {
	if response, ok := responses.RoyaltyError(err); ok {
		return c.JSON(response.HttpStatusCode, response)
	}
	return err
}

func parseTokenID(c echo.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func parseLimit(c echo.Context) int {
	limit, err := strconv.Atoi(c.QueryParam("limit"))
	if err != nil {
		return 0
	}
	return limit
}

package v2controllers

import (
	"net/http"

	"github.com/getAlby/royaltyhub.go/lib/service"
	"github.com/labstack/echo/v4"
)

type HealthController struct {
	svc *service.RoyaltyHubService
}

func NewHealthController(svc *service.RoyaltyHubService) *HealthController {
	return &HealthController{svc: svc}
}

type HealthResponse struct {
	Result string `json:"result"`
}

// Check godoc
// @Summary      Check system health
// @Description  Checks that the store can be read
// @Produce      json
// @Tags         Health
// @Success      200  {object}  HealthResponse
// @Failure      500  {object}  responses.ErrorResponse
// @Router       /v2/health [get]
func (controller *HealthController) Check(c echo.Context) error {
	if _, err := controller.svc.CurrentTokenCount(c.Request().Context()); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, &HealthResponse{
		Result: "OK",
	})
}

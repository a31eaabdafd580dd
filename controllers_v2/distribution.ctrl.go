package v2controllers

import (
	"net/http"

	"github.com/getAlby/royaltyhub.go/lib/responses"
	"github.com/getAlby/royaltyhub.go/lib/service"
	"github.com/labstack/echo/v4"
)

// DistributionController : DistributionController struct
type DistributionController struct {
	svc *service.RoyaltyHubService
}

func NewDistributionController(svc *service.RoyaltyHubService) *DistributionController {
	return &DistributionController{svc: svc}
}

type DistributeRequestBody struct {
	TokenID   int64  `json:"token_id"`
	Amount    int64  `json:"amount"`
	Reference string `json:"reference" validate:"max=256"`
}

// Distribute godoc
// @Summary      Distribute a payment
// @Description  Splits a received payment between the artist and the current owner of the token.
// @Description  A payment with an already distributed reference is rejected.
// @Accept       json
// @Produce      json
// @Tags         Distribution
// @Param        DistributeRequestBody  body      DistributeRequestBody  true  "Payment"
// @Success      200                    {object}  models.Distribution
// @Failure      400                    {object}  responses.ErrorResponse
// @Failure      401                    {object}  responses.ErrorResponse
// @Failure      404                    {object}  responses.ErrorResponse
// @Failure      409                    {object}  responses.ErrorResponse
// @Failure      500                    {object}  responses.ErrorResponse
// @Router       /v2/distributions [post]
// @Security     AdminToken
func (controller *DistributionController) Distribute(c echo.Context) error {
	var body DistributeRequestBody

	if err := c.Bind(&body); err != nil {
		c.Logger().Errorf("Failed to load distribute request body: %v", err)
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}
	if err := c.Validate(&body); err != nil {
		c.Logger().Errorf("Invalid distribute request body error: %v", err)
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}

	distribution, err := controller.svc.Distribute(c.Request().Context(), body.TokenID, body.Amount, body.Reference)
	if err != nil {
		c.Logger().Errorf("Distribution failed token_id:%v amount:%v error: %v", body.TokenID, body.Amount, err)
		return respondWithError(c, err)
	}
	return c.JSON(http.StatusOK, distribution)
}

package v2controllers

import (
	"net/http"

	"github.com/getAlby/royaltyhub.go/lib/service"
	"github.com/labstack/echo/v4"
)

// WithdrawalController : WithdrawalController struct
type WithdrawalController struct {
	svc *service.RoyaltyHubService
}

func NewWithdrawalController(svc *service.RoyaltyHubService) *WithdrawalController {
	return &WithdrawalController{svc: svc}
}

type WithdrawalResponseBody struct {
	ID        int64  `json:"id"`
	Reference string `json:"reference"`
	Address   string `json:"address"`
	Amount    int64  `json:"amount"`
	State     string `json:"state"`
}

// Withdraw godoc
// @Summary      Withdraw the balance
// @Description  Pays out the whole royalty balance of the current user. The balance is zero afterwards
// @Produce      json
// @Tags         Account
// @Success      200  {object}  WithdrawalResponseBody
// @Failure      400  {object}  responses.ErrorResponse
// @Failure      502  {object}  responses.ErrorResponse
// @Failure      500  {object}  responses.ErrorResponse
// @Router       /v2/withdrawals [post]
// @Security     OAuth2Password
func (controller *WithdrawalController) Withdraw(c echo.Context) error {
	address := c.Get("Address").(string)

	withdrawal, err := controller.svc.Withdraw(c.Request().Context(), address)
	if err != nil {
		return respondWithError(c, err)
	}
	return c.JSON(http.StatusOK, &WithdrawalResponseBody{
		ID:        withdrawal.ID,
		Reference: withdrawal.Reference,
		Address:   withdrawal.Identity,
		Amount:    withdrawal.Amount,
		State:     withdrawal.State,
	})
}

package v2controllers

import (
	"net/http"

	"github.com/getAlby/royaltyhub.go/lib/service"
	"github.com/labstack/echo/v4"
)

// BalanceController : BalanceController struct
type BalanceController struct {
	svc *service.RoyaltyHubService
}

func NewBalanceController(svc *service.RoyaltyHubService) *BalanceController {
	return &BalanceController{svc: svc}
}

type BalanceResponse struct {
	Address  string `json:"address"`
	Balance  int64  `json:"balance"`
	Currency string `json:"currency"`
	Unit     string `json:"unit"`
}

// Balance godoc
// @Summary      Retrieve balance
// @Description  Withdrawable royalty balance of the current user
// @Produce      json
// @Tags         Account
// @Success      200  {object}  BalanceResponse
// @Failure      400  {object}  responses.ErrorResponse
// @Failure      500  {object}  responses.ErrorResponse
// @Router       /v2/balance [get]
// @Security     OAuth2Password
func (controller *BalanceController) Balance(c echo.Context) error {
	return controller.balanceOf(c, c.Get("Address").(string))
}

// BalanceOf godoc
// @Summary      Retrieve balance of an address
// @Description  Withdrawable royalty balance of any address, zero if it never received a payment
// @Produce      json
// @Tags         Account
// @Param        address  path      string  true  "Address"
// @Success      200      {object}  BalanceResponse
// @Failure      400      {object}  responses.ErrorResponse
// @Failure      500      {object}  responses.ErrorResponse
// @Router       /v2/accounts/{address}/balance [get]
func (controller *BalanceController) BalanceOf(c echo.Context) error {
	return controller.balanceOf(c, c.Param("address"))
}

func (controller *BalanceController) balanceOf(c echo.Context, address string) error {
	balance, err := controller.svc.BalanceOf(c.Request().Context(), address)
	if err != nil {
		c.Logger().Errorf("Error fetching balance for address:%s error: %v", address, err)
		return respondWithError(c, err)
	}
	return c.JSON(http.StatusOK, &BalanceResponse{
		Address:  address,
		Balance:  balance,
		Currency: controller.svc.Config.Currency,
		Unit:     controller.svc.Config.Unit,
	})
}

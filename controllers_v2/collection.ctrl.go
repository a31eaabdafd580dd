package v2controllers

import (
	"net/http"

	"github.com/getAlby/royaltyhub.go/lib/service"
	"github.com/labstack/echo/v4"
)

// CollectionController : CollectionController struct
type CollectionController struct {
	svc *service.RoyaltyHubService
}

func NewCollectionController(svc *service.RoyaltyHubService) *CollectionController {
	return &CollectionController{svc: svc}
}

type CollectionResponseBody struct {
	Name           string `json:"name"`
	Symbol         string `json:"symbol"`
	CurrentTokenID int64  `json:"current_token_id"`
}

// Collection godoc
// @Summary      Collection info
// @Description  Name, symbol and number of minted tokens of the collection
// @Produce      json
// @Tags         Collection
// @Success      200  {object}  CollectionResponseBody
// @Failure      500  {object}  responses.ErrorResponse
// @Router       /v2/collection [get]
func (controller *CollectionController) Collection(c echo.Context) error {
	collection, err := controller.svc.Collection(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, &CollectionResponseBody{
		Name:           collection.Name,
		Symbol:         collection.Symbol,
		CurrentTokenID: collection.TokenCount,
	})
}

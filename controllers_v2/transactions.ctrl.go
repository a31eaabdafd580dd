package v2controllers

import (
	"net/http"
	"time"

	"github.com/getAlby/royaltyhub.go/lib/service"
	"github.com/labstack/echo/v4"
)

// TransactionsController : TransactionsController struct
type TransactionsController struct {
	svc *service.RoyaltyHubService
}

func NewTransactionsController(svc *service.RoyaltyHubService) *TransactionsController {
	return &TransactionsController{svc: svc}
}

type TransactionEntry struct {
	ID             int64     `json:"id"`
	Type           string    `json:"type"`
	Amount         int64     `json:"amount"`
	TokenID        int64     `json:"token_id,omitempty"`
	DistributionID int64     `json:"distribution_id,omitempty"`
	WithdrawalID   int64     `json:"withdrawal_id,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// GetTransactions godoc
// @Summary      Retrieve balance changes
// @Description  Returns the latest credits and withdrawals of the current user, newest first
// @Produce      json
// @Tags         Account
// @Param        limit  query     int  false  "Max number of entries"
// @Success      200    {object}  []TransactionEntry
// @Failure      400    {object}  responses.ErrorResponse
// @Failure      500    {object}  responses.ErrorResponse
// @Router       /v2/transactions [get]
// @Security     OAuth2Password
func (controller *TransactionsController) GetTransactions(c echo.Context) error {
	address := c.Get("Address").(string)

	entries, err := controller.svc.EntriesFor(c.Request().Context(), address, parseLimit(c))
	if err != nil {
		return respondWithError(c, err)
	}

	response := make([]TransactionEntry, len(entries))
	for i, entry := range entries {
		response[i] = TransactionEntry{
			ID:             entry.ID,
			Type:           entry.EntryType,
			Amount:         entry.Amount,
			TokenID:        entry.TokenID,
			DistributionID: entry.DistributionID,
			WithdrawalID:   entry.WithdrawalID,
			CreatedAt:      entry.CreatedAt,
		}
	}
	return c.JSON(http.StatusOK, &response)
}

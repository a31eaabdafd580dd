package responses

import (
	"errors"
	"net/http"

	"github.com/getAlby/royaltyhub.go/lib/royalty"
	"github.com/getsentry/sentry-go"
	sentryecho "github.com/getsentry/sentry-go/echo"
	"github.com/labstack/echo/v4"
)

type ErrorResponse struct {
	Error          bool   `json:"error"`
	Code           int    `json:"code"`
	Message        string `json:"message"`
	HttpStatusCode int    `json:"-"`
}

var GeneralServerError = ErrorResponse{
	Error:          true,
	Code:           6,
	Message:        "Something went wrong. Please try again later",
	HttpStatusCode: 500,
}

var BadArgumentsError = ErrorResponse{
	Error:          true,
	Code:           8,
	Message:        "Bad arguments",
	HttpStatusCode: 400,
}

var BadAuthError = ErrorResponse{
	Error:          true,
	Code:           1,
	Message:        "bad auth",
	HttpStatusCode: 401,
}

var InvalidRoyaltyError = ErrorResponse{
	Error:          true,
	Code:           2,
	Message:        "royalty must be between 0 and 10000 basis points",
	HttpStatusCode: 400,
}

var InvalidRecipientError = ErrorResponse{
	Error:          true,
	Code:           2,
	Message:        "invalid recipient address",
	HttpStatusCode: 400,
}

var InvalidArtistError = ErrorResponse{
	Error:          true,
	Code:           2,
	Message:        "invalid artist address",
	HttpStatusCode: 400,
}

var ZeroAmountError = ErrorResponse{
	Error:          true,
	Code:           2,
	Message:        "amount must be greater than zero",
	HttpStatusCode: 400,
}

var UnknownTokenError = ErrorResponse{
	Error:          true,
	Code:           3,
	Message:        "unknown token",
	HttpStatusCode: 404,
}

var NotOwnerError = ErrorResponse{
	Error:          true,
	Code:           4,
	Message:        "caller is not the token owner",
	HttpStatusCode: 403,
}

var NotApprovedError = ErrorResponse{
	Error:          true,
	Code:           4,
	Message:        "caller is neither owner nor approved for the token",
	HttpStatusCode: 403,
}

var NothingToWithdrawError = ErrorResponse{
	Error:          true,
	Code:           5,
	Message:        "nothing to withdraw",
	HttpStatusCode: 400,
}

var DuplicatePaymentError = ErrorResponse{
	Error:          true,
	Code:           7,
	Message:        "payment reference already distributed",
	HttpStatusCode: 409,
}

var BalanceOverflowError = ErrorResponse{
	Error:          true,
	Code:           7,
	Message:        "balance would overflow",
	HttpStatusCode: 409,
}

var PayoutFailedError = ErrorResponse{
	Error:          true,
	Code:           9,
	Message:        "payout failed, the balance has been restored. Please try again later",
	HttpStatusCode: 502,
}

// the order matters: ErrInvalidArtist wraps ErrInvalidRecipient
var royaltyErrors = []struct {
	err      error
	response ErrorResponse
}{
	{royalty.ErrInvalidRoyalty, InvalidRoyaltyError},
	{royalty.ErrInvalidArtist, InvalidArtistError},
	{royalty.ErrInvalidRecipient, InvalidRecipientError},
	{royalty.ErrZeroAmount, ZeroAmountError},
	{royalty.ErrUnknownToken, UnknownTokenError},
	{royalty.ErrNotOwner, NotOwnerError},
	{royalty.ErrNotApproved, NotApprovedError},
	{royalty.ErrNothingToWithdraw, NothingToWithdrawError},
	{royalty.ErrDuplicatePayment, DuplicatePaymentError},
	{royalty.ErrBalanceOverflow, BalanceOverflowError},
	{royalty.ErrPayoutFailed, PayoutFailedError},
}

// RoyaltyError maps an error of the royalty package to its response.
func RoyaltyError(err error) (ErrorResponse, bool) {
	for _, candidate := range royaltyErrors {
		if errors.Is(err, candidate.err) {
			return candidate.response, true
		}
	}
	return ErrorResponse{}, false
}

func HTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	c.Logger().Error(err)
	if hub := sentryecho.GetHubFromContext(c); hub != nil && isErrAllowedForSentry(err) {
		hub.WithScope(func(scope *sentry.Scope) {
			scope.SetExtra("Address", c.Get("Address"))
			hub.CaptureException(err)
		})
	}
	if he, ok := err.(*echo.HTTPError); ok {
		c.JSON(he.Code, he.Message)
		return
	}
	if response, ok := RoyaltyError(err); ok {
		c.JSON(response.HttpStatusCode, response)
		return
	}
	c.JSON(http.StatusInternalServerError, GeneralServerError)
}

// isErrAllowedForSentry filters out errors caused by the caller rather than by us.
func isErrAllowedForSentry(err error) bool {
	if he, ok := err.(*echo.HTTPError); ok {
		switch message := he.Message.(type) {
		case ErrorResponse:
			return message.Code != BadAuthError.Code
		case echo.Map:
			return message["code"] != BadAuthError.Code
		}
		return he.Code >= http.StatusInternalServerError
	}
	if response, ok := RoyaltyError(err); ok {
		return response.HttpStatusCode >= http.StatusInternalServerError
	}
	return true
}

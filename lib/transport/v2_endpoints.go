package transport

import (
	v2controllers "github.com/getAlby/royaltyhub.go/controllers_v2"
	"github.com/getAlby/royaltyhub.go/lib/service"
	"github.com/labstack/echo/v4"
)

// RegisterV2Endpoints mounts the /v2 API. secured groups require an access token,
// adminMw guards the endpoints of the operator that receives the payments.
func RegisterV2Endpoints(svc *service.RoyaltyHubService, e *echo.Echo, secured *echo.Group, securedWithStrictRateLimit *echo.Group, strictRateLimitMiddleware echo.MiddlewareFunc, adminMw echo.MiddlewareFunc, cacheMw echo.MiddlewareFunc, logMw echo.MiddlewareFunc) {
	authCtrl := v2controllers.NewAuthController(svc)
	e.GET("/v2/auth/message", authCtrl.LoginMessage)
	e.POST("/v2/auth", authCtrl.Auth, strictRateLimitMiddleware, logMw)

	e.GET("/v2/health", v2controllers.NewHealthController(svc).Check)
	e.GET("/v2/collection", v2controllers.NewCollectionController(svc).Collection)

	tokenCtrl := v2controllers.NewTokenController(svc)
	e.POST("/v2/tokens", tokenCtrl.Mint, adminMw, logMw)
	e.GET("/v2/tokens/:id", tokenCtrl.GetToken)
	e.GET("/v2/tokens/:id/owner", tokenCtrl.OwnerOf)
	// royalty terms never change after mint
	e.GET("/v2/tokens/:id/royalty", tokenCtrl.RoyaltyTerms, cacheMw)
	e.GET("/v2/accounts/:address/tokens", tokenCtrl.TokensOwnedBy)
	secured.POST("/v2/tokens/:id/transfer", tokenCtrl.Transfer)
	secured.POST("/v2/tokens/:id/approve", tokenCtrl.Approve)

	e.POST("/v2/distributions", v2controllers.NewDistributionController(svc).Distribute, adminMw, logMw)

	balanceCtrl := v2controllers.NewBalanceController(svc)
	secured.GET("/v2/balance", balanceCtrl.Balance)
	e.GET("/v2/accounts/:address/balance", balanceCtrl.BalanceOf)
	secured.GET("/v2/transactions", v2controllers.NewTransactionsController(svc).GetTransactions)
	securedWithStrictRateLimit.POST("/v2/withdrawals", v2controllers.NewWithdrawalController(svc).Withdraw)
}

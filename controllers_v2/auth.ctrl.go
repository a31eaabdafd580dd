package v2controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/getAlby/royaltyhub.go/lib/responses"
	"github.com/getAlby/royaltyhub.go/lib/security"
	"github.com/getAlby/royaltyhub.go/lib/service"
	"github.com/getAlby/royaltyhub.go/lib/tokens"
	"github.com/labstack/echo/v4"
)

// AuthController : Signature login controller struct
type AuthController struct {
	svc *service.RoyaltyHubService
}

func NewAuthController(svc *service.RoyaltyHubService) *AuthController {
	return &AuthController{svc: svc}
}

type LoginMessageResponseBody struct {
	Message string `json:"message"`
}

type AuthRequestBody struct {
	Address   string `json:"address" validate:"required,address"`
	Message   string `json:"message" validate:"required"`
	Signature string `json:"signature" validate:"required"`
}

type AuthResponseBody struct {
	Address     string `json:"address"`
	AccessToken string `json:"access_token"`
}

// LoginMessage godoc
// @Summary      Get a login message
// @Description  Returns a fresh message to be signed by the wallet of the account logging in
// @Produce      json
// @Tags         Auth
// @Success      200  {object}  LoginMessageResponseBody
// @Router       /v2/auth/message [get]
func (controller *AuthController) LoginMessage(c echo.Context) error {
	return c.JSON(http.StatusOK, &LoginMessageResponseBody{
		Message: security.LoginMessage(time.Now()),
	})
}

// Auth godoc
// @Summary      Authenticate
// @Description  Exchanges a personal_sign signature of a login message for an access token
// @Accept       json
// @Produce      json
// @Tags         Auth
// @Param        AuthRequestBody  body      AuthRequestBody  true  "Signed login message"
// @Success      200              {object}  AuthResponseBody
// @Failure      400              {object}  responses.ErrorResponse
// @Failure      401              {object}  responses.ErrorResponse
// @Failure      500              {object}  responses.ErrorResponse
// @Router       /v2/auth [post]
func (controller *AuthController) Auth(c echo.Context) error {
	var body AuthRequestBody

	if err := c.Bind(&body); err != nil {
		c.Logger().Errorf("Failed to load auth request body: %v", err)
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}
	if err := c.Validate(&body); err != nil {
		c.Logger().Errorf("Invalid auth request body error: %v", err)
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}

	maxAge := time.Duration(controller.svc.Config.LoginMessageMaxAge) * time.Second
	address, err := security.VerifyLoginSignature(body.Address, body.Message, body.Signature, maxAge, time.Now())
	if err != nil {
		if errors.Is(err, security.ErrMalformedLoginMessage) {
			return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
		}
		c.Logger().Debugf("Rejected login address:%s error: %v", body.Address, err)
		return c.JSON(http.StatusUnauthorized, responses.BadAuthError)
	}

	accessToken, err := tokens.GenerateAccessToken(controller.svc.Config.JWTSecret, controller.svc.Config.JWTAccessTokenExpiry, address)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, &AuthResponseBody{
		Address:     address,
		AccessToken: accessToken,
	})
}

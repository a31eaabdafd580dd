package v2controllers

import (
	"net/http"
	"time"

	"github.com/getAlby/royaltyhub.go/db/models"
	"github.com/getAlby/royaltyhub.go/lib/responses"
	"github.com/getAlby/royaltyhub.go/lib/royalty"
	"github.com/getAlby/royaltyhub.go/lib/service"
	"github.com/labstack/echo/v4"
)

// TokenController : TokenController struct
type TokenController struct {
	svc *service.RoyaltyHubService
}

func NewTokenController(svc *service.RoyaltyHubService) *TokenController {
	return &TokenController{svc: svc}
}

type Token struct {
	ID            int64     `json:"id"`
	Title         string    `json:"title"`
	ArtistName    string    `json:"artist_name"`
	RoyaltyBps    int64     `json:"royalty_bps"`
	MetadataURI   string    `json:"metadata_uri"`
	ArtistAddress string    `json:"artist_address"`
	Owner         string    `json:"owner"`
	Approved      string    `json:"approved,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

func newToken(token *models.Token) *Token {
	return &Token{
		ID:            token.ID,
		Title:         token.Title,
		ArtistName:    token.ArtistName,
		RoyaltyBps:    token.RoyaltyBps,
		MetadataURI:   token.MetadataURI,
		ArtistAddress: token.ArtistAddress,
		Owner:         token.Owner,
		Approved:      token.Approved,
		CreatedAt:     token.CreatedAt,
	}
}

type MintRequestBody struct {
	To            string `json:"to" validate:"required"`
	Title         string `json:"title" validate:"required,max=256"`
	ArtistName    string `json:"artist_name" validate:"required,max=256"`
	RoyaltyBps    int64  `json:"royalty_bps"`
	MetadataURI   string `json:"metadata_uri" validate:"max=2048"`
	ArtistAddress string `json:"artist_address" validate:"required"`
}

type OwnerResponseBody struct {
	TokenID int64  `json:"token_id"`
	Owner   string `json:"owner"`
}

type RoyaltyResponseBody struct {
	TokenID       int64  `json:"token_id"`
	RoyaltyBps    int64  `json:"royalty_bps"`
	ArtistAddress string `json:"artist_address"`
}

type TransferRequestBody struct {
	From string `json:"from"`
	To   string `json:"to" validate:"required"`
}

type ApproveRequestBody struct {
	Approved string `json:"approved"`
}

// Mint godoc
// @Summary      Mint a token
// @Description  Mints a new song token with its royalty terms. Ids are allocated sequentially starting at 1
// @Accept       json
// @Produce      json
// @Tags         Token
// @Param        MintRequestBody  body      MintRequestBody  true  "Token to mint"
// @Success      200              {object}  Token
// @Failure      400              {object}  responses.ErrorResponse
// @Failure      401              {object}  responses.ErrorResponse
// @Failure      500              {object}  responses.ErrorResponse
// @Router       /v2/tokens [post]
// @Security     AdminToken
func (controller *TokenController) Mint(c echo.Context) error {
	var body MintRequestBody

	if err := c.Bind(&body); err != nil {
		c.Logger().Errorf("Failed to load mint request body: %v", err)
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}
	if err := c.Validate(&body); err != nil {
		c.Logger().Errorf("Invalid mint request body error: %v", err)
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}

	token, err := controller.svc.Mint(c.Request().Context(), royalty.MintParams{
		To:            body.To,
		Title:         body.Title,
		ArtistName:    body.ArtistName,
		RoyaltyBps:    body.RoyaltyBps,
		MetadataURI:   body.MetadataURI,
		ArtistAddress: body.ArtistAddress,
	})
	if err != nil {
		return respondWithError(c, err)
	}
	return c.JSON(http.StatusOK, newToken(token))
}

// GetToken godoc
// @Summary      Retrieve a token
// @Description  Returns a token with its metadata, royalty terms and current owner
// @Produce      json
// @Tags         Token
// @Param        id   path      int  true  "Token id"
// @Success      200  {object}  Token
// @Failure      400  {object}  responses.ErrorResponse
// @Failure      404  {object}  responses.ErrorResponse
// @Failure      500  {object}  responses.ErrorResponse
// @Router       /v2/tokens/{id} [get]
func (controller *TokenController) GetToken(c echo.Context) error {
	id, ok := parseTokenID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}
	token, err := controller.svc.Token(c.Request().Context(), id)
	if err != nil {
		return respondWithError(c, err)
	}
	return c.JSON(http.StatusOK, newToken(token))
}

// OwnerOf godoc
// @Summary      Token owner
// @Produce      json
// @Tags         Token
// @Param        id   path      int  true  "Token id"
// @Success      200  {object}  OwnerResponseBody
// @Failure      400  {object}  responses.ErrorResponse
// @Failure      404  {object}  responses.ErrorResponse
// @Router       /v2/tokens/{id}/owner [get]
func (controller *TokenController) OwnerOf(c echo.Context) error {
	id, ok := parseTokenID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}
	owner, err := controller.svc.OwnerOf(c.Request().Context(), id)
	if err != nil {
		return respondWithError(c, err)
	}
	return c.JSON(http.StatusOK, &OwnerResponseBody{TokenID: id, Owner: owner})
}

// RoyaltyTerms godoc
// @Summary      Royalty terms
// @Description  Royalty in basis points and the artist address. Both are fixed at mint
// @Produce      json
// @Tags         Token
// @Param        id   path      int  true  "Token id"
// @Success      200  {object}  RoyaltyResponseBody
// @Failure      400  {object}  responses.ErrorResponse
// @Failure      404  {object}  responses.ErrorResponse
// @Router       /v2/tokens/{id}/royalty [get]
func (controller *TokenController) RoyaltyTerms(c echo.Context) error {
	id, ok := parseTokenID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}
	terms, err := controller.svc.RoyaltyTerms(c.Request().Context(), id)
	if err != nil {
		return respondWithError(c, err)
	}
	return c.JSON(http.StatusOK, &RoyaltyResponseBody{
		TokenID:       id,
		RoyaltyBps:    terms.RoyaltyBps,
		ArtistAddress: terms.ArtistAddress,
	})
}

// TokensOwnedBy godoc
// @Summary      Tokens of an account
// @Description  Returns the tokens currently owned by an address, newest first
// @Produce      json
// @Tags         Token
// @Param        address  path      string  true   "Owner address"
// @Param        limit    query     int     false  "Max number of tokens"
// @Success      200      {object}  []Token
// @Failure      400      {object}  responses.ErrorResponse
// @Router       /v2/accounts/{address}/tokens [get]
func (controller *TokenController) TokensOwnedBy(c echo.Context) error {
	owned, err := controller.svc.TokensOwnedBy(c.Request().Context(), c.Param("address"), parseLimit(c))
	if err != nil {
		return respondWithError(c, err)
	}
	response := make([]Token, len(owned))
	for i := range owned {
		response[i] = *newToken(&owned[i])
	}
	return c.JSON(http.StatusOK, &response)
}

// Transfer godoc
// @Summary      Transfer a token
// @Description  Moves the token to another address. The caller must own the token or be approved for it
// @Accept       json
// @Produce      json
// @Tags         Token
// @Param        id                   path      int                  true  "Token id"
// @Param        TransferRequestBody  body      TransferRequestBody  true  "Transfer"
// @Success      200                  {object}  Token
// @Failure      400                  {object}  responses.ErrorResponse
// @Failure      403                  {object}  responses.ErrorResponse
// @Failure      404                  {object}  responses.ErrorResponse
// @Router       /v2/tokens/{id}/transfer [post]
// @Security     OAuth2Password
func (controller *TokenController) Transfer(c echo.Context) error {
	caller := c.Get("Address").(string)
	id, ok := parseTokenID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}
	var body TransferRequestBody
	if err := c.Bind(&body); err != nil {
		c.Logger().Errorf("Failed to load transfer request body: %v", err)
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}
	if err := c.Validate(&body); err != nil {
		c.Logger().Errorf("Invalid transfer request body error: %v", err)
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}
	from := body.From
	if from == "" {
		from = caller
	}

	token, err := controller.svc.Transfer(c.Request().Context(), caller, id, from, body.To)
	if err != nil {
		return respondWithError(c, err)
	}
	return c.JSON(http.StatusOK, newToken(token))
}

// Approve godoc
// @Summary      Approve an agent
// @Description  Lets another address transfer the token on behalf of its owner. An empty address clears the approval
// @Accept       json
// @Produce      json
// @Tags         Token
// @Param        id                  path      int                 true  "Token id"
// @Param        ApproveRequestBody  body      ApproveRequestBody  true  "Approval"
// @Success      200                 {object}  Token
// @Failure      400                 {object}  responses.ErrorResponse
// @Failure      403                 {object}  responses.ErrorResponse
// @Failure      404                 {object}  responses.ErrorResponse
// @Router       /v2/tokens/{id}/approve [post]
// @Security     OAuth2Password
func (controller *TokenController) Approve(c echo.Context) error {
	caller := c.Get("Address").(string)
	id, ok := parseTokenID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}
	var body ApproveRequestBody
	if err := c.Bind(&body); err != nil {
		c.Logger().Errorf("Failed to load approve request body: %v", err)
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}

	token, err := controller.svc.Approve(c.Request().Context(), caller, id, body.Approved)
	if err != nil {
		return respondWithError(c, err)
	}
	return c.JSON(http.StatusOK, newToken(token))
}

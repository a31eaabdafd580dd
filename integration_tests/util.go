package integration_tests

import (
	"bytes"
	"context"
	"crypto/ecdsa"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/getAlby/royaltyhub.go/lib/responses"
	"github.com/getAlby/royaltyhub.go/lib/royalty"
	"github.com/getAlby/royaltyhub.go/lib/security"
	"github.com/getAlby/royaltyhub.go/lib/service"
	"github.com/getAlby/royaltyhub.go/lib/tokens"
	"github.com/getAlby/royaltyhub.go/lib/transport"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/ziflex/lecho/v3"
)

const (
	testAdminToken = "admin-secret"
	// artist addresses never log in, so they need no key
	testArtistAddress = "0xA11CE00000000000000000000000000000000001"
)

func RoyaltyHubTestServiceInit(payer royalty.Payer) *service.RoyaltyHubService {
	c := &service.Config{
		DatabaseUri:              service.MemoryDatabasePrefix,
		JWTSecret:                []byte("SECRET"),
		JWTAccessTokenExpiry:     3600,
		LoginMessageMaxAge:       300,
		AdminToken:               testAdminToken,
		DefaultRateLimit:         1000,
		StrictRateLimit:          1000,
		BurstRateLimit:           1000,
		PendingWithdrawalTimeout: 600,
		Currency:                 "CORE",
		Unit:                     "wei",
	}
	logger := lecho.New(io.Discard, lecho.WithLevel(log.DEBUG))
	return service.NewRoyaltyHubService(c, royalty.NewMemoryStore(), payer, logger)
}

// newTestEcho wires the API the same way the server does.
func newTestEcho(svc *service.RoyaltyHubService) *echo.Echo {
	c := svc.Config
	e := transport.InitEcho(c, svc.Logger)
	logMw := transport.CreateLoggingMiddleware(svc.Logger)
	strictRateLimitMiddleware := transport.CreateRateLimitMiddleware(c.StrictRateLimit, c.BurstRateLimit)
	secured := e.Group("", tokens.Middleware(c.JWTSecret), logMw)
	securedWithStrictRateLimit := e.Group("", tokens.Middleware(c.JWTSecret), strictRateLimitMiddleware, logMw)
	transport.RegisterV2Endpoints(svc, e, secured, securedWithStrictRateLimit, strictRateLimitMiddleware,
		tokens.AdminTokenMiddleware(c.AdminToken), transport.CreateCacheClient().Middleware(), logMw)
	return e
}

type testAccount struct {
	key     *ecdsa.PrivateKey
	Address string
}

func newTestAccount() (*testAccount, error) {
	key, err := crypto.GenerateKey()
	if err != nil {
		return nil, err
	}
	return &testAccount{key: key, Address: crypto.PubkeyToAddress(key.PublicKey).Hex()}, nil
}

// sign produces a personal_sign signature with v in 27/28 the way wallets return it.
func (a *testAccount) sign(message string) (string, error) {
	sig, err := crypto.Sign(accounts.TextHash([]byte(message)), a.key)
	if err != nil {
		return "", err
	}
	sig[crypto.RecoveryIDOffset] += 27
	return hexutil.Encode(sig), nil
}

// recordingPayer records payouts and fails them while failing is set.
type recordingPayer struct {
	mu      sync.Mutex
	payouts []royalty.Payout
	failing bool
}

func (p *recordingPayer) Pay(ctx context.Context, payout royalty.Payout) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.failing {
		return fmt.Errorf("wallet service unavailable")
	}
	p.payouts = append(p.payouts, payout)
	return nil
}

func (p *recordingPayer) Payouts() []royalty.Payout {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]royalty.Payout{}, p.payouts...)
}

type TestSuite struct {
	suite.Suite
	echo *echo.Echo
}

func (suite *TestSuite) doRequest(method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		require.NoError(suite.T(), json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	suite.echo.ServeHTTP(rec, req)
	return rec
}

func (suite *TestSuite) decode(rec *httptest.ResponseRecorder, expectedStatus int, target interface{}) {
	require.Equal(suite.T(), expectedStatus, rec.Code, rec.Body.String())
	require.NoError(suite.T(), json.NewDecoder(rec.Body).Decode(target))
}

func (suite *TestSuite) checkErrResponse(rec *httptest.ResponseRecorder, expected responses.ErrorResponse) {
	errorResponse := &responses.ErrorResponse{}
	suite.decode(rec, expected.HttpStatusCode, errorResponse)
	assert.True(suite.T(), errorResponse.Error)
	assert.Equal(suite.T(), expected.Code, errorResponse.Code)
	assert.Equal(suite.T(), expected.Message, errorResponse.Message)
}

func (suite *TestSuite) login(account *testAccount) string {
	message := security.LoginMessage(time.Now())
	signature, err := account.sign(message)
	require.NoError(suite.T(), err)
	rec := suite.doRequest(http.MethodPost, "/v2/auth", &ExpectedAuthRequestBody{
		Address:   account.Address,
		Message:   message,
		Signature: signature,
	}, "")
	response := &ExpectedAuthResponseBody{}
	suite.decode(rec, http.StatusOK, response)
	return response.AccessToken
}

func (suite *TestSuite) mint(to string, royaltyBps int64) *ExpectedTokenResponseBody {
	rec := suite.doRequest(http.MethodPost, "/v2/tokens", &ExpectedMintRequestBody{
		To:            to,
		Title:         "Harbour Lights",
		ArtistName:    "Odd Season",
		RoyaltyBps:    royaltyBps,
		MetadataURI:   "ipfs://harbour-lights",
		ArtistAddress: testArtistAddress,
	}, testAdminToken)
	token := &ExpectedTokenResponseBody{}
	suite.decode(rec, http.StatusOK, token)
	return token
}

func (suite *TestSuite) distribute(tokenID, amount int64, reference string) *httptest.ResponseRecorder {
	return suite.doRequest(http.MethodPost, "/v2/distributions", &ExpectedDistributeRequestBody{
		TokenID:   tokenID,
		Amount:    amount,
		Reference: reference,
	}, testAdminToken)
}

func (suite *TestSuite) balanceOf(address string) int64 {
	rec := suite.doRequest(http.MethodGet, "/v2/accounts/"+address+"/balance", nil, "")
	balance := &ExpectedBalanceResponse{}
	suite.decode(rec, http.StatusOK, balance)
	return balance.Balance
}

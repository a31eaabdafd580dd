package integration_tests

import (
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/getAlby/royaltyhub.go/lib/responses"
	"github.com/getAlby/royaltyhub.go/lib/security"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type AuthTestSuite struct {
	TestSuite
	account *testAccount
	other   *testAccount
}

func (suite *AuthTestSuite) SetupSuite() {
	var err error
	suite.account, err = newTestAccount()
	require.NoError(suite.T(), err)
	suite.other, err = newTestAccount()
	require.NoError(suite.T(), err)
	suite.echo = newTestEcho(RoyaltyHubTestServiceInit(nil))
}

func (suite *AuthTestSuite) TestLoginMessage() {
	rec := suite.doRequest(http.MethodGet, "/v2/auth/message", nil, "")
	response := &ExpectedLoginMessageResponseBody{}
	suite.decode(rec, http.StatusOK, response)
	assert.True(suite.T(), strings.HasPrefix(response.Message, security.LoginMessagePrefix))
}

func (suite *AuthTestSuite) TestAuth() {
	token := suite.login(suite.account)
	assert.NotEmpty(suite.T(), token)

	rec := suite.doRequest(http.MethodGet, "/v2/balance", nil, token)
	balance := &ExpectedBalanceResponse{}
	suite.decode(rec, http.StatusOK, balance)
	assert.Equal(suite.T(), suite.account.Address, balance.Address)
	assert.Equal(suite.T(), int64(0), balance.Balance)
	assert.Equal(suite.T(), "CORE", balance.Currency)
	assert.Equal(suite.T(), "wei", balance.Unit)
}

func (suite *AuthTestSuite) TestAuthWithSignatureOfOtherKey() {
	message := security.LoginMessage(time.Now())
	signature, err := suite.other.sign(message)
	require.NoError(suite.T(), err)
	rec := suite.doRequest(http.MethodPost, "/v2/auth", &ExpectedAuthRequestBody{
		Address:   suite.account.Address,
		Message:   message,
		Signature: signature,
	}, "")
	suite.checkErrResponse(rec, responses.BadAuthError)
}

func (suite *AuthTestSuite) TestAuthWithExpiredMessage() {
	message := security.LoginMessage(time.Now().Add(-time.Hour))
	signature, err := suite.account.sign(message)
	require.NoError(suite.T(), err)
	rec := suite.doRequest(http.MethodPost, "/v2/auth", &ExpectedAuthRequestBody{
		Address:   suite.account.Address,
		Message:   message,
		Signature: signature,
	}, "")
	suite.checkErrResponse(rec, responses.BadAuthError)
}

func (suite *AuthTestSuite) TestAuthWithMalformedMessage() {
	signature, err := suite.account.sign("hello")
	require.NoError(suite.T(), err)
	rec := suite.doRequest(http.MethodPost, "/v2/auth", &ExpectedAuthRequestBody{
		Address:   suite.account.Address,
		Message:   "hello",
		Signature: signature,
	}, "")
	suite.checkErrResponse(rec, responses.BadArgumentsError)
}

func (suite *AuthTestSuite) TestAuthWithInvalidAddress() {
	rec := suite.doRequest(http.MethodPost, "/v2/auth", &ExpectedAuthRequestBody{
		Address:   "alice",
		Message:   security.LoginMessage(time.Now()),
		Signature: "0x00",
	}, "")
	suite.checkErrResponse(rec, responses.BadArgumentsError)
}

func (suite *AuthTestSuite) TestSecuredEndpointsRequireToken() {
	rec := suite.doRequest(http.MethodGet, "/v2/balance", nil, "")
	assert.Equal(suite.T(), http.StatusUnauthorized, rec.Code)

	rec = suite.doRequest(http.MethodPost, "/v2/withdrawals", nil, "not-a-jwt")
	assert.Equal(suite.T(), http.StatusUnauthorized, rec.Code)
}

func TestAuthTestSuite(t *testing.T) {
	suite.Run(t, new(AuthTestSuite))
}

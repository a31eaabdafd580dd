package integration_tests

import (
	"fmt"
	"net/http"
	"testing"

	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/getAlby/royaltyhub.go/lib/responses"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type DistributionTestSuite struct {
	TestSuite
	alice      *testAccount
	bob        *testAccount
	aliceToken string
	artist     string
}

func (suite *DistributionTestSuite) SetupSuite() {
	var err error
	suite.alice, err = newTestAccount()
	require.NoError(suite.T(), err)
	suite.bob, err = newTestAccount()
	require.NoError(suite.T(), err)
	suite.artist = ethcommon.HexToAddress(testArtistAddress).Hex()
}

func (suite *DistributionTestSuite) SetupTest() {
	suite.echo = newTestEcho(RoyaltyHubTestServiceInit(nil))
	suite.aliceToken = suite.login(suite.alice)
}

func (suite *DistributionTestSuite) TestDistributeSplitsPayment() {
	token := suite.mint(suite.alice.Address, 1000)

	distribution := &ExpectedDistributionResponseBody{}
	suite.decode(suite.distribute(token.ID, 100, ""), http.StatusOK, distribution)
	assert.Equal(suite.T(), int64(10), distribution.ArtistShare)
	assert.Equal(suite.T(), int64(90), distribution.OwnerShare)
	assert.Equal(suite.T(), suite.alice.Address, distribution.Owner)
	assert.Equal(suite.T(), int64(10), suite.balanceOf(suite.artist))
	assert.Equal(suite.T(), int64(90), suite.balanceOf(suite.alice.Address))
}

func (suite *DistributionTestSuite) TestDistributeRoundsArtistShareDown() {
	token := suite.mint(suite.alice.Address, 3333)

	distribution := &ExpectedDistributionResponseBody{}
	suite.decode(suite.distribute(token.ID, 7, ""), http.StatusOK, distribution)
	assert.Equal(suite.T(), int64(2), distribution.ArtistShare)
	assert.Equal(suite.T(), int64(5), distribution.OwnerShare)
}

func (suite *DistributionTestSuite) TestDistributeCreditsCurrentOwner() {
	token := suite.mint(suite.alice.Address, 1000)
	suite.decode(suite.distribute(token.ID, 100, ""), http.StatusOK, &ExpectedDistributionResponseBody{})

	rec := suite.doRequest(http.MethodPost, fmt.Sprintf("/v2/tokens/%d/transfer", token.ID), &ExpectedTransferRequestBody{
		To: suite.bob.Address,
	}, suite.aliceToken)
	require.Equal(suite.T(), http.StatusOK, rec.Code)

	suite.decode(suite.distribute(token.ID, 100, ""), http.StatusOK, &ExpectedDistributionResponseBody{})
	assert.Equal(suite.T(), int64(90), suite.balanceOf(suite.alice.Address))
	assert.Equal(suite.T(), int64(90), suite.balanceOf(suite.bob.Address))
	assert.Equal(suite.T(), int64(20), suite.balanceOf(suite.artist))
}

func (suite *DistributionTestSuite) TestDistributeErrors() {
	token := suite.mint(suite.alice.Address, 1000)

	suite.checkErrResponse(suite.distribute(token.ID, 0, ""), responses.ZeroAmountError)
	suite.checkErrResponse(suite.distribute(token.ID, -5, ""), responses.ZeroAmountError)
	suite.checkErrResponse(suite.distribute(99, 100, ""), responses.UnknownTokenError)
	// token ids start at 1, a zero id is just another unknown token
	suite.checkErrResponse(suite.distribute(0, 100, ""), responses.UnknownTokenError)

	// nothing was credited
	assert.Equal(suite.T(), int64(0), suite.balanceOf(suite.alice.Address))
	assert.Equal(suite.T(), int64(0), suite.balanceOf(suite.artist))
}

func (suite *DistributionTestSuite) TestDistributeRequiresAdminToken() {
	token := suite.mint(suite.alice.Address, 1000)
	rec := suite.doRequest(http.MethodPost, "/v2/distributions", &ExpectedDistributeRequestBody{
		TokenID: token.ID,
		Amount:  100,
	}, suite.aliceToken)
	suite.checkErrResponse(rec, responses.BadAuthError)
}

func (suite *DistributionTestSuite) TestDuplicateReferenceIsRejected() {
	token := suite.mint(suite.alice.Address, 1000)

	suite.decode(suite.distribute(token.ID, 100, "stream-payout-2024-03"), http.StatusOK, &ExpectedDistributionResponseBody{})
	suite.checkErrResponse(suite.distribute(token.ID, 100, "stream-payout-2024-03"), responses.DuplicatePaymentError)
	assert.Equal(suite.T(), int64(90), suite.balanceOf(suite.alice.Address))
}

func (suite *DistributionTestSuite) TestBalanceOfUnknownAddressIsZero() {
	assert.Equal(suite.T(), int64(0), suite.balanceOf(suite.bob.Address))
	suite.checkErrResponse(suite.doRequest(http.MethodGet, "/v2/accounts/bob/balance", nil, ""), responses.InvalidRecipientError)
}

func TestDistributionTestSuite(t *testing.T) {
	suite.Run(t, new(DistributionTestSuite))
}

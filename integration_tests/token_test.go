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

type TokenTestSuite struct {
	TestSuite
	alice      *testAccount
	bob        *testAccount
	aliceToken string
	bobToken   string
}

func (suite *TokenTestSuite) SetupSuite() {
	var err error
	suite.alice, err = newTestAccount()
	require.NoError(suite.T(), err)
	suite.bob, err = newTestAccount()
	require.NoError(suite.T(), err)
}

// every test starts from an empty collection
func (suite *TokenTestSuite) SetupTest() {
	suite.echo = newTestEcho(RoyaltyHubTestServiceInit(nil))
	suite.aliceToken = suite.login(suite.alice)
	suite.bobToken = suite.login(suite.bob)
}

func (suite *TokenTestSuite) TestMintAllocatesSequentialIds() {
	first := suite.mint(suite.alice.Address, 1000)
	second := suite.mint(suite.bob.Address, 0)
	third := suite.mint(suite.alice.Address, 10000)
	assert.Equal(suite.T(), int64(1), first.ID)
	assert.Equal(suite.T(), int64(2), second.ID)
	assert.Equal(suite.T(), int64(3), third.ID)

	rec := suite.doRequest(http.MethodGet, "/v2/collection", nil, "")
	collection := &ExpectedCollectionResponseBody{}
	suite.decode(rec, http.StatusOK, collection)
	assert.Equal(suite.T(), "MusicRoyaltyNFTs", collection.Name)
	assert.Equal(suite.T(), "MRNFT", collection.Symbol)
	assert.Equal(suite.T(), int64(3), collection.CurrentTokenID)
}

func (suite *TokenTestSuite) TestMintRequiresAdminToken() {
	rec := suite.doRequest(http.MethodPost, "/v2/tokens", &ExpectedMintRequestBody{
		To:            suite.alice.Address,
		Title:         "Harbour Lights",
		ArtistName:    "Odd Season",
		ArtistAddress: testArtistAddress,
	}, suite.aliceToken)
	suite.checkErrResponse(rec, responses.BadAuthError)
}

func (suite *TokenTestSuite) TestMintRejectsInvalidTerms() {
	rec := suite.doRequest(http.MethodPost, "/v2/tokens", &ExpectedMintRequestBody{
		To:            suite.alice.Address,
		Title:         "Harbour Lights",
		ArtistName:    "Odd Season",
		RoyaltyBps:    10001,
		ArtistAddress: testArtistAddress,
	}, testAdminToken)
	suite.checkErrResponse(rec, responses.InvalidRoyaltyError)

	rec = suite.doRequest(http.MethodPost, "/v2/tokens", &ExpectedMintRequestBody{
		To:            "0x0000000000000000000000000000000000000000",
		Title:         "Harbour Lights",
		ArtistName:    "Odd Season",
		RoyaltyBps:    1000,
		ArtistAddress: testArtistAddress,
	}, testAdminToken)
	suite.checkErrResponse(rec, responses.InvalidRecipientError)

	rec = suite.doRequest(http.MethodPost, "/v2/tokens", &ExpectedMintRequestBody{
		To:            suite.alice.Address,
		Title:         "Harbour Lights",
		ArtistName:    "Odd Season",
		RoyaltyBps:    1000,
		ArtistAddress: "odd season",
	}, testAdminToken)
	suite.checkErrResponse(rec, responses.InvalidArtistError)

	// failed mints do not consume ids
	assert.Equal(suite.T(), int64(1), suite.mint(suite.alice.Address, 1000).ID)
}

func (suite *TokenTestSuite) TestTokenLookups() {
	minted := suite.mint(suite.alice.Address, 2500)
	path := fmt.Sprintf("/v2/tokens/%d", minted.ID)

	token := &ExpectedTokenResponseBody{}
	suite.decode(suite.doRequest(http.MethodGet, path, nil, ""), http.StatusOK, token)
	assert.Equal(suite.T(), "Harbour Lights", token.Title)
	assert.Equal(suite.T(), "Odd Season", token.ArtistName)
	assert.Equal(suite.T(), "ipfs://harbour-lights", token.MetadataURI)

	owner := &ExpectedOwnerResponseBody{}
	suite.decode(suite.doRequest(http.MethodGet, path+"/owner", nil, ""), http.StatusOK, owner)
	assert.Equal(suite.T(), suite.alice.Address, owner.Owner)

	terms := &ExpectedRoyaltyResponseBody{}
	suite.decode(suite.doRequest(http.MethodGet, path+"/royalty", nil, ""), http.StatusOK, terms)
	assert.Equal(suite.T(), int64(2500), terms.RoyaltyBps)
	assert.Equal(suite.T(), ethcommon.HexToAddress(testArtistAddress).Hex(), terms.ArtistAddress)

	owned := []ExpectedTokenResponseBody{}
	suite.decode(suite.doRequest(http.MethodGet, "/v2/accounts/"+suite.alice.Address+"/tokens", nil, ""), http.StatusOK, &owned)
	require.Len(suite.T(), owned, 1)
	assert.Equal(suite.T(), minted.ID, owned[0].ID)
}

func (suite *TokenTestSuite) TestUnknownToken() {
	suite.checkErrResponse(suite.doRequest(http.MethodGet, "/v2/tokens/42", nil, ""), responses.UnknownTokenError)
	suite.checkErrResponse(suite.doRequest(http.MethodGet, "/v2/tokens/42/owner", nil, ""), responses.UnknownTokenError)
	suite.checkErrResponse(suite.doRequest(http.MethodGet, "/v2/tokens/abc", nil, ""), responses.BadArgumentsError)
}

func (suite *TokenTestSuite) TestTransfer() {
	minted := suite.mint(suite.alice.Address, 1000)
	path := fmt.Sprintf("/v2/tokens/%d/transfer", minted.ID)

	token := &ExpectedTokenResponseBody{}
	rec := suite.doRequest(http.MethodPost, path, &ExpectedTransferRequestBody{To: suite.bob.Address}, suite.aliceToken)
	suite.decode(rec, http.StatusOK, token)
	assert.Equal(suite.T(), suite.bob.Address, token.Owner)

	// alice no longer owns it
	rec = suite.doRequest(http.MethodPost, path, &ExpectedTransferRequestBody{To: suite.alice.Address}, suite.aliceToken)
	suite.checkErrResponse(rec, responses.NotOwnerError)
}

func (suite *TokenTestSuite) TestTransferByNonOwnerLeavesOwnerUnchanged() {
	minted := suite.mint(suite.alice.Address, 1000)
	path := fmt.Sprintf("/v2/tokens/%d", minted.ID)

	rec := suite.doRequest(http.MethodPost, path+"/transfer", &ExpectedTransferRequestBody{
		From: suite.alice.Address,
		To:   suite.bob.Address,
	}, suite.bobToken)
	suite.checkErrResponse(rec, responses.NotApprovedError)

	owner := &ExpectedOwnerResponseBody{}
	suite.decode(suite.doRequest(http.MethodGet, path+"/owner", nil, ""), http.StatusOK, owner)
	assert.Equal(suite.T(), suite.alice.Address, owner.Owner)
}

func (suite *TokenTestSuite) TestTransferToInvalidRecipient() {
	minted := suite.mint(suite.alice.Address, 1000)
	rec := suite.doRequest(http.MethodPost, fmt.Sprintf("/v2/tokens/%d/transfer", minted.ID), &ExpectedTransferRequestBody{
		To: "0x0000000000000000000000000000000000000000",
	}, suite.aliceToken)
	suite.checkErrResponse(rec, responses.InvalidRecipientError)
}

func (suite *TokenTestSuite) TestApprovedAgentTransfers() {
	minted := suite.mint(suite.alice.Address, 1000)
	path := fmt.Sprintf("/v2/tokens/%d", minted.ID)

	token := &ExpectedTokenResponseBody{}
	rec := suite.doRequest(http.MethodPost, path+"/approve", &ExpectedApproveRequestBody{Approved: suite.bob.Address}, suite.aliceToken)
	suite.decode(rec, http.StatusOK, token)
	assert.Equal(suite.T(), suite.bob.Address, token.Approved)

	rec = suite.doRequest(http.MethodPost, path+"/transfer", &ExpectedTransferRequestBody{
		From: suite.alice.Address,
		To:   suite.bob.Address,
	}, suite.bobToken)
	token = &ExpectedTokenResponseBody{}
	suite.decode(rec, http.StatusOK, token)
	assert.Equal(suite.T(), suite.bob.Address, token.Owner)
	assert.Empty(suite.T(), token.Approved)
}

func (suite *TokenTestSuite) TestApproveByNonOwner() {
	minted := suite.mint(suite.alice.Address, 1000)
	rec := suite.doRequest(http.MethodPost, fmt.Sprintf("/v2/tokens/%d/approve", minted.ID), &ExpectedApproveRequestBody{
		Approved: suite.bob.Address,
	}, suite.bobToken)
	suite.checkErrResponse(rec, responses.NotOwnerError)
}

func TestTokenTestSuite(t *testing.T) {
	suite.Run(t, new(TokenTestSuite))
}

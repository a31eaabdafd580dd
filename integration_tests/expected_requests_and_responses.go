package integration_tests

type ExpectedAuthRequestBody struct {
	Address   string `json:"address"`
	Message   string `json:"message"`
	Signature string `json:"signature"`
}

type ExpectedAuthResponseBody struct {
	Address     string `json:"address"`
	AccessToken string `json:"access_token"`
}

type ExpectedLoginMessageResponseBody struct {
	Message string `json:"message"`
}

type ExpectedMintRequestBody struct {
	To            string `json:"to"`
	Title         string `json:"title"`
	ArtistName    string `json:"artist_name"`
	RoyaltyBps    int64  `json:"royalty_bps"`
	MetadataURI   string `json:"metadata_uri"`
	ArtistAddress string `json:"artist_address"`
}

type ExpectedTokenResponseBody struct {
	ID            int64  `json:"id"`
	Title         string `json:"title"`
	ArtistName    string `json:"artist_name"`
	RoyaltyBps    int64  `json:"royalty_bps"`
	MetadataURI   string `json:"metadata_uri"`
	ArtistAddress string `json:"artist_address"`
	Owner         string `json:"owner"`
	Approved      string `json:"approved"`
}

type ExpectedCollectionResponseBody struct {
	Name           string `json:"name"`
	Symbol         string `json:"symbol"`
	CurrentTokenID int64  `json:"current_token_id"`
}

type ExpectedOwnerResponseBody struct {
	TokenID int64  `json:"token_id"`
	Owner   string `json:"owner"`
}

type ExpectedRoyaltyResponseBody struct {
	TokenID       int64  `json:"token_id"`
	RoyaltyBps    int64  `json:"royalty_bps"`
	ArtistAddress string `json:"artist_address"`
}

type ExpectedTransferRequestBody struct {
	From string `json:"from,omitempty"`
	To   string `json:"to"`
}

type ExpectedApproveRequestBody struct {
	Approved string `json:"approved"`
}

type ExpectedDistributeRequestBody struct {
	TokenID   int64  `json:"token_id"`
	Amount    int64  `json:"amount"`
	Reference string `json:"reference,omitempty"`
}

type ExpectedDistributionResponseBody struct {
	ID            int64  `json:"id"`
	TokenID       int64  `json:"token_id"`
	Amount        int64  `json:"amount"`
	ArtistAddress string `json:"artist_address"`
	ArtistShare   int64  `json:"artist_share"`
	Owner         string `json:"owner"`
	OwnerShare    int64  `json:"owner_share"`
}

type ExpectedBalanceResponse struct {
	Address  string `json:"address"`
	Balance  int64  `json:"balance"`
	Currency string `json:"currency"`
	Unit     string `json:"unit"`
}

type ExpectedWithdrawalResponseBody struct {
	ID        int64  `json:"id"`
	Reference string `json:"reference"`
	Address   string `json:"address"`
	Amount    int64  `json:"amount"`
	State     string `json:"state"`
}

type ExpectedTransactionEntry struct {
	ID           int64  `json:"id"`
	Type         string `json:"type"`
	Amount       int64  `json:"amount"`
	TokenID      int64  `json:"token_id"`
	WithdrawalID int64  `json:"withdrawal_id"`
}

package royalty

import (
	"context"
	"time"

	"github.com/getAlby/royaltyhub.go/common"
	"github.com/getAlby/royaltyhub.go/db/models"
)

// Registry owns the tokens: it allocates ids, records royalty terms and keeps track of owners.
type Registry struct {
	store Store
}

func NewRegistry(store Store) *Registry {
	return &Registry{store: store}
}

type MintParams struct {
	To            string
	Title         string
	ArtistName    string
	RoyaltyBps    int64
	MetadataURI   string
	ArtistAddress string
}

type RoyaltyTerms struct {
	RoyaltyBps    int64  `json:"royalty_bps"`
	ArtistAddress string `json:"artist_address"`
}

// Mint creates a new token owned by params.To and returns it with its freshly allocated id.
func (r *Registry) Mint(ctx context.Context, params MintParams) (*models.Token, error) {
	if !validRoyalty(params.RoyaltyBps) {
		return nil, ErrInvalidRoyalty
	}
	owner, err := NormalizeIdentity(params.To)
	if err != nil {
		return nil, err
	}
	artist, err := NormalizeIdentity(params.ArtistAddress)
	if err != nil {
		return nil, ErrInvalidArtist
	}

	token := &models.Token{
		Title:         params.Title,
		ArtistName:    params.ArtistName,
		RoyaltyBps:    params.RoyaltyBps,
		MetadataURI:   params.MetadataURI,
		ArtistAddress: artist,
		Owner:         owner,
		CreatedAt:     time.Now(),
	}
	err = r.store.RunInTx(ctx, func(ctx context.Context, tx Tx) error {
		id, err := tx.NextTokenID(ctx)
		if err != nil {
			return err
		}
		token.ID = id
		return tx.InsertToken(ctx, token)
	})
	if err != nil {
		return nil, err
	}
	return token, nil
}

func (r *Registry) Token(ctx context.Context, id int64) (token *models.Token, err error) {
	err = r.store.RunInTx(ctx, func(ctx context.Context, tx Tx) error {
		token, err = tx.FindToken(ctx, id)
		return err
	})
	return token, err
}

func (r *Registry) OwnerOf(ctx context.Context, id int64) (string, error) {
	token, err := r.Token(ctx, id)
	if err != nil {
		return "", err
	}
	return token.Owner, nil
}

func (r *Registry) RoyaltyTerms(ctx context.Context, id int64) (RoyaltyTerms, error) {
	token, err := r.Token(ctx, id)
	if err != nil {
		return RoyaltyTerms{}, err
	}
	return RoyaltyTerms{
		RoyaltyBps:    token.RoyaltyBps,
		ArtistAddress: token.ArtistAddress,
	}, nil
}

// Transfer moves the token from its current owner to another identity. The caller is from.
func (r *Registry) Transfer(ctx context.Context, id int64, from, to string) (*models.Token, error) {
	return r.TransferFrom(ctx, from, id, from, to)
}

// TransferFrom is Transfer executed by operator, which must be the owner or the approved agent of the token.
func (r *Registry) TransferFrom(ctx context.Context, operator string, id int64, from, to string) (token *models.Token, err error) {
	err = r.store.RunInTx(ctx, func(ctx context.Context, tx Tx) error {
		token, err = tx.LockToken(ctx, id)
		if err != nil {
			return err
		}
		if !sameIdentity(token.Owner, from) {
			return ErrNotOwner
		}
		if !sameIdentity(token.Owner, operator) && !sameIdentity(token.Approved, operator) {
			return ErrNotApproved
		}
		recipient, err := NormalizeIdentity(to)
		if err != nil {
			return err
		}
		token.Owner = recipient
		// approvals do not survive a change of owner
		token.Approved = ""
		return tx.UpdateTokenOwnership(ctx, token)
	})
	if err != nil {
		return nil, err
	}
	return token, nil
}

// Approve lets agent transfer the token on behalf of its owner. An empty agent clears the approval.
func (r *Registry) Approve(ctx context.Context, caller string, id int64, agent string) (token *models.Token, err error) {
	approved := ""
	if agent != "" {
		approved, err = NormalizeIdentity(agent)
		if err != nil {
			return nil, err
		}
	}
	err = r.store.RunInTx(ctx, func(ctx context.Context, tx Tx) error {
		token, err = tx.LockToken(ctx, id)
		if err != nil {
			return err
		}
		if !sameIdentity(token.Owner, caller) {
			return ErrNotOwner
		}
		token.Approved = approved
		return tx.UpdateTokenOwnership(ctx, token)
	})
	if err != nil {
		return nil, err
	}
	return token, nil
}

// CurrentTokenCount returns how many tokens have been minted, which is also the id of the latest token.
func (r *Registry) CurrentTokenCount(ctx context.Context) (int64, error) {
	collection, err := r.Collection(ctx)
	if err != nil {
		return 0, err
	}
	return collection.TokenCount, nil
}

func (r *Registry) Collection(ctx context.Context) (collection *models.Collection, err error) {
	err = r.store.RunInTx(ctx, func(ctx context.Context, tx Tx) error {
		collection, err = tx.Collection(ctx)
		return err
	})
	return collection, err
}

func (r *Registry) TokensOwnedBy(ctx context.Context, owner string, limit int) (tokens []models.Token, err error) {
	owner, err = NormalizeIdentity(owner)
	if err != nil {
		return nil, err
	}
	if limit <= 0 || limit > common.DefaultListLimit {
		limit = common.DefaultListLimit
	}
	err = r.store.RunInTx(ctx, func(ctx context.Context, tx Tx) error {
		tokens, err = tx.TokensOwnedBy(ctx, owner, limit)
		return err
	})
	return tokens, err
}

// lockSplit reads the terms a payment on the token is split by, locking the token until tx ends
// so that no transfer can interleave with the distribution.
func (r *Registry) lockSplit(ctx context.Context, tx Tx, id int64) (*models.Token, error) {
	return tx.LockToken(ctx, id)
}

func sameIdentity(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	normalizedA, err := NormalizeIdentity(a)
	if err != nil {
		return false
	}
	normalizedB, err := NormalizeIdentity(b)
	if err != nil {
		return false
	}
	return normalizedA == normalizedB
}

package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Distribution : a single payment made against a token and how it was split
type Distribution struct {
	bun.BaseModel `bun:"table:distributions,alias:distribution"`

	ID            int64     `json:"id" bun:",pk,autoincrement"`
	TokenID       int64     `json:"token_id" bun:",notnull"`
	Token         *Token    `json:"-" bun:"rel:belongs-to,join:token_id=id"`
	Amount        int64     `json:"amount" bun:",notnull"`
	RoyaltyBps    int64     `json:"royalty_bps" bun:",notnull"`
	ArtistAddress string    `json:"artist_address" bun:",notnull"`
	ArtistShare   int64     `json:"artist_share" bun:",notnull"`
	Owner         string    `json:"owner" bun:",notnull"`
	OwnerShare    int64     `json:"owner_share" bun:",notnull"`
	Reference     string    `json:"reference,omitempty" bun:",nullzero,unique"`
	CreatedAt     time.Time `json:"created_at" bun:",nullzero,notnull,default:current_timestamp"`
}

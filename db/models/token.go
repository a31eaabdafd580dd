package models

import (
	"context"
	"time"

	"github.com/uptrace/bun"
)

// Token : Token Model
// ID, Title, ArtistName, RoyaltyBps, MetadataURI and ArtistAddress never change after mint.
type Token struct {
	bun.BaseModel `bun:"table:tokens,alias:token"`

	ID            int64        `json:"id" bun:",pk"`
	Title         string       `json:"title" bun:",notnull"`
	ArtistName    string       `json:"artist_name" bun:",notnull"`
	RoyaltyBps    int64        `json:"royalty_bps" bun:",notnull"`
	MetadataURI   string       `json:"metadata_uri" bun:"metadata_uri,notnull"`
	ArtistAddress string       `json:"artist_address" bun:",notnull"`
	Owner         string       `json:"owner" bun:",notnull"`
	Approved      string       `json:"approved,omitempty" bun:",nullzero"`
	CreatedAt     time.Time    `json:"created_at" bun:",nullzero,notnull,default:current_timestamp"`
	UpdatedAt     bun.NullTime `json:"updated_at"`
}

func (t *Token) BeforeAppendModel(ctx context.Context, query bun.Query) error {
	switch query.(type) {
	case *bun.UpdateQuery:
		t.UpdatedAt = bun.NullTime{Time: time.Now()}
	}
	return nil
}

var _ bun.BeforeAppendModelHook = (*Token)(nil)

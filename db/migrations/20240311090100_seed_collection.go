package migrations

import (
	"context"

	"github.com/getAlby/royaltyhub.go/common"
	"github.com/getAlby/royaltyhub.go/db/models"
	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		collection := &models.Collection{
			ID:     common.DefaultCollectionID,
			Name:   common.CollectionName,
			Symbol: common.CollectionSymbol,
		}
		_, err := db.NewInsert().Model(collection).On("CONFLICT (id) DO NOTHING").Exec(ctx)
		return err
	}, nil)
}

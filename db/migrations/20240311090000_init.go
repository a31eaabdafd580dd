package migrations

import (
	"context"

	"github.com/getAlby/royaltyhub.go/db/models"
	"github.com/uptrace/bun"
)

/* Since this init will reflect the latest model fields when run on fresh db
make sure that when you add/remove columns in subsequent migrations IfNotExists/IfExists is used
otherwise it's going to result in errors.
*/
func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		tables := []interface{}{
			(*models.Collection)(nil),
			(*models.Token)(nil),
			(*models.Balance)(nil),
			(*models.Distribution)(nil),
			(*models.Withdrawal)(nil),
			(*models.TransactionEntry)(nil),
		}
		for _, model := range tables {
			if _, err := db.NewCreateTable().Model(model).IfNotExists().WithForeignKeys().Exec(ctx); err != nil {
				return err
			}
		}
		return nil
	}, func(ctx context.Context, db *bun.DB) error {
		tables := []interface{}{
			(*models.TransactionEntry)(nil),
			(*models.Withdrawal)(nil),
			(*models.Distribution)(nil),
			(*models.Balance)(nil),
			(*models.Token)(nil),
			(*models.Collection)(nil),
		}
		for _, model := range tables {
			if _, err := db.NewDropTable().Model(model).IfExists().Exec(ctx); err != nil {
				return err
			}
		}
		return nil
	})
}

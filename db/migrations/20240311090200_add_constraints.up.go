package migrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {

		if db.Dialect().Name().String() != "pg" {
			fmt.Printf("\033[1;31m%s\033[0m", "You are not using PostgreSQL. DB level checks can not be enabled!\n")
			return nil
		}
		sql := `
			-- royalty is expressed in basis points of a payment
				alter table tokens
				ADD CONSTRAINT check_royalty_bps
				CHECK (royalty_bps >= 0 AND royalty_bps <= 10000);

			-- a token can not be owned by or approved for nobody
				alter table tokens
				ADD CONSTRAINT check_owner_not_empty
				CHECK (owner <> '');

			-- balances never go negative, a withdrawal takes at most what is there
				alter table balances
				ADD CONSTRAINT check_balance_not_negative
				CHECK (amount >= 0);

			-- both shares together are the paid amount
				alter table distributions
				ADD CONSTRAINT check_shares_add_up
				CHECK (amount > 0 AND artist_share >= 0 AND owner_share >= 0 AND artist_share + owner_share = amount);

				alter table withdrawals
				ADD CONSTRAINT check_withdrawal_state
				CHECK (state IN ('pending', 'settled', 'failed'));
		`
		if _, err := db.Exec(sql); err != nil {
			return err
		}
		return nil
	}, nil)
}

package royalty

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"sync"
	"time"

	"github.com/getAlby/royaltyhub.go/common"
	"github.com/getAlby/royaltyhub.go/db/models"
)

var errInsufficientBalance = errors.New("insufficient balance")

// MemoryStore keeps all state in process memory. Transactions are serialized by a single
// mutex and rolled back through an undo log. Lookups by owner, identity and state go
// through indexes so their cost depends on the result, not on the size of the store.
type MemoryStore struct {
	mu sync.Mutex

	collection    models.Collection
	tokens        map[int64]models.Token
	balances      map[string]int64
	references    map[string]int64
	distributions map[int64]models.Distribution
	entries       []models.TransactionEntry
	withdrawals   map[int64]models.Withdrawal

	// owner -> token ids
	tokensByOwner map[string]map[int64]struct{}
	// identity -> positions in entries, oldest first
	entriesByIdentity map[string][]int
	// ids of pending withdrawals
	pendingWithdrawals map[int64]struct{}

	lastDistributionID int64
	lastEntryID        int64
	lastWithdrawalID   int64
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		collection: models.Collection{
			ID:        common.DefaultCollectionID,
			Name:      common.CollectionName,
			Symbol:    common.CollectionSymbol,
			CreatedAt: time.Now(),
		},
		tokens:        map[int64]models.Token{},
		balances:      map[string]int64{},
		references:    map[string]int64{},
		distributions: map[int64]models.Distribution{},
		withdrawals:   map[int64]models.Withdrawal{},

		tokensByOwner:      map[string]map[int64]struct{}{},
		entriesByIdentity:  map[string][]int{},
		pendingWithdrawals: map[int64]struct{}{},
	}
}

func (s *MemoryStore) indexOwner(owner string, id int64) {
	if s.tokensByOwner[owner] == nil {
		s.tokensByOwner[owner] = map[int64]struct{}{}
	}
	s.tokensByOwner[owner][id] = struct{}{}
}

func (s *MemoryStore) unindexOwner(owner string, id int64) {
	delete(s.tokensByOwner[owner], id)
	if len(s.tokensByOwner[owner]) == 0 {
		delete(s.tokensByOwner, owner)
	}
}

func (s *MemoryStore) indexWithdrawalState(withdrawal models.Withdrawal) {
	if withdrawal.State == common.WithdrawalStatePending {
		s.pendingWithdrawals[withdrawal.ID] = struct{}{}
	} else {
		delete(s.pendingWithdrawals, withdrawal.ID)
	}
}

func (s *MemoryStore) RunInTx(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx := &memoryTx{store: s}
	err := fn(ctx, tx)
	if err != nil {
		tx.rollback()
		return err
	}
	return nil
}

type memoryTx struct {
	store *MemoryStore
	undo  []func()
}

func (tx *memoryTx) onRollback(f func()) {
	tx.undo = append(tx.undo, f)
}

func (tx *memoryTx) rollback() {
	for i := len(tx.undo) - 1; i >= 0; i-- {
		tx.undo[i]()
	}
	tx.undo = nil
}

func (tx *memoryTx) Collection(ctx context.Context) (*models.Collection, error) {
	collection := tx.store.collection
	return &collection, nil
}

func (tx *memoryTx) NextTokenID(ctx context.Context) (int64, error) {
	s := tx.store
	s.collection.TokenCount++
	tx.onRollback(func() { s.collection.TokenCount-- })
	return s.collection.TokenCount, nil
}

func (tx *memoryTx) InsertToken(ctx context.Context, token *models.Token) error {
	s := tx.store
	if _, ok := s.tokens[token.ID]; ok {
		return fmt.Errorf("token %d already exists", token.ID)
	}
	if token.CreatedAt.IsZero() {
		token.CreatedAt = time.Now()
	}
	s.tokens[token.ID] = *token
	s.indexOwner(token.Owner, token.ID)
	id, owner := token.ID, token.Owner
	tx.onRollback(func() {
		delete(s.tokens, id)
		s.unindexOwner(owner, id)
	})
	return nil
}

func (tx *memoryTx) FindToken(ctx context.Context, id int64) (*models.Token, error) {
	token, ok := tx.store.tokens[id]
	if !ok {
		return nil, ErrUnknownToken
	}
	return &token, nil
}

func (tx *memoryTx) LockToken(ctx context.Context, id int64) (*models.Token, error) {
	// the store mutex is already held for the whole transaction
	return tx.FindToken(ctx, id)
}

func (tx *memoryTx) UpdateTokenOwnership(ctx context.Context, token *models.Token) error {
	s := tx.store
	previous, ok := s.tokens[token.ID]
	if !ok {
		return ErrUnknownToken
	}
	updated := previous
	updated.Owner = token.Owner
	updated.Approved = token.Approved
	updated.UpdatedAt.Time = time.Now()
	s.tokens[token.ID] = updated
	s.unindexOwner(previous.Owner, previous.ID)
	s.indexOwner(updated.Owner, updated.ID)
	tx.onRollback(func() {
		s.tokens[previous.ID] = previous
		s.unindexOwner(updated.Owner, updated.ID)
		s.indexOwner(previous.Owner, previous.ID)
	})
	return nil
}

func (tx *memoryTx) TokensOwnedBy(ctx context.Context, owner string, limit int) ([]models.Token, error) {
	ids := make([]int64, 0, len(tx.store.tokensByOwner[owner]))
	for id := range tx.store.tokensByOwner[owner] {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] > ids[j] })
	if limit > 0 && len(ids) > limit {
		ids = ids[:limit]
	}
	tokens := make([]models.Token, len(ids))
	for i, id := range ids {
		tokens[i] = tx.store.tokens[id]
	}
	return tokens, nil
}

func (tx *memoryTx) InsertDistribution(ctx context.Context, distribution *models.Distribution) error {
	s := tx.store
	if distribution.Reference != "" {
		if _, ok := s.references[distribution.Reference]; ok {
			return ErrDuplicatePayment
		}
	}
	s.lastDistributionID++
	distribution.ID = s.lastDistributionID
	if distribution.CreatedAt.IsZero() {
		distribution.CreatedAt = time.Now()
	}
	s.distributions[distribution.ID] = *distribution
	if distribution.Reference != "" {
		s.references[distribution.Reference] = distribution.ID
	}
	id, reference := distribution.ID, distribution.Reference
	tx.onRollback(func() {
		delete(s.distributions, id)
		if reference != "" {
			delete(s.references, reference)
		}
		s.lastDistributionID--
	})
	return nil
}

func (tx *memoryTx) InsertTransactionEntry(ctx context.Context, entry *models.TransactionEntry) error {
	s := tx.store
	s.lastEntryID++
	entry.ID = s.lastEntryID
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}
	s.entries = append(s.entries, *entry)
	identity := entry.Identity
	s.entriesByIdentity[identity] = append(s.entriesByIdentity[identity], len(s.entries)-1)
	tx.onRollback(func() {
		s.entries = s.entries[:len(s.entries)-1]
		positions := s.entriesByIdentity[identity]
		if len(positions) == 1 {
			delete(s.entriesByIdentity, identity)
		} else {
			s.entriesByIdentity[identity] = positions[:len(positions)-1]
		}
		s.lastEntryID--
	})
	return nil
}

func (tx *memoryTx) EntriesFor(ctx context.Context, identity string, limit int) ([]models.TransactionEntry, error) {
	positions := tx.store.entriesByIdentity[identity]
	entries := []models.TransactionEntry{}
	for i := len(positions) - 1; i >= 0; i-- {
		if limit > 0 && len(entries) == limit {
			break
		}
		entries = append(entries, tx.store.entries[positions[i]])
	}
	return entries, nil
}

func (tx *memoryTx) Balance(ctx context.Context, identity string) (int64, error) {
	return tx.store.balances[identity], nil
}

func (tx *memoryTx) LockBalance(ctx context.Context, identity string) (int64, error) {
	return tx.Balance(ctx, identity)
}

func (tx *memoryTx) Credit(ctx context.Context, identity string, amount int64) (int64, error) {
	s := tx.store
	previous, existed := s.balances[identity]
	if amount > 0 && previous > math.MaxInt64-amount {
		return previous, ErrBalanceOverflow
	}
	s.balances[identity] = previous + amount
	tx.onRollback(func() {
		if existed {
			s.balances[identity] = previous
		} else {
			delete(s.balances, identity)
		}
	})
	return s.balances[identity], nil
}

func (tx *memoryTx) Debit(ctx context.Context, identity string, amount int64) (int64, error) {
	s := tx.store
	previous, existed := s.balances[identity]
	if !existed || previous < amount {
		return previous, errInsufficientBalance
	}
	s.balances[identity] = previous - amount
	tx.onRollback(func() { s.balances[identity] = previous })
	return s.balances[identity], nil
}

func (tx *memoryTx) InsertWithdrawal(ctx context.Context, withdrawal *models.Withdrawal) error {
	s := tx.store
	s.lastWithdrawalID++
	withdrawal.ID = s.lastWithdrawalID
	if withdrawal.CreatedAt.IsZero() {
		withdrawal.CreatedAt = time.Now()
	}
	s.withdrawals[withdrawal.ID] = *withdrawal
	s.indexWithdrawalState(*withdrawal)
	id := withdrawal.ID
	tx.onRollback(func() {
		delete(s.withdrawals, id)
		delete(s.pendingWithdrawals, id)
		s.lastWithdrawalID--
	})
	return nil
}

func (tx *memoryTx) UpdateWithdrawal(ctx context.Context, withdrawal *models.Withdrawal) error {
	s := tx.store
	previous, ok := s.withdrawals[withdrawal.ID]
	if !ok {
		return fmt.Errorf("withdrawal %d not found", withdrawal.ID)
	}
	withdrawal.UpdatedAt.Time = time.Now()
	s.withdrawals[withdrawal.ID] = *withdrawal
	s.indexWithdrawalState(*withdrawal)
	tx.onRollback(func() {
		s.withdrawals[previous.ID] = previous
		s.indexWithdrawalState(previous)
	})
	return nil
}

func (tx *memoryTx) PendingWithdrawals(ctx context.Context, createdBefore time.Time, limit int) ([]models.Withdrawal, error) {
	withdrawals := []models.Withdrawal{}
	for id := range tx.store.pendingWithdrawals {
		withdrawal := tx.store.withdrawals[id]
		if withdrawal.CreatedAt.Before(createdBefore) {
			withdrawals = append(withdrawals, withdrawal)
		}
	}
	sort.Slice(withdrawals, func(i, j int) bool { return withdrawals[i].ID < withdrawals[j].ID })
	if limit > 0 && len(withdrawals) > limit {
		withdrawals = withdrawals[:limit]
	}
	return withdrawals, nil
}

var _ Store = (*MemoryStore)(nil)

package services

import (
	"context"
	"errors"

	"github.com/a-sokolov-dev/TrainerDeskBack/internal/models"
	"github.com/a-sokolov-dev/TrainerDeskBack/internal/store"
)

var (
	ErrInvalidInput    = errors.New("invalid input")
	ErrNotFound        = errors.New("not found")
	ErrDuplicateName   = errors.New("client name already taken")
	ErrNegativeBalance = errors.New("credit balance would go negative")
)

// CreditBook is the only place prepaid credit balances are mutated. Both
// the client service (manual adjustments) and the scheduler (consume on
// booking, refund on cancellation) go through it.
type CreditBook struct {
	clients store.ClientStore
}

func NewCreditBook(clients store.ClientStore) *CreditBook {
	return &CreditBook{clients: clients}
}

func (b *CreditBook) Get(ctx context.Context, clientID int64) (*models.Client, error) {
	clients, err := b.clients.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	for i := range clients {
		if clients[i].ID == clientID {
			client := clients[i]
			return &client, nil
		}
	}
	return nil, ErrNotFound
}

func (b *CreditBook) All(ctx context.Context) ([]models.Client, error) {
	return b.clients.GetAll(ctx)
}

// Adjust adds delta to the client's remaining-sessions counter. Only
// module clients carry a counter; the result may never drop below zero.
func (b *CreditBook) Adjust(ctx context.Context, clientID int64, delta int) (*models.Client, error) {
	client, err := b.Get(ctx, clientID)
	if err != nil {
		return nil, err
	}
	if client.Type != models.ClientTypeModule {
		return nil, ErrInvalidInput
	}
	if client.RemainingSessions+delta < 0 {
		return nil, ErrNegativeBalance
	}

	client.RemainingSessions += delta
	if err := b.clients.Update(ctx, client); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return client, nil
}

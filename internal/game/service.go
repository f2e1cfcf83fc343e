package game

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"swordgame/internal/db"

	"github.com/google/uuid"
)

type Service struct {
	store *db.Store
	log   *slog.Logger
}

func NewService(store *db.Store, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{store: store, log: logger}
}

// ListTrades returns the ledger in insertion order.
func (s *Service) ListTrades(ctx context.Context) ([]db.Trade, error) {
	var out []db.Trade
	err := s.store.View(func(doc *db.Document) error {
		out = append([]db.Trade{}, doc.Trades...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// CreateTrade validates, stamps and appends one trade to the ledger.
func (s *Service) CreateTrade(ctx context.Context, in TradeInput) (db.Trade, error) {
	if err := in.validate(); err != nil {
		return db.Trade{}, err
	}
	trade := db.Trade{
		ID:        uuid.NewString(),
		Company:   in.Company,
		Leverage:  in.Leverage,
		Type:      in.Type,
		Quantity:  in.Quantity,
		User:      in.User,
		CreatedAt: time.Now().UnixMilli(),
	}
	err := s.store.Update(func(doc *db.Document) error {
		doc.Trades = append(doc.Trades, trade)
		return nil
	})
	if err != nil {
		return db.Trade{}, err
	}
	s.log.Info("trade created", "id", trade.ID, "company", trade.Company, "user", trade.User)
	return trade, nil
}

// DeleteTrade removes the trade with the given id. The file is only
// rewritten when something was actually removed.
func (s *Service) DeleteTrade(ctx context.Context, id string) error {
	err := s.store.Update(func(doc *db.Document) error {
		kept := doc.Trades[:0]
		for _, t := range doc.Trades {
			if t.ID != id {
				kept = append(kept, t)
			}
		}
		if len(kept) == len(doc.Trades) {
			return ErrTradeNotFound
		}
		doc.Trades = kept
		return nil
	})
	if err != nil {
		return err
	}
	s.log.Info("trade deleted", "id", id)
	return nil
}

// SyncProgress upserts one user's game state. Fields the client did not
// send keep their stored values; totalAssets falls back to the previous
// value and then to maxStage for a brand new user.
func (s *Service) SyncProgress(ctx context.Context, in ProgressInput) error {
	if strings.TrimSpace(in.UserID) == "" {
		return ErrUserIDRequired
	}
	return s.store.Update(func(doc *db.Document) error {
		idx := -1
		for i, u := range doc.Users {
			if u.ID == in.UserID {
				idx = i
				break
			}
		}

		user := db.User{ID: in.UserID}
		if idx >= 0 {
			user = doc.Users[idx]
		}

		if in.CurrentStage != nil {
			user.Stage = *in.CurrentStage
		}
		if in.MaxStage != nil {
			user.MaxStage = *in.MaxStage
		}
		if in.Attempts != nil {
			user.Attempts = *in.Attempts
		}
		if club := strings.TrimSpace(in.ClubName); club != "" {
			user.ClubName = &club
		}
		if in.TotalAssets != nil {
			assets := *in.TotalAssets
			user.TotalAssets = &assets
		} else if user.TotalAssets == nil {
			assets := user.MaxStage
			user.TotalAssets = &assets
		}

		if idx >= 0 {
			doc.Users[idx] = user
		} else {
			doc.Users = append(doc.Users, user)
		}
		return nil
	})
}

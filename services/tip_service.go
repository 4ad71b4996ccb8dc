package services

import (
	"context"
	"time"

	"go.uber.org/zap"

	"ecotrackAPI/internal/identity"
	"ecotrackAPI/internal/storage"
	"ecotrackAPI/internal/tip"
)

// DefaultListLimit caps list responses when the client does not ask for a
// specific limit.
const DefaultListLimit = 20

type TipService struct {
	tips storage.TipStore
	log  *zap.SugaredLogger
}

func NewTipService(tips storage.TipStore, log *zap.SugaredLogger) *TipService {
	return &TipService{tips: tips, log: log}
}

func (s *TipService) ListNewest(ctx context.Context, limit int) ([]tip.Tip, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	return s.tips.ListNewest(ctx, limit)
}

func (s *TipService) Create(ctx context.Context, ident *identity.Identity, req *tip.CreateTipRequest) (*tip.Tip, error) {
	authorName := req.AuthorName
	if authorName == "" {
		authorName = ident.Name
	}

	t := &tip.Tip{
		Title:      req.Title,
		Content:    req.Content,
		AuthorName: authorName,
		Upvotes:    0,
		CreatedBy:  ident.UID,
		CreatedAt:  time.Now().UTC(),
	}

	if _, err := s.tips.Insert(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *TipService) Upvote(ctx context.Context, id string) error {
	modified, err := s.tips.IncrementUpvotes(ctx, id)
	if err != nil {
		return err
	}
	if !modified {
		return storage.ErrNotFound
	}
	return nil
}

package b2b

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// Service defines B2B quote-request business logic.
type Service interface {
	// Submit stores a new public quote request in the pending state.
	Submit(ctx context.Context, req SubmitRequest) (*Request, error)

	// GetRequest retrieves a quote request by id (admin).
	GetRequest(ctx context.Context, id string) (*Request, error)

	// ListRequests returns requests, optionally filtered by status (admin).
	ListRequests(ctx context.Context, status string) ([]*Request, error)

	// UpdateRequest applies an admin status transition and/or notes update.
	// The first transition out of pending stamps reviewed_at.
	UpdateRequest(ctx context.Context, id string, req UpdateRequest) (*Request, error)
}

type service struct {
	repo     Repository
	validate *validator.Validate
}

// NewService creates a new B2B service.
func NewService(repo Repository) Service {
	return &service{repo: repo, validate: validator.New()}
}

func (s *service) Submit(ctx context.Context, req SubmitRequest) (*Request, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("invalid request: %w", err)
	}

	r := &Request{
		ID:          uuid.New(),
		CompanyName: strings.TrimSpace(req.CompanyName),
		ContactName: strings.TrimSpace(req.ContactName),
		Email:       strings.ToLower(strings.TrimSpace(req.Email)),
		Phone:       req.Phone,
		VATNumber:   req.VATNumber,
		Lines:       req.Lines,
		Budget:      req.Budget,
		Message:     req.Message,
		Status:      StatusPending,
	}
	if err := s.repo.Create(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

func (s *service) GetRequest(ctx context.Context, id string) (*Request, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) ListRequests(ctx context.Context, status string) ([]*Request, error) {
	if status != "" && !ValidStatus(RequestStatus(status)) {
		return nil, fmt.Errorf("unknown status %q", status)
	}
	return s.repo.List(ctx, status)
}

func (s *service) UpdateRequest(ctx context.Context, id string, req UpdateRequest) (*Request, error) {
	r, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("request not found: %w", err)
	}

	if req.Status != "" {
		next := RequestStatus(strings.ToLower(req.Status))
		if !ValidStatus(next) {
			return nil, fmt.Errorf("unknown status %q", req.Status)
		}
		if next != r.Status {
			if !CanTransition(r.Status, next) {
				return nil, fmt.Errorf("cannot transition request from %s to %s", r.Status, next)
			}
			if r.Status == StatusPending && r.ReviewedAt == nil {
				now := time.Now()
				r.ReviewedAt = &now
			}
			r.Status = next
		}
	}
	if req.AdminNotes != "" {
		r.AdminNotes = req.AdminNotes
	}

	if err := s.repo.Update(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

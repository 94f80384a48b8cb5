package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-arrower/roster/app"
	"github.com/go-arrower/roster/contexts/people/internal/domain/user"
)

var ErrAverageAgeFailed = errors.New("average age failed")

func NewAverageAgeQueryHandler(repo user.Repository) app.Query[AverageAgeQuery, AverageAgeResponse] {
	return &averageAgeQueryHandler{repo: repo}
}

type averageAgeQueryHandler struct {
	repo user.Repository
}

type (
	AverageAgeQuery    struct{}
	AverageAgeResponse struct {
		// Age is 0 if there are no users.
		Age float64
	}
)

func (h *averageAgeQueryHandler) H(ctx context.Context, _ AverageAgeQuery) (AverageAgeResponse, error) {
	avg, err := h.repo.AverageAge(ctx)
	if err != nil {
		return AverageAgeResponse{}, fmt.Errorf("%w: %w", ErrAverageAgeFailed, err)
	}

	return AverageAgeResponse{Age: avg}, nil
}

package queries

import (
	"context"

	"github.com/fiesc/examsched/internal/scheduling/domain"
	"github.com/google/uuid"
)

// GetAssignmentQuery contains the parameters for fetching one assignment.
type GetAssignmentQuery struct {
	AssignmentID uuid.UUID
}

// GetAssignmentHandler handles the GetAssignmentQuery.
type GetAssignmentHandler struct {
	repo domain.AssignmentRepository
}

// NewGetAssignmentHandler creates a new GetAssignmentHandler.
func NewGetAssignmentHandler(repo domain.AssignmentRepository) *GetAssignmentHandler {
	return &GetAssignmentHandler{repo: repo}
}

// Handle executes the GetAssignmentQuery.
func (h *GetAssignmentHandler) Handle(ctx context.Context, query GetAssignmentQuery) (*AssignmentDTO, error) {
	assignment, err := h.repo.FindByID(ctx, query.AssignmentID)
	if err != nil {
		return nil, err
	}
	if assignment == nil {
		return nil, domain.ErrAssignmentNotFound
	}

	dto := toAssignmentDTO(assignment)
	return &dto, nil
}

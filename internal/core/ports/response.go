package ports

import (
	"context"

	"github.com/bookblog/server/internal/core/domain/response"
)

// ResponseRepository defines the interface for review data operations
type ResponseRepository interface {
	Create(ctx context.Context, r *response.Response) error
	GetByID(ctx context.Context, id int64) (*response.Response, error)
	Update(ctx context.Context, r *response.Response) error
	Delete(ctx context.Context, id int64) error
	ListByUser(ctx context.Context, userID int64) ([]*response.Response, error)
	ListByBook(ctx context.Context, bookID int64) ([]*response.Response, error)
}

// ResponseService defines the interface for review business logic
type ResponseService interface {
	CreateResponse(ctx context.Context, userID, bookID int64, req *response.ResponseRequest) (*response.Response, error)
	ListUserResponses(ctx context.Context, userID int64) ([]*response.Response, error)
	ListBookResponses(ctx context.Context, bookID int64) ([]*response.Response, error)
	UpdateResponse(ctx context.Context, id int64, req *response.ResponseRequest) (*response.Response, error)
	DeleteResponse(ctx context.Context, id int64) error
}

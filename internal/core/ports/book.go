package ports

import (
	"context"

	"github.com/bookblog/server/internal/core/domain/book"
)

// BookRepository defines the interface for book data operations
type BookRepository interface {
	Create(ctx context.Context, b *book.Book) error
	CreateBatch(ctx context.Context, books []*book.Book) error
	GetByID(ctx context.Context, id int64) (*book.Book, error)
	ExistsByTitleAndAuthor(ctx context.Context, title, author string) (bool, error)
	Update(ctx context.Context, b *book.Book) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]*book.Book, error)
	ListByCategory(ctx context.Context, categoryID int64) ([]*book.Book, error)
	AddCategory(ctx context.Context, bookID, categoryID int64) error
	RemoveCategory(ctx context.Context, bookID, categoryID int64) error
}

// BookService defines the interface for book business logic
type BookService interface {
	ListBooks(ctx context.Context) ([]*book.Book, error)
	GetBook(ctx context.Context, id int64) (*book.Book, error)
	CreateBook(ctx context.Context, req *book.BookRequest) (*book.Book, error)
	CreateBooksBulk(ctx context.Context, reqs []book.BookRequest) ([]*book.Book, error)
	UpdateBook(ctx context.Context, id int64, req *book.BookRequest) (*book.Book, error)
	DeleteBook(ctx context.Context, id int64) error
	ListBooksByCategory(ctx context.Context, categoryID int64) ([]*book.Book, error)
	AddCategoryToBook(ctx context.Context, bookID, categoryID int64) error
	RemoveCategoryFromBook(ctx context.Context, bookID, categoryID int64) error
}

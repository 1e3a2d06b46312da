package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/bookblog/server/internal/core/domain/book"
	"github.com/bookblog/server/internal/core/ports"
)

type BookService struct {
	repo         ports.BookRepository
	categoryRepo ports.CategoryRepository
	caches       *Caches
	logger       *logrus.Logger
}

// NewBookService expects repo to be the caching decorator in production; lookups by ID
// and list reads are cached there.
func NewBookService(repo ports.BookRepository, categoryRepo ports.CategoryRepository, caches *Caches, logger *logrus.Logger) *BookService {
	return &BookService{repo: repo, categoryRepo: categoryRepo, caches: caches, logger: logger}
}

func (s *BookService) ListBooks(ctx context.Context) ([]*book.Book, error) {
	return s.repo.List(ctx)
}

func (s *BookService) GetBook(ctx context.Context, id int64) (*book.Book, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *BookService) CreateBook(ctx context.Context, req *book.BookRequest) (*book.Book, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	title, author := strings.TrimSpace(req.Title), strings.TrimSpace(req.Author)

	exists, err := s.repo.ExistsByTitleAndAuthor(ctx, title, author)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, book.ErrAlreadyExists
	}

	b := &book.Book{Title: title, Author: author}
	if err := s.repo.Create(ctx, b); err != nil {
		return nil, err
	}
	if s.logger != nil {
		s.logger.WithFields(logrus.Fields{"book_id": b.ID, "title": b.Title}).Info("book created")
	}
	return b, nil
}

// CreateBooksBulk stores every new book of the batch in one transaction. Any blank field
// rejects the whole batch; books that already exist, or repeat earlier entries of the same
// batch, are skipped.
func (s *BookService) CreateBooksBulk(ctx context.Context, reqs []book.BookRequest) ([]*book.Book, error) {
	if len(reqs) == 0 {
		return nil, book.ErrEmptyBatch
	}
	for i := range reqs {
		if err := reqs[i].Validate(); err != nil {
			return nil, fmt.Errorf("book %d: %w", i, err)
		}
	}

	type titleAuthor struct{ title, author string }
	seen := make(map[titleAuthor]struct{}, len(reqs))
	toCreate := make([]*book.Book, 0, len(reqs))
	for _, req := range reqs {
		k := titleAuthor{strings.TrimSpace(req.Title), strings.TrimSpace(req.Author)}
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}

		exists, err := s.repo.ExistsByTitleAndAuthor(ctx, k.title, k.author)
		if err != nil {
			return nil, err
		}
		if exists {
			if s.logger != nil {
				s.logger.WithFields(logrus.Fields{"title": k.title, "author": k.author}).Debug("bulk create: skipping existing book")
			}
			continue
		}
		toCreate = append(toCreate, &book.Book{Title: k.title, Author: k.author})
	}
	if len(toCreate) == 0 {
		return nil, book.ErrNoValidBooks
	}

	if err := s.repo.CreateBatch(ctx, toCreate); err != nil {
		return nil, err
	}
	if s.logger != nil {
		s.logger.WithFields(logrus.Fields{"requested": len(reqs), "created": len(toCreate)}).Info("books created in bulk")
	}
	return toCreate, nil
}

func (s *BookService) UpdateBook(ctx context.Context, id int64, req *book.BookRequest) (*book.Book, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// existing may be the cached instance; never mutate it in place
	updated := *existing
	updated.Title = strings.TrimSpace(req.Title)
	updated.Author = strings.TrimSpace(req.Author)

	if updated.Title != existing.Title || updated.Author != existing.Author {
		exists, err := s.repo.ExistsByTitleAndAuthor(ctx, updated.Title, updated.Author)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, book.ErrAlreadyExists
		}
	}

	if err := s.repo.Update(ctx, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteBook removes the book; its reviews go with it, so every cached review list and
// profile may be stale afterwards.
func (s *BookService) DeleteBook(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.caches.clearUserResponses()
	s.caches.clearProfiles()
	if s.logger != nil {
		s.logger.WithFields(logrus.Fields{"book_id": id}).Info("book deleted")
	}
	return nil
}

func (s *BookService) ListBooksByCategory(ctx context.Context, categoryID int64) ([]*book.Book, error) {
	if _, err := s.categoryRepo.GetByID(ctx, categoryID); err != nil {
		return nil, err
	}
	return s.repo.ListByCategory(ctx, categoryID)
}

func (s *BookService) AddCategoryToBook(ctx context.Context, bookID, categoryID int64) error {
	if err := s.checkLink(ctx, bookID, categoryID); err != nil {
		return err
	}
	return s.repo.AddCategory(ctx, bookID, categoryID)
}

func (s *BookService) RemoveCategoryFromBook(ctx context.Context, bookID, categoryID int64) error {
	if err := s.checkLink(ctx, bookID, categoryID); err != nil {
		return err
	}
	return s.repo.RemoveCategory(ctx, bookID, categoryID)
}

func (s *BookService) checkLink(ctx context.Context, bookID, categoryID int64) error {
	if _, err := s.repo.GetByID(ctx, bookID); err != nil {
		return err
	}
	if _, err := s.categoryRepo.GetByID(ctx, categoryID); err != nil {
		return err
	}
	return nil
}

var _ ports.BookService = (*BookService)(nil)

package service

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"library-backend/internal/domains/book/model"
)

type fakeBookRepo struct {
	books      map[uuid.UUID]*model.Book
	authors    map[uuid.UUID]bool
	genres     map[uuid.UUID]bool
	publishers map[uuid.UUID]bool
	loans      map[uuid.UUID]bool
	pending    map[uuid.UUID]int
}

func newFakeBookRepo() *fakeBookRepo {
	return &fakeBookRepo{
		books:      make(map[uuid.UUID]*model.Book),
		authors:    make(map[uuid.UUID]bool),
		genres:     make(map[uuid.UUID]bool),
		publishers: make(map[uuid.UUID]bool),
		loans:      make(map[uuid.UUID]bool),
		pending:    make(map[uuid.UUID]int),
	}
}

func (f *fakeBookRepo) Create(_ context.Context, b *model.Book) error {
	f.books[b.ID] = b
	return nil
}

func (f *fakeBookRepo) GetByID(_ context.Context, id uuid.UUID) (*model.Book, error) {
	b, ok := f.books[id]
	if !ok {
		return nil, model.ErrBookNotFound
	}
	cp := *b
	return &cp, nil
}

func (f *fakeBookRepo) GetByISBN(_ context.Context, isbn string) (*model.Book, error) {
	for _, b := range f.books {
		if strings.EqualFold(b.ISBN, isbn) {
			cp := *b
			return &cp, nil
		}
	}
	return nil, model.ErrBookNotFound
}

func (f *fakeBookRepo) List(_ context.Context, _ model.BookFilter) ([]model.Book, int, error) {
	out := make([]model.Book, 0, len(f.books))
	for _, b := range f.books {
		out = append(out, *b)
	}
	return out, len(out), nil
}

func (f *fakeBookRepo) Update(_ context.Context, b *model.Book) error {
	stored, ok := f.books[b.ID]
	if !ok {
		return model.ErrBookNotFound
	}
	cp := *b
	cp.TotalCopies = stored.TotalCopies
	cp.AvailableCopies = stored.AvailableCopies
	f.books[b.ID] = &cp
	return nil
}

func (f *fakeBookRepo) UpdateCopies(_ context.Context, id uuid.UUID, totalCopies int) error {
	b, ok := f.books[id]
	if !ok {
		return model.ErrBookNotFound
	}
	if totalCopies < f.pending[id] {
		return model.ErrCopiesBelowLoans
	}
	b.TotalCopies = totalCopies
	b.AvailableCopies = totalCopies - f.pending[id]
	return nil
}

// Delete mirrors the real repository contract: the loan-history guard
// and the removal are a single atomic operation.
func (f *fakeBookRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := f.books[id]; !ok {
		return model.ErrBookNotFound
	}
	if f.loans[id] {
		return model.ErrBookHasLoans
	}
	delete(f.books, id)
	return nil
}

func (f *fakeBookRepo) AuthorExists(_ context.Context, id uuid.UUID) (bool, error) {
	return f.authors[id], nil
}

func (f *fakeBookRepo) GenreExists(_ context.Context, id uuid.UUID) (bool, error) {
	return f.genres[id], nil
}

func (f *fakeBookRepo) PublisherExists(_ context.Context, id uuid.UUID) (bool, error) {
	return f.publishers[id], nil
}

func validCreateRequest() model.CreateBookRequest {
	return model.CreateBookRequest{
		Title:       "Parable of the Sower",
		ISBN:        "978-0-7653-1999-8",
		TotalCopies: 3,
		Tags:        []string{"Dystopia", " dystopia ", "classic"},
	}
}

func TestCreateBookInitializesCounters(t *testing.T) {
	repo := newFakeBookRepo()
	svc := NewBookService(repo)

	book, err := svc.Create(context.Background(), validCreateRequest(), uuid.New())
	require.NoError(t, err)

	assert.Equal(t, 3, book.TotalCopies)
	assert.Equal(t, 3, book.AvailableCopies)
	assert.Equal(t, []string{"dystopia", "classic"}, book.Tags, "tags deduplicated and lowercased")
}

func TestCreateBookDuplicateISBN(t *testing.T) {
	repo := newFakeBookRepo()
	svc := NewBookService(repo)

	_, err := svc.Create(context.Background(), validCreateRequest(), uuid.New())
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), validCreateRequest(), uuid.New())
	assert.ErrorIs(t, err, model.ErrISBNTaken)
}

func TestCreateBookUnknownReferences(t *testing.T) {
	repo := newFakeBookRepo()
	svc := NewBookService(repo)

	authorID := uuid.New()
	req := validCreateRequest()
	req.AuthorID = &authorID

	_, err := svc.Create(context.Background(), req, uuid.New())
	assert.ErrorIs(t, err, model.ErrAuthorNotFound)

	repo.authors[authorID] = true
	_, err = svc.Create(context.Background(), req, uuid.New())
	assert.NoError(t, err)
}

func TestCreateBookRejectsBadISBN(t *testing.T) {
	svc := NewBookService(newFakeBookRepo())

	req := validCreateRequest()
	req.ISBN = "not an isbn!"

	_, err := svc.Create(context.Background(), req, uuid.New())
	assert.Error(t, err)
}

func TestUpdateBookKeepsOwnISBN(t *testing.T) {
	repo := newFakeBookRepo()
	svc := NewBookService(repo)

	book, err := svc.Create(context.Background(), validCreateRequest(), uuid.New())
	require.NoError(t, err)

	same := book.ISBN
	newTitle := "Parable of the Talents"
	updated, err := svc.Update(context.Background(), book.ID, model.UpdateBookRequest{
		Title: &newTitle,
		ISBN:  &same,
	})
	require.NoError(t, err)
	assert.Equal(t, "Parable of the Talents", updated.Title)
}

func TestUpdateBookCopiesRespectsOutstandingLoans(t *testing.T) {
	repo := newFakeBookRepo()
	svc := NewBookService(repo)

	book, err := svc.Create(context.Background(), validCreateRequest(), uuid.New())
	require.NoError(t, err)
	repo.pending[book.ID] = 2

	one := 1
	_, err = svc.Update(context.Background(), book.ID, model.UpdateBookRequest{TotalCopies: &one})
	assert.ErrorIs(t, err, model.ErrCopiesBelowLoans)

	five := 5
	updated, err := svc.Update(context.Background(), book.ID, model.UpdateBookRequest{TotalCopies: &five})
	require.NoError(t, err)
	assert.Equal(t, 5, updated.TotalCopies)
	assert.Equal(t, 3, updated.AvailableCopies, "available = total - pending")
}

func TestDeleteBookBlockedByLoanHistory(t *testing.T) {
	repo := newFakeBookRepo()
	svc := NewBookService(repo)
	creator := uuid.New()

	book, err := svc.Create(context.Background(), validCreateRequest(), creator)
	require.NoError(t, err)
	repo.loans[book.ID] = true

	err = svc.Delete(context.Background(), book.ID, creator)
	assert.ErrorIs(t, err, model.ErrBookHasLoans)
}

func TestDeleteBookRequiresCreator(t *testing.T) {
	repo := newFakeBookRepo()
	svc := NewBookService(repo)
	creator := uuid.New()

	book, err := svc.Create(context.Background(), validCreateRequest(), creator)
	require.NoError(t, err)

	err = svc.Delete(context.Background(), book.ID, uuid.New())
	assert.ErrorIs(t, err, model.ErrNotCreator)

	require.NoError(t, svc.Delete(context.Background(), book.ID, creator))
	_, err = svc.GetByID(context.Background(), book.ID)
	assert.ErrorIs(t, err, model.ErrBookNotFound)
}

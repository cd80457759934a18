package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"library-backend/internal/domains/author/model"
)

type fakeAuthorRepo struct {
	authors map[uuid.UUID]*model.Author
	// ids of authors referenced by each dependency kind
	bookRefs     map[uuid.UUID]bool
	snapshotRefs map[uuid.UUID]bool
	loanBookRefs map[uuid.UUID]bool
}

func newFakeAuthorRepo() *fakeAuthorRepo {
	return &fakeAuthorRepo{
		authors:      make(map[uuid.UUID]*model.Author),
		bookRefs:     make(map[uuid.UUID]bool),
		snapshotRefs: make(map[uuid.UUID]bool),
		loanBookRefs: make(map[uuid.UUID]bool),
	}
}

func (f *fakeAuthorRepo) Create(_ context.Context, a *model.Author) error {
	f.authors[a.ID] = a
	return nil
}

func (f *fakeAuthorRepo) GetByID(_ context.Context, id uuid.UUID) (*model.Author, error) {
	a, ok := f.authors[id]
	if !ok {
		return nil, model.ErrAuthorNotFound
	}
	cp := *a
	return &cp, nil
}

func (f *fakeAuthorRepo) List(_ context.Context, _ model.AuthorFilter) ([]model.Author, int, error) {
	out := make([]model.Author, 0, len(f.authors))
	for _, a := range f.authors {
		out = append(out, *a)
	}
	return out, len(out), nil
}

func (f *fakeAuthorRepo) Update(_ context.Context, a *model.Author) error {
	if _, ok := f.authors[a.ID]; !ok {
		return model.ErrAuthorNotFound
	}
	cp := *a
	f.authors[a.ID] = &cp
	return nil
}

// Delete mirrors the real repository contract: the referential guard
// and the removal are a single atomic operation.
func (f *fakeAuthorRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := f.authors[id]; !ok {
		return model.ErrAuthorNotFound
	}
	if f.bookRefs[id] || f.snapshotRefs[id] || f.loanBookRefs[id] {
		return model.ErrAuthorInUse
	}
	delete(f.authors, id)
	return nil
}

func seedAuthor(repo *fakeAuthorRepo, creator uuid.UUID) *model.Author {
	a := &model.Author{
		ID:        uuid.New(),
		Name:      "Octavia E. Butler",
		CreatedBy: &creator,
	}
	repo.authors[a.ID] = a
	return a
}

func TestCreateAuthorRecordsCreator(t *testing.T) {
	repo := newFakeAuthorRepo()
	svc := NewAuthorService(repo)
	creator := uuid.New()

	author, err := svc.Create(context.Background(), model.CreateAuthorRequest{Name: "  N. K. Jemisin "}, creator)
	require.NoError(t, err)

	assert.Equal(t, "N. K. Jemisin", author.Name)
	require.NotNil(t, author.CreatedBy)
	assert.Equal(t, creator, *author.CreatedBy)
}

func TestCreateAuthorRejectsEmptyName(t *testing.T) {
	svc := NewAuthorService(newFakeAuthorRepo())

	_, err := svc.Create(context.Background(), model.CreateAuthorRequest{Name: ""}, uuid.New())
	assert.Error(t, err)
}

func TestDeleteAuthorWithoutReferences(t *testing.T) {
	repo := newFakeAuthorRepo()
	svc := NewAuthorService(repo)
	creator := uuid.New()
	author := seedAuthor(repo, creator)

	err := svc.Delete(context.Background(), author.ID, creator)
	require.NoError(t, err)

	_, err = svc.GetByID(context.Background(), author.ID)
	assert.ErrorIs(t, err, model.ErrAuthorNotFound)
}

func TestDeleteAuthorBlockedByGuard(t *testing.T) {
	creator := uuid.New()

	cases := []struct {
		name string
		mark func(repo *fakeAuthorRepo, id uuid.UUID)
	}{
		{"book references author", func(r *fakeAuthorRepo, id uuid.UUID) { r.bookRefs[id] = true }},
		{"loan snapshot references author", func(r *fakeAuthorRepo, id uuid.UUID) { r.snapshotRefs[id] = true }},
		{"loan reaches author via current book", func(r *fakeAuthorRepo, id uuid.UUID) { r.loanBookRefs[id] = true }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := newFakeAuthorRepo()
			svc := NewAuthorService(repo)
			author := seedAuthor(repo, creator)
			tc.mark(repo, author.ID)

			err := svc.Delete(context.Background(), author.ID, creator)
			assert.ErrorIs(t, err, model.ErrAuthorInUse)

			_, err = svc.GetByID(context.Background(), author.ID)
			assert.NoError(t, err, "guarded author must not be deleted")
		})
	}
}

// Scenario: deletion blocked while a book references the author, allowed
// once the reference is gone.
func TestDeleteAuthorAfterBookRemoved(t *testing.T) {
	repo := newFakeAuthorRepo()
	svc := NewAuthorService(repo)
	creator := uuid.New()
	author := seedAuthor(repo, creator)

	repo.bookRefs[author.ID] = true
	err := svc.Delete(context.Background(), author.ID, creator)
	require.ErrorIs(t, err, model.ErrAuthorInUse)

	repo.bookRefs[author.ID] = false
	err = svc.Delete(context.Background(), author.ID, creator)
	assert.NoError(t, err)
}

func TestDeleteAuthorRequiresCreator(t *testing.T) {
	repo := newFakeAuthorRepo()
	svc := NewAuthorService(repo)
	author := seedAuthor(repo, uuid.New())

	err := svc.Delete(context.Background(), author.ID, uuid.New())
	assert.ErrorIs(t, err, model.ErrNotCreator)
}

func TestUpdateAuthorRequiresCreator(t *testing.T) {
	repo := newFakeAuthorRepo()
	svc := NewAuthorService(repo)
	creator := uuid.New()
	author := seedAuthor(repo, creator)

	newName := "Updated Name"

	_, err := svc.Update(context.Background(), author.ID, model.UpdateAuthorRequest{Name: &newName}, uuid.New())
	assert.ErrorIs(t, err, model.ErrNotCreator)

	updated, err := svc.Update(context.Background(), author.ID, model.UpdateAuthorRequest{Name: &newName}, creator)
	require.NoError(t, err)
	assert.Equal(t, "Updated Name", updated.Name)
}

func TestUpdateAuthorWithoutCreatorIsOpen(t *testing.T) {
	repo := newFakeAuthorRepo()
	svc := NewAuthorService(repo)
	author := &model.Author{ID: uuid.New(), Name: "Anonymous"}
	repo.authors[author.ID] = author

	newName := "Attributed"
	_, err := svc.Update(context.Background(), author.ID, model.UpdateAuthorRequest{Name: &newName}, uuid.New())
	assert.NoError(t, err)
}

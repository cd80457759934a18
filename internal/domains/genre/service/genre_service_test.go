package service

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"library-backend/internal/domains/genre/model"
)

type fakeGenreRepo struct {
	genres       map[uuid.UUID]*model.Genre
	bookRefs     map[uuid.UUID]bool
	snapshotRefs map[uuid.UUID]bool
	loanBookRefs map[uuid.UUID]bool
}

func newFakeGenreRepo() *fakeGenreRepo {
	return &fakeGenreRepo{
		genres:       make(map[uuid.UUID]*model.Genre),
		bookRefs:     make(map[uuid.UUID]bool),
		snapshotRefs: make(map[uuid.UUID]bool),
		loanBookRefs: make(map[uuid.UUID]bool),
	}
}

func (f *fakeGenreRepo) Create(_ context.Context, g *model.Genre) error {
	f.genres[g.ID] = g
	return nil
}

func (f *fakeGenreRepo) GetByID(_ context.Context, id uuid.UUID) (*model.Genre, error) {
	g, ok := f.genres[id]
	if !ok {
		return nil, model.ErrGenreNotFound
	}
	cp := *g
	return &cp, nil
}

func (f *fakeGenreRepo) GetByName(_ context.Context, name string) (*model.Genre, error) {
	for _, g := range f.genres {
		if strings.EqualFold(g.Name, name) {
			cp := *g
			return &cp, nil
		}
	}
	return nil, model.ErrGenreNotFound
}

func (f *fakeGenreRepo) List(_ context.Context, _ model.GenreFilter) ([]model.Genre, int, error) {
	out := make([]model.Genre, 0, len(f.genres))
	for _, g := range f.genres {
		out = append(out, *g)
	}
	return out, len(out), nil
}

func (f *fakeGenreRepo) Update(_ context.Context, g *model.Genre) error {
	if _, ok := f.genres[g.ID]; !ok {
		return model.ErrGenreNotFound
	}
	cp := *g
	f.genres[g.ID] = &cp
	return nil
}

// Delete mirrors the real repository contract: the referential guard
// and the removal are a single atomic operation.
func (f *fakeGenreRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := f.genres[id]; !ok {
		return model.ErrGenreNotFound
	}
	if f.bookRefs[id] || f.snapshotRefs[id] || f.loanBookRefs[id] {
		return model.ErrGenreInUse
	}
	delete(f.genres, id)
	return nil
}

func TestCreateGenre(t *testing.T) {
	svc := NewGenreService(newFakeGenreRepo())

	genre, err := svc.Create(context.Background(), model.CreateGenreRequest{Name: " Science Fiction "})
	require.NoError(t, err)
	assert.Equal(t, "Science Fiction", genre.Name)
	assert.Equal(t, "science-fiction", genre.Slug)
}

func TestCreateGenreDuplicateName(t *testing.T) {
	repo := newFakeGenreRepo()
	svc := NewGenreService(repo)

	_, err := svc.Create(context.Background(), model.CreateGenreRequest{Name: "Horror"})
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), model.CreateGenreRequest{Name: "horror"})
	assert.ErrorIs(t, err, model.ErrGenreNameTaken)
}

func TestUpdateGenreKeepsOwnName(t *testing.T) {
	repo := newFakeGenreRepo()
	svc := NewGenreService(repo)

	genre, err := svc.Create(context.Background(), model.CreateGenreRequest{Name: "Poetry"})
	require.NoError(t, err)

	// Renaming to its own name must not trip the uniqueness check.
	same := "poetry"
	updated, err := svc.Update(context.Background(), genre.ID, model.UpdateGenreRequest{Name: &same})
	require.NoError(t, err)
	assert.Equal(t, "poetry", updated.Name)
}

func TestDeleteGenreBlockedByGuard(t *testing.T) {
	cases := []struct {
		name string
		mark func(repo *fakeGenreRepo, id uuid.UUID)
	}{
		{"book references genre", func(r *fakeGenreRepo, id uuid.UUID) { r.bookRefs[id] = true }},
		{"loan snapshot references genre", func(r *fakeGenreRepo, id uuid.UUID) { r.snapshotRefs[id] = true }},
		{"loan reaches genre via current book", func(r *fakeGenreRepo, id uuid.UUID) { r.loanBookRefs[id] = true }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := newFakeGenreRepo()
			svc := NewGenreService(repo)

			genre, err := svc.Create(context.Background(), model.CreateGenreRequest{Name: "Mystery"})
			require.NoError(t, err)
			tc.mark(repo, genre.ID)

			err = svc.Delete(context.Background(), genre.ID)
			assert.ErrorIs(t, err, model.ErrGenreInUse)
		})
	}
}

func TestDeleteGenreWithoutReferences(t *testing.T) {
	repo := newFakeGenreRepo()
	svc := NewGenreService(repo)

	genre, err := svc.Create(context.Background(), model.CreateGenreRequest{Name: "Essays"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), genre.ID))

	_, err = svc.GetByID(context.Background(), genre.ID)
	assert.ErrorIs(t, err, model.ErrGenreNotFound)
}

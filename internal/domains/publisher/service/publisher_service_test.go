package service

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"library-backend/internal/domains/publisher/model"
)

type fakePublisherRepo struct {
	publishers map[uuid.UUID]*model.Publisher
	bookRefs   map[uuid.UUID]bool
}

func newFakePublisherRepo() *fakePublisherRepo {
	return &fakePublisherRepo{
		publishers: make(map[uuid.UUID]*model.Publisher),
		bookRefs:   make(map[uuid.UUID]bool),
	}
}

func (f *fakePublisherRepo) Create(_ context.Context, p *model.Publisher) error {
	f.publishers[p.ID] = p
	return nil
}

func (f *fakePublisherRepo) GetByID(_ context.Context, id uuid.UUID) (*model.Publisher, error) {
	p, ok := f.publishers[id]
	if !ok {
		return nil, model.ErrPublisherNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakePublisherRepo) GetByName(_ context.Context, name string) (*model.Publisher, error) {
	for _, p := range f.publishers {
		if strings.EqualFold(p.Name, name) {
			cp := *p
			return &cp, nil
		}
	}
	return nil, model.ErrPublisherNotFound
}

func (f *fakePublisherRepo) List(_ context.Context, _ model.PublisherFilter) ([]model.Publisher, int, error) {
	out := make([]model.Publisher, 0, len(f.publishers))
	for _, p := range f.publishers {
		out = append(out, *p)
	}
	return out, len(out), nil
}

func (f *fakePublisherRepo) Update(_ context.Context, p *model.Publisher) error {
	if _, ok := f.publishers[p.ID]; !ok {
		return model.ErrPublisherNotFound
	}
	cp := *p
	f.publishers[p.ID] = &cp
	return nil
}

// Delete mirrors the real repository contract: the referential guard
// and the removal are a single atomic operation.
func (f *fakePublisherRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := f.publishers[id]; !ok {
		return model.ErrPublisherNotFound
	}
	if f.bookRefs[id] {
		return model.ErrPublisherInUse
	}
	delete(f.publishers, id)
	return nil
}

func TestCreatePublisher(t *testing.T) {
	svc := NewPublisherService(newFakePublisherRepo())

	site := "https://tor.com"
	publisher, err := svc.Create(context.Background(), model.CreatePublisherRequest{
		Name:    " Tor Books ",
		Website: &site,
	})
	require.NoError(t, err)
	assert.Equal(t, "Tor Books", publisher.Name)
}

func TestCreatePublisherRejectsBadWebsite(t *testing.T) {
	svc := NewPublisherService(newFakePublisherRepo())

	site := "not a url"
	_, err := svc.Create(context.Background(), model.CreatePublisherRequest{
		Name:    "Tor Books",
		Website: &site,
	})
	assert.Error(t, err)
}

func TestDeletePublisherBlockedByBooks(t *testing.T) {
	repo := newFakePublisherRepo()
	svc := NewPublisherService(repo)

	publisher, err := svc.Create(context.Background(), model.CreatePublisherRequest{Name: "Orbit"})
	require.NoError(t, err)
	repo.bookRefs[publisher.ID] = true

	err = svc.Delete(context.Background(), publisher.ID)
	assert.ErrorIs(t, err, model.ErrPublisherInUse)

	repo.bookRefs[publisher.ID] = false
	assert.NoError(t, svc.Delete(context.Background(), publisher.ID))
}

func TestCreatePublisherDuplicateName(t *testing.T) {
	svc := NewPublisherService(newFakePublisherRepo())

	_, err := svc.Create(context.Background(), model.CreatePublisherRequest{Name: "Orbit"})
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), model.CreatePublisherRequest{Name: "orbit"})
	assert.ErrorIs(t, err, model.ErrPublisherNameTaken)
}

func TestDeletePublisherNotFound(t *testing.T) {
	svc := NewPublisherService(newFakePublisherRepo())

	err := svc.Delete(context.Background(), uuid.New())
	assert.ErrorIs(t, err, model.ErrPublisherNotFound)
}

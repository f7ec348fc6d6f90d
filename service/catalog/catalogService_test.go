package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type repoMock struct {
	listFn   func(ctx context.Context) ([]Film, error)
	detailFn func(ctx context.Context, filmID int64) (*Film, error)
	createFn func(ctx context.Context, title, category string, rate float64, duration int) (int64, error)
	copiesFn func(ctx context.Context, filmID, storeID int64, n int) (int64, error)
}

func (m *repoMock) ListFilms(ctx context.Context) ([]Film, error) { return m.listFn(ctx) }
func (m *repoMock) FilmDetail(ctx context.Context, filmID int64) (*Film, error) {
	return m.detailFn(ctx, filmID)
}
func (m *repoMock) CreateFilm(ctx context.Context, title, category string, rate float64, duration int) (int64, error) {
	return m.createFn(ctx, title, category, rate, duration)
}
func (m *repoMock) AddCopies(ctx context.Context, filmID, storeID int64, n int) (int64, error) {
	return m.copiesFn(ctx, filmID, storeID, n)
}

func TestCreate_Validation(t *testing.T) {
	svc := New(&repoMock{})

	cases := []struct {
		name     string
		title    string
		category string
		rate     float64
		duration int
	}{
		{"empty title", "", "Action", 2.99, 3},
		{"empty category", "Heat", "", 2.99, 3},
		{"negative rate", "Heat", "Action", -1, 3},
		{"zero duration", "Heat", "Action", 2.99, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), tc.title, tc.category, tc.rate, tc.duration)
			require.Error(t, err)
		})
	}
}

func TestCreate_PassesThrough(t *testing.T) {
	repo := &repoMock{
		createFn: func(ctx context.Context, title, category string, rate float64, duration int) (int64, error) {
			assert.Equal(t, "Heat", title)
			assert.Equal(t, "Action", category)
			assert.Equal(t, 2.99, rate)
			assert.Equal(t, 3, duration)
			return 12, nil
		},
	}
	svc := New(repo)

	id, err := svc.Create(context.Background(), "Heat", "Action", 2.99, 3)
	require.NoError(t, err)
	assert.Equal(t, int64(12), id)
}

func TestList(t *testing.T) {
	repo := &repoMock{
		listFn: func(ctx context.Context) ([]Film, error) {
			return []Film{{ID: 1, Title: "Heat"}, {ID: 2, Title: "Ronin"}}, nil
		},
	}
	svc := New(repo)

	films, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, films, 2)
	assert.Equal(t, "Ronin", films[1].Title)
}

func TestDetail_Absent(t *testing.T) {
	repo := &repoMock{
		detailFn: func(ctx context.Context, filmID int64) (*Film, error) { return nil, nil },
	}
	svc := New(repo)

	f, err := svc.Detail(context.Background(), 99)
	require.NoError(t, err)
	assert.Nil(t, f)
}

func TestAddCopies(t *testing.T) {
	repo := &repoMock{
		copiesFn: func(ctx context.Context, filmID, storeID int64, n int) (int64, error) {
			assert.Equal(t, int64(5), filmID)
			assert.Equal(t, int64(1), storeID)
			assert.Equal(t, 3, n)
			return 3, nil
		},
	}
	svc := New(repo)

	n, err := svc.AddCopies(context.Background(), 5, 1, 3)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
}

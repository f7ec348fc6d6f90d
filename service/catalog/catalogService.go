package catalog

import (
	"context"
	"errors"

	"github.com/karim076/Weektaken-LU-1-sub000/model"
)

type Film = model.Film

type Repo interface {
	ListFilms(ctx context.Context) ([]Film, error)
	FilmDetail(ctx context.Context, filmID int64) (*Film, error)
	CreateFilm(ctx context.Context, title, category string, rate float64, duration int) (int64, error)
	AddCopies(ctx context.Context, filmID, storeID int64, n int) (int64, error)
}

type Service interface {
	List(ctx context.Context) ([]Film, error)
	Detail(ctx context.Context, filmID int64) (*Film, error)
	Create(ctx context.Context, title, category string, rate float64, duration int) (int64, error)
	AddCopies(ctx context.Context, filmID, storeID int64, n int) (int64, error)
}

type service struct{ r Repo }

func New(r Repo) Service { return &service{r: r} }

func (s *service) Create(ctx context.Context, title, category string, rate float64, duration int) (int64, error) {
	if title == "" || category == "" || rate < 0 || duration <= 0 {
		return 0, errors.New("invalid payload")
	}
	return s.r.CreateFilm(ctx, title, category, rate, duration)
}

func (s *service) AddCopies(ctx context.Context, filmID, storeID int64, n int) (int64, error) {
	return s.r.AddCopies(ctx, filmID, storeID, n)
}

func (s *service) List(ctx context.Context) ([]Film, error) { return s.r.ListFilms(ctx) }

func (s *service) Detail(ctx context.Context, filmID int64) (*Film, error) {
	return s.r.FilmDetail(ctx, filmID)
}

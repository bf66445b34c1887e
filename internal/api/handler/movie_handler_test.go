package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/mshlentov/cinescope/internal/core/domain"
)

type stubMovieService struct {
	listFn   func(ctx context.Context, f domain.MovieFilter) (*domain.MoviePage, error)
	createFn func(ctx context.Context, m *domain.Movie) (*domain.Movie, error)
	getFn    func(ctx context.Context, id int) (*domain.Movie, error)
	updateFn func(ctx context.Context, id int, u domain.MovieUpdate) (*domain.Movie, error)
	deleteFn func(ctx context.Context, id int) (*domain.Movie, error)
}

func (s *stubMovieService) List(ctx context.Context, f domain.MovieFilter) (*domain.MoviePage, error) {
	return s.listFn(ctx, f)
}

func (s *stubMovieService) Create(ctx context.Context, m *domain.Movie) (*domain.Movie, error) {
	return s.createFn(ctx, m)
}

func (s *stubMovieService) Get(ctx context.Context, id int) (*domain.Movie, error) {
	return s.getFn(ctx, id)
}

func (s *stubMovieService) Update(ctx context.Context, id int, u domain.MovieUpdate) (*domain.Movie, error) {
	return s.updateFn(ctx, id, u)
}

func (s *stubMovieService) Delete(ctx context.Context, id int) (*domain.Movie, error) {
	return s.deleteFn(ctx, id)
}

func TestMovieHandler_Create_Success(t *testing.T) {
	e := newEcho()
	stub := &stubMovieService{
		createFn: func(ctx context.Context, m *domain.Movie) (*domain.Movie, error) {
			if m.Name != "Stalker" || m.Price != 250 || m.GenreID != 2 {
				t.Fatalf("unexpected movie: %+v", m)
			}
			m.ID = 17
			m.CreatedAt = time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
			return m, nil
		},
	}
	handler := NewMovieHandler(stub)

	body := `{"name":"Stalker","price":250,"description":"The Zone","location":"MSK","published":true,"genreId":2}`
	rec := httptest.NewRecorder()
	c := e.NewContext(jsonRequest(http.MethodPost, "/movies", body), rec)

	if err := handler.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["id"] != float64(17) {
		t.Fatalf("unexpected id: %v", resp["id"])
	}
	if resp["imageUrl"] != nil {
		t.Fatalf("expected null imageUrl, got %v", resp["imageUrl"])
	}
	genre, ok := resp["genre"].(map[string]any)
	if !ok || genre["name"] != "Комедия" {
		t.Fatalf("unexpected genre: %v", resp["genre"])
	}
	if resp["createdAt"] != "2025-01-02T03:04:05.000Z" {
		t.Fatalf("unexpected createdAt: %v", resp["createdAt"])
	}
}

func TestMovieHandler_Create_InvalidJSON(t *testing.T) {
	e := newEcho()
	handler := NewMovieHandler(&stubMovieService{})

	c := e.NewContext(jsonRequest(http.MethodPost, "/movies", `{"name":`), httptest.NewRecorder())

	err := handler.Create(c)
	var ve *domain.ValidationError
	if !errors.As(err, &ve) || ve.Messages[0] != domain.MsgInvalidPayload {
		t.Fatalf("expected invalid payload error, got %v", err)
	}
}

func TestMovieHandler_Get_NonNumericID(t *testing.T) {
	e := newEcho()
	handler := NewMovieHandler(&stubMovieService{
		getFn: func(context.Context, int) (*domain.Movie, error) {
			t.Fatalf("service must not be called")
			return nil, nil
		},
	})

	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/movies/abc", nil), httptest.NewRecorder())
	c.SetParamNames("id")
	c.SetParamValues("abc")

	if err := handler.Get(c); !errors.Is(err, domain.ErrMovieNotFound) {
		t.Fatalf("expected ErrMovieNotFound, got %v", err)
	}
}

func TestMovieHandler_Update_ValidatesBeforeLookup(t *testing.T) {
	e := newEcho()
	handler := NewMovieHandler(&stubMovieService{
		updateFn: func(context.Context, int, domain.MovieUpdate) (*domain.Movie, error) {
			t.Fatalf("service must not be called")
			return nil, nil
		},
	})

	c := e.NewContext(jsonRequest(http.MethodPatch, "/movies/5", `{"price":-100}`), httptest.NewRecorder())
	c.SetParamNames("id")
	c.SetParamValues("5")

	var ve *domain.ValidationError
	if err := handler.Update(c); !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestMovieHandler_List_BadQuery(t *testing.T) {
	e := newEcho()
	handler := NewMovieHandler(&stubMovieService{})

	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/movies?locations=EKB", nil), httptest.NewRecorder())

	var ve *domain.ValidationError
	if err := handler.List(c); !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if ve.Messages[0] != domain.MsgLocationsEnum {
		t.Fatalf("unexpected message: %v", ve.Messages)
	}
}

func TestGenreHandler(t *testing.T) {
	e := newEcho()
	handler := NewGenreHandler()

	rec := httptest.NewRecorder()
	if err := handler.List(e.NewContext(httptest.NewRequest(http.MethodGet, "/genres", nil), rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	var genres []domain.Genre
	if err := json.Unmarshal(rec.Body.Bytes(), &genres); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(genres) != len(domain.Genres) {
		t.Fatalf("expected %d genres, got %d", len(domain.Genres), len(genres))
	}

	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/genres/99", nil), httptest.NewRecorder())
	c.SetParamNames("id")
	c.SetParamValues("99")
	if err := handler.Get(c); !errors.Is(err, domain.ErrGenreNotFound) {
		t.Fatalf("expected ErrGenreNotFound, got %v", err)
	}
}

var _ echo.Validator = NewValidator()

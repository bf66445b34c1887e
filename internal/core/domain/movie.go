package domain

import (
	"slices"
	"time"
)

// Location is the city a movie is screened in.
type Location string

const (
	LocationMSK Location = "MSK"
	LocationSPB Location = "SPB"
)

var AllLocations = []Location{LocationMSK, LocationSPB}

func (l Location) Valid() bool {
	return slices.Contains(AllLocations, l)
}

// Movie is a catalog entry.
type Movie struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	Price       int       `json:"price"`
	Description string    `json:"description"`
	ImageURL    string    `json:"imageUrl"`
	Location    Location  `json:"location"`
	Published   bool      `json:"published"`
	GenreID     int       `json:"genreId"`
	Rating      float64   `json:"rating"`
	CreatedAt   time.Time `json:"createdAt"`
}

// MovieUpdate is a partial update; nil fields are left untouched.
type MovieUpdate struct {
	Name        *string
	Price       *int
	Description *string
	ImageURL    *string
	Location    *Location
	Published   *bool
	GenreID     *int
}

// Apply copies every set field onto m.
func (u MovieUpdate) Apply(m *Movie) {
	if u.Name != nil {
		m.Name = *u.Name
	}
	if u.Price != nil {
		m.Price = *u.Price
	}
	if u.Description != nil {
		m.Description = *u.Description
	}
	if u.ImageURL != nil {
		m.ImageURL = *u.ImageURL
	}
	if u.Location != nil {
		m.Location = *u.Location
	}
	if u.Published != nil {
		m.Published = *u.Published
	}
	if u.GenreID != nil {
		m.GenreID = *u.GenreID
	}
}

const (
	DefaultPageSize = 10
	MaxPageSize     = 20
)

// MovieFilter selects a page of the catalog. Zero values mean "no constraint",
// except Published which is nil when both states are wanted.
type MovieFilter struct {
	Page      int
	PageSize  int
	MinPrice  int
	MaxPrice  int
	Locations []Location
	Published *bool
	GenreID   int
	SortAsc   bool
}

// Matches reports whether m passes every constraint except pagination.
func (f MovieFilter) Matches(m *Movie) bool {
	if f.MinPrice > 0 && m.Price < f.MinPrice {
		return false
	}
	if f.MaxPrice > 0 && m.Price > f.MaxPrice {
		return false
	}
	if len(f.Locations) > 0 && !slices.Contains(f.Locations, m.Location) {
		return false
	}
	if f.Published != nil && m.Published != *f.Published {
		return false
	}
	if f.GenreID > 0 && m.GenreID != f.GenreID {
		return false
	}
	return true
}

// MoviePage is one page of a filtered listing.
type MoviePage struct {
	Movies    []*Movie
	Count     int
	Page      int
	PageSize  int
	PageCount int
}

// PageCountFor returns how many pages of size pageSize hold count items.
func PageCountFor(count, pageSize int) int {
	if pageSize <= 0 || count == 0 {
		return 0
	}
	return (count + pageSize - 1) / pageSize
}

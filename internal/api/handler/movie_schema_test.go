package handler

import (
	"errors"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mshlentov/cinescope/internal/core/domain"
)

func mustDecode(t *testing.T, body string) map[string]any {
	t.Helper()
	raw, err := decodeObject(strings.NewReader(body))
	require.NoError(t, err)
	return raw
}

func validationMessages(t *testing.T, err error) []string {
	t.Helper()
	var ve *domain.ValidationError
	require.True(t, errors.As(err, &ve), "expected ValidationError, got %v", err)
	return ve.Messages
}

func TestValidateMovie_MissingRequiredFields(t *testing.T) {
	err := validateMovie(mustDecode(t, `{"price": 100, "location": "MSK"}`), false)

	assert.Equal(t, []string{
		"Поле name должно содержать не менее 3 символов",
		"Поле name должно быть строкой",
		"Поле name не может быть пустым",
		"Поле description должно содержать не менее 5 символов",
		"Поле description должно быть строкой",
		"Поле description не может быть пустым",
		"Поле published должно быть булевым значением",
		"Поле published не может быть пустым",
		"Поле genreId должно быть больше 0",
		"Поле genreId должно быть целым числом",
		"Поле genreId должно быть числом",
		"Поле genreId не может быть пустым",
	}, validationMessages(t, err))
}

func TestValidateMovie_PresentFieldsReportOnlyViolations(t *testing.T) {
	body := `{"name": "Up", "imageUrl": "nope", "price": 1.5, "description": 12345,
		"location": "EKB", "published": "yes", "genreId": "2"}`
	err := validateMovie(mustDecode(t, body), false)

	assert.Equal(t, []string{
		"Поле name должно содержать не менее 3 символов",
		"Поле imageUrl должно быть URL адресом",
		"Поле price должно быть целым числом",
		"Поле description должно содержать не менее 5 символов",
		"Поле description должно быть строкой",
		"Поле location должно быть одним из значений: MSK, SPB",
		"Поле published должно быть булевым значением",
		"Поле genreId должно быть больше 0",
		"Поле genreId должно быть целым числом",
		"Поле genreId должно быть числом",
	}, validationMessages(t, err))
}

func TestValidateMovie_Valid(t *testing.T) {
	body := `{"name": "Solaris", "imageUrl": "https://example.com/s.png", "price": 300,
		"description": "Ocean planet", "location": "SPB", "published": true, "genreId": 5}`
	raw := mustDecode(t, body)
	require.NoError(t, validateMovie(raw, false))

	m := toMovie(raw)
	assert.Equal(t, "Solaris", m.Name)
	assert.Equal(t, 300, m.Price)
	assert.Equal(t, domain.LocationSPB, m.Location)
	assert.True(t, m.Published)
	assert.Equal(t, 5, m.GenreID)
}

func TestValidateMovie_Partial(t *testing.T) {
	err := validateMovie(mustDecode(t, `{"price": -100, "location": "INVALID"}`), true)
	msgs := validationMessages(t, err)
	require.Len(t, msgs, 2)
	assert.Contains(t, strings.ToLower(msgs[0]), "price")
	assert.Contains(t, strings.ToLower(msgs[1]), "location")

	assert.NoError(t, validateMovie(mustDecode(t, `{"name": "Renamed"}`), true))
	assert.NoError(t, validateMovie(mustDecode(t, ``), true))

	u := toMovieUpdate(mustDecode(t, `{"price": 400, "published": false}`))
	require.NotNil(t, u.Price)
	require.NotNil(t, u.Published)
	assert.Equal(t, 400, *u.Price)
	assert.False(t, *u.Published)
	assert.Nil(t, u.Name)
}

func TestDecodeObject_RejectsNonObjects(t *testing.T) {
	for _, body := range []string{`[1,2]`, `null`, `{"a":`, `"x"`} {
		_, err := decodeObject(strings.NewReader(body))
		assert.Error(t, err, body)
	}
}

func TestParseMovieFilter_Defaults(t *testing.T) {
	f, err := parseMovieFilter(url.Values{})
	require.NoError(t, err)

	assert.Equal(t, 1, f.Page)
	assert.Equal(t, domain.DefaultPageSize, f.PageSize)
	require.NotNil(t, f.Published)
	assert.True(t, *f.Published)
	assert.False(t, f.SortAsc)
}

func TestParseMovieFilter_Values(t *testing.T) {
	q := url.Values{}
	q.Set("page", "2")
	q.Set("pageSize", "20")
	q.Set("minPrice", "100")
	q.Set("maxPrice", "500")
	q.Add("locations", "MSK,SPB")
	q.Set("published", "false")
	q.Set("genreId", "3")
	q.Set("createdAt", "asc")

	f, err := parseMovieFilter(q)
	require.NoError(t, err)
	assert.Equal(t, domain.MovieFilter{
		Page:      2,
		PageSize:  20,
		MinPrice:  100,
		MaxPrice:  500,
		Locations: []domain.Location{domain.LocationMSK, domain.LocationSPB},
		Published: f.Published,
		GenreID:   3,
		SortAsc:   true,
	}, f)
	assert.False(t, *f.Published)
}

func TestParseMovieFilter_RepeatedLocations(t *testing.T) {
	f, err := parseMovieFilter(url.Values{"locations": {"SPB", "MSK"}})
	require.NoError(t, err)
	assert.Equal(t, []domain.Location{domain.LocationSPB, domain.LocationMSK}, f.Locations)
}

func TestParseMovieFilter_Errors(t *testing.T) {
	cases := []struct {
		name  string
		query url.Values
		want  []string
	}{
		{"page size too big", url.Values{"pageSize": {"21"}}, []string{"Поле pageSize имеет максимальную величину 20"}},
		{"page size zero", url.Values{"pageSize": {"0"}}, []string{"Поле pageSize имеет минимальную величину 1"}},
		{"page size text", url.Values{"pageSize": {"ten"}}, []string{"Поле pageSize должно быть целым числом"}},
		{"unknown location", url.Values{"locations": {"EKB"}}, []string{domain.MsgLocationsEnum}},
		{"bad published", url.Values{"published": {"maybe"}}, []string{"Поле published должно быть булевым значением"}},
		{"bad sort", url.Values{"createdAt": {"sideways"}}, []string{"Поле createdAt должно быть одним из значений: asc, desc"}},
		{"ordered", url.Values{"createdAt": {"x"}, "page": {"0"}, "pageSize": {"50"}, "minPrice": {"abc"}}, []string{
			"Поле pageSize имеет максимальную величину 20",
			"Поле page имеет минимальную величину 1",
			"Поле minPrice должно быть целым числом",
			"Поле createdAt должно быть одним из значений: asc, desc",
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := parseMovieFilter(tc.query)
			assert.Equal(t, tc.want, validationMessages(t, err))
		})
	}
}

package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"math"
	"net/url"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"

	"github.com/mshlentov/cinescope/internal/core/domain"
)

// --- Request / Response types ---

type genreName struct {
	Name string `json:"name"`
}

type movieResponse struct {
	ID          int        `json:"id"`
	Name        string     `json:"name"`
	Price       int        `json:"price"`
	Description string     `json:"description"`
	ImageURL    *string    `json:"imageUrl"`
	Location    string     `json:"location"`
	Published   bool       `json:"published"`
	GenreID     int        `json:"genreId"`
	Genre       *genreName `json:"genre,omitempty"`
	Rating      float64    `json:"rating"`
	CreatedAt   string     `json:"createdAt"`
}

type moviesPageResponse struct {
	Movies    []movieResponse `json:"movies"`
	Count     int             `json:"count"`
	Page      int             `json:"page"`
	PageSize  int             `json:"pageSize"`
	PageCount int             `json:"pageCount"`
}

// movieRequest documents the movie payload; handlers validate it as a raw
// object so that type errors can be reported per field.
type movieRequest struct {
	Name        string `json:"name"`
	ImageURL    string `json:"imageUrl,omitempty"`
	Price       int    `json:"price"`
	Description string `json:"description"`
	Location    string `json:"location"`
	Published   bool   `json:"published"`
	GenreID     int    `json:"genreId"`
}

// --- Body rules ---

type check struct {
	ok  func(v any) bool
	msg string
}

type fieldRule struct {
	field    string
	optional bool
	checks   []check
}

var urlValidator = validator.New()

// movieRules lists the payload fields in the order their messages are reported.
var movieRules = []fieldRule{
	{field: "name", checks: []check{
		{minLength(3), "Поле name должно содержать не менее 3 символов"},
		{isString, "Поле name должно быть строкой"},
		{notEmpty, "Поле name не может быть пустым"},
	}},
	{field: "imageUrl", optional: true, checks: []check{
		{isString, "Поле imageUrl должно быть строкой"},
		{isURL, "Поле imageUrl должно быть URL адресом"},
	}},
	{field: "price", checks: []check{
		{isPositive, "Поле price должно быть больше 0"},
		{isInt, "Поле price должно быть целым числом"},
		{isNumber, "Поле price должно быть числом"},
		{notEmpty, "Поле price не может быть пустым"},
	}},
	{field: "description", checks: []check{
		{minLength(5), "Поле description должно содержать не менее 5 символов"},
		{isString, "Поле description должно быть строкой"},
		{notEmpty, "Поле description не может быть пустым"},
	}},
	{field: "location", checks: []check{
		{isLocation, "Поле location должно быть одним из значений: MSK, SPB"},
		{notEmpty, "Поле location не может быть пустым"},
	}},
	{field: "published", checks: []check{
		{isBool, "Поле published должно быть булевым значением"},
		{notEmpty, "Поле published не может быть пустым"},
	}},
	{field: "genreId", checks: []check{
		{isPositive, "Поле genreId должно быть больше 0"},
		{isInt, "Поле genreId должно быть целым числом"},
		{isNumber, "Поле genreId должно быть числом"},
		{notEmpty, "Поле genreId не может быть пустым"},
	}},
}

// validateMovie applies movieRules to raw. With partial set only the fields
// present in raw are checked. A missing or null required field fails every check.
func validateMovie(raw map[string]any, partial bool) error {
	var msgs []string
	for _, rule := range movieRules {
		v, present := raw[rule.field]
		if !present && (partial || rule.optional) {
			continue
		}
		if v == nil {
			if rule.optional {
				continue
			}
			for _, c := range rule.checks {
				msgs = append(msgs, c.msg)
			}
			continue
		}
		for _, c := range rule.checks {
			if !c.ok(v) {
				msgs = append(msgs, c.msg)
			}
		}
	}
	return domain.NewValidationError(msgs)
}

func minLength(n int) func(any) bool {
	return func(v any) bool {
		s, ok := v.(string)
		return ok && utf8.RuneCountInString(s) >= n
	}
}

func isString(v any) bool {
	_, ok := v.(string)
	return ok
}

func notEmpty(v any) bool {
	return v != nil && v != ""
}

func isURL(v any) bool {
	s, ok := v.(string)
	return ok && urlValidator.Var(s, "url") == nil
}

func isNumber(v any) bool {
	n, ok := v.(json.Number)
	if !ok {
		return false
	}
	_, err := n.Float64()
	return err == nil
}

func isInt(v any) bool {
	_, ok := intValue(v)
	return ok
}

func isPositive(v any) bool {
	n, ok := v.(json.Number)
	if !ok {
		return false
	}
	f, err := n.Float64()
	return err == nil && f > 0
}

func isBool(v any) bool {
	_, ok := v.(bool)
	return ok
}

func isLocation(v any) bool {
	s, ok := v.(string)
	return ok && domain.Location(s).Valid()
}

// intValue accepts whole json.Numbers, including forms like 2.0.
func intValue(v any) (int, bool) {
	n, ok := v.(json.Number)
	if !ok {
		return 0, false
	}
	if i, err := n.Int64(); err == nil {
		return int(i), true
	}
	f, err := n.Float64()
	if err != nil || f != math.Trunc(f) || math.Abs(f) > math.MaxInt32 {
		return 0, false
	}
	return int(f), true
}

// decodeObject reads a JSON object body keeping numbers as json.Number.
// An empty body decodes to an empty object.
func decodeObject(body io.Reader) (map[string]any, error) {
	data, err := io.ReadAll(body)
	if err != nil {
		return nil, err
	}
	raw := map[string]any{}
	if len(bytes.TrimSpace(data)) == 0 {
		return raw, nil
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, errors.New("body is not an object")
	}
	return raw, nil
}

// --- Query rules ---

// parseMovieFilter reads the GET /movies query. Parameters are checked in the
// order pageSize, page, minPrice, maxPrice, locations, published, genreId,
// createdAt, and every failure is reported.
func parseMovieFilter(q url.Values) (domain.MovieFilter, error) {
	published := true
	f := domain.MovieFilter{
		Page:      1,
		PageSize:  domain.DefaultPageSize,
		Published: &published,
	}
	var msgs []string

	if raw, ok := lookup(q, "pageSize"); ok {
		n, err := strconv.Atoi(raw)
		switch {
		case err != nil:
			msgs = append(msgs, "Поле pageSize должно быть целым числом")
		case n < 1:
			msgs = append(msgs, "Поле pageSize имеет минимальную величину 1")
		case n > domain.MaxPageSize:
			msgs = append(msgs, "Поле pageSize имеет максимальную величину 20")
		default:
			f.PageSize = n
		}
	}
	msgs = positiveParam(q, "page", &f.Page, msgs)
	msgs = positiveParam(q, "minPrice", &f.MinPrice, msgs)
	msgs = positiveParam(q, "maxPrice", &f.MaxPrice, msgs)

	if vals := q["locations"]; len(vals) > 0 {
		locs, ok := parseLocations(vals)
		if !ok {
			msgs = append(msgs, domain.MsgLocationsEnum)
		}
		f.Locations = locs
	}

	if raw, ok := lookup(q, "published"); ok {
		b, err := strconv.ParseBool(raw)
		if err != nil || (raw != "true" && raw != "false") {
			msgs = append(msgs, "Поле published должно быть булевым значением")
		} else {
			f.Published = &b
		}
	}
	msgs = positiveParam(q, "genreId", &f.GenreID, msgs)

	if raw, ok := lookup(q, "createdAt"); ok {
		switch raw {
		case "asc":
			f.SortAsc = true
		case "desc":
		default:
			msgs = append(msgs, "Поле createdAt должно быть одним из значений: asc, desc")
		}
	}

	if err := domain.NewValidationError(msgs); err != nil {
		return domain.MovieFilter{}, err
	}
	return f, nil
}

// parseLocations accepts repeated and comma-separated values alike.
func parseLocations(vals []string) ([]domain.Location, bool) {
	var locs []domain.Location
	for _, v := range vals {
		for _, part := range strings.Split(v, ",") {
			loc := domain.Location(strings.TrimSpace(part))
			if !loc.Valid() {
				return nil, false
			}
			locs = append(locs, loc)
		}
	}
	return locs, true
}

func lookup(q url.Values, key string) (string, bool) {
	if !q.Has(key) {
		return "", false
	}
	return q.Get(key), true
}

func positiveParam(q url.Values, key string, dst *int, msgs []string) []string {
	raw, ok := lookup(q, key)
	if !ok {
		return msgs
	}
	n, err := strconv.Atoi(raw)
	switch {
	case err != nil:
		return append(msgs, "Поле "+key+" должно быть целым числом")
	case n < 1:
		return append(msgs, "Поле "+key+" имеет минимальную величину 1")
	}
	*dst = n
	return msgs
}

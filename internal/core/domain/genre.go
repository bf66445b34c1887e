package domain

// Genre is a movie category. The catalog is fixed.
type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

var Genres = []Genre{
	{ID: 1, Name: "Драма"},
	{ID: 2, Name: "Комедия"},
	{ID: 3, Name: "Боевик"},
	{ID: 4, Name: "Триллер"},
	{ID: 5, Name: "Фантастика"},
	{ID: 6, Name: "Мультфильм"},
	{ID: 7, Name: "Документальный"},
}

// GenreByID looks a genre up in the fixed catalog.
func GenreByID(id int) (Genre, error) {
	for _, g := range Genres {
		if g.ID == id {
			return g, nil
		}
	}
	return Genre{}, ErrGenreNotFound
}

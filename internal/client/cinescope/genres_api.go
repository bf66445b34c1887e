package cinescope

import (
	"context"
	"net/http"
	"strconv"

	"github.com/mshlentov/cinescope/internal/client/requester"
)

const genresEndpoint = "/genres"

type GenresAPI struct {
	r *requester.Requester
}

func NewGenresAPI(r *requester.Requester) *GenresAPI {
	return &GenresAPI{r: r}
}

func (g *GenresAPI) List(ctx context.Context, expect ...int) (*requester.Response, error) {
	return g.r.Send(ctx, requester.Request{
		Method:         http.MethodGet,
		Endpoint:       genresEndpoint,
		ExpectedStatus: expectOr(http.StatusOK, expect),
	})
}

func (g *GenresAPI) GetByID(ctx context.Context, id int, expect ...int) (*requester.Response, error) {
	return g.r.Send(ctx, requester.Request{
		Method:         http.MethodGet,
		Endpoint:       genresEndpoint + "/" + strconv.Itoa(id),
		ExpectedStatus: expectOr(http.StatusOK, expect),
	})
}

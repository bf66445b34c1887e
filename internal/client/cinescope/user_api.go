package cinescope

import (
	"context"
	"net/http"
	"net/url"

	"github.com/mshlentov/cinescope/internal/client/requester"
)

const userEndpoint = "/user"

// UserAPI manages accounts on the auth service.
type UserAPI struct {
	r *requester.Requester
}

func NewUserAPI(r *requester.Requester) *UserAPI {
	return &UserAPI{r: r}
}

// Create adds an account on behalf of a privileged caller. Expected status defaults to 201.
func (u *UserAPI) Create(ctx context.Context, user CreateUserRequest, expect ...int) (*requester.Response, error) {
	return u.r.Send(ctx, requester.Request{
		Method:         http.MethodPost,
		Endpoint:       userEndpoint,
		Body:           user,
		ExpectedStatus: expectOr(http.StatusCreated, expect),
	})
}

// Get looks an account up by id or email. Expected status defaults to 200.
func (u *UserAPI) Get(ctx context.Context, locator string, expect ...int) (*requester.Response, error) {
	return u.r.Send(ctx, requester.Request{
		Method:         http.MethodGet,
		Endpoint:       userEndpoint + "/" + url.PathEscape(locator),
		ExpectedStatus: expectOr(http.StatusOK, expect),
	})
}

// Delete removes an account. Expected status defaults to 200.
func (u *UserAPI) Delete(ctx context.Context, id string, expect ...int) (*requester.Response, error) {
	return u.r.Send(ctx, requester.Request{
		Method:         http.MethodDelete,
		Endpoint:       userEndpoint + "/" + url.PathEscape(id),
		ExpectedStatus: expectOr(http.StatusOK, expect),
	})
}

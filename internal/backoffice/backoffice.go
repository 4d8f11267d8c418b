package backoffice

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"pawnbook/internal/api"
)

const basePath = "/api/v1"

// Services bundles the typed wrappers sharing one authenticated client.
type Services struct {
	Clients  *ClientsService
	Products *ProductsService
	Orders   *OrdersService
	Pawns    *PawnsService
}

func New(c *api.Client) *Services {
	return &Services{
		Clients:  &ClientsService{api: c},
		Products: &ProductsService{api: c},
		Orders:   &OrdersService{api: c},
		Pawns:    &PawnsService{api: c},
	}
}

func list[T any](ctx context.Context, c *api.Client, resource string, p ListParams) (List[T], error) {
	var out List[T]
	err := c.Do(ctx, &api.Request{
		Method: http.MethodGet,
		Path:   basePath + "/" + resource,
		Query:  p.values(),
	}, &out)
	return out, err
}

func get[T any](ctx context.Context, c *api.Client, resource string, id int64) (T, error) {
	var out T
	err := c.Do(ctx, &api.Request{
		Method: http.MethodGet,
		Path:   itemPath(resource, id),
	}, &out)
	return out, err
}

func create[T any](ctx context.Context, c *api.Client, resource string, in T) (T, error) {
	var out T
	err := c.Do(ctx, &api.Request{
		Method: http.MethodPost,
		Path:   basePath + "/" + resource,
		Body:   in,
	}, &out)
	return out, err
}

func update[T any](ctx context.Context, c *api.Client, resource string, id int64, in T) (T, error) {
	var out T
	err := c.Do(ctx, &api.Request{
		Method: http.MethodPut,
		Path:   itemPath(resource, id),
		Body:   in,
	}, &out)
	return out, err
}

func remove(ctx context.Context, c *api.Client, resource string, id int64) error {
	return c.Do(ctx, &api.Request{
		Method: http.MethodDelete,
		Path:   itemPath(resource, id),
	}, nil)
}

func itemPath(resource string, id int64) string {
	return fmt.Sprintf("%s/%s/%s", basePath, resource, strconv.FormatInt(id, 10))
}

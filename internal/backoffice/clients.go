package backoffice

import (
	"context"

	"pawnbook/internal/api"
)

type ClientsService struct {
	api *api.Client
}

func (s *ClientsService) List(ctx context.Context, p ListParams) (List[Client], error) {
	return list[Client](ctx, s.api, "clients", p)
}

func (s *ClientsService) Get(ctx context.Context, id int64) (Client, error) {
	return get[Client](ctx, s.api, "clients", id)
}

func (s *ClientsService) Create(ctx context.Context, c Client) (Client, error) {
	return create(ctx, s.api, "clients", c)
}

func (s *ClientsService) Update(ctx context.Context, c Client) (Client, error) {
	return update(ctx, s.api, "clients", c.ID, c)
}

func (s *ClientsService) Delete(ctx context.Context, id int64) error {
	return remove(ctx, s.api, "clients", id)
}

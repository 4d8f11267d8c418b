package backoffice

import (
	"context"

	"pawnbook/internal/api"
)

type OrdersService struct {
	api *api.Client
}

func (s *OrdersService) List(ctx context.Context, p ListParams) (List[Order], error) {
	return list[Order](ctx, s.api, "orders", p)
}

func (s *OrdersService) Get(ctx context.Context, id int64) (Order, error) {
	return get[Order](ctx, s.api, "orders", id)
}

func (s *OrdersService) Create(ctx context.Context, o Order) (Order, error) {
	return create(ctx, s.api, "orders", o)
}

func (s *OrdersService) Delete(ctx context.Context, id int64) error {
	return remove(ctx, s.api, "orders", id)
}

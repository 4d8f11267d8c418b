package backoffice

import (
	"context"

	"pawnbook/internal/api"
)

type ProductsService struct {
	api *api.Client
}

func (s *ProductsService) List(ctx context.Context, p ListParams) (List[Product], error) {
	return list[Product](ctx, s.api, "products", p)
}

func (s *ProductsService) Get(ctx context.Context, id int64) (Product, error) {
	return get[Product](ctx, s.api, "products", id)
}

func (s *ProductsService) Create(ctx context.Context, p Product) (Product, error) {
	return create(ctx, s.api, "products", p)
}

func (s *ProductsService) Update(ctx context.Context, p Product) (Product, error) {
	return update(ctx, s.api, "products", p.ID, p)
}

func (s *ProductsService) Delete(ctx context.Context, id int64) error {
	return remove(ctx, s.api, "products", id)
}

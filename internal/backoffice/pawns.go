package backoffice

import (
	"context"

	"pawnbook/internal/api"
)

type PawnsService struct {
	api *api.Client
}

func (s *PawnsService) List(ctx context.Context, p ListParams) (List[Pawn], error) {
	return list[Pawn](ctx, s.api, "pawns", p)
}

func (s *PawnsService) Get(ctx context.Context, id int64) (Pawn, error) {
	return get[Pawn](ctx, s.api, "pawns", id)
}

func (s *PawnsService) Create(ctx context.Context, p Pawn) (Pawn, error) {
	return create(ctx, s.api, "pawns", p)
}

func (s *PawnsService) Delete(ctx context.Context, id int64) error {
	return remove(ctx, s.api, "pawns", id)
}

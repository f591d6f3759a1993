package stations

import (
	"context"
	"errors"

	"github.com/Domenick1991/metroticket/internal/domain"
)

var ErrStationNotFound = errors.New("station not found")

type StationUseCase interface {
	List(ctx context.Context) ([]domain.Station, error)
	GetByID(ctx context.Context, id string) (*domain.Station, error)
}

type Catalog interface {
	Stations() []domain.Station
	FindByID(id string) (domain.Station, bool)
}

type StationService struct {
	catalog Catalog
}

func NewStationService(catalog Catalog) *StationService {
	return &StationService{catalog: catalog}
}

func (s *StationService) List(ctx context.Context) ([]domain.Station, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.catalog.Stations(), nil
}

func (s *StationService) GetByID(ctx context.Context, id string) (*domain.Station, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	station, ok := s.catalog.FindByID(id)
	if !ok {
		return nil, ErrStationNotFound
	}
	return &station, nil
}

var _ StationUseCase = (*StationService)(nil)

package services

import (
	"context"
	"designer-finder-service/internal/domain"
	"designer-finder-service/internal/platform/logger"
	"designer-finder-service/internal/ports"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
)

type RegisterRequest struct {
	Name           string
	Address        string
	DisplayAddress string
	// Coords, when set, are stored as-is and the address is not resolved.
	Coords *domain.ResolvedLocation
}

// DesignerService manages the registered designers.
type DesignerService struct {
	store          ports.DesignerStore
	resolver       ports.AddressResolver
	geocodeTimeout time.Duration
}

func NewDesignerService(
	store ports.DesignerStore,
	resolver ports.AddressResolver,
	geocodeTimeout time.Duration,
) *DesignerService {
	return &DesignerService{store: store, resolver: resolver, geocodeTimeout: geocodeTimeout}
}

// Register resolves the address (unless coordinates were supplied) and
// persists a new designer.
func (s *DesignerService) Register(ctx context.Context, req RegisterRequest) (domain.Designer, error) {
	name := strings.TrimSpace(req.Name)
	address := strings.TrimSpace(req.Address)
	if name == "" || address == "" {
		return domain.Designer{}, fmt.Errorf("register designer: name and address are required: %w", domain.ErrEmptyInput)
	}

	var loc domain.ResolvedLocation
	if req.Coords != nil {
		loc = *req.Coords
	} else {
		if s.resolver == nil {
			return domain.Designer{}, fmt.Errorf("register designer: %w: no resolver configured", domain.ErrAddressNotFound)
		}
		resolved, err := resolveWithin(ctx, s.resolver, address, s.geocodeTimeout)
		if err != nil {
			return domain.Designer{}, fmt.Errorf("register designer: %w: %w", domain.ErrAddressNotFound, err)
		}
		loc = resolved
	}

	display := strings.TrimSpace(req.DisplayAddress)
	if display == "" {
		display = loc.DisplayName
	}

	d, err := s.store.Add(ctx, domain.NewDesigner{
		Name:           name,
		Address:        address,
		DisplayAddress: display,
		Coords:         loc,
	})
	if err != nil {
		return domain.Designer{}, fmt.Errorf("register designer: %w", asStoreFailure(err))
	}

	logger.FromContext(ctx).Info("designer registered",
		zap.String("designer_id", d.ID),
		zap.String("country", d.Coords.CountryCode),
	)
	return d, nil
}

func (s *DesignerService) List(ctx context.Context) ([]domain.Designer, error) {
	designers, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list designers: %w", asStoreFailure(err))
	}
	return designers, nil
}

func (s *DesignerService) Remove(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return fmt.Errorf("remove designer: id is blank: %w", domain.ErrEmptyInput)
	}

	if err := s.store.Remove(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("remove designer: %w", err)
		}
		return fmt.Errorf("remove designer: %w", asStoreFailure(err))
	}

	logger.FromContext(ctx).Info("designer removed", zap.String("designer_id", id))
	return nil
}

func asStoreFailure(err error) error {
	if errors.Is(err, domain.ErrStoreFailure) {
		return err
	}
	return fmt.Errorf("%w: %w", domain.ErrStoreFailure, err)
}

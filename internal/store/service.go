package store

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"storevista-be/internal/geo"
	"storevista-be/internal/logger"
	"storevista-be/internal/utils"

	"go.uber.org/zap"
)

type Service interface {
	Create(ctx context.Context, ownerID int64, input CreateInput) (*Store, error)
	Update(ctx context.Context, ownerID int64, slug string, input UpdateInput) (*Store, error)
	GetBySlug(ctx context.Context, slug string) (*Store, error)
	Mine(ctx context.Context, ownerID int64) (*Store, error)
	List(ctx context.Context, lat, lng, radius string) ([]View, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

var hexColorRegex = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

func (s *service) Create(ctx context.Context, ownerID int64, input CreateInput) (*Store, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "CreateStore"),
		zap.Int64("owner_id", ownerID),
	)

	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, &ValidationError{Message: "store name is required"}
	}

	category, err := ParseCategory(input.Category)
	if err != nil {
		return nil, err
	}

	slug := utils.Slugify(input.Slug)
	if slug == "" {
		slug = utils.Slugify(name)
	}
	if slug == "" {
		return nil, &ValidationError{Message: "store name must contain letters or digits"}
	}

	if err := validateLocation(input.Latitude, input.Longitude); err != nil {
		return nil, err
	}

	color := strings.TrimSpace(input.PrimaryColor)
	if color == "" {
		color = DefaultPrimaryColor
	}
	if !hexColorRegex.MatchString(color) {
		return nil, &ValidationError{Message: fmt.Sprintf("invalid primary color %q", color)}
	}

	methods, accounts, err := validatePayment(input.PaymentMethods, input.PaymentAccounts)
	if err != nil {
		return nil, err
	}

	st := &Store{
		OwnerID:         ownerID,
		Name:            name,
		Slug:            slug,
		Category:        category,
		Address:         strings.TrimSpace(input.Address),
		Latitude:        input.Latitude,
		Longitude:       input.Longitude,
		PrimaryColor:    color,
		IsActive:        true,
		PaymentMethods:  methods,
		PaymentAccounts: accounts,
	}

	if err := s.repo.Create(ctx, st); err != nil {
		log.Warn("create store failed", zap.String("slug", slug), zap.Error(err))
		return nil, err
	}

	log.Info("store created", zap.Int64("store_id", st.ID), zap.String("slug", st.Slug))
	return st, nil
}

func (s *service) Update(ctx context.Context, ownerID int64, slug string, input UpdateInput) (*Store, error) {
	st, err := s.repo.GetBySlugAny(ctx, slug)
	if err != nil {
		return nil, err
	}
	if st.OwnerID != ownerID {
		if !st.IsActive {
			return nil, ErrStoreNotFound
		}
		return nil, ErrForbidden
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, &ValidationError{Message: "store name is required"}
		}
		st.Name = name
	}
	if input.Category != nil {
		if st.Category, err = ParseCategory(*input.Category); err != nil {
			return nil, err
		}
	}
	if input.Address != nil {
		st.Address = strings.TrimSpace(*input.Address)
	}
	if input.ClearLocation {
		st.Latitude, st.Longitude = nil, nil
	} else if input.Latitude != nil || input.Longitude != nil {
		if err := validateLocation(input.Latitude, input.Longitude); err != nil {
			return nil, err
		}
		st.Latitude, st.Longitude = input.Latitude, input.Longitude
	}
	if input.PrimaryColor != nil {
		if !hexColorRegex.MatchString(*input.PrimaryColor) {
			return nil, &ValidationError{Message: fmt.Sprintf("invalid primary color %q", *input.PrimaryColor)}
		}
		st.PrimaryColor = *input.PrimaryColor
	}
	if input.IsActive != nil {
		st.IsActive = *input.IsActive
	}
	if input.PaymentMethods != nil || input.PaymentAccounts != nil {
		raw := make([]string, 0, len(st.PaymentMethods))
		for _, m := range st.PaymentMethods {
			raw = append(raw, string(m))
		}
		accounts := st.PaymentAccounts
		if input.PaymentMethods != nil {
			raw = *input.PaymentMethods
		}
		if input.PaymentAccounts != nil {
			accounts = *input.PaymentAccounts
		}
		if st.PaymentMethods, st.PaymentAccounts, err = validatePayment(raw, accounts); err != nil {
			return nil, err
		}
	}

	if err := s.repo.Update(ctx, st); err != nil {
		return nil, err
	}

	logger.FromCtx(ctx).Info("store updated",
		zap.Int64("store_id", st.ID),
		zap.Int64("owner_id", ownerID),
	)
	return st, nil
}

func (s *service) GetBySlug(ctx context.Context, slug string) (*Store, error) {
	return s.repo.GetBySlug(ctx, slug)
}

func (s *service) Mine(ctx context.Context, ownerID int64) (*Store, error) {
	return s.repo.GetByOwner(ctx, ownerID)
}

// List returns the active stores. When lat and lng parse, only stores within
// the radius are returned, nearest first, with their distance attached.
func (s *service) List(ctx context.Context, lat, lng, radius string) ([]View, error) {
	stores, err := s.repo.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	q, ok := geo.ParseQuery(lat, lng, radius)
	if !ok {
		views := make([]View, 0, len(stores))
		for _, st := range stores {
			views = append(views, View{Store: st})
		}
		return views, nil
	}

	ranked := geo.Rank(stores, q)
	views := make([]View, 0, len(ranked))
	for _, r := range ranked {
		d := r.DistanceKm
		views = append(views, View{Store: r.Item, Distance: &d})
	}

	logger.FromCtx(ctx).Debug("stores ranked by distance",
		zap.Float64("lat", q.Lat),
		zap.Float64("lng", q.Lng),
		zap.Float64("radius_km", q.RadiusKm),
		zap.Int("matched", len(views)),
		zap.Int("active", len(stores)),
	)

	return views, nil
}

func validateLocation(lat, lng *float64) error {
	if (lat == nil) != (lng == nil) {
		return &ValidationError{Message: "latitude and longitude must be provided together"}
	}
	if lat == nil {
		return nil
	}
	if *lat < -90 || *lat > 90 {
		return &ValidationError{Message: "latitude must be between -90 and 90"}
	}
	if *lng < -180 || *lng > 180 {
		return &ValidationError{Message: "longitude must be between -180 and 180"}
	}
	return nil
}

// validatePayment parses the declared methods and requires an account for
// each. Accounts for undeclared methods are dropped.
func validatePayment(raw []string, accounts map[string]string) ([]PaymentMethod, map[string]string, error) {
	methods := make([]PaymentMethod, 0, len(raw))
	kept := make(map[string]string, len(raw))

	for _, r := range raw {
		m, err := ParsePaymentMethod(r)
		if err != nil {
			return nil, nil, err
		}
		if _, dup := kept[string(m)]; dup {
			continue
		}

		acct := strings.TrimSpace(accounts[string(m)])
		if acct == "" {
			return nil, nil, &ValidationError{
				Message: fmt.Sprintf("payment method %s requires an account", m),
			}
		}

		methods = append(methods, m)
		kept[string(m)] = acct
	}

	return methods, kept, nil
}

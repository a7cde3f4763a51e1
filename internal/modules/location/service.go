// README: Location service: agent allow-lists, catalog CRUD, and the canonicalizing authorizer.
package location

import (
	"context"
	"errors"
	"log"
	"strings"
	"unicode/utf8"

	"mawad/internal/arabic"
)

var (
	ErrNotFound        = errors.New("location not found")
	ErrDuplicate       = errors.New("location already exists")
	ErrAlreadyAssigned = errors.New("location already assigned to agent")
	ErrBadName         = errors.New("location name must be 1-100 characters")
)

// DefaultNames seeds a fresh deployment's catalog.
var DefaultNames = []string{
	"عمان", "العراق", "مصر قرعة", "مصر مميز VIP", "مصر تضامن إقتصادي",
	"مصر تضامن 5 nuggets", "مصر سياحي إقتصادي", "مصر سياحي مميز",
	"مصر سياحي شركات VIP", "نيجيرا", "مصر بري", "روسيا", "بنغلادش",
	"اندونيسيا", "تشاد", "فلسطين", "مشروع صيانة اعمال جنوب اسيا",
	"ترافيل كورنر", "الراجحي 5 نجوم", "مشروع كدانه دورات مياه مزدلفة",
}

// Authorize matches a candidate delivery location against an ordered
// allow-list. Comparison is case- and letter-variant-insensitive; on the
// first match the allow-list's original spelling is returned, never the
// candidate's. An empty list authorizes nothing.
func Authorize(candidate string, allowed []string) (string, bool) {
	want := strings.ToLower(arabic.Normalize(candidate))
	for _, name := range allowed {
		if strings.ToLower(arabic.Normalize(name)) == want {
			return name, true
		}
	}
	return "", false
}

type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

// AllowedNames returns the agent's allow-list as ordered names. Fetched
// fresh every chat turn so admin reassignment takes effect immediately.
func (s *Service) AllowedNames(ctx context.Context, agentID int64) ([]string, error) {
	locs, err := s.store.ListByAgent(ctx, agentID)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(locs))
	for _, l := range locs {
		names = append(names, l.Name)
	}
	return names, nil
}

func (s *Service) ListAll(ctx context.Context) ([]Location, error) {
	return s.store.ListAll(ctx)
}

func (s *Service) ListByAgent(ctx context.Context, agentID int64) ([]Location, error) {
	return s.store.ListByAgent(ctx, agentID)
}

func (s *Service) Create(ctx context.Context, name string) (*Location, error) {
	name = strings.TrimSpace(name)
	if name == "" || utf8.RuneCountInString(name) > 100 {
		return nil, ErrBadName
	}
	return s.store.Create(ctx, name)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.store.Delete(ctx, id)
}

func (s *Service) SetAgentLocations(ctx context.Context, agentID int64, locationIDs []int64) error {
	return s.store.SetAgentLocations(ctx, agentID, locationIDs)
}

func (s *Service) AddAgentLocation(ctx context.Context, agentID, locationID int64) error {
	return s.store.AddAgentLocation(ctx, agentID, locationID)
}

func (s *Service) RemoveAgentLocation(ctx context.Context, agentID, locationID int64) error {
	return s.store.RemoveAgentLocation(ctx, agentID, locationID)
}

// SeedDefaults fills an empty catalog with the stock location list.
func (s *Service) SeedDefaults(ctx context.Context) error {
	n, err := s.store.Count(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	for _, name := range DefaultNames {
		if _, err := s.store.Create(ctx, name); err != nil && err != ErrDuplicate {
			return err
		}
	}
	log.Printf("location: seeded %d default locations", len(DefaultNames))
	return nil
}

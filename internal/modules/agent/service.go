// README: Agent service: access-code auth (bcrypt + JWT), account CRUD, admin seeding.
package agent

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"
	"unicode/utf8"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrNotFound    = errors.New("agent not found")
	ErrInvalidCode = errors.New("invalid access code")
	ErrCodeLength  = errors.New("access code must be exactly 8 characters")
	ErrCodeTaken   = errors.New("access code already in use")
	ErrNameTooLong = errors.New("name exceeds 100 characters")
	ErrPhoneFormat = errors.New("phone must be 10 digits starting with 05")
	ErrLastAdmin   = errors.New("cannot delete the only admin")
)

const tokenTTL = 24 * time.Hour

type Service struct {
	store     Store
	jwtSecret []byte
}

func NewService(store Store, jwtSecret string) *Service {
	return &Service{store: store, jwtSecret: []byte(jwtSecret)}
}

// Login verifies an access code and issues a session token. The code is the
// only credential, so verification scans all accounts and bcrypt-compares
// each hash; account volume is small by design.
func (s *Service) Login(ctx context.Context, code string) (string, *Agent, error) {
	a, err := s.findByCode(ctx, code)
	if err != nil {
		return "", nil, err
	}
	if a == nil {
		return "", nil, ErrInvalidCode
	}
	token, err := s.issueToken(a)
	if err != nil {
		return "", nil, err
	}
	return token, a, nil
}

func (s *Service) issueToken(a *Agent) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"agent_id": a.ID,
		"is_admin": a.IsAdmin,
		"exp":      time.Now().Add(tokenTTL).Unix(),
	})
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*Agent, error) {
	return s.store.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]Agent, error) {
	return s.store.List(ctx)
}

func (s *Service) Create(ctx context.Context, code, name, phone string) (*Agent, error) {
	if err := validateCode(code); err != nil {
		return nil, err
	}
	if err := validateName(name); err != nil {
		return nil, err
	}
	if err := validatePhone(phone); err != nil {
		return nil, err
	}
	existing, err := s.findByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrCodeTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	a := &Agent{CodeHash: string(hash), Name: name, Phone: phone}
	if err := s.store.Create(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *Service) UpdateName(ctx context.Context, id int64, name string) error {
	if err := validateName(name); err != nil {
		return err
	}
	return s.update(ctx, id, func(a *Agent) { a.Name = name })
}

func (s *Service) UpdatePhone(ctx context.Context, id int64, phone string) error {
	if err := validatePhone(phone); err != nil {
		return err
	}
	return s.update(ctx, id, func(a *Agent) { a.Phone = phone })
}

func (s *Service) UpdateCode(ctx context.Context, id int64, code string) error {
	if err := validateCode(code); err != nil {
		return err
	}
	existing, err := s.findByCode(ctx, code)
	if err != nil {
		return err
	}
	if existing != nil && existing.ID != id {
		return ErrCodeTaken
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.update(ctx, id, func(a *Agent) { a.CodeHash = string(hash) })
}

func (s *Service) update(ctx context.Context, id int64, apply func(*Agent)) error {
	a, err := s.store.GetByID(ctx, id)
	if err != nil {
		return err
	}
	apply(a)
	return s.store.Update(ctx, a)
}

// Delete removes an agent, refusing to remove the last remaining admin.
func (s *Service) Delete(ctx context.Context, id int64) error {
	a, err := s.store.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if a.IsAdmin {
		admins, err := s.store.CountAdmins(ctx)
		if err != nil {
			return err
		}
		if admins <= 1 {
			return ErrLastAdmin
		}
	}
	return s.store.Delete(ctx, id)
}

// EnsureAdmin seeds a default admin account on an empty store so a fresh
// deployment is reachable. The code must be rotated after first login.
func (s *Service) EnsureAdmin(ctx context.Context, code, name, phone string) error {
	n, err := s.store.Count(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	a := &Agent{CodeHash: string(hash), Name: name, Phone: phone, IsAdmin: true}
	if err := s.store.Create(ctx, a); err != nil {
		return err
	}
	log.Printf("agent: seeded default admin (id=%d); rotate its access code", a.ID)
	return nil
}

func (s *Service) findByCode(ctx context.Context, code string) (*Agent, error) {
	agents, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range agents {
		if bcrypt.CompareHashAndPassword([]byte(agents[i].CodeHash), []byte(code)) == nil {
			return &agents[i], nil
		}
	}
	return nil, nil
}

func validateCode(code string) error {
	if utf8.RuneCountInString(code) != 8 {
		return ErrCodeLength
	}
	return nil
}

func validateName(name string) error {
	if utf8.RuneCountInString(name) > 100 {
		return ErrNameTooLong
	}
	return nil
}

func validatePhone(phone string) error {
	if len(phone) != 10 || phone[0] != '0' || phone[1] != '5' {
		return ErrPhoneFormat
	}
	for _, c := range phone {
		if c < '0' || c > '9' {
			return ErrPhoneFormat
		}
	}
	return nil
}

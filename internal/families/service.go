package families

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/goliatone/go-slug"
	"github.com/google/uuid"

	"github.com/goliatone/go-famhome/internal/identity"
	"github.com/goliatone/go-famhome/internal/logging"
	"github.com/goliatone/go-famhome/pkg/interfaces"
)

// Service exposes family home page management.
type Service interface {
	InitFamily(ctx context.Context, input InitFamilyInput) (*Family, error)
	GetFamily(ctx context.Context, id uuid.UUID) (*Family, error)
	GetFamilyByOwner(ctx context.Context, ownerUID string) (*Family, error)
	ListFamilies(ctx context.Context) ([]*Family, error)

	UpdateHome(ctx context.Context, input UpdateHomeInput) (*Family, error)
	UpdateBodyMarkdown(ctx context.Context, id uuid.UUID, markdown string) (*Family, error)
	ImportHTML(ctx context.Context, id uuid.UUID, html string) (*Family, error)
}

// InitFamilyInput creates the family owned by OwnerUID.
type InitFamilyInput struct {
	OwnerUID string
	Name     string
}

// UpdateHomeInput patches the home page. Nil fields are left unchanged.
type UpdateHomeInput struct {
	ID           uuid.UUID
	Name         *string
	HeaderTitle  *string
	BodyTitle    *string
	BodyMarkdown *string
	Footer       *string
}

var (
	ErrRepositoryRequired = errors.New("families: repository required")
	ErrOwnerRequired      = errors.New("families: owner uid required")
	ErrFamilyIDRequired   = errors.New("families: family id required")
	ErrFamilyNotFound     = errors.New("families: family not found")
	ErrNameRequired       = errors.New("families: name cannot be blank")
	ErrHTMLImport         = errors.New("families: html import failed")
)

// ServiceOption configures service behaviour.
type ServiceOption func(*service)

// WithNow overrides the time source.
func WithNow(now func() time.Time) ServiceOption {
	return func(s *service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithLogger sets the service logger.
func WithLogger(logger interfaces.Logger) ServiceOption {
	return func(s *service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

type service struct {
	repo   FamilyRepository
	now    func() time.Time
	logger interfaces.Logger
}

// NewService constructs a family service.
func NewService(repo FamilyRepository, opts ...ServiceOption) Service {
	if repo == nil {
		panic(ErrRepositoryRequired)
	}
	s := &service{
		repo:   repo,
		now:    time.Now,
		logger: logging.NoOp(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// InitFamily creates the owner's family with the default home page. Calling
// it again for the same owner returns the stored family untouched.
func (s *service) InitFamily(ctx context.Context, input InitFamilyInput) (*Family, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	owner := strings.TrimSpace(input.OwnerUID)
	if owner == "" {
		return nil, ErrOwnerRequired
	}
	id := identity.FamilyUUID(owner)

	existing, err := s.repo.GetByID(ctx, id)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, ErrFamilyNotFound) {
		return nil, err
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		name = defaultFamilyName
	}
	now := s.now().UTC()
	family := &Family{
		ID:           id,
		OwnerUID:     owner,
		Name:         name,
		Slug:         familySlug(name, id),
		HeaderTitle:  defaultHeaderTitle(name),
		BodyTitle:    defaultBodyTitle(name),
		BodyMarkdown: DefaultBodyMarkdown,
		Footer:       defaultFooter,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	created, err := s.repo.Create(ctx, family)
	if err != nil {
		return nil, err
	}
	logging.WithFamilyContext(s.logger.WithContext(ctx), id.String(), owner).Info("families.created", "name", name)
	return created, nil
}

func (s *service) GetFamily(ctx context.Context, id uuid.UUID) (*Family, error) {
	if id == uuid.Nil {
		return nil, ErrFamilyIDRequired
	}
	return s.repo.GetByID(ctx, id)
}

func (s *service) GetFamilyByOwner(ctx context.Context, ownerUID string) (*Family, error) {
	owner := strings.TrimSpace(ownerUID)
	if owner == "" {
		return nil, ErrOwnerRequired
	}
	return s.repo.GetByOwner(ctx, owner)
}

// ListFamilies returns every family ordered by name.
func (s *service) ListFamilies(ctx context.Context) ([]*Family, error) {
	return s.repo.List(ctx)
}

func (s *service) UpdateHome(ctx context.Context, input UpdateHomeInput) (*Family, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if input.ID == uuid.Nil {
		return nil, ErrFamilyIDRequired
	}
	family, err := s.repo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, ErrNameRequired
		}
		family.Name = name
		family.Slug = familySlug(name, family.ID)
	}
	if input.HeaderTitle != nil {
		family.HeaderTitle = strings.TrimSpace(*input.HeaderTitle)
	}
	if input.BodyTitle != nil {
		family.BodyTitle = strings.TrimSpace(*input.BodyTitle)
	}
	if input.BodyMarkdown != nil {
		family.BodyMarkdown = *input.BodyMarkdown
	}
	if input.Footer != nil {
		family.Footer = strings.TrimSpace(*input.Footer)
	}
	family.UpdatedAt = s.now().UTC()

	updated, err := s.repo.Update(ctx, family)
	if err != nil {
		return nil, err
	}
	logging.WithFamilyContext(s.logger.WithContext(ctx), family.ID.String(), family.OwnerUID).
		Info("families.home.updated", "body_bytes", len(family.BodyMarkdown))
	return updated, nil
}

// UpdateBodyMarkdown replaces the home page body. The body is stored as
// written; it is parsed at render time.
func (s *service) UpdateBodyMarkdown(ctx context.Context, id uuid.UUID, markdown string) (*Family, error) {
	return s.UpdateHome(ctx, UpdateHomeInput{ID: id, BodyMarkdown: &markdown})
}

// ImportHTML converts a legacy HTML home page into markdown and stores it
// as the body.
func (s *service) ImportHTML(ctx context.Context, id uuid.UUID, html string) (*Family, error) {
	markdown, err := htmltomarkdown.ConvertString(html)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrHTMLImport, err)
	}
	return s.UpdateBodyMarkdown(ctx, id, strings.TrimSpace(markdown)+"\n")
}

// familySlug falls back to an id based slug when the name has no
// slug-able characters.
func familySlug(name string, id uuid.UUID) string {
	if value, err := slug.Normalize(name); err == nil && value != "" {
		return value
	}
	return "family-" + id.String()[:8]
}

package customizer

import (
	"context"
	"errors"
	"sync"

	"ds-storefront/internal/cart"
	"ds-storefront/internal/catalog"
)

var ErrNoSelection = errors.New("no template selected")

// Picks the modal starts with every time it opens.
const (
	DefaultTier  = catalog.TierLittle
	DefaultColor = "#663300"
	DefaultLogo  = "default"
)

// Selection is the in-progress customization. It is never persisted.
type Selection struct {
	TemplateName string       `json:"templateName"`
	Category     string       `json:"category"`
	Tier         catalog.Tier `json:"packageType"`
	Color        string       `json:"color"`
	Logo         string       `json:"logo"`
}

type Adder interface {
	Add(ctx context.Context, in cart.LineItemInput) (cart.LineItem, error)
}

// Session tracks at most one open selection.
type Session struct {
	mu      sync.Mutex
	current *Selection
}

func NewSession() *Session {
	return &Session{}
}

// Open starts a selection for a template, resetting picks to the defaults.
func (s *Session) Open(templateName, category string) Selection {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.current = &Selection{
		TemplateName: templateName,
		Category:     category,
		Tier:         DefaultTier,
		Color:        DefaultColor,
		Logo:         DefaultLogo,
	}
	return *s.current
}

func (s *Session) Current() (Selection, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return Selection{}, false
	}
	return *s.current, true
}

func (s *Session) SetTier(t catalog.Tier) error {
	return s.update(func(sel *Selection) { sel.Tier = t })
}

func (s *Session) SetColor(color string) error {
	return s.update(func(sel *Selection) { sel.Color = color })
}

func (s *Session) SetLogo(logo string) error {
	return s.update(func(sel *Selection) { sel.Logo = logo })
}

func (s *Session) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = nil
}

// Commit adds the selection to the cart and closes the session. The session
// is closed even when the cart reports a storage error, because the item is
// already in the cart at that point.
func (s *Session) Commit(ctx context.Context, adder Adder) (cart.LineItem, error) {
	s.mu.Lock()
	sel := s.current
	s.current = nil
	s.mu.Unlock()

	if sel == nil {
		return cart.LineItem{}, ErrNoSelection
	}

	return adder.Add(ctx, cart.LineItemInput{
		Template: sel.TemplateName,
		Category: sel.Category,
		Tier:     sel.Tier,
		Color:    sel.Color,
		Logo:     sel.Logo,
	})
}

func (s *Session) update(fn func(*Selection)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return ErrNoSelection
	}
	fn(s.current)
	return nil
}

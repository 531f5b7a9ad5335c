package order

import (
	"context"
	"sync"
	"time"

	"ds-storefront/internal/cart"
	"ds-storefront/internal/handoff"
	"ds-storefront/internal/logger"
	"ds-storefront/internal/payment"
	"ds-storefront/internal/utils"

	"go.uber.org/zap"
)

// CartStore is the part of the cart the builder reads and clears.
type CartStore interface {
	Snapshot() cart.Snapshot
	RemoveItems(ctx context.Context, ids []int64) (int, error)
}

type Options struct {
	Recipient string
	Bank      payment.BankDetails
	// OnSubmitted runs last, after the cart is cleared, to show confirmation.
	OnSubmitted func(ctx context.Context, msg *Message)
	Now         func() time.Time
}

type Builder struct {
	cart     CartStore
	launcher handoff.Launcher
	opts     Options

	mu    sync.Mutex
	state State
}

func NewBuilder(c CartStore, launcher handoff.Launcher, opts Options) *Builder {
	if opts.Recipient == "" {
		opts.Recipient = DefaultRecipient
	}
	if opts.Bank == (payment.BankDetails{}) {
		opts.Bank = payment.DefaultBankDetails()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Builder{cart: c, launcher: launcher, opts: opts, state: StateIdle}
}

// State reports how the last checkout attempt ended: Idle before any attempt,
// then Rejected or Submitted. Every attempt starts over from Validating.
func (b *Builder) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

// BuildAndSubmit validates, formats and hands off the order, then removes the
// ordered items from the cart. Nothing happens to the cart or the launcher when validation fails.
func (b *Builder) BuildAndSubmit(ctx context.Context, c Contact) (*Message, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	log := logger.FromCtx(ctx)
	b.state = StateValidating

	snap := b.cart.Snapshot()
	if err := validate(snap, c); err != nil {
		b.state = StateRejected
		log.Info("checkout rejected", zap.Error(err))
		return nil, err
	}

	now := b.opts.Now()
	text := FormatText(c, snap.Items, snap.Total, b.opts.Bank)
	msg := &Message{
		Reference:   utils.GenerateOrderReference(now),
		Contact:     c,
		Items:       snap.Items,
		Subtotal:    snap.Subtotal,
		Tax:         snap.Tax,
		Total:       snap.Total,
		Text:        text,
		Link:        BuildLink(b.opts.Recipient, text),
		SubmittedAt: now,
	}

	log = log.With(zap.String("order_ref", msg.Reference))

	// The hand-off is fire-and-forget; a launcher error does not undo the order.
	if err := b.launcher.Open(ctx, msg.Link); err != nil {
		log.Warn("order hand-off failed", zap.Error(err))
	}

	// Only the ordered items leave the cart; anything added during the
	// hand-off stays for the next order.
	ids := make([]int64, len(snap.Items))
	for i, it := range snap.Items {
		ids[i] = it.ID
	}
	if _, err := b.cart.RemoveItems(ctx, ids); err != nil {
		log.Warn("cart cleared in memory only", zap.Error(err))
	}

	b.state = StateSubmitted
	log.Info("order submitted",
		zap.Int("items", len(msg.Items)),
		zap.Int64("total", msg.Total),
	)

	if b.opts.OnSubmitted != nil {
		b.opts.OnSubmitted(ctx, msg)
	}

	return msg, nil
}

func validate(snap cart.Snapshot, c Contact) error {
	if snap.Count == 0 {
		return ErrEmptyCart
	}

	var missing []string
	if c.FullName == "" {
		missing = append(missing, "fullName")
	}
	if c.Email == "" {
		missing = append(missing, "email")
	}
	if c.Phone == "" {
		missing = append(missing, "phone")
	}
	if len(missing) > 0 {
		return &MissingFieldError{Fields: missing}
	}
	return nil
}

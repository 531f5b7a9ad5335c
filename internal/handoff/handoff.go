package handoff

import (
	"context"
	"fmt"

	"ds-storefront/internal/logger"

	"github.com/pkg/browser"
	"go.uber.org/zap"
)

// Launcher opens an outbound deep link. Callers do not wait for the
// receiving app to confirm anything.
type Launcher interface {
	Open(ctx context.Context, link string) error
}

type LauncherFunc func(ctx context.Context, link string) error

func (f LauncherFunc) Open(ctx context.Context, link string) error {
	return f(ctx, link)
}

// Log only records the link, for headless deployments where the page
// itself opens it. The link carries contact details, so it is logged in
// full at debug level only.
type Log struct{}

func (Log) Open(ctx context.Context, link string) error {
	log := logger.FromCtx(ctx)
	log.Info("order hand-off", zap.Int("link_bytes", len(link)))
	log.Debug("order hand-off link", zap.String("link", link))
	return nil
}

// Browser opens the link in the system's default browser.
type Browser struct {
	open func(url string) error
}

func NewBrowser() *Browser {
	return &Browser{open: browser.OpenURL}
}

func (b *Browser) Open(ctx context.Context, link string) error {
	if err := b.open(link); err != nil {
		return fmt.Errorf("open browser: %w", err)
	}
	logger.FromCtx(ctx).Debug("order hand-off opened in browser")
	return nil
}

// New picks a launcher by name; anything but "browser" logs.
func New(kind string) Launcher {
	if kind == "browser" {
		return NewBrowser()
	}
	return Log{}
}

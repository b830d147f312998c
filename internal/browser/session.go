// Filename: internal/browser/session.go
package browser

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/chromedp"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/strobelight/pagemotor/internal/config"
)

// Session owns one browser tab and implements motor.Page over CDP.
// A session is serially reentrant: the engine assumes exclusive use
// for one call chain, and callers multiplexing tasks onto one session
// must serialize externally.
type Session struct {
	id     string
	cfg    config.BrowserConfig
	logger *zap.Logger

	ctx         context.Context
	cancel      context.CancelFunc
	allocCancel context.CancelFunc

	// limiter paces CDP roundtrips so polling loops cannot flood the
	// devtools socket.
	limiter *rate.Limiter
}

// NewSession launches a browser tab ready for navigation.
func NewSession(parent context.Context, cfg config.BrowserConfig, logger *zap.Logger) (*Session, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", cfg.Headless),
		chromedp.Flag("disable-gpu", cfg.Headless),
		chromedp.WindowSize(cfg.WindowWidth, cfg.WindowHeight),
	)
	if cfg.UserAgent != "" {
		opts = append(opts, chromedp.UserAgent(cfg.UserAgent))
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(parent, opts...)
	ctx, cancel := chromedp.NewContext(allocCtx)

	// Start the browser process eagerly so construction fails fast.
	if err := chromedp.Run(ctx); err != nil {
		cancel()
		allocCancel()
		return nil, fmt.Errorf("starting browser: %w", err)
	}

	id := uuid.NewString()
	s := &Session{
		id:          id,
		cfg:         cfg,
		logger:      logger.With(zap.String("session_id", id)),
		ctx:         ctx,
		cancel:      cancel,
		allocCancel: allocCancel,
		limiter:     newLimiter(cfg.ProbeRate),
	}
	s.logger.Debug("browser session started", zap.Bool("headless", cfg.Headless))
	return s, nil
}

func newLimiter(probeRate float64) *rate.Limiter {
	if probeRate <= 0 {
		return rate.NewLimiter(rate.Inf, 1)
	}
	burst := int(probeRate)
	if burst < 1 {
		burst = 1
	}
	return rate.NewLimiter(rate.Limit(probeRate), burst)
}

// ID returns the session's correlation id.
func (s *Session) ID() string {
	return s.id
}

// Navigate loads the URL and waits for the document to become ready.
func (s *Session) Navigate(ctx context.Context, url string) error {
	timeout := s.cfg.NavigationTimeout
	if timeout <= 0 {
		timeout = 90 * time.Second
	}
	navCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	s.logger.Debug("navigating", zap.String("url", url))
	if err := s.run(navCtx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body", chromedp.ByQuery),
	); err != nil {
		return fmt.Errorf("navigating to %s: %w", url, err)
	}
	return nil
}

// Close tears the tab and browser process down.
func (s *Session) Close() {
	s.cancel()
	s.allocCancel()
	s.logger.Debug("browser session closed")
}

// run executes chromedp actions against the session tab while
// honoring the caller's context: cancellation of either context stops
// the run, and the caller's error wins when both fire.
func (s *Session) run(ctx context.Context, actions ...chromedp.Action) error {
	if err := s.limiter.Wait(ctx); err != nil {
		return err
	}

	runCtx, cancel := context.WithCancel(s.ctx)
	defer cancel()
	stop := context.AfterFunc(ctx, cancel)
	defer stop()

	if err := chromedp.Run(runCtx, actions...); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return err
	}
	return nil
}

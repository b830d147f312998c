// -- cmd/click.go --
package cmd

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/strobelight/pagemotor/internal/browser"
	"github.com/strobelight/pagemotor/internal/motor"
	"github.com/strobelight/pagemotor/internal/observability"
)

var (
	clickURL       string
	clickRoles     []string
	verifySelector string
	verifyTimeout  time.Duration
	clickJitter    bool
)

// clickCmd drives one independent engine instance per role. Each role
// gets its own browser session, so the instances exercise the engine's
// per-instance independence rather than sharing a page.
var clickCmd = &cobra.Command{
	Use:   "click",
	Short: "Click one or more semantic roles on a page",
	Example: `  pagemotor click --url https://example.com --role like
  pagemotor click --url https://example.com --role like --role bookmark --verify '[data-testid="toast"]'`,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := observability.GetLogger()

		g, ctx := errgroup.WithContext(cmd.Context())
		for _, role := range clickRoles {
			role := role
			g.Go(func() error {
				return clickRole(ctx, role, logger.With(zap.String("role", role)))
			})
		}
		return g.Wait()
	},
}

func clickRole(ctx context.Context, role string, logger *zap.Logger) error {
	sess, err := browser.NewSession(ctx, appCfg.Browser, logger)
	if err != nil {
		return fmt.Errorf("role %q: %w", role, err)
	}
	defer sess.Close()

	if err := sess.Navigate(ctx, clickURL); err != nil {
		return fmt.Errorf("role %q: %w", role, err)
	}

	ctrl := motor.New(appCfg.Engine.Motor(), logger)
	chain := motor.Resolve(role)

	match := ctrl.Match(ctx, sess, chain.Primary, chain.Fallbacks)
	if match.Element == nil {
		return fmt.Errorf("role %q: no visible element for %q", role, chain.Primary)
	}
	if match.UsedFallback {
		logger.Info("primary selector hidden, using fallback",
			zap.String("selector", match.Selector), zap.String("reason", match.Reason))
	}

	res := ctrl.ClickWithVerification(ctx, sess, match.Selector, motor.VerifyOptions{
		VerifySelector: verifySelector,
		Timeout:        verifyTimeout,
		Click:          motor.ClickOptions{Jitter: clickJitter},
	})
	if !res.Success {
		return fmt.Errorf("role %q: click failed (%s)", role, res.Reason)
	}

	logger.Info("click landed",
		zap.String("selector", match.Selector),
		zap.Bool("verified", res.Verified))
	return nil
}

// rolesCmd lists the semantic roles the resolver knows about.
var rolesCmd = &cobra.Command{
	Use:   "roles",
	Short: "List known semantic roles",
	Run: func(cmd *cobra.Command, args []string) {
		roles := motor.Roles()
		sort.Strings(roles)
		for _, role := range roles {
			chain := motor.Resolve(role)
			fmt.Fprintf(cmd.OutOrStdout(), "%-12s %s (%d fallbacks)\n",
				role, chain.Primary, len(chain.Fallbacks))
		}
	},
}

func init() {
	clickCmd.Flags().StringVar(&clickURL, "url", "", "page to drive (required)")
	clickCmd.Flags().StringSliceVar(&clickRoles, "role", []string{"like"}, "semantic role(s) or raw selector(s) to click")
	clickCmd.Flags().StringVar(&verifySelector, "verify", "", "selector expected to appear after a successful click")
	clickCmd.Flags().DurationVar(&verifyTimeout, "verify-timeout", 5*time.Second, "how long to wait for the confirmation selector")
	clickCmd.Flags().BoolVar(&clickJitter, "jitter", false, "perturb the click point inside the element")
	_ = clickCmd.MarkFlagRequired("url")

	rootCmd.AddCommand(clickCmd)
	rootCmd.AddCommand(rolesCmd)
}

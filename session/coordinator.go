package session

import (
	"log/slog"
	"net/url"
	"sync"
	"time"

	"github.com/averath/reqops/credstore"
)

// Defaults for Config.
const (
	DefaultLoginPath     = "/login"
	DefaultRedirectDelay = 1500 * time.Millisecond
	DefaultMessage       = "Your session has expired. Please sign in again."
)

// Config wires the coordinator's collaborators.
type Config struct {
	// Store holds the session record; only the session key is cleared on
	// expiry, the client identifier survives.
	Store credstore.Store

	// Canceller aborts the remaining in-flight requests during teardown.
	Canceller Canceller

	// Notifier and Navigator are optional UI boundaries.
	Notifier  Notifier
	Navigator Navigator

	// LoginPath is the base login destination. Default: "/login".
	LoginPath string

	// RedirectDelay separates the notification from the navigation so the
	// notification can render first. Default: 1.5s.
	RedirectDelay time.Duration

	// Message is the user-visible expiry message.
	Message string

	// Logger receives teardown diagnostics. Default: slog.Default().
	Logger *slog.Logger
}

// Coordinator owns the process-wide session-expired flag and runs the
// teardown sequence exactly once per expiry.
type Coordinator struct {
	mu      sync.Mutex
	expired bool

	store         credstore.Store
	canceller     Canceller
	notifier      Notifier
	navigator     Navigator
	loginPath     string
	redirectDelay time.Duration
	message       string
	logger        *slog.Logger
}

// NewCoordinator creates a coordinator, applying defaults.
func NewCoordinator(cfg Config) *Coordinator {
	if cfg.LoginPath == "" {
		cfg.LoginPath = DefaultLoginPath
	}
	if cfg.RedirectDelay == 0 {
		cfg.RedirectDelay = DefaultRedirectDelay
	}
	if cfg.Message == "" {
		cfg.Message = DefaultMessage
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &Coordinator{
		store:         cfg.Store,
		canceller:     cfg.Canceller,
		notifier:      cfg.Notifier,
		navigator:     cfg.Navigator,
		loginPath:     cfg.LoginPath,
		redirectDelay: cfg.RedirectDelay,
		message:       cfg.Message,
		logger:        cfg.Logger,
	}
}

// Expired reports whether an expiry teardown is in flight or completed
// without a Reset since.
func (c *Coordinator) Expired() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.expired
}

// Expire runs the teardown sequence if no expiry is being handled yet.
// Returns true when this call performed the teardown, false when another
// caller already had. Teardown is fire-and-forget: failures are logged,
// never returned.
func (c *Coordinator) Expire() bool {
	c.mu.Lock()
	if c.expired {
		c.mu.Unlock()
		return false
	}
	c.expired = true
	c.mu.Unlock()

	dest := c.loginDestination()

	if c.store != nil {
		if err := credstore.ClearSession(c.store); err != nil {
			c.logger.Error("clearing session record", "error", err)
		}
	}
	if c.canceller != nil {
		n := c.canceller.CancelAll()
		c.logger.Info("session expired, cancelled in-flight requests", "count", n)
	}
	if c.notifier != nil {
		c.notifier.Notify(KindError, c.message)
	}
	if c.navigator != nil {
		// Delay so the notification renders before navigation.
		time.AfterFunc(c.redirectDelay, func() {
			c.navigator.NavigateTo(dest)
		})
	}
	return true
}

// Reset clears the expired flag. Only an external login-success signal
// calls this; the coordinator never resets itself.
func (c *Coordinator) Reset() {
	c.mu.Lock()
	c.expired = false
	c.mu.Unlock()
}

// loginDestination derives the redirect target from the preserved client
// identifier, falling back to the bare login path.
func (c *Coordinator) loginDestination() string {
	client, ok := credstore.ClientID(c.store)
	if !ok || client == "" {
		return c.loginPath
	}
	return c.loginPath + "?client=" + url.QueryEscape(client)
}

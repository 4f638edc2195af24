package action

import (
	"context"
	"sync"

	"github.com/mallworks/mallboard/internal/mall"
	"github.com/mallworks/mallboard/internal/session"
	"github.com/mallworks/mallboard/internal/state"
	"github.com/mallworks/mallboard/pkg/logger"
)

// Phase is the coordinator's position in a mutation attempt.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseSubmitting
	PhaseRefreshing
)

// NoticeKind classifies a transient notification.
type NoticeKind int

const (
	NoticeSuccess NoticeKind = iota
	NoticeError
)

// Notice is the transient notification produced by one mutation attempt.
type Notice struct {
	Kind    NoticeKind
	Message string
}

func successNotice(msg string) Notice { return Notice{Kind: NoticeSuccess, Message: msg} }
func errorNotice(err error) Notice    { return Notice{Kind: NoticeError, Message: err.Error()} }

type refreshable interface {
	Refresh(ctx context.Context) error
}

// Coordinator sequences a user-initiated write, the store refreshes that
// keep dependent views consistent, and the resulting notification. Failures
// are converted to error notices at this boundary; nothing propagates to
// the UI loop. There is no rollback because no optimistic local mutation is
// ever applied.
type Coordinator struct {
	api         mall.API
	stores      *state.Stores
	sessionPath string

	mu    sync.RWMutex
	phase Phase
}

// NewCoordinator builds a coordinator over the given API and stores.
// sessionPath is where a successful login is persisted; empty uses the
// default.
func NewCoordinator(api mall.API, stores *state.Stores, sessionPath string) *Coordinator {
	if sessionPath == "" {
		sessionPath = session.DefaultPath()
	}
	return &Coordinator{api: api, stores: stores, sessionPath: sessionPath}
}

// Phase returns the coordinator's current phase.
func (c *Coordinator) Phase() Phase {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.phase
}

func (c *Coordinator) setPhase(p Phase) {
	c.mu.Lock()
	c.phase = p
	c.mu.Unlock()
}

// CreateUser validates and submits a new user, then refreshes the users
// store.
func (c *Coordinator) CreateUser(ctx context.Context, payload mall.CreateUser) Notice {
	return c.mutate(ctx, payload, func(ctx context.Context) error {
		_, err := c.api.CreateUser(ctx, payload)
		return err
	}, "User created", c.stores.Users)
}

// UpdateUser validates and submits a user update.
func (c *Coordinator) UpdateUser(ctx context.Context, id string, payload mall.UpdateUser) Notice {
	return c.mutate(ctx, payload, func(ctx context.Context) error {
		_, err := c.api.UpdateUser(ctx, id, payload)
		return err
	}, "User updated", c.stores.Users)
}

// DeleteUser removes a user. Deletes have no payload to validate.
func (c *Coordinator) DeleteUser(ctx context.Context, id string) Notice {
	return c.mutate(ctx, nil, func(ctx context.Context) error {
		return c.api.DeleteUser(ctx, id)
	}, "User deleted", c.stores.Users)
}

// CreateShop validates and submits a new shop.
func (c *Coordinator) CreateShop(ctx context.Context, payload mall.CreateShop) Notice {
	return c.mutate(ctx, payload, func(ctx context.Context) error {
		_, err := c.api.CreateShop(ctx, payload)
		return err
	}, "Shop created", c.stores.Shops)
}

// UpdateShop validates and submits a shop update. Only the shops store is
// refreshed: owner labels resolve against the users store, which a shop
// write cannot change.
func (c *Coordinator) UpdateShop(ctx context.Context, id string, payload mall.UpdateShop) Notice {
	return c.mutate(ctx, payload, func(ctx context.Context) error {
		_, err := c.api.UpdateShop(ctx, id, payload)
		return err
	}, "Shop updated", c.stores.Shops)
}

// DeleteShop removes a shop.
func (c *Coordinator) DeleteShop(ctx context.Context, id string) Notice {
	return c.mutate(ctx, nil, func(ctx context.Context) error {
		return c.api.DeleteShop(ctx, id)
	}, "Shop deleted", c.stores.Shops)
}

// CreateProduct validates and submits a new product.
func (c *Coordinator) CreateProduct(ctx context.Context, payload mall.CreateProduct) Notice {
	return c.mutate(ctx, payload, func(ctx context.Context) error {
		_, err := c.api.CreateProduct(ctx, payload)
		return err
	}, "Product created", c.stores.Products)
}

// UpdateProduct validates and submits a product update.
func (c *Coordinator) UpdateProduct(ctx context.Context, id string, payload mall.UpdateProduct) Notice {
	return c.mutate(ctx, payload, func(ctx context.Context) error {
		_, err := c.api.UpdateProduct(ctx, id, payload)
		return err
	}, "Product updated", c.stores.Products)
}

// DeleteProduct removes a product.
func (c *Coordinator) DeleteProduct(ctx context.Context, id string) Notice {
	return c.mutate(ctx, nil, func(ctx context.Context) error {
		return c.api.DeleteProduct(ctx, id)
	}, "Product deleted", c.stores.Products)
}

// Login validates credentials, exchanges them for a session object, and
// persists that object verbatim.
func (c *Coordinator) Login(ctx context.Context, creds mall.Credentials) Notice {
	c.setPhase(PhaseSubmitting)
	defer c.setPhase(PhaseIdle)

	if err := mall.Validate(creds); err != nil {
		return errorNotice(err)
	}
	log := logger.Get()
	raw, err := c.api.Login(ctx, creds)
	if err != nil {
		log.Warn().Err(err).Msg("login failed")
		return errorNotice(err)
	}
	if err := session.Save(c.sessionPath, raw); err != nil {
		log.Warn().Err(err).Msg("session save failed")
		return errorNotice(err)
	}
	return successNotice("Logged in")
}

// Logout clears the persisted session.
func (c *Coordinator) Logout() Notice {
	if err := session.Clear(c.sessionPath); err != nil {
		return errorNotice(err)
	}
	return successNotice("Logged out")
}

// mutate runs one attempt through the Idle -> Submitting -> Refreshing ->
// Idle state machine. A nil payload skips validation (deletes). Validation
// failures short-circuit before any network call. Refresh failures after a
// successful write do not fail the mutation: the store records them and the
// view surfaces the stale state on its own.
func (c *Coordinator) mutate(ctx context.Context, payload any, write func(context.Context) error, successMsg string, refresh ...refreshable) Notice {
	c.setPhase(PhaseSubmitting)
	defer c.setPhase(PhaseIdle)

	if payload != nil {
		if err := mall.Validate(payload); err != nil {
			return errorNotice(err)
		}
	}

	log := logger.Get()
	if err := write(ctx); err != nil {
		log.Warn().Err(err).Str("action", successMsg).Msg("mutation failed")
		return errorNotice(err)
	}

	c.setPhase(PhaseRefreshing)
	for _, store := range refresh {
		if err := store.Refresh(ctx); err != nil {
			log.Warn().Err(err).Msg("post-mutation refresh failed")
		}
	}
	log.Debug().Str("action", successMsg).Msg("mutation applied")
	return successNotice(successMsg)
}

// Package app wires together configuration, the session store, the backend
// client, and the auth manager into a single Deps struct that commands
// receive at runtime.
package app

import (
	"github.com/dstrand/wander/internal/api"
	"github.com/dstrand/wander/internal/auth"
	"github.com/dstrand/wander/internal/config"
	"github.com/dstrand/wander/internal/session"
)

// Deps holds all runtime dependencies injected into command Run functions.
// The session store doubles as the client's token source, so every request
// carries whatever token is stored at the moment it is sent.
type Deps struct {
	Config *config.Config
	Store  *session.Store
	Client *api.Client
	Auth   *auth.Manager
}

// New builds a Deps from resolved config, opening the session store.
// The caller owns the returned Deps and must Close it.
func New(cfg *config.Config) (*Deps, error) {
	store, err := session.Open(cfg.DBPath)
	if err != nil {
		return nil, err
	}
	client := api.NewClient(cfg.BaseURL, store, cfg.Timeout, cfg.Rate, cfg.Debug)
	return &Deps{
		Config: cfg,
		Store:  store,
		Client: client,
		Auth:   auth.NewManager(store, client),
	}, nil
}

// Close releases the session store.
func (d *Deps) Close() error {
	if d.Store != nil {
		return d.Store.Close()
	}
	return nil
}

// Package app provides the orchestration layer for mallboard.
//
// # Overview
//
// This package is the composition root: it loads configuration, initialises
// logging, builds the API client, the list stores, and the mutation
// coordinator, restores any persisted session, optionally launches the
// background refresher, and finally starts the TUI, blocking until the user
// exits or the context cancels.
//
// # Data Flow
//
//	Run()
//	 ├─> config.Load()          read ~/.config/mallboard/config.toml
//	 ├─> logger.Init()          zerolog to a file (the TUI owns the terminal)
//	 ├─> mall.NewClient()       HTTP client for the mall API
//	 ├─> state.NewStores()      users / shops / products list stores
//	 ├─> action.NewCoordinator() write + refresh + notice sequencing
//	 ├─> session.Load()         restore opaque login state
//	 ├─> StartRefresher()       optional periodic RefreshAll (refresh_every)
//	 └─> ui.Run()               start the TUI (blocks)
//
// # Error Handling
//
// Startup failures (unreadable config, bad API base) are fatal and returned
// from Run. Everything after startup is recoverable: fetch and write
// failures surface as store errors and notices inside the UI, and the
// background refresher logs and keeps going.
package app

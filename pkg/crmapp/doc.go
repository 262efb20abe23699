// Package crmapp provides an embeddable server for the CRM front-end
// placeholder page.
//
// # Basic Usage
//
//	fe, err := crmapp.New(crmapp.Config{ListenAddr: ":3000"})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	if err := fe.Start(context.Background()); err != nil {
//	    log.Fatal(err)
//	}
//
//	// ... run until shutdown signal ...
//
//	if err := fe.Stop(); err != nil {
//	    log.Printf("shutdown error: %v", err)
//	}
//
// Start binds the listener before returning, so [Frontend.Addr] reports
// the real address even when ListenAddr uses port 0.
//
// # Lifecycle States
//
// A Frontend is in one of five states: [StateStopped], [StateStarting],
// [StateRunning], [StateStopping], or [StateCrashed]. Use
// [Frontend.Status] to query it and [WithEventHandler] to observe
// transitions.
//
// # Plugins
//
// Plugins run alongside the server. They are initialized in registration
// order and shut down in reverse order:
//
//	import "github.com/bft-labs/crmapp/plugins/configwatcher"
//
//	fe, err := crmapp.New(cfg,
//	    configwatcher.WithConfigWatcher(configwatcher.Config{OnChange: reload}),
//	)
package crmapp

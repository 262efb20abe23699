package configwatcher

import "github.com/bft-labs/crmapp/pkg/crmapp"

// WithConfigWatcher returns a crmapp Option that enables config file
// watching.
//
// Usage:
//
//	fe, err := crmapp.New(cfg,
//	    configwatcher.WithConfigWatcher(configwatcher.Config{
//	        DebounceDelay: 100 * time.Millisecond,
//	        OnChange:      reload,
//	    }),
//	)
func WithConfigWatcher(cfg Config) crmapp.Option {
	return crmapp.WithPlugin(New(cfg))
}

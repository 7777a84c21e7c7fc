package config

import (
	"flag"
	"fmt"
	"strings"
)

// supportsList collects -supports values; it accepts repeated flags and
// comma separated lists.
type supportsList []string

func (s *supportsList) String() string {
	return strings.Join(*s, ",")
}

func (s *supportsList) Set(v string) error {
	for _, name := range strings.Split(v, ",") {
		if name = strings.TrimSpace(name); name != "" {
			*s = append(*s, name)
		}
	}
	return nil
}

// parseFlags parses the client flags from args.
//
// Flags:
//
//	-a sync server base URL
//	-auth-address token endpoint base URL
//	-d database DSN
//	-q queue directory
//	-memory-queue keep the queue in memory
//	-c/-config json file path with configs
//	-loading-timeout whole exchange timeout (e.g. "60s")
//	-auth-timeout token request timeout
//	-write-delay queue write coalescing delay
//	-long-interval / -short-interval sync job intervals
//	-supports enabled supports types (repeatable, comma separated)
//	-complete force a full reconciliation
//	-max-items items per request
//	-gzip compress request bodies
//	-login / -password account credentials
//	-hash-key request signing key
func parseFlags(args []string) (*StructuredConfig, error) {
	fs := flag.NewFlagSet("client", flag.ContinueOnError)

	var (
		cfg      StructuredConfig
		supports supportsList
	)

	fs.StringVar(&cfg.Adapter.ServerAddress, "a", "", "Sync server base URL")
	fs.StringVar(&cfg.Adapter.AuthAddress, "auth-address", "", "Token endpoint base URL")
	fs.StringVar(&cfg.Storage.DB.DSN, "d", "", "Database DSN")
	fs.StringVar(&cfg.Storage.Queue.Dir, "q", "", "Queue directory")
	fs.BoolVar(&cfg.Storage.Queue.Memory, "memory-queue", false, "Keep the queue in memory")
	fs.StringVar(&cfg.JSONFilePath, "c", "", "JSON config file path")
	fs.StringVar(&cfg.JSONFilePath, "config", "", "JSON config file path (alias)")
	fs.DurationVar(&cfg.Adapter.LoadingTimeout, "loading-timeout", 0, "Sync exchange timeout (e.g., 60s)")
	fs.DurationVar(&cfg.Adapter.AuthTimeout, "auth-timeout", 0, "Token request timeout")
	fs.DurationVar(&cfg.Storage.Queue.WriteDelay, "write-delay", 0, "Queue write delay")
	fs.DurationVar(&cfg.Workers.LongInterval, "long-interval", 0, "Sync interval with an empty queue")
	fs.DurationVar(&cfg.Workers.ShortInterval, "short-interval", 0, "Sync interval with queued items")
	fs.Var(&supports, "supports", "Enabled supports types")
	fs.BoolVar(&cfg.Sync.Complete, "complete", false, "Force a full reconciliation")
	fs.IntVar(&cfg.Sync.MaxItems, "max-items", 0, "Items per request")
	fs.BoolVar(&cfg.Adapter.Compress, "gzip", false, "Compress request bodies")
	fs.StringVar(&cfg.Adapter.Login, "login", "", "Account login")
	fs.StringVar(&cfg.Adapter.Password, "password", "", "Account password")
	fs.StringVar(&cfg.App.HashKey, "hash-key", "", "Request signing key")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("error parsing flags: %w", err)
	}

	cfg.Sync.Supports = []string(supports)
	return &cfg, nil
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"net/url"
)

// validate checks the merged [StructuredConfig] before it is mapped. Only
// values that cannot be defaulted later are checked here.
func (cfg *StructuredConfig) validate() error {
	if cfg.Sync.MaxItems < 0 {
		return fmt.Errorf("%w: negative max items", ErrInvalidSyncConfigs)
	}
	return nil
}

func (cfg *ClientConfig) validate() error {
	if cfg.Storage.DB.DSN == "" {
		return ErrInvalidStorageConfigs
	}

	if !validURL(cfg.Adapter.ServerAddress) || !validURL(cfg.Adapter.AuthAddress) {
		return ErrInvalidAdapterConfigs
	}

	if cfg.Workers.ShortInterval > cfg.Workers.LongInterval {
		return ErrInvalidWorkerConfigs
	}

	if cfg.Sync.Supports == 0 {
		return ErrInvalidSyncConfigs
	}

	return nil
}

func validURL(raw string) bool {
	u, err := url.Parse(raw)
	return err == nil && (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

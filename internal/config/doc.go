// Package config provides configuration loading, merging, and validation
// for the sync client.
//
// Configuration is assembled from multiple sources in the following priority
// order (later sources override earlier non-zero fields):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON config file
//
// [GetClientConfig] is the entry point; it fills defaults and returns the
// validated [ClientConfig] view.
package config

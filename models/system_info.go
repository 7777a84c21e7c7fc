// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// SystemInfo is the client description sent inside <client_info>.
//
// Build is usually injected by linker flags; the remaining values come from
// configuration. Empty fields are still sent as empty elements.
type SystemInfo struct {
	// Build is the client build number or version string.
	Build string

	// System is the operating system name (e.g. "linux").
	System string

	// SystemVersion is the operating system version.
	SystemVersion string

	// Product is the client product name.
	Product string
}

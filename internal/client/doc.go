// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the sync client process runtime.
//
// It opens the local storage, wires the sync services and runs the
// background workers until the process is signalled to stop.
package client

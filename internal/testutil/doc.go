// SPDX-License-Identifier: MPL-2.0

// Package testutil provides helper functions for tests that handle errors
// appropriately, reducing boilerplate and ensuring consistent error handling.
//
// Common helpers include environment variable management (MustSetenv,
// SetConfigHome), file operations (MustMkdirAll, MustWriteFile), and the
// Workspace fixture builder for on-disk monorepo layouts.
package testutil

// SPDX-License-Identifier: MPL-2.0

// Package config handles application configuration using Viper with CUE as the file format.
//
// Configuration is loaded from the path given with --config, else from
// $XDG_CONFIG_HOME/nx/config.cue (~/.config/nx/config.cue when unset), else
// from nx.config.cue in the working directory. A missing file yields defaults.
// Files are validated against the embedded config_schema.cue before they are
// merged into Viper, and NX_VERBOSE_LOGGING and NX_WORKSPACE_ROOT override the
// corresponding keys.
package config

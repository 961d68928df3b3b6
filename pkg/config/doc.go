// Package config loads the effective site configuration. Settings
// are merged from the embedded defaults, webgen.toml at the site
// root, and WEBGEN_* environment variables, in that order.
package config

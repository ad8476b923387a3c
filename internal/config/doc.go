// Package config provides configuration loading, merging, and validation
// facilities for the application.
//
// Configuration is assembled from named fragments applied in a fixed,
// deterministic order (base → apps → middleware → database → templates →
// locale → login → staticfiles → logging → csp → matomo → honeypot →
// workers); a later fragment's value overrides an earlier fragment's same
// key. Command-line flags and an optional JSON config file are merged on
// top, in that order.
//
// The main entry point is [GetSettings], which composes exactly once per
// process and must complete before any other component reads configuration.
package config

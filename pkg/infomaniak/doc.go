// Package infomaniak talks to the Infomaniak radio statistics platform
// (statslive.infomaniak.com).
//
// It covers the three documents the telemetry pipeline needs:
//   - Mount diagnostics: the raw status text for a primary or backup mount
//   - Live stats: the Icecast style stats.xml with peak and current listeners
//   - Media stats: the per-listener roster with IP and connection duration
package infomaniak

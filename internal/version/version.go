// Package version provides build and version information.
package version

// Version is the current application version.
const Version = "0.2.0"

// Milestones:
// 0.2.0 - Live view, bright star targets, uniform RA policy, JSON export
// 0.1.0 - Initial release: RA/Dec <-> Alt/Az round trip with Meeus sidereal time

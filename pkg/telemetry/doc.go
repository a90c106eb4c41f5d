// Package telemetry assembles point-in-time broadcast snapshots for a radio
// stream: the health of the primary and backup mounts, the audience
// counters and the listener roster, optionally geolocated and sorted.
//
// A snapshot is built by three stages run in a fixed order. Failing to reach
// either mount is fatal and no snapshot is returned. Every other failure is
// recoverable: the stage output is left empty and the failure is recorded as
// the snapshot's LastError, where only the most recent failure survives.
package telemetry

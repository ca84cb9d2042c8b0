// Package task runs background jobs off the request path. The only job
// today is persisting library snapshots: SnapshotEventHandler listens to
// library events and schedules a debounced SaveSnapshotTask on a TaskRunner.
package task

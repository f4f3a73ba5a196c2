// Package store holds the published report. The server builds a report at
// startup and after every config reload and publishes it here; request
// handlers and the WebSocket hub read the current entry. Each publication
// gets a monotonically increasing revision, and a bounded log of recent
// publications is kept for the snapshot endpoint.
package store

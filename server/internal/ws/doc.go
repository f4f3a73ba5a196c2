// Package ws streams the published report to WebSocket clients at /ws/stream.
//
// Every client gets the report summary (the GET /api/v1/snapshot schema) on
// connect, after each Publish and on every broadcast tick. A client that
// subscribes to a page, with /ws/stream?page=regional or by sending
//
//	{"page": "regional"}
//
// also receives that built page in each message:
//
//	{"event": "report", "data": {...}, "page": {...}}
//
// An unknown page in a frame is answered with {"event": "error", "error": "..."};
// an unknown ?page= is rejected with 400 before the upgrade. Clients that
// fall behind are disconnected.
package ws

// Package ws keeps a WebSocket open to every admin tab so the server can
// push session changes and content updates.
//
// Every connection carries its own session.Cell watched by a session.Guard.
// When the user signs out in one tab, the hub moves the cell of every other
// tab to SIGNED_OUT and the guard sends those tabs a navigate event.
package ws

// Event is one frame on the wire.
//
//	{"op": "navigate", "d": {"route": "/admin"}, "seq": 12}
type Event struct {
	Op   string `json:"op"`
	Data any    `json:"d,omitempty"`
	Seq  int64  `json:"seq,omitempty"`
}

// Client → server.
const (
	OpHeartbeat = "heartbeat"
)

// Server → client.
const (
	OpReady         = "ready"
	OpHeartbeatAck  = "heartbeat_ack"
	OpSessionChange = "session_change"
	OpNavigate      = "navigate"
	OpContentUpdate = "content_update"
)

// ReadyData is sent once after the connection is accepted.
type ReadyData struct {
	Page     string `json:"page"`
	SignedIn bool   `json:"signed_in"`
}

// SessionChangeData names the session transition.
type SessionChangeData struct {
	Event string `json:"event"`
}

// NavigateData tells the tab to load route.
type NavigateData struct {
	Route string `json:"route"`
}

// ContentUpdateData names the collection that changed, e.g. "gallery_images".
type ContentUpdateData struct {
	Collection string `json:"collection"`
}

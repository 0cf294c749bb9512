package sse

import "time"

// Buffer sizes
const (
	BroadcastBufferSize = 100
	ClientEventBuffer   = 50
	ClientChannelBuffer = 10
)

// KeepaliveInterval is how often an idle stream gets a ping
const KeepaliveInterval = 30 * time.Second

// Stream-only event types; engine events keep their bus type names
const (
	EventTypeConnected = "connected"
	EventTypeKeepalive = "keepalive"
)

// Query parameters
const (
	QueryParamTypes  = "types"
	QueryParamUserID = "user_id"
)

// Log messages
const (
	LogMsgClientConnected    = "Stream client connected"
	LogMsgClientDisconnected = "Stream client disconnected"
	LogMsgEventDropped       = "Stream event dropped, broadcast buffer full"
	LogMsgWriteError         = "Failed to write stream event"
	LogMsgSubscriberReady    = "Event stream subscribed to engine events"
)

// Error messages
const (
	ErrMsgStreamingUnsupported = "streaming not supported"
	ErrMsgUnknownEventType     = "unknown event type"
)

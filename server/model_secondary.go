package server

import (
	"fmt"
	"time"
)

const HTTP_NOT_FOUND = 404

const (
	sessionBuffer  = 10
	commandBuffer  = 16
	snapshotBuffer = 4
	handoffTimeout = 200 * time.Millisecond
)

func (ws WatchSessionState) Name() string {
	switch ws {
	case WS_NEW:
		return "NEW"
	case WS_WATCH:
		return "WATCH"
	case WS_ERR:
		return "ERR"
	case WS_OVER:
		return "OVER"
	default:
		return fmt.Sprintf("n/a:%d", ws)
	}
}

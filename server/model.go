package server

import (
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/zucenko/trainrun/model"
)

// FeedServer streams simulation snapshots to every connected watcher and
// collects their commands.
type FeedServer struct {
	Sessions  []*WatchSession
	Connects  chan WatchConnect
	Leaves    chan uuid.UUID
	Snapshots chan model.ServerMessage
	Commands  chan model.ClientMessage
	Upgrader  *websocket.Upgrader

	last *model.ServerMessage
}

// GridSource draws the named grid view.
type GridSource interface {
	Render(view string) (string, error)
}

type WatchSessionState int

const (
	WS_NEW WatchSessionState = iota
	WS_WATCH
	WS_ERR
	WS_OVER
)

type WatchSession struct {
	State  WatchSessionState
	Id     uuid.UUID
	Server *FeedServer
	Conn   *websocket.Conn
	Done   chan struct{}

	MessagesToSend chan model.ServerMessage

	DebugInMessages  int
	DebugOutMessages int
	DebugDropped     int
	DebugLastMessage time.Time
	DebugLastPing    time.Time
	DebugPings       int
}

type WatchConnect struct {
	Session *WatchSession
}

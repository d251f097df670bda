package server

import (
	"encoding/gob"
	"net"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/matryer/way"
	log "github.com/sirupsen/logrus"
	"github.com/zucenko/trainrun/model"
)

func NewFeedServer() *FeedServer {
	return &FeedServer{
		Sessions:  make([]*WatchSession, 0),
		Connects:  make(chan WatchConnect),
		Leaves:    make(chan uuid.UUID),
		Snapshots: make(chan model.ServerMessage, snapshotBuffer),
		Commands:  make(chan model.ClientMessage, commandBuffer),
		Upgrader:  &websocket.Upgrader{},
	}
}

// Publish hands a snapshot to the loop, dropping it when the loop lags behind.
func (s *FeedServer) Publish(msg model.ServerMessage) {
	select {
	case s.Snapshots <- msg:
	default:
		log.Warn("FeedServer.Publish snapshot dropped, loop is behind")
	}
}

func (s *FeedServer) HandleWatch() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Info("HandleWatch connection received")
		con, err := s.Upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Warnf("HandleWatch websocket upgrade err %v", err)
			return
		}
		defer con.Close()

		ws := &WatchSession{
			State:          WS_NEW,
			Id:             uuid.New(),
			Server:         s,
			Conn:           con,
			Done:           make(chan struct{}),
			MessagesToSend: make(chan model.ServerMessage, sessionBuffer),
		}
		select {
		case s.Connects <- WatchConnect{Session: ws}:
		case <-time.After(handoffTimeout):
			log.Warn("HandleWatch Connects TIMEOUTED")
			return
		}

		log.Infof("HandleWatch %v watching", ws.Id)
		<-ws.Done
		log.Infof("HandleWatch %v done", ws.Id)
	}
}

// HandleGrid writes a grid view as text, the view named by the :view route
// parameter.
func (s *FeedServer) HandleGrid(src GridSource) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		view := way.Param(r.Context(), "view")
		drawn, err := src.Render(view)
		if err != nil {
			log.Debugf("HandleGrid %v", err)
			http.Error(w, err.Error(), HTTP_NOT_FOUND)
			return
		}
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		if _, err := w.Write([]byte(drawn)); err != nil {
			log.Warnf("HandleGrid write %v", err)
		}
	}
}

func (s *FeedServer) Loop() {
	log.Info("FeedServer.Loop starting")
	for {
		select {
		case c := <-s.Connects:
			s.addSession(c.Session)
		case id := <-s.Leaves:
			s.removeSession(id)
		case msg := <-s.Snapshots:
			s.last = &msg
			for _, ws := range s.Sessions {
				ws.offer(msg)
			}
		}
	}
}

func (s *FeedServer) addSession(ws *WatchSession) {
	conn := ws.Conn
	conn.SetPingHandler(
		func(message string) error {
			err := conn.WriteControl(websocket.PongMessage, []byte(message), time.Now().Add(time.Second))
			ws.DebugLastPing = time.Now()
			ws.DebugPings++
			if err == websocket.ErrCloseSent {
				return nil
			} else if e, ok := err.(net.Error); ok && e.Temporary() {
				return nil
			}
			return err
		})
	ws.State = WS_WATCH
	if s.last != nil {
		ws.offer(*s.last)
	}
	go ws.LoopChannelRead()
	go ws.LoopChannelWrite()
	s.Sessions = append(s.Sessions, ws)
	log.Infof("FeedServer.addSession %v, %d watching", ws.Id, len(s.Sessions))
}

func (s *FeedServer) removeSession(id uuid.UUID) {
	for i, ws := range s.Sessions {
		if ws.Id != id {
			continue
		}
		ws.State = WS_OVER
		close(ws.MessagesToSend)
		close(ws.Done)
		s.Sessions = append(s.Sessions[:i], s.Sessions[i+1:]...)
		log.Infof("FeedServer.removeSession %v, %d watching", id, len(s.Sessions))
		return
	}
}

// offer never blocks the loop, a slow watcher just misses snapshots.
func (ws *WatchSession) offer(msg model.ServerMessage) {
	select {
	case ws.MessagesToSend <- msg:
	default:
		ws.DebugDropped++
		log.Warnf("WatchSession %v buffer full, snapshot dropped", ws.Id)
	}
}

func (ws *WatchSession) leave() {
	go func() { ws.Server.Leaves <- ws.Id }()
}

func (ws *WatchSession) LoopChannelRead() {
	log.Debugf("WatchSession.LoopChannelRead %v STARTED", ws.Id)
	for {
		_, r, err := ws.Conn.NextReader()
		if err != nil {
			log.Infof("WatchSession.LoopChannelRead %v closed: %v", ws.Id, err)
			ws.leave()
			return
		}
		cm := model.ClientMessage{}
		if err := gob.NewDecoder(r).Decode(&cm); err != nil {
			log.Warnf("WatchSession.LoopChannelRead %v cant decode %v", ws.Id, err)
			ws.leave()
			return
		}
		ws.DebugLastMessage = time.Now()
		ws.DebugInMessages++

		select {
		case ws.Server.Commands <- cm:
		default:
			log.Warnf("WatchSession.LoopChannelRead %v dropping command, Commands FULL", ws.Id)
		}
	}
}

// LoopChannelWrite ends when MessagesToSend gets closed or writing fails.
func (ws *WatchSession) LoopChannelWrite() {
	log.Debugf("WatchSession.LoopChannelWrite %v STARTED", ws.Id)
	for mes := range ws.MessagesToSend {
		w, err := ws.Conn.NextWriter(websocket.BinaryMessage)
		if err != nil {
			log.Warnf("WatchSession.LoopChannelWrite cant get writer %v", err)
			ws.leave()
			return
		}
		if err := gob.NewEncoder(w).Encode(mes); err != nil {
			log.Warnf("WatchSession.LoopChannelWrite cant encode %v", err)
			ws.leave()
			return
		}
		if err := w.Close(); err != nil {
			log.Warnf("WatchSession.LoopChannelWrite cant flush %v", err)
			ws.leave()
			return
		}
		ws.DebugOutMessages++
	}
	log.Debugf("WatchSession.LoopChannelWrite %v ENDED", ws.Id)
}

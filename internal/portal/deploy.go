package portal

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/agolabs/architect/internal/logging"
	"go.uber.org/zap"
)

// Time allowed to write a message to the peer
const writeWait = 10 * time.Second

// DeployMessage is one frame of the deployment stream
type DeployMessage struct {
	Stream string `json:"stream"`
	Seq    int    `json:"seq"`
	Line   string `json:"line,omitempty"`
	Done   bool   `json:"done,omitempty"`
}

// handleDeploy streams the deployment log script over a websocket. The
// keyword comes from the query or, when absent, from the stored blueprint.
func (s *Server) handleDeploy(w http.ResponseWriter, r *http.Request) {
	keyword := strings.TrimSpace(r.URL.Query().Get("keyword"))
	if keyword == "" {
		bp, err := s.lastBlueprint(r.Context())
		if err != nil {
			respondError(w, http.StatusInternalServerError, err)
			return
		}
		if bp == nil {
			respondError(w, http.StatusBadRequest, errors.New("keyword is required when no blueprint is deployed"))
			return
		}
		keyword = bp.Keyword
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written the HTTP error.
		logging.Warn("Websocket upgrade failed", zap.Error(err))
		return
	}

	stream := uuid.NewString()
	remoteAddr := r.RemoteAddr
	logging.LogConnection(remoteAddr, "deploy_stream_opened")

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	readerDone := make(chan struct{})
	go func() {
		defer close(readerDone)
		defer cancel()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	defer func() {
		_ = conn.Close()
		<-readerDone
		logging.LogConnection(remoteAddr, "deploy_stream_closed")
	}()

	seq := 0
	send := func(msg DeployMessage) error {
		if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
			return err
		}
		return conn.WriteJSON(msg)
	}

	err = s.play(ctx, keyword, func(line string) error {
		seq++
		return send(DeployMessage{Stream: stream, Seq: seq, Line: line})
	})
	if err != nil {
		if !errors.Is(err, context.Canceled) {
			logging.Warn("Deploy stream aborted",
				zap.String("stream", stream),
				zap.Int("sent", seq),
				zap.Error(err),
			)
		}
		return
	}

	if err := send(DeployMessage{Stream: stream, Seq: seq + 1, Done: true}); err != nil {
		return
	}
	_ = conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, "deployment sequence closed"),
		time.Now().Add(writeWait))

	logging.Info("Deploy stream finished",
		zap.String("stream", stream),
		zap.String("keyword", keyword),
		zap.Int("lines", seq),
	)
}

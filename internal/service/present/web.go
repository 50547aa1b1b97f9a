package present

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"roadcheck/internal/dto"
	"roadcheck/internal/logger"
	"roadcheck/internal/service/ai"
	hub "roadcheck/internal/service/websocket"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
)

// Upgrader upgrades HTTP connections to WebSocket; CheckOrigin allows all origins.
var Upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

const viewerPage = `<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>roadcheck</title></head>
<body style="background:#111;color:#eee;font-family:sans-serif;text-align:center">
<h2 id="title">waiting for frame...</h2>
<img id="frame" style="max-width:95vw">
<script>
const ws = new WebSocket((location.protocol === "https:" ? "wss://" : "ws://") + location.host + "/ws");
ws.onmessage = (ev) => {
  const msg = JSON.parse(ev.data);
  document.getElementById("title").textContent = msg.title;
  document.getElementById("frame").src = "data:image/jpeg;base64," + msg.image;
};
</script>
</body>
</html>
`

// WebPresenter serves the frame to browser viewers until ctx is cancelled.
type WebPresenter struct {
	addr   string
	logDir string
	logger *logger.Logger
	ready  chan net.Addr
}

// NewWebPresenter creates a presenter listening on addr. When logDir is set
// the current log file is also served on /logs.
func NewWebPresenter(addr, logDir string, logger *logger.Logger) *WebPresenter {
	return &WebPresenter{
		addr:   addr,
		logDir: logDir,
		logger: logger,
		ready:  make(chan net.Addr, 1),
	}
}

// Ready yields the listening address once the server accepts connections.
func (p *WebPresenter) Ready() <-chan net.Addr {
	return p.ready
}

func (p *WebPresenter) Present(ctx context.Context, frame *ai.Frame, title string) error {
	data, err := frame.EncodeJPEG()
	if err != nil {
		return err
	}

	message, err := json.Marshal(dto.FrameMessage{
		Title: title,
		Image: base64.StdEncoding.EncodeToString(data),
	})
	if err != nil {
		return fmt.Errorf("failed to encode frame message: %w", err)
	}

	return p.serve(ctx, message)
}

// serve runs the viewer hub and HTTP server, broadcasting message once.
func (p *WebPresenter) serve(ctx context.Context, message []byte) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	hubService := hub.NewHubService(p.logger)
	go hubService.Run(ctx)
	hubService.Broadcast(message)

	listener, err := net.Listen("tcp", p.addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", p.addr, err)
	}

	srv := &http.Server{
		Handler:      p.router(hubService),
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(listener)
	}()

	p.logger.Info("Viewer available on http://%s", listener.Addr())
	select {
	case p.ready <- listener.Addr():
	default:
	}

	select {
	case <-ctx.Done():
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("viewer server failed: %w", err)
		}
		return nil
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	// Hub closes viewer connections on cancel so Shutdown does not wait on them.
	cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to stop viewer server: %w", err)
	}
	return nil
}

func (p *WebPresenter) router(hubService *hub.HubService) http.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(viewerPage))
	}).Methods("GET")
	r.HandleFunc("/ws", viewWebsocketHandler(hubService, p.logger)).Methods("GET")
	r.HandleFunc("/logs", func(w http.ResponseWriter, r *http.Request) {
		serveLogFile(w, r, p.logDir, "roadcheck.log")
	}).Methods("GET")
	return r
}

// serveLogFile serves a single log file as plain text.
func serveLogFile(w http.ResponseWriter, r *http.Request, logDir, filename string) {
	if logDir == "" {
		http.Error(w, "File logging disabled", http.StatusNotFound)
		return
	}

	filePath := filepath.Join(logDir, filename)
	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		http.Error(w, "Log file not found: "+filename, http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	http.ServeFile(w, r, filePath)
}

// viewWebsocketHandler registers viewers in the hub and waits for them to leave.
func viewWebsocketHandler(hubService *hub.HubService, logger *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		connection, err := Upgrader.Upgrade(w, r, nil)
		if err != nil {
			logger.Error("WebSocket upgrade error: %v", err)
			return
		}
		connection.SetReadLimit(512)

		hubService.Register(connection)
		defer hubService.Unregister(connection)

		for {
			_, _, err := connection.ReadMessage()
			if err != nil {
				if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
					logger.Info("Viewer disconnected normally")
				}
				break
			}
		}
	}
}

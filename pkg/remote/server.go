package remote

import (
	"context"
	"fmt"
	"log"
	"net"
	"strconv"
	"sync"
	"time"

	"github.com/kataras/iris/v12"
	"github.com/skip2/go-qrcode"

	"cutscene-player/pkg/playback"
	"cutscene-player/pkg/sharedTypes"
)

type CommandKind int

const (
	CommandSelect CommandKind = iota
	CommandStop
)

// Command is a request from a remote client. The main loop applies it on
// its next tick; handlers never touch playback state directly.
type Command struct {
	Kind  CommandKind
	Video sharedTypes.VideoID
	Name  string
}

// VideoInfo is the public view of a catalog entry.
type VideoInfo struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Title string `json:"title"`
}

// Server exposes playback control over HTTP and streams status over a websocket.
type Server struct {
	app      *iris.Application
	addr     string
	listener net.Listener

	videos   []VideoInfo
	byName   map[string]sharedTypes.VideoID
	commands chan Command

	mu           sync.RWMutex
	status       playback.Status
	isRunning    bool
	qrCodeData   []byte
	pushInterval time.Duration
}

// NewServer builds the router. Nothing listens until Start.
func NewServer(addr string, videos []sharedTypes.VideoDescriptor) *Server {
	s := &Server{
		addr:         addr,
		byName:       make(map[string]sharedTypes.VideoID, len(videos)),
		commands:     make(chan Command, 16),
		status:       playback.Status{State: playback.Idle.String()},
		pushInterval: 250 * time.Millisecond,
	}
	for _, v := range videos {
		s.videos = append(s.videos, VideoInfo{ID: int(v.ID), Name: v.Name, Title: v.DisplayName()})
		s.byName[v.Name] = v.ID
	}

	s.app = iris.New()
	s.app.Logger().SetLevel("warn")
	s.app.UseRouter(func(ctx iris.Context) {
		ctx.Header("Access-Control-Allow-Origin", "*")
		ctx.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		ctx.Header("Access-Control-Allow-Headers", "Content-Type")
		if ctx.Method() == iris.MethodOptions {
			ctx.StatusCode(iris.StatusNoContent)
			return
		}
		ctx.Next()
	})
	s.registerRoutes()
	return s
}

// Start binds the listen address and serves in the background.
func (s *Server) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return fmt.Errorf("remote server already running")
	}

	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.addr, err)
	}
	s.listener = ln

	url := s.urlLocked()
	qrCode, err := qrcode.Encode(url, qrcode.Medium, 200)
	if err != nil {
		ln.Close()
		return fmt.Errorf("failed to generate QR code: %w", err)
	}
	s.qrCodeData = qrCode
	s.isRunning = true

	go func() {
		log.Printf("Remote: serving on %s", url)
		if err := s.app.Run(iris.Listener(ln), iris.WithoutStartupLog, iris.WithoutServerError(iris.ErrServerClosed)); err != nil {
			log.Printf("Remote: server error: %v", err)
			s.mu.Lock()
			s.isRunning = false
			s.mu.Unlock()
		}
	}()
	return nil
}

// Stop gracefully shuts the server down.
func (s *Server) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.app.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown remote server: %w", err)
	}
	s.isRunning = false
	log.Println("Remote: server stopped")
	return nil
}

func (s *Server) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// Commands is drained by the main loop.
func (s *Server) Commands() <-chan Command {
	return s.commands
}

// Publish replaces the status served to clients.
func (s *Server) Publish(st playback.Status) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = st
}

func (s *Server) Status() playback.Status {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status
}

// URL is the address phones should open. Empty until Start.
func (s *Server) URL() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.listener == nil {
		return ""
	}
	return s.urlLocked()
}

// QRCodePNG returns a QR code of URL as PNG bytes.
func (s *Server) QRCodePNG() ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.isRunning {
		return nil, fmt.Errorf("remote server is not running")
	}
	return s.qrCodeData, nil
}

func (s *Server) urlLocked() string {
	port := 0
	if tcp, ok := s.listener.Addr().(*net.TCPAddr); ok {
		port = tcp.Port
	}
	return "http://" + net.JoinHostPort(advertisedHost(), strconv.Itoa(port))
}

// advertisedHost picks the first non-loopback IPv4 address, falling back to
// localhost.
func advertisedHost() string {
	addrs, err := net.InterfaceAddrs()
	if err != nil {
		return "localhost"
	}
	for _, a := range addrs {
		ipnet, ok := a.(*net.IPNet)
		if !ok || ipnet.IP.IsLoopback() {
			continue
		}
		if ip4 := ipnet.IP.To4(); ip4 != nil {
			return ip4.String()
		}
	}
	return "localhost"
}

func (s *Server) enqueue(cmd Command) bool {
	select {
	case s.commands <- cmd:
		return true
	default:
		log.Printf("Remote: command queue full, dropping %+v", cmd)
		return false
	}
}

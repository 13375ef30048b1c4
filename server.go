package main

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/pkg/errors"

	"solarsystem/core"
	"solarsystem/texture"
)

// BodyData is the static description of a body sent once per client
type BodyData struct {
	core.BodyDef
	LowColor  texture.Color `json:"lowColor"`
	HighColor texture.Color `json:"highColor"`
	Material  core.Material `json:"material"`
	Texture   string        `json:"texture"` // Base64 PNG
	TextureW  int           `json:"textureWidth"`
	TextureH  int           `json:"textureHeight"`
	Orbit     [][3]float64  `json:"orbit,omitempty"`
}

// SceneInit is the first message on every connection
type SceneInit struct {
	Type      string              `json:"type"`
	Bodies    []BodyData          `json:"bodies"`
	Particles core.ParticleField `json:"particles"`
	Camera    core.Camera        `json:"camera"`
}

// FrameData is broadcast after every simulation tick
type FrameData struct {
	Type string `json:"type"`
	core.Snapshot
	Info *core.Info `json:"info,omitempty"`
}

// ErrorData reports a rejected client request
type ErrorData struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// clientMessage is what browsers send
type clientMessage struct {
	Focus string `json:"focus"`
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for development
	},
}

// Server streams a SolarSystem to browser clients
type Server struct {
	system   *core.SolarSystem
	systemMu sync.Mutex

	textures *texture.Cache
	webDir   string
	interval time.Duration
	stepper  *core.FrameStepper
	onFocus  func(*core.Body)

	clients   map[*websocket.Conn]*sync.Mutex
	clientsMu sync.RWMutex
}

// NewServer registers every body texture with the encoding cache
func NewServer(system *core.SolarSystem, webDir string, interval time.Duration) *Server {
	cache := texture.NewCache()
	for _, b := range system.Bodies {
		cache.Put(b.Texture)
	}
	return &Server{
		system:   system,
		textures: cache,
		webDir:   webDir,
		interval: interval,
		stepper:  core.NewFrameStepper(60, 30),
		clients:  make(map[*websocket.Conn]*sync.Mutex),
	}
}

// Handler returns the HTTP routes
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.serveHome)
	mux.HandleFunc("/ws", s.handleWebSocket)
	mux.HandleFunc("/textures/", s.serveTexture)
	mux.Handle("/static/", http.StripPrefix("/static/", http.FileServer(http.Dir(filepath.Join(s.webDir, "static")))))
	return mux
}

// ListenAndServe starts the simulation loop and blocks serving HTTP
func (s *Server) ListenAndServe(port int) error {
	go s.simulationLoop()

	addr := fmt.Sprintf(":%d", port)
	fmt.Printf("Server starting on http://localhost%s\n", addr)
	return http.ListenAndServe(addr, s.Handler())
}

func (s *Server) serveHome(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	http.ServeFile(w, r, filepath.Join(s.webDir, "index.html"))
}

// serveTexture answers /textures/{body}.png
func (s *Server) serveTexture(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimSuffix(strings.TrimPrefix(r.URL.Path, "/textures/"), ".png")
	data, ok, err := s.textures.PNG(name)
	if err != nil {
		log.Println("Texture encode error:", err)
		http.Error(w, "encoding failed", http.StatusInternalServerError)
		return
	}
	if !ok {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Write(data)
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println("WebSocket upgrade error:", err)
		return
	}
	defer conn.Close()

	connMutex := &sync.Mutex{}
	s.clientsMu.Lock()
	s.clients[conn] = connMutex
	count := len(s.clients)
	s.clientsMu.Unlock()
	defer func() {
		s.clientsMu.Lock()
		delete(s.clients, conn)
		count := len(s.clients)
		s.clientsMu.Unlock()
		fmt.Printf("Client disconnected. Active clients: %d\n", count)
	}()
	fmt.Printf("New client connected. Active clients: %d\n", count)

	initMsg, err := s.sceneInit()
	if err != nil {
		log.Println("Scene encode error:", err)
		return
	}
	if err := s.send(conn, connMutex, initMsg); err != nil {
		log.Println("WebSocket write error:", err)
		return
	}

	for {
		var msg clientMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Println("WebSocket read error:", err)
			}
			break
		}
		if msg.Focus == "" {
			continue
		}
		if err := s.focus(msg.Focus); err != nil {
			s.reject(conn, connMutex, err)
		}
	}
}

// focus moves the shared camera; every client sees the same flight
func (s *Server) focus(name string) error {
	s.systemMu.Lock()
	body, err := s.system.FocusOn(name)
	s.systemMu.Unlock()
	if err != nil {
		return err
	}

	fmt.Printf("Focus: %s\n", name)
	if s.onFocus != nil {
		s.onFocus(body)
	}
	return nil
}

func (s *Server) sceneInit() (SceneInit, error) {
	s.systemMu.Lock()
	defer s.systemMu.Unlock()

	msg := SceneInit{
		Type:      "scene_init",
		Particles: *s.system.Particles,
		Camera:    *s.system.Camera,
	}
	for _, b := range s.system.Bodies {
		encoded, _, err := s.textures.Base64PNG(b.Name)
		if err != nil {
			return SceneInit{}, errors.Wrapf(err, "texture %s", b.Name)
		}
		data := BodyData{
			BodyDef:   b.BodyDef,
			LowColor:  b.Surface.Low,
			HighColor: b.Surface.High,
			Material:  b.Material(),
			Texture:   encoded,
			TextureW:  b.Texture.Width(),
			TextureH:  b.Texture.Height(),
		}
		for _, p := range b.OrbitPath() {
			data.Orbit = append(data.Orbit, [3]float64(p))
		}
		msg.Bodies = append(msg.Bodies, data)
	}
	return msg, nil
}

// frame steps the scene for elapsed wall time and returns the new pose
func (s *Server) frame(elapsed time.Duration) FrameData {
	s.systemMu.Lock()
	defer s.systemMu.Unlock()

	for n := s.stepper.Advance(elapsed); n > 0; n-- {
		s.system.Step()
	}

	data := FrameData{Type: "frame", Snapshot: s.system.Snapshot()}
	if b := s.system.Camera.Following(); b != nil {
		info := b.Info
		data.Info = &info
	}
	return data
}

func (s *Server) simulationLoop() {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	lastUpdate := time.Now()
	frameCount := 0
	lastReport := time.Now()

	for now := range ticker.C {
		data := s.frame(now.Sub(lastUpdate))
		lastUpdate = now

		s.broadcast(data)

		frameCount++
		if now.Sub(lastReport) > 10*time.Second {
			s.clientsMu.RLock()
			clients := len(s.clients)
			s.clientsMu.RUnlock()
			fmt.Printf("Server ticks: %.1f/s, frame %d, clients: %d\n",
				float64(frameCount)/now.Sub(lastReport).Seconds(), data.Frame, clients)
			frameCount = 0
			lastReport = now
		}
	}
}

// send writes v as one JSON text message under the connection's mutex
func (s *Server) send(conn *websocket.Conn, mu *sync.Mutex, v interface{}) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return errors.Wrap(err, "marshal")
	}
	mu.Lock()
	defer mu.Unlock()
	return conn.WriteMessage(websocket.TextMessage, payload)
}

// reject reports a failed client request back to that client
func (s *Server) reject(conn *websocket.Conn, mu *sync.Mutex, reason error) {
	if err := s.send(conn, mu, ErrorData{Type: "error", Message: reason.Error()}); err != nil {
		log.Println("WebSocket write error:", err)
	}
}

func (s *Server) broadcast(v interface{}) {
	s.clientsMu.RLock()
	if len(s.clients) == 0 {
		s.clientsMu.RUnlock()
		return
	}
	conns := make([]*websocket.Conn, 0, len(s.clients))
	mutexes := make([]*sync.Mutex, 0, len(s.clients))
	for conn, mu := range s.clients {
		conns = append(conns, conn)
		mutexes = append(mutexes, mu)
	}
	s.clientsMu.RUnlock()

	for i, conn := range conns {
		if err := s.send(conn, mutexes[i], v); err != nil {
			log.Println("WebSocket write error:", err)
			conn.Close()
			s.clientsMu.Lock()
			delete(s.clients, conn)
			s.clientsMu.Unlock()
		}
	}
}

package main

import (
	"bytes"
	"encoding/json"
	"io"
	"log"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/pkg/errors"

	"solarsystem/core"
	"solarsystem/texture"
)

func newTestServer(t *testing.T) (*Server, *httptest.Server) {
	t.Helper()
	synth := texture.NewSeededSynthesizer(5, texture.Options{CraterCount: 3, Strict: true})
	system, err := core.NewSolarSystem(core.Catalog(), synth, 8, rand.New(rand.NewSource(5)))
	if err != nil {
		t.Fatal(err)
	}
	srv := NewServer(system, t.TempDir(), 16*time.Millisecond)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return srv, ts
}

func dial(t *testing.T, ts *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	return conn
}

func TestSceneInitOnConnect(t *testing.T) {
	_, ts := newTestServer(t)
	conn := dial(t, ts)

	var msg struct {
		Type   string `json:"type"`
		Bodies []struct {
			Name     string `json:"name"`
			Surface  string `json:"surface"`
			Texture  string `json:"texture"`
			TextureW int    `json:"textureWidth"`
			Orbit    [][3]float64
		} `json:"bodies"`
		Particles struct {
			Particles []json.RawMessage `json:"particles"`
		} `json:"particles"`
	}
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("read: %v", err)
	}

	if msg.Type != "scene_init" {
		t.Fatalf("type = %q, want scene_init", msg.Type)
	}
	if len(msg.Bodies) != len(core.Catalog()) {
		t.Fatalf("got %d bodies", len(msg.Bodies))
	}
	for _, b := range msg.Bodies {
		if b.Texture == "" || b.TextureW != 8 {
			t.Errorf("%s: missing texture", b.Name)
		}
		if _, err := texture.ParseBodyType(b.Surface); err != nil {
			t.Errorf("%s: surface %q: %v", b.Name, b.Surface, err)
		}
	}
	if msg.Bodies[0].Name != "sun" || len(msg.Bodies[0].Orbit) != 0 {
		t.Error("sun should come first without an orbit")
	}
	if len(msg.Bodies[1].Orbit) != 129 {
		t.Errorf("mercury orbit has %d points", len(msg.Bodies[1].Orbit))
	}
	if len(msg.Particles.Particles) != core.DefaultParticleCount {
		t.Errorf("got %d particles", len(msg.Particles.Particles))
	}
}

func TestFocusMessages(t *testing.T) {
	srv, ts := newTestServer(t)
	conn := dial(t, ts)

	var first map[string]interface{}
	if err := conn.ReadJSON(&first); err != nil {
		t.Fatal(err)
	}

	if err := conn.WriteJSON(map[string]string{"focus": "pluto"}); err != nil {
		t.Fatal(err)
	}
	var reply ErrorData
	if err := conn.ReadJSON(&reply); err != nil {
		t.Fatal(err)
	}
	if reply.Type != "error" || !strings.Contains(reply.Message, "pluto") {
		t.Errorf("reply = %+v", reply)
	}

	if err := conn.WriteJSON(map[string]string{"focus": "saturn"}); err != nil {
		t.Fatal(err)
	}

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		frame := srv.frame(20 * time.Millisecond)
		if frame.Focus == "saturn" {
			if frame.Info == nil || frame.Info.Name != "土星 (Saturn)" {
				t.Errorf("info = %+v", frame.Info)
			}
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("focus request never reached the scene")
}

func TestFrameAdvancesScene(t *testing.T) {
	srv, _ := newTestServer(t)

	first := srv.frame(0)
	second := srv.frame(100 * time.Millisecond)
	if second.Frame <= first.Frame {
		t.Errorf("frame did not advance: %d -> %d", first.Frame, second.Frame)
	}
	if second.Type != "frame" || len(second.Bodies) != len(core.Catalog()) {
		t.Errorf("bad frame: %+v", second)
	}
}

func TestServeTexture(t *testing.T) {
	_, ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/textures/earth.png")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK || resp.Header.Get("Content-Type") != "image/png" {
		t.Fatalf("status %d, type %q", resp.StatusCode, resp.Header.Get("Content-Type"))
	}
	body, _ := io.ReadAll(resp.Body)
	if !strings.HasPrefix(string(body), "\x89PNG") {
		t.Error("body is not a PNG")
	}

	missing, err := http.Get(ts.URL + "/textures/pluto.png")
	if err != nil {
		t.Fatal(err)
	}
	missing.Body.Close()
	if missing.StatusCode != http.StatusNotFound {
		t.Errorf("unknown texture status = %d", missing.StatusCode)
	}
}

func TestRejectLogsWriteFailure(t *testing.T) {
	srv, _ := newTestServer(t)

	serverConns := make(chan *websocket.Conn, 1)
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("upgrade: %v", err)
			return
		}
		serverConns <- conn
	}))
	defer ts.Close()

	client := dial(t, ts)
	defer client.Close()
	conn := <-serverConns
	conn.Close()

	var logs bytes.Buffer
	log.SetOutput(&logs)
	defer log.SetOutput(os.Stderr)

	srv.reject(conn, &sync.Mutex{}, errors.New("unknown body"))
	if !strings.Contains(logs.String(), "WebSocket write error") {
		t.Errorf("write failure not logged, got %q", logs.String())
	}
}

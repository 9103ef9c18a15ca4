package main

import (
	"net/http"
	"time"

	"printerid/logger"
	"printerid/probe"

	"github.com/gorilla/websocket"
)

var probeUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// streamMessage is one frame of the live probe stream: per-stage events
// while the probe runs, then a single result frame.
type streamMessage struct {
	Type   string        `json:"type"` // "event" | "result"
	Event  *probe.Event  `json:"event,omitempty"`
	Result *probe.Result `json:"result,omitempty"`
}

// handleProbeStream handles GET /ws/probe?ip=... - upgrades to a WebSocket
// and streams probe progress events followed by the final result. The probe
// itself stays a single synchronous flow; the socket is only a viewport.
func (a *API) handleProbeStream(w http.ResponseWriter, r *http.Request) {
	ip := r.URL.Query().Get("ip")
	if ip == "" {
		http.Error(w, "ip query parameter required", http.StatusBadRequest)
		return
	}

	conn, err := probeUpgrader.Upgrade(w, r, nil)
	if err != nil {
		if logger.Global != nil {
			logger.Global.Warn("websocket upgrade failed", "error", err.Error())
		}
		return
	}
	defer conn.Close()

	force := r.URL.Query().Get("force") == "true"
	res := a.prober.Probe(r.Context(), ip, probe.Options{
		SkipReachability: force,
		Observer: func(ev probe.Event) {
			if err := conn.WriteJSON(streamMessage{Type: "event", Event: &ev}); err != nil {
				if logger.Global != nil {
					logger.Global.Debug("websocket event write failed", "ip", ip, "error", err.Error())
				}
			}
		},
	})

	if err := conn.WriteJSON(streamMessage{Type: "result", Result: &res}); err != nil {
		if logger.Global != nil {
			logger.Global.Debug("websocket result write failed", "ip", ip, "error", err.Error())
		}
	}
	conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(time.Second))
}

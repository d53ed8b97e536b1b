// Package server exposes HTTP handlers, including WebSocket upgrades, health
// checks, lobby statistics and the built-in play page.
package server

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     checkOrigin,
}

// ServeWS handles WebSocket upgrade requests. It validates that the request
// uses the GET method, upgrades the connection, and hands the new client to
// the hub, which starts its read and write pumps.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed. WebSocket endpoint only accepts GET requests.", http.StatusMethodNotAllowed)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade failed: %v", err)
		return
	}

	client := NewClient(conn, h, r.RemoteAddr)
	if !h.Register(client) {
		log.Printf("Hub is shut down; rejecting connection from %s", r.RemoteAddr)
		_ = conn.Close()
	}
}

// ServeStats reports connection, queue and match counts as JSON.
func (h *Hub) ServeStats(w http.ResponseWriter, _ *http.Request) {
	stats, ok := h.Stats()
	if !ok {
		http.Error(w, "Lobby is shutting down", http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(stats); err != nil {
		log.Printf("Error writing stats response: %v", err)
	}
}

// HealthHandler provides a simple health check endpoint that returns server status.
// It responds with a plain text message indicating the server is running.
func HealthHandler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	_, _ = fmt.Fprintf(w, "GoChess server is running!")
}

// PlayPageHandler serves a small HTML client for trying the pairing protocol
// by hand: join with a color preference, send moves, and leave.
func PlayPageHandler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html")
	if _, err := fmt.Fprint(w, playPage); err != nil {
		log.Printf("Error writing HTML response: %v", err)
	}
}

const playPage = `<!DOCTYPE html>
<html>
<head>
    <title>GoChess Lobby</title>
    <style>
        body { font-family: Arial, sans-serif; margin: 20px; }
        #log {
            border: 1px solid #ccc;
            height: 300px;
            padding: 10px;
            overflow-y: scroll;
            margin: 10px 0;
            background-color: #f9f9f9;
        }
        input[type="text"] { width: 60px; padding: 5px; margin-right: 5px; }
        select, button { padding: 5px 10px; margin-right: 5px; }
        .status { margin: 10px 0; padding: 5px; border-radius: 3px; }
        .connected { background-color: #d4edda; color: #155724; }
        .disconnected { background-color: #f8d7da; color: #721c24; }
    </style>
</head>
<body>
    <h1>GoChess Lobby</h1>

    <div id="status" class="status disconnected">Disconnected</div>

    <div>
        <button id="connectButton" onclick="toggleConnection()">Connect</button>
        <select id="preferred">
            <option value="random">random</option>
            <option value="white">white</option>
            <option value="black">black</option>
        </select>
        <button onclick="join()">Join</button>
        <button onclick="leave()">Leave</button>
    </div>

    <div style="margin-top: 10px">
        <input type="text" id="from" placeholder="e2">
        <input type="text" id="to" placeholder="e4">
        <input type="text" id="promotion" placeholder="q">
        <button onclick="move()">Send move</button>
    </div>

    <div id="log"></div>

    <script>
        let ws = null;
        const logDiv = document.getElementById('log');
        const statusDiv = document.getElementById('status');
        const connectButton = document.getElementById('connectButton');

        function addLine(text, color) {
            const line = document.createElement('div');
            line.style.color = color || 'gray';
            line.textContent = text;
            logDiv.appendChild(line);
            logDiv.scrollTop = logDiv.scrollHeight;
        }

        function updateStatus(connected) {
            statusDiv.textContent = connected ? 'Connected' : 'Disconnected';
            statusDiv.className = 'status ' + (connected ? 'connected' : 'disconnected');
            connectButton.textContent = connected ? 'Disconnect' : 'Connect';
        }

        function send(obj) {
            if (ws && ws.readyState === WebSocket.OPEN) {
                ws.send(JSON.stringify(obj));
                addLine('> ' + JSON.stringify(obj), 'blue');
            }
        }

        function connect() {
            const scheme = location.protocol === 'https:' ? 'wss://' : 'ws://';
            ws = new WebSocket(scheme + location.host + '/ws');
            ws.onopen = function() { updateStatus(true); addLine('Connected'); };
            ws.onmessage = function(event) { addLine('< ' + event.data, 'green'); };
            ws.onclose = function() { updateStatus(false); addLine('Connection closed'); ws = null; };
        }

        function toggleConnection() {
            if (ws && ws.readyState === WebSocket.OPEN) {
                ws.close();
            } else {
                connect();
            }
        }

        function join() {
            send({ type: 'join', preferred: document.getElementById('preferred').value });
        }

        function leave() {
            send({ type: 'leave' });
        }

        function move() {
            const msg = {
                type: 'move',
                from: document.getElementById('from').value,
                to: document.getElementById('to').value
            };
            const promotion = document.getElementById('promotion').value;
            if (promotion) {
                msg.promotion = promotion;
            }
            send(msg);
        }
    </script>
</body>
</html>`

// Package network is the lockstep transport adapter: it carries
// per-tick sim.PlayerCommands and sim.GameHash values between peers
// over WebSocket connections, fanning inbound peer messages into a
// single channel the host drains into the simulation's Lockstep
// buffer.
package network

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/websocket"
	channerics "github.com/niceyeti/channerics/channels"

	"tacsim/internal/sim"
)

// Frame is the wire message exchanged each tick: either a batch of
// commands from one player, or that player's hash for the tick they
// just simulated (spec §5's lockstep protocol).
type Frame struct {
	Player   uint32              `json:"player"`
	Tick     int64               `json:"tick"`
	Commands []sim.PlayerCommand `json:"commands,omitempty"`
	Hash     *uint32             `json:"hash,omitempty"`
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Peer is one connected player's WebSocket transport.
type Peer struct {
	conn   *websocket.Conn
	Player sim.PlayerId
	inbox  chan Frame
}

// Accept upgrades an incoming HTTP request to a Peer connection for
// the given player slot, and starts its read pump.
func Accept(w http.ResponseWriter, r *http.Request, player sim.PlayerId, done <-chan struct{}) (*Peer, error) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return nil, err
	}
	p := &Peer{conn: conn, Player: player, inbox: make(chan Frame, 64)}
	go p.readPump(done)
	return p, nil
}

// Dial connects out to a remote peer as a WebSocket client.
func Dial(url string, player sim.PlayerId, done <-chan struct{}) (*Peer, error) {
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		return nil, err
	}
	p := &Peer{conn: conn, Player: player, inbox: make(chan Frame, 64)}
	go p.readPump(done)
	return p, nil
}

func (p *Peer) readPump(done <-chan struct{}) {
	defer close(p.inbox)
	for {
		_, data, err := p.conn.ReadMessage()
		if err != nil {
			return
		}
		var f Frame
		if err := json.Unmarshal(data, &f); err != nil {
			continue
		}
		select {
		case p.inbox <- f:
		case <-done:
			return
		}
	}
}

// Send writes a frame to this peer.
func (p *Peer) Send(f Frame) error {
	data, err := json.Marshal(f)
	if err != nil {
		return err
	}
	return p.conn.WriteMessage(websocket.TextMessage, data)
}

func (p *Peer) Close() error { return p.conn.Close() }

// Hub fans every connected peer's inbound frames into one channel via
// channerics.Merge, so the host can drain all peers with a single
// select loop regardless of player count.
type Hub struct {
	peers  []*Peer
	merged <-chan Frame
}

// NewHub merges peers' inbox channels. Peers must already be reading;
// adding a peer after NewHub is not supported — rebuild the Hub.
func NewHub(done <-chan struct{}, peers ...*Peer) *Hub {
	chans := make([]<-chan Frame, len(peers))
	for i, p := range peers {
		chans[i] = p.inbox
	}
	return &Hub{peers: peers, merged: channerics.Merge(done, chans...)}
}

// Frames returns the merged inbound stream from every peer.
func (h *Hub) Frames() <-chan Frame { return h.merged }

// Broadcast sends f to every connected peer, logging nothing on a
// failed write — a peer that stops responding will also stop
// supplying PushHash, so CheckHashes degrades to "not yet" rather
// than silently resyncing for it.
func (h *Hub) Broadcast(f Frame) {
	for _, p := range h.peers {
		_ = p.Send(f)
	}
}

// CommandsToFrame converts one player's tick commands to a wire Frame.
func CommandsToFrame(player sim.PlayerId, tick int64, cmds []sim.PlayerCommand) Frame {
	return Frame{Player: uint32(playerSlotOf(player)), Tick: tick, Commands: cmds}
}

// HashToFrame converts a player's computed hash to a wire Frame.
func HashToFrame(player sim.PlayerId, tick int64, hash sim.GameHash) Frame {
	h := uint32(hash)
	return Frame{Player: uint32(playerSlotOf(player)), Tick: tick, Hash: &h}
}

func playerSlotOf(p sim.PlayerId) int { return p.Slot() }

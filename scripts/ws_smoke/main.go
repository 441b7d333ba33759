package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/rs/zerolog"

	"github.com/vovakirdan/roomrelay/internal/proto"
)

var logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

func main() {
	if err := run(); err != nil {
		logger.Error().Err(err).Msg("ws_smoke failed")
		os.Exit(1)
	}
	logger.Info().Msg("ws_smoke ok")
}

type peer struct {
	name string
	conn *websocket.Conn
	id   string
}

func run() error {
	addr := flag.String("addr", "ws://localhost:8000/ws", "WebSocket address")
	master := flag.String("master", "alice", "userName of the room creator")
	player := flag.String("player", "bob", "userName of the joining player")
	timeout := flag.Duration("timeout", 5*time.Second, "total timeout for the run")
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	m, err := dial(ctx, *addr, *master)
	if err != nil {
		return err
	}
	defer m.conn.Close(websocket.StatusNormalClosure, "bye")
	p, err := dial(ctx, *addr, *player)
	if err != nil {
		return err
	}
	defer p.conn.Close(websocket.StatusNormalClosure, "bye")

	if err := m.send(ctx, proto.InboundTypeMake, map[string]any{"userName": m.name}); err != nil {
		return err
	}
	made, err := m.expect(ctx, proto.OutboundTypeMake)
	if err != nil {
		return err
	}
	code, _ := made["gameCode"].(string)
	if made["status"] != true || code == "" {
		return fmt.Errorf("make failed: %v", made)
	}
	m.id, _ = made["connectionId"].(string)
	logger.Info().Str("code", code).Str("master_id", m.id).Msg("room created")

	if err := p.send(ctx, proto.InboundTypeJoin, map[string]any{"gameCode": code, "userName": p.name}); err != nil {
		return err
	}
	joined, err := p.expect(ctx, proto.OutboundTypeJoin)
	if err != nil {
		return err
	}
	if joined["status"] != true {
		return fmt.Errorf("join failed: %v", joined)
	}
	p.id, _ = joined["connectionId"].(string)
	if _, err := m.expect(ctx, proto.OutboundTypeJoin); err != nil {
		return err
	}
	logger.Info().Str("player_id", p.id).Msg("player joined")

	if err := m.send(ctx, proto.InboundTypeSend, map[string]any{"gameCode": code, "action": "START_GAME"}); err != nil {
		return err
	}
	for _, c := range []*peer{m, p} {
		recv, err := c.expect(ctx, proto.OutboundTypeRecv)
		if err != nil {
			return err
		}
		if recv["connectionId"] != m.id {
			return fmt.Errorf("%s: broadcast stamped with %v, want %s", c.name, recv["connectionId"], m.id)
		}
	}
	logger.Info().Msg("broadcast delivered to both peers")

	if err := m.send(ctx, proto.InboundTypeSendDirect, map[string]any{"to": p.id, "action": "YOUR_TURN"}); err != nil {
		return err
	}
	direct, err := p.expect(ctx, proto.OutboundTypeRecv)
	if err != nil {
		return err
	}
	if direct["action"] != "YOUR_TURN" {
		return fmt.Errorf("direct message mismatch: %v", direct)
	}
	logger.Info().Msg("direct message delivered")
	return nil
}

func dial(ctx context.Context, addr, name string) (*peer, error) {
	conn, _, err := websocket.Dial(ctx, addr, nil)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", name, err)
	}
	return &peer{name: name, conn: conn}, nil
}

func (p *peer) send(ctx context.Context, typ string, data map[string]any) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", typ, err)
	}
	if err := wsjson.Write(ctx, p.conn, proto.Inbound{Type: typ, Data: raw}); err != nil {
		return fmt.Errorf("%s send %s: %w", p.name, typ, err)
	}
	return nil
}

func (p *peer) expect(ctx context.Context, typ string) (map[string]any, error) {
	var out proto.Outbound
	if err := wsjson.Read(ctx, p.conn, &out); err != nil {
		return nil, fmt.Errorf("%s read: %w", p.name, err)
	}
	logger.Debug().Str("peer", p.name).Str("type", out.Type).Interface("data", out.Data).Msg("received")
	if out.Type != typ {
		return nil, fmt.Errorf("%s: expected %s, got %s", p.name, typ, out.Type)
	}
	return out.Data, nil
}

package chat

import (
	"context"
	"fmt"

	"github.com/coder/websocket"
)

// wsChannel adapts a websocket connection to the Channel surface.
type wsChannel struct {
	conn *websocket.Conn
}

func (w *wsChannel) Read(ctx context.Context) ([]byte, error) {
	_, data, err := w.conn.Read(ctx)
	return data, err
}

func (w *wsChannel) Write(ctx context.Context, data []byte) error {
	return w.conn.Write(ctx, websocket.MessageText, data)
}

func (w *wsChannel) Close() error {
	return w.conn.Close(websocket.StatusNormalClosure, "session ended")
}

// WebSocketDialer opens the backend chat channel at addr.
func WebSocketDialer(ctx context.Context, addr string) (Channel, error) {
	conn, _, err := websocket.Dial(ctx, addr, nil)
	if err != nil {
		return nil, fmt.Errorf("dial chat channel: %w", err)
	}
	return &wsChannel{conn: conn}, nil
}

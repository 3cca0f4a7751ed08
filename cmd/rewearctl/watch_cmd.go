package main

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/gorilla/websocket"
	"github.com/spf13/cobra"
)

const viewerHeader = "X-User-ID"

func newWatchCmd() *cobra.Command {
	var (
		host   string
		userID string
		secure bool
		limit  int
	)
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Tail the admin moderation stream",
		RunE: func(cmd *cobra.Command, args []string) error {
			scheme := "ws"
			if secure {
				scheme = "wss"
			}
			u := url.URL{Scheme: scheme, Host: host, Path: "/api/ws/admin"}
			return watch(cmd, u.String(), userID, limit)
		},
	}
	cmd.Flags().StringVar(&host, "host", "localhost:8080", "API server host")
	cmd.Flags().StringVar(&userID, "user", "admin-1", "administrator id sent as "+viewerHeader)
	cmd.Flags().BoolVar(&secure, "tls", false, "connect with wss")
	cmd.Flags().IntVar(&limit, "limit", 0, "exit after this many events (0 streams until interrupted)")
	return cmd
}

// watch prints every event received on the admin stream, one per line.
func watch(cmd *cobra.Command, endpoint, userID string, limit int) error {
	dialer := websocket.Dialer{HandshakeTimeout: 10 * time.Second}
	header := http.Header{}
	header.Set(viewerHeader, userID)

	conn, resp, err := dialer.DialContext(cmd.Context(), endpoint, header)
	if err != nil {
		if resp != nil {
			return fmt.Errorf("dial %s: %w (status %d)", endpoint, err, resp.StatusCode)
		}
		return fmt.Errorf("dial %s: %w", endpoint, err)
	}
	defer conn.Close()

	// Unblock ReadMessage when the command is cancelled.
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-cmd.Context().Done():
			_ = conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(time.Second))
			_ = conn.Close()
		case <-done:
		}
	}()

	for received := 0; limit == 0 || received < limit; received++ {
		_, message, err := conn.ReadMessage()
		if err != nil {
			if cmd.Context().Err() != nil || websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return nil
			}
			var closeErr *websocket.CloseError
			if errors.As(err, &closeErr) {
				return fmt.Errorf("stream closed: %s", closeErr.Text)
			}
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(message))
	}
	return nil
}

package marketdata

import (
	"context"
	"fmt"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gorilla/websocket"

	"earnsim/internal/models"
	"earnsim/pkg/logger"
)

// Feed ingests 1-minute best bid/ask rows over a provider websocket into
// the book store.
type Feed struct {
	url    string
	dialer *websocket.Dialer
	repo   *Repo
}

func NewFeed(url string, repo *Repo) *Feed {
	return &Feed{
		url:    url,
		dialer: &websocket.Dialer{},
		repo:   repo,
	}
}

type feedSub struct {
	Op   string   `json:"op"`
	Args []string `json:"args"`
}

type feedMsg struct {
	Symbol string  `json:"symbol"`
	TS     int64   `json:"ts"` // unix millis
	Bid    float64 `json:"bid"`
	Ask    float64 `json:"ask"`
}

// Run subscribes to the given symbols and writes quotes until the context
// is done or the connection drops.
func (f *Feed) Run(ctx context.Context, symbols []string) error {
	conn, _, err := f.dialer.DialContext(ctx, f.url, nil)
	if err != nil {
		return fmt.Errorf("dial feed: %w", err)
	}
	defer conn.Close()

	sub, err := sonic.Marshal(feedSub{Op: "subscribe", Args: symbols})
	if err != nil {
		return fmt.Errorf("marshal subscribe: %w", err)
	}
	if err := conn.WriteMessage(websocket.TextMessage, sub); err != nil {
		return fmt.Errorf("subscribe: %w", err)
	}
	logger.Info("feed: subscribed to %d symbols", len(symbols))

	go func() {
		<-ctx.Done()
		_ = conn.Close()
	}()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return fmt.Errorf("read feed: %w", err)
		}
		var msg feedMsg
		if err := sonic.Unmarshal(data, &msg); err != nil {
			logger.Warn("feed: bad message: %v", err)
			continue
		}
		if msg.Symbol == "" || msg.Bid <= 0 || msg.Ask <= 0 {
			continue
		}
		et := time.UnixMilli(msg.TS).In(eastern)
		day := time.Date(et.Year(), et.Month(), et.Day(), 0, 0, 0, 0, time.UTC)
		tod := float64(et.Hour()*60+et.Minute()) + float64(et.Second())/60
		if err := f.repo.InsertBBO(ctx, msg.Symbol, day, tod, models.Quote{Bid: msg.Bid, Ask: msg.Ask}); err != nil {
			logger.Error("feed: insert %s: %v", msg.Symbol, err)
		}
	}
}

var eastern = func() *time.Location {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		return time.UTC
	}
	return loc
}()

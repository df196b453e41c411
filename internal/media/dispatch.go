package media

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

// Job is one inbound call assignment from the gateway.
type Job struct {
	RoomName string
	Metadata string
}

type JobHandler func(ctx context.Context, job Job)

// Dispatcher subscribes to the gateway's agent queue and hands each inbound
// room to the handler on its own goroutine. It reconnects with backoff until
// the context is cancelled; one handler failing never stops dispatch.
type Dispatcher struct {
	baseURL   string
	apiKey    string
	apiSecret string
	log       logrus.FieldLogger
}

func NewDispatcher(baseURL, apiKey, apiSecret string, log logrus.FieldLogger) *Dispatcher {
	return &Dispatcher{baseURL: baseURL, apiKey: apiKey, apiSecret: apiSecret, log: log}
}

func (d *Dispatcher) Run(ctx context.Context, handle JobHandler) error {
	backoff := time.Second
	for {
		err := d.serve(ctx, handle)
		if ctx.Err() != nil {
			return ctx.Err()
		}
		d.log.WithError(err).Warn("dispatch connection lost, reconnecting")

		select {
		case <-time.After(backoff):
		case <-ctx.Done():
			return ctx.Err()
		}
		if backoff < 30*time.Second {
			backoff *= 2
		}
	}
}

func (d *Dispatcher) serve(ctx context.Context, handle JobHandler) error {
	u, err := url.Parse(d.baseURL)
	if err != nil {
		return err
	}
	u.Path = "/agent"

	hdr := http.Header{}
	hdr.Set("X-Api-Key", d.apiKey)
	hdr.Set("X-Api-Secret", d.apiSecret)

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, u.String(), hdr)
	if err != nil {
		return err
	}
	defer conn.Close()

	// drop the connection promptly on shutdown
	stop := make(chan struct{})
	defer close(stop)
	go func() {
		select {
		case <-ctx.Done():
			_ = conn.Close()
		case <-stop:
		}
	}()

	d.log.Info("listening for dispatched calls")
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return err
		}
		var f frame
		if err := json.Unmarshal(data, &f); err != nil {
			d.log.WithError(err).Warn("bad dispatch frame")
			continue
		}
		if f.Type != "job" || f.Room == "" {
			continue
		}
		job := Job{RoomName: f.Room, Metadata: f.Metadata}
		go handle(ctx, job)
	}
}

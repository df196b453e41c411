// Package transcript buffers committed conversation turns and drains them in
// order to an append-only log file. Producers never block on the drain side;
// a sentinel marks end-of-stream and Shutdown guarantees everything enqueued
// before it has hit the file.
package transcript

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/and-other-tales/reception/internal/models"
)

// TurnHook observes each drained entry. Hooks are best-effort fan-out (the
// Postgres archive, the Kafka publisher); a slow or failing hook must do its
// own error handling and never panics the drain loop.
type TurnHook func(e models.TranscriptEntry)

// Uploader pushes the finished transcript file to object storage.
type Uploader interface {
	Upload(ctx context.Context, objectName string, contentType string, r io.Reader) (string, error)
}

type Options struct {
	Hooks    []TurnHook
	Uploader Uploader
}

type Sink struct {
	roomName string
	path     string

	mu     sync.Mutex
	cond   *sync.Cond
	queue  []*models.TranscriptEntry // nil element is the end-of-stream sentinel
	closed bool

	f    *os.File
	w    *bufio.Writer
	done chan struct{}
	once sync.Once

	hooks    []TurnHook
	uploader Uploader
	log      logrus.FieldLogger
}

// NewSink opens the transcript file for the call and starts the drain loop.
func NewSink(dir, roomName string, log logrus.FieldLogger, opts Options) (*Sink, error) {
	path := filepath.Join(dir, roomName+"-transcript.log")
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}

	s := &Sink{
		roomName: roomName,
		path:     path,
		f:        f,
		w:        bufio.NewWriter(f),
		done:     make(chan struct{}),
		hooks:    opts.Hooks,
		uploader: opts.Uploader,
		log:      log.WithField("room", roomName),
	}
	s.cond = sync.NewCond(&s.mu)
	go s.drainLoop()
	return s, nil
}

// Path returns the transcript file location.
func (s *Sink) Path() string { return s.path }

// Enqueue appends an entry to the queue. It never blocks on the drain side;
// entries arriving after Shutdown are dropped.
func (s *Sink) Enqueue(e models.TranscriptEntry) {
	if s == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		s.log.WithField("role", e.Role).Debug("transcript entry after shutdown, dropped")
		return
	}
	s.queue = append(s.queue, &e)
	s.cond.Signal()
}

func (s *Sink) drainLoop() {
	defer close(s.done)
	for {
		s.mu.Lock()
		for len(s.queue) == 0 {
			s.cond.Wait()
		}
		e := s.queue[0]
		s.queue = s.queue[1:]
		s.mu.Unlock()

		if e == nil {
			// End of stream: everything before the sentinel is on disk
			// before the loop exits.
			if err := s.w.Flush(); err != nil {
				s.log.WithError(err).Error("transcript flush failed")
			}
			return
		}

		if err := s.write(*e); err != nil {
			s.log.WithError(err).Error("transcript write failed")
		}
		for _, hook := range s.hooks {
			hook(*e)
		}
	}
}

func (s *Sink) write(e models.TranscriptEntry) error {
	label := "USER"
	if e.Role == models.RoleAssistant {
		label = "AGENT"
	}
	ts := e.Timestamp.Format("2006-01-02 15:04:05.000000")
	_, err := fmt.Fprintf(s.w, "[%s] %s:\n%s\n\n", ts, label, e.Text)
	return err
}

// Shutdown enqueues the end-of-stream sentinel, waits for the drain loop to
// finish, and closes the file. Every entry enqueued before the call is on
// disk when it returns. Safe to call more than once.
func (s *Sink) Shutdown() error {
	if s == nil {
		return nil
	}
	var err error
	s.once.Do(func() {
		s.mu.Lock()
		s.closed = true
		s.queue = append(s.queue, nil)
		s.cond.Signal()
		s.mu.Unlock()

		<-s.done
		err = s.f.Close()
		s.upload()
	})
	return err
}

func (s *Sink) upload() {
	if s.uploader == nil {
		return
	}
	f, err := os.Open(s.path)
	if err != nil {
		s.log.WithError(err).Warn("transcript reopen for upload failed")
		return
	}
	defer f.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	object := fmt.Sprintf("transcripts/%s-%s.log", s.roomName, time.Now().UTC().Format("20060102T150405Z"))
	stored, err := s.uploader.Upload(ctx, object, "text/plain; charset=utf-8", f)
	if err != nil {
		s.log.WithError(err).Warn("transcript upload failed")
		return
	}
	s.log.WithField("object", strings.TrimSpace(stored)).Info("transcript uploaded")
}

// Package agent runs one call session end to end: registry bookkeeping,
// greeting, event hooks into the media backend, and guaranteed teardown.
package agent

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/and-other-tales/reception/internal/archive"
	"github.com/and-other-tales/reception/internal/events"
	"github.com/and-other-tales/reception/internal/fnc"
	"github.com/and-other-tales/reception/internal/info"
	"github.com/and-other-tales/reception/internal/llm"
	"github.com/and-other-tales/reception/internal/media"
	"github.com/and-other-tales/reception/internal/metrics"
	"github.com/and-other-tales/reception/internal/models"
	"github.com/and-other-tales/reception/internal/registry"
	"github.com/and-other-tales/reception/internal/transcript"
)

// Runner handles dispatched call jobs. One HandleJob invocation is one call
// session; the dispatcher runs each on its own goroutine.
type Runner struct {
	Registry  *registry.Registry
	Connector media.Connector
	LLM       llm.Provider
	Status    *events.StatusPublisher

	// Archive, Transcripts, and Uploader are optional; leave them nil to
	// run with the transcript file alone.
	TranscriptDir string
	Archive       archive.Store
	Transcripts   *events.TranscriptPublisher
	Uploader      transcript.Uploader

	Log *logrus.Logger
}

// HandleJob runs a call to completion. Whatever happens inside the call,
// the transcript sink is flushed and the registry entry removed before the
// function returns; errors are logged here and never propagate out.
func (r *Runner) HandleJob(ctx context.Context, job media.Job) {
	log := r.Log.WithField("room", job.RoomName)
	log.Info("call dispatched")

	rec := r.Registry.GetOrCreate(job.RoomName, job.Metadata)
	metrics.ActiveCalls.Set(float64(r.Registry.Len()))
	r.Status.Publish(ctx, job.RoomName, events.EventCallStarted, map[string]any{
		"caller_id": rec.Metadata["caller_id"],
	})

	sink, err := transcript.NewSink(r.TranscriptDir, job.RoomName, log, transcript.Options{
		Hooks:    r.turnHooks(job.RoomName, rec),
		Uploader: r.Uploader,
	})
	if err != nil {
		// A nil sink is safe to enqueue to and shut down; the call goes on
		// without a transcript rather than being refused.
		log.WithError(err).Error("transcript sink unavailable for this call")
		sink = nil
	}

	outcome := "ok"
	defer func() {
		if p := recover(); p != nil {
			log.WithField("panic", p).Error("call handler panicked")
			outcome = "error"
		}
		if serr := sink.Shutdown(); serr != nil {
			log.WithError(serr).Error("transcript shutdown failed")
		}
		r.Registry.Remove(job.RoomName)
		metrics.ActiveCalls.Set(float64(r.Registry.Len()))
		metrics.CallsHandled.WithLabelValues(outcome).Inc()
		r.Status.Publish(context.WithoutCancel(ctx), job.RoomName, events.EventCallEnded, nil)
		log.Info("call released")
	}()

	if err := r.run(ctx, job, rec, sink, log); err != nil {
		outcome = "error"
		log.WithError(err).Error("call ended with error")
	}
}

func (r *Runner) run(ctx context.Context, job media.Job, rec *models.CallRecord, sink *transcript.Sink, log *logrus.Entry) error {
	sess, err := r.Connector.Connect(ctx, job.RoomName)
	if err != nil {
		return err
	}
	defer sess.Close()

	call := &activeCall{
		sess:    sess,
		llm:     r.LLM,
		log:     log,
		history: []llm.Message{{Role: llm.RoleSystem, Content: systemPrompt}},
	}
	call.caps = fnc.NewRegistry()
	if err := call.caps.Register(info.CompanyInfoCapability(call, log)); err != nil {
		return err
	}

	participant, err := sess.WaitForParticipant(ctx)
	if err != nil {
		return err
	}
	// Identity and start time stick across reconnects.
	if rec.Identity == "" {
		rec.Identity = participant.Identity
	}
	if rec.StartedAt.IsZero() {
		rec.StartedAt = time.Now().UTC()
	}
	log.WithField("identity", participant.Identity).Info("participant joined")
	r.Status.Publish(ctx, job.RoomName, events.EventParticipantJoined, map[string]any{
		"identity": participant.Identity,
	})

	sess.OnChatMessage(func(m media.ChatMessage) {
		if m.Text == "" {
			return
		}
		go call.answerFromText(ctx, m.Text)
	})
	sess.OnUserTurnCommitted(func(ev media.TurnEvent) {
		text := models.FlattenContent(ev.Parts)
		call.note(llm.RoleUser, text)
		sink.Enqueue(models.TranscriptEntry{Timestamp: time.Now(), Role: models.RoleUser, Text: text})
	})
	sess.OnAssistantTurnCommitted(func(ev media.TurnEvent) {
		text := models.FlattenContent(ev.Parts)
		call.note(llm.RoleAssistant, text)
		sink.Enqueue(models.TranscriptEntry{Timestamp: time.Now(), Role: models.RoleAssistant, Text: text})
	})

	if err := call.Say(ctx, greeting, true); err != nil {
		log.WithError(err).Warn("greeting failed")
	}

	return sess.WaitForDisconnect(ctx)
}

// turnHooks fans each drained transcript entry out to the optional archive
// and Kafka publisher. Hook failures are logged downstream; the drain loop
// never sees them.
func (r *Runner) turnHooks(roomName string, rec *models.CallRecord) []transcript.TurnHook {
	log := r.Log.WithField("room", roomName)
	hooks := []transcript.TurnHook{
		func(e models.TranscriptEntry) {
			metrics.TranscriptTurns.WithLabelValues(string(e.Role)).Inc()
		},
	}
	if r.Archive != nil {
		hooks = append(hooks, func(e models.TranscriptEntry) {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := r.Archive.Append(ctx, roomName, e, rec.Metadata); err != nil {
				metrics.PublishFailures.WithLabelValues("archive").Inc()
				log.WithError(err).Warn("turn archive failed")
			}
		})
	}
	if r.Transcripts.Enabled() {
		hooks = append(hooks, func(e models.TranscriptEntry) {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			r.Transcripts.PublishTurn(ctx, roomName, e)
		})
	}
	return hooks
}

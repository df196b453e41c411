// callctl manages call rooms out of band: list who is on a call, or end a
// call by deleting its room.
//
// Usage:
//
//	callctl list
//	callctl end --room call-42
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/and-other-tales/reception/config"
	"github.com/and-other-tales/reception/internal/admin"
	"github.com/and-other-tales/reception/internal/logger"
)

func main() {
	_ = godotenv.Load()
	l := logger.New("callctl")

	listCmd := flag.NewFlagSet("list", flag.ExitOnError)
	endCmd := flag.NewFlagSet("end", flag.ExitOnError)
	endRoom := endCmd.String("room", "", "room name to end")

	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: callctl <list|end> [flags]")
		os.Exit(2)
	}

	cfg := config.Load()
	if !cfg.HasLiveKit() {
		l.Error("missing LiveKit credentials in environment variables")
		os.Exit(1)
	}

	client := admin.NewClient(admin.Config{
		URL:        cfg.LiveKitURL,
		APIKey:     cfg.LiveKitAPIKey,
		APISecret:  cfg.LiveKitAPISecret,
		RoomPrefix: cfg.RoomPrefix,
	}, l)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	switch os.Args[1] {
	case "list":
		_ = listCmd.Parse(os.Args[2:])
		listActiveCalls(ctx, client, l)
	case "end":
		_ = endCmd.Parse(os.Args[2:])
		if *endRoom == "" {
			l.Error("room name is required for 'end' action")
			os.Exit(1)
		}
		if client.EndCall(ctx, *endRoom) {
			l.WithField("room", *endRoom).Info("successfully ended call")
		} else {
			l.WithField("room", *endRoom).Error("failed to end call")
			os.Exit(1)
		}
	default:
		fmt.Fprintln(os.Stderr, "usage: callctl <list|end> [flags]")
		os.Exit(2)
	}
}

func listActiveCalls(ctx context.Context, client *admin.Client, l *logrus.Logger) {
	calls := client.ListActiveCalls(ctx)
	if len(calls) == 0 {
		l.Info("no active calls found")
		return
	}

	l.WithField("count", len(calls)).Info("active calls")
	for i, call := range calls {
		l.WithFields(logrus.Fields{
			"n":            i + 1,
			"room":         call.Room.Name,
			"created":      formatTime(call.Room.CreatedAt),
			"participants": len(call.Participants),
		}).Info("call")

		for _, p := range call.Participants {
			l.WithFields(logrus.Fields{
				"identity": p.Identity,
				"joined":   formatTime(p.JoinedAt),
			}).Info("participant")
		}
	}
}

func formatTime(v string) string {
	t := admin.ParseTime(v)
	if t.IsZero() {
		return "Unknown"
	}
	return t.Format("2006-01-02 15:04:05")
}

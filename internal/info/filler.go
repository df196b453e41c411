package info

import (
	"math/rand"
	"strings"

	"github.com/and-other-tales/reception/internal/models"
)

var fillerTemplates = []string{
	"Let me check our company information about {topic} for you.",
	"One moment while I retrieve information about {topic} for you.",
	"I'd be happy to tell you about {topic} at PI & Other Tales.",
}

// FillerMessage decides whether to stall the caller while a lookup runs.
// A filler is produced when the conversation is empty or the most recent
// turn did not come from the assistant; two assistant utterances in a row
// are avoided. The check races with live turns and is best-effort only.
func FillerMessage(lastRole models.Role, topic string) (string, bool) {
	if lastRole == models.RoleAssistant {
		return "", false
	}
	tpl := fillerTemplates[rand.Intn(len(fillerTemplates))]
	return strings.ReplaceAll(tpl, "{topic}", topic), true
}

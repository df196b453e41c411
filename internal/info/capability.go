package info

import (
	"context"
	"encoding/json"

	"github.com/sirupsen/logrus"

	"github.com/and-other-tales/reception/internal/fnc"
	"github.com/and-other-tales/reception/internal/models"
	"github.com/and-other-tales/reception/internal/utils"
)

// Voice is the slice of the live session the lookup needs: the role of the
// most recent conversation turn, and the ability to speak a filler sentence
// that is recorded into the conversation history.
type Voice interface {
	LastRole() models.Role
	Say(ctx context.Context, text string, addToHistory bool) error
}

const companyInfoSchema = `{
	"type": "object",
	"properties": {
		"topic": {
			"type": "string",
			"description": "The topic about the company that the user is asking about"
		}
	},
	"required": ["topic"]
}`

// CompanyInfoCapability builds the get_company_info capability for one call
// session. The handler speaks a filler message while the lookup resolves,
// then returns the canned category text to the model for answer synthesis.
func CompanyInfoCapability(voice Voice, log logrus.FieldLogger) fnc.Capability {
	return fnc.Capability{
		Name: "get_company_info",
		Description: "Called when the user asks about PI & Other Tales company information. " +
			"Returns information about the company based on the topic requested.",
		Parameters: json.RawMessage(companyInfoSchema),
		Handler: func(ctx context.Context, args json.RawMessage) (string, error) {
			const op = "info.CompanyInfo"

			var params struct {
				Topic string `json:"topic"`
			}
			if err := json.Unmarshal(args, &params); err != nil {
				return "", utils.E(utils.CodeInvalidArgument, op, "bad arguments", err)
			}
			topic := NormalizeTopic(params.Topic)

			if msg, ok := FillerMessage(voice.LastRole(), topic); ok {
				log.WithField("message", msg).Info("saying filler message")
				if err := voice.Say(ctx, msg, true); err != nil {
					log.WithError(err).Warn("filler message failed")
				}
			}

			category := Resolve(topic)
			log.WithFields(logrus.Fields{"topic": topic, "category": category}).Info("looking up company info")
			return Lookup(category), nil
		},
	}
}

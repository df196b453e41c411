package llm

import (
	"context"
	"encoding/json"

	openai "github.com/sashabaranov/go-openai"
	"github.com/sirupsen/logrus"

	"github.com/and-other-tales/reception/internal/fnc"
	"github.com/and-other-tales/reception/internal/utils"
)

// maxToolRounds bounds the model -> tool -> model loop per chat call.
const maxToolRounds = 4

type OpenAIChat struct {
	client *openai.Client
	model  string
	log    logrus.FieldLogger
}

func NewOpenAIChat(apiKey, model string, log logrus.FieldLogger) (*OpenAIChat, error) {
	const op = "llm.NewOpenAIChat"

	if apiKey == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "OPENAI_API_KEY is not set", nil)
	}
	if model == "" {
		model = openai.GPT4o
	}
	return &OpenAIChat{
		client: openai.NewClient(apiKey),
		model:  model,
		log:    log,
	}, nil
}

func (o *OpenAIChat) Close() error { return nil }

func (o *OpenAIChat) Chat(ctx context.Context, history []Message, caps *fnc.Registry) (string, error) {
	const op = "llm.OpenAIChat.Chat"

	msgs := make([]openai.ChatCompletionMessage, 0, len(history))
	for _, m := range history {
		msgs = append(msgs, openai.ChatCompletionMessage{Role: m.Role, Content: m.Content})
	}

	var tools []openai.Tool
	if caps != nil {
		for _, c := range caps.List() {
			tools = append(tools, openai.Tool{
				Type: openai.ToolTypeFunction,
				Function: &openai.FunctionDefinition{
					Name:        c.Name,
					Description: c.Description,
					Parameters:  c.Parameters,
				},
			})
		}
	}

	for round := 0; round < maxToolRounds; round++ {
		resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
			Model:    o.model,
			Messages: msgs,
			Tools:    tools,
		})
		if err != nil {
			return "", utils.E(utils.CodeExternal, op, "chat completion failed", err)
		}
		if len(resp.Choices) == 0 {
			return "", utils.E(utils.CodeExternal, op, "chat completion returned no choices", nil)
		}

		choice := resp.Choices[0].Message
		if len(choice.ToolCalls) == 0 {
			return choice.Content, nil
		}

		msgs = append(msgs, choice)
		for _, tc := range choice.ToolCalls {
			out, derr := caps.Dispatch(ctx, tc.Function.Name, json.RawMessage(tc.Function.Arguments))
			if derr != nil {
				o.log.WithError(derr).WithField("capability", tc.Function.Name).Warn("capability dispatch failed")
				out = "the requested information is unavailable right now"
			}
			msgs = append(msgs, openai.ChatCompletionMessage{
				Role:       openai.ChatMessageRoleTool,
				Content:    out,
				ToolCallID: tc.ID,
			})
		}
	}
	return "", utils.E(utils.CodeExternal, op, "tool-call rounds exhausted", nil)
}

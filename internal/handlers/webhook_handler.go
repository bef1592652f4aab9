package handlers

import (
	"encoding/json"
	"io"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/slack-go/slack"
	"github.com/slack-go/slack/slackevents"

	"github.com/yuchengtw/duty-roster-bot/internal/domain/contract"
	"github.com/yuchengtw/duty-roster-bot/internal/llm"
)

// WebhookHandler receives signed events from the messaging platform and
// relays user questions to the LLM. This path is glue: any failure turns
// into the scripted fallback reply, never an error to the platform.
type WebhookHandler struct {
	signingSecret string
	api           contract.SlackAPI
	chat          contract.ChatClient
}

func NewWebhook(signingSecret string, api contract.SlackAPI, chat contract.ChatClient) *WebhookHandler {
	return &WebhookHandler{
		signingSecret: signingSecret,
		api:           api,
		chat:          chat,
	}
}

// Events handles POST /webhook/events.
func (h *WebhookHandler) Events(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	// Verify the platform signature over the raw body
	verifier, err := slack.NewSecretsVerifier(c.Request.Header, h.signingSecret)
	if err != nil {
		c.Status(http.StatusUnauthorized)
		return
	}
	if _, err := verifier.Write(body); err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	if err := verifier.Ensure(); err != nil {
		c.Status(http.StatusUnauthorized)
		return
	}

	// An empty body is the platform's health check
	if len(body) == 0 {
		c.Status(http.StatusOK)
		return
	}

	event, err := slackevents.ParseEvent(json.RawMessage(body), slackevents.OptionNoVerifyToken())
	if err != nil {
		// Unparseable events are acknowledged, not retried by the platform
		log.Printf("Webhook: ignoring unparseable event: %v", err)
		c.Status(http.StatusOK)
		return
	}

	switch event.Type {
	case slackevents.URLVerification:
		var challenge slackevents.ChallengeResponse
		if err := json.Unmarshal(body, &challenge); err != nil {
			c.Status(http.StatusBadRequest)
			return
		}
		c.String(http.StatusOK, challenge.Challenge)
		return

	case slackevents.CallbackEvent:
		if msg, ok := event.InnerEvent.Data.(*slackevents.MessageEvent); ok {
			h.handleMessage(c, msg)
		}
	}

	c.Status(http.StatusOK)
}

// handleMessage relays one user message. Bot messages and empty texts are
// ignored to avoid reply loops.
func (h *WebhookHandler) handleMessage(c *gin.Context, msg *slackevents.MessageEvent) {
	if msg.BotID != "" || msg.Text == "" {
		return
	}

	reply, err := h.chat.Complete(c.Request.Context(), msg.Text)
	if err != nil {
		log.Printf("Webhook: LLM relay failed, sending fallback: %v", err)
		reply = llm.FallbackReply
	}

	if _, _, err := h.api.PostMessageContext(c.Request.Context(), msg.Channel, slack.MsgOptionText(reply, false)); err != nil {
		log.Printf("Webhook: failed to reply in %s: %v", msg.Channel, err)
	}
}

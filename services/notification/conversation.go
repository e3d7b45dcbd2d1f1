package notification

import (
	"context"
	"fmt"
	"time"

	"slate/database/kv"

	"go.uber.org/zap"
)

const conversationTTL = 24 * time.Hour

type PendingActionType string

const (
	ActionConfirmBooking    PendingActionType = "confirm_booking"
	ActionAcceptOpportunity PendingActionType = "accept_opportunity"
	ActionGroupInvite       PendingActionType = "group_invite"
)

// PendingAction is what an outbound message asked the recipient to answer.
type PendingAction struct {
	Type PendingActionType `json:"type"`
	Data map[string]string `json:"data"`
}

type ConversationState struct {
	Phone            string         `json:"phone"`
	AwaitingResponse bool           `json:"awaitingResponse"`
	PendingAction    *PendingAction `json:"pendingAction,omitempty"`
	LastMessageAt    time.Time      `json:"lastMessageAt"`
}

// Conversations tracks pending questions per phone number and answers replies.
type Conversations struct {
	Store   kv.Store
	Notify  NotificationService
	BaseURL string
	Logger  *zap.Logger
	Now     func() time.Time
}

func conversationKey(phone string) string { return "sms:" + phone }

// Ask sends body and remembers that a reply of the given kind is expected.
func (c *Conversations) Ask(ctx context.Context, to, body string, action PendingAction) error {
	if err := c.Notify.QueueSMS(ctx, to, body); err != nil {
		return err
	}
	state := ConversationState{Phone: to, AwaitingResponse: true, PendingAction: &action, LastMessageAt: c.now()}
	if err := c.Store.Set(ctx, conversationKey(to), state, conversationTTL); err != nil {
		return fmt.Errorf("failed to save conversation state: %w", err)
	}
	return nil
}

// HandleInbound answers a reply from phone and returns the text that was sent back.
func (c *Conversations) HandleInbound(ctx context.Context, from, body string) (string, error) {
	intent := ParseInboundReply(body)

	var state ConversationState
	found, err := c.Store.Get(ctx, conversationKey(from), &state)
	if err != nil {
		return "", fmt.Errorf("failed to load conversation state: %w", err)
	}
	if !found || state.PendingAction == nil {
		reply := "Hey! I don't have anything pending for you. Start planning at " + c.BaseURL
		return reply, c.Notify.SendSMS(ctx, from, reply)
	}

	data := state.PendingAction.Data
	var reply string
	done := true
	switch state.PendingAction.Type {
	case ActionConfirmBooking:
		switch intent {
		case ReplyConfirm:
			reply = fmt.Sprintf("Confirmed! Your reservation is all set. See your itinerary at %s/plan/%s", c.BaseURL, data["planId"])
		case ReplyDecline:
			reply = "No problem, I won't hold it. Reply anytime to plan something else."
		default:
			reply = "Sorry, I didn't catch that. Reply YES to confirm or NO to skip."
			done = false
		}
	case ActionAcceptOpportunity:
		if intent == ReplyConfirm {
			reply = fmt.Sprintf("Great choice! Booking %s for %s. I'll confirm shortly.", data["restaurantName"], data["time"])
		} else {
			reply = "No problem. I'll keep looking for spots that match your vibe."
		}
	case ActionGroupInvite:
		if intent == ReplyConfirm {
			reply = fmt.Sprintf("You're in! Add your preferences here: %s/group/%s", c.BaseURL, data["sessionId"])
		} else {
			reply = "Got it, maybe next time!"
		}
	default:
		c.Logger.Warn("unknown pending sms action", zap.String("type", string(state.PendingAction.Type)))
	}

	if done {
		if err := c.Store.Delete(ctx, conversationKey(from)); err != nil {
			c.Logger.Warn("failed to clear conversation state", zap.Error(err))
		}
	}
	if reply == "" {
		return "", nil
	}
	return reply, c.Notify.SendSMS(ctx, from, reply)
}

func (c *Conversations) now() time.Time {
	if c.Now == nil {
		return time.Now()
	}
	return c.Now()
}

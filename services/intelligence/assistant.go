// File: services/intelligence/assistant.go
package ai

import (
	"context"
	"fmt"
	"strings"
	"time"

	"tabletalk/models"
	"tabletalk/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SystemPrompt frames the model as a booking assistant and names the tools'
// expectations. Exposed so the Gemini client can be constructed with it.
const SystemPrompt = `You are a helpful restaurant booking assistant. You can help users:

1. Check restaurant availability for specific dates and party sizes
2. Create new restaurant bookings with customer information
3. Retrieve booking details using booking references
4. Update existing bookings (date, time, party size, special requests)
5. Cancel bookings with appropriate reasons

When users ask about restaurant bookings, use the appropriate tools to help them. Be conversational and helpful, but always use the tools to perform actual operations.

For booking creation, make sure to collect all necessary information:
- Restaurant name
- Date (YYYY-MM-DD format)
- Time (HH:MM:SS format)
- Party size
- Customer information (name, email, phone)

For cancellations, you'll need:
- Restaurant name
- Booking reference
- Cancellation reason (1-5, where 1=Customer Request, 2=Restaurant Closure, 3=Weather, 4=Emergency, 5=No Show)

IMPORTANT GUIDELINES:
- Always be polite and professional
- If you encounter errors, explain them clearly and suggest alternatives
- For availability checks, suggest alternative dates if the requested date is unavailable
- When booking, confirm all details before proceeding
- For modifications, verify the booking exists first
- If required information is missing, ask the user for it instead of guessing

RESTAURANT INFORMATION:
- Restaurant name: TheHungryUnicorn
- Available times: Lunch (12:00-13:30) and Dinner (19:00-20:30)
- Maximum party size: 8 people per table
- Booking window: 30 days in advance`

const (
	// fallbackReply is returned when the model itself cannot be reached.
	// Model transport failures are never narrated back through the model.
	fallbackReply = "I'm sorry, I'm having trouble processing requests right now. Please try again in a moment."

	emptyReply = "I'm sorry, I couldn't process your request."
)

// DefaultAssistantService runs the dispatch loop: per-session history, model
// rounds, at most one tool execution per round, and a final natural-language
// reply. Slot filling is left to the model; history is its only memory.
type DefaultAssistantService struct {
	Model    ChatModel
	Tools    *Registry
	Sessions SessionStore

	// MaxToolRounds bounds tool executions per user message.
	MaxToolRounds int
	ModelTimeout  time.Duration
	ToolTimeout   time.Duration

	locks sessionLocks
}

func NewDefaultAssistantService(model ChatModel, tools *Registry, sessions SessionStore) *DefaultAssistantService {
	return &DefaultAssistantService{
		Model:         model,
		Tools:         tools,
		Sessions:      sessions,
		MaxToolRounds: 4,
		ModelTimeout:  30 * time.Second,
		ToolTimeout:   5 * time.Second,
	}
}

// Chat processes one user message within a session and returns the final
// reply. Turns within a session are serialized; a second concurrent message
// for the same session waits for the first to finish.
func (s *DefaultAssistantService) Chat(ctx context.Context, sessionID, message string) (*models.ChatResponse, error) {
	if sessionID == "" {
		sessionID = uuid.New().String()
	}
	unlock := s.locks.acquire(sessionID)
	defer unlock()

	sess, err := s.Sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	if sess == nil {
		sess = models.NewSession(sessionID)
	}
	sess.Append(models.Turn{Role: models.RoleUser, Content: message})

	logger := utils.GetLogger()
	for round := 0; ; round++ {
		mctx, cancel := context.WithTimeout(ctx, s.ModelTimeout)
		reply, err := s.Model.Generate(mctx, sess.Turns)
		cancel()
		if err != nil {
			logger.Warn("model call failed", zap.String("session", sessionID), zap.Error(err))
			return s.finish(ctx, sess, fallbackReply)
		}

		if len(reply.Calls) == 0 {
			text := reply.Text
			if strings.TrimSpace(text) == "" {
				text = emptyReply
			}
			return s.finish(ctx, sess, text)
		}

		if round >= s.MaxToolRounds {
			logger.Warn("tool round budget exhausted", zap.String("session", sessionID))
			return s.finish(ctx, sess, emptyReply)
		}

		// Exactly one tool call per round; any extra requests are dropped
		// and left for the model to re-raise on the next round.
		call := reply.Calls[0]
		sess.Append(models.Turn{
			Role:     models.RoleAssistant,
			Content:  reply.Text,
			ToolName: call.Name,
			ToolArgs: call.Args,
		})

		tctx, cancel := context.WithTimeout(ctx, s.ToolTimeout)
		env := s.Tools.Dispatch(tctx, call.Name, call.Args)
		cancel()

		logger.Debug("tool dispatched",
			zap.String("session", sessionID),
			zap.String("tool", call.Name),
			zap.Any("result", env.Result))

		sess.Append(models.Turn{Role: models.RoleTool, ToolName: call.Name, Envelope: &env})
	}
}

func (s *DefaultAssistantService) finish(ctx context.Context, sess *models.Session, text string) (*models.ChatResponse, error) {
	sess.Append(models.Turn{Role: models.RoleAssistant, Content: text})
	if err := s.Sessions.Save(ctx, sess); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}
	return &models.ChatResponse{Response: text, SessionID: sess.ID}, nil
}

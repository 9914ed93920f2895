package infrastructure

import (
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	"occupancyDash/internal/modules/occupancy/domain"
)

// Command is a viewer request. Viewers may send either a bare word ("ping")
// or a JSON object {"action": "ping"}.
type Command struct {
	Action string `json:"action"`
}

// ParseCommand decodes a raw viewer frame.
func ParseCommand(raw []byte) Command {
	trimmed := strings.TrimSpace(string(raw))
	if strings.HasPrefix(trimmed, "{") {
		var cmd Command
		if err := json.Unmarshal([]byte(trimmed), &cmd); err == nil {
			cmd.Action = normalizeAction(cmd.Action)
			return cmd
		}
		return Command{}
	}
	return Command{Action: normalizeAction(trimmed)}
}

type CommandHandler func(client *Client, cmd Command)

type CommandProcessor struct {
	handlers map[string]CommandHandler
}

// NewCommandProcessor registers ping; refresh is wired when onRefresh is set.
func NewCommandProcessor(onRefresh CommandHandler) *CommandProcessor {
	processor := &CommandProcessor{handlers: make(map[string]CommandHandler)}
	processor.Register("ping", processor.handlePing)
	if onRefresh != nil {
		processor.Register("refresh", onRefresh)
	}
	return processor
}

func (p *CommandProcessor) Register(action string, handler CommandHandler) {
	if handler == nil {
		return
	}
	key := normalizeAction(action)
	if key == "" {
		return
	}
	p.handlers[key] = handler
}

func (p *CommandProcessor) Process(client *Client, cmd Command) {
	if client == nil || cmd.Action == "" {
		return
	}
	handler, ok := p.handlers[cmd.Action]
	if !ok {
		slog.Debug("ws command ignored", slog.String("sessionId", client.sessionID), slog.String("action", cmd.Action))
		return
	}
	handler(client, cmd)
}

func (p *CommandProcessor) handlePing(client *Client, _ Command) {
	client.SendMessage(&domain.Message{
		Topic:     domain.TopicSystemPong,
		Entity:    domain.SystemEntity,
		Action:    domain.ActionPong,
		Timestamp: time.Now().UTC(),
	})
}

func normalizeAction(action string) string {
	return strings.ToLower(strings.TrimSpace(action))
}

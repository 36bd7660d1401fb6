package queue

import (
	"encoding/json"

	"go.uber.org/zap"

	"github.com/seu-repo/concierge-ai/internal/ports"
)

// TurnPublisher streams per-turn analytics events onto the message queue.
// Publishing is best effort; a broker outage is logged and swallowed so
// the conversation is never impacted.
type TurnPublisher struct {
	mq      MessageQueue
	subject string
	log     *zap.Logger
}

func NewTurnPublisher(mq MessageQueue, subject string, log *zap.Logger) ports.TurnLogger {
	if subject == "" {
		subject = "concierge.turns"
	}
	return &TurnPublisher{
		mq:      mq,
		subject: subject,
		log:     log,
	}
}

func (p *TurnPublisher) LogTurn(event ports.TurnEvent) {
	data, err := json.Marshal(event)
	if err != nil {
		p.log.Error("Failed to marshal turn event", zap.Error(err))
		return
	}
	if err := p.mq.Publish(p.subject, data); err != nil {
		p.log.Warn("Failed to publish turn event",
			zap.String("subject", p.subject),
			zap.String("session_id", event.SessionID),
			zap.Error(err))
	}
}

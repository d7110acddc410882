package action

import (
	"encoding/json"

	"github.com/Zereker/vecns/internal/domain"
	"github.com/Zereker/vecns/pkg/mq"
)

// NotifyAction publishes a NamespaceEvent after a state change.
// Publish failures are logged and never fail the request.
type NotifyAction struct {
	*BaseAction
	queue mq.MessageQueue
	topic string
}

// NewNotifyAction 创建 NotifyAction. A nil queue disables publishing.
func NewNotifyAction(queue mq.MessageQueue, topic string) *NotifyAction {
	return &NotifyAction{
		BaseAction: NewBaseAction("notify"),
		queue:      queue,
		topic:      topic,
	}
}

// Handle 发布事件
func (a *NotifyAction) Handle(c *domain.NamespaceContext) {
	if a.queue == nil {
		return
	}

	event, ok := domain.NewNamespaceEvent(c.Result)
	if !ok {
		return
	}

	payload, err := json.Marshal(event)
	if err != nil {
		a.logger.Error("marshal event failed", "error", err)
		return
	}

	if err := a.queue.Publish(a.topic, payload); err != nil {
		a.logger.Warn("publish event failed",
			"topic", a.topic,
			"event", event.Type,
			"namespace", event.Namespace,
			"error", err,
		)
		return
	}

	c.Set("event_id", event.ID)
	a.logger.Debug("event published", "topic", a.topic, "event_id", event.ID, "type", event.Type)
}

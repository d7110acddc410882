package mq

import "sync"

// InMemoryQueue 内存消息队列（用于测试和简单场景）
type InMemoryQueue struct {
	mu       sync.Mutex
	messages map[string][][]byte
	err      error
}

// 确保 InMemoryQueue 实现 MessageQueue 接口
var _ MessageQueue = (*InMemoryQueue)(nil)

// NewInMemoryQueue 创建内存消息队列
func NewInMemoryQueue() *InMemoryQueue {
	return &InMemoryQueue{
		messages: make(map[string][][]byte),
	}
}

// Publish 发布消息
func (q *InMemoryQueue) Publish(topic string, message []byte) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.err != nil {
		return q.err
	}
	q.messages[topic] = append(q.messages[topic], message)
	return nil
}

// FailWith makes every later Publish return err (用于测试).
func (q *InMemoryQueue) FailWith(err error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.err = err
}

// Close 关闭
func (q *InMemoryQueue) Close() error {
	return nil
}

// GetMessages 获取指定 topic 的所有消息（用于测试）
func (q *InMemoryQueue) GetMessages(topic string) [][]byte {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.messages[topic]
}

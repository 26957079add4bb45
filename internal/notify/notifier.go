package notify

import (
	"context"
	"log"
	"time"
)

// Message is one outbound delivery.
type Message struct {
	ChatID int64
	Text   string
}

// Notifier is the single outbound boundary for Telegram sends. Business
// code queues fire-and-forget messages after its transaction commits;
// scheduler obligations that need the delivery result use SendNow.
type Notifier struct {
	gateway  Gateway
	adminIDs []int64
	timeout  time.Duration
	queue    chan Message
	done     chan struct{}
}

// NewNotifier starts the background send worker.
func NewNotifier(gateway Gateway, adminIDs []int64, timeout time.Duration) *Notifier {
	n := &Notifier{
		gateway:  gateway,
		adminIDs: adminIDs,
		timeout:  timeout,
		queue:    make(chan Message, 100),
		done:     make(chan struct{}),
	}
	go n.worker()
	return n
}

func (n *Notifier) worker() {
	defer close(n.done)
	for m := range n.queue {
		if err := n.SendNow(context.Background(), m.ChatID, m.Text); err != nil {
			log.Printf("notify: send to %d failed: %v", m.ChatID, err)
		}
	}
}

// ClientAsync queues a message to one chat. When the queue is full the
// message is dropped rather than blocking the caller.
func (n *Notifier) ClientAsync(chatID int64, text string) {
	select {
	case n.queue <- Message{ChatID: chatID, Text: text}:
	default:
		log.Printf("notify: queue full, dropping message to %d", chatID)
	}
}

// AdminsAsync queues a message to every configured admin chat.
func (n *Notifier) AdminsAsync(text string) {
	for _, id := range n.adminIDs {
		n.ClientAsync(id, text)
	}
}

// SendNow delivers synchronously under the send timeout.
func (n *Notifier) SendNow(ctx context.Context, chatID int64, text string) error {
	sendCtx, cancel := context.WithTimeout(ctx, n.timeout)
	defer cancel()
	return n.gateway.Send(sendCtx, chatID, text)
}

// AdminsNow delivers synchronously to every admin chat, logging failures.
func (n *Notifier) AdminsNow(ctx context.Context, text string) {
	for _, id := range n.adminIDs {
		if err := n.SendNow(ctx, id, text); err != nil {
			log.Printf("notify: send to admin %d failed: %v", id, err)
		}
	}
}

// AdminIDs exposes the configured admin chat list.
func (n *Notifier) AdminIDs() []int64 {
	return n.adminIDs
}

// Close drains the queue and stops the worker.
func (n *Notifier) Close() {
	close(n.queue)
	<-n.done
}

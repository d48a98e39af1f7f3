package emailsvc

import (
	"sync"

	"github.com/szkolix/backend/core"
)

// dummyService records messages instead of sending them; used in tests.
type dummyService struct {
	mu   sync.Mutex
	sent []core.EmailMessage
}

var _ core.EmailService = (*dummyService)(nil)

func NewDummyService() *dummyService {
	return &dummyService{}
}

func (svc *dummyService) SendMessages(messages ...*core.EmailMessage) {
	svc.mu.Lock()
	defer svc.mu.Unlock()
	for _, msg := range messages {
		if msg.HasRecipients() && (msg.HasContent() || msg.HasAttachments()) {
			svc.sent = append(svc.sent, *msg)
		}
	}
}

// SentMessages returns a snapshot of everything recorded so far.
func (svc *dummyService) SentMessages() []core.EmailMessage {
	svc.mu.Lock()
	defer svc.mu.Unlock()
	return append([]core.EmailMessage{}, svc.sent...)
}

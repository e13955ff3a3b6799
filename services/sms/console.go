package smssvc

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/ttucompsci/paytrack/core"
)

var (
	SentMessages = make([]core.SMSMessage, 0)
	mu           sync.Mutex
)

// consoleService writes messages to the process log instead of a gateway.
// Used in development and as the base of the test mock.
type consoleService struct {
	disableOutput bool
}

var _ core.SMSSender = (*consoleService)(nil)

func NewConsoleService() core.SMSSender {
	return &consoleService{}
}

func (svc consoleService) Send(ctx context.Context, msg core.SMSMessage, settings core.SystemSettings) error {
	if msg.To == "" || msg.Message == "" {
		return nil
	}

	if !svc.disableOutput {
		body := new(strings.Builder)
		_, _ = fmt.Fprintf(body, "From: %s\r\n", msg.Sender)
		_, _ = fmt.Fprintf(body, "To: %s\r\n", msg.To)
		_, _ = fmt.Fprintf(body, "Date: %s\r\n", time.Now().Format(time.RFC1123Z))
		_, _ = fmt.Fprintf(body, "\r\n%s\r\n", msg.Message)
		log.Println(body.String())
	}

	mu.Lock()
	SentMessages = append(SentMessages, msg)
	mu.Unlock()
	return nil
}

type consoleServiceMock struct {
	consoleService
}

func NewConsoleServiceMock() core.SMSSender {
	return &consoleServiceMock{
		consoleService: consoleService{disableOutput: true},
	}
}

// ClearSentMessages resets the recorded outbox between tests.
func ClearSentMessages() {
	mu.Lock()
	SentMessages = SentMessages[:0]
	mu.Unlock()
}

package fakemailer

import (
	"context"
	"sync"

	"github.com/livrolivre/go-library-server/mailer"
)

var _ mailer.Sender = (*FakeSender)(nil)

// FakeSender records every message handed to it. SendErr, when set, is
// returned to the caller to simulate a transport failure.
type FakeSender struct {
	lock     sync.Mutex
	Messages []mailer.Message
	SendErr  error
	Calls    int
}

func NewFakeSender() *FakeSender {
	return &FakeSender{}
}

func (f *FakeSender) Send(_ context.Context, msg mailer.Message) error {
	f.lock.Lock()
	defer f.lock.Unlock()

	f.Calls++
	if f.SendErr != nil {
		return f.SendErr
	}
	f.Messages = append(f.Messages, msg)
	return nil
}

func (f *FakeSender) SendCalls() int {
	f.lock.Lock()
	defer f.lock.Unlock()
	return f.Calls
}

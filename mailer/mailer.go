// Package mailer is the outbound mail transport boundary. The core only ever
// sends single-recipient plain-text messages; failures propagate to the
// caller, retries are a transport concern this package does not take on.
package mailer

import "context"

type Message struct {
	From    string
	To      string
	Subject string
	Text    string
}

type Sender interface {
	Send(ctx context.Context, msg Message) error
}

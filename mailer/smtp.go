package mailer

import (
	"context"
	"time"

	"github.com/pkg/errors"
	mail "github.com/wneessen/go-mail"
)

const sendTimeout = 15 * time.Second

// SMTPMailer sends mail through an authenticated SMTP account.
type SMTPMailer struct {
	client *mail.Client
}

var _ Sender = (*SMTPMailer)(nil)

func NewSMTPMailer(host string, port int, account, password string) (*SMTPMailer, error) {
	client, err := mail.NewClient(host,
		mail.WithPort(port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(account),
		mail.WithPassword(password),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
	)
	if err != nil {
		return nil, errors.Wrap(err, "[NewSMTPMailer] client setup")
	}
	return &SMTPMailer{client: client}, nil
}

// Send dispatches a single plain-text message. The context bounds the whole
// dial-and-send exchange so a stuck relay cannot hang the request.
func (m *SMTPMailer) Send(ctx context.Context, msg Message) error {
	message := mail.NewMsg()
	if err := message.From(msg.From); err != nil {
		return errors.Wrap(err, "[SMTPMailer.Send] from address")
	}
	if err := message.To(msg.To); err != nil {
		return errors.Wrap(err, "[SMTPMailer.Send] to address")
	}
	message.Subject(msg.Subject)
	message.SetBodyString(mail.TypeTextPlain, msg.Text)

	ctx, cancel := context.WithTimeout(ctx, sendTimeout)
	defer cancel()

	return m.client.DialAndSendWithContext(ctx, message)
}

package services

import (
	"context"
	"fmt"
	"time"

	"pet-market-backend/internal/config"
	"pet-market-backend/internal/models"

	"github.com/wneessen/go-mail"
)

const defaultDispatchTimeout = 10 * time.Second

// MailSender is the outbound transport behind the notifier.
type MailSender interface {
	DialAndSendWithContext(ctx context.Context, messages ...*mail.Msg) error
}

// InterestNotifier emails a listing's seller when someone expresses
// interest. Dispatch is best-effort with a bounded timeout: a failure is
// surfaced to the caller but never affects listing state, and nothing is
// retried.
type InterestNotifier struct {
	sender  MailSender
	from    string
	timeout time.Duration
}

// NewInterestNotifier builds an SMTP-backed notifier from config.
func NewInterestNotifier(cfg config.SMTPConfig) (*InterestNotifier, error) {
	client, err := mail.NewClient(cfg.Host,
		mail.WithPort(cfg.Port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(cfg.Username),
		mail.WithPassword(cfg.Password),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create mail client: %w", err)
	}

	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = defaultDispatchTimeout
	}

	return &InterestNotifier{
		sender:  client,
		from:    cfg.From,
		timeout: timeout,
	}, nil
}

// NotifyInterest sends the fixed-template interest notice to the seller.
// Any transport failure, including hitting the timeout, maps to
// models.ErrDispatch.
func (n *InterestNotifier) NotifyInterest(ctx context.Context, pet *models.Pet, buyer *models.User) error {
	if pet.Seller == nil || pet.Seller.Email == "" {
		return fmt.Errorf("%w: listing has no seller contact", models.ErrDispatch)
	}

	msg := mail.NewMsg()
	if err := msg.From(n.from); err != nil {
		return fmt.Errorf("%w: invalid sender address: %v", models.ErrDispatch, err)
	}
	if err := msg.To(pet.Seller.Email); err != nil {
		return fmt.Errorf("%w: invalid seller address: %v", models.ErrDispatch, err)
	}
	msg.Subject(fmt.Sprintf("Interest in your pet: %s", pet.Name))
	msg.SetBodyString(mail.TypeTextHTML, interestBody(pet, buyer))

	ctx, cancel := context.WithTimeout(ctx, n.timeout)
	defer cancel()

	if err := n.sender.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("%w: %v", models.ErrDispatch, err)
	}

	return nil
}

func interestBody(pet *models.Pet, buyer *models.User) string {
	return fmt.Sprintf(`<h1>Someone is interested in your pet!</h1>
<p><strong>Pet:</strong> %s (%s)</p>
<p><strong>Interested Buyer:</strong> %s</p>
<p><strong>Contact Email:</strong> %s</p>
<p><strong>Contact Phone:</strong> %s</p>
<p><strong>Message:</strong> I am interested in your pet. Please contact me for further discussion.</p>`,
		pet.Name, pet.Category, buyer.Name, buyer.Email, buyer.Phone)
}

package mail

import "fmt"

// verificationSubject is the subject line of the account verification email.
const verificationSubject = "Verify your FitStride email"

// VerificationNotifier builds and enqueues account verification emails. It
// satisfies the lifecycle service's notifier contract without the service
// knowing anything about mail transport or templates.
type VerificationNotifier struct {
	dispatcher *Dispatcher
	baseURL    string
}

// NewVerificationNotifier creates a VerificationNotifier. baseURL is the
// public URL prefix the verification token is appended to, e.g.
// "https://app.fitstride.io/verify".
func NewVerificationNotifier(dispatcher *Dispatcher, baseURL string) *VerificationNotifier {
	return &VerificationNotifier{
		dispatcher: dispatcher,
		baseURL:    baseURL,
	}
}

// SendVerification enqueues a verification email for background delivery.
// It returns immediately; delivery failures never surface to the caller.
func (n *VerificationNotifier) SendVerification(to, token string) {
	link := fmt.Sprintf("%s/%s", n.baseURL, token)
	n.dispatcher.Enqueue(Message{
		To:       to,
		Subject:  verificationSubject,
		HTMLBody: verificationBody(link),
	})
}

// verificationBody renders the verification email. The layout mirrors the
// transactional mail style used elsewhere in the product.
func verificationBody(link string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
  <body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px;">
    <h1>Welcome to FitStride</h1>
    <p>Thanks for signing up. Please confirm your email address to activate your account.</p>
    <p>
      <a href="%s" style="display: inline-block; background-color: #4CAF50; color: #fff; padding: 12px 24px; text-decoration: none; border-radius: 4px;">
        Verify Email
      </a>
    </p>
    <p>If the button does not work, copy this link into your browser:</p>
    <p><a href="%s">%s</a></p>
    <p>If you did not create a FitStride account, you can ignore this message.</p>
  </body>
</html>`, link, link, link)
}

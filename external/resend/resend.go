package resend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ErrNotConfigured is returned when no API key was provided. Callers treat
// email as best-effort, so this surfaces in logs rather than to donors.
var ErrNotConfigured = errors.New("email service not configured")

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type Mailer struct {
	apiKey      string
	from        string
	replyTo     string
	notifyTo    string
	client      *http.Client
	baseURL     string
	maxRetries  int
	retryDelay  time.Duration
	sendTimeout time.Duration
}

// NewMailer builds a Resend mailer. An empty API key yields a disabled
// mailer whose sends fail with ErrNotConfigured; the site keeps accepting
// donations either way.
func NewMailer(apiKey, from, replyTo, notifyTo string) *Mailer {
	return &Mailer{
		apiKey:      apiKey,
		from:        from,
		replyTo:     replyTo,
		notifyTo:    notifyTo,
		client:      &http.Client{},
		baseURL:     "https://api.resend.com",
		maxRetries:  2,
		retryDelay:  time.Second,
		sendTimeout: 10 * time.Second,
	}
}

func (m *Mailer) Enabled() bool { return m.apiKey != "" }

type sendRequest struct {
	From    string            `json:"from"`
	To      []string          `json:"to"`
	Subject string            `json:"subject"`
	HTML    string            `json:"html"`
	ReplyTo string            `json:"reply_to,omitempty"`
	Headers map[string]string `json:"headers,omitempty"`
}

// send posts to the Resend API, retrying once on transient failures. Each
// attempt gets its own timeout; authorization failures are not retried.
func (m *Mailer) send(ctx context.Context, body sendRequest) error {
	if !m.Enabled() {
		return ErrNotConfigured
	}

	var lastErr error
	for attempt := 1; attempt <= m.maxRetries; attempt++ {
		if attempt > 1 {
			select {
			case <-time.After(m.retryDelay):
			case <-ctx.Done():
				return ctx.Err()
			}
		}

		err := m.sendOnce(ctx, body)
		if err == nil {
			return nil
		}
		lastErr = err

		var perm *permanentError
		if errors.As(err, &perm) {
			return err
		}
	}

	return lastErr
}

// permanentError marks failures that a retry cannot fix.
type permanentError struct{ msg string }

func (e *permanentError) Error() string { return e.msg }

func (m *Mailer) sendOnce(ctx context.Context, body sendRequest) error {
	ctx, cancel := context.WithTimeout(ctx, m.sendTimeout)
	defer cancel()

	b, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		m.baseURL+"/emails",
		bytes.NewReader(b),
	)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+m.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		buf := new(bytes.Buffer)
		buf.ReadFrom(resp.Body)
		msg := fmt.Sprintf("resend: %s: %s", resp.Status, buf.String())

		if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
			return &permanentError{msg: msg}
		}
		return errors.New(msg)
	}

	return nil
}

// SendDonationReceipt emails a thank-you receipt for a completed donation.
func (m *Mailer) SendDonationReceipt(
	ctx context.Context,
	toEmail string,
	donorName string,
	amount decimal.Decimal,
	currency string,
	donationID int64,
	dateLabel string,
) error {
	if !emailPattern.MatchString(toEmail) {
		return errors.New("invalid email address format")
	}

	formatted := amount.StringFixed(2)

	body := sendRequest{
		From:    m.from,
		To:      []string{toEmail},
		Subject: "Thank You for Your Donation - Gift of Hope",
		ReplyTo: m.replyTo,
		Headers: map[string]string{
			"X-Entity-Ref-ID": fmt.Sprintf("donation-%d-%s", donationID, uuid.NewString()),
		},
		HTML: `
			<h1>Thank You, ` + htmlEscape(donorName) + `!</h1>
			<p>Your generous donation helps us bring hope where it is needed most.</p>
			<h2>Donation Receipt</h2>
			<table>
				<tr><td>Receipt No.</td><td>#` + fmt.Sprint(donationID) + `</td></tr>
				<tr><td>Date</td><td>` + htmlEscape(dateLabel) + `</td></tr>
				<tr><td>Amount</td><td>` + formatted + ` ` + htmlEscape(currency) + `</td></tr>
			</table>
			<p>Please keep this receipt for your records.</p>
			<p>With gratitude,<br>The Gift of Hope Team</p>
		`,
	}

	return m.send(ctx, body)
}

// SendContactNotification forwards a contact-form submission to the site
// inbox.
func (m *Mailer) SendContactNotification(
	ctx context.Context,
	name, email, subject, message string,
) error {
	body := sendRequest{
		From:    m.from,
		To:      []string{m.notifyTo},
		Subject: "New Contact Form Message: " + subject,
		ReplyTo: email,
		HTML: `
			<h2>New message from the contact form</h2>
			<p><strong>From:</strong> ` + htmlEscape(name) + ` &lt;` + htmlEscape(email) + `&gt;</p>
			<p><strong>Subject:</strong> ` + htmlEscape(subject) + `</p>
			<p>` + htmlEscape(message) + `</p>
		`,
	}

	return m.send(ctx, body)
}

var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
)

func htmlEscape(s string) string { return htmlEscaper.Replace(s) }

// Package awsx contains the AWS-backed collaborators of the account
// subsystem: the SES notification gateway and the S3 profile-image store.
package awsx

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
	"github.com/fitstride/fitstride-api/internal/mail"
)

// sesAPI is the subset of the SES client used by the gateway. Narrowing the
// dependency keeps the gateway testable without an AWS account.
type sesAPI interface {
	SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

// SESGateway implements mail.Gateway on top of Amazon SES.
type SESGateway struct {
	client sesAPI
	sender string
}

// Ensure SESGateway implements mail.Gateway
var _ mail.Gateway = (*SESGateway)(nil)

// NewSESGateway creates a gateway sending from the given verified sender
// address. The client is constructed once at process start and injected;
// the gateway never builds its own AWS session.
func NewSESGateway(client sesAPI, sender string) *SESGateway {
	return &SESGateway{
		client: client,
		sender: sender,
	}
}

// Send implements mail.Gateway.
func (g *SESGateway) Send(ctx context.Context, msg mail.Message) error {
	input := &ses.SendEmailInput{
		Destination: &types.Destination{
			ToAddresses: []string{msg.To},
		},
		Message: &types.Message{
			Subject: &types.Content{
				Data: aws.String(msg.Subject),
			},
			Body: &types.Body{
				Html: &types.Content{
					Data: aws.String(msg.HTMLBody),
				},
			},
		},
		Source: aws.String(g.sender),
	}

	if _, err := g.client.SendEmail(ctx, input); err != nil {
		return fmt.Errorf("ses send failed: %w", err)
	}
	return nil
}

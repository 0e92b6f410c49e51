package cloud

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"

	"github.com/ANIKETSHETTY47/wire-sizing-engine/internal/domain"
	"github.com/ANIKETSHETTY47/wire-sizing-engine/internal/logging"
)

type snsAPI interface {
	Publish(ctx context.Context, in *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

// SNSClient publishes compliance alerts to a topic.
type SNSClient struct {
	svc      snsAPI
	topicArn string
}

func NewSNSClient(cfg aws.Config, topicArn string) *SNSClient {
	return &SNSClient{svc: sns.NewFromConfig(cfg), topicArn: topicArn}
}

func (c *SNSClient) SendAlert(ctx context.Context, subject, message string) error {
	result, err := c.svc.Publish(ctx, &sns.PublishInput{
		TopicArn: aws.String(c.topicArn),
		Subject:  aws.String(subject),
		Message:  aws.String(message),
	})
	if err != nil {
		return fmt.Errorf("failed to publish to SNS: %w", err)
	}
	logger := logging.Component("cloud")
	logger.Debug().Str("topic", c.topicArn).Str("message_id", aws.ToString(result.MessageId)).Msg("alert sent")
	return nil
}

// SendNonComplianceAlert reports a calculation that exceeded a checked limit.
func (c *SNSClient) SendNonComplianceAlert(ctx context.Context, calc domain.Calculation) error {
	subject := fmt.Sprintf("Wire sizing: non-compliant %s calculation", calc.Kind)
	return c.SendAlert(ctx, subject, NonComplianceMessage(calc))
}

// NonComplianceMessage renders the alert body.
func NonComplianceMessage(calc domain.Calculation) string {
	r := calc.Result
	var b strings.Builder
	fmt.Fprintf(&b, "Calculation %s (%s) is not compliant.\n\n", calc.ID, calc.Kind)
	if r.WireSize.Valid() {
		fmt.Fprintf(&b, "Conductor: %s\n", r.WireSize)
	}
	if r.BreakerSize > 0 {
		fmt.Fprintf(&b, "Breaker: %d A\n", r.BreakerSize)
	}
	if r.VoltageDropPercent > 0 {
		fmt.Fprintf(&b, "Voltage drop: %.2f%%\n", r.VoltageDropPercent)
	}
	if r.FillPercent > 0 {
		fmt.Fprintf(&b, "Conduit fill: %.1f%% of %.0f%% allowed\n", r.FillPercent, r.MaxFillPercent)
	}
	for _, n := range r.Notes {
		fmt.Fprintf(&b, "- %s\n", n)
	}
	fmt.Fprintf(&b, "\nCalculated at %s.", calc.CreatedAt.UTC().Format("2006-01-02 15:04:05 MST"))
	return b.String()
}

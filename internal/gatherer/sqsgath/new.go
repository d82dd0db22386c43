package sqsgath

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
)

// Sender is satisfied by *sqs.Client.
type Sender interface {
	SendMessage(ctx context.Context, params *sqs.SendMessageInput, optFns ...func(*sqs.Options)) (*sqs.SendMessageOutput, error)
}

// NewClient loads the default AWS credential chain for region.
func NewClient(ctx context.Context, region string) (*sqs.Client, error) {
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("unable to load SDK config: %w", err)
	}
	return sqs.NewFromConfig(cfg), nil
}

func New(ctx context.Context, client Sender, runUuid string, mode string, queueUrl string) *sqsResQueueGatherer {
	return &sqsResQueueGatherer{
		ctx:      ctx,
		client:   client,
		queueUrl: queueUrl,
		runUuid:  runUuid,
		mode:     mode,
	}
}

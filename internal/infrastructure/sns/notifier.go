package sns

import (
	"context"

	"github.com/adesao-api/internal/config"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sns"
)

// OpsNotifier publishes short operational notices to an SNS topic.
type OpsNotifier interface {
	Notify(ctx context.Context, subject, message string) error
}

type notifier struct {
	client   *sns.Client
	topicARN string
}

func NewNotifier(cfg *config.Config) (OpsNotifier, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithRegion(cfg.SNSRegion),
	)
	if err != nil {
		return nil, err
	}
	return &notifier{client: sns.NewFromConfig(awsCfg), topicARN: cfg.SNSTopicARN}, nil
}

func (n *notifier) Notify(ctx context.Context, subject, message string) error {
	_, err := n.client.Publish(ctx, &sns.PublishInput{
		TopicArn: &n.topicARN,
		Subject:  &subject,
		Message:  &message,
	})
	return err
}

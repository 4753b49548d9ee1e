package queue

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	sqstypes "github.com/aws/aws-sdk-go-v2/service/sqs/types"
)

// sqsNotifier sends the order summary to an SQS queue and publishes a
// notification to an SNS topic. Either destination can be left unconfigured
// and is then skipped.
type sqsNotifier struct {
	sqsClient *sqs.Client
	snsClient *sns.Client
	queueURL  string
	topicARN  string
}

func newSQSNotifier(sqsClient *sqs.Client, snsClient *sns.Client, queueURL, topicARN string) *sqsNotifier {
	return &sqsNotifier{sqsClient: sqsClient, snsClient: snsClient, queueURL: queueURL, topicARN: topicARN}
}

func (n *sqsNotifier) OrderCreated(ctx context.Context, msg OrderMessage) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal order message: %w", err)
	}

	if n.queueURL != "" {
		_, err := n.sqsClient.SendMessage(ctx, &sqs.SendMessageInput{
			QueueUrl:    aws.String(n.queueURL),
			MessageBody: aws.String(string(body)),
			MessageAttributes: map[string]sqstypes.MessageAttributeValue{
				"orderType": {
					DataType:    aws.String("String"),
					StringValue: aws.String("NEW_ORDER"),
				},
			},
		})
		if err != nil {
			return fmt.Errorf("send sqs message: %w", err)
		}
	}

	if n.topicARN != "" {
		summary, err := json.Marshal(map[string]any{
			"orderId":     msg.OrderID,
			"userId":      msg.UserID,
			"userName":    msg.UserName,
			"totalAmount": msg.TotalAmount,
			"itemCount":   len(msg.Items),
			"createdAt":   msg.CreatedAt,
		})
		if err != nil {
			return fmt.Errorf("marshal notification: %w", err)
		}
		_, err = n.snsClient.Publish(ctx, &sns.PublishInput{
			TopicArn: aws.String(n.topicARN),
			Subject:  aws.String(fmt.Sprintf("New order #%d", msg.OrderID)),
			Message:  aws.String(string(summary)),
		})
		if err != nil {
			return fmt.Errorf("publish sns notification: %w", err)
		}
	}
	return nil
}

func (n *sqsNotifier) Close() error { return nil }

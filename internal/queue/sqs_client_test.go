package queue

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
)

type fakeSQSSender struct {
	inputs []*sqs.SendMessageInput
	err    error
}

func (f *fakeSQSSender) SendMessage(ctx context.Context, params *sqs.SendMessageInput, optFns ...func(*sqs.Options)) (*sqs.SendMessageOutput, error) {
	f.inputs = append(f.inputs, params)
	if f.err != nil {
		return nil, f.err
	}
	return &sqs.SendMessageOutput{MessageId: aws.String("m-1")}, nil
}

func TestSQSClientSend(t *testing.T) {
	fake := &fakeSQSSender{}
	client := &SQSClient{client: fake, queueURL: "https://sqs.local/queue"}

	if err := client.Send(context.Background(), Message{AnalysisID: "a-1", RequestID: "r-1", Version: 1}); err != nil {
		t.Fatalf("Send: %v", err)
	}
	if len(fake.inputs) != 1 {
		t.Fatalf("expected 1 send, got %d", len(fake.inputs))
	}
	in := fake.inputs[0]
	if aws.ToString(in.QueueUrl) != "https://sqs.local/queue" {
		t.Fatalf("unexpected queue url %s", aws.ToString(in.QueueUrl))
	}
	msg, err := DecodeMessage([]byte(aws.ToString(in.MessageBody)))
	if err != nil || msg.AnalysisID != "a-1" {
		t.Fatalf("unexpected body %q (%v)", aws.ToString(in.MessageBody), err)
	}
}

func TestSQSClientSendWrapsError(t *testing.T) {
	boom := errors.New("throttled")
	client := &SQSClient{client: &fakeSQSSender{err: boom}, queueURL: "q"}
	if err := client.Send(context.Background(), Message{AnalysisID: "a-1"}); !errors.Is(err, boom) {
		t.Fatalf("expected wrapped error, got %v", err)
	}
}

func TestNewSQSClientRequiresURL(t *testing.T) {
	if _, err := NewSQSClient(context.Background(), "us-east-1", "  "); err == nil {
		t.Fatal("expected error for empty queue url")
	}
}

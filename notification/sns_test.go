package notification

import (
	"context"
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/stretchr/testify/require"
)

type mockSNSClient struct {
	inputs []*sns.PublishInput
	err    error
}

func (m *mockSNSClient) Publish(_ context.Context, in *sns.PublishInput, _ ...func(*sns.Options)) (*sns.PublishOutput, error) {
	m.inputs = append(m.inputs, in)
	if m.err != nil {
		return nil, m.err
	}
	return &sns.PublishOutput{}, nil
}

func TestSNSNotifier_Publish(t *testing.T) {
	client := &mockSNSClient{}
	n := newSNSNotifierWithClient(client, "arn:aws:sns:us-east-1:123456789012:library-events")

	err := n.Notify(context.Background(), Event{
		Recipient: "alice@uni.edu",
		Subject:   "Request Approved: Clean Code",
		Body:      "Your request has been approved.",
		RequestID: 7,
	})
	require.NoError(t, err)
	require.Len(t, client.inputs, 1)

	in := client.inputs[0]
	require.Equal(t, "arn:aws:sns:us-east-1:123456789012:library-events", *in.TopicArn)
	require.Equal(t, "Request Approved: Clean Code", *in.Subject)
	require.Equal(t, "alice@uni.edu", *in.MessageAttributes["recipient"].StringValue)
	require.Equal(t, "7", *in.MessageAttributes["request_id"].StringValue)
}

func TestSNSNotifier_SubjectTruncated(t *testing.T) {
	client := &mockSNSClient{}
	n := newSNSNotifierWithClient(client, "arn:aws:sns:us-east-1:123456789012:library-events")

	err := n.Notify(context.Background(), Event{
		Recipient: "alice@uni.edu",
		Subject:   "Request Received: " + strings.Repeat("x", 200),
		Body:      "b",
	})
	require.NoError(t, err)
	require.Len(t, *client.inputs[0].Subject, 100)
}

func TestSNSNotifier_SubjectTruncatedOnRuneBoundary(t *testing.T) {
	client := &mockSNSClient{}
	n := newSNSNotifierWithClient(client, "arn:aws:sns:us-east-1:123456789012:library-events")

	// a two-byte rune straddling the 100-byte cap must be dropped whole
	err := n.Notify(context.Background(), Event{
		Recipient: "alice@uni.edu",
		Subject:   strings.Repeat("x", 99) + "über lange Titel",
		Body:      "b",
	})
	require.NoError(t, err)

	subject := *client.inputs[0].Subject
	require.True(t, utf8.ValidString(subject))
	require.Equal(t, strings.Repeat("x", 99), subject)
}

func TestSNSNotifier_PublishError(t *testing.T) {
	client := &mockSNSClient{err: errors.New("throttled")}
	n := newSNSNotifierWithClient(client, "arn:aws:sns:us-east-1:123456789012:library-events")

	err := n.Notify(context.Background(), Event{Recipient: "alice@uni.edu", Subject: "s", Body: "b"})
	require.ErrorContains(t, err, "sns publish")
}

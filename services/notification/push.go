package notification

import (
	"context"
	"errors"
	"fmt"

	userRepo "lexdesk/database/repository/user"

	"firebase.google.com/go/v4/messaging"
	"go.uber.org/zap"
)

// ErrNoPushToken is returned when the user has not registered a device.
var ErrNoPushToken = errors.New("user has no FCM token")

// MessagingClient is the subset of the FCM client used for pushes.
type MessagingClient interface {
	Send(ctx context.Context, message *messaging.Message) (string, error)
}

// PushNotifier sends device pushes to users.
type PushNotifier interface {
	SendUserPush(ctx context.Context, userID, title, body string, data map[string]string) error
}

// FCMPushService resolves a user's token and sends through FCM.
type FCMPushService struct {
	users  userRepo.UserRepository
	client MessagingClient
	logger *zap.Logger
}

func NewFCMPushService(users userRepo.UserRepository, client MessagingClient, logger *zap.Logger) (*FCMPushService, error) {
	if users == nil || client == nil {
		return nil, fmt.Errorf("push service initialization error: user repository or messaging client is nil")
	}
	return &FCMPushService{users: users, client: client, logger: logger}, nil
}

// SendUserPush looks up a user's FCM token and sends a push.
func (s *FCMPushService) SendUserPush(ctx context.Context, userID, title, body string, data map[string]string) error {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("SendUserPush: could not find user %s: %w", userID, err)
	}
	if u.FCMToken == "" {
		return ErrNoPushToken
	}

	msg := &messaging.Message{
		Token: u.FCMToken,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: data,
		Android: &messaging.AndroidConfig{
			Priority: "high",
			Notification: &messaging.AndroidNotification{
				ChannelID: "chat_messages",
				Sound:     "default",
			},
		},
		APNS: &messaging.APNSConfig{
			Headers: map[string]string{
				"apns-priority":  "10",
				"apns-push-type": "alert",
			},
			Payload: &messaging.APNSPayload{
				Aps: &messaging.Aps{Sound: "default"},
			},
		},
	}

	id, err := s.client.Send(ctx, msg)
	if err != nil {
		return fmt.Errorf("SendUserPush: failed to send FCM message: %w", err)
	}
	s.logger.Debug("Push sent", zap.String("userId", userID), zap.String("messageId", id))
	return nil
}

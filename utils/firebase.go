// utils/firebase.go
package utils

import (
	"context"
	"fmt"

	"lexdesk/config"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"
)

// FirebaseClients bundles the Firebase services the back office talks to.
type FirebaseClients struct {
	App       *firebase.App
	Auth      *auth.Client
	Messaging *messaging.Client
}

// FirebaseInit initializes the Firebase App plus its Auth and Messaging clients.
func FirebaseInit(ctx context.Context, cfg *config.Config) (*FirebaseClients, error) {
	opt := option.WithCredentialsFile(cfg.FirebaseCredentialsFile)

	var fbCfg *firebase.Config
	if cfg.FirebaseBucket != "" {
		fbCfg = &firebase.Config{StorageBucket: cfg.FirebaseBucket}
	}

	app, err := firebase.NewApp(ctx, fbCfg, opt)
	if err != nil {
		return nil, fmt.Errorf("firebase: error initializing app: %w", err)
	}

	authClient, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("firebase: error getting Auth client: %w", err)
	}

	msgClient, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("firebase: error getting Messaging client: %w", err)
	}

	return &FirebaseClients{App: app, Auth: authClient, Messaging: msgClient}, nil
}

package identity

import (
	"context"
	"os"
	"sync"

	firebase "firebase.google.com/go"
	fbauth "firebase.google.com/go/auth"
	"google.golang.org/api/option"
)

// ProviderConfig locates the identity-provider project and its service
// account credentials. Resolution order: explicit file path, then the
// application-default-credentials env var, then inline JSON.
type ProviderConfig struct {
	ProjectID       string
	CredentialsFile string
	CredentialsJSON string
}

var (
	provOnce   sync.Once
	provClient *fbauth.Client
	provErr    error
)

// providerClient returns the process-wide identity-provider auth client.
// Construction is lazy and idempotent; every caller goes through the
// verifier, nothing else touches the SDK directly.
func providerClient(ctx context.Context, cfg ProviderConfig) (*fbauth.Client, error) {
	provOnce.Do(func() {
		var opts []option.ClientOption
		switch {
		case cfg.CredentialsFile != "":
			opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
		case os.Getenv("GOOGLE_APPLICATION_CREDENTIALS") != "":
			opts = append(opts, option.WithCredentialsFile(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS")))
		case cfg.CredentialsJSON != "":
			opts = append(opts, option.WithCredentialsJSON([]byte(cfg.CredentialsJSON)))
		}

		app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: cfg.ProjectID}, opts...)
		if err != nil {
			provErr = err
			return
		}
		provClient, provErr = app.Auth(ctx)
	})
	return provClient, provErr
}

package googleauth

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/coreos/go-oidc/v3/oidc"
)

const (
	issuerURL     = "https://accounts.google.com"
	verifyTimeout = 10 * time.Second
)

// ErrVerificationFailed is the only error surfaced to callers; verifier
// internals never leak into responses.
var ErrVerificationFailed = errors.New("google id token verification failed")

// Identity is the verified claim triple extracted from a Google ID token.
type Identity struct {
	SubjectID string
	Email     string
	Name      string
}

type Verifier interface {
	Verify(ctx context.Context, rawIDToken string) (*Identity, error)
}

// GoogleVerifier validates ID tokens against Google's published keys with the
// configured OAuth client id as the expected audience.
type GoogleVerifier struct {
	clientID string

	mu       sync.Mutex
	verifier *oidc.IDTokenVerifier
}

func NewGoogleVerifier(clientID string) *GoogleVerifier {
	return &GoogleVerifier{clientID: clientID}
}

// idTokenVerifier does the provider discovery lazily so construction never
// requires the network; concurrent first calls share one discovery fetch.
func (g *GoogleVerifier) idTokenVerifier(ctx context.Context) (*oidc.IDTokenVerifier, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.verifier != nil {
		return g.verifier, nil
	}
	provider, err := oidc.NewProvider(ctx, issuerURL)
	if err != nil {
		return nil, err
	}
	g.verifier = provider.Verifier(&oidc.Config{ClientID: g.clientID})
	return g.verifier, nil
}

func (g *GoogleVerifier) Verify(ctx context.Context, rawIDToken string) (*Identity, error) {
	ctx, cancel := context.WithTimeout(ctx, verifyTimeout)
	defer cancel()

	verifier, err := g.idTokenVerifier(ctx)
	if err != nil {
		return nil, ErrVerificationFailed
	}
	idToken, err := verifier.Verify(ctx, rawIDToken)
	if err != nil {
		return nil, ErrVerificationFailed
	}
	var claims struct {
		Email string `json:"email"`
		Name  string `json:"name"`
	}
	if err := idToken.Claims(&claims); err != nil {
		return nil, ErrVerificationFailed
	}
	if idToken.Subject == "" || claims.Email == "" {
		return nil, ErrVerificationFailed
	}
	return &Identity{SubjectID: idToken.Subject, Email: claims.Email, Name: claims.Name}, nil
}

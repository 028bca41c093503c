package fakeissuer

import (
	"fmt"
	"sync"
	"time"

	apperrors "github.com/livrolivre/go-library-server/internal/errors"
	"github.com/livrolivre/go-library-server/token"
)

// SignCall captures the arguments of one Sign invocation so tests can assert
// on the expiry policy the service applied.
type SignCall struct {
	Claims    token.Claims
	ExpiresIn time.Duration
}

// FakeIssuer hands out deterministic opaque tokens and remembers every Sign
// call. Verify resolves only tokens this fake issued.
type FakeIssuer struct {
	lock      sync.Mutex
	SignCalls []SignCall
	SignErr   error
	issued    map[string]token.Claims
}

func NewFakeIssuer() *FakeIssuer {
	return &FakeIssuer{issued: make(map[string]token.Claims)}
}

func (f *FakeIssuer) Sign(claims token.Claims, expiresIn time.Duration) (string, error) {
	f.lock.Lock()
	defer f.lock.Unlock()

	f.SignCalls = append(f.SignCalls, SignCall{Claims: claims, ExpiresIn: expiresIn})
	if f.SignErr != nil {
		return "", f.SignErr
	}

	signed := fmt.Sprintf("fake-token-%d-%s", len(f.SignCalls), claims.Subject)
	f.issued[signed] = claims
	return signed, nil
}

func (f *FakeIssuer) Verify(rawToken string) (token.Claims, error) {
	f.lock.Lock()
	defer f.lock.Unlock()

	claims, ok := f.issued[rawToken]
	if !ok {
		return token.Claims{}, apperrors.ErrInvalidToken
	}
	return claims, nil
}

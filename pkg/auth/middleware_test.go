package auth

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/lestrrat-go/jwx/v3/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockVerifier is a mock implementation of the Verifier interface for testing purposes.
type MockVerifier struct {
	mock.Mock
}

func (m *MockVerifier) Verify(ctx context.Context, tokenString string) (jwt.Token, error) {
	args := m.Called(ctx, tokenString)

	var token jwt.Token
	if args.Get(0) != nil {
		token = args.Get(0).(jwt.Token)
	}
	return token, args.Error(1)
}

func buildToken(t *testing.T, subject string, claims map[string]any) jwt.Token {
	t.Helper()
	builder := jwt.NewBuilder().
		Subject(subject).
		Issuer("test-issuer").
		IssuedAt(time.Now()).
		Expiration(time.Now().Add(time.Hour))
	for k, v := range claims {
		builder = builder.Claim(k, v)
	}
	token, err := builder.Build()
	require.NoError(t, err)
	return token
}

func TestRequireRole(t *testing.T) {
	// given
	adminToken := buildToken(t, "admin-1", map[string]any{"roles": []string{"USER", "ADMIN"}})
	keycloakAdmin := buildToken(t, "admin-2", map[string]any{"realm_access": map[string]any{"roles": []any{"ADMIN"}}})
	userToken := buildToken(t, "user-1", map[string]any{"roles": []string{"USER"}})

	testCases := []struct {
		name               string
		authHeader         string
		setupMock          func(m *MockVerifier)
		expectedStatusCode int
		shouldCallNext     bool
		expectedSubject    string
	}{
		{
			name:       "Success - admin role claim",
			authHeader: "Bearer admin-token",
			setupMock: func(m *MockVerifier) {
				m.On("Verify", mock.Anything, "admin-token").Return(adminToken, nil)
			},
			expectedStatusCode: http.StatusOK,
			shouldCallNext:     true,
			expectedSubject:    "admin-1",
		},
		{
			name:       "Success - realm_access roles",
			authHeader: "Bearer kc-token",
			setupMock: func(m *MockVerifier) {
				m.On("Verify", mock.Anything, "kc-token").Return(keycloakAdmin, nil)
			},
			expectedStatusCode: http.StatusOK,
			shouldCallNext:     true,
			expectedSubject:    "admin-2",
		},
		{
			name:               "Failure - no auth header",
			setupMock:          func(m *MockVerifier) {},
			expectedStatusCode: http.StatusUnauthorized,
		},
		{
			name:               "Failure - not a bearer token",
			authHeader:         "Basic some-credentials",
			setupMock:          func(m *MockVerifier) {},
			expectedStatusCode: http.StatusUnauthorized,
		},
		{
			name:       "Failure - verifier returns error",
			authHeader: "Bearer invalid-token",
			setupMock: func(m *MockVerifier) {
				m.On("Verify", mock.Anything, "invalid-token").Return(nil, errors.New("signature is invalid"))
			},
			expectedStatusCode: http.StatusUnauthorized,
		},
		{
			name:       "Failure - missing admin role",
			authHeader: "Bearer user-token",
			setupMock: func(m *MockVerifier) {
				m.On("Verify", mock.Anything, "user-token").Return(userToken, nil)
			},
			expectedStatusCode: http.StatusForbidden,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			mockVerifier := new(MockVerifier)
			tc.setupMock(mockVerifier)
			middleware := RequireRole(mockVerifier, "ADMIN", slog.New(slog.NewTextHandler(io.Discard, nil)))

			nextHandlerCalled := false
			nextHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				nextHandlerCalled = true
				assert.Equal(t, tc.expectedSubject, ContextSubject(r.Context()))
				assert.Contains(t, ContextRoles(r.Context()), "ADMIN")
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodPost, "/categories", nil)
			if tc.authHeader != "" {
				req.Header.Set("Authorization", tc.authHeader)
			}
			rr := httptest.NewRecorder()

			// when
			middleware(nextHandler).ServeHTTP(rr, req)

			// then
			assert.Equal(t, tc.expectedStatusCode, rr.Code, "HTTP status code is wrong")
			assert.Equal(t, tc.shouldCallNext, nextHandlerCalled, "Next handler call status is wrong")
			mockVerifier.AssertExpectations(t)
		})
	}
}

func TestRoles(t *testing.T) {
	token := buildToken(t, "u", map[string]any{
		"roles":        []any{"A", 7, "B"},
		"realm_access": map[string]any{"roles": []any{"C"}},
	})
	assert.ElementsMatch(t, []string{"A", "B", "C"}, Roles(token))

	none := buildToken(t, "u", nil)
	assert.Empty(t, Roles(none))
}

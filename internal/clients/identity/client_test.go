package identity

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type mockHTTPClient struct {
	mock.Mock
}

func (m *mockHTTPClient) Do(req *http.Request) (*http.Response, error) {
	args := m.Called(req)
	return args.Get(0).(*http.Response), args.Error(1)
}

func jsonResponse(statusCode int, body string) *http.Response {
	return &http.Response{
		StatusCode: statusCode,
		Body:       io.NopCloser(bytes.NewBufferString(body)),
	}
}

func Test_IdentityClient_Verify_WhenTokenValid_ShouldReturnSubject(t *testing.T) {

	assert := assert.New(t)

	mockClient := &mockHTTPClient{}
	mockClient.On("Do", mock.MatchedBy(func(req *http.Request) bool {
		return req.URL.Query().Get("access_token") == "valid-token"
	})).Return(jsonResponse(200, `{"email":"admin@example.com","sub":"1234"}`), nil)

	client := NewClient("https://provider.example.com/tokeninfo")
	client.SetHTTPClient(mockClient)

	subject, err := client.Verify(context.Background(), "valid-token")
	assert.NoError(err)
	assert.Equal("admin@example.com", subject)
}

func Test_IdentityClient_Verify_WhenProviderRejects_ShouldReturnUnauthorized(t *testing.T) {

	mockClient := &mockHTTPClient{}
	mockClient.On("Do", mock.Anything).Return(jsonResponse(400, `{"error":"invalid_token"}`), nil)

	client := NewClient("https://provider.example.com/tokeninfo")
	client.SetHTTPClient(mockClient)

	_, err := client.Verify(context.Background(), "expired-token")
	assert.ErrorIs(t, err, ErrUnauthorized)
}

type mockVerifier struct {
	mock.Mock
}

func (m *mockVerifier) Verify(ctx context.Context, token string) (string, error) {
	args := m.Called(ctx, token)
	return args.String(0), args.Error(1)
}

func Test_CachedVerifier_ShouldVerifyTokenOnlyOnce(t *testing.T) {

	assert := assert.New(t)

	inner := &mockVerifier{}
	inner.On("Verify", mock.Anything, "valid-token").Return("admin@example.com", nil).Once()

	cached := NewCachedVerifier(inner, time.Minute)

	for i := 0; i < 3; i++ {
		subject, err := cached.Verify(context.Background(), "valid-token")
		assert.NoError(err)
		assert.Equal("admin@example.com", subject)
	}

	inner.AssertExpectations(t)
}

func Test_CachedVerifier_ShouldNotCacheRejections(t *testing.T) {

	inner := &mockVerifier{}
	inner.On("Verify", mock.Anything, "bad-token").Return("", ErrUnauthorized).Twice()

	cached := NewCachedVerifier(inner, time.Minute)

	_, err := cached.Verify(context.Background(), "bad-token")
	assert.ErrorIs(t, err, ErrUnauthorized)
	_, err = cached.Verify(context.Background(), "bad-token")
	assert.ErrorIs(t, err, ErrUnauthorized)

	inner.AssertExpectations(t)
}

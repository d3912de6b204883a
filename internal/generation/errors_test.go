package generation

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
	"testing"

	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"

	"github.com/maslennikov-ig/coursebench/internal/models"
)

type fakeNetError struct{ timeout bool }

func (e *fakeNetError) Error() string   { return "net down" }
func (e *fakeNetError) Timeout() bool   { return e.timeout }
func (e *fakeNetError) Temporary() bool { return true }

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want models.ErrorKind
	}{
		{name: "nil", err: nil, want: ""},
		{name: "deadline", err: context.DeadlineExceeded, want: models.ErrorTimeout},
		{
			name: "wrapped deadline",
			err:  fmt.Errorf("calling backend: %w", context.DeadlineExceeded),
			want: models.ErrorTimeout,
		},
		{
			name: "api 429",
			err:  &openai.APIError{HTTPStatusCode: 429},
			want: models.ErrorRateLimited,
		},
		{
			name: "api 503",
			err:  &openai.APIError{HTTPStatusCode: 503},
			want: models.ErrorProvider,
		},
		{
			name: "api 400",
			err:  &openai.APIError{HTTPStatusCode: 400},
			want: models.ErrorProvider,
		},
		{
			name: "request error 429",
			err:  &openai.RequestError{HTTPStatusCode: 429, Err: errors.New("slow down")},
			want: models.ErrorRateLimited,
		},
		{
			name: "net timeout",
			err:  &fakeNetError{timeout: true},
			want: models.ErrorTimeout,
		},
		{
			name: "net failure",
			err:  &fakeNetError{},
			want: models.ErrorNetwork,
		},
		{
			name: "url error",
			err:  &url.Error{Op: "Post", URL: "https://api.example.com", Err: errors.New("refused")},
			want: models.ErrorNetwork,
		},
		{
			name: "dns error",
			err:  &net.DNSError{Err: "no such host", Name: "api.example.com"},
			want: models.ErrorNetwork,
		},
		{
			name: "unknown",
			err:  errors.New("something odd"),
			want: models.ErrorProvider,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.err))
		})
	}
}

package scripts

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore(t *testing.T) {
	seed := map[string]string{"token": "abc"}
	s := NewMemoryStore(seed)
	seed["token"] = "changed"

	v, ok := s.Get("token")
	require.True(t, ok)
	require.Equal(t, "abc", v)

	s.Set("user", "jo")
	all := s.All()
	require.Equal(t, map[string]string{"token": "abc", "user": "jo"}, all)

	all["user"] = "mutated"
	v, _ = s.Get("user")
	require.Equal(t, "jo", v)

	s.Delete("token")
	_, ok = s.Get("token")
	require.False(t, ok)
}

func TestMemoryStoreConcurrent(t *testing.T) {
	var s MemoryStore
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Set("k", "v")
			_, _ = s.Get("k")
			_ = s.All()
		}()
	}
	wg.Wait()

	v, ok := s.Get("k")
	require.True(t, ok)
	require.Equal(t, "v", v)
}

func TestHooksShareVariables(t *testing.T) {
	var notes []Notification
	p := NewPosting(nil, func(n Notification) { notes = append(notes, n) }, zerolog.Nop())

	hooks := Hooks{
		Setup: func(p *Posting) error {
			return p.SetVariable("token", "secret")
		},
		OnRequest: func(req *http.Request, p *Posting) error {
			req.Header.Set("Authorization", "Bearer "+p.GetVariable("token", ""))
			return nil
		},
		OnResponse: func(resp *http.Response, p *Posting) error {
			p.Notify(Notification{Title: "done", Message: resp.Status})
			return p.SetVariable("status", resp.Status)
		},
	}

	require.NoError(t, hooks.RunSetup(p))

	req := httptest.NewRequest(http.MethodGet, "http://example.com", nil)
	require.NoError(t, hooks.RunRequest(req, p))
	require.Equal(t, "Bearer secret", req.Header.Get("Authorization"))

	resp := &http.Response{StatusCode: http.StatusOK, Status: "200 OK"}
	require.NoError(t, hooks.RunResponse(resp, p))

	require.Equal(t, map[string]string{"token": "secret", "status": "200 OK"}, p.Variables())
	require.Len(t, notes, 1)
	require.Equal(t, SeverityInformation, notes[0].Severity)
}

func TestHooksErrorsAndNil(t *testing.T) {
	p := NewPosting(NewMemoryStore(nil), nil, zerolog.Nop())

	var empty Hooks
	require.NoError(t, empty.RunSetup(p))
	require.NoError(t, empty.RunRequest(nil, p))
	require.NoError(t, empty.RunResponse(nil, p))

	boom := errors.New("boom")
	failing := Hooks{
		OnRequest: func(*http.Request, *Posting) error { return boom },
	}
	err := failing.RunRequest(nil, p)
	require.ErrorIs(t, err, boom)
	require.Contains(t, err.Error(), "on_request")

	require.ErrorIs(t, p.SetVariable("  ", "x"), ErrVariableName)
	require.Equal(t, "fallback", p.GetVariable("missing", "fallback"))
	p.Notify(Notification{Message: "logged"})
}

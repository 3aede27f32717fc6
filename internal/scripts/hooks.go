package scripts

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/rs/zerolog"
)

// ErrVariableName is returned when a script sets a variable without a name.
var ErrVariableName = errors.New("variable name is required")

// Severity is the level of a script notification.
type Severity string

const (
	SeverityInformation Severity = "information"
	SeverityWarning     Severity = "warning"
	SeverityError       Severity = "error"
)

// Notification is a message a script wants shown to the user.
type Notification struct {
	Title    string
	Message  string
	Severity Severity
}

// Notifier delivers notifications to the user interface.
type Notifier func(Notification)

// Posting is the handle passed to every hook.
type Posting struct {
	store  VariableStore
	notify Notifier
	logger zerolog.Logger
}

// NewPosting creates a hook handle backed by store. A nil notifier logs
// notifications instead.
func NewPosting(store VariableStore, notify Notifier, logger zerolog.Logger) *Posting {
	if store == nil {
		store = NewMemoryStore(nil)
	}
	return &Posting{store: store, notify: notify, logger: logger}
}

// SetVariable stores a session variable.
func (p *Posting) SetVariable(name, value string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrVariableName
	}
	p.store.Set(name, value)
	p.logger.Debug().Str("variable", name).Msg("script set variable")
	return nil
}

// GetVariable returns a session variable, or fallback when it is unset.
func (p *Posting) GetVariable(name, fallback string) string {
	if v, ok := p.store.Get(name); ok {
		return v
	}
	return fallback
}

// Variables returns a snapshot of the session variables.
func (p *Posting) Variables() map[string]string {
	return p.store.All()
}

// Notify shows n to the user.
func (p *Posting) Notify(n Notification) {
	if n.Severity == "" {
		n.Severity = SeverityInformation
	}
	if p.notify != nil {
		p.notify(n)
		return
	}
	p.logger.Info().
		Str("title", n.Title).
		Str("severity", string(n.Severity)).
		Msg(n.Message)
}

// RequestHook runs before a request is sent and may modify it.
type RequestHook func(*http.Request, *Posting) error

// ResponseHook runs after a response arrives.
type ResponseHook func(*http.Response, *Posting) error

// Hooks holds the script callbacks of one request.
type Hooks struct {
	Setup      func(*Posting) error
	OnRequest  RequestHook
	OnResponse ResponseHook
}

// RunSetup runs the setup hook, if any.
func (h Hooks) RunSetup(p *Posting) error {
	if h.Setup == nil {
		return nil
	}
	if err := h.Setup(p); err != nil {
		return fmt.Errorf("setup script: %w", err)
	}
	return nil
}

// RunRequest runs the request hook, if any.
func (h Hooks) RunRequest(req *http.Request, p *Posting) error {
	if h.OnRequest == nil {
		return nil
	}
	if err := h.OnRequest(req, p); err != nil {
		return fmt.Errorf("on_request script: %w", err)
	}
	return nil
}

// RunResponse runs the response hook, if any.
func (h Hooks) RunResponse(resp *http.Response, p *Posting) error {
	if h.OnResponse == nil {
		return nil
	}
	if err := h.OnResponse(resp, p); err != nil {
		return fmt.Errorf("on_response script: %w", err)
	}
	return nil
}

package client

import (
	"context"
	"errors"
	"sync"

	"github.com/yukikurage/taskhive/internal/dto"
)

// ActionType names a transition of the authentication state.
type ActionType string

const (
	ActionSetLoading   ActionType = "SET_LOADING"
	ActionLoginSuccess ActionType = "LOGIN_SUCCESS"
	ActionLogout       ActionType = "LOGOUT"
	ActionSetError     ActionType = "SET_ERROR"
	ActionClearError   ActionType = "CLEAR_ERROR"
)

// Action is one transition. Only the fields its Type uses are read.
type Action struct {
	Type    ActionType
	Loading bool
	User    *dto.UserDTO
	Token   string
	Error   string
}

// AuthState is the authentication state a front end renders from.
type AuthState struct {
	User            *dto.UserDTO
	Token           string
	IsAuthenticated bool
	Loading         bool
	Error           string
}

// Reduce applies action to state. Unknown actions leave state unchanged.
func Reduce(state AuthState, action Action) AuthState {
	switch action.Type {
	case ActionSetLoading:
		state.Loading = action.Loading
	case ActionLoginSuccess:
		state.User = action.User
		state.Token = action.Token
		state.IsAuthenticated = true
		state.Loading = false
	case ActionLogout:
		state.User = nil
		state.Token = ""
		state.IsAuthenticated = false
		state.Loading = false
	case ActionSetError:
		state.Error = action.Error
		state.Loading = false
	case ActionClearError:
		state.Error = ""
	}
	return state
}

// AuthAPI is the part of the API the store needs. *Client implements it.
type AuthAPI interface {
	Register(ctx context.Context, name, email, password string) (*dto.AuthResponse, error)
	Login(ctx context.Context, email, password string) (*dto.AuthResponse, error)
	Profile(ctx context.Context) (*dto.UserDTO, error)
	SetToken(token string)
}

// TokenStore persists the bearer token between runs.
type TokenStore interface {
	Get() string
	Set(token string)
	Remove()
}

// MemoryTokenStore keeps the token in memory only.
type MemoryTokenStore struct {
	mu    sync.Mutex
	token string
}

func (s *MemoryTokenStore) Get() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

func (s *MemoryTokenStore) Set(token string) {
	s.mu.Lock()
	s.token = token
	s.mu.Unlock()
}

func (s *MemoryTokenStore) Remove() {
	s.Set("")
}

// AuthStore owns the authentication state. Every change goes through
// Dispatch, and subscribers see each resulting state.
type AuthStore struct {
	api    AuthAPI
	tokens TokenStore

	mu          sync.Mutex
	state       AuthState
	subscribers []func(AuthState)
}

// NewAuthStore starts in the loading state with whatever token was persisted.
func NewAuthStore(api AuthAPI, tokens TokenStore) *AuthStore {
	return &AuthStore{
		api:    api,
		tokens: tokens,
		state: AuthState{
			Token:   tokens.Get(),
			Loading: true,
		},
	}
}

// State returns a snapshot of the current state.
func (s *AuthStore) State() AuthState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Subscribe registers fn to receive every new state.
func (s *AuthStore) Subscribe(fn func(AuthState)) {
	s.mu.Lock()
	s.subscribers = append(s.subscribers, fn)
	s.mu.Unlock()
}

// Dispatch applies action and notifies subscribers.
func (s *AuthStore) Dispatch(action Action) {
	s.mu.Lock()
	s.state = Reduce(s.state, action)
	state := s.state
	subscribers := append([]func(AuthState){}, s.subscribers...)
	s.mu.Unlock()

	for _, fn := range subscribers {
		fn(state)
	}
}

// Init restores a session from the persisted token. A token the server
// rejects is discarded.
func (s *AuthStore) Init(ctx context.Context) {
	token := s.tokens.Get()
	if token == "" {
		s.Dispatch(Action{Type: ActionSetLoading, Loading: false})
		return
	}

	s.api.SetToken(token)
	user, err := s.api.Profile(ctx)
	if err != nil {
		s.tokens.Remove()
		s.api.SetToken("")
		s.Dispatch(Action{Type: ActionLogout})
		return
	}

	s.Dispatch(Action{Type: ActionLoginSuccess, User: user, Token: token})
}

// Login signs in and persists the token. On failure the state carries the
// server's message.
func (s *AuthStore) Login(ctx context.Context, email, password string) error {
	s.Dispatch(Action{Type: ActionSetLoading, Loading: true})
	s.Dispatch(Action{Type: ActionClearError})

	resp, err := s.api.Login(ctx, email, password)
	if err != nil {
		s.Dispatch(Action{Type: ActionSetError, Error: errorMessage(err, "Login failed")})
		return err
	}

	s.signIn(resp)
	return nil
}

// Register creates an account and signs in.
func (s *AuthStore) Register(ctx context.Context, name, email, password string) error {
	s.Dispatch(Action{Type: ActionSetLoading, Loading: true})
	s.Dispatch(Action{Type: ActionClearError})

	resp, err := s.api.Register(ctx, name, email, password)
	if err != nil {
		s.Dispatch(Action{Type: ActionSetError, Error: errorMessage(err, "Registration failed")})
		return err
	}

	s.signIn(resp)
	return nil
}

func (s *AuthStore) signIn(resp *dto.AuthResponse) {
	s.tokens.Set(resp.Token)
	s.api.SetToken(resp.Token)

	user := resp.UserDTO
	s.Dispatch(Action{Type: ActionLoginSuccess, User: &user, Token: resp.Token})
}

// Logout forgets the token locally. The server is not contacted.
func (s *AuthStore) Logout() {
	s.tokens.Remove()
	s.api.SetToken("")
	s.Dispatch(Action{Type: ActionLogout})
}

func (s *AuthStore) ClearError() {
	s.Dispatch(Action{Type: ActionClearError})
}

func errorMessage(err error, fallback string) string {
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}

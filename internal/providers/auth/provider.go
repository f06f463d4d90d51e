package auth

import (
	"context"
	"fmt"

	"github.com/GriffinCanCode/WebDesk/backend/internal/shared/types"
)

// Provider implements the lock screen service
type Provider struct {
	auth *Authenticator
}

// NewProvider creates an auth provider
func NewProvider(auth *Authenticator) *Provider {
	return &Provider{auth: auth}
}

// Definition returns service metadata
func (a *Provider) Definition() types.Service {
	tokenArg := types.Parameter{Name: "token", Type: "string", Description: "Session token", Required: true}

	return types.Service{
		ID:          "auth",
		Name:        "Authentication Service",
		Description: "Desktop lock screen login and session tokens",
		Category:    types.CategoryAuth,
		Capabilities: []string{
			"login",
			"logout",
			"verify",
		},
		Tools: []types.Tool{
			{
				ID:          "auth.login",
				Name:        "Login",
				Description: "Unlock the desktop and create a session",
				Parameters: []types.Parameter{
					{Name: "password", Type: "string", Description: "Password", Required: true},
				},
				Returns: "object",
			},
			{ID: "auth.logout", Name: "Logout", Description: "End a session", Parameters: []types.Parameter{tokenArg}, Returns: "boolean"},
			{ID: "auth.verify", Name: "Verify Token", Description: "Check if a session token is valid", Parameters: []types.Parameter{tokenArg}, Returns: "object"},
			{ID: "auth.getUser", Name: "Get Current User", Description: "Get the user behind a token", Parameters: []types.Parameter{tokenArg}, Returns: "object"},
			{ID: "auth.sessions", Name: "List Sessions", Description: "Live desktop sessions", Parameters: []types.Parameter{}, Returns: "array"},
		},
	}
}

// Execute runs an auth operation
func (a *Provider) Execute(ctx context.Context, toolID string, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	switch toolID {
	case "auth.login":
		return a.login(params)
	case "auth.logout":
		return a.logout(params)
	case "auth.verify":
		return a.verify(params)
	case "auth.getUser":
		return a.getUser(params)
	case "auth.sessions":
		sessions := a.auth.Sessions()
		return types.Success(map[string]interface{}{"sessions": sessions, "count": len(sessions)})
	default:
		return nil, fmt.Errorf("unknown tool: %s", toolID)
	}
}

func (a *Provider) login(params map[string]interface{}) (*types.Result, error) {
	password, _ := params["password"].(string)
	session, err := a.auth.Login(password)
	if err != nil {
		return types.Failure(err.Error())
	}
	return types.Success(LoginData(session))
}

// LoginData is the login response body.
func LoginData(session Session) map[string]interface{} {
	return map[string]interface{}{
		"token":      session.Token,
		"session_id": session.ID,
		"username":   session.Username,
		"expires_at": session.ExpiresAt.Unix(),
		"message":    WelcomeMessage,
	}
}

func (a *Provider) logout(params map[string]interface{}) (*types.Result, error) {
	token, ok := params["token"].(string)
	if !ok || token == "" {
		return types.Failure("token required")
	}
	return types.Success(map[string]interface{}{"logged_out": a.auth.Logout(token)})
}

func (a *Provider) verify(params map[string]interface{}) (*types.Result, error) {
	token, ok := params["token"].(string)
	if !ok || token == "" {
		return types.Failure("token required")
	}
	session, err := a.auth.Lookup(token)
	if err != nil {
		return types.Success(map[string]interface{}{"valid": false, "reason": err.Error()})
	}
	return types.Success(map[string]interface{}{
		"valid":      true,
		"username":   session.Username,
		"expires_at": session.ExpiresAt.Unix(),
	})
}

func (a *Provider) getUser(params map[string]interface{}) (*types.Result, error) {
	token, ok := params["token"].(string)
	if !ok || token == "" {
		return types.Failure("token required")
	}
	session, err := a.auth.Lookup(token)
	if err != nil {
		return types.Failure(err.Error())
	}
	return types.Success(map[string]interface{}{
		"username":   session.Username,
		"session_id": session.ID,
		"since":      session.CreatedAt,
	})
}

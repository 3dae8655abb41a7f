package httpkit

import (
	"github.com/gin-gonic/gin"

	"leadflow_backend/platform/apperr"
)

const identityKey = "identity"

// Identity describes the authenticated user attached to a request.
type Identity struct {
	UserID string
	Roles  []string
}

// HasRole reports whether the identity carries the given role.
func (id Identity) HasRole(role string) bool {
	for _, r := range id.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// IsAdmin reports whether the identity has the admin role.
func (id Identity) IsAdmin() bool {
	return id.HasRole("admin")
}

func setIdentity(c *gin.Context, id Identity) {
	c.Set(identityKey, id)
}

// GetIdentity returns the request identity, if one was attached.
func GetIdentity(c *gin.Context) (Identity, error) {
	v, ok := c.Get(identityKey)
	if !ok {
		return Identity{}, apperr.Unauthorized("authentication required")
	}
	id, ok := v.(Identity)
	if !ok {
		return Identity{}, apperr.Internal("invalid identity in context")
	}
	return id, nil
}

// MustGetIdentity returns the request identity or panics. Use only on
// routes behind AuthRequired.
func MustGetIdentity(c *gin.Context) Identity {
	id, err := GetIdentity(c)
	if err != nil {
		panic(err)
	}
	return id
}

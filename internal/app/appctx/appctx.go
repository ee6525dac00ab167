// Package appctx holds the per-request identity resolved once by the session
// middleware and read by every handler after it.
package appctx

import (
	"github.com/gin-gonic/gin"
	"github.com/yigit/clubsphere/internal/app/models"
)

const requestKey = "appctx.request"

// Request is the resolved caller. A zero Request means anonymous.
type Request struct {
	User    *models.AuthUser
	Profile *models.Profile
	// ProfileRepaired is true when Profile was rebuilt from identity metadata
	ProfileRepaired bool
	Token           string
}

// Authenticated reports whether a user and profile were resolved
func (r *Request) Authenticated() bool {
	return r != nil && r.User != nil && r.Profile != nil
}

// Role returns the caller's platform role, empty when anonymous
func (r *Request) Role() models.Role {
	if !r.Authenticated() {
		return ""
	}
	return r.Profile.Role
}

// Set stores r on the gin context
func Set(c *gin.Context, r *Request) {
	c.Set(requestKey, r)
}

// FromGin returns the resolved request. It never returns nil.
func FromGin(c *gin.Context) *Request {
	if v, ok := c.Get(requestKey); ok {
		if r, ok := v.(*Request); ok && r != nil {
			return r
		}
	}
	return &Request{}
}

// Profile is shorthand for FromGin(c).Profile
func Profile(c *gin.Context) *models.Profile {
	return FromGin(c).Profile
}

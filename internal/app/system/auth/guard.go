package auth

import (
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// State is the outcome of checking a session token.
type State int

const (
	Unauthenticated State = iota // no token, or not a decodable JWT with exp
	Valid
	Expired
)

func (s State) String() string {
	switch s {
	case Valid:
		return "valid"
	case Expired:
		return "expired"
	default:
		return "unauthenticated"
	}
}

// Claims is what the console reads out of the API's token.
type Claims struct {
	Subject string
	Name    string
	Email   string
	Role    string
	Expires time.Time
}

// Claim names checked, in order, for each field. The school API issues
// tokens from an ASP.NET stack, which uses the long URI forms.
var (
	nameClaims  = []string{"name", "unique_name", "http://schemas.xmlsoap.org/ws/2005/05/identity/claims/name"}
	emailClaims = []string{"email", "http://schemas.xmlsoap.org/ws/2005/05/identity/claims/emailaddress"}
	roleClaims  = []string{"role", "http://schemas.microsoft.com/ws/2008/06/identity/claims/role"}
)

var parser = jwt.NewParser()

// Evaluate decides whether token grants access at now.
//
// The signature is not checked: the console holds no key and the API
// verifies every call it receives. Only the exp claim gates access, and a
// token whose exp is at or before now is Expired.
func Evaluate(token string, now time.Time) (State, Claims) {
	token = strings.TrimSpace(token)
	if token == "" {
		return Unauthenticated, Claims{}
	}

	mc := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(token, mc); err != nil {
		return Unauthenticated, Claims{}
	}
	exp, err := mc.GetExpirationTime()
	if err != nil || exp == nil {
		return Unauthenticated, Claims{}
	}

	c := Claims{
		Name:    firstString(mc, nameClaims),
		Email:   firstString(mc, emailClaims),
		Role:    firstString(mc, roleClaims),
		Expires: exp.Time,
	}
	c.Subject, _ = mc.GetSubject()

	if !now.Before(exp.Time) {
		return Expired, c
	}
	return Valid, c
}

// firstString returns the first non-empty string claim among keys. A claim
// holding a list of strings yields its first element.
func firstString(mc jwt.MapClaims, keys []string) string {
	for _, k := range keys {
		switch v := mc[k].(type) {
		case string:
			if v != "" {
				return v
			}
		case []any:
			if len(v) > 0 {
				if s, ok := v[0].(string); ok && s != "" {
					return s
				}
			}
		}
	}
	return ""
}

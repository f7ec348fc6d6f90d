// util/jwtx/actor.go
package jwtx

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/karim076/Weektaken-LU-1-sub000/model"
)

const actorKey = "actor"

// FromClaims builds the actor out of the verified JWT claims echo-jwt
// stored on the context.
func FromClaims(c echo.Context) (model.Actor, error) {
	claims, ok := c.Get("user").(jwt.MapClaims)
	if !ok {
		if tok, ok2 := c.Get("user").(*jwt.Token); ok2 && tok != nil {
			claims, ok = tok.Claims.(jwt.MapClaims)
		}
		if !ok {
			return model.Actor{}, errors.New("no jwt claims in context")
		}
	}

	sub, ok := claims["sub"].(float64)
	if !ok {
		return model.Actor{}, errors.New("sub missing in claims")
	}
	role, _ := claims["role"].(string)
	if role == "" {
		role = model.RoleCustomer
	}
	return model.Actor{ID: int64(sub), Role: role}, nil
}

// Set stores the actor for handlers downstream of the auth middleware.
func Set(c echo.Context, a model.Actor) { c.Set(actorKey, a) }

// Actor reads the actor the auth middleware stored.
func Actor(c echo.Context) (model.Actor, bool) {
	a, ok := c.Get(actorKey).(model.Actor)
	return a, ok
}

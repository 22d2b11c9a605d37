package middleware

import (
	"context"
	"net/http"

	"github.com/golang-jwt/jwt/v5"

	"github.com/atfs-dev/atfs/internal/domain"
	internal_jwt "github.com/atfs-dev/atfs/internal/jwt"
	"github.com/atfs-dev/atfs/internal/logger"
	"github.com/atfs-dev/atfs/internal/utils"
)

// Key to store the customer claims in the request context
type key int

const CustomerClaimsKey key = 0

func Auth(jwtService internal_jwt.Service, adminOnly bool) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			accessCookie, err := r.Cookie("accessToken")
			if err == http.ErrNoCookie {
				http.Error(w, "Please sign-in", http.StatusUnauthorized)
				return
			} else if err != nil {
				logger.Log.Error("failed to read access cookie", "error", err)
				http.Error(w, "Invalid cookie", http.StatusInternalServerError)
				return
			}

			token, err := jwtService.DecodeToken(accessCookie.Value)
			if err != nil {
				utils.WriteErrorAndStatusCode(w, err)
				return
			}

			claims := token.Claims.(jwt.MapClaims)

			if adminOnly {
				isAdmin, ok := claims["admin"].(bool)
				if !ok || !isAdmin {
					http.Error(w, "Access denied. Only for admin", http.StatusForbidden)
					return
				}
			}

			customer := &domain.Customer{
				Id:    int64(claims["cid"].(float64)),
				Email: claims["email"].(string),
				Admin: claims["admin"].(bool),
			}

			ctx := context.WithValue(r.Context(), CustomerClaimsKey, customer)
			next(w, r.WithContext(ctx))
		}
	}
}

// Helper functions for admin and regular auth
func AdminOnly(jwtService internal_jwt.Service) func(http.HandlerFunc) http.HandlerFunc {
	return Auth(jwtService, true)
}

func NeedAuth(jwtService internal_jwt.Service) func(http.HandlerFunc) http.HandlerFunc {
	return Auth(jwtService, false)
}

// GetCustomerFromContext retrieves the authenticated customer, or nil when the
// request skipped the auth middleware.
func GetCustomerFromContext(r *http.Request) *domain.Customer {
	customer, ok := r.Context().Value(CustomerClaimsKey).(*domain.Customer)
	if !ok {
		return nil
	}
	return customer
}

package jwt

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/atfs-dev/atfs/internal/domain"
)

var secretKey string = "testJwtKey"
var customer domain.Customer = domain.Customer{Id: 1, Email: "test@example.com", Admin: true}

func TestDecodeTokenCorrect(t *testing.T) {
	j := New(secretKey, 10*time.Second)
	token, err := j.NewToken(customer)
	if err != nil {
		t.Errorf(err.Error())
	}

	decoded, err := j.DecodeToken(token)
	if err != nil {
		t.Errorf(err.Error())
	}
	claims := decoded.Claims.(jwt.MapClaims)
	if cid := claims["cid"].(float64); cid != 1 {
		t.Errorf("%v != 1", cid)
	}
	if email := claims["email"]; email != "test@example.com" {
		t.Errorf("%s != %s", email, "test@example.com")
	}
	if admin := claims["admin"].(bool); !admin {
		t.Errorf("admin claim lost")
	}
}

func TestDecodeTokenExpired(t *testing.T) {
	j := New(secretKey, time.Duration(0))
	token, err := j.NewToken(customer)
	if err != nil {
		t.Errorf(err.Error())
	}

	_, err = j.DecodeToken(token)
	if err == nil {
		t.Errorf("We shouldn't decode expired token")
	}
}

func TestDecodeTokenInvalidSecretKey(t *testing.T) {
	token, err := New(secretKey, 10*time.Second).NewToken(customer)
	if err != nil {
		t.Errorf(err.Error())
	}

	_, err = New("invalidSecret", 10*time.Second).DecodeToken(token)
	if err == nil {
		t.Errorf("We shouldn't decode token with invalid secret")
	}
}

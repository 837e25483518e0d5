package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Config parámetros de firma compartidos por emisión y validación.
type Config struct {
	Secret     string
	Algorithm  string // HS256, HS384, HS512
	Issuer     string
	ExpMinutes int
}

// Claims claims estándar más el rol del usuario.
// El subject es el email; el rol viaja solo como pista, la autorización usa el rol en base de datos.
type Claims struct {
	jwt.RegisteredClaims
	Role string `json:"role,omitempty"`
}

var ErrEmptySecret = errors.New("jwt: secret vacío")

func signingMethod(alg string) (*jwt.SigningMethodHMAC, error) {
	switch alg {
	case "", "HS256":
		return jwt.SigningMethodHS256, nil
	case "HS384":
		return jwt.SigningMethodHS384, nil
	case "HS512":
		return jwt.SigningMethodHS512, nil
	}
	return nil, fmt.Errorf("jwt: algoritmo no soportado %q", alg)
}

// Generate firma un token para subject (email) con expiración relativa a now.
func Generate(cfg Config, subject, role string, now time.Time) (string, error) {
	if cfg.Secret == "" {
		return "", ErrEmptySecret
	}
	method, err := signingMethod(cfg.Algorithm)
	if err != nil {
		return "", err
	}
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    cfg.Issuer,
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(cfg.ExpMinutes) * time.Minute)),
		},
		Role: role,
	}
	return jwt.NewWithClaims(method, claims).SignedString([]byte(cfg.Secret))
}

// Parse valida firma, algoritmo y expiración y devuelve los claims.
// Cualquier fallo de decodificación se devuelve como error.
func Parse(cfg Config, tokenString string) (*Claims, error) {
	if cfg.Secret == "" {
		return nil, ErrEmptySecret
	}
	method, err := signingMethod(cfg.Algorithm)
	if err != nil {
		return nil, err
	}
	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{method.Alg()}), jwt.WithExpirationRequired()}
	if cfg.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(cfg.Issuer))
	}
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		return []byte(cfg.Secret), nil
	}, opts...)
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("claims inválidos")
	}
	if claims.Subject == "" {
		return nil, fmt.Errorf("token sin subject")
	}
	return claims, nil
}

package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/HarryYanarico/my-proyect/internal/apierror"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	ClaimsKey = "claims"
)

// JWTClaims are the custom claims embedded in every access token.
type JWTClaims struct {
	EmpleadoID string `json:"id_empleado"`
	Email      string `json:"email"`
	Rol        string `json:"rol"`
	jwt.RegisteredClaims
}

// GenerarToken signs an HS256 access token for an empleado.
func GenerarToken(secret string, empleadoID uuid.UUID, email, rol string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := JWTClaims{
		EmpleadoID: empleadoID.String(),
		Email:      email,
		Rol:        rol,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   empleadoID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        uuid.NewString(),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// JWTAuth validates the Bearer token on every protected route.
func JWTAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				apierror.New(apierror.CodeNoAutorizado, "Autenticación requerida"))
			return
		}

		tokenStr := strings.TrimPrefix(header, "Bearer ")
		claims := &JWTClaims{}
		token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(secret), nil
		})

		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				apierror.New(apierror.CodeNoAutorizado, "Token inválido o expirado"))
			return
		}
		if _, err := uuid.Parse(claims.EmpleadoID); err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				apierror.New(apierror.CodeNoAutorizado, "Token sin empleado"))
			return
		}

		c.Set(ClaimsKey, claims)
		c.Next()
	}
}

// RequireRole rejects requests whose JWT role is not in the allowed list.
func RequireRole(roles ...string) gin.HandlerFunc {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	return func(c *gin.Context) {
		claims := GetClaims(c)
		if claims == nil || !allowed[claims.Rol] {
			c.AbortWithStatusJSON(http.StatusForbidden,
				apierror.New(apierror.CodeProhibido, "Permisos insuficientes"))
			return
		}
		c.Next()
	}
}

// GetClaims returns the typed claims set by JWTAuth, or nil.
func GetClaims(c *gin.Context) *JWTClaims {
	v, ok := c.Get(ClaimsKey)
	if !ok {
		return nil
	}
	claims, _ := v.(*JWTClaims)
	return claims
}

// EmpleadoID is the acting employee of an authenticated request.
func EmpleadoID(c *gin.Context) (uuid.UUID, bool) {
	claims := GetClaims(c)
	if claims == nil {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(claims.EmpleadoID)
	return id, err == nil
}

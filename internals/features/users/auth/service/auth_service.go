// internals/features/users/auth/service/auth_service.go
package service

import (
	"errors"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	googleAuthIDTokenVerifier "github.com/futurenda/google-auth-id-token-verifier"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"teacha_backend/internals/configs"
	"teacha_backend/internals/constants"
	authDTO "teacha_backend/internals/features/users/auth/dto"
	authRepo "teacha_backend/internals/features/users/auth/repository"
	userDTO "teacha_backend/internals/features/users/user/dto"
	userModel "teacha_backend/internals/features/users/user/model"
	helper "teacha_backend/internals/helpers"
)

var validate = validator.New()

/* ==========================
   REGISTER
========================== */

// POST /api/auth/register
func Register(db *gorm.DB, c *fiber.Ctx) error {
	var input authDTO.RegisterRequest
	if err := c.BodyParser(&input); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(input); err != nil {
		return helper.JsonValidationError(c, err)
	}

	// advisory pre-check; the unique index is the source of truth
	if _, err := authRepo.FindUserByEmail(db, input.Email); err == nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "User with this email already exists")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to register user")
	}

	passwordHash, err := HashPassword(input.Password)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Password hashing failed")
	}

	tenantID, err := uuid.Parse(input.TenantID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid tenant id")
	}

	role := constants.DefaultRole
	if input.Role != nil {
		role = *input.Role
	}

	user := userModel.UserModel{
		TenantID: &tenantID,
		Name:     input.Name,
		Email:    input.Email,
		Password: passwordHash,
		Role:     role,
		IsActive: true,
	}
	if err := authRepo.CreateUser(db, &user); err != nil {
		if helper.IsDuplicateKeyErr(err) {
			return helper.JsonError(c, fiber.StatusBadRequest, "User with this email already exists")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to register user")
	}

	return issueTokens(c, db, &user, "User registered successfully", fiber.StatusCreated)
}

/* ==========================
   LOGIN
========================== */

// POST /api/auth/login — unknown email and wrong password answer with the
// same message to avoid user enumeration.
func Login(db *gorm.DB, c *fiber.Ctx) error {
	var input authDTO.LoginRequest
	if err := c.BodyParser(&input); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid input format")
	}
	if err := validate.Struct(input); err != nil {
		return helper.JsonValidationError(c, err)
	}

	user, err := authRepo.FindUserByEmail(db, strings.TrimSpace(input.Email))
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Invalid email or password")
	}
	if !user.IsActive {
		return helper.JsonError(c, fiber.StatusForbidden, "Your account has been disabled. Contact an admin.")
	}
	if err := CheckPasswordHash(user.Password, input.Password); err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Invalid email or password")
	}

	return issueTokens(c, db, user, "Login successful", fiber.StatusOK)
}

/* ==========================
   ME
========================== */

// GET /api/auth/me — the token may outlive the row; answer 404 then.
func Me(db *gorm.DB, c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromLocals(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	user, err := authRepo.FindUserByID(db, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "User not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to get user profile")
	}

	return helper.JsonOK(c, fiber.Map{"user": userDTO.FromModel(user)})
}

/* ==========================
   LOGIN GOOGLE
========================== */

// POST /api/auth/login-google
func LoginGoogle(db *gorm.DB, c *fiber.Ctx) error {
	var input authDTO.GoogleLoginRequest
	if err := c.BodyParser(&input); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(input); err != nil {
		return helper.JsonValidationError(c, err)
	}

	v := googleAuthIDTokenVerifier.Verifier{}
	if err := v.VerifyIDToken(input.IDToken, []string{configs.GoogleClientID}); err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Invalid Google ID Token")
	}

	claimSet, err := googleAuthIDTokenVerifier.Decode(input.IDToken)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to decode ID Token")
	}
	email, name, googleID := claimSet.Email, claimSet.Name, claimSet.Sub

	user, err := authRepo.FindUserByGoogleID(db, googleID)
	if err != nil {
		// fall back to email so an existing account gets linked
		user, err = authRepo.FindUserByEmail(db, email)
		if err == nil {
			user.GoogleID = &googleID
			if err := db.Model(user).Update("google_id", googleID).Error; err != nil {
				log.Printf("[WARN] linking google id failed: %v", err)
			}
		} else {
			dummyHash, _ := HashPassword(uuid.NewString())
			newUser := userModel.UserModel{
				Name:     name,
				Email:    email,
				Password: dummyHash,
				GoogleID: &googleID,
				Role:     constants.DefaultRole,
				IsActive: true,
			}
			if err := authRepo.CreateUser(db, &newUser); err != nil {
				return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create user")
			}
			user = &newUser
		}
	}

	if !user.IsActive {
		return helper.JsonError(c, fiber.StatusForbidden, "Your account has been disabled. Contact an admin.")
	}

	return issueTokens(c, db, user, "Login successful", fiber.StatusOK)
}

/* ==========================
   LOGOUT
========================== */

// POST /api/auth/logout — blacklists the access token until it would have
// expired and revokes the refresh token. Idempotent.
func Logout(db *gorm.DB, c *fiber.Ctx) error {
	accessToken := helper.GetRawAccessToken(c)
	ttl := resolveBlacklistTTL(accessToken)

	if accessToken != "" {
		if err := authRepo.BlacklistToken(db, accessToken, ttl); err != nil {
			log.Printf("[WARN] failed to blacklist token: %v", err)
		}
	}

	if rt := strings.TrimSpace(c.Cookies("refresh_token")); rt != "" {
		if secret, err := getRefreshSecret(); err == nil {
			_ = authRepo.DeleteRefreshTokenByHash(db, computeRefreshHash(rt, secret))
		}
	}

	expired := nowUTC().Add(-time.Hour)
	for _, name := range []string{"access_token", "refresh_token"} {
		c.Cookie(&fiber.Cookie{
			Name:     name,
			Value:    "",
			HTTPOnly: true,
			Secure:   true,
			SameSite: "None",
			Path:     "/",
			Expires:  expired,
			MaxAge:   -1,
		})
	}

	return helper.JsonOK(c, fiber.Map{"message": "Logout successful"})
}

func resolveBlacklistTTL(accessToken string) time.Duration {
	ttl := 2 * time.Minute
	if v := os.Getenv("BLACKLIST_TTL_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return time.Duration(n) * time.Second
		}
	}
	secret := strings.TrimSpace(configs.JWTSecret)
	if secret == "" || accessToken == "" {
		return ttl
	}
	if tok, err := jwt.Parse(accessToken, func(t *jwt.Token) (any, error) {
		return []byte(secret), nil
	}); err == nil {
		if claims, ok := tok.Claims.(jwt.MapClaims); ok && tok.Valid {
			if exp, ok := claims["exp"].(float64); ok {
				until := time.Until(time.Unix(int64(exp), 0))
				if until > 0 {
					return until + 60*time.Second
				}
				return time.Minute
			}
		}
	}
	return ttl
}

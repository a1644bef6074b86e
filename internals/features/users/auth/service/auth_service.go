package service

import (
	"errors"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"cems_backend/internals/configs"
	"cems_backend/internals/constants"
	"cems_backend/internals/features/users/auth/dto"
	userModel "cems_backend/internals/features/users/user/model"
	helper "cems_backend/internals/helpers"
)

const (
	bcryptCost = 10
	accessTTL  = 1 * time.Hour
)

// Register membuat user baru. Role default student; role di luar enum ditolak.
func Register(db *gorm.DB, c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body.")
	}

	req.FullName = strings.TrimSpace(req.FullName)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	if req.FullName == "" || req.Email == "" || req.Password == "" {
		return helper.Error(c, fiber.StatusBadRequest, "full_name, email, and password are required.")
	}
	if len(req.Password) < 6 {
		return helper.Error(c, fiber.StatusBadRequest, "Password must be at least 6 characters long.")
	}

	role := constants.RoleStudent
	if req.Role != "" {
		parsed, err := constants.ParseRole(req.Role)
		if err != nil {
			return helper.Error(c, fiber.StatusBadRequest, "role must be one of student, organizer, admin.")
		}
		role = parsed
	}

	var existing userModel.UserModel
	if err := db.Where("user_email = ?", req.Email).First(&existing).Error; err == nil {
		return helper.Error(c, fiber.StatusConflict, "Email taken.")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("[ERROR] cek email duplikat: %v", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Server error creating user.")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Server error creating user.")
	}

	user := userModel.UserModel{
		FullName: req.FullName,
		Email:    req.Email,
		Password: string(hashed),
		Role:     role.String(),
	}
	if err := db.Create(&user).Error; err != nil {
		// fallback saat dua registrasi email sama balapan lolos dari check di atas
		if helper.IsUniqueViolation(err) {
			return helper.Error(c, fiber.StatusConflict, "Email taken.")
		}
		log.Printf("[ERROR] insert user: %v", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Server error creating user.")
	}

	return helper.SuccessWithCode(c, fiber.StatusCreated, dto.UserResponse{
		ID:       user.ID.String(),
		FullName: user.FullName,
		Email:    user.Email,
		Role:     user.Role,
	})
}

// Login memverifikasi kredensial dan menerbitkan JWT HS256 berumur 1 jam.
func Login(db *gorm.DB, c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body.")
	}
	if req.Email == "" || req.Password == "" {
		return helper.Error(c, fiber.StatusBadRequest, "email and password required.")
	}

	var user userModel.UserModel
	err := db.Where("user_email = ?", strings.ToLower(strings.TrimSpace(req.Email))).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return helper.Error(c, fiber.StatusUnauthorized, "Invalid credentials.")
	}
	if err != nil {
		log.Printf("[ERROR] login query: %v", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Server error logging in.")
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)) != nil {
		return helper.Error(c, fiber.StatusUnauthorized, "Invalid credentials.")
	}

	token, err := IssueToken(user)
	if err != nil {
		log.Printf("[ERROR] sign token: %v", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Server error logging in.")
	}

	return helper.Success(c, fiber.Map{"token": token})
}

// IssueToken menandatangani klaim {id, email, role} — token stateless, tanpa revocation list.
func IssueToken(user userModel.UserModel) (string, error) {
	secret := strings.TrimSpace(configs.JWTSecret)
	if secret == "" {
		return "", errors.New("JWT_SECRET belum diset")
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"id":    user.ID.String(),
		"email": user.Email,
		"role":  user.Role,
		"iat":   now.Unix(),
		"exp":   now.Add(accessTTL).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

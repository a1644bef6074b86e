package controller

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"cems_backend/internals/features/users/auth/dto"
	"cems_backend/internals/features/users/auth/service"
	userModel "cems_backend/internals/features/users/user/model"
	helper "cems_backend/internals/helpers"
)

type AuthController struct {
	DB *gorm.DB
}

func NewAuthController(db *gorm.DB) *AuthController {
	return &AuthController{DB: db}
}

func (ac *AuthController) Register(c *fiber.Ctx) error {
	return service.Register(ac.DB, c)
}

func (ac *AuthController) Login(c *fiber.Ctx) error {
	return service.Login(ac.DB, c)
}

// Me mengembalikan profil user yang sedang login.
func (ac *AuthController) Me(c *fiber.Ctx) error {
	userID, err := helper.GetUserUUID(c)
	if err != nil {
		return err
	}

	var user userModel.UserModel
	if err := ac.DB.First(&user, "user_id = ?", userID).Error; err != nil {
		return fiber.NewError(fiber.StatusNotFound, "User not found.")
	}

	return helper.Success(c, dto.UserResponse{
		ID:       user.ID.String(),
		FullName: user.FullName,
		Email:    user.Email,
		Role:     user.Role,
	})
}

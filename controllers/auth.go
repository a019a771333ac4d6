// controllers/auth.go
package controllers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"salonhub-backend/config"
	"salonhub-backend/models"
	"salonhub-backend/services"
	"salonhub-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type RegisterInput struct {
	Email    string `json:"email" binding:"required,email"`
	Mobile   string `json:"mobile" binding:"required"`
	Name     string `json:"name" binding:"required"`
	Password string `json:"password" binding:"required,min=8"`
	Role     string `json:"role" binding:"omitempty,oneof=customer stylist salon_owner"`
}

type LoginInput struct {
	Identifier string `json:"identifier" binding:"required"` // Can be email or mobile
	Password   string `json:"password" binding:"required"`
}

// Register creates a user plus the profile matching their role.
func Register(c *gin.Context) {
	var input RegisterInput

	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	if !utils.ValidatePhone(input.Mobile) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid mobile number")
		return
	}

	role := input.Role
	if role == "" {
		role = models.RoleCustomer
	}

	// Check if email or mobile already exists
	var existingUser models.User
	result := config.DB.Where("email = ? OR mobile = ?", input.Email, input.Mobile).First(&existingUser)
	if result.Error == nil {
		utils.RespondWithError(c, http.StatusConflict, "Email or mobile already registered")
		return
	} else if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	newUser := models.User{
		Email:    input.Email,
		Mobile:   input.Mobile,
		Name:     input.Name,
		Password: input.Password, // Will be hashed in BeforeCreate hook
		Role:     role,
	}

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&newUser).Error; err != nil {
			return err
		}
		switch role {
		case models.RoleCustomer:
			return tx.Create(&models.CustomerProfile{UserID: newUser.ID}).Error
		case models.RoleStylist:
			return tx.Create(&models.StylistProfile{UserID: newUser.ID}).Error
		case models.RoleSalonOwner:
			return tx.Create(&models.SalonOwnerProfile{UserID: newUser.ID}).Error
		}
		return nil
	})
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create user")
		return
	}

	token, err := utils.GenerateToken(newUser.ID.String(), newUser.Role)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Registration successful",
		"token":   token,
		"user": gin.H{
			"id":     newUser.ID,
			"email":  newUser.Email,
			"mobile": newUser.Mobile,
			"name":   newUser.Name,
			"role":   newUser.Role,
		},
	})
}

func Login(c *gin.Context) {
	var input LoginInput

	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input")
		return
	}

	identifier := strings.TrimSpace(input.Identifier)

	var user models.User
	result := config.DB.Where("email = ? OR mobile = ?", identifier, identifier).First(&user)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusUnauthorized, "Invalid credentials")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if !utils.CheckPasswordHash(input.Password, user.Password) {
		utils.RespondWithError(c, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	token, err := utils.GenerateToken(user.ID.String(), user.Role)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	// Update last login
	now := time.Now()
	config.DB.Model(&user).Update("last_login", &now)

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user": gin.H{
			"id":     user.ID,
			"email":  user.Email,
			"mobile": user.Mobile,
			"name":   user.Name,
			"role":   user.Role,
		},
	})
}

func Me(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user": gin.H{
			"id":              user.ID,
			"email":           user.Email,
			"mobile":          user.Mobile,
			"name":            user.Name,
			"role":            user.Role,
			"isPhoneVerified": user.IsPhoneVerified,
		},
	})
}

type RequestOTPInput struct {
	Mobile string `json:"mobile" binding:"required"`
}

type VerifyOTPInput struct {
	Mobile string `json:"mobile" binding:"required"`
	Code   string `json:"code" binding:"required,len=6"`
}

// RequestOTP texts a verification code to the given mobile number.
func RequestOTP(c *gin.Context) {
	var input RequestOTPInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	if !utils.ValidatePhone(input.Mobile) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid mobile number")
		return
	}

	notifier := services.NewNotifier(config.DB)
	if err := notifier.SendOTP(input.Mobile); err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to send verification code")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Verification code sent"})
}

// VerifyOTP checks a code and marks the user's phone verified.
func VerifyOTP(c *gin.Context) {
	var input VerifyOTPInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	notifier := services.NewNotifier(config.DB)
	if err := notifier.VerifyOTP(input.Mobile, input.Code); err != nil {
		if errors.Is(err, services.ErrInvalidOTP) {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid or expired code")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Verification failed")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Phone number verified"})
}

// File: /controllers/auth_controller.go
package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"sees-api/middleware"
	"sees-api/models"
	"sees-api/services"
)

type AuthController struct {
	db        *gorm.DB
	jwtSecret string
}

func NewAuthController(db *gorm.DB, jwtSecret string) *AuthController {
	return &AuthController{db: db, jwtSecret: jwtSecret}
}

type RegisterRequest struct {
	Name     string      `json:"name" binding:"required"`
	Email    string      `json:"email" binding:"required,email"`
	Password string      `json:"password" binding:"required,min=6"`
	Role     models.Role `json:"role"` // defaults to client
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type AuthResponse struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

func (ac *AuthController) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	role := req.Role
	if role == "" {
		role = models.RoleClient
	}
	if !role.IsValid() {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Unknown role"})
		return
	}

	// Hash password
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to hash password"})
		return
	}

	user := models.User{
		ID:       uuid.New().String(),
		Name:     req.Name,
		Email:    req.Email,
		Password: string(hashedPassword),
		Role:     role,
	}

	// The unique index on email is the authority; concurrent registrations
	// with the same address both land here.
	if err := ac.db.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			c.JSON(http.StatusConflict, gin.H{"message": "Email already registered"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create user"})
		return
	}

	token, err := ac.generateJWT(&user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusCreated, AuthResponse{Token: token, User: user})
}

func (ac *AuthController) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	var user models.User
	if err := ac.db.Where("email = ?", req.Email).First(&user).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid credentials"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid credentials"})
		return
	}

	token, err := ac.generateJWT(&user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, AuthResponse{Token: token, User: user})
}

func (ac *AuthController) GetProfile(c *gin.Context) {
	userID := c.GetString(middleware.ContextUserID)

	var user models.User
	if err := ac.db.First(&user, "id = ?", userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
		return
	}

	c.JSON(http.StatusOK, user)
}

type UpdateProfileRequest struct {
	Name         *string   `json:"name"`
	Skills       *[]string `json:"skills"`
	Achievements *[]string `json:"achievements"`
	Expertise    *[]string `json:"expertise"`
}

func (ac *AuthController) UpdateProfile(c *gin.Context) {
	userID := c.GetString(middleware.ContextUserID)

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	var user models.User
	if err := ac.db.First(&user, "id = ?", userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
		return
	}

	updates := map[string]interface{}{}
	if req.Name != nil && *req.Name != "" {
		updates["name"] = *req.Name
	}
	if req.Skills != nil {
		updates["skills"] = models.StringSliceType(*req.Skills)
	}
	if req.Achievements != nil {
		updates["achievements"] = models.StringSliceType(*req.Achievements)
	}
	if req.Expertise != nil {
		updates["expertise"] = models.StringSliceType(*req.Expertise)
	}

	if len(updates) > 0 {
		if err := ac.db.Model(&user).Updates(updates).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update profile"})
			return
		}
	}

	c.JSON(http.StatusOK, user)
}

// RecommendationsRequest optionally overrides the stored profile. An empty
// body scores against what the user has saved.
type RecommendationsRequest struct {
	Skills       []string `json:"skills"`
	Achievements []string `json:"achievements"`
	Expertise    []string `json:"expertise"`
}

func (ac *AuthController) Recommendations(c *gin.Context) {
	userID := c.GetString(middleware.ContextUserID)

	var req RecommendationsRequest
	// Body is optional
	_ = c.ShouldBindJSON(&req)

	profile := services.RecommendationProfile{
		Skills:       req.Skills,
		Achievements: req.Achievements,
		Expertise:    req.Expertise,
	}

	if len(profile.Skills) == 0 && len(profile.Achievements) == 0 && len(profile.Expertise) == 0 {
		var user models.User
		if err := ac.db.First(&user, "id = ?", userID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
			return
		}
		profile = services.RecommendationProfile{
			Skills:       user.Skills,
			Achievements: user.Achievements,
			Expertise:    user.Expertise,
		}
	}

	now := time.Now()

	var events []models.Event
	if err := ac.db.Where("is_public = ? AND date_time > ?", true, now).Find(&events).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch events"})
		return
	}

	recommendations := services.RecommendEvents(profile, events, now)
	c.JSON(http.StatusOK, gin.H{"recommendations": recommendations})
}

func (ac *AuthController) generateJWT(user *models.User) (string, error) {
	claims := jwt.MapClaims{
		"user_id": user.ID,
		"email":   user.Email,
		"role":    string(user.Role),
		"exp":     time.Now().Add(time.Hour * 24 * 7).Unix(), // 7 days
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(ac.jwtSecret))
}

package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"fire_tracker/internal/crud"
	"fire_tracker/internal/middleware"
	"fire_tracker/internal/models"
)

const (
	RoleAdmin = "admin"
	RoleStaff = "staff"
)

var ErrInvalidRole = errors.New("invalid role")

type signupInput struct {
	Name     string `json:"name" form:"name" binding:"required,max=150"`
	Email    string `json:"email" form:"email" binding:"required,email"`
	Password string `json:"password" form:"password" binding:"required,min=8"`
	Role     string `json:"role" form:"role"`
}

type loginInput struct {
	Email    string `json:"email" form:"email" binding:"required,email"`
	Password string `json:"password" form:"password" binding:"required"`
}

type AuthController struct {
	db  *gorm.DB
	jwt *middleware.JWT
}

func NewAuthController(db *gorm.DB, j *middleware.JWT) *AuthController {
	return &AuthController{db: db, jwt: j}
}

// SignupUser creates a staff or admin account. It is mounted behind the
// admin role so only existing admins can add users.
func (ac *AuthController) SignupUser(c *gin.Context) {
	var input signupInput
	if err := c.ShouldBind(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	role, err := validateAndNormalizeRole(input.Role)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := CreateUser(ac.db.WithContext(c.Request.Context()), input.Name, input.Email, input.Password, role)
	if err != nil {
		if crud.IsDuplicate(err) {
			c.JSON(http.StatusConflict, gin.H{"error": "email already in use"})
			return
		}
		logrus.WithError(err).Error("SignupUser: could not create user")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create user"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"user": prepareUserResponse(user)})
}

func (ac *AuthController) LoginUser(c *gin.Context) {
	var body loginInput
	if err := c.ShouldBind(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var user models.User
	err := ac.db.WithContext(c.Request.Context()).
		Where("email = ?", strings.ToLower(strings.TrimSpace(body.Email))).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		} else {
			logrus.WithError(err).Error("LoginUser: database error")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "database error"})
		}
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(body.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}

	token, err := ac.jwt.GenerateToken(user.ID, user.Role)
	if err != nil {
		logrus.WithError(err).Error("LoginUser: could not sign token")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user":  prepareUserResponse(user),
	})
}

// Me returns the account behind the bearer token.
func (ac *AuthController) Me(c *gin.Context) {
	// jwt.MapClaims decodes numbers as float64
	raw, _ := c.Get("user_id")
	id, ok := raw.(float64)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token claims"})
		return
	}

	var user models.User
	if err := ac.db.WithContext(c.Request.Context()).First(&user, uint(id)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "user no longer exists"})
			return
		}
		logrus.WithError(err).Error("Me: database error")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "database error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": prepareUserResponse(user)})
}

// CreateUser hashes password and stores a new account. The seed command
// uses it for the bootstrap admin.
func CreateUser(db *gorm.DB, name, email, password, role string) (models.User, error) {
	hash, err := hashPassword(password)
	if err != nil {
		return models.User{}, err
	}
	user := models.User{
		Name:     name,
		Email:    strings.ToLower(strings.TrimSpace(email)),
		Password: hash,
		Role:     role,
	}
	if err := db.Create(&user).Error; err != nil {
		return models.User{}, err
	}
	return user, nil
}

func validateAndNormalizeRole(roleInput string) (string, error) {
	role := strings.ToLower(strings.TrimSpace(roleInput))
	if role == "" {
		role = RoleStaff
	}
	switch role {
	case RoleAdmin, RoleStaff:
		return role, nil
	default:
		return "", ErrInvalidRole
	}
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func prepareUserResponse(user models.User) gin.H {
	return gin.H{
		"id":         user.ID,
		"created_at": user.CreatedAt,
		"updated_at": user.UpdatedAt,
		"name":       user.Name,
		"email":      user.Email,
		"role":       user.Role,
	}
}

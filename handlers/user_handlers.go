package handlers

import (
	"catalog-backend/jwt"
	"catalog-backend/services"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const tokenTTL = 24 * time.Hour

// Registration rules: names min 2 chars, valid email, password min 6 chars.
type registerRequest struct {
	FirstName string `json:"firstName" binding:"required,min=2"`
	LastName  string `json:"lastName" binding:"required,min=2"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=6"`
}

func RegisterHandler(c *gin.Context, db *gorm.DB) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "اطلاعات وارد شده نامعتبر است",
			"error":   err.Error(),
		})
		return
	}

	user, err := services.RegisterUser(db, req.FirstName, req.LastName, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrEmailTaken) {
			c.JSON(http.StatusConflict, gin.H{
				"message": "کاربری با این ایمیل قبلا ثبت شده است",
			})
			return
		}
		log.Printf("registration failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "خطا در ثبت نام. لطفا دوباره تلاش کنید.",
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "ثبت نام با موفقیت انجام شد",
		"user": gin.H{
			"id":        user.ID,
			"firstName": user.FirstName,
			"lastName":  user.LastName,
			"email":     user.Email,
		},
	})
}

func LoginHandler(c *gin.Context, db *gorm.DB, jwtSecret string) {
	var loginReq struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&loginReq); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "لطفا ایمیل و رمز عبور را وارد کنید",
		})
		return
	}

	user, err := services.Authenticate(db, loginReq.Email, loginReq.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			// Same message whether the email or the password was wrong.
			c.JSON(http.StatusUnauthorized, gin.H{
				"message": "نام کاربری یا رمز عبور اشتباه است.",
			})
			return
		}
		log.Printf("login failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "خطای داخلی سرور",
		})
		return
	}

	expTime := time.Now().Add(tokenTTL)
	token, err := jwt.GenerateToken(jwtSecret, user.ID, user.Role, expTime.Unix())
	if err != nil {
		log.Printf("token generation failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "خطای داخلی سرور",
		})
		return
	}

	c.SetCookie("token", token, int(tokenTTL.Seconds()), "/", "", false, true)
	c.Header("Authorization", "Bearer "+token)
	c.JSON(http.StatusOK, gin.H{
		"message": "ورود با موفقیت انجام شد",
		"user": gin.H{
			"id":    user.ID,
			"name":  user.FirstName + " " + user.LastName,
			"email": user.Email,
			"role":  user.Role,
		},
	})
}

func LogoutHandler(c *gin.Context) {
	c.SetCookie("token", "", -1, "/", "", false, true)
	c.Header("Authorization", "")
	c.JSON(http.StatusOK, gin.H{
		"message": "خروج با موفقیت انجام شد",
	})
}

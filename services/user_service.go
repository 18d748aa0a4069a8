package services

import (
	"catalog-backend/models"
	"errors"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type PaginatedUsers struct {
	Users []models.User `json:"users"`
	Meta  PageMeta      `json:"meta"`
}

type UserUpdate struct {
	FirstName string
	LastName  string
	Email     string
	Role      string
}

// UserPatch merges field-by-field; a non-nil Password is re-hashed.
type UserPatch struct {
	FirstName *string
	LastName  *string
	Email     *string
	Role      *string
	Password  *string
}

func ListUsers(db *gorm.DB, page, limit int) (*PaginatedUsers, error) {
	page, limit = normalizePage(page, limit)

	var total int64
	if err := db.Model(&models.User{}).Count(&total).Error; err != nil {
		return nil, err
	}

	var users []models.User
	err := db.
		Order("id asc").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&users).
		Error
	if err != nil {
		return nil, err
	}

	return &PaginatedUsers{
		Users: users,
		Meta: PageMeta{
			Total:      total,
			Page:       page,
			Limit:      limit,
			TotalPages: totalPages(total, limit),
		},
	}, nil
}

func CountUsers(db *gorm.DB) (int64, error) {
	var count int64
	err := db.Model(&models.User{}).Count(&count).Error
	return count, err
}

func GetUserByID(db *gorm.DB, id uint) (*models.User, error) {
	var user models.User
	err := db.First(&user, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func GetUserByEmail(db *gorm.DB, email string) (*models.User, error) {
	var user models.User
	err := db.Where("email = ?", email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// RegisterUser creates a regular-role account with a bcrypt-hashed password.
func RegisterUser(db *gorm.DB, firstName, lastName, email, password string) (*models.User, error) {
	if firstName == "" || lastName == "" || email == "" || password == "" {
		return nil, ErrMissingField
	}

	_, err := GetUserByEmail(db, email)
	if err == nil {
		return nil, ErrEmailTaken
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := models.User{
		FirstName: firstName,
		LastName:  lastName,
		Email:     email,
		Password:  string(hashedPassword),
		Role:      models.RoleUser,
	}
	if err := db.Create(&user).Error; err != nil {
		return nil, err
	}

	return &user, nil
}

// Authenticate returns the same error for an unknown email and a wrong
// password so callers cannot tell which check failed.
func Authenticate(db *gorm.DB, email, password string) (*models.User, error) {
	user, err := GetUserByEmail(db, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	err = bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password))
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

func UpdateUser(db *gorm.DB, id uint, input UserUpdate) (*models.User, error) {
	user, err := GetUserByID(db, id)
	if err != nil {
		return nil, err
	}

	if input.Email != "" && input.Email != user.Email {
		_, err := GetUserByEmail(db, input.Email)
		if err == nil {
			return nil, ErrEmailTaken
		}
		if !errors.Is(err, ErrNotFound) {
			return nil, err
		}
		user.Email = input.Email
	}
	if input.FirstName != "" {
		user.FirstName = input.FirstName
	}
	if input.LastName != "" {
		user.LastName = input.LastName
	}
	if input.Role != "" {
		user.Role = input.Role
	}

	if err := db.Save(user).Error; err != nil {
		return nil, err
	}

	return user, nil
}

func PatchUser(db *gorm.DB, id uint, patch UserPatch) (*models.User, error) {
	user, err := GetUserByID(db, id)
	if err != nil {
		return nil, err
	}

	if patch.Email != nil && *patch.Email != user.Email {
		_, err := GetUserByEmail(db, *patch.Email)
		if err == nil {
			return nil, ErrEmailTaken
		}
		if !errors.Is(err, ErrNotFound) {
			return nil, err
		}
		user.Email = *patch.Email
	}
	if patch.FirstName != nil {
		user.FirstName = *patch.FirstName
	}
	if patch.LastName != nil {
		user.LastName = *patch.LastName
	}
	if patch.Role != nil {
		user.Role = *patch.Role
	}
	if patch.Password != nil {
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(*patch.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.Password = string(hashedPassword)
	}

	if err := db.Save(user).Error; err != nil {
		return nil, err
	}

	return user, nil
}

func DeleteUser(db *gorm.DB, id uint) error {
	user, err := GetUserByID(db, id)
	if err != nil {
		return err
	}
	return db.Delete(user).Error
}

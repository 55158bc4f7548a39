package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/EgehanKilicarslan/jobmarket/backend-go/internal/database/models"
	"github.com/EgehanKilicarslan/jobmarket/backend-go/internal/validation"
)

// Conn hands out the shared handle for the duration of one operation
type Conn interface {
	Acquire() (db *gorm.DB, release func(), err error)
}

// PreRegisterInfo is what registration stores before the profile is filled in
type PreRegisterInfo struct {
	Name           string
	Email          string
	HashedPassword string
}

// UserRepository defines the interface for user data operations
type UserRepository interface {
	EmailExists(ctx context.Context, email string) (*uint, error)
	InsertUser(ctx context.Context, info PreRegisterInfo) (uint, error)
	UpdateLastLogin(ctx context.Context, id uint) error
	GetUser(ctx context.Context, lookup UserLookup, fields []string, withPassword bool) (*UserView, error)
	UpdateUser(ctx context.Context, id uint, update models.UserUpdate) (*UserView, error)
}

type userRepository struct {
	conn      Conn
	validator *validation.Validator
}

// NewUserRepository creates a new user repository instance
func NewUserRepository(conn Conn, v *validation.Validator) UserRepository {
	return &userRepository{conn: conn, validator: v}
}

// errUserMissing aborts an update transaction whose user does not exist
var errUserMissing = errors.New("user missing")

func (r *userRepository) EmailExists(ctx context.Context, email string) (*uint, error) {
	db, release, err := r.conn.Acquire()
	if err != nil {
		return nil, err
	}
	defer release()

	var user models.User
	result := db.WithContext(ctx).Select("id").Where("email = ?", email).Limit(1).Find(&user)
	if result.Error != nil {
		return nil, fmt.Errorf("check email: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, nil
	}
	return &user.ID, nil
}

func (r *userRepository) InsertUser(ctx context.Context, info PreRegisterInfo) (uint, error) {
	db, release, err := r.conn.Acquire()
	if err != nil {
		return 0, err
	}
	defer release()

	user := &models.User{
		Name:     info.Name,
		Email:    info.Email,
		Password: info.HashedPassword,
		RoleID:   models.DefaultRoleID,
	}
	if err := db.WithContext(ctx).Create(user).Error; err != nil {
		return 0, fmt.Errorf("insert user: %w", err)
	}
	return user.ID, nil
}

func (r *userRepository) UpdateLastLogin(ctx context.Context, id uint) error {
	db, release, err := r.conn.Acquire()
	if err != nil {
		return err
	}
	defer release()

	err = db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", id).
		UpdateColumn("last_login_at", gorm.Expr("CURRENT_TIMESTAMP")).
		Error
	if err != nil {
		return fmt.Errorf("update last login: %w", err)
	}
	return nil
}

func (r *userRepository) GetUser(ctx context.Context, lookup UserLookup, fields []string, withPassword bool) (*UserView, error) {
	where, arg, err := lookup.predicate()
	if err != nil {
		return nil, err
	}

	db, release, err := r.conn.Acquire()
	if err != nil {
		return nil, err
	}
	defer release()

	view, err := BuildProjection(fields, withPassword).fetch(db.WithContext(ctx), where, arg)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return view, nil
}

// UpdateUser applies update in one transaction and returns the refreshed user
// without its password hash. A missing user gives (nil, nil).
func (r *userRepository) UpdateUser(ctx context.Context, id uint, update models.UserUpdate) (*UserView, error) {
	if err := r.validator.Struct(update); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidUpdate, err)
	}

	columns, err := scalarColumns(update)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidUpdate, err)
	}
	collections, err := collectionsOf(update)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidUpdate, err)
	}

	db, release, err := r.conn.Acquire()
	if err != nil {
		return nil, err
	}
	defer release()

	var view *UserView
	err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.User{}).Where("id = ?", id).Updates(columns)
		if result.Error != nil {
			return fmt.Errorf("update user: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return errUserMissing
		}

		if err := collections.apply(tx, id); err != nil {
			return err
		}

		refreshed, err := BuildProjection([]string{FieldAll}, false).fetch(tx, "users.id = ?", id)
		if err != nil {
			return fmt.Errorf("reload user: %w", err)
		}
		view = refreshed
		return nil
	})
	if errors.Is(err, errUserMissing) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return view, nil
}

// scalarColumns lists the user columns an update touches. Empty optional text
// clears the column.
func scalarColumns(u models.UserUpdate) (map[string]interface{}, error) {
	columns := map[string]interface{}{
		"updated_at": gorm.Expr("CURRENT_TIMESTAMP"),
	}

	if u.Name != nil {
		columns["name"] = *u.Name
	}
	if u.Email != nil {
		columns["email"] = *u.Email
	}
	if u.HashedPassword != nil {
		columns["password"] = *u.HashedPassword
	}
	if u.GenderID != nil {
		columns["gender_id"] = *u.GenderID
	}

	for column, value := range map[string]*string{
		"phone_number": u.PhoneNumber,
		"postal_code":  u.PostalCode,
		"home_address": u.HomeAddress,
		"job_title":    u.JobTitle,
		"bio":          u.Bio,
	} {
		if value == nil {
			continue
		}
		if *value == "" {
			columns[column] = nil
		} else {
			columns[column] = *value
		}
	}

	if u.BirthDate != nil {
		date, err := models.ParseDate(*u.BirthDate)
		if err != nil {
			return nil, err
		}
		columns["birth_date"] = date
	}

	return columns, nil
}

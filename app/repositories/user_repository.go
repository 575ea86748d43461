package repositories

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/menumanagerpro/menumanager/app/models"
	"github.com/menumanagerpro/menumanager/pkg/database"
	apperr "github.com/menumanagerpro/menumanager/pkg/errors"
)

// PasswordHasher turns a plaintext password into the stored hash.
type PasswordHasher interface {
	Hash(plain string) (string, error)
}

// NewUser is the input of UserRepository.Create. Password is plaintext.
type NewUser struct {
	Username string
	Password string
	Role     models.Role
}

// UserPatch lists the user fields an update may change. Password is
// plaintext and is hashed before it reaches the store.
type UserPatch struct {
	Username Field[string]
	Password Field[string]
	Role     Field[models.Role]
}

// UserRepository handles database operations for User.
type UserRepository struct {
	base
	hasher PasswordHasher
}

func NewUserRepository(store *database.Store, hasher PasswordHasher) *UserRepository {
	return &UserRepository{base: newBase(store, "user", "username"), hasher: hasher}
}

// Create hashes the password and inserts the user. The returned record
// never carries the hash.
func (r *UserRepository) Create(ctx context.Context, in NewUser) (_ *models.User, err error) {
	defer r.observe("create", time.Now(), &err)

	hash, err := r.hasher.Hash(in.Password)
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeValidation, err, "hash password").WithField("password")
	}

	user := models.User{Username: in.Username, Password: hash, Role: in.Role}
	if err := r.store.Write(ctx, func(tx *gorm.DB) error {
		return tx.Create(&user).Error
	}); err != nil {
		return nil, r.classify(err, "create")
	}

	r.changed("created", user.ID)
	user.Password = ""
	return &user, nil
}

// List returns every user in storage order, without password hashes.
func (r *UserRepository) List(ctx context.Context) (_ []models.User, err error) {
	defer r.observe("list", time.Now(), &err)

	users := []models.User{}
	if err := r.store.DB(ctx).Select("id", "username", "role").Order("id").Find(&users).Error; err != nil {
		return nil, r.classify(err, "list")
	}
	return users, nil
}

// Find loads one user without the password hash.
func (r *UserRepository) Find(ctx context.Context, id uint) (_ *models.User, err error) {
	defer r.observe("find", time.Now(), &err)

	var user models.User
	if err := r.find(ctx, &user, id); err != nil {
		return nil, err
	}
	user.Password = ""
	return &user, nil
}

// FindByUsername loads the user with exactly this username, hash included.
// It is the credential lookup; it returns (nil, nil) when no user matches.
func (r *UserRepository) FindByUsername(ctx context.Context, username string) (_ *models.User, err error) {
	defer r.observe("find_by_username", time.Now(), &err)

	var user models.User
	err = r.store.DB(ctx).Where("username = ?", username).Take(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, r.classify(err, "find")
	}
	return &user, nil
}

// Update changes only the fields present in patch.
func (r *UserRepository) Update(ctx context.Context, id uint, patch UserPatch) (err error) {
	defer r.observe("update", time.Now(), &err)

	u := updates{}
	addField(u, "username", patch.Username)
	addField(u, "role", patch.Role)
	if plain, ok := patch.Password.Get(); ok {
		hash, err := r.hasher.Hash(plain)
		if err != nil {
			return apperr.Wrap(apperr.CodeValidation, err, "hash password").WithField("password")
		}
		u["password"] = hash
	}

	return r.update(ctx, &models.User{}, id, u)
}

func (r *UserRepository) Delete(ctx context.Context, id uint) (err error) {
	defer r.observe("delete", time.Now(), &err)
	return r.delete(ctx, &models.User{}, id)
}

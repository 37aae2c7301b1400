// internal/app/store/users/userstore.go
package userstore

import (
	"context"
	"net/mail"
	"strings"
	"time"

	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/google/uuid"
	"github.com/joblane/joblane/internal/app/system/apperr"
	"github.com/joblane/joblane/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

const (
	minPasswordLen   = 8
	resetTokenExpiry = 30 * time.Minute
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("users")}
}

// GetByID loads a user by ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&u); err != nil {
		return nil, err
	}
	return &u, nil
}

// GetByEmail looks up a user by lowercased email. Returns
// mongo.ErrNoDocuments if not found.
func (s *Store) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"email": normalizeEmail(email)}).Decode(&u); err != nil {
		return nil, err
	}
	return &u, nil
}

// Create validates, hashes the password, and inserts a new user. The
// plaintext password never reaches the collection.
func (s *Store) Create(ctx context.Context, name, email, password, role string) (models.User, error) {
	name = strings.TrimSpace(name)
	email = normalizeEmail(email)

	if name == "" {
		return models.User{}, apperr.New(apperr.Validation, "please enter your name")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return models.User{}, apperr.New(apperr.Validation, "please enter a valid email address")
	}
	if len(password) < minPasswordLen {
		return models.User{}, apperr.New(apperr.Validation,
			"your password must be at least %d characters long", minPasswordLen)
	}
	if role == "" {
		role = models.RoleUser
	}
	if !models.ValidRole(role) {
		return models.User{}, apperr.New(apperr.Validation, "please select a valid role")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, err
	}

	u := models.User{
		ID:        primitive.NewObjectID(),
		Name:      name,
		Email:     email,
		Role:      role,
		Password:  string(hash),
		CreatedAt: time.Now().UTC(),
	}

	if _, err := s.c.InsertOne(ctx, u); err != nil {
		if wafflemongo.IsDup(err) {
			return models.User{}, apperr.New(apperr.Validation, "a user with this email already exists")
		}
		return models.User{}, err
	}
	return u, nil
}

// CheckPassword compares a plaintext attempt against the stored hash.
func (s *Store) CheckPassword(u *models.User, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)) == nil
}

// IssueResetToken stores a fresh reset token with a bounded expiry on the
// account for the given email and returns the token.
func (s *Store) IssueResetToken(ctx context.Context, email string) (string, error) {
	token := uuid.NewString()
	expire := time.Now().UTC().Add(resetTokenExpiry)

	res, err := s.c.UpdateOne(ctx,
		bson.M{"email": normalizeEmail(email)},
		bson.M{"$set": bson.M{
			"reset_password_token":  token,
			"reset_password_expire": expire,
		}})
	if err != nil {
		return "", err
	}
	if res.MatchedCount == 0 {
		return "", apperr.New(apperr.NotFound, "no user found with that email")
	}
	return token, nil
}

// ResetPassword consumes an unexpired reset token and replaces the
// password hash.
func (s *Store) ResetPassword(ctx context.Context, token, password string) (*models.User, error) {
	if len(password) < minPasswordLen {
		return nil, apperr.New(apperr.Validation,
			"your password must be at least %d characters long", minPasswordLen)
	}

	var u models.User
	err := s.c.FindOne(ctx, bson.M{
		"reset_password_token":  token,
		"reset_password_expire": bson.M{"$gt": time.Now().UTC()},
	}).Decode(&u)
	if err == mongo.ErrNoDocuments {
		return nil, apperr.New(apperr.Validation, "password reset token is invalid or has expired")
	}
	if err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	_, err = s.c.UpdateOne(ctx,
		bson.M{"_id": u.ID},
		bson.M{
			"$set":   bson.M{"password": string(hash)},
			"$unset": bson.M{"reset_password_token": "", "reset_password_expire": ""},
		})
	if err != nil {
		return nil, err
	}

	u.Password = string(hash)
	return &u, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

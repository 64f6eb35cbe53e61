package auth

import (
	"testing"

	"gavel-backend/internal/domain"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func setupAuthDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.User{}))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, username, password string) domain.User {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), 10)
	require.NoError(t, err)
	u := domain.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: string(hash),
	}
	require.NoError(t, db.Create(&u).Error)
	return u
}

func TestLoginUser_Success(t *testing.T) {
	db := setupAuthDB(t)
	seeded := seedUser(t, db, "alice", "Pass.word1")

	u, err := LoginUser(db, LoginInput{Username: "alice", Password: "Pass.word1"})
	require.NoError(t, err)
	assert.Equal(t, seeded.UserID, u.UserID)
}

func TestLoginUser_MissingFields(t *testing.T) {
	db := setupAuthDB(t)
	_, err := LoginUser(db, LoginInput{Username: "", Password: "x"})
	assert.Equal(t, ErrCredentialsRequired, err)
	_, err = LoginUser(db, LoginInput{Username: "alice", Password: ""})
	assert.Equal(t, ErrCredentialsRequired, err)
}

func TestLoginUser_WrongPasswordAndUnknownUserIndistinguishable(t *testing.T) {
	db := setupAuthDB(t)
	seedUser(t, db, "alice", "Pass.word1")

	_, errWrongPass := LoginUser(db, LoginInput{Username: "alice", Password: "nope"})
	_, errNoUser := LoginUser(db, LoginInput{Username: "ghost", Password: "nope"})
	assert.Equal(t, ErrInvalidCredentials, errWrongPass)
	assert.Equal(t, ErrInvalidCredentials, errNoUser)
}

func TestVerifyUser_Nil(t *testing.T) {
	u, err := VerifyUser(nil)
	assert.Nil(t, u)
	assert.Equal(t, ErrNotAuthenticated, err)
}

func TestVerifyUser_NoUserID(t *testing.T) {
	u, err := VerifyUser(map[string]interface{}{"username": "alice"})
	assert.Nil(t, u)
	assert.Equal(t, ErrNotAuthenticated, err)
}

func TestVerifyUser_Valid(t *testing.T) {
	u, err := VerifyUser(map[string]interface{}{
		"user_id":  "550e8400-e29b-41d4-a716-446655440000",
		"username": "alice",
		"email":    "alice@example.com",
	})
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, "550e8400-e29b-41d4-a716-446655440000", u.UserID)
	assert.Equal(t, "alice", u.Username)
	assert.Equal(t, "alice@example.com", u.Email)
}

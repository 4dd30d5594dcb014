package usecase

import (
	"context"
	"net/http"
	"testing"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"

	"warmdelights/internal/config"
	"warmdelights/internal/domain/model"
	repo "warmdelights/internal/repository"
)

func newAuthUsecaseForTest() (*AuthUsecase, *mockUserRepo) {
	users := new(mockUserRepo)
	cfg := config.Config{JWTSecret: "test-secret"}
	return NewAuthUsecase(cfg, users), users
}

func TestRegister_Validation(t *testing.T) {
	uc, users := newAuthUsecaseForTest()

	_, err := uc.Register(context.Background(), RegisterInput{Email: "a@example.com", Password: "password1"})
	he, _ := AsHTTPError(err)
	assert.Equal(t, "name is required", he.Message)

	_, err = uc.Register(context.Background(), RegisterInput{Name: "Asha", Email: "not-an-email", Password: "password1"})
	he, _ = AsHTTPError(err)
	assert.Equal(t, "invalid email", he.Message)

	_, err = uc.Register(context.Background(), RegisterInput{Name: "Asha", Email: "a@example.com", Password: "short"})
	he, _ = AsHTTPError(err)
	assert.Equal(t, "password must be at least 8 characters", he.Message)

	users.AssertNotCalled(t, "Create")
}

func TestRegister_DuplicateEmail(t *testing.T) {
	uc, users := newAuthUsecaseForTest()

	users.On("FindByEmail", mock.Anything, "a@example.com").Return(model.User{ID: 1}, nil)

	_, err := uc.Register(context.Background(), RegisterInput{Name: "Asha", Email: "a@example.com", Password: "password1"})
	he, ok := AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Status)
	assert.Equal(t, "email already registered", he.Message)
}

func TestRegister_IssuesToken(t *testing.T) {
	uc, users := newAuthUsecaseForTest()

	users.On("FindByEmail", mock.Anything, "asha@example.com").Return(model.User{}, repo.ErrNotFound)

	var saved model.User
	users.On("Create", mock.Anything, mock.MatchedBy(func(u model.User) bool {
		saved = u
		return true
	})).Return(model.User{ID: 10, Name: "Asha", Email: "asha@example.com", Role: model.RoleUser}, nil)

	out, err := uc.Register(context.Background(), RegisterInput{
		Name:     "Asha",
		Email:    " ASHA@example.com ",
		Password: "password1",
	})
	assert.NoError(t, err)
	assert.Equal(t, model.RoleUser, out.Role)
	assert.NotEmpty(t, out.Token)

	// 生のパスワードは保存されない
	assert.NotEqual(t, "password1", saved.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(saved.PasswordHash), []byte("password1")))

	// トークンの中身を確認
	token, err := jwt.Parse(out.Token, func(t *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	assert.NoError(t, err)
	claims := token.Claims.(jwt.MapClaims)
	assert.Equal(t, float64(10), claims["sub"])
	assert.Equal(t, "user", claims["role"])
}

func TestLogin_DoesNotLeakWhichPartFailed(t *testing.T) {
	uc, users := newAuthUsecaseForTest()

	hash, _ := bcrypt.GenerateFromPassword([]byte("password1"), bcrypt.DefaultCost)
	users.On("FindByEmail", mock.Anything, "known@example.com").Return(model.User{ID: 1, PasswordHash: string(hash)}, nil)
	users.On("FindByEmail", mock.Anything, "unknown@example.com").Return(model.User{}, repo.ErrNotFound)

	// 不存在とパスワード違いで同じ応答
	_, err := uc.Login(context.Background(), LoginInput{Email: "unknown@example.com", Password: "password1"})
	he, _ := AsHTTPError(err)
	assert.Equal(t, http.StatusUnauthorized, he.Status)
	assert.Equal(t, "invalid email or password", he.Message)

	_, err = uc.Login(context.Background(), LoginInput{Email: "known@example.com", Password: "wrong-password"})
	he, _ = AsHTTPError(err)
	assert.Equal(t, http.StatusUnauthorized, he.Status)
	assert.Equal(t, "invalid email or password", he.Message)
}

func TestLogin_Success(t *testing.T) {
	uc, users := newAuthUsecaseForTest()

	hash, _ := bcrypt.GenerateFromPassword([]byte("password1"), bcrypt.DefaultCost)
	users.On("FindByEmail", mock.Anything, "asha@example.com").Return(model.User{
		ID:           10,
		Name:         "Asha",
		Email:        "asha@example.com",
		PasswordHash: string(hash),
		Role:         model.RoleAdmin,
	}, nil)

	out, err := uc.Login(context.Background(), LoginInput{Email: "Asha@Example.com", Password: "password1"})
	assert.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, out.Role)
	assert.NotEmpty(t, out.Token)
}

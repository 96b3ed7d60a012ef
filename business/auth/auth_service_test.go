package auth

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"shiftHire/domain"
	"shiftHire/pkg/utils"

	"github.com/go-playground/validator/v10"
)

type mockUserRepo struct {
	users    map[string]domain.User
	createFn func(ctx context.Context, user *domain.User) error
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: map[string]domain.User{}}
}

func (m *mockUserRepo) Create(ctx context.Context, user *domain.User) error {
	if m.createFn != nil {
		return m.createFn(ctx, user)
	}
	user.ID = "user-" + user.Phone
	m.users[user.Phone] = *user
	return nil
}

func (m *mockUserRepo) FindByID(ctx context.Context, id string) (domain.User, error) {
	for _, u := range m.users {
		if u.ID == id {
			return u, nil
		}
	}
	return domain.User{}, domain.ErrNotFound
}

func (m *mockUserRepo) FindByPhone(ctx context.Context, phone string) (domain.User, error) {
	u, ok := m.users[phone]
	if !ok {
		return domain.User{}, domain.ErrNotFound
	}
	return u, nil
}

func newService(t *testing.T, repo UserRepository) *authService {
	t.Helper()
	tokens, err := utils.NewJWTManager("test-secret", "HS256", time.Hour)
	if err != nil {
		t.Fatalf("NewJWTManager: %v", err)
	}
	return NewAuthService(repo, validator.New(), tokens)
}

func TestAuthService_RegisterThenLogin(t *testing.T) {
	repo := newMockUserRepo()
	svc := newService(t, repo)
	ctx := context.Background()

	reg, err := svc.Register(ctx, RegisterInput{Phone: "+911", Password: "secret1", Role: domain.RoleWorker, Name: "Asha"})
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if reg.TokenType != "bearer" || reg.Role != domain.RoleWorker || reg.AccessToken == "" {
		t.Errorf("token response = %+v", reg)
	}
	if repo.users["+911"].PasswordHash == "secret1" {
		t.Error("password must be stored hashed")
	}

	login, err := svc.Login(ctx, "+911", "secret1")
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if login.UserID != reg.UserID {
		t.Errorf("login user = %q, want %q", login.UserID, reg.UserID)
	}

	id, err := svc.Authenticate(login.AccessToken)
	if err != nil {
		t.Fatalf("Authenticate returned error: %v", err)
	}
	if id.UserID != reg.UserID || id.Role != domain.RoleWorker {
		t.Errorf("identity = %+v", id)
	}
}

func TestAuthService_RegisterDuplicatePhone(t *testing.T) {
	svc := newService(t, newMockUserRepo())
	ctx := context.Background()

	in := RegisterInput{Phone: "+911", Password: "secret1", Role: domain.RoleRestaurant, Name: "Cafe"}
	if _, err := svc.Register(ctx, in); err != nil {
		t.Fatalf("first Register returned error: %v", err)
	}

	if _, err := svc.Register(ctx, in); !errors.Is(err, domain.ErrDuplicateResource) {
		t.Errorf("err = %v, want ErrDuplicateResource", err)
	}
}

func TestAuthService_RegisterRaceLoserGetsDuplicate(t *testing.T) {
	repo := newMockUserRepo()
	repo.createFn = func(ctx context.Context, user *domain.User) error {
		return domain.ErrDuplicateResource
	}
	svc := newService(t, repo)

	_, err := svc.Register(context.Background(), RegisterInput{Phone: "+911", Password: "secret1", Role: domain.RoleWorker, Name: "A"})
	if !errors.Is(err, domain.ErrDuplicateResource) {
		t.Errorf("err = %v, want ErrDuplicateResource", err)
	}
}

func TestAuthService_RegisterValidation(t *testing.T) {
	svc := newService(t, newMockUserRepo())
	bad := "not-an-email"

	cases := map[string]RegisterInput{
		"short password":     {Phone: "+911", Password: "123", Role: domain.RoleWorker, Name: "A"},
		"long password":      {Phone: "+911", Password: strings.Repeat("a", 73), Role: domain.RoleWorker, Name: "A"},
		"multibyte password": {Phone: "+911", Password: strings.Repeat("é", 40), Role: domain.RoleWorker, Name: "A"},
		"unknown role":       {Phone: "+911", Password: "secret1", Role: "admin", Name: "A"},
		"missing name":       {Phone: "+911", Password: "secret1", Role: domain.RoleWorker},
		"missing phone":      {Password: "secret1", Role: domain.RoleWorker, Name: "A"},
		"bad email":          {Phone: "+911", Password: "secret1", Role: domain.RoleWorker, Name: "A", Email: &bad},
	}

	for name, in := range cases {
		if _, err := svc.Register(context.Background(), in); !errors.Is(err, domain.ErrInvalidInput) {
			t.Errorf("%s: err = %v, want ErrInvalidInput", name, err)
		}
	}
}

func TestAuthService_LoginUniformFailure(t *testing.T) {
	svc := newService(t, newMockUserRepo())
	ctx := context.Background()
	_, _ = svc.Register(ctx, RegisterInput{Phone: "+911", Password: "secret1", Role: domain.RoleWorker, Name: "A"})

	_, errWrongPassword := svc.Login(ctx, "+911", "wrong-password")
	_, errUnknownPhone := svc.Login(ctx, "+999", "secret1")

	if !errors.Is(errWrongPassword, domain.ErrInvalidCredentials) || !errors.Is(errUnknownPhone, domain.ErrInvalidCredentials) {
		t.Fatalf("errors = %v / %v, want ErrInvalidCredentials", errWrongPassword, errUnknownPhone)
	}
	if errWrongPassword.Error() != errUnknownPhone.Error() {
		t.Error("login failures must be indistinguishable")
	}
}

func TestAuthService_AuthenticateRejectsBadTokens(t *testing.T) {
	svc := newService(t, newMockUserRepo())

	other, _ := utils.NewJWTManager("other-secret", "HS256", time.Hour)
	foreign, _ := other.GenerateJWT("u1", domain.RoleWorker)

	expiredMgr, _ := utils.NewJWTManager("test-secret", "HS256", -time.Minute)
	expired, _ := expiredMgr.GenerateJWT("u1", domain.RoleWorker)

	sameKey, _ := utils.NewJWTManager("test-secret", "HS256", time.Hour)
	badRole, _ := sameKey.GenerateJWT("u1", "admin")

	for name, tok := range map[string]string{"foreign": foreign, "expired": expired, "garbage": "x.y.z", "bad role": badRole} {
		if _, err := svc.Authenticate(tok); !errors.Is(err, domain.ErrInvalidToken) {
			t.Errorf("%s: err = %v, want ErrInvalidToken", name, err)
		}
	}
}

package auth_test

import (
	"errors"
	"testing"
	"time"

	"github.com/lslops/checklist-management/internal/auth"
	"github.com/lslops/checklist-management/internal/user"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestAuthService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Auth Service Suite")
}

// MockRepository implements auth.RepositoryAPI for testing
type MockRepository struct {
	credentials map[string]struct {
		hash   string
		userID int64
	}
	users map[int64]*auth.User
}

func NewMockRepository() *MockRepository {
	return &MockRepository{
		credentials: make(map[string]struct {
			hash   string
			userID int64
		}),
		users: make(map[int64]*auth.User),
	}
}

func (m *MockRepository) GetCredentials(email string) (string, int64, error) {
	cred, ok := m.credentials[email]
	if !ok {
		return "", 0, errors.New("no active account for email")
	}
	return cred.hash, cred.userID, nil
}

func (m *MockRepository) GetUser(userID int64) (*auth.User, error) {
	u, ok := m.users[userID]
	if !ok {
		return nil, errors.New("user not found")
	}
	return u, nil
}

func (m *MockRepository) AddAccount(email, password string, userID int64, role user.Role) {
	hash, err := auth.HashPassword(password, 10)
	Expect(err).NotTo(HaveOccurred())
	m.credentials[email] = struct {
		hash   string
		userID int64
	}{hash: hash, userID: userID}
	m.users[userID] = &auth.User{ID: userID, Email: email, Role: role}
}

var _ = Describe("Auth Service", func() {
	var (
		mockRepo *MockRepository
		tokenGen *auth.JWTTokenGenerator
		service  *auth.Service
	)

	BeforeEach(func() {
		mockRepo = NewMockRepository()
		tokenGen = auth.NewJWTTokenGenerator(
			"access-secret-at-least-32-characters!!",
			"refresh-secret-at-least-32-characters!",
			15*time.Minute,
			24*time.Hour,
		)
		service = auth.NewService(mockRepo, tokenGen)
		mockRepo.AddAccount("leader@plant.example", "s3cret-pass", 7, user.RoleLeader)
	})

	Describe("Authenticate", func() {
		It("should return a token pair for valid credentials", func() {
			tokens, err := service.Authenticate(auth.LoginDTO{
				Email:    "leader@plant.example",
				Password: "s3cret-pass",
			})

			Expect(err).NotTo(HaveOccurred())
			Expect(tokens.AccessToken).NotTo(BeEmpty())
			Expect(tokens.RefreshToken).NotTo(BeEmpty())
		})

		It("should issue an access token carrying the user id and email", func() {
			tokens, err := service.Authenticate(auth.LoginDTO{
				Email:    "leader@plant.example",
				Password: "s3cret-pass",
			})
			Expect(err).NotTo(HaveOccurred())

			claims, err := service.ValidateAccessToken(tokens.AccessToken)
			Expect(err).NotTo(HaveOccurred())
			Expect(claims.UserID).To(Equal(int64(7)))
			Expect(claims.Email).To(Equal("leader@plant.example"))
		})

		It("should reject a wrong password", func() {
			_, err := service.Authenticate(auth.LoginDTO{
				Email:    "leader@plant.example",
				Password: "wrong",
			})

			Expect(err).To(MatchError(auth.ErrInvalidCredentials))
		})

		It("should reject an unknown email", func() {
			_, err := service.Authenticate(auth.LoginDTO{
				Email:    "nobody@plant.example",
				Password: "s3cret-pass",
			})

			Expect(err).To(MatchError(auth.ErrInvalidCredentials))
		})

		It("should reject empty credentials before touching the repository", func() {
			_, err := service.Authenticate(auth.LoginDTO{})
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("RefreshTokens", func() {
		It("should exchange a refresh token for a new pair", func() {
			tokens, err := service.Authenticate(auth.LoginDTO{
				Email:    "leader@plant.example",
				Password: "s3cret-pass",
			})
			Expect(err).NotTo(HaveOccurred())

			refreshed, err := service.RefreshTokens(tokens.RefreshToken)
			Expect(err).NotTo(HaveOccurred())
			Expect(refreshed.AccessToken).NotTo(BeEmpty())
			Expect(refreshed.RefreshToken).NotTo(BeEmpty())

			claims, err := service.ValidateAccessToken(refreshed.AccessToken)
			Expect(err).NotTo(HaveOccurred())
			Expect(claims.UserID).To(Equal(int64(7)))
		})

		It("should reject a malformed token", func() {
			_, err := service.RefreshTokens("not-a-jwt")
			Expect(err).To(MatchError(auth.ErrInvalidToken))
		})
	})

	Describe("Token validation", func() {
		It("should report an expired token distinctly", func() {
			expiredGen := auth.NewJWTTokenGenerator(
				"access-secret-at-least-32-characters!!",
				"refresh-secret-at-least-32-characters!",
				-time.Minute,
				-time.Minute,
			)
			token, err := expiredGen.GenerateAccessToken(7, "leader@plant.example")
			Expect(err).NotTo(HaveOccurred())

			_, err = expiredGen.ValidateAccessToken(token)
			Expect(err).To(MatchError(auth.ErrTokenExpired))
		})

		It("should reject a token signed with a different secret", func() {
			otherGen := auth.NewJWTTokenGenerator(
				"another-secret-at-least-32-characters!",
				"another-refresh-at-least-32-characters",
				15*time.Minute,
				24*time.Hour,
			)
			token, err := otherGen.GenerateAccessToken(7, "leader@plant.example")
			Expect(err).NotTo(HaveOccurred())

			_, err = tokenGen.ValidateAccessToken(token)
			Expect(err).To(MatchError(auth.ErrInvalidToken))
		})

		It("should not accept a refresh token as an access token", func() {
			token, err := tokenGen.GenerateRefreshToken(7, "leader@plant.example")
			Expect(err).NotTo(HaveOccurred())

			_, err = tokenGen.ValidateAccessToken(token)
			Expect(err).To(MatchError(auth.ErrInvalidToken))
		})

		It("should not accept an access token as a refresh token", func() {
			token, err := tokenGen.GenerateAccessToken(7, "leader@plant.example")
			Expect(err).NotTo(HaveOccurred())

			_, err = service.RefreshTokens(token)
			Expect(err).To(MatchError(auth.ErrInvalidToken))
		})
	})

	Describe("Role checks", func() {
		It("should let a leader fill but not validate", func() {
			u := &auth.User{ID: 7, Role: user.RoleLeader}
			Expect(u.CanFill()).To(BeTrue())
			Expect(u.CanValidate()).To(BeFalse())
		})

		It("should let a coordinator both fill and validate", func() {
			u := &auth.User{ID: 8, Role: user.RoleCoordinator}
			Expect(u.CanFill()).To(BeTrue())
			Expect(u.CanValidate()).To(BeTrue())
		})

		It("should treat admin as allowed everywhere", func() {
			u := &auth.User{ID: 9, Role: user.RoleAdmin}
			Expect(u.IsAdmin()).To(BeTrue())
			Expect(u.CanFill()).To(BeTrue())
			Expect(u.CanValidate()).To(BeTrue())
		})
	})
})

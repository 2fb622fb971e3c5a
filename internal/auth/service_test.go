package auth_test

import (
	"log/slog"
	"os"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	apperrors "github.com/gastora/expense-api/internal"
	"github.com/gastora/expense-api/internal/auth"
	userDatamodel "github.com/gastora/expense-api/internal/core/datamodel/user"
)

func TestAuthModule(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Auth Module Suite")
}

type mockAuthRepository struct {
	usersByEmail map[string]*userDatamodel.User
	usersByID    map[string]*userDatamodel.User
	companies    []*userDatamodel.Company
	lastLogin    map[string]time.Time
}

func newMockAuthRepository() *mockAuthRepository {
	return &mockAuthRepository{
		usersByEmail: make(map[string]*userDatamodel.User),
		usersByID:    make(map[string]*userDatamodel.User),
		lastLogin:    make(map[string]time.Time),
	}
}

func (m *mockAuthRepository) addUser(u *userDatamodel.User) {
	m.usersByEmail[u.Email] = u
	m.usersByID[u.ID] = u
}

func (m *mockAuthRepository) GetUserByEmail(email string) (*userDatamodel.User, error) {
	return m.usersByEmail[email], nil
}

func (m *mockAuthRepository) GetUserByID(id string) (*userDatamodel.User, error) {
	return m.usersByID[id], nil
}

func (m *mockAuthRepository) CreateCompany(company *userDatamodel.Company) error {
	m.companies = append(m.companies, company)
	return nil
}

func (m *mockAuthRepository) CreateUser(u *userDatamodel.User) error {
	m.addUser(u)
	return nil
}

func (m *mockAuthRepository) UpdateLastLogin(userID string, at time.Time) error {
	m.lastLogin[userID] = at
	return nil
}

var _ = Describe("AuthService", func() {
	var (
		service  *auth.Service
		mockRepo *mockAuthRepository
		tokens   *auth.JWTTokenGenerator
	)

	const accessSecret = "test-access-secret-with-enough-length!!"
	const refreshSecret = "test-refresh-secret-with-enough-length!"

	BeforeEach(func() {
		mockRepo = newMockAuthRepository()
		tokens = auth.NewJWTTokenGenerator(accessSecret, refreshSecret, 15*time.Minute, 24*time.Hour)
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = auth.NewService(mockRepo, tokens, 10, logger)
	})

	Describe("Register", func() {
		dto := auth.RegisterDTO{
			Email:       "founder@acme.mx",
			Password:    "supersecret1",
			FirstName:   "Adriana",
			LastName:    "Ruiz",
			CompanyName: "Acme de México",
		}

		It("creates a company with an admin user and issues tokens", func() {
			resp, err := service.Register(dto)

			Expect(err).ToNot(HaveOccurred())
			Expect(resp.AccessToken).ToNot(BeEmpty())
			Expect(resp.RefreshToken).ToNot(BeEmpty())
			Expect(resp.User.Role).To(Equal(auth.RoleAdmin))
			Expect(mockRepo.companies).To(HaveLen(1))
			Expect(resp.User.CompanyID).To(Equal(mockRepo.companies[0].ID))
		})

		It("rejects a duplicate email", func() {
			_, err := service.Register(dto)
			Expect(err).ToNot(HaveOccurred())

			_, err = service.Register(dto)
			Expect(err).To(MatchError(apperrors.ErrEmailTaken))
		})

		It("rejects a short password", func() {
			short := dto
			short.Password = "short"

			_, err := service.Register(short)
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("Login", func() {
		var registered *auth.LoginResponse

		BeforeEach(func() {
			var err error
			registered, err = service.Register(auth.RegisterDTO{
				Email:       "founder@acme.mx",
				Password:    "supersecret1",
				CompanyName: "Acme de México",
			})
			Expect(err).ToNot(HaveOccurred())
		})

		It("issues tokens for valid credentials and records the login", func() {
			resp, err := service.Login(auth.LoginDTO{Email: "founder@acme.mx", Password: "supersecret1"})

			Expect(err).ToNot(HaveOccurred())
			Expect(resp.AccessToken).ToNot(BeEmpty())
			Expect(mockRepo.lastLogin).To(HaveKey(registered.User.ID))
		})

		It("rejects a wrong password", func() {
			_, err := service.Login(auth.LoginDTO{Email: "founder@acme.mx", Password: "wrong-password"})

			Expect(err).To(MatchError(apperrors.ErrInvalidCredentials))
		})

		It("rejects an unknown email", func() {
			_, err := service.Login(auth.LoginDTO{Email: "ghost@acme.mx", Password: "supersecret1"})

			Expect(err).To(MatchError(apperrors.ErrInvalidCredentials))
		})

		It("rejects an inactive account", func() {
			mockRepo.usersByEmail["founder@acme.mx"].Status = auth.UserStatusInactive

			_, err := service.Login(auth.LoginDTO{Email: "founder@acme.mx", Password: "supersecret1"})

			Expect(err).To(MatchError(apperrors.ErrUserInactive))
		})
	})

	Describe("Refresh", func() {
		It("exchanges a valid refresh token for a new pair", func() {
			registered, err := service.Register(auth.RegisterDTO{
				Email:       "founder@acme.mx",
				Password:    "supersecret1",
				CompanyName: "Acme de México",
			})
			Expect(err).ToNot(HaveOccurred())

			resp, err := service.Refresh(registered.RefreshToken)

			Expect(err).ToNot(HaveOccurred())
			Expect(resp.AccessToken).ToNot(BeEmpty())
			Expect(resp.User.ID).To(Equal(registered.User.ID))
		})

		It("rejects an access token used as refresh token", func() {
			registered, err := service.Register(auth.RegisterDTO{
				Email:       "founder@acme.mx",
				Password:    "supersecret1",
				CompanyName: "Acme de México",
			})
			Expect(err).ToNot(HaveOccurred())

			_, err = service.Refresh(registered.AccessToken)

			Expect(err).To(HaveOccurred())
		})
	})

	Describe("ResolvePrincipal", func() {
		It("resolves a live principal from an access token", func() {
			registered, err := service.Register(auth.RegisterDTO{
				Email:       "founder@acme.mx",
				Password:    "supersecret1",
				CompanyName: "Acme de México",
			})
			Expect(err).ToNot(HaveOccurred())

			principal, err := service.ResolvePrincipal(registered.AccessToken)

			Expect(err).ToNot(HaveOccurred())
			Expect(principal.ID).To(Equal(registered.User.ID))
			Expect(principal.CompanyID).To(Equal(registered.User.CompanyID))
		})

		It("rejects a token for a deactivated account", func() {
			registered, err := service.Register(auth.RegisterDTO{
				Email:       "founder@acme.mx",
				Password:    "supersecret1",
				CompanyName: "Acme de México",
			})
			Expect(err).ToNot(HaveOccurred())
			mockRepo.usersByID[registered.User.ID].Status = auth.UserStatusInactive

			_, err = service.ResolvePrincipal(registered.AccessToken)

			Expect(err).To(MatchError(apperrors.ErrUserInactive))
		})

		It("rejects a garbage token", func() {
			_, err := service.ResolvePrincipal("not-a-jwt")

			Expect(err).To(HaveOccurred())
		})
	})
})

package service

import (
	"strings"
	"time"

	"spryte/internal/contract"
	"spryte/internal/domain/entity"
	"spryte/internal/utils"
	"spryte/internal/utils/apierror"
	"spryte/internal/utils/uid"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/gommon/log"
	"golang.org/x/crypto/bcrypt"
)

type UserRepository interface {
	FindByID(id int64) (*entity.User, error)
	FindByEmail(email string) (*entity.User, error)
	ExistsByEmail(email string) (bool, error)
	Save(user *entity.User) error
}

type UserService struct {
	UserRepo  UserRepository
	Validate  *validator.Validate
	AccessTTL time.Duration
}

func NewUserService(userRepo UserRepository, validate *validator.Validate, accessTTL time.Duration) *UserService {
	return &UserService{
		UserRepo:  userRepo,
		Validate:  validate,
		AccessTTL: accessTTL,
	}
}

func (u *UserService) Register(req *contract.RegisterRequest) (*contract.AuthResponse, apierror.ErrorResponse) {
	utils.Sanitize(req)
	if valerr := u.Validate.Struct(req); valerr != nil {
		return nil, apierror.FromValidationError(valerr)
	}

	email := normalizeEmail(req.Email)
	exists, err := u.UserRepo.ExistsByEmail(email)
	if err != nil {
		log.Errorf("failed to check email existence: %v", err)
		return nil, apierror.InternalServerError
	}
	if exists {
		return nil, apierror.ExistingEmailError
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Errorf("failed to hash password: %v", err)
		return nil, apierror.InternalServerError
	}

	now := utils.NowUTC()
	user := &entity.User{
		ID:           uid.Generate(),
		Email:        email,
		Name:         req.Name,
		PasswordHash: string(hash),
		Settings: entity.Settings{
			Theme:      "light",
			AIProvider: "openai",
		},
		ActiveAddons: []string{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := u.UserRepo.Save(user); err != nil {
		log.Errorf("failed to save user: %v", err)
		return nil, apierror.InternalServerError
	}

	return u.authResponse("User registered successfully", user)
}

func (u *UserService) Login(req *contract.LoginRequest) (*contract.AuthResponse, apierror.ErrorResponse) {
	utils.Sanitize(req)
	if valerr := u.Validate.Struct(req); valerr != nil {
		return nil, apierror.FromValidationError(valerr)
	}

	user, err := u.UserRepo.FindByEmail(normalizeEmail(req.Email))
	if err != nil {
		log.Errorf("failed to fetch user by email: %v", err)
		return nil, apierror.InternalServerError
	}

	// Same error whether the account is missing or the password is wrong.
	if user == nil {
		return nil, apierror.BadCredentialsError
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		return nil, apierror.BadCredentialsError
	}

	return u.authResponse("Login successful", user)
}

func (u *UserService) GetMe(actor *entity.User) *contract.UserResponse {
	return toUserResponse(actor)
}

func (u *UserService) UpdateProfile(actor *entity.User, req *contract.UpdateProfileRequest) (*contract.UserResponse, apierror.ErrorResponse) {
	utils.Sanitize(req)
	if valerr := u.Validate.Struct(req); valerr != nil {
		return nil, apierror.FromValidationError(valerr)
	}

	if req.Email != nil {
		email := normalizeEmail(*req.Email)
		existing, err := u.UserRepo.FindByEmail(email)
		if err != nil {
			log.Errorf("failed to check email availability: %v", err)
			return nil, apierror.InternalServerError
		}
		if existing != nil && existing.ID != actor.ID {
			return nil, apierror.EmailInUseError
		}
		actor.Email = email
	}

	if req.Name != nil {
		actor.Name = trimmed(*req.Name)
	}

	actor.UpdatedAt = utils.NowUTC()
	if err := u.UserRepo.Save(actor); err != nil {
		log.Errorf("failed to update profile: %v", err)
		return nil, apierror.InternalServerError
	}
	return toUserResponse(actor), nil
}

func (u *UserService) ChangePassword(actor *entity.User, req *contract.ChangePasswordRequest) apierror.ErrorResponse {
	if valerr := u.Validate.Struct(req); valerr != nil {
		return apierror.FromValidationError(valerr)
	}

	if bcrypt.CompareHashAndPassword([]byte(actor.PasswordHash), []byte(req.CurrentPassword)) != nil {
		return apierror.WrongPasswordError
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Errorf("failed to hash password: %v", err)
		return apierror.InternalServerError
	}

	actor.PasswordHash = string(hash)
	actor.UpdatedAt = utils.NowUTC()
	if err := u.UserRepo.Save(actor); err != nil {
		log.Errorf("failed to update password: %v", err)
		return apierror.InternalServerError
	}
	return nil
}

// UpdateSettings merges only the recognized keys; unknown keys are ignored
// rather than rejected.
func (u *UserService) UpdateSettings(actor *entity.User, req *contract.UpdateSettingsRequest) (*contract.UserResponse, apierror.ErrorResponse) {
	if theme, ok := req.Settings["theme"]; ok {
		actor.Settings.Theme = theme
	}
	if provider, ok := req.Settings["ai_provider"]; ok {
		actor.Settings.AIProvider = provider
	}

	actor.UpdatedAt = utils.NowUTC()
	if err := u.UserRepo.Save(actor); err != nil {
		log.Errorf("failed to update settings: %v", err)
		return nil, apierror.InternalServerError
	}
	return toUserResponse(actor), nil
}

func (u *UserService) authResponse(message string, user *entity.User) (*contract.AuthResponse, apierror.ErrorResponse) {
	token, err := utils.IssueToken(user.ID, u.AccessTTL)
	if err != nil {
		log.Errorf("failed to issue access token: %v", err)
		return nil, apierror.InternalServerError
	}

	return &contract.AuthResponse{
		Message:     message,
		User:        toUserResponse(user),
		AccessToken: token,
	}, nil
}

func toUserResponse(user *entity.User) *contract.UserResponse {
	addons := user.ActiveAddons
	if addons == nil {
		addons = []string{}
	}
	return &contract.UserResponse{
		ID:           user.ID,
		Email:        user.Email,
		Name:         user.Name,
		Settings:     user.Settings,
		ActiveAddons: addons,
		CreatedAt:    utils.FormatEpoch(user.CreatedAt),
		UpdatedAt:    utils.FormatEpoch(user.UpdatedAt),
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

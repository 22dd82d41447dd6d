package api

import (
	"net/mail"
	"strings"
	"time"

	"github.com/aletheia-health/aletheia/internal/models"
	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
)

type signupInput struct {
	Email           string   `json:"email"`
	Name            string   `json:"name"`
	Password        string   `json:"password"`
	AgeRange        string   `json:"age_range"`
	MenstrualStatus string   `json:"menstrual_status"`
	PrimarySymptoms []string `json:"primary_symptoms"`
}

type loginInput struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

type profileUpdateInput struct {
	Name                *string   `json:"name"`
	AgeRange            *string   `json:"age_range"`
	MenstrualStatus     *string   `json:"menstrual_status"`
	PrimarySymptoms     *[]string `json:"primary_symptoms"`
	OnboardingCompleted *bool     `json:"onboarding_completed"`
}

const minPasswordLength = 8

func (handler *Handler) Signup(c *fiber.Ctx) error {
	input := signupInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	email := strings.ToLower(strings.TrimSpace(input.Email))
	if _, err := mail.ParseAddress(email); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid email address")
	}
	if strings.TrimSpace(input.Name) == "" {
		return apiError(c, fiber.StatusBadRequest, "name is required")
	}
	if len(input.Password) < minPasswordLength {
		return apiError(c, fiber.StatusBadRequest, "password must be at least 8 characters")
	}
	if len(input.PrimarySymptoms) > models.MaxPrimarySymptoms {
		return apiError(c, fiber.StatusBadRequest, "too many primary symptoms")
	}

	exists, err := handler.repos.Users.ExistsByNormalizedEmail(email)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to check email")
	}
	if exists {
		return apiError(c, fiber.StatusBadRequest, "email already registered")
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to secure password")
	}

	user := models.User{
		Email:           email,
		Name:            strings.TrimSpace(input.Name),
		PasswordHash:    string(passwordHash),
		AgeRange:        strings.TrimSpace(input.AgeRange),
		MenstrualStatus: strings.TrimSpace(input.MenstrualStatus),
		PrimarySymptoms: input.PrimarySymptoms,
		CreatedAt:       time.Now().UTC(),
	}
	if err := handler.repos.Users.Create(&user); err != nil {
		return apiError(c, fiber.StatusBadRequest, "email already registered")
	}

	token, err := handler.buildToken(&user)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to create session")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"access_token": token,
		"token_type":   "bearer",
		"user":         buildUserResponse(user),
	})
}

// Login accepts form-encoded credentials (username carries the email) and
// returns a bearer token.
func (handler *Handler) Login(c *fiber.Ctx) error {
	input := loginInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	email := strings.ToLower(strings.TrimSpace(input.Username))
	user, err := handler.repos.Users.FindByNormalizedEmail(email)
	if err != nil {
		return apiError(c, fiber.StatusUnauthorized, "incorrect email or password")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return apiError(c, fiber.StatusUnauthorized, "incorrect email or password")
	}

	token, err := handler.buildToken(&user)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to create session")
	}

	return c.JSON(fiber.Map{
		"access_token": token,
		"token_type":   "bearer",
	})
}

func (handler *Handler) Me(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	return c.JSON(buildUserResponse(user))
}

// UpdateMe applies a partial profile update; omitted fields stay untouched.
func (handler *Handler) UpdateMe(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	input := profileUpdateInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	updates := map[string]any{}
	if input.Name != nil {
		if strings.TrimSpace(*input.Name) == "" {
			return apiError(c, fiber.StatusBadRequest, "name must not be empty")
		}
		updates["name"] = strings.TrimSpace(*input.Name)
	}
	if input.AgeRange != nil {
		updates["age_range"] = strings.TrimSpace(*input.AgeRange)
	}
	if input.MenstrualStatus != nil {
		updates["menstrual_status"] = strings.TrimSpace(*input.MenstrualStatus)
	}
	if input.PrimarySymptoms != nil {
		if len(*input.PrimarySymptoms) > models.MaxPrimarySymptoms {
			return apiError(c, fiber.StatusBadRequest, "too many primary symptoms")
		}
		user.PrimarySymptoms = *input.PrimarySymptoms
		if err := handler.repos.Users.Save(&user); err != nil {
			return apiError(c, fiber.StatusInternalServerError, "failed to update profile")
		}
	}
	if input.OnboardingCompleted != nil {
		updates["onboarding_completed"] = *input.OnboardingCompleted
	}

	if len(updates) == 0 && input.PrimarySymptoms == nil {
		return apiError(c, fiber.StatusBadRequest, "no data provided for update")
	}

	if len(updates) > 0 {
		if err := handler.repos.Users.UpdateByID(user.ID, updates); err != nil {
			return apiError(c, fiber.StatusInternalServerError, "failed to update profile")
		}
	}

	updated, err := handler.repos.Users.FindByID(user.ID)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to load profile")
	}
	return c.JSON(buildUserResponse(updated))
}

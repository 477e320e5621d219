// services/forms.go
package services

import (
	"fmt"
	"strings"

	"leeterboard-client/models"

	"github.com/go-playground/validator/v10"
)

// Payloads are validated before any request goes out, so a bad form never
// costs a network round trip.

type RegisterPayload struct {
	Username string `json:"username" validate:"required,min=3"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type UpdateUserPayload struct {
	Username string `json:"username,omitempty" validate:"omitempty,min=3"`
	Email    string `json:"email,omitempty" validate:"omitempty,email"`
	Password string `json:"password,omitempty" validate:"omitempty,min=8"`
}

type CreateTournamentPayload struct {
	Name          string `json:"name" validate:"required"`
	Password      string `json:"password" validate:"required"`
	CreatorID     string `json:"creatorId" validate:"required"`
	DurationHours int    `json:"durationHours,omitempty" validate:"omitempty,gt=0"`
}

type JoinTournamentPayload struct {
	ID       string `json:"id" validate:"required"`
	Name     string `json:"name" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type StreakSavePurchasePayload struct {
	Count int `json:"count" validate:"required,oneof=1 2 3"`
}

type SkillLevelPayload struct {
	SkillLevel models.SkillLevel `json:"skillLevel" validate:"required,oneof=beginner intermediate advanced"`
}

type LinkLeetCodePayload struct {
	ID         string `json:"id" validate:"required"`
	LcUsername string `json:"lcUsername" validate:"required"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// ValidatePayload checks a payload's validate tags and folds the failures
// into one user-facing message.
func ValidatePayload(payload any) error {
	err := validate.Struct(payload)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}
	messages := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		messages = append(messages, fieldMessage(fe))
	}
	return fmt.Errorf("%s", strings.Join(messages, "; "))
}

func fieldMessage(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "email":
		return fmt.Sprintf("%s must be a valid email address", field)
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}

package gateway

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tutorzindia/site/models"
	"github.com/tutorzindia/site/pkg"
	"github.com/tutorzindia/site/pkg/i18n"
)

func TestMain(m *testing.M) {
	if err := i18n.Load(i18n.Locales()); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

var registrationOptions = Options{
	Name:          "registration",
	Success:       OutcomeSubmitted,
	SuccessStatus: http.StatusCreated,
	Messages: Messages{
		SuccessTitle:       "registration.success.title",
		SuccessDescription: "registration.success.description",
		Failure:            "registration.failed",
	},
}

func TestSubmitValidInquiry(t *testing.T) {
	form := &models.RegistrationRequest{
		StudentName: "Asha Rao",
		Phone:       "9999999999",
		Email:       "asha@example.com",
		Class:       "Class 10",
	}

	calls := 0
	res := Submit(context.Background(), i18n.NewLocalizer("en"), form, func(context.Context) error {
		calls++
		return nil
	}, registrationOptions)

	require.True(t, res.OK)
	assert.Equal(t, 1, calls)
	assert.Equal(t, OutcomeSubmitted, res.Outcome)
	assert.Equal(t, http.StatusCreated, res.Status)
	assert.Equal(t, "Registration Successful!", res.Notification.Title)
	assert.Empty(t, res.Notification.Variant)
}

func TestSubmitValidationBlocksCall(t *testing.T) {
	form := &models.RegistrationRequest{
		Phone: "9999999999",
		Email: "asha@example.com",
		Class: "Class 10",
	}

	called := false
	res := Submit(context.Background(), i18n.NewLocalizer("en"), form, func(context.Context) error {
		called = true
		return nil
	}, registrationOptions)

	assert.False(t, res.OK)
	assert.False(t, called)
	assert.False(t, res.Called)
	assert.Equal(t, http.StatusBadRequest, res.Status)
	assert.Equal(t, "Student name is required", res.Notification.Description)
	assert.Equal(t, pkg.VariantDestructive, res.Notification.Variant)
	assert.ErrorIs(t, res.Err, pkg.ErrBadRequest)
}

func TestSubmitBackendError(t *testing.T) {
	form := &models.AchievementRequest{StudentName: "Ravi", Achievement: "NTSE"}
	opts := Options{
		Name:    "achievement",
		Success: OutcomeReset,
		Messages: Messages{
			SuccessTitle: "achievement.added",
			Failure:      "achievement.failed",
		},
	}

	t.Run("public message", func(t *testing.T) {
		res := Submit(context.Background(), i18n.NewLocalizer("en"), form, func(context.Context) error {
			return fmt.Errorf("%w: admin privileges required", pkg.ErrForbidden)
		}, opts)

		assert.False(t, res.OK)
		assert.True(t, res.Called)
		assert.Equal(t, http.StatusForbidden, res.Status)
		assert.Equal(t, "admin privileges required", res.Notification.Description)
		assert.Equal(t, OutcomeStay, res.Outcome)
	})

	t.Run("generic fallback", func(t *testing.T) {
		res := Submit(context.Background(), i18n.NewLocalizer("en"), form, func(context.Context) error {
			return errors.New("disk I/O error")
		}, opts)

		assert.Equal(t, http.StatusInternalServerError, res.Status)
		assert.Equal(t, "Failed to add achievement. You may need admin privileges.", res.Notification.Description)
		assert.Equal(t, "Error", res.Notification.Title)
	})
}

func TestSubmitRedirectAndEnvelope(t *testing.T) {
	form := &models.ContactInfoRequest{}
	res := Submit(context.Background(), i18n.NewLocalizer("en"), form, func(context.Context) error { return nil }, Options{
		Success:  OutcomeRedirect,
		Redirect: "/admin/dashboard?tab=settings",
		Messages: Messages{SuccessTitle: "contactInfo.updated"},
	})

	env := res.Envelope("data")
	assert.True(t, env.Success)
	assert.Equal(t, "data", env.Data)
	assert.Equal(t, "redirect", env.Outcome)
	assert.Equal(t, "/admin/dashboard?tab=settings", env.Redirect)
	assert.Equal(t, "Contact information updated", env.Notification.Title)
}

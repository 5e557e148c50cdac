package services

import (
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tapright/waitlist-api/pkg/models"
)

func validRaw() map[string]interface{} {
	return map[string]interface{}{
		"fullName":   "Ada Lovelace",
		"email":      "ada@example.com",
		"spendFocus": "travel",
		"notes":      "",
		"optIn":      true,
	}
}

func TestValidateSubmission_Valid(t *testing.T) {
	raw := validRaw()
	raw["fullName"] = "  Ada Lovelace  "
	raw["email"] = " ada@example.com "

	sub, verr := ValidateSubmission(raw)
	require.Nil(t, verr)
	assert.Equal(t, "Ada Lovelace", sub.FullName)
	assert.Equal(t, "ada@example.com", sub.Email)
	assert.Equal(t, "travel", sub.SpendFocus)
	assert.Empty(t, sub.Notes)
	assert.True(t, sub.OptIn)
}

func TestValidateSubmission_FieldRules(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(map[string]interface{})
		field   string
		message string
	}{
		{"name too short", func(r map[string]interface{}) { r["fullName"] = "A" }, "fullName", "Full name is required."},
		{"name only spaces", func(r map[string]interface{}) { r["fullName"] = "   a  " }, "fullName", "Full name is required."},
		{"name missing", func(r map[string]interface{}) { delete(r, "fullName") }, "fullName", "Full name is required."},
		{"name wrong type", func(r map[string]interface{}) { r["fullName"] = 42 }, "fullName", "Full name is required."},
		{"email without tld", func(r map[string]interface{}) { r["email"] = "ada@example" }, "email", "Enter a valid email address."},
		{"email without at", func(r map[string]interface{}) { r["email"] = "ada.example.com" }, "email", "Enter a valid email address."},
		{"email with space", func(r map[string]interface{}) { r["email"] = "ada love@example.com" }, "email", "Enter a valid email address."},
		{"email missing", func(r map[string]interface{}) { delete(r, "email") }, "email", "Enter a valid email address."},
		{"spend focus empty", func(r map[string]interface{}) { r["spendFocus"] = "" }, "spendFocus", "Let us know your optimisation focus."},
		{"notes too long", func(r map[string]interface{}) { r["notes"] = strings.Repeat("n", 1001) }, "notes", "Notes must be 1000 characters or fewer."},
		{"opt in false", func(r map[string]interface{}) { r["optIn"] = false }, "optIn", "Please confirm you want to receive updates."},
		{"opt in missing", func(r map[string]interface{}) { delete(r, "optIn") }, "optIn", "Please confirm you want to receive updates."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := validRaw()
			tt.mutate(raw)

			_, verr := ValidateSubmission(raw)
			require.NotNil(t, verr)
			assert.Equal(t, map[string]string{tt.field: tt.message}, verr.Fields)
		})
	}
}

func TestValidateSubmission_NotesLimits(t *testing.T) {
	raw := validRaw()
	raw["notes"] = strings.Repeat("é", 1000)
	_, verr := ValidateSubmission(raw)
	assert.Nil(t, verr)

	delete(raw, "notes")
	_, verr = ValidateSubmission(raw)
	assert.Nil(t, verr)
}

func TestValidateSubmission_OptInCoercion(t *testing.T) {
	tests := []struct {
		value interface{}
		ok    bool
	}{
		{true, true},
		{"true", true},
		{false, false},
		{"false", false},
		{"TRUE", false},
		{"yes", false},
		{1, false},
		{float64(1), false},
		{nil, false},
	}

	for _, tt := range tests {
		raw := validRaw()
		raw["optIn"] = tt.value

		_, verr := ValidateSubmission(raw)
		if tt.ok {
			assert.Nil(t, verr, "optIn=%v", tt.value)
			continue
		}
		require.NotNil(t, verr, "optIn=%v", tt.value)
		assert.Equal(t, "Please confirm you want to receive updates.", verr.Fields["optIn"])
	}
}

func TestValidateSubmission_EnumeratesEveryViolatedField(t *testing.T) {
	_, verr := ValidateSubmission(map[string]interface{}{})
	require.NotNil(t, verr)
	assert.Equal(t, map[string]string{
		"fullName":   "Full name is required.",
		"email":      "Enter a valid email address.",
		"spendFocus": "Let us know your optimisation focus.",
		"optIn":      "Please confirm you want to receive updates.",
	}, verr.Fields)
	assert.Contains(t, verr.Error(), "validation failed")
}

func TestValidateSubmission_NilBody(t *testing.T) {
	_, verr := ValidateSubmission(nil)
	require.NotNil(t, verr)
	assert.Len(t, verr.Fields, 4)
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func TestValidateSubmission_SpendFocusIsFreeForm(t *testing.T) {
	for _, focus := range append(append([]string{}, models.SpendFocusOptions...), "groceries and pets") {
		raw := validRaw()
		raw["spendFocus"] = focus

		sub, verr := ValidateSubmission(raw)
		require.Nil(t, verr, focus)
		assert.Equal(t, focus, sub.SpendFocus)
	}
}

func TestNewValidator_RegistersEmailRule(t *testing.T) {
	require.NotPanics(t, func() { newValidator() })

	type emailOnly struct {
		Email string `json:"email" validate:"waitlist_email"`
	}
	assert.NoError(t, newValidator().Struct(emailOnly{Email: "a@b.co"}))
	assert.Error(t, newValidator().Struct(emailOnly{Email: "a b@c.co"}))
}

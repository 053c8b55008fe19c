package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateUsername(t *testing.T) {
	assert.NoError(t, ValidateUsername("alice_99"))
	assert.NoError(t, ValidateUsername("a.b-c"))
	assert.Error(t, ValidateUsername("ab"))
	assert.Error(t, ValidateUsername(strings.Repeat("a", 31)))
	assert.Error(t, ValidateUsername("bad name"))
	assert.Error(t, ValidateUsername("bad@name"))
}

func TestValidateEmail(t *testing.T) {
	assert.NoError(t, ValidateEmail("user@example.com"))
	assert.NoError(t, ValidateEmail("first.last+tag@sub.example.org"))
	assert.Error(t, ValidateEmail("not-an-email"))
	assert.Error(t, ValidateEmail("missing@tld"))
	assert.Error(t, ValidateEmail(strings.Repeat("a", 250)+"@x.com"))
}

func TestValidatePhone(t *testing.T) {
	assert.NoError(t, ValidatePhone("+996700123456"))
	assert.NoError(t, ValidatePhone("996700123456"))
	assert.Error(t, ValidatePhone(""))
	assert.Error(t, ValidatePhone("0123456"))
	assert.Error(t, ValidatePhone("+1-202-555-0100"))
	assert.Error(t, ValidatePhone("12345"))
}

func TestValidatePassword(t *testing.T) {
	assert.NoError(t, ValidatePassword("Password12345"))
	assert.Error(t, ValidatePassword("Short1aA"))
	assert.Error(t, ValidatePassword("alllowercase123"))
	assert.Error(t, ValidatePassword("ALLUPPERCASE123"))
	assert.Error(t, ValidatePassword("NoDigitsHereAtAll"))
	assert.Error(t, ValidatePassword(strings.Repeat("Aa1", 50)))
}

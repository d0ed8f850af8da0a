package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsEmail(t *testing.T) {
	assert.True(t, IsEmail("student@example.com"))
	assert.True(t, IsEmail("a.b+tag@uni.edu.in"))
	assert.False(t, IsEmail(""))
	assert.False(t, IsEmail("no-at-sign"))
	assert.False(t, IsEmail("Upper@Example.com"))
	assert.False(t, IsEmail("x@" + strings.Repeat("a", 260) + ".com"))
}

func TestIsCourseTitle(t *testing.T) {
	assert.True(t, IsCourseTitle("Go 101"))
	assert.True(t, IsCourseTitle("Lógica"))
	assert.False(t, IsCourseTitle("Go"))
	assert.False(t, IsCourseTitle(strings.Repeat("x", TitleMaxLength+1)))
}

func TestStringValidationOptional(t *testing.T) {
	assert.True(t, NewStringValidation("").WithRequired(false).WithPattern(CompiledPatterns.Phone).Validate())
	assert.True(t, NewStringValidation("+91 98765-43210").WithPattern(CompiledPatterns.Phone).Validate())
	assert.False(t, NewStringValidation("call me").WithRequired(false).WithPattern(CompiledPatterns.Phone).Validate())
}

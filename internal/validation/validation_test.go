package validation

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Name  string `validate:"required"`
	Color string `validate:"color"`
}

func TestStruct(t *testing.T) {
	val := New(map[string][]string{"color": {"red", "saffron"}})

	assert.NoError(t, val.Struct("sample", sample{Name: "a", Color: "saffron"}))

	err := val.Struct("sample", sample{Color: "blue"})
	require.Error(t, err)
	assert.True(t, IsInvalid(err))
	assert.True(t, IsInvalid(fmt.Errorf("wrapped: %w", err)))
	assert.Equal(t, "invalid sample: sample.Name, sample.Color", err.Error())
}

func TestInvalid(t *testing.T) {
	err := Invalid("quiz", "questions")
	assert.True(t, IsInvalid(err))
	assert.Equal(t, "invalid quiz: questions", err.Error())
}

func TestVar(t *testing.T) {
	val := New(nil)

	assert.NoError(t, val.Var("email", "bob@example.org", "required,email"))

	err := val.Var("email", "bob <bob@example.org>", "required,email")
	require.Error(t, err)
	assert.True(t, IsInvalid(err))
	assert.Equal(t, "invalid email: email", err.Error())
}

package validation

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/stretchr/testify/assert"
)

type signup struct {
	Name     string `json:"name" binding:"required,max=5"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,pwd"`
}

func TestToDetails(t *testing.T) {
	Init()

	err := binding.Validator.ValidateStruct(&signup{Name: "toolong", Email: "nope", Password: "short"})
	assert.Equal(t, map[string]string{
		"name":     "must be at most 5 characters long",
		"email":    "must be a valid email",
		"password": "min length 8",
	}, ToDetails(err))

	err = binding.Validator.ValidateStruct(&signup{})
	details := ToDetails(err)
	assert.Equal(t, "is required", details["name"])
	assert.Equal(t, "is required", details["password"])

	assert.Equal(t, map[string]string{"payload": "invalid payload"}, ToDetails(errors.New("boom")))
	assert.Nil(t, ToDetails(nil))
}

func TestToDetailsInvalidJSON(t *testing.T) {
	err := json.Unmarshal([]byte(`{"name":1}`), &signup{})
	assert.Equal(t, map[string]string{"payload": "invalid json"}, ToDetails(err))

	err = json.Unmarshal([]byte(`{`), &signup{})
	assert.Equal(t, map[string]string{"payload": "invalid json"}, ToDetails(err))
}

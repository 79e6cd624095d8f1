package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type sample struct {
	ReviewerID int64    `validate:"required,gt=0"`
	Rating     int8     `validate:"required,min=1,max=5"`
	CoverImage string   `validate:"omitempty,url"`
	Genres     []string `validate:"max=2"`
}

func TestCheck(t *testing.T) {
	v := New()
	v.Check(true, "name", "must be provided")
	assert.True(t, v.Valid())

	v.Check(false, "name", "must be provided")
	v.Check(false, "name", "second message is ignored")
	assert.False(t, v.Valid())
	assert.Equal(t, "must be provided", v.Errors["name"])
}

func TestCheckStruct(t *testing.T) {
	t.Run("valid input", func(t *testing.T) {
		v := New()
		v.CheckStruct(sample{ReviewerID: 1, Rating: 5, CoverImage: "https://cdn.example.com/a.png"})
		assert.True(t, v.Valid())
	})

	t.Run("field errors use snake case keys", func(t *testing.T) {
		v := New()
		v.CheckStruct(sample{Rating: 6, CoverImage: "not a url", Genres: []string{"a", "b", "c"}})
		assert.Equal(t, "must be provided", v.Errors["reviewer_id"])
		assert.Equal(t, "must not be more than 5", v.Errors["rating"])
		assert.Equal(t, "must be a valid URL", v.Errors["cover_image"])
		assert.Equal(t, "must not be more than 2", v.Errors["genres"])
	})
}

func TestHelpers(t *testing.T) {
	assert.True(t, PermittedValue("b", "a", "b"))
	assert.False(t, PermittedValue(3, 1, 2))
	assert.True(t, Unique([]string{"a", "b"}))
	assert.False(t, Unique([]string{"a", "a"}))
}

func TestFieldKey(t *testing.T) {
	tests := map[string]string{
		"ReviewerID": "reviewer_id",
		"CoverImage": "cover_image",
		"Rating":     "rating",
		"HTTPStatus": "http_status",
		"Genres[0]":  "genres[0]",
	}
	for in, want := range tests {
		assert.Equal(t, want, fieldKey(in), in)
	}
}

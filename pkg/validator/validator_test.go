package validator

import (
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type delivery struct {
	BallType   string `binding:"omitempty,balltype"`
	WicketType string `binding:"omitempty,wickettype"`
}

func TestRegister(t *testing.T) {
	require.NoError(t, Register())
	require.NoError(t, Register(), "second call is a no-op")

	ok := []delivery{
		{},
		{BallType: "no_ball"},
		{BallType: "wicket", WicketType: "run_out"},
	}
	for _, d := range ok {
		assert.NoError(t, binding.Validator.ValidateStruct(d), "%+v", d)
	}

	bad := []delivery{
		{BallType: "beamer"},
		{BallType: "normal", WicketType: "timed_out"},
	}
	for _, d := range bad {
		assert.Error(t, binding.Validator.ValidateStruct(d), "%+v", d)
	}
}

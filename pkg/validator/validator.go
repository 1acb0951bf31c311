package validator

import (
	"fmt"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/DhavalSuthar-24/scorebook/internal/scoring"
)

var (
	registerOnce sync.Once
	registerErr  error
)

// Register adds the scoring tags to gin's binding validator:
//
//	balltype    one of the stored ball types
//	wickettype  one of the dismissal kinds
func Register() error {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			registerErr = fmt.Errorf("unexpected validator engine %T", binding.Validator.Engine())
			return
		}
		if err := v.RegisterValidation("balltype", validBallType); err != nil {
			registerErr = err
			return
		}
		registerErr = v.RegisterValidation("wickettype", validWicketType)
	})
	return registerErr
}

// MustRegister is Register for route setup, where a failure is a programming error.
func MustRegister() {
	if err := Register(); err != nil {
		panic(err)
	}
}

func validBallType(fl validator.FieldLevel) bool {
	return scoring.BallType(fl.Field().String()).Valid()
}

func validWicketType(fl validator.FieldLevel) bool {
	return scoring.WicketType(fl.Field().String()).Valid()
}

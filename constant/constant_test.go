package constant_test

import (
	"testing"

	"github.com/rskv-p/hier/constant"
	"github.com/stretchr/testify/assert"
)

func TestErrors(t *testing.T) {
	errs := []error{
		constant.ErrStepsFailed,
		constant.ErrInvalidConfig,
		constant.ErrSinkClosed,
	}
	for _, err := range errs {
		assert.Error(t, err)
		assert.NotEmpty(t, err.Error())
	}
}

func TestConstants_Values(t *testing.T) {
	assert.Equal(t, "HIER_", constant.EnvPrefix)
	assert.Equal(t, "hier.events", constant.DefaultEventSubject)
	assert.NotEqual(t, constant.ExitOK, constant.ExitFailure)
}

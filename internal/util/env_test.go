package util

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetenv_ReturnsDefaultWhenUnset(t *testing.T) {
	a := assert.New(t)
	_, found := os.LookupEnv("holdem_test_unset")
	a.False(found)
	a.Equal("fallback", Getenv("holdem_test_unset", "fallback"))
}

func TestGetenv_ReturnsValueWhenSet(t *testing.T) {
	a := assert.New(t)
	a.NoError(os.Setenv("holdem_test_set", "value"))
	defer os.Unsetenv("holdem_test_set")
	a.Equal("value", Getenv("holdem_test_set", "fallback"))
}

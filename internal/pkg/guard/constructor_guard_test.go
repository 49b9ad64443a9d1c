package guard_test

import (
	"errors"
	"testing"

	"dispatch/internal/pkg/guard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructorGuard_Validate(t *testing.T) {
	t.Run("properly_constructed_guard_returns_nil", func(t *testing.T) {
		g := guard.NewConstructorGuard()

		require.NoError(t, g.Validate(errors.New("not constructed")))
		require.NoError(t, g.Validate(nil))
	})

	t.Run("zero_value_guard_returns_custom_error", func(t *testing.T) {
		var g guard.ConstructorGuard // zero value
		expectedError := errors.New("entity not constructed")

		err := g.Validate(expectedError)

		require.Error(t, err)
		assert.Equal(t, expectedError, err)
	})

	t.Run("zero_value_guard_returns_default_error_when_nil", func(t *testing.T) {
		var g guard.ConstructorGuard // zero value

		err := g.Validate(nil)

		require.Error(t, err)
		assert.Equal(t, guard.ErrDefaultConstructorGuard, err)
	})
}

// TestConstructorGuardUsageExample demonstrates how ConstructorGuard enforces
// constructor usage in a guarded value object.
func TestConstructorGuardUsageExample(t *testing.T) {
	type Route struct {
		stops int
		guard guard.ConstructorGuard
	}

	errRouteNotConstructed := errors.New("Route must be created via NewRoute")

	newRoute := func(stops int) (Route, error) {
		if stops <= 0 {
			return Route{}, errors.New("a route needs at least one stop")
		}
		return Route{stops: stops, guard: guard.NewConstructorGuard()}, nil
	}

	t.Run("valid_construction_through_constructor", func(t *testing.T) {
		route, err := newRoute(3)

		require.NoError(t, err)
		require.NoError(t, route.guard.Validate(errRouteNotConstructed))
		assert.Equal(t, 3, route.stops)
	})

	t.Run("zero_value_fails_validation", func(t *testing.T) {
		var route Route // zero value

		err := route.guard.Validate(errRouteNotConstructed)

		require.Error(t, err)
		assert.Equal(t, errRouteNotConstructed, err)
	})
}

// TestConstructorGuardConcurrency verifies that ConstructorGuard is safe for concurrent use.
func TestConstructorGuardConcurrency(t *testing.T) {
	g := guard.NewConstructorGuard()
	validationError := errors.New("not constructed")

	done := make(chan bool)
	for range 100 {
		go func() {
			for range 1000 {
				err := g.Validate(validationError)
				assert.NoError(t, err)
			}
			done <- true
		}()
	}

	for range 100 {
		<-done
	}
}

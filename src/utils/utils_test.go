package utils_test

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Backend-Attendance/src/services/attendance"
	"Backend-Attendance/src/services/sweeper"
	"Backend-Attendance/src/storage"
	"Backend-Attendance/src/utils"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{fmt.Errorf("event x: %w", storage.ErrNotFound), fiber.StatusNotFound},
		{fmt.Errorf("%w: taken", attendance.ErrConflict), fiber.StatusConflict},
		{fmt.Errorf("%w: bad date", attendance.ErrInvalidInput), fiber.StatusUnprocessableEntity},
		{fmt.Errorf("%w: not open", attendance.ErrInvalidState), fiber.StatusBadRequest},
		{fmt.Errorf("%w: down", storage.ErrTransientIO), fiber.StatusServiceUnavailable},
		{errors.New("boom"), fiber.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, utils.StatusFor(tt.err), tt.err.Error())
	}
}

func TestJWTRoundTrip(t *testing.T) {
	token, err := utils.GenerateJWT("secret", "u1", "org@example.com", "admin", time.Hour)
	require.NoError(t, err)

	claims, err := utils.ParseJWT(token, "secret")
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
	assert.Equal(t, "admin", claims.Role)

	_, err = utils.ParseJWT(token, "other")
	assert.Error(t, err)
	_, err = utils.ParseJWT("", "secret")
	assert.Error(t, err)

	expired, err := utils.GenerateJWT("secret", "u1", "org@example.com", "admin", -time.Minute)
	require.NoError(t, err)
	_, err = utils.ParseJWT(expired, "secret")
	assert.Error(t, err)
}

func TestSweepLockerWithoutRedis(t *testing.T) {
	_, ok := utils.SweepLocker().(*sweeper.KeyedLocker)
	assert.True(t, ok)
}

package vkboot

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	vk "github.com/vulkan-go/vulkan"
)

func TestSetupErrorNilOnSuccess(t *testing.T) {
	assert.NoError(t, setupError("create instance", vk.Success))
}

func TestSetupErrorCarriesOperationAndResult(t *testing.T) {
	err := setupError("create swapchain", vk.ErrorOutOfDate)
	require.Error(t, err)

	var setupErr *SetupError
	require.ErrorAs(t, err, &setupErr)
	assert.Equal(t, "create swapchain", setupErr.Op)
	assert.Equal(t, vk.ErrorOutOfDate, setupErr.Ret)
	assert.Contains(t, err.Error(), "create swapchain")
}

func TestSetupErrorSurvivesStageWrapping(t *testing.T) {
	err := errors.WithMessage(setupError("create swapchain", vk.ErrorOutOfDate), "swapchain")

	var setupErr *SetupError
	assert.ErrorAs(t, err, &setupErr)
	assert.Contains(t, err.Error(), "swapchain: ")
}

func TestInitErrorUnwraps(t *testing.T) {
	cause := errors.New("no loader found")
	err := &InitError{Err: cause}

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "loading function table")
}

func TestUnsupportedFeatureErrorMessage(t *testing.T) {
	err := &UnsupportedFeatureError{
		Kind:  "validation layer",
		Names: []string{"VK_LAYER_KHRONOS_validation", "VK_LAYER_LUNARG_api_dump"},
	}

	assert.Contains(t, err.Error(), "unsupported validation layer")
	assert.Contains(t, err.Error(), "VK_LAYER_KHRONOS_validation, VK_LAYER_LUNARG_api_dump")
}

func TestSentinelsAreDistinct(t *testing.T) {
	assert.NotErrorIs(t, ErrNoGPU, ErrNoSuitableGPU)
	assert.NotErrorIs(t, errors.WithStack(ErrNoSuitableGPU), ErrNoGPU)
}

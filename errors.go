package vkboot

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
	vk "github.com/vulkan-go/vulkan"
)

// Sentinel failures of physical-device selection.
var (
	// ErrNoGPU means the instance enumerated zero physical devices.
	ErrNoGPU = errors.New("vulkan error: no GPU devices found")

	// ErrNoSuitableGPU means devices were found but every one of them is
	// missing a required capability.
	ErrNoSuitableGPU = errors.New("vulkan error: no suitable GPU devices found")
)

// InitError reports a failure to load the API function table.
type InitError struct {
	Err error
}

func (e *InitError) Error() string {
	return "vulkan error: loading function table: " + e.Err.Error()
}

func (e *InitError) Unwrap() error { return e.Err }

// SetupError reports a single object-creation call the driver rejected.
type SetupError struct {
	Op  string
	Ret vk.Result
}

func (e *SetupError) Error() string {
	return fmt.Sprintf("vulkan error: %s: %s (%d)", e.Op, vk.Error(e.Ret).Error(), e.Ret)
}

// UnsupportedFeatureError reports requested extensions or layers absent
// from the set the driver advertises.
type UnsupportedFeatureError struct {
	Kind  string // "instance extension", "device extension" or "validation layer"
	Names []string
}

func (e *UnsupportedFeatureError) Error() string {
	return fmt.Sprintf("vulkan error: unsupported %s: %s", e.Kind, strings.Join(e.Names, ", "))
}

// setupError converts a creation result into a *SetupError carrying the
// operation name, or nil on success.
func setupError(op string, ret vk.Result) error {
	if ret == vk.Success {
		return nil
	}
	return errors.WithStack(&SetupError{Op: op, Ret: ret})
}

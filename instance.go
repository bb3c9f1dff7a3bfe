package vkboot

import (
	"runtime"
	"unsafe"

	"github.com/pkg/errors"
	vk "github.com/vulkan-go/vulkan"
)

// instanceExtensions gets a list of instance extensions available on the
// platform.
func instanceExtensions() ([]string, error) {
	var count uint32
	ret := vk.EnumerateInstanceExtensionProperties("", &count, nil)
	if err := setupError("count instance extensions", ret); err != nil {
		return nil, err
	}
	list := make([]vk.ExtensionProperties, count)
	ret = vk.EnumerateInstanceExtensionProperties("", &count, list)
	if err := setupError("enumerate instance extensions", ret); err != nil {
		return nil, err
	}
	names := make([]string, 0, count)
	for _, ext := range list {
		ext.Deref()
		names = append(names, vk.ToString(ext.ExtensionName[:]))
	}
	return names, nil
}

// instanceLayers gets a list of layers available on the platform.
func instanceLayers() ([]string, error) {
	var count uint32
	ret := vk.EnumerateInstanceLayerProperties(&count, nil)
	if err := setupError("count instance layers", ret); err != nil {
		return nil, err
	}
	list := make([]vk.LayerProperties, count)
	ret = vk.EnumerateInstanceLayerProperties(&count, list)
	if err := setupError("enumerate instance layers", ret); err != nil {
		return nil, err
	}
	names := make([]string, 0, count)
	for _, layer := range list {
		layer.Deref()
		names = append(names, vk.ToString(layer.LayerName[:]))
	}
	return names, nil
}

// requiredInstanceExtensions collects the extensions the window system
// needs, plus the debug report extension when validation is on and the
// portability extensions when running under a layered implementation.
func (a *App) requiredInstanceExtensions() []string {
	exts := a.window.GetRequiredInstanceExtensions()
	if a.cfg.Debug {
		exts = append(exts, "VK_EXT_debug_report")
	}
	if runtime.GOOS == "darwin" {
		exts = append(exts,
			"VK_KHR_get_physical_device_properties2",
			"VK_KHR_portability_enumeration",
		)
	}
	return exts
}

// checkInstanceSupport verifies that every required extension, and every
// validation layer when debugging, is actually available before instance
// creation is attempted.
func (a *App) checkInstanceSupport(required []string) error {
	available, err := instanceExtensions()
	if err != nil {
		return err
	}
	if missing := missingNames(required, available); len(missing) > 0 {
		return errors.WithStack(&UnsupportedFeatureError{Kind: "instance extension", Names: missing})
	}

	if a.cfg.Debug && len(a.cfg.ValidationLayers) > 0 {
		layers, err := instanceLayers()
		if err != nil {
			return err
		}
		if missing := missingNames(a.cfg.ValidationLayers, layers); len(missing) > 0 {
			return errors.WithStack(&UnsupportedFeatureError{Kind: "validation layer", Names: missing})
		}
	}
	return nil
}

func (a *App) createInstance() error {
	required := a.requiredInstanceExtensions()
	if err := a.checkInstanceSupport(required); err != nil {
		return err
	}

	var flags vk.InstanceCreateFlags
	if runtime.GOOS == "darwin" {
		flags = vk.InstanceCreateFlags(0x00000001) //VK_INSTANCE_CREATE_ENUMERATE_PORTABILITY_BIT
	}

	createInfo := vk.InstanceCreateInfo{
		SType: vk.StructureTypeInstanceCreateInfo,
		PApplicationInfo: &vk.ApplicationInfo{
			SType:              vk.StructureTypeApplicationInfo,
			PApplicationName:   safeString(a.cfg.AppName),
			ApplicationVersion: a.cfg.AppVersion.VK(),
			PEngineName:        safeString(a.cfg.EngineName),
			EngineVersion:      a.cfg.EngineVersion.VK(),
			ApiVersion:         a.cfg.APIVersion.VK(),
		},
		Flags:                   flags,
		EnabledExtensionCount:   uint32(len(required)),
		PpEnabledExtensionNames: safeStrings(append([]string(nil), required...)),
	}
	if a.cfg.Debug {
		layers := safeStrings(append([]string(nil), a.cfg.ValidationLayers...))
		createInfo.EnabledLayerCount = uint32(len(layers))
		createInfo.PpEnabledLayerNames = layers
	}

	var instance vk.Instance
	ret := vk.CreateInstance(&createInfo, nil, &instance)
	if err := setupError("create instance", ret); err != nil {
		return err
	}
	a.instance = instance
	a.cleanups.push("instance", func() {
		vk.DestroyInstance(instance, nil)
	})

	// Resolve instance and device level commands through the loader now
	// that an instance exists.
	if err := vk.InitInstance(instance); err != nil {
		return errors.WithStack(&InitError{Err: err})
	}

	Logger().Debug("instance created", "extensions", required, "validation", a.cfg.Debug)
	return nil
}

func (a *App) createDebugMessenger() error {
	if !a.cfg.Debug {
		return nil
	}
	var callback vk.DebugReportCallback
	ret := vk.CreateDebugReportCallback(a.instance, &vk.DebugReportCallbackCreateInfo{
		SType: vk.StructureTypeDebugReportCallbackCreateInfo,
		Flags: vk.DebugReportFlags(vk.DebugReportErrorBit | vk.DebugReportWarningBit |
			vk.DebugReportPerformanceWarningBit | vk.DebugReportInformationBit | vk.DebugReportDebugBit),
		PfnCallback: a.debugReport,
	}, nil, &callback)
	if err := setupError("create debug report callback", ret); err != nil {
		return err
	}
	a.debugCallback = callback
	a.cleanups.push("debug messenger", func() {
		vk.DestroyDebugReportCallback(a.instance, callback, nil)
	})
	return nil
}

func (a *App) debugReport(flags vk.DebugReportFlags, objectType vk.DebugReportObjectType,
	object uint64, location uint, messageCode int32, layerPrefix string,
	message string, userData unsafe.Pointer) vk.Bool32 {

	switch {
	case flags&vk.DebugReportFlags(vk.DebugReportErrorBit) != 0:
		Logger().Error("validation", "layer", layerPrefix, "code", messageCode, "message", message)
		if a.cfg.OnValidationError != nil {
			a.cfg.OnValidationError(message)
		}
	case flags&vk.DebugReportFlags(vk.DebugReportWarningBit) != 0:
		Logger().Warn("validation", "layer", layerPrefix, "code", messageCode, "message", message)
	case flags&vk.DebugReportFlags(vk.DebugReportPerformanceWarningBit) != 0:
		Logger().Warn("validation performance", "layer", layerPrefix, "code", messageCode, "message", message)
	default:
		Logger().Debug("validation", "layer", layerPrefix, "code", messageCode, "message", message)
	}
	return vk.Bool32(vk.False)
}

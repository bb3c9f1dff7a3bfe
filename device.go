package vkboot

import (
	"runtime"

	"github.com/pkg/errors"
	vk "github.com/vulkan-go/vulkan"
)

// DeviceInfo is a gathered snapshot of one physical device: everything the
// selection logic consults, detached from the driver so scoring and queue
// search stay pure functions.
type DeviceInfo struct {
	Name       string
	Type       vk.PhysicalDeviceType
	Extensions []string
	Families   []QueueFamilyInfo
	Surface    SurfaceSupport
}

// missingNames returns the entries of want absent from have. NUL
// terminators are ignored on both sides so checked lists and enumerated
// lists compare equal.
func missingNames(want, have []string) []string {
	supported := make(map[string]struct{}, len(have))
	for _, name := range have {
		supported[trimNul(name)] = struct{}{}
	}
	var missing []string
	for _, name := range want {
		if _, ok := supported[trimNul(name)]; !ok {
			missing = append(missing, trimNul(name))
		}
	}
	return missing
}

// scoreDevice rates a device's suitability. Zero disqualifies: the device
// must offer a graphics family, a present family, every required
// extension, and at least one surface format and present mode. Suitable
// devices score 1; a discrete GPU adds 1000.
func scoreDevice(info DeviceInfo, requiredExtensions []string) uint32 {
	indices := findQueueIndices(info.Families)
	if !indices.IsComplete() {
		return 0
	}
	if len(missingNames(requiredExtensions, info.Extensions)) > 0 {
		return 0
	}
	if len(info.Surface.Formats) == 0 || len(info.Surface.PresentModes) == 0 {
		return 0
	}
	score := uint32(1)
	if info.Type == vk.PhysicalDeviceTypeDiscreteGpu {
		score += 1000
	}
	return score
}

// pickDevice returns the index of the highest-scoring device, keeping the
// first-enumerated one on ties.
func pickDevice(infos []DeviceInfo, requiredExtensions []string) (int, error) {
	if len(infos) == 0 {
		return 0, errors.WithStack(ErrNoGPU)
	}
	best := -1
	bestScore := uint32(0)
	for i, info := range infos {
		score := scoreDevice(info, requiredExtensions)
		Logger().Debug("physical device candidate", "name", info.Name, "score", score)
		if score > bestScore {
			best, bestScore = i, score
		}
	}
	if best < 0 {
		return 0, errors.WithStack(ErrNoSuitableGPU)
	}
	return best, nil
}

// deviceExtensions lists the extensions a physical device supports.
func deviceExtensions(gpu vk.PhysicalDevice) ([]string, error) {
	var count uint32
	ret := vk.EnumerateDeviceExtensionProperties(gpu, "", &count, nil)
	if err := setupError("count device extensions", ret); err != nil {
		return nil, err
	}
	list := make([]vk.ExtensionProperties, count)
	ret = vk.EnumerateDeviceExtensionProperties(gpu, "", &count, list)
	if err := setupError("enumerate device extensions", ret); err != nil {
		return nil, err
	}
	names := make([]string, 0, count)
	for _, ext := range list {
		ext.Deref()
		names = append(names, vk.ToString(ext.ExtensionName[:]))
	}
	return names, nil
}

// gatherDeviceInfo interrogates one physical device.
func gatherDeviceInfo(gpu vk.PhysicalDevice, surface vk.Surface) (DeviceInfo, error) {
	var props vk.PhysicalDeviceProperties
	vk.GetPhysicalDeviceProperties(gpu, &props)
	props.Deref()

	info := DeviceInfo{
		Name: vk.ToString(props.DeviceName[:]),
		Type: props.DeviceType,
	}
	var err error
	if info.Extensions, err = deviceExtensions(gpu); err != nil {
		return info, err
	}
	if info.Families, err = gatherQueueFamilies(gpu, surface); err != nil {
		return info, err
	}
	if info.Surface, err = gatherSurfaceSupport(gpu, surface); err != nil {
		return info, err
	}
	return info, nil
}

// requiredDeviceExtensions is the device-extension list the bootstrap
// enables: the swapchain extension, plus the portability subset when
// running under a layered implementation.
func requiredDeviceExtensions() []string {
	exts := []string{vk.KhrSwapchainExtensionName}
	if runtime.GOOS == "darwin" {
		exts = append(exts, "VK_KHR_portability_subset")
	}
	return exts
}

// pickPhysicalDevice enumerates the GPUs visible to the instance, gathers
// a snapshot of each and selects the best-scoring one.
func (a *App) pickPhysicalDevice() error {
	var count uint32
	ret := vk.EnumeratePhysicalDevices(a.instance, &count, nil)
	if err := setupError("count physical devices", ret); err != nil {
		return err
	}
	if count == 0 {
		return errors.WithStack(ErrNoGPU)
	}
	gpus := make([]vk.PhysicalDevice, count)
	ret = vk.EnumeratePhysicalDevices(a.instance, &count, gpus)
	if err := setupError("enumerate physical devices", ret); err != nil {
		return err
	}

	infos := make([]DeviceInfo, len(gpus))
	for i, gpu := range gpus {
		info, err := gatherDeviceInfo(gpu, a.surface)
		if err != nil {
			return err
		}
		infos[i] = info
	}

	best, err := pickDevice(infos, requiredDeviceExtensions())
	if err != nil {
		return err
	}
	a.gpu = gpus[best]
	a.gpuInfo = infos[best]
	a.indices = findQueueIndices(a.gpuInfo.Families)
	Logger().Info("selected physical device", "name", a.gpuInfo.Name)
	return nil
}

// createLogicalDevice creates the device with one queue per distinct
// family among {graphics, present} and retrieves both queue handles.
func (a *App) createLogicalDevice() error {
	if !a.indices.IsComplete() {
		return errors.Errorf("selected device %q lacks graphics or present queues", a.gpuInfo.Name)
	}
	queueInfos := uniqueQueueCreateInfos(a.indices.Graphics.Get(), a.indices.Present.Get())
	extensions := safeStrings(requiredDeviceExtensions())

	info := vk.DeviceCreateInfo{
		SType:                   vk.StructureTypeDeviceCreateInfo,
		QueueCreateInfoCount:    uint32(len(queueInfos)),
		PQueueCreateInfos:       queueInfos,
		PEnabledFeatures:        []vk.PhysicalDeviceFeatures{{}},
		EnabledExtensionCount:   uint32(len(extensions)),
		PpEnabledExtensionNames: extensions,
	}
	if a.cfg.Debug {
		layers := safeStrings(append([]string(nil), a.cfg.ValidationLayers...))
		info.EnabledLayerCount = uint32(len(layers))
		info.PpEnabledLayerNames = layers
	}

	var device vk.Device
	ret := vk.CreateDevice(a.gpu, &info, nil, &device)
	if err := setupError("create logical device", ret); err != nil {
		return err
	}
	a.device = device
	a.cleanups.push("logical device", func() {
		vk.DestroyDevice(device, nil)
		a.device = nil
	})

	vk.GetDeviceQueue(a.device, a.indices.Graphics.Get(), 0, &a.graphicsQueue)
	vk.GetDeviceQueue(a.device, a.indices.Present.Get(), 0, &a.presentQueue)
	Logger().Debug("device queues retrieved",
		"graphics", a.indices.Graphics.Get(),
		"present", a.indices.Present.Get(),
		"shared", a.indices.Graphics.Get() == a.indices.Present.Get())
	return nil
}

package vkboot

import (
	vk "github.com/vulkan-go/vulkan"
)

// QueueFamilyInfo is a driver-independent snapshot of one queue family:
// its capability flags and whether it can present to the surface the
// bootstrap created.
type QueueFamilyInfo struct {
	Flags      vk.QueueFlags
	CanPresent bool
}

// QueueIndices holds the family found for each operation class. The five
// searches run independently and may all land on the same family.
type QueueIndices struct {
	Graphics      Optional[uint32]
	Compute       Optional[uint32]
	Transfer      Optional[uint32]
	SparseBinding Optional[uint32]
	Present       Optional[uint32]
}

// IsComplete reports whether the two families the bootstrap actually
// requests queues from were found.
func (q QueueIndices) IsComplete() bool {
	return q.Graphics.HasValue() && q.Present.HasValue()
}

// findQueueFamily returns the first family whose flags contain every bit
// of want. The scan keeps going after a partial match: a family carrying
// exactly the wanted bits and nothing else wins over an earlier superset.
func findQueueFamily(families []QueueFamilyInfo, want vk.QueueFlags) Optional[uint32] {
	var index Optional[uint32]
	for i, family := range families {
		if family.Flags&want != want {
			continue
		}
		if family.Flags^want == 0 {
			index.Set(uint32(i))
			break
		}
		if !index.HasValue() {
			index.Set(uint32(i))
		}
	}
	return index
}

// findPresentFamily returns the first family that can present.
func findPresentFamily(families []QueueFamilyInfo) Optional[uint32] {
	var index Optional[uint32]
	for i, family := range families {
		if family.CanPresent {
			index.Set(uint32(i))
			break
		}
	}
	return index
}

// findQueueIndices fills all five capability slots for a device.
func findQueueIndices(families []QueueFamilyInfo) QueueIndices {
	return QueueIndices{
		Graphics:      findQueueFamily(families, vk.QueueFlags(vk.QueueGraphicsBit)),
		Compute:       findQueueFamily(families, vk.QueueFlags(vk.QueueComputeBit)),
		Transfer:      findQueueFamily(families, vk.QueueFlags(vk.QueueTransferBit)),
		SparseBinding: findQueueFamily(families, vk.QueueFlags(vk.QueueSparseBindingBit)),
		Present:       findPresentFamily(families),
	}
}

// uniqueQueueCreateInfos builds one single-queue request per distinct
// family, priority 1.0, preserving first-seen order.
func uniqueQueueCreateInfos(families ...uint32) []vk.DeviceQueueCreateInfo {
	seen := make(map[uint32]struct{}, len(families))
	infos := make([]vk.DeviceQueueCreateInfo, 0, len(families))
	for _, family := range families {
		if _, ok := seen[family]; ok {
			continue
		}
		seen[family] = struct{}{}
		infos = append(infos, vk.DeviceQueueCreateInfo{
			SType:            vk.StructureTypeDeviceQueueCreateInfo,
			QueueFamilyIndex: family,
			QueueCount:       1,
			PQueuePriorities: []float32{1.0},
		})
	}
	return infos
}

// gatherQueueFamilies snapshots a device's queue families along with their
// per-index surface support.
func gatherQueueFamilies(gpu vk.PhysicalDevice, surface vk.Surface) ([]QueueFamilyInfo, error) {
	var count uint32
	vk.GetPhysicalDeviceQueueFamilyProperties(gpu, &count, nil)
	props := make([]vk.QueueFamilyProperties, count)
	vk.GetPhysicalDeviceQueueFamilyProperties(gpu, &count, props)

	families := make([]QueueFamilyInfo, count)
	for i := range props {
		props[i].Deref()
		families[i].Flags = props[i].QueueFlags

		var supported vk.Bool32
		ret := vk.GetPhysicalDeviceSurfaceSupport(gpu, uint32(i), surface, &supported)
		if err := setupError("query surface support", ret); err != nil {
			return nil, err
		}
		families[i].CanPresent = supported.B()
	}
	return families, nil
}

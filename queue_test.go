package vkboot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	vk "github.com/vulkan-go/vulkan"
)

func flags(bits vk.QueueFlagBits) vk.QueueFlags {
	return vk.QueueFlags(bits)
}

func TestFindQueueFamilyPrefersExactMatch(t *testing.T) {
	families := []QueueFamilyInfo{
		{Flags: flags(vk.QueueGraphicsBit | vk.QueueComputeBit | vk.QueueTransferBit)},
		{Flags: flags(vk.QueueComputeBit)},
		{Flags: flags(vk.QueueGraphicsBit)},
	}

	index := findQueueFamily(families, flags(vk.QueueGraphicsBit))
	require.True(t, index.HasValue())
	assert.Equal(t, uint32(2), index.Get(), "family carrying only the graphics bit should win over the earlier superset")
}

func TestFindQueueFamilyKeepsFirstSuperset(t *testing.T) {
	families := []QueueFamilyInfo{
		{Flags: flags(vk.QueueGraphicsBit | vk.QueueComputeBit)},
		{Flags: flags(vk.QueueGraphicsBit | vk.QueueTransferBit)},
	}

	index := findQueueFamily(families, flags(vk.QueueGraphicsBit))
	require.True(t, index.HasValue())
	assert.Equal(t, uint32(0), index.Get())
}

func TestFindQueueFamilyExactMatchStopsScan(t *testing.T) {
	families := []QueueFamilyInfo{
		{Flags: flags(vk.QueueComputeBit)},
		{Flags: flags(vk.QueueComputeBit)},
	}

	index := findQueueFamily(families, flags(vk.QueueComputeBit))
	require.True(t, index.HasValue())
	assert.Equal(t, uint32(0), index.Get())
}

func TestFindQueueFamilyAbsentCapability(t *testing.T) {
	families := []QueueFamilyInfo{
		{Flags: flags(vk.QueueGraphicsBit)},
		{Flags: flags(vk.QueueComputeBit)},
	}

	index := findQueueFamily(families, flags(vk.QueueSparseBindingBit))
	assert.False(t, index.HasValue())
}

func TestFindQueueFamilyEmptyList(t *testing.T) {
	index := findQueueFamily(nil, flags(vk.QueueGraphicsBit))
	assert.False(t, index.HasValue())
}

func TestFindPresentFamilyFirstMatch(t *testing.T) {
	families := []QueueFamilyInfo{
		{Flags: flags(vk.QueueComputeBit)},
		{Flags: flags(vk.QueueGraphicsBit), CanPresent: true},
		{Flags: flags(vk.QueueGraphicsBit), CanPresent: true},
	}

	index := findPresentFamily(families)
	require.True(t, index.HasValue())
	assert.Equal(t, uint32(1), index.Get())
}

func TestFindPresentFamilyNone(t *testing.T) {
	families := []QueueFamilyInfo{
		{Flags: flags(vk.QueueGraphicsBit)},
	}
	assert.False(t, findPresentFamily(families).HasValue())
}

func TestFindQueueIndicesIndependentSlots(t *testing.T) {
	families := []QueueFamilyInfo{
		{Flags: flags(vk.QueueGraphicsBit | vk.QueueComputeBit | vk.QueueTransferBit), CanPresent: true},
		{Flags: flags(vk.QueueTransferBit)},
	}

	indices := findQueueIndices(families)

	require.True(t, indices.Graphics.HasValue())
	assert.Equal(t, uint32(0), indices.Graphics.Get())
	require.True(t, indices.Compute.HasValue())
	assert.Equal(t, uint32(0), indices.Compute.Get())
	require.True(t, indices.Transfer.HasValue())
	assert.Equal(t, uint32(1), indices.Transfer.Get(), "transfer-only family is an exact match")
	assert.False(t, indices.SparseBinding.HasValue())
	require.True(t, indices.Present.HasValue())
	assert.Equal(t, uint32(0), indices.Present.Get())

	assert.True(t, indices.IsComplete())
}

func TestQueueIndicesIncomplete(t *testing.T) {
	var q QueueIndices
	assert.False(t, q.IsComplete())

	q.Graphics.Set(0)
	assert.False(t, q.IsComplete(), "graphics alone is not enough")

	q.Present.Set(0)
	assert.True(t, q.IsComplete())
}

func TestUniqueQueueCreateInfosSharedFamily(t *testing.T) {
	infos := uniqueQueueCreateInfos(3, 3)

	require.Len(t, infos, 1)
	assert.Equal(t, uint32(3), infos[0].QueueFamilyIndex)
	assert.Equal(t, uint32(1), infos[0].QueueCount)
	require.Len(t, infos[0].PQueuePriorities, 1)
	assert.Equal(t, float32(1.0), infos[0].PQueuePriorities[0])
}

func TestUniqueQueueCreateInfosDistinctFamilies(t *testing.T) {
	infos := uniqueQueueCreateInfos(2, 0)

	require.Len(t, infos, 2)
	assert.Equal(t, uint32(2), infos[0].QueueFamilyIndex, "first-seen order is preserved")
	assert.Equal(t, uint32(0), infos[1].QueueFamilyIndex)
}

// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package vulkan

import (
	"fmt"
	"sync"

	"github.com/forgegpu/vkgpu/hal"
	"github.com/forgegpu/vkgpu/hal/vulkan/vk"
	"github.com/forgegpu/vkgpu/types"
)

// maxSwapchainInFlight caps the number of images acquired but not yet
// presented for one swapchain (spec.md §9): exceeding it drops the
// acquire rather than let presentation latency grow unbounded.
const maxSwapchainInFlight = 3

// windowData is spec.md §3's "WindowData": per-claimed-window state
// the backend keeps between ClaimWindow and UnclaimWindow.
type windowData struct {
	provider    hal.SurfaceProvider
	surface     vk.SurfaceKHR
	composition types.SwapchainComposition
	presentMode types.PresentMode

	mu        sync.Mutex
	swapchain *swapchainData
}

// swapchainData is spec.md §3's "SwapchainData": the live swapchain a
// claimed window presents through. Per-image textures are wrapped in
// non-cyclable TextureContainers since the presentation engine, not
// this backend's cycling scheme, owns their identity.
type swapchainData struct {
	handle      vk.SwapchainKHR
	format      types.TextureFormat
	vkFormat    vk.Format
	extent      vk.Extent2D
	presentMode vk.PresentModeKHR

	containers []*TextureContainer

	imageAvailable vk.Semaphore
	renderFinished vk.Semaphore

	mu        sync.Mutex
	inFlight  int
	outOfDate bool
}

// SupportsSwapchainComposition implements hal.Device. This backend
// always builds an sRGB-nonlinear SDR swapchain (spec.md §4.7), so no
// other composition is ever claimable.
func (d *Device) SupportsSwapchainComposition(w hal.Window, composition types.SwapchainComposition) bool {
	return composition == types.CompositionSDR
}

// SupportsPresentMode implements hal.Device, querying the physical
// device's present modes against either the window's already-claimed
// surface or a transient one created solely for the query.
func (d *Device) SupportsPresentMode(w hal.Window, mode types.PresentMode) bool {
	surface, transient, err := d.surfaceForQuery(w)
	if err != nil {
		return false
	}
	if transient {
		defer d.cmds.DestroySurfaceKHR(d.instance, surface)
	}

	want := presentModeToVk(mode)
	for _, m := range d.querySurfacePresentModes(surface) {
		if m == want {
			return true
		}
	}
	return false
}

func (d *Device) surfaceForQuery(w hal.Window) (vk.SurfaceKHR, bool, error) {
	d.windowsMu.Lock()
	wd, ok := d.windows[w]
	d.windowsMu.Unlock()
	if ok {
		return wd.surface, false, nil
	}

	sp, ok := w.(hal.SurfaceProvider)
	if !ok {
		return 0, false, fmt.Errorf("vulkan: window does not implement hal.SurfaceProvider")
	}
	native, err := sp.CreateSurface(uintptr(d.instance))
	if err != nil {
		return 0, false, fmt.Errorf("vulkan: surface creation failed: %w", err)
	}
	return vk.SurfaceKHR(native), true, nil
}

func (d *Device) querySurfaceFormats(surface vk.SurfaceKHR) []vk.SurfaceFormatKHR {
	var count uint32
	d.cmds.GetPhysicalDeviceSurfaceFormatsKHR(d.physicalDevice, surface, &count, nil)
	if count == 0 {
		return nil
	}
	formats := make([]vk.SurfaceFormatKHR, count)
	d.cmds.GetPhysicalDeviceSurfaceFormatsKHR(d.physicalDevice, surface, &count, &formats[0])
	return formats
}

func (d *Device) querySurfacePresentModes(surface vk.SurfaceKHR) []vk.PresentModeKHR {
	var count uint32
	d.cmds.GetPhysicalDeviceSurfacePresentModesKHR(d.physicalDevice, surface, &count, nil)
	if count == 0 {
		return nil
	}
	modes := make([]vk.PresentModeKHR, count)
	d.cmds.GetPhysicalDeviceSurfacePresentModesKHR(d.physicalDevice, surface, &count, &modes[0])
	return modes
}

// ClaimWindow implements hal.Device: builds a native surface for w,
// confirms the device's queue family can present to it, and builds the
// window's first swapchain.
func (d *Device) ClaimWindow(w hal.Window, composition types.SwapchainComposition, mode types.PresentMode) error {
	sp, ok := w.(hal.SurfaceProvider)
	if !ok {
		return fmt.Errorf("vulkan: window does not implement hal.SurfaceProvider")
	}

	d.windowsMu.Lock()
	_, exists := d.windows[w]
	d.windowsMu.Unlock()
	if exists {
		return fmt.Errorf("vulkan: window already claimed")
	}

	for _, ext := range sp.RequiredInstanceExtensions() {
		if !d.instanceExtensions[ext] {
			return fmt.Errorf("vulkan: window requires instance extension %q, not loaded at device creation", ext)
		}
	}

	native, err := sp.CreateSurface(uintptr(d.instance))
	if err != nil {
		return fmt.Errorf("vulkan: surface creation failed: %w", err)
	}
	surface := vk.SurfaceKHR(native)

	supported, res := d.cmds.GetPhysicalDeviceSurfaceSupportKHR(d.physicalDevice, d.queueFamilyIndex, surface)
	if res != vk.Success || !supported {
		d.cmds.DestroySurfaceKHR(d.instance, surface)
		return fmt.Errorf("vulkan: queue family %d cannot present to this surface", d.queueFamilyIndex)
	}

	wd := &windowData{provider: sp, surface: surface, composition: composition, presentMode: mode}
	sc, err := d.createSwapchainData(wd, nil)
	if err != nil {
		d.cmds.DestroySurfaceKHR(d.instance, surface)
		return err
	}
	wd.swapchain = sc

	d.windowsMu.Lock()
	d.windows[w] = wd
	d.windowsMu.Unlock()
	return nil
}

// UnclaimWindow implements hal.Device.
func (d *Device) UnclaimWindow(w hal.Window) {
	d.windowsMu.Lock()
	wd, ok := d.windows[w]
	if ok {
		delete(d.windows, w)
	}
	d.windowsMu.Unlock()
	if !ok {
		return
	}

	d.cmds.DeviceWaitIdle(d.handle)
	if wd.swapchain != nil {
		d.destroySwapchainData(wd.swapchain)
	}
	d.cmds.DestroySurfaceKHR(d.instance, wd.surface)
}

// SetSwapchainParameters implements hal.Device: rebuilds the window's
// swapchain with the new composition/present mode, chaining the old
// swapchain handle so the presentation engine can hand off in place.
func (d *Device) SetSwapchainParameters(w hal.Window, composition types.SwapchainComposition, mode types.PresentMode) error {
	d.windowsMu.Lock()
	wd, ok := d.windows[w]
	d.windowsMu.Unlock()
	if !ok {
		return fmt.Errorf("vulkan: window not claimed")
	}

	wd.mu.Lock()
	defer wd.mu.Unlock()
	wd.composition = composition
	wd.presentMode = mode

	old := wd.swapchain
	sc, err := d.createSwapchainData(wd, old)
	if err != nil {
		return err
	}
	if old != nil {
		d.cmds.DeviceWaitIdle(d.handle)
		d.destroySwapchainData(old)
	}
	wd.swapchain = sc
	return nil
}

// GetSwapchainTextureFormat implements hal.Device.
func (d *Device) GetSwapchainTextureFormat(w hal.Window) types.TextureFormat {
	d.windowsMu.Lock()
	wd, ok := d.windows[w]
	d.windowsMu.Unlock()
	if !ok {
		return types.FormatUndefined
	}
	wd.mu.Lock()
	defer wd.mu.Unlock()
	if wd.swapchain == nil {
		return types.FormatUndefined
	}
	return wd.swapchain.format
}

// createSwapchainData builds (or rebuilds, chaining old as
// VkSwapchainCreateInfoKHR.oldSwapchain) the swapchain for a claimed
// window, following the teacher's capability-query-then-create
// sequence.
func (d *Device) createSwapchainData(wd *windowData, old *swapchainData) (*swapchainData, error) {
	var caps vk.SurfaceCapabilitiesKHR
	if res := d.cmds.GetPhysicalDeviceSurfaceCapabilitiesKHR(d.physicalDevice, wd.surface, &caps); res != vk.Success {
		return nil, fmt.Errorf("vulkan: vkGetPhysicalDeviceSurfaceCapabilitiesKHR failed: %v", res)
	}

	extent := caps.CurrentExtent
	if extent.Width == 0xFFFFFFFF {
		w, h := wd.provider.DrawableSize()
		extent = vk.Extent2D{Width: w, Height: h}
	}
	if extent.Width == 0 || extent.Height == 0 {
		return nil, fmt.Errorf("vulkan: window has a zero-sized drawable area")
	}

	imageCount := caps.MinImageCount + 1
	if caps.MaxImageCount > 0 && imageCount > caps.MaxImageCount {
		imageCount = caps.MaxImageCount
	}

	vkFormat, texFormat := d.pickSurfaceFormat(wd.surface)
	presentMode := d.pickPresentMode(wd.surface, wd.presentMode)

	var oldHandle vk.SwapchainKHR
	if old != nil {
		oldHandle = old.handle
	}

	info := vk.SwapchainCreateInfoKHR{
		SType:            vk.StructureTypeSwapchainCreateInfoKHR,
		Surface:          wd.surface,
		MinImageCount:    imageCount,
		ImageFormat:      vkFormat,
		ImageColorSpace:  vk.ColorSpaceSRGBNonlinearKHR,
		ImageExtent:      extent,
		ImageArrayLayers: 1,
		ImageUsage:       vk.ImageUsageColorAttachmentBit | vk.ImageUsageTransferDstBit,
		ImageSharingMode: vk.SharingModeExclusive,
		PreTransform:     caps.CurrentTransform,
		CompositeAlpha:   vk.CompositeAlphaOpaqueBitKHR,
		PresentMode:      presentMode,
		Clipped:          vk.True,
		OldSwapchain:     oldHandle,
	}
	handle, res := d.cmds.CreateSwapchainKHR(d.handle, &info)
	if res != vk.Success {
		return nil, fmt.Errorf("vulkan: vkCreateSwapchainKHR failed: %v", res)
	}

	var imageCountOut uint32
	d.cmds.GetSwapchainImagesKHR(d.handle, handle, &imageCountOut, nil)
	if imageCountOut == 0 {
		d.cmds.DestroySwapchainKHR(d.handle, handle)
		return nil, fmt.Errorf("vulkan: vkGetSwapchainImagesKHR reported zero images")
	}
	images := make([]vk.Image, imageCountOut)
	if res := d.cmds.GetSwapchainImagesKHR(d.handle, handle, &imageCountOut, &images[0]); res != vk.Success {
		d.cmds.DestroySwapchainKHR(d.handle, handle)
		return nil, fmt.Errorf("vulkan: vkGetSwapchainImagesKHR failed: %v", res)
	}

	containers := make([]*TextureContainer, len(images))
	for i, img := range images {
		nt, err := d.wrapSwapchainImage(img, vkFormat, texFormat, extent)
		if err != nil {
			for j := 0; j < i; j++ {
				d.destroyTextureResource(containers[j].active.texture)
			}
			d.cmds.DestroySwapchainKHR(d.handle, handle)
			return nil, err
		}
		h := &TextureHandle{texture: nt}
		nt.owner = h
		c := &TextureContainer{device: d, label: "swapchain", handles: []*TextureHandle{h}, active: h, canBeCycled: false}
		containers[i] = c
	}

	imageAvailable, res := d.cmds.CreateSemaphore(d.handle)
	if res != vk.Success {
		for _, c := range containers {
			d.destroyTextureResource(c.active.texture)
		}
		d.cmds.DestroySwapchainKHR(d.handle, handle)
		return nil, fmt.Errorf("vulkan: vkCreateSemaphore (imageAvailable) failed: %v", res)
	}
	renderFinished, res := d.cmds.CreateSemaphore(d.handle)
	if res != vk.Success {
		d.cmds.DestroySemaphore(d.handle, imageAvailable)
		for _, c := range containers {
			d.destroyTextureResource(c.active.texture)
		}
		d.cmds.DestroySwapchainKHR(d.handle, handle)
		return nil, fmt.Errorf("vulkan: vkCreateSemaphore (renderFinished) failed: %v", res)
	}

	return &swapchainData{
		handle: handle, format: texFormat, vkFormat: vkFormat, extent: extent, presentMode: presentMode,
		containers:     containers,
		imageAvailable: imageAvailable,
		renderFinished: renderFinished,
	}, nil
}

func (d *Device) destroySwapchainData(sc *swapchainData) {
	if sc.imageAvailable != 0 {
		d.cmds.DestroySemaphore(d.handle, sc.imageAvailable)
	}
	if sc.renderFinished != 0 {
		d.cmds.DestroySemaphore(d.handle, sc.renderFinished)
	}
	for _, c := range sc.containers {
		d.destroyTextureResource(c.active.texture)
	}
	if sc.handle != 0 {
		d.cmds.DestroySwapchainKHR(d.handle, sc.handle)
	}
}

// wrapSwapchainImage builds the single-slice nativeTexture wrapping one
// swapchain-owned VkImage. Its region stays nil and swapchainOwned
// marks it so destroyTextureResource never calls vkDestroyImage on it.
func (d *Device) wrapSwapchainImage(img vk.Image, vkFormat vk.Format, format types.TextureFormat, extent vk.Extent2D) (*nativeTexture, error) {
	view, res := d.cmds.CreateImageView(d.handle, &vk.ImageViewCreateInfo{
		SType:    vk.StructureTypeImageViewCreateInfo,
		Image:    img,
		ViewType: vk.ImageViewType2D,
		Format:   vkFormat,
		SubresourceRange: vk.ImageSubresourceRange{
			AspectMask: vk.ImageAspectColorBit, LevelCount: 1, LayerCount: 1,
		},
	})
	if res != vk.Success {
		return nil, fmt.Errorf("vulkan: vkCreateImageView (swapchain image) failed: %v", res)
	}
	nt := &nativeTexture{
		image: img, defaultView: view,
		width: extent.Width, height: extent.Height, depth: 1,
		layerCount: 1, levelCount: 1,
		sampleCount: types.SampleCount1, format: format,
		usage:          types.TextureUsageColorTarget,
		aspect:         vk.ImageAspectColorBit,
		swapchainOwned: true,
	}
	nt.slices = []*textureSlice{{parent: nt, layer: 0, level: 0, view: view}}
	return nt, nil
}

// pickSurfaceFormat prefers an 8-bit BGRA/RGBA non-linear sRGB format
// this backend already recognizes, falling back to whatever the
// surface reports first.
func (d *Device) pickSurfaceFormat(surface vk.SurfaceKHR) (vk.Format, types.TextureFormat) {
	formats := d.querySurfaceFormats(surface)
	preferred := []types.TextureFormat{types.FormatB8G8R8A8Unorm, types.FormatR8G8B8A8Unorm}
	for _, want := range preferred {
		wantVk, ok := formatToVk(want)
		if !ok {
			continue
		}
		for _, f := range formats {
			if f.Format == wantVk && f.ColorSpace == vk.ColorSpaceSRGBNonlinearKHR {
				return wantVk, want
			}
		}
	}
	for _, f := range formats {
		if texFormat, ok := vkFormatToTextureFormat(f.Format); ok {
			return f.Format, texFormat
		}
	}
	vkFormat, _ := formatToVk(types.FormatB8G8R8A8Unorm)
	return vkFormat, types.FormatB8G8R8A8Unorm
}

func (d *Device) pickPresentMode(surface vk.SurfaceKHR, want types.PresentMode) vk.PresentModeKHR {
	wantVk := presentModeToVk(want)
	for _, m := range d.querySurfacePresentModes(surface) {
		if m == wantVk {
			return wantVk
		}
	}
	return vk.PresentModeFifoKHR
}

// AcquireSwapchainTexture implements hal.Device (spec.md §4.7): obtains
// the next swapchain image, recreating the swapchain on out-of-date and
// reattempting once, records the acquire/render-finished semaphore
// pair on cmd as a pending present, and transitions the image to
// color-attachment-write. A minimized window or a saturated in-flight
// counter both return a null texture without an error (spec.md §7, §9).
func (d *Device) AcquireSwapchainTexture(cmdIface hal.CommandBuffer, w hal.Window) (hal.Texture, uint32, uint32, error) {
	cmd, ok := cmdIface.(*CommandBuffer)
	if !ok {
		return nil, 0, 0, fmt.Errorf("vulkan: command buffer from a different backend")
	}

	d.windowsMu.Lock()
	wd, ok := d.windows[w]
	d.windowsMu.Unlock()
	if !ok {
		return nil, 0, 0, fmt.Errorf("vulkan: window not claimed")
	}

	wd.mu.Lock()
	defer wd.mu.Unlock()

	width, height := wd.provider.DrawableSize()
	if width == 0 || height == 0 {
		return nil, 0, 0, nil
	}

	sc := wd.swapchain
	sc.mu.Lock()
	needsRebuild := sc.outOfDate
	sc.mu.Unlock()
	if needsRebuild {
		rebuilt, err := d.createSwapchainData(wd, sc)
		if err != nil {
			return nil, 0, 0, fmt.Errorf("vulkan: swapchain recreation failed: %w", err)
		}
		d.cmds.DeviceWaitIdle(d.handle)
		d.destroySwapchainData(sc)
		sc = rebuilt
		wd.swapchain = sc
	}

	sc.mu.Lock()
	if sc.inFlight >= maxSwapchainInFlight {
		sc.mu.Unlock()
		return nil, 0, 0, nil
	}
	sc.mu.Unlock()

	idx, err := d.acquireSwapchainImage(sc)
	if err == hal.ErrSurfaceOutdated || err == hal.ErrSurfaceLost {
		rebuilt, rerr := d.createSwapchainData(wd, sc)
		if rerr != nil {
			return nil, 0, 0, fmt.Errorf("vulkan: swapchain recreation failed: %w", rerr)
		}
		d.cmds.DeviceWaitIdle(d.handle)
		d.destroySwapchainData(sc)
		sc = rebuilt
		wd.swapchain = sc
		idx, err = d.acquireSwapchainImage(sc)
	}
	if err != nil {
		hal.Logger().Warn("vulkan: swapchain acquisition failed", "err", err)
		return nil, 0, 0, nil
	}

	container := sc.containers[idx]
	slice := container.active.texture.sliceAt(0, 0)
	emitImageBarrier(d.cmds, cmd.native, container.active.texture.image, container.active.texture.aspect, 0, 1, 0, 1, slice.currentIntent, AccessColorAttachmentWrite)
	slice.currentIntent = AccessColorAttachmentWrite

	sc.mu.Lock()
	sc.inFlight++
	sc.mu.Unlock()

	cmd.presents = append(cmd.presents, pendingPresent{
		swapchain: sc, imageIndex: idx,
		slice:            slice,
		acquireSemaphore: sc.imageAvailable,
		waitSemaphore:    sc.renderFinished,
	})

	return container, sc.extent.Width, sc.extent.Height, nil
}

func (d *Device) acquireSwapchainImage(sc *swapchainData) (uint32, error) {
	var idx uint32
	res := d.cmds.AcquireNextImageKHR(d.handle, sc.handle, ^uint64(0), sc.imageAvailable, 0, &idx)
	switch res {
	case vk.Success, vk.SuboptimalKHR:
		return idx, nil
	case vk.ErrorOutOfDateKHR:
		return 0, hal.ErrSurfaceOutdated
	case vk.ErrorSurfaceLostKHR:
		return 0, hal.ErrSurfaceLost
	default:
		return 0, fmt.Errorf("vkAcquireNextImageKHR failed: %v", res)
	}
}

package compute

import (
	"errors"
	"fmt"
	"sync"

	"github.com/cogentcore/webgpu/wgpu"

	"vox-ca/internal/core"
)

// ErrNoDevice reports that no WebGPU adapter or device could be acquired.
var ErrNoDevice = errors.New("compute: webgpu device unavailable")

// device bundles the WebGPU handles one engine instance owns exclusively.
// Engines never share buffers or queues.
type device struct {
	instance *wgpu.Instance
	adapter  *wgpu.Adapter
	handle   *wgpu.Device
	queue    *wgpu.Queue
}

// newDevice acquires an instance, adapter, device and queue. Any panic from
// the underlying native bindings (missing shared library, no driver) is
// converted into ErrNoDevice so callers can fall back instead of crashing.
func newDevice() (d *device, err error) {
	defer func() {
		if r := recover(); r != nil {
			d = nil
			err = fmt.Errorf("%w: %v", ErrNoDevice, r)
		}
	}()

	instance := wgpu.CreateInstance(nil)
	if instance == nil {
		return nil, ErrNoDevice
	}
	adapter, aerr := instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		PowerPreference: wgpu.PowerPreferenceHighPerformance,
	})
	if aerr != nil {
		instance.Release()
		return nil, fmt.Errorf("%w: request adapter: %v", ErrNoDevice, aerr)
	}
	handle, derr := adapter.RequestDevice(nil)
	if derr != nil {
		adapter.Release()
		instance.Release()
		return nil, fmt.Errorf("%w: request device: %v", ErrNoDevice, derr)
	}
	info := adapter.GetInfo()
	core.Logger().Info("compute: webgpu device acquired",
		"adapter", info.Name, "backend", info.BackendType.String())
	return &device{
		instance: instance,
		adapter:  adapter,
		handle:   handle,
		queue:    handle.GetQueue(),
	}, nil
}

func (d *device) release() {
	if d == nil {
		return
	}
	if d.queue != nil {
		d.queue.Release()
	}
	if d.handle != nil {
		d.handle.Release()
	}
	if d.adapter != nil {
		d.adapter.Release()
	}
	if d.instance != nil {
		d.instance.Release()
	}
}

var (
	probeOnce sync.Once
	probeOK   bool
)

// Available probes the platform for WebGPU support. The probe acquires and
// releases a throwaway device once per process; the result is cached.
func Available() bool {
	probeOnce.Do(func() {
		d, err := newDevice()
		if err != nil {
			core.Logger().Warn("compute: capability probe failed", "err", err)
			return
		}
		d.release()
		probeOK = true
	})
	return probeOK
}

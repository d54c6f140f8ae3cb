//go:build opencl

package main

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unsafe"

	"github.com/jgillich/go-opencl/cl"
)

const verifyTolerance = 1e-4

const fieldKernelSource = `__kernel void field_step(
    const int width,
    const int height,
    const int warm,
    const float mouse_x,
    const float mouse_y,
    const int mouse_present,
    __global const float4* src,
    __global float4* dst)
{
    int idx = get_global_id(0);
    if (idx >= width * height) {
        return;
    }
    if (warm == 0) {
        dst[idx] = (float4)(0.0f);
        return;
    }
    int x = idx % width;
    int y = idx / width;
    int left = x - 1;
    int right = x + 1;
    int down = y - 1;
    int up = y + 1;
    if (width == 1) {
        left = x;
        right = x;
    } else {
        if (x == 0) left = right;
        if (x == width - 1) right = left;
    }
    if (height == 1) {
        down = y;
        up = y;
    } else {
        if (y == 0) down = up;
        if (y == height - 1) up = down;
    }
    float4 c = src[idx];
    float p = c.x;
    float vel = c.y;
    float p_right = src[y * width + right].x;
    float p_left = src[y * width + left].x;
    float p_up = src[up * width + x].x;
    float p_down = src[down * width + x].x;

    vel += WAVE_SPEED * (-2.0f * p + p_right + p_left) / 4.0f;
    vel += WAVE_SPEED * (-2.0f * p + p_up + p_down) / 4.0f;
    p += WAVE_SPEED * vel;
    vel -= WAVE_RESTORING * WAVE_SPEED * p;
    vel *= 1.0f - WAVE_FRICTION * WAVE_SPEED;
    p *= WAVE_HEIGHT_DECAY;

    if (mouse_present != 0) {
        float u = ((float)x + 0.5f) / (float)width;
        float v = ((float)y + 0.5f) / (float)height;
        float dx = (u - mouse_x) * ((float)width / (float)height);
        float dy = v - mouse_y;
        float dist = sqrt(dx * dx + dy * dy);
        if (dist <= BRUSH_RADIUS) {
            p += BRUSH_GAIN * (1.0f - dist / BRUSH_RADIUS);
        }
    }

    dst[idx] = (float4)(p, vel, (p_right - p_left) / 2.0f, (p_up - p_down) / 2.0f);
}

float4 label_texel(__global const uchar4* label, int lw, int lh, int x, int y)
{
    x = clamp(x, 0, lw - 1);
    y = clamp(y, 0, lh - 1);
    return convert_float4(label[y * lw + x]) / 255.0f;
}

__kernel void composite(
    const int width,
    const int height,
    const int label_width,
    const int label_height,
    __global const float4* field,
    __global const uchar4* label,
    __global uchar4* pixels)
{
    int idx = get_global_id(0);
    if (idx >= width * height) {
        return;
    }
    int x = idx % width;
    int fy = height - 1 - idx / width;
    float4 c = field[fy * width + x];
    float u = ((float)x + 0.5f) / (float)width + REFRACTION_GAIN * c.z;
    float v = ((float)fy + 0.5f) / (float)height + REFRACTION_GAIN * c.w;
    float tx = u * (float)label_width - 0.5f;
    float ty = (1.0f - v) * (float)label_height - 0.5f;
    float fx = floor(tx);
    float fyy = floor(ty);
    float ax = tx - fx;
    float ay = ty - fyy;
    int x0 = (int)fx;
    int y0 = (int)fyy;
    float4 top = mix(label_texel(label, label_width, label_height, x0, y0),
                     label_texel(label, label_width, label_height, x0 + 1, y0), ax);
    float4 bottom = mix(label_texel(label, label_width, label_height, x0, y0 + 1),
                        label_texel(label, label_width, label_height, x0 + 1, y0 + 1), ax);
    float4 color = mix(top, bottom, ay);

    float3 n = normalize((float3)(-c.z * NORMAL_SLOPE, NORMAL_UP, -c.w * NORMAL_SLOPE));
    float3 l = normalize((float3)(LIGHT_X, LIGHT_Y, LIGHT_Z));
    float spec = pow(max(0.0f, dot(n, l)), SHININESS) * SPEC_INTENSITY;
    color += (float4)(spec);
    pixels[idx] = convert_uchar4_sat_rte(color * 255.0f);
}`

// clFloat formats v as an OpenCL C float literal.
func clFloat(v float32) string {
	s := strconv.FormatFloat(float64(v), 'f', -1, 32)
	if !strings.ContainsAny(s, ".e") {
		s += ".0"
	}
	return s + "f"
}

// kernelDefines binds the simulation and lighting constants into the program.
func kernelDefines() string {
	defs := []struct {
		name  string
		value float32
	}{
		{"WAVE_SPEED", waveSpeed},
		{"WAVE_RESTORING", waveRestoring},
		{"WAVE_FRICTION", waveFriction},
		{"WAVE_HEIGHT_DECAY", waveHeightDecay},
		{"BRUSH_RADIUS", brushRadius},
		{"BRUSH_GAIN", brushGain},
		{"REFRACTION_GAIN", refractionGain},
		{"NORMAL_SLOPE", normalSlopeScale},
		{"NORMAL_UP", normalUp},
		{"LIGHT_X", lightX},
		{"LIGHT_Y", lightY},
		{"LIGHT_Z", lightZ},
		{"SHININESS", float32(specularShininess)},
		{"SPEC_INTENSITY", specularIntensity},
	}
	var b strings.Builder
	for _, d := range defs {
		fmt.Fprintf(&b, "#define %s %s\n", d.name, clFloat(d.value))
	}
	return b.String()
}

// openCLSolver runs the simulation and composite passes as OpenCL kernels.
// fieldRead/fieldWrite are the device-side ping-pong pair.
type openCLSolver struct {
	context         *cl.Context
	queue           *cl.CommandQueue
	program         *cl.Program
	stepKernel      *cl.Kernel
	compositeKernel *cl.Kernel

	fieldRead  *cl.MemObject
	fieldWrite *cl.MemObject
	labelBuf   *cl.MemObject
	pixelBuf   *cl.MemObject

	width, height  int
	labelW, labelH int
	deviceName     string
	pendingErr     error
	verify         *cpuSolver
	verifyScratch  []float32
}

// newOpenCLSolver picks the first GPU (then CPU) device and builds both
// kernels. When verify is set every step is mirrored on a CPU solver.
func newOpenCLSolver(verify bool, workers int) (*openCLSolver, error) {
	platforms, err := cl.GetPlatforms()
	if err != nil {
		msg := "querying OpenCL platforms"
		if strings.Contains(err.Error(), "-1001") {
			msg += ": no ICD loader reported any platforms; install OpenCL drivers and verify with `clinfo`"
		}
		return nil, fmt.Errorf("%s: %w", msg, err)
	}
	if len(platforms) == 0 {
		return nil, errors.New("no OpenCL platforms available; ensure a vendor driver is installed and detected by `clinfo`")
	}
	device := pickDevice(platforms, cl.DeviceTypeGPU)
	if device == nil {
		device = pickDevice(platforms, cl.DeviceTypeCPU)
	}
	if device == nil {
		return nil, errors.New("no suitable OpenCL devices found")
	}

	s := &openCLSolver{deviceName: device.Name()}
	if s.context, err = cl.CreateContext([]*cl.Device{device}); err != nil {
		return nil, fmt.Errorf("creating OpenCL context: %w", err)
	}
	if s.queue, err = s.context.CreateCommandQueue(device, 0); err != nil {
		s.Close()
		return nil, fmt.Errorf("creating OpenCL command queue: %w", err)
	}
	if s.program, err = s.context.CreateProgramWithSource([]string{kernelDefines() + fieldKernelSource}); err != nil {
		s.Close()
		return nil, fmt.Errorf("creating OpenCL program: %w", err)
	}
	if err := s.program.BuildProgram([]*cl.Device{device}, ""); err != nil {
		s.Close()
		if buildErr, ok := err.(cl.BuildError); ok {
			return nil, fmt.Errorf("building OpenCL program: %s", string(buildErr))
		}
		return nil, fmt.Errorf("building OpenCL program: %w", err)
	}
	if s.stepKernel, err = s.program.CreateKernel("field_step"); err != nil {
		s.Close()
		return nil, fmt.Errorf("creating field kernel: %w", err)
	}
	if s.compositeKernel, err = s.program.CreateKernel("composite"); err != nil {
		s.Close()
		return nil, fmt.Errorf("creating composite kernel: %w", err)
	}
	if verify {
		s.verify = newCPUSolver(workers)
	}
	return s, nil
}

func pickDevice(platforms []*cl.Platform, kind cl.DeviceType) *cl.Device {
	for _, p := range platforms {
		devices, err := p.GetDevices(kind)
		if err != nil && err != cl.ErrDeviceNotFound {
			continue
		}
		if len(devices) > 0 {
			return devices[0]
		}
	}
	return nil
}

func (s *openCLSolver) releaseBuffers() {
	for _, b := range []**cl.MemObject{&s.fieldRead, &s.fieldWrite, &s.labelBuf, &s.pixelBuf} {
		if *b != nil {
			(*b).Release()
			*b = nil
		}
	}
}

// zeroFields clears both device field buffers.
func (s *openCLSolver) zeroFields() error {
	zeros := make([]float32, s.width*s.height*cellChannels)
	if _, err := s.queue.EnqueueWriteBufferFloat32(s.fieldRead, true, 0, zeros, nil); err != nil {
		return fmt.Errorf("clearing read field: %w", err)
	}
	if _, err := s.queue.EnqueueWriteBufferFloat32(s.fieldWrite, true, 0, zeros, nil); err != nil {
		return fmt.Errorf("clearing write field: %w", err)
	}
	return nil
}

func (s *openCLSolver) Resize(width, height int, label *labelTexture) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: %dx%d", errInvalidViewport, width, height)
	}
	if label == nil || len(label.pix) == 0 {
		return errors.New("opencl solver: empty label texture")
	}
	s.releaseBuffers()
	s.width, s.height = width, height
	s.labelW, s.labelH = label.width, label.height
	fieldBytes := width * height * cellChannels * int(unsafe.Sizeof(float32(0)))
	var err error
	if s.fieldRead, err = s.context.CreateEmptyBuffer(cl.MemReadWrite, fieldBytes); err != nil {
		return fmt.Errorf("allocating read field: %w", err)
	}
	if s.fieldWrite, err = s.context.CreateEmptyBuffer(cl.MemReadWrite, fieldBytes); err != nil {
		return fmt.Errorf("allocating write field: %w", err)
	}
	if s.labelBuf, err = s.context.CreateEmptyBuffer(cl.MemReadOnly, len(label.pix)); err != nil {
		return fmt.Errorf("allocating label buffer: %w", err)
	}
	if s.pixelBuf, err = s.context.CreateEmptyBuffer(cl.MemWriteOnly, width*height*4); err != nil {
		return fmt.Errorf("allocating pixel buffer: %w", err)
	}
	if err := s.zeroFields(); err != nil {
		return err
	}
	if _, err := s.queue.EnqueueWriteBuffer(s.labelBuf, true, 0, len(label.pix), unsafe.Pointer(&label.pix[0]), nil); err != nil {
		return fmt.Errorf("uploading label: %w", err)
	}
	if s.verify != nil {
		if err := s.verify.Resize(width, height, label); err != nil {
			return err
		}
	}
	s.pendingErr = nil
	return nil
}

func (s *openCLSolver) Simulate(in stepInput) error {
	if s.pendingErr != nil {
		err := s.pendingErr
		s.pendingErr = nil
		return err
	}
	if s.fieldRead == nil {
		return errors.New("opencl solver: Simulate before Resize")
	}
	var warm, present int32
	if in.frame != 0 {
		warm = 1
	}
	if in.pointer.present {
		present = 1
	}
	if err := s.stepKernel.SetArgs(
		int32(s.width),
		int32(s.height),
		warm,
		in.pointer.x,
		in.pointer.y,
		present,
		s.fieldRead,
		s.fieldWrite,
	); err != nil {
		return fmt.Errorf("setting field kernel arguments: %w", err)
	}
	if _, err := s.queue.EnqueueNDRangeKernel(s.stepKernel, nil, []int{s.width * s.height}, nil, nil); err != nil {
		return fmt.Errorf("enqueueing field kernel: %w", err)
	}
	if s.verify != nil {
		if err := s.verify.Simulate(in); err != nil {
			return err
		}
		if err := s.verifyField(in.frame); err != nil {
			return err
		}
	}
	return nil
}

// verifyField compares the device write buffer against the CPU mirror.
func (s *openCLSolver) verifyField(frame uint64) error {
	host := s.verify.pair.write.cells
	if cap(s.verifyScratch) < len(host) {
		s.verifyScratch = make([]float32, len(host))
	}
	scratch := s.verifyScratch[:len(host)]
	if _, err := s.queue.EnqueueReadBufferFloat32(s.fieldWrite, true, 0, scratch, nil); err != nil {
		return fmt.Errorf("reading field for verification: %w", err)
	}
	for i, hv := range host {
		if diff := math.Abs(float64(scratch[i] - hv)); diff > verifyTolerance {
			return fmt.Errorf("frame %d: field mismatch at cell %d channel %d: device=%f host=%f diff=%f",
				frame, i/cellChannels, i%cellChannels, scratch[i], hv, diff)
		}
	}
	return nil
}

func (s *openCLSolver) Composite(dst []byte) error {
	if s.pixelBuf == nil {
		return errors.New("opencl solver: Composite before Resize")
	}
	if want := s.width * s.height * 4; len(dst) != want {
		return fmt.Errorf("opencl solver: pixel buffer has %d bytes, want %d", len(dst), want)
	}
	if err := s.compositeKernel.SetArgs(
		int32(s.width),
		int32(s.height),
		int32(s.labelW),
		int32(s.labelH),
		s.fieldWrite,
		s.labelBuf,
		s.pixelBuf,
	); err != nil {
		return fmt.Errorf("setting composite kernel arguments: %w", err)
	}
	if _, err := s.queue.EnqueueNDRangeKernel(s.compositeKernel, nil, []int{s.width * s.height}, nil, nil); err != nil {
		return fmt.Errorf("enqueueing composite kernel: %w", err)
	}
	if _, err := s.queue.EnqueueReadBuffer(s.pixelBuf, true, 0, len(dst), unsafe.Pointer(&dst[0]), nil); err != nil {
		return fmt.Errorf("reading pixels: %w", err)
	}
	return nil
}

func (s *openCLSolver) Swap() {
	s.fieldRead, s.fieldWrite = s.fieldWrite, s.fieldRead
	if s.verify != nil {
		s.verify.Swap()
	}
}

// Reset clears the device buffers; a failure surfaces from the next Simulate.
func (s *openCLSolver) Reset() {
	if s.fieldRead == nil {
		return
	}
	if err := s.zeroFields(); err != nil {
		s.pendingErr = err
	}
	if s.verify != nil {
		s.verify.Reset()
	}
}

func (s *openCLSolver) Name() string {
	return "opencl (" + s.deviceName + ")"
}

func (s *openCLSolver) Close() {
	s.releaseBuffers()
	if s.stepKernel != nil {
		s.stepKernel.Release()
		s.stepKernel = nil
	}
	if s.compositeKernel != nil {
		s.compositeKernel.Release()
		s.compositeKernel = nil
	}
	if s.program != nil {
		s.program.Release()
		s.program = nil
	}
	if s.queue != nil {
		s.queue.Release()
		s.queue = nil
	}
	if s.context != nil {
		s.context.Release()
		s.context = nil
	}
	if s.verify != nil {
		s.verify.Close()
	}
}

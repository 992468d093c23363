// Package system carries host-level concerns: resource limits, encoder
// availability checks and a memory preflight for the frame loop.
package system

import (
	"os/exec"
	"strings"
	"syscall"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
)

// InitResourceLimits raises the open-file soft limit. Long renders keep
// the encoder pipe plus any fetched image bodies open at once.
func InitResourceLimits(log zerolog.Logger) {
	var rLimit syscall.Rlimit
	if err := syscall.Getrlimit(syscall.RLIMIT_NOFILE, &rLimit); err != nil {
		log.Warn().Err(err).Msg("could not read file limit")
		return
	}

	rLimit.Cur = 2048
	if rLimit.Cur > rLimit.Max {
		rLimit.Cur = rLimit.Max
	}

	if err := syscall.Setrlimit(syscall.RLIMIT_NOFILE, &rLimit); err != nil {
		log.Warn().Err(err).Msg("could not raise file limit")
	} else {
		log.Debug().Uint64("limit", rLimit.Cur).Msg("file limit raised")
	}
}

// CheckEncoder verifies ffmpeg is reachable and reports libvpx-vp9.
func CheckEncoder() error {
	if _, err := exec.LookPath("ffmpeg"); err != nil {
		return errors.Wrap(err, "ffmpeg not found in PATH")
	}

	out, err := exec.Command("ffmpeg", "-hide_banner", "-encoders").CombinedOutput()
	if err != nil {
		return errors.Wrap(err, "query ffmpeg encoders")
	}
	if !strings.Contains(string(out), "libvpx-vp9") {
		return errors.New("ffmpeg build has no libvpx-vp9 encoder")
	}
	return nil
}

// Preflight warns when the host looks too constrained for the render.
// It never fails the render; a slow encode is still an encode.
func Preflight(log zerolog.Logger, width, height int) {
	frameBytes := uint64(width * height * 4)

	if vm, err := mem.VirtualMemory(); err == nil {
		// One live frame buffer plus the in-memory encoded output;
		// warn when the headroom is under ~64 frames.
		if vm.Available < frameBytes*64 {
			log.Warn().
				Uint64("available", vm.Available).
				Uint64("frame_bytes", frameBytes).
				Msg("low memory for render")
		}
	}

	if n, err := cpu.Counts(true); err == nil {
		log.Debug().Int("cpus", n).Msg("preflight")
	}
}

// MemoryUsedPercent is reported in the post-render stats.
func MemoryUsedPercent() float64 {
	vm, err := mem.VirtualMemory()
	if err != nil {
		return 0
	}
	return vm.UsedPercent
}

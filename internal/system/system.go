package system

import (
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"syscall"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
)

func InitResourceLimits() {
	var rLimit syscall.Rlimit
	err := syscall.Getrlimit(syscall.RLIMIT_NOFILE, &rLimit)
	if err != nil {
		log.Printf("[!] Не удалось получить лимит файлов: %v", err)
		return
	}

	if rLimit.Cur >= 2048 {
		return
	}
	rLimit.Cur = 2048
	if rLimit.Cur > rLimit.Max {
		rLimit.Cur = rLimit.Max
	}

	if err := syscall.Setrlimit(syscall.RLIMIT_NOFILE, &rLimit); err != nil {
		log.Printf("[!] Не удалось установить лимит файлов: %v", err)
	}
}

// FindLatest returns the newest file in dir whose name ends with one of exts.
func FindLatest(dir string, exts ...string) (string, error) {
	files, err := os.ReadDir(dir)
	if err != nil {
		return "", err
	}

	var latestFile string
	var latestTime time.Time

	for _, f := range files {
		if f.IsDir() || !hasExt(f.Name(), exts) {
			continue
		}
		info, err := f.Info()
		if err != nil {
			continue
		}
		if info.ModTime().After(latestTime) {
			latestTime = info.ModTime()
			latestFile = filepath.Join(dir, f.Name())
		}
	}

	if latestFile == "" {
		return "", fmt.Errorf("в папке %s не найдено файлов %s", dir, strings.Join(exts, ", "))
	}

	return latestFile, nil
}

func hasExt(name string, exts []string) bool {
	lower := strings.ToLower(name)
	for _, ext := range exts {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}

func GetBestH264Encoder() (string, string) {
	out, err := exec.Command("ffmpeg", "-hide_banner", "-encoders").CombinedOutput()
	if err != nil {
		return "libx264", ""
	}
	return pickEncoder(string(out)), ""
}

// pickEncoder prefers VideoToolbox, then NVENC, then software x264.
func pickEncoder(listing string) string {
	for _, name := range []string{"h264_videotoolbox", "h264_nvenc"} {
		if strings.Contains(listing, name) {
			return name
		}
	}
	return "libx264"
}

// DefaultQuality maps an encoder to a sensible quality value.
func DefaultQuality(encoder string) int {
	switch encoder {
	case "h264_videotoolbox":
		return 75
	case "h264_nvenc":
		return 28
	default:
		return 23
	}
}

// CheckFilterSupport reports whether the local ffmpeg knows filter.
func CheckFilterSupport(filter string) bool {
	out, err := exec.Command("ffmpeg", "-hide_banner", "-filters").CombinedOutput()
	if err != nil {
		return false
	}
	return strings.Contains(string(out), " "+filter+" ")
}

// HostStats is a snapshot of the machine for the performance report.
type HostStats struct {
	CPUs        int
	CPUPercent  float64
	MemTotal    uint64
	MemUsedPct  float64
	GoRoutines  int
	HeapInUseMB float64
}

// ReadHostStats samples CPU and memory. Missing values stay zero.
func ReadHostStats() HostStats {
	var st HostStats

	if n, err := cpu.Counts(true); err == nil {
		st.CPUs = n
	}
	if pct, err := cpu.Percent(0, false); err == nil && len(pct) > 0 {
		st.CPUPercent = pct[0]
	}
	if vm, err := mem.VirtualMemory(); err == nil {
		st.MemTotal = vm.Total
		st.MemUsedPct = vm.UsedPercent
	}

	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)
	st.GoRoutines = runtime.NumGoroutine()
	st.HeapInUseMB = float64(ms.HeapInuse) / (1 << 20)

	return st
}

func (s HostStats) String() string {
	return fmt.Sprintf("CPU: %d cores %.1f%% | RAM: %.1f GiB %.1f%% | Heap: %.1f MiB | Goroutines: %d",
		s.CPUs, s.CPUPercent, float64(s.MemTotal)/(1<<30), s.MemUsedPct, s.HeapInUseMB, s.GoRoutines)
}

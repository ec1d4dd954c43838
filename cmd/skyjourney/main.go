package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/ivlev/skyjourney/internal/config"
	"github.com/ivlev/skyjourney/internal/effects"
	"github.com/ivlev/skyjourney/internal/engine"
	"github.com/ivlev/skyjourney/internal/logging"
	"github.com/ivlev/skyjourney/internal/scene"
	"github.com/ivlev/skyjourney/internal/session"
	"github.com/ivlev/skyjourney/internal/system"
	"github.com/ivlev/skyjourney/internal/video"
	"github.com/ivlev/skyjourney/internal/viewer"
)

// Version is set at build time with -ldflags "-X main.Version=..."
var Version = "dev"

func main() {
	// Увеличиваем лимиты системы (для macOS/Linux)
	system.InitResourceLimits()

	// Создаем нужные директории, если их нет
	dirs := []string{"input/scenes", "output"}
	for _, d := range dirs {
		os.MkdirAll(d, 0755)
	}

	modePtr := flag.String("mode", "render", "Режим: render (видео), frames (PNG), script (генерация сценария), view (окно), scene (записать сцену по умолчанию)")
	scenePtr := flag.String("scene", "", "Путь к сцене YAML (по умолчанию: самый свежий файл в input/scenes/ или встроенная сцена)")
	scriptPtr := flag.String("script", "", "Сценарий прокрутки YAML (latest - самый свежий в internal/scripts/, пусто - сгенерировать)")
	outputPtr := flag.String("output", "", "Путь к видео, папке кадров или файлу (если пусто, генерируется автоматически в output/)")
	durationPtr := flag.Float64("duration", 0, "Общая длительность сессии (если 0, берется из сценария или 40s)")
	widthPtr := flag.Int("width", 1280, "Ширина")
	heightPtr := flag.Int("height", 720, "Высота")
	fpsPtr := flag.Int("fps", 30, "FPS")
	workersPtr := flag.Int("workers", runtime.NumCPU(), "Потоки")
	presetPtr := flag.String("preset", "", "Пресет формата: 16:9, 9:16 (Shorts/TikTok), 4:5 (Instagram)")
	qualityPtr := flag.Int("quality", 0, "Качество видео (0 - авто, x264: CRF 1-51, VideoToolbox: битрейт = Q*100кбит/с)")
	grainPtr := flag.Float64("grain", -1, "Зерно пленки 0..1 (-1 - из сцены)")
	fadeInPtr := flag.Float64("fade-in", 0.5, "Появление из черного (сек)")
	fadeOutPtr := flag.Float64("fade-out", 1, "Уход в черное (сек)")
	portfolioPtr := flag.String("portfolio", "", "Ссылка для QR-кода на финальной панели")
	debugPtr := flag.Bool("debug", false, "Отладочный лог и номер кадра на видео")
	statsPtr := flag.Bool("stats", false, "Отчет о производительности (benchmark.log)")

	flag.Parse()

	logger := logging.Must(*debugPtr)
	defer logger.Sync()

	scenePath := *scenePtr
	if scenePath == "" {
		if latest, err := system.FindLatest("input/scenes", ".yaml", ".yml"); err == nil {
			scenePath = latest
			fmt.Printf("[*] Выбрана сцена: %s\n", scenePath)
		}
	}

	if *modePtr == "scene" {
		out := *outputPtr
		if out == "" {
			out = filepath.Join("input/scenes", "default.yaml")
		}
		if err := scene.Write(scene.Default(), out); err != nil {
			log.Fatalf("[-] Ошибка записи сцены: %v", err)
		}
		fmt.Printf("[+++] Успех! Сцена сохранена: %s\n", out)
		return
	}

	sc := scene.Default()
	if scenePath != "" {
		loaded, err := scene.Load(scenePath)
		if err != nil {
			log.Fatalf("[-] Ошибка загрузки сцены: %v", err)
		}
		sc = loaded
	}

	portfolio := *portfolioPtr
	if portfolio == "" {
		portfolio = sc.Portfolio
	}

	cfg := &config.Config{
		ScenePath:      scenePath,
		ScriptPath:     *scriptPtr,
		TotalDuration:  *durationPtr,
		Width:          *widthPtr,
		Height:         *heightPtr,
		FPS:            *fpsPtr,
		Workers:        *workersPtr,
		Preset:         *presetPtr,
		Grain:          *grainPtr,
		Portfolio:      portfolio,
		Debug:          *debugPtr,
		ShowStats:      *statsPtr,
		GenerateScript: *modePtr == "script",
		ScriptOutput:   *outputPtr,
		BuildVersion:   Version,
	}
	cfg.ApplyPreset()
	if cfg.Grain < 0 {
		cfg.Grain = sc.Grain
	}

	switch *modePtr {
	case "view":
		s, err := session.New(sc, session.Options{Portfolio: cfg.Portfolio, QRSize: min(cfg.Width, cfg.Height) / 5, Logger: logger})
		if err != nil {
			log.Fatalf("[-] Ошибка сцены: %v", err)
		}
		if err := viewer.Run(viewer.New(s, cfg.Width, cfg.Height, logger), "Sky Journey"); err != nil {
			log.Fatalf("[-] Ошибка окна: %v", err)
		}
		return
	case "frames":
		cfg.FramesDir = *outputPtr
		if cfg.FramesDir == "" {
			cfg.FramesDir = filepath.Join("output", "frames_"+time.Now().Format("2006-01-02_15-04-05"))
		}
	case "render":
		cfg.OutputVideo = *outputPtr
		if cfg.OutputVideo == "" {
			name := "skyjourney"
			if scenePath != "" {
				name = strings.ReplaceAll(strings.TrimSuffix(filepath.Base(scenePath), filepath.Ext(scenePath)), " ", "_")
			}
			timestamp := time.Now().Format("2006-01-02_15-04-05")
			cfg.OutputVideo = filepath.Join("output", fmt.Sprintf("%s_%s.mp4", name, timestamp))
		}
	case "script":
	default:
		log.Fatalf("[-] Неизвестный режим: %s", *modePtr)
	}

	encoderName, _ := system.GetBestH264Encoder()
	if encoderName != "libx264" {
		fmt.Printf("[*] Обнаружено аппаратное ускорение: %s\n", encoderName)
	}
	cfg.VideoEncoder = encoderName
	cfg.Quality = *qualityPtr
	if cfg.Quality == 0 {
		cfg.Quality = system.DefaultQuality(encoderName)
	}

	// Инициализируем зависимости
	var effs []effects.Effect
	if cfg.Grain > 0 && cfg.FramesDir == "" {
		if system.CheckFilterSupport("noise") {
			effs = append(effs, &effects.Grain{Opacity: cfg.Grain})
		} else {
			fmt.Println("[!] FFmpeg не поддерживает фильтр noise, зерно отключено")
		}
	}
	effs = append(effs, &effects.Fade{In: *fadeInPtr, Out: *fadeOutPtr})
	if cfg.Debug {
		effs = append(effs, &effects.DebugText{Label: cfg.BuildVersion})
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	project := engine.NewVideoProject(cfg, sc, &video.FFmpegEncoder{}, logger.With(zap.String("build", Version)), effs...)
	if err := project.Run(ctx); err != nil {
		log.Fatalf("[-] Ошибка проекта: %v", err)
	}
}
